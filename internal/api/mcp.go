package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"jobtrack/internal/checklist"
	"jobtrack/internal/digest"
	"jobtrack/internal/match"
	"jobtrack/internal/track"
	"jobtrack/internal/tracker"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Tracker   *tracker.Service
	Checklist *checklist.Store
}

// NewMCPServer creates an MCP server with all jobtrack tools and resources
// registered. Agents use it to browse listings, manage application status,
// and pull the daily digest.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"jobtrack",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("jobtrack — personal job application tracker with match scoring, saved jobs, and daily digests."),
		server.WithRecovery(),
	)

	// Tools
	s.AddTool(
		mcp.NewTool("list_jobs",
			mcp.WithDescription("List job postings with optional filters, scored against the saved preferences."),
			mcp.WithString("keyword", mcp.Description("Case-insensitive substring match on title or company")),
			mcp.WithString("location", mcp.Description("Exact location filter")),
			mcp.WithString("mode", mcp.Description("Work mode filter: Remote, Hybrid, or Onsite")),
			mcp.WithString("experience", mcp.Description("Experience level filter")),
			mcp.WithString("source", mcp.Description("Job board source filter")),
			mcp.WithString("status", mcp.Description("Application status filter")),
			mcp.WithString("sort", mcp.Description("Sort order: latest, score, or salary (default latest)")),
			mcp.WithBoolean("matches_only", mcp.Description("Only return jobs at or above the preferred minimum match score")),
			mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 20)")),
		),
		mcpListJobs(deps),
	)

	s.AddTool(
		mcp.NewTool("get_job",
			mcp.WithDescription("Fetch a single job posting by id, with its match score, status, and saved flag."),
			mcp.WithNumber("id", mcp.Description("Job id"), mcp.Required()),
		),
		mcpGetJob(deps),
	)

	s.AddTool(
		mcp.NewTool("set_preferences",
			mcp.WithDescription("Save the matching preferences used to score jobs."),
			mcp.WithArray("role_keywords", mcp.Description("Keywords matched against job titles and descriptions")),
			mcp.WithArray("locations", mcp.Description("Preferred locations")),
			mcp.WithString("mode", mcp.Description("Preferred work mode")),
			mcp.WithString("experience", mcp.Description("Experience level")),
			mcp.WithArray("skills", mcp.Description("Skills matched against job requirements")),
			mcp.WithNumber("min_match_score", mcp.Description("Minimum score for the matches-only view (0-100, default 40)")),
		),
		mcpSetPreferences(deps),
	)

	s.AddTool(
		mcp.NewTool("set_status",
			mcp.WithDescription("Record the application status for a job: Not Applied, Applied, Rejected, or Selected."),
			mcp.WithNumber("id", mcp.Description("Job id"), mcp.Required()),
			mcp.WithString("status", mcp.Description("New application status"), mcp.Required()),
		),
		mcpSetStatus(deps),
	)

	s.AddTool(
		mcp.NewTool("toggle_saved",
			mcp.WithDescription("Save or unsave a job for later."),
			mcp.WithNumber("id", mcp.Description("Job id"), mcp.Required()),
		),
		mcpToggleSaved(deps),
	)

	s.AddTool(
		mcp.NewTool("generate_digest",
			mcp.WithDescription("Generate (or regenerate) today's digest of the top matching jobs."),
		),
		mcpGenerateDigest(deps),
	)

	// Resources
	s.AddResource(
		mcp.NewResource(
			"jobtrack://preferences",
			"Matching Preferences",
			mcp.WithResourceDescription("Saved matching preferences as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourcePreferences(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"jobtrack://digest/today",
			"Today's Digest",
			mcp.WithResourceDescription("Today's top matching jobs as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceDigest(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"jobtrack://status-updates",
			"Status Updates",
			mcp.WithResourceDescription("Recent application status changes, newest first"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceStatusUpdates(deps),
	)

	return s
}

func mcpListJobs(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		f := match.Filters{
			Keyword:    req.GetString("keyword", ""),
			Location:   req.GetString("location", ""),
			Mode:       req.GetString("mode", ""),
			Experience: req.GetString("experience", ""),
			Source:     req.GetString("source", ""),
			Status:     req.GetString("status", ""),
			Sort:       req.GetString("sort", ""),
		}
		matchesOnly := req.GetBool("matches_only", false)

		limit := req.GetInt("limit", 20)
		if limit <= 0 {
			limit = 20
		}

		jobs := deps.Tracker.View(f, matchesOnly)
		if len(jobs) > limit {
			jobs = jobs[:limit]
		}

		b, err := json.Marshal(jobs)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal jobs: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpGetJob(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireInt("id")
		if err != nil {
			return mcpError("id is required"), nil
		}

		job, ok := deps.Tracker.Job(id)
		if !ok {
			return mcpError(fmt.Sprintf("job %d not found", id)), nil
		}

		b, err := json.Marshal(map[string]any{
			"job":    job,
			"status": deps.Tracker.Status(id),
			"saved":  deps.Tracker.IsSaved(id),
		})
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal job: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpSetPreferences(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p := match.DefaultPreferences()
		if existing := deps.Tracker.Preferences(); existing != nil {
			p = *existing
		}

		if kw := req.GetStringSlice("role_keywords", nil); kw != nil {
			p.RoleKeywords = kw
		}
		if locs := req.GetStringSlice("locations", nil); locs != nil {
			p.PreferredLocations = locs
		}
		if mode := req.GetString("mode", ""); mode != "" {
			p.PreferredMode = []string{mode}
		}
		if exp := req.GetString("experience", ""); exp != "" {
			p.ExperienceLevel = exp
		}
		if skills := req.GetStringSlice("skills", nil); skills != nil {
			p.Skills = skills
		}
		if min := req.GetInt("min_match_score", -1); min >= 0 {
			p.MinMatchScore = min
		}

		if err := deps.Tracker.SetPreferences(p); err != nil {
			return mcpError(fmt.Sprintf("failed to save preferences: %v", err)), nil
		}

		b, err := json.Marshal(p)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal preferences: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpSetStatus(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireInt("id")
		if err != nil {
			return mcpError("id is required"), nil
		}
		raw, err := req.RequireString("status")
		if err != nil {
			return mcpError("status is required"), nil
		}

		status, err := track.ParseStatus(raw)
		if err != nil {
			return mcpError(err.Error()), nil
		}

		if _, err := deps.Tracker.SetStatus(id, status); err != nil {
			return mcpError(fmt.Sprintf("failed to set status: %v", err)), nil
		}

		return mcpText(fmt.Sprintf("Job %d marked %s", id, status)), nil
	}
}

func mcpToggleSaved(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireInt("id")
		if err != nil {
			return mcpError("id is required"), nil
		}

		saved, err := deps.Tracker.ToggleSaved(id)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to toggle: %v", err)), nil
		}

		if saved {
			return mcpText(fmt.Sprintf("Job %d saved", id)), nil
		}
		return mcpText(fmt.Sprintf("Job %d unsaved", id)), nil
	}
}

func mcpGenerateDigest(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := deps.Tracker.GenerateDigest()
		if errors.Is(err, digest.ErrNoPreferences) {
			return mcpError("set preferences before generating a digest"), nil
		}
		if err != nil {
			return mcpError(fmt.Sprintf("failed to generate digest: %v", err)), nil
		}

		return mcpText(digest.FormatText(entries, time.Now())), nil
	}
}

func mcpResourcePreferences(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		p := deps.Tracker.Preferences()
		if p == nil {
			return nil, fmt.Errorf("no preferences saved")
		}

		b, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal preferences: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpResourceDigest(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		entries, ok := deps.Tracker.TodayDigest()
		if !ok {
			return nil, fmt.Errorf("no digest generated today")
		}

		b, err := json.Marshal(entries)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal digest: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpResourceStatusUpdates(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		updates := deps.Tracker.StatusUpdates(10)

		b, err := json.Marshal(updates)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal status updates: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
