package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"jobtrack/internal/config"
	"jobtrack/internal/match"
	"jobtrack/internal/resume"
	"jobtrack/internal/track"
)

// --- jobs ---

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse job listings",
	Long: `Browse job listings with filters and match scores.

Examples:
  jobtrack jobs list --keyword react --location Bangalore
  jobtrack jobs list --sort score --matches
  jobtrack jobs show 4`,
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs, filtered and scored",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		for flag, param := range map[string]string{
			"keyword":    "q",
			"location":   "location",
			"mode":       "mode",
			"experience": "experience",
			"source":     "source",
			"job-status": "status",
			"sort":       "sort",
		} {
			if v, _ := cmd.Flags().GetString(flag); v != "" {
				q.Set(param, v)
			}
		}
		if matches, _ := cmd.Flags().GetBool("matches"); matches {
			q.Set("matches", "true")
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		path := "/jobs"
		if len(q) > 0 {
			path += "?" + q.Encode()
		}
		resp, err := client.get(cmd.Context(), path)
		if err != nil {
			return err
		}

		var jobs []jobRow
		if err := decodeJSON(resp, &jobs); err != nil {
			return err
		}

		if len(jobs) == 0 {
			fmt.Println("No jobs match the current filters.")
			return nil
		}

		for _, j := range jobs {
			printJobRow(j)
		}
		return nil
	},
}

var jobsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single job with status and saved flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/jobs/"+args[0])
		if err != nil {
			return err
		}

		var detail struct {
			Job    jobRow `json:"job"`
			Status string `json:"status"`
			Saved  bool   `json:"saved"`
		}
		if err := decodeJSON(resp, &detail); err != nil {
			return err
		}

		j := detail.Job
		fmt.Printf("%s — %s\n", colorize(colorBold, j.Title), j.Company)
		fmt.Printf("  %s · %s · %s\n", j.Location, j.Mode, j.Experience)
		fmt.Printf("  Salary: %s · Source: %s · Posted %dd ago\n", j.SalaryRange, j.Source, j.PostedDaysAgo)
		fmt.Printf("  Skills: %s\n", strings.Join(j.Skills, ", "))
		fmt.Printf("  Match: %s (%s)  Status: %s  Saved: %v\n",
			colorize(scoreColor(j.MatchScore), fmt.Sprintf("%d%%", j.MatchScore)),
			j.Tier, detail.Status, detail.Saved)
		fmt.Printf("  %s\n", j.Description)
		fmt.Printf("  Apply: %s\n", j.ApplyURL)
		return nil
	},
}

type jobRow struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Location      string   `json:"location"`
	Mode          string   `json:"mode"`
	Experience    string   `json:"experience"`
	SalaryRange   string   `json:"salaryRange"`
	Skills        []string `json:"skills"`
	Source        string   `json:"source"`
	Description   string   `json:"description"`
	ApplyURL      string   `json:"applyUrl"`
	PostedDaysAgo int      `json:"postedDaysAgo"`
	MatchScore    int      `json:"matchScore"`
	Tier          string   `json:"tier"`
}

func printJobRow(j jobRow) {
	score := colorize(scoreColor(j.MatchScore), fmt.Sprintf("%3d%%", j.MatchScore))
	fmt.Printf("%s %s  %s — %s (%s, %s)\n",
		colorize(colorCyan, fmt.Sprintf("#%-3d", j.ID)),
		score, j.Title, j.Company, j.Location, j.Mode)
}

func init() {
	jobsListCmd.Flags().String("keyword", "", "keyword filter on title or company")
	jobsListCmd.Flags().String("location", "", "location filter")
	jobsListCmd.Flags().String("mode", "", "work mode filter (Remote, Hybrid, Onsite)")
	jobsListCmd.Flags().String("experience", "", "experience level filter")
	jobsListCmd.Flags().String("source", "", "job board source filter")
	jobsListCmd.Flags().String("job-status", "", "application status filter")
	jobsListCmd.Flags().String("sort", "", "sort order: latest, score, or salary")
	jobsListCmd.Flags().Bool("matches", false, "only show jobs above the minimum match score")
	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsShowCmd)
}

// --- prefs ---

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Manage matching preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current preferences as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/preferences")
		if err != nil {
			return err
		}

		var prefs any
		if err := decodeJSON(resp, &prefs); err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(prefs)
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save matching preferences",
	Long: `Save matching preferences. Unset flags fall back to defaults.

Examples:
  jobtrack prefs set --keywords react,frontend --skills React,TypeScript
  jobtrack prefs set --locations Bangalore,Remote --mode Remote --min-score 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return putPreferences(cmd, prefsFromFlags(cmd))
	},
}

func prefsFromFlags(cmd *cobra.Command) match.Preferences {
	p := match.DefaultPreferences()
	if kw, _ := cmd.Flags().GetString("keywords"); kw != "" {
		p.RoleKeywords = splitTrim(kw)
	}
	if locs, _ := cmd.Flags().GetString("locations"); locs != "" {
		p.PreferredLocations = splitTrim(locs)
	}
	if mode, _ := cmd.Flags().GetString("mode"); mode != "" {
		p.PreferredMode = splitTrim(mode)
	}
	p.ExperienceLevel, _ = cmd.Flags().GetString("experience")
	if skills, _ := cmd.Flags().GetString("skills"); skills != "" {
		p.Skills = splitTrim(skills)
	}
	if cmd.Flags().Changed("min-score") {
		p.MinMatchScore, _ = cmd.Flags().GetInt("min-score")
	}
	return p
}

var prefsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open preferences JSON in $EDITOR",
	RunE: func(cmd *cobra.Command, args []string) error {
		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		current := match.DefaultPreferences()
		resp, err := client.get(cmd.Context(), "/preferences")
		if err != nil {
			return err
		}
		if resp.StatusCode == 404 {
			resp.Body.Close()
		} else if err := decodeJSON(resp, &current); err != nil {
			return err
		}

		data, err := json.MarshalIndent(current, "", "  ")
		if err != nil {
			return err
		}

		tmpFile, err := os.CreateTemp("", "jobtrack-prefs-*.json")
		if err != nil {
			return fmt.Errorf("creating temp file: %w", err)
		}
		tmpPath := tmpFile.Name()
		defer os.Remove(tmpPath)

		if _, err := tmpFile.Write(data); err != nil {
			tmpFile.Close()
			return err
		}
		tmpFile.Close()

		editorCmd := exec.Command(editor, tmpPath)
		editorCmd.Stdin = os.Stdin
		editorCmd.Stdout = os.Stdout
		editorCmd.Stderr = os.Stderr
		if err := editorCmd.Run(); err != nil {
			return fmt.Errorf("editor exited with error: %w", err)
		}

		edited, err := os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		var p match.Preferences
		if err := json.Unmarshal(edited, &p); err != nil {
			return fmt.Errorf("invalid JSON: %w", err)
		}

		return putPreferences(cmd, p)
	},
}

var prefsImportResumeCmd = &cobra.Command{
	Use:   "import-resume <file.pdf>",
	Short: "Derive preferences from a resume PDF",
	Long: `Derive preferences from a resume PDF. Skills and locations found in
the resume that also occur in the job dataset become the saved
preferences.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := resume.ParseFile(args[0])
		if err != nil {
			return err
		}

		if len(p.Skills) == 0 && len(p.RoleKeywords) == 0 && len(p.PreferredLocations) == 0 {
			printWarning("No recognizable skills, keywords, or locations found in %s", args[0])
			return nil
		}

		fmt.Printf("  Keywords:  %s\n", strings.Join(p.RoleKeywords, ", "))
		fmt.Printf("  Skills:    %s\n", strings.Join(p.Skills, ", "))
		fmt.Printf("  Locations: %s\n", strings.Join(p.PreferredLocations, ", "))

		return putPreferences(cmd, p)
	},
}

var prefsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete saved preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.delete(cmd.Context(), "/preferences")
		if err != nil {
			return err
		}
		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Preferences cleared")
		return nil
	},
}

func putPreferences(cmd *cobra.Command, p match.Preferences) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	resp, err := client.put(cmd.Context(), "/preferences", p)
	if err != nil {
		return err
	}

	var saved match.Preferences
	if err := decodeJSON(resp, &saved); err != nil {
		return err
	}

	printSuccess("Preferences saved (min match score %d)", saved.MinMatchScore)
	return nil
}

func splitTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func init() {
	prefsSetCmd.Flags().String("keywords", "", "comma-separated role keywords")
	prefsSetCmd.Flags().String("locations", "", "comma-separated preferred locations")
	prefsSetCmd.Flags().String("mode", "", "comma-separated preferred work modes")
	prefsSetCmd.Flags().String("experience", "", "experience level")
	prefsSetCmd.Flags().String("skills", "", "comma-separated skills")
	prefsSetCmd.Flags().Int("min-score", 40, "minimum match score for the matches view")
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetCmd)
	prefsCmd.AddCommand(prefsEditCmd)
	prefsCmd.AddCommand(prefsImportResumeCmd)
	prefsCmd.AddCommand(prefsClearCmd)
}

// --- application status ---

var applicationCmd = &cobra.Command{
	Use:   "application",
	Short: "Track application statuses",
}

var applicationSetCmd = &cobra.Command{
	Use:   "set <id> <status>",
	Short: "Set the application status for a job",
	Long: `Set the application status for a job.

Valid statuses: Not Applied, Applied, Rejected, Selected.

Examples:
  jobtrack application set 4 Applied
  jobtrack application set 4 "Not Applied"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid job id %q", args[0])
		}
		status := strings.Join(args[1:], " ")
		if _, err := track.ParseStatus(status); err != nil {
			return err
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.put(cmd.Context(), fmt.Sprintf("/jobs/%d/status", id), map[string]string{"status": status})
		if err != nil {
			return err
		}

		var result struct {
			Status string `json:"status"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Job %d marked %s", id, result.Status)
		return nil
	},
}

var applicationLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent status changes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), fmt.Sprintf("/status-updates?limit=%d", limit))
		if err != nil {
			return err
		}

		var updates []struct {
			JobID    int    `json:"jobId"`
			JobTitle string `json:"jobTitle"`
			Company  string `json:"company"`
			Status   string `json:"status"`
			Date     string `json:"date"`
		}
		if err := decodeJSON(resp, &updates); err != nil {
			return err
		}

		if len(updates) == 0 {
			fmt.Println("No status changes recorded yet.")
			return nil
		}

		for _, u := range updates {
			fmt.Printf("%s  #%-3d %s — %s: %s\n",
				u.Date, u.JobID, u.JobTitle, u.Company,
				colorize(colorBold, u.Status))
		}
		return nil
	},
}

func init() {
	applicationLogCmd.Flags().Int("limit", 20, "maximum number of entries to show")
	applicationCmd.AddCommand(applicationSetCmd)
	applicationCmd.AddCommand(applicationLogCmd)
}

// --- saved jobs ---

var saveCmd = &cobra.Command{
	Use:   "save <id>",
	Short: "Save or unsave a job for later",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/saved/"+args[0], nil)
		if err != nil {
			return err
		}

		var result struct {
			ID    int  `json:"id"`
			Saved bool `json:"saved"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		if result.Saved {
			printSuccess("Job %d saved", result.ID)
		} else {
			printSuccess("Job %d removed from saved", result.ID)
		}
		return nil
	},
}

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List saved jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/saved")
		if err != nil {
			return err
		}

		var jobs []jobRow
		if err := decodeJSON(resp, &jobs); err != nil {
			return err
		}

		if len(jobs) == 0 {
			fmt.Println("No saved jobs.")
			return nil
		}

		for _, j := range jobs {
			printJobRow(j)
		}
		return nil
	},
}

// --- digest ---

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Generate or show the daily digest",
}

var digestGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate (or regenerate) today's digest",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/digest", nil)
		if err != nil {
			return err
		}

		var result struct {
			Date string   `json:"date"`
			Jobs []jobRow `json:"jobs"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Digest for %s generated (%d jobs)", result.Date, len(result.Jobs))
		for _, j := range result.Jobs {
			printJobRow(j)
		}
		return nil
	},
}

var digestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dates with a stored digest",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/digest/dates")
		if err != nil {
			return err
		}

		var result struct {
			Dates []string `json:"dates"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		if len(result.Dates) == 0 {
			fmt.Println("No digests generated yet. Run 'jobtrack digest generate'.")
			return nil
		}
		for _, d := range result.Dates {
			fmt.Println(d)
		}
		return nil
	},
}

var digestShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a stored digest",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		path := "/digest"
		if date != "" {
			path += "?date=" + url.QueryEscape(date)
		}
		resp, err := client.get(cmd.Context(), path)
		if err != nil {
			return err
		}

		var result struct {
			Date string   `json:"date"`
			Jobs []jobRow `json:"jobs"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		fmt.Printf("%s\n", colorize(colorBold, "Digest for "+result.Date))
		if len(result.Jobs) == 0 {
			fmt.Println("No matching jobs that day.")
			return nil
		}
		for _, j := range result.Jobs {
			printJobRow(j)
		}
		return nil
	},
}

func init() {
	digestShowCmd.Flags().String("date", "", "digest date (YYYY-MM-DD, default today)")
	digestCmd.AddCommand(digestGenerateCmd)
	digestCmd.AddCommand(digestListCmd)
	digestCmd.AddCommand(digestShowCmd)
}

// --- checklist ---

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Track the feature test checklist",
}

var checklistListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show checklist items and progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/checklist")
		if err != nil {
			return err
		}

		var result checklistState
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printChecklist(result)
		return nil
	},
}

var checklistToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Toggle a checklist item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/checklist/"+args[0]+"/toggle", nil)
		if err != nil {
			return err
		}

		var result checklistState
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printChecklist(result)
		return nil
	},
}

var checklistResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all checklist items to unchecked",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.delete(cmd.Context(), "/checklist")
		if err != nil {
			return err
		}
		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Checklist reset")
		return nil
	},
}

type checklistState struct {
	Items []struct {
		ID      string `json:"id"`
		Label   string `json:"label"`
		Checked bool   `json:"checked"`
	} `json:"items"`
	Passed int `json:"passed"`
	Total  int `json:"total"`
}

func printChecklist(state checklistState) {
	for _, item := range state.Items {
		mark := colorize(colorYellow, "[ ]")
		if item.Checked {
			mark = colorize(colorGreen, "[x]")
		}
		fmt.Printf("%s %s %s\n", mark, colorize(colorCyan, item.ID), item.Label)
	}
	fmt.Printf("\n%d/%d passed\n", state.Passed, state.Total)
}

func init() {
	checklistCmd.AddCommand(checklistListCmd)
	checklistCmd.AddCommand(checklistToggleCmd)
	checklistCmd.AddCommand(checklistResetCmd)
}

// --- proof ---

var proofCmd = &cobra.Command{
	Use:   "proof",
	Short: "Manage proof-of-work links",
}

var proofShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show proof links and ship status",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/proof")
		if err != nil {
			return err
		}

		var result struct {
			Links struct {
				ProjectURL  string `json:"projectUrl"`
				RepoURL     string `json:"repoUrl"`
				DeployedURL string `json:"deployedUrl"`
			} `json:"links"`
			ShipStatus string `json:"shipStatus"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printStatus("Project", "%s", valueOrDash(result.Links.ProjectURL))
		printStatus("Repo", "%s", valueOrDash(result.Links.RepoURL))
		printStatus("Deployed", "%s", valueOrDash(result.Links.DeployedURL))
		printStatus("Ship status", "%s", result.ShipStatus)
		return nil
	},
}

var proofSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save proof links (all three must be valid URLs)",
	RunE: func(cmd *cobra.Command, args []string) error {
		project, _ := cmd.Flags().GetString("project")
		repo, _ := cmd.Flags().GetString("repo")
		deployed, _ := cmd.Flags().GetString("deployed")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		body := map[string]string{
			"projectUrl":  project,
			"repoUrl":     repo,
			"deployedUrl": deployed,
		}
		resp, err := client.put(cmd.Context(), "/proof", body)
		if err != nil {
			return err
		}

		if resp.StatusCode == 422 {
			var result struct {
				Errors map[string]string `json:"errors"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
				resp.Body.Close()
				return err
			}
			resp.Body.Close()
			for field, msg := range result.Errors {
				printError("%s: %s", field, msg)
			}
			return fmt.Errorf("proof links not saved")
		}

		var result map[string]any
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Proof links saved")
		return nil
	},
}

var proofSubmissionCmd = &cobra.Command{
	Use:   "submission",
	Short: "Print the submission text for the saved links",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/proof/submission")
		if err != nil {
			return err
		}

		var result struct {
			Text string `json:"text"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		fmt.Println(result.Text)
		return nil
	},
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	proofSetCmd.Flags().String("project", "", "project page URL")
	proofSetCmd.Flags().String("repo", "", "repository URL")
	proofSetCmd.Flags().String("deployed", "", "deployed app URL")
	proofCmd.AddCommand(proofShowCmd)
	proofCmd.AddCommand(proofSetCmd)
	proofCmd.AddCommand(proofSubmissionCmd)
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keys := config.ShowAll(cfg)
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

var configSetTokenCmd = &cobra.Command{
	Use:   "set-token <token>",
	Short: "Store the API bearer token in the platform secret store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetToken(args[0]); err != nil {
			return err
		}

		printSuccess("API token stored")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetTokenCmd)
}
