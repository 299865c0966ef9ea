package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"jobtrack/internal/checklist"
	"jobtrack/internal/dataset"
	"jobtrack/internal/digest"
	"jobtrack/internal/match"
	"jobtrack/internal/track"
	"jobtrack/internal/tracker"
)

const maxRequestBodySize = 1 << 20 // 1MB

// AppDeps holds dependencies for the HTTP API.
type AppDeps struct {
	Tracker   *tracker.Service
	Checklist *checklist.Store
	Proof     *checklist.ProofStore
	Token     string // empty disables auth
}

// NewAppHandler returns the jobtrack REST API. Every endpoint except
// /health requires a bearer token when one is configured.
func NewAppHandler(deps AppDeps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		if deps.Token != "" {
			r.Use(BearerAuth(deps.Token))
		}

		r.Get("/jobs", handleListJobs(deps))
		r.Get("/jobs/filters", handleFilterOptions)
		r.Get("/jobs/{id}", handleGetJob(deps))
		r.Put("/jobs/{id}/status", handleSetStatus(deps))

		r.Get("/preferences", handleGetPreferences(deps))
		r.Put("/preferences", handlePutPreferences(deps))
		r.Delete("/preferences", handleDeletePreferences(deps))

		r.Get("/status-updates", handleStatusUpdates(deps))

		r.Get("/saved", handleListSaved(deps))
		r.Post("/saved/{id}", handleToggleSaved(deps))

		r.Post("/digest", handleGenerateDigest(deps))
		r.Get("/digest", handleGetDigest(deps))
		r.Get("/digest/dates", handleDigestDates(deps))

		r.Get("/checklist", handleGetChecklist(deps))
		r.Post("/checklist/{id}/toggle", handleToggleChecklist(deps))
		r.Delete("/checklist", handleResetChecklist(deps))

		r.Get("/proof", handleGetProof(deps))
		r.Put("/proof", handlePutProof(deps))
		r.Post("/proof/draft", handleDraftProof(deps))
		r.Get("/proof/submission", handleProofSubmission(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleListJobs(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := match.Filters{
			Keyword:    q.Get("q"),
			Location:   q.Get("location"),
			Mode:       q.Get("mode"),
			Experience: q.Get("experience"),
			Source:     q.Get("source"),
			Status:     q.Get("status"),
			Sort:       q.Get("sort"),
		}
		showOnlyMatches := q.Get("matches") == "true" || q.Get("matches") == "1"

		jobs := deps.Tracker.View(f, showOnlyMatches)
		if jobs == nil {
			jobs = []match.ScoredJob{}
		}
		writeJSON(w, jobs)
	}
}

// handleFilterOptions returns the distinct values the UI can filter on.
func handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"locations":   dataset.Locations(),
		"modes":       dataset.Modes(),
		"experiences": dataset.Experiences(),
		"sources":     dataset.Sources(),
		"statuses":    track.AllStatuses,
		"sorts":       []string{match.SortLatest, match.SortScore, match.SortSalary},
	})
}

func handleGetJob(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := jobIDParam(r)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid job id")
			return
		}

		job, ok := deps.Tracker.Job(id)
		if !ok {
			httpError(w, http.StatusNotFound, "not_found", "job %d not found", id)
			return
		}

		writeJSON(w, map[string]any{
			"job":    job,
			"status": deps.Tracker.Status(id),
			"saved":  deps.Tracker.IsSaved(id),
		})
	}
}

func handleSetStatus(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := jobIDParam(r)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid job id")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		status, err := track.ParseStatus(req.Status)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}

		update, err := deps.Tracker.SetStatus(id, status)
		if errors.Is(err, tracker.ErrUnknownJob) {
			httpError(w, http.StatusNotFound, "not_found", "job %d not found", id)
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to set status: %v", err)
			return
		}

		writeJSON(w, map[string]any{
			"id":     id,
			"status": status,
			"update": update, // null when the status is "Not Applied"
		})
	}
}

func handleGetPreferences(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := deps.Tracker.Preferences()
		if p == nil {
			httpError(w, http.StatusNotFound, "not_found", "no preferences saved")
			return
		}
		writeJSON(w, p)
	}
}

func handlePutPreferences(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		p := match.DefaultPreferences()
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		if err := deps.Tracker.SetPreferences(p); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}
		writeJSON(w, p)
	}
}

func handleDeletePreferences(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Tracker.ClearPreferences(); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to clear preferences: %v", err)
			return
		}
		writeJSON(w, map[string]string{"status": "cleared"})
	}
}

func handleStatusUpdates(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntParam(r, "limit", 50, 50)
		updates := deps.Tracker.StatusUpdates(limit)
		if updates == nil {
			updates = []track.StatusUpdate{}
		}
		writeJSON(w, updates)
	}
}

func handleListSaved(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saved := deps.Tracker.SavedJobs()
		if saved == nil {
			saved = []match.ScoredJob{}
		}
		writeJSON(w, saved)
	}
}

func handleToggleSaved(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := jobIDParam(r)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid job id")
			return
		}

		nowSaved, err := deps.Tracker.ToggleSaved(id)
		if errors.Is(err, tracker.ErrUnknownJob) {
			httpError(w, http.StatusNotFound, "not_found", "job %d not found", id)
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to toggle: %v", err)
			return
		}

		writeJSON(w, map[string]any{"id": id, "saved": nowSaved})
	}
}

func handleGenerateDigest(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := deps.Tracker.GenerateDigest()
		if errors.Is(err, digest.ErrNoPreferences) {
			httpError(w, http.StatusConflict, "invalid_request_error", "set preferences before generating a digest")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to generate digest: %v", err)
			return
		}

		writeJSON(w, map[string]any{
			"date": digest.DateKey(time.Now()),
			"jobs": entries,
		})
	}
}

func handleGetDigest(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		var (
			entries []match.ScoredJob
			ok      bool
		)
		if date == "" {
			date = digest.DateKey(time.Now())
			entries, ok = deps.Tracker.TodayDigest()
		} else {
			entries, ok = deps.Tracker.DigestForDate(date)
		}
		if !ok {
			httpError(w, http.StatusNotFound, "not_found", "no digest for %s", date)
			return
		}

		writeJSON(w, map[string]any{"date": date, "jobs": entries})
	}
}

func handleDigestDates(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dates, err := deps.Tracker.DigestDates()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "internal_error", "listing digests: %v", err)
			return
		}
		if dates == nil {
			dates = []string{}
		}
		writeJSON(w, map[string]any{"dates": dates})
	}
}

func handleGetChecklist(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := deps.Checklist.Load()
		writeJSON(w, map[string]any{
			"items":  items,
			"passed": checklist.PassedCount(items),
			"total":  len(items),
		})
	}
}

func handleToggleChecklist(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		items, err := deps.Checklist.Toggle(id)
		if err != nil {
			httpError(w, http.StatusNotFound, "not_found", "%v", err)
			return
		}
		writeJSON(w, map[string]any{
			"items":  items,
			"passed": checklist.PassedCount(items),
			"total":  len(items),
		})
	}
}

func handleResetChecklist(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Checklist.Reset(); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to reset checklist: %v", err)
			return
		}
		writeJSON(w, map[string]string{"status": "reset"})
	}
}

func handleGetProof(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		links := deps.Proof.Load()
		items := deps.Checklist.Load()
		writeJSON(w, map[string]any{
			"links":      links,
			"shipStatus": checklist.ShipStatus(links, checklist.AllPassed(items)),
		})
	}
}

func handlePutProof(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var links checklist.Links
		if err := json.NewDecoder(r.Body).Decode(&links); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		fieldErrs, err := deps.Proof.Save(links)
		if len(fieldErrs) > 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]any{"errors": fieldErrs})
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save proof links: %v", err)
			return
		}

		writeJSON(w, map[string]any{"links": links})
	}
}

func handleDraftProof(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var links checklist.Links
		if err := json.NewDecoder(r.Body).Decode(&links); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		if err := deps.Proof.SaveDraft(links); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save draft: %v", err)
			return
		}
		writeJSON(w, map[string]any{"links": links})
	}
}

func handleProofSubmission(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		links := deps.Proof.Load()
		if errs := checklist.Validate(links); len(errs) > 0 {
			httpError(w, http.StatusConflict, "invalid_request_error", "proof links incomplete")
			return
		}
		writeJSON(w, map[string]string{"text": checklist.SubmissionText(links)})
	}
}

func jobIDParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func parseIntParam(r *http.Request, key string, defaultVal, maxVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
