// Package tracker composes the dataset, the scoring and filter/sort
// engines, and the persistence stores into the single service the API, CLI,
// and MCP surfaces call. Derived views are recomputed on read: the data
// flow is a strict one-way pipeline from jobs to scores to filtered view,
// so no observer graph is needed.
package tracker

import (
	"errors"
	"fmt"

	"jobtrack/internal/dataset"
	"jobtrack/internal/digest"
	"jobtrack/internal/match"
	"jobtrack/internal/storage"
	"jobtrack/internal/track"
)

// ErrUnknownJob is returned for job ids outside the dataset.
var ErrUnknownJob = errors.New("unknown job id")

// Service is the tracker façade. Safe for the single-writer usage jobtrack
// has: one process, one user, synchronous calls.
type Service struct {
	jobs     []dataset.Job
	prefs    *track.PreferencesStore
	statuses *track.StatusStore
	saved    *track.SavedStore
	digests  *digest.Store
}

// New creates a Service over the embedded dataset and kv.
func New(kv storage.KV) *Service {
	return &Service{
		jobs:     dataset.Jobs(),
		prefs:    track.NewPreferencesStore(kv),
		statuses: track.NewStatusStore(kv),
		saved:    track.NewSavedStore(kv),
		digests:  digest.NewStore(kv),
	}
}

// NewWithDeps creates a Service with explicit jobs and stores (for tests
// and for the digest.top_n config override).
func NewWithDeps(jobs []dataset.Job, prefs *track.PreferencesStore, statuses *track.StatusStore, saved *track.SavedStore, digests *digest.Store) *Service {
	return &Service{jobs: jobs, prefs: prefs, statuses: statuses, saved: saved, digests: digests}
}

// --- preferences ---

// Preferences returns the saved profile, or nil when never set.
func (s *Service) Preferences() *match.Preferences {
	return s.prefs.Load()
}

// SetPreferences validates and persists the profile.
func (s *Service) SetPreferences(p match.Preferences) error {
	return s.prefs.Save(p)
}

// ClearPreferences removes the saved profile.
func (s *Service) ClearPreferences() error {
	return s.prefs.Clear()
}

// HasPreferences reports whether a profile with matching signal exists.
// It gates the "show only matches" toggle and the digest.
func (s *Service) HasPreferences() bool {
	return s.prefs.Load().Active()
}

// --- jobs ---

// ScoredJobs scores the full dataset against the current profile. With no
// profile saved every score is 0.
func (s *Service) ScoredJobs() []match.ScoredJob {
	return match.ScoreAll(s.jobs, s.prefs.Load())
}

// View returns the filtered, sorted job list for the current profile and
// statuses.
func (s *Service) View(f match.Filters, showOnlyMatches bool) []match.ScoredJob {
	prefs := s.prefs.Load()
	scored := match.ScoreAll(s.jobs, prefs)
	return match.FilterSort(scored, f, s.statusStrings(), showOnlyMatches, prefs)
}

// Job returns a single scored job.
func (s *Service) Job(id int) (match.ScoredJob, bool) {
	j, ok := dataset.ByID(id)
	if !ok {
		return match.ScoredJob{}, false
	}
	prefs := s.prefs.Load()
	score := 0
	if prefs != nil {
		score = match.Score(j, *prefs)
	}
	return match.ScoredJob{Job: j, MatchScore: score, Tier: match.Tier(score)}, true
}

// --- status ---

// SetStatus records status for the given job and logs the change when the
// target status is not "Not Applied".
func (s *Service) SetStatus(jobID int, status track.Status) (*track.StatusUpdate, error) {
	j, ok := dataset.ByID(jobID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownJob, jobID)
	}
	return s.statuses.SetStatus(jobID, j.Title, j.Company, status)
}

// Status returns the resolved status for jobID.
func (s *Service) Status(jobID int) track.Status {
	return s.statuses.GetJobStatus(jobID)
}

// Statuses returns the full persisted status mapping.
func (s *Service) Statuses() map[int]track.Status {
	return s.statuses.LoadJobStatuses()
}

// StatusUpdates returns the change log, newest first, truncated to limit
// when limit > 0.
func (s *Service) StatusUpdates(limit int) []track.StatusUpdate {
	updates := s.statuses.LoadStatusUpdates()
	if limit > 0 && len(updates) > limit {
		updates = updates[:limit]
	}
	return updates
}

func (s *Service) statusStrings() map[int]string {
	statuses := s.statuses.LoadJobStatuses()
	out := make(map[int]string, len(statuses))
	for id, st := range statuses {
		out[id] = string(st)
	}
	return out
}

// --- saved jobs ---

// ToggleSaved flips the saved state for jobID and reports the new state.
func (s *Service) ToggleSaved(jobID int) (bool, error) {
	if _, ok := dataset.ByID(jobID); !ok {
		return false, fmt.Errorf("%w: %d", ErrUnknownJob, jobID)
	}
	return s.saved.Toggle(jobID)
}

// SavedJobs returns the saved jobs, scored, in save order.
func (s *Service) SavedJobs() []match.ScoredJob {
	var out []match.ScoredJob
	for _, id := range s.saved.Load() {
		if j, ok := s.Job(id); ok {
			out = append(out, j)
		}
	}
	return out
}

// IsSaved reports whether jobID is saved.
func (s *Service) IsSaved(jobID int) bool {
	return s.saved.IsSaved(jobID)
}

// --- digest ---

// GenerateDigest snapshots today's top matches. Returns
// digest.ErrNoPreferences when no profile is saved.
func (s *Service) GenerateDigest() ([]match.ScoredJob, error) {
	return s.digests.Generate(s.jobs, s.prefs.Load())
}

// TodayDigest returns today's snapshot; ok is false when not yet generated.
func (s *Service) TodayDigest() ([]match.ScoredJob, bool) {
	return s.digests.LoadToday()
}

// DigestForDate returns the snapshot stored under a YYYY-MM-DD date key.
func (s *Service) DigestForDate(date string) ([]match.ScoredJob, bool) {
	return s.digests.LoadForDate(date)
}

// DigestDates lists the dates with a stored snapshot, oldest first.
func (s *Service) DigestDates() ([]string, error) {
	return s.digests.Dates()
}
