// Package track persists user tracking state (preferences, per-job
// application statuses, the status-change log, and saved jobs) behind the
// storage.KV port. Every load is total: a malformed or missing value is
// treated as absent and replaced with defaults, never surfaced as an error.
package track

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"jobtrack/internal/storage"
)

// Status is the user's self-reported application stage for a job.
type Status string

const (
	StatusNotApplied Status = "Not Applied"
	StatusApplied    Status = "Applied"
	StatusRejected   Status = "Rejected"
	StatusSelected   Status = "Selected"
)

// AllStatuses lists every status in display order.
var AllStatuses = []Status{StatusNotApplied, StatusApplied, StatusRejected, StatusSelected}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusNotApplied, StatusApplied, StatusRejected, StatusSelected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// StatusUpdate is one entry in the status-change log. An entry is created
// only when a status is set to something other than "Not Applied".
type StatusUpdate struct {
	ID       string    `json:"id"`
	JobID    int       `json:"jobId"`
	JobTitle string    `json:"jobTitle"`
	Company  string    `json:"company"`
	Status   Status    `json:"status"`
	Date     time.Time `json:"date"`
}

const (
	statusKey  = "jobStatus"
	updatesKey = "statusUpdates"

	// maxStatusUpdates caps the log; older entries are discarded.
	maxStatusUpdates = 50
)

// StatusStore persists per-job statuses and the capped status-update log.
type StatusStore struct {
	kv    storage.KV
	clock Clock
}

// NewStatusStore creates a StatusStore using wall-clock time for log entries.
func NewStatusStore(kv storage.KV) *StatusStore {
	return &StatusStore{kv: kv, clock: realClock{}}
}

// NewStatusStoreWithClock creates a StatusStore with a custom clock (for testing).
func NewStatusStoreWithClock(kv storage.KV, clock Clock) *StatusStore {
	return &StatusStore{kv: kv, clock: clock}
}

// LoadJobStatuses returns the persisted jobID → status mapping. Absent or
// malformed state yields an empty map.
func (s *StatusStore) LoadJobStatuses() map[int]Status {
	raw, err := s.kv.Get(statusKey)
	if err != nil {
		return map[int]Status{}
	}
	var statuses map[int]Status
	if err := json.Unmarshal([]byte(raw), &statuses); err != nil || statuses == nil {
		return map[int]Status{}
	}
	return statuses
}

// SaveJobStatus records status for jobID via read-modify-write of the full
// mapping.
func (s *StatusStore) SaveJobStatus(jobID int, status Status) error {
	statuses := s.LoadJobStatuses()
	statuses[jobID] = status
	data, err := json.Marshal(statuses)
	if err != nil {
		return fmt.Errorf("marshalling job statuses: %w", err)
	}
	return s.kv.Set(statusKey, string(data))
}

// GetJobStatus returns the status for jobID, defaulting to "Not Applied".
func (s *StatusStore) GetJobStatus(jobID int) Status {
	if st, ok := s.LoadJobStatuses()[jobID]; ok && st != "" {
		return st
	}
	return StatusNotApplied
}

// LoadStatusUpdates returns the status-change log, newest first. Absent or
// malformed state yields an empty log.
func (s *StatusStore) LoadStatusUpdates() []StatusUpdate {
	raw, err := s.kv.Get(updatesKey)
	if err != nil {
		return nil
	}
	var updates []StatusUpdate
	if err := json.Unmarshal([]byte(raw), &updates); err != nil {
		return nil
	}
	return updates
}

// AddStatusUpdate prepends update to the log and truncates it to the most
// recent entries.
func (s *StatusStore) AddStatusUpdate(update StatusUpdate) error {
	updates := append([]StatusUpdate{update}, s.LoadStatusUpdates()...)
	if len(updates) > maxStatusUpdates {
		updates = updates[:maxStatusUpdates]
	}
	data, err := json.Marshal(updates)
	if err != nil {
		return fmt.Errorf("marshalling status updates: %w", err)
	}
	return s.kv.Set(updatesKey, string(data))
}

// SetStatus persists the status and, when the target status is not
// "Not Applied", appends a log entry. The log entry is appended on every
// such call, including re-sets to the current status; setting back to
// "Not Applied" is silent. Returns the created entry, or nil when the call
// was not loggable.
func (s *StatusStore) SetStatus(jobID int, jobTitle, company string, status Status) (*StatusUpdate, error) {
	if err := s.SaveJobStatus(jobID, status); err != nil {
		return nil, err
	}
	if status == StatusNotApplied {
		return nil, nil
	}
	update := StatusUpdate{
		ID:       uuid.New().String(),
		JobID:    jobID,
		JobTitle: jobTitle,
		Company:  company,
		Status:   status,
		Date:     s.clock.Now().UTC(),
	}
	if err := s.AddStatusUpdate(update); err != nil {
		return nil, err
	}
	return &update, nil
}
