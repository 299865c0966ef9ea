package track

import (
	"encoding/json"
	"fmt"

	"jobtrack/internal/storage"
)

const savedKey = "savedJobs"

// SavedStore persists the set of saved job IDs, independent of status.
type SavedStore struct {
	kv storage.KV
}

// NewSavedStore creates a SavedStore over kv.
func NewSavedStore(kv storage.KV) *SavedStore {
	return &SavedStore{kv: kv}
}

// Load returns saved job IDs in the order they were saved. Absent or
// malformed state yields an empty list.
func (s *SavedStore) Load() []int {
	raw, err := s.kv.Get(savedKey)
	if err != nil {
		return nil
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	return ids
}

// Toggle flips the saved state for jobID and reports the new state.
func (s *SavedStore) Toggle(jobID int) (bool, error) {
	ids := s.Load()
	next := make([]int, 0, len(ids)+1)
	removed := false
	for _, id := range ids {
		if id == jobID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		next = append(next, jobID)
	}

	data, err := json.Marshal(next)
	if err != nil {
		return false, fmt.Errorf("marshalling saved jobs: %w", err)
	}
	if err := s.kv.Set(savedKey, string(data)); err != nil {
		return false, err
	}
	return !removed, nil
}

// IsSaved reports whether jobID is currently saved.
func (s *SavedStore) IsSaved(jobID int) bool {
	for _, id := range s.Load() {
		if id == jobID {
			return true
		}
	}
	return false
}
