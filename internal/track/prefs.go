package track

import (
	"encoding/json"
	"fmt"

	"jobtrack/internal/match"
	"jobtrack/internal/storage"
)

const preferencesKey = "preferences"

// PreferencesStore persists the single user preference profile.
type PreferencesStore struct {
	kv storage.KV
}

// NewPreferencesStore creates a PreferencesStore over kv.
func NewPreferencesStore(kv storage.KV) *PreferencesStore {
	return &PreferencesStore{kv: kv}
}

// Load returns the persisted profile, or nil when none was ever saved.
// A corrupt record is treated as absent. Missing fields come back as their
// zero values, so stale records from older versions load cleanly.
func (s *PreferencesStore) Load() *match.Preferences {
	raw, err := s.kv.Get(preferencesKey)
	if err != nil {
		return nil
	}
	var prefs match.Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return nil
	}
	return &prefs
}

// Save validates and persists the profile.
func (s *PreferencesStore) Save(prefs match.Preferences) error {
	if prefs.MinMatchScore < 0 || prefs.MinMatchScore > 100 {
		return fmt.Errorf("minMatchScore %d out of range [0,100]", prefs.MinMatchScore)
	}
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshalling preferences: %w", err)
	}
	return s.kv.Set(preferencesKey, string(data))
}

// Clear removes the persisted profile, returning the tracker to the
// "no preferences set" state.
func (s *PreferencesStore) Clear() error {
	return s.kv.Delete(preferencesKey)
}
