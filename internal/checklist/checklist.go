// Package checklist implements the ship-readiness gate: a fixed manual test
// checklist plus the proof-of-work submission links. Both persist through
// the storage.KV port and tolerate stale or corrupt state.
package checklist

import (
	"encoding/json"
	"fmt"

	"jobtrack/internal/storage"
)

// Item is one manual verification step.
type Item struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Hint    string `json:"hint"`
	Checked bool   `json:"checked"`
}

// defaultItems is the canonical checklist. Persisted state carries only the
// checked flags; labels and hints always come from here so wording updates
// reach existing installs.
var defaultItems = []Item{
	{ID: "prefs-persist", Label: "Preferences persist after restart", Hint: "Set preferences, restart, and verify they remain."},
	{ID: "match-score", Label: "Match score calculates correctly", Hint: "Check a job with known criteria and verify the score."},
	{ID: "show-matches", Label: `"Show only matches" toggle works`, Hint: "Toggle the filter and confirm only matching jobs appear."},
	{ID: "save-job", Label: "Save job persists after restart", Hint: "Save a job, restart, and confirm it's still saved."},
	{ID: "apply-url", Label: "Apply URL is reachable", Hint: "Open a job's apply URL and verify it resolves."},
	{ID: "status-persist", Label: "Status update persists after restart", Hint: "Change a job status, restart, and verify it sticks."},
	{ID: "status-filter", Label: "Status filter works correctly", Hint: "Filter by a status and confirm only those jobs show."},
	{ID: "digest-top10", Label: "Digest generates top 10 by score", Hint: "Generate the digest and verify 10 jobs sorted by score."},
	{ID: "digest-persist", Label: "Digest persists for the day", Hint: "Generate the digest, come back later the same day — should stay."},
	{ID: "log-capped", Label: "Status log keeps the latest 50 entries", Hint: "Drive many status changes and check the log length."},
}

const checklistKey = "testChecklist"

// Store persists checklist state.
type Store struct {
	kv storage.KV
}

// NewStore creates a checklist Store over kv.
func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// persistedItem is the stored shape: id plus checked flag only.
type persistedItem struct {
	ID      string `json:"id"`
	Checked bool   `json:"checked"`
}

// Load returns the checklist, merging persisted checked flags into the
// current defaults. Unknown persisted ids are dropped; new default items
// start unchecked. Malformed state loads as all-unchecked.
func (s *Store) Load() []Item {
	checked := map[string]bool{}
	if raw, err := s.kv.Get(checklistKey); err == nil {
		var persisted []persistedItem
		if err := json.Unmarshal([]byte(raw), &persisted); err == nil {
			for _, p := range persisted {
				checked[p.ID] = p.Checked
			}
		}
	}

	items := make([]Item, len(defaultItems))
	copy(items, defaultItems)
	for i := range items {
		items[i].Checked = checked[items[i].ID]
	}
	return items
}

// Toggle flips the checked state of the item with the given id.
func (s *Store) Toggle(id string) ([]Item, error) {
	items := s.Load()
	found := false
	for i := range items {
		if items[i].ID == id {
			items[i].Checked = !items[i].Checked
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("unknown checklist item %q", id)
	}
	if err := s.save(items); err != nil {
		return nil, err
	}
	return items, nil
}

// Reset unchecks every item.
func (s *Store) Reset() error {
	return s.kv.Delete(checklistKey)
}

func (s *Store) save(items []Item) error {
	persisted := make([]persistedItem, len(items))
	for i, it := range items {
		persisted[i] = persistedItem{ID: it.ID, Checked: it.Checked}
	}
	data, err := json.Marshal(persisted)
	if err != nil {
		return fmt.Errorf("marshalling checklist: %w", err)
	}
	return s.kv.Set(checklistKey, string(data))
}

// PassedCount returns how many items are checked.
func PassedCount(items []Item) int {
	n := 0
	for _, it := range items {
		if it.Checked {
			n++
		}
	}
	return n
}

// AllPassed reports whether every item is checked.
func AllPassed(items []Item) bool {
	return PassedCount(items) == len(items)
}
