package track

import (
	"fmt"
	"testing"
	"time"

	"jobtrack/internal/match"
	"jobtrack/internal/storage"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestStatusStore() (*StatusStore, *storage.MemKV) {
	kv := storage.NewMemKV()
	clock := &fakeClock{now: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)}
	return NewStatusStoreWithClock(kv, clock), kv
}

func TestParseStatus(t *testing.T) {
	for _, s := range AllStatuses {
		got, err := ParseStatus(string(s))
		if err != nil || got != s {
			t.Errorf("ParseStatus(%q) = %q, %v", s, got, err)
		}
	}
	if _, err := ParseStatus("Interviewing"); err == nil {
		t.Error("ParseStatus accepted unknown status")
	}
}

func TestStatusDefaultsToNotApplied(t *testing.T) {
	s, _ := newTestStatusStore()

	if got := s.GetJobStatus(42); got != StatusNotApplied {
		t.Errorf("GetJobStatus on empty store = %q, want %q", got, StatusNotApplied)
	}
}

func TestStatusRoundTrip(t *testing.T) {
	s, _ := newTestStatusStore()

	if err := s.SaveJobStatus(7, StatusApplied); err != nil {
		t.Fatalf("SaveJobStatus: %v", err)
	}
	if got := s.GetJobStatus(7); got != StatusApplied {
		t.Errorf("GetJobStatus = %q, want %q", got, StatusApplied)
	}

	statuses := s.LoadJobStatuses()
	if len(statuses) != 1 || statuses[7] != StatusApplied {
		t.Errorf("LoadJobStatuses = %v", statuses)
	}
}

// TestSaveJobStatusIdempotentByValue: saving the same status twice leaves
// an identical persisted mapping.
func TestSaveJobStatusIdempotentByValue(t *testing.T) {
	s, kv := newTestStatusStore()

	if err := s.SaveJobStatus(7, StatusRejected); err != nil {
		t.Fatalf("SaveJobStatus: %v", err)
	}
	first, _ := kv.Get("jobStatus")

	if err := s.SaveJobStatus(7, StatusRejected); err != nil {
		t.Fatalf("second SaveJobStatus: %v", err)
	}
	second, _ := kv.Get("jobStatus")

	if first != second {
		t.Errorf("repeated save changed mapping: %q -> %q", first, second)
	}
}

func TestMalformedStatusMapTreatedAsEmpty(t *testing.T) {
	s, kv := newTestStatusStore()
	kv.Set("jobStatus", "{not json")

	if got := s.LoadJobStatuses(); len(got) != 0 {
		t.Errorf("malformed map loaded as %v, want empty", got)
	}
	if got := s.GetJobStatus(1); got != StatusNotApplied {
		t.Errorf("GetJobStatus over malformed store = %q", got)
	}

	// The next write recovers the key.
	if err := s.SaveJobStatus(1, StatusSelected); err != nil {
		t.Fatalf("SaveJobStatus after corruption: %v", err)
	}
	if got := s.GetJobStatus(1); got != StatusSelected {
		t.Errorf("GetJobStatus after recovery = %q", got)
	}
}

// TestSetStatusLogsUnconditionally: every call that sets a non-default
// status appends a log entry, even a re-set to the same status.
func TestSetStatusLogsUnconditionally(t *testing.T) {
	s, _ := newTestStatusStore()

	for i := 0; i < 3; i++ {
		if _, err := s.SetStatus(7, "Backend Engineer", "Flipmart", StatusApplied); err != nil {
			t.Fatalf("SetStatus: %v", err)
		}
	}

	updates := s.LoadStatusUpdates()
	if len(updates) != 3 {
		t.Errorf("expected 3 log entries for 3 identical calls, got %d", len(updates))
	}
}

func TestSetStatusNotAppliedIsSilent(t *testing.T) {
	s, _ := newTestStatusStore()

	update, err := s.SetStatus(7, "Backend Engineer", "Flipmart", StatusNotApplied)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if update != nil {
		t.Error("SetStatus(Not Applied) produced a log entry")
	}
	if got := s.LoadStatusUpdates(); len(got) != 0 {
		t.Errorf("log has %d entries, want 0", len(got))
	}
	if got := s.GetJobStatus(7); got != StatusNotApplied {
		t.Errorf("status not persisted: %q", got)
	}
}

// TestStatusLogCap drives 60 loggable changes and expects exactly the 50
// most recent entries, newest first.
func TestStatusLogCap(t *testing.T) {
	kv := storage.NewMemKV()
	clock := &fakeClock{now: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)}
	s := NewStatusStoreWithClock(kv, clock)

	for i := 1; i <= 60; i++ {
		clock.now = clock.now.Add(time.Minute)
		title := fmt.Sprintf("Job %d", i)
		if _, err := s.SetStatus(i, title, "Acme", StatusApplied); err != nil {
			t.Fatalf("SetStatus %d: %v", i, err)
		}
	}

	updates := s.LoadStatusUpdates()
	if len(updates) != 50 {
		t.Fatalf("log length = %d, want 50", len(updates))
	}
	if updates[0].JobID != 60 {
		t.Errorf("newest entry jobID = %d, want 60", updates[0].JobID)
	}
	if updates[49].JobID != 11 {
		t.Errorf("oldest retained entry jobID = %d, want 11", updates[49].JobID)
	}
	for i := 1; i < len(updates); i++ {
		if updates[i].Date.After(updates[i-1].Date) {
			t.Errorf("log not newest-first at index %d", i)
			break
		}
	}
}

func TestSetStatusStampsClockTime(t *testing.T) {
	s, _ := newTestStatusStore()

	update, err := s.SetStatus(3, "SDE Intern", "Cloudlane", StatusSelected)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	want := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	if !update.Date.Equal(want) {
		t.Errorf("update.Date = %v, want %v", update.Date, want)
	}
	if update.ID == "" {
		t.Error("update.ID is empty")
	}
}

// --- preferences ---

func TestPreferencesAbsentVsEmpty(t *testing.T) {
	kv := storage.NewMemKV()
	s := NewPreferencesStore(kv)

	if got := s.Load(); got != nil {
		t.Errorf("Load on empty store = %+v, want nil", got)
	}

	// "Saved but all empty" is a distinct state from "never saved".
	if err := s.Save(match.DefaultPreferences()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := s.Load()
	if got == nil {
		t.Fatal("Load after Save = nil")
	}
	if got.MinMatchScore != 40 {
		t.Errorf("MinMatchScore = %d, want 40", got.MinMatchScore)
	}
}

func TestPreferencesMalformedTreatedAsAbsent(t *testing.T) {
	kv := storage.NewMemKV()
	kv.Set("preferences", "][")
	s := NewPreferencesStore(kv)

	if got := s.Load(); got != nil {
		t.Errorf("malformed preferences loaded as %+v, want nil", got)
	}
}

func TestPreferencesThresholdValidation(t *testing.T) {
	s := NewPreferencesStore(storage.NewMemKV())

	for _, bad := range []int{-1, 101} {
		p := match.DefaultPreferences()
		p.MinMatchScore = bad
		if err := s.Save(p); err == nil {
			t.Errorf("Save accepted minMatchScore %d", bad)
		}
	}
}

func TestPreferencesClear(t *testing.T) {
	kv := storage.NewMemKV()
	s := NewPreferencesStore(kv)

	if err := s.Save(match.DefaultPreferences()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := s.Load(); got != nil {
		t.Errorf("Load after Clear = %+v, want nil", got)
	}
}

// --- saved jobs ---

func TestSavedToggle(t *testing.T) {
	s := NewSavedStore(storage.NewMemKV())

	saved, err := s.Toggle(5)
	if err != nil || !saved {
		t.Fatalf("Toggle(5) = %v, %v; want true, nil", saved, err)
	}
	if !s.IsSaved(5) {
		t.Error("IsSaved(5) = false after save")
	}

	saved, err = s.Toggle(5)
	if err != nil || saved {
		t.Fatalf("second Toggle(5) = %v, %v; want false, nil", saved, err)
	}
	if s.IsSaved(5) {
		t.Error("IsSaved(5) = true after unsave")
	}
}

func TestSavedPreservesOrder(t *testing.T) {
	s := NewSavedStore(storage.NewMemKV())

	for _, id := range []int{9, 3, 7} {
		if _, err := s.Toggle(id); err != nil {
			t.Fatalf("Toggle(%d): %v", id, err)
		}
	}
	got := s.Load()
	want := []int{9, 3, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Load = %v, want %v", got, want)
		}
	}
}
