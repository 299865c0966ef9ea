package digest

import (
	"strings"
	"testing"
	"time"

	"jobtrack/internal/dataset"
	"jobtrack/internal/match"
	"jobtrack/internal/storage"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func testPrefs() *match.Preferences {
	return &match.Preferences{
		RoleKeywords:  []string{"engineer"},
		Skills:        []string{"Go"},
		MinMatchScore: 40,
	}
}

func newTestStore(topN int) (*Store, *storage.MemKV, *fakeClock) {
	kv := storage.NewMemKV()
	clock := &fakeClock{now: time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)}
	return NewStoreWithClock(kv, clock, topN), kv, clock
}

func TestGenerateCapsAtTopN(t *testing.T) {
	s, _, _ := newTestStore(0)

	entries, err := s.Generate(dataset.Jobs(), testPrefs())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(entries) > TopN {
		t.Errorf("digest has %d entries, cap is %d", len(entries), TopN)
	}
}

func TestGenerateSmallDatasetReturnsAll(t *testing.T) {
	s, _, _ := newTestStore(0)

	jobs := dataset.Jobs()[:4]
	entries, err := s.Generate(jobs, testPrefs())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("digest has %d entries, want all 4", len(entries))
	}
}

func TestGenerateEmptyDataset(t *testing.T) {
	s, _, _ := newTestStore(0)

	entries, err := s.Generate(nil, testPrefs())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("digest has %d entries, want 0", len(entries))
	}

	// Even an empty digest is a generated snapshot, distinct from "never
	// generated".
	got, ok := s.LoadToday()
	if !ok {
		t.Fatal("empty digest not persisted")
	}
	if len(got) != 0 {
		t.Errorf("persisted empty digest has %d entries", len(got))
	}
}

func TestGenerateOrdering(t *testing.T) {
	jobs := []dataset.Job{
		{ID: 1, Title: "Backend Engineer", Description: "x", PostedDaysAgo: 5},
		{ID: 2, Title: "Backend Engineer", Description: "x", PostedDaysAgo: 3},
		{ID: 3, Title: "Gardener", Description: "x", PostedDaysAgo: 9},
	}
	prefs := &match.Preferences{RoleKeywords: []string{"backend"}, MinMatchScore: 40}

	s, _, _ := newTestStore(0)
	entries, err := s.Generate(jobs, prefs)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Jobs 1 and 2 tie on score (title keyword, 25 each, no recency bonus);
	// job 2 is fresher and wins the tie. Job 3 scores 0.
	wantOrder := []int{2, 1, 3}
	for i, want := range wantOrder {
		if entries[i].ID != want {
			t.Fatalf("digest order = %v, want %v", entryIDs(entries), wantOrder)
		}
	}
}

func entryIDs(entries []match.ScoredJob) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestGenerateRequiresPreferences(t *testing.T) {
	s, _, _ := newTestStore(0)

	if _, err := s.Generate(dataset.Jobs(), nil); err != ErrNoPreferences {
		t.Errorf("Generate(nil prefs) error = %v, want ErrNoPreferences", err)
	}
}

func TestRegenerateOverwritesSameDay(t *testing.T) {
	s, _, clock := newTestStore(0)

	if _, err := s.Generate(dataset.Jobs(), testPrefs()); err != nil {
		t.Fatalf("first Generate: %v", err)
	}

	narrower := &match.Preferences{RoleKeywords: []string{"gardener"}, MinMatchScore: 40}
	second, err := s.Generate(dataset.Jobs(), narrower)
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}

	got, ok := s.LoadForDate(DateKey(clock.now))
	if !ok {
		t.Fatal("digest missing after regenerate")
	}
	if len(got) != len(second) || got[0].MatchScore != second[0].MatchScore {
		t.Error("regenerate did not overwrite the day's snapshot")
	}
}

func TestSnapshotsIndependentPerDate(t *testing.T) {
	s, _, clock := newTestStore(0)

	if _, err := s.Generate(dataset.Jobs(), testPrefs()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	day1 := DateKey(clock.now)

	clock.now = clock.now.Add(24 * time.Hour)
	if _, ok := s.LoadToday(); ok {
		t.Error("next day unexpectedly has a digest")
	}
	if _, ok := s.LoadForDate(day1); !ok {
		t.Error("prior day's digest no longer addressable")
	}
}

func TestDatesListsSnapshots(t *testing.T) {
	s, _, clock := newTestStore(0)

	dates, err := s.Dates()
	if err != nil {
		t.Fatalf("Dates: %v", err)
	}
	if len(dates) != 0 {
		t.Fatalf("expected no snapshots, got %v", dates)
	}

	if _, err := s.Generate(dataset.Jobs(), testPrefs()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	day1 := DateKey(clock.now)

	clock.now = clock.now.Add(24 * time.Hour)
	if _, err := s.Generate(dataset.Jobs(), testPrefs()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	day2 := DateKey(clock.now)

	dates, err = s.Dates()
	if err != nil {
		t.Fatalf("Dates: %v", err)
	}
	if len(dates) != 2 || dates[0] != day1 || dates[1] != day2 {
		t.Fatalf("Dates = %v, want [%s %s]", dates, day1, day2)
	}
}

func TestLoadForDateMalformed(t *testing.T) {
	s, kv, clock := newTestStore(0)
	kv.Set("digest:"+DateKey(clock.now), "{{")

	if _, ok := s.LoadToday(); ok {
		t.Error("corrupt snapshot reported as generated")
	}
}

func TestDateKeyUTC(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// 01:30 IST on Sept 1 is still Aug 31 in UTC.
	ts := time.Date(2026, 9, 1, 1, 30, 0, 0, ist)
	if got := DateKey(ts); got != "2026-08-31" {
		t.Errorf("DateKey = %q, want 2026-08-31", got)
	}
}

func TestFormatText(t *testing.T) {
	entries := []match.ScoredJob{
		{Job: dataset.Job{Title: "Backend Engineer", Company: "Flipmart", Location: "Bangalore", Experience: "Mid", ApplyURL: "https://example.com/a"}, MatchScore: 70},
	}
	text := FormatText(entries, time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC))

	for _, want := range []string{"9AM Digest", "1. Backend Engineer — Flipmart", "Match: 70%", "https://example.com/a"} {
		if !strings.Contains(text, want) {
			t.Errorf("digest text missing %q:\n%s", want, text)
		}
	}
}
