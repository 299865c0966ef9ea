// Package digest generates and persists the daily top-N digest: the
// highest-scoring jobs across the full dataset, snapshotted once per
// calendar date. The "9AM digest" is user-triggered; there is no scheduler.
package digest

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"jobtrack/internal/dataset"
	"jobtrack/internal/match"
	"jobtrack/internal/storage"
	"jobtrack/internal/track"
)

// ErrNoPreferences is returned when a digest is requested before the user
// has saved a preference profile. Not a failure: the caller renders a
// call-to-action instead.
var ErrNoPreferences = errors.New("no preferences set")

const (
	keyPrefix = "digest:"

	// TopN is the digest size cap.
	TopN = 10
)

// Store generates and persists per-date digest snapshots.
type Store struct {
	kv    storage.KV
	clock track.Clock
	topN  int
}

// NewStore creates a Store with the default digest size.
func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv, clock: clockFunc(time.Now), topN: TopN}
}

// NewStoreWithClock creates a Store with a custom clock and size (for
// testing and the digest.top_n config override). topN <= 0 falls back to
// the default.
func NewStoreWithClock(kv storage.KV, clock track.Clock, topN int) *Store {
	if topN <= 0 {
		topN = TopN
	}
	return &Store{kv: kv, clock: clock, topN: topN}
}

// NewStoreWithTopN creates a Store keeping the top n jobs per digest.
func NewStoreWithTopN(kv storage.KV, topN int) *Store {
	return NewStoreWithClock(kv, clockFunc(time.Now), topN)
}

type clockFunc func() time.Time

func (f clockFunc) Now() time.Time { return f() }

// DateKey returns the stable storage key date component for t. UTC keeps
// the key independent of the host timezone.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Generate scores the full dataset against prefs (UI filters are ignored),
// keeps the top entries by score descending with postedDaysAgo ascending as
// the tie-break, persists the snapshot under today's date key, and returns
// it. Regenerating on the same date overwrites that day's snapshot.
func (s *Store) Generate(jobs []dataset.Job, prefs *match.Preferences) ([]match.ScoredJob, error) {
	if prefs == nil {
		return nil, ErrNoPreferences
	}

	scored := match.ScoreAll(jobs, prefs)
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].MatchScore != scored[j].MatchScore {
			return scored[i].MatchScore > scored[j].MatchScore
		}
		return scored[i].PostedDaysAgo < scored[j].PostedDaysAgo
	})
	if len(scored) > s.topN {
		scored = scored[:s.topN]
	}

	data, err := json.Marshal(scored)
	if err != nil {
		return nil, fmt.Errorf("marshalling digest: %w", err)
	}
	if err := s.kv.Set(keyPrefix+DateKey(s.clock.Now()), string(data)); err != nil {
		return nil, fmt.Errorf("persisting digest: %w", err)
	}
	return scored, nil
}

// LoadForDate returns the snapshot stored under date (YYYY-MM-DD). The
// second result distinguishes "not yet generated" (false) from a generated
// empty digest (true, empty slice). A corrupt snapshot reads as not
// generated.
func (s *Store) LoadForDate(date string) ([]match.ScoredJob, bool) {
	raw, err := s.kv.Get(keyPrefix + date)
	if err != nil {
		return nil, false
	}
	var entries []match.ScoredJob
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false
	}
	if entries == nil {
		entries = []match.ScoredJob{}
	}
	return entries, true
}

// LoadToday returns today's snapshot, if any.
func (s *Store) LoadToday() ([]match.ScoredJob, bool) {
	return s.LoadForDate(DateKey(s.clock.Now()))
}

// Dates lists the dates with a persisted snapshot, oldest first.
func (s *Store) Dates() ([]string, error) {
	keys, err := s.kv.Keys(keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing digest snapshots: %w", err)
	}
	dates := make([]string, 0, len(keys))
	for _, k := range keys {
		dates = append(dates, strings.TrimPrefix(k, keyPrefix))
	}
	return dates, nil
}

// FormatText renders the digest as the plain-text email body used by the
// copy-to-clipboard and mailto flows.
func FormatText(entries []match.ScoredJob, date time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Top %d Jobs For You — 9AM Digest\n", TopN)
	fmt.Fprintf(&b, "%s\n", date.Format("Monday, 2 January 2006"))
	b.WriteString(strings.Repeat("─", 40) + "\n\n")
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, e.Title, e.Company)
		fmt.Fprintf(&b, "   %s · %s · Match: %d%%\n", e.Location, e.Experience, e.MatchScore)
		fmt.Fprintf(&b, "   %s\n\n", e.ApplyURL)
	}
	b.WriteString(strings.Repeat("─", 40) + "\n")
	b.WriteString("This digest was generated based on your preferences.")
	return b.String()
}
