package tracker

import (
	"testing"

	"jobtrack/internal/dataset"
	"jobtrack/internal/digest"
	"jobtrack/internal/match"
	"jobtrack/internal/storage"
	"jobtrack/internal/track"
)

func newTestService() *Service {
	kv := storage.NewMemKV()
	return New(kv)
}

func TestScoredJobsZeroWithoutPreferences(t *testing.T) {
	s := newTestService()

	for _, j := range s.ScoredJobs() {
		if j.MatchScore != 0 {
			t.Fatalf("job %d scored %d before preferences saved", j.ID, j.MatchScore)
		}
	}
	if s.HasPreferences() {
		t.Error("HasPreferences on fresh store")
	}
}

func TestSetPreferencesActivatesScoring(t *testing.T) {
	s := newTestService()

	prefs := match.DefaultPreferences()
	prefs.RoleKeywords = []string{"backend"}
	if err := s.SetPreferences(prefs); err != nil {
		t.Fatalf("SetPreferences: %v", err)
	}
	if !s.HasPreferences() {
		t.Error("HasPreferences false after save")
	}

	any := false
	for _, j := range s.ScoredJobs() {
		if j.MatchScore > 0 {
			any = true
			break
		}
	}
	if !any {
		t.Error("no job scored above 0 after saving a backend keyword")
	}
}

func TestViewRecomputesOnStatusWrite(t *testing.T) {
	s := newTestService()
	jobs := dataset.Jobs()
	target := jobs[0].ID

	before := s.View(match.Filters{Status: string(track.StatusApplied)}, false)
	if len(before) != 0 {
		t.Fatalf("expected no Applied jobs, got %d", len(before))
	}

	if _, err := s.SetStatus(target, track.StatusApplied); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	after := s.View(match.Filters{Status: string(track.StatusApplied)}, false)
	if len(after) != 1 || after[0].ID != target {
		t.Errorf("view after status write = %v", after)
	}
}

func TestSetStatusUnknownJob(t *testing.T) {
	s := newTestService()

	if _, err := s.SetStatus(999999, track.StatusApplied); err == nil {
		t.Error("SetStatus accepted unknown job id")
	}
}

func TestSavedJobsScoredInSaveOrder(t *testing.T) {
	s := newTestService()
	jobs := dataset.Jobs()

	for _, idx := range []int{2, 0} {
		if _, err := s.ToggleSaved(jobs[idx].ID); err != nil {
			t.Fatalf("ToggleSaved: %v", err)
		}
	}

	saved := s.SavedJobs()
	if len(saved) != 2 {
		t.Fatalf("SavedJobs len = %d, want 2", len(saved))
	}
	if saved[0].ID != jobs[2].ID || saved[1].ID != jobs[0].ID {
		t.Errorf("saved order = [%d %d], want [%d %d]", saved[0].ID, saved[1].ID, jobs[2].ID, jobs[0].ID)
	}
}

func TestGenerateDigestNeedsPreferences(t *testing.T) {
	s := newTestService()

	if _, err := s.GenerateDigest(); err != digest.ErrNoPreferences {
		t.Errorf("GenerateDigest error = %v, want ErrNoPreferences", err)
	}
	if _, ok := s.TodayDigest(); ok {
		t.Error("TodayDigest reports generated on fresh store")
	}
}

func TestDigestRoundTrip(t *testing.T) {
	s := newTestService()

	prefs := match.DefaultPreferences()
	prefs.RoleKeywords = []string{"engineer"}
	if err := s.SetPreferences(prefs); err != nil {
		t.Fatalf("SetPreferences: %v", err)
	}

	generated, err := s.GenerateDigest()
	if err != nil {
		t.Fatalf("GenerateDigest: %v", err)
	}
	if len(generated) == 0 || len(generated) > digest.TopN {
		t.Fatalf("digest size = %d", len(generated))
	}

	loaded, ok := s.TodayDigest()
	if !ok {
		t.Fatal("TodayDigest not found after generate")
	}
	if len(loaded) != len(generated) {
		t.Errorf("loaded %d entries, generated %d", len(loaded), len(generated))
	}
}

func TestStatusUpdatesLimit(t *testing.T) {
	s := newTestService()
	jobs := dataset.Jobs()

	for i := 0; i < 5; i++ {
		if _, err := s.SetStatus(jobs[i].ID, track.StatusApplied); err != nil {
			t.Fatalf("SetStatus: %v", err)
		}
	}

	if got := s.StatusUpdates(3); len(got) != 3 {
		t.Errorf("StatusUpdates(3) len = %d", len(got))
	}
	if got := s.StatusUpdates(0); len(got) != 5 {
		t.Errorf("StatusUpdates(0) len = %d", len(got))
	}
}
