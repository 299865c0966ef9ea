package dataset

import "testing"

func TestJobsLoaded(t *testing.T) {
	jobs := Jobs()
	if len(jobs) == 0 {
		t.Fatal("embedded dataset is empty")
	}

	seen := make(map[int]bool, len(jobs))
	for _, j := range jobs {
		if j.ID <= 0 {
			t.Errorf("job %q has non-positive id %d", j.Title, j.ID)
		}
		if seen[j.ID] {
			t.Errorf("duplicate job id %d", j.ID)
		}
		seen[j.ID] = true
		if j.Title == "" || j.Company == "" || j.Location == "" {
			t.Errorf("job %d missing required fields: %+v", j.ID, j)
		}
		if j.PostedDaysAgo < 0 {
			t.Errorf("job %d has negative postedDaysAgo %d", j.ID, j.PostedDaysAgo)
		}
	}
}

func TestJobsReturnsCopy(t *testing.T) {
	a := Jobs()
	a[0].Title = "mutated"

	b := Jobs()
	if b[0].Title == "mutated" {
		t.Error("Jobs() exposed internal slice to mutation")
	}
}

func TestByID(t *testing.T) {
	jobs := Jobs()
	want := jobs[len(jobs)-1]

	got, ok := ByID(want.ID)
	if !ok {
		t.Fatalf("ByID(%d) not found", want.ID)
	}
	if got.Title != want.Title {
		t.Errorf("ByID(%d).Title = %q, want %q", want.ID, got.Title, want.Title)
	}

	if _, ok := ByID(999999); ok {
		t.Error("ByID(999999) unexpectedly found")
	}
}

func TestLabelListsDistinct(t *testing.T) {
	for name, list := range map[string][]string{
		"Locations":   Locations(),
		"Modes":       Modes(),
		"Experiences": Experiences(),
		"Sources":     Sources(),
	} {
		if len(list) == 0 {
			t.Errorf("%s is empty", name)
		}
		seen := map[string]bool{}
		for _, v := range list {
			if seen[v] {
				t.Errorf("%s contains duplicate %q", name, v)
			}
			seen[v] = true
		}
	}
}
