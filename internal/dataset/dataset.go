// Package dataset holds the fixed job postings jobtrack operates on. The
// dataset is compiled into the binary and never fetched or mutated at
// runtime; postedDaysAgo values are relative to the snapshot date.
package dataset

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed jobs.json
var jobsFS embed.FS

// Job is a single immutable job posting.
type Job struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Location      string   `json:"location"`
	Mode          string   `json:"mode"`
	Experience    string   `json:"experience"`
	SalaryRange   string   `json:"salaryRange"`
	Skills        []string `json:"skills"`
	Source        string   `json:"source"`
	Description   string   `json:"description"`
	ApplyURL      string   `json:"applyUrl"`
	PostedDaysAgo int      `json:"postedDaysAgo"`
}

var (
	loadOnce sync.Once
	jobs     []Job
	byID     map[int]Job

	locations   []string
	modes       []string
	experiences []string
	sources     []string
)

func load() {
	data, err := jobsFS.ReadFile("jobs.json")
	if err != nil {
		panic(fmt.Sprintf("dataset: reading embedded jobs.json: %v", err))
	}
	if err := json.Unmarshal(data, &jobs); err != nil {
		panic(fmt.Sprintf("dataset: parsing embedded jobs.json: %v", err))
	}

	byID = make(map[int]Job, len(jobs))
	seenLoc := map[string]bool{}
	seenMode := map[string]bool{}
	seenExp := map[string]bool{}
	seenSrc := map[string]bool{}
	for _, j := range jobs {
		byID[j.ID] = j
		if !seenLoc[j.Location] {
			seenLoc[j.Location] = true
			locations = append(locations, j.Location)
		}
		if !seenMode[j.Mode] {
			seenMode[j.Mode] = true
			modes = append(modes, j.Mode)
		}
		if !seenExp[j.Experience] {
			seenExp[j.Experience] = true
			experiences = append(experiences, j.Experience)
		}
		if !seenSrc[j.Source] {
			seenSrc[j.Source] = true
			sources = append(sources, j.Source)
		}
	}
}

// Jobs returns the full dataset in its canonical order. The returned slice
// is a copy; callers may reorder it freely.
func Jobs() []Job {
	loadOnce.Do(load)
	out := make([]Job, len(jobs))
	copy(out, jobs)
	return out
}

// ByID returns the job with the given identifier.
func ByID(id int) (Job, bool) {
	loadOnce.Do(load)
	j, ok := byID[id]
	return j, ok
}

// Len returns the number of jobs in the dataset.
func Len() int {
	loadOnce.Do(load)
	return len(jobs)
}

// Locations returns the distinct canonical location labels in dataset order.
func Locations() []string {
	loadOnce.Do(load)
	return append([]string(nil), locations...)
}

// Modes returns the distinct work-mode labels in dataset order.
func Modes() []string {
	loadOnce.Do(load)
	return append([]string(nil), modes...)
}

// Experiences returns the distinct experience-level labels in dataset order.
func Experiences() []string {
	loadOnce.Do(load)
	return append([]string(nil), experiences...)
}

// Sources returns the distinct source labels in dataset order.
func Sources() []string {
	loadOnce.Do(load)
	return append([]string(nil), sources...)
}
