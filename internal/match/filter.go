package match

import (
	"sort"
	"strconv"
	"strings"

	"jobtrack/internal/dataset"
)

// Sort mode labels, as shown in the dashboard sort dropdown.
const (
	SortLatest = "Latest"
	SortScore  = "Match Score"
	SortSalary = "Salary: High to Low"
)

// defaultStatus is the resolved status for a job with no recorded entry.
const defaultStatus = "Not Applied"

// Filters is the ephemeral filter set applied to the job list. Zero values
// mean "unset"; an unset field passes every job. Sort defaults to Latest.
type Filters struct {
	Keyword    string
	Location   string
	Mode       string
	Experience string
	Source     string
	Status     string
	Sort       string
}

// ScoredJob pairs a dataset job with its computed match score and badge
// tier.
type ScoredJob struct {
	dataset.Job
	MatchScore int    `json:"matchScore"`
	Tier       string `json:"tier"`
}

// ScoreAll computes scores for every job in dataset order. A nil profile
// means preferences were never saved: every score is 0 by definition.
func ScoreAll(jobs []dataset.Job, prefs *Preferences) []ScoredJob {
	scored := make([]ScoredJob, len(jobs))
	for i, j := range jobs {
		s := 0
		if prefs != nil {
			s = Score(j, *prefs)
		}
		scored[i] = ScoredJob{Job: j, MatchScore: s, Tier: Tier(s)}
	}
	return scored
}

// FilterSort applies the filter set to scored and returns a fresh ordered
// slice; the input is never reordered. Filter stages are independent
// predicates, so their application order does not affect the result set.
// All three sort modes are stable: ties keep dataset order.
//
// showOnlyMatches drops jobs scoring below prefs.MinMatchScore; with a nil
// profile the toggle is a no-op rather than an error.
func FilterSort(scored []ScoredJob, f Filters, statuses map[int]string, showOnlyMatches bool, prefs *Preferences) []ScoredJob {
	result := make([]ScoredJob, 0, len(scored))
	kw := strings.ToLower(f.Keyword)

	for _, j := range scored {
		if kw != "" &&
			!strings.Contains(strings.ToLower(j.Title), kw) &&
			!strings.Contains(strings.ToLower(j.Company), kw) {
			continue
		}
		if f.Location != "" && j.Location != f.Location {
			continue
		}
		if f.Mode != "" && j.Mode != f.Mode {
			continue
		}
		if f.Experience != "" && j.Experience != f.Experience {
			continue
		}
		if f.Source != "" && j.Source != f.Source {
			continue
		}
		if f.Status != "" && resolveStatus(statuses, j.ID) != f.Status {
			continue
		}
		if showOnlyMatches && prefs != nil && j.MatchScore < prefs.MinMatchScore {
			continue
		}
		result = append(result, j)
	}

	switch f.Sort {
	case SortScore:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].MatchScore > result[j].MatchScore
		})
	case SortSalary:
		sort.SliceStable(result, func(i, j int) bool {
			return MaxSalary(result[i].SalaryRange) > MaxSalary(result[j].SalaryRange)
		})
	default: // SortLatest
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].PostedDaysAgo < result[j].PostedDaysAgo
		})
	}

	return result
}

func resolveStatus(statuses map[int]string, jobID int) string {
	if s, ok := statuses[jobID]; ok && s != "" {
		return s
	}
	return defaultStatus
}

// MaxSalary extracts the largest run of digits from a salary-range string.
// "₹15–20 LPA" yields 20; text with no digits yields 0.
func MaxSalary(s string) int {
	max := 0
	i := 0
	for i < len(s) {
		if s[i] < '0' || s[i] > '9' {
			i++
			continue
		}
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		n, err := strconv.Atoi(s[start:i])
		if err == nil && n > max {
			max = n
		}
	}
	return max
}
