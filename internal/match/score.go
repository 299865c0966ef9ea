package match

import (
	"strings"

	"jobtrack/internal/dataset"
)

// Point values for the additive scoring rules. Each rule fires at most once;
// the theoretical maximum sums to exactly 100.
const (
	pointsTitleKeyword = 25
	pointsDescKeyword  = 15
	pointsLocation     = 15
	pointsMode         = 10
	pointsExperience   = 10
	pointsSkill        = 15
	pointsFreshPost    = 5
	pointsSource       = 5

	maxScore = 100

	// freshPostMaxDays is the postedDaysAgo cutoff for the recency bonus.
	freshPostMaxDays = 2

	// preferredSource gets a flat bonus regardless of preferences.
	preferredSource = "LinkedIn"
)

// Score rates how well job fits prefs on a 0–100 scale. Rules are
// independent and order-insensitive: shuffling keyword or skill order never
// changes the result. The recency and source bonuses fire independent of
// the profile.
//
// Callers that model "no preferences saved" as a nil profile must report 0
// without calling Score; Score itself always applies the unconditional
// bonuses.
func Score(job dataset.Job, prefs Preferences) int {
	score := 0
	titleLower := strings.ToLower(job.Title)
	descLower := strings.ToLower(job.Description)

	titleHit, descHit := false, false
	for _, kw := range prefs.RoleKeywords {
		if kw == "" {
			continue
		}
		kwLower := strings.ToLower(kw)
		if strings.Contains(titleLower, kwLower) {
			titleHit = true
		}
		if strings.Contains(descLower, kwLower) {
			descHit = true
		}
	}
	if titleHit {
		score += pointsTitleKeyword
	}
	if descHit {
		score += pointsDescKeyword
	}

	if len(prefs.PreferredLocations) > 0 && contains(prefs.PreferredLocations, job.Location) {
		score += pointsLocation
	}

	if len(prefs.PreferredMode) > 0 && contains(prefs.PreferredMode, job.Mode) {
		score += pointsMode
	}

	if prefs.ExperienceLevel != "" && job.Experience == prefs.ExperienceLevel {
		score += pointsExperience
	}

	if len(prefs.Skills) > 0 && anySkillMatch(job.Skills, prefs.Skills) {
		score += pointsSkill
	}

	if job.PostedDaysAgo <= freshPostMaxDays {
		score += pointsFreshPost
	}

	if job.Source == preferredSource {
		score += pointsSource
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

// Tier maps a score to its badge tier. Thresholds are inclusive lower
// bounds: 80 "strong", 60 "good", 40 "neutral", below that "weak".
func Tier(score int) string {
	switch {
	case score >= 80:
		return "strong"
	case score >= 60:
		return "good"
	case score >= 40:
		return "neutral"
	default:
		return "weak"
	}
}

// contains is an exact, case-sensitive membership test against canonical
// dataset labels.
func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func anySkillMatch(jobSkills, prefSkills []string) bool {
	for _, js := range jobSkills {
		for _, ps := range prefSkills {
			if strings.EqualFold(js, ps) {
				return true
			}
		}
	}
	return false
}
