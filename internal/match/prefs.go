// Package match implements the scoring and filter/sort engines. Both are
// pure: they read the static dataset and a preference profile and never
// touch persistence.
package match

// Preferences is the user's job-matching profile. A nil *Preferences means
// "never set", which is distinct from a saved profile with all fields empty.
type Preferences struct {
	RoleKeywords       []string `json:"roleKeywords"`
	PreferredLocations []string `json:"preferredLocations"`
	PreferredMode      []string `json:"preferredMode"`
	ExperienceLevel    string   `json:"experienceLevel"`
	Skills             []string `json:"skills"`
	MinMatchScore      int      `json:"minMatchScore"`
}

// DefaultPreferences returns the profile used to seed the settings form.
func DefaultPreferences() Preferences {
	return Preferences{
		RoleKeywords:       []string{},
		PreferredLocations: []string{},
		PreferredMode:      []string{},
		Skills:             []string{},
		MinMatchScore:      40,
	}
}

// Active reports whether the profile carries enough signal to drive
// matching. Mirrors the dashboard's call-to-action gate: keywords, skills,
// or locations must be non-empty.
func (p *Preferences) Active() bool {
	if p == nil {
		return false
	}
	return len(p.RoleKeywords) > 0 || len(p.Skills) > 0 || len(p.PreferredLocations) > 0
}
