// Package resume extracts matching preferences from a resume PDF. The
// parser is deliberately conservative: it only picks up skills, locations,
// and role keywords that actually occur in the job dataset, so a noisy
// resume cannot produce filters that match nothing.
package resume

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"jobtrack/internal/dataset"
	"jobtrack/internal/match"
)

// roleWords are title tokens worth treating as role keywords when they
// appear in a resume.
var roleWords = []string{
	"frontend", "backend", "fullstack", "full stack", "devops", "mobile",
	"react", "android", "ios", "data", "platform", "engineer", "developer",
}

// ExtractText returns the plain text of a PDF resume.
func ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("reading text: %w", err)
	}
	return buf.String(), nil
}

// Parse derives preferences from resume text. Skills and locations are
// matched against the dataset's vocabulary; MinMatchScore keeps its
// default.
func Parse(text string) match.Preferences {
	lower := strings.ToLower(text)

	p := match.DefaultPreferences()
	p.Skills = matchVocabulary(lower, datasetSkills())
	p.PreferredLocations = matchVocabulary(lower, dataset.Locations())
	p.RoleKeywords = matchVocabulary(lower, roleWords)
	return p
}

// ParseFile is ExtractText followed by Parse.
func ParseFile(path string) (match.Preferences, error) {
	text, err := ExtractText(path)
	if err != nil {
		return match.Preferences{}, err
	}
	return Parse(text), nil
}

// datasetSkills returns the distinct skills across all dataset jobs.
func datasetSkills() []string {
	seen := make(map[string]bool)
	var skills []string
	for _, j := range dataset.Jobs() {
		for _, s := range j.Skills {
			key := strings.ToLower(s)
			if !seen[key] {
				seen[key] = true
				skills = append(skills, s)
			}
		}
	}
	return skills
}

// matchVocabulary returns the vocabulary entries present in the lowercased
// text, in vocabulary order.
func matchVocabulary(lowerText string, vocabulary []string) []string {
	var found []string
	for _, v := range vocabulary {
		if strings.Contains(lowerText, strings.ToLower(v)) {
			found = append(found, v)
		}
	}
	return found
}
