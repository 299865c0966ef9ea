package checklist

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"jobtrack/internal/storage"
)

// Links holds the three proof-of-work submission URLs.
type Links struct {
	ProjectURL string `json:"projectUrl"`
	RepoURL    string `json:"repoUrl"`
	DeployURL  string `json:"deployedUrl"`
}

// Proof field names, used as field identifiers in validation errors.
const (
	FieldProject = "projectUrl"
	FieldRepo    = "repoUrl"
	FieldDeploy  = "deployedUrl"
)

// Ship status values derived from checklist + links state.
const (
	ShipNotStarted = "Not Started"
	ShipInProgress = "In Progress"
	ShipShipped    = "Shipped"
)

const proofKey = "proofLinks"

// ProofStore persists the submission links.
type ProofStore struct {
	kv storage.KV
}

// NewProofStore creates a ProofStore over kv.
func NewProofStore(kv storage.KV) *ProofStore {
	return &ProofStore{kv: kv}
}

// Load returns the persisted links; absent or malformed state loads as
// empty links.
func (s *ProofStore) Load() Links {
	raw, err := s.kv.Get(proofKey)
	if err != nil {
		return Links{}
	}
	var links Links
	if err := json.Unmarshal([]byte(raw), &links); err != nil {
		return Links{}
	}
	return links
}

// Save validates all fields and persists only when every field passes;
// the returned map carries field-level messages otherwise.
func (s *ProofStore) Save(links Links) (map[string]string, error) {
	if errs := Validate(links); len(errs) > 0 {
		return errs, nil
	}
	data, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("marshalling proof links: %w", err)
	}
	if err := s.kv.Set(proofKey, string(data)); err != nil {
		return nil, err
	}
	return nil, nil
}

// SaveDraft persists links without validation, preserving partial progress.
func (s *ProofStore) SaveDraft(links Links) error {
	data, err := json.Marshal(links)
	if err != nil {
		return fmt.Errorf("marshalling proof links: %w", err)
	}
	return s.kv.Set(proofKey, string(data))
}

// Validate checks every field and returns field-level messages for those
// that fail. An empty map means all fields are valid.
func Validate(links Links) map[string]string {
	errs := map[string]string{}
	for field, value := range map[string]string{
		FieldProject: links.ProjectURL,
		FieldRepo:    links.RepoURL,
		FieldDeploy:  links.DeployURL,
	} {
		if msg := validateURLField(value); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

func validateURLField(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "This field is required"
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "Please enter a valid URL"
	}
	return ""
}

// ShipStatus derives the submission status: all links valid and all
// checklist items passed means "Shipped"; any link entered means
// "In Progress"; otherwise "Not Started".
func ShipStatus(links Links, allTestsPassed bool) string {
	if len(Validate(links)) == 0 && allTestsPassed {
		return ShipShipped
	}
	if links.ProjectURL != "" || links.RepoURL != "" || links.DeployURL != "" {
		return ShipInProgress
	}
	return ShipNotStarted
}

// SubmissionText renders the final submission block.
func SubmissionText(links Links) string {
	var b strings.Builder
	b.WriteString("Job Notification Tracker — Final Submission\n\n")
	fmt.Fprintf(&b, "Project:\n%s\n\n", strings.TrimSpace(links.ProjectURL))
	fmt.Fprintf(&b, "Repository:\n%s\n\n", strings.TrimSpace(links.RepoURL))
	fmt.Fprintf(&b, "Live Deployment:\n%s\n\n", strings.TrimSpace(links.DeployURL))
	b.WriteString("Core Features:\n")
	b.WriteString("- Intelligent match scoring\n")
	b.WriteString("- Daily digest simulation\n")
	b.WriteString("- Status tracking\n")
	b.WriteString("- Test checklist enforced")
	return b.String()
}
