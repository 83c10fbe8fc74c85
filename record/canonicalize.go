package record

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"blockref.dev/refstore/fault"
)

// Raw is the sectioned input a caller (form wizard, import pipeline) supplies.
// The four main sections are required; Metadata is optional.
type Raw struct {
	Employer  *Employer    `json:"employerInfo"`
	Employee  *Employee    `json:"employeeInfo"`
	Project   *Project     `json:"projectInfo"`
	Reference *Reference   `json:"referenceDetails"`
	Metadata  *RawMetadata `json:"metadata"`
}

// RawMetadata is the optional metadata section of Raw. IsPublic and
// AllowVerification default to true when nil.
type RawMetadata struct {
	EmployeeConsent   bool           `json:"employeeConsent"`
	Source            string         `json:"source"`
	SourceID          string         `json:"sourceId"`
	Tags              []string       `json:"tags"`
	IsPublic          *bool          `json:"isPublic"`
	AllowVerification *bool          `json:"allowVerification"`
	Extra             map[string]any `json:"extra"`
}

// New builds the canonical record from raw sectioned input.
//
// It generates a fresh unique id, stamps the current UTC timestamp and fixed
// schema metadata, and defaults every optional field so downstream code never
// branches on "missing". It performs no I/O and no mutation of raw.
//
// A missing required section fails with a KindStructure error naming the
// absent sections.
func New(raw Raw) (*Record, error) {
	var missing []string
	if raw.Employer == nil {
		missing = append(missing, "employerInfo")
	}
	if raw.Employee == nil {
		missing = append(missing, "employeeInfo")
	}
	if raw.Project == nil {
		missing = append(missing, "projectInfo")
	}
	if raw.Reference == nil {
		missing = append(missing, "referenceDetails")
	}
	if len(missing) > 0 {
		return nil, &fault.Error{
			Kind:    fault.KindStructure,
			Code:    fault.CodeMissingSection,
			Message: "missing required reference sections: " + strings.Join(missing, ", "),
			Fields:  missing,
		}
	}

	meta := RawMetadata{}
	if raw.Metadata != nil {
		meta = *raw.Metadata
	}

	rec := &Record{
		ID:        uuid.NewString(),
		Version:   Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Type:      Type,

		Employer:  *raw.Employer,
		Employee:  *raw.Employee,
		Project:   *raw.Project,
		Reference: *raw.Reference,

		Verification: Verification{
			EmployeeConsent: meta.EmployeeConsent,
		},
		Metadata: Metadata{
			Source:            defaultString(meta.Source, "web_interface"),
			SourceID:          meta.SourceID,
			Tags:              copyStrings(meta.Tags),
			IsPublic:          defaultBool(meta.IsPublic, true),
			AllowVerification: defaultBool(meta.AllowVerification, true),
			Extra:             copyExtra(meta.Extra),
		},
	}

	if rec.Employer.VerificationMethod == "" {
		rec.Employer.VerificationMethod = "wallet_signature"
	}
	rec.Project.Technologies = copyStrings(raw.Project.Technologies)
	rec.Project.Achievements = copyStrings(raw.Project.Achievements)
	rec.Project.Deliverables = copyStrings(raw.Project.Deliverables)
	rec.Reference.Strengths = copyStrings(raw.Reference.Strengths)
	rec.Reference.AreasForImprovement = copyStrings(raw.Reference.AreasForImprovement)

	return rec, nil
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func defaultBool(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// copyStrings normalizes nil to an empty slice and detaches from the caller.
func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyExtra(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
