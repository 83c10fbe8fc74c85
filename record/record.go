// Package record implements the canonical employment-reference record: its
// construction, deterministic verification hash, validation rules, and the
// derived artifacts (keywords, NFT metadata, public summary).
package record

// Fixed schema metadata stamped on every canonical record.
const (
	Type    = "employment_reference"
	Version = "1.0.0"
)

// Record is the canonical unit of storage.
//
// A record's id and the content of every field except the post-upload
// verification fields (contentId, chainTxHash, employerSignature) are fixed
// before the verification hash is computed. A changed record is a new record
// with a new hash; hashes are never recomputed in place.
type Record struct {
	ID        string `json:"id"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`

	Employer     Employer     `json:"employer"`
	Employee     Employee     `json:"employee"`
	Project      Project      `json:"project"`
	Reference    Reference    `json:"reference"`
	Verification Verification `json:"verification"`
	Metadata     Metadata     `json:"metadata"`
}

// Employer identifies the party giving the reference.
type Employer struct {
	Name               string `json:"name"`
	Position           string `json:"position"`
	Company            string `json:"company"`
	Email              string `json:"email"`
	WalletAddress      string `json:"walletAddress"`
	LinkedIn           string `json:"linkedIn"`
	VerificationMethod string `json:"verificationMethod"`
}

// Employee identifies the party the reference is about.
type Employee struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	WalletAddress string `json:"walletAddress"`
	LinkedIn      string `json:"linkedIn"`
	Portfolio     string `json:"portfolio"`
}

// Project describes the engagement the reference covers.
type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Role         string   `json:"role"`
	Technologies []string `json:"technologies"`
	Achievements []string `json:"achievements"`
	Deliverables []string `json:"deliverables"`
}

// Reference carries the evaluation itself. Rating is on a 1-5 scale; the
// optional sub-ratings use 0 for "not provided".
type Reference struct {
	Rating              int      `json:"rating"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	WouldRehire         bool     `json:"wouldRehire"`
	Recommendation      string   `json:"recommendation"`
	WorkQuality         int      `json:"workQuality"`
	Communication       int      `json:"communication"`
	Reliability         int      `json:"reliability"`
	Teamwork            int      `json:"teamwork"`
	TechnicalSkills     int      `json:"technicalSkills"`
}

// Verification is the record's mutable envelope.
//
// EmployerSignature is a placeholder this core never populates. ContentID and
// ChainTxHash are filled in after upload and are excluded from the
// verification hash.
type Verification struct {
	EmployerSignature string `json:"employerSignature"`
	EmployeeConsent   bool   `json:"employeeConsent"`
	VerificationHash  string `json:"verificationHash"`
	ChainTxHash       string `json:"chainTxHash"`
	ContentID         string `json:"contentId"`
}

// Metadata carries provenance and visibility flags plus a free-form
// extension bag.
type Metadata struct {
	Source            string         `json:"source"`
	SourceID          string         `json:"sourceId"`
	Tags              []string       `json:"tags"`
	IsPublic          bool           `json:"isPublic"`
	AllowVerification bool           `json:"allowVerification"`
	Extra             map[string]any `json:"extra"`
}
