package record

// Summary is the public view of a record: contact details and private
// sub-ratings are stripped, verification linkage is kept so the summary can
// still be checked against storage.
type Summary struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`

	Employer struct {
		Name     string `json:"name"`
		Position string `json:"position"`
		Company  string `json:"company"`
	} `json:"employer"`

	Employee struct {
		Name string `json:"name"`
	} `json:"employee"`

	Project struct {
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		Role         string   `json:"role"`
		Technologies []string `json:"technologies"`
		StartDate    string   `json:"startDate"`
		EndDate      string   `json:"endDate"`
	} `json:"project"`

	Reference struct {
		Rating         int      `json:"rating"`
		Strengths      []string `json:"strengths"`
		Recommendation string   `json:"recommendation"`
		WouldRehire    bool     `json:"wouldRehire"`
	} `json:"reference"`

	Verification struct {
		VerificationHash string `json:"verificationHash"`
		ChainTxHash      string `json:"chainTxHash"`
		ContentID        string `json:"contentId"`
	} `json:"verification"`
}

// NewSummary builds the redacted public view of a record.
func NewSummary(rec *Record) *Summary {
	s := &Summary{ID: rec.ID, Timestamp: rec.Timestamp}
	s.Employer.Name = rec.Employer.Name
	s.Employer.Position = rec.Employer.Position
	s.Employer.Company = rec.Employer.Company
	s.Employee.Name = rec.Employee.Name
	s.Project.Title = rec.Project.Title
	s.Project.Description = rec.Project.Description
	s.Project.Role = rec.Project.Role
	s.Project.Technologies = copyStrings(rec.Project.Technologies)
	s.Project.StartDate = rec.Project.StartDate
	s.Project.EndDate = rec.Project.EndDate
	s.Reference.Rating = rec.Reference.Rating
	s.Reference.Strengths = copyStrings(rec.Reference.Strengths)
	s.Reference.Recommendation = rec.Reference.Recommendation
	s.Reference.WouldRehire = rec.Reference.WouldRehire
	s.Verification.VerificationHash = rec.Verification.VerificationHash
	s.Verification.ChainTxHash = rec.Verification.ChainTxHash
	s.Verification.ContentID = rec.Verification.ContentID
	return s
}
