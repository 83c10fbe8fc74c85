package record

import (
	"fmt"
	"regexp"
	"time"
)

// Result accumulates every rule violation found in a single pass.
// Warnings never block storage; errors do.
type Result struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

var walletAddressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// Validate runs the structural and semantic checks on a record, freshly
// canonicalized or retrieved from storage. It never stops at the first
// violation and never rejects business-rule failures with an error; callers
// inspect Result.
func Validate(rec *Record) Result {
	res := Result{}
	if rec == nil {
		res.Errors = append(res.Errors, "record is required")
		return res
	}

	if rec.ID == "" {
		res.Errors = append(res.Errors, "Missing required field: id")
	}
	if rec.Version == "" {
		res.Errors = append(res.Errors, "Missing required field: version")
	}
	if rec.Timestamp == "" {
		res.Errors = append(res.Errors, "Missing required field: timestamp")
	}
	if rec.Type == "" {
		res.Errors = append(res.Errors, "Missing required field: type")
	}

	if rec.Employer == (Employer{}) {
		res.Errors = append(res.Errors, "Missing required field: employer")
	} else {
		validateEmployer(rec.Employer, &res)
	}
	if rec.Employee == (Employee{}) {
		res.Errors = append(res.Errors, "Missing required field: employee")
	} else {
		validateEmployee(rec.Employee, &res)
	}
	if emptyProject(rec.Project) {
		res.Errors = append(res.Errors, "Missing required field: project")
	} else {
		validateProject(rec.Project, &res)
	}
	if emptyReference(rec.Reference) {
		res.Errors = append(res.Errors, "Missing required field: reference")
	} else {
		validateReference(rec.Reference, &res)
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

func validateEmployer(e Employer, res *Result) {
	requireField(e.Name, "employer", "name", res)
	requireField(e.Position, "employer", "position", res)
	requireField(e.Company, "employer", "company", res)
	requireField(e.WalletAddress, "employer", "walletAddress", res)
	if e.WalletAddress != "" && !walletAddressPattern.MatchString(e.WalletAddress) {
		res.Errors = append(res.Errors, "Invalid employer wallet address format")
	}
}

func validateEmployee(e Employee, res *Result) {
	requireField(e.Name, "employee", "name", res)
	requireField(e.WalletAddress, "employee", "walletAddress", res)
	if e.WalletAddress != "" && !walletAddressPattern.MatchString(e.WalletAddress) {
		res.Errors = append(res.Errors, "Invalid employee wallet address format")
	}
}

func validateProject(p Project, res *Result) {
	requireField(p.Title, "project", "title", res)
	requireField(p.Description, "project", "description", res)
	requireField(p.Role, "project", "role", res)

	if p.StartDate != "" && p.EndDate != "" {
		start, sok := parseDate(p.StartDate)
		end, eok := parseDate(p.EndDate)
		if sok && eok && start.After(end) {
			res.Errors = append(res.Errors, "Project start date cannot be after end date")
		}
	}
}

func validateReference(r Reference, res *Result) {
	if r.Rating == 0 {
		res.Errors = append(res.Errors, "Missing required reference field: rating")
	} else if r.Rating < 1 || r.Rating > 5 {
		res.Errors = append(res.Errors, "Rating must be between 1 and 5")
	}
	if r.Recommendation == "" {
		res.Errors = append(res.Errors, "Missing required reference field: recommendation")
	} else if len(r.Recommendation) < 10 {
		res.Warnings = append(res.Warnings, "Recommendation text is very short")
	}
}

func requireField(value, section, field string, res *Result) {
	if value == "" {
		res.Errors = append(res.Errors, fmt.Sprintf("Missing required %s field: %s", section, field))
	}
}

// parseDate accepts RFC 3339 timestamps and plain calendar dates. Unparseable
// dates are skipped rather than reported; date-format policy belongs to the
// form layer.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func emptyProject(p Project) bool {
	return p.Title == "" && p.Description == "" && p.StartDate == "" && p.EndDate == "" &&
		p.Role == "" && len(p.Technologies) == 0 && len(p.Achievements) == 0 && len(p.Deliverables) == 0
}

func emptyReference(r Reference) bool {
	return r.Rating == 0 && len(r.Strengths) == 0 && len(r.AreasForImprovement) == 0 &&
		!r.WouldRehire && r.Recommendation == "" && r.WorkQuality == 0 && r.Communication == 0 &&
		r.Reliability == 0 && r.Teamwork == 0 && r.TechnicalSkills == 0
}
