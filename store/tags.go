package store

import (
	"strconv"
	"strings"

	"blockref.dev/refstore/network"
	"blockref.dev/refstore/record"
)

// uploadTags builds the fixed tag sequence attached to every upload. The key
// set and order are part of the external contract with indexers; keywords are
// already truncated by the caller.
func (s *Service) uploadTags(rec *record.Record, keywords []string) []network.Tag {
	return []network.Tag{
		{Name: "Content-Type", Value: "application/json"},
		{Name: "App-Name", Value: s.appName},
		{Name: "App-Version", Value: s.appVersion},
		{Name: "Data-Type", Value: "employment-reference"},
		{Name: "Reference-ID", Value: rec.ID},
		{Name: "Employee-Address", Value: rec.Employee.WalletAddress},
		{Name: "Employer-Address", Value: rec.Employer.WalletAddress},
		{Name: "Company", Value: rec.Employer.Company},
		{Name: "Rating", Value: strconv.Itoa(rec.Reference.Rating)},
		{Name: "Verification-Hash", Value: rec.Verification.VerificationHash},
		{Name: "Keywords", Value: strings.Join(keywords, ",")},
		{Name: "Timestamp", Value: rec.Timestamp},
		{Name: "Version", Value: rec.Version},
	}
}
