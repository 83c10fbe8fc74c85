package record

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewNFTMetadata(t *testing.T) {
	rec, err := New(validRaw())
	if err != nil {
		t.Fatal(err)
	}
	if err := Seal(rec); err != nil {
		t.Fatal(err)
	}
	meta := NewNFTMetadata(rec, "content-123", "https://gateway.irys.xyz")

	if meta.Name != "Employment Reference - Sam Ortiz" {
		t.Errorf("Name = %q", meta.Name)
	}
	if !strings.Contains(meta.Description, "Sam Ortiz") || !strings.Contains(meta.Description, "Acme Robotics") {
		t.Errorf("Description = %q", meta.Description)
	}
	if meta.Image != "https://api.dicebear.com/7.x/initials/svg?seed=Sam+Ortiz" {
		t.Errorf("Image = %q", meta.Image)
	}
	if meta.ExternalURL != "https://gateway.irys.xyz/content-123" {
		t.Errorf("ExternalURL = %q", meta.ExternalURL)
	}
	if meta.Properties.ContentID != "content-123" || meta.Properties.ReferenceID != rec.ID {
		t.Errorf("Properties = %+v", meta.Properties)
	}
	if meta.Properties.VerificationHash != rec.Verification.VerificationHash {
		t.Error("properties hash differs from the record's")
	}

	byTrait := map[string]NFTAttribute{}
	for _, a := range meta.Attributes {
		byTrait[a.TraitType] = a
	}
	if got := byTrait["Rating"]; got.Value != 5 || got.MaxValue != 5 {
		t.Errorf("Rating attribute = %+v", got)
	}
	if got := byTrait["Would Rehire"]; got.Value != "Yes" {
		t.Errorf("Would Rehire attribute = %+v", got)
	}
	if got := byTrait["Company"]; got.Value != "Acme Robotics" {
		t.Errorf("Company attribute = %+v", got)
	}
	if len(meta.Attributes) != 8 {
		t.Errorf("attribute count = %d, want 8", len(meta.Attributes))
	}
}

func TestNewNFTMetadata_GatewayTrailingSlash(t *testing.T) {
	rec, err := New(validRaw())
	if err != nil {
		t.Fatal(err)
	}
	meta := NewNFTMetadata(rec, "abc", "https://gateway.irys.xyz/")
	if meta.ExternalURL != "https://gateway.irys.xyz/abc" {
		t.Errorf("ExternalURL = %q", meta.ExternalURL)
	}
}

func TestNewSummary_RedactsPrivateFields(t *testing.T) {
	raw := validRaw()
	raw.Employer.Email = "dana@acme.example"
	raw.Employee.Email = "sam@example.com"
	raw.Reference.AreasForImprovement = []string{"delegation"}
	raw.Reference.WorkQuality = 5

	rec, err := New(raw)
	if err != nil {
		t.Fatal(err)
	}
	if err := Seal(rec); err != nil {
		t.Fatal(err)
	}
	rec.Verification.ContentID = "content-9"

	s := NewSummary(rec)
	if s.ID != rec.ID || s.Employee.Name != "Sam Ortiz" || s.Employer.Company != "Acme Robotics" {
		t.Fatalf("summary identity wrong: %+v", s)
	}
	if s.Verification.VerificationHash != rec.Verification.VerificationHash || s.Verification.ContentID != "content-9" {
		t.Fatal("verification linkage missing from summary")
	}
	if s.Reference.Rating != 5 || !s.Reference.WouldRehire {
		t.Fatalf("reference view wrong: %+v", s.Reference)
	}
	// Redacted content must not survive anywhere in the serialized view.
	for _, private := range []string{"dana@acme.example", "sam@example.com", "delegation",
		"0x1111111111111111111111111111111111111111"} {
		if containsValue(t, s, private) {
			t.Errorf("private value %q leaked into the summary", private)
		}
	}
}

func containsValue(t *testing.T, s *Summary, needle string) bool {
	t.Helper()
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal summary: %v", err)
	}
	return strings.Contains(string(b), needle)
}
