package record

import (
	"fmt"
	"net/url"
	"strings"
)

const avatarURLBase = "https://api.dicebear.com/7.x/initials/svg?seed="

// NFTAttribute is one display trait of the NFT metadata document.
type NFTAttribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
	MaxValue  int    `json:"max_value,omitempty"`
}

// NFTProperties carries the storage linkage of the minted reference.
type NFTProperties struct {
	ContentID          string `json:"content_id"`
	VerificationHash   string `json:"verification_hash"`
	ReferenceID        string `json:"reference_id"`
	IsVerified         bool   `json:"is_verified"`
	BlockchainVerified bool   `json:"blockchain_verified"`
}

// NFTMetadata is the standard token-metadata document for a stored reference.
// This core only produces the document; minting is someone else's job.
type NFTMetadata struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	ExternalURL string         `json:"external_url"`
	Attributes  []NFTAttribute `json:"attributes"`
	Properties  NFTProperties  `json:"properties"`
}

// NewNFTMetadata synthesizes the NFT metadata document for a stored record.
// The avatar image URL is deterministic, seeded by the employee name; the
// external URL points at the public gateway for the content id.
func NewNFTMetadata(rec *Record, contentID, gatewayBase string) *NFTMetadata {
	rehire := "No"
	if rec.Reference.WouldRehire {
		rehire = "Yes"
	}
	return &NFTMetadata{
		Name:        fmt.Sprintf("Employment Reference - %s", rec.Employee.Name),
		Description: fmt.Sprintf("Verified employment reference for %s from %s", rec.Employee.Name, rec.Employer.Company),
		Image:       avatarURLBase + url.QueryEscape(rec.Employee.Name),
		ExternalURL: strings.TrimRight(gatewayBase, "/") + "/" + contentID,
		Attributes: []NFTAttribute{
			{TraitType: "Employee", Value: rec.Employee.Name},
			{TraitType: "Employer", Value: rec.Employer.Name},
			{TraitType: "Company", Value: rec.Employer.Company},
			{TraitType: "Role", Value: rec.Project.Role},
			{TraitType: "Rating", Value: rec.Reference.Rating, MaxValue: 5},
			{TraitType: "Would Rehire", Value: rehire},
			{TraitType: "Reference Date", Value: rec.Timestamp},
			{TraitType: "Verification Hash", Value: rec.Verification.VerificationHash},
		},
		Properties: NFTProperties{
			ContentID:          contentID,
			VerificationHash:   rec.Verification.VerificationHash,
			ReferenceID:        rec.ID,
			IsVerified:         true,
			BlockchainVerified: true,
		},
	}
}
