package record

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash computes the 256-bit verification digest for a record.
//
// The digest is sha-256 over a canonical JSON serialization with object keys
// sorted lexicographically at every level. The verification envelope is
// reduced to its employeeConsent field, so the digest never depends on values
// only known after upload (content id, chain tx hash, signature); writing
// those later does not invalidate the hash.
//
// Identical records (including id and timestamp) always produce an identical
// digest; any change to a hashed field changes it.
func Hash(rec *Record) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("record: hash of nil record")
	}

	// Round-trip through a generic map so every object serializes with
	// lexicographically sorted keys.
	b, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("record: hash serialization: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(b, &payload); err != nil {
		return "", fmt.Errorf("record: hash serialization: %w", err)
	}
	payload["verification"] = map[string]any{
		"employeeConsent": rec.Verification.EmployeeConsent,
	}

	canonical, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("record: hash serialization: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// Seal computes the verification hash and writes it into
// verification.verificationHash. This assignment is the only mutation the
// hashing path performs.
func Seal(rec *Record) error {
	h, err := Hash(rec)
	if err != nil {
		return err
	}
	rec.Verification.VerificationHash = h
	return nil
}
