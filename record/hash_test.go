package record

import (
	"regexp"
	"testing"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{64}$`)

func sealedRecord(t *testing.T) *Record {
	t.Helper()
	rec, err := New(validRaw())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := Seal(rec); err != nil {
		t.Fatalf("Seal: %v", err)
	}
	return rec
}

func TestHash_ShapeAndDeterminism(t *testing.T) {
	rec := sealedRecord(t)
	if !hexDigest.MatchString(rec.Verification.VerificationHash) {
		t.Fatalf("hash %q is not 64 lowercase hex chars", rec.Verification.VerificationHash)
	}
	for i := 0; i < 10; i++ {
		h, err := Hash(rec)
		if err != nil {
			t.Fatalf("Hash run %d: %v", i, err)
		}
		if h != rec.Verification.VerificationHash {
			t.Fatalf("hash changed across runs: %q vs %q", h, rec.Verification.VerificationHash)
		}
	}
}

func TestHash_TamperSensitivity(t *testing.T) {
	rec := sealedRecord(t)
	orig := rec.Verification.VerificationHash

	mutations := []struct {
		name   string
		mutate func(*Record)
	}{
		{"rating", func(r *Record) { r.Reference.Rating = 4 }},
		{"company", func(r *Record) { r.Employer.Company = "Acme Robotics Inc" }},
		{"recommendation", func(r *Record) { r.Reference.Recommendation += "!" }},
		{"timestamp", func(r *Record) { r.Timestamp = "2020-01-01T00:00:00Z" }},
		{"technology", func(r *Record) { r.Project.Technologies[0] = "Rust" }},
		{"consent", func(r *Record) { r.Verification.EmployeeConsent = !r.Verification.EmployeeConsent }},
	}
	for _, m := range mutations {
		cp := *rec
		cp.Project.Technologies = append([]string(nil), rec.Project.Technologies...)
		m.mutate(&cp)
		h, err := Hash(&cp)
		if err != nil {
			t.Fatalf("%s: %v", m.name, err)
		}
		if h == orig {
			t.Errorf("mutating %s did not change the hash", m.name)
		}
	}
}

// Post-upload envelope fields must not affect the digest: writing them after
// Seal cannot invalidate a stored hash.
func TestHash_IgnoresPostUploadFields(t *testing.T) {
	rec := sealedRecord(t)
	orig := rec.Verification.VerificationHash

	rec.Verification.ContentID = "some-content-id"
	rec.Verification.ChainTxHash = "0xdeadbeef"
	rec.Verification.EmployerSignature = "sig"
	rec.Verification.VerificationHash = "overwritten"

	h, err := Hash(rec)
	if err != nil {
		t.Fatal(err)
	}
	if h != orig {
		t.Fatalf("hash depends on post-upload fields: %q vs %q", h, orig)
	}
}

func TestHash_NilRecord(t *testing.T) {
	if _, err := Hash(nil); err == nil {
		t.Fatal("Hash(nil) should fail")
	}
}

func TestSeal_OnlyMutatesVerificationHash(t *testing.T) {
	rec, err := New(validRaw())
	if err != nil {
		t.Fatal(err)
	}
	before := *rec
	if err := Seal(rec); err != nil {
		t.Fatal(err)
	}
	if rec.Verification.VerificationHash == "" {
		t.Fatal("Seal wrote no hash")
	}
	rec.Verification.VerificationHash = ""
	if rec.ID != before.ID || rec.Timestamp != before.Timestamp ||
		rec.Employer != before.Employer || rec.Employee != before.Employee ||
		rec.Verification != before.Verification {
		t.Fatal("Seal mutated fields other than the verification hash")
	}
}
