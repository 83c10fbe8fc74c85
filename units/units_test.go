package units

import (
	"errors"
	"testing"

	"blockref.dev/refstore/fault"
)

func TestToAtomic(t *testing.T) {
	cases := []struct {
		in       string
		decimals int
		want     string
	}{
		{"1", 18, "1000000000000000000"},
		{"1.5", 18, "1500000000000000000"},
		{"0.000000000000000001", 18, "1"},
		{"0", 18, "0"},
		{"0.0", 18, "0"},
		{" 2.5 ", 18, "2500000000000000000"},
		{"123.456", 3, "123456"},
		// Excess fractional digits are truncated, not rounded.
		{"1.9999", 3, "1999"},
		{"10", 0, "10"},
	}
	for _, tc := range cases {
		got, err := ToAtomic(tc.in, tc.decimals)
		if err != nil {
			t.Fatalf("ToAtomic(%q, %d): %v", tc.in, tc.decimals, err)
		}
		if got != tc.want {
			t.Errorf("ToAtomic(%q, %d) = %q, want %q", tc.in, tc.decimals, got, tc.want)
		}
	}
}

func TestToAtomic_RejectsMalformedInput(t *testing.T) {
	for _, in := range []string{"", ".", ".5", "1.2.3", "1,5", "abc", "1e9", "-1", "1.-2"} {
		_, err := ToAtomic(in, 18)
		if err == nil {
			t.Fatalf("ToAtomic(%q) accepted malformed input", in)
		}
		var fe *fault.Error
		if !errors.As(err, &fe) {
			t.Fatalf("ToAtomic(%q) error is not a *fault.Error: %v", in, err)
		}
		if fe.Kind != fault.KindArithmetic || fe.Code != fault.CodeInvalidAmount {
			t.Errorf("ToAtomic(%q) = kind %s code %s, want Arithmetic/%s", in, fe.Kind, fe.Code, fault.CodeInvalidAmount)
		}
	}
}

func TestFromAtomic(t *testing.T) {
	cases := []struct {
		in       string
		decimals int
		want     string
	}{
		{"1000000000000000000", 18, "1"},
		{"1500000000000000000", 18, "1.5"},
		{"2500000000000000000", 18, "2.5"},
		{"1", 18, "0.000000000000000001"},
		{"0", 18, "0"},
		{"123456", 3, "123.456"},
		{"10", 0, "10"},
	}
	for _, tc := range cases {
		got, err := FromAtomic(tc.in, tc.decimals)
		if err != nil {
			t.Fatalf("FromAtomic(%q, %d): %v", tc.in, tc.decimals, err)
		}
		if got != tc.want {
			t.Errorf("FromAtomic(%q, %d) = %q, want %q", tc.in, tc.decimals, got, tc.want)
		}
	}
}

func TestFromAtomic_RejectsNonInteger(t *testing.T) {
	for _, in := range []string{"", "1.5", "-1", "abc"} {
		if _, err := FromAtomic(in, 18); !fault.IsKind(err, fault.KindArithmetic) {
			t.Errorf("FromAtomic(%q) = %v, want KindArithmetic", in, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, amount := range []string{"1", "1.5", "0.000000000000000001", "123456789.987654321"} {
		atomic, err := ToAtomic(amount, 18)
		if err != nil {
			t.Fatalf("ToAtomic(%q): %v", amount, err)
		}
		back, err := FromAtomic(atomic, 18)
		if err != nil {
			t.Fatalf("FromAtomic(%q): %v", atomic, err)
		}
		if back != amount {
			t.Errorf("round trip %q -> %q -> %q", amount, atomic, back)
		}
	}
}

func TestCheckBalance(t *testing.T) {
	cases := []struct {
		cost, balance  string
		wantSufficient bool
		wantShortfall  string
	}{
		{"1000", "1000", true, "0"},
		{"1000", "1001", true, "0"},
		{"1000", "900", false, "100"},
		{"1000", "0", false, "1000"},
		// Values past 64 bits must stay exact.
		{"100000000000000000000", "99999999999999999999", false, "1"},
	}
	for _, tc := range cases {
		got, err := CheckBalance(tc.cost, tc.balance)
		if err != nil {
			t.Fatalf("CheckBalance(%q, %q): %v", tc.cost, tc.balance, err)
		}
		if got.Sufficient != tc.wantSufficient || got.Shortfall != tc.wantShortfall {
			t.Errorf("CheckBalance(%q, %q) = sufficient=%v shortfall=%q, want sufficient=%v shortfall=%q",
				tc.cost, tc.balance, got.Sufficient, got.Shortfall, tc.wantSufficient, tc.wantShortfall)
		}
	}
}

func TestCheckBalance_RejectsMalformedAmounts(t *testing.T) {
	if _, err := CheckBalance("abc", "0"); !fault.IsKind(err, fault.KindArithmetic) {
		t.Fatalf("CheckBalance with bad cost = %v, want KindArithmetic", err)
	}
	if _, err := CheckBalance("0", "1.5"); !fault.IsKind(err, fault.KindArithmetic) {
		t.Fatalf("CheckBalance with bad balance = %v, want KindArithmetic", err)
	}
}
