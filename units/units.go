// Package units converts between human-readable decimal amounts and integer
// atomic units.
//
// All arithmetic is exact: amounts are handled with math/big integers, never
// IEEE floating point. 18-fraction-digit atomic values routinely exceed 64
// bits for realistic balances, so fixed-width integers are not used anywhere.
package units

import (
	"fmt"
	"math/big"
	"strings"

	"blockref.dev/refstore/fault"
)

// DefaultDecimals is the atomic-unit scale of the payment token (10^-18).
const DefaultDecimals = 18

// ToAtomic converts a decimal amount string to an integer atomic-unit string.
//
// The fractional part is right-padded (or truncated) to exactly decimals
// digits. Malformed input (multiple decimal points, non-digit characters,
// empty whole part) fails with a KindArithmetic error.
func ToAtomic(amount string, decimals int) (string, error) {
	amount = strings.TrimSpace(amount)
	if strings.Count(amount, ".") > 1 {
		return "", invalidAmount(amount)
	}
	whole, frac, _ := strings.Cut(amount, ".")
	if whole == "" || !isDigits(whole) {
		return "", invalidAmount(amount)
	}
	if frac != "" && !isDigits(frac) {
		return "", invalidAmount(amount)
	}
	if len(frac) > decimals {
		frac = frac[:decimals]
	}
	frac += strings.Repeat("0", decimals-len(frac))

	w := new(big.Int)
	if _, ok := w.SetString(whole, 10); !ok {
		return "", invalidAmount(amount)
	}
	w.Mul(w, pow10(decimals))
	if frac != "" {
		f := new(big.Int)
		if _, ok := f.SetString(frac, 10); !ok {
			return "", invalidAmount(amount)
		}
		w.Add(w, f)
	}
	return w.String(), nil
}

// FromAtomic converts an integer atomic-unit string to a decimal string.
//
// Trailing fractional zeros are stripped; a zero remainder yields an
// integer-only string.
func FromAtomic(atomic string, decimals int) (string, error) {
	atomic = strings.TrimSpace(atomic)
	n, err := parseAtomic(atomic)
	if err != nil {
		return "", err
	}
	quo, rem := new(big.Int).QuoRem(n, pow10(decimals), new(big.Int))
	if rem.Sign() == 0 {
		return quo.String(), nil
	}
	frac := strings.TrimRight(fmt.Sprintf("%0*s", decimals, rem.String()), "0")
	return quo.String() + "." + frac, nil
}

// BalanceCheck is the result of comparing an upload cost against available
// funds, all in atomic units.
type BalanceCheck struct {
	Cost       string `json:"cost"`
	Balance    string `json:"balance"`
	Sufficient bool   `json:"sufficient"`
	Shortfall  string `json:"shortfall"`
}

// CheckBalance compares cost and balance by exact integer subtraction.
// Shortfall is "0" when the balance covers the cost.
func CheckBalance(cost, balance string) (BalanceCheck, error) {
	c, err := parseAtomic(cost)
	if err != nil {
		return BalanceCheck{}, err
	}
	b, err := parseAtomic(balance)
	if err != nil {
		return BalanceCheck{}, err
	}
	out := BalanceCheck{Cost: c.String(), Balance: b.String(), Sufficient: b.Cmp(c) >= 0, Shortfall: "0"}
	if !out.Sufficient {
		out.Shortfall = new(big.Int).Sub(c, b).String()
	}
	return out, nil
}

func parseAtomic(s string) (*big.Int, error) {
	if s == "" || !isDigits(s) {
		return nil, invalidAmount(s)
	}
	n := new(big.Int)
	if _, ok := n.SetString(s, 10); !ok {
		return nil, invalidAmount(s)
	}
	return n, nil
}

func invalidAmount(s string) error {
	return fault.New(fault.KindArithmetic, fault.CodeInvalidAmount, fmt.Sprintf("invalid amount %q", s))
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
