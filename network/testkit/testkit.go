// Package testkit provides a conformance suite for network.Client
// implementations.
package testkit

import (
	"bytes"
	"context"
	"math/big"
	"testing"

	"blockref.dev/refstore/network"
)

// NewClient constructs a fresh client for a test, bound to an account with a
// zero balance. The returned client MUST be isolated from other tests.
type NewClient func(t *testing.T) network.Client

// RunClientConformance exercises the network.Client contract: pricing scales
// with length, funding credits the balance, uploads charge it, and downloads
// round-trip the stored bytes.
func RunClientConformance(t *testing.T, newClient NewClient) {
	t.Helper()
	ctx := context.Background()

	t.Run("PriceScalesWithLength", func(t *testing.T) {
		c := newClient(t)
		small, err := c.Price(ctx, 10)
		if err != nil {
			t.Fatalf("Price(10) failed: %v", err)
		}
		large, err := c.Price(ctx, 10_000)
		if err != nil {
			t.Fatalf("Price(10000) failed: %v", err)
		}
		if cmpAtomic(t, small, large) > 0 {
			t.Fatalf("Price not monotonic: %s for 10 bytes vs %s for 10000", small, large)
		}
	})

	t.Run("FundCreditsBalance", func(t *testing.T) {
		c := newClient(t)
		before, err := c.Balance(ctx)
		if err != nil {
			t.Fatalf("Balance failed: %v", err)
		}
		if _, err := c.Fund(ctx, "12345"); err != nil {
			t.Fatalf("Fund failed: %v", err)
		}
		after, err := c.Balance(ctx)
		if err != nil {
			t.Fatalf("Balance failed: %v", err)
		}
		want := new(big.Int).Add(atomic(t, before), big.NewInt(12345))
		if atomic(t, after).Cmp(want) != 0 {
			t.Fatalf("Fund accounting: balance %s -> %s, want %s", before, after, want)
		}
	})

	t.Run("UploadDownloadRoundTrip", func(t *testing.T) {
		c := newClient(t)
		payload := []byte(`{"hello":"storage network"}`)

		cost, err := c.Price(ctx, len(payload))
		if err != nil {
			t.Fatalf("Price failed: %v", err)
		}
		if _, err := c.Fund(ctx, cost); err != nil {
			t.Fatalf("Fund failed: %v", err)
		}

		tags := []network.Tag{{Name: "Content-Type", Value: "application/json"}}
		receipt, err := c.Upload(ctx, payload, tags)
		if err != nil {
			t.Fatalf("Upload failed: %v", err)
		}
		if receipt.ID == "" {
			t.Fatalf("Upload returned empty content id")
		}

		got, err := c.Download(ctx, receipt.ID)
		if err != nil {
			t.Fatalf("Download failed: %v", err)
		}
		if !bytes.Equal(got, payload) {
			t.Fatalf("Download bytes mismatch")
		}
	})

	t.Run("UploadChargesCost", func(t *testing.T) {
		c := newClient(t)
		payload := []byte("charged bytes")

		cost, err := c.Price(ctx, len(payload))
		if err != nil {
			t.Fatalf("Price failed: %v", err)
		}
		if _, err := c.Fund(ctx, cost); err != nil {
			t.Fatalf("Fund failed: %v", err)
		}
		if _, err := c.Upload(ctx, payload, nil); err != nil {
			t.Fatalf("Upload failed: %v", err)
		}
		after, err := c.Balance(ctx)
		if err != nil {
			t.Fatalf("Balance failed: %v", err)
		}
		if atomic(t, after).Sign() != 0 {
			t.Fatalf("Upload did not charge exact cost: residual balance %s", after)
		}
	})

	t.Run("UploadInsufficientFunds", func(t *testing.T) {
		c := newClient(t)
		_, err := c.Upload(ctx, []byte("unaffordable"), nil)
		if err == nil {
			t.Fatalf("Upload with zero balance should fail")
		}
		if err != network.ErrInsufficientFunds {
			t.Fatalf("Upload: got err=%v want ErrInsufficientFunds", err)
		}
	})

	t.Run("DownloadNotFound", func(t *testing.T) {
		c := newClient(t)
		_, err := c.Download(ctx, missingContentID)
		if !network.IsNotFound(err) {
			t.Fatalf("Download missing: got err=%v want ErrNotFound", err)
		}
	})
}

// missingContentID is a well-formed CIDv1 (raw + sha2-256) that no
// conformance test ever uploads.
const missingContentID = "bafkreihdwdcefgh4dqkjv67uzcmw7ojee6xedzdetojuzjevtenxquvyku"

func atomic(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("not an atomic amount: %q", s)
	}
	return n
}

func cmpAtomic(t *testing.T, a, b string) int {
	t.Helper()
	return atomic(t, a).Cmp(atomic(t, b))
}
