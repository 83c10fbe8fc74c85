package localnode

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"blockref.dev/refstore/cas"
	"blockref.dev/refstore/network"
	"blockref.dev/refstore/network/testkit"
)

func newZeroBalanceNode(t *testing.T) network.Client {
	t.Helper()
	n, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return n
}

func TestConformance(t *testing.T) {
	testkit.RunClientConformance(t, newZeroBalanceNode)
}

func TestConformance_DirBacked(t *testing.T) {
	testkit.RunClientConformance(t, func(t *testing.T) network.Client {
		d, err := cas.NewDir(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		n, err := New(Options{Store: d})
		if err != nil {
			t.Fatal(err)
		}
		return n
	})
}

func TestNew_RejectsBadOptions(t *testing.T) {
	if _, err := New(Options{PricePerByte: "abc"}); err == nil {
		t.Error("bad price accepted")
	}
	if _, err := New(Options{Balance: "-5"}); err == nil {
		t.Error("negative balance accepted")
	}
	if _, err := New(Options{Seed: []byte{1, 2, 3}}); err == nil {
		t.Error("short seed accepted")
	}
}

func TestUpload_ContentIDIsContentAddressed(t *testing.T) {
	n, err := New(Options{Balance: "1000000000"})
	if err != nil {
		t.Fatal(err)
	}
	data := []byte(`{"k":"v"}`)
	receipt, err := n.Upload(context.Background(), data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if receipt.ID != cas.SumString(data) {
		t.Fatalf("id = %s, want %s", receipt.ID, cas.SumString(data))
	}
	if receipt.Version != ReceiptVersion {
		t.Errorf("version = %q", receipt.Version)
	}
}

func TestUpload_RecordsTagsInOrder(t *testing.T) {
	n, err := New(Options{Balance: "1000000000"})
	if err != nil {
		t.Fatal(err)
	}
	tags := []network.Tag{
		{Name: "Content-Type", Value: "application/json"},
		{Name: "App-Name", Value: "BlockRef"},
		{Name: "Data-Type", Value: "employment-reference"},
	}
	receipt, err := n.Upload(context.Background(), []byte("tagged"), tags)
	if err != nil {
		t.Fatal(err)
	}
	got := n.Tags(receipt.ID)
	if len(got) != len(tags) {
		t.Fatalf("tag count = %d, want %d", len(got), len(tags))
	}
	for i := range tags {
		if got[i] != tags[i] {
			t.Fatalf("tag %d = %+v, want %+v", i, got[i], tags[i])
		}
	}
}

func TestReceiptSignature(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	n, err := New(Options{Balance: "1000000000", Now: func() time.Time { return fixed }})
	if err != nil {
		t.Fatal(err)
	}
	receipt, err := n.Upload(context.Background(), []byte("signed"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if receipt.Timestamp != fixed.UnixMilli() {
		t.Errorf("timestamp = %d, want %d", receipt.Timestamp, fixed.UnixMilli())
	}
	if err := VerifyReceipt(n.PublicKey(), receipt); err != nil {
		t.Fatalf("VerifyReceipt: %v", err)
	}

	tampered := *receipt
	tampered.Timestamp++
	if err := VerifyReceipt(n.PublicKey(), &tampered); err == nil {
		t.Fatal("tampered receipt verified")
	}

	unsigned := *receipt
	unsigned.Signature = ""
	if err := VerifyReceipt(n.PublicKey(), &unsigned); err == nil {
		t.Fatal("unsigned receipt verified")
	}
}

func TestDownload_InvalidContentID(t *testing.T) {
	n := newZeroBalanceNode(t)
	_, err := n.Download(context.Background(), "not a cid")
	if !errors.Is(err, network.ErrInvalidContentID) {
		t.Fatalf("err = %v, want ErrInvalidContentID", err)
	}
}

func TestOperationsHonorCancellation(t *testing.T) {
	n, err := New(Options{Balance: "1000000000"})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := n.Price(ctx, 10); !errors.Is(err, context.Canceled) {
		t.Errorf("Price: %v", err)
	}
	if _, err := n.Balance(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Balance: %v", err)
	}
	if _, err := n.Fund(ctx, "1"); !errors.Is(err, context.Canceled) {
		t.Errorf("Fund: %v", err)
	}
	if _, err := n.Upload(ctx, []byte("x"), nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Upload: %v", err)
	}
	if _, err := n.Download(ctx, "bafy"); !errors.Is(err, context.Canceled) {
		t.Errorf("Download: %v", err)
	}
}

func TestUpload_Deduplicates(t *testing.T) {
	n, err := New(Options{Balance: "1000000000"})
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	data := []byte("stored twice")
	r1, err := n.Upload(ctx, data, nil)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := n.Upload(ctx, data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r1.ID != r2.ID {
		t.Fatalf("same bytes produced different ids: %s vs %s", r1.ID, r2.ID)
	}
	got, err := n.Download(ctx, r1.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("round trip mismatch")
	}
}
