// Package localnode is an in-process storage-network node.
//
// It implements network.Client with deterministic per-byte pricing, a funded
// account ledger, a content-addressed blob store, and ed25519-signed upload
// receipts. It exists for tests, local development, and the CLI's offline
// mode; it is not a real network.
package localnode

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/ipfs/go-cid"

	"blockref.dev/refstore/cas"
	"blockref.dev/refstore/network"
)

// ReceiptVersion is stamped on every receipt this node signs.
const ReceiptVersion = "1.0.0"

// Node is an in-process storage-network node.
//
// Content ids follow the CIDv1 raw + sha2-256 contract of the cas package, so
// retrieved bytes can always be checked against their id.
type Node struct {
	mu      sync.Mutex
	blobs   cas.Store
	tags    map[string][]network.Tag
	balance *big.Int
	price   *big.Int

	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
	now  func() time.Time
}

type Options struct {
	// Store backs uploaded blobs. Defaults to an in-memory store.
	Store cas.Store

	// PricePerByte is the atomic-unit price of one stored byte. Default "1000".
	PricePerByte string

	// Balance is the account's starting balance in atomic units. Default "0".
	Balance string

	// Seed is a 32-byte ed25519 seed for the receipt key. A random key is
	// generated when nil.
	Seed []byte

	// Now overrides the receipt clock (for tests).
	Now func() time.Time
}

func New(opts Options) (*Node, error) {
	store := opts.Store
	if store == nil {
		store = cas.NewMemory()
	}

	price, err := parseAmount(opts.PricePerByte, "1000")
	if err != nil {
		return nil, fmt.Errorf("localnode: invalid price per byte: %w", err)
	}
	balance, err := parseAmount(opts.Balance, "0")
	if err != nil {
		return nil, fmt.Errorf("localnode: invalid balance: %w", err)
	}

	var priv ed25519.PrivateKey
	if opts.Seed != nil {
		if len(opts.Seed) != ed25519.SeedSize {
			return nil, errors.New("localnode: seed must be 32 bytes")
		}
		priv = ed25519.NewKeyFromSeed(opts.Seed)
	} else {
		_, generated, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, err
		}
		priv = generated
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Node{
		blobs:   store,
		tags:    make(map[string][]network.Tag),
		balance: balance,
		price:   price,
		priv:    priv,
		pub:     priv.Public().(ed25519.PublicKey),
		now:     now,
	}, nil
}

func (n *Node) Price(ctx context.Context, byteLength int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if byteLength < 0 {
		return "", errors.New("localnode: negative byte length")
	}
	cost := new(big.Int).Mul(n.price, big.NewInt(int64(byteLength)))
	return cost.String(), nil
}

func (n *Node) Balance(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.balance.String(), nil
}

func (n *Node) Fund(ctx context.Context, atomicAmount string) (*network.FundReceipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	amount, err := parseAmount(atomicAmount, "")
	if err != nil {
		return nil, fmt.Errorf("localnode: invalid fund amount: %w", err)
	}

	n.mu.Lock()
	n.balance.Add(n.balance, amount)
	n.mu.Unlock()

	return &network.FundReceipt{ID: "fund-" + cas.SumString([]byte(atomicAmount+"|"+strconv.FormatInt(n.now().UnixNano(), 10)))}, nil
}

func (n *Node) Upload(ctx context.Context, data []byte, tags []network.Tag) (*network.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cost := new(big.Int).Mul(n.price, big.NewInt(int64(len(data))))

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.balance.Cmp(cost) < 0 {
		return nil, network.ErrInsufficientFunds
	}

	id, err := n.blobs.Put(data)
	if err != nil {
		return nil, err
	}
	n.balance.Sub(n.balance, cost)
	n.tags[id.String()] = append([]network.Tag(nil), tags...)

	ts := n.now().UnixMilli()
	return &network.Receipt{
		ID:        id.String(),
		Timestamp: ts,
		Version:   ReceiptVersion,
		Signature: n.sign(id.String(), ts),
	}, nil
}

func (n *Node) Download(ctx context.Context, contentID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := cid.Decode(contentID)
	if err != nil || !id.Defined() {
		return nil, network.ErrInvalidContentID
	}
	b, err := n.blobs.Get(id)
	if err != nil {
		if cas.IsNotFound(err) {
			return nil, network.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// Tags returns the tag sequence recorded for a stored content id, in upload
// order.
func (n *Node) Tags(contentID string) []network.Tag {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]network.Tag(nil), n.tags[contentID]...)
}

// PublicKey returns the node's receipt-signing key.
func (n *Node) PublicKey() ed25519.PublicKey {
	return n.pub
}

func (n *Node) sign(id string, timestamp int64) string {
	sig := ed25519.Sign(n.priv, receiptScope(id, timestamp))
	return base64.StdEncoding.EncodeToString(sig)
}

// VerifyReceipt checks a receipt's signature against a node public key.
func VerifyReceipt(pub ed25519.PublicKey, r *network.Receipt) error {
	if r == nil || r.Signature == "" {
		return errors.New("localnode: unsigned receipt")
	}
	sig, err := base64.StdEncoding.DecodeString(r.Signature)
	if err != nil {
		return fmt.Errorf("localnode: invalid receipt signature encoding: %w", err)
	}
	if len(sig) != ed25519.SignatureSize {
		return errors.New("localnode: invalid receipt signature length")
	}
	if !ed25519.Verify(pub, receiptScope(r.ID, r.Timestamp), sig) {
		return errors.New("localnode: receipt signature did not verify")
	}
	return nil
}

func receiptScope(id string, timestamp int64) []byte {
	return []byte(id + "\n" + strconv.FormatInt(timestamp, 10))
}

func parseAmount(s, def string) (*big.Int, error) {
	if s == "" {
		s = def
	}
	if s == "" {
		return nil, errors.New("empty amount")
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("not a non-negative integer: %q", s)
	}
	return n, nil
}
