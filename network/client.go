// Package network defines the storage-network capability the reference store
// consumes: byte pricing, account balance, funding, tagged uploads, and
// retrieval by content id.
//
// The network's internal consensus and replication behavior is out of scope;
// implementations only honor this interface's contract.
package network

import "context"

// Tag is one (name, value) pair attached to an upload. Tags are an ordered
// sequence; implementations must preserve the order they are given in.
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Receipt is the node's acknowledgement of a stored upload.
//
// ID is the opaque content id addressing the uploaded bytes. Signature, when
// present, is the node's base64 ed25519 signature over the receipt scope and
// lets callers prove the node accepted the upload.
type Receipt struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Version   string `json:"version"`
	Signature string `json:"signature"`
}

// FundReceipt acknowledges a deposit into the account's balance.
type FundReceipt struct {
	ID string `json:"id"`
}

// Client is the opaque storage-network capability.
//
// All amounts are integer atomic-unit strings. Every method honors ctx
// cancellation; an abandoned in-flight call needs no cleanup because uploads
// are atomic at the network level (either a content id is returned or it is
// not). Implementations must be safe for concurrent use.
type Client interface {
	// Price returns the atomic-unit cost of storing byteLength bytes.
	Price(ctx context.Context, byteLength int) (string, error)

	// Balance returns the atomic-unit funds available to the account.
	Balance(ctx context.Context) (string, error)

	// Fund deposits atomic-unit funds into the account.
	Fund(ctx context.Context, atomicAmount string) (*FundReceipt, error)

	// Upload stores data with the given tags and returns a receipt carrying
	// the assigned content id. ErrInsufficientFunds is returned when the
	// account cannot cover the cost.
	Upload(ctx context.Context, data []byte, tags []Tag) (*Receipt, error)

	// Download returns the bytes addressed by contentID, or ErrNotFound.
	Download(ctx context.Context, contentID string) ([]byte, error)
}
