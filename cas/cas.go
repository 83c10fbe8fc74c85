// Package cas provides the content-addressed blob store backing the
// in-process storage-network node.
package cas

import "github.com/ipfs/go-cid"

// Store is a minimal content-addressable blob store.
//
// Contract:
// - Put MUST be idempotent.
// - Stored blobs MUST be immutable.
// - Ids MUST be derived from the bytes written.
// - Get MUST return ErrNotFound when the id is absent.
type Store interface {
	Put(data []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}
