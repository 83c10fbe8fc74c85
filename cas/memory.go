package cas

import (
	"sync"

	"github.com/ipfs/go-cid"
)

// Memory is an in-memory Store. It is safe for concurrent use and is the
// default backing store of the in-process network node.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Put(data []byte) (cid.Cid, error) {
	id, err := Sum(data)
	if err != nil {
		return cid.Undef, err
	}
	if !id.Defined() {
		return cid.Undef, ErrInvalidID
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.blobs[id.String()]; ok {
		if string(existing) != string(data) {
			return cid.Undef, ErrImmutable
		}
		return id, nil
	}
	m.blobs[id.String()] = append([]byte(nil), data...)
	return id, nil
}

func (m *Memory) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, ErrInvalidID
	}
	m.mu.RLock()
	b, ok := m.blobs[id.String()]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *Memory) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	m.mu.RLock()
	_, ok := m.blobs[id.String()]
	m.mu.RUnlock()
	return ok
}
