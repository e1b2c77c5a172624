package persist

import (
	"context"
	"sync"
)

// BlobStore abstracts the durable slot the snapshot lives in. Read reports
// found=false when nothing was ever written; that is not an error.
type BlobStore interface {
	Read(ctx context.Context) (data []byte, found bool, err error)
	Write(ctx context.Context, data []byte) error
}

// MemoryStore keeps the blob in process memory. Useful for tests and for
// running without a database.
type MemoryStore struct {
	mu    sync.RWMutex
	data  []byte
	found bool
}

// NewMemoryStore builds an empty in-memory blob store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Read(_ context.Context) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.found {
		return nil, false, nil
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, true, nil
}

func (s *MemoryStore) Write(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make([]byte, len(data))
	copy(s.data, data)
	s.found = true
	return nil
}
