package ledger

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps a snapshot of the ledger in memory. Used by tests and by
// dry runs that must not touch disk.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Load(ctx context.Context) (*Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := New()
	if s.data == nil {
		return l, nil
	}
	if err := json.Unmarshal(s.data, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *MemoryStore) Save(ctx context.Context, l *Ledger) error {
	data, err := json.Marshal(l)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error { return nil }
