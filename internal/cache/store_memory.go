package cache

import (
	"context"
	"sync"

	"Inventario/internal/productos"
)

// MemStore holds the serialized slot in process memory.
type MemStore struct {
	mu  sync.RWMutex
	raw []byte
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Save(_ context.Context, list []productos.Product) error {
	raw, err := encode(list)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = raw
	return nil
}

func (s *MemStore) Load(_ context.Context) ([]productos.Product, error) {
	s.mu.RLock()
	raw := s.raw
	s.mu.RUnlock()

	if raw == nil {
		return []productos.Product{}, nil
	}
	return decode(raw)
}

func (s *MemStore) Ping(context.Context) error { return nil }

// SetRaw overwrites the slot with arbitrary text.
func (s *MemStore) SetRaw(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = []byte(raw)
}
