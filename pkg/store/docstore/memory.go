package docstore

import (
	"context"
	"sync"
)

// MemoryBackend keeps documents in process memory. Used for tests and for
// throwaway deployments (storage.driver: memory).
type MemoryBackend struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string][]byte)}
}

func (b *MemoryBackend) Read(_ context.Context, name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	data, ok := b.docs[name]
	if !ok {
		return nil, ErrNotExist
	}
	return append([]byte(nil), data...), nil
}

func (b *MemoryBackend) Write(_ context.Context, name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.docs[name] = append([]byte(nil), data...)
	return nil
}
