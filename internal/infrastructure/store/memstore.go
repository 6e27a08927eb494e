package store

import (
	"sync"

	"github.com/pzf-studio/MAshop-sub000/internal/domain/shared"
)

// MemStore is an in-memory Store for tests. It enforces the same
// quota and recovery semantics as FileStore but never touches disk
// and produces no cross-context notifications.
type MemStore struct {
	mu     sync.Mutex
	quota  int64
	values map[string]string
}

// NewMemStore creates an in-memory store. quota <= 0 selects
// DefaultQuotaBytes.
func NewMemStore(quota int64) *MemStore {
	if quota <= 0 {
		quota = DefaultQuotaBytes
	}
	return &MemStore{
		quota:  quota,
		values: make(map[string]string),
	}
}

func (s *MemStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(key, value)
}

func (s *MemStore) SetWithRecovery(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.set(key, value); err == nil || !shared.ErrCapacityExceeded.Is(err) {
		return err
	}
	s.values = make(map[string]string)
	return s.set(key, value)
}

func (s *MemStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

func (s *MemStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]string)
}

func (s *MemStore) set(key, value string) error {
	var usage int64
	for k, v := range s.values {
		if k == key {
			continue
		}
		usage += int64(len(v))
	}
	if usage+int64(len(value)) > s.quota {
		return shared.ErrCapacityExceeded
	}
	s.values[key] = value
	return nil
}

var _ Store = (*MemStore)(nil)
