package secretstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	createdAt time.Time
}

// MemoryStore keeps secrets in process memory.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]memoryEntry
}

// NewMemoryStore creates a MemoryStore, optionally seeded with name/value pairs.
func NewMemoryStore(seed map[string]string) *MemoryStore {
	m := make(map[string]memoryEntry, len(seed))
	now := time.Now()
	for k, v := range seed {
		m[k] = memoryEntry{value: v, createdAt: now}
	}
	return &MemoryStore{m: m}
}

func (s *MemoryStore) Create(ctx context.Context, name, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, name)
	}
	s.m[name] = memoryEntry{value: value, createdAt: time.Now()}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(s.m, name)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, prefix string) ([]SecretRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var refs []SecretRef
	for name, e := range s.m {
		if strings.HasPrefix(name, prefix) {
			refs = append(refs, SecretRef{Name: name, CreatedAt: e.createdAt})
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// Get returns the value stored under name.
func (s *MemoryStore) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.m[name]
	return e.value, ok
}

// Len returns the number of stored secrets.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
