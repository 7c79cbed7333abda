package synclog

import (
	"context"
	"sync"
)

// MemoryStore keeps attempts in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	capacity int
	entries  []Attempt
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty store bounded to capacity entries.
func NewMemoryStore(capacity int) (*MemoryStore, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &MemoryStore{capacity: capacity, entries: make([]Attempt, 0, capacity)}, nil
}

// Append prepends attempt and evicts from the tail.
func (s *MemoryStore) Append(_ context.Context, attempt Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Attempt, 0, min(len(s.entries)+1, s.capacity))
	next = append(next, attempt)
	next = append(next, s.entries...)
	if len(next) > s.capacity {
		next = next[:s.capacity]
	}
	s.entries = next
	return nil
}

// ReadAll returns a copy of the retained attempts, newest first.
func (s *MemoryStore) ReadAll(context.Context) ([]Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Attempt, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Capacity returns the retention bound.
func (s *MemoryStore) Capacity() int {
	return s.capacity
}
