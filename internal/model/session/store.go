package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the append-only collection of accepted sessions.
type Store interface {
	Append(ctx context.Context, name string, elapsed float64, createdAt time.Time) (Record, error)
	List(ctx context.Context) ([]Record, error)
}

// IDGenerator produces record identifiers.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() string

// NewID implements IDGenerator.
func (f IDGeneratorFunc) NewID() string { return f() }

// UUIDGenerator issues random v4 identifiers.
var UUIDGenerator IDGenerator = IDGeneratorFunc(uuid.NewString)

// MemoryStore implements Store with an in-memory slice for the process lifetime.
type MemoryStore struct {
	mu    sync.RWMutex
	ids   IDGenerator
	items []Record
}

// NewMemoryStore returns an empty MemoryStore. A nil generator falls back to UUIDGenerator.
func NewMemoryStore(ids IDGenerator) *MemoryStore {
	if ids == nil {
		ids = UUIDGenerator
	}
	return &MemoryStore{ids: ids, items: make([]Record, 0, 16)}
}

// Append stores a new record at the end of the collection.
func (s *MemoryStore) Append(_ context.Context, name string, elapsed float64, createdAt time.Time) (Record, error) {
	record := Record{
		ID:        s.ids.NewID(),
		Name:      name,
		Time:      elapsed,
		CreatedAt: Timestamp{Time: createdAt.UTC()},
	}

	s.mu.Lock()
	s.items = append(s.items, record)
	s.mu.Unlock()

	return record, nil
}

// List returns a copy of all records in insertion order. It is never nil.
func (s *MemoryStore) List(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]Record, len(s.items))
	copy(copied, s.items)
	return copied, nil
}

// Reset drops every record.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	s.items = make([]Record, 0, 16)
	s.mu.Unlock()
}
