package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/margianalogistics/logibot/internal/order"
)

// MemoryStorage is an in-memory implementation of Storage.
// Suitable for development and testing.
type MemoryStorage struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*Record
	byTuple map[tupleKey]uuid.UUID
}

type tupleKey struct {
	chatID      string
	orderNumber string
	eventType   order.EventType
}

// NewMemoryStorage creates an empty in-memory record storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		byID:    make(map[uuid.UUID]*Record),
		byTuple: make(map[tupleKey]uuid.UUID),
	}
}

func (s *MemoryStorage) Create(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := tupleKey{rec.ChatID, rec.OrderNumber, rec.EventType}
	if _, exists := s.byTuple[key]; exists {
		return ErrDuplicateRecord
	}

	stored := rec
	s.byID[rec.ID] = &stored
	s.byTuple[key] = rec.ID
	return nil
}

func (s *MemoryStorage) FindByEvent(ctx context.Context, chatID, orderNumber string, et order.EventType) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byTuple[tupleKey{chatID, orderNumber, et}]
	if !ok {
		return nil, ErrRecordNotFound
	}

	// Return a copy to prevent external mutation of stored state.
	rec := *s.byID[id]
	return &rec, nil
}

func (s *MemoryStorage) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return ErrRecordNotFound
	}
	if rec.Sent {
		return nil
	}

	rec.Sent = true
	sentAt := at
	rec.SentAt = &sentAt
	return nil
}

// Get returns a copy of the record by id. Test helper.
func (s *MemoryStorage) Get(id uuid.UUID) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	copy := *rec
	return &copy, true
}

// Len returns the number of stored records. Test helper.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
