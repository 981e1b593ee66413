package subscription

import (
	"context"
	"sort"
	"sync"
)

// MemoryRegistry is an in-memory implementation of Registry.
// Suitable for development and testing.
type MemoryRegistry struct {
	mu   sync.RWMutex
	subs map[string]Subscription
}

// NewMemoryRegistry creates an empty in-memory registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{subs: make(map[string]Subscription)}
}

func (r *MemoryRegistry) Get(ctx context.Context, chatID string) (*Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.subs[chatID]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *MemoryRegistry) Active(ctx context.Context, category Category) ([]Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := []Subscription{}
	for _, s := range r.subs {
		if s.Wants(category) {
			subs = append(subs, s)
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].ChatID < subs[j].ChatID })
	return subs, nil
}

func (r *MemoryRegistry) Upsert(ctx context.Context, sub Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.subs[sub.ChatID]; ok {
		// Preserve the original creation time, matching the SQL upsert.
		sub.CreatedAt = existing.CreatedAt
	}
	r.subs[sub.ChatID] = sub
	return nil
}

func (r *MemoryRegistry) Deactivate(ctx context.Context, chatID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.subs[chatID]; ok {
		s.Active = false
		r.subs[chatID] = s
	}
	return nil
}
