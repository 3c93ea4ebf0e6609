package store

import (
	"sync"

	"todo-api/domain"
)

// Store owns the authoritative item set. Items are kept in insertion
// order. All access goes through the store's lock and callers only ever
// see value copies, so a returned item is a snapshot, never a live
// reference into the set.
type Store struct {
	mu     sync.RWMutex
	items  []domain.TodoItem
	lastID int64
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// NextID returns a fresh id. IDs grow monotonically and are never
// reused, including after a removal.
func (s *Store) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	return s.lastID
}

// Insert appends the item to the end of the set.
func (s *Store) Insert(item domain.TodoItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
}

// FindByID returns a copy of the item with the given id.
func (s *Store) FindByID(id int64) (domain.TodoItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.TodoItem{}, false
}

// Update applies fn to the item with the given id under the store lock
// and returns a copy of the updated item. The whole read-modify-write is
// a single critical section, so concurrent updates never interleave.
func (s *Store) Update(id int64, fn func(*domain.TodoItem)) (domain.TodoItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			fn(&s.items[i])
			return s.items[i], true
		}
	}
	return domain.TodoItem{}, false
}

// RemoveByID removes the item with the given id, preserving the order of
// the remaining items, and returns a copy of what was removed.
func (s *Store) RemoveByID(id int64) (domain.TodoItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			removed := s.items[i]
			s.items = append(s.items[:i], s.items[i+1:]...)
			return removed, true
		}
	}
	return domain.TodoItem{}, false
}

// RemoveByIDIf removes the item with the given id only when pred holds
// for it, keeping the check and the removal in one critical section.
func (s *Store) RemoveByIDIf(id int64, pred func(domain.TodoItem) bool) (domain.TodoItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			if !pred(s.items[i]) {
				return domain.TodoItem{}, false
			}
			removed := s.items[i]
			s.items = append(s.items[:i], s.items[i+1:]...)
			return removed, true
		}
	}
	return domain.TodoItem{}, false
}

// All returns a point-in-time copy of the set in insertion order.
func (s *Store) All() []domain.TodoItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.TodoItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len reports the current number of items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
