package pantry

import "sync"

// Store is the ordered in-memory pantry of one session.
// Order is insertion order and is only used for display.
type Store struct {
	mu    sync.RWMutex
	items []Item
}

// NewStore creates a store holding a copy of items
func NewStore(items ...Item) *Store {
	s := &Store{}
	s.Add(items...)
	return s
}

// Add appends items. Items with the same name are kept as separate entries.
func (s *Store) Add(items ...Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items...)
}

// ReplaceAll swaps the whole collection, as after a bulk edit
func (s *Store) ReplaceAll(items []Item) {
	replacement := make([]Item, len(items))
	copy(replacement, items)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = replacement
}

// RemoveByName removes every item whose trimmed, lowercased name matches one
// of names. It returns the number of items removed; zero is not an error.
func (s *Store) RemoveByName(names ...string) int {
	keys := make(map[string]struct{}, len(names))
	for _, name := range names {
		if key := nameKey(name); key != "" {
			keys[key] = struct{}{}
		}
	}
	if len(keys) == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		if _, ok := keys[nameKey(item.Name)]; ok {
			continue
		}
		kept = append(kept, item)
	}
	removed := len(s.items) - len(kept)
	s.items = kept
	return removed
}

// All returns a snapshot of the items in insertion order
func (s *Store) All() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

// Len returns the number of stored items
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
