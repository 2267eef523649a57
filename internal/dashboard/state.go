// Package dashboard holds the in-memory record set the API serves from
// and computes the filtered views and aggregates over it.
package dashboard

import (
	"sync"

	"vendas/internal/core"
)

// State is the record collection every dashboard view derives from. A
// bulk load replaces it wholesale; pushed records are prepended. Both
// happen under the same lock as reads, so a record applied by the feed
// consumer is visible to the very next recomputation.
type State struct {
	mu      sync.RWMutex
	sales   []core.Sale
	version uint64
}

func NewState() *State {
	return &State{}
}

// LoadSnapshot replaces the collection with a freshly loaded record set.
func (s *State) LoadSnapshot(sales []core.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sales = make([]core.Sale, len(sales))
	copy(s.sales, sales)
	s.version++
}

// Push prepends a record delivered over the feed. No deduplication
// happens here: if the same record arrives from a reload and the feed,
// both copies count.
func (s *State) Push(sale core.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sales = append([]core.Sale{sale}, s.sales...)
	s.version++
}

// Reset drops every record, used on logout.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sales = nil
	s.version++
}

// Snapshot returns a copy of the current record set.
func (s *State) Snapshot() []core.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Sale, len(s.sales))
	copy(out, s.sales)
	return out
}

// Version increments on every mutation. Derived views cache against it
// so a feed push invalidates them without coordination.
func (s *State) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.version
}

// Len reports the number of held records.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sales)
}
