package fundperf

import (
	"slices"
	"sync"
)

// DefaultSelectionSize is the number of funds selected at start.
const DefaultSelectionSize = 5

// Selection is the set of funds shown by every view.
//
// Changes are notified to subscribers, so that all views stay in sync. It is
// safe for concurrent use.
type Selection struct {
	mu        sync.Mutex
	funds     []string
	next      int
	observers map[int]func([]string)
}

// NewSelection returns a selection of funds.
func NewSelection(funds ...string) *Selection {
	return &Selection{funds: dedupe(funds), observers: make(map[int]func([]string))}
}

// DefaultSelection returns the selection of the first funds of the store.
func DefaultSelection(s *Store) *Selection {
	funds := s.Funds()
	names := make([]string, 0, DefaultSelectionSize)
	for i := 0; i < len(funds) && i < DefaultSelectionSize; i++ {
		names = append(names, funds[i].Name)
	}
	return NewSelection(names...)
}

// Funds returns a copy of the selected funds.
func (s *Selection) Funds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.funds)
}

// Set replaces the selection and notifies the subscribers.
//
// An empty selection is valid: views then ask to select at least one fund.
func (s *Selection) Set(funds []string) {
	s.mu.Lock()
	s.funds = dedupe(funds)
	observers := make([]func([]string), 0, len(s.observers))
	for _, id := range sortedKeys(s.observers) {
		observers = append(observers, s.observers[id])
	}
	current := slices.Clone(s.funds)
	s.mu.Unlock()

	// Observers run without the lock, so they can read the selection.
	for _, f := range observers {
		f(slices.Clone(current))
	}
}

// Subscribe registers f to be called on every change. The returned
// function cancels the subscription.
func (s *Selection) Subscribe(f func(funds []string)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.observers[id] = f
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// dedupe returns funds without blanks and repeated names, keeping the first occurrence.
func dedupe(funds []string) []string {
	out := make([]string, 0, len(funds))
	for _, f := range funds {
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func sortedKeys(m map[int]func([]string)) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
