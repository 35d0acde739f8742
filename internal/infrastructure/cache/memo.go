package cache

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Memo caches fn's results keyed by the JSON encoding of the argument. Entries
// are never evicted, so only wrap functions with a small argument space.
type Memo[A any, R any] struct {
	fn    func(A) R
	mu    sync.Mutex
	table map[string]R
}

func NewMemo[A any, R any](fn func(A) R) *Memo[A, R] {
	return &Memo[A, R]{fn: fn, table: map[string]R{}}
}

// Call returns the cached result for arg, computing it on first use.
// Concurrent first calls for the same arg may each run fn; the last one wins.
func (m *Memo[A, R]) Call(arg A) R {
	key := memoKey(arg)
	m.mu.Lock()
	if r, ok := m.table[key]; ok {
		m.mu.Unlock()
		return r
	}
	m.mu.Unlock()

	r := m.fn(arg)

	m.mu.Lock()
	m.table[key] = r
	m.mu.Unlock()
	return r
}

func (m *Memo[A, R]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.table)
}

// Memoize is shorthand for NewMemo(fn).Call.
func Memoize[A any, R any](fn func(A) R) func(A) R {
	return NewMemo(fn).Call
}

func memoKey(arg any) string {
	b, err := json.Marshal(arg)
	if err != nil {
		return fmt.Sprintf("%#v", arg)
	}
	return string(b)
}
