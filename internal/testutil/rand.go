package testutil

import (
	"fmt"
	"sync"
)

// FixedRand returns predetermined values from IntN, in order.
//
// This makes slot selection deterministic: with mask "11111", a FixedRand
// holding 2 always selects slot 2. With a restricting mask the value is an
// index into the eligible slots, not a slot number.
//
// Thread-safety: FixedRand is safe for concurrent use via internal mutex.
type FixedRand struct {
	mu     sync.Mutex
	values []int
	idx    int
	calls  int
}

// NewFixedRand creates a FixedRand that yields values in order.
func NewFixedRand(values ...int) *FixedRand {
	return &FixedRand{values: values}
}

// IntN returns the next predetermined value.
//
// Panics if all values have been consumed or the value is outside [0,n).
// This is a fail-fast approach to catch test misconfiguration.
func (r *FixedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls++
	if r.idx >= len(r.values) {
		panic("FixedRand: all values exhausted")
	}
	v := r.values[r.idx]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("FixedRand: value %d outside [0,%d)", v, n))
	}
	r.idx++
	return v
}

// Calls returns how many times IntN has been called.
func (r *FixedRand) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// Reset rewinds to the first value.
func (r *FixedRand) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idx = 0
	r.calls = 0
}
