// Package growth implements the capacity policy shared by every growable
// string in the module.
//
// Growth at least doubles the current capacity, with a small absolute
// minimum, so N single-byte appends copy O(N) bytes in total.
package growth

import "sync/atomic"

// MinCap is the smallest capacity a heap buffer grows to.
const MinCap = 8

// Event describes one reallocation.
type Event struct {
	OldCap int
	NewCap int
	Copied int
}

// Observer receives every reallocation performed through Realloc.
type Observer func(Event)

var observer atomic.Pointer[Observer]

// SetObserver installs fn as the reallocation observer and returns the
// previous one. A nil fn removes the observer.
func SetObserver(fn Observer) Observer {
	var prev *Observer
	if fn == nil {
		prev = observer.Swap(nil)
	} else {
		prev = observer.Swap(&fn)
	}
	if prev == nil {
		return nil
	}
	return *prev
}

// Required returns length+additional, panicking on negative input or
// overflow.
func Required(length, additional int) int {
	if additional < 0 {
		panic("growth: negative count")
	}
	n := length + additional
	if n < length {
		panic("growth: capacity overflow")
	}
	return n
}

// Next returns the capacity to allocate so that at least required bytes fit,
// given the current capacity. It returns capacity unchanged when it already
// suffices.
func Next(capacity, required int) int {
	if required <= capacity {
		return capacity
	}
	n := capacity * 2
	if n < capacity {
		// doubling overflowed
		n = required
	}
	if n < required {
		n = required
	}
	if n < MinCap {
		n = MinCap
	}
	return n
}

// Realloc moves buf into a fresh allocation of the given capacity and
// returns it with the same length. capacity must be >= len(buf).
func Realloc(buf []byte, capacity int) []byte {
	if capacity < len(buf) {
		panic("growth: capacity below length")
	}
	out := make([]byte, len(buf), capacity)
	copy(out, buf)
	if p := observer.Load(); p != nil {
		(*p)(Event{OldCap: cap(buf), NewCap: capacity, Copied: len(buf)})
	}
	return out
}
