// Package counter provides a path-keyed, saturating access-frequency
// statistic whose lifetime is decoupled from cache residency.
package counter

import "math"

// Counter maps a path to a monotonically non-decreasing access count.
//
// Counter is not internally synchronized: the cache engine that owns one
// serializes all access under its own lock, per the spec's single-mutex
// concurrency discipline. A Counter is never asked to forget a path — its
// entries outlive any number of evictions of the corresponding resident
// entry, which is the whole point: a file that was popular, evicted, and
// requested again should be immediately competitive for re-admission.
type Counter struct {
	counts map[string]uint64
}

// New returns an empty Counter.
func New() *Counter {
	return &Counter{counts: make(map[string]uint64)}
}

// Observe increments the count for path (creating it at 1 if absent) and
// returns the new value. Saturates at math.MaxUint64 instead of wrapping.
func (c *Counter) Observe(path string) uint64 {
	n := c.counts[path]
	if n < math.MaxUint64 {
		n++
	}
	c.counts[path] = n
	return n
}

// Peek returns the current count for path without mutating it, or 0 if
// path has never been observed.
func (c *Counter) Peek(path string) uint64 {
	return c.counts[path]
}

// Known reports whether path has ever been observed.
func (c *Counter) Known(path string) bool {
	_, ok := c.counts[path]
	return ok
}

// Len returns the number of distinct paths ever observed.
func (c *Counter) Len() int {
	return len(c.counts)
}
