// Package resident holds the set of paths currently retained in memory,
// plus a running total of the bytes they occupy.
package resident

import "github.com/meigma/filecache/internal/blob"

// entry pairs a resident path's shared bytes with nothing else — the
// access-frequency statistic lives in counter.Counter, not here, so that
// eviction never loses demand history.
type entry struct {
	handle blob.Shared
}

// Set is the path -> blob.Shared map plus its usedBytes aggregate.
//
// Like counter.Counter, Set is not internally synchronized; the engine
// that owns one holds an external lock across every call sequence that
// must observe a consistent usedBytes relative to the map.
type Set struct {
	entries   map[string]entry
	usedBytes int
}

// New returns an empty Set.
func New() *Set {
	return &Set{entries: make(map[string]entry)}
}

// Insert adds or replaces the resident entry for path, adjusting
// usedBytes by the size delta against any entry it replaces.
func (s *Set) Insert(path string, handle blob.Shared) {
	if old, ok := s.entries[path]; ok {
		s.usedBytes -= old.handle.Size()
	}
	s.entries[path] = entry{handle: handle}
	s.usedBytes += handle.Size()
}

// Remove deletes the resident entry for path, if any, and returns the
// handle that was removed.
func (s *Set) Remove(path string) (blob.Shared, bool) {
	old, ok := s.entries[path]
	if !ok {
		return blob.Shared{}, false
	}
	delete(s.entries, path)
	s.usedBytes -= old.handle.Size()
	return old.handle, true
}

// Lookup returns a clone of the resident handle for path, if present.
// Cloning is O(1) and does not copy bytes.
func (s *Set) Lookup(path string) (blob.Shared, bool) {
	e, ok := s.entries[path]
	if !ok {
		return blob.Shared{}, false
	}
	return e.handle.Clone(), true
}

// Contains reports whether path is resident.
func (s *Set) Contains(path string) bool {
	_, ok := s.entries[path]
	return ok
}

// UsedBytes returns the sum of sizes over all resident entries.
func (s *Set) UsedBytes() int {
	return s.usedBytes
}

// Len returns the number of resident entries.
func (s *Set) Len() int {
	return len(s.entries)
}

// Entry is a diagnostic snapshot of one resident path, returned by Iter.
type Entry struct {
	Path string
	Size int
}

// Iter calls yield once per resident entry, in unspecified order, for
// diagnostics. It does not expose the underlying blob.Shared.
func (s *Set) Iter(yield func(Entry) bool) {
	for path, e := range s.entries {
		if !yield(Entry{Path: path, Size: e.handle.Size()}) {
			return
		}
	}
}

// SizeOf returns the resident size of path, or (0, false) if absent.
// Used by the admission policy to size candidate victims without cloning
// their handle.
func (s *Set) SizeOf(path string) (int, bool) {
	e, ok := s.entries[path]
	if !ok {
		return 0, false
	}
	return e.handle.Size(), true
}

// Paths returns every resident path, in unspecified order.
func (s *Set) Paths() []string {
	paths := make([]string, 0, len(s.entries))
	for path := range s.entries {
		paths = append(paths, path)
	}
	return paths
}
