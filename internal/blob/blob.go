// Package blob provides an immutable, cheaply shareable byte buffer.
//
// A Sized is constructed once from a byte slice and never mutated again.
// Shared wraps a Sized so that many holders — the resident cache entry and
// any number of in-flight HTTP responses — can reference the same backing
// array without copying it and without any of them observing a mutation
// from another holder.
package blob

// Sized is an immutable byte buffer with its length cached alongside it.
//
// The invariant size == len(bytes) holds for the object's entire lifetime
// because bytes is never reassigned or appended to after New returns.
type Sized struct {
	bytes []byte
	size  int
}

// New wraps b in a Sized. The caller must not mutate b after this call;
// Sized takes logical ownership of the backing array.
func New(b []byte) Sized {
	return Sized{bytes: b, size: len(b)}
}

// Size returns the buffer's length in O(1).
func (s Sized) Size() int {
	return s.size
}

// Bytes returns the buffer's contents as a read-only view. Callers must
// not write through the returned slice.
func (s Sized) Bytes() []byte {
	return s.bytes
}

// Shared is a cheap-to-clone, shared-ownership handle over a Sized.
//
// Go's garbage collector already keeps the backing array alive as long as
// any slice header referencing it exists, so Shared need not do any
// refcounting of its own: cloning a Shared copies a small value type
// (a slice header and an int) and both copies alias the same array. The
// type exists to document that contract and to give it a name distinct
// from a bare []byte, so call sites can't accidentally treat a Shared as
// something safe to append to or resize.
type Shared struct {
	s Sized
}

// NewShared wraps a Sized for sharing.
func NewShared(s Sized) Shared {
	return Shared{s: s}
}

// AsSlice returns the shared bytes as a read-only slice for streaming.
func (h Shared) AsSlice() []byte {
	return h.s.bytes
}

// Size returns the shared buffer's length.
func (h Shared) Size() int {
	return h.s.size
}

// Clone returns a handle aliasing the same backing array. O(1), no copy.
func (h Shared) Clone() Shared {
	return h
}
