package blob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizedSizeMatchesLen(t *testing.T) {
	t.Parallel()

	s := New([]byte("hello world"))
	assert.Equal(t, 11, s.Size())
	assert.Equal(t, []byte("hello world"), s.Bytes())
}

func TestSizedEmpty(t *testing.T) {
	t.Parallel()

	s := New(nil)
	assert.Equal(t, 0, s.Size())
}

func TestSharedCloneAliasesBackingArray(t *testing.T) {
	t.Parallel()

	backing := []byte("shared content")
	h1 := NewShared(New(backing))
	h2 := h1.Clone()

	require.Equal(t, h1.Size(), h2.Size())
	assert.Equal(t, h1.AsSlice(), h2.AsSlice())

	// Mutating the original backing array is observable through both
	// handles — Shared promises zero-copy aliasing, not isolation from
	// external mutation of the slice it was built from.
	backing[0] = 'S'
	assert.Equal(t, byte('S'), h2.AsSlice()[0])
}

func TestSharedCloneIsIndependentValue(t *testing.T) {
	t.Parallel()

	h1 := NewShared(New([]byte("abc")))
	h2 := h1.Clone()
	assert.Equal(t, h1, h2)
}
