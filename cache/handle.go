package cache

import (
	"github.com/meigma/filecache/internal/blob"
	"github.com/meigma/filecache/internal/contenttype"
)

// ResponseHandle is a cache-independent value returned to callers for
// streaming a file's bytes. It carries its own shared, immutable backing
// buffer, so it holds no lock and outlives the cache-lock release: the
// engine may evict the underlying resident entry before the response
// finishes streaming, and the bytes remain valid because the handle and
// the (now-gone) resident entry were always separate holders of the same
// blob.Shared.
type ResponseHandle struct {
	path   string
	handle blob.Shared
}

// Bytes returns the file's contents as a read-only slice for streaming.
func (h ResponseHandle) Bytes() []byte {
	return h.handle.AsSlice()
}

// Size returns len(Bytes()).
func (h ResponseHandle) Size() int {
	return h.handle.Size()
}

// Path returns the path this handle was built for.
func (h ResponseHandle) Path() string {
	return h.path
}

// ContentTypeHint returns the conventional MIME type for the handle's
// path extension, or ("", false) if the extension is unrecognized.
func (h ResponseHandle) ContentTypeHint() (string, bool) {
	return contenttype.Hint(h.path)
}
