package cache_test

import (
	"errors"
	"sync/atomic"

	"github.com/meigma/filecache/internal/blob"
	"github.com/meigma/filecache/internal/fsreader"
)

// synthReader is a fsreader.Reader over an in-memory map, so cache tests
// don't need a real filesystem. It counts reads per path so tests can
// assert a resident hit never re-invokes the reader.
type synthReader struct {
	files map[string][]byte
	reads map[string]*int64
}

func newSynthReader(files map[string][]byte) *synthReader {
	reads := make(map[string]*int64, len(files))
	for path := range files {
		var n int64
		reads[path] = &n
	}
	return &synthReader{files: files, reads: reads}
}

func (r *synthReader) Read(path string) (blob.Sized, error) {
	data, ok := r.files[path]
	if !ok {
		return blob.Sized{}, fsreader.ErrNotFound
	}
	if n, ok := r.reads[path]; ok {
		atomic.AddInt64(n, 1)
	}
	return blob.New(append([]byte(nil), data...)), nil
}

func (r *synthReader) readCount(path string) int64 {
	n, ok := r.reads[path]
	if !ok {
		return 0
	}
	return atomic.LoadInt64(n)
}

var errSimulatedIO = errors.New("synthfs: simulated i/o failure")

// failingReader always fails with a non-not-found error, for exercising
// the IoError path (counter still increments, never cached).
type failingReader struct{}

func (failingReader) Read(string) (blob.Sized, error) {
	return blob.Sized{}, errSimulatedIO
}
