package cache

import (
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/meigma/filecache/internal/admission"
	"github.com/meigma/filecache/internal/blob"
	"github.com/meigma/filecache/internal/counter"
	"github.com/meigma/filecache/internal/fsreader"
	"github.com/meigma/filecache/internal/resident"
)

// Engine is the cache's public surface. Construct one with Builder.
//
// Engine serializes its counter, resident set, and admission decisions
// under mu, but releases mu around the filesystem read on a miss — the
// "refined" locking discipline the spec allows as an alternative to
// holding the lock across disk I/O. Concurrent misses for the same path
// are additionally collapsed into a single fsreader.Reader.Read call via
// fetchGroup, the same singleflight pattern meigma-blob's cache.Blob uses
// to deduplicate concurrent ReadFile calls.
type Engine struct {
	mu       sync.Mutex
	counter  *counter.Counter
	resident *resident.Set

	limitBytes   int
	minFileBytes int // 0 disables the bypass
	maxFileBytes int // 0 disables the bypass

	reader     fsreader.Reader
	logger     *slog.Logger
	fetchGroup singleflight.Group
}

// Stats is a diagnostic snapshot of the engine's current state.
type Stats struct {
	ResidentEntries int
	UsedBytes       int
	SizeLimitBytes  int
}

// Get returns path's bytes if resident, incrementing its access count
// either way. Get never touches the filesystem and never admits or
// evicts.
func (e *Engine) Get(path string) (ResponseHandle, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.counter.Observe(path)
	h, ok := e.resident.Lookup(path)
	if !ok {
		return ResponseHandle{}, false
	}
	return ResponseHandle{path: path, handle: h}, true
}

// GetOrCache returns path's bytes, reading them from the filesystem on a
// miss. The returned handle is built from the freshly read bytes
// unconditionally, even if the cache declines to retain them — the
// caller always gets a file it successfully read once.
//
// GetOrCache returns (ResponseHandle{}, false) if the path has no backing
// file, or if reading it failed for any other reason; the access count is
// still incremented in both cases (a transiently unreadable file that
// keeps being requested becomes more competitive once it can be read).
func (e *Engine) GetOrCache(path string) (ResponseHandle, bool) {
	e.mu.Lock()
	e.counter.Observe(path)
	if h, ok := e.resident.Lookup(path); ok {
		e.mu.Unlock()
		return ResponseHandle{path: path, handle: h}, true
	}
	e.mu.Unlock()

	sized, err := e.readDeduped(path)
	if err != nil {
		if !fsreader.IsNotFound(err) {
			e.logger.Error("file cache read failed", "path", path, "error", err)
		}
		return ResponseHandle{}, false
	}

	shared := blob.NewShared(sized)
	handle := ResponseHandle{path: path, handle: shared}

	e.mu.Lock()
	e.admitOrReject(path, shared)
	e.mu.Unlock()

	return handle, true
}

// readDeduped reads path via fetchGroup so that concurrent misses on the
// same path share one disk read instead of each performing their own.
func (e *Engine) readDeduped(path string) (blob.Sized, error) {
	v, err, _ := e.fetchGroup.Do(path, func() (any, error) {
		return e.reader.Read(path)
	})
	if err != nil {
		return blob.Sized{}, err
	}
	sized, _ := v.(blob.Sized) //nolint:errcheck // type assertion always succeeds when err is nil
	return sized, nil
}

// admitOrReject applies the size-bypass filters and, failing that, the
// admission policy, mutating the resident set accordingly. Must be called
// with mu held.
func (e *Engine) admitOrReject(path string, shared blob.Shared) {
	size := shared.Size()
	if e.minFileBytes > 0 && size < e.minFileBytes {
		return
	}
	if e.maxFileBytes > 0 && size > e.maxFileBytes {
		return
	}

	cand := admission.Candidate{
		Path:  path,
		Size:  size,
		Count: e.counter.Peek(path),
	}
	decision := admission.Decide(e.resident, e.counter, e.limitBytes, cand)

	switch decision.Kind {
	case admission.Admit:
		e.resident.Insert(path, shared)
	case admission.Evict:
		for _, victim := range decision.Victim {
			e.resident.Remove(victim)
		}
		e.resident.Insert(path, shared)
	case admission.Reject:
		// Nothing to do: the caller still has handle from GetOrCache.
	}
}

// Contains reports whether path is currently resident.
func (e *Engine) Contains(path string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resident.Contains(path)
}

// UsedBytes returns the sum of sizes of all resident entries.
func (e *Engine) UsedBytes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resident.UsedBytes()
}

// Len returns the number of resident entries.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resident.Len()
}

// Stats returns a snapshot of the engine's current occupancy.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Stats{
		ResidentEntries: e.resident.Len(),
		UsedBytes:       e.resident.UsedBytes(),
		SizeLimitBytes:  e.limitBytes,
	}
}
