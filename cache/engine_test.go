package cache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/filecache/cache"
)

func bytesOf(n int) []byte {
	return make([]byte, n)
}

// S1: fits, no eviction.
func TestGetOrCacheFitsWithoutEviction(t *testing.T) {
	t.Parallel()

	reader := newSynthReader(map[string][]byte{"/a": bytesOf(300)})
	eng, err := cache.NewBuilder(1000).WithReader(reader).Build()
	require.NoError(t, err)

	h, ok := eng.GetOrCache("/a")
	require.True(t, ok)
	assert.Equal(t, 300, h.Size())
	assert.True(t, eng.Contains("/a"))
	assert.Equal(t, 300, eng.UsedBytes())
}

// S2: hit — resident, readable file is never re-read.
func TestGetOrCacheHitDoesNotReinvokeReader(t *testing.T) {
	t.Parallel()

	reader := newSynthReader(map[string][]byte{"/a": bytesOf(300)})
	eng, err := cache.NewBuilder(1000).WithReader(reader).Build()
	require.NoError(t, err)

	_, ok := eng.GetOrCache("/a")
	require.True(t, ok)
	_, ok = eng.GetOrCache("/a")
	require.True(t, ok)

	assert.Equal(t, int64(1), reader.readCount("/a"))
	assert.Equal(t, 300, eng.UsedBytes())
}

// S3: evict unpopular entry once the candidate's count exceeds it.
func TestGetOrCacheEvictsOnceMorePopular(t *testing.T) {
	t.Parallel()

	reader := newSynthReader(map[string][]byte{
		"/a": bytesOf(400),
		"/b": bytesOf(200),
	})
	eng, err := cache.NewBuilder(500).WithReader(reader).Build()
	require.NoError(t, err)

	_, ok := eng.GetOrCache("/a")
	require.True(t, ok)
	assert.True(t, eng.Contains("/a"))

	// First /b request: count becomes 1, equal to /a's count -> rejected.
	_, ok = eng.GetOrCache("/b")
	require.True(t, ok)
	assert.True(t, eng.Contains("/a"))
	assert.False(t, eng.Contains("/b"))

	// Second /b request: count becomes 2 > /a's count 1 -> admitted,
	// evicting /a.
	_, ok = eng.GetOrCache("/b")
	require.True(t, ok)
	assert.False(t, eng.Contains("/a"))
	assert.True(t, eng.Contains("/b"))
	assert.Equal(t, 200, eng.UsedBytes())
}

// S4: a file larger than the limit is served but never retained.
func TestGetOrCacheTooLargeServedNotRetained(t *testing.T) {
	t.Parallel()

	reader := newSynthReader(map[string][]byte{"/big": bytesOf(500)})
	eng, err := cache.NewBuilder(100).WithReader(reader).Build()
	require.NoError(t, err)

	h, ok := eng.GetOrCache("/big")
	require.True(t, ok)
	assert.Equal(t, 500, h.Size())
	assert.False(t, eng.Contains("/big"))
	assert.Equal(t, 0, eng.UsedBytes())

	// Repeated requests always re-read since it never sticks.
	_, ok = eng.GetOrCache("/big")
	require.True(t, ok)
	assert.Equal(t, int64(2), reader.readCount("/big"))
}

// S5: missing file returns not-found but still counts the access.
func TestGetOrCacheMissingFile(t *testing.T) {
	t.Parallel()

	reader := newSynthReader(map[string][]byte{})
	eng, err := cache.NewBuilder(1000).WithReader(reader).Build()
	require.NoError(t, err)

	h, ok := eng.GetOrCache("/ghost")
	assert.False(t, ok)
	assert.Equal(t, cache.ResponseHandle{}, h)
	assert.Equal(t, 0, eng.UsedBytes())
}

// IoError: a read failure other than not-found is reported as not-ok and
// nothing is retained.
func TestGetOrCacheIoErrorIsNotCached(t *testing.T) {
	t.Parallel()

	eng, err := cache.NewBuilder(1000).WithReader(failingReader{}).Build()
	require.NoError(t, err)

	_, ok := eng.GetOrCache("/broken")
	assert.False(t, ok)
	// Get never touches the filesystem, so it only finds /broken if the
	// failed read had left something resident.
	_, ok = eng.Get("/broken")
	assert.False(t, ok)
}

// Get never touches the filesystem and never admits.
func TestGetNeverReadsFilesystem(t *testing.T) {
	t.Parallel()

	reader := newSynthReader(map[string][]byte{"/a": bytesOf(10)})
	eng, err := cache.NewBuilder(1000).WithReader(reader).Build()
	require.NoError(t, err)

	h, ok := eng.Get("/a")
	assert.False(t, ok)
	assert.Equal(t, cache.ResponseHandle{}, h)
	assert.Equal(t, int64(0), reader.readCount("/a"))
	assert.False(t, eng.Contains("/a"))
}

// Round-trip: GetOrCache then Get returns byte-identical content.
func TestGetOrCacheThenGetRoundTrips(t *testing.T) {
	t.Parallel()

	reader := newSynthReader(map[string][]byte{"/a": []byte("round trip payload")})
	eng, err := cache.NewBuilder(1000).WithReader(reader).Build()
	require.NoError(t, err)

	h1, ok := eng.GetOrCache("/a")
	require.True(t, ok)
	h2, ok := eng.Get("/a")
	require.True(t, ok)
	assert.Equal(t, h1.Bytes(), h2.Bytes())
}

// Boundary: size limit exactly equal to one file's size.
func TestSizeLimitExactlyOneFile(t *testing.T) {
	t.Parallel()

	reader := newSynthReader(map[string][]byte{
		"/a": bytesOf(500),
		"/b": bytesOf(500),
	})
	eng, err := cache.NewBuilder(500).WithReader(reader).Build()
	require.NoError(t, err)

	_, ok := eng.GetOrCache("/a")
	require.True(t, ok)
	assert.True(t, eng.Contains("/a"))

	// /b arrives with equal count (1) -> not strictly greater -> rejected.
	_, ok = eng.GetOrCache("/b")
	require.True(t, ok)
	assert.True(t, eng.Contains("/a"))
	assert.False(t, eng.Contains("/b"))

	// Raise /b's count above /a's -> now admitted, evicting /a.
	_, ok = eng.GetOrCache("/b")
	require.True(t, ok)
	assert.False(t, eng.Contains("/a"))
	assert.True(t, eng.Contains("/b"))
}

// Min/max file size bypass: files outside the range are served but never
// retained, even when they'd otherwise be admitted.
func TestMinMaxFileSizeBypass(t *testing.T) {
	t.Parallel()

	reader := newSynthReader(map[string][]byte{
		"/tiny": bytesOf(1),
		"/huge": bytesOf(900),
		"/ok":   bytesOf(100),
	})
	eng, err := cache.NewBuilder(1000).
		WithReader(reader).
		WithMinFileBytes(10).
		WithMaxFileBytes(500).
		Build()
	require.NoError(t, err)

	_, ok := eng.GetOrCache("/tiny")
	require.True(t, ok)
	assert.False(t, eng.Contains("/tiny"))

	_, ok = eng.GetOrCache("/huge")
	require.True(t, ok)
	assert.False(t, eng.Contains("/huge"))

	_, ok = eng.GetOrCache("/ok")
	require.True(t, ok)
	assert.True(t, eng.Contains("/ok"))
}

// used_bytes never exceeds the configured limit, checked across a
// randomized-ish sequence of admits and evictions.
func TestUsedBytesNeverExceedsLimit(t *testing.T) {
	t.Parallel()

	files := map[string][]byte{
		"/a": bytesOf(50), "/b": bytesOf(70), "/c": bytesOf(30),
		"/d": bytesOf(90), "/e": bytesOf(20),
	}
	reader := newSynthReader(files)
	eng, err := cache.NewBuilder(120).WithReader(reader).Build()
	require.NoError(t, err)

	paths := []string{"/a", "/b", "/c", "/d", "/e", "/a", "/a", "/c", "/b", "/d"}
	for _, p := range paths {
		_, ok := eng.GetOrCache(p)
		require.True(t, ok)
		assert.LessOrEqual(t, eng.UsedBytes(), 120)
	}
}

// Concurrent misses for the same path are deduplicated into one read.
func TestConcurrentMissesDedupViaSingleflight(t *testing.T) {
	t.Parallel()

	reader := newSynthReader(map[string][]byte{"/a": []byte("concurrent content")})
	eng, err := cache.NewBuilder(1000).WithReader(reader).Build()
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	start := make(chan struct{})
	results := make([]cache.ResponseHandle, n)
	oks := make([]bool, n)

	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i], oks[i] = eng.GetOrCache("/a")
		}(i)
	}
	close(start)
	wg.Wait()

	for i := range n {
		require.True(t, oks[i])
		assert.Equal(t, "concurrent content", string(results[i].Bytes()))
	}
	assert.Equal(t, int64(1), reader.readCount("/a"))
}

func TestStatsReflectsOccupancy(t *testing.T) {
	t.Parallel()

	reader := newSynthReader(map[string][]byte{"/a": bytesOf(40)})
	eng, err := cache.NewBuilder(100).WithReader(reader).Build()
	require.NoError(t, err)

	_, ok := eng.GetOrCache("/a")
	require.True(t, ok)

	stats := eng.Stats()
	assert.Equal(t, 1, stats.ResidentEntries)
	assert.Equal(t, 40, stats.UsedBytes)
	assert.Equal(t, 100, stats.SizeLimitBytes)
}
