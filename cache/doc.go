// Package cache provides an in-memory file cache intended to sit behind
// an HTTP static-file handler.
//
// Given a path, Engine.GetOrCache returns the file's bytes — from memory
// if a copy is retained, or by reading the backing filesystem through an
// injected fsreader.Reader. On a miss, Engine consults an admission
// policy keyed on a per-path access count (maintained independently of
// residency) to decide whether the newly read bytes are worth retaining,
// and if retention would exceed the configured size limit, which
// currently-resident entries to evict to make room.
//
// Engine is safe for concurrent use: it serializes counter, residency,
// and admission-decision updates under an internal mutex, and releases
// that mutex around the (potentially slow) filesystem read on a miss so
// one slow disk read does not stall unrelated hits. Concurrent misses for
// the same path are collapsed into a single read via singleflight.
package cache
