// Package httpfs wires a cache.Engine behind an http.Handler, the "HTTP
// static-file handler" the spec treats as an external collaborator: it
// supplies request paths, holds the shared engine, and streams the bytes
// the cache returns.
package httpfs

import (
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/meigma/filecache/cache"
)

// Handler serves files rooted at Root through a cache.Engine.
type Handler struct {
	Engine *cache.Engine
	Root   string // filesystem directory backing the cache's paths
	Logger *slog.Logger
}

// NewHandler returns a Handler. If logger is nil, a discard logger is used.
func NewHandler(engine *cache.Engine, root string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{Engine: engine, Root: root, Logger: logger}
}

// ServeHTTP resolves r.URL.Path against Root, asks the engine for the
// file, and streams it with a Content-Type derived from the extension.
// It never calls Engine methods concurrently with itself in a way the
// engine doesn't already support — Engine.GetOrCache is safe for
// concurrent use by design.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	clean := path.Clean("/" + r.URL.Path)
	fsPath := path.Join(h.Root, clean)

	handle, ok := h.Engine.GetOrCache(fsPath)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if mime, hasHint := handle.ContentTypeHint(); hasHint {
		w.Header().Set("Content-Type", mime)
	}
	w.Header().Set("Content-Length", strconv.Itoa(handle.Size()))

	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(handle.Bytes()); err != nil {
		h.Logger.Debug("response write failed", "path", fsPath, "error", err)
	}
}

// StatsHandler exposes the engine's occupancy for operational visibility
// (the spec's cache statistics, supplemented from the original's ad hoc
// stat fields).
func StatsHandler(engine *cache.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		stats := engine.Stats()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resident_entries":` + strconv.Itoa(stats.ResidentEntries) +
			`,"used_bytes":` + strconv.Itoa(stats.UsedBytes) +
			`,"size_limit_bytes":` + strconv.Itoa(stats.SizeLimitBytes) + `}`))
	}
}
