// Package contenttype derives a MIME type hint from a file path's
// extension using a small, fixed table — the Go analogue of Rocket's
// ContentType::from_extension used by the original Rust implementation.
package contenttype

import "strings"

var byExtension = map[string]string{
	"html": "text/html; charset=utf-8",
	"htm":  "text/html; charset=utf-8",
	"css":  "text/css; charset=utf-8",
	"js":   "text/javascript; charset=utf-8",
	"mjs":  "text/javascript; charset=utf-8",
	"json": "application/json",
	"xml":  "application/xml",
	"txt":  "text/plain; charset=utf-8",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"svg":  "image/svg+xml",
	"webp": "image/webp",
	"ico":  "image/x-icon",
	"wasm": "application/wasm",
	"pdf":  "application/pdf",
	"woff": "font/woff",
	"woff2": "font/woff2",
}

// Hint returns the conventional MIME type for path's extension and true,
// or ("", false) if the extension is unknown or absent.
func Hint(path string) (string, bool) {
	ext := extension(path)
	if ext == "" {
		return "", false
	}
	mime, ok := byExtension[ext]
	return mime, ok
}

// extension returns the lowercase extension of path without its leading
// dot, or "" if path has none. This is a path-string operation rather
// than filepath.Ext so it behaves the same for root-relative cache keys
// on any host OS.
func extension(path string) string {
	slash := strings.LastIndexByte(path, '/')
	name := path
	if slash >= 0 {
		name = path[slash+1:]
	}
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 || dot == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[dot+1:])
}
