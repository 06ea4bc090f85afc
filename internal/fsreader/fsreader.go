// Package fsreader provides the blocking whole-file read primitive the
// cache engine uses on a miss.
package fsreader

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/meigma/filecache/internal/blob"
)

// Sentinel errors surfaced to callers. Neither outcome is cached. The
// engine tells ErrNotFound apart from every other failure, which it logs;
// its own callers see both as the same not-ok result.
var (
	ErrNotFound         = errors.New("fsreader: not found")
	ErrPermissionDenied = errors.New("fsreader: permission denied")
)

// Reader reads an entire file into memory, or fails.
//
// Implementations must not return a partial read: either the full
// contents come back with a nil error, or bytes must be ignored.
type Reader interface {
	Read(path string) (blob.Sized, error)
}

// OS reads files from the local filesystem via os.Open and io.ReadAll.
type OS struct{}

// Read implements Reader using the local filesystem.
func (OS) Read(path string) (blob.Sized, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the cache's caller, not raw user input
	if err != nil {
		return blob.Sized{}, translateOpenErr(path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return blob.Sized{}, translateOpenErr(path, err)
	}
	if !info.Mode().IsRegular() {
		return blob.Sized{}, ErrNotFound
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return blob.Sized{}, err
	}
	return blob.New(data), nil
}

func translateOpenErr(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermissionDenied
	default:
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return pathErr
		}
		return err
	}
}

// IsNotFound reports whether err indicates the path has no backing file.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
