package cache

import (
	"fmt"
	"log/slog"

	"github.com/meigma/filecache/internal/counter"
	"github.com/meigma/filecache/internal/fsreader"
	"github.com/meigma/filecache/internal/resident"
)

// Builder validates a candidate configuration before constructing an
// Engine. Use NewBuilder, chain With* calls, then Build.
type Builder struct {
	limitBytes   int
	minFileBytes int
	maxFileBytes int
	reader       fsreader.Reader
	logger       *slog.Logger
}

// NewBuilder returns a Builder requiring a positive size_limit_bytes.
func NewBuilder(limitBytes int) *Builder {
	return &Builder{limitBytes: limitBytes}
}

// WithReader overrides the default fsreader.OS{} reader. Tests use this
// to inject synthetic filesystems.
func (b *Builder) WithReader(r fsreader.Reader) *Builder {
	b.reader = r
	return b
}

// WithLogger overrides the default discard logger. The engine logs I/O
// errors (other than not-found) at Error level.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithMinFileBytes sets a minimum size below which files are served but
// never retained — not worth the bookkeeping. 0 (the default) disables
// the bypass.
func (b *Builder) WithMinFileBytes(n int) *Builder {
	b.minFileBytes = n
	return b
}

// WithMaxFileBytes sets a maximum size above which files are served but
// never retained, independent of the admission policy's own size check.
// 0 (the default) disables the bypass.
func (b *Builder) WithMaxFileBytes(n int) *Builder {
	b.maxFileBytes = n
	return b
}

// Build validates the configuration and returns a ready Engine, or a
// *ConfigError enumerating every violation found.
func (b *Builder) Build() (*Engine, error) {
	var violations []string

	if b.limitBytes <= 0 {
		violations = append(violations, fmt.Sprintf("size_limit_bytes must be > 0, got %d", b.limitBytes))
	}
	if b.minFileBytes < 0 {
		violations = append(violations, fmt.Sprintf("min_file_bytes must be >= 0, got %d", b.minFileBytes))
	}
	if b.maxFileBytes < 0 {
		violations = append(violations, fmt.Sprintf("max_file_bytes must be >= 0, got %d", b.maxFileBytes))
	}
	if b.minFileBytes > 0 && b.maxFileBytes > 0 && b.minFileBytes > b.maxFileBytes {
		violations = append(violations, fmt.Sprintf(
			"min_file_bytes (%d) must be <= max_file_bytes (%d)", b.minFileBytes, b.maxFileBytes))
	}

	if len(violations) > 0 {
		return nil, &ConfigError{Violations: violations}
	}

	reader := b.reader
	if reader == nil {
		reader = fsreader.OS{}
	}
	logger := b.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Engine{
		counter:      counter.New(),
		resident:     resident.New(),
		limitBytes:   b.limitBytes,
		minFileBytes: b.minFileBytes,
		maxFileBytes: b.maxFileBytes,
		reader:       reader,
		logger:       logger,
	}, nil
}
