// Package config loads staticcached's configuration: flags bound through
// Viper, with an optional JSON-with-comments config file standardized to
// plain JSON before Viper parses it (the same hujson.Standardize step
// calvinalkan-agent-task applies to its own JSONC config files).
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// Config is staticcached's configuration.
type Config struct {
	Root         string `json:"root"           mapstructure:"root"`
	Addr         string `json:"addr"           mapstructure:"addr"`
	CacheBytes   int    `json:"cache_bytes"    mapstructure:"cache_bytes"`
	MinFileBytes int    `json:"min_file_bytes" mapstructure:"min_file_bytes"`
	MaxFileBytes int    `json:"max_file_bytes" mapstructure:"max_file_bytes"`
}

// Default returns staticcached's built-in defaults.
func Default() Config {
	return Config{
		Root:       ".",
		Addr:       ":8080",
		CacheBytes: 64 << 20, // 64 MiB
	}
}

// LoadFile reads a JSONC config file at path and returns it standardized
// to plain JSON, ready for a JSON unmarshaler (or Viper's). A missing
// file is not an error — staticcached falls back to flags and defaults.
func LoadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is operator-supplied via --config
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: invalid JSONC: %w", path, err)
	}
	return standardized, nil
}

// UnmarshalFile is a convenience wrapper that loads and decodes a JSONC
// config file directly into a Config, for callers that don't need Viper's
// flag/env merging.
func UnmarshalFile(path string) (Config, error) {
	cfg := Default()
	data, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	if data == nil {
		return cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return cfg, nil
}
