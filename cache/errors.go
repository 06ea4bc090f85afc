package cache

import "strings"

// ConfigError reports every validation failure found by Builder.Build at
// once, rather than failing on the first one, so a misconfigured caller
// sees the whole list in one pass.
type ConfigError struct {
	Violations []string
}

func (e *ConfigError) Error() string {
	return "cache: invalid configuration: " + strings.Join(e.Violations, "; ")
}
