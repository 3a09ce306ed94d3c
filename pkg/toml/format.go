// Package toml provides a format.Encoder that renders vault variables as TOML.
package toml

// Formatter implements format.Encoder for TOML output. The variable becomes
// a table holding a single multi-line __ansible_vault string.
type Formatter struct{}
