// Package yaml provides a format.Encoder that renders vault variables as YAML.
package yaml

// DefaultIndent matches the two-space indentation Ansible inventories use.
const DefaultIndent = 2

// YamlFormatter implements format.Encoder for YAML output. The vaulted body
// is emitted as a literal block scalar so the ciphertext lines survive
// unquoted, the way they appear in a vars file.
type YamlFormatter struct {
	// Indent is the number of spaces per nesting level. Zero means DefaultIndent.
	Indent int
}
