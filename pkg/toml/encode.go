package toml

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// vaultTable mirrors format.AnsibleVaultKey; the tag has to be a literal.
type vaultTable struct {
	Vault string `toml:"__ansible_vault,multiline"`
}

// Encode renders the variable as a table. A body that needs escaping, which
// is any body spanning several lines, becomes a multi-line basic string:
//
//	[varName]
//	__ansible_vault = """
//	...
//	"""
//
// Single-line bodies that need no escaping, the empty body included, stay on
// one line.
func (f *Formatter) Encode(varName, body string) ([]byte, error) {
	doc := map[string]vaultTable{
		varName: {Vault: body},
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode toml: %v", err)
	}
	return buf.Bytes(), nil
}
