// Package format holds the pieces shared by the per-format encoders.
package format

const (
	// VaultTag is the YAML tag Ansible writes in front of an encrypted scalar.
	VaultTag = "!vault |"
	// AnsibleVaultKey is the key AWX expects the vaulted payload under.
	AnsibleVaultKey = "__ansible_vault"
)

// Encoder renders a wrapped vault variable, {varName: {__ansible_vault: body}},
// in a concrete serialization format. Implementations return a complete
// document terminated by a newline.
type Encoder interface {
	Encode(varName, body string) ([]byte, error)
}

// Wrap returns the two-level mapping AWX accepts for a vaulted variable.
func Wrap(varName, body string) map[string]map[string]string {
	return map[string]map[string]string{
		varName: {
			AnsibleVaultKey: body,
		},
	}
}
