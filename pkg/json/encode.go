package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/mscno/awxify/pkg/format"
)

// Encode writes {"<varName>": {"__ansible_vault": "<body>"}} followed by a
// newline. The document has a fixed shape, so it is assembled directly to
// keep var_name ahead of the nested key; only the strings go through the
// JSON encoder.
func (f *JsonFormatter) Encode(varName, body string) ([]byte, error) {
	name, err := quote(varName)
	if err != nil {
		return nil, fmt.Errorf("failed to encode variable name: %v", err)
	}
	key, err := quote(format.AnsibleVaultKey)
	if err != nil {
		return nil, err
	}
	value, err := quote(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vault body: %v", err)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.Write(name)
	buf.WriteString(": {")
	buf.Write(key)
	buf.WriteString(": ")
	buf.Write(value)
	buf.WriteString("}}\n")
	return buf.Bytes(), nil
}

func quote(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return escapeNonASCII(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// escapeNonASCII rewrites every non-ASCII rune of an encoded string as a
// lower-case \uXXXX escape, as a surrogate pair above U+FFFF.
func escapeNonASCII(encoded []byte) []byte {
	out := make([]byte, 0, len(encoded))
	for _, r := range string(encoded) {
		switch {
		case r < utf8.RuneSelf:
			out = append(out, byte(r))
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			out = fmt.Appendf(out, `\u%04x\u%04x`, hi, lo)
		default:
			out = fmt.Appendf(out, `\u%04x`, r)
		}
	}
	return out
}
