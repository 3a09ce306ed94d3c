package yaml

import (
	"bytes"
	"fmt"

	"github.com/mscno/awxify/pkg/format"
	"gopkg.in/yaml.v3"
)

// Encode builds the document as a node tree rather than marshaling a map so
// the body scalar can carry yaml.LiteralStyle. Keys stay plain and are quoted
// by the encoder only when they would otherwise resolve to a non-string.
//
// The encoder falls back to a double-quoted scalar when literal style is not
// representable, most notably for an empty body, which becomes "".
func (f *YamlFormatter) Encode(varName, body string) ([]byte, error) {
	indent := f.Indent
	if indent <= 0 {
		indent = DefaultIndent
	}

	doc := &yaml.Node{
		Kind: yaml.DocumentNode,
		Content: []*yaml.Node{
			mapping(
				stringNode(varName, 0),
				mapping(
					stringNode(format.AnsibleVaultKey, 0),
					stringNode(body, yaml.LiteralStyle),
				),
			),
		},
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(indent)
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %v", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to close yaml encoder: %v", err)
	}

	return buf.Bytes(), nil
}

func mapping(key, value *yaml.Node) *yaml.Node {
	return &yaml.Node{
		Kind:    yaml.MappingNode,
		Tag:     "!!map",
		Content: []*yaml.Node{key, value},
	}
}

func stringNode(value string, style yaml.Style) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: value,
		Style: style,
	}
}
