// Package fileutils provides utilities for naming output formats and
// locating input.
package fileutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileFormat represents a supported output serialization.
type FileFormat string

// Supported output formats.
const (
	// Yaml is the default output format.
	Yaml FileFormat = "yaml"
	// Json renders the document on a single line.
	Json FileFormat = "json"
	// Toml renders the variable as a table.
	Toml FileFormat = "toml"
)

// StdinPath is the input path that means "read standard input".
const StdinPath = "-"

// ValidFormats returns a slice of all supported formats.
func ValidFormats() []FileFormat {
	return []FileFormat{Yaml, Json, Toml}
}

// ParseFormat resolves a format name such as "json", ".yml" or "TOML".
// Returns an error if the format is not recognized.
func ParseFormat(input string) (FileFormat, error) {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(input), "."))
	if name == "yml" {
		return Yaml, nil
	}
	for _, format := range ValidFormats() {
		if name == string(format) {
			return format, nil
		}
	}

	return "", fmt.Errorf("unsupported format: %s", input)
}

// DetectFormat determines the format from a file name's extension, so
// "vars.json" gives Json and "/etc/awx/extra.yml" gives Yaml.
func DetectFormat(filename string) (FileFormat, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		return "", fmt.Errorf("cannot detect format of %s: no file extension", filename)
	}
	return ParseFormat(ext)
}

// ReadInput reads all of the named file, or all of stdin when the name is
// empty or StdinPath.
func ReadInput(filename string, stdin io.Reader) ([]byte, error) {
	if filename == "" || filename == StdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("error reading from stdin: %v", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %v", filename, err)
	}
	return data, nil
}
