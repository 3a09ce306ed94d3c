package awxify

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mscno/awxify/pkg/fileutils"
	"github.com/mscno/awxify/pkg/format"
	"github.com/mscno/awxify/pkg/json"
	"github.com/mscno/awxify/pkg/toml"
	"github.com/mscno/awxify/pkg/yaml"
)

const (
	// VaultTag must follow the variable name on the first input line.
	VaultTag = format.VaultTag
	// AnsibleVaultKey is the nested key the vaulted body is stored under.
	AnsibleVaultKey = format.AnsibleVaultKey
	// DefaultFormat is used when no format is requested.
	DefaultFormat = fileutils.Yaml
)

// ErrNotAVaultFormat indicates that the header line does not carry the
// "!vault |" tag.
var ErrNotAVaultFormat = errors.New("not an ansible vaulted string")

// ErrMalformedHeader means the first line is not of the form "<name>: <tag>".
var ErrMalformedHeader = errors.New("malformed vault header")

// Document is a parsed vaulted variable.
type Document struct {
	// VarName is the variable name taken from the header line.
	VarName string
	// Body is the vault payload, one stripped line per input line.
	Body string
}

// Map returns the document in the shape AWX accepts as extra vars.
func (d Document) Map() map[string]map[string]string {
	return Build(d.VarName, d.Body)
}

// Build returns {varName: {"__ansible_vault": body}}.
func Build(varName, body string) map[string]map[string]string {
	return format.Wrap(varName, body)
}

// Parse reads a block of the form
//
//	db_pass: !vault |
//	  $ANSIBLE_VAULT;1.1;AES256
//	  6132...
//
// The header is split on the first ": ". Every line is stripped of
// surrounding whitespace and the lines after the header are joined with
// "\n" to form the body. Input consisting of the header alone yields an
// empty body.
func Parse(data string) (Document, error) {
	lines := strings.Split(data, "\n")

	varName, tag, ok := strings.Cut(lines[0], ": ")
	if !ok {
		return Document{}, fmt.Errorf("%w: expected \"<name>: %s\", got %q", ErrMalformedHeader, VaultTag, lines[0])
	}
	if tag != VaultTag {
		return Document{}, fmt.Errorf("%w: variable %q is tagged %q", ErrNotAVaultFormat, varName, tag)
	}

	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	return Document{
		VarName: varName,
		Body:    strings.Join(lines[1:], "\n"),
	}, nil
}

// ParseReader reads r to completion and parses the result.
func ParseReader(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("error reading input: %w", err)
	}
	return Parse(string(data))
}

// Encode serializes the document in the requested format. An empty format
// selects DefaultFormat.
func Encode(doc Document, fileFormat fileutils.FileFormat) ([]byte, error) {
	formatter, err := getFormatter(fileFormat)
	if err != nil {
		return nil, err
	}
	return formatter.Encode(doc.VarName, doc.Body)
}

// Config defines the options for ConvertWithConfig.
type Config struct {
	// Format selects the output serialization (defaults to DefaultFormat).
	Format fileutils.FileFormat
	// Logger for debug messages. Nothing is logged if nil.
	Logger *slog.Logger
}

// Convert reads a vaulted block from in and writes the wrapped document to
// out. Nothing is written unless parsing and encoding both succeed.
func Convert(in io.Reader, out io.Writer, fileFormat fileutils.FileFormat) (int, error) {
	return ConvertWithConfig(in, out, Config{Format: fileFormat})
}

// ConvertWithConfig is Convert with logging.
func ConvertWithConfig(in io.Reader, out io.Writer, config Config) (int, error) {
	if config.Format == "" {
		config.Format = DefaultFormat
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	doc, err := ParseReader(in)
	if err != nil {
		config.Logger.Debug("parsing failed", "error", err)
		return -1, err
	}
	config.Logger.Debug("parsed vault block", "var", doc.VarName, "body_bytes", len(doc.Body))

	data, err := Encode(doc, config.Format)
	if err != nil {
		config.Logger.Debug("encoding failed", "format", config.Format, "error", err)
		return -1, err
	}
	config.Logger.Debug("encoded document", "format", config.Format, "bytes", len(data))

	return out.Write(data)
}

func getFormatter(fileFormat fileutils.FileFormat) (format.Encoder, error) {
	switch fileFormat {
	case "", fileutils.Yaml:
		return &yaml.YamlFormatter{}, nil
	case fileutils.Json:
		return &json.JsonFormatter{}, nil
	case fileutils.Toml:
		return &toml.Formatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", fileFormat)
	}
}
