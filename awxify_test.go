package awxify

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/mscno/awxify/pkg/fileutils"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		wantVar     string
		wantBody    string
		wantErr     error
		errContains string
	}{
		{
			name:     "indented body",
			in:       "db_pass: !vault |\n  613233343536\n  373839",
			wantVar:  "db_pass",
			wantBody: "613233343536\n373839",
		},
		{
			name:     "trailing newline kept as empty last line",
			in:       "db_pass: !vault |\n  6132\n  3334\n",
			wantVar:  "db_pass",
			wantBody: "6132\n3334\n",
		},
		{
			name:     "header only",
			in:       "foo: !vault |",
			wantVar:  "foo",
			wantBody: "",
		},
		{
			name:     "surrounding whitespace stripped per line",
			in:       "token: !vault |\n\t 6132 \t\n   3334   ",
			wantVar:  "token",
			wantBody: "6132\n3334",
		},
		{
			name:    "only first separator splits the header",
			in:      "a: b: !vault |\n6132",
			wantErr: ErrNotAVaultFormat,
		},
		{
			name:    "plain value",
			in:      "x: plain",
			wantErr: ErrNotAVaultFormat,
		},
		{
			name:    "plain value with body",
			in:      "foo: bar\nbaz",
			wantErr: ErrNotAVaultFormat,
		},
		{
			name:    "tag without block indicator",
			in:      "foo: !vault\n6132",
			wantErr: ErrNotAVaultFormat,
		},
		{
			name:    "trailing space after tag",
			in:      "foo: !vault | \n6132",
			wantErr: ErrNotAVaultFormat,
		},
		{
			name:        "missing separator",
			in:          "foo",
			wantErr:     ErrMalformedHeader,
			errContains: `got "foo"`,
		},
		{
			name:    "empty input",
			in:      "",
			wantErr: ErrMalformedHeader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.in)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantVar, doc.VarName)
			assert.Equal(t, tt.wantBody, doc.Body)
		})
	}
}

func TestParseKeepsVariableNameVerbatim(t *testing.T) {
	doc, err := Parse(" spaced: !vault |\n6132")
	assert.NoError(t, err)
	assert.Equal(t, " spaced", doc.VarName)
}

func TestBuild(t *testing.T) {
	got := Build("db_pass", "613233343536\n373839")
	assert.Equal(t, map[string]map[string]string{
		"db_pass": {"__ansible_vault": "613233343536\n373839"},
	}, got)

	doc := Document{VarName: "db_pass", Body: "613233343536\n373839"}
	assert.Equal(t, got, doc.Map())
}

func TestConvertYaml(t *testing.T) {
	in := strings.NewReader("db_pass: !vault |\n  613233343536\n  373839")
	var out bytes.Buffer

	n, err := Convert(in, &out, fileutils.Yaml)
	assert.NoError(t, err)
	assert.Equal(t, out.Len(), n)

	expected := `db_pass:
  __ansible_vault: |-
    613233343536
    373839
`
	assert.Equal(t, expected, out.String())

	var parsed map[string]map[string]string
	assert.NoError(t, yaml.Unmarshal(out.Bytes(), &parsed))
	assert.Equal(t, "613233343536\n373839", parsed["db_pass"][AnsibleVaultKey])
}

func TestConvertDefaultsToYaml(t *testing.T) {
	var withDefault, withYaml bytes.Buffer
	_, err := Convert(strings.NewReader("db_pass: !vault |\n  6132"), &withDefault, "")
	assert.NoError(t, err)
	_, err = Convert(strings.NewReader("db_pass: !vault |\n  6132"), &withYaml, fileutils.Yaml)
	assert.NoError(t, err)

	assert.Equal(t, withYaml.String(), withDefault.String())
}

func TestConvertJson(t *testing.T) {
	in := strings.NewReader("db_pass: !vault |\n  613233343536\n  373839")
	var out bytes.Buffer

	_, err := Convert(in, &out, fileutils.Json)
	assert.NoError(t, err)
	assert.Equal(t, `{"db_pass": {"__ansible_vault": "613233343536\n373839"}}`+"\n", out.String())
}

func TestConvertJsonRoundTrip(t *testing.T) {
	inputs := []string{
		"db_pass: !vault |\n  613233343536\n  373839",
		"db_pass: !vault |\n  6132\n\n  3334\n",
		"foo: !vault |",
		`we"ird: !vault |` + "\n  61\\32",
	}

	for _, input := range inputs {
		doc, err := Parse(input)
		assert.NoError(t, err)

		var out bytes.Buffer
		_, err = Convert(strings.NewReader(input), &out, fileutils.Json)
		assert.NoError(t, err)

		var parsed map[string]map[string]string
		assert.NoError(t, json.Unmarshal(out.Bytes(), &parsed))
		assert.Equal(t, doc.Map(), parsed)
	}
}

func TestConvertHeaderOnly(t *testing.T) {
	var out bytes.Buffer
	_, err := Convert(strings.NewReader("foo: !vault |"), &out, fileutils.Json)
	assert.NoError(t, err)
	assert.Equal(t, `{"foo": {"__ansible_vault": ""}}`+"\n", out.String())

	out.Reset()
	_, err = Convert(strings.NewReader("foo: !vault |"), &out, fileutils.Yaml)
	assert.NoError(t, err)

	var parsed map[string]map[string]string
	assert.NoError(t, yaml.Unmarshal(out.Bytes(), &parsed))
	assert.Equal(t, map[string]map[string]string{"foo": {"__ansible_vault": ""}}, parsed)
}

func TestConvertRejectsPlainValue(t *testing.T) {
	for _, f := range fileutils.ValidFormats() {
		t.Run(string(f), func(t *testing.T) {
			var out bytes.Buffer
			n, err := Convert(strings.NewReader("foo: bar\nbaz"), &out, f)
			assert.True(t, errors.Is(err, ErrNotAVaultFormat), "got %v", err)
			assert.Equal(t, -1, n)
			assert.Equal(t, 0, out.Len())
		})
	}
}

func TestConvertUnsupportedFormat(t *testing.T) {
	var out bytes.Buffer
	_, err := Convert(strings.NewReader("foo: !vault |\n6132"), &out, fileutils.FileFormat("xml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
	assert.Equal(t, 0, out.Len())
}

func TestConvertGoldenFiles(t *testing.T) {
	tests := []struct {
		format fileutils.FileFormat
		golden string
	}{
		{fileutils.Yaml, "testdata/db_pass.yaml"},
		{fileutils.Json, "testdata/db_pass.json"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			in, err := os.Open("testdata/db_pass.vault")
			assert.NoError(t, err)
			defer in.Close()

			want, err := os.ReadFile(tt.golden)
			assert.NoError(t, err)

			var out bytes.Buffer
			_, err = Convert(in, &out, tt.format)
			assert.NoError(t, err)
			assert.Equal(t, string(want), out.String())
		})
	}
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestParseReaderKeepsReadError(t *testing.T) {
	readErr := errors.New("stdin closed")
	_, err := ParseReader(failingReader{err: readErr})
	assert.True(t, errors.Is(err, readErr), "got %v", err)
	assert.Contains(t, err.Error(), "error reading input")
}
