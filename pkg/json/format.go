// Package json provides a format.Encoder that renders vault variables as JSON.
package json

// JsonFormatter implements format.Encoder for JSON output. Documents are
// written on a single line with ": " and ", " separators, the layout AWX
// shows for extra vars. Non-ASCII characters are written as \uXXXX escapes
// and HTML characters are left unescaped.
type JsonFormatter struct{}
