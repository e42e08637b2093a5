// Package errors renders journal errors for different consumers. Domain
// error types live with the code that raises them (parser, journal); this
// package is only the presentation layer, with a text renderer for the CLI
// and a JSON renderer for tooling.
package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/colindean/hledger/journal"
)

// Positioned is any error that can point at a place in a journal file.
type Positioned interface {
	error
	GetPosition() journal.Position
}

// Formatter renders errors for output.
type Formatter interface {
	Format(err error) string
	FormatAll(errs []error) string
}

// TextFormatter renders errors for command-line output: the message, then
// the offending source lines with a caret when source is available, then
// the include chain one frame per line.
type TextFormatter struct {
	sources map[string][]byte
}

// TextFormatterOption configures a TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource registers source content for a filename, enabling the caret
// context view for errors positioned in that file.
func WithSource(filename string, source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.sources[filename] = source
	}
}

// NewTextFormatter creates a text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{sources: make(map[string][]byte)}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format renders one error. Include wrappers render as a chain: each frame
// contributes an "included from" line and the innermost cause carries the
// message and source context.
func (tf *TextFormatter) Format(err error) string {
	var buf bytes.Buffer
	tf.format(&buf, err)
	return strings.TrimRight(buf.String(), "\n")
}

// FormatAll renders errors separated by blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, tf.Format(err))
	}
	return strings.Join(parts, "\n\n")
}

func (tf *TextFormatter) format(buf *bytes.Buffer, err error) {
	var positioned Positioned
	if !errors.As(err, &positioned) {
		buf.WriteString(err.Error())
		buf.WriteByte('\n')
		return
	}

	buf.WriteString(err.Error())
	buf.WriteByte('\n')

	// The innermost positioned error points at the actual offending line.
	deepest := positioned
	for {
		var next Positioned
		if !errors.As(errors.Unwrap(deepest), &next) {
			break
		}
		deepest = next
	}

	pos := deepest.GetPosition()
	if source, ok := tf.sources[pos.Filename]; ok {
		buf.WriteByte('\n')
		writeSourceContext(buf, pos, source)
	}
}

// writeSourceContext shows the lines around the error with a caret under
// the error column.
func writeSourceContext(buf *bytes.Buffer, pos journal.Position, source []byte) {
	lines := strings.Split(string(source), "\n")

	start := pos.Line - 3
	if start < 0 {
		start = 0
	}
	end := pos.Line
	if end >= len(lines) {
		end = len(lines) - 1
	}

	for i := start; i <= end; i++ {
		buf.WriteString("   ")
		buf.WriteString(lines[i])
		buf.WriteByte('\n')

		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", pos.Column-1))
			buf.WriteString("^\n")
		}
	}
}

// JSONFormatter renders errors as structured JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON is the wire shape of one error.
type ErrorJSON struct {
	Type     string        `json:"type"`
	Message  string        `json:"message"`
	Position *PositionJSON `json:"position,omitempty"`
	Cause    *ErrorJSON    `json:"cause,omitempty"`
}

// PositionJSON is the wire shape of a file position.
type PositionJSON struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format renders one error, including its cause chain, as a JSON object.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll renders errors as an indented JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	out := make([]*ErrorJSON, 0, len(errs))
	for _, err := range errs {
		out = append(out, jf.toJSON(err))
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	return string(data)
}

func (jf *JSONFormatter) toJSON(err error) *ErrorJSON {
	if err == nil {
		return nil
	}

	out := &ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
	}

	if e, ok := err.(Positioned); ok {
		pos := e.GetPosition()
		out.Position = &PositionJSON{
			Filename: pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column,
		}
	}

	if cause := errors.Unwrap(err); cause != nil {
		out.Cause = jf.toJSON(cause)
	}

	return out
}
