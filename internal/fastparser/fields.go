package fastparser

import (
	"bytes"
	"fmt"

	"github.com/shapestone/shape-httpval/internal/tokenizer"
)

// Field is one "Name: value" line.
type Field struct {
	Name  string
	Value string
	Line  int
}

// LineError reports a malformed field line.
type LineError struct {
	Line int
	Msg  string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// fieldReader scans field lines from a byte slice.
type fieldReader struct {
	data   []byte
	pos    int
	length int
	line   int // 1-indexed line number for error reporting
}

// ParseFields reads every field line of data up to the first empty line.
func ParseFields(data []byte) ([]Field, error) {
	var r fieldReader
	initReader(&r, data)
	return r.readFields()
}

func initReader(r *fieldReader, data []byte) {
	r.data = data
	r.pos = 0
	r.length = len(data)
	r.line = 1
}

// readFields parses field lines until an empty line or the end of input.
// Lines may end in CRLF or a bare LF. Obsolete line folding is rejected.
func (r *fieldReader) readFields() ([]Field, error) {
	fields := make([]Field, 0, 8)

	for {
		if r.pos >= r.length {
			return fields, nil
		}

		if r.data[r.pos] == '\r' && r.pos+1 < r.length && r.data[r.pos+1] == '\n' {
			r.pos += 2
			r.line++
			return fields, nil
		}
		if r.data[r.pos] == '\n' {
			r.pos++
			r.line++
			return fields, nil
		}

		if r.data[r.pos] == ' ' || r.data[r.pos] == '\t' {
			return nil, r.errorf("obsolete line folding is not supported")
		}

		lineNo := r.line
		line := r.readLine()

		colon := bytes.IndexByte(line, ':')
		if colon < 0 {
			return nil, &LineError{Line: lineNo, Msg: fmt.Sprintf("missing colon in field line %q", line)}
		}
		name := line[:colon]
		if colon == 0 {
			return nil, &LineError{Line: lineNo, Msg: "empty field name"}
		}
		// RFC 9112: no whitespace between field-name and colon
		if name[colon-1] == ' ' || name[colon-1] == '\t' {
			return nil, &LineError{Line: lineNo, Msg: fmt.Sprintf("whitespace before colon in field name %q", name)}
		}
		for _, c := range name {
			if !tokenizer.IsTokenChar(c) {
				return nil, &LineError{Line: lineNo, Msg: fmt.Sprintf("invalid character %q in field name", c)}
			}
		}

		value := trimOWS(line[colon+1:])
		for _, c := range value {
			if c != '\t' && (c < 0x20 || c == 0x7F) {
				return nil, &LineError{Line: lineNo, Msg: fmt.Sprintf("control character %#02x in field value", c)}
			}
		}

		fields = append(fields, Field{
			Name:  InternHeaderName(name),
			Value: string(value),
			Line:  lineNo,
		})
	}
}

// readLine reads bytes until CRLF or LF, advancing pos.
// Returns the line content (without line ending).
func (r *fieldReader) readLine() []byte {
	start := r.pos
	for r.pos < r.length {
		if r.data[r.pos] == '\r' && r.pos+1 < r.length && r.data[r.pos+1] == '\n' {
			line := r.data[start:r.pos]
			r.pos += 2
			r.line++
			return line
		}
		if r.data[r.pos] == '\n' {
			line := r.data[start:r.pos]
			r.pos++
			r.line++
			return line
		}
		r.pos++
	}

	// No line ending, return the remaining data
	return r.data[start:r.pos]
}

// trimOWS trims optional whitespace (SP and HTAB) from both ends of b.
func trimOWS(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t') {
		b = b[1:]
	}
	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}
	return b
}

// EqualFold is a fast ASCII case-insensitive string comparison.
func EqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

func (r *fieldReader) errorf(format string, args ...any) error {
	return &LineError{Line: r.line, Msg: fmt.Sprintf(format, args...)}
}
