package http

import (
	"errors"
	"fmt"

	"github.com/shapestone/shape-httpval/internal/parser"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// Malformed is a grammar violation: an unterminated quote, bad
	// percent-encoding, an invalid token character or an out-of-range
	// quality value.
	Malformed ErrorKind = iota + 1
	// Empty is zero-length input where a value was required.
	Empty
)

func (k ErrorKind) String() string {
	switch k {
	case Malformed:
		return "malformed input"
	case Empty:
		return "empty input"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinels matched by errors.Is against any *ParseError of the same kind.
var (
	ErrMalformed = errors.New("http: malformed input")
	ErrEmpty     = errors.New("http: empty input")
)

// ParseError represents an error that occurred while parsing a header value
// or request target.
type ParseError struct {
	Kind     ErrorKind
	Message  string // human-readable error message
	Line     int    // 1-indexed line number in a header block (0 if not applicable)
	Position int    // 1-indexed byte position in the input (0 if unknown)
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("http: %s at line %d: %s", e.Kind, e.Line, e.Message)
	}
	if e.Position > 0 {
		return fmt.Sprintf("http: %s at position %d: %s", e.Kind, e.Position, e.Message)
	}
	return fmt.Sprintf("http: %s: %s", e.Kind, e.Message)
}

// Is reports whether target is the sentinel for e's kind.
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrMalformed:
		return e.Kind == Malformed
	case ErrEmpty:
		return e.Kind == Empty
	}
	return false
}

func newMalformed(offset int, format string, args ...any) *ParseError {
	return &ParseError{Kind: Malformed, Message: fmt.Sprintf(format, args...), Position: offset + 1}
}

func newEmpty(what string) *ParseError {
	return &ParseError{Kind: Empty, Message: what}
}

// fromSyntax converts an internal grammar error into a ParseError.
func fromSyntax(err error) error {
	var se *parser.SyntaxError
	if !errors.As(err, &se) {
		return err
	}
	if se.Empty {
		return newEmpty(se.Msg)
	}
	return &ParseError{Kind: Malformed, Message: se.Msg, Position: se.Offset + 1}
}
