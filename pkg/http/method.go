package http

import (
	"braces.dev/errtrace"

	"github.com/shapestone/shape-httpval/internal/fastparser"
	"github.com/shapestone/shape-httpval/internal/tokenizer"
)

// Method is an HTTP request method.
type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodPatch   Method = "PATCH"
)

// ParseMethod parses a method token. The standard methods are matched
// case-insensitively and returned upper-cased; extension methods are kept
// verbatim.
func ParseMethod(s string) (Method, error) {
	if s == "" {
		return "", errtrace.Wrap(newEmpty("empty method"))
	}
	if !tokenizer.IsToken(s) {
		return "", errtrace.Wrap(newMalformed(-1, "invalid method %q", s))
	}
	m, _ := fastparser.InternMethod([]byte(s))
	return Method(m), nil
}

// IsKnown reports whether m is one of the standard methods. The
// comparison is case-sensitive, as it is for the methods themselves.
func (m Method) IsKnown() bool {
	s, ok := fastparser.InternMethod([]byte(m))
	return ok && s == string(m)
}

// AllowsBody reports whether requests with method m normally carry content.
func (m Method) AllowsBody() bool {
	switch m {
	case MethodPost, MethodPut, MethodPatch, MethodDelete:
		return true
	}
	return false
}

func (m Method) String() string { return string(m) }
