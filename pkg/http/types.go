// Package http parses and represents HTTP header values, media types and
// request targets, and negotiates a response media type against an Accept
// header.
//
// # Thread Safety
//
// All parsed values are immutable and safe for concurrent use. Headers is
// owned by the request or response being assembled and must not be
// mutated from several goroutines at once.
//
// # Parsing APIs
//
//   - ParseMediaType, ParseFlexible - Content-Type style values
//   - ParseAccept, Negotiate - weighted preference lists and ranking
//   - ParseURI, ParseRequestTarget - the four request-target forms
//   - Headers, ParseHeaderBlock - ordered case-insensitive header fields
//
// Errors are *ParseError values; use errors.Is with ErrMalformed or
// ErrEmpty to classify them.
package http

import (
	"errors"
	"iter"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/shapestone/shape-httpval/internal/fastparser"
)

// Header represents a single HTTP header key-value pair.
type Header struct {
	Key   string
	Value string
}

// Headers is an ordered, repeatable list of HTTP headers.
// Lookup folds ASCII case; the original case of each name is preserved.
// Values are stored as raw text and parsed only by the typed accessors.
type Headers []Header

// Add appends a header without replacing existing ones.
func (h *Headers) Add(key, value string) {
	*h = append(*h, Header{Key: key, Value: value})
}

// Get returns the first header value for the given key (case-insensitive).
// Returns empty string if not found.
func (h Headers) Get(key string) string {
	v, _ := h.Lookup(key)
	return v
}

// Lookup returns the first value for key and whether one exists.
func (h Headers) Lookup(key string) (string, bool) {
	for _, hdr := range h {
		if fastparser.EqualFold(hdr.Key, key) {
			return hdr.Value, true
		}
	}
	return "", false
}

// Values returns all header values for the given key (case-insensitive).
func (h Headers) Values(key string) []string {
	var vals []string
	for _, hdr := range h {
		if fastparser.EqualFold(hdr.Key, key) {
			vals = append(vals, hdr.Value)
		}
	}
	return vals
}

// Has reports whether at least one header named key exists.
func (h Headers) Has(key string) bool {
	_, ok := h.Lookup(key)
	return ok
}

// Len returns the number of header fields, counting repeats.
func (h Headers) Len() int { return len(h) }

// All yields every name and value in insertion order.
func (h Headers) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, hdr := range h {
			if !yield(hdr.Key, hdr.Value) {
				return
			}
		}
	}
}

// Set replaces the first header with the given key (case-insensitive) or appends if not found.
// Later headers with the same key are removed.
func (h *Headers) Set(key, value string) {
	i := slices.IndexFunc(*h, func(hdr Header) bool { return fastparser.EqualFold(hdr.Key, key) })
	if i < 0 {
		h.Add(key, value)
		return
	}
	(*h)[i].Value = value
	tail := slices.DeleteFunc((*h)[i+1:], func(hdr Header) bool { return fastparser.EqualFold(hdr.Key, key) })
	*h = (*h)[:i+1+len(tail)]
}

// Del removes all headers with the given key (case-insensitive).
func (h *Headers) Del(key string) {
	*h = slices.DeleteFunc(*h, func(hdr Header) bool { return fastparser.EqualFold(hdr.Key, key) })
}

// Clone returns a copy of the headers.
func (h Headers) Clone() Headers {
	return slices.Clone(h)
}

// ContentLength returns the Content-Length header value, or -1 if absent or invalid.
func (h Headers) ContentLength() int64 {
	v := h.Get("Content-Length")
	if v == "" {
		return -1
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// ContentType parses the first Content-Type header. It reports false when
// the header is absent.
func (h Headers) ContentType() (MediaType, bool, error) {
	v, ok := h.Lookup("Content-Type")
	if !ok {
		return MediaType{}, false, nil
	}
	mt, err := ParseMediaType(v)
	if err != nil {
		return MediaType{}, true, errtrace.Wrap(err)
	}
	return mt, true, nil
}

// Accept parses every Accept header as one list. An absent header, or one
// holding only empty elements, yields "*/*".
func (h Headers) Accept() (Accept, error) {
	vals := h.Values("Accept")
	if len(vals) == 0 {
		return Accept{{MediaType: Any, Quality: MaxQuality}}, nil
	}
	a, err := ParseAccept(strings.Join(vals, ", "))
	if errors.Is(err, ErrEmpty) {
		return Accept{{MediaType: Any, Quality: MaxQuality}}, nil
	}
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return a, nil
}

// Negotiate picks the best of offered for the Accept headers. A malformed
// Accept header is returned as an error so the caller can choose between
// rejecting the request and ignoring the header.
func (h Headers) Negotiate(offered ...MediaType) (MediaType, bool, error) {
	a, err := h.Accept()
	if err != nil {
		return MediaType{}, false, errtrace.Wrap(err)
	}
	mt, ok := Negotiate(a, offered)
	return mt, ok, nil
}

// String renders the headers as "Name: value" lines separated by CRLF.
func (h Headers) String() string {
	var b strings.Builder
	for _, hdr := range h {
		b.WriteString(hdr.Key)
		b.WriteString(": ")
		b.WriteString(hdr.Value)
		b.WriteString("\r\n")
	}
	return b.String()
}
