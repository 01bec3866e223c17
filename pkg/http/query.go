package http

import (
	"iter"
	"strings"
)

// Query is the query component of a request target, kept as written.
// Pairs are split on '&' and then on the first '='; keys and values are
// percent-decoded, with '+' as a space, only when asked for.
type Query struct {
	raw string
	set bool
}

func parseQuery(raw string, offset int) (Query, error) {
	if err := validateEscaped(raw, classQuery, offset, "query"); err != nil {
		return Query{}, err
	}
	return Query{raw: raw, set: true}, nil
}

// ParseQuery parses a query string without the leading '?'.
func ParseQuery(s string) (Query, error) {
	return parseQuery(s, 0)
}

// IsSet reports whether the target had a '?', even with nothing after it.
func (q Query) IsSet() bool { return q.set }

// Raw returns the query as written.
func (q Query) Raw() string { return q.raw }

// String returns the query as written.
func (q Query) String() string { return q.raw }

// rawPairs yields the undecoded key and value of every non-empty piece.
func (q Query) rawPairs() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for piece := range strings.SplitSeq(q.raw, "&") {
			if piece == "" {
				continue
			}
			k, v, _ := strings.Cut(piece, "=")
			if !yield(k, v) {
				return
			}
		}
	}
}

// Pairs yields every decoded key and value in order.
func (q Query) Pairs() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for k, v := range q.rawPairs() {
			if !yield(unescape(k, true), unescape(v, true)) {
				return
			}
		}
	}
}

// Get returns the decoded value of the first pair named key.
func (q Query) Get(key string) (string, bool) {
	for k, v := range q.rawPairs() {
		if unescape(k, true) == key {
			return unescape(v, true), true
		}
	}
	return "", false
}

// Values returns the decoded values of every pair named key.
func (q Query) Values(key string) []string {
	var out []string
	for k, v := range q.rawPairs() {
		if unescape(k, true) == key {
			out = append(out, unescape(v, true))
		}
	}
	return out
}

// Has reports whether a pair named key exists.
func (q Query) Has(key string) bool {
	_, ok := q.Get(key)
	return ok
}

// Len returns the number of pairs.
func (q Query) Len() int {
	n := 0
	for range q.rawPairs() {
		n++
	}
	return n
}

// Equal reports whether q and other are textually identical.
func (q Query) Equal(other Query) bool {
	return q.set == other.set && q.raw == other.raw
}
