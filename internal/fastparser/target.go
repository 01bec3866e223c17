// Package fastparser implements byte-level scanners that split request
// targets and header field lines without building an AST. It only finds
// component boundaries; validation and decoding belong to pkg/http.
package fastparser

import "strings"

// Target holds the components of a request target as substrings of the
// input. Offsets are byte positions in the input and are -1 when the
// component is absent.
type Target struct {
	Scheme    string
	Authority string
	Path      string
	Query     string
	Fragment  string

	HasAuthority bool
	HasQuery     bool
	HasFragment  bool

	AuthorityOffset int
	PathOffset      int
	QueryOffset     int
	FragmentOffset  int
}

// SplitTarget splits s at the first '#' (fragment), then at the first '?'
// (query). When the remainder starts with "scheme://", the scheme and the
// authority up to the next '/' are split off as well.
func SplitTarget(s string) Target {
	t := Target{AuthorityOffset: -1, PathOffset: 0, QueryOffset: -1, FragmentOffset: -1}

	rest := s
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		t.Fragment = rest[i+1:]
		t.HasFragment = true
		t.FragmentOffset = i + 1
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		t.Query = rest[i+1:]
		t.HasQuery = true
		t.QueryOffset = i + 1
		rest = rest[:i]
	}

	if n := schemeLen(rest); n > 0 && strings.HasPrefix(rest[n:], "://") {
		t.Scheme = rest[:n]
		start := n + 3
		end := strings.IndexByte(rest[start:], '/')
		if end < 0 {
			end = len(rest)
		} else {
			end += start
		}
		t.Authority = rest[start:end]
		t.HasAuthority = true
		t.AuthorityOffset = start
		t.Path = rest[end:]
		t.PathOffset = end
		return t
	}

	t.Path = rest
	return t
}

// HasScheme reports whether s starts with "scheme://".
func HasScheme(s string) bool {
	n := schemeLen(s)
	return n > 0 && strings.HasPrefix(s[n:], "://")
}

// schemeLen returns the length of the RFC 3986 scheme at the start of s,
// or 0 when s does not start with one.
func schemeLen(s string) int {
	if s == "" || !isAlpha(s[0]) {
		return 0
	}
	i := 1
	for i < len(s) {
		c := s[i]
		if !isAlpha(c) && !isDigit(c) && c != '+' && c != '-' && c != '.' {
			break
		}
		i++
	}
	return i
}

func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
