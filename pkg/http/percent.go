package http

import (
	"strings"
	"unicode/utf8"
)

// Character classes from RFC 3986 Section 2.
const (
	classUnreserved = 1 << iota
	classSubDelim
	classPchar    // unreserved / sub-delims / ":" / "@"
	classQuery    // visible ASCII except '#'
	classUserinfo // unreserved / sub-delims / ":"
)

var uriChars = func() (t [256]uint8) {
	for c := 'a'; c <= 'z'; c++ {
		t[c] |= classUnreserved
	}
	for c := 'A'; c <= 'Z'; c++ {
		t[c] |= classUnreserved
	}
	for c := '0'; c <= '9'; c++ {
		t[c] |= classUnreserved
	}
	for _, c := range "-._~" {
		t[c] |= classUnreserved
	}
	for _, c := range "!$&'()*+,;=" {
		t[c] |= classSubDelim
	}
	for i := range t {
		if t[i]&(classUnreserved|classSubDelim) != 0 {
			t[i] |= classPchar | classUserinfo
		}
	}
	t[':'] |= classPchar | classUserinfo
	t['@'] |= classPchar
	for c := 0x21; c < 0x7F; c++ {
		if c != '#' {
			t[c] |= classQuery
		}
	}
	return t
}()

func is(c byte, class uint8) bool { return uriChars[c]&class != 0 }

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// validateEscaped checks that every byte of s is in class or starts a
// valid %XX escape, and that the decoded bytes are UTF-8. offset is the
// position of s in the full input, used for error reporting.
func validateEscaped(s string, class uint8, offset int, what string) error {
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' {
			if i+2 >= len(s) {
				return newMalformed(offset+i, "truncated percent-encoding in %s", what)
			}
			_, ok1 := unhex(s[i+1])
			_, ok2 := unhex(s[i+2])
			if !ok1 || !ok2 {
				return newMalformed(offset+i, "invalid percent-encoding %q in %s", s[i:i+3], what)
			}
			escaped = true
			i += 2
			continue
		}
		if !is(c, class) {
			return newMalformed(offset+i, "invalid character %q in %s", c, what)
		}
	}
	if escaped && !utf8.ValidString(unescape(s, false)) {
		return newMalformed(offset, "percent-encoded %s is not valid UTF-8", what)
	}
	return nil
}

// unescape decodes a string already accepted by validateEscaped.
// plus selects query semantics where '+' is a space.
func unescape(s string, plus bool) string {
	n := strings.IndexByte(s, '%')
	if n < 0 && (!plus || strings.IndexByte(s, '+') < 0) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '%' && i+2 < len(s):
			hi, _ := unhex(s[i+1])
			lo, _ := unhex(s[i+2])
			b.WriteByte(hi<<4 | lo)
			i += 2
		case c == '+' && plus:
			b.WriteByte(' ')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

// escape percent-encodes every byte of s outside class.
func escape(s string, class uint8) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !is(s[i], class) {
			n++
		}
	}
	if n == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if is(c, class) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}
