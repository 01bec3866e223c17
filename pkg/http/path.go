package http

import (
	"slices"
	"strings"
)

// Path is the path component of a request target.
//
// Segments are kept percent-encoded and decoded on access. Empty segments
// between slashes are preserved. A single trailing slash is recorded by
// EndsInSlash and does not produce a trailing empty segment; the root
// path "/" has no segments.
type Path struct {
	raw           string
	segs          []string
	trailingSlash bool
}

// parsePath validates and splits raw, which must be empty or start with '/'.
func parsePath(raw string, offset int) (Path, error) {
	p := Path{raw: raw}
	if raw == "" {
		return p, nil
	}
	if raw[0] != '/' {
		return Path{}, newMalformed(offset, "path must start with '/'")
	}
	rest := raw[1:]
	if rest == "" {
		p.trailingSlash = true
		return p, nil
	}

	pos := offset + 1
	for part := range strings.SplitSeq(rest, "/") {
		if err := validateEscaped(part, classPchar, pos, "path segment"); err != nil {
			return Path{}, err
		}
		p.segs = append(p.segs, part)
		pos += len(part) + 1
	}
	if p.segs[len(p.segs)-1] == "" {
		p.segs = p.segs[:len(p.segs)-1]
		p.trailingSlash = true
	}
	if len(p.segs) == 0 {
		p.segs = nil
	}
	return p, nil
}

// ParsePath parses an absolute path such as "/a/b%20c/".
func ParsePath(s string) (Path, error) {
	if s == "" {
		return Path{}, newEmpty("empty path")
	}
	return parsePath(s, 0)
}

// Raw returns the path as written.
func (p Path) Raw() string { return p.raw }

// IsEmpty reports whether the path is absent, as in "http://example.com".
func (p Path) IsEmpty() bool { return p.raw == "" }

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segs) }

// Segment returns the decoded segment at index i. It panics if i is out
// of range; see Get.
func (p Path) Segment(i int) string { return unescape(p.segs[i], false) }

// RawSegment returns the still-encoded segment at index i.
func (p Path) RawSegment(i int) string { return p.segs[i] }

// Get returns the decoded segment at index i, or false when i is out of
// range.
func (p Path) Get(i int) (string, bool) {
	if i < 0 || i >= len(p.segs) {
		return "", false
	}
	return p.Segment(i), true
}

// Segments returns all decoded segments.
func (p Path) Segments() []string {
	if len(p.segs) == 0 {
		return nil
	}
	out := make([]string, len(p.segs))
	for i := range p.segs {
		out[i] = p.Segment(i)
	}
	return out
}

// EndsInSlash reports whether the path ends in '/'. It is true for "/".
func (p Path) EndsInSlash() bool { return p.trailingSlash }

// IsNormalized reports whether the path has no empty segments and, unless
// it is the root, no trailing slash.
func (p Path) IsNormalized() bool {
	if p.trailingSlash && len(p.segs) > 0 {
		return false
	}
	return !slices.Contains(p.segs, "")
}

// Normalize drops empty segments and the trailing slash. An empty path
// becomes "/".
func (p Path) Normalize() Path {
	segs := slices.DeleteFunc(slices.Clone(p.segs), func(s string) bool { return s == "" })
	n := Path{segs: segs}
	if len(segs) == 0 {
		n.segs = nil
		n.trailingSlash = true
	}
	n.raw = n.render()
	return n
}

// String renders the path with each segment minimally re-encoded.
func (p Path) String() string {
	if p.raw == "" {
		return ""
	}
	return p.render()
}

func (p Path) render() string {
	if len(p.segs) == 0 {
		return "/"
	}
	var b strings.Builder
	for i := range p.segs {
		b.WriteByte('/')
		b.WriteString(escape(p.Segment(i), classPchar))
	}
	if p.trailingSlash {
		b.WriteByte('/')
	}
	return b.String()
}

// Equal reports whether p and other have the same decoded segments and
// trailing slash.
func (p Path) Equal(other Path) bool {
	if p.IsEmpty() != other.IsEmpty() || p.trailingSlash != other.trailingSlash || len(p.segs) != len(other.segs) {
		return false
	}
	for i := range p.segs {
		if p.segs[i] != other.segs[i] && p.Segment(i) != other.Segment(i) {
			return false
		}
	}
	return true
}
