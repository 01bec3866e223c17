package http

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/shapestone/shape-httpval/internal/fastparser"
)

// Form identifies one of the request-target forms of RFC 7230 Section 5.3.
type Form uint8

const (
	FormOrigin Form = iota + 1
	FormAbsolute
	FormAuthority
	FormAsterisk
)

func (f Form) String() string {
	switch f {
	case FormOrigin:
		return "origin"
	case FormAbsolute:
		return "absolute"
	case FormAuthority:
		return "authority"
	case FormAsterisk:
		return "asterisk"
	}
	return "unknown"
}

// URI is a parsed request target: one of Origin, Absolute, Authority or
// Asterisk. Use a type switch to reach the form-specific accessors.
type URI interface {
	Form() Form
	String() string
	Equal(URI) bool
	isURI()
}

// ParseURI parses a request target without knowing the request method:
//
//	"*"              Asterisk
//	"/..."           Origin
//	"scheme://..."   Absolute
//	"host:port"      Authority
//
// Anything else, such as a bare name, is malformed.
//
// When the expected form is known, prefer ParseRequestTarget or the
// form-specific parsers.
func ParseURI(s string) (URI, error) {
	var (
		u   URI
		err error
	)
	switch {
	case s == "":
		return nil, errtrace.Wrap(newEmpty("empty request target"))
	case s == "*":
		return Asterisk{}, nil
	case s[0] == '/':
		u, err = parseOrigin(s)
	case fastparser.HasScheme(s):
		u, err = parseAbsolute(s)
	case strings.IndexByte(s, ':') >= 0:
		u, err = ParseAuthority(s)
	default:
		return nil, errtrace.Wrap(newMalformed(0, "%q is not a request target", s))
	}
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return u, nil
}

// MustParseURI is like ParseURI but panics on error.
func MustParseURI(s string) URI {
	u, err := ParseURI(s)
	if err != nil {
		panic(err)
	}
	return u
}

// ParseRequestTarget parses s in the forms allowed for method: CONNECT
// takes authority-form only, OPTIONS also accepts "*", and every other
// method takes origin-form or absolute-form.
func ParseRequestTarget(method Method, s string) (URI, error) {
	if s == "" {
		return nil, errtrace.Wrap(newEmpty("empty request target"))
	}
	var (
		u   URI
		err error
	)
	switch {
	case method == MethodConnect:
		u, err = ParseAuthority(s)
	case s == "*":
		if method != MethodOptions {
			return nil, errtrace.Wrap(newMalformed(0, "asterisk-form is only valid for OPTIONS, not %s", method))
		}
		u = Asterisk{}
	case s[0] == '/':
		u, err = ParseOrigin(s)
	default:
		u, err = ParseAbsolute(s)
	}
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return u, nil
}

// Asterisk is the "*" target of a server-wide OPTIONS request.
type Asterisk struct{}

// ParseAsterisk accepts only "*".
func ParseAsterisk(s string) (Asterisk, error) {
	if s == "" {
		return Asterisk{}, errtrace.Wrap(newEmpty("empty request target"))
	}
	if s != "*" {
		return Asterisk{}, errtrace.Wrap(newMalformed(0, "expected \"*\", got %q", s))
	}
	return Asterisk{}, nil
}

func (Asterisk) Form() Form     { return FormAsterisk }
func (Asterisk) String() string { return "*" }
func (Asterisk) isURI()         {}

// Equal implements URI.
func (Asterisk) Equal(u URI) bool {
	_, ok := u.(Asterisk)
	return ok
}

// Origin is an origin-form target: an absolute path with optional query
// and fragment.
type Origin struct {
	path        Path
	query       Query
	fragment    string
	hasFragment bool
}

// ParseOrigin parses an origin-form target such as "/a/b?x=1".
func ParseOrigin(s string) (Origin, error) {
	if s == "" {
		return Origin{}, errtrace.Wrap(newEmpty("empty request target"))
	}
	if s[0] != '/' {
		return Origin{}, errtrace.Wrap(newMalformed(0, "origin-form must start with '/'"))
	}
	return errtrace.Wrap2(parseOrigin(s))
}

// MustParseOrigin is like ParseOrigin but panics on error.
func MustParseOrigin(s string) Origin {
	o, err := ParseOrigin(s)
	if err != nil {
		panic(err)
	}
	return o
}

func parseOrigin(s string) (Origin, error) {
	return buildOrigin(fastparser.SplitTarget(s))
}

func buildOrigin(t fastparser.Target) (Origin, error) {
	var o Origin
	var err error
	if o.path, err = parsePath(t.Path, t.PathOffset); err != nil {
		return Origin{}, err
	}
	if t.HasQuery {
		if o.query, err = parseQuery(t.Query, t.QueryOffset); err != nil {
			return Origin{}, err
		}
	}
	if t.HasFragment {
		if err := validateEscaped(t.Fragment, classQuery, t.FragmentOffset, "fragment"); err != nil {
			return Origin{}, err
		}
		o.fragment, o.hasFragment = t.Fragment, true
	}
	return o, nil
}

// Path returns the path.
func (o Origin) Path() Path { return o.path }

// Query returns the query. Query.IsSet is false when there was no '?'.
func (o Origin) Query() Query { return o.query }

// Fragment returns the decoded fragment, if present.
func (o Origin) Fragment() (string, bool) {
	return unescape(o.fragment, false), o.hasFragment
}

// IsNormalized reports whether the path is normalized.
func (o Origin) IsNormalized() bool { return o.path.IsNormalized() }

// Normalize returns o with a normalized path.
func (o Origin) Normalize() Origin {
	o.path = o.path.Normalize()
	return o
}

func (Origin) Form() Form { return FormOrigin }
func (Origin) isURI()     {}

// String renders the target with the path minimally re-encoded and the
// query and fragment as written.
func (o Origin) String() string {
	var b strings.Builder
	b.WriteString(o.path.String())
	o.writeTail(&b)
	return b.String()
}

func (o Origin) writeTail(b *strings.Builder) {
	if o.query.IsSet() {
		b.WriteByte('?')
		b.WriteString(o.query.Raw())
	}
	if o.hasFragment {
		b.WriteByte('#')
		b.WriteString(o.fragment)
	}
}

func (o Origin) equal(other Origin) bool {
	return o.path.Equal(other.path) &&
		o.query.Equal(other.query) &&
		o.hasFragment == other.hasFragment &&
		o.fragment == other.fragment
}

// Equal implements URI.
func (o Origin) Equal(u URI) bool {
	other, ok := u.(Origin)
	return ok && o.equal(other)
}

// Absolute is an absolute-form target, "scheme://authority/path?query".
type Absolute struct {
	scheme    string
	authority Authority
	origin    Origin
}

// ParseAbsolute parses an absolute-form target such as
// "http://example.com/p?x=1".
func ParseAbsolute(s string) (Absolute, error) {
	if s == "" {
		return Absolute{}, errtrace.Wrap(newEmpty("empty request target"))
	}
	return errtrace.Wrap2(parseAbsolute(s))
}

func parseAbsolute(s string) (Absolute, error) {
	t := fastparser.SplitTarget(s)
	if !t.HasAuthority {
		return Absolute{}, newMalformed(0, "absolute-form requires \"scheme://\"")
	}
	auth, err := parseAuthority(t.Authority, t.AuthorityOffset, true)
	if err != nil {
		return Absolute{}, err
	}
	origin, err := buildOrigin(t)
	if err != nil {
		return Absolute{}, err
	}
	return Absolute{scheme: strings.ToLower(t.Scheme), authority: auth, origin: origin}, nil
}

// Scheme returns the lower-cased scheme.
func (a Absolute) Scheme() string { return a.scheme }

// Authority returns the authority.
func (a Absolute) Authority() Authority { return a.authority }

// Host returns the authority's host.
func (a Absolute) Host() string { return a.authority.Host() }

// Path returns the path, which is empty for "http://host".
func (a Absolute) Path() Path { return a.origin.path }

// Query returns the query.
func (a Absolute) Query() Query { return a.origin.query }

// Fragment returns the decoded fragment, if present.
func (a Absolute) Fragment() (string, bool) { return a.origin.Fragment() }

// Origin returns the origin-form equivalent used for routing. An empty
// path becomes "/".
func (a Absolute) Origin() Origin {
	o := a.origin
	if o.path.IsEmpty() {
		o.path = Path{raw: "/", trailingSlash: true}
	}
	return o
}

func (Absolute) Form() Form { return FormAbsolute }
func (Absolute) isURI()     {}

func (a Absolute) String() string {
	var b strings.Builder
	b.WriteString(a.scheme)
	b.WriteString("://")
	b.WriteString(a.authority.String())
	b.WriteString(a.origin.path.String())
	a.origin.writeTail(&b)
	return b.String()
}

// Equal implements URI.
func (a Absolute) Equal(u URI) bool {
	other, ok := u.(Absolute)
	return ok && a.scheme == other.scheme &&
		a.authority == other.authority &&
		a.origin.equal(other.origin)
}
