package http

import (
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/shapestone/shape-httpval/internal/parser"
	"github.com/shapestone/shape-httpval/internal/tokenizer"
)

// Param is a media type parameter. Name is lower-cased; Value is kept
// verbatim since values such as boundary are case-sensitive.
type Param struct {
	Name  string
	Value string
}

// MediaType is a parsed "type/subtype; name=value" value (RFC 7231 Section 3.1.1.1).
//
// Type and subtype are lower-cased tokens and may be the wildcard "*".
// Parameters keep their first-seen order; a repeated name keeps the latest
// value at the position of its first occurrence. A MediaType is immutable:
// methods that change it return a copy.
type MediaType struct {
	typ    string
	sub    string
	params []Param
}

// ParseMediaType parses a Content-Type style value.
func ParseMediaType(s string) (MediaType, error) {
	mr, err := parser.NewParser(s).ParseMediaType()
	if err != nil {
		return MediaType{}, errtrace.Wrap(fromSyntax(err))
	}
	mt, err := fromRange(mr)
	if err != nil {
		return MediaType{}, errtrace.Wrap(err)
	}
	return mt, nil
}

// MustParseMediaType is like ParseMediaType but panics on error.
func MustParseMediaType(s string) MediaType {
	mt, err := ParseMediaType(s)
	if err != nil {
		panic(err)
	}
	return mt
}

// NewMediaType builds a media type from parts, validating and folding them
// the same way ParseMediaType does.
func NewMediaType(typ, subtype string, params ...Param) (MediaType, error) {
	if !tokenizer.IsToken(typ) {
		return MediaType{}, errtrace.Wrap(newMalformed(-1, "invalid media type %q", typ))
	}
	if !tokenizer.IsToken(subtype) {
		return MediaType{}, errtrace.Wrap(newMalformed(-1, "invalid media subtype %q", subtype))
	}
	mt := MediaType{typ: strings.ToLower(typ), sub: strings.ToLower(subtype)}
	if mt.typ == "*" && mt.sub != "*" {
		return MediaType{}, errtrace.Wrap(newMalformed(-1, "wildcard type with concrete subtype %q", subtype))
	}
	for _, p := range params {
		if !tokenizer.IsToken(p.Name) {
			return MediaType{}, errtrace.Wrap(newMalformed(-1, "invalid parameter name %q", p.Name))
		}
		if !isParamValue(p.Value) {
			return MediaType{}, errtrace.Wrap(newMalformed(-1, "invalid value for parameter %q", p.Name))
		}
		mt.params = setParam(mt.params, strings.ToLower(p.Name), p.Value)
	}
	return mt, nil
}

func fromRange(mr parser.MediaRange) (MediaType, error) {
	mt := MediaType{typ: strings.ToLower(mr.Type), sub: strings.ToLower(mr.Subtype)}
	if mt.typ == "*" && mt.sub != "*" {
		return MediaType{}, newMalformed(mr.Offset, "wildcard type with concrete subtype %q", mr.Subtype)
	}
	if len(mr.Params) > 0 {
		mt.params = make([]Param, 0, len(mr.Params))
		for _, p := range mr.Params {
			mt.params = setParam(mt.params, strings.ToLower(p.Name), p.Value)
		}
	}
	return mt, nil
}

// setParam replaces the value of name in place or appends a new parameter.
func setParam(params []Param, name, value string) []Param {
	for i := range params {
		if params[i].Name == name {
			params[i].Value = value
			return params
		}
	}
	return append(params, Param{Name: name, Value: value})
}

// Type returns the top-level type, e.g. "text".
func (mt MediaType) Type() string { return mt.typ }

// Subtype returns the subtype, e.g. "html".
func (mt MediaType) Subtype() string { return mt.sub }

// Params returns a copy of the parameters in order.
func (mt MediaType) Params() []Param { return slices.Clone(mt.params) }

// NumParams returns the number of parameters.
func (mt MediaType) NumParams() int { return len(mt.params) }

// Param returns the value of the named parameter. The name is matched
// case-insensitively.
func (mt MediaType) Param(name string) (string, bool) {
	for _, p := range mt.params {
		if strings.EqualFold(p.Name, name) {
			return p.Value, true
		}
	}
	return "", false
}

// WithParam returns a copy of mt with name set to value.
func (mt MediaType) WithParam(name, value string) (MediaType, error) {
	if !tokenizer.IsToken(name) {
		return MediaType{}, errtrace.Wrap(newMalformed(-1, "invalid parameter name %q", name))
	}
	if !isParamValue(value) {
		return MediaType{}, errtrace.Wrap(newMalformed(-1, "invalid value for parameter %q", name))
	}
	mt.params = setParam(slices.Clone(mt.params), strings.ToLower(name), value)
	return mt, nil
}

// WithoutParams returns mt with every parameter removed.
func (mt MediaType) WithoutParams() MediaType {
	mt.params = nil
	return mt
}

func (mt MediaType) withoutParam(name string) MediaType {
	i := slices.IndexFunc(mt.params, func(p Param) bool { return p.Name == name })
	if i < 0 {
		return mt
	}
	params := slices.Delete(slices.Clone(mt.params), i, i+1)
	if len(params) == 0 {
		params = nil
	}
	mt.params = params
	return mt
}

// IsZero reports whether mt is the zero value.
func (mt MediaType) IsZero() bool { return mt.typ == "" && mt.sub == "" && len(mt.params) == 0 }

// IsWildcard reports whether the type or subtype is "*". Callers that need
// a concrete representation must reject wildcards explicitly.
func (mt MediaType) IsWildcard() bool { return mt.typ == "*" || mt.sub == "*" }

// EqualType reports whether mt and other share type and subtype,
// ignoring parameters.
func (mt MediaType) EqualType(other MediaType) bool {
	return mt.typ == other.typ && mt.sub == other.sub
}

// Equal reports whether mt and other have the same type, subtype and
// parameter set. Parameter order is ignored and values compare
// case-insensitively.
func (mt MediaType) Equal(other MediaType) bool {
	if !mt.EqualType(other) || len(mt.params) != len(other.params) {
		return false
	}
	for _, p := range mt.params {
		v, ok := other.Param(p.Name)
		if !ok || !strings.EqualFold(v, p.Value) {
			return false
		}
	}
	return true
}

// String renders mt as "type/subtype; name=value", quoting values that are
// not tokens. The zero MediaType renders as "".
func (mt MediaType) String() string {
	if mt.IsZero() {
		return ""
	}
	var b strings.Builder
	b.WriteString(mt.typ)
	b.WriteByte('/')
	b.WriteString(mt.sub)
	writeParams(&b, mt.params)
	return b.String()
}

// isParamValue reports whether v can be rendered as a token or quoted-string.
func isParamValue(v string) bool {
	if !utf8.ValidString(v) {
		return false
	}
	for _, r := range v {
		if r != '\t' && (r < 0x20 || r == 0x7F) {
			return false
		}
	}
	return true
}

func writeParams(b *strings.Builder, params []Param) {
	for _, p := range params {
		b.WriteString("; ")
		b.WriteString(p.Name)
		b.WriteByte('=')
		writeParamValue(b, p.Value)
	}
}

func writeParamValue(b *strings.Builder, v string) {
	if tokenizer.IsToken(v) {
		b.WriteString(v)
		return
	}
	b.WriteByte('"')
	for i := 0; i < len(v); i++ {
		if v[i] == '"' || v[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(v[i])
	}
	b.WriteByte('"')
}

// LogValue implements slog.LogValuer.
func (mt MediaType) LogValue() slog.Value { return slog.StringValue(mt.String()) }

// MarshalText implements encoding.TextMarshaler.
func (mt MediaType) MarshalText() ([]byte, error) {
	return []byte(mt.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Empty text yields the zero MediaType.
func (mt *MediaType) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*mt = MediaType{}
		return nil
	}
	v, err := ParseMediaType(string(data))
	if err != nil {
		*mt = MediaType{}
		return errtrace.Wrap(err)
	}
	*mt = v
	return nil
}
