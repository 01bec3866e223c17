package http

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseMediaType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"text/html", "text/html"},
		{"Text/HTML; Charset=UTF-8", "text/html; charset=UTF-8"},
		{`application/json; charset="utf-8"`, "application/json; charset=utf-8"},
		{`multipart/form-data; boundary="a b"`, `multipart/form-data; boundary="a b"`},
		{"text/plain; a=1; b=2; A=3", "text/plain; a=3; b=2"},
		{"*/*", "*/*"},
		{"text/*", "text/*"},
		{"text/plain;", "text/plain"},
		{" text/plain ; ; q=0.5 ", "text/plain; q=0.5"},
		{`text/plain; x="a\"b\\c"`, `text/plain; x="a\"b\\c"`},
		{"application/vnd.api+json", "application/vnd.api+json"},
	}

	for _, tt := range tests {
		mt, err := ParseMediaType(tt.input)
		if err != nil {
			t.Errorf("ParseMediaType(%q) error = %v", tt.input, err)
			continue
		}
		if got := mt.String(); got != tt.want {
			t.Errorf("ParseMediaType(%q).String() = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseMediaType_Params(t *testing.T) {
	mt := MustParseMediaType(`multipart/form-data; Boundary="AbC"; charset=utf-8`)
	want := []Param{
		{Name: "boundary", Value: "AbC"},
		{Name: "charset", Value: "utf-8"},
	}
	if diff := cmp.Diff(want, mt.Params()); diff != "" {
		t.Errorf("Params() mismatch (-want +got):\n%s", diff)
	}
	if v, ok := mt.Param("BOUNDARY"); !ok || v != "AbC" {
		t.Errorf("Param(BOUNDARY) = %q, %v; want AbC, true", v, ok)
	}
	if _, ok := mt.Param("q"); ok {
		t.Error("Param(q) found, want absent")
	}
	if mt.NumParams() != 2 {
		t.Errorf("NumParams() = %d, want 2", mt.NumParams())
	}
}

func TestParseMediaType_Errors(t *testing.T) {
	tests := []struct {
		input string
		kind  error
		pos   int
	}{
		{"", ErrEmpty, 0},
		{" \t ", ErrEmpty, 0},
		{"text", ErrMalformed, 5},
		{"text/", ErrMalformed, 6},
		{"*/html", ErrMalformed, 1},
		{`text/plain; a="x`, ErrMalformed, 15},
		{"text/plain garbage", ErrMalformed, 12},
		{"te xt/plain", ErrMalformed, 3},
		{"text/plain, text/html", ErrMalformed, 11},
		{"text/plain; a", ErrMalformed, 14},
		{"tëxt/plain", ErrMalformed, 2},
		{"text / html", ErrMalformed, 5},
		{"text/html; charset = utf-8", ErrMalformed, 19},
	}

	for _, tt := range tests {
		_, err := ParseMediaType(tt.input)
		if !errors.Is(err, tt.kind) {
			t.Errorf("ParseMediaType(%q) error = %v, want %v", tt.input, err, tt.kind)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("ParseMediaType(%q) error = %T, want *ParseError", tt.input, err)
			continue
		}
		if pe.Position != tt.pos {
			t.Errorf("ParseMediaType(%q) Position = %d, want %d", tt.input, pe.Position, tt.pos)
		}
	}
}

func TestMediaType_RoundTrip(t *testing.T) {
	inputs := []string{
		"text/html",
		"TEXT/Html;CHARSET=utf-8",
		`multipart/form-data; boundary="----=_Part 0"`,
		`text/plain; note="a,b;c=d"; x="\"quoted\""`,
		"application/json; a=1; b=2; a=3",
		"*/*",
		"image/*; q=0.5",
		`text/plain; e=""`,
		"text/plain; tab=\"a\tb\"",
		`text/plain; u="héllo"`,
	}

	for _, input := range inputs {
		mt, err := ParseMediaType(input)
		if err != nil {
			t.Fatalf("ParseMediaType(%q) error = %v", input, err)
		}
		again, err := ParseMediaType(mt.String())
		if err != nil {
			t.Errorf("ParseMediaType(%q) error = %v", mt.String(), err)
			continue
		}
		if !again.Equal(mt) {
			t.Errorf("round trip of %q: got %q, want %q", input, again, mt)
		}
		if again.String() != mt.String() {
			t.Errorf("round trip of %q rendered %q, then %q", input, mt, again)
		}
	}
}

func TestMediaType_Equal(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"text/plain; a=1; b=2", "TEXT/PLAIN; B=2; A=1", true},
		{"text/plain; charset=UTF-8", "text/plain; charset=utf-8", true},
		{"text/plain", "text/plain; charset=utf-8", false},
		{"text/plain", "text/html", false},
		{"text/plain; a=1", "text/plain; b=1", false},
	}
	for _, tt := range tests {
		a, b := MustParseMediaType(tt.a), MustParseMediaType(tt.b)
		if got := a.Equal(b); got != tt.want {
			t.Errorf("%q.Equal(%q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := b.Equal(a); got != tt.want {
			t.Errorf("%q.Equal(%q) = %v, want %v", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestMediaType_Wildcard(t *testing.T) {
	if !MustParseMediaType("*/*").IsWildcard() {
		t.Error("*/* IsWildcard() = false")
	}
	if !MustParseMediaType("image/*").IsWildcard() {
		t.Error("image/* IsWildcard() = false")
	}
	if JSON.IsWildcard() {
		t.Error("JSON IsWildcard() = true")
	}
}

func TestNewMediaType(t *testing.T) {
	mt, err := NewMediaType("Application", "JSON", Param{Name: "Charset", Value: "utf-8"}, Param{Name: "charset", Value: "latin1"})
	if err != nil {
		t.Fatalf("NewMediaType() error = %v", err)
	}
	if got := mt.String(); got != "application/json; charset=latin1" {
		t.Errorf("String() = %q", got)
	}

	bad := []struct {
		typ, sub string
		params   []Param
	}{
		{"", "json", nil},
		{"text", "pl ain", nil},
		{"*", "html", nil},
		{"text", "plain", []Param{{Name: "a b", Value: "x"}}},
		{"text", "plain", []Param{{Name: "a", Value: "x\ny"}}},
	}
	for _, tt := range bad {
		if _, err := NewMediaType(tt.typ, tt.sub, tt.params...); !errors.Is(err, ErrMalformed) {
			t.Errorf("NewMediaType(%q, %q, %v) error = %v, want ErrMalformed", tt.typ, tt.sub, tt.params, err)
		}
	}
}

func TestMediaType_WithParam(t *testing.T) {
	base := MustParseMediaType("text/plain; a=1")
	mt, err := base.WithParam("B", "two words")
	if err != nil {
		t.Fatalf("WithParam() error = %v", err)
	}
	if got := mt.String(); got != `text/plain; a=1; b="two words"` {
		t.Errorf("String() = %q", got)
	}
	if got := base.String(); got != "text/plain; a=1" {
		t.Errorf("base changed to %q", got)
	}
	if got := mt.WithoutParams().String(); got != "text/plain" {
		t.Errorf("WithoutParams() = %q", got)
	}
	if _, err := base.WithParam("", "x"); !errors.Is(err, ErrMalformed) {
		t.Errorf("WithParam(\"\") error = %v, want ErrMalformed", err)
	}
}

func TestMediaType_Zero(t *testing.T) {
	var mt MediaType
	if !mt.IsZero() {
		t.Error("IsZero() = false for zero value")
	}
	if mt.String() != "" {
		t.Errorf("String() = %q, want empty", mt.String())
	}
	if JSON.IsZero() {
		t.Error("JSON.IsZero() = true")
	}
}

func TestMediaType_Text(t *testing.T) {
	var mt MediaType
	if err := mt.UnmarshalText([]byte("Text/Plain; Charset=utf-8")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if !mt.Equal(Plain) {
		t.Errorf("UnmarshalText() = %q, want %q", mt, Plain)
	}
	b, err := mt.MarshalText()
	if err != nil || string(b) != "text/plain; charset=utf-8" {
		t.Errorf("MarshalText() = %q, %v", b, err)
	}
	if err := mt.UnmarshalText([]byte("nope")); !errors.Is(err, ErrMalformed) {
		t.Errorf("UnmarshalText(nope) error = %v, want ErrMalformed", err)
	}
	if err := mt.UnmarshalText(nil); err != nil || !mt.IsZero() {
		t.Errorf("UnmarshalText(nil) = %q, %v; want zero, nil", mt, err)
	}
}

func TestParseFlexible(t *testing.T) {
	tests := []struct {
		input string
		want  MediaType
	}{
		{"json", JSON},
		{"JSON", JSON},
		{" html ", HTML},
		{"any", Any},
		{"jpg", JPEG},
		{"form", FormURLEncoded},
		{"multipart", FormData},
		{"application/json", JSON},
		{"text/html; charset=utf-8", HTML},
	}
	for _, tt := range tests {
		got, err := ParseFlexible(tt.input)
		if err != nil {
			t.Errorf("ParseFlexible(%q) error = %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseFlexible(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if _, err := ParseFlexible("jsonish"); !errors.Is(err, ErrMalformed) {
		t.Errorf("ParseFlexible(jsonish) error = %v, want ErrMalformed", err)
	}
	if _, err := ParseFlexible(""); !errors.Is(err, ErrEmpty) {
		t.Errorf("ParseFlexible(\"\") error = %v, want ErrEmpty", err)
	}
}

func TestFromExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want MediaType
		ok   bool
	}{
		{"json", JSON, true},
		{".PNG", PNG, true},
		{"htm", HTML, true},
		{"gz", GZIP, true},
		{"unknown", MediaType{}, false},
		{"", MediaType{}, false},
	}
	for _, tt := range tests {
		got, ok := FromExtension(tt.ext)
		if ok != tt.ok || !got.Equal(tt.want) {
			t.Errorf("FromExtension(%q) = %q, %v; want %q, %v", tt.ext, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMediaType_IsKnown(t *testing.T) {
	for _, mt := range knownTypes {
		again := MustParseMediaType(mt.String())
		if !again.IsKnown() {
			t.Errorf("%q IsKnown() = false", mt)
		}
	}
	if MustParseMediaType("application/x-custom").IsKnown() {
		t.Error("application/x-custom IsKnown() = true")
	}
	if MustParseMediaType("text/html").IsKnown() {
		t.Error("text/html without charset IsKnown() = true")
	}
}
