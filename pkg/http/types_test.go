package http

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHeaders_CaseInsensitive(t *testing.T) {
	var h Headers
	h.Add("X-A", "1")
	h.Add("x-a", "2")

	if got := h.Get("X-a"); got != "1" {
		t.Errorf("Get() = %q, want 1", got)
	}
	if diff := cmp.Diff([]string{"1", "2"}, h.Values("X-A")); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
	if h[1].Key != "x-a" {
		t.Errorf("second key = %q, want original case x-a", h[1].Key)
	}
	if _, ok := h.Lookup("X-B"); ok {
		t.Error("Lookup(X-B) reported ok")
	}
	if h.Has("x-b") || !h.Has("X-A") {
		t.Error("Has() mismatch")
	}
}

func TestHeaders_Set(t *testing.T) {
	h := Headers{
		{Key: "A", Value: "1"},
		{Key: "B", Value: "2"},
		{Key: "a", Value: "3"},
		{Key: "C", Value: "4"},
	}
	h.Set("a", "x")
	want := Headers{
		{Key: "A", Value: "x"},
		{Key: "B", Value: "2"},
		{Key: "C", Value: "4"},
	}
	if diff := cmp.Diff(want, h); diff != "" {
		t.Errorf("Set() mismatch (-want +got):\n%s", diff)
	}

	h.Set("D", "5")
	if got := h.Get("d"); got != "5" || h.Len() != 4 {
		t.Errorf("Set(new) = %q, len %d", got, h.Len())
	}
}

func TestHeaders_Del(t *testing.T) {
	h := Headers{{Key: "A", Value: "1"}, {Key: "B", Value: "2"}, {Key: "a", Value: "3"}}
	h.Del("A")
	if diff := cmp.Diff(Headers{{Key: "B", Value: "2"}}, h); diff != "" {
		t.Errorf("Del() mismatch (-want +got):\n%s", diff)
	}
	h.Del("missing")
	if h.Len() != 1 {
		t.Errorf("Del(missing) changed the headers: %v", h)
	}
}

func TestHeaders_All(t *testing.T) {
	h := Headers{{Key: "A", Value: "1"}, {Key: "B", Value: "2"}, {Key: "A", Value: "3"}}
	var got [][2]string
	for k, v := range h.All() {
		got = append(got, [2]string{k, v})
	}
	want := [][2]string{{"A", "1"}, {"B", "2"}, {"A", "3"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}

	n := 0
	for range h.All() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("All() ignored an early break")
	}
}

func TestHeaders_Clone(t *testing.T) {
	h := Headers{{Key: "A", Value: "1"}}
	c := h.Clone()
	c.Set("A", "2")
	if h.Get("A") != "1" {
		t.Error("Clone() shares storage with the original")
	}
}

func TestHeaders_ContentLength(t *testing.T) {
	tests := []struct {
		value string
		want  int64
	}{
		{"", -1},
		{"0", 0},
		{"42", 42},
		{" 42 ", 42},
		{"-1", -1},
		{"abc", -1},
	}
	for _, tt := range tests {
		var h Headers
		if tt.value != "" {
			h.Add("Content-Length", tt.value)
		}
		if got := h.ContentLength(); got != tt.want {
			t.Errorf("ContentLength(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestHeaders_String(t *testing.T) {
	h := Headers{{Key: "Host", Value: "example.com"}, {Key: "Accept", Value: "*/*"}}
	if got := h.String(); got != "Host: example.com\r\nAccept: */*\r\n" {
		t.Errorf("String() = %q", got)
	}
}

func TestHeaders_ContentType(t *testing.T) {
	var h Headers
	if _, ok, err := h.ContentType(); ok || err != nil {
		t.Errorf("ContentType() of empty headers = %v, %v", ok, err)
	}

	h.Add("content-type", "application/json; charset=utf-8")
	mt, ok, err := h.ContentType()
	if err != nil || !ok {
		t.Fatalf("ContentType() = %v, %v", ok, err)
	}
	if !mt.Equal(MustParseMediaType("application/json;charset=utf-8")) {
		t.Errorf("ContentType() = %v", mt)
	}

	h.Set("Content-Type", "nope")
	if _, ok, err := h.ContentType(); !ok || !errors.Is(err, ErrMalformed) {
		t.Errorf("ContentType(nope) = %v, %v; want true, ErrMalformed", ok, err)
	}
}

func TestHeaders_Accept(t *testing.T) {
	var h Headers
	a, err := h.Accept()
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if len(a) != 1 || !a[0].MediaType.Equal(Any) || a[0].Quality != MaxQuality {
		t.Errorf("Accept() of empty headers = %v, want */*", a)
	}

	h.Add("Accept", "text/html")
	h.Add("Accept", "application/json;q=0.5")
	a, err = h.Accept()
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if got := a.String(); got != "text/html, application/json;q=0.5" {
		t.Errorf("Accept() = %q", got)
	}

	h.Set("Accept", " , ")
	if a, err := h.Accept(); err != nil || !a[0].MediaType.Equal(Any) {
		t.Errorf("Accept(empty elements) = %v, %v", a, err)
	}

	h.Set("Accept", "text/html;q=2")
	if _, err := h.Accept(); !errors.Is(err, ErrMalformed) {
		t.Errorf("Accept(q=2) error = %v, want ErrMalformed", err)
	}
}

func TestHeaders_Negotiate(t *testing.T) {
	h := Headers{{Key: "Accept", Value: "application/json, text/html;q=0.8"}}
	mt, ok, err := h.Negotiate(HTML, JSON)
	if err != nil || !ok {
		t.Fatalf("Negotiate() = %v, %v", ok, err)
	}
	if !mt.Equal(JSON) {
		t.Errorf("Negotiate() = %v, want %v", mt, JSON)
	}

	h.Set("Accept", "image/png")
	if _, ok, err := h.Negotiate(HTML, JSON); ok || err != nil {
		t.Errorf("Negotiate(no match) = %v, %v", ok, err)
	}

	h.Set("Accept", "text/")
	if _, _, err := h.Negotiate(HTML); !errors.Is(err, ErrMalformed) {
		t.Errorf("Negotiate(malformed) error = %v", err)
	}
}
