package http

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func mustTypes(t *testing.T, ss ...string) []MediaType {
	t.Helper()
	out := make([]MediaType, len(ss))
	for i, s := range ss {
		mt, err := ParseMediaType(s)
		if err != nil {
			t.Fatalf("ParseMediaType(%q) error = %v", s, err)
		}
		out[i] = mt
	}
	return out
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name    string
		accept  string
		offered []string
		want    string // "" means no match
	}{
		{
			name:    "quality wins",
			accept:  "text/html;q=0.8, application/json;q=0.9",
			offered: []string{"text/html", "application/json"},
			want:    "application/json",
		},
		{
			name:    "wildcard picks first offer",
			accept:  "*/*",
			offered: []string{"image/png", "text/plain"},
			want:    "image/png",
		},
		{
			name:    "specificity breaks quality tie",
			accept:  "*/*, text/*, text/html",
			offered: []string{"text/plain", "text/html"},
			want:    "text/html",
		},
		{
			name:    "subtype wildcard beats full wildcard",
			accept:  "*/*, text/*",
			offered: []string{"image/png", "text/plain"},
			want:    "text/plain",
		},
		{
			name:    "preference order breaks tie",
			accept:  "application/json, text/html",
			offered: []string{"text/html", "application/json"},
			want:    "application/json",
		},
		{
			name:    "offer order breaks final tie",
			accept:  "text/*",
			offered: []string{"text/csv", "text/plain"},
			want:    "text/csv",
		},
		{
			name:    "q=0 never matches",
			accept:  "application/json;q=0, */*;q=0.1",
			offered: []string{"application/json"},
			want:    "application/json",
		},
		{
			name:    "q=0 alone rejects",
			accept:  "application/json;q=0",
			offered: []string{"application/json"},
			want:    "",
		},
		{
			name:    "preference params must be present",
			accept:  "text/html;level=1",
			offered: []string{"text/html", "text/html;level=2", "text/html;level=1;charset=utf-8"},
			want:    "text/html; level=1; charset=utf-8",
		},
		{
			name:    "param values compare exactly",
			accept:  "text/plain;charset=UTF-8",
			offered: []string{"text/plain;charset=utf-8"},
			want:    "",
		},
		{
			name:    "offer params ignored without preference params",
			accept:  "text/plain",
			offered: []string{"text/plain;charset=utf-8"},
			want:    "text/plain; charset=utf-8",
		},
		{
			name:    "no match",
			accept:  "image/*",
			offered: []string{"text/html", "application/json"},
			want:    "",
		},
		{
			name:    "lower quality with higher specificity loses",
			accept:  "text/html;q=0.5, */*",
			offered: []string{"application/json", "text/html"},
			want:    "application/json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := MustParseAccept(tt.accept)
			got, ok := Negotiate(prefs, mustTypes(t, tt.offered...))
			if tt.want == "" {
				if ok {
					t.Errorf("Negotiate() = %q, want no match", got)
				}
				return
			}
			if !ok {
				t.Fatalf("Negotiate() found no match, want %q", tt.want)
			}
			if got.String() != tt.want {
				t.Errorf("Negotiate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNegotiate_Empty(t *testing.T) {
	offered := []MediaType{JSON, HTML}
	if _, ok := Negotiate(nil, offered); ok {
		t.Error("Negotiate(nil, offered) reported a match")
	}
	if _, ok := Negotiate(MustParseAccept("*/*"), nil); ok {
		t.Error("Negotiate(prefs, nil) reported a match")
	}
}

func TestNegotiate_AnyReturnsFirstOffer(t *testing.T) {
	prefs := Accept{{MediaType: Any, Quality: MaxQuality}}
	offered := []MediaType{CSV, JSON, HTML}
	got, ok := Negotiate(prefs, offered)
	if !ok || !got.Equal(CSV) {
		t.Errorf("Negotiate(*/*) = %q, %v; want %q", got, ok, CSV)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pref, offer string
		want        Specificity
	}{
		{"text/html", "text/html", MatchExact},
		{"text/*", "text/html", MatchType},
		{"*/*", "text/html", MatchAny},
		{"text/plain", "text/html", NoMatch},
		{"image/*", "text/html", NoMatch},
	}
	for _, tt := range tests {
		got := Match(MustParseMediaType(tt.pref), MustParseMediaType(tt.offer))
		if got != tt.want {
			t.Errorf("Match(%q, %q) = %d, want %d", tt.pref, tt.offer, got, tt.want)
		}
	}
}

func TestNegotiator_Logs(t *testing.T) {
	var buf bytes.Buffer
	n := Negotiator{Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	got, ok := n.Negotiate(MustParseAccept("application/json;q=0.9, text/*"), []MediaType{JSON, Plain})
	if !ok || !got.Equal(Plain) {
		t.Fatalf("Negotiate() = %q, %v; want %q", got, ok, Plain)
	}

	out := buf.String()
	for _, want := range []string{"negotiation candidate", "negotiated media type", `media_type="text/plain; charset=utf-8"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestNegotiator_LogsNoMatch(t *testing.T) {
	var buf bytes.Buffer
	n := Negotiator{Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}
	if _, ok := n.Negotiate(MustParseAccept("image/*"), []MediaType{JSON}); ok {
		t.Fatal("Negotiate() reported a match")
	}
	if !strings.Contains(buf.String(), "no acceptable media type") {
		t.Errorf("log output = %q", buf.String())
	}
}

func BenchmarkNegotiate(b *testing.B) {
	prefs := MustParseAccept("text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	offered := []MediaType{JSON, HTML, XML, Plain}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := Negotiate(prefs, offered); !ok {
			b.Fatal("no match")
		}
	}
}
