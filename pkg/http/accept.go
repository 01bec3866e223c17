package http

import (
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/shapestone/shape-httpval/internal/parser"
)

// Quality is a qvalue in thousandths, 0 through 1000 (RFC 7231 Section 5.3.1).
type Quality uint16

// MaxQuality is q=1, the default weight of a preference.
const MaxQuality Quality = 1000

// ParseQuality parses a qvalue: "0" or "1" optionally followed by a dot and
// up to three digits, never above 1.
func ParseQuality(s string) (Quality, error) {
	q, ok := parseQuality(s)
	if !ok {
		return 0, errtrace.Wrap(newMalformed(-1, "invalid quality value %q", s))
	}
	return q, nil
}

func parseQuality(s string) (Quality, bool) {
	if s == "" || (s[0] != '0' && s[0] != '1') {
		return 0, false
	}
	q := Quality(s[0]-'0') * 1000
	rest := s[1:]
	if rest == "" {
		return q, true
	}
	if rest[0] != '.' || len(rest) > 4 {
		return 0, false
	}
	scale := Quality(100)
	for i := 1; i < len(rest); i++ {
		c := rest[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		q += Quality(c-'0') * scale
		scale /= 10
	}
	if q > MaxQuality {
		return 0, false
	}
	return q, true
}

// Float returns q as a fraction of 1.
func (q Quality) Float() float64 { return float64(q) / 1000 }

// String renders q as the shortest decimal, e.g. "1", "0.5", "0.125".
func (q Quality) String() string {
	if q >= MaxQuality {
		return "1"
	}
	if q == 0 {
		return "0"
	}
	s := strconv.Itoa(int(q) + 1000)[1:]
	return "0." + strings.TrimRight(s, "0")
}

// Preference is one weighted element of an Accept header. MediaType never
// carries the q parameter.
type Preference struct {
	MediaType MediaType
	Quality   Quality
}

// String renders the preference, appending q only when it is not 1.
func (p Preference) String() string {
	if p.Quality == MaxQuality {
		return p.MediaType.String()
	}
	return p.MediaType.String() + ";q=" + p.Quality.String()
}

// Accept is a parsed Accept header in header order.
type Accept []Preference

// ParseAccept parses a comma-separated list of media ranges with optional
// q weights. Any invalid element, including an out-of-range or over-precise
// q, fails the whole header.
func ParseAccept(s string) (Accept, error) {
	ranges, err := parser.NewParser(s).ParseMediaRanges()
	if err != nil {
		return nil, errtrace.Wrap(fromSyntax(err))
	}

	accept := make(Accept, 0, len(ranges))
	for _, mr := range ranges {
		mt, err := fromRange(mr)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		pref := Preference{MediaType: mt, Quality: MaxQuality}
		if v, ok := mt.Param("q"); ok {
			q, ok := parseQuality(v)
			if !ok {
				return nil, errtrace.Wrap(newMalformed(qOffset(mr), "invalid quality value %q", v))
			}
			pref.Quality = q
			pref.MediaType = mt.withoutParam("q")
		}
		accept = append(accept, pref)
	}
	return accept, nil
}

func qOffset(mr parser.MediaRange) int {
	for _, p := range mr.Params {
		if strings.EqualFold(p.Name, "q") {
			return p.Offset
		}
	}
	return mr.Offset
}

// MustParseAccept is like ParseAccept but panics on error.
func MustParseAccept(s string) Accept {
	a, err := ParseAccept(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String renders the list as an Accept header value.
func (a Accept) String() string {
	var b strings.Builder
	for i, p := range a {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	return b.String()
}

// Preferred returns the first preference with the highest quality.
func (a Accept) Preferred() (Preference, bool) {
	if len(a) == 0 {
		return Preference{}, false
	}
	best := a[0]
	for _, p := range a[1:] {
		if p.Quality > best.Quality {
			best = p
		}
	}
	return best, true
}

// Negotiate picks the best of offered for a. See Negotiator.Negotiate.
func (a Accept) Negotiate(offered ...MediaType) (MediaType, bool) {
	return Negotiate(a, offered)
}
