package fastparser

// Known methods and field names are interned so repeated parses share one
// string per name. Lookups use string(b) map keys, which the compiler
// performs without allocating.

var methods = internTable(
	"GET", "HEAD", "POST", "PUT", "DELETE",
	"CONNECT", "OPTIONS", "TRACE", "PATCH",
)

var headerNames = internTable(
	"Accept", "Accept-Charset", "Accept-Encoding", "Accept-Language",
	"Allow", "Authorization", "Cache-Control", "Connection",
	"Content-Disposition", "Content-Encoding", "Content-Language",
	"Content-Length", "Content-Location", "Content-Type",
	"Cookie", "Date", "ETag", "Forwarded", "Host",
	"If-Match", "If-None-Match", "Last-Modified", "Link", "Location",
	"Origin", "Referer", "Server", "Set-Cookie", "User-Agent", "Vary",
	"X-Forwarded-For", "X-Forwarded-Host", "X-Forwarded-Proto", "X-Request-ID",
)

func internTable(names ...string) map[string]string {
	m := make(map[string]string, len(names))
	for _, n := range names {
		m[n] = n
	}
	return m
}

// InternMethod looks b up among the standard methods, ignoring ASCII case,
// and returns the upper-case name. Other input is returned as string(b)
// with false.
func InternMethod(b []byte) (string, bool) {
	if s, ok := methods[string(b)]; ok {
		return s, true
	}
	var buf [len("CONNECT")]byte
	if len(b) > len(buf) {
		return string(b), false
	}
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		buf[i] = c
	}
	if s, ok := methods[string(buf[:len(b)])]; ok {
		return s, true
	}
	return string(b), false
}

// InternHeaderName returns the shared string for a known field name as
// written; names in other cases are copied.
func InternHeaderName(b []byte) string {
	if s, ok := headerNames[string(b)]; ok {
		return s
	}
	return string(b)
}
