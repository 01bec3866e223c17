package http

import (
	"strconv"

	"braces.dev/errtrace"
)

// Status is a response status code paired with its reason phrase.
// Unregistered codes in range have an empty Reason.
type Status struct {
	Code   int
	Reason string
}

// StatusClass is the first digit of a status code.
type StatusClass uint8

const (
	ClassInformational StatusClass = iota + 1
	ClassSuccess
	ClassRedirection
	ClassClientError
	ClassServerError
)

func (c StatusClass) String() string {
	switch c {
	case ClassInformational:
		return "informational"
	case ClassSuccess:
		return "success"
	case ClassRedirection:
		return "redirection"
	case ClassClientError:
		return "client error"
	case ClassServerError:
		return "server error"
	}
	return "unknown"
}

var reasons = map[int]string{
	100: "Continue",
	101: "Switching Protocols",
	102: "Processing",
	103: "Early Hints",
	200: "OK",
	201: "Created",
	202: "Accepted",
	203: "Non-Authoritative Information",
	204: "No Content",
	205: "Reset Content",
	206: "Partial Content",
	207: "Multi-Status",
	208: "Already Reported",
	226: "IM Used",
	300: "Multiple Choices",
	301: "Moved Permanently",
	302: "Found",
	303: "See Other",
	304: "Not Modified",
	305: "Use Proxy",
	307: "Temporary Redirect",
	308: "Permanent Redirect",
	400: "Bad Request",
	401: "Unauthorized",
	402: "Payment Required",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	406: "Not Acceptable",
	407: "Proxy Authentication Required",
	408: "Request Timeout",
	409: "Conflict",
	410: "Gone",
	411: "Length Required",
	412: "Precondition Failed",
	413: "Content Too Large",
	414: "URI Too Long",
	415: "Unsupported Media Type",
	416: "Range Not Satisfiable",
	417: "Expectation Failed",
	418: "I'm a teapot",
	421: "Misdirected Request",
	422: "Unprocessable Content",
	423: "Locked",
	424: "Failed Dependency",
	425: "Too Early",
	426: "Upgrade Required",
	428: "Precondition Required",
	429: "Too Many Requests",
	431: "Request Header Fields Too Large",
	451: "Unavailable For Legal Reasons",
	500: "Internal Server Error",
	501: "Not Implemented",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Timeout",
	505: "HTTP Version Not Supported",
	506: "Variant Also Negotiates",
	507: "Insufficient Storage",
	508: "Loop Detected",
	510: "Not Extended",
	511: "Network Authentication Required",
}

// NewStatus returns the status for code, which must be in [100, 599].
func NewStatus(code int) (Status, error) {
	if code < 100 || code > 599 {
		return Status{}, errtrace.Wrap(newMalformed(-1, "status %d is not in [100, 599]", code))
	}
	return Status{Code: code, Reason: reasons[code]}, nil
}

// ParseStatus parses a three-digit status code such as "404".
func ParseStatus(s string) (Status, error) {
	if s == "" {
		return Status{}, errtrace.Wrap(newEmpty("empty status code"))
	}
	if len(s) != 3 {
		return Status{}, errtrace.Wrap(newMalformed(0, "status code %q is not three digits", s))
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return Status{}, errtrace.Wrap(newMalformed(i, "invalid digit %q in status code", s[i]))
		}
	}
	code, _ := strconv.Atoi(s)
	return errtrace.Wrap2(NewStatus(code))
}

// Class returns the status class.
func (s Status) Class() StatusClass {
	if s.Code < 100 || s.Code > 599 {
		return 0
	}
	return StatusClass(s.Code / 100)
}

// IsKnown reports whether the code has a registered reason phrase.
func (s Status) IsKnown() bool {
	_, ok := reasons[s.Code]
	return ok
}

// AllowsBody reports whether a response with this status may carry content.
func (s Status) AllowsBody() bool {
	return s.Class() != ClassInformational && s.Code != 204 && s.Code != 304
}

// String renders "404 Not Found", or just the code when there is no reason.
func (s Status) String() string {
	if s.Reason == "" {
		return strconv.Itoa(s.Code)
	}
	return strconv.Itoa(s.Code) + " " + s.Reason
}
