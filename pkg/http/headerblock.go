package http

import (
	"errors"

	"braces.dev/errtrace"

	"github.com/shapestone/shape-httpval/internal/fastparser"
)

// ParseHeaderBlock parses "Name: value" lines, one per line, up to the
// first empty line. Lines may end in CRLF or LF. Field names must be
// tokens and obsolete line folding is rejected; values are kept raw.
func ParseHeaderBlock(text string) (Headers, error) {
	fields, err := fastparser.ParseFields([]byte(text))
	if err != nil {
		var le *fastparser.LineError
		if errors.As(err, &le) {
			return nil, errtrace.Wrap(&ParseError{Kind: Malformed, Message: le.Msg, Line: le.Line})
		}
		return nil, errtrace.Wrap(err)
	}
	h := make(Headers, 0, len(fields))
	for _, f := range fields {
		h.Add(f.Name, f.Value)
	}
	return h, nil
}
