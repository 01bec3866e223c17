// Package parser implements the header-value grammar on top of the token
// scanner. It produces raw syntax (names and values as written, with byte
// offsets) and leaves case folding and semantic checks to pkg/http.
//
// Grammar (RFC 7231 Section 3.1.1.1, RFC 7230 Section 7):
//
//	media-type = type "/" subtype *( OWS ";" OWS parameter )
//	parameter  = token "=" ( token / quoted-string )
//	#element   = [ element ] *( OWS "," OWS [ element ] )
//
// Whitespace tokens are skipped, but none may appear on either side of
// the "/" or "=" delimiters.
package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shapestone/shape-httpval/internal/tokenizer"
)

// Param is a parameter exactly as written. Value is unquoted.
type Param struct {
	Name   string
	Value  string
	Quoted bool
	Offset int
}

// MediaRange is a parsed "type/subtype; params" element.
type MediaRange struct {
	Type    string
	Subtype string
	Params  []Param
	Offset  int
}

// SyntaxError describes a grammar violation.
// Empty is set when the input held no element at all.
type SyntaxError struct {
	Offset int
	Msg    string
	Empty  bool
}

func (e *SyntaxError) Error() string {
	if e.Empty {
		return e.Msg
	}
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
}

// Parser is a recursive-descent parser over a single input.
type Parser struct {
	input string
	s     *tokenizer.Scanner
}

// NewParser creates a parser for input.
func NewParser(input string) *Parser {
	return &Parser{input: input, s: tokenizer.NewScanner(input)}
}

// ParseMediaType parses input as exactly one media type.
func (p *Parser) ParseMediaType() (MediaRange, error) {
	if isBlank(p.input) {
		return MediaRange{}, &SyntaxError{Msg: "empty media type", Empty: true}
	}
	mr, err := p.parseMediaRange()
	if err != nil {
		return MediaRange{}, err
	}
	tok, err := p.peek()
	if err == io.EOF {
		return mr, nil
	}
	if err != nil {
		return MediaRange{}, err
	}
	return MediaRange{}, p.errorf(tok.Offset, "unexpected %q after media type", tok.Text)
}

// ParseMediaRanges parses input as a comma-separated list of media ranges.
func (p *Parser) ParseMediaRanges() ([]MediaRange, error) {
	var ranges []MediaRange
	err := p.ParseList(func(p *Parser) error {
		mr, err := p.parseMediaRange()
		if err != nil {
			return err
		}
		ranges = append(ranges, mr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ranges, nil
}

// ParseList parses a #rule list, calling elem once per non-empty element.
// Empty elements are skipped; a list without any element is reported as
// an empty-input SyntaxError.
func (p *Parser) ParseList(elem func(*Parser) error) error {
	count := 0
	for {
		tok, err := p.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if tok.Is(',') {
			p.next() //nolint:errcheck
			continue
		}

		if err := elem(p); err != nil {
			return err
		}
		count++

		tok, err = p.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if !tok.Is(',') {
			return p.errorf(tok.Offset, "expected ',' between list elements, got %q", tok.Text)
		}
	}
	if count == 0 {
		return &SyntaxError{Msg: "empty list", Empty: true}
	}
	return nil
}

func (p *Parser) parseMediaRange() (MediaRange, error) {
	typ, err := p.expectIdentifier("media type")
	if err != nil {
		return MediaRange{}, err
	}
	mr := MediaRange{Type: typ.Text, Offset: typ.Offset}

	tok, err := p.next()
	if err != nil && err != io.EOF {
		return MediaRange{}, err
	}
	if err == io.EOF || !tok.Is('/') || tok.Offset != typ.Offset+len(typ.Text) {
		return MediaRange{}, p.errorf(typ.Offset+len(typ.Text), "missing '/' after media type %q", typ.Text)
	}

	sub, err := p.expectIdentifier("media subtype")
	if err != nil {
		return MediaRange{}, err
	}
	if sub.Offset != tok.Offset+1 {
		return MediaRange{}, p.errorf(tok.Offset+1, "whitespace after '/' in media type")
	}
	mr.Subtype = sub.Text

	params, err := p.parseParams()
	if err != nil {
		return MediaRange{}, err
	}
	mr.Params = params
	return mr, nil
}

// parseParams reads *( ";" [ parameter ] ). Empty parameters such as a
// trailing ";" are tolerated.
func (p *Parser) parseParams() ([]Param, error) {
	var params []Param
	for {
		tok, err := p.peek()
		if err == io.EOF {
			return params, nil
		}
		if err != nil {
			return nil, err
		}
		if !tok.Is(';') {
			return params, nil
		}
		p.next() //nolint:errcheck

		tok, err = p.peek()
		if err == io.EOF {
			return params, nil
		}
		if err != nil {
			return nil, err
		}
		if tok.Is(';') || tok.Is(',') {
			continue
		}

		name, err := p.expectIdentifier("parameter name")
		if err != nil {
			return nil, err
		}
		eq, err := p.next()
		if err != nil && err != io.EOF {
			return nil, err
		}
		if err == io.EOF || !eq.Is('=') || eq.Offset != name.Offset+len(name.Text) {
			return nil, p.errorf(name.Offset+len(name.Text), "missing '=' after parameter %q", name.Text)
		}

		val, err := p.next()
		if err == io.EOF {
			return nil, p.errorf(len(p.input), "missing value for parameter %q", name.Text)
		}
		if err != nil {
			return nil, err
		}
		if val.Kind != tokenizer.TokenIdentifier && val.Kind != tokenizer.TokenQuotedString {
			return nil, p.errorf(val.Offset, "invalid value %q for parameter %q", val.Text, name.Text)
		}
		if val.Offset != eq.Offset+1 {
			return nil, p.errorf(eq.Offset+1, "whitespace after '=' in parameter %q", name.Text)
		}

		params = append(params, Param{
			Name:   name.Text,
			Value:  val.Value,
			Quoted: val.Kind == tokenizer.TokenQuotedString,
			Offset: name.Offset,
		})
	}
}

func (p *Parser) expectIdentifier(what string) (tokenizer.Token, error) {
	tok, err := p.next()
	if err == io.EOF {
		return tokenizer.Token{}, p.errorf(len(p.input), "missing %s", what)
	}
	if err != nil {
		return tokenizer.Token{}, err
	}
	if tok.Kind != tokenizer.TokenIdentifier {
		return tokenizer.Token{}, p.errorf(tok.Offset, "invalid %s %q", what, tok.Text)
	}
	return tok, nil
}

// next returns the next non-whitespace token.
func (p *Parser) next() (tokenizer.Token, error) {
	for {
		tok, err := p.s.Next()
		if err != nil {
			return tokenizer.Token{}, p.wrap(err)
		}
		if tok.Kind != tokenizer.TokenWhitespace {
			return tok, nil
		}
	}
}

// peek returns the next non-whitespace token without consuming it.
func (p *Parser) peek() (tokenizer.Token, error) {
	for {
		tok, err := p.s.Peek()
		if err != nil {
			return tokenizer.Token{}, p.wrap(err)
		}
		if tok.Kind != tokenizer.TokenWhitespace {
			return tok, nil
		}
		p.s.Next() //nolint:errcheck
	}
}

func (p *Parser) wrap(err error) error {
	if err == io.EOF {
		return io.EOF
	}
	var mte *tokenizer.MalformedTokenError
	if errors.As(err, &mte) {
		return &SyntaxError{Offset: mte.Offset, Msg: mte.Reason}
	}
	return err
}

func (p *Parser) errorf(offset int, format string, args ...any) error {
	return &SyntaxError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func isBlank(s string) bool {
	return strings.Trim(s, " \t") == ""
}
