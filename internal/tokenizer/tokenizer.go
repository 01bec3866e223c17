package tokenizer

import (
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// NewTokenizer creates a shape-core tokenizer for header-value text.
// Matchers are tried in order:
// 1. Whitespace (SP / HTAB runs)
// 2. Quoted string (starts with DQUOTE)
// 3. Separator (single delimiter)
// 4. Identifier (tchar run)
//
// Whitespace is kept as tokens; higher-level parsers decide to skip it.
// The shape-core tokenizer stops silently on input no matcher accepts, so
// callers that need errors should use Scanner instead.
func NewTokenizer() tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(Matchers()...)
}

// Matchers returns the header-value matchers in priority order.
func Matchers() []tokenizer.Matcher {
	return []tokenizer.Matcher{
		WhitespaceMatcher(),
		QuotedStringMatcher(),
		SeparatorMatcher(),
		IdentifierMatcher(),
	}
}

// WhitespaceMatcher matches a run of SP and HTAB.
func WhitespaceMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		var value []rune
		for {
			r, ok := stream.PeekChar()
			if !ok || (r != ' ' && r != '\t') {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}
		if len(value) == 0 {
			return nil
		}
		return tokenizer.NewToken(TokenWhitespace, value)
	}
}

// QuotedStringMatcher matches a quoted string including its quotes.
// A backslash always consumes the following character. When the input ends
// before the closing quote the consumed text is returned with an internal
// kind that the Scanner reports as malformed.
func QuotedStringMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		r, ok := stream.PeekChar()
		if !ok || r != '"' {
			return nil
		}
		stream.NextChar()
		value := []rune{'"'}

		for {
			r, ok := stream.PeekChar()
			if !ok {
				return tokenizer.NewToken(tokenUnterminated, value)
			}
			stream.NextChar()
			value = append(value, r)

			switch r {
			case '"':
				return tokenizer.NewToken(TokenQuotedString, value)
			case '\\':
				next, ok := stream.PeekChar()
				if !ok {
					return tokenizer.NewToken(tokenUnterminated, value)
				}
				stream.NextChar()
				value = append(value, next)
			}
		}
	}
}

// SeparatorMatcher matches a single delimiter other than DQUOTE.
func SeparatorMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		r, ok := stream.PeekChar()
		if !ok || r == '"' || !isSeparatorRune(r) {
			return nil
		}
		stream.NextChar()
		return tokenizer.NewToken(TokenSeparator, []rune{r})
	}
}

// IdentifierMatcher matches a run of tchar.
func IdentifierMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		var value []rune
		for {
			r, ok := stream.PeekChar()
			if !ok || !isTcharRune(r) {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}
		if len(value) == 0 {
			return nil
		}
		return tokenizer.NewToken(TokenIdentifier, value)
	}
}

// MalformedTokenError reports input the scanner cannot classify.
type MalformedTokenError struct {
	Offset int // byte offset where the bad token starts
	Reason string
}

func (e *MalformedTokenError) Error() string {
	return fmt.Sprintf("malformed token at offset %d: %s", e.Offset, e.Reason)
}

// Scanner pulls tokens from header-value text one at a time.
// A Scanner is single-use: once it returns io.EOF or an error it keeps
// returning the same result.
type Scanner struct {
	stream   tokenizer.Stream
	matchers []tokenizer.Matcher
	offset   int
	err      error

	peeked  bool
	peekTok Token
	peekErr error
}

// NewScanner creates a scanner over input.
// Invalid UTF-8 is reported by the first call to Next.
func NewScanner(input string) *Scanner {
	s := &Scanner{
		stream:   tokenizer.NewStream(input),
		matchers: Matchers(),
	}
	if !utf8.ValidString(input) {
		s.err = &MalformedTokenError{Offset: invalidUTF8Offset(input), Reason: "invalid UTF-8"}
	}
	return s
}

// Offset returns the byte offset of the next unread token.
func (s *Scanner) Offset() int {
	if s.peeked && s.peekErr == nil {
		return s.peekTok.Offset
	}
	return s.offset
}

// Peek returns the next token without consuming it.
func (s *Scanner) Peek() (Token, error) {
	if !s.peeked {
		s.peekTok, s.peekErr = s.scan()
		s.peeked = true
	}
	return s.peekTok, s.peekErr
}

// Next consumes and returns the next token, or io.EOF at the end of input.
func (s *Scanner) Next() (Token, error) {
	if s.peeked {
		s.peeked = false
		return s.peekTok, s.peekErr
	}
	return s.scan()
}

func (s *Scanner) scan() (Token, error) {
	if s.err != nil {
		return Token{}, s.err
	}
	if _, ok := s.stream.PeekChar(); !ok {
		s.err = io.EOF
		return Token{}, s.err
	}

	for _, match := range s.matchers {
		if ct := match(s.stream); ct != nil {
			return s.emit(ct.Kind(), ct.ValueString())
		}
	}

	r, _ := s.stream.PeekChar()
	reason := fmt.Sprintf("unexpected character %q", r)
	if r < 0x20 || r == 0x7F {
		reason = fmt.Sprintf("control character %U", r)
	}
	s.err = &MalformedTokenError{Offset: s.offset, Reason: reason}
	return Token{}, s.err
}

func (s *Scanner) emit(kind, text string) (Token, error) {
	tok := Token{Kind: kind, Text: text, Value: text, Offset: s.offset}
	s.offset += len(text)

	switch kind {
	case tokenUnterminated:
		reason := "unterminated quoted string"
		if strings.HasSuffix(text, `\`) && !strings.HasSuffix(text, `\\`) {
			reason = "trailing backslash in quoted string"
		}
		s.err = &MalformedTokenError{Offset: tok.Offset, Reason: reason}
		return Token{}, s.err
	case TokenQuotedString:
		value, err := unquote(text, tok.Offset)
		if err != nil {
			s.err = err
			return Token{}, err
		}
		tok.Value = value
	}
	return tok, nil
}

// unquote strips the quotes of a complete quoted string and resolves
// quoted-pairs. Control characters other than HTAB are rejected.
func unquote(text string, offset int) (string, error) {
	inner := text[1 : len(text)-1]
	if !strings.ContainsAny(inner, "\\\t") && isPlainQuoted(inner) {
		return inner, nil
	}

	var b strings.Builder
	b.Grow(len(inner))
	for i, r := range inner {
		if !isQuotedTextRune(r) {
			return "", &MalformedTokenError{
				Offset: offset + 1 + i,
				Reason: fmt.Sprintf("control character %U in quoted string", r),
			}
		}
	}
	escaped := false
	for _, r := range inner {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String(), nil
}

func isPlainQuoted(s string) bool {
	for _, r := range s {
		if !isQuotedTextRune(r) {
			return false
		}
	}
	return true
}

func invalidUTF8Offset(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(s)
}

// Scan lexes input lazily. The sequence stops after the first error, which
// is yielded with a zero Token. The sequence is bound to a single scanner,
// so ranging over it a second time yields nothing.
func Scan(input string) iter.Seq2[Token, error] {
	s := NewScanner(input)
	return func(yield func(Token, error) bool) {
		for {
			tok, err := s.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Token{}, err)
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}
