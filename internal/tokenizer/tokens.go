// Package tokenizer lexes HTTP header-value text using Shape's tokenizer framework.
package tokenizer

// Token kinds produced for header-value grammar (RFC 7230 Section 3.2.6).
const (
	TokenIdentifier   = "Identifier"   // 1*tchar
	TokenQuotedString = "QuotedString" // DQUOTE *( qdtext / quoted-pair ) DQUOTE
	TokenSeparator    = "Separator"    // one of "(),/:;<=>?@[\]{}
	TokenWhitespace   = "Whitespace"   // 1*( SP / HTAB )

	// tokenUnterminated marks a quoted string that ran into the end of input.
	tokenUnterminated = "Unterminated"
)

// Separators is the fixed delimiter set of RFC 7230 Section 3.2.6.
// DQUOTE is listed for completeness but always starts a quoted string.
const Separators = "\"(),/:;<=>?@[\\]{}"

// Token is a classified span of the scanned input.
// Text is the raw source text; Value is the same text for every kind except
// QuotedString, where it holds the unquoted, escape-decoded content.
type Token struct {
	Kind   string
	Text   string
	Value  string
	Offset int // byte offset of Text in the input
}

// Is reports whether t is a separator equal to c.
func (t Token) Is(c byte) bool {
	return t.Kind == TokenSeparator && len(t.Text) == 1 && t.Text[0] == c
}
