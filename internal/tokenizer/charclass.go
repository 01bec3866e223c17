package tokenizer

var (
	isTchar     [256]bool
	isSeparator [256]bool
)

func init() {
	tchars := "!#$%&'*+-.^_`|~" +
		"0123456789" +
		"abcdefghijklmnopqrstuvwxyz" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	for i := 0; i < len(tchars); i++ {
		isTchar[tchars[i]] = true
	}
	for i := 0; i < len(Separators); i++ {
		isSeparator[Separators[i]] = true
	}
}

// IsTokenChar reports whether b is a tchar.
func IsTokenChar(b byte) bool { return isTchar[b] }

// IsToken reports whether s is a non-empty RFC 7230 token.
func IsToken(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isTchar[s[i]] {
			return false
		}
	}
	return s != ""
}

func isTcharRune(r rune) bool { return r < 0x80 && isTchar[r] }

func isSeparatorRune(r rune) bool { return r < 0x80 && isSeparator[r] }

// isQuotedTextRune reports whether r may appear inside a quoted string,
// either literally or after a backslash: HTAB, SP, VCHAR and obs-text.
func isQuotedTextRune(r rune) bool {
	return r == '\t' || (r >= 0x20 && r != 0x7F)
}
