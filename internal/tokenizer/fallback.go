package tokenizer

import "regexp"

// fallbackPattern picks out identifiers and the common operators. Everything
// else (literals, brackets, separators) is dropped.
var fallbackPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*|==|!=|<=|>=|=>|[+\-/=<>!&|^%]`)

// Fallback tokenizes src with fallbackPattern. A token that starts with a
// non-word character is a Punctuator, anything else an Identifier.
func Fallback(src string) []Token {
	matches := fallbackPattern.FindAllString(src, -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		kind := KindIdentifier
		if !isWordByte(m[0]) {
			kind = KindPunctuator
		}
		tokens = append(tokens, Token{Kind: kind, Value: m})
	}
	return tokens
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
