// Package extract finds function and class declarations in JavaScript/TypeScript
// source text using structural patterns, without a parser.
package extract

import "strings"

// ScanBlock returns the text between the brace at offset open and its matching
// closing brace, plus the offset just past that closing brace.
//
// Braces inside string literals, template literals and comments are ignored.
// If text[open] is not '{' it returns ("", open). If the block is never closed,
// or a comment is left unterminated, the rest of the text is returned as the body
// and the end offset is len(text). Offsets are byte offsets.
func ScanBlock(text string, open int) (string, int) {
	n := len(text)
	if open < 0 || open >= n || text[open] != '{' {
		return "", open
	}

	depth := 0
	i := open + 1
	for i < n {
		c := text[i]

		switch {
		case c == '"' || c == '\'' || c == '`':
			i = skipLiteral(text, i)
			continue

		case c == '/' && i+1 < n && text[i+1] == '*':
			j := strings.Index(text[i+2:], "*/")
			if j < 0 {
				return text[open+1:], n
			}
			i += 2 + j + 2
			continue

		case c == '/' && i+1 < n && text[i+1] == '/':
			j := strings.IndexByte(text[i+2:], '\n')
			if j < 0 {
				return text[open+1:], n
			}
			i += 2 + j + 1
			continue

		case c == '{':
			depth++

		case c == '}':
			if depth == 0 {
				return text[open+1 : i], i + 1
			}
			depth--
		}
		i++
	}

	return text[open+1:], n
}

// skipLiteral advances past the quoted literal starting at i and returns the
// offset after its closing quote, or len(text) if it is never closed.
func skipLiteral(text string, i int) int {
	n := len(text)
	quote := text[i]
	i++
	for i < n {
		switch text[i] {
		case '\\':
			i += 2
			continue
		case quote:
			return i + 1
		}
		i++
	}
	return n
}
