//go:build !cgo

package tokenizer

// NewTreeSitterLexer returns nil when cgo is disabled, so tokenizing always
// uses the regex fallback.
func NewTreeSitterLexer() Lexer {
	return nil
}

// IsAvailable returns whether the tree-sitter lexer is compiled in.
// Returns false when CGO is disabled.
func IsAvailable() bool {
	return false
}
