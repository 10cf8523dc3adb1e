// Package tokenizer turns JavaScript/TypeScript source into classified tokens
// for Halstead counting. A tree-sitter lexer is tried first; a coarse regex
// pseudo-tokenizer takes over when it is unavailable or reports errors.
package tokenizer

import (
	"path/filepath"
	"strings"
)

// Kind classifies a token.
type Kind string

const (
	KindOperator          Kind = "Operator"
	KindKeyword           Kind = "Keyword"
	KindIdentifier        Kind = "Identifier"
	KindNumeric           Kind = "Numeric"
	KindString            Kind = "String"
	KindPunctuator        Kind = "Punctuator"
	KindBoolean           Kind = "Boolean"
	KindNull              Kind = "Null"
	KindTemplate          Kind = "Template"
	KindRegularExpression Kind = "RegularExpression"
)

// Token is a single lexical token.
type Token struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value"`
}

// Mode records which tokenizer produced a token stream.
type Mode string

const (
	ModeTreeSitter Mode = "tree-sitter"
	ModeRegex      Mode = "regex"
)

// Language is a source dialect with its own grammar.
type Language string

const (
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
)

// LanguageFromPath returns the grammar to use for a file path.
func LanguageFromPath(path string) (Language, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".mjs", ".cjs", ".jsx":
		return LangJavaScript, true
	case ".ts", ".mts", ".cts":
		return LangTypeScript, true
	case ".tsx":
		return LangTSX, true
	default:
		return "", false
	}
}

// IsOperator reports whether a token of kind k counts as a Halstead operator.
// Keywords and punctuators are operators; everything else is an operand.
func IsOperator(k Kind) bool {
	return k == KindKeyword || k == KindPunctuator
}

// Classify splits token values into operators and operands.
func Classify(tokens []Token) (operators, operands []string) {
	for _, t := range tokens {
		if IsOperator(t.Kind) {
			operators = append(operators, t.Value)
		} else {
			operands = append(operands, t.Value)
		}
	}
	return operators, operands
}
