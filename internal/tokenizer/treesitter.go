//go:build cgo

package tokenizer

import (
	"context"
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ErrSyntax is returned when the parse tree contains error or missing nodes.
var ErrSyntax = errors.New("source has syntax errors")

// TreeSitterLexer lexes by walking the leaves of a tree-sitter parse tree.
type TreeSitterLexer struct{}

// NewTreeSitterLexer creates the tree-sitter lexer.
func NewTreeSitterLexer() Lexer {
	return &TreeSitterLexer{}
}

// IsAvailable returns whether the tree-sitter lexer is compiled in.
func IsAvailable() bool {
	return true
}

// Lex parses src and returns its leaf tokens in source order. Comments are
// dropped; string, template and regex literals are single tokens.
func (l *TreeSitterLexer) Lex(ctx context.Context, lang Language, src []byte) ([]Token, error) {
	tsLang, err := getLanguage(lang)
	if err != nil {
		return nil, err
	}

	// Parsers are not safe for concurrent use, so each call gets its own.
	parser := sitter.NewParser()
	parser.SetLanguage(tsLang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parse error: empty tree")
	}
	if root.HasError() {
		return nil, ErrSyntax
	}

	var tokens []Token
	collectLeaves(root, src, &tokens)
	return tokens, nil
}

func getLanguage(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}
}

// atomicNodes are emitted as one token without visiting their children.
var atomicNodes = map[string]Kind{
	"string":          KindString,
	"template_string": KindTemplate,
	"regex":           KindRegularExpression,
}

// skippedNodes never produce tokens.
var skippedNodes = map[string]bool{
	"comment":        true,
	"html_comment":   true,
	"hash_bang_line": true,
	"jsx_text":       true,
}

// namedLeafKinds classifies named leaves that are not plain identifiers.
var namedLeafKinds = map[string]Kind{
	"number": KindNumeric,
	"true":   KindBoolean,
	"false":  KindBoolean,
	"null":   KindNull,
	"this":   KindKeyword,
	"super":  KindKeyword,
}

func collectLeaves(node *sitter.Node, src []byte, tokens *[]Token) {
	if node == nil {
		return
	}

	nodeType := node.Type()
	if skippedNodes[nodeType] {
		return
	}
	if kind, ok := atomicNodes[nodeType]; ok {
		*tokens = append(*tokens, Token{Kind: kind, Value: node.Content(src)})
		return
	}

	count := int(node.ChildCount())
	if count == 0 {
		value := node.Content(src)
		if value == "" {
			// zero-width nodes such as automatic semicolons
			return
		}
		*tokens = append(*tokens, Token{Kind: leafKind(node, nodeType, value), Value: value})
		return
	}

	for i := 0; i < count; i++ {
		collectLeaves(node.Child(i), src, tokens)
	}
}

func leafKind(node *sitter.Node, nodeType, value string) Kind {
	if node.IsNamed() {
		if kind, ok := namedLeafKinds[nodeType]; ok {
			return kind
		}
		return KindIdentifier
	}

	// Anonymous leaves are keywords or punctuation; their type is their text.
	r, _ := utf8.DecodeRuneInString(value)
	if r == '_' || r == '$' || unicode.IsLetter(r) {
		return KindKeyword
	}
	return KindPunctuator
}
