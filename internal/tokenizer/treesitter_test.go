//go:build cgo

package tokenizer

import (
	"context"
	"errors"
	"testing"
)

func TestTreeSitterLexer_Classifies(t *testing.T) {
	lexer := NewTreeSitterLexer()
	src := []byte("// note\nif (x == 1) { y = \"s\"; }\n")

	tokens, err := lexer.Lex(context.Background(), LangJavaScript, src)
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}

	kinds := make(map[string]Kind)
	for _, tok := range tokens {
		kinds[tok.Value] = tok.Kind
	}

	want := map[string]Kind{
		"if":    KindKeyword,
		"(":     KindPunctuator,
		"x":     KindIdentifier,
		"==":    KindPunctuator,
		"1":     KindNumeric,
		"y":     KindIdentifier,
		`"s"`:   KindString,
		"{":     KindPunctuator,
		"}":     KindPunctuator,
	}
	for value, kind := range want {
		if got, ok := kinds[value]; !ok || got != kind {
			t.Errorf("token %q kind = %q (present=%v), want %q", value, got, ok, kind)
		}
	}
	if _, ok := kinds["// note"]; ok {
		t.Error("comment should not produce a token")
	}
}

func TestTreeSitterLexer_SyntaxError(t *testing.T) {
	lexer := NewTreeSitterLexer()
	_, err := lexer.Lex(context.Background(), LangJavaScript, []byte("function (( {"))
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("Lex() error = %v, want ErrSyntax", err)
	}
}

func TestTreeSitterLexer_TypeScript(t *testing.T) {
	lexer := NewTreeSitterLexer()
	tokens, err := lexer.Lex(context.Background(), LangTypeScript, []byte("let n: number = 2;"))
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	if len(tokens) == 0 {
		t.Fatal("expected tokens")
	}
	if tokens[0].Value != "let" || tokens[0].Kind != KindKeyword {
		t.Errorf("first token = %v, want let keyword", tokens[0])
	}
}
