package tokenizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrUnsupportedLanguage is returned by a Lexer for paths it has no grammar for.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Lexer is a real lexer. It returns an error when it cannot tokenize the
// source cleanly, in which case the regex fallback is used.
type Lexer interface {
	Lex(ctx context.Context, lang Language, src []byte) ([]Token, error)
}

// Tokenizer tries its Lexer and falls back to the regex pseudo-tokenizer.
type Tokenizer struct {
	lexer  Lexer
	logger *slog.Logger
}

// New creates a Tokenizer. A nil lexer means regex-only tokenizing; a nil
// logger discards diagnostics.
func New(lexer Lexer, logger *slog.Logger) *Tokenizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tokenizer{
		lexer:  lexer,
		logger: logger,
	}
}

// NewDefault creates a Tokenizer backed by the tree-sitter lexer when the
// binary was built with cgo, and regex-only otherwise.
func NewDefault(logger *slog.Logger) *Tokenizer {
	return New(NewTreeSitterLexer(), logger)
}

// Preferred returns the mode Tokenize uses when the source lexes cleanly.
func (t *Tokenizer) Preferred() Mode {
	if t.lexer != nil {
		return ModeTreeSitter
	}
	return ModeRegex
}

// Tokenize returns the tokens of src and the mode that produced them. It
// never fails: any lexer error results in the regex fallback.
func (t *Tokenizer) Tokenize(ctx context.Context, path string, src []byte) ([]Token, Mode) {
	if t.lexer != nil {
		tokens, err := t.lex(ctx, path, src)
		if err == nil {
			return tokens, ModeTreeSitter
		}
		t.logger.Debug("Lexer failed, using regex fallback",
			"path", path,
			"error", err.Error(),
		)
	}
	return Fallback(string(src)), ModeRegex
}

func (t *Tokenizer) lex(ctx context.Context, path string, src []byte) (tokens []Token, err error) {
	lang, ok := LanguageFromPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, path)
	}

	defer func() {
		if r := recover(); r != nil {
			tokens = nil
			err = fmt.Errorf("lexer panic: %v", r)
		}
	}()

	return t.lexer.Lex(ctx, lang, src)
}
