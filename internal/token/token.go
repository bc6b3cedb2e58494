package token

import (
	"calc/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

func (t Token) IsKeyword() bool {
	return t.Kind == KwFn || t.Kind == KwPrint
}

func (t Token) IsIdent() bool { return t.Kind == Ident }

func (t Token) IsEOF() bool { return t.Kind == EOF }
