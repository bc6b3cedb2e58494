package lexer

import (
	"bytes"
	"unicode/utf8"

	"calc/internal/diag"
	"calc/internal/source"
	"calc/internal/token"
)

type Lexer struct {
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
}

// New lexes src. A leading BOM is skipped; offsets still count its bytes.
func New(src []byte, opts Options) *Lexer {
	lx := &Lexer{
		cursor: NewCursor(src),
		opts:   opts,
	}
	if bytes.HasPrefix(src, source.BOM) {
		lx.cursor.Advance(len(source.BOM))
	}
	return lx
}

// Next возвращает следующий значимый токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch) || ch >= utf8.RuneSelf:
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '.':
		if _, b1, ok := lx.cursor.Peek2(); ok && isDec(b1) {
			return lx.scanNumber()
		}
	}
	return lx.scanPunct()
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		t := lx.Next()
		lx.look = &t
	}
	return *lx.look
}

// EmptySpan is a zero-width span at the current offset.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{Start: lx.cursor.Off, End: lx.cursor.Off}
}

// All drains the lexer, EOF token included.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	var kind token.Kind
	switch lx.cursor.Bump() {
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case ',':
		kind = token.Comma
	case '=':
		kind = token.Assign
	default:
		// откатываемся и съедаем целую руну, чтобы span не резал UTF-8
		lx.cursor.Off = uint32(start)
		_, size := utf8.DecodeRune(lx.cursor.Src[lx.cursor.Off:])
		lx.cursor.Advance(size)
		sp := lx.cursor.SpanFrom(start)
		text := string(lx.cursor.Src[sp.Start:sp.End])
		lx.report(diag.LexUnknownChar, sp, "unknown character "+quoteChar(text))
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.cursor.Src[sp.Start:sp.End])}
}
