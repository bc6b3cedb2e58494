package lexer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"calc/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор и проверяет через LookupKeyword.
// Token.Text is NFC-normalised so canonically equal names intern to one ID.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if !isIdentStartRune(r) {
		return lx.scanPunct()
	}
	lx.cursor.Advance(sz)
	for !lx.cursor.EOF() {
		r, sz = lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.cursor.Advance(sz)
	}

	sp := lx.cursor.SpanFrom(start)
	lex := lx.cursor.Src[sp.Start:sp.End]
	if k, ok := token.LookupKeyword(string(lex)); ok {
		return token.Token{Kind: k, Span: sp, Text: string(lex)}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: norm.NFC.String(string(lex))}
}

func (lx *Lexer) peekRune() (rune, int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRune(lx.cursor.Src[lx.cursor.Off:])
}

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}
