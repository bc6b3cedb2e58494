// Package token defines lexical token kinds for the calc language.
// Invariants:
//   - Token.Span matches the source bytes of Token.Text, except that
//     identifiers are NFC-normalised and may differ byte-wise.
//   - Whitespace and // comments never appear in the token stream.
package token
