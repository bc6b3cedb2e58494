package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	Number

	KwFn    // fn
	KwPrint // print

	Plus   // +
	Minus  // -
	Star   // *
	Slash  // /
	LParen // (
	RParen // )
	Comma  // ,
	Assign // =
)

var kindNames = [...]string{
	Invalid: "Invalid",
	EOF:     "EOF",
	Ident:   "Ident",
	Number:  "Number",
	KwFn:    "fn",
	KwPrint: "print",
	Plus:    "+",
	Minus:   "-",
	Star:    "*",
	Slash:   "/",
	LParen:  "(",
	RParen:  ")",
	Comma:   ",",
	Assign:  "=",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// IsStatementStart reports whether k begins a top-level statement.
func (k Kind) IsStatementStart() bool {
	return k == KwFn || k == KwPrint
}
