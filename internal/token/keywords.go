package token

var keywords = map[string]Kind{
	"fn":    KwFn,
	"print": KwPrint,
}

// LookupKeyword returns the keyword kind for ident, case-sensitively.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
