package diagfmt

import (
	"fmt"

	"calc/internal/diag"
	"calc/internal/source"
)

// FileReport is the set of diagnostics of one source file.
type FileReport struct {
	File        *source.File
	Diagnostics []diag.Diagnostic
	Dropped     int // cut by the max-diagnostics limit
}

// position renders sp as path:line:col.
func position(f *source.File, sp source.Span) string {
	start, _ := f.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", f.Path, start.Line, start.Col)
}
