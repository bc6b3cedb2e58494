package diagfmt

import (
	"fmt"
	"io"
)

// Short writes one line per diagnostic: path:line:col: SEV CODE: message.
func Short(w io.Writer, reports []FileReport) error {
	for _, r := range reports {
		for _, d := range r.Diagnostics {
			if _, err := fmt.Fprintf(w, "%s: %s %s: %s\n", position(r.File, d.Primary), d.Severity, d.Code.ID(), d.Message); err != nil {
				return err
			}
		}
	}
	return nil
}
