package diag

import (
	"fmt"
	"strings"

	"zenc/internal/source"
)

// FormatGoldenDiagnostics renders one line per diagnostic:
// "SEV CODE path:line:col message". Notes follow indented by two spaces.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, withNotes bool) string {
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s %s", d.Severity, d.Code.ID(), position(fs, d.Primary), d.Message)
		if !withNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "\n  note %s %s", position(fs, n.Span), n.Msg)
		}
	}
	return b.String()
}

func position(fs *source.FileSet, sp source.Span) string {
	if fs == nil {
		return sp.String()
	}
	return fs.Position(sp)
}
