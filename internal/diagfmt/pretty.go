package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rivo/uniseg"

	"zenc/internal/diag"
	"zenc/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, gutter, caret, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty renders diagnostics for a terminal:
//
//	path:line:col: ERROR SYN2001: message
//	   3 | let x = 1 +;
//	     |            ^
//
// Caret columns are measured in grapheme display width, so wide and combining
// characters before the span do not shift the underline.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	items := limitItems(bag.Items(), opts.Max)
	for i, d := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, pal)
	}
	if hidden := bag.Len() - len(items) + bag.Dropped(); hidden > 0 {
		fmt.Fprintf(w, "\n... %d more diagnostic(s) not shown\n", hidden)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sev := pal.severity(d.Severity)
	if fs == nil || int(d.Primary.File) >= fs.Len() {
		fmt.Fprintf(w, "%s %s: %s\n", sev.Sprint(d.Severity.String()), pal.bold.Sprint(d.Code.ID()), d.Message)
		return
	}
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col,
		sev.Sprint(d.Severity.String()), pal.bold.Sprint(d.Code.ID()), d.Message)

	writeSnippet(w, fs, d.Primary, int(opts.Context), pal)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		if int(n.Span.File) >= fs.Len() {
			fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
			continue
		}
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
			formatPath(fs, n.Span.File, opts.PathMode), ns.Line, ns.Col, n.Msg)
	}
}

func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, context int, pal palette) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	lastLine := len(f.LineIdx) + 1

	first := int(start.Line) - context
	if first < 1 {
		first = 1
	}
	last := int(start.Line) + context
	if last > lastLine {
		last = lastLine
	}
	gw := len(fmt.Sprint(last))
	if gw < 3 {
		gw = 3
	}

	for ln := first; ln <= last; ln++ {
		// #nosec G115 -- ln ограничен числом строк файла
		line := f.GetLine(uint32(ln))
		fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*d |", gw, ln), expandTabs(line))
		if ln != int(start.Line) {
			continue
		}
		prefix := byteCol(line, start.Col)
		var marked string
		if end.Line == start.Line {
			marked = line[len(prefix):len(byteCol(line, end.Col))]
		} else {
			marked = line[len(prefix):]
		}
		pad := displayWidth(expandTabs(prefix))
		width := displayWidth(expandTabs(marked))
		underline := "^"
		if width > 1 {
			underline += strings.Repeat("~", width-1)
		}
		fmt.Fprintf(w, " %s %s%s\n", pal.gutter.Sprintf("%*s |", gw, ""), strings.Repeat(" ", pad), pal.caret.Sprint(underline))
	}
}

// byteCol returns line[:col-1] clamped to the line.
func byteCol(line string, col uint32) string {
	n := int(col) - 1
	if n < 0 {
		n = 0
	}
	if n > len(line) {
		n = len(line)
	}
	return line[:n]
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func displayWidth(s string) int {
	return uniseg.StringWidth(s)
}
