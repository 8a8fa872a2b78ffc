package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"doccomment/internal/diag"
	"doccomment/internal/source"
)

// palette holds per-call colors so concurrent renders do not share state.
type palette struct {
	err, warn, info, code, loc, gutter, caret, note, fix, del, add *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		loc:    color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
		fix:    color.New(color.FgMagenta),
		del:    color.New(color.FgRed),
		add:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.loc, p.gutter, p.caret, p.note, p.fix, p.del, p.add} {
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

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее). Для каждой печатает
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строки исходника с подчёркиванием ^~~~ под Span, затем заметки и исправления.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, p)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "\n... %d more diagnostics not shown\n", n)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.loc.Sprint(location(fs, d.Primary, opts.PathMode, opts.BaseDir)),
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message,
	)
	writeSnippet(w, fs, d.Primary, opts.Context, p)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), location(fs, n.Span, opts.PathMode, opts.BaseDir), n.Msg)
		}
	}
	if !opts.ShowFixes {
		return
	}
	for i, f := range d.Fixes {
		var meta []string
		if f.ID != "" {
			meta = append(meta, "id="+f.ID)
		}
		meta = append(meta, f.Applicability.String())
		if f.IsPreferred {
			meta = append(meta, "preferred")
		}
		fmt.Fprintf(w, "  %s %s (%s)\n", p.fix.Sprintf("fix #%d:", i+1), f.Title, strings.Join(meta, ", "))
		for _, e := range f.Edits {
			fmt.Fprintf(w, "    edit %s apply=%s\n", location(fs, e.Span, opts.PathMode, opts.BaseDir), strconv.Quote(e.NewText))
			if !opts.ShowPreview {
				continue
			}
			pv, err := buildEditPreview(fs, e)
			if err != nil {
				fmt.Fprintf(w, "    preview unavailable: %v\n", err)
				continue
			}
			fmt.Fprintln(w, "    preview:")
			for _, l := range pv.before {
				fmt.Fprintf(w, "      %s\n", p.del.Sprint("- "+l))
			}
			for _, l := range pv.after {
				fmt.Fprintf(w, "      %s\n", p.add.Sprint("+ "+l))
			}
		}
	}
}

// writeSnippet prints the span's lines plus ctx lines around them, with a
// caret line under the first line of the span.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, ctx int, p palette) {
	if int(sp.File) >= fs.Len() {
		return
	}
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	if ctx < 0 {
		ctx = 0
	}
	first := int(start.Line) - ctx
	if first < 1 {
		first = 1
	}
	last := int(end.Line) + ctx
	if maxLine := len(f.LineIdx) + 1; last > maxLine {
		last = maxLine
	}
	width := len(strconv.Itoa(last))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(uint32(ln)) // #nosec G115 -- bounded by line count
		if ln > int(end.Line) && text == "" && ln == last {
			break
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width, ln), expandTabs(text))
		if ln != int(start.Line) {
			continue
		}
		lineText := expandTabs(text)
		col := len(expandTabs(text[:min(int(start.Col-1), len(text))]))
		n := 1
		if end.Line == start.Line && end.Col > start.Col {
			n = len(expandTabs(text[:min(int(end.Col-1), len(text))])) - col
		} else if end.Line != start.Line {
			n = len(lineText) - col
		}
		n = max(n, 1)
		marker := "^" + strings.Repeat("~", n-1)
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprint(strings.Repeat(" ", width)+" |"), strings.Repeat(" ", col), p.caret.Sprint(marker))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func location(fs *source.FileSet, sp source.Span, mode PathMode, baseDir string) string {
	if int(sp.File) >= fs.Len() {
		return "<unknown>"
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(fs.Get(sp.File), mode, baseDir), start.Line, start.Col)
}
