package diagfmt

import (
	"fmt"
	"strings"

	"doccomment/internal/diag"
	"doccomment/internal/source"
)

// editPreview holds the lines touched by an edit before and after applying it.
type editPreview struct {
	before []string
	after  []string
}

func buildEditPreview(fs *source.FileSet, edit diag.TextEdit) (editPreview, error) {
	if fs == nil {
		return editPreview{}, fmt.Errorf("nil FileSet")
	}
	if int(edit.Span.File) >= fs.Len() {
		return editPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Span.File)
	}
	file := fs.Get(edit.Span.File)
	if edit.Span.End < edit.Span.Start || edit.Span.End > file.Len() {
		return editPreview{}, fmt.Errorf("edit span %v out of range", edit.Span)
	}

	start, end := fs.Resolve(edit.Span)
	blockStart := edit.Span.Start - (start.Col - 1)
	blockEnd := edit.Span.End + uint32(len(file.GetLine(end.Line))) - (end.Col - 1) // #nosec G115 -- line is inside the file

	original := string(file.Content[blockStart:blockEnd])
	relStart := edit.Span.Start - blockStart
	relEnd := edit.Span.End - blockStart
	changed := original[:relStart] + edit.NewText + original[relEnd:]

	return editPreview{
		before: strings.Split(original, "\n"),
		after:  strings.Split(changed, "\n"),
	}, nil
}
