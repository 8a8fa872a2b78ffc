// Package extract finds comment groups in source files so that each group can
// be handed to the parser as one comment span.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"fortio.org/safecast"

	"doccomment/internal/source"
)

// Mode selects which comments are reported.
type Mode uint8

const (
	// ModeDoc keeps "///", "//!", "/**" and "/*!" comments.
	ModeDoc Mode = iota
	// ModeAll keeps every comment.
	ModeAll
)

func (m Mode) String() string {
	if m == ModeAll {
		return "all"
	}
	return "doc"
}

// ParseMode converts a config/flag value.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "doc", "":
		return ModeDoc, nil
	case "all":
		return ModeAll, nil
	default:
		return ModeDoc, fmt.Errorf("unknown extract mode %q (expected: doc|all)", s)
	}
}

// Flavor is the comment opener family. Line comments of different flavors
// never merge into one group.
type Flavor uint8

const (
	FlavorPlain     Flavor = iota // "//" or "/*"
	FlavorDocSlash                // "///"
	FlavorDocBang                 // "//!" or "/*!"
	FlavorDocStar                 // "/**"
)

func (f Flavor) IsDoc() bool { return f != FlavorPlain }

// Group is one run of line comments or one block comment.
type Group struct {
	Span   source.Span
	Block  bool
	Flavor Flavor
	// Trailing is set when code precedes the group on its first line.
	Trailing bool
}

type rawComment struct {
	start, end uint32
	block      bool
	flavor     Flavor
	trailing   bool
}

// Comments returns comment groups of f in source order.
func Comments(f *source.File, mode Mode) []Group {
	raws := scan(f.Content)
	out := make([]Group, 0, len(raws))
	for i := 0; i < len(raws); {
		head := raws[i]
		g := Group{
			Span:     source.Span{File: f.ID, Start: head.start, End: head.end},
			Block:    head.block,
			Flavor:   head.flavor,
			Trailing: head.trailing,
		}
		i++
		for !head.block && i < len(raws) && joins(f.Content, raws[i-1], raws[i]) {
			g.Span.End = raws[i].end
			i++
		}
		if mode == ModeAll || g.Flavor.IsDoc() {
			out = append(out, g)
		}
	}
	return out
}

// joins reports whether next continues the line-comment group ending in prev:
// same flavor, next line, nothing but indentation in between. Trailing
// comments always stand alone.
func joins(content []byte, prev, next rawComment) bool {
	if next.block || next.trailing || prev.trailing || next.flavor != prev.flavor {
		return false
	}
	gap := content[prev.end:next.start]
	if bytes.Count(gap, []byte{'\n'}) != 1 {
		return false
	}
	return len(bytes.Trim(gap, " \t\r\n\f\v")) == 0
}

// scan lists all comments, skipping string, char and raw string literals.
func scan(content []byte) []rawComment {
	var out []rawComment
	n := len(content)
	lineHasCode := false
	for i := 0; i < n; {
		c := content[i]
		switch {
		case c == '\n':
			lineHasCode = false
			i++
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			i++
		case c == '/' && i+1 < n && content[i+1] == '/':
			end := i + 2 + lineLen(content[i+2:])
			out = append(out, rawComment{
				start:    offset(i),
				end:      offset(end),
				flavor:   lineFlavor(content[i:end]),
				trailing: lineHasCode,
			})
			i = end
		case c == '/' && i+1 < n && content[i+1] == '*':
			end := n
			if j := bytes.Index(content[i+2:], []byte("*/")); j >= 0 {
				end = i + 2 + j + 2
			}
			out = append(out, rawComment{
				start:    offset(i),
				end:      offset(end),
				block:    true,
				flavor:   blockFlavor(content[i:end]),
				trailing: lineHasCode,
			})
			i = end
			lineHasCode = true
		case c == '"' || c == '\'':
			i = skipQuoted(content, i)
			lineHasCode = true
		case c == '`':
			if j := bytes.IndexByte(content[i+1:], '`'); j >= 0 {
				i += j + 2
			} else {
				i = n
			}
			lineHasCode = true
		default:
			i++
			lineHasCode = true
		}
	}
	return out
}

// skipQuoted skips a literal opened at i; it never crosses a line break.
func skipQuoted(content []byte, i int) int {
	quote := content[i]
	for i++; i < len(content); i++ {
		switch content[i] {
		case '\\':
			i++
		case '\n':
			return i
		case quote:
			return i + 1
		}
	}
	return len(content)
}

func lineLen(b []byte) int {
	if j := bytes.IndexByte(b, '\n'); j >= 0 {
		return j
	}
	return len(b)
}

func lineFlavor(c []byte) Flavor {
	switch {
	case len(c) >= 3 && c[2] == '!':
		return FlavorDocBang
	case len(c) >= 3 && c[2] == '/' && (len(c) == 3 || c[3] != '/'):
		return FlavorDocSlash
	default:
		return FlavorPlain
	}
}

func blockFlavor(c []byte) Flavor {
	switch {
	case len(c) >= 3 && c[2] == '!':
		return FlavorDocBang
	case len(c) >= 4 && c[2] == '*' && c[3] != '*' && c[3] != '/':
		return FlavorDocStar
	default:
		return FlavorPlain
	}
}

func offset(i int) uint32 {
	off, err := safecast.Conv[uint32](i)
	if err != nil {
		// FileSet.Add не принимает файлы больше 4 ГиБ
		panic(fmt.Errorf("comment offset overflow: %w", err))
	}
	return off
}
