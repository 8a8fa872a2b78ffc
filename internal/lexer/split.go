package lexer

import (
	"bytes"

	"doccomment/internal/diag"
	"doccomment/internal/source"
)

// commentState tracks where the splitter is relative to comment markers.
type commentState uint8

const (
	beforeComment commentState = iota
	insideLineComment
	insideBlockComment
	betweenComments
)

// piece is either one physical line of comment text with decorations removed,
// or a line break between such lines.
type piece struct {
	newline    bool
	start, end uint32
}

// split cuts [start, end) into pieces. Every physical line yields exactly one
// text piece (maybe empty) followed by at least one newline piece.
func (lx *Lexer) split(start, end uint32) []piece {
	content := lx.file.Content
	p := start
	for p < end && isSpace(content[p]) {
		p++
	}
	if p+1 >= end || content[p] != '/' || (content[p+1] != '/' && content[p+1] != '*') {
		return lx.splitPlain(start, end)
	}

	out := make([]piece, 0, 16)
	state := beforeComment
	for {
		if state == betweenComments {
			// между комментариями только пробелы; вся эта полоса становится одним переводом строки
			ws := p
			for p < end && isSpace(content[p]) {
				p++
			}
			out = append(out, piece{newline: true, start: ws, end: p})
			state = beforeComment
		}
		if p >= end {
			break
		}

		switch {
		case hasPrefixAt(content, p, end, "//"):
			state = insideLineComment
			p += 2
			if p < end && (content[p] == '/' || content[p] == '!') {
				p++
			}
			if p < end && content[p] == '<' {
				p++
			}
			lineEnd := indexByteFrom(content, p, end, '\n')
			out = append(out, piece{start: p, end: lineEnd})
			p = lineEnd

		case hasPrefixAt(content, p, end, "/*"):
			state = insideBlockComment
			open := p
			p += 2
			if p < end && ((content[p] == '*' && !hasPrefixAt(content, p, end, "*/")) || content[p] == '!') {
				p++
			}
			if p < end && content[p] == '<' {
				p++
			}
			bodyEnd := end
			terminated := false
			if i := bytes.Index(content[p:end], []byte("*/")); i >= 0 {
				bodyEnd = p + uint32(i) // #nosec G115 -- bounded by end
				terminated = true
			} else {
				lx.warn(diag.LexUnterminatedBlockComment,
					source.Span{File: lx.file.ID, Start: open, End: open + 2},
					"block comment is not terminated")
			}
			out = lx.splitBlockBody(out, p, bodyEnd)
			if terminated {
				// перевод строки синтезируется сразу после "*/"
				out = append(out, piece{newline: true, start: bodyEnd, end: bodyEnd + 2})
				p = bodyEnd + 2
			} else {
				out = append(out, piece{newline: true, start: end, end: end})
				p = end
			}

		default:
			// not a comment marker: treat the rest of the line as plain text
			lineEnd := indexByteFrom(content, p, end, '\n')
			out = append(out, piece{start: p, end: lineEnd})
			p = lineEnd
		}
		state = betweenComments
	}
	return out
}

// splitBlockBody splits the inside of /* ... */ into lines, dropping the
// leading "  *" decoration of every line after the first.
func (lx *Lexer) splitBlockBody(out []piece, p, bodyEnd uint32) []piece {
	content := lx.file.Content
	for {
		nl := indexByteFrom(content, p, bodyEnd, '\n')
		out = append(out, piece{start: p, end: nl})
		if nl == bodyEnd {
			return out
		}
		out = append(out, piece{newline: true, start: nl, end: nl + 1})
		p = skipDecoration(content, nl+1, bodyEnd)
	}
}

// skipDecoration skips blanks and one '*' at a line start. A line holding only
// blanks before the comment end keeps them.
func skipDecoration(content []byte, p, bodyEnd uint32) uint32 {
	q := p
	for q < bodyEnd && isHorizontalSpace(content[q]) {
		q++
	}
	if q < bodyEnd && content[q] == '*' {
		return q + 1
	}
	return p
}

// splitPlain handles text whose decorations were already stripped upstream.
func (lx *Lexer) splitPlain(start, end uint32) []piece {
	content := lx.file.Content
	out := make([]piece, 0, 8)
	p := start
	for {
		nl := indexByteFrom(content, p, end, '\n')
		out = append(out, piece{start: p, end: nl})
		if nl == end {
			out = append(out, piece{newline: true, start: end, end: end})
			return out
		}
		out = append(out, piece{newline: true, start: nl, end: nl + 1})
		p = nl + 1
	}
}

func hasPrefixAt(content []byte, p, end uint32, prefix string) bool {
	return int(end-p) >= len(prefix) && string(content[p:p+uint32(len(prefix))]) == prefix // #nosec G115
}

func indexByteFrom(content []byte, p, end uint32, b byte) uint32 {
	if i := bytes.IndexByte(content[p:end], b); i >= 0 {
		return p + uint32(i) // #nosec G115 -- bounded by end
	}
	return end
}
