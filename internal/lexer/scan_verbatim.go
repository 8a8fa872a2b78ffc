package lexer

import (
	"doccomment/internal/token"
)

// lexVerbatimBody emits the body of a verbatim block line by line.
// The cursor always sits on a text piece here.
func (lx *Lexer) lexVerbatimBody() token.Token {
	m := lx.cursor.Mark()
	idx := lx.cursor.Index([]byte(lx.verbatimEnd))
	switch {
	case idx == 0:
		lx.cursor.Off += uint32(len(lx.verbatimEnd)) // #nosec G115 -- end names are short
		lx.state = StateNormal
		t := token.Token{
			Kind:   token.VerbatimBlockEnd,
			Span:   lx.cursor.SpanFrom(m),
			Text:   lx.verbatimEnd[1:],
			Marker: token.Marker(lx.verbatimEnd[0]),
		}
		lx.verbatimEnd = ""
		return t
	case idx > 0:
		lx.cursor.Off += uint32(idx) // #nosec G115 -- bounded by the piece
		return token.Token{Kind: token.VerbatimBlockLine, Span: lx.cursor.SpanFrom(m), Text: lx.cursor.TextFrom(m)}
	}

	lx.cursor.Off = lx.cursor.Limit
	t := token.Token{Kind: token.VerbatimBlockLine, Span: lx.cursor.SpanFrom(m), Text: lx.cursor.TextFrom(m), EndsLine: true}
	lx.advance()
	return t
}

// lexVerbatimLineText takes the rest of the line, which may be empty.
func (lx *Lexer) lexVerbatimLineText() token.Token {
	m := lx.cursor.Mark()
	lx.cursor.Off = lx.cursor.Limit
	lx.state = StateNormal
	return token.Token{
		Kind:     token.VerbatimLineText,
		Span:     lx.cursor.SpanFrom(m),
		Text:     lx.cursor.TextFrom(m),
		EndsLine: true,
	}
}

// VerbatimEnd returns the pending end command (marker included), or "".
func (lx *Lexer) VerbatimEnd() string { return lx.verbatimEnd }
