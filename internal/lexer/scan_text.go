package lexer

import (
	"doccomment/internal/token"
)

// lexNormal scans one token in normal mode. ok is false when the scan only
// skipped a blank line remainder.
func (lx *Lexer) lexNormal() (token.Token, bool) {
	switch lx.cursor.Peek() {
	case '\\', '@':
		return lx.lexCommand(), true
	case '<':
		return lx.lexAngle(), true
	}

	m := lx.cursor.Mark()
	atLineStart := lx.cursor.Off == lx.pieces[lx.cur].start
	lx.cursor.EatWhile(func(b byte) bool {
		return b != '\\' && b != '@' && b != '<'
	})
	t := lx.text(m)
	// строка из одних пробелов не даёт токена
	if atLineStart && t.EndsLine && allSpace([]byte(t.Text)) {
		return token.Token{}, false
	}
	return t, true
}

func (lx *Lexer) lexCommand() token.Token {
	m := lx.cursor.Mark()
	marker := token.Marker(lx.cursor.Bump())
	if lx.cursor.EOF() {
		return lx.text(m)
	}

	c := lx.cursor.Peek()
	if isEscapable(c) {
		lx.cursor.Bump()
		if c == ':' {
			lx.cursor.Eat(':')
		}
		t := lx.text(m)
		t.Text = t.Text[1:]
		return t
	}
	if !isLetter(c) {
		return lx.text(m)
	}

	nameStart := lx.cursor.Mark()
	lx.cursor.EatWhile(isAlnum)
	name := lx.cursor.TextFrom(nameStart)
	if name == "f" && isFormulaSuffix(lx.cursor.Peek()) {
		lx.cursor.Bump()
		name = lx.cursor.TextFrom(nameStart)
	}
	sp := lx.cursor.SpanFrom(m)

	traits, _ := lx.cmds.Lookup(name)
	switch {
	case traits.IsVerbatimBlock():
		lx.state = StateVerbatimBlockBody
		lx.verbatimEnd = string(rune(marker)) + traits.EndName
		if lx.pieceEnd() {
			// перевод строки сразу после открывающей команды не входит в тело
			lx.advance()
		}
		return token.Token{Kind: token.VerbatimBlockBegin, Span: sp, Text: name, Marker: marker}
	case traits.IsVerbatimLine():
		lx.state = StateVerbatimLineText
		return token.Token{Kind: token.VerbatimLineName, Span: sp, Text: name, Marker: marker}
	default:
		return token.Token{Kind: token.Command, Span: sp, Text: name, Marker: marker, EndsLine: lx.pieceEnd()}
	}
}
