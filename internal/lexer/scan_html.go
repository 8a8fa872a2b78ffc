package lexer

import (
	"doccomment/internal/diag"
	"doccomment/internal/token"
)

// lexAngle handles '<': a start tag opening, a whole end tag, or plain text.
func (lx *Lexer) lexAngle() token.Token {
	m := lx.cursor.Mark()
	lx.cursor.Bump()

	if isHTMLIdentStart(lx.cursor.Peek()) {
		nameStart := lx.cursor.Mark()
		lx.cursor.EatWhile(isHTMLIdentChar)
		t := token.Token{
			Kind: token.HTMLStartTagOpen,
			Span: lx.cursor.SpanFrom(m),
			Text: lx.cursor.TextFrom(nameStart),
		}
		lx.cursor.EatWhile(isHorizontalSpace)
		if c := lx.cursor.Peek(); !lx.cursor.EOF() && (c == '>' || c == '/' || isHTMLIdentStart(c)) {
			lx.state = StateHTMLTag
		}
		t.EndsLine = lx.pieceEnd()
		return t
	}

	if lx.cursor.Eat('/') {
		lx.cursor.EatWhile(isHorizontalSpace)
		if !isHTMLIdentStart(lx.cursor.Peek()) {
			return lx.text(m)
		}
		nameStart := lx.cursor.Mark()
		lx.cursor.EatWhile(isHTMLIdentChar)
		name := lx.cursor.TextFrom(nameStart)
		lx.cursor.EatWhile(isHorizontalSpace)
		lx.cursor.Eat('>')
		return token.Token{
			Kind:     token.HTMLEndTag,
			Span:     lx.cursor.SpanFrom(m),
			Text:     name,
			EndsLine: lx.pieceEnd(),
		}
	}

	return lx.text(m)
}

// lexHTMLTag scans the inside of a start tag.
func (lx *Lexer) lexHTMLTag() token.Token {
	m := lx.cursor.Mark()
	var t token.Token

	switch c := lx.cursor.Peek(); {
	case isHTMLIdentStart(c):
		lx.cursor.EatWhile(isHTMLIdentChar)
		t = token.Token{Kind: token.HTMLIdent, Span: lx.cursor.SpanFrom(m), Text: lx.cursor.TextFrom(m)}
	case c == '=':
		lx.cursor.Bump()
		t = token.Token{Kind: token.HTMLEqual, Span: lx.cursor.SpanFrom(m), Text: "="}
	case c == '"' || c == '\'':
		t = lx.lexQuoted(c)
	case c == '>':
		lx.cursor.Bump()
		lx.state = StateNormal
		return token.Token{Kind: token.HTMLGreater, Span: lx.cursor.SpanFrom(m), Text: ">", EndsLine: lx.pieceEnd()}
	case c == '/':
		if _, c1, ok := lx.cursor.Peek2(); ok && c1 == '>' {
			lx.cursor.Off += 2
			lx.state = StateNormal
			return token.Token{Kind: token.HTMLSlashGreater, Span: lx.cursor.SpanFrom(m), Text: "/>", EndsLine: lx.pieceEnd()}
		}
		fallthrough
	default:
		// не часть тега: тег закрыт неявно
		lx.state = StateNormal
		if t, ok := lx.lexNormal(); ok {
			return t
		}
		return lx.lex()
	}

	lx.cursor.EatWhile(isHorizontalSpace)
	if lx.cursor.EOF() || !startsHTMLTagToken(lx.cursor.Peek()) {
		lx.state = StateNormal
	}
	t.EndsLine = lx.pieceEnd()
	return t
}

func (lx *Lexer) lexQuoted(quote byte) token.Token {
	m := lx.cursor.Mark()
	lx.cursor.Bump()
	bodyStart := lx.cursor.Mark()
	lx.cursor.EatWhile(func(b byte) bool { return b != quote })
	body := lx.cursor.TextFrom(bodyStart)
	if !lx.cursor.Eat(quote) {
		lx.warn(diag.LexUnterminatedQuotedString, lx.cursor.SpanFrom(m), "quoted attribute value is not terminated")
	}
	return token.Token{Kind: token.HTMLQuotedString, Span: lx.cursor.SpanFrom(m), Text: body}
}
