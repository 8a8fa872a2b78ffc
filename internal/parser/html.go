package parser

import (
	"strings"

	"doccomment/internal/ast"
	"doccomment/internal/diag"
	"doccomment/internal/fix"
	"doccomment/internal/source"
	"doccomment/internal/token"
)

// parseHTMLStartTag разбирает <tag attr="v" ...> до '>' или '/>'.
// Всё прочее закрывает тег неявно.
func (p *Parser) parseHTMLStartTag() ast.NodeID {
	open := p.advance()
	sp := open.Span
	var attrs []ast.HTMLAttr

	for {
		tok := p.peek()
		switch tok.Kind {
		case token.HTMLIdent:
			p.advance()
			sp = sp.Cover(tok.Span)
			attr := ast.HTMLAttr{
				Name:     p.b.Strings.Intern(tok.Text),
				NameSpan: tok.Span,
			}
			if p.at(token.HTMLEqual) {
				eq := p.advance()
				sp = sp.Cover(eq.Span)
				if v := p.peek(); v.Is(token.HTMLQuotedString, token.HTMLIdent) {
					p.advance()
					attr.Value = v.Text
					attr.ValueSpan = v.Span
					attr.HasValue = true
					sp = sp.Cover(v.Span)
				} else {
					p.warn(diag.DocHTMLStrayToken, eq.Span, "expected a value after '=' in <"+open.Text+">").Emit()
				}
			}
			attrs = append(attrs, attr)

		case token.HTMLEqual, token.HTMLQuotedString:
			p.advance()
			sp = sp.Cover(tok.Span)
			p.warn(diag.DocHTMLStrayToken, tok.Span, "unexpected token in <"+open.Text+">").Emit()

		case token.HTMLGreater, token.HTMLSlashGreater:
			p.advance()
			sp = sp.Cover(tok.Span)
			id := p.b.NewHTMLStartTag(sp, open.Text, attrs, tok.Kind == token.HTMLSlashGreater)
			p.actOnStartTag(id, open.Text)
			return id

		default:
			id := p.b.NewHTMLStartTag(sp, open.Text, attrs, false)
			st, _ := p.b.Nodes.HTMLStartTag(id)
			st.IsMalformed = true
			p.warn(diag.DocHTMLTagNotClosed, open.Span, "HTML start tag <"+open.Text+"> is not closed with '>'").Emit()
			p.actOnStartTag(id, open.Text)
			return id
		}
	}
}

func (p *Parser) parseHTMLEndTag() ast.NodeID {
	tok := p.advance()
	id := p.b.NewHTMLEndTag(tok.Span, tok.Text)
	p.actOnEndTag(id, tok.Text, tok.Span)
	return id
}

type openTag struct {
	name string
	id   ast.NodeID
	span source.Span
}

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {}, "img": {},
	"input": {}, "link": {}, "meta": {}, "param": {}, "source": {}, "track": {}, "wbr": {},
}

// optionalEndElements may be left open; the next end tag closes them.
var optionalEndElements = map[string]struct{}{
	"p": {}, "li": {}, "dt": {}, "dd": {}, "tr": {}, "th": {}, "td": {},
	"thead": {}, "tfoot": {}, "tbody": {}, "colgroup": {}, "option": {},
}

func isVoidElement(name string) bool {
	_, ok := voidElements[strings.ToLower(name)]
	return ok
}

func isOptionalEnd(name string) bool {
	_, ok := optionalEndElements[strings.ToLower(name)]
	return ok
}

func (p *Parser) actOnStartTag(id ast.NodeID, name string) {
	st, _ := p.b.Nodes.HTMLStartTag(id)
	if st.IsSelfClosing || isVoidElement(name) {
		return
	}
	p.html = append(p.html, openTag{name: strings.ToLower(name), id: id, span: p.b.Nodes.Get(id).Span})
}

func (p *Parser) actOnEndTag(id ast.NodeID, name string, sp source.Span) {
	et, _ := p.b.Nodes.HTMLEndTag(id)
	if isVoidElement(name) {
		et.IsMalformed = true
		p.warn(diag.DocHTMLVoidEndTag, sp, "HTML end tag </"+name+"> is forbidden for a void element").
			WithFixSuggestion(fix.DeleteSpan("remove end tag", sp, string(p.lx.File().Slice(sp)), fix.WithID("remove-void-end-tag"))).
			Emit()
		return
	}

	lower := strings.ToLower(name)
	found := false
	for i := len(p.html) - 1; i >= 0; i-- {
		if p.html[i].name == lower {
			found = true
			break
		}
	}
	if !found {
		et.IsMalformed = true
		p.warn(diag.DocHTMLUnbalancedEndTag, sp, "HTML end tag </"+name+"> does not match any start tag").Emit()
		return
	}

	for len(p.html) > 0 {
		top := p.html[len(p.html)-1]
		p.html = p.html[:len(p.html)-1]
		st, _ := p.b.Nodes.HTMLStartTag(top.id)
		if top.name == lower {
			if st.IsMalformed {
				et.IsMalformed = true
			}
			return
		}
		if isOptionalEnd(top.name) {
			continue
		}
		st.IsMalformed = true
		et.IsMalformed = true
		p.warn(diag.DocHTMLStartEndMismatch, sp, "HTML end tag </"+name+"> closes <"+top.name+">").
			WithNote(top.span, "start tag <"+top.name+"> is here").
			Emit()
	}
}

// finishHTML reports start tags left open at the end of the comment.
func (p *Parser) finishHTML() {
	for len(p.html) > 0 {
		top := p.html[len(p.html)-1]
		p.html = p.html[:len(p.html)-1]
		if isOptionalEnd(top.name) {
			continue
		}
		st, _ := p.b.Nodes.HTMLStartTag(top.id)
		st.IsMalformed = true
		p.info(diag.DocHTMLUnclosedAtEnd, top.span, "HTML start tag <"+top.name+"> is never closed").Emit()
	}
}
