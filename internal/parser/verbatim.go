package parser

import (
	"doccomment/internal/ast"
	"doccomment/internal/diag"
	"doccomment/internal/token"
)

// parseVerbatimBlock собирает строки до закрывающей команды или конца комментария.
func (p *Parser) parseVerbatimBlock() ast.NodeID {
	begin := p.advance()
	traits, _ := p.cmds.Lookup(begin.Text)
	sp := begin.Span

	var lines []ast.VerbatimLine
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.VerbatimBlockLine:
			p.advance()
			lines = append(lines, ast.VerbatimLine{Text: tok.Text, Span: tok.Span})
			sp = sp.Cover(tok.Span)
			continue
		case token.Newline:
			p.advance()
			lines = append(lines, ast.VerbatimLine{Span: tok.Span.ZeroideToStart()})
			continue
		case token.VerbatimBlockEnd:
			p.advance()
			sp = sp.Cover(tok.Span)
			return p.b.NewVerbatimBlock(sp, begin.Text, traits.EndName, begin.Marker, lines, true)
		}
		break
	}

	p.warn(diag.DocUnterminatedVerbatim, begin.Span,
		"'"+commandSpelling(begin)+"' is not closed by '"+string(rune(begin.Marker))+traits.EndName+"'").Emit()
	return p.b.NewVerbatimBlock(sp, begin.Text, traits.EndName, begin.Marker, lines, false)
}

// parseVerbatimLine берёт имя и остаток строки как есть.
func (p *Parser) parseVerbatimLine() ast.NodeID {
	name := p.advance()
	sp := name.Span
	var (
		text string
		tsp  = name.Span.ZeroideToEnd()
	)
	if t := p.peek(); t.Kind == token.VerbatimLineText {
		p.advance()
		text, tsp = t.Text, t.Span
		sp = sp.Cover(t.Span)
	}
	return p.b.NewVerbatimLine(sp, name.Text, name.Marker, text, tsp)
}
