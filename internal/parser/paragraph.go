package parser

import (
	"doccomment/internal/ast"
	"doccomment/internal/diag"
	"doccomment/internal/source"
	"doccomment/internal/token"
)

// parseParagraphOrBlockCommand собирает абзац до пустой строки, блочной команды
// или verbatim-конструкции. Вне тела блочной команды абзац, начинающийся с
// блочной команды, превращается в саму команду.
func (p *Parser) parseParagraphOrBlockCommand(inBlockBody bool) ast.NodeID {
	var content []ast.NodeID
	start := p.peek().Span.ZeroideToStart()

loop:
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.VerbatimBlockBegin, token.VerbatimLineName, token.EOF:
			break loop

		case token.Command:
			traits, known := p.cmds.Lookup(tok.Text)
			if traits.IsBlock() {
				if len(content) == 0 && !inBlockBody {
					return p.parseBlockCommand()
				}
				break loop
			}
			if !known {
				if _, ok := p.cmds.VerbatimBlockFor(tok.Text); ok {
					p.advance()
					p.warn(diag.DocStrayVerbatimEnd, tok.Span,
						"'"+commandSpelling(tok)+"' without a matching verbatim block").Emit()
					continue
				}
			}
			content = append(content, p.parseInlineCommand())

		case token.Newline:
			p.advance()
			next := p.peek()
			if next.Is(token.Newline, token.EOF) {
				p.advance()
				break loop
			}
			if next.IsWhitespaceText() {
				ws := p.advance()
				if p.at(token.Newline) || p.at(token.EOF) {
					p.advance()
					break loop
				}
				p.putBack(ws)
			}
			if n := len(content); n > 0 {
				p.b.SetTrailingNewline(content[n-1])
			}

		case token.HTMLStartTagOpen:
			content = append(content, p.parseHTMLStartTag())

		case token.HTMLEndTag:
			content = append(content, p.parseHTMLEndTag())

		default:
			// Text, а также любой токен, не ожидаемый в абзаце
			p.advance()
			content = append(content, p.b.NewText(tok.Span, tok.Text))
		}
	}

	para := p.b.NewParagraph(start)
	sp := start
	for i, id := range content {
		p.b.AppendChild(para, id)
		if i == 0 {
			sp = p.b.Nodes.Get(id).Span
		} else {
			sp = sp.Cover(p.b.Nodes.Get(id).Span)
		}
	}
	p.b.SetSpan(para, sp)
	return para
}

// emptyParagraph is attached to a block command with no description.
func (p *Parser) emptyParagraph(at source.Span) ast.NodeID {
	return p.b.NewParagraph(at.ZeroideToEnd())
}
