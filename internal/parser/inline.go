package parser

import (
	"doccomment/internal/ast"
	"doccomment/internal/commands"
	"doccomment/internal/diag"
)

// parseInlineCommand разбирает \b, \c и неизвестные команды внутри абзаца.
func (p *Parser) parseInlineCommand() ast.NodeID {
	tok := p.advance()
	traits, known := p.cmds.Lookup(tok.Text)

	render := commands.RenderNormal
	if known {
		render = traits.Render
	}
	sp := tok.Span
	var args []ast.Arg
	if traits.NumArgs > 0 {
		rt := newRetokenizer(p)
		for range traits.NumArgs {
			arg, ok := rt.lexWord()
			if !ok {
				p.warn(diag.DocMissingCommandArgument, tok.Span.ZeroideToEnd(),
					"'"+commandSpelling(tok)+"' command has no argument").Emit()
				break
			}
			args = append(args, arg)
			sp = sp.Cover(arg.Span)
		}
		rt.putBackLeftovers()
	}
	return p.b.NewInlineCommand(sp, tok.Span, tok.Text, tok.Marker, render, args)
}
