package parser

import (
	"doccomment/internal/ast"
	"doccomment/internal/commands"
	"doccomment/internal/diag"
	"doccomment/internal/token"
)

// parseBlockCommand разбирает \brief, \param и подобные: аргументы и ровно один абзац.
func (p *Parser) parseBlockCommand() ast.NodeID {
	tok := p.advance()
	traits, _ := p.cmds.Lookup(tok.Text)

	var id ast.NodeID
	if traits.IsParam() {
		id = p.b.NewParamCommand(tok.Span, tok.Span, tok.Text, tok.Marker)
	} else {
		id = p.b.NewBlockCommand(tok.Span, tok.Span, tok.Text, tok.Marker, nil)
	}
	p.checkDuplicateBrief(id, traits, tok)

	if p.atBlockCommand() {
		// вложенных блочных команд нет: у этой будет пустой абзац
		p.finishBlockCommand(id, traits, p.emptyParagraph(tok.Span))
		return id
	}

	switch {
	case traits.IsParam():
		p.parseParamArgs(id, traits, tok)
	case traits.NumArgs > 0:
		p.parseBlockArgs(id, traits, tok)
	}

	emptyParagraph := p.atBlockCommand()
	if !emptyParagraph && p.at(token.Newline) {
		nl := p.advance()
		emptyParagraph = p.atBlockCommand()
		p.putBack(nl)
	}

	var para ast.NodeID
	if emptyParagraph {
		para = p.emptyParagraph(p.lastSpan)
	} else {
		para = p.parseParagraphOrBlockCommand(true)
	}
	p.finishBlockCommand(id, traits, para)
	return id
}

func (p *Parser) parseParamArgs(id ast.NodeID, traits commands.Traits, tok token.Token) {
	pc, _ := p.b.Nodes.ParamCommand(id)
	rt := newRetokenizer(p)
	if traits.TakesDirection() {
		if arg, ok := rt.lexDelimited('[', ']'); ok {
			p.actOnDirection(pc, arg)
		}
	}
	if arg, ok := rt.lexWord(); ok {
		pc.ParamName = arg.Text
		pc.ParamNameSpan = arg.Span
	} else {
		p.warn(diag.DocMissingParamName, tok.Span.ZeroideToEnd(),
			"'"+commandSpelling(tok)+"' command has no parameter name").Emit()
	}
	rt.putBackLeftovers()
}

func (p *Parser) parseBlockArgs(id ast.NodeID, traits commands.Traits, tok token.Token) {
	bc, _ := p.b.Nodes.BlockCommand(id)
	rt := newRetokenizer(p)
	for range traits.NumArgs {
		arg, ok := rt.lexWord()
		if !ok {
			p.warn(diag.DocMissingCommandArgument, tok.Span.ZeroideToEnd(),
				"'"+commandSpelling(tok)+"' command expects an argument").Emit()
			break
		}
		bc.Args = append(bc.Args, arg)
	}
	rt.putBackLeftovers()
}

// finishBlockCommand attaches the paragraph, grows the span and runs checks.
func (p *Parser) finishBlockCommand(id ast.NodeID, traits commands.Traits, para ast.NodeID) {
	p.b.AppendChild(id, para)
	sp := p.b.Nodes.Get(id).Span
	if pc, ok := p.b.Nodes.ParamCommand(id); ok {
		if pc.IsDirectionExplicit {
			sp = sp.Cover(pc.DirectionSpan)
		}
		if pc.ParamName != "" {
			sp = sp.Cover(pc.ParamNameSpan)
		}
	}
	if bc, ok := p.b.Nodes.BlockCommand(id); ok {
		for _, a := range bc.Args {
			sp = sp.Cover(a.Span)
		}
	}
	if p.b.Nodes.ChildCount(para) > 0 {
		sp = sp.Cover(p.b.Nodes.Get(para).Span)
	}
	p.b.SetSpan(id, sp)
	p.checkEmptyParagraph(id, traits, para)
}

func commandSpelling(tok token.Token) string {
	if tok.Marker == token.MarkerNone {
		return tok.Text
	}
	return string(rune(tok.Marker)) + tok.Text
}
