package parser

import (
	"doccomment/internal/ast"
	"doccomment/internal/commands"
	"doccomment/internal/diag"
	"doccomment/internal/token"
)

// checkEmptyParagraph warns when a block command has no description.
func (p *Parser) checkEmptyParagraph(id ast.NodeID, traits commands.Traits, para ast.NodeID) {
	if !p.b.Nodes.IsWhitespaceParagraph(para) {
		return
	}
	at := p.b.Nodes.Get(id).Span.ZeroideToEnd()
	p.warn(diag.DocEmptyParagraph, at, "empty paragraph passed to '"+traits.Name+"' command").Emit()
}

// checkDuplicateBrief remembers the first brief command and flags the rest.
func (p *Parser) checkDuplicateBrief(id ast.NodeID, traits commands.Traits, tok token.Token) {
	if !traits.HasFlag(commands.FlagBrief) {
		return
	}
	if !p.brief.IsValid() {
		p.brief = id
		p.briefTok = tok
		return
	}
	p.warn(diag.DocDuplicateBrief, tok.Span, "duplicated command '"+commandSpelling(tok)+"'").
		WithNote(p.briefTok.Span, "previous command '"+commandSpelling(p.briefTok)+"' here").
		Emit()
}
