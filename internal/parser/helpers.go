package parser

import (
	"doccomment/internal/diag"
	"doccomment/internal/source"
	"doccomment/internal/token"
)

func (p *Parser) peek() token.Token {
	if n := len(p.back); n > 0 {
		return p.back[n-1]
	}
	return p.lx.Peek()
}

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	var tok token.Token
	if n := len(p.back); n > 0 {
		tok = p.back[n-1]
		p.back = p.back[:n-1]
	} else {
		tok = p.lx.Next()
	}
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// putBack returns toks to the stream; toks[0] comes out first.
func (p *Parser) putBack(toks ...token.Token) {
	for i := len(toks) - 1; i >= 0; i-- {
		p.back = append(p.back, toks[i])
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) skipNewlines() {
	for p.at(token.Newline) {
		p.advance()
	}
}

// atBlockCommand reports whether the next token starts a block or param command.
func (p *Parser) atBlockCommand() bool {
	t := p.peek()
	if t.Kind != token.Command {
		return false
	}
	traits, _ := p.cmds.Lookup(t.Text)
	return traits.IsBlock()
}

func (p *Parser) warn(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	return diag.ReportWarning(p.opts.Reporter, code, sp, msg)
}

func (p *Parser) info(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	return diag.ReportInfo(p.opts.Reporter, code, sp, msg)
}
