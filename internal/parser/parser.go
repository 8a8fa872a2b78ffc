package parser

import (
	"golang.org/x/text/cases"

	"doccomment/internal/ast"
	"doccomment/internal/commands"
	"doccomment/internal/diag"
	"doccomment/internal/lexer"
	"doccomment/internal/source"
	"doccomment/internal/token"
)

type Options struct {
	// Reporter получает предупреждения разбора; nil их отбрасывает.
	Reporter diag.Reporter
	// Commands must be the registry the lexer was built with; nil means commands.Default().
	Commands *commands.Registry
}

// Parser: состояние разбора одного комментария
type Parser struct {
	lx   *lexer.Lexer
	b    *ast.Builder
	opts Options
	cmds *commands.Registry
	// back: стек возвращённых токенов, последний элемент отдаётся первым
	back     []token.Token
	lastSpan source.Span
	fold     cases.Caser
	html     []openTag
	brief    ast.NodeID
	briefTok token.Token
}

// ParseComment consumes lx to the end and returns the FullComment node.
// It never fails: malformed input yields a well-formed tree plus diagnostics.
func ParseComment(lx *lexer.Lexer, b *ast.Builder, opts Options) ast.NodeID {
	if opts.Commands == nil {
		opts.Commands = commands.Default()
	}
	p := Parser{
		lx:       lx,
		b:        b,
		opts:     opts,
		cmds:     opts.Commands,
		lastSpan: lx.Span().ZeroideToStart(),
		fold:     cases.Fold(),
	}
	return p.parseFullComment()
}

// Parse lexes sp of file and parses it with one shared registry and reporter.
func Parse(file *source.File, sp source.Span, b *ast.Builder, opts Options) ast.NodeID {
	if opts.Commands == nil {
		opts.Commands = commands.Default()
	}
	lx := lexer.New(file, sp, lexer.Options{Reporter: opts.Reporter, Commands: opts.Commands})
	return ParseComment(lx, b, opts)
}

func (p *Parser) parseFullComment() ast.NodeID {
	full := p.b.NewFullComment(p.lx.Span())
	p.skipNewlines()
	for !p.at(token.EOF) {
		if blk := p.parseBlockContent(); blk.IsValid() {
			p.b.AppendChild(full, blk)
		}
		p.skipNewlines()
	}
	p.finishHTML()
	return full
}

// parseBlockContent разбирает один блок верхнего уровня.
func (p *Parser) parseBlockContent() ast.NodeID {
	switch p.peek().Kind {
	case token.VerbatimBlockBegin:
		return p.parseVerbatimBlock()
	case token.VerbatimLineName:
		return p.parseVerbatimLine()
	default:
		id := p.parseParagraphOrBlockCommand(false)
		if p.b.Nodes.Kind(id) == ast.KindParagraph && p.b.Nodes.ChildCount(id) == 0 {
			return ast.NoNodeID
		}
		return id
	}
}
