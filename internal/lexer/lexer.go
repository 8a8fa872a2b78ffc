package lexer

import (
	"doccomment/internal/commands"
	"doccomment/internal/diag"
	"doccomment/internal/source"
	"doccomment/internal/token"
)

// State is the lexer mode. Verbatim and HTML constructs switch it.
type State uint8

const (
	StateNormal State = iota
	StateHTMLTag
	StateVerbatimBlockBody
	StateVerbatimLineText
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateHTMLTag:
		return "html-tag"
	case StateVerbatimBlockBody:
		return "verbatim-block-body"
	case StateVerbatimLineText:
		return "verbatim-line-text"
	default:
		return "State(?)"
	}
}

// Lexer turns one comment into tokens. It never fails: malformed input
// degrades to Text tokens, and problems go to Options.Reporter.
type Lexer struct {
	file   *source.File
	span   source.Span
	opts   Options
	cmds   *commands.Registry
	pieces []piece
	cur    int
	cursor Cursor
	state  State
	// verbatimEnd is marker+end name of the open verbatim block.
	verbatimEnd string
	look        *token.Token
}

// New creates a lexer over sp of file. sp may cover raw comment text with
// // or /* */ decorations, or already stripped text.
func New(file *source.File, sp source.Span, opts Options) *Lexer {
	if opts.Commands == nil {
		opts.Commands = commands.Default()
	}
	if opts.Reporter != nil {
		opts.Reporter = diag.NewDedupReporter(opts.Reporter)
	}
	whole := NewCursor(file, sp.Start, sp.End)
	sp = source.Span{File: file.ID, Start: whole.Off, End: whole.Limit}
	lx := &Lexer{
		file: file,
		span: sp,
		opts: opts,
		cmds: opts.Commands,
	}
	lx.pieces = lx.split(sp.Start, sp.End)
	lx.enter(0)
	return lx
}

// Span returns the lexed range.
func (lx *Lexer) Span() source.Span { return lx.span }

// File returns the underlying source file.
func (lx *Lexer) File() *source.File { return lx.file }

// State returns the current mode.
func (lx *Lexer) State() State { return lx.state }

// Reset rewinds the lexer to the first token. Diagnostics are not reported twice.
func (lx *Lexer) Reset() {
	lx.state = StateNormal
	lx.verbatimEnd = ""
	lx.look = nil
	lx.enter(0)
}

// Next returns the next token; after the end it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		t := *lx.look
		lx.look = nil
		return t
	}
	return lx.lex()
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		t := lx.lex()
		lx.look = &t
	}
	return *lx.look
}

// All lexes the rest of the input; the final token is EOF.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		t := lx.Next()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) enter(i int) {
	lx.cur = i
	if i < len(lx.pieces) && !lx.pieces[i].newline {
		p := lx.pieces[i]
		lx.cursor = NewCursor(lx.file, p.start, p.end)
	}
}

func (lx *Lexer) advance() { lx.enter(lx.cur + 1) }

func (lx *Lexer) lex() token.Token {
	for {
		if lx.cur >= len(lx.pieces) {
			return token.Token{
				Kind: token.EOF,
				Span: source.Span{File: lx.file.ID, Start: lx.span.End, End: lx.span.End},
			}
		}
		p := lx.pieces[lx.cur]
		if p.newline {
			lx.advance()
			if lx.state == StateVerbatimBlockBody {
				continue
			}
			lx.state = StateNormal
			return token.Token{
				Kind: token.Newline,
				Span: source.Span{File: lx.file.ID, Start: p.start, End: p.end},
				Text: "\n",
			}
		}

		switch lx.state {
		case StateVerbatimBlockBody:
			return lx.lexVerbatimBody()
		case StateVerbatimLineText:
			return lx.lexVerbatimLineText()
		}

		if lx.cursor.EOF() {
			lx.advance()
			continue
		}
		if lx.state == StateHTMLTag {
			return lx.lexHTMLTag()
		}
		if t, ok := lx.lexNormal(); ok {
			return t
		}
	}
}

func (lx *Lexer) pieceEnd() bool { return lx.cursor.EOF() }

func (lx *Lexer) text(m Mark) token.Token {
	return token.Token{
		Kind:     token.Text,
		Span:     lx.cursor.SpanFrom(m),
		Text:     lx.cursor.TextFrom(m),
		EndsLine: lx.pieceEnd(),
	}
}
