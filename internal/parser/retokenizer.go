package parser

import (
	"doccomment/internal/ast"
	"doccomment/internal/source"
	"doccomment/internal/token"
)

// retokenizer re-reads the Text tokens after a command byte by byte to cut out
// words and bracketed arguments. It may cross one line break when the next
// line starts with text; unused input goes back to the parser.
type retokenizer struct {
	p    *Parser
	toks []pulledText
	cur  int
	pos  int
	done bool
}

type pulledText struct {
	tok token.Token
	// nl: перевод строки перед токеном, если он был пропущен
	nl    token.Token
	hasNL bool
}

type rtPos struct{ cur, pos int }

func newRetokenizer(p *Parser) *retokenizer {
	return &retokenizer{p: p}
}

func (r *retokenizer) save() rtPos      { return rtPos{r.cur, r.pos} }
func (r *retokenizer) restore(s rtPos) { r.cur, r.pos = s.cur, s.pos }

func (r *retokenizer) addToken() bool {
	if r.done {
		return false
	}
	next := pulledText{}
	if r.p.at(token.Newline) {
		nl := r.p.advance()
		if !r.p.at(token.Text) {
			r.p.putBack(nl)
			r.done = true
			return false
		}
		next.nl, next.hasNL = nl, true
	}
	if !r.p.at(token.Text) {
		r.done = true
		return false
	}
	next.tok = r.p.advance()
	r.toks = append(r.toks, next)
	return true
}

// ensure moves past exhausted tokens; false means no more text.
func (r *retokenizer) ensure() bool {
	for {
		if r.cur < len(r.toks) {
			if r.pos < len(r.toks[r.cur].tok.Text) {
				return true
			}
			if r.cur+1 < len(r.toks) || r.addToken() {
				r.cur++
				r.pos = 0
				continue
			}
			return false
		}
		if !r.addToken() {
			return false
		}
	}
}

func (r *retokenizer) peekByte() (byte, bool) {
	if !r.ensure() {
		return 0, false
	}
	return r.toks[r.cur].tok.Text[r.pos], true
}

// atLineBreak reports whether the next byte starts a token from a new line.
func (r *retokenizer) atLineBreak() bool {
	return r.ensure() && r.pos == 0 && r.toks[r.cur].hasNL
}

// offset maps the current position to a source offset. Escaped text is
// shorter than its source, so offsets are counted back from the token end.
func (r *retokenizer) offset() source.Span {
	t := r.toks[r.cur].tok
	back := uint32(len(t.Text) - r.pos) // #nosec G115 -- token text is bounded by the file
	start := t.Span.Start
	if t.Span.End-start >= back {
		start = t.Span.End - back
	}
	return source.Span{File: t.Span.File, Start: start, End: start}
}

func (r *retokenizer) skipSpaces() {
	for {
		b, ok := r.peekByte()
		if !ok || !isSpace(b) {
			return
		}
		r.pos++
	}
}

// lexWord reads the next run of non-blank bytes.
func (r *retokenizer) lexWord() (ast.Arg, bool) {
	saved := r.save()
	r.skipSpaces()

	var (
		word []byte
		sp   source.Span
	)
	for {
		b, ok := r.peekByte()
		if !ok || isSpace(b) || (len(word) > 0 && r.atLineBreak()) {
			break
		}
		at := r.offset()
		if len(word) == 0 {
			sp = at
		}
		word = append(word, b)
		r.pos++
		sp.End = at.Start + 1
	}
	if len(word) == 0 {
		r.restore(saved)
		return ast.Arg{}, false
	}
	return ast.Arg{Text: string(word), Span: sp}, true
}

// lexDelimited reads open ... close on one line, delimiters included.
func (r *retokenizer) lexDelimited(open, closing byte) (ast.Arg, bool) {
	saved := r.save()
	r.skipSpaces()

	b, ok := r.peekByte()
	if !ok || b != open {
		r.restore(saved)
		return ast.Arg{}, false
	}
	sp := r.offset()
	text := []byte{b}
	r.pos++
	for {
		b, ok = r.peekByte()
		if !ok || r.atLineBreak() {
			r.restore(saved)
			return ast.Arg{}, false
		}
		at := r.offset()
		text = append(text, b)
		r.pos++
		if b == closing {
			sp.End = at.Start + 1
			return ast.Arg{Text: string(text), Span: sp}, true
		}
	}
}

// putBackLeftovers returns everything not consumed, line breaks included.
func (r *retokenizer) putBackLeftovers() {
	if r.cur >= len(r.toks) {
		return
	}
	var out []token.Token
	first := r.cur
	cur := r.toks[r.cur]
	switch {
	case r.pos >= len(cur.tok.Text):
		first++
	case r.pos > 0:
		rest := cur.tok.Text[r.pos:]
		partial := cur.tok
		partial.Text = rest
		partial.Span.Start = r.offset().Start
		out = append(out, partial)
		first++
	}
	for _, t := range r.toks[first:] {
		if t.hasNL {
			out = append(out, t.nl)
		}
		out = append(out, t.tok)
	}
	r.cur, r.pos = len(r.toks), 0
	r.p.putBack(out...)
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}
