package parser

import (
	"strings"

	"doccomment/internal/ast"
	"doccomment/internal/diag"
	"doccomment/internal/fix"
)

func directionFromCanonical(s string) (ast.Direction, bool) {
	switch s {
	case "[in]":
		return ast.DirIn, true
	case "[out]":
		return ast.DirOut, true
	case "[in,out]", "[out,in]":
		return ast.DirInOut, true
	default:
		return ast.DirIn, false
	}
}

// parseDirection accepts any letter case and blanks inside the brackets.
// exact is false when the spelling needed such normalization.
func (p *Parser) parseDirection(raw string) (dir ast.Direction, exact, ok bool) {
	if d, ok := directionFromCanonical(raw); ok {
		return d, true, true
	}
	folded := p.fold.String(raw)
	if d, ok := directionFromCanonical(folded); ok {
		return d, false, true
	}
	stripped := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\f' || r == '\v' {
			return -1
		}
		return r
	}, folded)
	if d, ok := directionFromCanonical(stripped); ok {
		return d, false, true
	}
	return ast.DirIn, false, false
}

// actOnDirection записывает направление параметра. Неверная запись даёт
// неявное [in] и предупреждение; нестандартное написание: предупреждение с исправлением.
func (p *Parser) actOnDirection(pc *ast.ParamCommandNode, arg ast.Arg) {
	dir, exact, ok := p.parseDirection(arg.Text)
	if !ok {
		pc.Direction = ast.DirIn
		pc.IsDirectionExplicit = false
		p.warn(diag.DocMalformedDirection, arg.Span,
			"unrecognized parameter direction '"+arg.Text+"'; expected [in], [out] or [in,out]").Emit()
		return
	}
	pc.Direction = dir
	pc.IsDirectionExplicit = true
	pc.DirectionSpan = arg.Span
	if exact {
		return
	}
	canonical := dir.String()
	p.warn(diag.DocDirectionSpelling, arg.Span,
		"parameter direction '"+arg.Text+"' should be written as '"+canonical+"'").
		WithFixSuggestion(fix.ReplaceSpan("use canonical direction", arg.Span, canonical,
			string(p.lx.File().Slice(arg.Span)), fix.Preferred(), fix.WithID("canonical-direction"))).
		Emit()
}
