package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"doccomment/internal/ast"
	"doccomment/internal/diag"
	"doccomment/internal/source"
)

// shape: упрощённое представление дерева для сравнения через cmp.Diff
type shape struct {
	Kind        ast.NodeKind
	Name        string
	Text        string
	NL          bool
	Args        []string
	Dir         string
	Explicit    bool
	Param       string
	Attrs       []string
	SelfClosing bool
	Lines       []string
	Children    []shape
}

func txt(s string) shape   { return shape{Kind: ast.KindText, Text: s} }
func txtNL(s string) shape { return shape{Kind: ast.KindText, Text: s, NL: true} }

func para(children ...shape) shape {
	return shape{Kind: ast.KindParagraph, Children: children}
}

func block(name string, p shape, args ...string) shape {
	return shape{Kind: ast.KindBlockCommand, Name: name, Args: args, Children: []shape{p}}
}

func param(dir string, explicit bool, name string, p shape) shape {
	return shape{Kind: ast.KindParamCommand, Name: "param", Dir: dir, Explicit: explicit, Param: name, Children: []shape{p}}
}

func inline(name string, args ...string) shape {
	return shape{Kind: ast.KindInlineCommand, Name: name, Args: args}
}

func startTag(name string, selfClosing bool, attrs ...string) shape {
	return shape{Kind: ast.KindHTMLStartTag, Name: name, SelfClosing: selfClosing, Attrs: attrs}
}

func endTag(name string) shape { return shape{Kind: ast.KindHTMLEndTag, Name: name} }

func verbatim(name string, lines ...string) shape {
	return shape{Kind: ast.KindVerbatimBlock, Name: name, Lines: lines}
}

func verbatimLine(name, text string) shape {
	return shape{Kind: ast.KindVerbatimLine, Name: name, Text: text}
}

func shapeOf(b *ast.Builder, id ast.NodeID) shape {
	n := b.Nodes
	s := shape{Kind: n.Kind(id), NL: n.HasTrailingNewline(id)}
	switch s.Kind {
	case ast.KindText:
		t, _ := n.Text(id)
		s.Text = t.Text
	case ast.KindInlineCommand:
		c, _ := n.InlineCommand(id)
		s.Name = b.Name(c.Name)
		for _, a := range c.Args {
			s.Args = append(s.Args, a.Text)
		}
	case ast.KindBlockCommand:
		c, _ := n.BlockCommand(id)
		s.Name = b.Name(c.Name)
		for _, a := range c.Args {
			s.Args = append(s.Args, a.Text)
		}
	case ast.KindParamCommand:
		c, _ := n.ParamCommand(id)
		s.Name = b.Name(c.Name)
		s.Dir = c.Direction.String()
		s.Explicit = c.IsDirectionExplicit
		s.Param = c.ParamName
	case ast.KindHTMLStartTag:
		c, _ := n.HTMLStartTag(id)
		s.Name = b.Name(c.Name)
		s.SelfClosing = c.IsSelfClosing
		for _, a := range c.Attrs {
			attr := b.Name(a.Name)
			if a.HasValue {
				attr += "=" + a.Value
			}
			s.Attrs = append(s.Attrs, attr)
		}
	case ast.KindHTMLEndTag:
		c, _ := n.HTMLEndTag(id)
		s.Name = b.Name(c.Name)
	case ast.KindVerbatimBlock:
		c, _ := n.VerbatimBlock(id)
		s.Name = b.Name(c.Name)
		for _, l := range c.Lines {
			s.Lines = append(s.Lines, l.Text)
		}
	case ast.KindVerbatimLine:
		c, _ := n.VerbatimLine(id)
		s.Name = b.Name(c.Name)
		s.Text = c.Text
	}
	for _, child := range n.Children(id) {
		s.Children = append(s.Children, shapeOf(b, child))
	}
	return s
}

type parsed struct {
	b    *ast.Builder
	root ast.NodeID
	bag  *diag.Bag
	file *source.File
}

// parseString разбирает строку как содержимое отдельного файла
func parseString(t *testing.T, src string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.h", []byte(src)))
	bag := diag.NewBag(0)
	b := ast.NewBuilder(ast.Hints{}, nil)
	root := Parse(file, file.FullSpan(), b, Options{Reporter: diag.BagReporter{Bag: bag}})
	return parsed{b: b, root: root, bag: bag, file: file}
}

// expectTree сравнивает дети FullComment с ожидаемыми
func expectTree(t *testing.T, src string, want ...shape) parsed {
	t.Helper()
	res := parseString(t, src)
	got := shapeOf(res.b, res.root).Children
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("tree mismatch for %q (-want +got):\n%s", src, diff)
	}
	return res
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func codesOf(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func findDiag(t *testing.T, bag *diag.Bag, code diag.Code) diag.Diagnostic {
	t.Helper()
	for _, d := range bag.Items() {
		if d.Code == code {
			return d
		}
	}
	t.Fatalf("no %s diagnostic; got %s", code.ID(), diagnosticsSummary(bag))
	return diag.Diagnostic{}
}
