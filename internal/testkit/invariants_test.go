package testkit_test

import (
	"strings"
	"testing"

	"doccomment/internal/ast"
	"doccomment/internal/parser"
	"doccomment/internal/source"
	"doccomment/internal/testkit"
)

func parse(t *testing.T, src string) (*ast.Builder, ast.NodeID, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.c", []byte(src)))
	b := ast.NewBuilder(ast.Hints{}, nil)
	root := parser.Parse(f, f.FullSpan(), b, parser.Options{})
	return b, root, f
}

func TestCheckTreeInvariantsAcceptsParsedComments(t *testing.T) {
	inputs := []string{
		"",
		"// Meow",
		"/** \\brief Aaa\n *  \\param [in] x Bbb\n *  \\returns ccc\n */",
		"// <a href=\"bbb\">x</a> <br/>\n// \\verbatim\n// raw\n// \\endverbatim",
		"// \\fn void f(int)\n// text\n//\n// \\code unterminated",
		"// </b> \\endverbatim <i> \\param\n",
	}
	for _, src := range inputs {
		b, root, f := parse(t, src)
		if err := testkit.CheckTreeInvariants(b, root, f); err != nil {
			t.Fatalf("invariants failed for %q: %v", src, err)
		}
	}
}

func TestCheckTreeInvariantsRejectsBrokenTrees(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.c", []byte("// Aaa")))
	sp := f.FullSpan()

	t.Run("non-root", func(t *testing.T) {
		b := ast.NewBuilder(ast.Hints{}, nil)
		para := b.NewParagraph(sp)
		if err := testkit.CheckTreeInvariants(b, para, f); err == nil {
			t.Fatalf("expected error for paragraph root")
		}
	})

	t.Run("block without paragraph", func(t *testing.T) {
		b := ast.NewBuilder(ast.Hints{}, nil)
		root := b.NewFullComment(sp)
		b.AppendChild(root, b.NewBlockCommand(sp, sp, "brief", 0, nil))
		err := testkit.CheckTreeInvariants(b, root, f)
		if err == nil || !strings.Contains(err.Error(), "exactly one paragraph") {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("inline at top level", func(t *testing.T) {
		b := ast.NewBuilder(ast.Hints{}, nil)
		root := b.NewFullComment(sp)
		b.AppendChild(root, b.NewText(sp, "Aaa"))
		if err := testkit.CheckTreeInvariants(b, root, f); err == nil {
			t.Fatalf("expected error for text under FullComment")
		}
	})

	t.Run("span escapes comment", func(t *testing.T) {
		b := ast.NewBuilder(ast.Hints{}, nil)
		inner := source.Span{File: sp.File, Start: 2, End: 4}
		root := b.NewFullComment(inner)
		para := b.NewParagraph(sp)
		b.AppendChild(para, b.NewText(sp, "Aaa"))
		b.AppendChild(root, para)
		err := testkit.CheckTreeInvariants(b, root, f)
		if err == nil || !strings.Contains(err.Error(), "outside comment span") {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("empty top-level paragraph", func(t *testing.T) {
		b := ast.NewBuilder(ast.Hints{}, nil)
		root := b.NewFullComment(sp)
		b.AppendChild(root, b.NewParagraph(sp))
		if err := testkit.CheckTreeInvariants(b, root, f); err == nil {
			t.Fatalf("expected error for empty paragraph")
		}
	})
}
