package ast

import (
	"testing"

	"doccomment/internal/commands"
	"doccomment/internal/source"
	"doccomment/internal/token"
)

func sp(start, end uint32) source.Span { return source.Span{Start: start, End: end} }

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatalf("index 0 must be reserved")
	}
	id := a.Allocate(42)
	if id != 1 || *a.Get(id) != 42 {
		t.Fatalf("unexpected first allocation %d", id)
	}
	if a.Get(7) != nil {
		t.Fatalf("out of range Get must return nil")
	}
	if a.Len() != 1 {
		t.Fatalf("Len = %d", a.Len())
	}
}

func TestBuilderTree(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	full := b.NewFullComment(sp(0, 20))
	para := b.NewParagraph(sp(0, 10))
	text := b.NewText(sp(0, 4), " Aaa")
	cmd := b.NewInlineCommand(sp(4, 10), sp(4, 6), "b", token.MarkerBackslash, commands.RenderBold,
		[]Arg{{Text: "x", Span: sp(7, 8)}})

	if !b.AppendChild(full, para) || !b.AppendChild(para, text) || !b.AppendChild(para, cmd) {
		t.Fatalf("AppendChild failed")
	}
	if b.AppendChild(full, text) {
		t.Fatalf("a node must have a single parent")
	}
	if b.AppendChild(para, full) {
		t.Fatalf("FullComment cannot be a child")
	}

	if got := b.Nodes.Children(para); len(got) != 2 || got[0] != text || got[1] != cmd {
		t.Fatalf("children = %v", got)
	}
	if b.Nodes.Get(text).Parent != para {
		t.Fatalf("parent link missing")
	}
	if b.Nodes.Child(para, 5) != NoNodeID {
		t.Fatalf("Child out of range must be NoNodeID")
	}
	if b.Nodes.Count(full) != 4 {
		t.Fatalf("Count = %d", b.Nodes.Count(full))
	}
	if b.CommandName(cmd) != "b" || b.CommandName(text) != "" {
		t.Fatalf("CommandName mismatch")
	}

	ic, ok := b.Nodes.InlineCommand(cmd)
	if !ok || ic.Render != commands.RenderBold || len(ic.Args) != 1 || ic.Args[0].Text != "x" {
		t.Fatalf("inline payload = %+v", ic)
	}
	if _, ok := b.Nodes.BlockCommand(cmd); ok {
		t.Fatalf("payload accessor must check the kind")
	}
}

func TestTrailingNewlineOnlyOnInline(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	para := b.NewParagraph(sp(0, 1))
	text := b.NewText(sp(0, 1), "a")
	b.SetTrailingNewline(para)
	b.SetTrailingNewline(text)
	if b.Nodes.HasTrailingNewline(para) {
		t.Fatalf("paragraph cannot carry a trailing newline")
	}
	if !b.Nodes.HasTrailingNewline(text) {
		t.Fatalf("text should carry the flag")
	}
}

func TestWhitespaceParagraph(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	empty := b.NewParagraph(sp(0, 0))
	blank := b.NewParagraph(sp(0, 3))
	b.AppendChild(blank, b.NewText(sp(0, 3), " \t "))
	word := b.NewParagraph(sp(0, 3))
	b.AppendChild(word, b.NewText(sp(0, 3), " a "))
	withTag := b.NewParagraph(sp(0, 3))
	b.AppendChild(withTag, b.NewHTMLEndTag(sp(0, 3), "b"))

	if !b.Nodes.IsWhitespaceParagraph(empty) || !b.Nodes.IsWhitespaceParagraph(blank) {
		t.Fatalf("empty and blank paragraphs are whitespace")
	}
	if b.Nodes.IsWhitespaceParagraph(word) || b.Nodes.IsWhitespaceParagraph(withTag) {
		t.Fatalf("text or tags make a paragraph non-whitespace")
	}
}

func TestCommandPayloads(t *testing.T) {
	b := NewBuilder(Hints{Nodes: 8}, nil)
	param := b.NewParamCommand(sp(0, 6), sp(0, 6), "param", token.MarkerAt)
	pc, ok := b.Nodes.ParamCommand(param)
	if !ok || pc.Direction != DirIn || pc.IsDirectionExplicit || pc.ParamName != "" {
		t.Fatalf("param defaults = %+v", pc)
	}
	para := b.NewParagraph(sp(6, 6))
	b.AppendChild(param, para)
	if b.Nodes.CommandParagraph(param) != para {
		t.Fatalf("CommandParagraph mismatch")
	}

	vb := b.NewVerbatimBlock(sp(0, 20), "code", "endcode", token.MarkerBackslash,
		[]VerbatimLine{{Text: " x"}}, false)
	v, ok := b.Nodes.VerbatimBlock(vb)
	if !ok || v.IsTerminated || b.Name(v.EndName) != "endcode" || len(v.Lines) != 1 {
		t.Fatalf("verbatim payload = %+v", v)
	}

	start := b.NewHTMLStartTag(sp(0, 5), "br", []HTMLAttr{{Name: b.Strings.Intern("class"), Value: "x", HasValue: true}}, true)
	st, ok := b.Nodes.HTMLStartTag(start)
	if !ok || !st.IsSelfClosing || b.Name(st.Name) != "br" || st.Attrs[0].Value != "x" {
		t.Fatalf("start tag payload = %+v", st)
	}
}

func TestDirectionString(t *testing.T) {
	for d, want := range map[Direction]string{DirIn: "[in]", DirOut: "[out]", DirInOut: "[in,out]"} {
		if d.String() != want {
			t.Errorf("%d: got %q, want %q", d, d.String(), want)
		}
	}
}

func TestKindClassification(t *testing.T) {
	if !KindText.IsInline() || KindText.IsBlock() {
		t.Fatalf("text is inline")
	}
	if !KindVerbatimLine.IsBlock() || KindVerbatimLine.IsInline() {
		t.Fatalf("verbatim line is block")
	}
	if KindFullComment.IsBlock() || KindFullComment.IsInline() {
		t.Fatalf("full comment is neither")
	}
	if NodeKind(200).String() != "NodeKind(?)" {
		t.Fatalf("unexpected name for out of range kind")
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	full := b.NewFullComment(sp(0, 1))
	para := b.NewParagraph(sp(0, 1))
	b.AppendChild(full, para)
	b.AppendChild(para, b.NewText(sp(0, 1), "a"))

	var seen []NodeKind
	b.Nodes.Walk(full, func(id NodeID, depth int) bool {
		seen = append(seen, b.Nodes.Kind(id))
		return b.Nodes.Kind(id) != KindParagraph
	})
	if len(seen) != 2 || seen[1] != KindParagraph {
		t.Fatalf("seen = %v", seen)
	}
}
