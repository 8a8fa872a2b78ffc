package testkit

import (
	"fmt"

	"doccomment/internal/ast"
	"doccomment/internal/source"
)

// CheckTreeInvariants runs the structural invariants on a parsed comment:
// 1) root is a detached FullComment whose span lies within the file
// 2) every node is linked exactly once and its Parent points back
// 3) FullComment owns only non-empty block nodes, paragraphs own only inline nodes
// 4) block and param commands own exactly one paragraph; leaves own nothing
// 5) every span is well-formed and contained in the comment span
// 6) a non-empty paragraph covers its children
func CheckTreeInvariants(b *ast.Builder, root ast.NodeID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	full := b.Nodes.Get(root)
	if full == nil {
		return fmt.Errorf("root node %d not found", root)
	}
	if full.Kind != ast.KindFullComment {
		return fmt.Errorf("root is %s, want FullComment", full.Kind)
	}
	if full.Parent.IsValid() {
		return fmt.Errorf("root has parent %d", full.Parent)
	}
	if full.Span.File != sf.ID {
		return fmt.Errorf("root span points to different file id: got=%d want=%d", full.Span.File, sf.ID)
	}
	if full.Span.Start > full.Span.End || full.Span.End > sf.Len() {
		return fmt.Errorf("root span %v is outside file content (len %d)", full.Span, sf.Len())
	}

	c := checker{b: b, outer: full.Span, seen: make(map[ast.NodeID]struct{})}
	return c.node(root)
}

type checker struct {
	b     *ast.Builder
	outer source.Span
	seen  map[ast.NodeID]struct{}
}

func (c *checker) node(id ast.NodeID) error {
	if _, dup := c.seen[id]; dup {
		return fmt.Errorf("node %d is reachable twice", id)
	}
	c.seen[id] = struct{}{}

	n := c.b.Nodes.Get(id)
	if n == nil {
		return fmt.Errorf("dangling node id %d", id)
	}
	if n.Span.End < n.Span.Start {
		return fmt.Errorf("%s %d has inverted span %v", n.Kind, id, n.Span)
	}
	if !c.outer.Contains(n.Span) {
		return fmt.Errorf("%s %d span %v is outside comment span %v", n.Kind, id, n.Span, c.outer)
	}
	if n.Flags&ast.NodeTrailingNewline != 0 && !n.Kind.IsInline() {
		return fmt.Errorf("%s %d carries a trailing newline", n.Kind, id)
	}
	if err := c.shape(id, n); err != nil {
		return err
	}

	for _, child := range n.Children {
		cn := c.b.Nodes.Get(child)
		if cn == nil {
			return fmt.Errorf("%s %d has dangling child %d", n.Kind, id, child)
		}
		if cn.Parent != id {
			return fmt.Errorf("%s %d: child %d points to parent %d", n.Kind, id, child, cn.Parent)
		}
		if err := c.node(child); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) shape(id ast.NodeID, n *ast.Node) error {
	switch n.Kind {
	case ast.KindFullComment:
		for _, child := range n.Children {
			k := c.b.Nodes.Kind(child)
			if !k.IsBlock() {
				return fmt.Errorf("FullComment %d owns %s %d", id, k, child)
			}
			if k == ast.KindParagraph && c.b.Nodes.ChildCount(child) == 0 {
				return fmt.Errorf("FullComment %d owns empty paragraph %d", id, child)
			}
		}
	case ast.KindParagraph:
		for i, child := range n.Children {
			cn := c.b.Nodes.Get(child)
			if cn == nil || !cn.Kind.IsInline() {
				return fmt.Errorf("paragraph %d owns non-inline child %d", id, child)
			}
			if !n.Span.Contains(cn.Span) {
				return fmt.Errorf("paragraph %d span %v does not cover child #%d %v", id, n.Span, i, cn.Span)
			}
		}
	case ast.KindBlockCommand, ast.KindParamCommand:
		if len(n.Children) != 1 {
			return fmt.Errorf("%s %d owns %d children, want exactly one paragraph", n.Kind, id, len(n.Children))
		}
		if k := c.b.Nodes.Kind(n.Children[0]); k != ast.KindParagraph {
			return fmt.Errorf("%s %d owns %s, want paragraph", n.Kind, id, k)
		}
	default:
		if len(n.Children) != 0 {
			return fmt.Errorf("leaf %s %d owns %d children", n.Kind, id, len(n.Children))
		}
	}
	return nil
}
