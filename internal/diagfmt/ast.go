package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"doccomment/internal/ast"
	"doccomment/internal/commands"
	"doccomment/internal/source"
	"doccomment/internal/token"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatCommentPretty печатает дерево комментария с ветками ├─ / └─.
func FormatCommentPretty(w io.Writer, b *ast.Builder, root ast.NodeID, fs *source.FileSet) error {
	if b.Nodes.Kind(root) != ast.KindFullComment {
		return fmt.Errorf("node %d is not a comment", root)
	}
	return writeTree(w, buildTree(b, root, fs), "", true, true)
}

func writeTree(w io.Writer, n *treeNode, prefix string, last, top bool) error {
	branch, next := "", ""
	if !top {
		branch, next = "├─ ", "│  "
		if last {
			branch, next = "└─ ", "   "
		}
	}
	if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, n.label); err != nil {
		return err
	}
	for i, child := range n.children {
		if err := writeTree(w, child, prefix+next, i == len(n.children)-1, false); err != nil {
			return err
		}
	}
	return nil
}

func buildTree(b *ast.Builder, id ast.NodeID, fs *source.FileSet) *treeNode {
	node := b.Nodes.Get(id)
	if node == nil {
		return &treeNode{label: fmt.Sprintf("<nil %d>", id)}
	}
	t := &treeNode{label: nodeLabel(b, id, node) + " (span: " + formatSpan(node.Span, fs) + ")"}
	if node.Flags&ast.NodeTrailingNewline != 0 {
		t.label += " ⏎"
	}
	if vb, ok := b.Nodes.VerbatimBlock(id); ok {
		for _, l := range vb.Lines {
			t.children = append(t.children, &treeNode{label: "Line " + strconv.Quote(l.Text)})
		}
	}
	for _, child := range node.Children {
		t.children = append(t.children, buildTree(b, child, fs))
	}
	return t
}

func nodeLabel(b *ast.Builder, id ast.NodeID, node *ast.Node) string {
	var sb strings.Builder
	sb.WriteString(node.Kind.String())
	switch node.Kind {
	case ast.KindText:
		txt, _ := b.Nodes.Text(id)
		sb.WriteString(" " + strconv.Quote(txt.Text))
	case ast.KindInlineCommand:
		c, _ := b.Nodes.InlineCommand(id)
		sb.WriteString(" " + spell(c.Marker, b.Name(c.Name)))
		if c.Render != commands.RenderNormal {
			sb.WriteString(" render=" + c.Render.String())
		}
		writeArgs(&sb, c.Args)
	case ast.KindBlockCommand:
		c, _ := b.Nodes.BlockCommand(id)
		sb.WriteString(" " + spell(c.Marker, b.Name(c.Name)))
		writeArgs(&sb, c.Args)
	case ast.KindParamCommand:
		c, _ := b.Nodes.ParamCommand(id)
		sb.WriteString(" " + spell(c.Marker, b.Name(c.Name)) + " " + c.Direction.String())
		if !c.IsDirectionExplicit {
			sb.WriteString(" implicitly")
		}
		if c.ParamName != "" {
			sb.WriteString(" name=" + strconv.Quote(c.ParamName))
		} else {
			sb.WriteString(" name=<missing>")
		}
	case ast.KindHTMLStartTag:
		tag, _ := b.Nodes.HTMLStartTag(id)
		sb.WriteString(" <" + b.Name(tag.Name))
		for _, a := range tag.Attrs {
			sb.WriteString(" " + b.Name(a.Name))
			if a.HasValue {
				sb.WriteString("=" + strconv.Quote(a.Value))
			}
		}
		if tag.IsSelfClosing {
			sb.WriteString("/")
		}
		sb.WriteString(">")
		if tag.IsMalformed {
			sb.WriteString(" malformed")
		}
	case ast.KindHTMLEndTag:
		tag, _ := b.Nodes.HTMLEndTag(id)
		sb.WriteString(" </" + b.Name(tag.Name) + ">")
		if tag.IsMalformed {
			sb.WriteString(" malformed")
		}
	case ast.KindVerbatimBlock:
		vb, _ := b.Nodes.VerbatimBlock(id)
		sb.WriteString(" " + spell(vb.Marker, b.Name(vb.Name)) + " .. " + spell(vb.Marker, b.Name(vb.EndName)))
		if !vb.IsTerminated {
			sb.WriteString(" unterminated")
		}
	case ast.KindVerbatimLine:
		vl, _ := b.Nodes.VerbatimLine(id)
		sb.WriteString(" " + spell(vl.Marker, b.Name(vl.Name)) + " " + strconv.Quote(vl.Text))
	}
	return sb.String()
}

func writeArgs(sb *strings.Builder, args []ast.Arg) {
	for _, a := range args {
		sb.WriteString(" arg=" + strconv.Quote(a.Text))
	}
}

func spell(m token.Marker, name string) string {
	if m == token.MarkerNone {
		return name
	}
	return string(rune(m)) + name
}

func formatSpan(sp source.Span, fs *source.FileSet) string {
	if fs == nil || int(sp.File) >= fs.Len() {
		return fmt.Sprintf("%d-%d", sp.Start, sp.End)
	}
	start, end := fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

// SpanJSON: байтовые смещения узла.
type SpanJSON struct {
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Span     SpanJSON        `json:"span"`
	Text     string          `json:"text,omitempty"`
	Newline  bool            `json:"trailing_newline,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// CommentOutput builds the JSON shape of a comment tree.
func CommentOutput(b *ast.Builder, id ast.NodeID) ASTNodeOutput {
	node := b.Nodes.Get(id)
	if node == nil {
		return ASTNodeOutput{Type: ast.KindInvalid.String()}
	}
	out := ASTNodeOutput{
		Type:    node.Kind.String(),
		Span:    SpanJSON{Start: node.Span.Start, End: node.Span.End},
		Newline: node.Flags&ast.NodeTrailingNewline != 0,
	}
	fields := map[string]any{}
	switch node.Kind {
	case ast.KindText:
		txt, _ := b.Nodes.Text(id)
		out.Text = txt.Text
	case ast.KindInlineCommand:
		c, _ := b.Nodes.InlineCommand(id)
		fields["name"] = b.Name(c.Name)
		fields["render"] = c.Render.String()
		fields["args"] = argTexts(c.Args)
	case ast.KindBlockCommand:
		c, _ := b.Nodes.BlockCommand(id)
		fields["name"] = b.Name(c.Name)
		fields["args"] = argTexts(c.Args)
	case ast.KindParamCommand:
		c, _ := b.Nodes.ParamCommand(id)
		fields["name"] = b.Name(c.Name)
		fields["direction"] = c.Direction.String()
		fields["direction_explicit"] = c.IsDirectionExplicit
		fields["param"] = c.ParamName
	case ast.KindHTMLStartTag:
		tag, _ := b.Nodes.HTMLStartTag(id)
		fields["name"] = b.Name(tag.Name)
		attrs := make([]map[string]string, 0, len(tag.Attrs))
		for _, a := range tag.Attrs {
			attr := map[string]string{"name": b.Name(a.Name)}
			if a.HasValue {
				attr["value"] = a.Value
			}
			attrs = append(attrs, attr)
		}
		fields["attrs"] = attrs
		fields["self_closing"] = tag.IsSelfClosing
		fields["malformed"] = tag.IsMalformed
	case ast.KindHTMLEndTag:
		tag, _ := b.Nodes.HTMLEndTag(id)
		fields["name"] = b.Name(tag.Name)
		fields["malformed"] = tag.IsMalformed
	case ast.KindVerbatimBlock:
		vb, _ := b.Nodes.VerbatimBlock(id)
		lines := make([]string, len(vb.Lines))
		for i, l := range vb.Lines {
			lines[i] = l.Text
		}
		fields["name"] = b.Name(vb.Name)
		fields["end"] = b.Name(vb.EndName)
		fields["lines"] = lines
		fields["terminated"] = vb.IsTerminated
	case ast.KindVerbatimLine:
		vl, _ := b.Nodes.VerbatimLine(id)
		fields["name"] = b.Name(vl.Name)
		out.Text = vl.Text
	}
	if len(fields) > 0 {
		out.Fields = fields
	}
	for _, child := range node.Children {
		out.Children = append(out.Children, CommentOutput(b, child))
	}
	return out
}

func argTexts(args []ast.Arg) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a.Text
	}
	return out
}

// FormatCommentsJSON печатает несколько деревьев одним JSON-массивом.
func FormatCommentsJSON(w io.Writer, b *ast.Builder, roots []ast.NodeID) error {
	out := make([]ASTNodeOutput, len(roots))
	for i, r := range roots {
		out[i] = CommentOutput(b, r)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
