package driver

import (
	"fmt"

	"doccomment/internal/ast"
	"doccomment/internal/commands"
	"doccomment/internal/diag"
	"doccomment/internal/extract"
	"doccomment/internal/source"
	"doccomment/internal/token"
)

// CachedFile is the msgpack form of a FileResult. Spans are stored as offsets
// into the file and rebound to the FileID of the loading FileSet.
type CachedFile struct {
	Schema   uint16
	Hash     [32]byte
	Comments []CachedComment
	Diags    []CachedDiag
}

type CachedComment struct {
	Start, End uint32
	Block      bool
	Flavor     uint8
	Trailing   bool
	// Nodes in preorder; Parent indexes into Nodes, -1 for the root.
	Nodes []CachedNode
}

type CachedSpan struct{ Start, End uint32 }

type CachedArg struct {
	Text string
	Span CachedSpan
}

type CachedAttr struct {
	Name     string
	NameSpan CachedSpan
	Value    string
	ValSpan  CachedSpan
	HasValue bool
}

// CachedNode is a flattened node with the union of all payload fields.
type CachedNode struct {
	Kind     uint8
	Span     CachedSpan
	Parent   int32
	Flags    uint8
	Name     string
	NameSpan CachedSpan
	Marker   uint8
	Render   uint8
	Args     []CachedArg
	Text     string
	TextSpan CachedSpan

	Direction     uint8
	DirExplicit   bool
	DirSpan       CachedSpan
	ParamName     string
	ParamNameSpan CachedSpan

	Attrs       []CachedAttr
	SelfClosing bool
	Malformed   bool

	EndName    string
	Lines      []CachedArg
	Terminated bool
}

type CachedNote struct {
	Span CachedSpan
	Msg  string
}

type CachedEdit struct {
	Span    CachedSpan
	NewText string
	OldText string
}

type CachedFix struct {
	ID            string
	Title         string
	Applicability uint8
	Preferred     bool
	Edits         []CachedEdit
}

type CachedDiag struct {
	Severity uint8
	Code     uint16
	Message  string
	Primary  CachedSpan
	Notes    []CachedNote
	Fixes    []CachedFix
}

func cspan(sp source.Span) CachedSpan { return CachedSpan{Start: sp.Start, End: sp.End} }

func cargs(args []ast.Arg) []CachedArg {
	if len(args) == 0 {
		return nil
	}
	out := make([]CachedArg, len(args))
	for i, a := range args {
		out[i] = CachedArg{Text: a.Text, Span: cspan(a.Span)}
	}
	return out
}

// snapshot flattens res for the disk cache.
func snapshot(file *source.File, res *FileResult) *CachedFile {
	out := &CachedFile{
		Schema:   diskCacheSchemaVersion,
		Hash:     file.Hash,
		Comments: make([]CachedComment, 0, len(res.Comments)),
	}
	for _, c := range res.Comments {
		cc := CachedComment{
			Start:    c.Group.Span.Start,
			End:      c.Group.Span.End,
			Block:    c.Group.Block,
			Flavor:   uint8(c.Group.Flavor),
			Trailing: c.Group.Trailing,
		}
		index := make(map[ast.NodeID]int32)
		res.Builder.Nodes.Walk(c.Root, func(id ast.NodeID, _ int) bool {
			n := res.Builder.Nodes.Get(id)
			parent := int32(-1)
			if p, ok := index[n.Parent]; ok && id != c.Root {
				parent = p
			}
			index[id] = int32(len(cc.Nodes)) // #nosec G115 -- comment node count fits int32
			cc.Nodes = append(cc.Nodes, flattenNode(res.Builder, id, n, parent))
			return true
		})
		out.Comments = append(out.Comments, cc)
	}
	for _, d := range res.Bag.Items() {
		if d.Code == diag.IOCacheError {
			continue
		}
		out.Diags = append(out.Diags, flattenDiag(d))
	}
	return out
}

func flattenNode(b *ast.Builder, id ast.NodeID, n *ast.Node, parent int32) CachedNode {
	cn := CachedNode{
		Kind:   uint8(n.Kind),
		Span:   cspan(n.Span),
		Parent: parent,
		Flags:  uint8(n.Flags),
	}
	switch n.Kind {
	case ast.KindText:
		t, _ := b.Nodes.Text(id)
		cn.Text = t.Text
	case ast.KindInlineCommand:
		c, _ := b.Nodes.InlineCommand(id)
		cn.Name, cn.NameSpan, cn.Marker = b.Name(c.Name), cspan(c.NameSpan), uint8(c.Marker)
		cn.Render = uint8(c.Render)
		cn.Args = cargs(c.Args)
	case ast.KindBlockCommand:
		c, _ := b.Nodes.BlockCommand(id)
		cn.Name, cn.NameSpan, cn.Marker = b.Name(c.Name), cspan(c.NameSpan), uint8(c.Marker)
		cn.Args = cargs(c.Args)
	case ast.KindParamCommand:
		c, _ := b.Nodes.ParamCommand(id)
		cn.Name, cn.NameSpan, cn.Marker = b.Name(c.Name), cspan(c.NameSpan), uint8(c.Marker)
		cn.Direction = uint8(c.Direction)
		cn.DirExplicit = c.IsDirectionExplicit
		cn.DirSpan = cspan(c.DirectionSpan)
		cn.ParamName, cn.ParamNameSpan = c.ParamName, cspan(c.ParamNameSpan)
	case ast.KindHTMLStartTag:
		c, _ := b.Nodes.HTMLStartTag(id)
		cn.Name = b.Name(c.Name)
		cn.SelfClosing, cn.Malformed = c.IsSelfClosing, c.IsMalformed
		for _, a := range c.Attrs {
			cn.Attrs = append(cn.Attrs, CachedAttr{
				Name:     b.Name(a.Name),
				NameSpan: cspan(a.NameSpan),
				Value:    a.Value,
				ValSpan:  cspan(a.ValueSpan),
				HasValue: a.HasValue,
			})
		}
	case ast.KindHTMLEndTag:
		c, _ := b.Nodes.HTMLEndTag(id)
		cn.Name, cn.Malformed = b.Name(c.Name), c.IsMalformed
	case ast.KindVerbatimBlock:
		c, _ := b.Nodes.VerbatimBlock(id)
		cn.Name, cn.EndName, cn.Marker = b.Name(c.Name), b.Name(c.EndName), uint8(c.Marker)
		cn.Terminated = c.IsTerminated
		for _, l := range c.Lines {
			cn.Lines = append(cn.Lines, CachedArg{Text: l.Text, Span: cspan(l.Span)})
		}
	case ast.KindVerbatimLine:
		c, _ := b.Nodes.VerbatimLine(id)
		cn.Name, cn.Marker = b.Name(c.Name), uint8(c.Marker)
		cn.Text, cn.TextSpan = c.Text, cspan(c.TextSpan)
	}
	return cn
}

func flattenDiag(d diag.Diagnostic) CachedDiag {
	cd := CachedDiag{
		Severity: uint8(d.Severity),
		Code:     uint16(d.Code),
		Message:  d.Message,
		Primary:  cspan(d.Primary),
	}
	for _, n := range d.Notes {
		cd.Notes = append(cd.Notes, CachedNote{Span: cspan(n.Span), Msg: n.Msg})
	}
	for _, f := range d.Fixes {
		cf := CachedFix{
			ID:            f.ID,
			Title:         f.Title,
			Applicability: uint8(f.Applicability),
			Preferred:     f.IsPreferred,
		}
		for _, e := range f.Edits {
			cf.Edits = append(cf.Edits, CachedEdit{Span: cspan(e.Span), NewText: e.NewText, OldText: e.OldText})
		}
		cd.Fixes = append(cd.Fixes, cf)
	}
	return cd
}

// restore rebuilds trees and diagnostics for file. Any span beyond the file
// or any broken parent link rejects the whole snapshot.
func (c *CachedFile) restore(file *source.File) (*ast.Builder, []Comment, []diag.Diagnostic, error) {
	if c.Hash != file.Hash {
		return nil, nil, nil, fmt.Errorf("stale entry for %s", file.Path)
	}
	r := restorer{file: file, b: ast.NewBuilder(ast.Hints{}, nil)}

	comments := make([]Comment, 0, len(c.Comments))
	for i := range c.Comments {
		cc := &c.Comments[i]
		root, err := r.comment(cc)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("comment #%d: %w", i, err)
		}
		comments = append(comments, Comment{
			Group: extract.Group{
				Span:     r.span(CachedSpan{Start: cc.Start, End: cc.End}),
				Block:    cc.Block,
				Flavor:   extract.Flavor(cc.Flavor),
				Trailing: cc.Trailing,
			},
			Root: root,
		})
	}

	diags := make([]diag.Diagnostic, 0, len(c.Diags))
	for _, cd := range c.Diags {
		diags = append(diags, r.diag(cd))
	}
	if r.err != nil {
		return nil, nil, nil, r.err
	}
	return r.b, comments, diags, nil
}

type restorer struct {
	file *source.File
	b    *ast.Builder
	err  error
}

func (r *restorer) span(cs CachedSpan) source.Span {
	if cs.End < cs.Start || cs.End > r.file.Len() {
		if r.err == nil {
			r.err = fmt.Errorf("span %d..%d outside %s", cs.Start, cs.End, r.file.Path)
		}
		return source.Span{File: r.file.ID}
	}
	return source.Span{File: r.file.ID, Start: cs.Start, End: cs.End}
}

func (r *restorer) args(in []CachedArg) []ast.Arg {
	if len(in) == 0 {
		return nil
	}
	out := make([]ast.Arg, len(in))
	for i, a := range in {
		out[i] = ast.Arg{Text: a.Text, Span: r.span(a.Span)}
	}
	return out
}

func (r *restorer) comment(cc *CachedComment) (ast.NodeID, error) {
	if len(cc.Nodes) == 0 || cc.Nodes[0].Parent != -1 || ast.NodeKind(cc.Nodes[0].Kind) != ast.KindFullComment {
		return ast.NoNodeID, fmt.Errorf("missing root")
	}
	ids := make([]ast.NodeID, len(cc.Nodes))
	for i := range cc.Nodes {
		cn := &cc.Nodes[i]
		id, err := r.node(cn)
		if err != nil {
			return ast.NoNodeID, err
		}
		ids[i] = id
		if i == 0 {
			continue
		}
		parent := int(cn.Parent)
		if parent < 0 || parent >= i || !r.b.AppendChild(ids[parent], id) {
			return ast.NoNodeID, fmt.Errorf("node #%d: bad parent %d", i, cn.Parent)
		}
	}
	return ids[0], r.err
}

func (r *restorer) node(cn *CachedNode) (ast.NodeID, error) {
	b := r.b
	sp := r.span(cn.Span)
	marker := token.Marker(cn.Marker)
	var id ast.NodeID
	switch kind := ast.NodeKind(cn.Kind); kind {
	case ast.KindFullComment:
		id = b.NewFullComment(sp)
	case ast.KindParagraph:
		id = b.NewParagraph(sp)
	case ast.KindText:
		id = b.NewText(sp, cn.Text)
	case ast.KindInlineCommand:
		id = b.NewInlineCommand(sp, r.span(cn.NameSpan), cn.Name, marker, commands.RenderKind(cn.Render), r.args(cn.Args))
	case ast.KindBlockCommand:
		id = b.NewBlockCommand(sp, r.span(cn.NameSpan), cn.Name, marker, r.args(cn.Args))
	case ast.KindParamCommand:
		id = b.NewParamCommand(sp, r.span(cn.NameSpan), cn.Name, marker)
		pc, _ := b.Nodes.ParamCommand(id)
		pc.Direction = ast.Direction(cn.Direction)
		pc.IsDirectionExplicit = cn.DirExplicit
		pc.DirectionSpan = r.span(cn.DirSpan)
		pc.ParamName, pc.ParamNameSpan = cn.ParamName, r.span(cn.ParamNameSpan)
	case ast.KindHTMLStartTag:
		attrs := make([]ast.HTMLAttr, 0, len(cn.Attrs))
		for _, a := range cn.Attrs {
			attrs = append(attrs, ast.HTMLAttr{
				Name:      b.Strings.Intern(a.Name),
				NameSpan:  r.span(a.NameSpan),
				Value:     a.Value,
				ValueSpan: r.span(a.ValSpan),
				HasValue:  a.HasValue,
			})
		}
		id = b.NewHTMLStartTag(sp, cn.Name, attrs, cn.SelfClosing)
		tag, _ := b.Nodes.HTMLStartTag(id)
		tag.IsMalformed = cn.Malformed
	case ast.KindHTMLEndTag:
		id = b.NewHTMLEndTag(sp, cn.Name)
		tag, _ := b.Nodes.HTMLEndTag(id)
		tag.IsMalformed = cn.Malformed
	case ast.KindVerbatimBlock:
		lines := make([]ast.VerbatimLine, 0, len(cn.Lines))
		for _, l := range cn.Lines {
			lines = append(lines, ast.VerbatimLine{Text: l.Text, Span: r.span(l.Span)})
		}
		id = b.NewVerbatimBlock(sp, cn.Name, cn.EndName, marker, lines, cn.Terminated)
	case ast.KindVerbatimLine:
		id = b.NewVerbatimLine(sp, cn.Name, marker, cn.Text, r.span(cn.TextSpan))
	default:
		return ast.NoNodeID, fmt.Errorf("unknown node kind %d", cn.Kind)
	}
	if ast.NodeFlags(cn.Flags)&ast.NodeTrailingNewline != 0 {
		b.SetTrailingNewline(id)
	}
	return id, nil
}

func (r *restorer) diag(cd CachedDiag) diag.Diagnostic {
	d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), r.span(cd.Primary), cd.Message)
	for _, n := range cd.Notes {
		d.Notes = append(d.Notes, diag.Note{Span: r.span(n.Span), Msg: n.Msg})
	}
	for _, cf := range cd.Fixes {
		f := diag.Fix{
			ID:            cf.ID,
			Title:         cf.Title,
			Applicability: diag.FixApplicability(cf.Applicability),
			IsPreferred:   cf.Preferred,
		}
		for _, e := range cf.Edits {
			f.Edits = append(f.Edits, diag.TextEdit{Span: r.span(e.Span), NewText: e.NewText, OldText: e.OldText})
		}
		d.Fixes = append(d.Fixes, f)
	}
	return d
}
