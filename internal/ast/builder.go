package ast

import (
	"doccomment/internal/commands"
	"doccomment/internal/source"
	"doccomment/internal/token"
)

type Hints struct{ Nodes uint }

// Builder owns every node of the comments parsed through it. One builder may
// hold many comments but must not be shared between goroutines.
type Builder struct {
	Nodes   *Nodes
	Strings *source.Interner
}

func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Nodes:   NewNodes(hints.Nodes),
		Strings: strings,
	}
}

// Name resolves an interned name; unknown ids give "".
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.Strings.Lookup(id)
	return s
}

// CommandName returns the name of any command-like node or tag, "" otherwise.
func (b *Builder) CommandName(id NodeID) string {
	switch b.Nodes.Kind(id) {
	case KindInlineCommand:
		c, _ := b.Nodes.InlineCommand(id)
		return b.Name(c.Name)
	case KindBlockCommand:
		c, _ := b.Nodes.BlockCommand(id)
		return b.Name(c.Name)
	case KindParamCommand:
		c, _ := b.Nodes.ParamCommand(id)
		return b.Name(c.Name)
	case KindHTMLStartTag:
		c, _ := b.Nodes.HTMLStartTag(id)
		return b.Name(c.Name)
	case KindHTMLEndTag:
		c, _ := b.Nodes.HTMLEndTag(id)
		return b.Name(c.Name)
	case KindVerbatimBlock:
		c, _ := b.Nodes.VerbatimBlock(id)
		return b.Name(c.Name)
	case KindVerbatimLine:
		c, _ := b.Nodes.VerbatimLine(id)
		return b.Name(c.Name)
	default:
		return ""
	}
}

func (b *Builder) NewFullComment(sp source.Span) NodeID {
	return b.Nodes.New(KindFullComment, sp, NoPayloadID)
}

func (b *Builder) NewParagraph(sp source.Span) NodeID {
	return b.Nodes.New(KindParagraph, sp, NoPayloadID)
}

func (b *Builder) NewText(sp source.Span, text string) NodeID {
	p := b.Nodes.Texts.Allocate(TextNode{Text: text})
	return b.Nodes.New(KindText, sp, PayloadID(p))
}

func (b *Builder) NewInlineCommand(sp, nameSpan source.Span, name string, marker token.Marker, render commands.RenderKind, args []Arg) NodeID {
	p := b.Nodes.InlineCommands.Allocate(InlineCommandNode{
		Name:     b.Strings.Intern(name),
		NameSpan: nameSpan,
		Marker:   marker,
		Args:     append([]Arg(nil), args...),
		Render:   render,
	})
	return b.Nodes.New(KindInlineCommand, sp, PayloadID(p))
}

func (b *Builder) NewBlockCommand(sp, nameSpan source.Span, name string, marker token.Marker, args []Arg) NodeID {
	p := b.Nodes.BlockCommands.Allocate(BlockCommandNode{
		Name:     b.Strings.Intern(name),
		NameSpan: nameSpan,
		Marker:   marker,
		Args:     append([]Arg(nil), args...),
	})
	return b.Nodes.New(KindBlockCommand, sp, PayloadID(p))
}

// NewParamCommand starts with the implicit [in] direction and no name.
func (b *Builder) NewParamCommand(sp, nameSpan source.Span, name string, marker token.Marker) NodeID {
	p := b.Nodes.ParamCommands.Allocate(ParamCommandNode{
		Name:      b.Strings.Intern(name),
		NameSpan:  nameSpan,
		Marker:    marker,
		Direction: DirIn,
	})
	return b.Nodes.New(KindParamCommand, sp, PayloadID(p))
}

func (b *Builder) NewHTMLStartTag(sp source.Span, name string, attrs []HTMLAttr, selfClosing bool) NodeID {
	p := b.Nodes.StartTags.Allocate(HTMLStartTagNode{
		Name:          b.Strings.Intern(name),
		Attrs:         append([]HTMLAttr(nil), attrs...),
		IsSelfClosing: selfClosing,
	})
	return b.Nodes.New(KindHTMLStartTag, sp, PayloadID(p))
}

func (b *Builder) NewHTMLEndTag(sp source.Span, name string) NodeID {
	p := b.Nodes.EndTags.Allocate(HTMLEndTagNode{Name: b.Strings.Intern(name)})
	return b.Nodes.New(KindHTMLEndTag, sp, PayloadID(p))
}

func (b *Builder) NewVerbatimBlock(sp source.Span, name, endName string, marker token.Marker, lines []VerbatimLine, terminated bool) NodeID {
	p := b.Nodes.VerbatimBlocks.Allocate(VerbatimBlockNode{
		Name:         b.Strings.Intern(name),
		EndName:      b.Strings.Intern(endName),
		Marker:       marker,
		Lines:        append([]VerbatimLine(nil), lines...),
		IsTerminated: terminated,
	})
	return b.Nodes.New(KindVerbatimBlock, sp, PayloadID(p))
}

func (b *Builder) NewVerbatimLine(sp source.Span, name string, marker token.Marker, text string, textSpan source.Span) NodeID {
	p := b.Nodes.VerbatimLines.Allocate(VerbatimLineNode{
		Name:     b.Strings.Intern(name),
		Marker:   marker,
		Text:     text,
		TextSpan: textSpan,
	})
	return b.Nodes.New(KindVerbatimLine, sp, PayloadID(p))
}

// AppendChild links child under parent. A node can be linked only once;
// a second call for the same child is ignored and reports false.
func (b *Builder) AppendChild(parent, child NodeID) bool {
	p, c := b.Nodes.Get(parent), b.Nodes.Get(child)
	if p == nil || c == nil || c.Parent.IsValid() || parent == child || c.Kind == KindFullComment {
		return false
	}
	c.Parent = parent
	p.Children = append(p.Children, child)
	return true
}

// SetTrailingNewline marks inline content as followed by a line break.
func (b *Builder) SetTrailingNewline(id NodeID) {
	node := b.Nodes.Get(id)
	if node != nil && node.Kind.IsInline() {
		node.Flags |= NodeTrailingNewline
	}
}

// SetSpan is used by the parser to grow container spans once children are known.
func (b *Builder) SetSpan(id NodeID, sp source.Span) {
	if node := b.Nodes.Get(id); node != nil {
		node.Span = sp
	}
}
