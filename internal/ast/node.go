package ast

import (
	"doccomment/internal/source"
)

// NodeKind is the closed set of comment node variants.
type NodeKind uint8

const (
	KindInvalid NodeKind = iota
	KindFullComment
	KindParagraph
	KindText
	KindInlineCommand
	KindBlockCommand
	KindParamCommand
	KindHTMLStartTag
	KindHTMLEndTag
	KindVerbatimBlock
	KindVerbatimLine
)

var nodeKindNames = [...]string{
	KindInvalid:       "Invalid",
	KindFullComment:   "FullComment",
	KindParagraph:     "Paragraph",
	KindText:          "Text",
	KindInlineCommand: "InlineCommand",
	KindBlockCommand:  "BlockCommand",
	KindParamCommand:  "ParamCommand",
	KindHTMLStartTag:  "HTMLStartTag",
	KindHTMLEndTag:    "HTMLEndTag",
	KindVerbatimBlock: "VerbatimBlock",
	KindVerbatimLine:  "VerbatimLine",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(?)"
}

// IsInline reports whether nodes of this kind live inside a paragraph.
func (k NodeKind) IsInline() bool {
	switch k {
	case KindText, KindInlineCommand, KindHTMLStartTag, KindHTMLEndTag:
		return true
	default:
		return false
	}
}

// IsBlock reports whether nodes of this kind are direct children of a FullComment.
func (k NodeKind) IsBlock() bool {
	switch k {
	case KindParagraph, KindBlockCommand, KindParamCommand, KindVerbatimBlock, KindVerbatimLine:
		return true
	default:
		return false
	}
}

// NodeFlags carry per-node bits that are not worth a payload.
type NodeFlags uint8

const (
	// NodeTrailingNewline marks inline content followed by a line break inside its paragraph.
	NodeTrailingNewline NodeFlags = 1 << iota
)

// Node is the common header of every comment node. Variant data sits in the
// per-kind arena pointed to by Payload.
type Node struct {
	Kind     NodeKind
	Span     source.Span
	Parent   NodeID
	Children []NodeID
	Flags    NodeFlags
	Payload  PayloadID
}

// Nodes owns the header arena plus one arena per payload kind.
type Nodes struct {
	Arena          *Arena[Node]
	Texts          *Arena[TextNode]
	InlineCommands *Arena[InlineCommandNode]
	BlockCommands  *Arena[BlockCommandNode]
	ParamCommands  *Arena[ParamCommandNode]
	StartTags      *Arena[HTMLStartTagNode]
	EndTags        *Arena[HTMLEndTagNode]
	VerbatimBlocks *Arena[VerbatimBlockNode]
	VerbatimLines  *Arena[VerbatimLineNode]
}

// NewNodes creates per-kind arenas; capHint 0 means 1<<6.
func NewNodes(capHint uint) *Nodes {
	if capHint == 0 {
		capHint = 1 << 6
	}
	small := capHint/4 + 1
	return &Nodes{
		Arena:          NewArena[Node](capHint),
		Texts:          NewArena[TextNode](capHint),
		InlineCommands: NewArena[InlineCommandNode](small),
		BlockCommands:  NewArena[BlockCommandNode](small),
		ParamCommands:  NewArena[ParamCommandNode](small),
		StartTags:      NewArena[HTMLStartTagNode](small),
		EndTags:        NewArena[HTMLEndTagNode](small),
		VerbatimBlocks: NewArena[VerbatimBlockNode](small),
		VerbatimLines:  NewArena[VerbatimLineNode](small),
	}
}

func (n *Nodes) New(kind NodeKind, span source.Span, payload PayloadID) NodeID {
	return NodeID(n.Arena.Allocate(Node{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (n *Nodes) Get(id NodeID) *Node {
	return n.Arena.Get(uint32(id))
}

// Kind returns KindInvalid for unknown ids.
func (n *Nodes) Kind(id NodeID) NodeKind {
	if node := n.Get(id); node != nil {
		return node.Kind
	}
	return KindInvalid
}

// Children returns the ordered child list; callers must not modify it.
func (n *Nodes) Children(id NodeID) []NodeID {
	if node := n.Get(id); node != nil {
		return node.Children
	}
	return nil
}

func (n *Nodes) ChildCount(id NodeID) int {
	return len(n.Children(id))
}

// Child returns the i-th child or NoNodeID when out of range.
func (n *Nodes) Child(id NodeID, i int) NodeID {
	children := n.Children(id)
	if i < 0 || i >= len(children) {
		return NoNodeID
	}
	return children[i]
}

// HasTrailingNewline is only ever set on inline nodes.
func (n *Nodes) HasTrailingNewline(id NodeID) bool {
	node := n.Get(id)
	return node != nil && node.Flags&NodeTrailingNewline != 0
}

func (n *Nodes) payload(id NodeID, kind NodeKind) (PayloadID, bool) {
	node := n.Get(id)
	if node == nil || node.Kind != kind || !node.Payload.IsValid() {
		return NoPayloadID, false
	}
	return node.Payload, true
}
