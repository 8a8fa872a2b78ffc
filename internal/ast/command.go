package ast

import (
	"doccomment/internal/commands"
	"doccomment/internal/source"
	"doccomment/internal/token"
)

// Arg is one word argument of a command.
type Arg struct {
	Text string
	Span source.Span
}

type InlineCommandNode struct {
	Name     source.StringID
	NameSpan source.Span
	Marker   token.Marker
	Args     []Arg
	Render   commands.RenderKind
}

type BlockCommandNode struct {
	Name     source.StringID
	NameSpan source.Span
	Marker   token.Marker
	Args     []Arg
}

// Direction says how a parameter is passed.
type Direction uint8

const (
	DirIn Direction = iota
	DirOut
	DirInOut
)

// String returns the canonical bracketed spelling.
func (d Direction) String() string {
	switch d {
	case DirOut:
		return "[out]"
	case DirInOut:
		return "[in,out]"
	default:
		return "[in]"
	}
}

type ParamCommandNode struct {
	Name     source.StringID
	NameSpan source.Span
	Marker   token.Marker

	Direction           Direction
	IsDirectionExplicit bool
	// DirectionSpan covers the bracketed annotation when one was written.
	DirectionSpan source.Span

	// ParamName is "" when the name is missing.
	ParamName     string
	ParamNameSpan source.Span
}

func (n *Nodes) InlineCommand(id NodeID) (*InlineCommandNode, bool) {
	p, ok := n.payload(id, KindInlineCommand)
	if !ok {
		return nil, false
	}
	return n.InlineCommands.Get(uint32(p)), true
}

func (n *Nodes) BlockCommand(id NodeID) (*BlockCommandNode, bool) {
	p, ok := n.payload(id, KindBlockCommand)
	if !ok {
		return nil, false
	}
	return n.BlockCommands.Get(uint32(p)), true
}

func (n *Nodes) ParamCommand(id NodeID) (*ParamCommandNode, bool) {
	p, ok := n.payload(id, KindParamCommand)
	if !ok {
		return nil, false
	}
	return n.ParamCommands.Get(uint32(p)), true
}

// CommandParagraph returns the single paragraph owned by a block or param command.
func (n *Nodes) CommandParagraph(id NodeID) NodeID {
	switch n.Kind(id) {
	case KindBlockCommand, KindParamCommand:
		return n.Child(id, 0)
	default:
		return NoNodeID
	}
}
