package ast

import (
	"doccomment/internal/source"
	"doccomment/internal/token"
)

// VerbatimLine is one raw line of a verbatim block.
type VerbatimLine struct {
	Text string
	Span source.Span
}

type VerbatimBlockNode struct {
	Name    source.StringID
	EndName source.StringID
	Marker  token.Marker
	Lines   []VerbatimLine
	// IsTerminated is false when the comment ended before the end command.
	IsTerminated bool
}

type VerbatimLineNode struct {
	Name     source.StringID
	Marker   token.Marker
	Text     string
	TextSpan source.Span
}

func (n *Nodes) VerbatimBlock(id NodeID) (*VerbatimBlockNode, bool) {
	p, ok := n.payload(id, KindVerbatimBlock)
	if !ok {
		return nil, false
	}
	return n.VerbatimBlocks.Get(uint32(p)), true
}

func (n *Nodes) VerbatimLine(id NodeID) (*VerbatimLineNode, bool) {
	p, ok := n.payload(id, KindVerbatimLine)
	if !ok {
		return nil, false
	}
	return n.VerbatimLines.Get(uint32(p)), true
}
