package ast

import (
	"doccomment/internal/source"
)

type HTMLAttr struct {
	Name     source.StringID
	NameSpan source.Span
	// Value is "" when written without "=value".
	Value     string
	ValueSpan source.Span
	HasValue  bool
}

type HTMLStartTagNode struct {
	Name          source.StringID
	Attrs         []HTMLAttr
	IsSelfClosing bool
	// IsMalformed is set when the tag was implicitly closed or left unmatched.
	IsMalformed bool
}

type HTMLEndTagNode struct {
	Name        source.StringID
	IsMalformed bool
}

func (n *Nodes) HTMLStartTag(id NodeID) (*HTMLStartTagNode, bool) {
	p, ok := n.payload(id, KindHTMLStartTag)
	if !ok {
		return nil, false
	}
	return n.StartTags.Get(uint32(p)), true
}

func (n *Nodes) HTMLEndTag(id NodeID) (*HTMLEndTagNode, bool) {
	p, ok := n.payload(id, KindHTMLEndTag)
	if !ok {
		return nil, false
	}
	return n.EndTags.Get(uint32(p)), true
}
