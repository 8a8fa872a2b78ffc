package ast

type TextNode struct {
	Text string
}

func (n *Nodes) Text(id NodeID) (*TextNode, bool) {
	p, ok := n.payload(id, KindText)
	if !ok {
		return nil, false
	}
	return n.Texts.Get(uint32(p)), true
}

// IsWhitespaceParagraph reports whether a paragraph holds only blank text.
// Commands, tags and non-blank text make it non-whitespace.
func (n *Nodes) IsWhitespaceParagraph(id NodeID) bool {
	if n.Kind(id) != KindParagraph {
		return false
	}
	for _, child := range n.Children(id) {
		text, ok := n.Text(child)
		if !ok {
			return false
		}
		for i := 0; i < len(text.Text); i++ {
			switch text.Text[i] {
			case ' ', '\t', '\n', '\r', '\f', '\v':
			default:
				return false
			}
		}
	}
	return true
}
