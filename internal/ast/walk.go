package ast

// Visitor is called in pre-order; returning false skips the node's children.
type Visitor func(id NodeID, depth int) bool

// Walk visits root and its descendants in document order.
func (n *Nodes) Walk(root NodeID, visit Visitor) {
	n.walk(root, 0, visit)
}

func (n *Nodes) walk(id NodeID, depth int, visit Visitor) {
	node := n.Get(id)
	if node == nil {
		return
	}
	if !visit(id, depth) {
		return
	}
	for _, child := range node.Children {
		n.walk(child, depth+1, visit)
	}
}

// Count returns the number of nodes reachable from root, root included.
func (n *Nodes) Count(root NodeID) int {
	total := 0
	n.Walk(root, func(NodeID, int) bool {
		total++
		return true
	})
	return total
}
