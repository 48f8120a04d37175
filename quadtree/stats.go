package quadtree

// Stats summarizes the shape of a tree.
type Stats struct {
	Nodes    int
	Leaves   int
	MaxDepth int
	// LeavesPerDepth[d] is the number of leaves at depth d.
	LeavesPerDepth []int
}

func (t *Tree) Stats() Stats {
	s := Stats{
		MaxDepth:       t.maxDepth,
		LeavesPerDepth: make([]int, t.maxDepth+1),
	}
	Walk(t.root, func(n *Node) bool {
		s.Nodes++
		if n.Leaf() {
			s.Leaves++
			s.LeavesPerDepth[n.depth]++
		}
		return true
	})
	return s
}
