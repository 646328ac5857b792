package engine

import "fmt"

// SearchNode is one explored move in the search tree. Nodes are never shared
// between parents, even when two lines reach the same position.
type SearchNode[M comparable] struct {
	Move     M
	Parent   *SearchNode[M] // back reference for path reconstruction only
	Children []*SearchNode[M]

	HeuristicVal int
	Depth        int // plies from the root
}

// newRoot builds the root for one search. The root hangs off a sentinel so
// that grandparent lookups from the first two plies always succeed.
func newRoot[M comparable]() *SearchNode[M] {
	sentinel := &SearchNode[M]{Depth: -1}
	return &SearchNode[M]{Parent: sentinel}
}

func newChild[M comparable](parent *SearchNode[M], m M, baseline int) *SearchNode[M] {
	return &SearchNode[M]{
		Move:         m,
		Parent:       parent,
		HeuristicVal: baseline,
		Depth:        parent.Depth + 1,
	}
}

func (n *SearchNode[M]) String() string {
	return fmt.Sprintf("<searchnode move %v, depth %d, heuristicVal %d>", n.Move, n.Depth, n.HeuristicVal)
}
