package engine

import "golang.org/x/exp/slices"

// plyOwner returns the side that made the move leading to a node at depth,
// when side is to move at the root. Odd plies belong to the root side.
func plyOwner(side Color, depth int) Color {
	if depth%2 == 1 {
		return side
	}
	return side.Other()
}

func ownsPly(side Color, depth int) bool {
	return plyOwner(side, depth) == side
}

// MoveOrderer turns the legal moves of the live position into child nodes,
// captures first.
type MoveOrderer[M comparable] struct {
	pos  Position[M]
	side Color

	inheritFromParent bool
	earlyQueenPlies   int
}

// NewMoveOrderer returns an orderer scoring children for side, the side to
// move at the root of the search.
func NewMoveOrderer[M comparable](pos Position[M], side Color, opts Options) *MoveOrderer[M] {
	return &MoveOrderer[M]{
		pos:               pos,
		side:              side,
		inheritFromParent: opts.InheritFromParent,
		earlyQueenPlies:   opts.EarlyQueenPlies,
	}
}

// Expand populates parent.Children from the live position, which must be the
// position reached by parent's move.
func (o *MoveOrderer[M]) Expand(parent *SearchNode[M]) error {
	captureMoves := o.pos.LegalCaptures()
	legalMoves := o.pos.LegalMoves()

	baseline := o.baseline(parent)
	early := o.pos.PlyCount() < o.earlyQueenPlies

	parent.Children = make([]*SearchNode[M], 0, len(legalMoves))
	for _, m := range captureMoves {
		parent.Children = append(parent.Children, o.child(parent, m, baseline, early))
	}
	for _, m := range legalMoves {
		if slices.Contains(captureMoves, m) {
			continue
		}
		parent.Children = append(parent.Children, o.child(parent, m, baseline, early))
	}

	if len(parent.Children) != len(legalMoves) {
		return invariantf("expanded %d children for %d legal moves at depth %d",
			len(parent.Children), len(legalMoves), parent.Depth)
	}
	return nil
}

// baseline is the value a new child starts from. By default it is carried
// down from the grandparent of the child, not its parent.
func (o *MoveOrderer[M]) baseline(parent *SearchNode[M]) int {
	if o.inheritFromParent || parent.Parent == nil {
		return parent.HeuristicVal
	}
	return parent.Parent.HeuristicVal
}

func (o *MoveOrderer[M]) child(parent *SearchNode[M], m M, baseline int, early bool) *SearchNode[M] {
	c := newChild(parent, m, baseline)
	c.HeuristicVal += o.preHeuristic(c, early)
	return c
}

// preHeuristic nudges a child by its move's flags, from the searching side's
// point of view.
func (o *MoveOrderer[M]) preHeuristic(c *SearchNode[M], early bool) int {
	info := o.pos.Describe(c.Move)

	var delta int
	if info.Promotion {
		delta += PromotionBonus
	}
	if info.Castle {
		delta += CastleBonus
	}
	if early && info.Piece == Queen {
		delta -= EarlyQueenMalus
	}

	if !ownsPly(o.side, c.Depth) {
		return -delta
	}
	return delta
}
