package engine

import "math/bits"

// Evaluator scores the live position from one side's fixed point of view.
type Evaluator[M comparable] struct {
	pos  Position[M]
	side Color

	winningThreshold int
}

// NewEvaluator returns an evaluator scoring for side.
func NewEvaluator[M comparable](pos Position[M], side Color, opts Options) *Evaluator[M] {
	return &Evaluator[M]{
		pos:              pos,
		side:             side,
		winningThreshold: opts.WinningThreshold,
	}
}

type terminal struct {
	checkmate bool
	draw      bool
}

// Evaluate scores node, whose move has already been applied to the live
// position, with remaining plies of search budget left. It also reports
// whether the side to move is in check.
func (e *Evaluator[M]) Evaluate(node *SearchNode[M], remaining int) (int, bool) {
	checkmate := e.pos.IsCheckmate()
	return e.evaluate(node, remaining, terminal{
		checkmate: checkmate,
		draw:      !checkmate && e.pos.IsDraw(),
	})
}

func (e *Evaluator[M]) evaluate(node *SearchNode[M], remaining int, t terminal) (int, bool) {
	own := ownsPly(e.side, node.Depth)

	// Quicker mates score higher, slower ones lower.
	if t.checkmate {
		if own {
			return MaxVal - MateOffset + remaining, true
		}
		return MinVal + MateOffset - remaining, true
	}

	total := node.HeuristicVal

	// Reported on both plies so a check given by either side is extended.
	inCheck := e.pos.InCheck()
	if inCheck && own {
		total += CheckBonus
	}

	total += e.material()
	if own {
		total += e.pawnAdvancement()
	}
	total += e.pieceSquares(own)

	if t.draw {
		return e.arbitrateDraw(total, own), inCheck
	}
	return total, inCheck
}

func (e *Evaluator[M]) material() int {
	var score int
	for pt := Pawn; pt <= King; pt++ {
		ours := bits.OnesCount64(e.pos.Pieces(e.side, pt))
		theirs := bits.OnesCount64(e.pos.Pieces(e.side.Other(), pt))
		score += PieceValues[pt] * (ours - theirs)
	}
	return score
}

// pawnAdvancement adds up how far every pawn on the board has come, each
// counted from its own side. Both colours add to the total.
func (e *Evaluator[M]) pawnAdvancement() int {
	var progress int
	for bb := e.pos.Pieces(White, Pawn); bb != 0; bb &= bb - 1 {
		progress += bits.TrailingZeros64(bb) / 8
	}
	for bb := e.pos.Pieces(Black, Pawn); bb != 0; bb &= bb - 1 {
		progress += 8 - bits.TrailingZeros64(bb)/8
	}
	return progress
}

func (e *Evaluator[M]) pieceSquares(own bool) int {
	var score int
	for bb := e.pos.Occupancy(e.side); bb != 0; bb &= bb - 1 {
		score += PiecePositionalVals[bits.TrailingZeros64(bb)]
	}
	if !own {
		return -score
	}
	return score
}

// arbitrateDraw replaces the score of a drawn position. A draw is bad for
// whoever was ahead by more than the winning threshold.
func (e *Evaluator[M]) arbitrateDraw(score int, own bool) int {
	if own {
		if score > e.winningThreshold {
			return -DrawScore
		}
		return DrawScore
	}
	if score < -e.winningThreshold {
		return DrawScore
	}
	return -DrawScore
}
