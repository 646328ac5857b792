package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options tunes an Engine. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	Logger zerolog.Logger

	// InheritFromParent makes new children start from their parent's value
	// instead of their grandparent's.
	InheritFromParent bool
	// DisablePruning turns the search into plain minimax over the same tree.
	DisablePruning bool

	WinningThreshold int
	EarlyQueenPlies  int
}

func DefaultOptions() Options {
	return Options{
		Logger:           log.Logger,
		WinningThreshold: DefaultWinningThreshold,
		EarlyQueenPlies:  DefaultEarlyQueenPlies,
	}
}

// Engine chooses moves with a fixed-depth alpha-beta search. An Engine is not
// safe for concurrent use.
type Engine[M comparable] struct {
	opts  Options
	stats CutStatistics
}

func New[M comparable](opts Options) *Engine[M] {
	return &Engine[M]{opts: opts}
}

// ChooseMove searches pos depth plies deep and returns the first move of the
// best line found. timeBudget is accepted for the host's benefit but does not
// limit the search. pos is left exactly as it was found.
func ChooseMove[M comparable](pos Position[M], depth int, timeBudget time.Duration) (M, error) {
	return New[M](DefaultOptions()).ChooseMove(pos, depth, timeBudget)
}

func (e *Engine[M]) ChooseMove(pos Position[M], depth int, timeBudget time.Duration) (M, error) {
	result, err := e.Think(pos, depth, timeBudget)
	if err != nil {
		var zero M
		return zero, err
	}
	return SelectMove(result)
}

// Think validates the request like ChooseMove and returns the search result
// node, from which the host can read the score and the principal line.
func (e *Engine[M]) Think(pos Position[M], depth int, timeBudget time.Duration) (*SearchNode[M], error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}
	if len(pos.LegalMoves()) == 0 || pos.IsDraw() {
		return nil, ErrNoLegalMoves
	}

	e.opts.Logger.Debug().
		Int("depth", depth).
		Dur("time-budget", timeBudget).
		Str("side", pos.SideToMove().String()).
		Msg("choose-move")

	return e.Search(pos, depth)
}

// Search runs the alpha-beta driver from pos and returns the node whose
// value the root settled on. A depth of zero evaluates the root only, unless
// the root is in check.
func (e *Engine[M]) Search(pos Position[M], depth int) (*SearchNode[M], error) {
	if depth < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}
	e.stats.reset()
	tstart := time.Now()

	side := pos.SideToMove()
	s := &searcher[M]{
		pos:     pos,
		opts:    &e.opts,
		stats:   &e.stats,
		orderer: NewMoveOrderer(pos, side, e.opts),
		eval:    NewEvaluator(pos, side, e.opts),
	}
	startHash := pos.Hash()

	result, err := s.alphaBeta(newRoot[M](), depth, MinVal, MaxVal, true)
	e.stats.Elapsed = time.Since(tstart)
	if err != nil {
		e.opts.Logger.Err(err).Msg("alphabeta-error")
		return nil, err
	}
	if len(s.states) != 0 || pos.Hash() != startHash {
		return nil, invariantf("position not restored after search (%d moves still applied)", len(s.states))
	}

	e.stats.logTo(e.opts.Logger.Debug()).
		Int("depth", depth).
		Int("score", result.HeuristicVal).
		Int("result-depth", result.Depth).
		Msg("search-returning")
	return result, nil
}

// StaticEval scores pos where it stands for the side to move, the way a
// leaf at the root would be scored. The root ply belongs to the opponent,
// so the piece-square term is counted against the side to move.
func (e *Engine[M]) StaticEval(pos Position[M]) int {
	score, _ := NewEvaluator(pos, pos.SideToMove(), e.opts).Evaluate(newRoot[M](), 0)
	return score
}

// RootOrder returns the root's children in the order the search visits them,
// each carrying its pre-heuristic value.
func (e *Engine[M]) RootOrder(pos Position[M]) ([]*SearchNode[M], error) {
	root := newRoot[M]()
	if err := NewMoveOrderer(pos, pos.SideToMove(), e.opts).Expand(root); err != nil {
		return nil, err
	}
	return root.Children, nil
}

// Stats returns the counters of the most recent search.
func (e *Engine[M]) Stats() CutStatistics {
	return e.stats
}

type searcher[M comparable] struct {
	pos     Position[M]
	opts    *Options
	stats   *CutStatistics
	orderer *MoveOrderer[M]
	eval    *Evaluator[M]
	states  stateStack
}

func (s *searcher[M]) alphaBeta(node *SearchNode[M], depth int, alpha int, beta int, maximizing bool) (*SearchNode[M], error) {
	s.stats.Nodes++

	checkmate := s.pos.IsCheckmate()
	draw := !checkmate && s.pos.IsDraw()

	if depth == 0 || checkmate || draw {
		var inCheck bool
		node.HeuristicVal, inCheck = s.eval.evaluate(node, depth, terminal{checkmate: checkmate, draw: draw})
		if checkmate || draw || !inCheck {
			s.stats.Leaves++
			return node, nil
		}
		// Never stop in the middle of a check; look one ply further.
		s.stats.CheckExtensions++
		depth = 1
	}

	if err := s.orderer.Expand(node); err != nil {
		return nil, err
	}
	if len(node.Children) == 0 {
		return nil, invariantf("no legal moves at depth %d, but neither checkmate nor draw", node.Depth)
	}

	var best *SearchNode[M]
	if maximizing {
		for _, child := range node.Children {
			res, err := s.visit(child, depth-1, alpha, beta, false)
			if err != nil {
				return nil, err
			}
			if best == nil || res.HeuristicVal > best.HeuristicVal {
				best = res
			}
			alpha = Max(alpha, best.HeuristicVal)
			if best.HeuristicVal >= beta && !s.opts.DisablePruning {
				s.stats.BetaCutoffs++
				break
			}
		}
	} else {
		for _, child := range node.Children {
			res, err := s.visit(child, depth-1, alpha, beta, true)
			if err != nil {
				return nil, err
			}
			if best == nil || res.HeuristicVal < best.HeuristicVal {
				best = res
			}
			beta = Min(beta, best.HeuristicVal)
			if best.HeuristicVal <= alpha && !s.opts.DisablePruning {
				s.stats.AlphaCutoffs++
				break
			}
		}
	}

	node.HeuristicVal = best.HeuristicVal
	return best, nil
}

// visit plays child's move, searches below it and takes the move back on
// every path out, checking that the position hash came back unchanged.
func (s *searcher[M]) visit(child *SearchNode[M], depth int, alpha int, beta int, maximizing bool) (res *SearchNode[M], err error) {
	if child.Parent == nil || child.Depth != child.Parent.Depth+1 {
		return nil, invariantf("child at depth %d does not sit one ply below its parent", child.Depth)
	}

	s.states.push(s.pos.Hash())
	if err := s.pos.Apply(child.Move); err != nil {
		s.states.pop()
		return nil, invariantf("apply %v at depth %d: %v", child.Move, child.Depth, err)
	}
	defer func() {
		s.pos.Undo(child.Move)
		want, ok := s.states.pop()
		if (!ok || want != s.pos.Hash()) && err == nil {
			res, err = nil, invariantf("undo of %v at depth %d did not restore the position", child.Move, child.Depth)
		}
	}()

	return s.alphaBeta(child, depth, alpha, beta, maximizing)
}

// SelectMove walks from the search result back to the root and returns the
// move played at ply one.
func SelectMove[M comparable](result *SearchNode[M]) (M, error) {
	for n := result; n != nil; n = n.Parent {
		if n.Depth == 1 {
			return n.Move, nil
		}
	}
	var zero M
	return zero, invariantf("result node at depth %d has no ply-one ancestor", result.Depth)
}
