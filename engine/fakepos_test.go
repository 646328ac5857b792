package engine

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/cespare/xxhash"
	"golang.org/x/exp/slices"
)

// treePos is a Position over an explicit game tree. Moves are ints and a
// node is named by the moves leading to it, e.g. "1/12".
type treePos struct {
	moves  map[string][]int
	info   map[int]MoveInfo
	mates  map[string]bool
	draws  map[string]bool
	checks map[string]bool
	pawns  map[string]uint64 // white pawns, so leaves score differently

	path []int

	applied, undone int
	skipUndoAt      string // Undo is silently dropped when leaving this node
}

func newTreePos() *treePos {
	return &treePos{
		moves:  map[string][]int{},
		info:   map[int]MoveInfo{},
		mates:  map[string]bool{},
		draws:  map[string]bool{},
		checks: map[string]bool{},
		pawns:  map[string]uint64{},
	}
}

func pathKey(path []int) string {
	parts := make([]string, len(path))
	for i, m := range path {
		parts[i] = fmt.Sprint(m)
	}
	return strings.Join(parts, "/")
}

func (p *treePos) key() string { return pathKey(p.path) }

func (p *treePos) LegalMoves() []int {
	return slices.Clone(p.moves[p.key()])
}

func (p *treePos) LegalCaptures() []int {
	var captures []int
	for _, m := range p.moves[p.key()] {
		if p.info[m].Capture {
			captures = append(captures, m)
		}
	}
	return captures
}

func (p *treePos) Apply(m int) error {
	if !slices.Contains(p.moves[p.key()], m) {
		return fmt.Errorf("move %d not legal at %q", m, p.key())
	}
	p.path = append(p.path, m)
	p.applied++
	return nil
}

func (p *treePos) Undo(m int) {
	if p.skipUndoAt != "" && p.key() == p.skipUndoAt {
		return
	}
	p.path = p.path[:len(p.path)-1]
	p.undone++
}

func (p *treePos) InCheck() bool { return p.checks[p.key()] || p.mates[p.key()] }
func (p *treePos) IsCheckmate() bool { return p.mates[p.key()] }
func (p *treePos) IsDraw() bool { return p.draws[p.key()] }

func (p *treePos) SideToMove() Color {
	if len(p.path)%2 == 0 {
		return White
	}
	return Black
}

func (p *treePos) PlyCount() int { return 20 + len(p.path) }
func (p *treePos) Occupancy(Color) uint64 { return 0 }
func (p *treePos) Pieces(c Color, t PieceType) uint64 {
	if c == White && t == Pawn {
		return p.pawns[p.key()]
	}
	return 0
}
func (p *treePos) PieceAt(int) (Piece, bool) { return Piece{}, false }
func (p *treePos) Describe(m int) MoveInfo { return p.info[m] }
func (p *treePos) Hash() uint64 { return xxhash.Sum64([]byte(p.key())) }

// add declares the moves available after path.
func (p *treePos) add(path string, moves ...int) {
	p.moves[path] = moves
}

// randomTree fills p with a tree of the given depth and branching where every
// move carries random pre-heuristic flags and every node a random set of
// white pawns.
func randomTree(r *rand.Rand, depth, branching int) *treePos {
	p := newTreePos()
	next := 1
	var grow func(path []int, d int)
	grow = func(path []int, d int) {
		if d == 0 {
			return
		}
		key := pathKey(path)
		n := 1 + r.Intn(branching)
		for i := 0; i < n; i++ {
			m := next
			next++
			p.moves[key] = append(p.moves[key], m)
			p.info[m] = MoveInfo{
				Capture:   r.Intn(4) == 0,
				Promotion: r.Intn(5) == 0,
				Castle:    r.Intn(5) == 0,
			}
			child := append(slices.Clone(path), m)
			p.pawns[pathKey(child)] = r.Uint64()
			if r.Intn(12) == 0 {
				p.mates[pathKey(child)] = true
				continue
			}
			grow(child, d-1)
		}
	}
	grow(nil, depth)
	return p
}
