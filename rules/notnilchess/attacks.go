package notnilchess

import (
	"math/bits"

	"github.com/notnil/chess"
)

func lowestSquare(bb uint64) int { return bits.TrailingZeros64(bb) }

var (
	knightSteps  = [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps    = [][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	straightRays = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalRays = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

func squareAt(file, rank int) (chess.Square, bool) {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return 0, false
	}
	return chess.NewSquare(chess.File(file), chess.Rank(rank)), true
}

func hasPiece(b *chess.Board, sq chess.Square, by chess.Color, types ...chess.PieceType) bool {
	pc := b.Piece(sq)
	if pc == chess.NoPiece || pc.Color() != by {
		return false
	}
	for _, t := range types {
		if pc.Type() == t {
			return true
		}
	}
	return false
}

// attacked reports whether any piece of color by attacks sq.
func attacked(b *chess.Board, sq chess.Square, by chess.Color) bool {
	file, rank := int(sq.File()), int(sq.Rank())

	// Pawns of color by attack from one rank behind, relative to their direction.
	pawnRank := rank - 1
	if by == chess.Black {
		pawnRank = rank + 1
	}
	for _, df := range []int{-1, 1} {
		if s, ok := squareAt(file+df, pawnRank); ok && hasPiece(b, s, by, chess.Pawn) {
			return true
		}
	}
	for _, st := range knightSteps {
		if s, ok := squareAt(file+st[0], rank+st[1]); ok && hasPiece(b, s, by, chess.Knight) {
			return true
		}
	}
	for _, st := range kingSteps {
		if s, ok := squareAt(file+st[0], rank+st[1]); ok && hasPiece(b, s, by, chess.King) {
			return true
		}
	}
	return slides(b, file, rank, straightRays, by, chess.Rook, chess.Queen) ||
		slides(b, file, rank, diagonalRays, by, chess.Bishop, chess.Queen)
}

func slides(b *chess.Board, file, rank int, rays [][2]int, by chess.Color, types ...chess.PieceType) bool {
	for _, r := range rays {
		for f, rk := file+r[0], rank+r[1]; ; f, rk = f+r[0], rk+r[1] {
			s, ok := squareAt(f, rk)
			if !ok {
				break
			}
			if b.Piece(s) == chess.NoPiece {
				continue
			}
			if hasPiece(b, s, by, types...) {
				return true
			}
			break
		}
	}
	return false
}
