package engine

// Color identifies a side.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType is a colorless piece kind. The order matches PieceValues.
type PieceType uint8

const (
	None PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Piece is a piece type owned by a side.
type Piece struct {
	Type  PieceType
	Color Color
}

// MoveInfo describes the parts of a move the search cares about.
type MoveInfo struct {
	From      int
	To        int
	Piece     PieceType
	Capture   bool
	Promotion bool
	Castle    bool
}

// Position is the live game state the search drives. Implementations own
// move generation and legality; the search only ever mutates a Position
// through Apply and Undo, which must be called in strict LIFO order.
//
// Squares are indexed 0..63 with a1 = 0, h1 = 7 and h8 = 63.
type Position[M comparable] interface {
	// LegalMoves enumerates every legal move for the side to move.
	LegalMoves() []M
	// LegalCaptures returns the capturing subset of LegalMoves.
	LegalCaptures() []M

	// Apply plays m on the position. An error means m was not legal here.
	Apply(m M) error
	// Undo takes back m, which must be the most recently applied move.
	Undo(m M)

	InCheck() bool
	IsCheckmate() bool
	IsDraw() bool

	SideToMove() Color
	// PlyCount reports the number of half-moves played since the start of the game.
	PlyCount() int

	// Occupancy returns the squares occupied by c as a bitboard.
	Occupancy(c Color) uint64
	// Pieces returns the squares holding pieces of type t owned by c.
	Pieces(c Color, t PieceType) uint64
	PieceAt(sq int) (Piece, bool)

	Describe(m M) MoveInfo
	// Hash identifies the current position; equal positions hash equally.
	Hash() uint64
}
