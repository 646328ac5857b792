package engine

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	MaxVal = 9999999
	MinVal = -9999999

	// MateOffset keeps checkmate sentinels just inside the search window.
	MateOffset = 10
	// MateThreshold separates checkmate sentinels from ordinary scores.
	MateThreshold = MaxVal - MateOffset - 1000

	CheckBonus = 3
	DrawScore  = 100

	PromotionBonus  = 60
	CastleBonus     = 15
	EarlyQueenMalus = 15
)

// Defaults for the tunable thresholds in Options.
const (
	DefaultWinningThreshold = 30
	DefaultEarlyQueenPlies  = 8
)

// PieceValues is indexed by PieceType: None, Pawn, Knight, Bishop, Rook, Queen, King.
var PieceValues = [7]int{0, 10, 30, 35, 50, 90, 900}

// PiecePositionalVals is indexed by square (a1 = 0). Edges cost the most,
// the four centre squares nothing.
var PiecePositionalVals = [64]int{
	-4, -4, -4, -3, -3, -4, -4, -4,
	-4, -4, -4, -3, -3, -4, -4, -4,
	-4, -2, -1, -2, -2, -1, -2, -4,
	-4, -2, -1, 0, 0, -1, -2, -4,
	-4, -2, -1, 0, 0, -1, -2, -4,
	-4, -2, -1, -2, -2, -1, -2, -4,
	-4, -4, -4, -3, -3, -4, -4, -4,
	-4, -4, -4, -3, -3, -4, -4, -4,
}
