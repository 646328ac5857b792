// Package rulestest checks that a rules-engine adapter behaves the way the
// search expects.
package rulestest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chess-minimax/engine"
	"chess-minimax/rules"
)

const (
	Startpos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	Kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
)

// Factory builds an adapter position from a FEN.
type Factory[M comparable] func(fen string) (rules.Position[M], error)

// Run exercises every part of the position contract against newPos.
func Run[M comparable](t *testing.T, newPos Factory[M]) {
	t.Run("Perft", func(t *testing.T) { testPerft(t, newPos) })
	t.Run("ApplyUndoRestores", func(t *testing.T) { testApplyUndo(t, newPos) })
	t.Run("IllegalMove", func(t *testing.T) { testIllegalMove(t, newPos) })
	t.Run("Occupancy", func(t *testing.T) { testOccupancy(t, newPos) })
	t.Run("PlyCount", func(t *testing.T) { testPlyCount(t, newPos) })
	t.Run("Status", func(t *testing.T) { testStatus(t, newPos) })
	t.Run("FiftyMoveRule", func(t *testing.T) { testFiftyMoveRule(t, newPos) })
	t.Run("Repetition", func(t *testing.T) { testRepetition(t, newPos) })
	t.Run("Describe", func(t *testing.T) { testDescribe(t, newPos) })
}

func mustPos[M comparable](t *testing.T, newPos Factory[M], fen string) rules.Position[M] {
	t.Helper()
	pos, err := newPos(fen)
	require.NoError(t, err, fen)
	return pos
}

func play[M comparable](t *testing.T, pos rules.Position[M], uci ...string) {
	t.Helper()
	for _, s := range uci {
		m, err := pos.ParseMove(s)
		require.NoError(t, err)
		require.NoError(t, pos.Apply(m), s)
	}
}

func testPerft[M comparable](t *testing.T, newPos Factory[M]) {
	cases := []struct {
		fen   string
		depth int
		nodes uint64
	}{
		{Startpos, 1, 20},
		{Startpos, 2, 400},
		{Startpos, 3, 8902},
		{Kiwipete, 1, 48},
		{Kiwipete, 2, 2039},
	}
	for _, tc := range cases {
		pos := mustPos(t, newPos, tc.fen)
		got, err := rules.Perft[M](pos, tc.depth)
		require.NoError(t, err)
		assert.Equal(t, tc.nodes, got, "perft(%d) of %s", tc.depth, tc.fen)
	}

	pos := mustPos(t, newPos, Startpos)
	div, err := rules.Divide[M](pos, 2)
	require.NoError(t, err)
	assert.Len(t, div, 20)
	for _, n := range div {
		assert.Equal(t, uint64(20), n)
	}
}

func testApplyUndo[M comparable](t *testing.T, newPos Factory[M]) {
	pos := mustPos(t, newPos, Kiwipete)
	fen, hash := pos.FEN(), pos.Hash()
	for _, m := range pos.LegalMoves() {
		require.NoError(t, pos.Apply(m))
		assert.NotEqual(t, hash, pos.Hash())
		for _, reply := range pos.LegalMoves() {
			require.NoError(t, pos.Apply(reply))
			pos.Undo(reply)
		}
		pos.Undo(m)
		require.Equal(t, fen, pos.FEN())
		require.Equal(t, hash, pos.Hash())
	}
}

func testIllegalMove[M comparable](t *testing.T, newPos Factory[M]) {
	pos := mustPos(t, newPos, Startpos)
	fen := pos.FEN()
	_, err := pos.ParseMove("e2e5")
	assert.Error(t, err)

	// A move that is legal for black is not legal with white to move.
	black := mustPos(t, newPos, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	m, err := black.ParseMove("e7e5")
	require.NoError(t, err)
	assert.Error(t, pos.Apply(m))
	assert.Equal(t, fen, pos.FEN())
}

func testOccupancy[M comparable](t *testing.T, newPos Factory[M]) {
	pos := mustPos(t, newPos, Startpos)
	assert.Equal(t, engine.White, pos.SideToMove())
	assert.Equal(t, uint64(0xFFFF), pos.Occupancy(engine.White))
	assert.Equal(t, uint64(0xFFFF000000000000), pos.Occupancy(engine.Black))
	assert.Equal(t, uint64(0xFF00), pos.Pieces(engine.White, engine.Pawn))
	assert.Equal(t, uint64(0x00FF000000000000), pos.Pieces(engine.Black, engine.Pawn))
	assert.Equal(t, uint64(1)<<3, pos.Pieces(engine.White, engine.Queen))
	assert.Equal(t, uint64(1)<<60, pos.Pieces(engine.Black, engine.King))

	pc, ok := pos.PieceAt(4)
	assert.True(t, ok)
	assert.Equal(t, engine.Piece{Type: engine.King, Color: engine.White}, pc)
	pc, ok = pos.PieceAt(57)
	assert.True(t, ok)
	assert.Equal(t, engine.Piece{Type: engine.Knight, Color: engine.Black}, pc)
	_, ok = pos.PieceAt(27)
	assert.False(t, ok)
}

func testPlyCount[M comparable](t *testing.T, newPos Factory[M]) {
	pos := mustPos(t, newPos, Startpos)
	assert.Equal(t, 0, pos.PlyCount())
	play(t, pos, "e2e4")
	assert.Equal(t, 1, pos.PlyCount())
	assert.Equal(t, engine.Black, pos.SideToMove())
	play(t, pos, "e7e5")
	assert.Equal(t, 2, pos.PlyCount())
}

func testStatus[M comparable](t *testing.T, newPos Factory[M]) {
	mated := mustPos(t, newPos, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 1 1")
	assert.True(t, mated.IsCheckmate())
	assert.True(t, mated.InCheck())
	assert.False(t, mated.IsDraw())
	assert.Empty(t, mated.LegalMoves())

	stalemate := mustPos(t, newPos, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	assert.False(t, stalemate.IsCheckmate())
	assert.False(t, stalemate.InCheck())
	assert.True(t, stalemate.IsDraw())

	check := mustPos(t, newPos, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	play(t, check, "a1a8")
	assert.True(t, check.InCheck())
	assert.False(t, check.IsCheckmate())

	start := mustPos(t, newPos, Startpos)
	assert.False(t, start.InCheck())
	assert.False(t, start.IsCheckmate())
	assert.False(t, start.IsDraw())
}

func testFiftyMoveRule[M comparable](t *testing.T, newPos Factory[M]) {
	pos := mustPos(t, newPos, "7k/8/8/8/8/8/8/R6K w - - 99 80")
	assert.False(t, pos.IsDraw())
	play(t, pos, "a1a2")
	assert.True(t, pos.IsDraw())
	m, err := pos.ParseMove("h8g8")
	require.NoError(t, err)
	require.NoError(t, pos.Apply(m))
	pos.Undo(m)
	assert.True(t, pos.IsDraw())
}

func testRepetition[M comparable](t *testing.T, newPos Factory[M]) {
	pos := mustPos(t, newPos, Startpos)
	cycle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	play(t, pos, cycle...)
	assert.False(t, pos.IsDraw(), "twofold is not a draw")
	play(t, pos, cycle...)
	assert.True(t, pos.IsDraw(), "threefold is a draw")

	m, err := pos.ParseMove("e2e4")
	require.NoError(t, err)
	require.NoError(t, pos.Apply(m))
	assert.False(t, pos.IsDraw())
	pos.Undo(m)
	assert.True(t, pos.IsDraw())
}

func testDescribe[M comparable](t *testing.T, newPos Factory[M]) {
	cases := []struct {
		name string
		fen  string
		move string
		want engine.MoveInfo
	}{
		{"quiet", Startpos, "g1f3", engine.MoveInfo{From: 6, To: 21, Piece: engine.Knight}},
		{"capture", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", "e4d5",
			engine.MoveInfo{From: 28, To: 35, Piece: engine.Pawn, Capture: true}},
		{"en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2", "e5d6",
			engine.MoveInfo{From: 36, To: 43, Piece: engine.Pawn, Capture: true}},
		{"promotion", "8/P6k/8/8/8/8/8/K7 w - - 0 1", "a7a8q",
			engine.MoveInfo{From: 48, To: 56, Piece: engine.Pawn, Promotion: true}},
		{"castle", "4k3/8/8/8/8/8/8/4K2R w K - 0 1", "e1g1",
			engine.MoveInfo{From: 4, To: 6, Piece: engine.King, Castle: true}},
		{"queen", "4k3/8/8/8/8/8/8/3QK3 w - - 0 1", "d1d5",
			engine.MoveInfo{From: 3, To: 35, Piece: engine.Queen}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustPos(t, newPos, tc.fen)
			m, err := pos.ParseMove(tc.move)
			require.NoError(t, err)
			assert.Equal(t, tc.want, pos.Describe(m))

			captured := false
			for _, c := range pos.LegalCaptures() {
				if c == m {
					captured = true
				}
			}
			assert.Equal(t, tc.want.Capture, captured)
		})
	}
}
