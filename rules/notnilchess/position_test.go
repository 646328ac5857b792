package notnilchess

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chess-minimax/engine"
	"chess-minimax/rules"
	"chess-minimax/rules/rulestest"
)

func TestContract(t *testing.T) {
	rulestest.Run[Move](t, func(fen string) (rules.Position[Move], error) {
		return New(fen)
	})
}

func TestMoveString(t *testing.T) {
	assert.Equal(t, "e2e4", Move{From: chess.E2, To: chess.E4}.String())
	assert.Equal(t, "b7b8n", Move{From: chess.B7, To: chess.B8, Promo: chess.Knight}.String())
}

func TestFromGameKeepsHistory(t *testing.T) {
	g := chess.NewGame()
	for _, s := range []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"} {
		m, err := chess.UCINotation{}.Decode(g.Position(), s)
		require.NoError(t, err)
		require.NoError(t, g.Move(m))
	}
	assert.True(t, FromGame(g).IsDraw())
}

func TestAttacked(t *testing.T) {
	cases := []struct {
		fen     string
		inCheck bool
	}{
		{"4k3/8/8/8/8/8/3p4/4K3 w - - 0 1", true},  // pawn
		{"4k3/8/8/8/8/5n2/8/4K3 w - - 0 1", true},  // knight
		{"4k3/8/8/8/8/8/8/r3K3 w - - 0 1", true},   // rook along the rank
		{"4k3/8/8/8/8/8/8/r2NK3 w - - 0 1", false}, // blocked
		{"4k3/8/8/b7/8/8/8/4K3 w - - 0 1", true},   // bishop
		{"4k3/8/8/8/8/8/4P3/4K3 b - - 0 1", false}, // nothing reaches e8
	}
	for _, tc := range cases {
		p, err := New(tc.fen)
		require.NoError(t, err)
		assert.Equal(t, tc.inCheck, p.InCheck(), tc.fen)
	}
}

func TestBot(t *testing.T) {
	opt, err := chess.FEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	require.NoError(t, err)
	g := chess.NewGame(opt)

	bot := NewBot(3, engine.DefaultOptions())
	assert.Equal(t, "Minimax Bot (depth 3)", bot.Name())
	m := bot.BestMove(g)
	require.NotNil(t, m)
	require.NoError(t, g.Move(m))
	assert.Equal(t, chess.WhiteWon, g.Outcome())
	assert.Nil(t, bot.BestMove(g))
}
