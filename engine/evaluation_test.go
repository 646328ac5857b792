package engine_test

import (
	"testing"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/matryer/is"

	"chess-minimax/engine"
)

func evaluateAfter(t *testing.T, fen string, side engine.Color, depth, remaining int, moves ...string) (int, bool) {
	t.Helper()
	pos := mustPos(t, fen)
	play(t, pos, moves...)
	ev := engine.NewEvaluator[gm.Move](pos, side, quietOptions())
	return ev.Evaluate(&engine.SearchNode[gm.Move]{Depth: depth}, remaining)
}

func TestCheckmateScores(t *testing.T) {
	is := is.New(t)
	const mated = "R5k1/5ppp/8/8/8/8/8/6K1 b - - 1 1"

	// White delivered mate: an own-ply mate, better the sooner it comes.
	near, _ := evaluateAfter(t, mated, engine.White, 1, 2)
	far, _ := evaluateAfter(t, mated, engine.White, 3, 0)
	is.Equal(near, engine.MaxVal-engine.MateOffset+2)
	is.Equal(far, engine.MaxVal-engine.MateOffset)
	is.True(near > far)

	// Seen from the mated side the same position is a loss.
	soon, _ := evaluateAfter(t, mated, engine.Black, 2, 1)
	late, _ := evaluateAfter(t, mated, engine.Black, 4, 0)
	is.Equal(soon, engine.MinVal+engine.MateOffset-1)
	is.True(soon < late)
}

func TestMaterialCheckAndSquares(t *testing.T) {
	is := is.New(t)
	vals := engine.PiecePositionalVals
	const fen = "4k3/8/8/8/8/8/8/R3K3 w - - 0 1"

	// Black is in check from the rook on a8.
	own, inCheck := evaluateAfter(t, fen, engine.White, 1, 0, "a1a8")
	is.True(inCheck)
	is.Equal(own, engine.PieceValues[engine.Rook]+vals[56]+vals[4]+engine.CheckBonus)

	opp, inCheck := evaluateAfter(t, fen, engine.White, 2, 0, "a1a8")
	is.True(inCheck)
	is.Equal(opp, engine.PieceValues[engine.Rook]-(vals[56]+vals[4]))
}

func TestPawnAdvancement(t *testing.T) {
	is := is.New(t)
	vals := engine.PiecePositionalVals

	white, _ := evaluateAfter(t, "4k3/8/8/8/4P3/8/8/4K3 w - - 0 1", engine.White, 1, 0)
	is.Equal(white, engine.PieceValues[engine.Pawn]+3+vals[28]+vals[4])

	// Black pawns count eight less their rank index, so e5 is worth 4.
	black, _ := evaluateAfter(t, "4k3/8/8/4p3/8/8/8/4K3 w - - 0 1", engine.Black, 1, 0)
	is.Equal(black, engine.PieceValues[engine.Pawn]+4+vals[36]+vals[60])
}

func TestPawnAdvancementAddsBothColours(t *testing.T) {
	is := is.New(t)
	vals := engine.PiecePositionalVals
	// e2 is one rank up for white, e7 two ranks up for black.
	const fen = "4k3/4p3/8/8/8/8/4P3/4K3 w - - 0 1"

	white, _ := evaluateAfter(t, fen, engine.White, 1, 0)
	is.Equal(white, 1+2+vals[12]+vals[4])

	black, _ := evaluateAfter(t, fen, engine.Black, 1, 0)
	is.Equal(black, 1+2+vals[52]+vals[60])

	// Not counted on the opponent's ply.
	reply, _ := evaluateAfter(t, fen, engine.White, 2, 0)
	is.Equal(reply, -(vals[12] + vals[4]))
}

func TestDrawArbitration(t *testing.T) {
	is := is.New(t)

	// Stalemating the lone king while a queen up is a lost win.
	score, _ := evaluateAfter(t, "7k/8/6K1/8/8/8/8/5Q2 w - - 0 1", engine.White, 1, 0, "f1f7")
	is.Equal(score, -engine.DrawScore)

	// Reaching the fifty-move draw a queen down is welcome.
	score, _ = evaluateAfter(t, "k7/8/8/8/8/8/8/5QK1 b - - 99 80", engine.Black, 1, 0, "a8b8")
	is.Equal(score, engine.DrawScore)

	// The opponent drawing while we are behind is good for us.
	score, _ = evaluateAfter(t, "5qk1/8/8/8/8/8/8/K7 w - - 98 80", engine.White, 2, 0, "a1a2", "g8g7")
	is.Equal(score, engine.DrawScore)

	// The opponent drawing while we are ahead is bad for us.
	score, _ = evaluateAfter(t, "k7/8/8/8/8/8/8/5QK1 w - - 98 80", engine.White, 2, 0, "g1h2", "a8b8")
	is.Equal(score, -engine.DrawScore)
}
