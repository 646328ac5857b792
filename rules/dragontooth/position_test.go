package dragontooth

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chess-minimax/rules"
	"chess-minimax/rules/rulestest"
)

func TestContract(t *testing.T) {
	rulestest.Run[dragontoothmg.Move](t, func(fen string) (rules.Position[dragontoothmg.Move], error) {
		return New(fen)
	})
}

func TestUndoWithoutApplyPanics(t *testing.T) {
	p, err := New(Startpos)
	require.NoError(t, err)
	assert.Panics(t, func() { p.Undo(0) })
}
