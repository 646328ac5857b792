package host

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chess-minimax/config"
	"chess-minimax/engine"
)

func newSession(t *testing.T, backend string) Session {
	t.Helper()
	var cfg config.Config
	require.NoError(t, cfg.Load([]string{"--backend", backend}))
	s, err := New(&cfg)
	require.NoError(t, err)
	return s
}

func TestPerftOnEveryBackend(t *testing.T) {
	for _, backend := range config.Backends {
		t.Run(backend, func(t *testing.T) {
			s := newSession(t, backend)

			n, err := s.Perft(&bytes.Buffer{}, 3, false)
			require.NoError(t, err)
			assert.Equal(t, uint64(8902), n)

			var out bytes.Buffer
			n, err = s.Perft(&out, 2, true)
			require.NoError(t, err)
			assert.Equal(t, uint64(400), n)
			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			require.Len(t, lines, 20)
			assert.Equal(t, "a2a3: 20", lines[0])
			assert.Equal(t, "h2h4: 20", lines[19])
		})
	}
}

func TestSetPosition(t *testing.T) {
	s := newSession(t, config.BackendGoose)
	assert.Equal(t, engine.White, s.Side())

	require.NoError(t, s.SetPosition("", []string{"E2E4"}))
	assert.Equal(t, engine.Black, s.Side())

	before := s.FEN()
	assert.Error(t, s.SetPosition("", []string{"e2e4", "e2e4"}))
	assert.Equal(t, before, s.FEN(), "a failed SetPosition must keep the old position")

	assert.Error(t, s.SetPosition("not a fen", nil))
}

func TestSearchPrintsInfoAndBestMove(t *testing.T) {
	for _, backend := range config.Backends {
		t.Run(backend, func(t *testing.T) {
			s := newSession(t, backend)
			require.NoError(t, s.SetPosition("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", nil))

			var out bytes.Buffer
			require.NoError(t, s.Search(&out, 2, 0))
			assert.Contains(t, out.String(), "score mate 1")
			assert.Contains(t, out.String(), "pv a1a8\n")
			assert.True(t, strings.HasSuffix(out.String(), "bestmove a1a8\n"))
			assert.NotZero(t, s.Stats().Nodes)
		})
	}
}

func TestMoveOrderingListsCapturesFirst(t *testing.T) {
	s := newSession(t, config.BackendGoose)
	require.NoError(t, s.SetPosition("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", nil))

	var out bytes.Buffer
	require.NoError(t, s.MoveOrdering(&out))
	assert.True(t, strings.HasPrefix(out.String(), "info string 1. e4d5 "))
}

func TestSearchFromTerminalPosition(t *testing.T) {
	s := newSession(t, config.BackendDragontooth)
	require.NoError(t, s.SetPosition("R5k1/5ppp/8/8/8/8/8/6K1 b - - 1 1", nil))
	err := s.Search(&bytes.Buffer{}, 2, 0)
	assert.ErrorIs(t, err, engine.ErrNoLegalMoves)
}
