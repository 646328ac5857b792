// Package host drives the search from text commands, whichever rules engine
// is configured.
package host

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dylhunn/dragontoothmg"
	gm "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/samber/lo"

	"chess-minimax/config"
	"chess-minimax/engine"
	"chess-minimax/rules"
	"chess-minimax/rules/dragontooth"
	"chess-minimax/rules/goose"
	"chess-minimax/rules/notnilchess"
)

// Session is what the UCI loop drives.
type Session interface {
	// SetPosition loads fen, or the start position when fen is empty, and
	// plays moves on top of it.
	SetPosition(fen string, moves []string) error
	// Search prints an info line and the best move.
	Search(w io.Writer, depth int, budget time.Duration) error
	Eval(w io.Writer)
	MoveOrdering(w io.Writer) error
	Perft(w io.Writer, depth int, divide bool) (uint64, error)
	Stats() engine.CutStatistics
	FEN() string
	Side() engine.Color
}

type backend[M comparable] struct {
	startpos   string
	parse      func(fen string) (rules.Position[M], error)
	moveString func(M) string

	pos rules.Position[M]
	eng *engine.Engine[M]
}

// New returns a session on the configured backend, set to the start position.
func New(cfg *config.Config) (Session, error) {
	opts := cfg.EngineOptions()
	var s Session
	switch cfg.GetString(config.ConfigBackend) {
	case config.BackendGoose:
		s = &backend[gm.Move]{
			startpos: goose.Startpos,
			parse: func(fen string) (rules.Position[gm.Move], error) {
				return goose.New(fen)
			},
			moveString: goose.MoveString,
			eng:        engine.New[gm.Move](opts),
		}
	case config.BackendDragontooth:
		s = &backend[dragontoothmg.Move]{
			startpos: dragontooth.Startpos,
			parse: func(fen string) (rules.Position[dragontoothmg.Move], error) {
				return dragontooth.New(fen)
			},
			moveString: func(m dragontoothmg.Move) string { return m.String() },
			eng:        engine.New[dragontoothmg.Move](opts),
		}
	case config.BackendNotnil:
		s = &backend[notnilchess.Move]{
			startpos: notnilchess.Startpos,
			parse: func(fen string) (rules.Position[notnilchess.Move], error) {
				return notnilchess.New(fen)
			},
			moveString: notnilchess.Move.String,
			eng:        engine.New[notnilchess.Move](opts),
		}
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", config.ErrInvalidConfig, cfg.GetString(config.ConfigBackend))
	}
	if err := s.SetPosition("", nil); err != nil {
		return nil, err
	}
	return s, nil
}

func (b *backend[M]) SetPosition(fen string, moves []string) error {
	if fen == "" {
		fen = b.startpos
	}
	pos, err := b.parse(fen)
	if err != nil {
		return err
	}
	for _, s := range moves {
		m, err := pos.ParseMove(strings.ToLower(s))
		if err != nil {
			return err
		}
		if err := pos.Apply(m); err != nil {
			return err
		}
	}
	b.pos = pos
	return nil
}

func (b *backend[M]) FEN() string { return b.pos.FEN() }

func (b *backend[M]) Side() engine.Color { return b.pos.SideToMove() }

func (b *backend[M]) line(moves []M) string {
	return strings.Join(lo.Map(moves, func(m M, _ int) string { return b.moveString(m) }), " ")
}

func (b *backend[M]) Search(w io.Writer, depth int, budget time.Duration) error {
	result, err := b.eng.Think(b.pos, depth, budget)
	if err != nil {
		return err
	}
	m, err := engine.SelectMove(result)
	if err != nil {
		return err
	}
	stats := b.eng.Stats()
	fmt.Fprintf(w, "info depth %d score %s nodes %d time %d pv %s\n",
		depth, engine.FormatScore(result), stats.Nodes, stats.Elapsed.Milliseconds(),
		b.line(engine.Line(result)))
	fmt.Fprintf(w, "bestmove %s\n", b.moveString(m))
	return nil
}

func (b *backend[M]) Eval(w io.Writer) {
	fmt.Fprintf(w, "info string eval %d\n", b.eng.StaticEval(b.pos))
}

func (b *backend[M]) MoveOrdering(w io.Writer) error {
	children, err := b.eng.RootOrder(b.pos)
	if err != nil {
		return err
	}
	for i, c := range children {
		fmt.Fprintf(w, "info string %d. %s %d\n", i+1, b.moveString(c.Move), c.HeuristicVal)
	}
	return nil
}

func (b *backend[M]) Stats() engine.CutStatistics { return b.eng.Stats() }

// Perft counts leaf nodes depth plies below the current position. With divide
// set it also prints the count below each root move, sorted by move text.
func (b *backend[M]) Perft(w io.Writer, depth int, divide bool) (uint64, error) {
	if !divide {
		return rules.Perft[M](b.pos, depth)
	}
	div, err := rules.Divide[M](b.pos, depth)
	if err != nil {
		return 0, err
	}
	type entry struct {
		move  string
		nodes uint64
	}
	entries := lo.MapToSlice(div, func(m M, n uint64) entry { return entry{b.moveString(m), n} })
	sort.Slice(entries, func(i, j int) bool { return entries[i].move < entries[j].move })
	var total uint64
	for _, e := range entries {
		fmt.Fprintf(w, "%s: %d\n", e.move, e.nodes)
		total += e.nodes
	}
	return total, nil
}
