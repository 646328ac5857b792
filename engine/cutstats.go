package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// CutStatistics collects counters for one search.
type CutStatistics struct {
	Nodes           uint64
	Leaves          uint64
	BetaCutoffs     uint64
	AlphaCutoffs    uint64
	CheckExtensions uint64
	Elapsed         time.Duration
}

func (c *CutStatistics) reset() {
	*c = CutStatistics{}
}

func (c CutStatistics) logTo(ev *zerolog.Event) *zerolog.Event {
	return ev.Uint64("nodes", c.Nodes).
		Uint64("leaves", c.Leaves).
		Uint64("beta-cutoffs", c.BetaCutoffs).
		Uint64("alpha-cutoffs", c.AlphaCutoffs).
		Uint64("check-extensions", c.CheckExtensions).
		Dur("elapsed", c.Elapsed)
}

// DumpCutStats writes the counters as UCI info strings.
func DumpCutStats(w io.Writer, c CutStatistics) {
	fmt.Fprintln(w, "info string Cut statistics:")
	fmt.Fprintf(w, "info string   Nodes: %d\n", c.Nodes)
	fmt.Fprintf(w, "info string   Leaves evaluated: %d\n", c.Leaves)
	fmt.Fprintf(w, "info string   Beta cutoffs: %d\n", c.BetaCutoffs)
	fmt.Fprintf(w, "info string   Alpha cutoffs: %d\n", c.AlphaCutoffs)
	fmt.Fprintf(w, "info string   Check extensions: %d\n", c.CheckExtensions)
}
