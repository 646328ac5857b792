package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"chess-minimax/config"
	"chess-minimax/host"
)

func main() {
	var cfg config.Config
	err := cfg.Load(os.Args[1:], func(fs *pflag.FlagSet) {
		fs.String("fen", "", "FEN string (defaults to initial position)")
		fs.Bool("divide", false, "Print per-move node counts at root")
		fs.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
		fs.String("label", "", "Optional label prefix for one-line output")
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	s, err := host.New(&cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := s.SetPosition(cfg.GetString("fen"), nil); err != nil {
		fmt.Fprintf(os.Stderr, "position: %v\n", err)
		os.Exit(2)
	}
	depth := cfg.GetInt(config.ConfigDepth)

	if cfg.GetBool("divide") {
		total, err := s.Perft(os.Stdout, depth, true)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("Total: %d\n", total)
		return
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < cfg.GetInt("repeat"); i++ {
		n, err := s.Perft(os.Stdout, depth, false)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		totalNodes += n
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", cfg.GetString("label"), depth, totalNodes, elapsed, nps)
}
