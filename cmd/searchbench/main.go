package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"chess-minimax/config"
	"chess-minimax/engine"
	"chess-minimax/host"
)

func main() {
	var cfg config.Config
	err := cfg.Load(os.Args[1:], func(fs *pflag.FlagSet) {
		fs.Int("repeat", 1, "number of searches to run")
		fs.String("fen", "", "FEN to search (empty = startpos)")
		fs.String("cpuprofile", "", "write CPU profile to file")
		fs.String("memprofile", "", "write memory profile (heap) to file")
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(cfg.LogLevel())
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if path := cfg.GetString("cpuprofile"); path != "" {
		cpuFile, err := os.Create(path)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	s, err := host.New(&cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("new-session")
	}

	fen := cfg.GetString("fen")
	depth := cfg.GetInt(config.ConfigDepth)
	repeat := cfg.GetInt("repeat")
	fmt.Printf("searchbench: backend=%s fen=%q depth=%d repeat=%d\n",
		cfg.GetString(config.ConfigBackend), fen, depth, repeat)

	var total engine.CutStatistics
	startAll := time.Now()
	for i := 0; i < repeat; i++ {
		// Fresh position for each run
		if err := s.SetPosition(fen, nil); err != nil {
			log.Fatal().Err(err).Msg("set-position")
		}
		iterStart := time.Now()
		if err := s.Search(os.Stdout, depth, 0); err != nil {
			log.Fatal().Err(err).Msg("search")
		}
		stats := s.Stats()
		total.Nodes += stats.Nodes
		total.Leaves += stats.Leaves
		total.BetaCutoffs += stats.BetaCutoffs
		total.AlphaCutoffs += stats.AlphaCutoffs
		total.CheckExtensions += stats.CheckExtensions
		fmt.Printf("iteration %d: time=%v\n", i+1, time.Since(iterStart))
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v  nps: %.0f\n", totalElapsed, float64(total.Nodes)/totalElapsed.Seconds())
	engine.DumpCutStats(os.Stdout, total)

	if path := cfg.GetString("memprofile"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create memory profile")
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not write memory profile")
		}
	}
}
