package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chess-minimax/config"
	"chess-minimax/engine"
	"chess-minimax/host"
)

const defaultTimeToUse = 300000

func main() {
	var cfg config.Config
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	zerolog.SetGlobalLevel(cfg.LogLevel())
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	s, err := host.New(&cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("new-session")
	}
	log.Debug().Str("backend", cfg.GetString(config.ConfigBackend)).Msg("uci-start")
	uciLoop(os.Stdin, os.Stdout, s, cfg.GetInt(config.ConfigDepth))
}

func uciLoop(in io.Reader, out io.Writer, s host.Session, defaultDepth int) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Fprintln(out, "id name Minimax")
			fmt.Fprintln(out, "id author Minimax developers")
			fmt.Fprintln(out, "uciok")
		case "isready":
			fmt.Fprintln(out, "readyok")
		case "ucinewgame":
			if err := s.SetPosition("", nil); err != nil {
				fmt.Fprintln(out, "info string", err)
			}
		case "quit":
			return
		case "eval":
			s.Eval(out)
		case "moveordering":
			if err := s.MoveOrdering(out); err != nil {
				fmt.Fprintln(out, "info string", err)
			}
		case "position":
			fen, moves, ok := parsePosition(out, tokens[1:])
			if !ok {
				continue
			}
			if err := s.SetPosition(fen, moves); err != nil {
				fmt.Fprintln(out, "info string", err)
			}
		case "go":
			depth, budget := parseGo(out, tokens[1:], s.Side())
			if depth <= 0 {
				depth = defaultDepth
			}
			if err := s.Search(out, depth, budget); err != nil {
				log.Error().Err(err).Str("fen", s.FEN()).Msg("search-failed")
				fmt.Fprintln(out, "info string", err)
				fmt.Fprintln(out, "bestmove 0000")
			}
		default:
			fmt.Fprintln(out, "info string Unknown command", tokens[0])
		}
	}
}

// parsePosition splits "startpos|fen <fen> [moves ...]". An empty fen means
// the start position.
func parsePosition(out io.Writer, args []string) (fen string, moves []string, ok bool) {
	if len(args) == 0 {
		fmt.Fprintln(out, "info string Malformed position command")
		return "", nil, false
	}
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
	case "fen":
		var fields []string
		for len(rest) > 0 && strings.ToLower(rest[0]) != "moves" {
			fields = append(fields, rest[0])
			rest = rest[1:]
		}
		if len(fields) == 0 {
			fmt.Fprintln(out, "info string Invalid fen position")
			return "", nil, false
		}
		fen = strings.Join(fields, " ")
	default:
		fmt.Fprintln(out, "info string Invalid position subcommand")
		return "", nil, false
	}
	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		moves = rest[1:]
	}
	return fen, moves, true
}

// parseGo reads the depth and the clock of the side to move. The clock is
// reported to the engine but never limits the search.
func parseGo(out io.Writer, args []string, side engine.Color) (depth int, budget time.Duration) {
	var wTime, bTime, wInc, bInc int
	for i := 0; i < len(args); i++ {
		tok := strings.ToLower(args[i])
		var target *int
		switch tok {
		case "infinite":
			continue
		case "wtime":
			target = &wTime
		case "btime":
			target = &bTime
		case "winc":
			target = &wInc
		case "binc":
			target = &bInc
		case "depth":
			target = &depth
		default:
			fmt.Fprintln(out, "info string Unknown go subcommand", tok)
			continue
		}
		if i+1 >= len(args) {
			fmt.Fprintln(out, "info string Malformed go command option", tok)
			continue
		}
		i++
		v, err := strconv.Atoi(args[i])
		if err != nil {
			fmt.Fprintln(out, "info string Malformed go command option; could not convert", tok)
			continue
		}
		*target = v
	}

	timeToUse, incToUse := wTime, wInc
	if side == engine.Black {
		timeToUse, incToUse = bTime, bInc
	}
	if timeToUse <= 0 {
		timeToUse = defaultTimeToUse
	}
	return depth, time.Duration(timeToUse+incToUse) * time.Millisecond
}
