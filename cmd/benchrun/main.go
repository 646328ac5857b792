package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"chess-minimax/config"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

// step runs one go subcommand with its output passed straight through.
func step(args ...string) error {
	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go %s: %w", args[0], err)
	}
	return nil
}

func exitCode(err error) int {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return 1
}

// Usage: go run ./cmd/benchrun
func main() {
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	if err := step("test", "./engine", "./rules", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}

	perft := []struct {
		label string
		fen   string
		depth string
	}{
		{"Initial", "", "3"},
		{"Initial", "", "4"},
		{"Kiwipete", kiwipete, "3"},
	}
	var failed error
	for _, backend := range config.Backends {
		fmt.Printf("\nPerft Performance (%s):\n", backend)
		fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
		for _, p := range perft {
			args := []string{"run", "./cmd/perft", "--backend", backend, "--depth", p.depth, "--label", p.label}
			if p.fen != "" {
				args = append(args, "--fen", p.fen)
			}
			if err := step(args...); err != nil {
				fmt.Fprintln(os.Stderr, backend, err)
				failed = err
			}
		}

		fmt.Printf("\nSearch (%s):\n", backend)
		if err := step("run", "./cmd/searchbench", "--backend", backend, "--depth", "4"); err != nil {
			fmt.Fprintln(os.Stderr, backend, err)
			failed = err
		}
	}
	if failed != nil {
		os.Exit(exitCode(failed))
	}
}
