// Package rules holds what the rules-engine adapters have in common beyond
// engine.Position.
package rules

import (
	"fmt"

	"chess-minimax/engine"
)

// Position is an engine.Position that can also be set up and driven from
// UCI text.
type Position[M comparable] interface {
	engine.Position[M]
	FEN() string
	ParseMove(uci string) (M, error)
}

// Perft counts the leaf nodes of the legal move tree depth plies deep.
func Perft[M comparable](pos engine.Position[M], depth int) (uint64, error) {
	if depth == 0 {
		return 1, nil
	}
	var nodes uint64
	for _, m := range pos.LegalMoves() {
		if err := pos.Apply(m); err != nil {
			return 0, fmt.Errorf("perft: %w", err)
		}
		n, err := Perft(pos, depth-1)
		pos.Undo(m)
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}

// Divide returns the perft count below each root move.
func Divide[M comparable](pos engine.Position[M], depth int) (map[M]uint64, error) {
	div := make(map[M]uint64)
	if depth <= 0 {
		return div, nil
	}
	for _, m := range pos.LegalMoves() {
		if err := pos.Apply(m); err != nil {
			return nil, fmt.Errorf("divide: %w", err)
		}
		n, err := Perft(pos, depth-1)
		pos.Undo(m)
		if err != nil {
			return nil, err
		}
		div[m] = n
	}
	return div, nil
}
