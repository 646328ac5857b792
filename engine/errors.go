package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDepth is returned when the requested search depth is not positive.
	ErrInvalidDepth = errors.New("search depth must be positive")
	// ErrNoLegalMoves is returned when the root position is already terminal.
	ErrNoLegalMoves = errors.New("no legal moves in root position")
	// ErrInvariantViolation marks a broken search invariant. The search is
	// aborted and no move is returned.
	ErrInvariantViolation = errors.New("search invariant violated")
)

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}
