package engine

import "fmt"

// Line returns the moves from ply one down to result.
func Line[M comparable](result *SearchNode[M]) []M {
	var seq []M
	for n := result; n != nil && n.Depth >= 1; n = n.Parent {
		seq = append(seq, n.Move)
	}
	for i, j := 0, len(seq)-1; i < j; i, j = i+1, j-1 {
		seq[i], seq[j] = seq[j], seq[i]
	}
	return seq
}

// FormatScore renders a result as a UCI score. Checkmate sentinels are shown
// as moves to mate, counted from the result's depth.
func FormatScore[M comparable](result *SearchNode[M]) string {
	score := result.HeuristicVal
	mateInN := (result.Depth + 1) / 2
	if score >= MateThreshold {
		return fmt.Sprintf("mate %d", mateInN)
	} else if score <= -MateThreshold {
		return fmt.Sprintf("mate %d", -mateInN)
	}
	return fmt.Sprintf("cp %d", score)
}
