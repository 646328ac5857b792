package engine

// stateStack holds the position hash taken before each applied move, so the
// matching undo can be checked against it.
type stateStack []uint64

func (s *stateStack) push(hash uint64) {
	*s = append(*s, hash)
}

func (s *stateStack) pop() (uint64, bool) {
	n := len(*s)
	if n == 0 {
		return 0, false
	}
	hash := (*s)[n-1]
	*s = (*s)[:n-1]
	return hash, true
}

