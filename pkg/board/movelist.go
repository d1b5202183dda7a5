package board

// MaxMoves is the largest number of pseudo-legal moves possible in any
// reachable chess position, with headroom. The move list is a fixed-size
// array rather than a slice so move generation performs no allocation.
const MaxMoves = 256

// MoveList is a fixed-capacity, stack-allocatable list of moves, each
// annotated with a mutable ordering score (Move.Score). Moves are
// consumed in descending score order via SortNext, a selection sort that
// brings the highest-scoring remaining move to the current index — O(n)
// per call, O(n^2) total, but avoids sorting moves that a cutoff makes
// unnecessary to examine.
type MoveList struct {
	moves [MaxMoves]Move
	len   int
}

// Len returns the number of moves currently in the list.
func (l *MoveList) Len() int {
	return l.len
}

// Push appends a move. Panics if the list is full (never true for any
// reachable legal position; a full list indicates a generator bug).
func (l *MoveList) Push(m Move) {
	if l.len >= MaxMoves {
		panic("movelist: capacity exceeded")
	}
	l.moves[l.len] = m
	l.len++
}

// Get returns the move at index i.
func (l *MoveList) Get(i int) Move {
	return l.moves[i]
}

// Set overwrites the move at index i, e.g. to annotate its score.
func (l *MoveList) Set(i int, m Move) {
	l.moves[i] = m
}

// Truncate shrinks the list to its first n moves, e.g. after compacting
// in place.
func (l *MoveList) Truncate(n int) {
	l.len = n
}

// Slice returns the moves as a plain slice, in current list order. The
// returned slice aliases the list's backing array.
func (l *MoveList) Slice() []Move {
	return l.moves[:l.len]
}

// SortNext selects the highest-scoring move among indices [i, Len) and
// swaps it into index i, so repeatedly calling SortNext(0), SortNext(1),
// ... yields moves in descending score order without sorting the whole
// list up front.
func (l *MoveList) SortNext(i int) Move {
	best := i
	for j := i + 1; j < l.len; j++ {
		if l.moves[j].Score() > l.moves[best].Score() {
			best = j
		}
	}
	if best != i {
		l.moves[i], l.moves[best] = l.moves[best], l.moves[i]
	}
	return l.moves[i]
}

// Contains reports whether the list holds a move equal to m (ignoring its
// ordering score).
func (l *MoveList) Contains(m Move) bool {
	for i := 0; i < l.len; i++ {
		if l.moves[i].Equals(m) {
			return true
		}
	}
	return false
}

// PrintMoves renders a sequence of moves as a space-separated string.
func PrintMoves(moves []Move) string {
	var sb []byte
	for i, m := range moves {
		if i > 0 {
			sb = append(sb, ' ')
		}
		sb = append(sb, m.String()...)
	}
	return string(sb)
}
