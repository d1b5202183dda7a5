package search

import "github.com/corvuschess/corvus/pkg/board"

// triangularPV is the classic triangular principal-variation table: each
// ply keeps the best continuation found below it, so once negamax unwinds
// back to the root the full line -- not just the root's own best move --
// is available to report.
//
// line[ply][ply:length[ply]] holds the line starting at ply; length[ply]
// is the number of valid entries in that row up to and including ply.
type triangularPV struct {
	line   [maxPly][maxPly]board.Move
	length [maxPly]int
}

// clear marks ply as contributing no continuation to its parent -- a leaf,
// a fail-low node, or a cutoff that short-circuited before a new best move
// was found. Called on entry to every node so stale data from an earlier
// visit (e.g. a null-move verification search) never leaks into the real
// line.
func (t *triangularPV) clear(ply int) {
	t.length[ply] = ply
}

// update records mv as the new best move at ply and appends the
// continuation already found at ply+1.
func (t *triangularPV) update(ply int, mv board.Move) {
	t.line[ply][ply] = mv
	for next := ply + 1; next < t.length[ply+1]; next++ {
		t.line[ply][next] = t.line[ply+1][next]
	}
	t.length[ply] = t.length[ply+1]
}

// root returns the line found at ply 0, capped to depth entries.
func (t *triangularPV) root(depth int) []board.Move {
	n := t.length[0]
	if n > depth {
		n = depth
	}
	if n <= 0 {
		return nil
	}
	out := make([]board.Move, n)
	copy(out, t.line[0][:n])
	return out
}
