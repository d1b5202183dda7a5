package search

import (
	"github.com/corvuschess/corvus/pkg/board"
)

// maxPly bounds the killer table; no legal search reaches this depth.
const maxPly = 128

// Killers remembers, per ply, the two most recent quiet moves that caused
// a beta cutoff. A killer that repeats at the same ply in a sibling
// subtree is worth trying early even without capturing anything, since it
// was refutation-strength there.
type Killers struct {
	slots [maxPly][2]board.Move
}

// Add records m as a fresh killer at ply, evicting the older slot.
func (k *Killers) Add(ply int, m board.Move) {
	if ply >= maxPly || k.slots[ply][0].Equals(m) {
		return
	}
	k.slots[ply][1] = k.slots[ply][0]
	k.slots[ply][0] = m
}

// Probe reports whether m is a remembered killer at ply.
func (k *Killers) Probe(ply int, m board.Move) bool {
	if ply >= maxPly {
		return false
	}
	return k.slots[ply][0].Equals(m) || k.slots[ply][1].Equals(m)
}

// History scores quiet moves by how often they have produced a cutoff
// anywhere in the tree, indexed by side/from/to rather than ply — a move
// that refutes well in one line tends to refute well in siblings too.
type History struct {
	score [board.NumColors][board.NumSquares][board.NumSquares]int
}

// Add rewards m for causing a cutoff at the given depth; deeper cutoffs
// count for more, since they represent a stronger refutation.
func (h *History) Add(turn board.Color, m board.Move, depth int) {
	h.score[turn][m.From()][m.To()] += depth * depth
}

// Value returns m's history score, scaled into a bounded ordering
// priority so it never dominates MVV-LVA capture ordering or killers.
func (h *History) Value(turn board.Color, m board.Move) int {
	v := h.score[turn][m.From()][m.To()]
	return 6 + (v*73)/(v+1000)
}

// Move.Score is an 8-bit scratch field, so ordering buckets are coarse by
// necessity: the hash move always sorts first, captures next (ranked by
// victim value, the MVV half of MVV-LVA — the LVA half falls out for free
// since cheap attackers generate before expensive ones in pkg/movegen),
// then promotions, then killers, then history-scored quiets.
const (
	hashMoveScore  = 255
	captureBase    = 180
	promotionScore = 170
	killer1Score   = 165
	killer2Score   = 160
)

func victimRank(p board.Piece) uint8 {
	switch p {
	case board.Pawn:
		return 0
	case board.Knight, board.Bishop:
		return 1
	case board.Rook:
		return 3
	case board.Queen:
		return 6
	default:
		return 0
	}
}

// orderingScore produces the priority SortNext sorts by: hash move first,
// then captures by victim value, then promotions, then killers, then
// history, then everything else.
func orderingScore(m board.Move, hashMove board.Move, turn board.Color, killers *Killers, history *History, ply int) uint8 {
	switch {
	case hashMove != board.NoMove && m.Equals(hashMove):
		return hashMoveScore
	case m.IsCapture():
		victim := m.Capture()
		if m.IsEnPassant() {
			victim = board.Pawn
		}
		return captureBase + victimRank(victim)*8
	case m.IsPromotion():
		return promotionScore
	case killers != nil && killers.slots[ply][0].Equals(m) && ply < maxPly:
		return killer1Score
	case killers != nil && ply < maxPly && killers.slots[ply][1].Equals(m):
		return killer2Score
	case history != nil:
		return uint8(history.Value(turn, m))
	default:
		return 0
	}
}

// score annotates every move in list with its ordering priority.
func score(list *board.MoveList, hashMove board.Move, turn board.Color, killers *Killers, history *History, ply int) {
	for i := 0; i < list.Len(); i++ {
		m := list.Get(i)
		list.Set(i, m.WithScore(orderingScore(m, hashMove, turn, killers, history, ply)))
	}
}
