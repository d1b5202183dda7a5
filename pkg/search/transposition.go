package search

import (
	"fmt"
	"math/bits"
	"sync/atomic"
	"unsafe"

	"github.com/corvuschess/corvus/pkg/board"
	"github.com/corvuschess/corvus/pkg/eval"
)

// Bound classifies the precision of a stored search score: the search
// window that produced it may have clipped the true value.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound       // score is a fail-high: true value >= score
	UpperBound       // score is a fail-low: true value <= score
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "Exact"
	case LowerBound:
		return "Lower"
	case UpperBound:
		return "Upper"
	default:
		return "?"
	}
}

// TranspositionTable caches search results keyed by position hash. Must be
// thread-safe: one table is shared by every search an engine launches, and
// a halted search's goroutine may still be probing and storing when the
// next one starts.
type TranspositionTable interface {
	Read(hash uint64) (Bound, int, eval.Score, board.Move, bool)
	Write(hash uint64, bound Bound, depth int, score eval.Score, move board.Move)

	// Size returns the table's capacity in bytes.
	Size() uint64
	// Used returns the fraction of slots currently occupied, in [0;1].
	Used() float64
}

// TranspositionTableFactory builds a table of the given size in bytes —
// an indirection so callers (e.g. pkg/engine) can swap in a different
// implementation without depending on the concrete table type.
type TranspositionTableFactory func(size uint64) TranspositionTable

type entry struct {
	hash  uint64
	score eval.Score
	move  board.Move
	depth int32
	bound Bound
}

// table is a direct-mapped, always-replace transposition table: every
// store overwrites whatever previously lived at hash&mask, regardless of
// the existing entry's depth. Always-replace trades a slightly higher
// rewrite rate for freshness — entries reflect the most recently searched
// line, which iterative deepening revisits every iteration anyway.
type table struct {
	slots []unsafe.Pointer // *entry
	mask  uint64
	used  int64
}

// NewTranspositionTable allocates a table sized to the largest power of
// two number of entries fitting in size bytes.
func NewTranspositionTable(size uint64) TranspositionTable {
	const entrySize = 32
	n := uint64(1) << bits.Len64(size/entrySize)
	if n > size/entrySize {
		n >>= 1
	}
	if n == 0 {
		n = 1
	}
	return &table{slots: make([]unsafe.Pointer, n), mask: n - 1}
}

func (t *table) Size() uint64 {
	return uint64(len(t.slots)) * 32
}

func (t *table) Used() float64 {
	return float64(atomic.LoadInt64(&t.used)) / float64(len(t.slots))
}

func (t *table) Read(hash uint64) (Bound, int, eval.Score, board.Move, bool) {
	slot := &t.slots[hash&t.mask]
	e := (*entry)(atomic.LoadPointer(slot))
	if e == nil || e.hash != hash {
		return 0, 0, 0, board.NoMove, false
	}
	return e.bound, int(e.depth), e.score, e.move, true
}

func (t *table) Write(hash uint64, bound Bound, depth int, score eval.Score, move board.Move) {
	slot := &t.slots[hash&t.mask]
	fresh := &entry{hash: hash, score: score, move: move, depth: int32(depth), bound: bound}
	if atomic.SwapPointer(slot, unsafe.Pointer(fresh)) == nil {
		atomic.AddInt64(&t.used, 1)
	}
}

func (t *table) String() string {
	return fmt.Sprintf("TT[%vMB @ %v%%]", t.Size()>>20, int(100*t.Used()))
}

// NoTranspositionTable is a no-op TranspositionTable, for searches run
// without caching (e.g. the reference minimax/negamax implementations).
type NoTranspositionTable struct{}

func (NoTranspositionTable) Read(uint64) (Bound, int, eval.Score, board.Move, bool) {
	return 0, 0, 0, board.NoMove, false
}
func (NoTranspositionTable) Write(uint64, Bound, int, eval.Score, board.Move) {}
func (NoTranspositionTable) Size() uint64                                    { return 0 }
func (NoTranspositionTable) Used() float64                                   { return 0 }
