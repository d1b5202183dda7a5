// Package search implements game-tree search over a board.Board: a
// transposition table, move-ordering heuristics (killers, history), and
// the alpha-beta/quiescence search built on top of them. pkg/search/
// searchctl wraps Search with iterative deepening, aspiration windows,
// and time control.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/corvuschess/corvus/pkg/board"
	"github.com/corvuschess/corvus/pkg/eval"
)

// ErrHalted is returned by Search when the context was cancelled mid-search.
var ErrHalted = errors.New("search halted")

// Context carries the parts of search state that are shared across an
// entire iterative-deepening run rather than scoped to one recursion: the
// shared transposition table, killer/history tables, evaluation noise, and
// the root search window. Callers must set Alpha/Beta (typically
// eval.NegInf/eval.Inf); searchctl narrows them for aspiration-window
// iterative deepening and widens back to unbounded on a fail-high/
// fail-low re-search.
type Context struct {
	TT      TranspositionTable
	Killers *Killers
	History *History
	Noise   eval.Random

	Alpha, Beta eval.Score

	// Ponder, if non-empty, restricts the root move loop to these moves —
	// used to search one candidate root move in isolation (e.g. a
	// per-move score breakdown) without the rest of the root position's
	// legal moves competing for alpha-beta cutoffs.
	Ponder []board.Move
}

// allowedAtRoot reports whether m may be tried as a root move under sctx's
// Ponder restriction (always true when unset).
func (c *Context) allowedAtRoot(m board.Move) bool {
	if len(c.Ponder) == 0 {
		return true
	}
	for _, p := range c.Ponder {
		if p.Equals(m) {
			return true
		}
	}
	return false
}

// Search runs a fixed-depth game-tree search from b's current position.
type Search interface {
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (nodes uint64, score eval.Score, pv []board.Move, err error)
}

// QuietSearch extends a fixed-depth search with captures/promotions only,
// to avoid the horizon effect at the leaves of Search.
type QuietSearch interface {
	QuietSearch(ctx context.Context, sctx *Context, b *board.Board, alpha, beta eval.Score) (nodes uint64, score eval.Score)
}

// PV is one iteration's principal variation, reported as iterative
// deepening progresses.
type PV struct {
	Depth int
	Moves []board.Move
	Score eval.Score
	Nodes uint64
	Time  time.Duration
	Hash  float64 // transposition table utilization [0;1]
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v hash=%v%% pv=%v",
		p.Depth, p.Score, p.Nodes, p.Time, int(100*p.Hash), board.PrintMoves(p.Moves))
}

func isCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
