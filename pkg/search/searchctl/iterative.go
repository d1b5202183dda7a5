package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"

	"github.com/corvuschess/corvus/pkg/board"
	"github.com/corvuschess/corvus/pkg/eval"
	"github.com/corvuschess/corvus/pkg/search"
)

// Iterative is a search harness for iterative deepening search with
// aspiration windows: each iteration after the first searches a narrow
// window centered on the previous iteration's score, and falls back to a
// full re-search of the same depth on fail-high/fail-low.
type Iterative struct {
	Root search.Search
}

func (i *Iterative) Launch(ctx context.Context, b *board.Board, tt search.TranspositionTable, noise eval.Random, opt Options) (Handle, <-chan search.PV) {
	out := make(chan search.PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, i.Root, b, tt, noise, opt, out)

	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	pv search.PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, root search.Search, b *board.Board, tt search.TranspositionTable, noise eval.Random, opt Options, out chan search.PV) {
	defer h.init.Close()
	defer close(out)

	sctx := &search.Context{
		TT:      tt,
		Killers: &search.Killers{},
		History: &search.History{},
		Noise:   noise,
		Alpha:   eval.NegInf,
		Beta:    eval.Inf,
	}
	soft, useSoft := EnforceTimeControl(ctx, h, opt.TimeControl, b.Turn())

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	var prevScore eval.Score
	havePrevScore := false

	depth := 1
	for !h.quit.IsClosed() {
		start := time.Now()

		sctx.Alpha, sctx.Beta = eval.NegInf, eval.Inf
		if havePrevScore && depth > 1 {
			sctx.Alpha = eval.Crop(prevScore - eval.AspirationWindow)
			sctx.Beta = eval.Crop(prevScore + eval.AspirationWindow)
		}

		nodes, score, moves, err := root.Search(wctx, sctx, b, depth)
		if err == nil && (score <= sctx.Alpha || score >= sctx.Beta) && sctx.Alpha != eval.NegInf {
			// Fail-low or fail-high: the narrow window clipped the true
			// score. Re-search the same depth unbounded rather than
			// doubling the window, trading one extra full search for
			// simplicity.
			sctx.Alpha, sctx.Beta = eval.NegInf, eval.Inf
			var moreNodes uint64
			moreNodes, score, moves, err = root.Search(wctx, sctx, b, depth)
			nodes += moreNodes
		}
		if err != nil {
			if err == search.ErrHalted {
				return // Halt was called.
			}
			logw.Errorf(ctx, "Search failed on %v at depth=%v: %v", b, depth, err)
			return
		}

		prevScore = score
		havePrevScore = true

		pv := search.PV{
			Depth: depth,
			Nodes: nodes,
			Score: score,
			Moves: moves,
			Time:  time.Since(start),
		}
		if tt != nil {
			pv.Hash = tt.Used()
		}

		logw.Debugf(ctx, "Searched %v: %v", b.Position(), pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()
		if limit, ok := opt.DepthLimit.V(); ok && uint(depth) == limit {
			return // halt: reached max depth
		}
		if eval.IsMateScore(score) && eval.MateIn(score) <= depth {
			return // halt: forced mate found within full width search. Exact result.
		}
		if useSoft && soft < time.Since(start) {
			return // halt: exceeded soft time limit. Do not start new search.
		}
		depth++
	}
}

func (h *handle) Halt() search.PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}
