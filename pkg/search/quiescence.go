package search

import (
	"context"

	"github.com/corvuschess/corvus/pkg/board"
	"github.com/corvuschess/corvus/pkg/eval"
	"github.com/corvuschess/corvus/pkg/movegen"
)

// Quiescence extends search to a quiet position by only considering
// captures and promotions, avoiding the horizon effect: a fixed-depth
// search that stops mid-capture-sequence badly misjudges material.
type Quiescence struct {
	Eval eval.Evaluator
}

func (q Quiescence) QuietSearch(ctx context.Context, sctx *Context, b *board.Board, alpha, beta eval.Score) (uint64, eval.Score) {
	run := &runQuiescence{eval: q.Eval, noise: sctx.Noise, b: b}
	score := run.search(ctx, alpha, beta)
	return run.nodes, score
}

type runQuiescence struct {
	eval  eval.Evaluator
	noise eval.Random
	b     *board.Board
	nodes uint64
}

func (r *runQuiescence) search(ctx context.Context, alpha, beta eval.Score) eval.Score {
	if isCancelled(ctx) {
		return eval.DrawScore
	}
	if r.b.Result().Outcome == board.Draw {
		return eval.DrawScore
	}
	r.nodes++

	turn := r.b.Turn()
	standPat := eval.Unit(turn)*r.eval.Evaluate(ctx, r.b) + r.noise.Evaluate(ctx, r.b)
	if standPat >= beta {
		return beta
	}
	alpha = eval.Max(alpha, standPat)

	list := movegen.GenerateLoud(r.b.Position(), turn)
	for i := 0; i < list.Len(); i++ {
		m := list.SortNext(i)

		// SEE-prune losing captures: a capture that loses material even
		// after best recapture cannot improve on standing pat.
		if m.IsCapture() && !m.IsPromotion() && movegen.SEE(r.b.Position(), m) < 0 {
			continue
		}
		if !r.b.PushMove(m) {
			continue
		}

		score := -r.search(ctx, -beta, -alpha)
		r.b.PopMove()

		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			return beta
		}
	}

	return alpha
}
