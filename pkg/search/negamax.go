package search

import (
	"context"

	"github.com/corvuschess/corvus/pkg/board"
	"github.com/corvuschess/corvus/pkg/eval"
	"github.com/corvuschess/corvus/pkg/movegen"
)

// Negamax is the negamax reformulation of Minimax: every recursive call
// returns the score from the side-to-move's perspective, so the caller
// only ever negates and maximizes, never branching on whose turn it is.
// Same exhaustive, unordered, unpruned search as Minimax; same scores.
type Negamax struct {
	Quiet QuietSearch
}

func (p Negamax) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	run := &runNegamax{quiet: p.Quiet, sctx: sctx, b: b}
	score, pv := run.search(ctx, depth, 0)
	if isCancelled(ctx) {
		return run.nodes, 0, nil, ErrHalted
	}
	return run.nodes, score, pv, nil
}

type runNegamax struct {
	quiet QuietSearch
	sctx  *Context
	b     *board.Board
	nodes uint64
}

func (m *runNegamax) search(ctx context.Context, depth, ply int) (eval.Score, []board.Move) {
	if isCancelled(ctx) {
		return eval.DrawScore, nil
	}
	if ply > 0 && m.b.Result().Outcome == board.Draw {
		return eval.DrawScore, nil
	}
	if ply > 0 && m.b.IsRepetition(true) {
		return eval.DrawScore, nil
	}
	if depth <= 0 {
		nodes, sc := m.quiet.QuietSearch(ctx, m.sctx, m.b, eval.NegInf, eval.Inf)
		m.nodes += nodes
		return sc, nil
	}
	m.nodes++

	turn := m.b.Turn()
	list := movegen.Generate(m.b.Position(), turn)

	best := eval.NegInf
	var bestPV []board.Move
	legalMoves := 0

	for i := 0; i < list.Len(); i++ {
		mv := list.Get(i)
		if !m.b.PushMove(mv) {
			continue
		}
		legalMoves++

		sc, childPV := m.search(ctx, depth-1, ply+1)
		sc = -sc
		m.b.PopMove()

		if sc > best {
			best = sc
			bestPV = append([]board.Move{mv}, childPV...)
		}
	}

	if legalMoves == 0 {
		result := m.b.AdjudicateNoLegalMoves()
		if result.Reason == board.Checkmate {
			return -eval.MateScore + eval.Score(ply), nil
		}
		return eval.DrawScore, nil
	}

	return best, bestPV
}
