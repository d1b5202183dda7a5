package search

import (
	"context"

	"github.com/corvuschess/corvus/pkg/board"
	"github.com/corvuschess/corvus/pkg/eval"
	"github.com/corvuschess/corvus/pkg/movegen"
)

// Minimax is the classical two-player minimax reference search: White
// maximizes, Black minimizes, scores are always absolute (positive favors
// White) rather than negated per side to move. No transposition table, no
// move ordering, no pruning. Exists to check Negamax and AlphaBeta's
// scores against a search whose correctness is obvious by inspection.
type Minimax struct {
	Quiet QuietSearch
}

func (p Minimax) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	run := &runMinimax{quiet: p.Quiet, sctx: sctx, b: b}
	score, pv := run.search(ctx, depth, 0)
	if isCancelled(ctx) {
		return run.nodes, 0, nil, ErrHalted
	}
	if b.Turn() == board.Black {
		score = -score
	}
	return run.nodes, score, pv, nil
}

type runMinimax struct {
	quiet QuietSearch
	sctx  *Context
	b     *board.Board
	nodes uint64
}

// search returns the absolute (White-favoring) score and principal
// variation.
func (m *runMinimax) search(ctx context.Context, depth, ply int) (eval.Score, []board.Move) {
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
		return eval.Unit(m.b.Turn()) * sc, nil
	}
	m.nodes++

	turn := m.b.Turn()
	maximizing := turn == board.White
	list := movegen.Generate(m.b.Position(), turn)

	var best eval.Score
	if maximizing {
		best = eval.NegInf
	} else {
		best = eval.Inf
	}
	var bestPV []board.Move
	legalMoves := 0

	for i := 0; i < list.Len(); i++ {
		mv := list.Get(i)
		if !m.b.PushMove(mv) {
			continue
		}
		legalMoves++

		sc, childPV := m.search(ctx, depth-1, ply+1)
		m.b.PopMove()

		if (maximizing && sc > best) || (!maximizing && sc < best) {
			best = sc
			bestPV = append([]board.Move{mv}, childPV...)
		}
	}

	if legalMoves == 0 {
		result := m.b.AdjudicateNoLegalMoves()
		if result.Reason == board.Checkmate {
			return eval.Unit(turn) * (-eval.MateScore + eval.Score(ply)), nil
		}
		return eval.DrawScore, nil
	}

	return best, bestPV
}
