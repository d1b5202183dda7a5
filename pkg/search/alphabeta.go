package search

import (
	"context"

	"github.com/corvuschess/corvus/pkg/board"
	"github.com/corvuschess/corvus/pkg/eval"
	"github.com/corvuschess/corvus/pkg/movegen"
)

// nullMoveReduction is the depth reduction applied to the verification
// search after a null move (skip-a-turn): if the opponent still can't
// improve past beta even with a free move, the position is almost
// certainly not worth searching further.
const nullMoveReduction = 2

// lmrMinDepth and lmrMinMoveIndex gate late-move reductions: only quiet
// moves searched after the first few, at high enough remaining depth, are
// worth the risk of a reduced-depth re-search.
const (
	lmrMinDepth     = 3
	lmrMinMoveIndex = 3
	lmrReduction    = 1
)

// AlphaBeta implements fail-soft alpha-beta with mate-distance pruning,
// null-move pruning, late-move reductions, and a principal-variation
// search re-search on top. It consults and maintains the shared
// transposition table, killer table, and history table in sctx.
type AlphaBeta struct {
	Quiet QuietSearch
}

func (p AlphaBeta) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	run := &runAlphaBeta{quiet: p.Quiet, sctx: sctx, b: b}
	alpha, beta := sctx.Alpha, sctx.Beta
	if alpha == 0 && beta == 0 {
		alpha, beta = eval.NegInf, eval.Inf
	}
	score := run.search(ctx, depth, 0, alpha, beta, true)
	if isCancelled(ctx) {
		return run.nodes, 0, nil, ErrHalted
	}
	return run.nodes, score, run.pv.root(depth), nil
}

type runAlphaBeta struct {
	quiet QuietSearch
	sctx  *Context
	b     *board.Board
	nodes uint64

	pv triangularPV
}

// ttStoreScore converts a root-relative mate score into the node-relative
// form the transposition table stores, so a mate score written at one ply
// still decodes to the correct mate distance when probed from another.
func ttStoreScore(score eval.Score, ply int) eval.Score {
	switch {
	case !eval.IsMateScore(score):
		return score
	case score > 0:
		return score + eval.Score(ply)
	default:
		return score - eval.Score(ply)
	}
}

// ttProbeScore is ttStoreScore's inverse.
func ttProbeScore(score eval.Score, ply int) eval.Score {
	switch {
	case !eval.IsMateScore(score):
		return score
	case score > 0:
		return score - eval.Score(ply)
	default:
		return score + eval.Score(ply)
	}
}

// search returns the score from the side-to-move's perspective (negamax
// convention: search(child) is negated by the caller).
func (m *runAlphaBeta) search(ctx context.Context, depth, ply int, alpha, beta eval.Score, allowNull bool) eval.Score {
	m.pv.clear(ply)

	if isCancelled(ctx) {
		return eval.DrawScore
	}
	if ply > 0 && m.b.Result().Outcome == board.Draw {
		return eval.DrawScore
	}
	if ply > 0 && m.b.IsRepetition(true) {
		return eval.DrawScore
	}

	// Mate-distance pruning: a mate found shallower than the current
	// window bounds can't be beaten or missed by searching deeper.
	alpha = eval.Max(alpha, -eval.MateScore+eval.Score(ply))
	beta = eval.Min(beta, eval.MateScore-eval.Score(ply))
	if alpha >= beta {
		return alpha
	}

	turn := m.b.Turn()
	hash := m.b.Hash()

	var hashMove board.Move
	if bound, d, sc, mv, ok := m.sctx.TT.Read(hash); ok {
		hashMove = mv
		sc = ttProbeScore(sc, ply)
		if d >= depth {
			switch bound {
			case ExactBound:
				return sc
			case LowerBound:
				alpha = eval.Max(alpha, sc)
			case UpperBound:
				beta = eval.Min(beta, sc)
			}
			if alpha >= beta {
				return sc
			}
		}
	}

	if depth <= 0 {
		nodes, sc := m.quiet.QuietSearch(ctx, m.sctx, m.b, alpha, beta)
		m.nodes += nodes
		return sc
	}
	m.nodes++

	checked := m.b.Position().IsChecked(turn)

	// Null-move pruning: skip castling rights/en-passant reasoning (those
	// can only make the null move look worse than it is, never better) and
	// verify with a reduced-depth search that the opponent, given a free
	// tempo, still can't reach beta. Disabled in check and near the
	// horizon, where zugzwang risk and shallow verification both bite.
	if allowNull && !checked && depth > nullMoveReduction && !isPawnEndgame(m.b, turn) {
		undo := m.b.PushNullMove()
		sc := -m.search(ctx, depth-1-nullMoveReduction, ply+1, -beta, -beta+1, false)
		m.b.PopNullMove(undo)
		if sc >= beta {
			return beta
		}
	}

	list := movegen.Generate(m.b.Position(), turn)
	score(list, hashMove, turn, m.sctx.Killers, m.sctx.History, ply)

	best := eval.NegInf
	bound := UpperBound
	var bestMove board.Move
	legalMoves := 0

	for i := 0; i < list.Len(); i++ {
		mv := list.SortNext(i)
		if ply == 0 && !m.sctx.allowedAtRoot(mv) {
			continue
		}
		if !m.b.PushMove(mv) {
			continue
		}
		legalMoves++

		reduction := 0
		if legalMoves > lmrMinMoveIndex && depth >= lmrMinDepth && mv.IsQuiet() && !checked {
			reduction = lmrReduction
		}

		var sc eval.Score
		if legalMoves == 1 {
			sc = -m.search(ctx, depth-1, ply+1, -beta, -alpha, true)
		} else {
			// Null-window search first (PVS): cheap confirmation that mv
			// doesn't beat the best move found so far.
			sc = -m.search(ctx, depth-1-reduction, ply+1, -alpha-1, -alpha, true)
			if sc > alpha && sc < beta {
				sc = -m.search(ctx, depth-1, ply+1, -beta, -alpha, true)
			} else if reduction > 0 && sc > alpha {
				// The reduced search beat alpha: re-verify at full depth.
				sc = -m.search(ctx, depth-1, ply+1, -alpha-1, -alpha, true)
				if sc > alpha && sc < beta {
					sc = -m.search(ctx, depth-1, ply+1, -beta, -alpha, true)
				}
			}
		}

		m.b.PopMove()

		if sc > best {
			best = sc
			bestMove = mv
			m.pv.update(ply, mv)
		}
		if sc > alpha {
			alpha = sc
			bound = ExactBound
		}
		if alpha >= beta {
			bound = LowerBound
			if mv.IsQuiet() {
				m.sctx.Killers.Add(ply, mv)
				m.sctx.History.Add(turn, mv, depth)
			}
			break
		}
	}

	if legalMoves == 0 && !(ply == 0 && len(m.sctx.Ponder) > 0) {
		result := m.b.AdjudicateNoLegalMoves()
		if result.Reason == board.Checkmate {
			return -eval.MateScore + eval.Score(ply)
		}
		return eval.DrawScore
	}

	m.sctx.TT.Write(hash, bound, depth, ttStoreScore(best, ply), bestMove)
	return best
}

func isPawnEndgame(b *board.Board, turn board.Color) bool {
	pos := b.Position()
	return pos.Pieces(turn, board.Knight) == 0 && pos.Pieces(turn, board.Bishop) == 0 &&
		pos.Pieces(turn, board.Rook) == 0 && pos.Pieces(turn, board.Queen) == 0
}
