package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvuschess/corvus/pkg/board"
	"github.com/corvuschess/corvus/pkg/board/fen"
	"github.com/corvuschess/corvus/pkg/eval"
	"github.com/corvuschess/corvus/pkg/search"
)

func newBoard(t *testing.T, f string) *board.Board {
	t.Helper()
	pos, turn, halfmove, fullmoves, err := fen.Decode(f)
	require.NoError(t, err)
	return board.NewBoard(pos, turn, halfmove, fullmoves)
}

func newContext() *search.Context {
	return &search.Context{
		TT:      search.NewTranspositionTable(1 << 20),
		Killers: &search.Killers{},
		History: &search.History{},
	}
}

const startingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var equivalenceFixtures = []string{
	startingPositionFEN,
	"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
}

func TestAlgorithmEquivalenceMinimaxNegamaxAlphaBeta(t *testing.T) {
	quiet := search.Quiescence{Eval: eval.Material{}}
	mm := search.Minimax{Quiet: quiet}
	nm := search.Negamax{Quiet: quiet}
	ab := search.AlphaBeta{Quiet: quiet}

	for _, f := range equivalenceFixtures {
		for depth := 1; depth <= 3; depth++ {
			b := newBoard(t, f)

			_, mmScore, _, err := mm.Search(context.Background(), newContext(), b, depth)
			require.NoError(t, err)

			nmNodes, nmScore, _, err := nm.Search(context.Background(), newContext(), b, depth)
			require.NoError(t, err)

			abNodes, abScore, _, err := ab.Search(context.Background(), newContext(), b, depth)
			require.NoError(t, err)

			assert.Equalf(t, nmScore, mmScore, "fen=%q depth=%v: minimax/negamax disagree", f, depth)
			assert.Equalf(t, nmScore, abScore, "fen=%q depth=%v: negamax/alphabeta disagree", f, depth)
			assert.LessOrEqualf(t, abNodes, nmNodes, "fen=%q depth=%v: alphabeta visited more nodes than negamax", f, depth)
		}
	}
}

func TestBoardInvariantOverSearch(t *testing.T) {
	quiet := search.Quiescence{Eval: eval.Material{}}
	ab := search.AlphaBeta{Quiet: quiet}

	for _, f := range equivalenceFixtures {
		b := newBoard(t, f)
		before := fen.Encode(b.Position(), b.Turn(), b.Halfmove(), b.FullMoves())

		_, _, _, err := ab.Search(context.Background(), newContext(), b, 4)
		require.NoError(t, err)

		after := fen.Encode(b.Position(), b.Turn(), b.Halfmove(), b.FullMoves())
		assert.Equal(t, before, after, "fen=%q: board mutated across search", f)
	}
}

func TestQuiescenceHasNoSideEffects(t *testing.T) {
	quiet := search.Quiescence{Eval: eval.Material{}}

	for _, f := range equivalenceFixtures {
		b := newBoard(t, f)
		before := fen.Encode(b.Position(), b.Turn(), b.Halfmove(), b.FullMoves())

		quiet.QuietSearch(context.Background(), newContext(), b, eval.NegInf, eval.Inf)

		after := fen.Encode(b.Position(), b.Turn(), b.Halfmove(), b.FullMoves())
		assert.Equal(t, before, after, "fen=%q: board mutated across quiescence", f)
	}
}

func TestNullMoveRoundTripRestoresPosition(t *testing.T) {
	for _, f := range equivalenceFixtures {
		b := newBoard(t, f)
		before := fen.Encode(b.Position(), b.Turn(), b.Halfmove(), b.FullMoves())

		undo := b.PushNullMove()
		b.PopNullMove(undo)

		after := fen.Encode(b.Position(), b.Turn(), b.Halfmove(), b.FullMoves())
		assert.Equal(t, before, after, "fen=%q: null move round trip changed position", f)
	}
}

func TestPVMovesAreLegal(t *testing.T) {
	quiet := search.Quiescence{Eval: eval.Material{}}
	ab := search.AlphaBeta{Quiet: quiet}

	b := newBoard(t, startingPositionFEN)
	_, _, pv, err := ab.Search(context.Background(), newContext(), b, 3)
	require.NoError(t, err)
	require.NotEmpty(t, pv)

	for _, m := range pv {
		require.True(t, b.PushMove(m), "pv move %v illegal at this point", m)
	}
	for range pv {
		b.PopMove()
	}
}
