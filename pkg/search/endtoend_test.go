package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvuschess/corvus/pkg/board"
	"github.com/corvuschess/corvus/pkg/eval"
	"github.com/corvuschess/corvus/pkg/movegen"
	"github.com/corvuschess/corvus/pkg/search"
)

func newEngine() search.Search {
	return search.AlphaBeta{Quiet: search.Quiescence{Eval: eval.Material{}}}
}

func TestMateInTwoWhite(t *testing.T) {
	ab := newEngine()
	b := newBoard(t, "4r1rk/5K1b/7R/R7/8/8/8/8 w - - 0 1")

	_, score, pv, err := ab.Search(context.Background(), newContext(), b, 4)
	require.NoError(t, err)
	require.NotEmpty(t, pv)

	want, err := movegen.ParseMove(b.Position(), b.Turn(), "h6h7")
	require.NoError(t, err)
	assert.Equal(t, want, pv[0])
	assert.True(t, eval.IsMateScore(score), "expected a mate score, got %v", score)
}

func TestMateInTwoBlack(t *testing.T) {
	ab := newEngine()
	b := newBoard(t, "8/8/8/8/1b6/1k6/8/KBB5 b - - 0 1")

	_, score, pv, err := ab.Search(context.Background(), newContext(), b, 4)
	require.NoError(t, err)
	require.NotEmpty(t, pv)

	want, err := movegen.ParseMove(b.Position(), b.Turn(), "b4c3")
	require.NoError(t, err)
	assert.Equal(t, want, pv[0])
	assert.True(t, eval.IsMateScore(score), "expected a mate score, got %v", score)
}

func TestMateInThree(t *testing.T) {
	ab := newEngine()
	b := newBoard(t, "1rb5/1p2k2r/p5n1/2p1pp2/2B5/6P1/PPPB1PP1/2KR4 w - - 1 0")

	_, score, pv, err := ab.Search(context.Background(), newContext(), b, 6)
	require.NoError(t, err)
	require.NotEmpty(t, pv)

	want, err := movegen.ParseMove(b.Position(), b.Turn(), "d2g5")
	require.NoError(t, err)
	assert.Equal(t, want, pv[0])
	assert.True(t, eval.IsMateScore(score), "expected a mate score, got %v", score)
}

func TestBackRankMateInOne(t *testing.T) {
	ab := newEngine()
	b := newBoard(t, "6k1/5ppp/8/8/8/8/8/3RK3 w - - 0 1")

	_, score, pv, err := ab.Search(context.Background(), newContext(), b, 4)
	require.NoError(t, err)
	require.NotEmpty(t, pv)

	assert.GreaterOrEqual(t, int(score), int(eval.MateScore)-10)
}

func TestRepetitionDrawnOnThirdOccurrence(t *testing.T) {
	b := newBoard(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")

	moves := []string{"e1e2", "e8e7", "e2e1", "e7e8", "e1e2", "e8e7", "e2e1", "e7e8"}
	for i, ms := range moves {
		m, err := movegen.ParseMove(b.Position(), b.Turn(), ms)
		require.NoError(t, err)
		require.True(t, b.PushMove(m))

		if i == len(moves)-1 {
			assert.Equal(t, board.Draw, b.Result().Outcome, "expected a repetition draw after move %d (%v)", i, ms)
			assert.Equal(t, board.Repetition, b.Result().Reason)
		}
	}

	assert.True(t, b.IsRepetition(true), "position should read as a twofold repetition inside search")
}
