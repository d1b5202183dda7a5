package movegen_test

import (
	"testing"

	"github.com/corvuschess/corvus/pkg/board"
	"github.com/corvuschess/corvus/pkg/board/fen"
	"github.com/corvuschess/corvus/pkg/eval"
	"github.com/corvuschess/corvus/pkg/movegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// perft counts the number of leaf positions reachable from b at the given
// depth, descending through every pseudo-legal move and rejecting those
// PushMove finds illegal.
func perft(b *board.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	list := movegen.Generate(b.Position(), b.Turn())
	var nodes uint64
	for i := 0; i < list.Len(); i++ {
		m := list.Get(i)
		if !b.PushMove(m) {
			continue
		}
		nodes += perft(b, depth-1)
		b.PopMove()
	}
	return nodes
}

func newBoard(t *testing.T, f string) *board.Board {
	t.Helper()
	pos, turn, halfmove, fullmoves, err := fen.Decode(f)
	require.NoError(t, err)
	return board.NewBoard(pos, turn, halfmove, fullmoves)
}

func TestPerftStartingPosition(t *testing.T) {
	b := newBoard(t, fen.Initial)
	assert.Equal(t, uint64(20), perft(b, 1))
	assert.Equal(t, uint64(400), perft(b, 2))
	assert.Equal(t, uint64(8902), perft(b, 3))
	assert.Equal(t, uint64(197281), perft(b, 4))
}

func TestPerftKiwipete(t *testing.T) {
	b := newBoard(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	assert.Equal(t, uint64(48), perft(b, 1))
	assert.Equal(t, uint64(2039), perft(b, 2))
	assert.Equal(t, uint64(97862), perft(b, 3))
}

func TestPerftPosition3(t *testing.T) {
	b := newBoard(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	assert.Equal(t, uint64(14), perft(b, 1))
	assert.Equal(t, uint64(191), perft(b, 2))
	assert.Equal(t, uint64(2812), perft(b, 3))
}

func TestPerftPosition4(t *testing.T) {
	b := newBoard(t, "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1")
	assert.Equal(t, uint64(6), perft(b, 1))
	assert.Equal(t, uint64(264), perft(b, 2))
	assert.Equal(t, uint64(9467), perft(b, 3))
}

func TestPerftPosition5(t *testing.T) {
	b := newBoard(t, "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8")
	assert.Equal(t, uint64(44), perft(b, 1))
	assert.Equal(t, uint64(1486), perft(b, 2))
	assert.Equal(t, uint64(62379), perft(b, 3))
}

func TestGenerateLoudOnlyCapturesAndPromotions(t *testing.T) {
	b := newBoard(t, "4k3/P7/8/8/8/8/4p3/4K3 w - - 0 1")
	loud := movegen.GenerateLoud(b.Position(), b.Turn())
	for i := 0; i < loud.Len(); i++ {
		m := loud.Get(i)
		assert.True(t, m.IsCapture() || m.IsPromotion(), m.String())
	}
	assert.Greater(t, loud.Len(), 0)
}

func TestSEEWinningCapture(t *testing.T) {
	// White rook takes a defenseless pawn on d5.
	pos, _, _, _, err := fen.Decode("4k3/8/8/3p4/8/8/8/3RK3 w - - 0 1")
	require.NoError(t, err)

	m := board.NewMove(board.NewSquare(3, 0), board.NewSquare(3, 4), board.Pawn, 0)
	assert.Equal(t, 100, movegen.SEE(pos, m))
}

func TestSEELosingCapture(t *testing.T) {
	// White rook takes a pawn defended by a black rook: loses the exchange.
	pos, _, _, _, err := fen.Decode("3rk3/8/8/3p4/8/8/8/3RK3 w - - 0 1")
	require.NoError(t, err)

	m := board.NewMove(board.NewSquare(3, 0), board.NewSquare(3, 4), board.Pawn, 0)
	assert.Equal(t, 100-500, movegen.SEE(pos, m))
}

func TestAttackersOrderedByValue(t *testing.T) {
	// Bishop on a2 (diagonal) and rook on d1 (file) both bear on d5; the
	// cheaper bishop must sort first.
	pos, _, _, _, err := fen.Decode("3rk3/8/8/3p4/8/8/B7/3RK3 w - - 0 1")
	require.NoError(t, err)

	sq := board.NewSquare(3, 4)
	attackers := movegen.Attackers(pos, board.White, pos.AttackersTo(sq, pos.All()))
	require.Len(t, attackers, 2)
	assert.Equal(t, board.NewSquare(0, 1), attackers[0]) // a2 bishop, cheaper
	assert.Equal(t, board.NewSquare(3, 0), attackers[1]) // d1 rook
}

func TestSEERookTradeBehindQueenRecoups(t *testing.T) {
	// White rook takes a pawn defended by a black rook; a white queen stacked
	// behind the rook on the same file recaptures, so the exchange nets a
	// pawn rather than losing the rook outright.
	pos, _, _, _, err := fen.Decode("3rk3/8/8/3p4/8/8/3Q4/3RK3 w - - 0 1")
	require.NoError(t, err)
	m := board.NewMove(board.NewSquare(3, 0), board.NewSquare(3, 4), board.Pawn, 0)
	assert.Equal(t, 100, movegen.SEE(pos, m))
}

func TestSEERxe5IsUndefendedPawnWin(t *testing.T) {
	// Rxe5 wins a bare pawn with no recapture available on e5.
	pos, _, _, _, err := fen.Decode("1k1r4/1pp4p/p7/4p3/8/P5P1/1PP4P/2K1R3 w - - 0 1")
	require.NoError(t, err)
	m := board.NewMove(board.NewSquare(4, 0), board.NewSquare(4, 4), board.Pawn, 0)
	assert.Equal(t, int(eval.NominalValue(board.Pawn)), movegen.SEE(pos, m))
}
