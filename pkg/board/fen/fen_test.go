package fen_test

import (
	"testing"

	"github.com/corvuschess/corvus/pkg/board"
	"github.com/corvuschess/corvus/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialPosition(t *testing.T) {
	pos, active, halfmove, fullmoves, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	assert.Equal(t, board.White, active)
	assert.Equal(t, 0, halfmove)
	assert.Equal(t, 1, fullmoves)

	color, piece, ok := pos.Square(board.A1)
	require.True(t, ok)
	assert.Equal(t, board.White, color)
	assert.Equal(t, board.Rook, piece)

	color, piece, ok = pos.Square(board.A8)
	require.True(t, ok)
	assert.Equal(t, board.Black, color)
	assert.Equal(t, board.Rook, piece)

	assert.Equal(t, board.FullCastingRights, pos.Castling())
	_, hasEP := pos.EnPassant()
	assert.False(t, hasEP)
}

func TestRoundTrip(t *testing.T) {
	fens := []string{
		fen.Initial,
		"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
		"rnbq1rk1/ppp2ppp/4pn2/3p4/1bPP4/2N1PN2/PP3PPP/R1BQKB1R w KQ - 2 7",
		"8/8/8/4k3/8/8/4K3/8 w - - 0 1",
		"4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1",
	}

	for _, f := range fens {
		pos, active, halfmove, fullmoves, err := fen.Decode(f)
		require.NoError(t, err, f)

		got := fen.Encode(pos, active, halfmove, fullmoves)
		assert.Equal(t, f, got)
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, _, _, _, err := fen.Decode("not a fen")
	assert.Error(t, err)

	_, _, _, _, err = fen.Decode("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1")
	assert.Error(t, err)
}
