package board_test

import (
	"testing"

	"github.com/corvuschess/corvus/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestBitboardBasics(t *testing.T) {
	var b board.Bitboard
	assert.Equal(t, 0, b.PopCount())

	b = b.Set(board.A1).Set(board.H8)
	assert.Equal(t, 2, b.PopCount())
	assert.True(t, b.IsSet(board.A1))
	assert.True(t, b.IsSet(board.H8))
	assert.False(t, b.IsSet(board.NewSquare(4, 4)))

	b = b.Clear(board.A1)
	assert.False(t, b.IsSet(board.A1))
}

func TestPopLSB(t *testing.T) {
	b := board.BitMask(board.A1) | board.BitMask(board.NewSquare(3, 3)) | board.BitMask(board.H8)
	var got []board.Square
	for b != 0 {
		got = append(got, b.PopLSB())
	}
	assert.Equal(t, []board.Square{board.A1, board.NewSquare(3, 3), board.H8}, got)
}

func TestKnightAndKingAttacks(t *testing.T) {
	// A knight in the corner has exactly 2 moves.
	assert.Equal(t, 2, board.KnightAttacksFrom(board.A1).PopCount())
	// A king in the corner has exactly 3 moves.
	assert.Equal(t, 3, board.KingAttacksFrom(board.A1).PopCount())
	// A knight in the center has 8 moves.
	assert.Equal(t, 8, board.KnightAttacksFrom(board.NewSquare(4, 4)).PopCount())
}

func TestPawnAttacksFrom(t *testing.T) {
	sq := board.NewSquare(4, 3) // e4
	white := board.PawnAttacksFrom(board.White, sq)
	assert.Equal(t, 2, white.PopCount())
	assert.True(t, white.IsSet(board.NewSquare(3, 4)))
	assert.True(t, white.IsSet(board.NewSquare(5, 4)))

	black := board.PawnAttacksFrom(board.Black, sq)
	assert.True(t, black.IsSet(board.NewSquare(3, 2)))
	assert.True(t, black.IsSet(board.NewSquare(5, 2)))
}

func TestRookAttacksOpenBoard(t *testing.T) {
	attacks := board.RookAttacks(board.EmptyBitboard, board.A1)
	assert.Equal(t, 14, attacks.PopCount())
}

func TestBishopAttacksOpenBoard(t *testing.T) {
	attacks := board.BishopAttacks(board.EmptyBitboard, board.NewSquare(3, 3))
	assert.Equal(t, 13, attacks.PopCount())
}

func TestRookAttacksBlocked(t *testing.T) {
	occ := board.BitMask(board.NewSquare(0, 3)) // a4 blocks rook on a1 going north
	attacks := board.RookAttacks(occ, board.A1)
	assert.True(t, attacks.IsSet(board.NewSquare(0, 3)))
	assert.False(t, attacks.IsSet(board.NewSquare(0, 4)))
}

func TestSquaresBetween(t *testing.T) {
	between := board.SquaresBetween(board.A1, board.NewSquare(0, 3))
	assert.Equal(t, 2, between.PopCount())
	assert.True(t, between.IsSet(board.NewSquare(0, 1)))
	assert.True(t, between.IsSet(board.NewSquare(0, 2)))

	assert.Equal(t, board.EmptyBitboard, board.SquaresBetween(board.A1, board.NewSquare(3, 4)))
}
