package board_test

import (
	"testing"

	"github.com/corvuschess/corvus/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestSquare(t *testing.T) {
	assert.Equal(t, board.A1, board.NewSquare(board.ZeroFile, board.ZeroRank))
	assert.Equal(t, board.H1, board.NewSquare(7, board.ZeroRank))
	assert.Equal(t, board.A8, board.NewSquare(board.ZeroFile, 7))
	assert.Equal(t, board.H8, board.NewSquare(7, 7))

	assert.True(t, board.A1.IsValid())
	assert.True(t, board.H8.IsValid())
	assert.False(t, board.Square(64).IsValid())

	assert.Equal(t, "a1", board.A1.String())
	assert.Equal(t, "h1", board.H1.String())
	assert.Equal(t, "a8", board.A8.String())
	assert.Equal(t, "h8", board.H8.String())
	assert.Equal(t, "e4", board.NewSquare(4, 3).String())
}

func TestParseSquareStr(t *testing.T) {
	sq, err := board.ParseSquareStr("e4")
	assert.NoError(t, err)
	assert.Equal(t, board.NewSquare(4, 3), sq)

	_, err = board.ParseSquareStr("i9")
	assert.Error(t, err)

	_, err = board.ParseSquareStr("e")
	assert.Error(t, err)
}

func TestFileRank(t *testing.T) {
	sq := board.NewSquare(2, 5)
	assert.Equal(t, board.File(2), sq.File())
	assert.Equal(t, board.Rank(5), sq.Rank())
}
