package board_test

import (
	"testing"

	"github.com/corvuschess/corvus/pkg/board"
	"github.com/corvuschess/corvus/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoUndoMoveIdentity(t *testing.T) {
	pos, turn, halfmove, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	before := fen.Encode(pos, turn, halfmove, 1)
	beforeHash := pos.Hash()

	m := board.NewMove(board.NewSquare(4, 1), board.NewSquare(4, 3), board.NoPiece, board.FlagDoublePawnPush)
	undo, newHalfmove := pos.DoMove(turn, m, halfmove)
	assert.NotEqual(t, beforeHash, pos.Hash())

	pos.UndoMove(turn, m, undo)
	assert.Equal(t, before, fen.Encode(pos, turn, halfmove, 1))
	assert.Equal(t, beforeHash, pos.Hash())
	_ = newHalfmove
}

func TestIncrementalHashMatchesRecompute(t *testing.T) {
	pos, turn, halfmove, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	m := board.NewMove(board.NewSquare(4, 1), board.NewSquare(4, 3), board.NoPiece, board.FlagDoublePawnPush)
	_, halfmove = pos.DoMove(turn, m, halfmove)
	turn = turn.Opponent()

	recomputed, _, _, _, err := fen.Decode(fen.Encode(pos, turn, halfmove, 1))
	require.NoError(t, err)
	assert.Equal(t, recomputed.Hash(), pos.Hash())
}

func TestEnPassantOnlyRecordedWhenCapturable(t *testing.T) {
	// White pawn double-pushes to d4 with no black pawn adjacent on rank 4: no EP target.
	pos, turn, halfmove, _, err := fen.Decode("4k3/8/8/8/8/8/3P4/4K3 w - - 0 1")
	require.NoError(t, err)

	m := board.NewMove(board.NewSquare(3, 1), board.NewSquare(3, 3), board.NoPiece, board.FlagDoublePawnPush)
	pos.DoMove(turn, m, halfmove)

	_, hasEP := pos.EnPassant()
	assert.False(t, hasEP)
}

func TestEnPassantRecordedWhenCapturable(t *testing.T) {
	pos, turn, halfmove, _, err := fen.Decode("4k3/8/8/8/4p3/8/3P4/4K3 w - - 0 1")
	require.NoError(t, err)

	m := board.NewMove(board.NewSquare(3, 1), board.NewSquare(3, 3), board.NoPiece, board.FlagDoublePawnPush)
	pos.DoMove(turn, m, halfmove)

	sq, hasEP := pos.EnPassant()
	require.True(t, hasEP)
	assert.Equal(t, board.NewSquare(3, 2), sq)
}

func TestIsCheckedAndAttackersTo(t *testing.T) {
	pos, _, _, _, err := fen.Decode("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)
	assert.False(t, pos.IsChecked(board.Black))

	pos, _, _, _, err = fen.Decode("4k3/8/8/8/8/8/8/4R3 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, pos.IsChecked(board.Black))
}

func TestInsufficientMaterial(t *testing.T) {
	pos, _, _, _, err := fen.Decode("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, board.HasInsufficientMaterial(pos))

	pos, _, _, _, err = fen.Decode("4k3/8/8/8/8/8/8/4KQ2 w - - 0 1")
	require.NoError(t, err)
	assert.False(t, board.HasInsufficientMaterial(pos))
}
