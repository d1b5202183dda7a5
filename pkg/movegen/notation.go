package movegen

import (
	"fmt"

	"github.com/corvuschess/corvus/pkg/board"
)

// ParseMove parses long algebraic notation ("e2e4", "e7e8q") against pos's
// pseudo-legal moves for turn, recovering the capture/castle/en-passant
// flags that bare square notation can't carry on its own.
func ParseMove(pos *board.Position, turn board.Color, s string) (board.Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return board.NoMove, fmt.Errorf("invalid move: %q", s)
	}

	from, err := board.ParseSquareStr(s[0:2])
	if err != nil {
		return board.NoMove, fmt.Errorf("invalid move %q: %w", s, err)
	}
	to, err := board.ParseSquareStr(s[2:4])
	if err != nil {
		return board.NoMove, fmt.Errorf("invalid move %q: %w", s, err)
	}

	var promotion board.Piece
	if len(s) == 5 {
		p, ok := parsePromotionLetter(s[4])
		if !ok {
			return board.NoMove, fmt.Errorf("invalid move %q: bad promotion piece", s)
		}
		promotion = p
	}

	list := Generate(pos, turn)
	for i := 0; i < list.Len(); i++ {
		m := list.Get(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() && m.Promotion() != promotion {
			continue
		}
		if !m.IsPromotion() && promotion != board.NoPiece {
			continue
		}
		return m, nil
	}
	return board.NoMove, fmt.Errorf("move not found: %q", s)
}

func parsePromotionLetter(r byte) (board.Piece, bool) {
	switch r {
	case 'q', 'Q':
		return board.Queen, true
	case 'r', 'R':
		return board.Rook, true
	case 'b', 'B':
		return board.Bishop, true
	case 'n', 'N':
		return board.Knight, true
	default:
		return board.NoPiece, false
	}
}
