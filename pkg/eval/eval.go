// Package eval contains static position evaluators.
package eval

import (
	"context"

	"github.com/corvuschess/corvus/pkg/board"
)

// Evaluator statically scores a position from White's perspective.
type Evaluator interface {
	Evaluate(ctx context.Context, b *board.Board) Score
}

// Material is the nominal material balance for White minus Black.
type Material struct{}

func (Material) Evaluate(_ context.Context, b *board.Board) Score {
	pos := b.Position()

	var s Score
	for p := board.Pawn; p <= board.King; p++ {
		diff := pos.Pieces(board.White, p).PopCount() - pos.Pieces(board.Black, p).PopCount()
		s += Score(diff) * NominalValue(p)
	}
	return s
}

// NominalValue is the absolute centipawn value of a piece type. The King's
// value is never added into a real alpha-beta window (mate is detected
// separately) but a finite value keeps Material well-defined for the
// king-only-material edge case insufficient-material adjudication doesn't
// already rule out.
func NominalValue(p board.Piece) Score {
	switch p {
	case board.Pawn:
		return 100
	case board.Knight, board.Bishop:
		return 320
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	case board.King:
		return 20000
	default:
		return 0
	}
}

// CaptureGain is the nominal material a move immediately wins, ignoring
// recapture (a cheap first-order move-ordering signal; pkg/movegen.SEE
// gives the exchange-complete figure).
func CaptureGain(m board.Move) Score {
	gain := NominalValue(m.Capture())
	if m.IsEnPassant() {
		gain = NominalValue(board.Pawn)
	}
	if m.IsPromotion() {
		gain += NominalValue(m.Promotion()) - NominalValue(board.Pawn)
	}
	return gain
}
