package board

import "strings"

// Move is a move packed into a single 32-bit word:
//
//	bits  0- 5: from square
//	bits  6-11: to square
//	bits 12-15: captured piece (colorless), NoPiece if none
//	bits 16-23: flags (promotion piece in bits 16-19, special-move bits in 20-23)
//	bits 24-31: ordering score, a mutable scratch field written by the move
//	            orderer and excluded from move equality
//
// Only the lower 24 bits participate in equality, so a move looked up in
// the transposition table or principal variation compares equal to the
// freshly generated move regardless of what score it was last annotated
// with.
type Move uint32

const (
	moveFromShift    = 0
	moveToShift      = 6
	moveCaptureShift = 12
	moveFlagsShift   = 16
	moveScoreShift   = 24

	squareFieldMask  = 0x3F
	captureFieldMask = 0xF
	flagsFieldMask   = 0xFF
	scoreFieldMask   = 0xFF

	moveIdentityMask = 0x00FFFFFF // from/to/capture/flags, excludes score
)

// Flag bits within the 8-bit flags field. The low nibble holds the
// promotion piece (0 = none); the high nibble holds single-bit special
// move markers.
const (
	flagPromotionMask Move = 0x0F

	FlagDoublePawnPush  Move = 1 << 4
	FlagEnPassant       Move = 1 << 5
	FlagKingSideCastle  Move = 1 << 6
	FlagQueenSideCastle Move = 1 << 7
)

// NoMove is the zero value: from==to==a1, which is never a legal move, so
// it is safe to use as a sentinel for "no move" (empty TT slot, no killer).
const NoMove Move = 0

// NewMove builds a move from its from/to squares, the captured piece (if
// any), and flag bits (promotion piece ORed with special-move flags).
func NewMove(from, to Square, capture Piece, flags Move) Move {
	return Move(from)<<moveFromShift |
		Move(to)<<moveToShift |
		Move(capture)<<moveCaptureShift |
		(flags&flagsFieldMask)<<moveFlagsShift
}

func (m Move) From() Square {
	return Square((m >> moveFromShift) & squareFieldMask)
}

func (m Move) To() Square {
	return Square((m >> moveToShift) & squareFieldMask)
}

func (m Move) Capture() Piece {
	return Piece((m >> moveCaptureShift) & captureFieldMask)
}

func (m Move) IsCapture() bool {
	return m.Capture() != NoPiece || m.IsEnPassant()
}

func (m Move) Flags() Move {
	return (m >> moveFlagsShift) & flagsFieldMask
}

func (m Move) Promotion() Piece {
	return Piece(m.Flags() & flagPromotionMask)
}

func (m Move) IsPromotion() bool {
	return m.Promotion() != NoPiece
}

func (m Move) IsDoublePawnPush() bool {
	return m.Flags()&FlagDoublePawnPush != 0
}

func (m Move) IsEnPassant() bool {
	return m.Flags()&FlagEnPassant != 0
}

func (m Move) IsKingSideCastle() bool {
	return m.Flags()&FlagKingSideCastle != 0
}

func (m Move) IsQueenSideCastle() bool {
	return m.Flags()&FlagQueenSideCastle != 0
}

func (m Move) IsCastle() bool {
	return m.IsKingSideCastle() || m.IsQueenSideCastle()
}

// IsQuiet reports whether the move is neither a capture nor a promotion,
// the set of moves considered for killer/history ordering.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// Score returns the mutable ordering score annotation.
func (m Move) Score() uint8 {
	return uint8((m >> moveScoreShift) & scoreFieldMask)
}

// WithScore returns a copy of the move annotated with the given ordering
// score. The identity bits (used for equality and TT/PV matching) are
// unaffected.
func (m Move) WithScore(score uint8) Move {
	return (m &^ (Move(scoreFieldMask) << moveScoreShift)) | Move(score)<<moveScoreShift
}

// WithPromotion returns a copy of the move with the promotion piece set.
func (m Move) WithPromotion(p Piece) Move {
	return (m &^ (flagPromotionMask << moveFlagsShift)) | Move(p)<<moveFlagsShift
}

// Equals compares moves ignoring the ordering-score annotation.
func (m Move) Equals(o Move) bool {
	return m&moveIdentityMask == o&moveIdentityMask
}

// String renders coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	var sb strings.Builder
	sb.WriteString(m.From().String())
	sb.WriteString(m.To().String())
	if m.IsPromotion() {
		sb.WriteString(m.Promotion().String())
	}
	return sb.String()
}
