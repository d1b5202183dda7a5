package board

import "strings"

// Piece is a colorless piece type. 3 bits.
type Piece uint8

const (
	NoPiece Piece = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (p Piece) IsValid() bool {
	return Pawn <= p && p <= King
}

func (p Piece) String() string {
	switch p {
	case NoPiece:
		return " "
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return "?"
	}
}

func ParsePiece(r rune) (Piece, bool) {
	switch r {
	case 'p', 'P':
		return Pawn, true
	case 'n', 'N':
		return Knight, true
	case 'b', 'B':
		return Bishop, true
	case 'r', 'R':
		return Rook, true
	case 'q', 'Q':
		return Queen, true
	case 'k', 'K':
		return King, true
	default:
		return NoPiece, false
	}
}

// PieceCode is the packed mailbox cell contents: color in bit 0, piece type
// in the upper bits (PieceCode = Piece<<1 | Color). EMPTY=0, matching the
// wire layout pawns/knights/bishops/rooks/queens/kings = 2/4/6/8/10/12.
type PieceCode uint8

const EmptyPiece PieceCode = 0

// NewPieceCode packs a color and piece type into a mailbox cell value.
func NewPieceCode(c Color, p Piece) PieceCode {
	return PieceCode(p)<<1 | PieceCode(c)
}

func (pc PieceCode) IsEmpty() bool {
	return pc == EmptyPiece
}

func (pc PieceCode) Color() Color {
	return Color(pc & 1)
}

func (pc PieceCode) Piece() Piece {
	return Piece(pc >> 1)
}

func (pc PieceCode) String() string {
	if pc.IsEmpty() {
		return "."
	}
	if pc.Color() == White {
		return strings.ToUpper(pc.Piece().String())
	}
	return pc.Piece().String()
}
