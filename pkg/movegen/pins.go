package movegen

import "github.com/corvuschess/corvus/pkg/board"

// Attackers filters a candidate attacker/defender bitboard (typically
// pos.AttackersTo(sq, occ)) down to side's own pieces, ordered by
// ascending nominal value (cheapest attacker first) -- the order SEE's
// swap algorithm picks recaptures in.
func Attackers(pos *board.Position, side board.Color, attadef board.Bitboard) []board.Square {
	var ret []board.Square
	candidates := attadef & pos.Occupancy(side)
	for _, piece := range []board.Piece{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen, board.King} {
		for bb := candidates & pos.Pieces(side, piece); bb != 0; {
			ret = append(ret, bb.PopLSB())
		}
	}
	return ret
}
