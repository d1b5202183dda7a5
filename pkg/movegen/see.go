package movegen

import "github.com/corvuschess/corvus/pkg/board"

// pieceValue is the static exchange valuation used only by SEE, deliberately
// separate from any positional evaluator.
var pieceValue = [board.King + 1]int{
	board.NoPiece: 0,
	board.Pawn:    100,
	board.Knight:  320,
	board.Bishop:  330,
	board.Rook:    500,
	board.Queen:   900,
	board.King:    20000,
}

// SEE runs the static exchange evaluation swap algorithm for m, returning
// the net material gain (in centipawns) the side to move nets by playing m
// and letting every subsequent recapture on m.To() proceed in
// least-valuable-attacker order. A negative result means the capture loses
// material even after best recapture.
func SEE(pos *board.Position, m board.Move) int {
	to, from := m.To(), m.From()
	attackerColor, attackerPiece, _ := pos.Square(from)

	occ := pos.All() &^ board.BitMask(from)

	var gain [32]int
	d := 0
	gain[0] = victimValue(pos, m)

	if m.IsEnPassant() {
		occ &^= board.BitMask(board.NewSquare(to.File(), from.Rank()))
	}

	side := attackerColor.Opponent()
	lastValue := pieceValue[attackerPiece]
	if m.IsPromotion() {
		lastValue = pieceValue[m.Promotion()]
	}

	attackers := pos.AttackersTo(to, occ)

	for {
		d++
		gain[d] = lastValue - gain[d-1]
		if max(-gain[d-1], gain[d]) < 0 {
			break
		}

		sq, piece, ok := leastValuableAttacker(pos, attackers, occ, side)
		if !ok {
			break
		}

		occ &^= board.BitMask(sq)
		attackers &^= board.BitMask(sq)
		attackers |= discoveredAttackers(pos, to, occ)

		lastValue = pieceValue[piece]
		side = side.Opponent()
	}

	for d > 1 {
		d--
		gain[d-1] = -max(-gain[d-1], gain[d])
	}
	return gain[0]
}

func victimValue(pos *board.Position, m board.Move) int {
	if m.IsEnPassant() {
		return pieceValue[board.Pawn]
	}
	return pieceValue[m.Capture()]
}

// leastValuableAttacker picks, among attackers of side present in the
// attackers set, the cheapest piece type, returning its square.
func leastValuableAttacker(pos *board.Position, attackers board.Bitboard, occ board.Bitboard, side board.Color) (board.Square, board.Piece, bool) {
	ordered := Attackers(pos, side, attackers&occ)
	if len(ordered) == 0 {
		return 0, board.NoPiece, false
	}
	sq := ordered[0]
	_, piece, _ := pos.Square(sq)
	return sq, piece, true
}

// discoveredAttackers returns sliding-piece attackers of sq that occ now
// exposes (a slider whose line to sq was previously blocked by a piece that
// has since been removed from occ). Only sliders can be discovered this
// way; knights and kings never x-ray.
func discoveredAttackers(pos *board.Position, sq board.Square, occ board.Bitboard) board.Bitboard {
	bishops := pos.Pieces(board.White, board.Bishop) | pos.Pieces(board.Black, board.Bishop) |
		pos.Pieces(board.White, board.Queen) | pos.Pieces(board.Black, board.Queen)
	rooks := pos.Pieces(board.White, board.Rook) | pos.Pieces(board.Black, board.Rook) |
		pos.Pieces(board.White, board.Queen) | pos.Pieces(board.Black, board.Queen)

	var att board.Bitboard
	att |= board.BishopAttacks(occ, sq) & bishops & occ
	att |= board.RookAttacks(occ, sq) & rooks & occ
	return att
}
