// Package movegen generates pseudo-legal moves and static exchange
// evaluation from a board.Position. Pseudo-legal moves may leave the
// mover's own king in check; board.Board.PushMove rejects those after the
// fact, which is cheaper on average than precomputing pins for every
// generated move.
package movegen

import "github.com/corvuschess/corvus/pkg/board"

// Generate returns every pseudo-legal move available to turn in pos.
func Generate(pos *board.Position, turn board.Color) *board.MoveList {
	list := &board.MoveList{}
	addPawnMoves(list, pos, turn, false)
	addKnightMoves(list, pos, turn, board.KnightAttacksFrom)
	addSliderMoves(list, pos, turn, board.Bishop, board.BishopAttacks)
	addSliderMoves(list, pos, turn, board.Rook, board.RookAttacks)
	addSliderMoves(list, pos, turn, board.Queen, board.QueenAttacks)
	addKingMoves(list, pos, turn)
	addCastleMoves(list, pos, turn)
	return list
}

// GenerateLoud returns every pseudo-legal capture and promotion available
// to turn in pos — the move set quiescence search recurses into.
func GenerateLoud(pos *board.Position, turn board.Color) *board.MoveList {
	list := &board.MoveList{}
	addPawnMoves(list, pos, turn, true)
	addKnightMoves(list, pos, turn, board.KnightAttacksFrom)
	addSliderMoves(list, pos, turn, board.Bishop, board.BishopAttacks)
	addSliderMoves(list, pos, turn, board.Rook, board.RookAttacks)
	addSliderMoves(list, pos, turn, board.Queen, board.QueenAttacks)
	addKingMoves(list, pos, turn)
	filterLoud(list)
	return list
}

func filterLoud(list *board.MoveList) {
	n := 0
	for i := 0; i < list.Len(); i++ {
		m := list.Get(i)
		if m.IsCapture() || m.IsPromotion() {
			list.Set(n, m)
			n++
		}
	}
	list.Truncate(n)
}

var promotionPieces = []board.Piece{board.Queen, board.Rook, board.Bishop, board.Knight}

func addPawnMoves(list *board.MoveList, pos *board.Position, turn board.Color, loudOnly bool) {
	pawns := pos.Pieces(turn, board.Pawn)
	all := pos.All()
	opp := turn.Opponent()
	oppOcc := pos.Occupancy(opp)

	var dr int
	var startRank, promoRank board.Rank
	if turn == board.White {
		dr, startRank, promoRank = 1, 1, 7
	} else {
		dr, startRank, promoRank = -1, 6, 0
	}

	for bb := pawns; bb != 0; {
		from := bb.PopLSB()
		f, r := from.File(), from.Rank()

		// Single and double push. A push landing on the promotion rank is
		// loud even without a capture, so it survives loudOnly; the double
		// push never reaches the promotion rank and is skipped outright.
		oneR := int(r) + dr
		if oneR >= 0 && oneR < 8 {
			to := board.NewSquare(f, board.Rank(oneR))
			if !all.IsSet(to) {
				if !loudOnly || to.Rank() == promoRank {
					addPawnTarget(list, from, to, board.NoPiece, 0, promoRank)
				}
				if !loudOnly && r == startRank {
					twoR := int(r) + 2*dr
					to2 := board.NewSquare(f, board.Rank(twoR))
					if !all.IsSet(to2) {
						list.Push(board.NewMove(from, to2, board.NoPiece, board.FlagDoublePawnPush))
					}
				}
			}
		}

		// Captures, including en passant.
		for _, df := range []int{-1, 1} {
			nf := int(f) + df
			nr := int(r) + dr
			if nf < 0 || nf >= 8 || nr < 0 || nr >= 8 {
				continue
			}
			to := board.NewSquare(board.File(nf), board.Rank(nr))
			if oppOcc.IsSet(to) {
				_, capturedPiece, _ := pos.Square(to)
				addPawnTarget(list, from, to, capturedPiece, 0, promoRank)
			} else if epSq, hasEP := pos.EnPassant(); hasEP && to == epSq {
				list.Push(board.NewMove(from, to, board.Pawn, board.FlagEnPassant))
			}
		}
	}
}

func addPawnTarget(list *board.MoveList, from, to board.Square, capture board.Piece, extraFlags board.Move, promoRank board.Rank) {
	if to.Rank() == promoRank {
		for _, p := range promotionPieces {
			list.Push(board.NewMove(from, to, capture, extraFlags).WithPromotion(p))
		}
		return
	}
	list.Push(board.NewMove(from, to, capture, extraFlags))
}

func addKnightMoves(list *board.MoveList, pos *board.Position, turn board.Color, attacksFrom func(board.Square) board.Bitboard) {
	own := pos.Occupancy(turn)
	for bb := pos.Pieces(turn, board.Knight); bb != 0; {
		from := bb.PopLSB()
		targets := attacksFrom(from) &^ own
		addTargets(list, pos, from, targets)
	}
}

func addSliderMoves(list *board.MoveList, pos *board.Position, turn board.Color, piece board.Piece, attacks func(board.Bitboard, board.Square) board.Bitboard) {
	own := pos.Occupancy(turn)
	all := pos.All()
	for bb := pos.Pieces(turn, piece); bb != 0; {
		from := bb.PopLSB()
		targets := attacks(all, from) &^ own
		addTargets(list, pos, from, targets)
	}
}

func addKingMoves(list *board.MoveList, pos *board.Position, turn board.Color) {
	own := pos.Occupancy(turn)
	from := pos.KingSquare(turn)
	targets := board.KingAttacksFrom(from) &^ own
	addTargets(list, pos, from, targets)
}

func addTargets(list *board.MoveList, pos *board.Position, from board.Square, targets board.Bitboard) {
	for targets != 0 {
		to := targets.PopLSB()
		_, capture, _ := pos.Square(to)
		list.Push(board.NewMove(from, to, capture, 0))
	}
}

func addCastleMoves(list *board.MoveList, pos *board.Position, turn board.Color) {
	opp := turn.Opponent()
	all := pos.All()
	rights := pos.Castling()

	rank := board.Rank(0)
	kingSide, queenSide := board.WhiteKingSideCastle, board.WhiteQueenSideCastle
	if turn == board.Black {
		rank = 7
		kingSide, queenSide = board.BlackKingSideCastle, board.BlackQueenSideCastle
	}

	e := board.NewSquare(4, rank)
	if pos.KingSquare(turn) != e || pos.IsAttacked(e, opp) {
		return
	}

	if rights.IsAllowed(kingSide) {
		f, g := board.NewSquare(5, rank), board.NewSquare(6, rank)
		if !all.IsSet(f) && !all.IsSet(g) && !pos.IsAttacked(f, opp) && !pos.IsAttacked(g, opp) {
			list.Push(board.NewMove(e, g, board.NoPiece, board.FlagKingSideCastle))
		}
	}
	if rights.IsAllowed(queenSide) {
		d, c, b := board.NewSquare(3, rank), board.NewSquare(2, rank), board.NewSquare(1, rank)
		if !all.IsSet(d) && !all.IsSet(c) && !all.IsSet(b) && !pos.IsAttacked(d, opp) && !pos.IsAttacked(c, opp) {
			list.Push(board.NewMove(e, c, board.NoPiece, board.FlagQueenSideCastle))
		}
	}
}
