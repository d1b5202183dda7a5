package board

import "math/rand"

// ZobristKeys holds the random keys used to compute position hashes
// incrementally via Position.DoMove/UndoMove.
//
// The en-passant contribution is keyed by file only (8 keys), not by the
// full target square (64 keys): two positions that differ only in which
// rank an en-passant opportunity sits on, but are otherwise identical
// transpositions of the same file-relative opportunity, must still hash
// identically.
type ZobristKeys struct {
	piece         [NumColors][King + 1][NumSquares]uint64
	castling      [16]uint64
	enpassantFile [8]uint64
	turn          uint64
}

// NewZobristKeys builds a fresh, deterministic key set from seed. Distinct
// seeds are useful in tests that want to exercise hash construction
// without sharing state with the package default.
func NewZobristKeys(seed int64) *ZobristKeys {
	r := rand.New(rand.NewSource(seed))
	k := &ZobristKeys{}
	for c := ZeroColor; c < NumColors; c++ {
		for p := Pawn; p <= King; p++ {
			for sq := ZeroSquare; sq < NumSquares; sq++ {
				k.piece[c][p][sq] = r.Uint64()
			}
		}
	}
	for i := range k.castling {
		k.castling[i] = r.Uint64()
	}
	for i := range k.enpassantFile {
		k.enpassantFile[i] = r.Uint64()
	}
	k.turn = r.Uint64()
	return k
}

// DefaultZobristKeys is used by NewPosition. Engines that need hashes
// independent of this default may construct their own via NewZobristKeys
// and NewPositionWithZobrist.
var DefaultZobristKeys = NewZobristKeys(0xC0FFEE)

func (k *ZobristKeys) pieceKey(c Color, p Piece, sq Square) uint64 {
	return k.piece[c][p][sq]
}

func (k *ZobristKeys) castlingKey(c Castling) uint64 {
	return k.castling[c]
}

func (k *ZobristKeys) enPassantKey(f File) uint64 {
	return k.enpassantFile[f]
}

func (k *ZobristKeys) turnKey() uint64 {
	return k.turn
}
