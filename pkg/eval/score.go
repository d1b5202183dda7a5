package eval

import (
	"fmt"

	"github.com/corvuschess/corvus/pkg/board"
)

// Score is a signed position score in centipawns, positive favoring White.
// Bounded well clear of int32 overflow so mate-distance and aspiration-
// window arithmetic (DrawScore +/- a few hundred, MateScore +/- ply) never
// wraps.
type Score int32

const (
	// MaxScore bounds every score, mate scores (near +/-MateScore) included.
	MaxScore Score = 200000
	// MateScore is the score of delivering mate on the current move; a mate
	// found n plies deep is scored MateScore-n so shallower mates sort above
	// deeper ones.
	MateScore Score = 100000
	// DrawScore is the evaluation of a theoretically drawn position.
	DrawScore Score = 0
	// AspirationWindow is the iterative-deepening search's initial
	// half-width around the previous iteration's score.
	AspirationWindow Score = 50

	// Inf and NegInf are sentinel bounds wider than any real score, used to
	// seed alpha-beta's initial window.
	Inf    Score = MaxScore + 1
	NegInf Score = -Inf
)

func (s Score) String() string {
	return fmt.Sprintf("%d", s)
}

// mateWindow bounds the ply distance a mate score can encode (MateScore-n
// for n plies deep); it must stay comfortably above any reachable search
// depth so no ordinary evaluation is mistaken for a mate score.
const mateWindow = 1000

// IsMateScore reports whether s encodes a forced mate rather than a
// material/positional evaluation.
func IsMateScore(s Score) bool {
	return s > MateScore-mateWindow || s < -(MateScore-mateWindow)
}

// MateIn returns the number of plies to mate encoded in s. Only meaningful
// when IsMateScore(s).
func MateIn(s Score) int {
	if s > 0 {
		return int(MateScore - s)
	}
	return int(MateScore + s)
}

// Unit returns the signed unit for c: +1 for White, -1 for Black. Scores
// are always stored from White's perspective; negamax search negates by
// Unit(turn) to get the side-to-move's perspective.
func Unit(c board.Color) Score {
	if c == board.White {
		return 1
	}
	return -1
}

// Crop clamps s into [NegInf, Inf].
func Crop(s Score) Score {
	switch {
	case s > Inf:
		return Inf
	case s < NegInf:
		return NegInf
	default:
		return s
	}
}

func Max(a, b Score) Score {
	if a > b {
		return a
	}
	return b
}

func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}
