package board

// Outcome is the game-level outcome, if decided.
type Outcome uint8

const (
	Undecided Outcome = iota
	WhiteWins
	BlackWins
	Draw
)

// Reason records why a game reached its Outcome.
type Reason uint8

const (
	NoReason Reason = iota
	Checkmate
	Stalemate
	Repetition
	FiftyMoveRule
	InsufficientMaterial
)

// Result is the game-level result: an Outcome plus the Reason it occurred.
type Result struct {
	Outcome Outcome
	Reason  Reason
}

// Loss returns the Outcome representing a loss for c.
func Loss(c Color) Outcome {
	if c == White {
		return BlackWins
	}
	return WhiteWins
}

func (o Outcome) String() string {
	switch o {
	case Undecided:
		return "undecided"
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "?"
	}
}

func (r Reason) String() string {
	switch r {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Repetition:
		return "repetition"
	case FiftyMoveRule:
		return "fifty-move rule"
	case InsufficientMaterial:
		return "insufficient material"
	default:
		return "-"
	}
}

func (r Result) String() string {
	if r.Outcome == Undecided {
		return r.Outcome.String()
	}
	return r.Outcome.String() + " (" + r.Reason.String() + ")"
}
