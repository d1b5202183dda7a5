package eval

import (
	"context"
	"math/rand"

	"github.com/corvuschess/corvus/pkg/board"
)

// Random adds a small amount of noise to an evaluation, in the centipawn
// range [-limit/2, limit/2]. A zero-value Random always returns zero, so
// it is safe to use undeclared wherever determinism is wanted instead.
type Random struct {
	rnd   *rand.Rand
	limit int
}

// NewRandom returns a Random evaluator bounded by limit centipawns and
// seeded for reproducibility.
func NewRandom(limit int, seed int64) Random {
	return Random{limit: limit, rnd: rand.New(rand.NewSource(seed))}
}

func (n Random) Evaluate(_ context.Context, _ *board.Board) Score {
	if n.limit <= 0 || n.rnd == nil {
		return 0
	}
	return Score(n.rnd.Intn(n.limit) - n.limit/2)
}
