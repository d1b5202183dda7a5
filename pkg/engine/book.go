package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/corvuschess/corvus/pkg/board"
	"github.com/corvuschess/corvus/pkg/board/fen"
	"github.com/corvuschess/corvus/pkg/eval"
	"github.com/corvuschess/corvus/pkg/movegen"
)

// Book represents an opening book.
type Book interface {
	// Find returns a list -- potentially empty -- of moves given a position. Once an empty
	// list is returned, the book should not be consulted again for the game.
	Find(ctx context.Context, position string) ([]board.Move, error)
}

// Line represents an opening line: e2e4 d7d5.
type Line []string

func (l Line) String() string {
	return strings.Join(l, " ")
}

// NoBook is an empty opening book.
var NoBook = &book{moves: map[string][]board.Move{}}

// NewBook builds an opening book from a set of opening lines, each given as
// long-algebraic moves from the starting position.
func NewBook(lines []Line) (Book, error) {
	m := map[string]map[board.Move]bool{}
	for _, line := range lines {
		key := fen.Initial
		for _, str := range line {
			pos, turn, _, _, err := fen.Decode(key)
			if err != nil {
				return nil, fmt.Errorf("invalid line %v: %w", line, err)
			}

			mv, err := movegen.ParseMove(pos, turn, str)
			if err != nil {
				return nil, fmt.Errorf("invalid line %v: move %v not found: %w", line, str, err)
			}

			if m[fenKey(key)] == nil {
				m[fenKey(key)] = map[board.Move]bool{}
			}
			m[fenKey(key)][mv] = true

			_, newHalfmove := pos.DoMove(turn, mv, 0)
			key = fen.Encode(pos, turn.Opponent(), newHalfmove, 1)
		}
	}

	dedup := map[string][]board.Move{}
	for k, v := range m {
		var list []board.Move
		for move := range v {
			list = append(list, move)
		}
		sort.Sort(byBookOrder(list))
		dedup[k] = list
	}
	return &book{moves: dedup}, nil
}

type book struct {
	moves map[string][]board.Move // cropped fen -> []move
}

func (b *book) Find(ctx context.Context, position string) ([]board.Move, error) {
	return b.moves[fenKey(position)], nil
}

func fenKey(position string) string {
	parts := strings.Split(position, " ")
	return strings.Join(parts[:4], " ")
}

// byBookOrder ranks book moves by immediate material gain (most-winning
// capture first), breaking ties by notation for determinism.
type byBookOrder []board.Move

func (o byBookOrder) Len() int      { return len(o) }
func (o byBookOrder) Swap(i, j int) { o[i], o[j] = o[j], o[i] }
func (o byBookOrder) Less(i, j int) bool {
	gi, gj := eval.CaptureGain(o[i]), eval.CaptureGain(o[j])
	if gi != gj {
		return gi > gj
	}
	return o[i].String() < o[j].String()
}
