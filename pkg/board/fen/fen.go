// Package fen contains utilities for reading and writing positions in
// Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/corvuschess/corvus/pkg/board"
)

// Initial is the FEN of the standard chess starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN record into a position, the active color, the
// halfmove clock, and the fullmove number.
func Decode(s string) (*board.Position, board.Color, int, int, error) {
	return DecodeWithZobrist(s, board.DefaultZobristKeys)
}

// DecodeWithZobrist is Decode, but hashes the position with keys instead of
// board.DefaultZobristKeys — for engines that want hashes independent of
// other instances (e.g. to make TT collisions across engines impossible).
func DecodeWithZobrist(s string, keys *board.ZobristKeys) (*board.Position, board.Color, int, int, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 6 {
		return nil, 0, 0, 0, fmt.Errorf("fen: expected 6 fields, got %d: %q", len(parts), s)
	}

	placements, err := decodePlacement(parts[0])
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("fen: %w: %q", err, s)
	}

	active, ok := parseColor(parts[1])
	if !ok {
		return nil, 0, 0, 0, fmt.Errorf("fen: invalid active color %q: %q", parts[1], s)
	}

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, 0, 0, 0, fmt.Errorf("fen: invalid castling %q: %q", parts[2], s)
	}

	var ep board.Square
	hasEP := false
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, 0, 0, 0, fmt.Errorf("fen: invalid en passant %q: %q", parts[3], s)
		}
		ep = sq
		hasEP = true
	}

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, 0, 0, 0, fmt.Errorf("fen: invalid halfmove clock %q: %q", parts[4], s)
	}

	fullmoves, err := strconv.Atoi(parts[5])
	if err != nil || fullmoves < 1 {
		return nil, 0, 0, 0, fmt.Errorf("fen: invalid fullmove number %q: %q", parts[5], s)
	}

	pos := board.NewPositionWithZobrist(placements, castling, ep, hasEP, keys)
	if active == board.Black {
		// The hash includes the side-to-move key, which DoMove toggles on
		// every move. Two null moves in a row differ by exactly that key;
		// fold it in and restore the decoded castling/en-passant state.
		before := pos.Hash()
		u := pos.DoNullMove()
		once := pos.Hash()
		pos.DoNullMove()
		u.Hash = before ^ once ^ pos.Hash()
		pos.UndoNullMove(u)
	}
	return pos, active, halfmove, fullmoves, nil
}

func decodePlacement(field string) ([]board.Placement, error) {
	var placements []board.Placement

	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("expected 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		r := board.Rank(7 - i) // FEN lists rank 8 first
		f := board.ZeroFile

		for _, c := range rankStr {
			switch {
			case unicode.IsDigit(c):
				f += board.File(c - '0')
			default:
				color, piece, ok := parsePiece(c)
				if !ok {
					return nil, fmt.Errorf("invalid piece %q", c)
				}
				if f >= board.NumFiles {
					return nil, fmt.Errorf("too many squares on rank %v", r+1)
				}
				placements = append(placements, board.Placement{Square: board.NewSquare(f, r), Color: color, Piece: piece})
				f++
			}
		}
		if f != board.NumFiles {
			return nil, fmt.Errorf("wrong number of squares on rank %v", r+1)
		}
	}
	return placements, nil
}

// Encode renders a position, active color, halfmove clock, and fullmove
// number as a FEN record.
func Encode(pos *board.Position, c board.Color, halfmove, fullmoves int) string {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		r := board.Rank(7 - i)
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			color, piece, ok := pos.Square(board.NewSquare(f, r))
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(color, piece))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if i < 7 {
			sb.WriteRune('/')
		}
	}

	ep := "-"
	if sq, ok := pos.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%s %s %s %s %d %d", sb.String(), printColor(c), printCastling(pos.Castling()), ep, halfmove, fullmoves)
}

func parseColor(s string) (board.Color, bool) {
	switch s {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func parseCastling(s string) (board.Castling, bool) {
	var ret board.Castling
	if s == "-" {
		return ret, true
	}
	for _, r := range s {
		switch r {
		case 'K':
			ret |= board.WhiteKingSideCastle
		case 'Q':
			ret |= board.WhiteQueenSideCastle
		case 'k':
			ret |= board.BlackKingSideCastle
		case 'q':
			ret |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return ret, true
}

func printCastling(c board.Castling) string {
	return c.String()
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	c := board.White
	if unicode.IsLower(r) {
		c = board.Black
	}
	p, ok := board.ParsePiece(r)
	return c, p, ok
}

func printPiece(c board.Color, p board.Piece) rune {
	r := []rune(p.String())[0]
	if c == board.White {
		r = unicode.ToUpper(r)
	}
	return r
}
