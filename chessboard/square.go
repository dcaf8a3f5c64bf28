package chessboard

import (
	"encoding/json"
	"fmt"
)

// Square identifies one of the 64 board squares as rank*8+file, so a1 is 0
// and h8 is 63. The layout matches the rules engine's square numbering.
type Square int8

// NoSquare is returned wherever a lookup resolves to no square.
const NoSquare Square = -1

const fileNames = "abcdefgh"

// NewSquare builds a square from zero-based file and rank indexes.
func NewSquare(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return Square(rank*8 + file)
}

// ParseSquare parses an algebraic label such as "e4".
func ParseSquare(label string) (Square, error) {
	if len(label) != 2 {
		return NoSquare, fmt.Errorf("invalid square %q", label)
	}
	file := int(label[0]) - 'a'
	rank := int(label[1]) - '1'
	sq := NewSquare(file, rank)
	if sq == NoSquare {
		return NoSquare, fmt.Errorf("invalid square %q", label)
	}
	return sq, nil
}

// MustParseSquare is ParseSquare for labels known at compile time.
func MustParseSquare(label string) Square {
	sq, err := ParseSquare(label)
	if err != nil {
		panic(err)
	}
	return sq
}

func (s Square) Valid() bool {
	return s >= 0 && s < 64
}

// File returns the zero-based file, 0 for the a-file.
func (s Square) File() int {
	return int(s) % 8
}

// Rank returns the zero-based rank, 0 for the first rank.
func (s Square) Rank() int {
	return int(s) / 8
}

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", fileNames[s.File()], s.Rank()+1)
}

func (s Square) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(s.String())
}

func (s *Square) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = NoSquare
		return nil
	}
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	sq, err := ParseSquare(label)
	if err != nil {
		return err
	}
	*s = sq
	return nil
}

// AllSquares lists every square from a1 to h8.
func AllSquares() []Square {
	squares := make([]Square, 0, 64)
	for i := 0; i < 64; i++ {
		squares = append(squares, Square(i))
	}
	return squares
}
