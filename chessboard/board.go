package chessboard

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Board is a whole-position snapshot in matrix orientation: row 0 holds
// rank 8 and column 0 holds the a-file. Boards are values; replacing one never
// affects a copy held elsewhere.
type Board [8][8]Piece

func coords(s Square) (row, col int) {
	return 7 - s.Rank(), s.File()
}

// At returns the piece on s and whether the square is occupied.
func (b *Board) At(s Square) (Piece, bool) {
	if !s.Valid() {
		return Piece{}, false
	}
	row, col := coords(s)
	p := b[row][col]
	return p, !p.IsEmpty()
}

// Put places p on s; an empty Piece clears the square.
func (b *Board) Put(s Square, p Piece) {
	if !s.Valid() {
		return
	}
	row, col := coords(s)
	b[row][col] = p
}

// Find returns the first square, scanning from a8 to h1, holding p.
func (b *Board) Find(p Piece) (Square, bool) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if b[row][col] == p {
				return NewSquare(col, 7-row), true
			}
		}
	}
	return NoSquare, false
}

// Count returns how many squares hold p.
func (b *Board) Count(p Piece) int {
	n := 0
	for row := range b {
		for col := range b[row] {
			if b[row][col] == p {
				n++
			}
		}
	}
	return n
}

// Placement renders the board as the piece placement field of a FEN string.
func (b *Board) Placement() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			p := b[row][col]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.Symbol())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

func (b Board) String() string {
	return b.Placement()
}

// MarshalJSON encodes the matrix with null for empty squares.
func (b Board) MarshalJSON() ([]byte, error) {
	rows := make([][]*Piece, 8)
	for row := range b {
		rows[row] = make([]*Piece, 8)
		for col := range b[row] {
			if p := b[row][col]; !p.IsEmpty() {
				rows[row][col] = &p
			}
		}
	}
	return json.Marshal(rows)
}
