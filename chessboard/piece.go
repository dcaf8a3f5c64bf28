package chessboard

import "fmt"

type Color string

const (
	NoColor Color = ""
	White   Color = "white"
	Black   Color = "black"
)

// Other returns the opposing colour.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

// ParseColor accepts "white"/"black" as well as the FEN letters "w"/"b".
func ParseColor(s string) (Color, error) {
	switch s {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return NoColor, fmt.Errorf("invalid color %q", s)
}

type PieceType string

const (
	NoPieceType PieceType = ""
	Pawn        PieceType = "pawn"
	Knight      PieceType = "knight"
	Bishop      PieceType = "bishop"
	Rook        PieceType = "rook"
	Queen       PieceType = "queen"
	King        PieceType = "king"
)

// PromotionTypes are the kinds a pawn may promote to, in dialog order.
var PromotionTypes = []PieceType{Queen, Rook, Bishop, Knight}

// Promotable reports whether a pawn may become t.
func (t PieceType) Promotable() bool {
	for _, p := range PromotionTypes {
		if p == t {
			return true
		}
	}
	return false
}

// ParsePieceType accepts full names and single letters in either case.
func ParsePieceType(s string) (PieceType, error) {
	switch s {
	case "pawn", "p", "P":
		return Pawn, nil
	case "knight", "n", "N":
		return Knight, nil
	case "bishop", "b", "B":
		return Bishop, nil
	case "rook", "r", "R":
		return Rook, nil
	case "queen", "q", "Q":
		return Queen, nil
	case "king", "k", "K":
		return King, nil
	}
	return NoPieceType, fmt.Errorf("invalid piece type %q", s)
}

// Piece is a coloured chess man. The zero value is an empty square.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func (p Piece) IsEmpty() bool {
	return p.Type == NoPieceType
}

// Symbol returns the FEN letter, upper case for white.
func (p Piece) Symbol() string {
	var s string
	switch p.Type {
	case Pawn:
		s = "p"
	case Knight:
		s = "n"
	case Bishop:
		s = "b"
	case Rook:
		s = "r"
	case Queen:
		s = "q"
	case King:
		s = "k"
	default:
		return ""
	}
	if p.Color == White {
		return string(s[0] - 'a' + 'A')
	}
	return s
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return string(p.Color) + " " + string(p.Type)
}
