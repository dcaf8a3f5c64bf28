package chessboard

import "strings"

// Move flag letters, combined into Move.Flags.
const (
	FlagNormal          = "n"
	FlagBigPawn         = "b"
	FlagEnPassant       = "e"
	FlagCapture         = "c"
	FlagPromotion       = "p"
	FlagKingsideCastle  = "k"
	FlagQueensideCastle = "q"
)

// Move is the result record of a move, as delivered to the move callback.
// Before and After are FEN strings of the surrounding positions.
type Move struct {
	From      Square    `json:"from"`
	To        Square    `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
	Piece     PieceType `json:"piece"`
	Color     Color     `json:"color"`
	Captured  PieceType `json:"captured,omitempty"`
	SAN       string    `json:"san"`
	LAN       string    `json:"lan"`
	Flags     string    `json:"flags"`
	Before    string    `json:"before"`
	After     string    `json:"after"`
	Synthetic bool      `json:"synthetic,omitempty"`
}

// HasFlag reports whether flag is among the move's flags.
func (m Move) HasFlag(flag string) bool {
	return strings.Contains(m.Flags, flag)
}

// SyntheticMove fabricates a move record for a request the engine rejected.
// Nothing about the position changes, so Before and After are both fen.
func SyntheticMove(from, to Square, promotion PieceType, piece Piece, fen string) Move {
	placeholder := from.String() + "-" + to.String()
	return Move{
		From:      from,
		To:        to,
		Promotion: promotion,
		Piece:     piece.Type,
		Color:     piece.Color,
		SAN:       placeholder,
		LAN:       placeholder,
		Flags:     FlagNormal,
		Before:    fen,
		After:     fen,
		Synthetic: true,
	}
}
