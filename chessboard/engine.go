package chessboard

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	chess "github.com/corentings/chess/v2"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// RulesEngine is the call surface of the external chess rules engine. The
// adapter treats it as a black box: any method may fail, and implementations
// are expected to leave their position untouched when they do.
type RulesEngine interface {
	// Load replaces the position. With validate false only the syntax of the
	// position string is checked.
	Load(fen string, validate bool) error
	Board() (Board, error)
	Turn() (Color, error)
	Move(from, to Square, promotion PieceType) (Move, error)
	// Undo takes back the last move; false means there was nothing to undo.
	Undo() (Move, bool, error)
	InCheckmate() (bool, error)
	LegalMoves(from Square) ([]Square, error)
	PieceAt(s Square) (Piece, bool, error)
	Status() (GameStatus, error)
	FEN() (string, error)
}

type playedMove struct {
	san   string
	move  Move
	check bool
}

// ChessEngine implements RulesEngine on top of github.com/corentings/chess.
type ChessEngine struct {
	startFEN string
	game     *chess.Game
	history  []playedMove
}

// NewChessEngine returns an engine set up in the standard initial position.
func NewChessEngine() *ChessEngine {
	return &ChessEngine{
		startFEN: StartFEN,
		game:     chess.NewGame(),
	}
}

func recoverPanic(op string, err *error) {
	if r := recover(); r != nil {
		*err = violation(op, "", fmt.Errorf("engine panic: %v", r))
	}
}

func (e *ChessEngine) Load(fen string, validate bool) (err error) {
	defer recoverPanic("load", &err)

	fen = strings.TrimSpace(fen)
	opt, err := chess.FEN(fen)
	if err != nil {
		return violation("load", fen, err)
	}
	game := chess.NewGame(opt)
	if validate {
		pos := game.Position()
		if err := validatePosition(boardOf(pos), colorOf(pos.Turn())); err != nil {
			return violation("load", fen, err)
		}
	}

	e.game = game
	e.startFEN = fen
	e.history = nil
	return nil
}

// validatePosition rejects placements no legal game can reach.
func validatePosition(b Board, turn Color) error {
	for _, c := range []Color{White, Black} {
		switch n := b.Count(Piece{Type: King, Color: c}); {
		case n == 0:
			return fmt.Errorf("missing %s king", c)
		case n > 1:
			return fmt.Errorf("too many %s kings", c)
		}
	}
	for file := 0; file < 8; file++ {
		for _, rank := range []int{0, 7} {
			if p, ok := b.At(NewSquare(file, rank)); ok && p.Type == Pawn {
				return fmt.Errorf("pawn on %s", NewSquare(file, rank))
			}
		}
	}
	if inCheck(&b, turn.Other()) {
		return fmt.Errorf("%s king is in check but it is %s to move", turn.Other(), turn)
	}
	return nil
}

func (e *ChessEngine) Board() (b Board, err error) {
	defer recoverPanic("board", &err)
	return boardOf(e.game.Position()), nil
}

func (e *ChessEngine) Turn() (c Color, err error) {
	defer recoverPanic("turn", &err)
	return colorOf(e.game.Position().Turn()), nil
}

func (e *ChessEngine) FEN() (fen string, err error) {
	defer recoverPanic("fen", &err)
	return e.game.Position().String(), nil
}

func (e *ChessEngine) PieceAt(s Square) (p Piece, ok bool, err error) {
	defer recoverPanic("piece", &err)
	if !s.Valid() {
		return Piece{}, false, violation("piece", s.String(), errors.New("invalid square"))
	}
	p = pieceOf(e.game.Position().Board().Piece(chess.Square(s)))
	return p, !p.IsEmpty(), nil
}

func (e *ChessEngine) LegalMoves(from Square) (squares []Square, err error) {
	defer recoverPanic("moves", &err)
	for _, m := range e.game.Position().ValidMoves() {
		if m.S1() != chess.Square(from) {
			continue
		}
		if to := Square(m.S2()); !slices.Contains(squares, to) {
			squares = append(squares, to)
		}
	}
	return squares, nil
}

func (e *ChessEngine) InCheckmate() (mate bool, err error) {
	defer recoverPanic("checkmate", &err)
	return e.game.Position().Status() == chess.Checkmate, nil
}

func (e *ChessEngine) Move(from, to Square, promotion PieceType) (move Move, err error) {
	input := from.String() + to.String()
	defer recoverPanic("move "+input, &err)

	pos := e.game.Position()
	var match *chess.Move
	for _, m := range pos.ValidMoves() {
		if m.S1() != chess.Square(from) || m.S2() != chess.Square(to) {
			continue
		}
		if m.Promo() != chess.NoPieceType && m.Promo() != chessPieceType(promotion) {
			continue
		}
		match = &m
		break
	}
	if match == nil {
		return Move{}, violation("move", input, errors.New("illegal move"))
	}

	move = describeMove(pos, match)
	if err := e.game.PushMove(move.SAN, &chess.PushMoveOptions{ForceMainline: true}); err != nil {
		return Move{}, violation("move", move.SAN, err)
	}
	move.After = e.game.Position().String()
	e.history = append(e.history, playedMove{san: move.SAN, move: move, check: match.HasTag(chess.Check)})
	return move, nil
}

// describeMove builds the result record for m played from pos.
func describeMove(pos *chess.Position, m *chess.Move) Move {
	board := pos.Board()
	piece := pieceOf(board.Piece(m.S1()))
	move := Move{
		From:      Square(m.S1()),
		To:        Square(m.S2()),
		Promotion: pieceTypeOf(m.Promo()),
		Piece:     piece.Type,
		Color:     piece.Color,
		SAN:       chess.AlgebraicNotation{}.Encode(pos, m),
		LAN:       chess.UCINotation{}.Encode(pos, m),
		Before:    pos.String(),
	}

	var flags strings.Builder
	switch {
	case m.HasTag(chess.EnPassant):
		move.Captured = Pawn
		flags.WriteString(FlagEnPassant)
	case m.HasTag(chess.Capture):
		move.Captured = pieceOf(board.Piece(m.S2())).Type
		flags.WriteString(FlagCapture)
	}
	if piece.Type == Pawn && abs(move.To.Rank()-move.From.Rank()) == 2 {
		flags.WriteString(FlagBigPawn)
	}
	if move.Promotion != NoPieceType {
		flags.WriteString(FlagPromotion)
	}
	if m.HasTag(chess.KingSideCastle) {
		flags.WriteString(FlagKingsideCastle)
	}
	if m.HasTag(chess.QueenSideCastle) {
		flags.WriteString(FlagQueensideCastle)
	}
	if flags.Len() == 0 {
		flags.WriteString(FlagNormal)
	}
	move.Flags = flags.String()
	return move
}

func (e *ChessEngine) Undo() (move Move, ok bool, err error) {
	defer recoverPanic("undo", &err)
	if len(e.history) == 0 {
		return Move{}, false, nil
	}

	// The game tree keeps undone moves as variations, so replaying from the
	// start position is the only way to get repetition counts right.
	opt, err := chess.FEN(e.startFEN)
	if err != nil {
		return Move{}, false, violation("undo", e.startFEN, err)
	}
	game := chess.NewGame(opt)
	kept := e.history[:len(e.history)-1]
	for _, played := range kept {
		if err := game.PushMove(played.san, &chess.PushMoveOptions{ForceMainline: true}); err != nil {
			return Move{}, false, violation("undo", played.san, err)
		}
	}

	last := e.history[len(e.history)-1]
	e.game = game
	e.history = kept
	return last.move, true, nil
}

func (e *ChessEngine) Status() (status GameStatus, err error) {
	defer recoverPanic("status", &err)

	pos := e.game.Position()
	turn := colorOf(pos.Turn())
	board := boardOf(pos)
	method := pos.Status()
	draws := e.game.EligibleDraws()

	// A loaded position has no move to carry a Check tag.
	check := inCheck(&board, turn)
	if len(e.history) > 0 {
		check = e.history[len(e.history)-1].check
	}

	status = GameStatus{
		IsCheck:     check,
		IsCheckmate: method == chess.Checkmate,
		IsStalemate: method == chess.Stalemate,
		IsThreefoldRepetition: slices.Contains(draws, chess.ThreefoldRepetition) ||
			e.game.Method() == chess.FivefoldRepetition,
		IsInsufficientMaterial: e.game.Method() == chess.InsufficientMaterial,
		FEN:                    pos.String(),
		Turn:                   turn,
	}
	fiftyMoves := slices.Contains(draws, chess.FiftyMoveRule) || e.game.Method() == chess.SeventyFiveMoveRule
	status.IsDraw = status.IsStalemate || status.IsInsufficientMaterial || status.IsThreefoldRepetition || fiftyMoves
	status.IsGameOver = status.IsCheckmate || status.IsDraw
	return status, nil
}

func boardOf(pos *chess.Position) Board {
	var b Board
	cb := pos.Board()
	for _, s := range AllSquares() {
		b.Put(s, pieceOf(cb.Piece(chess.Square(s))))
	}
	return b
}

func colorOf(c chess.Color) Color {
	switch c {
	case chess.White:
		return White
	case chess.Black:
		return Black
	}
	return NoColor
}

func pieceOf(p chess.Piece) Piece {
	if p == chess.NoPiece {
		return Piece{}
	}
	return Piece{Type: pieceTypeOf(p.Type()), Color: colorOf(p.Color())}
}

func pieceTypeOf(t chess.PieceType) PieceType {
	switch t {
	case chess.Pawn:
		return Pawn
	case chess.Knight:
		return Knight
	case chess.Bishop:
		return Bishop
	case chess.Rook:
		return Rook
	case chess.Queen:
		return Queen
	case chess.King:
		return King
	}
	return NoPieceType
}

func chessPieceType(t PieceType) chess.PieceType {
	switch t {
	case Pawn:
		return chess.Pawn
	case Knight:
		return chess.Knight
	case Bishop:
		return chess.Bishop
	case Rook:
		return chess.Rook
	case Queen:
		return chess.Queen
	case King:
		return chess.King
	}
	return chess.NoPieceType
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
