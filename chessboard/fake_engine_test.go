package chessboard

import (
	"errors"
	"io"
	"log/slog"
)

var errEngineDown = errors.New("engine down")

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type moveCall struct {
	from, to  Square
	promotion PieceType
}

// scriptedEngine wraps a real engine and fails the operations named in fail.
type scriptedEngine struct {
	*ChessEngine
	fail  map[string]bool
	moves []moveCall
}

func newScriptedEngine() *scriptedEngine {
	return &scriptedEngine{ChessEngine: NewChessEngine(), fail: map[string]bool{}}
}

func (s *scriptedEngine) Load(fen string, validate bool) error {
	if s.fail["load"] {
		return errEngineDown
	}
	return s.ChessEngine.Load(fen, validate)
}

func (s *scriptedEngine) Board() (Board, error) {
	if s.fail["board"] {
		return Board{}, errEngineDown
	}
	return s.ChessEngine.Board()
}

func (s *scriptedEngine) Turn() (Color, error) {
	if s.fail["turn"] {
		return NoColor, errEngineDown
	}
	return s.ChessEngine.Turn()
}

func (s *scriptedEngine) Move(from, to Square, promotion PieceType) (Move, error) {
	s.moves = append(s.moves, moveCall{from: from, to: to, promotion: promotion})
	if s.fail["move"] {
		return Move{}, errEngineDown
	}
	return s.ChessEngine.Move(from, to, promotion)
}

func (s *scriptedEngine) Undo() (Move, bool, error) {
	if s.fail["undo"] {
		return Move{}, false, errEngineDown
	}
	return s.ChessEngine.Undo()
}

func (s *scriptedEngine) InCheckmate() (bool, error) {
	if s.fail["checkmate"] {
		return false, errEngineDown
	}
	return s.ChessEngine.InCheckmate()
}

func (s *scriptedEngine) LegalMoves(from Square) ([]Square, error) {
	if s.fail["moves"] {
		return nil, errEngineDown
	}
	return s.ChessEngine.LegalMoves(from)
}

func (s *scriptedEngine) PieceAt(sq Square) (Piece, bool, error) {
	if s.fail["piece"] {
		return Piece{}, false, errEngineDown
	}
	return s.ChessEngine.PieceAt(sq)
}

func (s *scriptedEngine) Status() (GameStatus, error) {
	if s.fail["status"] {
		return GameStatus{}, errEngineDown
	}
	return s.ChessEngine.Status()
}

func (s *scriptedEngine) FEN() (string, error) {
	if s.fail["fen"] {
		return "", errEngineDown
	}
	return s.ChessEngine.FEN()
}
