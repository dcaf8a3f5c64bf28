package chessboard

import (
	"log/slog"
)

// RulesEngineAdapter is the only place where the validation mode changes the
// outcome of an engine call. In Strict mode failures are returned as
// RulesViolation errors; in Permissive mode they are logged and replaced by a
// safe default, and the returned error is always nil.
type RulesEngineAdapter struct {
	engine    RulesEngine
	log       *slog.Logger
	lastTurn  Color
	lastBoard Board
}

func NewRulesEngineAdapter(engine RulesEngine, logger *slog.Logger) *RulesEngineAdapter {
	if logger == nil {
		logger = log
	}
	return &RulesEngineAdapter{
		engine:   engine,
		log:      logger,
		lastTurn: White,
	}
}

// coerce applies the mode to the outcome of one engine call.
func coerce[T any](a *RulesEngineAdapter, mode ValidationMode, op string, value T, err error, fallback T) (T, error) {
	if err == nil {
		return value, nil
	}
	if mode == Strict {
		return value, violation(op, "", err)
	}
	a.log.Warn("engine call failed, using fallback", "op", op, "error", err)
	return fallback, nil
}

// Load replaces the engine position and returns the resulting board. A
// Permissive load that fails validation is retried without it so the board
// still shows the raw placement; one that cannot be parsed yields an empty
// board.
func (a *RulesEngineAdapter) Load(mode ValidationMode, fen string) (Board, error) {
	err := a.engine.Load(fen, true)
	if err != nil && mode == Permissive {
		a.log.Warn("position rejected, loading without validation", "fen", fen, "error", err)
		err = a.engine.Load(fen, false)
	}
	if err != nil {
		_, err = coerce(a, mode, "load", struct{}{}, err, struct{}{})
		if err == nil {
			a.lastBoard = Board{}
		}
		return Board{}, err
	}
	if turn, turnErr := a.engine.Turn(); turnErr == nil {
		a.lastTurn = turn
	}
	return a.CurrentBoard(mode)
}

// CurrentBoard falls back to the last board the engine reported.
func (a *RulesEngineAdapter) CurrentBoard(mode ValidationMode) (Board, error) {
	b, _, err := a.readBoard(mode, "board")
	return b, err
}

// readBoard reads the engine board; live is false when the fallback was used.
func (a *RulesEngineAdapter) readBoard(mode ValidationMode, op string) (b Board, live bool, err error) {
	b, err = a.engine.Board()
	if err == nil {
		a.lastBoard = b
		return b, true, nil
	}
	b, err = coerce(a, mode, op, b, err, a.lastBoard)
	return b, false, err
}

// TurnToMove falls back to the last turn the engine reported.
func (a *RulesEngineAdapter) TurnToMove(mode ValidationMode) (Color, error) {
	turn, err := a.engine.Turn()
	turn, err = coerce(a, mode, "turn", turn, err, a.lastTurn)
	if err == nil {
		a.lastTurn = turn
	}
	return turn, err
}

// ApplyMove plays a move. In Permissive mode a rejected move comes back as a
// SyntheticMove and the engine position is left as it was.
func (a *RulesEngineAdapter) ApplyMove(mode ValidationMode, from, to Square, promotion PieceType) (Move, error) {
	move, err := a.engine.Move(from, to, promotion)
	if err == nil || mode == Strict {
		return coerce(a, mode, "move", move, err, Move{})
	}

	piece, _, pieceErr := a.engine.PieceAt(from)
	if pieceErr != nil {
		piece = Piece{}
	}
	fen, fenErr := a.engine.FEN()
	if fenErr != nil {
		fen = ""
	}
	synthetic := SyntheticMove(from, to, promotion, piece, fen)
	a.log.Warn("engine rejected move, board is out of sync with the engine",
		"from", from, "to", to, "promotion", promotion, "error", err)
	return synthetic, nil
}

// UndoLast takes back the last engine move. ok is false when there was none.
func (a *RulesEngineAdapter) UndoLast(mode ValidationMode) (Move, bool, error) {
	move, ok, err := a.engine.Undo()
	if err != nil {
		_, err = coerce(a, mode, "undo", struct{}{}, err, struct{}{})
		return Move{}, false, err
	}
	return move, ok, nil
}

func (a *RulesEngineAdapter) IsInCheckmate(mode ValidationMode) (bool, error) {
	mate, err := a.engine.InCheckmate()
	return coerce(a, mode, "checkmate", mate, err, false)
}

func (a *RulesEngineAdapter) LegalMovesFrom(mode ValidationMode, from Square) ([]Square, error) {
	squares, err := a.engine.LegalMoves(from)
	return coerce(a, mode, "moves", squares, err, []Square{})
}

// PieceAt reports the piece on s; Permissive failures read as an empty square.
func (a *RulesEngineAdapter) PieceAt(mode ValidationMode, s Square) (Piece, bool, error) {
	p, ok, err := a.engine.PieceAt(s)
	if err == nil {
		return p, ok, nil
	}
	p, err = coerce(a, mode, "piece", p, err, Piece{})
	return p, false, err
}

// StatusSnapshot falls back to an all-false status.
func (a *RulesEngineAdapter) StatusSnapshot(mode ValidationMode) (GameStatus, error) {
	status, err := a.engine.Status()
	return coerce(a, mode, "status", status, err, GameStatus{})
}

func (a *RulesEngineAdapter) FEN(mode ValidationMode) (string, error) {
	fen, err := a.engine.FEN()
	return coerce(a, mode, "fen", fen, err, "")
}
