package chessboard

import (
	"errors"
	"testing"
)

func TestAdapterStrictPropagates(t *testing.T) {
	ops := map[string]func(a *RulesEngineAdapter) error{
		"board": func(a *RulesEngineAdapter) error {
			_, err := a.CurrentBoard(Strict)
			return err
		},
		"turn": func(a *RulesEngineAdapter) error {
			_, err := a.TurnToMove(Strict)
			return err
		},
		"move": func(a *RulesEngineAdapter) error {
			_, err := a.ApplyMove(Strict, MustParseSquare("e2"), MustParseSquare("e4"), NoPieceType)
			return err
		},
		"undo": func(a *RulesEngineAdapter) error {
			_, _, err := a.UndoLast(Strict)
			return err
		},
		"checkmate": func(a *RulesEngineAdapter) error {
			_, err := a.IsInCheckmate(Strict)
			return err
		},
		"moves": func(a *RulesEngineAdapter) error {
			_, err := a.LegalMovesFrom(Strict, MustParseSquare("e2"))
			return err
		},
		"piece": func(a *RulesEngineAdapter) error {
			_, _, err := a.PieceAt(Strict, MustParseSquare("e2"))
			return err
		},
		"status": func(a *RulesEngineAdapter) error {
			_, err := a.StatusSnapshot(Strict)
			return err
		},
		"load": func(a *RulesEngineAdapter) error {
			_, err := a.Load(Strict, StartFEN)
			return err
		},
	}
	for op, call := range ops {
		t.Run(op, func(t *testing.T) {
			engine := newScriptedEngine()
			engine.fail[op] = true
			err := call(NewRulesEngineAdapter(engine, quietLogger))
			if !errors.Is(err, ErrRulesViolation) {
				t.Errorf("expected rules violation, got %v", err)
			}
			if !errors.Is(err, errEngineDown) {
				t.Errorf("expected engine error to be wrapped, got %v", err)
			}
		})
	}
}

func TestAdapterPermissiveFallbacks(t *testing.T) {
	engine := newScriptedEngine()
	a := NewRulesEngineAdapter(engine, quietLogger)
	if _, err := a.ApplyMove(Permissive, MustParseSquare("e2"), MustParseSquare("e4"), NoPieceType); err != nil {
		t.Fatalf("failed to move: %v", err)
	}
	if turn, _ := a.TurnToMove(Permissive); turn != Black {
		t.Fatalf("expected black to move, got %s", turn)
	}
	known, err := a.CurrentBoard(Permissive)
	if err != nil {
		t.Fatalf("failed to read board: %v", err)
	}
	for op := range map[string]bool{"board": true, "turn": true, "undo": true, "checkmate": true, "moves": true, "piece": true, "status": true, "load": true} {
		engine.fail[op] = true
	}

	if b, err := a.CurrentBoard(Permissive); err != nil || b != known {
		t.Errorf("expected last known board, got %s (%v)", b, err)
	}
	if turn, err := a.TurnToMove(Permissive); err != nil || turn != Black {
		t.Errorf("expected last known turn black, got %s (%v)", turn, err)
	}
	if _, ok, err := a.UndoLast(Permissive); err != nil || ok {
		t.Errorf("expected silent undo failure, got ok=%t err=%v", ok, err)
	}
	if mate, err := a.IsInCheckmate(Permissive); err != nil || mate {
		t.Errorf("expected false, got %t (%v)", mate, err)
	}
	if squares, err := a.LegalMovesFrom(Permissive, MustParseSquare("e7")); err != nil || squares == nil || len(squares) != 0 {
		t.Errorf("expected empty list, got %v (%v)", squares, err)
	}
	if _, ok, err := a.PieceAt(Permissive, MustParseSquare("e4")); err != nil || ok {
		t.Errorf("expected empty square, got ok=%t err=%v", ok, err)
	}
	if status, err := a.StatusSnapshot(Permissive); err != nil || status != (GameStatus{}) {
		t.Errorf("expected zero status, got %+v (%v)", status, err)
	}
	if b, err := a.Load(Permissive, StartFEN); err != nil || b != (Board{}) {
		t.Errorf("expected empty board for failed load, got %s (%v)", b, err)
	}
	if b, _ := a.CurrentBoard(Permissive); b != (Board{}) {
		t.Errorf("expected failed load to reset the last known board, got %s", b)
	}
}

func TestAdapterSyntheticMove(t *testing.T) {
	engine := newScriptedEngine()
	a := NewRulesEngineAdapter(engine, quietLogger)
	before, _ := engine.FEN()

	move, err := a.ApplyMove(Permissive, MustParseSquare("e2"), MustParseSquare("e5"), NoPieceType)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !move.Synthetic || move.SAN != "e2-e5" || move.LAN != "e2-e5" {
		t.Errorf("unexpected synthetic move %+v", move)
	}
	if move.Piece != Pawn || move.Color != White || move.Before != before || move.After != before {
		t.Errorf("unexpected synthetic move %+v", move)
	}
	if after, _ := engine.FEN(); after != before {
		t.Errorf("expected engine position untouched, got %s", after)
	}

	_, err = a.ApplyMove(Strict, MustParseSquare("e2"), MustParseSquare("e5"), NoPieceType)
	if !errors.Is(err, ErrRulesViolation) {
		t.Errorf("expected rules violation in strict mode, got %v", err)
	}
}

func TestAdapterLoad(t *testing.T) {
	const noBlackKing = "8/8/8/8/8/8/8/4K3 w - - 0 1"

	t.Run("Strict", func(t *testing.T) {
		a := NewRulesEngineAdapter(NewChessEngine(), quietLogger)
		_, err := a.Load(Strict, noBlackKing)
		var rv *RulesViolation
		if !errors.As(err, &rv) {
			t.Fatalf("expected rules violation, got %v", err)
		}
	})

	t.Run("Permissive", func(t *testing.T) {
		a := NewRulesEngineAdapter(NewChessEngine(), quietLogger)
		b, err := a.Load(Permissive, noBlackKing)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if b.Placement() != "8/8/8/8/8/8/8/4K3" {
			t.Errorf("expected raw placement, got %s", b.Placement())
		}
	})

	t.Run("Permissive unparseable", func(t *testing.T) {
		a := NewRulesEngineAdapter(NewChessEngine(), quietLogger)
		b, err := a.Load(Permissive, "garbage")
		if err != nil || b != (Board{}) {
			t.Errorf("expected empty board, got %s (%v)", b, err)
		}
	})
}
