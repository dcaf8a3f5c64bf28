package chessboard

import (
	"errors"
	"testing"
)

func TestKingLocator(t *testing.T) {
	engine := newScriptedEngine()
	k := NewKingLocator(NewRulesEngineAdapter(engine, quietLogger))

	sq, ok, err := k.Find(Strict, Black)
	if err != nil || !ok || sq != MustParseSquare("e8") {
		t.Errorf("expected e8, got %s ok=%t err=%v", sq, ok, err)
	}

	engine.fail["board"] = true
	if _, _, err := k.Find(Strict, White); !errors.Is(err, ErrRulesViolation) {
		t.Errorf("expected rules violation, got %v", err)
	}
	sq, ok, err = k.Find(Permissive, White)
	if err != nil || ok || sq != NoSquare {
		t.Errorf("expected not found, got %s ok=%t err=%v", sq, ok, err)
	}
}
