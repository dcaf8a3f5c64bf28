package chessboard

import (
	"encoding/json"
	"testing"
)

func TestParseSquare(t *testing.T) {
	for _, s := range AllSquares() {
		parsed, err := ParseSquare(s.String())
		if err != nil {
			t.Fatalf("failed to parse %s: %v", s, err)
		}
		if parsed != s {
			t.Errorf("expected %s, got %s", s, parsed)
		}
	}

	for _, label := range []string{"", "e", "e9", "i1", "a0", "e44", "E4"} {
		if _, err := ParseSquare(label); err == nil {
			t.Errorf("expected error for %q", label)
		}
	}
}

func TestSquareFileRank(t *testing.T) {
	sq := MustParseSquare("e4")
	if sq.File() != 4 || sq.Rank() != 3 {
		t.Errorf("expected file 4 rank 3, got file %d rank %d", sq.File(), sq.Rank())
	}
	if NewSquare(8, 0) != NoSquare || NewSquare(0, -1) != NoSquare {
		t.Error("expected off-board coordinates to give NoSquare")
	}
}

func TestSquareJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		From Square `json:"from"`
		To   Square `json:"to"`
	}{MustParseSquare("g1"), NoSquare})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if string(data) != `{"from":"g1","to":null}` {
		t.Errorf("unexpected JSON %s", data)
	}

	var sq Square
	if err := json.Unmarshal([]byte(`"h8"`), &sq); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if sq != MustParseSquare("h8") {
		t.Errorf("expected h8, got %s", sq)
	}
	if err := json.Unmarshal([]byte(`"z9"`), &sq); err == nil {
		t.Error("expected error for invalid square")
	}
}
