package chessboard

// KingLocator finds a king on the engine's current board.
type KingLocator struct {
	adapter *RulesEngineAdapter
}

func NewKingLocator(adapter *RulesEngineAdapter) *KingLocator {
	return &KingLocator{adapter: adapter}
}

// Find scans the board for the king of colour c. In Strict mode a failed
// board lookup is returned as an error; in Permissive mode it reads as not
// found rather than as a stale square.
func (k *KingLocator) Find(mode ValidationMode, c Color) (Square, bool, error) {
	b, live, err := k.adapter.readBoard(mode, "find king")
	if err != nil || !live {
		return NoSquare, false, err
	}
	sq, ok := b.Find(Piece{Type: King, Color: c})
	return sq, ok, nil
}
