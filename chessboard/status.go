package chessboard

// GameStatus is a snapshot of the game state reported by the rules engine.
type GameStatus struct {
	IsCheck                bool   `json:"isCheck"`
	IsCheckmate            bool   `json:"isCheckmate"`
	IsDraw                 bool   `json:"isDraw"`
	IsStalemate            bool   `json:"isStalemate"`
	IsThreefoldRepetition  bool   `json:"isThreefoldRepetition"`
	IsInsufficientMaterial bool   `json:"isInsufficientMaterial"`
	IsGameOver             bool   `json:"isGameOver"`
	FEN                    string `json:"fen"`
	Turn                   Color  `json:"turn,omitempty"`
}

// MoveState is the state half of the move callback payload.
type MoveState struct {
	GameStatus
	InPromotion bool `json:"in_promotion"`
}

// MovePayload is what the move callback receives after every successful move.
type MovePayload struct {
	Move  Move      `json:"move"`
	State MoveState `json:"state"`
}
