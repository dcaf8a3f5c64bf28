package chessboard

import (
	"log/slog"
	"slices"
)

// Highlight marks a square in a colour.
type Highlight struct {
	Square Square `json:"square"`
	Color  string `json:"color"`
}

// MoveOrchestrator runs the move pipeline and the operations a host surface
// exposes on a board session. It is not safe for concurrent use: callers
// serialise every call, as a UI event loop would.
type MoveOrchestrator struct {
	opts       SessionOptions
	mode       ValidationMode
	log        *slog.Logger
	adapter    *RulesEngineAdapter
	store      *BoardStateStore
	kings      *KingLocator
	promotions *PromotionCoordinator
	mapper     CoordinateMapper

	turn       Color
	selected   Square
	targets    []Square
	highlights map[Square]string
}

// NewMoveOrchestrator wires an orchestrator around an adapter and the store it
// publishes to. It does not load a position; see NewSession.
func NewMoveOrchestrator(adapter *RulesEngineAdapter, store *BoardStateStore, opts ...SessionOption) *MoveOrchestrator {
	sessionOpts := defaultSessionOptions
	for _, opt := range opts {
		opt(&sessionOpts)
	}
	logger := sessionOpts.Logger
	if logger == nil {
		logger = log
	}

	o := &MoveOrchestrator{
		opts:       sessionOpts,
		mode:       sessionOpts.Mode,
		log:        logger,
		adapter:    adapter,
		store:      store,
		kings:      NewKingLocator(adapter),
		promotions: NewPromotionCoordinator(sessionOpts.PromotionPolicy, logger),
		mapper:     sessionOpts.Mapper,
		turn:       White,
		selected:   NoSquare,
		highlights: make(map[Square]string),
	}
	if sessionOpts.OnPromotion != nil {
		o.promotions.OnChange(sessionOpts.OnPromotion)
	}
	if turn, err := adapter.TurnToMove(Permissive); err == nil {
		o.turn = turn
	}
	return o
}

// NewSession builds a complete board session on engine and loads the
// configured start position. In Strict mode an illegal position fails here.
func NewSession(engine RulesEngine, opts ...SessionOption) (*MoveOrchestrator, error) {
	sessionOpts := defaultSessionOptions
	for _, opt := range opts {
		opt(&sessionOpts)
	}
	adapter := NewRulesEngineAdapter(engine, sessionOpts.Logger)
	o := NewMoveOrchestrator(adapter, NewBoardStateStore(Board{}), opts...)
	if err := o.ResetBoard(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *MoveOrchestrator) Mode() ValidationMode {
	return o.mode
}

func (o *MoveOrchestrator) Store() *BoardStateStore {
	return o.store
}

func (o *MoveOrchestrator) Board() Board {
	return o.store.Board()
}

// Turn is the turn indicator as last reported by the adapter.
func (o *MoveOrchestrator) Turn() Color {
	return o.turn
}

func (o *MoveOrchestrator) Mapper() CoordinateMapper {
	return o.mapper
}

// FlipBoard switches which side is drawn at the bottom.
func (o *MoveOrchestrator) FlipBoard() CoordinateMapper {
	o.mapper = o.mapper.Flip()
	return o.mapper
}

// Move is the host entry point for a move request from the gesture layer.
func (o *MoveOrchestrator) Move(from, to Square) error {
	return o.OnMove(from, to)
}

// OnMove runs the move pipeline. A pawn move to its last rank is suspended
// until Resolve supplies the promotion piece; every other move completes
// before OnMove returns.
func (o *MoveOrchestrator) OnMove(from, to Square) error {
	o.clearSelection()

	color, promote, err := o.needsPromotion(from, to)
	if err != nil {
		return err
	}
	if promote {
		return o.promotions.Request(from, to, color, func(piece PieceType) error {
			return o.complete(from, to, piece)
		})
	}
	return o.complete(from, to, NoPieceType)
}

func (o *MoveOrchestrator) needsPromotion(from, to Square) (Color, bool, error) {
	p, ok, err := o.adapter.PieceAt(o.mode, from)
	if err != nil || !ok || p.Type != Pawn {
		return NoColor, false, err
	}
	lastRank := 7
	if p.Color == Black {
		lastRank = 0
	}
	return p.Color, to.Valid() && to.Rank() == lastRank, nil
}

func (o *MoveOrchestrator) complete(from, to Square, promotion PieceType) (err error) {
	move, err := o.adapter.ApplyMove(o.mode, from, to, promotion)
	if err != nil {
		return err
	}
	// The engine has played the move; the store follows it even when a
	// later read fails.
	defer o.publish(&err)

	turn, err := o.adapter.TurnToMove(o.mode)
	if err != nil {
		return err
	}
	o.turn = turn

	mate, err := o.adapter.IsInCheckmate(o.mode)
	if err != nil {
		return err
	}
	if mate {
		king, found, err := o.kings.Find(o.mode, turn)
		if err != nil {
			return err
		}
		if found {
			o.Highlight(king)
		}
	}

	status, err := o.adapter.StatusSnapshot(o.mode)
	if err != nil {
		return err
	}
	if o.opts.OnMove != nil {
		o.opts.OnMove(MovePayload{
			Move: move,
			State: MoveState{
				GameStatus:  status,
				InPromotion: promotion != NoPieceType,
			},
		})
	}

	o.log.Debug("move completed", "san", move.SAN, "synthetic", move.Synthetic)
	return nil
}

// publish copies the engine board into the store. A failed read keeps the
// first error seen.
func (o *MoveOrchestrator) publish(err *error) {
	board, boardErr := o.adapter.CurrentBoard(o.mode)
	if boardErr != nil {
		if *err == nil {
			*err = boardErr
		}
		return
	}
	o.store.Publish(board)
}

// Resolve finishes the pending promotion with piece.
func (o *MoveOrchestrator) Resolve(piece PieceType) error {
	return o.promotions.Resolve(piece)
}

// CancelPromotion abandons the pending promotion; the move is not played.
func (o *MoveOrchestrator) CancelPromotion() bool {
	return o.promotions.Cancel()
}

func (o *MoveOrchestrator) PendingPromotion() (PendingPromotion, bool) {
	return o.promotions.Pending()
}

func (o *MoveOrchestrator) PromotionChoices() []Piece {
	return o.promotions.Choices()
}

// DropAt completes a drag of the piece on from released at pixel p. A
// release off the board, or back on from, only clears the selection.
func (o *MoveOrchestrator) DropAt(from Square, p Point) error {
	to, ok := o.mapper.SquareOf(p)
	if !ok || to == from {
		o.clearSelection()
		return nil
	}
	return o.OnMove(from, to)
}

// Select marks s as the selected square and returns its legal destinations.
func (o *MoveOrchestrator) Select(s Square) ([]Square, error) {
	o.clearSelection()
	if _, ok, err := o.adapter.PieceAt(o.mode, s); err != nil || !ok {
		return nil, err
	}
	targets, err := o.adapter.LegalMovesFrom(o.mode, s)
	if err != nil {
		return nil, err
	}
	o.selected = s
	o.targets = targets
	return slices.Clone(targets), nil
}

// Selection returns the selected square and its destinations, if any.
func (o *MoveOrchestrator) Selection() (Square, []Square) {
	return o.selected, slices.Clone(o.targets)
}

func (o *MoveOrchestrator) clearSelection() {
	o.selected = NoSquare
	o.targets = nil
}

// Undo takes back the last move. ok is false when there was nothing to undo.
func (o *MoveOrchestrator) Undo() (move Move, ok bool, err error) {
	o.promotions.Cancel()
	o.clearSelection()
	o.ResetAllHighlights()

	move, ok, err = o.adapter.UndoLast(o.mode)
	if err != nil || !ok {
		return Move{}, false, err
	}
	defer o.publish(&err)

	turn, err := o.adapter.TurnToMove(o.mode)
	if err != nil {
		return move, true, err
	}
	o.turn = turn
	return move, true, nil
}

// ResetBoard loads fen, or the session's start position when fen is empty.
func (o *MoveOrchestrator) ResetBoard(fen ...string) error {
	position := o.opts.FEN
	if len(fen) > 0 && fen[0] != "" {
		position = fen[0]
	}

	board, err := o.adapter.Load(o.mode, position)
	if err != nil {
		return err
	}
	o.promotions.Cancel()
	o.clearSelection()
	o.ResetAllHighlights()

	turn, err := o.adapter.TurnToMove(o.mode)
	if err != nil {
		return err
	}
	o.turn = turn
	o.store.Publish(board)
	return nil
}

// State returns the current game status.
func (o *MoveOrchestrator) State() (GameStatus, error) {
	return o.adapter.StatusSnapshot(o.mode)
}

// Highlight marks s, in DefaultHighlightColor unless a colour is given.
func (o *MoveOrchestrator) Highlight(s Square, color ...string) {
	if !s.Valid() {
		return
	}
	h := Highlight{Square: s, Color: DefaultHighlightColor}
	if len(color) > 0 && color[0] != "" {
		h.Color = color[0]
	}
	o.highlights[s] = h.Color
	if o.opts.OnHighlight != nil {
		o.opts.OnHighlight(h)
	}
}

func (o *MoveOrchestrator) ResetAllHighlights() {
	clear(o.highlights)
	if o.opts.OnHighlightReset != nil {
		o.opts.OnHighlightReset()
	}
}

// Highlights lists the highlighted squares from a1 to h8.
func (o *MoveOrchestrator) Highlights() []Highlight {
	highlights := make([]Highlight, 0, len(o.highlights))
	for s, c := range o.highlights {
		highlights = append(highlights, Highlight{Square: s, Color: c})
	}
	slices.SortFunc(highlights, func(a, b Highlight) int {
		return int(a.Square) - int(b.Square)
	})
	return highlights
}
