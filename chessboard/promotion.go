package chessboard

import (
	"fmt"
	"log/slog"
)

// PromotionPolicy decides what happens to a promotion request that arrives
// while another one is still waiting for a piece.
type PromotionPolicy int

const (
	// ReplacePending drops the waiting request; its continuation never runs.
	ReplacePending PromotionPolicy = iota
	// RejectWhilePending refuses the new request with ErrPromotionPending.
	RejectWhilePending
)

// PendingPromotion describes a move suspended until a piece is chosen.
type PendingPromotion struct {
	From  Square `json:"from"`
	To    Square `json:"to"`
	Color Color  `json:"color"`
}

// PromotionCoordinator holds at most one suspended promotion.
type PromotionCoordinator struct {
	policy   PromotionPolicy
	log      *slog.Logger
	pending  *PendingPromotion
	resume   func(PieceType) error
	listener func(PendingPromotion, bool)
}

func NewPromotionCoordinator(policy PromotionPolicy, logger *slog.Logger) *PromotionCoordinator {
	if logger == nil {
		logger = log
	}
	return &PromotionCoordinator{policy: policy, log: logger}
}

// OnChange registers fn to be told whenever a request becomes pending
// (active true) or the slot is cleared (active false).
func (c *PromotionCoordinator) OnChange(fn func(p PendingPromotion, active bool)) {
	c.listener = fn
}

func (c *PromotionCoordinator) notify(p PendingPromotion, active bool) {
	if c.listener != nil {
		c.listener(p, active)
	}
}

// Request stores a new pending promotion and the continuation that finishes
// the move.
func (c *PromotionCoordinator) Request(from, to Square, color Color, resume func(PieceType) error) error {
	if c.pending != nil {
		if c.policy == RejectWhilePending {
			return ErrPromotionPending
		}
		c.log.Warn("promotion request replaced, previous move dropped",
			"from", c.pending.From, "to", c.pending.To)
	}
	c.pending = &PendingPromotion{From: from, To: to, Color: color}
	c.resume = resume
	c.notify(*c.pending, true)
	return nil
}

// Resolve clears the slot and runs the held continuation with piece.
func (c *PromotionCoordinator) Resolve(piece PieceType) error {
	if c.pending == nil {
		return ErrNoPendingPromotion
	}
	if !piece.Promotable() {
		return fmt.Errorf("%w: %q", ErrInvalidPromotion, piece)
	}
	p, resume := *c.pending, c.resume
	c.pending, c.resume = nil, nil
	c.notify(p, false)
	return resume(piece)
}

// Cancel abandons the pending request without running its continuation.
func (c *PromotionCoordinator) Cancel() bool {
	if c.pending == nil {
		return false
	}
	p := *c.pending
	c.pending, c.resume = nil, nil
	c.notify(p, false)
	return true
}

func (c *PromotionCoordinator) Pending() (PendingPromotion, bool) {
	if c.pending == nil {
		return PendingPromotion{}, false
	}
	return *c.pending, true
}

// Choices lists the pieces offered for the pending promotion, coloured for
// the side promoting. It is empty when nothing is pending.
func (c *PromotionCoordinator) Choices() []Piece {
	if c.pending == nil {
		return nil
	}
	choices := make([]Piece, 0, len(PromotionTypes))
	for _, t := range PromotionTypes {
		choices = append(choices, Piece{Type: t, Color: c.pending.Color})
	}
	return choices
}
