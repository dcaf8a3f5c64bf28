package chessboard

import (
	"errors"
	"fmt"
)

var (
	// ErrRulesViolation matches every RulesViolation via errors.Is.
	ErrRulesViolation = errors.New("rules violation")

	ErrNoPendingPromotion = errors.New("no pending promotion")
	ErrPromotionPending   = errors.New("a promotion is already pending")
	ErrInvalidPromotion   = errors.New("invalid promotion piece")
)

// RulesViolation reports a position or move the rules engine refused.
type RulesViolation struct {
	Op    string
	Input string
	Err   error
}

func (e *RulesViolation) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Input, e.Err)
}

func (e *RulesViolation) Unwrap() error {
	return e.Err
}

func (e *RulesViolation) Is(target error) bool {
	return target == ErrRulesViolation
}

func violation(op, input string, err error) error {
	var rv *RulesViolation
	if errors.As(err, &rv) {
		return err
	}
	return &RulesViolation{Op: op, Input: input, Err: err}
}
