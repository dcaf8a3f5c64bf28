package chessboard

import (
	"fmt"
	"strings"
)

// ValidationMode selects how engine failures are treated for a whole board
// session. It is chosen once and handed to every adapter call.
type ValidationMode int

const (
	// Strict makes the rules engine the source of truth. Illegal positions
	// and moves fail with a RulesViolation.
	Strict ValidationMode = iota
	// Permissive replaces every engine failure with a safe default so that
	// callers never see an error.
	Permissive
)

func (m ValidationMode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Permissive:
		return "permissive"
	}
	return fmt.Sprintf("ValidationMode(%d)", int(m))
}

func ParseValidationMode(s string) (ValidationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return Strict, nil
	case "permissive":
		return Permissive, nil
	}
	return Strict, fmt.Errorf("invalid validation mode %q", s)
}

// Set and Type let a ValidationMode be bound directly as a command line flag.
func (m *ValidationMode) Set(s string) error {
	mode, err := ParseValidationMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

func (m *ValidationMode) Type() string {
	return "mode"
}
