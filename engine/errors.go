package engine

import (
	"errors"
	"fmt"
)

// Failure kinds. Use errors.Is to classify an error returned by the engine.
var (
	// ErrRuleViolation marks an operation that would break an entity
	// invariant. The entity is left unchanged.
	ErrRuleViolation = errors.New("rule violation")
	// ErrInvalidChoice marks a choice that failed validation. The player who
	// made it is ejected.
	ErrInvalidChoice = errors.New("invalid choice")
	// ErrChooserFailure marks a strategy that failed to answer. Handled the
	// same way as ErrInvalidChoice.
	ErrChooserFailure = errors.New("chooser failure")
	// ErrResourceExhausted is returned when the deck cannot cover a full deal.
	ErrResourceExhausted = errors.New("deck exhausted")
	// ErrInvalidConfiguration is returned when a game cannot be built from
	// the given players, watering hole and deck.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// RuleError describes a rejected entity mutation.
type RuleError struct {
	Op     string // mutator name, e.g. "breed"
	Reason string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *RuleError) Unwrap() error { return ErrRuleViolation }

func ruleErr(op, format string, args ...any) error {
	return &RuleError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

func choiceErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidChoice, fmt.Sprintf(format, args...))
}

func configErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
