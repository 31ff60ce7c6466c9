package rota

import "errors"

// Fatal input error categories from spec.md §7. The core raises a
// single structured failure on these; solver-level infeasibility and
// timeout are not errors — they're returned as SolveResult data.
var (
	// ErrInputShape covers missing required configuration fields
	// (cycle window, pre-cycle-A name), missing required regions, and
	// malformed dates.
	ErrInputShape = errors.New("input shape")

	// ErrInputSemantics covers no active consultants and end < start.
	ErrInputSemantics = errors.New("input semantics")

	// ErrLeaveValidation covers an end-date earlier than a start-date
	// on a leave request. Rejected at the leave-store boundary; never
	// reaches the core.
	ErrLeaveValidation = errors.New("leave validation")
)

// InputError wraps one of the sentinels above with the detail that
// triggered it, so callers can both errors.Is against the category and
// print something actionable.
type InputError struct {
	Category error
	Detail   string
}

func (e *InputError) Error() string {
	return e.Category.Error() + ": " + e.Detail
}

func (e *InputError) Unwrap() error {
	return e.Category
}

func NewInputShapeError(detail string) error {
	return &InputError{Category: ErrInputShape, Detail: detail}
}

func NewInputSemanticsError(detail string) error {
	return &InputError{Category: ErrInputSemantics, Detail: detail}
}

func NewLeaveValidationError(detail string) error {
	return &InputError{Category: ErrLeaveValidation, Detail: detail}
}
