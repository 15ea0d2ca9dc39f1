package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every layer. Structured errors below unwrap to
// these sentinels, so callers can match with errors.Is and still extract
// the details with errors.As.
var (
	ErrValidation           = errors.New("validation error")
	ErrConflict             = errors.New("conflict")
	ErrNotAvailable         = errors.New("not available")
	ErrUnbalancedSettlement = errors.New("unbalanced settlement")
	ErrNotFound             = errors.New("not found")
)

// ValidationError reports malformed or temporally invalid input
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Reason)
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConflictError reports a cell already held by an active appointment
type ConflictError struct {
	Cell       Cell
	ExistingID int64 // 0 when the holder is unknown (detected by the unique index)
}

func (e *ConflictError) Error() string {
	if e.ExistingID == 0 {
		return fmt.Sprintf("conflict: cell %s is already booked", e.Cell)
	}
	return fmt.Sprintf("conflict: cell %s is already booked by appointment %d", e.Cell, e.ExistingID)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NotAvailableError reports an offering not eligible at a cell
type NotAvailableError struct {
	Cell       Cell
	OfferingID int64
}

func (e *NotAvailableError) Error() string {
	return fmt.Sprintf("not available: offering %d at %s", e.OfferingID, e.Cell)
}

func (e *NotAvailableError) Unwrap() error { return ErrNotAvailable }

// UnbalancedSettlementError reports a cart total that differs from the payments total
type UnbalancedSettlementError struct {
	CartTotal     Money
	PaymentsTotal Money
}

func (e *UnbalancedSettlementError) Error() string {
	return fmt.Sprintf("unbalanced settlement: cart total %s, payments total %s", e.CartTotal, e.PaymentsTotal)
}

func (e *UnbalancedSettlementError) Unwrap() error { return ErrUnbalancedSettlement }

// NotFoundError reports a referenced id that does not exist
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// IsDomainError reports whether err belongs to the shared taxonomy
func IsDomainError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrNotAvailable) ||
		errors.Is(err, ErrUnbalancedSettlement) ||
		errors.Is(err, ErrNotFound)
}
