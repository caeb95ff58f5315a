package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Account errors
	ErrMsgAccountNotFound      = "account not found"
	ErrMsgAccountAlreadyExists = "account already exists"

	// Ledger errors
	ErrMsgInsufficientPoints = "insufficient points"
	ErrMsgEntryNotFound      = "ledger entry not found"
	ErrMsgEntrySettled       = "ledger entry already settled"
	ErrMsgInvalidAmount      = "amount must be positive"

	// Pricing errors
	ErrMsgMissingPrice = "no price configured"
	ErrMsgInvalidTier  = "invalid experience tier"

	// Discount errors
	ErrMsgInvalidPromoCode = "invalid promo code"

	// Catalog errors
	ErrMsgPackageNotFound = "package not found"

	// Validation errors (used for partial matches)
	ErrMsgInvalidQuantity = "quantity" // Used in contains checks for quantity errors
	ErrMsgInvalidInput    = "invalid input"

	// Database/System errors
	ErrMsgDatabaseError       = "database error"
	ErrMsgConcurrencyConflict = "concurrent balance update conflict"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Account errors
	ErrAccountNotFound      = errors.New(ErrMsgAccountNotFound)
	ErrAccountAlreadyExists = errors.New(ErrMsgAccountAlreadyExists)

	// Ledger errors
	ErrEntryNotFound = errors.New(ErrMsgEntryNotFound)
	ErrEntrySettled  = errors.New(ErrMsgEntrySettled)
	ErrInvalidAmount = errors.New(ErrMsgInvalidAmount)

	// Pricing errors. ErrMissingPrice means a deploy shipped a pricing table
	// with a hole in it - a data bug, not a runtime condition to default.
	ErrMissingPrice = errors.New(ErrMsgMissingPrice)
	ErrInvalidTier  = errors.New(ErrMsgInvalidTier)

	// Discount errors
	ErrInvalidPromoCode = errors.New(ErrMsgInvalidPromoCode)

	// Catalog errors
	ErrPackageNotFound = errors.New(ErrMsgPackageNotFound)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// Database/System errors
	ErrDatabaseError       = errors.New(ErrMsgDatabaseError)
	ErrConcurrencyConflict = errors.New(ErrMsgConcurrencyConflict)
)

// ErrInsufficientPoints is the sentinel for errors.Is checks; the value
// actually returned is always *InsufficientPointsError.
var ErrInsufficientPoints = errors.New(ErrMsgInsufficientPoints)

// InsufficientPointsError is returned when a debit exceeds the account
// balance. It carries the numbers the UI needs to render a top-up prompt,
// which is why it is a struct rather than a bare sentinel.
type InsufficientPointsError struct {
	Required int
	Current  int
	Shortage int
}

func NewInsufficientPointsError(required, current int) *InsufficientPointsError {
	return &InsufficientPointsError{
		Required: required,
		Current:  current,
		Shortage: required - current,
	}
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("%s: required %d, have %d (short %d)",
		ErrMsgInsufficientPoints, e.Required, e.Current, e.Shortage)
}

// Is lets errors.Is(err, domain.ErrInsufficientPoints) match the typed error.
func (e *InsufficientPointsError) Is(target error) bool {
	return target == ErrInsufficientPoints
}
