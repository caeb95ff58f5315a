package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hirelink/points/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// InsufficientPointsResponse carries the shortage detail so clients can
// render a "buy N more points" prompt without parsing the message text.
type InsufficientPointsResponse struct {
	Error    string `json:"error"`
	Required int    `json:"required"`
	Current  int    `json:"current"`
	Shortage int    `json:"shortage"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Log the error - we can't write to response at this point since headers are sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	// Write the buffer to the response
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error to an HTTP response. Insufficient
// points get the structured shortage payload; everything else gets the plain
// error envelope.
func respondServiceError(w http.ResponseWriter, err error) {
	var insufficient *domain.InsufficientPointsError
	if errors.As(err, &insufficient) {
		respondJSON(w, http.StatusPaymentRequired, InsufficientPointsResponse{
			Error:    ErrMsgNotEnoughPoints,
			Required: insufficient.Required,
			Current:  insufficient.Current,
			Shortage: insufficient.Shortage,
		})
		return
	}

	status, message := mapServiceErrorToUserMessage(err)
	respondError(w, status, message)
}

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	// Account messages
	ErrMsgAccountNotFoundError  = "Account not found"
	ErrMsgAccountExistsError    = "Account already exists"
	ErrMsgNotEnoughPoints       = "Not enough points"
	ErrMsgEntryNotFoundError    = "Transaction not found"
	ErrMsgEntrySettledError     = "Transaction has already been settled"
	ErrMsgAmountPositiveError   = "Amount must be positive"

	// Pricing messages
	ErrMsgNoPriceConfiguredErr = "No price is configured for that action"
	ErrMsgInvalidTierError     = "Invalid experience tier"
	ErrMsgInvalidPromoError    = "Invalid promo code"

	// Purchase messages
	ErrMsgPackageNotFoundError = "Package not found"

	// Conflict messages
	ErrMsgConflictRetryError = "Wallet is busy. Please retry."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
// This function converts internal service errors to appropriate HTTP status codes and messages
// that users can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	// Check for specific domain errors
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, ErrMsgAccountNotFoundError
	case errors.Is(err, domain.ErrAccountAlreadyExists):
		return http.StatusConflict, ErrMsgAccountExistsError
	case errors.Is(err, domain.ErrInsufficientPoints):
		return http.StatusPaymentRequired, ErrMsgNotEnoughPoints
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound, ErrMsgEntryNotFoundError
	case errors.Is(err, domain.ErrEntrySettled):
		return http.StatusConflict, ErrMsgEntrySettledError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgAmountPositiveError
	case errors.Is(err, domain.ErrMissingPrice):
		return http.StatusBadRequest, ErrMsgNoPriceConfiguredErr
	case errors.Is(err, domain.ErrInvalidTier):
		return http.StatusBadRequest, ErrMsgInvalidTierError
	case errors.Is(err, domain.ErrInvalidPromoCode):
		return http.StatusBadRequest, ErrMsgInvalidPromoError
	case errors.Is(err, domain.ErrPackageNotFound):
		return http.StatusNotFound, ErrMsgPackageNotFoundError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return http.StatusConflict, ErrMsgConflictRetryError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	// Keep short non-domain messages visible so mocked failures in tests
	// surface their text instead of a generic message
	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
