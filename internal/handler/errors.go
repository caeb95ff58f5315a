package handler

import "net/http"

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	MsgPointsCreditedSuccess = "Points credited successfully"
	MsgPointsDebitedSuccess  = "Points debited successfully"
	MsgPointsRefundedSuccess = "Points refunded successfully"
	MsgPurchaseStarted       = "Purchase started"
	MsgPurchaseSettled       = "Purchase settled"
)

// HandleMethodNotAllowed replaces the router's plain-text 405 with the
// JSON error envelope the rest of the API uses.
func HandleMethodNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, ErrMsgMethodNotAllowed)
	}
}
