package handler

import (
	"net/http"

	"github.com/hirelink/points/internal/domain"
	"github.com/hirelink/points/internal/logger"
	"github.com/hirelink/points/internal/metrics"
	"github.com/hirelink/points/internal/pricing"
)

// QuoteRequest prices one action against a subject profile without touching
// any wallet. The subject is required for resume access pricing and ignored
// by flat-priced actions.
type QuoteRequest struct {
	Subject domain.SubjectProfile `json:"subject"`
	Action  domain.ActionRequest  `json:"action"`
}

// QuoteResponse returns the full pricing breakdown for one action.
type QuoteResponse struct {
	ActionType domain.ActionType    `json:"action_type"`
	Quantity   int                  `json:"quantity"`
	UnitCost   int                  `json:"unit_cost"`
	TotalCost  int                  `json:"total_cost"`
	Result     domain.PricingResult `json:"result"`
}

// HandleQuote prices an action without charging for it
// @Summary Quote an action price
// @Description Computes the point cost of an action for a subject profile. Read-only, no wallet is touched.
// @Tags pricing
// @Accept json
// @Produce json
// @Param request body QuoteRequest true "Subject and action"
// @Success 200 {object} QuoteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /pricing/quote [post]
func HandleQuote(engine *pricing.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req QuoteRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Quote"); err != nil {
			return
		}

		if req.Action.Quantity == 0 {
			req.Action.Quantity = 1
		}

		result, err := engine.Price(req.Subject, req.Action)
		if err != nil {
			log.Warn("Failed to price action", "error", err, "action_type", req.Action.Type)
			respondServiceError(w, err)
			return
		}

		metrics.QuotesServed.WithLabelValues(string(req.Action.Type)).Inc()

		log.Debug("Quote served",
			"action_type", req.Action.Type,
			"final_cost", result.FinalCost,
			"capped", result.Capped)

		respondJSON(w, http.StatusOK, QuoteResponse{
			ActionType: req.Action.Type,
			Quantity:   req.Action.Quantity,
			UnitCost:   result.FinalCost,
			TotalCost:  result.FinalCost * req.Action.Quantity,
			Result:     *result,
		})
	}
}

// HandlePricingTable exposes the active pricing configuration
// @Summary Get the pricing table
// @Description Returns the active base costs, multipliers and caps.
// @Tags pricing
// @Produce json
// @Success 200 {object} pricing.Table
// @Router /pricing/table [get]
func HandlePricingTable(engine *pricing.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, engine.Table())
	}
}
