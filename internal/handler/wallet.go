package handler

import (
	"net/http"
	"time"

	"github.com/hirelink/points/internal/domain"
	"github.com/hirelink/points/internal/logger"
	"github.com/hirelink/points/internal/repository"
	"github.com/hirelink/points/internal/wallet"
)

const defaultTransactionLimit = 50

type CreateAccountRequest struct {
	AccountID string `json:"account_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Role      string `json:"role" validate:"required,role"`
	Tier      string `json:"tier" validate:"omitempty,tier"`
}

// HandleCreateAccount creates a wallet account with its signup allocation
// @Summary Create a wallet account
// @Description Creates a wallet for an account and grants the initial role/tier allocation as an earned bonus entry.
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "Account details"
// @Success 201 {object} domain.WalletAccount
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /wallet/create [post]
func HandleCreateAccount(svc wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateAccountRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create account"); err != nil {
			return
		}

		account, err := svc.CreateAccount(r.Context(), req.AccountID, domain.Role(req.Role), req.Tier)
		if err != nil {
			log.Error("Failed to create account", "error", err, "account_id", req.AccountID)
			respondServiceError(w, err)
			return
		}

		log.Info("Account created", "account_id", account.AccountID, "role", account.Role, "balance", account.CurrentPoints)

		respondJSON(w, http.StatusCreated, account)
	}
}

// HandleGetBalance returns the current wallet state for an account
// @Summary Get wallet balance
// @Description Returns the account's current points and lifetime totals.
// @Tags wallet
// @Produce json
// @Param account_id query string true "Account ID"
// @Success 200 {object} domain.WalletAccount
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /wallet [get]
func HandleGetBalance(svc wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		accountID, ok := GetQueryParam(r, w, "account_id")
		if !ok {
			return
		}

		account, err := svc.GetAccount(r.Context(), accountID)
		if err != nil {
			log.Warn("Failed to get balance", "error", err, "account_id", accountID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, account)
	}
}

// TransactionsResponse wraps a page of ledger entries.
type TransactionsResponse struct {
	AccountID    string               `json:"account_id"`
	Transactions []domain.LedgerEntry `json:"transactions"`
}

// HandleGetTransactions returns ledger history for an account
// @Summary Get transaction history
// @Description Returns ledger entries for an account, newest first. Supports kind, category, status, since and until filters.
// @Tags wallet
// @Produce json
// @Param account_id query string true "Account ID"
// @Param kind query string false "Entry kind filter (earned, spent, purchased, refunded)"
// @Param category query string false "Category filter"
// @Param status query string false "Status filter (completed, pending, failed)"
// @Param since query string false "RFC3339 lower bound"
// @Param until query string false "RFC3339 upper bound"
// @Param limit query int false "Max entries (default 50)"
// @Success 200 {object} TransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Router /wallet/transactions [get]
func HandleGetTransactions(svc wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		accountID, ok := GetQueryParam(r, w, "account_id")
		if !ok {
			return
		}

		limit, ok := GetLimitParam(r, w, defaultTransactionLimit)
		if !ok {
			return
		}

		filter := repository.EntryFilter{AccountID: accountID, Limit: limit}

		if raw := r.URL.Query().Get("kind"); raw != "" {
			kind := domain.EntryKind(raw)
			filter.Kind = &kind
		}
		if raw := r.URL.Query().Get("category"); raw != "" {
			filter.Category = &raw
		}
		if raw := r.URL.Query().Get("status"); raw != "" {
			status := domain.EntryStatus(raw)
			filter.Status = &status
		}
		if raw := r.URL.Query().Get("since"); raw != "" {
			since, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				http.Error(w, "Invalid since parameter", http.StatusBadRequest)
				return
			}
			filter.Since = &since
		}
		if raw := r.URL.Query().Get("until"); raw != "" {
			until, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				http.Error(w, "Invalid until parameter", http.StatusBadRequest)
				return
			}
			filter.Until = &until
		}

		entries, err := svc.GetEntries(r.Context(), filter)
		if err != nil {
			log.Error("Failed to get transactions", "error", err, "account_id", accountID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, TransactionsResponse{
			AccountID:    accountID,
			Transactions: entries,
		})
	}
}

// HandleGetStats returns the spending breakdown for an account
// @Summary Get wallet stats
// @Description Returns lifetime totals and the per-category spending breakdown, computed from completed entries only.
// @Tags wallet
// @Produce json
// @Param account_id query string true "Account ID"
// @Success 200 {object} domain.WalletStats
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /wallet/stats [get]
func HandleGetStats(svc wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		accountID, ok := GetQueryParam(r, w, "account_id")
		if !ok {
			return
		}

		stats, err := svc.GetStats(r.Context(), accountID)
		if err != nil {
			log.Error("Failed to get stats", "error", err, "account_id", accountID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, stats)
	}
}

type CreditRequest struct {
	AccountID   string `json:"account_id" validate:"required,max=100"`
	Amount      int    `json:"amount" validate:"required,min=1,max=100000"`
	Category    string `json:"category" validate:"required,max=50"`
	Description string `json:"description" validate:"max=500"`
}

// EntryResponse wraps a committed ledger entry with the resulting message.
type EntryResponse struct {
	Message string             `json:"message"`
	Entry   domain.LedgerEntry `json:"entry"`
}

// PurchaseResponse adds the USD charge after discounts to the pending
// entry, so clients can show what the applied promo is worth.
type PurchaseResponse struct {
	Message         string             `json:"message"`
	Entry           domain.LedgerEntry `json:"entry"`
	PriceUSD        float64            `json:"price_usd"`
	DiscountApplied float64            `json:"discount_applied"`
}

// HandleCredit adds points to an account
// @Summary Credit points
// @Description Appends an earned entry and increases the balance.
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body CreditRequest true "Credit details"
// @Success 200 {object} EntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /wallet/credit [post]
func HandleCredit(svc wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreditRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Credit points"); err != nil {
			return
		}

		entry, err := svc.Credit(r.Context(), req.AccountID, req.Amount, req.Category, req.Description)
		if err != nil {
			log.Error("Failed to credit points", "error", err, "account_id", req.AccountID, "amount", req.Amount)
			respondServiceError(w, err)
			return
		}

		log.Info("Points credited", "account_id", req.AccountID, "amount", req.Amount, "category", req.Category)

		respondJSON(w, http.StatusOK, EntryResponse{Message: MsgPointsCreditedSuccess, Entry: *entry})
	}
}

type DebitRequest struct {
	AccountID   string `json:"account_id" validate:"required,max=100"`
	Amount      int    `json:"amount" validate:"required,min=1,max=100000"`
	Category    string `json:"category" validate:"required,max=50"`
	Description string `json:"description" validate:"max=500"`
}

// HandleDebit spends points from an account
// @Summary Debit points
// @Description Appends a spent entry and decreases the balance. Fails with a shortage payload when the balance is too low.
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body DebitRequest true "Debit details"
// @Success 200 {object} EntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} InsufficientPointsResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /wallet/debit [post]
func HandleDebit(svc wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req DebitRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Debit points"); err != nil {
			return
		}

		entry, err := svc.Debit(r.Context(), req.AccountID, req.Amount, req.Category, req.Description)
		if err != nil {
			log.Warn("Failed to debit points", "error", err, "account_id", req.AccountID, "amount", req.Amount)
			respondServiceError(w, err)
			return
		}

		log.Info("Points debited", "account_id", req.AccountID, "amount", req.Amount, "category", req.Category)

		respondJSON(w, http.StatusOK, EntryResponse{Message: MsgPointsDebitedSuccess, Entry: *entry})
	}
}

type RefundRequest struct {
	AccountID   string `json:"account_id" validate:"required,max=100"`
	Amount      int    `json:"amount" validate:"required,min=1,max=100000"`
	Description string `json:"description" validate:"max=500"`
}

// HandleRefund returns points from a prior spend
// @Summary Refund points
// @Description Appends a refunded entry compensating a prior debit. The original entry is never mutated.
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body RefundRequest true "Refund details"
// @Success 200 {object} EntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /wallet/refund [post]
func HandleRefund(svc wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RefundRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Refund points"); err != nil {
			return
		}

		entry, err := svc.Refund(r.Context(), req.AccountID, req.Amount, req.Description)
		if err != nil {
			log.Error("Failed to refund points", "error", err, "account_id", req.AccountID, "amount", req.Amount)
			respondServiceError(w, err)
			return
		}

		log.Info("Points refunded", "account_id", req.AccountID, "amount", req.Amount)

		respondJSON(w, http.StatusOK, EntryResponse{Message: MsgPointsRefundedSuccess, Entry: *entry})
	}
}

type PurchaseRequest struct {
	AccountID string `json:"account_id" validate:"required,max=100"`
	PackageID string `json:"package_id" validate:"required,max=50"`
	PromoCode string `json:"promo_code" validate:"omitempty,max=20"`
}

// HandlePurchase starts a package purchase
// @Summary Start a package purchase
// @Description Creates a pending purchased entry for a catalog package. The balance does not move until the purchase is settled.
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body PurchaseRequest true "Purchase details"
// @Success 202 {object} PurchaseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /wallet/purchase [post]
func HandlePurchase(svc wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PurchaseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Purchase package"); err != nil {
			return
		}

		receipt, err := svc.Purchase(r.Context(), req.AccountID, req.PackageID, req.PromoCode)
		if err != nil {
			log.Error("Failed to start purchase", "error", err, "account_id", req.AccountID, "package_id", req.PackageID)
			respondServiceError(w, err)
			return
		}

		log.Info("Purchase started", "account_id", req.AccountID, "package_id", req.PackageID, "entry_id", receipt.Entry.EntryID)

		respondJSON(w, http.StatusAccepted, PurchaseResponse{
			Message:         MsgPurchaseStarted,
			Entry:           receipt.Entry,
			PriceUSD:        receipt.PriceUSD,
			DiscountApplied: receipt.DiscountApplied,
		})
	}
}

type SettlePurchaseRequest struct {
	EntryID   string `json:"entry_id" validate:"required,uuid4"`
	Succeeded bool   `json:"succeeded"`
}

// HandleSettlePurchase completes or fails a pending purchase
// @Summary Settle a pending purchase
// @Description Transitions a pending purchased entry to completed or failed. Points land on the balance only on success.
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body SettlePurchaseRequest true "Settlement details"
// @Success 200 {object} EntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /wallet/purchase/settle [post]
func HandleSettlePurchase(svc wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SettlePurchaseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Settle purchase"); err != nil {
			return
		}

		entry, err := svc.SettlePurchase(r.Context(), req.EntryID, req.Succeeded)
		if err != nil {
			log.Error("Failed to settle purchase", "error", err, "entry_id", req.EntryID)
			respondServiceError(w, err)
			return
		}

		log.Info("Purchase settled", "entry_id", entry.EntryID, "status", entry.Status)

		respondJSON(w, http.StatusOK, EntryResponse{Message: MsgPurchaseSettled, Entry: *entry})
	}
}
