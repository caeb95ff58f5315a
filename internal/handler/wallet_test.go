package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelink/points/internal/domain"
	"github.com/hirelink/points/internal/wallet"
)

func newWalletService(t *testing.T) wallet.Service {
	t.Helper()
	return wallet.NewService(wallet.NewFakeRepository(), wallet.DefaultCatalog())
}

func createAccount(t *testing.T, svc wallet.Service, accountID string, role domain.Role, tier string) {
	t.Helper()
	_, err := svc.CreateAccount(context.Background(), accountID, role, tier)
	require.NoError(t, err)
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandleCreateAccount_Success(t *testing.T) {
	// ARRANGE
	svc := newWalletService(t)
	h := HandleCreateAccount(svc)

	// ACT
	rec := postJSON(t, h, "/wallet/create", CreateAccountRequest{
		AccountID: "user-1",
		Role:      "candidate",
		Tier:      "senior",
	})

	// ASSERT
	assert.Equal(t, http.StatusCreated, rec.Code)

	var account domain.WalletAccount
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	assert.Equal(t, "user-1", account.AccountID)
	assert.Equal(t, 50, account.CurrentPoints, "Senior candidate signup allocation")
}

func TestHandleCreateAccount_ValidationFailure(t *testing.T) {
	// ARRANGE
	svc := newWalletService(t)
	h := HandleCreateAccount(svc)

	// ACT - role is not a recognized value
	rec := postJSON(t, h, "/wallet/create", CreateAccountRequest{
		AccountID: "user-1",
		Role:      "superuser",
	})

	// ASSERT
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "role")
}

func TestHandleCreateAccount_Duplicate(t *testing.T) {
	// ARRANGE
	svc := newWalletService(t)
	createAccount(t, svc, "user-1", domain.RoleCandidate, "mid")
	h := HandleCreateAccount(svc)

	// ACT
	rec := postJSON(t, h, "/wallet/create", CreateAccountRequest{
		AccountID: "user-1",
		Role:      "candidate",
		Tier:      "mid",
	})

	// ASSERT
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleCreateAccount_InvalidBody(t *testing.T) {
	svc := newWalletService(t)
	h := HandleCreateAccount(svc)

	req := httptest.NewRequest(http.MethodPost, "/wallet/create", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetBalance_Success(t *testing.T) {
	// ARRANGE
	svc := newWalletService(t)
	createAccount(t, svc, "user-1", domain.RoleRecruiter, "premium")
	h := HandleGetBalance(svc)

	// ACT
	req := httptest.NewRequest(http.MethodGet, "/wallet?account_id=user-1", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	// ASSERT
	assert.Equal(t, http.StatusOK, rec.Code)

	var account domain.WalletAccount
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	assert.Equal(t, 100, account.CurrentPoints)
}

func TestHandleGetBalance_MissingParam(t *testing.T) {
	svc := newWalletService(t)
	h := HandleGetBalance(svc)

	req := httptest.NewRequest(http.MethodGet, "/wallet", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetBalance_NotFound(t *testing.T) {
	svc := newWalletService(t)
	h := HandleGetBalance(svc)

	req := httptest.NewRequest(http.MethodGet, "/wallet?account_id=ghost", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ErrMsgAccountNotFoundError, resp.Error)
}

func TestHandleDebit_Success(t *testing.T) {
	// ARRANGE
	svc := newWalletService(t)
	createAccount(t, svc, "user-1", domain.RoleCandidate, "expert")
	h := HandleDebit(svc)

	// ACT
	rec := postJSON(t, h, "/wallet/debit", DebitRequest{
		AccountID:   "user-1",
		Amount:      30,
		Category:    domain.CategoryResumeAccess,
		Description: "expert resume",
	})

	// ASSERT
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp EntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, MsgPointsDebitedSuccess, resp.Message)
	assert.Equal(t, domain.EntrySpent, resp.Entry.Kind)
	assert.Equal(t, 30, resp.Entry.Amount)
}

func TestHandleDebit_InsufficientPoints(t *testing.T) {
	// ARRANGE - fresher has 20 points
	svc := newWalletService(t)
	createAccount(t, svc, "user-1", domain.RoleCandidate, "fresher")
	h := HandleDebit(svc)

	// ACT
	rec := postJSON(t, h, "/wallet/debit", DebitRequest{
		AccountID: "user-1",
		Amount:    35,
		Category:  domain.CategoryPremiumFeature,
	})

	// ASSERT - structured shortage payload
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	var resp InsufficientPointsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ErrMsgNotEnoughPoints, resp.Error)
	assert.Equal(t, 35, resp.Required)
	assert.Equal(t, 20, resp.Current)
	assert.Equal(t, 15, resp.Shortage)
}

func TestHandleDebit_ValidationFailure(t *testing.T) {
	svc := newWalletService(t)
	h := HandleDebit(svc)

	rec := postJSON(t, h, "/wallet/debit", DebitRequest{
		AccountID: "user-1",
		Amount:    -5,
		Category:  domain.CategoryResumeAccess,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCredit_Success(t *testing.T) {
	// ARRANGE
	svc := newWalletService(t)
	createAccount(t, svc, "user-1", domain.RoleCandidate, "fresher")
	h := HandleCredit(svc)

	// ACT
	rec := postJSON(t, h, "/wallet/credit", CreditRequest{
		AccountID:   "user-1",
		Amount:      15,
		Category:    domain.CategoryBonus,
		Description: "weekly engagement",
	})

	// ASSERT
	assert.Equal(t, http.StatusOK, rec.Code)

	account, err := svc.GetAccount(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 35, account.CurrentPoints)
}

func TestHandleRefund_Success(t *testing.T) {
	// ARRANGE
	svc := newWalletService(t)
	createAccount(t, svc, "user-1", domain.RoleCandidate, "expert")
	_, err := svc.Debit(context.Background(), "user-1", 30, domain.CategoryResumeAccess, "view")
	require.NoError(t, err)
	h := HandleRefund(svc)

	// ACT
	rec := postJSON(t, h, "/wallet/refund", RefundRequest{
		AccountID:   "user-1",
		Amount:      30,
		Description: "resume withdrawn",
	})

	// ASSERT
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp EntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.EntryRefunded, resp.Entry.Kind)
}

func TestHandlePurchaseLifecycle(t *testing.T) {
	// ARRANGE
	svc := newWalletService(t)
	createAccount(t, svc, "user-1", domain.RoleCandidate, "fresher")

	// ACT - start the purchase with a promo weaker than the package discount
	rec := postJSON(t, HandlePurchase(svc), "/wallet/purchase", PurchaseRequest{
		AccountID: "user-1",
		PackageID: "premium_pack",
		PromoCode: "welcome10",
	})

	// ASSERT - accepted, pending, discounted charge echoed
	require.Equal(t, http.StatusAccepted, rec.Code)
	var pending PurchaseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	assert.Equal(t, domain.StatusPending, pending.Entry.Status)
	assert.Equal(t, 110, pending.Entry.Amount)
	assert.Equal(t, 0.15, pending.DiscountApplied, "Package discount beats the weaker promo")
	assert.Equal(t, 7.64, pending.PriceUSD)

	// ACT - settle it
	rec = postJSON(t, HandleSettlePurchase(svc), "/wallet/purchase/settle", SettlePurchaseRequest{
		EntryID:   pending.Entry.EntryID,
		Succeeded: true,
	})

	// ASSERT
	require.Equal(t, http.StatusOK, rec.Code)
	var settled EntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settled))
	assert.Equal(t, domain.StatusCompleted, settled.Entry.Status)

	account, err := svc.GetAccount(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 130, account.CurrentPoints, "20 signup + 110 purchased")

	// ACT - settling again is a conflict
	rec = postJSON(t, HandleSettlePurchase(svc), "/wallet/purchase/settle", SettlePurchaseRequest{
		EntryID:   pending.Entry.EntryID,
		Succeeded: true,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandlePurchase_UnknownPackage(t *testing.T) {
	svc := newWalletService(t)
	createAccount(t, svc, "user-1", domain.RoleCandidate, "fresher")

	rec := postJSON(t, HandlePurchase(svc), "/wallet/purchase", PurchaseRequest{
		AccountID: "user-1",
		PackageID: "diamond_pack",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetTransactions_Filters(t *testing.T) {
	// ARRANGE
	svc := newWalletService(t)
	createAccount(t, svc, "user-1", domain.RoleCandidate, "expert")
	ctx := context.Background()
	_, err := svc.Debit(ctx, "user-1", 10, domain.CategoryResumeAccess, "view")
	require.NoError(t, err)
	_, err = svc.Debit(ctx, "user-1", 8, domain.CategoryPremiumFeature, "analytics")
	require.NoError(t, err)

	h := HandleGetTransactions(svc)

	// ACT - only spent entries
	req := httptest.NewRequest(http.MethodGet, "/wallet/transactions?account_id=user-1&kind=spent", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	// ASSERT
	require.Equal(t, http.StatusOK, rec.Code)
	var resp TransactionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Transactions, 2)
	for _, entry := range resp.Transactions {
		assert.Equal(t, domain.EntrySpent, entry.Kind)
	}
}

func TestHandleGetTransactions_InvalidLimit(t *testing.T) {
	svc := newWalletService(t)
	h := HandleGetTransactions(svc)

	req := httptest.NewRequest(http.MethodGet, "/wallet/transactions?account_id=user-1&limit=zero", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetStats(t *testing.T) {
	// ARRANGE
	svc := newWalletService(t)
	createAccount(t, svc, "user-1", domain.RoleCandidate, "expert")
	_, err := svc.Debit(context.Background(), "user-1", 12, domain.CategoryJobApplication, "apply")
	require.NoError(t, err)

	h := HandleGetStats(svc)

	// ACT
	req := httptest.NewRequest(http.MethodGet, "/wallet/stats?account_id=user-1", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	// ASSERT
	require.Equal(t, http.StatusOK, rec.Code)
	var stats domain.WalletStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 60, stats.TotalEarned)
	assert.Equal(t, 12, stats.TotalSpent)
	require.Len(t, stats.SpendingBreakdown, 1)
	assert.Equal(t, domain.CategoryJobApplication, stats.SpendingBreakdown[0].Category)
}

func TestHandleListPackages(t *testing.T) {
	catalog := wallet.DefaultCatalog()
	h := HandleListPackages(catalog)

	req := httptest.NewRequest(http.MethodGet, "/packages?role=recruiter", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp PackagesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Packages, 2)
}
