//go:build staging

package staging

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"
)

type accountPayload struct {
	AccountID     string `json:"account_id"`
	Role          string `json:"role"`
	CurrentPoints int    `json:"current_points"`
	TotalEarned   int    `json:"total_earned"`
	TotalSpent    int    `json:"total_spent"`
}

type entryPayload struct {
	Message string `json:"message"`
	Entry   struct {
		EntryID string `json:"entry_id"`
		Status  string `json:"status"`
		Amount  int    `json:"amount"`
	} `json:"entry"`
}

// TestWalletLifecycle exercises the full wallet flow against a running
// instance: create, credit, debit, and balance verification.
func TestWalletLifecycle(t *testing.T) {
	accountID := fmt.Sprintf("staging-%d", time.Now().UnixNano())

	// Create a candidate account; fresher signup grants 20 points
	resp, body := makeRequest(t, "POST", "/api/v1/wallet/create", map[string]interface{}{
		"account_id": accountID,
		"role":       "candidate",
		"tier":       "fresher",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", resp.StatusCode, body)
	}

	var account accountPayload
	if err := json.Unmarshal(body, &account); err != nil {
		t.Fatalf("Failed to unmarshal account: %v", err)
	}
	if account.CurrentPoints != 20 {
		t.Errorf("Expected signup balance 20, got %d", account.CurrentPoints)
	}

	// Credit 30 points
	resp, body = makeRequest(t, "POST", "/api/v1/wallet/credit", map[string]interface{}{
		"account_id":  accountID,
		"amount":      30,
		"category":    "bonus",
		"description": "staging credit",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, body)
	}

	// Debit 10 points
	resp, body = makeRequest(t, "POST", "/api/v1/wallet/debit", map[string]interface{}{
		"account_id":  accountID,
		"amount":      10,
		"category":    "resume_access",
		"description": "staging debit",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, body)
	}

	// Balance should be 20 + 30 - 10 = 40
	resp, body = makeRequest(t, "GET", "/api/v1/wallet?account_id="+accountID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, &account); err != nil {
		t.Fatalf("Failed to unmarshal account: %v", err)
	}
	if account.CurrentPoints != 40 {
		t.Errorf("Expected balance 40, got %d", account.CurrentPoints)
	}
	if account.CurrentPoints != account.TotalEarned-account.TotalSpent {
		t.Errorf("Balance invariant violated: %d != %d - %d",
			account.CurrentPoints, account.TotalEarned, account.TotalSpent)
	}

	// Overdraw should fail with the shortage payload
	resp, body = makeRequest(t, "POST", "/api/v1/wallet/debit", map[string]interface{}{
		"account_id":  accountID,
		"amount":      10000,
		"category":    "premium_feature",
		"description": "staging overdraw",
	})
	if resp.StatusCode != http.StatusPaymentRequired {
		t.Fatalf("Expected status 402, got %d: %s", resp.StatusCode, body)
	}

	var shortage struct {
		Required int `json:"required"`
		Current  int `json:"current"`
		Shortage int `json:"shortage"`
	}
	if err := json.Unmarshal(body, &shortage); err != nil {
		t.Fatalf("Failed to unmarshal shortage: %v", err)
	}
	if shortage.Shortage != shortage.Required-shortage.Current {
		t.Errorf("Expected shortage %d, got %d", shortage.Required-shortage.Current, shortage.Shortage)
	}
}

func TestQuote(t *testing.T) {
	resp, body := makeRequest(t, "POST", "/api/v1/pricing/quote", map[string]interface{}{
		"subject": map[string]interface{}{
			"id":              "staging-subject",
			"experience_tier": "mid",
			"skills":          []string{"python"},
		},
		"action": map[string]interface{}{
			"action_type": "resume_access",
			"quantity":    1,
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.StatusCode, body)
	}

	var quote struct {
		UnitCost  int `json:"unit_cost"`
		TotalCost int `json:"total_cost"`
	}
	if err := json.Unmarshal(body, &quote); err != nil {
		t.Fatalf("Failed to unmarshal quote: %v", err)
	}
	// mid base 10 * python 1.1 = 11
	if quote.UnitCost != 11 {
		t.Errorf("Expected unit cost 11, got %d", quote.UnitCost)
	}
}
