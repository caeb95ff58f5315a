package pricing

import (
	"fmt"

	"github.com/hirelink/points/internal/domain"
)

// promoCodes maps a normalized promo code to its discount fraction.
// Codes are matched case-insensitively.
var promoCodes = map[string]float64{
	"welcome10": 0.10,
	"special20": 0.20,
	"vip25":     0.25,
}

// BulkDiscount returns the discount fraction for a batch of identical
// actions. Thresholds are inclusive and evaluated highest first.
func BulkDiscount(quantity int) float64 {
	switch {
	case quantity >= BulkThresholdLarge:
		return BulkDiscountLarge
	case quantity >= BulkThresholdSmall:
		return BulkDiscountSmall
	default:
		return 0.0
	}
}

// PromoDiscount resolves a promotional code to its discount fraction. An
// unrecognized code is a validation error, not a silent zero: the caller
// must be able to tell the user the code did not apply.
func PromoDiscount(code string) (float64, error) {
	if code == "" {
		return 0.0, nil
	}
	discount, ok := promoCodes[folder.String(code)]
	if !ok {
		return 0.0, fmt.Errorf("%w: %q", domain.ErrInvalidPromoCode, code)
	}
	return discount, nil
}

// Discount combines the bulk and promo policies for one request. Bulk and
// promo discounts do not stack: the larger single discount wins. The same
// rule is applied on every path so ledger descriptions stay auditable.
func Discount(quantity int, promoCode string) (float64, error) {
	if quantity < 1 {
		return 0.0, fmt.Errorf("%w: quantity must be at least 1, got %d", domain.ErrInvalidInput, quantity)
	}

	bulk := BulkDiscount(quantity)
	promo, err := PromoDiscount(promoCode)
	if err != nil {
		return 0.0, err
	}
	if promo > bulk {
		return promo, nil
	}
	return bulk, nil
}
