package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelink/points/internal/domain"
)

func TestBulkDiscount_Thresholds(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		expected float64
	}{
		{"single action", 1, 0.0},
		{"just below small threshold", 4, 0.0},
		{"at small threshold", 5, 0.10},
		{"just below large threshold", 9, 0.10},
		{"at large threshold", 10, 0.20},
		{"far above large threshold", 100, 0.20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, BulkDiscount(tt.quantity), 0.0001)
		})
	}
}

func TestPromoDiscount_KnownCodes(t *testing.T) {
	tests := []struct {
		code     string
		expected float64
	}{
		{"welcome10", 0.10},
		{"special20", 0.20},
		{"vip25", 0.25},
		{"WELCOME10", 0.10}, // case-insensitive
		{"Vip25", 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			discount, err := PromoDiscount(tt.code)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, discount, 0.0001)
		})
	}
}

func TestPromoDiscount_EmptyCode(t *testing.T) {
	discount, err := PromoDiscount("")

	require.NoError(t, err)
	assert.Zero(t, discount)
}

func TestPromoDiscount_UnknownCode(t *testing.T) {
	discount, err := PromoDiscount("expired99")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPromoCode)
	assert.Zero(t, discount)
}

func TestDiscount_LargerWins(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		promo    string
		expected float64
	}{
		{"bulk only", 10, "", 0.20},
		{"promo only", 1, "special20", 0.20},
		{"bulk beats promo", 10, "welcome10", 0.20},
		{"promo beats bulk", 5, "vip25", 0.25},
		{"equal picks either", 10, "special20", 0.20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discount, err := Discount(tt.quantity, tt.promo)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, discount, 0.0001)
		})
	}
}

func TestDiscount_InvalidQuantity(t *testing.T) {
	_, err := Discount(0, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDiscount_InvalidPromoPropagates(t *testing.T) {
	// A bad code must surface even when bulk alone would have applied
	_, err := Discount(10, "bogus")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPromoCode)
}
