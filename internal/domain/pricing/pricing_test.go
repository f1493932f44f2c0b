package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donbacco/pos-service/internal/domain/cart"
	"github.com/donbacco/pos-service/internal/domain/pricing"
)

func TestSubtotal(t *testing.T) {
	lines := []cart.Line{
		cart.NewLine("1", "Cerveza", "355ml", decimal.RequireFromString("25.00"), 2, 100),
		cart.NewLine("2", "Vino", "750ml", decimal.RequireFromString("35.00"), 1, 100),
	}

	assert.Equal(t, "85.00", pricing.Subtotal(lines).StringFixed(2))
}

func TestSubtotalEmpty(t *testing.T) {
	assert.True(t, pricing.Subtotal(nil).IsZero())
}

func TestComputeChange(t *testing.T) {
	total := decimal.RequireFromString("85.00")

	tests := []struct {
		name       string
		tender     pricing.Tender
		wantStatus pricing.ChangeStatus
		wantChange string
	}{
		{
			name:       "not entered is undefined, not insufficient",
			tender:     pricing.NoTender(),
			wantStatus: pricing.ChangeUndefined,
		},
		{
			name:       "sufficient tender",
			tender:     pricing.TenderOf(decimal.RequireFromString("100.00")),
			wantStatus: pricing.ChangeOK,
			wantChange: "15.00",
		},
		{
			name:       "exact tender",
			tender:     pricing.TenderOf(decimal.RequireFromString("85.00")),
			wantStatus: pricing.ChangeOK,
			wantChange: "0.00",
		},
		{
			name:       "insufficient tender",
			tender:     pricing.TenderOf(decimal.RequireFromString("50.00")),
			wantStatus: pricing.PaymentInsufficient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change, status := pricing.ComputeChange(tt.tender, total)

			require.Equal(t, tt.wantStatus, status)
			if tt.wantStatus == pricing.ChangeOK {
				assert.Equal(t, tt.wantChange, change.StringFixed(2))
			}
		})
	}
}

func TestTaxDecomposition(t *testing.T) {
	total := decimal.RequireFromString("118.00")
	rate := decimal.NewFromFloat(pricing.DefaultTaxRate)

	base, tax := pricing.TaxDecomposition(total, rate)

	tolerance := decimal.RequireFromString("0.01")
	assert.True(t, base.Sub(decimal.NewFromInt(100)).Abs().LessThanOrEqual(tolerance),
		"base = %s, want 100.00 ±0.01", base)
	assert.True(t, tax.Sub(decimal.NewFromInt(18)).Abs().LessThanOrEqual(tolerance),
		"tax = %s, want 18.00 ±0.01", tax)

	// The decomposition must add back up to the fixed total exactly.
	assert.True(t, base.Add(tax).Equal(total))
}

func TestTaxDecompositionZeroTotal(t *testing.T) {
	base, tax := pricing.TaxDecomposition(decimal.Zero, decimal.NewFromFloat(0.18))

	assert.True(t, base.IsZero())
	assert.True(t, tax.IsZero())
}
