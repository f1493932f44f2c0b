package sale_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donbacco/pos-service/internal/domain/cart"
	domainErrors "github.com/donbacco/pos-service/internal/domain/errors"
	"github.com/donbacco/pos-service/internal/domain/sale"
)

func testLines() []cart.Line {
	return []cart.Line{
		cart.NewLine("1", "Cerveza Corona", "355ml", decimal.RequireFromString("8.50"), 2, 48),
	}
}

func TestNewSale(t *testing.T) {
	ts := time.Date(2025, 8, 30, 20, 15, 0, 0, time.UTC)

	s, err := sale.NewSale("SALE-1", ts, testLines(), decimal.RequireFromString("17.00"), sale.PaymentCash, "")
	require.NoError(t, err)

	assert.Equal(t, "SALE-1", s.ID)
	assert.Equal(t, ts, s.Timestamp)
	assert.Equal(t, 2, s.ItemCount())
	assert.Equal(t, "17.00", s.Total.StringFixed(2))
}

func TestNewSaleValidation(t *testing.T) {
	ts := time.Now().UTC()
	total := decimal.RequireFromString("17.00")

	_, err := sale.NewSale("", ts, testLines(), total, sale.PaymentCash, "")
	assert.Error(t, err)

	_, err = sale.NewSale("SALE-1", ts, nil, total, sale.PaymentCash, "")
	assert.Error(t, err)

	zeroQty := []cart.Line{cart.NewLine("1", "Cerveza", "", total, 0, 10)}
	_, err = sale.NewSale("SALE-1", ts, zeroQty, total, sale.PaymentCash, "")
	assert.Error(t, err)

	_, err = sale.NewSale("SALE-1", ts, testLines(), decimal.RequireFromString("99.00"), sale.PaymentCash, "")
	assert.Error(t, err, "total must reconcile with the lines")
}

func TestNewSaleCopiesLines(t *testing.T) {
	lines := testLines()

	s, err := sale.NewSale("SALE-1", time.Now().UTC(), lines, decimal.RequireFromString("17.00"), sale.PaymentCard, "")
	require.NoError(t, err)

	lines[0].Name = "mutated"
	assert.Equal(t, "Cerveza Corona", s.Lines[0].Name)
}

func TestOccurredBetween(t *testing.T) {
	ts := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)
	s, err := sale.NewSale("SALE-1", ts, testLines(), decimal.RequireFromString("17.00"), sale.PaymentCash, "")
	require.NoError(t, err)

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want bool
	}{
		{"open bounds", time.Time{}, time.Time{}, true},
		{"inside", ts.Add(-time.Hour), ts.Add(time.Hour), true},
		{"at from bound", ts, ts.Add(time.Hour), true},
		{"at to bound excluded", ts.Add(-time.Hour), ts, false},
		{"before window", ts.Add(time.Minute), time.Time{}, false},
		{"after window", time.Time{}, ts.Add(-time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.OccurredBetween(tt.from, tt.to))
		})
	}
}

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		name    string
		want    sale.PaymentMethod
		wantErr bool
	}{
		{"Efectivo", sale.PaymentCash, false},
		{"Tarjeta", sale.PaymentCard, false},
		{"Transferencia", sale.PaymentTransfer, false},
		{"Yape/Plin", sale.PaymentMobileWallet, false},
		{"Bitcoin", sale.PaymentCash, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := sale.ParsePaymentMethod(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, domainErrors.ErrUnknownPaymentMethod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestRequiresTender(t *testing.T) {
	assert.True(t, sale.PaymentCash.RequiresTender())
	assert.False(t, sale.PaymentCard.RequiresTender())
	assert.False(t, sale.PaymentTransfer.RequiresTender())
	assert.False(t, sale.PaymentMobileWallet.RequiresTender())
}
