package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donbacco/pos-service/internal/domain/cart"
	domainErrors "github.com/donbacco/pos-service/internal/domain/errors"
	"github.com/donbacco/pos-service/internal/domain/sale"
	"github.com/donbacco/pos-service/internal/infrastructure/persistence/memory"
)

func recordedSale(t *testing.T, id string, ts time.Time) *sale.Sale {
	t.Helper()

	lines := []cart.Line{
		cart.NewLine("1", "Cerveza", "355ml", decimal.RequireFromString("8.50"), 1, 48),
	}
	s, err := sale.NewSale(id, ts, lines, decimal.RequireFromString("8.50"), sale.PaymentCash, "")
	require.NoError(t, err)
	return s
}

func TestLedgerAppendAndGet(t *testing.T) {
	ctx := context.Background()
	ledger := memory.NewLedger()
	now := time.Now().UTC()

	require.NoError(t, ledger.Append(ctx, recordedSale(t, "SALE-1", now)))

	got, err := ledger.Get(ctx, "SALE-1")
	require.NoError(t, err)
	assert.Equal(t, "SALE-1", got.ID)

	_, err = ledger.Get(ctx, "SALE-404")
	assert.ErrorIs(t, err, domainErrors.ErrSaleNotFound)
}

func TestLedgerRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	ledger := memory.NewLedger()
	now := time.Now().UTC()

	require.NoError(t, ledger.Append(ctx, recordedSale(t, "SALE-1", now)))
	err := ledger.Append(ctx, recordedSale(t, "SALE-1", now.Add(time.Minute)))
	assert.ErrorIs(t, err, domainErrors.ErrSaleIDCollision)

	sales, err := ledger.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sales, 1, "a rejected append must not grow the ledger")
}

func TestLedgerListPreservesAppendOrder(t *testing.T) {
	ctx := context.Background()
	ledger := memory.NewLedger()
	now := time.Now().UTC()

	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("SALE-%d", i)
		require.NoError(t, ledger.Append(ctx, recordedSale(t, id, now.Add(time.Duration(i)*time.Minute))))
	}

	sales, err := ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 5)
	for i, s := range sales {
		assert.Equal(t, fmt.Sprintf("SALE-%d", i), s.ID)
	}
}
