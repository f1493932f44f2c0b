package inventory_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donbacco/pos-service/internal/domain/cart"
	"github.com/donbacco/pos-service/internal/domain/catalog"
	domainErrors "github.com/donbacco/pos-service/internal/domain/errors"
	"github.com/donbacco/pos-service/internal/domain/inventory"
)

func product(id string, stock, minStock int) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     "Producto " + id,
		Price:    decimal.NewFromInt(10),
		Stock:    stock,
		MinStock: minStock,
	}
}

func line(productID string, qty int) cart.Line {
	return cart.NewLine(productID, "Producto "+productID, "", decimal.NewFromInt(10), qty, 1000)
}

func TestReconcileDeductsOnlySoldProducts(t *testing.T) {
	products := []catalog.Product{
		product("P1", 50, 10),
		product("P2", 30, 10),
	}

	updated, alerts, err := inventory.Reconcile(products, []cart.Line{line("P1", 3)})
	require.NoError(t, err)
	require.Empty(t, alerts)

	assert.Equal(t, 47, updated[0].Stock)
	assert.Equal(t, 30, updated[1].Stock, "untouched product must keep its stock")
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	products := []catalog.Product{product("P1", 50, 10)}

	_, _, err := inventory.Reconcile(products, []cart.Line{line("P1", 5)})
	require.NoError(t, err)

	assert.Equal(t, 50, products[0].Stock, "reconcile must produce replacements, not mutate")
}

func TestReconcileEdgeTriggeredAlerts(t *testing.T) {
	tests := []struct {
		name       string
		stock      int
		minStock   int
		sold       int
		wantAlerts int
	}{
		{name: "crosses into critical band", stock: 11, minStock: 10, sold: 2, wantAlerts: 1},
		{name: "lands exactly on minimum", stock: 12, minStock: 10, sold: 2, wantAlerts: 1},
		{name: "already critical emits nothing", stock: 5, minStock: 10, sold: 2, wantAlerts: 0},
		{name: "stays above minimum", stock: 50, minStock: 10, sold: 2, wantAlerts: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := []catalog.Product{product("P1", tt.stock, tt.minStock)}

			_, alerts, err := inventory.Reconcile(products, []cart.Line{line("P1", tt.sold)})
			require.NoError(t, err)
			require.Len(t, alerts, tt.wantAlerts)

			if tt.wantAlerts > 0 {
				want := inventory.Alert{
					ProductID: "P1",
					Name:      "Producto P1",
					Stock:     tt.stock - tt.sold,
					MinStock:  tt.minStock,
				}
				assert.Empty(t, cmp.Diff(want, alerts[0]))
			}
		})
	}
}

func TestReconcileUnknownProductAborts(t *testing.T) {
	products := []catalog.Product{product("P1", 50, 10)}
	lines := []cart.Line{
		line("P1", 1),
		line("GHOST", 1),
	}

	updated, alerts, err := inventory.Reconcile(products, lines)

	require.ErrorIs(t, err, domainErrors.ErrUnknownProduct)
	assert.Nil(t, updated, "no partial reconciliation on unknown product")
	assert.Nil(t, alerts)
	assert.Equal(t, 50, products[0].Stock)
}

func TestReconcileRejectsOverdraw(t *testing.T) {
	// Live stock can drop below the cart's add-time snapshot when the
	// catalog is edited between add and checkout.
	products := []catalog.Product{
		product("P1", 50, 10),
		product("P2", 2, 1),
	}
	lines := []cart.Line{
		line("P1", 1),
		line("P2", 3),
	}

	updated, alerts, err := inventory.Reconcile(products, lines)

	require.ErrorIs(t, err, domainErrors.ErrInsufficientStock)
	assert.Nil(t, updated, "no partial reconciliation on overdraw")
	assert.Nil(t, alerts)
	assert.Equal(t, 50, products[0].Stock)
	assert.Equal(t, 2, products[1].Stock)
}

func TestReconcileAllowsExactStock(t *testing.T) {
	products := []catalog.Product{product("P1", 3, 1)}

	updated, _, err := inventory.Reconcile(products, []cart.Line{line("P1", 3)})
	require.NoError(t, err)
	assert.Equal(t, 0, updated[0].Stock)
}

func TestCriticalOrdering(t *testing.T) {
	products := []catalog.Product{
		product("A", 8, 10),
		product("B", 50, 10),
		product("C", 2, 10),
		product("D", 8, 10),
	}

	critical := inventory.Critical(products)

	require.Len(t, critical, 3)
	assert.Equal(t, "C", critical[0].ID, "most depleted first")
	assert.Equal(t, "A", critical[1].ID, "ties keep catalog order")
	assert.Equal(t, "D", critical[2].ID)
}

func TestCriticalEmpty(t *testing.T) {
	critical := inventory.Critical([]catalog.Product{product("A", 50, 10)})
	assert.Empty(t, critical)
}
