package inventory

import (
	"fmt"
	"sort"

	"github.com/donbacco/pos-service/internal/domain/cart"
	"github.com/donbacco/pos-service/internal/domain/catalog"
	domainErrors "github.com/donbacco/pos-service/internal/domain/errors"
)

// Alert is the payload delivered to the notification sink when a product
// crosses into the critical band.
type Alert struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	MinStock  int    `json:"min_stock"`
}

// Reconcile applies every sold line of one sale to the catalog snapshot in a
// single pass and returns replacement products plus the alerts for products
// that newly entered the critical band.
//
// All-or-nothing: if any line references a product missing from the snapshot
// (ErrUnknownProduct), or would deduct below zero because the live stock has
// dropped beneath the cart's snapshot (ErrInsufficientStock), no product is
// touched, so the caller can abort before any ledger append. The live-stock
// check is what keeps stock >= 0: the cart's own cap is against the stock at
// add time, which a catalog edit can lower afterwards.
//
// Alerts are edge-triggered on the per-product transition into criticality; a
// product that was already critical before the deduction emits nothing.
func Reconcile(products []catalog.Product, lines []cart.Line) ([]catalog.Product, []Alert, error) {
	index := make(map[string]int, len(products))
	for i, p := range products {
		index[p.ID] = i
	}

	for _, l := range lines {
		i, ok := index[l.ProductID]
		if !ok {
			return nil, nil, fmt.Errorf("product %s: %w", l.ProductID, domainErrors.ErrUnknownProduct)
		}
		if l.Quantity > products[i].Stock {
			return nil, nil, fmt.Errorf("product %s: %w", l.ProductID, domainErrors.ErrInsufficientStock)
		}
	}

	updated := make([]catalog.Product, len(products))
	copy(updated, products)

	var alerts []Alert
	for _, l := range lines {
		i := index[l.ProductID]
		before := updated[i]
		after := before.WithStock(before.Stock - l.Quantity)
		updated[i] = after

		if !before.IsCritical() && after.IsCritical() {
			alerts = append(alerts, Alert{
				ProductID: after.ID,
				Name:      after.Name,
				Stock:     after.Stock,
				MinStock:  after.MinStock,
			})
		}
	}

	return updated, alerts, nil
}

// Critical returns the products at or below their minimum stock, ordered by
// stock ascending so the most depleted products surface first; ties keep the
// catalog order for determinism.
func Critical(products []catalog.Product) []catalog.Product {
	critical := make([]catalog.Product, 0)
	for _, p := range products {
		if p.IsCritical() {
			critical = append(critical, p)
		}
	}

	sort.SliceStable(critical, func(i, j int) bool {
		return critical[i].Stock < critical[j].Stock
	})

	return critical
}
