package ports

import (
	"context"

	"github.com/donbacco/pos-service/internal/domain/catalog"
)

// CatalogStore is the external catalog provider: it owns the product
// collection and hands out snapshots. Creates/updates/deletes arrive
// externally validated; the transaction core only reads snapshots and swaps
// in reconciled replacements.
type CatalogStore interface {
	List(ctx context.Context) ([]catalog.Product, error)
	Get(ctx context.Context, id string) (catalog.Product, error)
	Save(ctx context.Context, p catalog.Product) error
	Delete(ctx context.Context, id string) error

	// ReplaceAll swaps the whole snapshot in one step. Checkout uses it so
	// reconciled stock becomes visible atomically with the ledger append.
	ReplaceAll(ctx context.Context, products []catalog.Product) error
}
