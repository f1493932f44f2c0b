package locked

import (
	"context"
	"sync"

	"github.com/donbacco/pos-service/internal/application/ports"
	"github.com/donbacco/pos-service/internal/domain/catalog"
	"github.com/donbacco/pos-service/internal/domain/sale"
)

// Store guards a catalog store and a ledger with one RWMutex so the two
// writes of a committed sale are observed together or not at all. Reads and
// standalone writes go through the views returned by Catalog and Ledger;
// WithinCommit takes the write lock across both stores, so no view can
// observe deducted stock without the sale, or the reverse, and no catalog
// edit can slip between a commit's snapshot and its writes.
type Store struct {
	mu      sync.RWMutex
	catalog ports.CatalogStore
	ledger  ports.Ledger
}

func NewStore(catalogStore ports.CatalogStore, ledger ports.Ledger) *Store {
	return &Store{
		catalog: catalogStore,
		ledger:  ledger,
	}
}

func (s *Store) Catalog() ports.CatalogStore {
	return &catalogView{store: s}
}

func (s *Store) Ledger() ports.Ledger {
	return &ledgerView{store: s}
}

func (s *Store) WithinCommit(ctx context.Context, fn func(ctx context.Context, catalog ports.CatalogStore, ledger ports.Ledger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(ctx, s.catalog, s.ledger)
}

type catalogView struct {
	store *Store
}

func (v *catalogView) List(ctx context.Context) ([]catalog.Product, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()

	return v.store.catalog.List(ctx)
}

func (v *catalogView) Get(ctx context.Context, id string) (catalog.Product, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()

	return v.store.catalog.Get(ctx, id)
}

func (v *catalogView) Save(ctx context.Context, p catalog.Product) error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()

	return v.store.catalog.Save(ctx, p)
}

func (v *catalogView) Delete(ctx context.Context, id string) error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()

	return v.store.catalog.Delete(ctx, id)
}

func (v *catalogView) ReplaceAll(ctx context.Context, products []catalog.Product) error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()

	return v.store.catalog.ReplaceAll(ctx, products)
}

type ledgerView struct {
	store *Store
}

func (v *ledgerView) Append(ctx context.Context, s *sale.Sale) error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()

	return v.store.ledger.Append(ctx, s)
}

func (v *ledgerView) List(ctx context.Context) ([]*sale.Sale, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()

	return v.store.ledger.List(ctx)
}

func (v *ledgerView) Get(ctx context.Context, id string) (*sale.Sale, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()

	return v.store.ledger.Get(ctx, id)
}
