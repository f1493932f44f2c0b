package ports

import "context"

// UnitOfWork scopes the catalog and the ledger so a committed sale's stock
// deduction and ledger append become visible together. Catalog and Ledger
// return views that are safe against an in-flight commit; WithinCommit runs
// fn with exclusive access to both stores, blocking every view until fn
// returns.
type UnitOfWork interface {
	Catalog() CatalogStore
	Ledger() Ledger
	WithinCommit(ctx context.Context, fn func(ctx context.Context, catalog CatalogStore, ledger Ledger) error) error
}
