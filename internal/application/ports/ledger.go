package ports

import (
	"context"

	"github.com/donbacco/pos-service/internal/domain/sale"
)

// Ledger is the append-only ordered record of finalized sales. Entries are
// never mutated or deleted; Append must reject an id it has already seen.
type Ledger interface {
	Append(ctx context.Context, s *sale.Sale) error
	List(ctx context.Context) ([]*sale.Sale, error)
	Get(ctx context.Context, id string) (*sale.Sale, error)
}
