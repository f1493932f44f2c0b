package memory

import (
	"context"
	"sync"

	domainErrors "github.com/donbacco/pos-service/internal/domain/errors"
	"github.com/donbacco/pos-service/internal/domain/sale"
)

// Ledger is the in-memory append-only sale record. Entries are stored in
// append order and never rewritten.
type Ledger struct {
	mu    sync.RWMutex
	sales []*sale.Sale
	byID  map[string]*sale.Sale
}

func NewLedger() *Ledger {
	return &Ledger{
		byID: make(map[string]*sale.Sale),
	}
}

func (l *Ledger) Append(ctx context.Context, s *sale.Sale) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.byID[s.ID]; exists {
		return domainErrors.ErrSaleIDCollision
	}

	l.sales = append(l.sales, s)
	l.byID[s.ID] = s
	return nil
}

func (l *Ledger) List(ctx context.Context) ([]*sale.Sale, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	sales := make([]*sale.Sale, len(l.sales))
	copy(sales, l.sales)
	return sales, nil
}

func (l *Ledger) Get(ctx context.Context, id string) (*sale.Sale, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s, ok := l.byID[id]
	if !ok {
		return nil, domainErrors.ErrSaleNotFound
	}
	return s, nil
}
