package memory

import (
	"context"
	"sync"

	"github.com/donbacco/pos-service/internal/domain/catalog"
	domainErrors "github.com/donbacco/pos-service/internal/domain/errors"
)

// CatalogStore keeps product snapshots in memory. Reads hand out copies and
// writes swap copies in, so callers never share the store's slice.
type CatalogStore struct {
	mu       sync.RWMutex
	products []catalog.Product
	index    map[string]int
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		index: make(map[string]int),
	}
}

func (s *CatalogStore) List(ctx context.Context) ([]catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]catalog.Product, len(s.products))
	copy(products, s.products)
	return products, nil
}

func (s *CatalogStore) Get(ctx context.Context, id string) (catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return catalog.Product{}, domainErrors.ErrProductNotFound
	}
	return s.products[i], nil
}

func (s *CatalogStore) Save(ctx context.Context, p catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[p.ID]; ok {
		s.products[i] = p
		return nil
	}

	s.index[p.ID] = len(s.products)
	s.products = append(s.products, p)
	return nil
}

func (s *CatalogStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return domainErrors.ErrProductNotFound
	}

	s.products = append(s.products[:i], s.products[i+1:]...)
	s.reindex()
	return nil
}

func (s *CatalogStore) ReplaceAll(ctx context.Context, products []catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make([]catalog.Product, len(products))
	copy(s.products, products)
	s.reindex()
	return nil
}

func (s *CatalogStore) reindex() {
	s.index = make(map[string]int, len(s.products))
	for i, p := range s.products {
		s.index[p.ID] = i
	}
}
