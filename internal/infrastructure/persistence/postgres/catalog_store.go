package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/donbacco/pos-service/internal/domain/catalog"
	domainErrors "github.com/donbacco/pos-service/internal/domain/errors"
)

// CatalogStore is the postgres adapter for a shared catalog service. The
// transaction core itself stays in-memory; this exists for deployments where
// several tools maintain the same product list.
type CatalogStore struct {
	conn *Connection
}

func NewCatalogStore(conn *Connection) (*CatalogStore, error) {
	s := &CatalogStore{conn: conn}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure catalog schema: %w", err)
	}
	return s, nil
}

func (s *CatalogStore) ensureSchema() error {
	_, err := s.conn.GetDB().Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			brand      TEXT NOT NULL DEFAULT '',
			category   TEXT NOT NULL DEFAULT 'Otro',
			capacity   TEXT NOT NULL DEFAULT '',
			price      NUMERIC(12,2) NOT NULL CHECK (price >= 0),
			cost       NUMERIC(12,2) NOT NULL CHECK (cost >= 0),
			stock      INTEGER NOT NULL CHECK (stock >= 0),
			min_stock  INTEGER NOT NULL CHECK (min_stock >= 0),
			image_url  TEXT NOT NULL DEFAULT '',
			is_promo   BOOLEAN NOT NULL DEFAULT FALSE,
			position   SERIAL
		)
	`)
	return err
}

const productColumns = "id, name, brand, category, capacity, price, cost, stock, min_stock, image_url, is_promo"

func (s *CatalogStore) List(ctx context.Context) ([]catalog.Product, error) {
	rows, err := s.conn.GetDB().QueryContext(ctx,
		"SELECT "+productColumns+" FROM products ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *CatalogStore) Get(ctx context.Context, id string) (catalog.Product, error) {
	row := s.conn.GetDB().QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", id)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return catalog.Product{}, domainErrors.ErrProductNotFound
	}
	return p, err
}

func (s *CatalogStore) Save(ctx context.Context, p catalog.Product) error {
	_, err := s.conn.GetDB().ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			brand = EXCLUDED.brand,
			category = EXCLUDED.category,
			capacity = EXCLUDED.capacity,
			price = EXCLUDED.price,
			cost = EXCLUDED.cost,
			stock = EXCLUDED.stock,
			min_stock = EXCLUDED.min_stock,
			image_url = EXCLUDED.image_url,
			is_promo = EXCLUDED.is_promo`,
		p.ID, p.Name, p.Brand, p.Category.String(), p.Capacity,
		p.Price, p.Cost, p.Stock, p.MinStock, p.ImageURL, p.IsPromo,
	)
	return err
}

func (s *CatalogStore) Delete(ctx context.Context, id string) error {
	result, err := s.conn.GetDB().ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domainErrors.ErrProductNotFound
	}
	return nil
}

// ReplaceAll swaps the whole snapshot inside one transaction so a reader
// never observes a half-reconciled catalog.
func (s *CatalogStore) ReplaceAll(ctx context.Context, products []catalog.Product) error {
	tx, err := s.conn.GetDB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM products"); err != nil {
		return err
	}

	for _, p := range products {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO products (`+productColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			p.ID, p.Name, p.Brand, p.Category.String(), p.Capacity,
			p.Price, p.Cost, p.Stock, p.MinStock, p.ImageURL, p.IsPromo,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (catalog.Product, error) {
	var (
		p            catalog.Product
		categoryName string
		price, cost  string
	)

	err := row.Scan(&p.ID, &p.Name, &p.Brand, &categoryName, &p.Capacity,
		&price, &cost, &p.Stock, &p.MinStock, &p.ImageURL, &p.IsPromo)
	if err != nil {
		return catalog.Product{}, err
	}

	// Unknown category names fold into Otro rather than failing the read.
	p.Category, _ = catalog.ParseCategory(categoryName)

	if p.Price, err = decimal.NewFromString(price); err != nil {
		return catalog.Product{}, err
	}
	if p.Cost, err = decimal.NewFromString(cost); err != nil {
		return catalog.Product{}, err
	}

	return p, nil
}
