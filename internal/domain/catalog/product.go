package catalog

import (
	"github.com/shopspring/decimal"

	domainErrors "github.com/donbacco/pos-service/internal/domain/errors"
)

type Category int

const (
	CategoryBeer Category = iota
	CategoryWine
	CategorySpirits
	CategorySoftDrink
	CategorySnack
	CategoryOther
)

var categoryNames = map[Category]string{
	CategoryBeer:      "Cerveza",
	CategoryWine:      "Vino",
	CategorySpirits:   "Destilado",
	CategorySoftDrink: "Refresco",
	CategorySnack:     "Snack",
	CategoryOther:     "Otro",
}

var categoriesByName = map[string]Category{
	"Cerveza":   CategoryBeer,
	"Vino":      CategoryWine,
	"Destilado": CategorySpirits,
	"Refresco":  CategorySoftDrink,
	"Snack":     CategorySnack,
	"Otro":      CategoryOther,
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Otro"
}

// ParseCategory resolves the wire/display name at the boundary. The core only
// ever sees the tagged variant.
func ParseCategory(name string) (Category, error) {
	if c, ok := categoriesByName[name]; ok {
		return c, nil
	}
	return CategoryOther, domainErrors.ErrUnknownCategory
}

func Categories() []Category {
	return []Category{
		CategoryBeer,
		CategoryWine,
		CategorySpirits,
		CategorySoftDrink,
		CategorySnack,
		CategoryOther,
	}
}

type Product struct {
	ID       string
	Name     string
	Brand    string
	Category Category
	Capacity string
	Price    decimal.Decimal
	Cost     decimal.Decimal
	Stock    int
	MinStock int
	ImageURL string
	IsPromo  bool
}

// IsCritical is recomputed on demand, never cached.
func (p Product) IsCritical() bool {
	return p.Stock <= p.MinStock
}

// WithStock returns a replacement product carrying the new stock level.
// Products are treated as immutable snapshots; callers swap, never mutate.
func (p Product) WithStock(stock int) Product {
	p.Stock = stock
	return p
}

// Matches reports whether the product matches a free-text search term
// against name or brand. An empty term matches everything.
func (p Product) Matches(term string) bool {
	if term == "" {
		return true
	}
	return containsFold(p.Name, term) || containsFold(p.Brand, term)
}
