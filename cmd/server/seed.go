package main

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/donbacco/pos-service/internal/application/ports"
	"github.com/donbacco/pos-service/internal/domain/catalog"
)

// seedProducts is the starter catalog for a fresh store. It is only loaded
// when the configured catalog store is empty.
var seedProducts = []catalog.Product{
	{
		ID:       "1",
		Name:     "Cerveza Corona Extra",
		Brand:    "Modelo",
		Category: catalog.CategoryBeer,
		Capacity: "355ml",
		Price:    decimal.NewFromInt(25),
		Cost:     decimal.NewFromInt(18),
		Stock:    120,
		MinStock: 24,
	},
	{
		ID:       "2",
		Name:     "Whisky Black Label",
		Brand:    "Johnnie Walker",
		Category: catalog.CategorySpirits,
		Capacity: "750ml",
		Price:    decimal.NewFromInt(850),
		Cost:     decimal.NewFromInt(600),
		Stock:    5,
		MinStock: 8,
		IsPromo:  true,
	},
	{
		ID:       "3",
		Name:     "Vino Tinto Reservado",
		Brand:    "Concha y Toro",
		Category: catalog.CategoryWine,
		Capacity: "750ml",
		Price:    decimal.NewFromInt(180),
		Cost:     decimal.NewFromInt(120),
		Stock:    15,
		MinStock: 10,
	},
	{
		ID:       "4",
		Name:     "Ron Añejo",
		Brand:    "Bacardi",
		Category: catalog.CategorySpirits,
		Capacity: "1L",
		Price:    decimal.NewFromInt(220),
		Cost:     decimal.NewFromInt(150),
		Stock:    40,
		MinStock: 12,
	},
	{
		ID:       "5",
		Name:     "Refresco Cola",
		Brand:    "Coca Cola",
		Category: catalog.CategorySoftDrink,
		Capacity: "2L",
		Price:    decimal.NewFromInt(35),
		Cost:     decimal.NewFromInt(25),
		Stock:    50,
		MinStock: 20,
	},
	{
		ID:       "6",
		Name:     "Papas Fritas Sal",
		Brand:    "Sabritas",
		Category: catalog.CategorySnack,
		Capacity: "140g",
		Price:    decimal.NewFromInt(45),
		Cost:     decimal.NewFromInt(30),
		Stock:    15,
		MinStock: 15,
	},
}

func seedCatalog(ctx context.Context, store ports.CatalogStore) error {
	existing, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, p := range seedProducts {
		if err := store.Save(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
