package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/donbacco/pos-service/internal/domain/catalog"
	"github.com/donbacco/pos-service/internal/domain/inventory"
	"github.com/donbacco/pos-service/internal/domain/sale"
)

// Period bounds a report. Zero bounds are open on that side.
type Period struct {
	From time.Time `json:"from,omitempty"`
	To   time.Time `json:"to,omitempty"`
}

func (p Period) Contains(s *sale.Sale) bool {
	return s.OccurredBetween(p.From, p.To)
}

// LastDays returns a period covering the previous n calendar days up to now.
func LastDays(now time.Time, n int) Period {
	return Period{From: now.AddDate(0, 0, -n), To: now}
}

type ProductSales struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Report struct {
	Period        Period            `json:"period"`
	Revenue       decimal.Decimal   `json:"revenue"`
	Transactions  int               `json:"transactions"`
	AverageTicket decimal.Decimal   `json:"average_ticket"`
	TopProducts   []ProductSales    `json:"top_products"`
	CriticalStock []catalog.Product `json:"critical_stock"`
}

// Build aggregates the sales inside the period plus the current critical
// stock. Average ticket is zero for an empty period, never a division by
// zero. Top products rank by summed quantity descending; ties break by the
// first-encountered name so the ranking is deterministic.
func Build(sales []*sale.Sale, products []catalog.Product, period Period, topN int) Report {
	revenue := decimal.Zero
	count := 0
	quantities := make(map[string]int)
	var order []string

	for _, s := range sales {
		if !period.Contains(s) {
			continue
		}
		revenue = revenue.Add(s.Total)
		count++

		for _, l := range s.Lines {
			if _, seen := quantities[l.Name]; !seen {
				order = append(order, l.Name)
			}
			quantities[l.Name] += l.Quantity
		}
	}

	avg := decimal.Zero
	if count > 0 {
		avg = revenue.Div(decimal.NewFromInt(int64(count)))
	}

	// top is seeded in first-encountered order; the stable sort then breaks
	// quantity ties deterministically by that order.
	top := make([]ProductSales, 0, len(order))
	for _, name := range order {
		top = append(top, ProductSales{Name: name, Quantity: quantities[name]})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Quantity > top[j].Quantity
	})
	if topN > 0 && len(top) > topN {
		top = top[:topN]
	}

	return Report{
		Period:        period,
		Revenue:       revenue,
		Transactions:  count,
		AverageTicket: avg,
		TopProducts:   top,
		CriticalStock: inventory.Critical(products),
	}
}
