package cart

import (
	"github.com/shopspring/decimal"

	"github.com/donbacco/pos-service/internal/domain/catalog"
	domainErrors "github.com/donbacco/pos-service/internal/domain/errors"
)

// Line is one cart row. Price, name, capacity and the stock level are
// snapshotted at add time so later catalog edits cannot retroactively change
// an open cart. The stock snapshot also caps the quantity: a cart can never
// ask for more units than the shelf had when the line was opened.
type Line struct {
	ProductID string
	Name      string
	Capacity  string
	UnitPrice decimal.Decimal
	Quantity  int
	maxQty    int
}

// NewLine builds a line directly from snapshot values. Cart construction
// normally goes through AddLine; this exists for replaying recorded sales.
func NewLine(productID, name, capacity string, unitPrice decimal.Decimal, quantity, stockSnapshot int) Line {
	return Line{
		ProductID: productID,
		Name:      name,
		Capacity:  capacity,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		maxQty:    stockSnapshot,
	}
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered sequence of lines, at most one per product. It exists
// for the duration of one terminal session and is discarded on checkout or
// explicit cancel.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// AddLine increments an existing line for the product by one, or appends a
// new quantity-1 line with a fresh snapshot. Adding beyond the snapshotted
// stock returns ErrProductOutOfStock and leaves the cart unchanged.
func (c *Cart) AddLine(p catalog.Product) error {
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			if c.lines[i].Quantity >= c.lines[i].maxQty {
				return domainErrors.ErrProductOutOfStock
			}
			c.lines[i].Quantity++
			return nil
		}
	}

	if p.Stock < 1 {
		return domainErrors.ErrProductOutOfStock
	}

	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Capacity:  p.Capacity,
		UnitPrice: p.Price,
		Quantity:  1,
		maxQty:    p.Stock,
	})
	return nil
}

// AdjustQuantity applies a signed delta. A resulting quantity of zero or
// below removes the line entirely, which is the only quantity-driven removal
// path; the cart therefore never holds a zero-quantity line. A resulting
// quantity above the stock snapshot clamps to the snapshot.
func (c *Cart) AdjustQuantity(productID string, delta int) error {
	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}

		qty := c.lines[i].Quantity + delta
		if qty <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
		if qty > c.lines[i].maxQty {
			qty = c.lines[i].maxQty
		}
		c.lines[i].Quantity = qty
		return nil
	}
	return domainErrors.ErrLineNotFound
}

// RemoveLine drops the product's line regardless of quantity.
func (c *Cart) RemoveLine(productID string) error {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrLineNotFound
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy; the cart's own slice is never shared.
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// ItemCount is the summed quantity across lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// Total is the sum of line subtotals. Rounding happens only at presentation,
// at 2-decimal currency precision.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
