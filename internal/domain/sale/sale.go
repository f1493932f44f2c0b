package sale

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/donbacco/pos-service/internal/domain/cart"
	"github.com/donbacco/pos-service/internal/domain/pricing"
)

// Sale is the immutable record of one finalized purchase. It is created
// exactly once per committed checkout, appended to the ledger, and never
// mutated or deleted afterwards.
type Sale struct {
	ID            string
	Timestamp     time.Time
	Lines         []cart.Line
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
	CustomerID    string
}

func NewSale(id string, timestamp time.Time, lines []cart.Line, total decimal.Decimal, method PaymentMethod, customerID string) (*Sale, error) {
	if id == "" {
		return nil, errors.New("sale id cannot be empty")
	}

	if len(lines) == 0 {
		return nil, errors.New("sale must have at least one line")
	}

	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, errors.New("sale line quantity must be at least 1")
		}
	}

	if !total.Equal(pricing.Subtotal(lines)) {
		return nil, errors.New("sale total does not match its lines")
	}

	snapshot := make([]cart.Line, len(lines))
	copy(snapshot, lines)

	return &Sale{
		ID:            id,
		Timestamp:     timestamp,
		Lines:         snapshot,
		Total:         total,
		PaymentMethod: method,
		CustomerID:    customerID,
	}, nil
}

// ItemCount is the summed quantity across the sale's lines.
func (s *Sale) ItemCount() int {
	count := 0
	for _, l := range s.Lines {
		count += l.Quantity
	}
	return count
}

// OccurredBetween reports whether the sale falls inside [from, to).
// A zero bound is open on that side.
func (s *Sale) OccurredBetween(from, to time.Time) bool {
	if !from.IsZero() && s.Timestamp.Before(from) {
		return false
	}
	if !to.IsZero() && !s.Timestamp.Before(to) {
		return false
	}
	return true
}
