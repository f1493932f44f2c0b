package commands

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/donbacco/pos-service/internal/domain/pricing"
	"github.com/donbacco/pos-service/internal/domain/sale"
)

type CheckoutCommand struct {
	PaymentMethod sale.PaymentMethod
	Tender        pricing.Tender
	CustomerID    string
}

// RejectionReason classifies why a checkout was rejected. An empty cart is
// not a rejection; it surfaces as a no-op result instead.
type RejectionReason string

const (
	RejectionNone                RejectionReason = ""
	RejectionPaymentInsufficient RejectionReason = "payment_insufficient"
)

type CheckoutResult struct {
	Committed bool

	// Noop marks an empty-cart checkout: nothing was validated or recorded
	// and the terminal stayed OPEN.
	Noop bool

	Rejection RejectionReason
	Sale      *sale.Sale

	// Change is meaningful only for committed cash sales.
	Change decimal.Decimal
}

type CartView struct {
	Lines     []CartLineView  `json:"lines"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
	TaxBase   decimal.Decimal `json:"tax_base"`
	Tax       decimal.Decimal `json:"tax"`
}

type CartLineView struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Capacity  string          `json:"capacity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type SaleView struct {
	ID            string          `json:"id"`
	Timestamp     time.Time       `json:"timestamp"`
	Lines         []CartLineView  `json:"lines"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	CustomerID    string          `json:"customer_id,omitempty"`
}

func NewSaleView(s *sale.Sale) SaleView {
	lines := make([]CartLineView, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, CartLineView{
			ProductID: l.ProductID,
			Name:      l.Name,
			Capacity:  l.Capacity,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
		})
	}

	return SaleView{
		ID:            s.ID,
		Timestamp:     s.Timestamp,
		Lines:         lines,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod.String(),
		CustomerID:    s.CustomerID,
	}
}
