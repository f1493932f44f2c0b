package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/donbacco/pos-service/internal/domain/cart"
)

// DefaultTaxRate is the IGV rate applied to tax-inclusive totals.
const DefaultTaxRate = 0.18

// Subtotal sums line price times quantity across the cart. No intermediate
// rounding; callers round to 2 decimals only when presenting.
func Subtotal(lines []cart.Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// TaxDecomposition splits an already-fixed tax-inclusive total into base and
// tax for presentation: base = total / (1+rate), tax = total - base. It must
// never be used to recompute what is owed.
func TaxDecomposition(total decimal.Decimal, rate decimal.Decimal) (base, tax decimal.Decimal) {
	base = total.Div(decimal.NewFromInt(1).Add(rate))
	tax = total.Sub(base)
	return base, tax
}

// Tender is the cash amount offered by the customer. "Not yet entered" is a
// distinct observable state from "entered and insufficient".
type Tender struct {
	entered bool
	amount  decimal.Decimal
}

func NoTender() Tender {
	return Tender{}
}

func TenderOf(amount decimal.Decimal) Tender {
	return Tender{entered: true, amount: amount}
}

func (t Tender) Entered() bool {
	return t.entered
}

func (t Tender) Amount() decimal.Decimal {
	return t.amount
}

type ChangeStatus int

const (
	// ChangeUndefined: no tender entered yet.
	ChangeUndefined ChangeStatus = iota
	// PaymentInsufficient: tender entered but below the total.
	PaymentInsufficient
	// ChangeOK: tender covers the total; change is tender minus total.
	ChangeOK
)

// ComputeChange classifies the tender against the total. Change is only
// meaningful when the status is ChangeOK.
func ComputeChange(tender Tender, total decimal.Decimal) (decimal.Decimal, ChangeStatus) {
	if !tender.entered {
		return decimal.Zero, ChangeUndefined
	}

	change := tender.amount.Sub(total)
	if change.IsNegative() {
		return decimal.Zero, PaymentInsufficient
	}
	return change, ChangeOK
}
