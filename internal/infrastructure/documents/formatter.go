package documents

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/donbacco/pos-service/internal/application/ports"
	domainErrors "github.com/donbacco/pos-service/internal/domain/errors"
	"github.com/donbacco/pos-service/internal/domain/pricing"
	"github.com/donbacco/pos-service/internal/domain/report"
	"github.com/donbacco/pos-service/internal/domain/sale"
)

// Formatter renders sales and period reports into shareable documents.
type Formatter struct {
	storeName string
	currency  string
	taxRate   decimal.Decimal
}

func NewFormatter(storeName, currencySymbol string, taxRate float64) *Formatter {
	return &Formatter{
		storeName: storeName,
		currency:  currencySymbol,
		taxRate:   decimal.NewFromFloat(taxRate),
	}
}

func (f *Formatter) money(d decimal.Decimal) string {
	return fmt.Sprintf("%s %s", f.currency, d.StringFixed(2))
}

// RenderReceipt produces the fiscal ticket for one sale: itemized lines,
// grand total, the base/IGV decomposition of the tax-inclusive total, the
// payment method and, for cash, tendered amount and change.
func (f *Formatter) RenderReceipt(s *sale.Sale, tender pricing.Tender, change decimal.Decimal) (ports.Document, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", f.storeName)
	fmt.Fprintf(&b, "Ticket: %s\n", s.ID)
	fmt.Fprintf(&b, "Fecha: %s\n", s.Timestamp.Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "Pago: %s\n", s.PaymentMethod.String())
	b.WriteString(strings.Repeat("-", 46) + "\n")
	fmt.Fprintf(&b, "%-4s %-22s %9s %9s\n", "Cant", "Producto", "P.Unit", "Subtotal")

	for _, l := range s.Lines {
		name := l.Name
		if l.Capacity != "" {
			name = fmt.Sprintf("%s %s", l.Name, l.Capacity)
		}
		// Truncate by runes so accented names never split mid-character.
		if runes := []rune(name); len(runes) > 22 {
			name = string(runes[:22])
		}
		fmt.Fprintf(&b, "%-4d %-22s %9s %9s\n",
			l.Quantity, name, l.UnitPrice.StringFixed(2), l.Subtotal().StringFixed(2))
	}

	b.WriteString(strings.Repeat("-", 46) + "\n")

	base, tax := pricing.TaxDecomposition(s.Total, f.taxRate)
	fmt.Fprintf(&b, "OP. GRAVADA: %s\n", f.money(base))
	fmt.Fprintf(&b, "IGV (%s%%): %s\n", f.taxRate.Mul(decimal.NewFromInt(100)).StringFixed(0), f.money(tax))
	fmt.Fprintf(&b, "TOTAL: %s\n", f.money(s.Total))

	if s.PaymentMethod.RequiresTender() && tender.Entered() {
		fmt.Fprintf(&b, "RECIBIDO: %s\n", f.money(tender.Amount()))
		fmt.Fprintf(&b, "VUELTO: %s\n", f.money(change))
	}

	return ports.Document{
		Name:        fmt.Sprintf("Ticket_%s.txt", s.ID),
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(b.String()),
	}, nil
}

// reportDocument is the structured artifact shape for a period report.
type reportDocument struct {
	Store   string        `json:"store"`
	Report  report.Report `json:"report"`
	Summary string        `json:"summary"`
}

// RenderReport produces the structured report artifact and the condensed
// plain-text summary. The summary is always returned; if the structured
// artifact cannot be rendered the error wraps ErrFormattingDegraded so the
// caller can degrade instead of failing.
func (f *Formatter) RenderReport(r report.Report) (ports.Document, string, error) {
	summary := f.PlainSummary(r)

	doc := reportDocument{
		Store:   f.storeName,
		Report:  r,
		Summary: summary,
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return ports.Document{}, summary, fmt.Errorf("%w: %v", domainErrors.ErrFormattingDegraded, err)
	}

	name := "Reporte.json"
	if !r.Period.To.IsZero() {
		name = fmt.Sprintf("Reporte_%s.json", r.Period.To.Format("2006-01-02"))
	}

	return ports.Document{
		Name:        name,
		ContentType: "application/json",
		Body:        body,
	}, summary, nil
}

// PlainSummary is the condensed figures text shared externally, laid out as
// a short message.
func (f *Formatter) PlainSummary(r report.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Reporte %s*\n\n", f.storeName)
	fmt.Fprintf(&b, "Ventas Totales: %s\n", f.money(r.Revenue))
	fmt.Fprintf(&b, "Transacciones: %d\n", r.Transactions)
	fmt.Fprintf(&b, "Ticket Promedio: %s\n", f.money(r.AverageTicket))

	b.WriteString("\nTOP PRODUCTOS:\n")
	if len(r.TopProducts) == 0 {
		b.WriteString("- N/A\n")
	}
	for _, p := range r.TopProducts {
		fmt.Fprintf(&b, "- %s: %d un.\n", p.Name, p.Quantity)
	}

	b.WriteString("\nALERTA STOCK:\n")
	if len(r.CriticalStock) == 0 {
		b.WriteString("- sin alertas\n")
	}
	for _, p := range r.CriticalStock {
		fmt.Fprintf(&b, "- %s (%d/%d)\n", p.Name, p.Stock, p.MinStock)
	}

	return b.String()
}
