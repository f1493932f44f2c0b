package ports

import (
	"github.com/shopspring/decimal"

	"github.com/donbacco/pos-service/internal/domain/pricing"
	"github.com/donbacco/pos-service/internal/domain/report"
	"github.com/donbacco/pos-service/internal/domain/sale"
)

// ReceiptRenderer turns a committed sale into a fiscal document. Tender and
// change are rendered for cash sales only.
type ReceiptRenderer interface {
	RenderReceipt(s *sale.Sale, tender pricing.Tender, change decimal.Decimal) (Document, error)
}

// ReportRenderer turns a period report into a structured document plus a
// condensed plain-text summary. The summary must always come back, even when
// the document itself fails to render.
type ReportRenderer interface {
	RenderReport(r report.Report) (Document, string, error)
}
