package use_cases

import (
	"context"
	"fmt"

	"github.com/donbacco/pos-service/internal/application/ports"
	"github.com/donbacco/pos-service/internal/domain/report"
	"github.com/donbacco/pos-service/internal/pkg/logger"
)

// ReportUseCase renders period summaries from the ledger and catalog. A
// document-rendering failure degrades to the plain-text summary only; it
// never propagates past this use case.
type ReportUseCase struct {
	ledger   ports.Ledger
	catalog  ports.CatalogStore
	renderer ports.ReportRenderer
	docs     ports.DocumentSink
	log      *logger.Logger
	topN     int
}

func NewReportUseCase(
	ledger ports.Ledger,
	catalog ports.CatalogStore,
	renderer ports.ReportRenderer,
	docs ports.DocumentSink,
	log *logger.Logger,
	topN int,
) *ReportUseCase {
	return &ReportUseCase{
		ledger:   ledger,
		catalog:  catalog,
		renderer: renderer,
		docs:     docs,
		log:      log,
		topN:     topN,
	}
}

type Summary struct {
	Report   report.Report
	Text     string
	Degraded bool
}

func (uc *ReportUseCase) Summarize(ctx context.Context, period report.Period) (*Summary, error) {
	sales, err := uc.ledger.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	products, err := uc.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}

	r := report.Build(sales, products, period, uc.topN)

	doc, text, err := uc.renderer.RenderReport(r)
	if err != nil {
		uc.log.Warn("Report document rendering degraded", "error", err)
		return &Summary{Report: r, Text: text, Degraded: true}, nil
	}

	if uc.docs != nil {
		if err := uc.docs.Publish(ctx, doc); err != nil {
			uc.log.Warn("Report delivery failed", "error", err, "name", doc.Name)
		}
	}

	return &Summary{Report: r, Text: text}, nil
}
