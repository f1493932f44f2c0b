package notification

import (
	"context"

	"github.com/donbacco/pos-service/internal/domain/inventory"
	"github.com/donbacco/pos-service/internal/infrastructure/monitoring"
	"github.com/donbacco/pos-service/internal/pkg/logger"
)

// LogNotifier is the fallback sink when no alert transport is configured:
// alerts land in the structured log instead of disappearing.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifyLowStock(ctx context.Context, alert inventory.Alert) error {
	n.log.Warn("Stock critical",
		"product_id", alert.ProductID,
		"name", alert.Name,
		"stock", alert.Stock,
		"min_stock", alert.MinStock,
	)
	monitoring.RecordStockAlerts(1)
	return nil
}
