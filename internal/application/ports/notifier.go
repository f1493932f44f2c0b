package ports

import (
	"context"

	"github.com/donbacco/pos-service/internal/domain/inventory"
)

// StockNotifier delivers stock alerts to the external notification sink.
// Delivery is best-effort and fire-and-forget; a failure never rolls back a
// committed sale.
type StockNotifier interface {
	NotifyLowStock(ctx context.Context, alert inventory.Alert) error
}
