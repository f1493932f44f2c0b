package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/donbacco/pos-service/internal/domain/inventory"
	"github.com/donbacco/pos-service/internal/infrastructure/monitoring"
	"github.com/donbacco/pos-service/internal/pkg/logger"
)

// AlertPublisher pushes stock alerts onto a Redis channel for the
// notification side to consume. Delivery is best-effort; subscribers may or
// may not be listening.
type AlertPublisher struct {
	client  *redis.Client
	channel string
	log     *logger.Logger
}

func NewAlertPublisher(conn *Connection, channel string, log *logger.Logger) *AlertPublisher {
	return &AlertPublisher{
		client:  conn.GetClient(),
		channel: channel,
		log:     log,
	}
}

func (p *AlertPublisher) NotifyLowStock(ctx context.Context, alert inventory.Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return err
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return err
	}

	monitoring.RecordStockAlerts(1)
	p.log.Debug("Stock alert published",
		"channel", p.channel,
		"product_id", alert.ProductID,
		"stock", alert.Stock,
	)
	return nil
}
