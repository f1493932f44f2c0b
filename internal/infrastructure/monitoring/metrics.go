package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method", "status_code"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status_code"},
	)
)

var (
	SalesCommittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_sales_committed_total",
			Help: "Total number of committed sales",
		},
	)

	SalesRevenueTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_sales_revenue_total",
			Help: "Accumulated revenue of committed sales",
		},
	)

	CheckoutRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_checkout_rejections_total",
			Help: "Total number of rejected checkout attempts",
		},
		[]string{"reason"},
	)

	CartItemsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pos_cart_items",
			Help: "Items currently in the open cart",
		},
	)

	CriticalStockGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pos_critical_stock_products",
			Help: "Number of products at or below minimum stock",
		},
	)

	StockAlertsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_stock_alerts_total",
			Help: "Total number of emitted stock alerts",
		},
	)

	ItemsSoldTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_items_sold_total",
			Help: "Total number of units sold across committed sales",
		},
	)
)

func RecordSaleCommitted(total float64, items int) {
	SalesCommittedTotal.Inc()
	SalesRevenueTotal.Add(total)
	ItemsSoldTotal.Add(float64(items))
}

func RecordCheckoutRejection(reason string) {
	CheckoutRejectionsTotal.WithLabelValues(reason).Inc()
}

func UpdateCartItems(count int) {
	CartItemsGauge.Set(float64(count))
}

func UpdateCriticalStock(count int) {
	CriticalStockGauge.Set(float64(count))
}

func RecordStockAlerts(count int) {
	StockAlertsTotal.Add(float64(count))
}
