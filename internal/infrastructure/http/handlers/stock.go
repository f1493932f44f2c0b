package handlers

import (
	"net/http"

	"github.com/donbacco/pos-service/internal/application/ports"
	"github.com/donbacco/pos-service/internal/domain/inventory"
	"github.com/donbacco/pos-service/internal/infrastructure/http/response"
	"github.com/donbacco/pos-service/internal/infrastructure/monitoring"
	"github.com/donbacco/pos-service/internal/pkg/logger"
)

type StockHandler struct {
	catalog ports.CatalogStore
	log     *logger.Logger
}

func NewStockHandler(catalogStore ports.CatalogStore, log *logger.Logger) *StockHandler {
	return &StockHandler{
		catalog: catalogStore,
		log:     log,
	}
}

// HandleCritical lists products at or below minimum stock, most depleted
// first.
func (h *StockHandler) HandleCritical(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		h.log.Error("Failed to list products", "error", err)
		response.WriteDomainError(w, err)
		return
	}

	critical := inventory.Critical(products)
	monitoring.UpdateCriticalStock(len(critical))

	views := make([]productView, 0, len(critical))
	for _, p := range critical {
		views = append(views, newProductView(p))
	}

	response.WriteSuccess(w, views)
}
