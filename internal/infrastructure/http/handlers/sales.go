package handlers

import (
	"net/http"
	"strings"

	"github.com/donbacco/pos-service/internal/application/commands"
	"github.com/donbacco/pos-service/internal/application/ports"
	"github.com/donbacco/pos-service/internal/infrastructure/http/response"
	"github.com/donbacco/pos-service/internal/pkg/logger"
)

type SalesHandler struct {
	ledger ports.Ledger
	log    *logger.Logger
}

func NewSalesHandler(ledger ports.Ledger, log *logger.Logger) *SalesHandler {
	return &SalesHandler{
		ledger: ledger,
		log:    log,
	}
}

func (h *SalesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	sales, err := h.ledger.List(r.Context())
	if err != nil {
		h.log.Error("Failed to read ledger", "error", err)
		response.WriteDomainError(w, err)
		return
	}

	views := make([]commands.SaleView, 0, len(sales))
	for _, s := range sales {
		views = append(views, commands.NewSaleView(s))
	}

	response.WriteSuccess(w, views)
}

func (h *SalesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/sales/")
	if id == "" {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"id": "sale id is required in the path",
		})
		return
	}

	s, err := h.ledger.Get(r.Context(), id)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, commands.NewSaleView(s))
}
