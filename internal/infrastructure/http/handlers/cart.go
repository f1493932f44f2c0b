package handlers

import (
	"net/http"
	"strconv"

	"github.com/donbacco/pos-service/internal/application/use_cases"
	"github.com/donbacco/pos-service/internal/infrastructure/http/response"
	"github.com/donbacco/pos-service/internal/infrastructure/monitoring"
	"github.com/donbacco/pos-service/internal/pkg/logger"
)

type CartHandler struct {
	terminal *use_cases.Terminal
	log      *logger.Logger
}

func NewCartHandler(terminal *use_cases.Terminal, log *logger.Logger) *CartHandler {
	return &CartHandler{
		terminal: terminal,
		log:      log,
	}
}

func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"product_id": "product_id is required",
		})
		return
	}

	if err := h.terminal.AddProduct(r.Context(), productID); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	h.writeView(w)
}

func (h *CartHandler) HandleAdjust(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	deltaParam := r.URL.Query().Get("delta")

	errors := make(map[string]string)
	if productID == "" {
		errors["product_id"] = "product_id is required"
	}
	delta, err := strconv.Atoi(deltaParam)
	if err != nil {
		errors["delta"] = "delta must be an integer"
	}
	if len(errors) > 0 {
		response.WriteValidationError(w, "Validation failed", errors)
		return
	}

	if err := h.terminal.AdjustQuantity(productID, delta); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	h.writeView(w)
}

func (h *CartHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"product_id": "product_id is required",
		})
		return
	}

	if err := h.terminal.RemoveLine(productID); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	h.writeView(w)
}

func (h *CartHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.terminal.Cancel()
	h.writeView(w)
}

func (h *CartHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	h.writeView(w)
}

func (h *CartHandler) writeView(w http.ResponseWriter) {
	view := h.terminal.View()
	monitoring.UpdateCartItems(view.ItemCount)
	response.WriteSuccess(w, view)
}
