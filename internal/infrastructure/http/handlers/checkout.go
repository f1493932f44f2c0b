package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/donbacco/pos-service/internal/application/commands"
	"github.com/donbacco/pos-service/internal/application/use_cases"
	"github.com/donbacco/pos-service/internal/domain/pricing"
	"github.com/donbacco/pos-service/internal/domain/sale"
	"github.com/donbacco/pos-service/internal/infrastructure/http/response"
	"github.com/donbacco/pos-service/internal/infrastructure/monitoring"
	"github.com/donbacco/pos-service/internal/pkg/logger"
)

type CheckoutHandler struct {
	terminal *use_cases.Terminal
	log      *logger.Logger
}

func NewCheckoutHandler(terminal *use_cases.Terminal, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		terminal: terminal,
		log:      log,
	}
}

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method"`
	Tendered      string `json:"tendered,omitempty"`
	CustomerID    string `json:"customer_id,omitempty"`
}

type checkoutResponse struct {
	Committed bool               `json:"committed"`
	Noop      bool               `json:"noop,omitempty"`
	Rejection string             `json:"rejection,omitempty"`
	Sale      *commands.SaleView `json:"sale,omitempty"`
	Change    *decimal.Decimal   `json:"change,omitempty"`
}

func (h *CheckoutHandler) HandleCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req checkoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.WriteValidationError(w, "Invalid request body", nil)
			return
		}

		method, err := sale.ParsePaymentMethod(req.PaymentMethod)
		if err != nil {
			response.WriteDomainError(w, err)
			return
		}

		tender := pricing.NoTender()
		if req.Tendered != "" {
			amount, err := decimal.NewFromString(req.Tendered)
			if err != nil {
				response.WriteValidationError(w, "Validation failed", map[string]string{
					"tendered": "tendered must be a decimal amount",
				})
				return
			}
			tender = pricing.TenderOf(amount)
		}

		result, err := h.terminal.Checkout(r.Context(), commands.CheckoutCommand{
			PaymentMethod: method,
			Tender:        tender,
			CustomerID:    req.CustomerID,
		})
		if err != nil {
			h.log.Error("Checkout failed", "error", err)
			response.WriteDomainError(w, err)
			return
		}

		if result.Noop {
			response.WriteSuccess(w, checkoutResponse{Noop: true})
			return
		}

		if !result.Committed {
			monitoring.RecordCheckoutRejection(string(result.Rejection))
			response.WriteSuccess(w, checkoutResponse{
				Committed: false,
				Rejection: string(result.Rejection),
			})
			return
		}

		total, _ := result.Sale.Total.Float64()
		monitoring.RecordSaleCommitted(total, result.Sale.ItemCount())
		monitoring.UpdateCartItems(0)

		view := commands.NewSaleView(result.Sale)
		resp := checkoutResponse{
			Committed: true,
			Sale:      &view,
		}
		if method.RequiresTender() {
			change := result.Change
			resp.Change = &change
		}

		response.WriteSuccess(w, resp)
	}
}
