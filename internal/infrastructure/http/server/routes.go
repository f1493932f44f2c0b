package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donbacco/pos-service/internal/infrastructure/http/middleware"
	"github.com/donbacco/pos-service/internal/infrastructure/monitoring"
)

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", s.healthHandler.HandleHealth())

	mux.HandleFunc("/products", s.productsHandler.HandleList)
	mux.HandleFunc("/cart", s.cartHandler.HandleView)
	mux.HandleFunc("/cart/items", methodOnly(http.MethodPost, s.cartHandler.HandleAddItem))
	mux.HandleFunc("/cart/adjust", methodOnly(http.MethodPost, s.cartHandler.HandleAdjust))
	mux.HandleFunc("/cart/remove", methodOnly(http.MethodPost, s.cartHandler.HandleRemove))
	mux.HandleFunc("/cart/clear", methodOnly(http.MethodPost, s.cartHandler.HandleClear))
	mux.HandleFunc("/checkout", s.checkoutHandler.HandleCheckout())
	mux.HandleFunc("/sales", s.salesHandler.HandleList)
	mux.HandleFunc("/sales/", s.salesHandler.HandleGet)
	mux.HandleFunc("/stock/critical", s.stockHandler.HandleCritical)
	mux.HandleFunc("/reports/summary", s.reportsHandler.HandleSummary)
	mux.HandleFunc("/admin/products", methodOnly(http.MethodPost, s.productsHandler.HandleUpsert))
	mux.HandleFunc("/admin/products/", s.handleAdminProductRoutes)

	handler := middleware.NewRecoveryMiddleware(s.logger)(mux)
	handler = middleware.NewLoggingMiddleware(s.logger)(handler)
	handler = monitoring.WrapHandler(handler)
	handler = s.corsMiddleware(handler)
	handler = s.timeoutMiddleware(handler)

	return handler
}

func (s *Server) handleAdminProductRoutes(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/admin/products/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	if r.Method == http.MethodDelete {
		s.productsHandler.HandleDelete(w, r)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

func methodOnly(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type")
		w.Header().Set("Access-Control-Max-Age", "300")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) timeoutMiddleware(next http.Handler) http.Handler {
	return http.TimeoutHandler(next, 30*time.Second, "Request timeout")
}
