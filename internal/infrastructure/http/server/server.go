package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/donbacco/pos-service/internal/application/ports"
	"github.com/donbacco/pos-service/internal/application/use_cases"
	"github.com/donbacco/pos-service/internal/config"
	"github.com/donbacco/pos-service/internal/infrastructure/http/handlers"
	"github.com/donbacco/pos-service/internal/pkg/clock"
	"github.com/donbacco/pos-service/internal/pkg/logger"
)

type Server struct {
	server          *http.Server
	logger          *logger.Logger
	healthHandler   *handlers.HealthHandler
	cartHandler     *handlers.CartHandler
	checkoutHandler *handlers.CheckoutHandler
	productsHandler *handlers.ProductsHandler
	salesHandler    *handlers.SalesHandler
	stockHandler    *handlers.StockHandler
	reportsHandler  *handlers.ReportsHandler
}

// Dependencies carries the wired collaborators into the transport layer.
// db and redisClient are nil when the optional adapters are disabled.
type Dependencies struct {
	Terminal *use_cases.Terminal
	Reports  *use_cases.ReportUseCase
	Catalog  ports.CatalogStore
	Ledger   ports.Ledger
	Clock    clock.Clock
	DB       *sql.DB
	Redis    *redis.Client
}

func NewServer(cfg *config.Config, deps Dependencies, log *logger.Logger) *Server {
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		server:          server,
		logger:          log,
		healthHandler:   handlers.NewHealthHandler(deps.DB, deps.Redis, log),
		cartHandler:     handlers.NewCartHandler(deps.Terminal, log),
		checkoutHandler: handlers.NewCheckoutHandler(deps.Terminal, log),
		productsHandler: handlers.NewProductsHandler(deps.Catalog, log),
		salesHandler:    handlers.NewSalesHandler(deps.Ledger, log),
		stockHandler:    handlers.NewStockHandler(deps.Catalog, log),
		reportsHandler:  handlers.NewReportsHandler(deps.Reports, deps.Clock, log),
	}
}

func (s *Server) ListenAndServe() error {
	s.server.Handler = s.setupRoutes()

	s.logger.Info("Starting HTTP server", "address", s.server.Addr)

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
