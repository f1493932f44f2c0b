package main

import (
	"context"
	"database/sql"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/donbacco/pos-service/internal/application/ports"
	"github.com/donbacco/pos-service/internal/application/use_cases"
	"github.com/donbacco/pos-service/internal/config"
	"github.com/donbacco/pos-service/internal/infrastructure/documents"
	"github.com/donbacco/pos-service/internal/infrastructure/http/server"
	"github.com/donbacco/pos-service/internal/infrastructure/monitoring"
	"github.com/donbacco/pos-service/internal/infrastructure/notification"
	"github.com/donbacco/pos-service/internal/infrastructure/persistence/locked"
	"github.com/donbacco/pos-service/internal/infrastructure/persistence/memory"
	"github.com/donbacco/pos-service/internal/infrastructure/persistence/postgres"
	"github.com/donbacco/pos-service/internal/infrastructure/persistence/redis"
	"github.com/donbacco/pos-service/internal/pkg/clock"
	"github.com/donbacco/pos-service/internal/pkg/generator"
	"github.com/donbacco/pos-service/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	flag.Parse()

	log := logger.NewLogger()
	log.Info("Starting POS service")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatal("Failed to load configuration", "error", err)
		}
		log.Warn("Config file not found, using defaults", "path", *configPath)
		cfg = config.DefaultConfig()
	}

	clk := clock.NewRealClock()

	var (
		catalogStore ports.CatalogStore
		db           *sql.DB
	)
	switch cfg.Catalog.Driver {
	case "postgres":
		conn, err := postgres.NewConnection(cfg.Catalog.Postgres)
		if err != nil {
			log.Fatal("Failed to connect to catalog database", "error", err)
		}
		defer conn.Close()
		db = conn.GetDB()

		store, err := postgres.NewCatalogStore(conn)
		if err != nil {
			log.Fatal("Failed to initialize catalog store", "error", err)
		}
		catalogStore = store

		collector := monitoring.NewDBMetricsCollector(db)
		collector.StartCollecting(context.Background(), 30*time.Second)
	default:
		catalogStore = memory.NewCatalogStore()
	}

	if err := seedCatalog(context.Background(), catalogStore); err != nil {
		log.Fatal("Failed to seed catalog", "error", err)
	}

	var (
		notifier    ports.StockNotifier
		redisClient *goredis.Client
	)
	if cfg.Alerts.Enabled {
		conn, err := redis.NewConnection(cfg.Alerts.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", "error", err)
		}
		defer conn.Close()
		redisClient = conn.GetClient()
		notifier = redis.NewAlertPublisher(conn, cfg.Alerts.Channel, log)
	} else {
		notifier = notification.NewLogNotifier(log)
	}

	docSink, err := documents.NewFileSink(cfg.Documents.Dir, log)
	if err != nil {
		log.Fatal("Failed to prepare documents directory", "error", err)
	}

	formatter := documents.NewFormatter(cfg.Store.Name, cfg.Store.CurrencySymbol, cfg.Store.TaxRate)

	// Every reader and writer goes through the locked store, so a committed
	// sale's stock deduction and ledger append are observed together.
	store := locked.NewStore(catalogStore, memory.NewLedger())

	terminal := use_cases.NewTerminal(
		store,
		notifier,
		docSink,
		formatter,
		generator.NewSaleIDGenerator(clk),
		clk,
		log,
		cfg.Store.TaxRate,
	)

	reports := use_cases.NewReportUseCase(store.Ledger(), store.Catalog(), formatter, docSink, log, cfg.Store.ReportTopN)

	httpServer := server.NewServer(cfg, server.Dependencies{
		Terminal: terminal,
		Reports:  reports,
		Catalog:  store.Catalog(),
		Ledger:   store.Ledger(),
		Clock:    clk,
		DB:       db,
		Redis:    redisClient,
	}, log)

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
	}

	log.Info("POS service stopped")
}
