package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/nikolayk812/pdv-demo/internal/api"
	"github.com/nikolayk812/pdv-demo/internal/cart"
	"github.com/nikolayk812/pdv-demo/internal/catalog"
	"github.com/nikolayk812/pdv-demo/internal/config"
	"github.com/nikolayk812/pdv-demo/internal/domain"
	"github.com/nikolayk812/pdv-demo/internal/inventory"
	"github.com/nikolayk812/pdv-demo/internal/logger"
	"github.com/nikolayk812/pdv-demo/internal/metrics"
	"github.com/nikolayk812/pdv-demo/internal/migrate"
	"github.com/nikolayk812/pdv-demo/internal/notify"
	"github.com/nikolayk812/pdv-demo/internal/port"
	"github.com/nikolayk812/pdv-demo/internal/repository"
	"github.com/nikolayk812/pdv-demo/internal/sales"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const serviceName = "pdv"

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "pdv stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	products, stock, closeCatalog, err := openCatalog(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer closeCatalog()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	cartMetrics := metrics.NewCartMetrics(reg)

	salesService, err := sales.NewService(stock, cartMetrics, logg)
	if err != nil {
		return fmt.Errorf("sales.NewService: %w", err)
	}

	inventoryService, err := inventory.NewService(products, logg)
	if err != nil {
		return fmt.Errorf("inventory.NewService: %w", err)
	}

	registers, err := api.NewRegisters(func() (*cart.Engine, error) {
		return cart.New(products, cart.Config{
			Currency:       cfg.POS.CurrencyUnit(),
			PaymentMethods: cfg.POS.Methods(),
		})
	}, cfg.POS.MaxRegisters)
	if err != nil {
		return fmt.Errorf("api.NewRegisters: %w", err)
	}

	router, err := api.NewRouter(api.Deps{
		Products:  products,
		Inventory: inventoryService,
		Registers: registers,
		Sales:     salesService,
		Formatter: notify.NewFormatter(cfg.POS.Language()),
		Notifier:  notify.NewLogNotifier(logg),
		Metrics:   cartMetrics,
		Gatherer:  reg,
		Logger:    logg,
		Currency:  cfg.POS.CurrencyUnit(),
		StoreName: cfg.POS.StoreName,
	})
	if err != nil {
		return fmt.Errorf("api.NewRouter: %w", err)
	}

	server := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	logg.Info(logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    server.Addr,
		"catalog": cfg.POS.CatalogBackend,
		"store":   cfg.POS.StoreName,
	}), "starting pdv server")

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server.ListenAndServe: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logg.Info(context.Background(), "shutting down pdv server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}

	return nil
}

// openCatalog returns the product catalog and the sales repository that
// deducts stock from it.
func openCatalog(ctx context.Context, cfg *config.Config, logg *logger.Logger) (port.ProductRepository, port.SaleRepository, func(), error) {
	if cfg.POS.CatalogBackend == config.CatalogMemory {
		var seed []domain.Product
		if cfg.POS.SeedCatalog {
			seed = catalog.DefaultProducts()
		}

		memory, err := catalog.NewMemory(seed...)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("catalog.NewMemory: %w", err)
		}

		repo, err := sales.NewMemoryRepository(memory)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("sales.NewMemoryRepository: %w", err)
		}

		return memory, repo, func() {}, nil
	}

	pool, err := openPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, nil, err
	}

	if cfg.DB.AutoMigrate {
		sqlDB := stdlib.OpenDBFromPool(pool)
		err := migrate.Up(ctx, sqlDB, logg)
		_ = sqlDB.Close()
		if err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("migrate.Up: %w", err)
		}
	}

	products := repository.NewProduct(pool)

	if cfg.POS.SeedCatalog {
		for _, p := range catalog.DefaultProducts() {
			if err := products.UpsertProduct(ctx, p); err != nil {
				pool.Close()
				return nil, nil, nil, fmt.Errorf("products.UpsertProduct[%s]: %w", p.Code, err)
			}
		}
	}

	return products, repository.NewSale(pool), pool.Close, nil
}

func openPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	return pool, nil
}
