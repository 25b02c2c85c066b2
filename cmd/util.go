package cmd

import (
	"context"
	"database/sql"
	"etfsim/api"
	"etfsim/internal/logger"
	"etfsim/internal/repository"
	"etfsim/internal/service"
	"etfsim/internal/util"
	"fmt"

	"go.uber.org/zap"
)

type Dependencies struct {
	Config            *util.Config
	Logger            *zap.SugaredLogger
	SimulationService service.SimulationService
	ApiHandler        *api.ApiHandler
	// nil unless the bar cache is configured
	Db *sql.DB
}

func CloseDependencies(deps *Dependencies) {
	if deps.Db == nil {
		return
	}
	if err := deps.Db.Close(); err != nil {
		deps.Logger.Errorw("failed to close bar cache", "error", err.Error())
	}
}

// NewPriceProviders builds the upstream repositories in configured
// order. alpaca is skipped when no credentials were supplied
func NewPriceProviders(cfg *util.Config, log *zap.SugaredLogger) []repository.PriceHistoryRepository {
	providers := []repository.PriceHistoryRepository{}
	for _, name := range cfg.Providers {
		switch name {
		case util.ProviderAlpaca:
			if !cfg.Alpaca.HasCredentials() {
				log.Warnw("skipping alpaca provider, no credentials configured")
				continue
			}
			providers = append(providers, repository.NewAlpacaRepository(cfg.Alpaca))
		case util.ProviderYahoo:
			providers = append(providers, repository.NewYahooRepository())
		}
	}
	return providers
}

// openBarCache returns nil, nil when the cache is off or cannot be
// opened. simulations still work without it, just slower
func openBarCache(ctx context.Context, cfg util.CacheConfig, log *zap.SugaredLogger) (*sql.DB, repository.BarCacheRepository) {
	if !cfg.Enabled() {
		return nil, nil
	}
	dbConn, repo, err := repository.OpenBarCache(ctx, cfg)
	if err != nil {
		log.Warnw("bar cache unavailable, continuing without it", "driver", cfg.Driver, "error", err.Error())
		return nil, nil
	}
	return dbConn, repo
}

func InitializeDependencies() (*Dependencies, error) {
	cfg, err := util.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New()

	providers := NewPriceProviders(cfg, log)
	if len(providers) == 0 {
		return nil, fmt.Errorf("no market data providers available from %v", cfg.Providers)
	}

	deps := &Dependencies{
		Config: cfg,
		Logger: log,
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	dbConn, barCacheRepository := openBarCache(ctx, cfg.Cache, log)
	deps.Db = dbConn

	priceService := service.NewPriceService(providers, barCacheRepository)
	deps.SimulationService = service.NewSimulationService(priceService)
	deps.ApiHandler = &api.ApiHandler{
		SimulationService: deps.SimulationService,
		Logger:            log,
		UpstreamTimeout:   cfg.Timeout,
	}

	log.Infow(
		"initialized dependencies",
		"providers", len(providers),
		"cache", cfg.Cache.Driver,
	)

	return deps, nil
}
