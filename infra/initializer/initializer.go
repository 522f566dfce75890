package initializer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/amirasaad/amanah/infra"
	infra_cache "github.com/amirasaad/amanah/infra/cache"
	infra_eventbus "github.com/amirasaad/amanah/infra/eventbus"
	"github.com/amirasaad/amanah/pkg/app"
	"github.com/amirasaad/amanah/pkg/cache"
	"github.com/amirasaad/amanah/pkg/config"
	"gorm.io/gorm"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log, os.Stdout)
	deps.Logger = logger

	db, err := InitDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}
	deps.Uow = infra.NewUoW(db)
	deps.EventBus = infra_eventbus.NewWithMemory(logger)
	deps.MetalPriceCache = initMetalPriceCache(cfg.Redis, logger)

	logger.Info("Dependencies initialized",
		"bus", "memory",
		"cache", fmt.Sprintf("%T", deps.MetalPriceCache),
	)
	return deps, nil
}

// InitDatabase opens the configured database and, unless disabled, brings
// its schema up to date.
func InitDatabase(cfg *config.App, logger *slog.Logger) (*gorm.DB, error) {
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("Database connection established", "dialect", db.Dialector.Name())

	if cfg.DB.Migrate {
		if err := infra.Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("Database schema up to date")
	}
	return db, nil
}

// initMetalPriceCache uses Redis when a URL is configured and reachable,
// otherwise an in-process cache.
func initMetalPriceCache(cfg *config.Redis, logger *slog.Logger) cache.MetalPriceCache {
	if cfg == nil || cfg.URL == "" {
		logger.Info("Redis URL not set, using in-memory metal price cache")
		return infra_cache.NewMemoryCache()
	}

	redisCache, err := infra_cache.NewRedisMetalPriceCacheFromURL(cfg.URL, cfg.KeyPrefix, logger)
	if err != nil {
		logger.Warn("Invalid Redis URL, falling back to in-memory metal price cache", "error", err)
		return infra_cache.NewMemoryCache()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn("Redis unreachable, falling back to in-memory metal price cache", "error", err)
		return infra_cache.NewMemoryCache()
	}
	logger.Info("Using Redis metal price cache", "prefix", cfg.KeyPrefix)
	return redisCache
}
