package initializer

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	infra_cache "github.com/amirasaad/amanah/infra/cache"
	"github.com/amirasaad/amanah/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInitMetalPriceCache_DefaultsToMemory(t *testing.T) {
	c := initMetalPriceCache(&config.Redis{}, discardLogger())
	require.IsType(t, &infra_cache.MemoryCache{}, c)

	c = initMetalPriceCache(nil, discardLogger())
	require.IsType(t, &infra_cache.MemoryCache{}, c)
}

func TestInitMetalPriceCache_BadURLFallsBackToMemory(t *testing.T) {
	c := initMetalPriceCache(&config.Redis{URL: "not a url"}, discardLogger())
	require.IsType(t, &infra_cache.MemoryCache{}, c)
}

func TestInitMetalPriceCache_UnreachableRedisFallsBackToMemory(t *testing.T) {
	c := initMetalPriceCache(&config.Redis{URL: "redis://127.0.0.1:1"}, discardLogger())
	require.IsType(t, &infra_cache.MemoryCache{}, c)
}

func TestInitializeDependencies_SQLiteMemory(t *testing.T) {
	cfg := &config.App{
		Env: "test",
		Log: &config.Log{Format: "text", TimeFormat: time.Kitchen},
		DB: &config.DB{
			Url:     "sqlite://:memory:",
			Migrate: true,
		},
		Redis: &config.Redis{},
	}

	deps, err := InitializeDependencies(cfg)
	require.NoError(t, err)
	assert.NotNil(t, deps.Uow)
	assert.NotNil(t, deps.EventBus)
	assert.IsType(t, &infra_cache.MemoryCache{}, deps.MetalPriceCache)

	_, err = deps.Uow.AccountRepository()
	require.NoError(t, err)
}

func TestInitDatabase_BadURL(t *testing.T) {
	_, err := InitDatabase(&config.App{DB: &config.DB{Url: "mysql://nope"}}, discardLogger())
	require.Error(t, err)
}

func TestSetupLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(&config.Log{Format: "json", Level: int(slog.LevelInfo)}, &buf)
	logger.Info("CreateAccount successful", "userID", "u-1")

	assert.Contains(t, buf.String(), `"msg":"CreateAccount successful"`)
	assert.Contains(t, buf.String(), `"userID":"u-1"`)

	buf.Reset()
	logger.Debug("hidden")
	assert.Empty(t, buf.String())
}
