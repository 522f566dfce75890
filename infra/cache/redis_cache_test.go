package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/amanah/pkg/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Redis container test in short mode")
	}
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return "redis://" + endpoint
}

func TestRedisMetalPriceCache(t *testing.T) {
	url := startRedis(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c, err := NewRedisMetalPriceCacheFromURL(url, "test:metal:", logger)
	require.NoError(t, err)
	require.NoError(t, c.Ping(ctx))

	got, err := c.Get(ctx, cache.Silver)
	require.NoError(t, err)
	assert.Nil(t, got)

	updated := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, c.Set(ctx, &cache.MetalPrice{
		Metal:        cache.Silver,
		PricePerGram: decimal.RequireFromString("92.35"),
		UpdatedAt:    updated,
	}, 0))

	got, err = c.Get(ctx, cache.Silver)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, decimal.RequireFromString("92.35").Equal(got.PricePerGram))
	assert.True(t, updated.Equal(got.UpdatedAt))

	require.NoError(t, c.Delete(ctx, cache.Silver))
	got, err = c.Get(ctx, cache.Silver)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, &cache.MetalPrice{Metal: cache.Gold, PricePerGram: decimal.NewFromInt(6000)}, time.Second))
	assert.Eventually(t, func() bool {
		got, err := c.Get(ctx, cache.Gold)
		return err == nil && got == nil
	}, 5*time.Second, 100*time.Millisecond)
}
