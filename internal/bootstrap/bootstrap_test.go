package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/shopfront/shopfront-go/config"
	"github.com/shopfront/shopfront-go/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func devConfig() config.AppConfig {
	cfg := config.AppConfig{IsDev: true}
	cfg.API.BaseURL = "http://localhost:8000/api/v1"
	cfg.API.Timeout = 5 * time.Second
	cfg.Sanitize()
	return cfg
}

func TestNew_RequiresNavigator(t *testing.T) {
	_, err := New(context.Background(), devConfig(), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Navigator is required")
}

func TestNew_DevMode(t *testing.T) {
	app, err := New(context.Background(), devConfig(), Options{
		Navigator: ports.NavigatorFunc(nil),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	require.NotNil(t, app.Session)
	require.NotNil(t, app.Cart)
	require.NotNil(t, app.Guard)
	require.NotNil(t, app.Auth)
	require.NotNil(t, app.Orders)
	require.NotNil(t, app.Products)
	assert.NotEmpty(t, app.Routes)

	// Fresh client starts anonymous with an empty cart.
	assert.False(t, app.Session.Snapshot().IsAuthenticated())
	assert.Zero(t, app.Cart.TotalItems())
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.API.BaseURL)
}
