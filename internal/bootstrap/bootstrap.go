// Package bootstrap loads configuration and assembles the client from
// its parts. Rendering layers call New once at process start and hold
// on to the returned App.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/shopfront/shopfront-go/config"
	"github.com/shopfront/shopfront-go/internal/adapters/memstore"
	"github.com/shopfront/shopfront-go/internal/adapters/redisstore"
	"github.com/shopfront/shopfront-go/internal/api"
	"github.com/shopfront/shopfront-go/internal/gateway"
	"github.com/shopfront/shopfront-go/internal/observability/notify"
	"github.com/shopfront/shopfront-go/internal/ports"
	"github.com/shopfront/shopfront-go/internal/service/authsession"
	"github.com/shopfront/shopfront-go/internal/service/cart"
	"github.com/shopfront/shopfront-go/internal/service/routeguard"
)

// InitLogger initializes the structured logger.
func InitLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// Options carries the rendering-layer hooks for New.
type Options struct {
	// Navigator carries out redirects requested by the gateway and
	// the route guard. Required.
	Navigator ports.Navigator

	// Notifier displays user-facing notifications. Defaults to a
	// slog-backed sink.
	Notifier notify.Sink

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// App is the assembled client.
type App struct {
	Config  config.AppConfig
	Session *authsession.Manager
	Cart    *cart.Manager
	Guard   *routeguard.Guard
	Routes  routeguard.RouteTable

	Auth     *api.Auth
	Orders   *api.Orders
	Products *api.Products

	Gateway *gateway.Client

	redisClient *redis.Client
}

// New wires the full client: credential store, gateway transport and
// client, session manager, cart, guard, and API wrappers. In dev mode
// the credential lives in memory; otherwise it persists in Redis for
// the configured TTL.
func New(ctx context.Context, cfg config.AppConfig, opts Options) (*App, error) {
	if opts.Navigator == nil {
		return nil, errors.New("Navigator is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewSlogSink(logger)
	}

	app := &App{Config: cfg}

	var creds ports.CredentialStore
	if cfg.IsDev {
		creds = memstore.New(cfg.Auth.TokenTTL)
	} else {
		app.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := app.redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis at %s: %w", cfg.Redis.Addr, err)
		}
		store, err := redisstore.New(redisstore.Options{
			Client: app.redisClient,
			Key:    cfg.Auth.TokenKey,
			TTL:    cfg.Auth.TokenTTL,
		})
		if err != nil {
			return nil, err
		}
		creds = store
	}

	transport, err := gateway.NewTransport(gateway.TransportOptions{
		Credentials: creds,
		Navigator:   opts.Navigator,
		Notifier:    notifier,
		LoginRoute:  cfg.Routes.Login,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	client, err := gateway.NewClient(gateway.ClientOptions{
		BaseURL:   cfg.API.BaseURL,
		Transport: transport,
		Timeout:   cfg.API.Timeout,
	})
	if err != nil {
		return nil, err
	}
	app.Gateway = client

	app.Session, err = authsession.NewManager(authsession.Options{
		Client:      client,
		Credentials: creds,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}
	transport.SetInvalidator(app.Session)

	app.Cart = cart.NewManager()
	app.Routes = routeguard.DefaultRoutes()
	app.Guard = routeguard.New(routeguard.Options{
		Sessions:   app.Session,
		LoginRoute: cfg.Routes.Login,
		HomeRoute:  cfg.Routes.Home,
	})

	app.Auth = api.NewAuth(client)
	app.Orders = api.NewOrders(client)
	app.Products = api.NewProducts(client)

	return app, nil
}

// Close releases held connections.
func (a *App) Close() error {
	if a.redisClient != nil {
		return a.redisClient.Close()
	}
	return nil
}
