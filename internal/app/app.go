// Package app assembles the cart manager and checkout flow from config.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cartsync-demo/internal/cart"
	"github.com/nikolayk812/cartsync-demo/internal/checkout"
	"github.com/nikolayk812/cartsync-demo/internal/config"
	"github.com/nikolayk812/cartsync-demo/internal/domain"
	"github.com/nikolayk812/cartsync-demo/internal/notify"
	"github.com/nikolayk812/cartsync-demo/internal/port"
	"github.com/nikolayk812/cartsync-demo/internal/remote"
	"github.com/nikolayk812/cartsync-demo/internal/repository"
	"github.com/nikolayk812/cartsync-demo/internal/view"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type App struct {
	Config   *config.Config
	Console  *view.Console
	Remote   *remote.Client
	Tray     *notify.Tray
	Cart     *cart.Manager
	Checkout *checkout.Flow

	closers []func()
}

type Option func(*settings)

type settings struct {
	confirmer port.Confirmer
}

// AssumeYes answers every confirmation prompt with yes.
func AssumeYes() Option {
	return func(s *settings) {
		s.confirmer = yes{}
	}
}

type yes struct{}

func (yes) Confirm(context.Context, string) bool { return true }

// New wires the application. The returned App must be closed.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger, out io.Writer, in io.Reader, opts ...Option) (_ *App, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if log == nil {
		log = zap.NewNop()
	}

	var set settings
	for _, opt := range opts {
		opt(&set)
	}

	a := &App{Config: cfg}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	a.Remote, err = NewRemote(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("NewRemote: %w", err)
	}

	store, closeStore, err := OpenCartStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("OpenCartStore: %w", err)
	}
	a.closers = append(a.closers, closeStore)

	cartOpts, err := CartOptions(cfg.Cart)
	if err != nil {
		return nil, fmt.Errorf("CartOptions: %w", err)
	}

	a.Console = view.NewConsole(out, in)
	a.Tray = notify.NewTray(cfg.Cart.NoticeTTL(), a.Console)
	a.closers = append(a.closers, a.Tray.Close)

	var confirmer port.Confirmer = a.Console
	if set.confirmer != nil {
		confirmer = set.confirmer
	}

	a.Cart, err = cart.New(ctx, cart.Deps{
		Catalog:   a.Remote,
		Remote:    a.Remote,
		Store:     store,
		Notifier:  a.Tray,
		Renderer:  a.Console,
		Badge:     a.Console,
		Confirmer: confirmer,
		Logger:    log,
	}, cartOpts)
	if err != nil {
		return nil, fmt.Errorf("cart.New: %w", err)
	}
	a.closers = append(a.closers, a.Cart.Close)

	a.Checkout, err = checkout.New(checkout.Deps{
		Orders:   a.Remote,
		Payments: a.Remote,
		Cart:     a.Cart,
		Notifier: a.Tray,
		Logger:   log,
	})
	if err != nil {
		return nil, fmt.Errorf("checkout.New: %w", err)
	}

	if cfg.Session.UserID > 0 {
		a.Cart.Login(cfg.Session.UserID)
	}

	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func NewRemote(cfg *config.Config, log *zap.Logger) (*remote.Client, error) {
	opts := []remote.Option{
		remote.WithTimeout(cfg.API.Timeout()),
		remote.WithLogger(log),
	}
	if code := strings.TrimSpace(cfg.API.Currency); code != "" {
		unit, err := currency.ParseISO(code)
		if err != nil {
			return nil, fmt.Errorf("currency.ParseISO(%s): %w", code, err)
		}
		opts = append(opts, remote.WithCurrency(unit))
	}

	return remote.New(cfg.API.BaseURL, opts...)
}

// CartOptions translates the cart section of the config.
func CartOptions(c config.CartConfig) (cart.Options, error) {
	opts := cart.DefaultOptions()

	if c.PlaceholderImageURL != "" {
		opts.PlaceholderImageURL = c.PlaceholderImageURL
	}
	if c.PlaceholderPrice != "" {
		price, err := decimal.NewFromString(c.PlaceholderPrice)
		if err != nil {
			return cart.Options{}, fmt.Errorf("placeholder price %q: %w", c.PlaceholderPrice, err)
		}
		if !price.IsPositive() {
			return cart.Options{}, fmt.Errorf("placeholder price must be positive")
		}
		opts.PlaceholderPrice = domain.NewMoney(price, domain.DefaultCurrency)
	}
	if c.BadgeHideDelayMS > 0 {
		opts.BadgeHideDelay = c.BadgeHideDelay()
	}
	if c.LoadConcurrency > 0 {
		opts.LoadConcurrency = c.LoadConcurrency
	}

	return opts, nil
}

// OpenCartStore opens the local cart store selected by storage.driver.
// The returned func closes the underlying connection.
func OpenCartStore(ctx context.Context, cfg *config.Config) (port.CartStore, func(), error) {
	key := cfg.Storage.Key

	switch strings.ToLower(strings.TrimSpace(cfg.Storage.Driver)) {
	case DriverSQLite, "":
		gdb, err := repository.OpenSQLite(cfg.Storage.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.OpenSQLite: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("gdb.DB: %w", err)
		}
		closer := func() { _ = sqlDB.Close() }

		store, err := repository.NewSQLiteCart(gdb, key)
		if err != nil {
			closer()
			return nil, nil, fmt.Errorf("repository.NewSQLiteCart: %w", err)
		}
		return store, closer, nil

	case DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("pool.Ping: %w", err)
		}

		store, err := repository.NewCart(pool, key)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("repository.NewCart: %w", err)
		}
		return store, pool.Close, nil

	case DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closer := func() { _ = client.Close() }

		if err := client.Ping(ctx).Err(); err != nil {
			closer()
			return nil, nil, fmt.Errorf("client.Ping: %w", err)
		}

		store, err := repository.NewRedisCart(client, cfg.Redis.Prefix, key)
		if err != nil {
			closer()
			return nil, nil, fmt.Errorf("repository.NewRedisCart: %w", err)
		}
		return store, closer, nil
	}

	return nil, nil, errors.New("unknown storage driver: " + cfg.Storage.Driver)
}
