package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/cartsync-demo/internal/backend"
	"github.com/nikolayk812/cartsync-demo/internal/config"
	"github.com/nikolayk812/cartsync-demo/internal/logger"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	seed    bool
)

var rootCmd = &cobra.Command{
	Use:          "server",
	Short:        "Remote cart store: products, carts, users, orders and payments",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runServer,
}

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "Config file (default: ./config.yml)")
	rootCmd.Flags().BoolVar(&seed, "seed", false, "Insert demo products into an empty catalog")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log := logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer func() { _ = log.Sync() }()

	if strings.EqualFold(cfg.Server.Mode, "release") {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := backend.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("backend.Open: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := backend.Migrate(db); err != nil {
		return fmt.Errorf("backend.Migrate: %w", err)
	}
	if seed {
		n, err := backend.Seed(db)
		if err != nil {
			return fmt.Errorf("backend.Seed: %w", err)
		}
		if n == 0 {
			logger.Warnw("catalog_seed_skipped", "reason", "catalog_not_empty")
		} else {
			logger.Infow("catalog_seeded", "products", n)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := backend.NewServer(cfg.Server.Addr(), backend.NewRouter(db, log), log,
		backend.WithErrorLog(logger.StdLogger()),
	)
	if err := srv.Run(ctx); err != nil {
		logger.Errorw("server_failed", "addr", cfg.Server.Addr(), "error", err)
		return err
	}
	return nil
}
