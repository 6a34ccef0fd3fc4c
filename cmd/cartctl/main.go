package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nikolayk812/cartsync-demo/internal/app"
	"github.com/nikolayk812/cartsync-demo/internal/cart"
	"github.com/nikolayk812/cartsync-demo/internal/config"
	"github.com/nikolayk812/cartsync-demo/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	userID  int64
	timeout time.Duration

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cartctl",
	Short: "Shopping cart client that keeps working offline",
	Long: `cartctl manages a shopping cart kept in sync with the remote store.

When the store cannot be reached, changes are kept in the local cart and
reported as offline mode.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("config.Load: %w", err)
		}
		if userID > 0 {
			cfg.Session.UserID = userID
		}

		log = logger.Init(cfg.Log.Mode, cfg.Log.ToLoggerOptions())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default: ./config.yml)")
	rootCmd.PersistentFlags().Int64VarP(&userID, "user", "u", 0, "Logged in user ID (or set CARTSYNC_SESSION_USER_ID)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Command timeout")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Errorw("command_failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withApp runs fn against a freshly wired application bound to the
// command's output and input.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error, opts ...app.Option) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	a, err := app.New(ctx, cfg, log, cmd.OutOrStdout(), cmd.InOrStdin(), opts...)
	if err != nil {
		return fmt.Errorf("app.New: %w", err)
	}
	defer a.Close()

	return fn(ctx, a)
}

// resultErr turns a refused operation into a non-zero exit. Degraded
// results are successes: the notice already told the user.
func resultErr(res cart.Result) error {
	if res.Refused() {
		if res.Err != nil {
			return res.Err
		}
		return fmt.Errorf("operation refused")
	}
	return nil
}
