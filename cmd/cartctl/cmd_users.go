package main

import (
	"context"
	"fmt"

	"github.com/nikolayk812/cartsync-demo/internal/app"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [email] [password]",
	Short: "Check credentials and print the user ID to pass as --user",
	Args:  cobra.ExactArgs(2),
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register [name] [email] [password]",
	Short: "Register a customer account",
	Args:  cobra.ExactArgs(3),
	RunE:  runRegister,
}

func runLogin(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		user, err := a.Remote.Login(ctx, args[0], args[1])
		if err != nil {
			return fmt.Errorf("a.Remote.Login: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s). Use --user %d or CARTSYNC_SESSION_USER_ID=%d\n",
			user.Username, user.Role, user.ID, user.ID)
		return nil
	})
}

func runRegister(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		id, err := a.Remote.RegisterCustomer(ctx, args[0], args[1], args[2])
		if err != nil {
			return fmt.Errorf("a.Remote.RegisterCustomer: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Registered user %d\n", id)
		return nil
	})
}
