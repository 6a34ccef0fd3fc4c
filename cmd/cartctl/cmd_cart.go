package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nikolayk812/cartsync-demo/internal/app"
	"github.com/nikolayk812/cartsync-demo/internal/cart"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	addQuantity int
	addName     string
	addPrice    string
	addImageURL string
	assumeYes   bool
)

var addCmd = &cobra.Command{
	Use:   "add [product-id]",
	Short: "Add a product to the cart",
	Long: `Adds a product to the cart, merging with an existing line.

--name and --price are shown when the catalog cannot be reached.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var removeCmd = &cobra.Command{
	Use:   "remove [product-id]",
	Short: "Remove a product from the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var updateCmd = &cobra.Command{
	Use:   "update [product-id] [quantity]",
	Short: "Set the quantity of a cart line; 0 removes it",
	Args:  cobra.ExactArgs(2),
	RunE:  runUpdate,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every line from the cart",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Reload the cart from the remote store and print it",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	addCmd.Flags().IntVarP(&addQuantity, "qty", "q", 1, "Quantity to add")
	addCmd.Flags().StringVar(&addName, "name", "", "Product name for offline mode")
	addCmd.Flags().StringVar(&addPrice, "price", "", "Unit price for offline mode")
	addCmd.Flags().StringVar(&addImageURL, "image", "", "Image URL for offline mode")

	clearCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
}

func runAdd(cmd *cobra.Command, args []string) error {
	productID, err := parseID(args[0])
	if err != nil {
		return err
	}

	req := cart.AddRequest{
		ProductID: productID,
		Quantity:  addQuantity,
		Name:      addName,
		ImageURL:  addImageURL,
	}
	if addPrice != "" {
		req.UnitPrice, err = decimal.NewFromString(addPrice)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", addPrice, err)
		}
	}

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		return resultErr(a.Cart.Add(ctx, req))
	})
}

func runRemove(cmd *cobra.Command, args []string) error {
	productID, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		return resultErr(a.Cart.Remove(ctx, productID))
	})
}

func runUpdate(cmd *cobra.Command, args []string) error {
	productID, err := parseID(args[0])
	if err != nil {
		return err
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q: %w", args[1], err)
	}

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		return resultErr(a.Cart.UpdateQuantity(ctx, productID, quantity))
	})
}

func runClear(cmd *cobra.Command, args []string) error {
	var opts []app.Option
	if assumeYes {
		opts = append(opts, app.AssumeYes())
	}

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		return resultErr(a.Cart.Clear(ctx))
	}, opts...)
}

func runShow(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		// without a session Load is refused but still renders the empty cart
		a.Cart.Load(ctx)
		return nil
	})
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
