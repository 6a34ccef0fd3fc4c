package main

import (
	"context"
	"fmt"

	"github.com/nikolayk812/cartsync-demo/internal/app"
	"github.com/nikolayk812/cartsync-demo/internal/checkout"
	"github.com/spf13/cobra"
)

var paymentMethod string

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order for the cart and pay for it",
	Long: `Places an order for every line in the cart, submits the payment and
empties the cart. An unreachable store yields a demo order and payment.`,
	Args: cobra.NoArgs,
	RunE: runCheckout,
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List the orders of the logged in user",
	Args:  cobra.NoArgs,
	RunE:  runOrders,
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the catalog",
	Args:  cobra.NoArgs,
	RunE:  runProducts,
}

func init() {
	checkoutCmd.Flags().StringVar(&paymentMethod, "method", checkout.DefaultPaymentMethod, "Payment method")
}

func runCheckout(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		summary, res := a.Cart.Checkout(ctx)
		if err := resultErr(res); err != nil {
			return err
		}

		placed := a.Checkout.Confirm(ctx, summary)
		if placed.Err != nil && !placed.Degraded() {
			return placed.Err
		}

		paid := a.Checkout.Pay(ctx, placed.Order, paymentMethod)
		a.Console.RenderPayment(paid.Payment)
		return nil
	})
}

func runOrders(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		id, ok := a.Cart.UserID()
		if !ok {
			return fmt.Errorf("please login to see your orders")
		}

		orders, _, _ := a.Checkout.History(ctx, id)
		a.Console.RenderOrders(orders)
		return nil
	})
}

func runProducts(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		products, err := a.Remote.ListProducts(ctx)
		if err != nil {
			return fmt.Errorf("a.Remote.ListProducts: %w", err)
		}
		a.Console.RenderProducts(products)
		return nil
	})
}
