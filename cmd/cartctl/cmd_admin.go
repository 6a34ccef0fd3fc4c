package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/nikolayk812/cartsync-demo/internal/app"
	"github.com/nikolayk812/cartsync-demo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	productName        string
	productDescription string
	productPrice       string
	productCategory    int64
	productStock       int
	productImage       string
)

var productCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a product to the catalog",
	Args:  cobra.NoArgs,
	RunE:  runProductCreate,
}

var productUpdateCmd = &cobra.Command{
	Use:   "update [product-id]",
	Short: "Change the fields given as flags, keeping the rest",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductUpdate,
}

var productDeleteCmd = &cobra.Command{
	Use:   "delete [product-id]",
	Short: "Remove a product from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductDelete,
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered users",
	Args:  cobra.NoArgs,
	RunE:  runUsers,
}

var userShowCmd = &cobra.Command{
	Use:   "show [user-id]",
	Short: "Show one user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserShow,
}

var orderShowCmd = &cobra.Command{
	Use:   "show [order-id]",
	Short: "Show one order",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrderShow,
}

var orderStatusCmd = &cobra.Command{
	Use:   "status [order-id] [PENDING|SHIPPED|DELIVERED|CANCELLED]",
	Short: "Change the status of an order",
	Args:  cobra.ExactArgs(2),
	RunE:  runOrderStatus,
}

var paymentCmd = &cobra.Command{
	Use:   "payment [payment-id]",
	Short: "Show one payment",
	Args:  cobra.ExactArgs(1),
	RunE:  runPayment,
}

func init() {
	for _, cmd := range []*cobra.Command{productCreateCmd, productUpdateCmd} {
		cmd.Flags().StringVar(&productName, "name", "", "Product name")
		cmd.Flags().StringVar(&productDescription, "description", "", "Product description")
		cmd.Flags().StringVar(&productPrice, "price", "", "Unit price")
		cmd.Flags().Int64Var(&productCategory, "category", 0, "Category ID")
		cmd.Flags().IntVar(&productStock, "stock", 0, "Stock quantity")
		cmd.Flags().StringVar(&productImage, "image", "", "Image URL")
	}
	_ = productCreateCmd.MarkFlagRequired("name")
	_ = productCreateCmd.MarkFlagRequired("price")

	productsCmd.AddCommand(productCreateCmd, productUpdateCmd, productDeleteCmd)
	usersCmd.AddCommand(userShowCmd)
	ordersCmd.AddCommand(orderShowCmd, orderStatusCmd)

	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(paymentCmd)
}

func runProductCreate(cmd *cobra.Command, args []string) error {
	price, err := decimal.NewFromString(productPrice)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", productPrice, err)
	}

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		created, err := a.Remote.CreateProduct(ctx, domain.Product{
			Name:          productName,
			Description:   productDescription,
			Price:         domain.NewMoney(price, domain.DefaultCurrency),
			CategoryID:    productCategory,
			StockQuantity: productStock,
			ImageURL:      productImage,
		})
		if err != nil {
			return fmt.Errorf("a.Remote.CreateProduct: %w", err)
		}
		a.Console.RenderProducts([]domain.Product{created})
		return nil
	})
}

func runProductUpdate(cmd *cobra.Command, args []string) error {
	productID, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		product, err := a.Remote.GetProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("a.Remote.GetProduct: %w", err)
		}

		flags := cmd.Flags()
		if flags.Changed("name") {
			product.Name = productName
		}
		if flags.Changed("description") {
			product.Description = productDescription
		}
		if flags.Changed("price") {
			price, err := decimal.NewFromString(productPrice)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", productPrice, err)
			}
			product.Price = domain.NewMoney(price, product.Price.Currency)
		}
		if flags.Changed("category") {
			product.CategoryID = productCategory
		}
		if flags.Changed("stock") {
			product.StockQuantity = productStock
		}
		if flags.Changed("image") {
			product.ImageURL = productImage
		}

		updated, err := a.Remote.UpdateProduct(ctx, product)
		if err != nil {
			return fmt.Errorf("a.Remote.UpdateProduct: %w", err)
		}
		a.Console.RenderProducts([]domain.Product{updated})
		return nil
	})
}

func runProductDelete(cmd *cobra.Command, args []string) error {
	productID, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		if err := a.Remote.DeleteProduct(ctx, productID); err != nil {
			return fmt.Errorf("a.Remote.DeleteProduct: %w", err)
		}
		a.Console.Notify(domain.Success("Product deleted successfully"))
		return nil
	})
}

func runUsers(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		users, err := a.Remote.ListUsers(ctx)
		if err != nil {
			return fmt.Errorf("a.Remote.ListUsers: %w", err)
		}
		a.Console.RenderUsers(users)
		return nil
	})
}

func runUserShow(cmd *cobra.Command, args []string) error {
	userID, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		user, err := a.Remote.GetUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("a.Remote.GetUser: %w", err)
		}
		a.Console.RenderUsers([]domain.User{user})
		return nil
	})
}

func runOrderShow(cmd *cobra.Command, args []string) error {
	orderID, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		order, err := a.Remote.GetOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("a.Remote.GetOrder: %w", err)
		}
		a.Console.RenderOrders([]domain.Order{order})
		return nil
	})
}

func runOrderStatus(cmd *cobra.Command, args []string) error {
	orderID, err := parseID(args[0])
	if err != nil {
		return err
	}
	status := domain.OrderStatus(strings.ToUpper(strings.TrimSpace(args[1])))
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", args[1])
	}

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		order, err := a.Remote.UpdateOrderStatus(ctx, orderID, status)
		if err != nil {
			return fmt.Errorf("a.Remote.UpdateOrderStatus: %w", err)
		}
		a.Console.RenderOrders([]domain.Order{order})
		return nil
	})
}

func runPayment(cmd *cobra.Command, args []string) error {
	paymentID, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		payment, err := a.Remote.GetPayment(ctx, paymentID)
		if err != nil {
			return fmt.Errorf("a.Remote.GetPayment: %w", err)
		}
		a.Console.RenderPayment(payment)
		return nil
	})
}
