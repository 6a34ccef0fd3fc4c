// Package checkout turns a cart summary into an order and a payment.
// Both steps degrade to locally generated demo records when the remote
// store cannot be reached.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/nikolayk812/cartsync-demo/internal/cart"
	"github.com/nikolayk812/cartsync-demo/internal/domain"
	"github.com/nikolayk812/cartsync-demo/internal/logger"
	"github.com/nikolayk812/cartsync-demo/internal/port"
	"go.uber.org/zap"
)

const DefaultPaymentMethod = "CARD"

var ErrInvalidSummary = errors.New("order summary is empty")

// Emptier destroys the cart once the order is paid.
type Emptier interface {
	Empty(ctx context.Context) cart.Result
}

type Deps struct {
	Orders   port.Orders
	Payments port.Payments
	Cart     Emptier
	Notifier port.Notifier
	Logger   *zap.Logger
}

type Flow struct {
	orders   port.Orders
	payments port.Payments
	cart     Emptier
	notifier port.Notifier
	log      *zap.SugaredLogger

	now    func() time.Time
	demoID func() int64
}

func New(deps Deps) (*Flow, error) {
	if deps.Orders == nil || deps.Payments == nil || deps.Cart == nil {
		return nil, fmt.Errorf("orders, payments and cart are required")
	}

	log := logger.Z()
	if deps.Logger != nil {
		log = deps.Logger
	}

	f := &Flow{
		orders:   deps.Orders,
		payments: deps.Payments,
		cart:     deps.Cart,
		notifier: deps.Notifier,
		log:      log.Sugar().With("component", "checkout"),
		now:      time.Now,
		demoID:   func() int64 { return 1000 + rand.Int64N(10000) },
	}
	return f, nil
}

// OrderResult is the outcome of Confirm.
type OrderResult struct {
	Order   domain.Order
	Outcome cart.Outcome
	Err     error
}

func (r OrderResult) Degraded() bool { return r.Outcome == cart.OutcomeDegraded }

// PaymentResult is the outcome of Pay. Cart is the result of emptying the
// cart after the payment.
type PaymentResult struct {
	Payment domain.Payment
	Outcome cart.Outcome
	Err     error
	Cart    cart.Result
}

func (r PaymentResult) Degraded() bool { return r.Outcome == cart.OutcomeDegraded }

// Confirm places the order. When the remote store fails a pending demo
// order is returned so the customer can continue to payment.
func (f *Flow) Confirm(ctx context.Context, summary domain.OrderSummary) OrderResult {
	if len(summary.Lines) == 0 || summary.UserID <= 0 {
		return OrderResult{Outcome: cart.OutcomeRefused, Err: ErrInvalidSummary}
	}

	order, err := f.orders.CreateOrder(ctx, summary.Request())
	if err != nil {
		f.log.Warnw("create_order_failed", "user_id", summary.UserID, "error", err)

		req := summary.Request()
		demo := domain.Order{
			ID:            f.demoID(),
			UserID:        req.UserID,
			Items:         req.Items,
			TotalAmount:   req.TotalAmount,
			OrderDate:     f.now(),
			Status:        domain.OrderStatusPending,
			PaymentStatus: domain.PaymentStatusPending,
		}
		f.notify(domain.Info("Order placed (offline mode)"))
		return OrderResult{Order: demo, Outcome: cart.OutcomeDegraded, Err: err}
	}

	if order.TotalAmount.IsZero() {
		order.TotalAmount = summary.Total
	}
	f.notify(domain.Success("Order placed successfully!"))
	return OrderResult{Order: order, Outcome: cart.OutcomeConfirmed}
}

// Pay submits the payment for order and then empties the cart. A failed
// submission yields a completed demo payment.
func (f *Flow) Pay(ctx context.Context, order domain.Order, method string) PaymentResult {
	if method == "" {
		method = DefaultPaymentMethod
	}

	req := domain.PaymentRequest{
		OrderID: order.ID,
		Amount:  order.TotalAmount,
		Method:  method,
	}

	var res PaymentResult
	payment, err := f.payments.SubmitPayment(ctx, req)
	if err != nil {
		f.log.Warnw("submit_payment_failed", "order_id", order.ID, "error", err)
		res = PaymentResult{
			Payment: domain.Payment{
				ID:      f.demoID(),
				OrderID: order.ID,
				Amount:  order.TotalAmount,
				Method:  method,
				Status:  domain.PaymentStatusCompleted,
				Date:    f.now(),
			},
			Outcome: cart.OutcomeDegraded,
			Err:     err,
		}
	} else {
		res = PaymentResult{Payment: payment, Outcome: cart.OutcomeConfirmed}
	}

	res.Cart = f.cart.Empty(ctx)
	if res.Cart.Err != nil {
		f.log.Warnw("empty_cart_after_payment", "order_id", order.ID, "error", res.Cart.Err)
	}

	f.notify(domain.Success("Payment successful! Thank you for your order."))
	return res
}

// History lists the user's orders; an unreachable store yields no orders.
func (f *Flow) History(ctx context.Context, userID int64) ([]domain.Order, cart.Outcome, error) {
	orders, err := f.orders.ListOrders(ctx, userID)
	if err != nil {
		f.log.Warnw("list_orders_failed", "user_id", userID, "error", err)
		return nil, cart.OutcomeDegraded, err
	}
	return orders, cart.OutcomeConfirmed, nil
}

func (f *Flow) notify(n domain.Notice) {
	if f.notifier != nil {
		f.notifier.Notify(n)
	}
}
