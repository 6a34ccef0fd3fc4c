package port

import (
	"context"

	"github.com/nikolayk812/cartsync-demo/internal/domain"
)

type Orders interface {
	CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.Order, error)
	ListOrders(ctx context.Context, userID int64) ([]domain.Order, error)
}

type Payments interface {
	SubmitPayment(ctx context.Context, req domain.PaymentRequest) (domain.Payment, error)
}
