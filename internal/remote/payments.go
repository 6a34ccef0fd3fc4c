package remote

import (
	"context"
	"net/http"
	"strconv"

	"github.com/nikolayk812/cartsync-demo/internal/domain"
)

func (c *Client) SubmitPayment(ctx context.Context, req domain.PaymentRequest) (domain.Payment, error) {
	body := paymentDTO{
		OrderID:       req.OrderID,
		Amount:        jsonAmount{req.Amount.Amount},
		PaymentMethod: req.Method,
	}

	var out paymentEnvelope
	if err := c.do(ctx, "SubmitPayment", http.MethodPost, "/api/payments", nil, body, &out); err != nil {
		return domain.Payment{}, err
	}
	return c.mapPayment(out.Payment), nil
}

func (c *Client) GetPayment(ctx context.Context, paymentID int64) (domain.Payment, error) {
	var out paymentEnvelope
	if err := c.do(ctx, "GetPayment", http.MethodGet, "/api/payments/"+strconv.FormatInt(paymentID, 10), nil, nil, &out); err != nil {
		return domain.Payment{}, err
	}
	return c.mapPayment(out.Payment), nil
}

func (c *Client) mapPayment(p paymentDTO) domain.Payment {
	return domain.Payment{
		ID:      p.PaymentID,
		OrderID: p.OrderID,
		Amount:  c.money(p.Amount),
		Method:  p.PaymentMethod,
		Status:  domain.PaymentStatus(p.PaymentStatus),
		Date:    p.PaymentDate.Time,
	}
}
