package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nikolayk812/cartsync-demo/internal/domain"
)

func (c *Client) CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.Order, error) {
	body := orderDTO{
		UserID:      req.UserID,
		TotalAmount: jsonAmount{req.TotalAmount.Amount},
	}
	for _, item := range req.Items {
		body.Items = append(body.Items, orderItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     jsonAmount{item.Price.Amount},
		})
	}

	var out orderEnvelope
	if err := c.do(ctx, "CreateOrder", http.MethodPost, "/api/orders", nil, body, &out); err != nil {
		return domain.Order{}, err
	}
	return c.mapOrder(out.Order), nil
}

func (c *Client) GetOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	var out orderEnvelope
	if err := c.do(ctx, "GetOrder", http.MethodGet, "/api/orders/"+strconv.FormatInt(orderID, 10), nil, nil, &out); err != nil {
		return domain.Order{}, err
	}
	return c.mapOrder(out.Order), nil
}

func (c *Client) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	var out ordersEnvelope
	if err := c.do(ctx, "ListOrders", http.MethodGet, "/api/orders/user/"+strconv.FormatInt(userID, 10), nil, nil, &out); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(out.Orders))
	for _, o := range out.Orders {
		orders = append(orders, c.mapOrder(o))
	}
	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (domain.Order, error) {
	var out orderEnvelope
	path := "/api/orders/" + strconv.FormatInt(orderID, 10) + "/status"
	query := url.Values{"status": []string{string(status)}}
	if err := c.do(ctx, "UpdateOrderStatus", http.MethodPut, path, query, nil, &out); err != nil {
		return domain.Order{}, err
	}
	return c.mapOrder(out.Order), nil
}

func (c *Client) mapOrder(o orderDTO) domain.Order {
	order := domain.Order{
		ID:            o.OrderID,
		UserID:        o.UserID,
		TotalAmount:   c.money(o.TotalAmount),
		OrderDate:     o.OrderDate.Time,
		Status:        domain.OrderStatus(o.Status),
		PaymentStatus: domain.PaymentStatus(o.PaymentStatus),
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = domain.PaymentStatusPending
	}
	for _, item := range o.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     c.money(item.Price),
		})
	}
	return order
}
