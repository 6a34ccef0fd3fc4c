package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

type OrderItem struct {
	ProductID int64
	Quantity  int
	Price     Money
}

type OrderRequest struct {
	UserID      int64
	Items       []OrderItem
	TotalAmount Money
}

type Order struct {
	ID            int64
	UserID        int64
	Items         []OrderItem
	TotalAmount   Money
	OrderDate     time.Time
	Status        OrderStatus
	PaymentStatus PaymentStatus
}

// OrderSummary is what checkout hands to the order flow.
type OrderSummary struct {
	UserID int64
	Lines  []CartLine
	Total  Money
}

func (s OrderSummary) Request() OrderRequest {
	items := make([]OrderItem, 0, len(s.Lines))
	for _, line := range s.Lines {
		items = append(items, OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
		})
	}
	return OrderRequest{
		UserID:      s.UserID,
		Items:       items,
		TotalAmount: s.Total,
	}
}

type PaymentRequest struct {
	OrderID int64
	Amount  Money
	Method  string
}

type Payment struct {
	ID      int64
	OrderID int64
	Amount  Money
	Method  string
	Status  PaymentStatus
	Date    time.Time
}
