package backend

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderPending   = "PENDING"
	OrderShipped   = "SHIPPED"
	OrderDelivered = "DELIVERED"
	OrderCancelled = "CANCELLED"

	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
)

var orderStatuses = map[string]bool{
	OrderPending:   true,
	OrderShipped:   true,
	OrderDelivered: true,
	OrderCancelled: true,
}

type OrderHandler struct {
	DB *gorm.DB
}

type orderItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"gt=0"`
	Price     Money `json:"price"`
}

type createOrderRequest struct {
	UserID      int64              `json:"userId"`
	Items       []orderItemRequest `json:"items" binding:"dive"`
	TotalAmount Money              `json:"totalAmount"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID <= 0 {
		fail(c, http.StatusBadRequest, "User ID cannot be null")
		return
	}

	order := Order{
		UserID:        req.UserID,
		TotalAmount:   req.TotalAmount,
		OrderDate:     time.Now().UTC(),
		Status:        OrderPending,
		PaymentStatus: PaymentPending,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	if order.TotalAmount.IsZero() {
		order.TotalAmount = orderTotal(order.Items)
	}
	if !order.TotalAmount.IsPositive() {
		fail(c, http.StatusBadRequest, "Total amount must be greater than 0")
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var users int64
		if err := tx.Model(&User{}).Where("id = ?", req.UserID).Count(&users).Error; err != nil {
			return err
		}
		if users == 0 {
			return &apiError{http.StatusBadRequest, fmt.Sprintf("User not found with ID: %d", req.UserID)}
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		failWith(c, "Failed to create order", err)
		return
	}

	respond(c, http.StatusOK, "Order created successfully", gin.H{"order": order})
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "orderId", "Order ID")
	if !ok {
		return
	}

	var order Order
	if err := h.DB.Preload("Items").First(&order, id).Error; err != nil {
		if isNotFound(err) {
			fail(c, http.StatusNotFound, fmt.Sprintf("Order not found with ID: %d", id))
			return
		}
		internalError(c, "Failed to get order", err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"order": order})
}

// ListByUser returns the user's orders, newest first.
func (h *OrderHandler) ListByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId", "User ID")
	if !ok {
		return
	}

	orders := make([]Order, 0)
	err := h.DB.Preload("Items").
		Where("user_id = ?", userID).
		Order("order_date DESC").Order("id DESC").
		Find(&orders).Error
	if err != nil {
		internalError(c, "Failed to get user orders", err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"orders": orders})
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "orderId", "Order ID")
	if !ok {
		return
	}

	status := strings.ToUpper(strings.TrimSpace(c.Query("status")))
	if status == "" {
		fail(c, http.StatusBadRequest, "Status cannot be null")
		return
	}
	if !orderStatuses[status] {
		fail(c, http.StatusBadRequest, "Invalid status: "+status)
		return
	}

	var order Order
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			if isNotFound(err) {
				return &apiError{http.StatusNotFound, fmt.Sprintf("Order not found with ID: %d", id)}
			}
			return err
		}
		order.Status = status
		if err := tx.Save(&order).Error; err != nil {
			return err
		}
		return tx.Model(&order).Association("Items").Find(&order.Items)
	})
	if err != nil {
		failWith(c, "Failed to update order status", err)
		return
	}

	respond(c, http.StatusOK, "Order status updated", gin.H{"order": order})
}

// orderTotal is used when the client sends items without a total.
func orderTotal(items []OrderItem) Money {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return NewMoney(total)
}
