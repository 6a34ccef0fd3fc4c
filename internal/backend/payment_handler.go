package backend

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PaymentHandler struct {
	DB *gorm.DB
}

type paymentRequest struct {
	OrderID       int64  `json:"orderId"`
	Amount        Money  `json:"amount"`
	PaymentMethod string `json:"paymentMethod"`
}

// Process records a payment against an existing order. There is no
// gateway: every accepted payment completes at once and marks the order
// as paid.
func (h *PaymentHandler) Process(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.OrderID <= 0 {
		fail(c, http.StatusBadRequest, "Order ID cannot be null")
		return
	}
	if !req.Amount.IsPositive() {
		fail(c, http.StatusBadRequest, "Payment amount must be greater than 0")
		return
	}

	payment := Payment{
		OrderID:       req.OrderID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: PaymentCompleted,
		PaymentDate:   time.Now().UTC(),
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Order{}).Where("id = ?", req.OrderID).Update("payment_status", PaymentCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &apiError{http.StatusBadRequest, fmt.Sprintf("Order not found with ID: %d", req.OrderID)}
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		failWith(c, "Failed to process payment", err)
		return
	}

	respond(c, http.StatusOK, "Payment processed successfully", gin.H{"payment": payment})
}

func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "paymentId", "Payment ID")
	if !ok {
		return
	}

	var payment Payment
	if err := h.DB.First(&payment, id).Error; err != nil {
		if isNotFound(err) {
			fail(c, http.StatusNotFound, fmt.Sprintf("Payment not found with ID: %d", id))
			return
		}
		internalError(c, "Failed to get payment", err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"payment": payment})
}
