package backend

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CartHandler struct {
	DB *gorm.DB
}

type addToCartRequest struct {
	UserID    int64 `json:"userId" binding:"required"`
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity"`
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

// Add creates the user's entry for the product, or increments the existing
// one.
func (h *CartHandler) Add(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Quantity <= 0 {
		fail(c, http.StatusBadRequest, "Quantity must be greater than 0")
		return
	}

	var entry CartEntry
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var users int64
		if err := tx.Model(&User{}).Where("id = ?", req.UserID).Count(&users).Error; err != nil {
			return err
		}
		if users == 0 {
			return &apiError{http.StatusBadRequest, fmt.Sprintf("User not found with ID: %d", req.UserID)}
		}

		var product Product
		if err := tx.First(&product, req.ProductID).Error; err != nil {
			if isNotFound(err) {
				return &apiError{http.StatusBadRequest, fmt.Sprintf("Product not found with ID: %d", req.ProductID)}
			}
			return err
		}
		if product.StockQuantity < req.Quantity {
			return &apiError{http.StatusBadRequest, fmt.Sprintf("Insufficient stock. Available: %d", product.StockQuantity)}
		}

		err := tx.Where("user_id = ? AND product_id = ?", req.UserID, req.ProductID).First(&entry).Error
		switch {
		case err == nil:
			entry.Quantity += req.Quantity
			return tx.Save(&entry).Error
		case isNotFound(err):
			entry = CartEntry{UserID: req.UserID, ProductID: req.ProductID, Quantity: req.Quantity}
			return tx.Create(&entry).Error
		default:
			return err
		}
	})
	if err != nil {
		failWith(c, "Failed to add product to cart", err)
		return
	}

	respond(c, http.StatusOK, "Product added to cart", gin.H{"cart": entry})
}

// UpdateQuantity sets the quantity of an entry in place.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	id, ok := pathID(c, "cartId", "Cart ID")
	if !ok {
		return
	}

	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Quantity <= 0 {
		fail(c, http.StatusBadRequest, "Quantity must be greater than 0")
		return
	}

	var entry CartEntry
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, id).Error; err != nil {
			if isNotFound(err) {
				return &apiError{http.StatusNotFound, fmt.Sprintf("Cart item not found with ID: %d", id)}
			}
			return err
		}

		var product Product
		if err := tx.First(&product, entry.ProductID).Error; err != nil && !isNotFound(err) {
			return err
		} else if err == nil && product.StockQuantity < req.Quantity {
			return &apiError{http.StatusBadRequest, fmt.Sprintf("Insufficient stock. Available: %d", product.StockQuantity)}
		}

		entry.Quantity = req.Quantity
		return tx.Save(&entry).Error
	})
	if err != nil {
		failWith(c, "Failed to update cart", err)
		return
	}

	respond(c, http.StatusOK, "Cart updated", gin.H{"cart": entry})
}

func (h *CartHandler) Remove(c *gin.Context) {
	id, ok := pathID(c, "cartId", "Cart ID")
	if !ok {
		return
	}

	res := h.DB.Delete(&CartEntry{}, id)
	if res.Error != nil {
		internalError(c, "Failed to remove product from cart", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		fail(c, http.StatusNotFound, fmt.Sprintf("Cart item not found with ID: %d", id))
		return
	}
	respond(c, http.StatusOK, "Product removed from cart", nil)
}

func (h *CartHandler) ListByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId", "User ID")
	if !ok {
		return
	}

	entries := make([]CartEntry, 0)
	if err := h.DB.Where("user_id = ?", userID).Order("id").Find(&entries).Error; err != nil {
		internalError(c, "Failed to get cart", err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"cartItems": entries})
}
