package backend

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB *gorm.DB
}

type productRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	Price         Money  `json:"price"`
	CategoryID    int64  `json:"categoryId"`
	StockQuantity int    `json:"stockQuantity" binding:"gte=0"`
	ImageURL      string `json:"imageUrl"`
}

func (r productRequest) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "Product name cannot be empty"
	}
	if !r.Price.IsPositive() {
		return "Price must be greater than 0"
	}
	return ""
}

func (h *ProductHandler) List(c *gin.Context) {
	var products []Product
	if err := h.DB.Order("id").Find(&products).Error; err != nil {
		internalError(c, "Failed to get products", err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"products": products})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "productId", "Product ID")
	if !ok {
		return
	}

	var product Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if isNotFound(err) {
			fail(c, http.StatusNotFound, fmt.Sprintf("Product not found with ID: %d", id))
			return
		}
		internalError(c, "Failed to get product", err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"product": product})
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		fail(c, http.StatusBadRequest, msg)
		return
	}

	product := Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		CategoryID:    req.CategoryID,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
	}
	if err := h.DB.Create(&product).Error; err != nil {
		internalError(c, "Failed to add product", err)
		return
	}
	respond(c, http.StatusOK, "Product added successfully", gin.H{"product": product})
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "productId", "Product ID")
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		fail(c, http.StatusBadRequest, msg)
		return
	}

	var product Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if isNotFound(err) {
			fail(c, http.StatusNotFound, fmt.Sprintf("Product not found with ID: %d", id))
			return
		}
		internalError(c, "Failed to update product", err)
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.CategoryID = req.CategoryID
	product.StockQuantity = req.StockQuantity
	product.ImageURL = req.ImageURL
	if err := h.DB.Save(&product).Error; err != nil {
		internalError(c, "Failed to update product", err)
		return
	}
	respond(c, http.StatusOK, "Product updated successfully", gin.H{"product": product})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "productId", "Product ID")
	if !ok {
		return
	}

	res := h.DB.Delete(&Product{}, id)
	if res.Error != nil {
		internalError(c, "Failed to delete product", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		fail(c, http.StatusNotFound, fmt.Sprintf("Product not found with ID: %d", id))
		return
	}
	respond(c, http.StatusOK, "Product deleted successfully", nil)
}
