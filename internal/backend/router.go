// Package backend is the remote cart store: a gin JSON API over GORM
// serving products, carts, users, orders and payments.
package backend

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// NewRouter wires every endpoint onto a fresh gin engine.
func NewRouter(db *gorm.DB, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(requestIDMiddleware(), loggerMiddleware(log), gin.Recovery())
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		fail(c, http.StatusMethodNotAllowed, "Method not allowed")
	})
	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "Not found")
	})

	r.GET("/healthz", func(c *gin.Context) {
		respond(c, http.StatusOK, "", gin.H{"status": "ok"})
	})

	products := &ProductHandler{DB: db}
	carts := &CartHandler{DB: db}
	users := &UserHandler{DB: db}
	orders := &OrderHandler{DB: db}
	payments := &PaymentHandler{DB: db}

	api := r.Group("/api")
	{
		g := api.Group("/products")
		g.GET("", products.List)
		g.POST("", products.Create)
		g.GET("/:productId", products.Get)
		g.PUT("/:productId", products.Update)
		g.DELETE("/:productId", products.Delete)
	}
	{
		g := api.Group("/cart")
		g.POST("", carts.Add)
		g.GET("/user/:userId", carts.ListByUser)
		g.PUT("/:cartId", carts.UpdateQuantity)
		g.DELETE("/:cartId", carts.Remove)
	}
	{
		g := api.Group("/users")
		g.GET("", users.List)
		g.POST("/register/customer", users.RegisterCustomer)
		g.POST("/login", users.Login)
		g.GET("/:userId", users.Get)
	}
	{
		g := api.Group("/orders")
		g.POST("", orders.Create)
		g.GET("/:orderId", orders.Get)
		g.GET("/user/:userId", orders.ListByUser)
		g.PUT("/:orderId/status", orders.UpdateStatus)
	}
	{
		g := api.Group("/payments")
		g.POST("", payments.Process)
		g.GET("/:paymentId", payments.Get)
	}

	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

// pathID parses a positive int64 path parameter. On failure it writes a
// 400 response and returns false.
func pathID(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, label+" must be a positive number")
		return 0, false
	}
	return id, true
}
