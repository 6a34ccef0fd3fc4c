package backend_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/cartsync-demo/internal/backend"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testServer struct {
	db     *gorm.DB
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := backend.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, backend.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return &testServer{db: db, router: backend.NewRouter(db, nil)}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func (s *testServer) seedUser(t *testing.T) int64 {
	t.Helper()
	user, err := backend.RegisterUser(s.db, gofakeit.Username(), gofakeit.Email(), "secret1", backend.RoleCustomer)
	require.NoError(t, err)
	return user.ID
}

func (s *testServer) seedProduct(t *testing.T, price string, stock int) int64 {
	t.Helper()
	p := backend.Product{
		Name:          gofakeit.ProductName(),
		Description:   gofakeit.ProductDescription(),
		Price:         backend.NewMoney(decimal.RequireFromString(price)),
		StockQuantity: stock,
	}
	require.NoError(t, s.db.Create(&p).Error)
	return p.ID
}

func object(t *testing.T, body map[string]any, key string) map[string]any {
	t.Helper()
	v, ok := body[key].(map[string]any)
	require.True(t, ok, "%s is not an object: %v", key, body)
	return v
}

func TestProducts(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/api/products", map[string]any{
		"name":          "Wireless Mouse",
		"description":   "2.4GHz",
		"price":         149.99,
		"stockQuantity": 10,
	})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, true, body["success"])
	id := int64(object(t, body, "product")["productId"].(float64))

	code, body = s.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil)
	require.Equal(t, http.StatusOK, code)
	product := object(t, body, "product")
	assert.Equal(t, "Wireless Mouse", product["name"])
	assert.Equal(t, 149.99, product["price"])

	code, body = s.do(t, http.MethodPut, fmt.Sprintf("/api/products/%d", id), map[string]any{
		"name":  "Wireless Mouse v2",
		"price": "159.00",
	})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Wireless Mouse v2", object(t, body, "product")["name"])

	code, body = s.do(t, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["products"], 1)

	code, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil)
	assert.Equal(t, http.StatusOK, code)

	code, body = s.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, fmt.Sprintf("Product not found with ID: %d", id), body["message"])
}

func TestProductValidation(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/api/products", map[string]any{"name": "Free", "price": 0})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Price must be greater than 0", body["message"])

	code, _ = s.do(t, http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCartAddMergesSameProduct(t *testing.T) {
	s := newTestServer(t)
	userID := s.seedUser(t)
	productID := s.seedProduct(t, "149.99", 10)

	req := map[string]any{"userId": userID, "productId": productID, "quantity": 1}
	code, body := s.do(t, http.MethodPost, "/api/cart", req)
	require.Equal(t, http.StatusOK, code, body)
	first := object(t, body, "cart")

	req["quantity"] = 2
	code, body = s.do(t, http.MethodPost, "/api/cart", req)
	require.Equal(t, http.StatusOK, code, body)
	second := object(t, body, "cart")

	assert.Equal(t, first["cartId"], second["cartId"])
	assert.Equal(t, 3.0, second["quantity"])

	code, body = s.do(t, http.MethodGet, fmt.Sprintf("/api/cart/user/%d", userID), nil)
	require.Equal(t, http.StatusOK, code)
	items, ok := body["cartItems"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestCartAddRejected(t *testing.T) {
	s := newTestServer(t)
	userID := s.seedUser(t)
	productID := s.seedProduct(t, "10", 2)

	tests := []struct {
		name    string
		req     map[string]any
		status  int
		message string
	}{
		{
			name:    "insufficient stock",
			req:     map[string]any{"userId": userID, "productId": productID, "quantity": 3},
			status:  http.StatusBadRequest,
			message: "Insufficient stock. Available: 2",
		},
		{
			name:    "unknown user",
			req:     map[string]any{"userId": userID + 100, "productId": productID, "quantity": 1},
			status:  http.StatusBadRequest,
			message: fmt.Sprintf("User not found with ID: %d", userID+100),
		},
		{
			name:    "unknown product",
			req:     map[string]any{"userId": userID, "productId": productID + 100, "quantity": 1},
			status:  http.StatusBadRequest,
			message: fmt.Sprintf("Product not found with ID: %d", productID+100),
		},
		{
			name:    "zero quantity",
			req:     map[string]any{"userId": userID, "productId": productID, "quantity": 0},
			status:  http.StatusBadRequest,
			message: "Quantity must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := s.do(t, http.MethodPost, "/api/cart", tt.req)
			assert.Equal(t, tt.status, code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestCartUpdateAndRemove(t *testing.T) {
	s := newTestServer(t)
	userID := s.seedUser(t)
	productID := s.seedProduct(t, "5", 5)

	_, body := s.do(t, http.MethodPost, "/api/cart", map[string]any{"userId": userID, "productId": productID, "quantity": 1})
	cartID := int64(object(t, body, "cart")["cartId"].(float64))

	code, body := s.do(t, http.MethodPut, fmt.Sprintf("/api/cart/%d", cartID), map[string]any{"quantity": 4})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, 4.0, object(t, body, "cart")["quantity"])

	code, body = s.do(t, http.MethodPut, fmt.Sprintf("/api/cart/%d", cartID), map[string]any{"quantity": 6})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Insufficient stock. Available: 5", body["message"])

	code, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/cart/%d", cartID), nil)
	assert.Equal(t, http.StatusOK, code)

	code, body = s.do(t, http.MethodDelete, fmt.Sprintf("/api/cart/%d", cartID), nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, fmt.Sprintf("Cart item not found with ID: %d", cartID), body["message"])

	code, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/cart/%d", cartID), map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPatch, "/api/cart/1", map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusMethodNotAllowed, code)
	assert.Equal(t, false, body["success"])
}

func TestUsers(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/api/users/register/customer", map[string]any{
		"name":     "asha",
		"email":    "Asha@Example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, "CUSTOMER", body["role"])
	userID := body["userId"].(float64)

	code, body = s.do(t, http.MethodPost, "/api/users/register/customer", map[string]any{
		"name":     "asha",
		"email":    "other@example.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Username already exists", body["message"])

	code, body = s.do(t, http.MethodPost, "/api/users/register/customer", map[string]any{
		"name":     "ravi",
		"email":    "ravi@example.com",
		"password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Password must be at least 6 characters", body["message"])

	for _, login := range []string{"asha@example.com", "asha"} {
		code, body = s.do(t, http.MethodPost, "/api/users/login", map[string]any{"email": login, "password": "secret1"})
		require.Equal(t, http.StatusOK, code, body)
		assert.Equal(t, userID, body["userId"])
		assert.Equal(t, false, body["isAdmin"])
	}

	code, body = s.do(t, http.MethodPost, "/api/users/login", map[string]any{"email": "asha", "password": "wrong!"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid credentials", body["message"])

	code, body = s.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", int64(userID)), nil)
	require.Equal(t, http.StatusOK, code)
	user := object(t, body, "user")
	assert.Equal(t, "asha@example.com", user["email"])
	assert.NotContains(t, user, "passwordHash")

	code, body = s.do(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["users"], 1)
}

func TestOrdersAndPayments(t *testing.T) {
	s := newTestServer(t)
	userID := s.seedUser(t)
	productID := s.seedProduct(t, "149.99", 10)

	code, body := s.do(t, http.MethodPost, "/api/orders", map[string]any{
		"userId": userID,
		"items":  []map[string]any{{"productId": productID, "quantity": 3, "price": 149.99}},
	})
	require.Equal(t, http.StatusOK, code, body)
	order := object(t, body, "order")
	assert.Equal(t, 449.97, order["totalAmount"])
	assert.Equal(t, "PENDING", order["status"])
	assert.Equal(t, "PENDING", order["paymentStatus"])
	orderID := int64(order["orderId"].(float64))

	code, body = s.do(t, http.MethodPut, fmt.Sprintf("/api/orders/%d/status?status=shipped", orderID), nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "SHIPPED", object(t, body, "order")["status"])

	code, body = s.do(t, http.MethodPut, fmt.Sprintf("/api/orders/%d/status?status=LOST", orderID), nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid status: LOST", body["message"])

	code, body = s.do(t, http.MethodPost, "/api/payments", map[string]any{"orderId": orderID, "amount": 449.97, "paymentMethod": "UPI"})
	require.Equal(t, http.StatusOK, code, body)
	payment := object(t, body, "payment")
	assert.Equal(t, "COMPLETED", payment["paymentStatus"])
	paymentID := int64(payment["paymentId"].(float64))

	code, body = s.do(t, http.MethodGet, fmt.Sprintf("/api/payments/%d", paymentID), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 449.97, object(t, body, "payment")["amount"])

	code, body = s.do(t, http.MethodGet, fmt.Sprintf("/api/orders/user/%d", userID), nil)
	require.Equal(t, http.StatusOK, code)
	orders, ok := body["orders"].([]any)
	require.True(t, ok)
	require.Len(t, orders, 1)
	listed := orders[0].(map[string]any)
	assert.Equal(t, "COMPLETED", listed["paymentStatus"])
	assert.Len(t, listed["items"], 1)
}

func TestOrderRejected(t *testing.T) {
	s := newTestServer(t)
	userID := s.seedUser(t)

	code, body := s.do(t, http.MethodPost, "/api/orders", map[string]any{"userId": userID, "totalAmount": 0})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Total amount must be greater than 0", body["message"])

	code, body = s.do(t, http.MethodPost, "/api/orders", map[string]any{"userId": userID + 1, "totalAmount": 10})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, fmt.Sprintf("User not found with ID: %d", userID+1), body["message"])

	code, body = s.do(t, http.MethodPost, "/api/payments", map[string]any{"orderId": 999, "amount": 10})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Order not found with ID: 999", body["message"])

	code, body = s.do(t, http.MethodPost, "/api/payments", map[string]any{"orderId": 999, "amount": 0})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Payment amount must be greater than 0", body["message"])
}

func TestSeed(t *testing.T) {
	s := newTestServer(t)

	n, err := backend.Seed(s.db)
	require.NoError(t, err)
	assert.Positive(t, n)

	n, err = backend.Seed(s.db)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRequestIDEchoed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
