package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (e envelope) header() envelope {
	return e
}

// jsonAmount travels as a JSON number; both numbers and strings are accepted.
type jsonAmount struct {
	decimal.Decimal
}

func (a jsonAmount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.StringFixed(2)), nil
}

// jsonDate accepts "2006-01-02", RFC 3339 timestamps and [y, m, d] arrays.
type jsonDate struct {
	time.Time
}

func (d jsonDate) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(time.DateOnly))
}

func (d *jsonDate) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	if b[0] == '[' {
		var parts []int
		if err := json.Unmarshal(b, &parts); err != nil {
			return err
		}
		if len(parts) < 3 {
			return fmt.Errorf("date array %s is too short", b)
		}
		d.Time = time.Date(parts[0], time.Month(parts[1]), parts[2], 0, 0, 0, 0, time.UTC)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("date %q has unknown layout", s)
}

type productDTO struct {
	ProductID     int64      `json:"productId,omitempty"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         jsonAmount `json:"price"`
	CategoryID    int64      `json:"categoryId"`
	StockQuantity int        `json:"stockQuantity"`
	ImageURL      string     `json:"imageUrl"`
}

type productEnvelope struct {
	envelope
	Product productDTO `json:"product"`
}

type productsEnvelope struct {
	envelope
	Products []productDTO `json:"products"`
}

type cartEntryDTO struct {
	CartID    int64 `json:"cartId,omitempty"`
	UserID    int64 `json:"userId"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type cartEntryEnvelope struct {
	envelope
	Cart cartEntryDTO `json:"cart"`
}

type cartEntriesEnvelope struct {
	envelope
	CartItems []cartEntryDTO `json:"cartItems"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type userDTO struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type userEnvelope struct {
	envelope
	User userDTO `json:"user"`
}

type usersEnvelope struct {
	envelope
	Users []userDTO `json:"users"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerEnvelope struct {
	envelope
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginEnvelope struct {
	envelope
	userDTO
	IsAdmin bool `json:"isAdmin"`
}

type orderItemDTO struct {
	ProductID int64      `json:"productId"`
	Quantity  int        `json:"quantity"`
	Price     jsonAmount `json:"price"`
}

type orderDTO struct {
	OrderID       int64          `json:"orderId,omitempty"`
	UserID        int64          `json:"userId"`
	Items         []orderItemDTO `json:"items,omitempty"`
	TotalAmount   jsonAmount     `json:"totalAmount"`
	OrderDate     jsonDate       `json:"orderDate"`
	Status        string         `json:"status,omitempty"`
	PaymentStatus string         `json:"paymentStatus,omitempty"`
}

type orderEnvelope struct {
	envelope
	Order orderDTO `json:"order"`
}

type ordersEnvelope struct {
	envelope
	Orders []orderDTO `json:"orders"`
}

type paymentDTO struct {
	PaymentID     int64      `json:"paymentId,omitempty"`
	OrderID       int64      `json:"orderId"`
	Amount        jsonAmount `json:"amount"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	PaymentStatus string     `json:"paymentStatus,omitempty"`
	PaymentDate   jsonDate   `json:"paymentDate"`
}

type paymentEnvelope struct {
	envelope
	Payment paymentDTO `json:"payment"`
}
