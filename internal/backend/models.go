package backend

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Money is a two-decimal amount stored as decimal(12,2) and sent as a
// JSON number.
type Money struct {
	decimal.Decimal
}

func NewMoney(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.Round(2).StringFixed(2)), nil
}

// UnmarshalJSON accepts numbers and numeric strings.
func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return err
	}
	m.Decimal = d.Round(2)
	return nil
}

func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}

type Product struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"productId"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	Price         Money     `gorm:"type:decimal(12,2);not null" json:"price"`
	CategoryID    int64     `gorm:"index" json:"categoryId"`
	StockQuantity int       `gorm:"not null;default:0" json:"stockQuantity"`
	ImageURL      string    `gorm:"size:1024" json:"imageUrl"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// CartEntry is one (user, product) pairing of a server-side cart.
type CartEntry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"cartId"`
	UserID    int64     `gorm:"index;not null" json:"userId"`
	ProductID int64     `gorm:"index;not null" json:"productId"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (CartEntry) TableName() string {
	return "cart"
}

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"userId"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:CUSTOMER" json:"role"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

type Order struct {
	ID            int64       `gorm:"primaryKey;autoIncrement" json:"orderId"`
	UserID        int64       `gorm:"index;not null" json:"userId"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	TotalAmount   Money       `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	OrderDate     time.Time   `gorm:"not null" json:"orderDate"`
	Status        string      `gorm:"size:20;not null" json:"status"`
	PaymentStatus string      `gorm:"size:20;not null" json:"paymentStatus"`
}

type OrderItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"orderItemId"`
	OrderID   int64 `gorm:"index;not null" json:"-"`
	ProductID int64 `gorm:"not null" json:"productId"`
	Quantity  int   `gorm:"not null" json:"quantity"`
	Price     Money `gorm:"type:decimal(12,2);not null" json:"price"`
}

type Payment struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"paymentId"`
	OrderID       int64     `gorm:"index;not null" json:"orderId"`
	Amount        Money     `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentMethod string    `gorm:"size:50" json:"paymentMethod"`
	PaymentStatus string    `gorm:"size:20;not null" json:"paymentStatus"`
	PaymentDate   time.Time `json:"paymentDate"`
}
