package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CartLine is one product-quantity pairing of the local cart.
type CartLine struct {
	ProductID   int64  `json:"id"`
	CartEntryID int64  `json:"cartId,omitempty"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	UnitPrice   Money  `json:"price"`
	Quantity    int    `json:"quantity"`
}

func (l CartLine) Subtotal() Money {
	return l.UnitPrice.Mul(l.Quantity)
}

// ProductCode is the display code shown next to a cart line.
func ProductCode(productID int64) string {
	return fmt.Sprintf("PRD%d", productID)
}

// Cart holds at most one line per product, in insertion order.
type Cart struct {
	Lines []CartLine
}

// NewCart builds a cart from stored lines, merging duplicates and
// dropping lines with a non-positive quantity.
func NewCart(lines ...CartLine) Cart {
	var c Cart
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		c.Merge(line)
	}
	return c
}

func (c Cart) index(productID int64) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) Line(productID int64) (CartLine, bool) {
	i := c.index(productID)
	if i < 0 {
		return CartLine{}, false
	}
	return c.Lines[i], true
}

// Merge increments the quantity of an existing line for the same product,
// or appends the line when the product is not in the cart yet.
func (c *Cart) Merge(line CartLine) {
	i := c.index(line.ProductID)
	if i < 0 {
		c.Lines = append(c.Lines, line)
		return
	}

	c.Lines[i].Quantity += line.Quantity
	if c.Lines[i].CartEntryID == 0 {
		c.Lines[i].CartEntryID = line.CartEntryID
	}
}

// SetQuantity replaces the quantity of a line. A non-positive quantity
// removes the line. It reports whether the product was in the cart.
func (c *Cart) SetQuantity(productID int64, quantity int) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	if quantity <= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		return true
	}
	c.Lines[i].Quantity = quantity
	return true
}

func (c *Cart) SetEntryID(productID, entryID int64) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.Lines[i].CartEntryID = entryID
	return true
}

func (c *Cart) Remove(productID int64) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return true
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ItemCount is the sum of quantities over all lines.
func (c Cart) ItemCount() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

func (c Cart) Total() Money {
	total := Money{Amount: decimal.Zero, Currency: DefaultCurrency}
	if len(c.Lines) > 0 {
		total.Currency = c.Lines[0].UnitPrice.Currency
	}
	for _, line := range c.Lines {
		total.Amount = total.Amount.Add(line.Subtotal().Amount)
	}
	return total
}

// Snapshot returns a copy of the lines that is safe to hand out.
func (c Cart) Snapshot() []CartLine {
	if len(c.Lines) == 0 {
		return nil
	}
	out := make([]CartLine, len(c.Lines))
	copy(out, c.Lines)
	return out
}
