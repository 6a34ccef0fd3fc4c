package remote

import (
	"context"
	"net/http"
	"strconv"

	"github.com/nikolayk812/cartsync-demo/internal/domain"
)

func (c *Client) ListEntries(ctx context.Context, userID int64) ([]domain.CartEntry, error) {
	var out cartEntriesEnvelope
	if err := c.do(ctx, "ListEntries", http.MethodGet, "/api/cart/user/"+strconv.FormatInt(userID, 10), nil, nil, &out); err != nil {
		return nil, err
	}

	entries := make([]domain.CartEntry, 0, len(out.CartItems))
	for _, e := range out.CartItems {
		entries = append(entries, mapCartEntry(e))
	}
	return entries, nil
}

func (c *Client) AddEntry(ctx context.Context, userID, productID int64, quantity int) (domain.CartEntry, error) {
	var out cartEntryEnvelope
	body := cartEntryDTO{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := c.do(ctx, "AddEntry", http.MethodPost, "/api/cart", nil, body, &out); err != nil {
		return domain.CartEntry{}, err
	}
	return mapCartEntry(out.Cart), nil
}

// UpdateEntry sets the quantity of an existing entry in place. Backends
// without the endpoint answer 405, reported as port.ErrUnsupported.
func (c *Client) UpdateEntry(ctx context.Context, entryID int64, quantity int) (domain.CartEntry, error) {
	var out cartEntryEnvelope
	body := updateQuantityRequest{Quantity: quantity}
	if err := c.do(ctx, "UpdateEntry", http.MethodPut, "/api/cart/"+strconv.FormatInt(entryID, 10), nil, body, &out); err != nil {
		return domain.CartEntry{}, err
	}
	return mapCartEntry(out.Cart), nil
}

func (c *Client) DeleteEntry(ctx context.Context, entryID int64) error {
	var out envelope
	return c.do(ctx, "DeleteEntry", http.MethodDelete, "/api/cart/"+strconv.FormatInt(entryID, 10), nil, nil, &out)
}

func mapCartEntry(e cartEntryDTO) domain.CartEntry {
	return domain.CartEntry{
		ID:        e.CartID,
		UserID:    e.UserID,
		ProductID: e.ProductID,
		Quantity:  e.Quantity,
	}
}
