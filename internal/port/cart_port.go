package port

import (
	"context"
	"errors"

	"github.com/nikolayk812/cartsync-demo/internal/domain"
)

// ErrUnsupported is returned by a remote store that does not expose the
// requested operation.
var ErrUnsupported = errors.New("operation not supported by remote store")

// CartStore persists the local cart as one snapshot under a fixed key.
// Save fully overwrites the previous snapshot.
type CartStore interface {
	Load(ctx context.Context) ([]domain.CartLine, error)
	Save(ctx context.Context, lines []domain.CartLine) error
}

type Catalog interface {
	GetProduct(ctx context.Context, productID int64) (domain.Product, error)
}

type RemoteCart interface {
	ListEntries(ctx context.Context, userID int64) ([]domain.CartEntry, error)
	AddEntry(ctx context.Context, userID, productID int64, quantity int) (domain.CartEntry, error)
	UpdateEntry(ctx context.Context, entryID int64, quantity int) (domain.CartEntry, error)
	DeleteEntry(ctx context.Context, entryID int64) error
}
