package port

import (
	"context"

	"github.com/nikolayk812/cartsync-demo/internal/domain"
)

// Renderer repaints the whole cart view on every call.
type Renderer interface {
	RenderCart(lines []domain.CartLine, total domain.Money)
}

type Notifier interface {
	Notify(notice domain.Notice)
}

type BadgeSink interface {
	ShowBadge(count int)
	HideBadge()
}

type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}
