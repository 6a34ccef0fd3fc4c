package cart

import (
	"sync"
	"time"

	"github.com/nikolayk812/cartsync-demo/internal/port"
)

const DefaultBadgeHideDelay = 300 * time.Millisecond

// Badge projects the cart item count onto a BadgeSink. A positive count is
// shown at once; a zero count hides the sink after hideDelay unless the
// count turns positive again in between.
type Badge struct {
	sink      port.BadgeSink
	hideDelay time.Duration

	mu      sync.Mutex
	count   int
	visible bool
	gen     uint64
	timer   *time.Timer
}

func NewBadge(sink port.BadgeSink, hideDelay time.Duration) *Badge {
	if hideDelay < 0 {
		hideDelay = 0
	}
	return &Badge{sink: sink, hideDelay: hideDelay}
}

func (b *Badge) Refresh(count int) {
	if count < 0 {
		count = 0
	}

	b.mu.Lock()
	b.count = count
	b.gen++
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}

	if count > 0 {
		b.visible = true
		b.mu.Unlock()
		if b.sink != nil {
			b.sink.ShowBadge(count)
		}
		return
	}

	b.visible = false
	gen := b.gen
	if b.hideDelay == 0 {
		b.mu.Unlock()
		b.hide(gen)
		return
	}
	b.timer = time.AfterFunc(b.hideDelay, func() { b.hide(gen) })
	b.mu.Unlock()
}

// State returns the last projected count and whether the badge is shown.
func (b *Badge) State() (count int, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count, b.visible
}

// Stop cancels a pending hide.
func (b *Badge) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *Badge) hide(gen uint64) {
	b.mu.Lock()
	stale := gen != b.gen || b.count > 0
	if !stale {
		b.timer = nil
	}
	b.mu.Unlock()

	if !stale && b.sink != nil {
		b.sink.HideBadge()
	}
}
