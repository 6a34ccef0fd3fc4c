// Package notify keeps transient notices visible until their TTL elapses.
package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/nikolayk812/cartsync-demo/internal/domain"
)

const DefaultTTL = 3 * time.Second

// Display shows and hides notices. Both calls may come from timer goroutines.
type Display interface {
	Show(id uint64, notice domain.Notice)
	Dismiss(id uint64)
}

type entry struct {
	notice domain.Notice
	timer  *time.Timer
}

// Tray is a port.Notifier that auto-dismisses every notice after its TTL.
type Tray struct {
	ttl     time.Duration
	display Display

	mu     sync.Mutex
	nextID uint64
	active map[uint64]*entry
	closed bool
}

func NewTray(ttl time.Duration, display Display) *Tray {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tray{
		ttl:     ttl,
		display: display,
		active:  make(map[uint64]*entry),
	}
}

func (t *Tray) Notify(notice domain.Notice) {
	if notice.IsZero() {
		return
	}
	ttl := notice.TTL
	if ttl <= 0 {
		ttl = t.ttl
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.nextID++
	id := t.nextID
	e := &entry{notice: notice}
	t.active[id] = e
	e.timer = time.AfterFunc(ttl, func() { t.dismiss(id) })
	t.mu.Unlock()

	if t.display != nil {
		t.display.Show(id, notice)
	}
}

// Active returns the notices that have not been dismissed yet, oldest first.
func (t *Tray) Active() []domain.Notice {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]uint64, 0, len(t.active))
	for id := range t.active {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	notices := make([]domain.Notice, 0, len(ids))
	for _, id := range ids {
		notices = append(notices, t.active[id].notice)
	}
	return notices
}

// Close dismisses everything and stops pending timers.
func (t *Tray) Close() {
	t.mu.Lock()
	t.closed = true
	ids := make([]uint64, 0, len(t.active))
	for id, e := range t.active {
		e.timer.Stop()
		ids = append(ids, id)
	}
	t.active = make(map[uint64]*entry)
	t.mu.Unlock()

	if t.display != nil {
		for _, id := range ids {
			t.display.Dismiss(id)
		}
	}
}

func (t *Tray) dismiss(id uint64) {
	t.mu.Lock()
	_, ok := t.active[id]
	delete(t.active, id)
	t.mu.Unlock()

	if ok && t.display != nil {
		t.display.Dismiss(id)
	}
}
