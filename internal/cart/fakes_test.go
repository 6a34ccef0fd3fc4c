package cart_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nikolayk812/cartsync-demo/internal/domain"
	"github.com/nikolayk812/cartsync-demo/internal/port"
)

var errNetwork = errors.New("dial tcp 127.0.0.1:8081: connect: connection refused")

type fakeCatalog struct {
	mu       sync.Mutex
	products map[int64]domain.Product
	err      error
	calls    int
}

func (c *fakeCatalog) GetProduct(_ context.Context, productID int64) (domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return domain.Product{}, c.err
	}
	p, ok := c.products[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("product[%d] not found", productID)
	}
	return p, nil
}

// fakeRemote is an in-memory remote cart. Each failure field makes the
// corresponding call fail.
type fakeRemote struct {
	mu      sync.Mutex
	nextID  int64
	entries []domain.CartEntry
	calls   int

	listErr      error
	addErr       error
	deleteErr    error
	noUpdate     bool
	updateCalls  int
	deleteCalls  int
	deleteFailOn map[int64]bool
}

func (r *fakeRemote) ListEntries(_ context.Context, userID int64) ([]domain.CartEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.CartEntry
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeRemote) AddEntry(_ context.Context, userID, productID int64, quantity int) (domain.CartEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.addErr != nil {
		return domain.CartEntry{}, r.addErr
	}
	for i, e := range r.entries {
		if e.UserID == userID && e.ProductID == productID {
			r.entries[i].Quantity += quantity
			return r.entries[i], nil
		}
	}
	r.nextID++
	e := domain.CartEntry{ID: 100 + r.nextID, UserID: userID, ProductID: productID, Quantity: quantity}
	r.entries = append(r.entries, e)
	return e, nil
}

func (r *fakeRemote) UpdateEntry(_ context.Context, entryID int64, quantity int) (domain.CartEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.noUpdate {
		return domain.CartEntry{}, fmt.Errorf("PUT /api/cart/%d: %w", entryID, port.ErrUnsupported)
	}
	r.updateCalls++
	for i, e := range r.entries {
		if e.ID == entryID {
			r.entries[i].Quantity = quantity
			return r.entries[i], nil
		}
	}
	return domain.CartEntry{}, fmt.Errorf("cart entry[%d] not found", entryID)
}

func (r *fakeRemote) DeleteEntry(_ context.Context, entryID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.deleteCalls++
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if r.deleteFailOn[entryID] {
		return fmt.Errorf("delete entry[%d]: %w", entryID, errNetwork)
	}
	for i, e := range r.entries {
		if e.ID == entryID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeRemote) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *fakeRemote) entry(userID, productID int64) (domain.CartEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.UserID == userID && e.ProductID == productID {
			return e, true
		}
	}
	return domain.CartEntry{}, false
}

type memStore struct {
	mu      sync.Mutex
	lines   []domain.CartLine
	saves   int
	loadErr error
	saveErr error
}

func (s *memStore) Load(context.Context) ([]domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return append([]domain.CartLine(nil), s.lines...), nil
}

func (s *memStore) Save(_ context.Context, lines []domain.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.lines = append([]domain.CartLine(nil), lines...)
	return nil
}

func (s *memStore) snapshot() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartLine(nil), s.lines...)
}

type recorder struct {
	mu      sync.Mutex
	notices []domain.Notice
	renders [][]domain.CartLine
	totals  []domain.Money
	badge   []int
	hides   int
	prompts []string
	confirm bool
}

func (r *recorder) Notify(n domain.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recorder) RenderCart(lines []domain.CartLine, total domain.Money) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders = append(r.renders, lines)
	r.totals = append(r.totals, total)
}

func (r *recorder) ShowBadge(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.badge = append(r.badge, count)
}

func (r *recorder) HideBadge() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hides++
}

func (r *recorder) Confirm(_ context.Context, prompt string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts = append(r.prompts, prompt)
	return r.confirm
}

func (r *recorder) lastNotice() domain.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return domain.Notice{}
	}
	return r.notices[len(r.notices)-1]
}

func (r *recorder) renderCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.renders)
}

func (r *recorder) lastRender() ([]domain.CartLine, domain.Money) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.renders) == 0 {
		return nil, domain.Money{}
	}
	return r.renders[len(r.renders)-1], r.totals[len(r.totals)-1]
}

func (r *recorder) lastBadge() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.badge) == 0 {
		return -1
	}
	return r.badge[len(r.badge)-1]
}

func (r *recorder) hideCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hides
}
