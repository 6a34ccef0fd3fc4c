// Package cart keeps a locally persisted cart consistent with the remote
// cart store, falling back to local-only operation whenever the remote
// store cannot be reached.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nikolayk812/cartsync-demo/internal/domain"
	"github.com/nikolayk812/cartsync-demo/internal/logger"
	"github.com/nikolayk812/cartsync-demo/internal/port"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPlaceholderImageURL = "https://images.unsplash.com/photo-1526170375885-4d8ecf77b99f?q=80&w=400&auto=format&fit=crop"
	DefaultLoadConcurrency     = 4

	clearPrompt = "Are you sure you want to clear your cart?"
)

type Options struct {
	PlaceholderImageURL string
	PlaceholderPrice    domain.Money
	BadgeHideDelay      time.Duration
	LoadConcurrency     int
}

func DefaultOptions() Options {
	return Options{
		PlaceholderImageURL: DefaultPlaceholderImageURL,
		PlaceholderPrice:    domain.NewMoney(decimal.NewFromInt(100), domain.DefaultCurrency),
		BadgeHideDelay:      DefaultBadgeHideDelay,
		LoadConcurrency:     DefaultLoadConcurrency,
	}
}

// Deps are the manager's collaborators. Catalog, Remote and Store are
// required; missing sinks are replaced by no-ops and a missing Confirmer
// declines every destructive operation.
type Deps struct {
	Catalog   port.Catalog
	Remote    port.RemoteCart
	Store     port.CartStore
	Notifier  port.Notifier
	Renderer  port.Renderer
	Badge     port.BadgeSink
	Confirmer port.Confirmer
	Logger    *zap.Logger
}

// AddRequest carries the product to add plus optional display fields used
// only when the catalog cannot be reached.
type AddRequest struct {
	ProductID int64
	Quantity  int
	Name      string
	UnitPrice decimal.Decimal
	ImageURL  string
}

// Manager owns the local cart. Remote calls never run under the lock, so
// operations on the same product may interleave; the last local merge to
// complete wins.
type Manager struct {
	catalog   port.Catalog
	remote    port.RemoteCart
	store     port.CartStore
	notifier  port.Notifier
	renderer  port.Renderer
	confirmer port.Confirmer
	badge     *Badge
	opts      Options
	log       *zap.SugaredLogger

	mu     sync.Mutex
	userID int64
	cart   domain.Cart
}

// New restores the persisted cart and projects it onto the badge. A store
// that fails to load leaves the manager with an empty cart.
func New(ctx context.Context, deps Deps, opts Options) (*Manager, error) {
	if deps.Catalog == nil || deps.Remote == nil || deps.Store == nil {
		return nil, fmt.Errorf("catalog, remote and store are required")
	}

	defaults := DefaultOptions()
	if opts.PlaceholderImageURL == "" {
		opts.PlaceholderImageURL = defaults.PlaceholderImageURL
	}
	if opts.PlaceholderPrice.IsZero() {
		opts.PlaceholderPrice = defaults.PlaceholderPrice
	}
	if opts.LoadConcurrency <= 0 {
		opts.LoadConcurrency = defaults.LoadConcurrency
	}

	log := logger.Z()
	if deps.Logger != nil {
		log = deps.Logger
	}

	m := &Manager{
		catalog:   deps.Catalog,
		remote:    deps.Remote,
		store:     deps.Store,
		notifier:  deps.Notifier,
		renderer:  deps.Renderer,
		confirmer: deps.Confirmer,
		badge:     NewBadge(deps.Badge, opts.BadgeHideDelay),
		opts:      opts,
		log:       log.Sugar().With("component", "cart"),
	}
	if m.notifier == nil {
		m.notifier = nopNotifier{}
	}
	if m.renderer == nil {
		m.renderer = nopRenderer{}
	}
	if m.confirmer == nil {
		m.confirmer = declineConfirmer{}
	}

	lines, err := m.store.Load(ctx)
	if err != nil {
		m.log.Errorw("cart_restore_failed", "error", err)
	}
	m.cart = domain.NewCart(lines...)
	m.badge.Refresh(m.cart.ItemCount())

	return m, nil
}

func (m *Manager) Login(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userID = userID
}

func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userID = 0
}

func (m *Manager) UserID() (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userID, m.userID > 0
}

// Lines returns a copy of the current local cart.
func (m *Manager) Lines() []domain.CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Snapshot()
}

func (m *Manager) ItemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.ItemCount()
}

func (m *Manager) Total() domain.Money {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Total()
}

func (m *Manager) Badge() *Badge {
	return m.badge
}

// Close stops pending badge timers.
func (m *Manager) Close() {
	m.badge.Stop()
}

// Add registers the product with the remote cart and merges it into the
// local cart whether or not the remote store accepted it.
func (m *Manager) Add(ctx context.Context, req AddRequest) Result {
	userID, ok := m.UserID()
	if !ok {
		return m.refuse(domain.Warning("Please login to add items to cart"), ErrNoSession)
	}
	if req.Quantity <= 0 {
		return m.refuse(domain.Warning("Quantity must be greater than 0"), ErrInvalidQuantity)
	}

	line := m.resolveLine(ctx, req)
	line.Quantity = req.Quantity

	var res Result
	entry, err := m.remote.AddEntry(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		m.log.Warnw("remote_add_failed",
			"product_id", req.ProductID,
			"quantity", req.Quantity,
			"error", err,
		)
		res = Result{Outcome: OutcomeDegraded, Notice: domain.Info("Product added to cart (offline mode)"), Err: err}
	} else {
		line.CartEntryID = entry.ID
		res = Result{Outcome: OutcomeConfirmed, Notice: domain.Success("Product added to cart!")}
	}

	m.mutate(ctx, func(c *domain.Cart) bool {
		c.Merge(line)
		return true
	})

	return m.finish(res)
}

// Remove deletes the product's remote entry when one can be found, and
// always drops the local line.
func (m *Manager) Remove(ctx context.Context, productID int64) Result {
	res := Result{Outcome: OutcomeDegraded, Notice: domain.Info("Item removed from cart")}

	if userID, ok := m.UserID(); ok {
		if err := m.deleteRemote(ctx, userID, productID); err != nil {
			m.log.Warnw("remote_remove_failed", "product_id", productID, "error", err)
			res.Err = err
		} else {
			res.Outcome = OutcomeConfirmed
		}
	} else {
		res.Err = ErrNoSession
	}

	m.mutate(ctx, func(c *domain.Cart) bool {
		return c.Remove(productID)
	})
	m.render()

	return m.finish(res)
}

// UpdateQuantity sets a line's quantity locally first, then reconciles the
// remote entry. A non-positive quantity removes the line.
func (m *Manager) UpdateQuantity(ctx context.Context, productID int64, quantity int) Result {
	if quantity <= 0 {
		return m.Remove(ctx, productID)
	}

	found := m.mutate(ctx, func(c *domain.Cart) bool {
		return c.SetQuantity(productID, quantity)
	})
	if !found {
		return Result{Outcome: OutcomeRefused, Err: ErrLineNotFound}
	}
	m.render()

	userID, ok := m.UserID()
	if !ok {
		return m.finish(Result{Outcome: OutcomeDegraded, Notice: domain.Info("Cart updated (offline mode)"), Err: ErrNoSession})
	}

	entry, err := m.syncQuantity(ctx, userID, productID, quantity)
	if err != nil {
		m.log.Warnw("remote_update_failed",
			"product_id", productID,
			"quantity", quantity,
			"error", err,
		)
		return m.finish(Result{Outcome: OutcomeDegraded, Notice: domain.Info("Cart updated (offline mode)"), Err: err})
	}

	m.mutate(ctx, func(c *domain.Cart) bool {
		line, ok := c.Line(productID)
		if !ok || line.CartEntryID == entry.ID {
			return false
		}
		return c.SetEntryID(productID, entry.ID)
	})

	return m.finish(Result{Outcome: OutcomeConfirmed, Notice: domain.Success("Cart updated")})
}

// Clear asks for confirmation, deletes every remote entry it can and
// empties the local cart regardless of how many remote deletes succeeded.
func (m *Manager) Clear(ctx context.Context) Result {
	m.mu.Lock()
	empty := m.cart.IsEmpty()
	m.mu.Unlock()
	if empty {
		return Result{Outcome: OutcomeRefused, Err: ErrEmptyCart}
	}

	if !m.confirmer.Confirm(ctx, clearPrompt) {
		return Result{Outcome: OutcomeRefused, Err: ErrNotConfirmed}
	}

	res := m.empty(ctx)
	res.Notice = domain.Info("Cart cleared successfully")
	return m.finish(res)
}

// Empty destroys the cart without confirmation. It is used once payment
// has completed.
func (m *Manager) Empty(ctx context.Context) Result {
	return m.finish(m.empty(ctx))
}

// Load replaces the local cart with the remote one. Without a session it
// renders an empty cart and makes no remote call; when the remote listing
// fails the current local cart is rendered instead.
func (m *Manager) Load(ctx context.Context) Result {
	userID, ok := m.UserID()
	if !ok {
		m.renderer.RenderCart(nil, domain.Cart{}.Total())
		return Result{Outcome: OutcomeRefused, Err: ErrNoSession}
	}

	entries, err := m.remote.ListEntries(ctx, userID)
	if err != nil {
		m.log.Warnw("remote_load_failed", "user_id", userID, "error", err)
		m.render()
		return Result{Outcome: OutcomeDegraded, Err: err}
	}

	lines := m.enrich(ctx, entries)

	m.mutate(ctx, func(c *domain.Cart) bool {
		*c = domain.NewCart(lines...)
		return true
	})
	m.render()

	return Result{Outcome: OutcomeConfirmed}
}

// Checkout hands the current cart to the order flow. It does not clear it.
func (m *Manager) Checkout(_ context.Context) (domain.OrderSummary, Result) {
	m.mu.Lock()
	summary := domain.OrderSummary{
		UserID: m.userID,
		Lines:  m.cart.Snapshot(),
		Total:  m.cart.Total(),
	}
	m.mu.Unlock()

	if len(summary.Lines) == 0 {
		return domain.OrderSummary{}, m.refuse(domain.Warning("Your cart is empty!"), ErrEmptyCart)
	}
	if summary.UserID <= 0 {
		return domain.OrderSummary{}, m.refuse(domain.Warning("Please login to proceed with order"), ErrNoSession)
	}

	return summary, Result{Outcome: OutcomeConfirmed}
}

func (m *Manager) empty(ctx context.Context) Result {
	res := Result{Outcome: OutcomeConfirmed}

	if userID, ok := m.UserID(); ok {
		if err := m.deleteAllRemote(ctx, userID); err != nil {
			res = Result{Outcome: OutcomeDegraded, Err: err}
		}
	} else {
		res = Result{Outcome: OutcomeDegraded, Err: ErrNoSession}
	}

	m.mutate(ctx, func(c *domain.Cart) bool {
		c.Clear()
		return true
	})
	m.render()

	return res
}

// deleteAllRemote deletes entries one by one; a failed delete is logged and
// does not stop the others.
func (m *Manager) deleteAllRemote(ctx context.Context, userID int64) error {
	entries, err := m.remote.ListEntries(ctx, userID)
	if err != nil {
		m.log.Warnw("remote_clear_list_failed", "user_id", userID, "error", err)
		return err
	}

	var errs []error
	for _, entry := range entries {
		if err := m.remote.DeleteEntry(ctx, entry.ID); err != nil {
			m.log.Warnw("remote_clear_delete_failed",
				"cart_id", entry.ID,
				"product_id", entry.ProductID,
				"error", err,
			)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (m *Manager) deleteRemote(ctx context.Context, userID, productID int64) error {
	entry, found, err := m.findEntry(ctx, userID, productID)
	if err != nil || !found {
		return err
	}

	if err := m.remote.DeleteEntry(ctx, entry.ID); err != nil {
		return fmt.Errorf("remote.DeleteEntry[%d]: %w", entry.ID, err)
	}
	return nil
}

func (m *Manager) findEntry(ctx context.Context, userID, productID int64) (domain.CartEntry, bool, error) {
	entries, err := m.remote.ListEntries(ctx, userID)
	if err != nil {
		return domain.CartEntry{}, false, fmt.Errorf("remote.ListEntries: %w", err)
	}
	for _, entry := range entries {
		if entry.ProductID == productID {
			return entry, true, nil
		}
	}
	return domain.CartEntry{}, false, nil
}

// syncQuantity updates the remote entry in place. Remote stores without an
// update endpoint get the non-atomic delete-then-add sequence.
func (m *Manager) syncQuantity(ctx context.Context, userID, productID int64, quantity int) (domain.CartEntry, error) {
	entry, found, err := m.findEntry(ctx, userID, productID)
	if err != nil {
		return domain.CartEntry{}, err
	}
	if !found {
		return m.remote.AddEntry(ctx, userID, productID, quantity)
	}

	updated, err := m.remote.UpdateEntry(ctx, entry.ID, quantity)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, port.ErrUnsupported) {
		return domain.CartEntry{}, err
	}

	m.log.Warnw("remote_update_unsupported_using_delete_add",
		"cart_id", entry.ID,
		"product_id", productID,
	)
	if err := m.remote.DeleteEntry(ctx, entry.ID); err != nil {
		return domain.CartEntry{}, fmt.Errorf("remote.DeleteEntry[%d]: %w", entry.ID, err)
	}
	return m.remote.AddEntry(ctx, userID, productID, quantity)
}

// enrich resolves display fields for every remote entry independently;
// one failed lookup falls back to placeholders for that entry only.
func (m *Manager) enrich(ctx context.Context, entries []domain.CartEntry) []domain.CartLine {
	lines := make([]domain.CartLine, len(entries))

	var g errgroup.Group
	g.SetLimit(m.opts.LoadConcurrency)
	for i, entry := range entries {
		g.Go(func() error {
			lines[i] = m.lineForEntry(ctx, entry)
			return nil
		})
	}
	_ = g.Wait()

	return lines
}

func (m *Manager) lineForEntry(ctx context.Context, entry domain.CartEntry) domain.CartLine {
	product, err := m.catalog.GetProduct(ctx, entry.ProductID)
	if err != nil {
		m.log.Debugw("catalog_lookup_failed", "product_id", entry.ProductID, "error", err)
		return domain.CartLine{
			ProductID:   entry.ProductID,
			CartEntryID: entry.ID,
			Code:        domain.ProductCode(entry.ProductID),
			Name:        fmt.Sprintf("Product %d", entry.ProductID),
			Description: "Product description",
			ImageURL:    m.opts.PlaceholderImageURL,
			UnitPrice:   m.opts.PlaceholderPrice,
			Quantity:    entry.Quantity,
		}
	}

	line := lineFromProduct(product)
	line.ProductID = entry.ProductID
	line.CartEntryID = entry.ID
	line.Quantity = entry.Quantity
	return line
}

// resolveLine prefers catalog details, then the caller's fields, then
// placeholders.
func (m *Manager) resolveLine(ctx context.Context, req AddRequest) domain.CartLine {
	product, err := m.catalog.GetProduct(ctx, req.ProductID)
	if err == nil {
		line := lineFromProduct(product)
		line.ProductID = req.ProductID
		return line
	}
	m.log.Debugw("catalog_lookup_failed", "product_id", req.ProductID, "error", err)

	line := domain.CartLine{
		ProductID:   req.ProductID,
		Code:        domain.ProductCode(req.ProductID),
		Name:        req.Name,
		Description: fmt.Sprintf("Description of %d", req.ProductID),
		ImageURL:    req.ImageURL,
		UnitPrice:   domain.NewMoney(req.UnitPrice, m.opts.PlaceholderPrice.Currency),
	}
	if line.Name == "" {
		line.Name = fmt.Sprintf("Product %d", req.ProductID)
	}
	if line.ImageURL == "" {
		line.ImageURL = m.opts.PlaceholderImageURL
	}
	if req.UnitPrice.IsZero() {
		line.UnitPrice = m.opts.PlaceholderPrice
	}
	return line
}

func lineFromProduct(p domain.Product) domain.CartLine {
	return domain.CartLine{
		ProductID:   p.ID,
		Code:        domain.ProductCode(p.ID),
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		UnitPrice:   p.Price,
	}
}

// mutate applies fn under the lock and, when fn reports a change, persists
// the full cart and refreshes the badge. It returns fn's result.
func (m *Manager) mutate(ctx context.Context, fn func(c *domain.Cart) bool) bool {
	m.mu.Lock()
	changed := fn(&m.cart)
	if !changed {
		m.mu.Unlock()
		return false
	}
	snapshot := m.cart.Snapshot()
	count := m.cart.ItemCount()
	if err := m.store.Save(ctx, snapshot); err != nil {
		m.log.Errorw("cart_persist_failed", "lines", len(snapshot), "error", err)
	}
	// refreshed under the lock so counts reach the badge in mutation order
	m.badge.Refresh(count)
	m.mu.Unlock()

	return true
}

func (m *Manager) render() {
	m.mu.Lock()
	lines := m.cart.Snapshot()
	total := m.cart.Total()
	m.mu.Unlock()

	m.renderer.RenderCart(lines, total)
}

func (m *Manager) refuse(notice domain.Notice, err error) Result {
	return m.finish(Result{Outcome: OutcomeRefused, Notice: notice, Err: err})
}

func (m *Manager) finish(res Result) Result {
	if !res.Notice.IsZero() {
		m.notifier.Notify(res.Notice)
	}
	return res
}

type nopNotifier struct{}

func (nopNotifier) Notify(domain.Notice) {}

type nopRenderer struct{}

func (nopRenderer) RenderCart([]domain.CartLine, domain.Money) {}

type declineConfirmer struct{}

func (declineConfirmer) Confirm(context.Context, string) bool { return false }
