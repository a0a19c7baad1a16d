package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	apperrors "github.com/ecomsuite/storefront-client/internal/errors"

	"github.com/ecomsuite/storefront-client/internal/domain/cart"
	"github.com/ecomsuite/storefront-client/internal/domain/money"
	"github.com/ecomsuite/storefront-client/internal/ports"
)

// CartState tracks the provenance of the in-memory cart relative to the
// server-side mirror.
type CartState string

const (
	// CartLocalOnly means the cart reflects local mutations only; no merge
	// with the server has happened in this session.
	CartLocalOnly CartState = "local_only"
	// CartSyncing means a merge with the server-side cart is in flight.
	CartSyncing CartState = "syncing"
	// CartSynced means local and server carts agree as of the last merge and
	// mutations are mirrored remotely.
	CartSynced CartState = "synced"
)

// CartReconcilerOptions groups dependencies for CartReconciler.
type CartReconcilerOptions struct {
	API     ports.CartAPI
	Catalog ports.ProductCatalog
	Orders  ports.OrderAPI
	Store   ports.KVStore
	Logger  *slog.Logger

	// MirrorTimeout bounds each fire-and-forget remote write.
	MirrorTimeout time.Duration
}

// CartReconciler owns the shopping cart: local mutations are synchronous and
// authoritative, the server-side mirror is best-effort, and the two are
// merged once per authenticated transition.
type CartReconciler struct {
	api           ports.CartAPI
	catalog       ports.ProductCatalog
	orders        ports.OrderAPI
	store         ports.KVStore
	logger        *slog.Logger
	mirrorTimeout time.Duration

	mu    sync.Mutex
	items cart.Cart
	state CartState

	merge   singleflight.Group
	mirrors sync.WaitGroup
}

// NewCartReconciler constructs a CartReconciler.
func NewCartReconciler(opts CartReconcilerOptions) (*CartReconciler, error) {
	if opts.API == nil {
		return nil, errors.New("cart reconciler requires a cart API")
	}
	if opts.Catalog == nil {
		return nil, errors.New("cart reconciler requires a product catalog")
	}
	if opts.Store == nil {
		return nil, errors.New("cart reconciler requires a store")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mirrorTimeout := opts.MirrorTimeout
	if mirrorTimeout <= 0 {
		mirrorTimeout = 10 * time.Second
	}

	return &CartReconciler{
		api:           opts.API,
		catalog:       opts.Catalog,
		orders:        opts.Orders,
		store:         opts.Store,
		logger:        logger.With("component", "cart"),
		mirrorTimeout: mirrorTimeout,
		state:         CartLocalOnly,
	}, nil
}

// Load restores the persisted cart from storage. An unreadable snapshot is
// discarded rather than blocking startup.
func (r *CartReconciler) Load(ctx context.Context) error {
	raw, err := r.store.Get(ctx, ports.KeyCart)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load cart snapshot: %w", err)
	}

	items, err := cart.DecodeItems(raw)
	if err != nil {
		r.logger.Warn("discarding unreadable cart snapshot", "error", err)
		return nil
	}

	r.mu.Lock()
	r.items = cart.New(items)
	r.mu.Unlock()
	return nil
}

// State returns the current provenance state.
func (r *CartReconciler) State() CartState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Items returns a copy of the cart lines.
func (r *CartReconciler) Items() []cart.Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items.Items()
}

// Count returns the total number of units across all lines.
func (r *CartReconciler) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items.Count()
}

// Total returns the cart total in cents, recomputed from the lines.
func (r *CartReconciler) Total() money.Cents {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items.Total()
}

// IsEmpty reports whether the cart has no lines.
func (r *CartReconciler) IsEmpty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items.IsEmpty()
}

// SyncWithBackend merges the local cart with the server-side one. Called on
// the authenticated transition. Concurrent calls join the in-flight merge
// instead of starting another. On any failure the pre-merge local cart stays
// intact and the state stays off Synced, so the next sign-in retries.
func (r *CartReconciler) SyncWithBackend(ctx context.Context) error {
	_, err, _ := r.merge.Do("merge", func() (any, error) {
		return nil, r.runMerge(ctx)
	})
	return err
}

// MarkLocalOnly detaches the cart from the server-side mirror, e.g. after a
// sign-out. The local cart itself is kept.
func (r *CartReconciler) MarkLocalOnly() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = CartLocalOnly
}

func (r *CartReconciler) runMerge(ctx context.Context) error {
	r.mu.Lock()
	local := r.items.Items()
	r.state = CartSyncing
	r.mu.Unlock()

	commit := func(merged []cart.Item) {
		r.mu.Lock()
		r.items.Replace(merged)
		r.state = CartSynced
		r.mu.Unlock()
		r.persist(ctx)
	}
	abort := func(err error) error {
		r.mu.Lock()
		r.state = CartLocalOnly
		r.mu.Unlock()
		return err
	}

	remote, err := r.api.Fetch(ctx)
	if err != nil && !apperrors.IsNotFound(err) {
		// Treat an unreachable remote cart as empty: push what we have so the
		// server converges. With nothing local to push there is nothing to
		// converge, and overwriting the server with an empty cart could lose
		// items we failed to read.
		r.logger.Warn("remote cart fetch failed, treating as empty", "error", err)
		if len(local) == 0 {
			return abort(nil)
		}
		if err := r.push(ctx, local); err != nil {
			return abort(fmt.Errorf("push local cart: %w", err))
		}
		commit(local)
		return nil
	}

	plan := cart.PlanMerge(local, remote)
	merged := plan.Kept
	if plan.NeedsHydration() {
		products, err := r.catalog.Details(ctx, plan.PendingIDs())
		if err != nil {
			return abort(fmt.Errorf("hydrate remote cart items: %w", err))
		}
		hydrated := make([]cart.Item, len(products))
		for i, p := range products {
			hydrated[i] = itemFromProduct(p)
		}
		merged = plan.Resolve(hydrated)
	}

	// With no local contribution the server already holds the truth; adopt it
	// without writing back.
	if len(local) > 0 && len(merged) > 0 {
		if err := r.push(ctx, merged); err != nil {
			return abort(fmt.Errorf("push merged cart: %w", err))
		}
	}
	commit(merged)
	return nil
}

// push overwrites the server-side cart wholesale.
func (r *CartReconciler) push(ctx context.Context, items []cart.Item) error {
	return r.api.Sync(ctx, entriesFor(items))
}

// AddToCart puts one unit of the product into the cart. An existing line
// increments by one up to its stock ceiling; at the ceiling nothing changes.
func (r *CartReconciler) AddToCart(ctx context.Context, product ports.Product) {
	it := itemFromProduct(product)

	r.mu.Lock()
	_, existed := r.items.Find(it.ProductID)
	changed := r.items.Add(it)
	line, _ := r.items.Find(it.ProductID)
	r.mu.Unlock()

	if !changed {
		return
	}
	r.persist(ctx)
	if existed {
		r.mirror("update item", func(ctx context.Context) error {
			return r.api.UpdateItem(ctx, ports.CartEntry{ProductID: line.ProductID, Quantity: line.Quantity})
		})
	} else {
		r.mirror("add item", func(ctx context.Context) error {
			return r.api.AddItem(ctx, ports.CartEntry{ProductID: line.ProductID, Quantity: line.Quantity})
		})
	}
}

// UpdateQuantity sets a line's quantity, clamped into [1, stock]. An absent
// product id is a no-op.
func (r *CartReconciler) UpdateQuantity(ctx context.Context, productID int64, qty int) {
	r.mu.Lock()
	line, ok := r.items.SetQuantity(productID, qty)
	r.mu.Unlock()
	if !ok {
		return
	}

	r.persist(ctx)
	r.mirror("update item", func(ctx context.Context) error {
		return r.api.UpdateItem(ctx, ports.CartEntry{ProductID: line.ProductID, Quantity: line.Quantity})
	})
}

// RemoveFromCart deletes a line. An absent product id is a no-op.
func (r *CartReconciler) RemoveFromCart(ctx context.Context, productID int64) {
	r.mu.Lock()
	changed := r.items.Remove(productID)
	r.mu.Unlock()
	if !changed {
		return
	}

	r.persist(ctx)
	r.mirror("remove item", func(ctx context.Context) error {
		return r.api.RemoveItem(ctx, productID)
	})
}

// ClearCart empties the cart and its persisted copy.
func (r *CartReconciler) ClearCart(ctx context.Context) {
	r.mu.Lock()
	wasEmpty := r.items.IsEmpty()
	r.items.Clear()
	r.mu.Unlock()
	if wasEmpty {
		return
	}

	r.persist(ctx)
	r.mirror("clear cart", func(ctx context.Context) error {
		return r.api.Clear(ctx)
	})
}

// Checkout places an order for the cart's contents. On success the cart is
// cleared; the order stands even if clearing fails. On failure the cart is
// left intact.
func (r *CartReconciler) Checkout(ctx context.Context, req ports.OrderRequest) (ports.Order, error) {
	if r.orders == nil {
		return ports.Order{}, apperrors.Internal("no order API configured")
	}

	r.mu.Lock()
	items := r.items.Items()
	r.mu.Unlock()
	if len(items) == 0 {
		return ports.Order{}, apperrors.ValidationField("items", "cart is empty")
	}
	req.Items = entriesFor(items)

	order, err := r.orders.Create(ctx, req)
	if err != nil {
		return ports.Order{}, fmt.Errorf("create order: %w", err)
	}

	r.ClearCart(ctx)
	return order, nil
}

// Flush waits for outstanding fire-and-forget mirror writes. Call before
// process exit so short-lived drivers don't drop them.
func (r *CartReconciler) Flush() {
	r.mirrors.Wait()
}

// persist writes the serialized cart to storage. A write failure is logged;
// the in-memory cart stays authoritative.
func (r *CartReconciler) persist(ctx context.Context) {
	r.mu.Lock()
	items := r.items.Items()
	r.mu.Unlock()

	raw, err := cart.EncodeItems(items)
	if err != nil {
		r.logger.Error("encoding cart snapshot failed", "error", err)
		return
	}
	if err := r.store.Set(ctx, ports.KeyCart, raw); err != nil {
		r.logger.Warn("persisting cart snapshot failed", "error", err)
	}
}

// mirror runs a remote cart write in the background when the cart is synced.
// Mirror errors are logged, never surfaced, and never rolled back locally.
func (r *CartReconciler) mirror(op string, fn func(ctx context.Context) error) {
	if r.State() != CartSynced {
		return
	}

	r.mirrors.Add(1)
	go func() {
		defer r.mirrors.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.mirrorTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			r.logger.Warn("cart mirror write failed", "op", op, "error", err)
		}
	}()
}

func itemFromProduct(p ports.Product) cart.Item {
	return cart.Item{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
		ImageURL:  p.FirstImage(),
		Stock:     p.Stock,
	}
}

func entriesFor(items []cart.Item) []ports.CartEntry {
	entries := make([]ports.CartEntry, len(items))
	for i, it := range items {
		entries[i] = ports.CartEntry{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return entries
}
