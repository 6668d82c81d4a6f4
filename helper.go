package storehelper

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/quartzlabs/storehelper/appstore"
	"github.com/quartzlabs/storehelper/config"
	"github.com/quartzlabs/storehelper/consumable"
	"github.com/quartzlabs/storehelper/consumable/memory"
	"github.com/quartzlabs/storehelper/entitlement"
	"github.com/quartzlabs/storehelper/fallback"
	"github.com/quartzlabs/storehelper/groupsync"
	"github.com/quartzlabs/storehelper/id"
	"github.com/quartzlabs/storehelper/plugin"
	"github.com/quartzlabs/storehelper/product"
	"github.com/quartzlabs/storehelper/subscription"
	"github.com/quartzlabs/storehelper/transaction"
	"github.com/quartzlabs/storehelper/verify"
)

// compile-time interface check
var _ subscription.Owner = (*Helper)(nil)

// verifyResult is the stream payload type.
type verifyResult = verify.Result[transaction.Transaction]

// Helper is the entitlement reconciliation engine. It keeps the local
// purchased-product set in sync with the platform commerce service,
// guards the purchase state machine, and degrades to the persisted
// fallback list when the storefront is unreachable.
type Helper struct {
	service    appstore.Service
	ledger     consumable.Store
	ownsLedger bool
	fallback   fallback.Store
	groupSync  groupsync.Publisher
	provider   config.Provider
	plugins    *plugin.Registry
	logger     *slog.Logger
	subs       *subscription.Helper

	productIDs []product.ID

	mu               sync.Mutex
	products         product.Catalog
	purchased        *entitlement.Set
	serviceAvailable bool
	purchaseState    PurchaseState
	started          bool

	changes      chan Change
	stopChan     chan struct{}
	cancelListen context.CancelFunc
	wg           sync.WaitGroup
}

// New creates a Helper on a platform service. The helper does nothing
// until Start is called.
func New(service appstore.Service, opts ...Option) *Helper {
	h := &Helper{
		service:       service,
		ledger:        memory.New(),
		ownsLedger:    true,
		fallback:      fallback.NewMemory(),
		groupSync:     groupsync.Noop(),
		plugins:       plugin.NewRegistry(),
		logger:        slog.Default(),
		purchased:     entitlement.NewSet(),
		purchaseState: StateNotStarted,
		changes:       make(chan Change, 64),
		stopChan:      make(chan struct{}),
	}
	h.subs = subscription.NewHelper(h)

	for _, opt := range opts {
		opt(h)
	}

	if len(h.productIDs) == 0 {
		h.logger.Error("no product ids configured, catalog will be empty")
	}

	return h
}

// Start loads the fallback list, starts the transaction listener, and
// triggers a catalog refresh. Calling Start on a started helper is a
// no-op.
func (h *Helper) Start(ctx context.Context) error {
	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		return nil
	}
	h.started = true
	h.purchaseState = StateUnknown
	h.stopChan = make(chan struct{})
	h.mu.Unlock()

	// Seed the purchased set from the last-known list so entitlement
	// queries have an answer before the storefront responds.
	ids, err := h.fallback.Load(ctx)
	if err != nil {
		h.logger.Error("failed to load fallback list", "error", err)
	}
	h.mu.Lock()
	for _, pid := range ids {
		h.purchased.Insert(pid)
	}
	h.mu.Unlock()

	h.plugins.EmitInit(ctx, h)

	listenCtx, cancel := context.WithCancel(context.Background())
	h.cancelListen = cancel
	h.wg.Add(1)
	go h.transactionWorker(listenCtx)

	if err := h.RefreshProducts(ctx); err != nil {
		h.logger.Error("initial catalog refresh failed", "error", err)
	}

	h.logger.Info("store helper started",
		"product_ids", len(h.productIDs),
		"fallback_ids", len(ids),
	)

	return nil
}

// Stop cancels and joins the transaction listener and emits plugin
// shutdown. The default in-memory ledger is closed; a ledger injected
// with WithConsumableStore stays open, its owner closes it.
func (h *Helper) Stop() error {
	h.mu.Lock()
	if !h.started {
		h.mu.Unlock()
		return nil
	}
	h.started = false
	h.purchaseState = StateNotStarted
	h.mu.Unlock()

	close(h.stopChan)
	if h.cancelListen != nil {
		h.cancelListen()
	}
	h.wg.Wait()

	h.plugins.EmitShutdown(context.Background())

	if h.ownsLedger {
		return h.ledger.Close()
	}
	return nil
}

// ──────────────────────────────────────────────────
// Catalog
// ──────────────────────────────────────────────────

// RefreshProducts requests catalog entries for the configured product-id
// list. On success the snapshot is replaced and the service is marked
// available; on failure the service is marked unavailable and the stale
// snapshot is kept for display purposes, never for trust decisions.
func (h *Helper) RefreshProducts(ctx context.Context) error {
	start := time.Now()

	if len(h.productIDs) == 0 {
		h.setServiceAvailable(false)
		h.plugins.EmitCatalogUnavailable(ctx, ErrNoProductIDs)
		return ErrNoProductIDs
	}

	products, err := h.service.Products(ctx, h.productIDs)
	if err != nil || len(products) == 0 {
		h.setServiceAvailable(false)
		if err == nil {
			err = ErrServiceUnavailable
		}
		h.logger.Warn("catalog refresh failed, entering fallback mode", "error", err)
		h.plugins.EmitCatalogUnavailable(ctx, err)
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	h.mu.Lock()
	h.products = products
	h.serviceAvailable = true
	h.mu.Unlock()

	elapsed := time.Since(start)
	h.plugins.EmitCatalogRefreshed(ctx, len(products), elapsed)
	h.logger.Debug("catalog refreshed",
		"products", len(products),
		"elapsed_ms", elapsed.Milliseconds(),
	)

	return nil
}

func (h *Helper) setServiceAvailable(available bool) {
	h.mu.Lock()
	h.serviceAvailable = available
	h.mu.Unlock()
}

// IsServiceAvailable reports whether the last catalog refresh succeeded.
func (h *Helper) IsServiceAvailable() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.serviceAvailable
}

// Products returns the current catalog snapshot, nil before the first
// successful refresh.
func (h *Helper) Products() product.Catalog {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make(product.Catalog, len(h.products))
	copy(out, h.products)
	return out
}

// Product looks up one catalog entry by id.
func (h *Helper) Product(productID product.ID) (product.Product, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.products.ByID(productID)
}

// ──────────────────────────────────────────────────
// Entitlement checks
// ──────────────────────────────────────────────────

// IsPurchased reports whether the user is entitled to a product.
//
// The decision procedure, in order: a helper that was never started
// answers false; with the storefront unavailable or the catalog empty,
// only the fallback list is consulted; a product the catalog does not
// know is not purchased; a consumable is purchased iff its ledger count
// is positive; anything else is decided by the platform's current
// entitlement, which must verify. A present entitlement that fails
// verification raises ErrTransactionVerificationFailed rather than
// answering — unauthenticated transactions never unlock content.
func (h *Helper) IsPurchased(ctx context.Context, productID product.ID) (bool, error) {
	h.mu.Lock()
	started := h.started
	available := h.serviceAvailable
	catalogEmpty := len(h.products) == 0
	p, known := h.products.ByID(productID)
	h.mu.Unlock()

	if !started {
		h.logger.Warn("isPurchased called before start", "product_id", productID)
		return false, nil
	}

	if !available || catalogEmpty {
		purchased := h.fallbackContains(ctx, productID)
		h.plugins.EmitEntitlementChecked(ctx, string(productID), purchased)
		return purchased, nil
	}

	if !known {
		h.syncEntitlement(ctx, productID, false)
		h.plugins.EmitEntitlementChecked(ctx, string(productID), false)
		return false, nil
	}

	if p.Type == product.TypeConsumable {
		count, err := h.ledger.Count(ctx, productID)
		if err != nil {
			h.logger.Error("consumable ledger read failed", "product_id", productID, "error", err)
			count = 0
		}
		purchased := count > 0
		h.syncEntitlement(ctx, productID, purchased)
		h.plugins.EmitEntitlementChecked(ctx, string(productID), purchased)
		return purchased, nil
	}

	ent, err := h.service.CurrentEntitlement(ctx, productID)
	if err != nil {
		h.logger.Warn("entitlement lookup failed, consulting fallback list", "product_id", productID, "error", err)
		purchased := h.fallbackContains(ctx, productID)
		h.plugins.EmitEntitlementChecked(ctx, string(productID), purchased)
		return purchased, nil
	}
	if ent == nil {
		h.syncEntitlement(ctx, productID, false)
		h.plugins.EmitEntitlementChecked(ctx, string(productID), false)
		return false, nil
	}

	u := ent.Unwrap()
	if !u.Verified {
		h.plugins.EmitTransactionUnverified(ctx, string(productID), u.Err)
		return false, fmt.Errorf("%w: %v", ErrTransactionVerificationFailed, u.Err)
	}

	purchased := u.Value.Entitles()
	h.syncEntitlement(ctx, productID, purchased)
	h.plugins.EmitEntitlementChecked(ctx, string(productID), purchased)
	return purchased, nil
}

// fallbackContains consults only the persisted fallback list.
func (h *Helper) fallbackContains(ctx context.Context, productID product.ID) bool {
	ids, err := h.fallback.Load(ctx)
	if err != nil {
		h.logger.Error("failed to load fallback list", "error", err)
		return false
	}
	for _, pid := range ids {
		if pid == productID {
			return true
		}
	}
	return false
}

// CurrentEntitlements returns the ids of every product with a verified
// current entitlement. Unverified entitlements are ignored, not raised.
func (h *Helper) CurrentEntitlements(ctx context.Context) ([]product.ID, error) {
	h.mu.Lock()
	started := h.started
	h.mu.Unlock()
	if !started {
		return nil, ErrNotStarted
	}

	seen := entitlement.NewSet()
	for result := range h.service.CurrentEntitlements(ctx) {
		u := result.Unwrap()
		if !u.Verified {
			continue
		}
		if u.Value.Entitles() {
			seen.Insert(u.Value.ProductID)
		}
	}
	return seen.Values(), nil
}

// PurchaseInfo returns the latest verified transaction for a
// non-consumable, nil for consumables and unverified or absent
// transactions.
func (h *Helper) PurchaseInfo(ctx context.Context, productID product.ID) (*transaction.Transaction, error) {
	p, ok := h.Product(productID)
	if !ok || p.Type == product.TypeConsumable {
		return nil, nil
	}
	return h.MostRecentTransaction(ctx, productID)
}

// MostRecentTransaction returns the latest verified transaction for a
// product, nil when there is none or it is unverified.
func (h *Helper) MostRecentTransaction(ctx context.Context, productID product.ID) (*transaction.Transaction, error) {
	latest, err := h.service.LatestTransaction(ctx, productID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}
	u := latest.Unwrap()
	if !u.Verified {
		return nil, nil
	}
	txn := u.Value
	return &txn, nil
}

// MostRecentTransactionID returns the id of the latest verified
// transaction for a product, the nil id when there is none.
func (h *Helper) MostRecentTransactionID(ctx context.Context, productID product.ID) (id.TransactionID, error) {
	txn, err := h.MostRecentTransaction(ctx, productID)
	if err != nil || txn == nil {
		return id.TransactionID{}, err
	}
	return txn.ID, nil
}

// ──────────────────────────────────────────────────
// Purchasing
// ──────────────────────────────────────────────────

// Purchase runs the purchase flow for one product and returns the
// verified transaction (on success), the terminal purchase state, and an
// error for failure states that callers must handle. Only one purchase
// may be in flight at a time; a concurrent attempt fails with
// ErrPurchaseInProgress and leaves the purchased set untouched.
func (h *Helper) Purchase(ctx context.Context, p product.Product, opts ...appstore.PurchaseOption) (*transaction.Transaction, PurchaseState, error) {
	h.mu.Lock()
	if !h.started {
		h.mu.Unlock()
		h.logger.Warn("purchase attempted before start", "product_id", p.ID)
		return nil, StateNotStarted, nil
	}
	if h.purchaseState == StateInProgress {
		h.mu.Unlock()
		return nil, StateInProgress, ErrPurchaseInProgress
	}
	// Claim the in-flight slot before releasing the lock; a concurrent
	// caller must observe inProgress the moment this one is committed.
	h.purchaseState = StateInProgress
	h.mu.Unlock()

	if !h.service.CanMakePayments(ctx) {
		h.setPurchaseState(StateUserCannotMakePayments)
		return nil, StateUserCannotMakePayments, nil
	}

	result, err := h.service.Purchase(ctx, p.ID, opts...)
	if err != nil {
		h.setPurchaseState(StateFailed)
		h.plugins.EmitPurchaseFailed(ctx, string(p.ID), string(StateFailed), err)
		return nil, StateFailed, fmt.Errorf("%w: %v", ErrPurchaseFailed, err)
	}

	switch result.Outcome {
	case appstore.OutcomeCancelled:
		h.setPurchaseState(StateCancelled)
		return nil, StateCancelled, nil

	case appstore.OutcomePending:
		h.setPurchaseState(StatePending)
		return nil, StatePending, nil

	case appstore.OutcomeSuccess:
		return h.completePurchase(ctx, p, result)

	default:
		h.setPurchaseState(StateUnknown)
		return nil, StateUnknown, nil
	}
}

// completePurchase verifies and applies a successful platform purchase.
func (h *Helper) completePurchase(ctx context.Context, p product.Product, result appstore.PurchaseResult) (*transaction.Transaction, PurchaseState, error) {
	if result.Verification == nil {
		h.setPurchaseState(StateUnknown)
		return nil, StateUnknown, nil
	}

	u := result.Verification.Unwrap()
	if !u.Verified {
		h.setPurchaseState(StateFailedVerification)
		h.plugins.EmitTransactionUnverified(ctx, string(p.ID), u.Err)
		h.plugins.EmitPurchaseFailed(ctx, string(p.ID), string(StateFailedVerification), u.Err)
		return nil, StateFailedVerification, fmt.Errorf("%w: %v", ErrTransactionVerificationFailed, u.Err)
	}
	txn := u.Value

	h.syncEntitlement(ctx, p.ID, true)

	if err := h.service.Finish(ctx, txn.ID); err != nil {
		h.logger.Error("failed to finish transaction", "transaction_id", txn.ID, "error", err)
	}

	// The platform does not track consumable counts; the local ledger is
	// the only record. A ledger write failure is logged, not raised: the
	// purchase already succeeded at the platform level.
	if p.Type == product.TypeConsumable {
		if err := h.ledger.Purchase(ctx, p.ID); err != nil {
			h.logger.Error("consumable ledger write failed", "product_id", p.ID, "error", err)
		} else if count, err := h.ledger.Count(ctx, p.ID); err == nil {
			h.plugins.EmitConsumableChanged(ctx, string(p.ID), count)
		}
	}

	h.setPurchaseState(StatePurchased)
	h.plugins.EmitPurchaseSucceeded(ctx, txn)
	h.logger.Info("purchase complete",
		"product_id", p.ID,
		"transaction_id", txn.ID,
	)

	return &txn, StatePurchased, nil
}

func (h *Helper) setPurchaseState(state PurchaseState) {
	h.mu.Lock()
	h.purchaseState = state
	h.mu.Unlock()
}

// PurchaseState returns the state of the most recent purchase attempt.
func (h *Helper) PurchaseState() PurchaseState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.purchaseState
}

// ProductPurchased records a purchase observed outside the helper's own
// flow, such as a storefront promotion completed by a companion process.
func (h *Helper) ProductPurchased(ctx context.Context, productID product.ID) {
	h.syncEntitlement(ctx, productID, true)
	h.setPurchaseState(StatePurchased)
}

// ──────────────────────────────────────────────────
// Consumables
// ──────────────────────────────────────────────────

// ConsumableCount returns the ledger count for a consumable.
func (h *Helper) ConsumableCount(ctx context.Context, productID product.ID) (int, error) {
	return h.ledger.Count(ctx, productID)
}

// ExpireConsumable consumes one unit of a consumable, floored at zero,
// and re-syncs the derived entitlement.
func (h *Helper) ExpireConsumable(ctx context.Context, productID product.ID) error {
	if err := h.ledger.Expire(ctx, productID); err != nil {
		return err
	}
	count, err := h.ledger.Count(ctx, productID)
	if err != nil {
		return err
	}
	h.plugins.EmitConsumableChanged(ctx, string(productID), count)
	h.syncEntitlement(ctx, productID, count > 0)
	return nil
}

// ResetConsumables clears the ledger entries for the configured
// consumable ids and returns the ids removed. Debug use only.
func (h *Helper) ResetConsumables(ctx context.Context) ([]product.ID, error) {
	removed, err := h.ledger.Reset(ctx, h.ConsumableProductIDs())
	if err != nil {
		return nil, err
	}
	for _, pid := range removed {
		h.syncEntitlement(ctx, pid, false)
	}
	return removed, nil
}

// ──────────────────────────────────────────────────
// Purchased set bookkeeping
// ──────────────────────────────────────────────────

// PurchasedProductIDs returns the current purchased set, in insertion
// order.
func (h *Helper) PurchasedProductIDs() []product.ID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.purchased.Values()
}

// UpdatePurchasedIdentifiers marks a product as purchased or not,
// mirroring the decision to the fallback list and the group-sync
// publisher. Insertion deduplicates and removal is idempotent.
func (h *Helper) UpdatePurchasedIdentifiers(ctx context.Context, productID product.ID, insert bool) {
	h.syncEntitlement(ctx, productID, insert)
}

// syncEntitlement applies one entitlement decision everywhere it is
// mirrored: the in-memory set, the fallback list, and the group-sync
// publisher. Mirror write failures are logged, never raised.
func (h *Helper) syncEntitlement(ctx context.Context, productID product.ID, purchased bool) {
	h.mu.Lock()
	var changed bool
	if purchased {
		changed = h.purchased.Insert(productID)
	} else {
		changed = h.purchased.Remove(productID)
	}
	ids := h.purchased.Values()
	h.mu.Unlock()

	if err := h.fallback.Save(ctx, ids); err != nil {
		h.logger.Error("failed to save fallback list", "error", err)
	}
	if err := h.groupSync.SetPurchased(ctx, productID, purchased); err != nil {
		h.logger.Error("group sync publish failed", "product_id", productID, "error", err)
	}

	if changed {
		h.notify(Change{ProductID: productID, Purchased: purchased})
	}
}

// notify publishes a change without blocking; observers that fall behind
// miss updates rather than stalling reconciliation.
func (h *Helper) notify(change Change) {
	select {
	case h.changes <- change:
	default:
		h.logger.Warn("change notification dropped", "product_id", change.ProductID)
	}
}

// Changes returns the entitlement change-notification channel. One
// Change is published for every observable mutation of the purchased
// set.
func (h *Helper) Changes() <-chan Change {
	return h.changes
}

// ──────────────────────────────────────────────────
// Transaction listener
// ──────────────────────────────────────────────────

// transactionWorker consumes the platform update stream one event at a
// time, in arrival order, for the life of the helper.
func (h *Helper) transactionWorker(ctx context.Context) {
	defer h.wg.Done()

	updates := h.service.TransactionUpdates(ctx)
	for {
		select {
		case <-h.stopChan:
			return
		case result, ok := <-updates:
			if !ok {
				return
			}
			h.applyUpdate(ctx, result)
		}
	}
}

// applyUpdate verifies one streamed transaction and reconciles the
// purchased set. Unverified transactions are discarded without being
// finished, so the platform redelivers them later.
func (h *Helper) applyUpdate(ctx context.Context, result verifyResult) {
	u := result.Unwrap()
	if !u.Verified {
		h.logger.Warn("unverified transaction on update stream",
			"product_id", u.Value.ProductID,
			"error", u.Err,
		)
		h.plugins.EmitTransactionUnverified(ctx, string(u.Value.ProductID), u.Err)
		return
	}

	txn := u.Value
	h.syncEntitlement(ctx, txn.ProductID, txn.Entitles())

	if txn.Revoked() {
		h.plugins.EmitTransactionRevoked(ctx, txn)
		h.logger.Info("transaction revoked",
			"product_id", txn.ProductID,
			"reason", txn.RevocationReason,
		)
	} else {
		h.plugins.EmitTransactionReceived(ctx, txn)
	}

	if err := h.service.Finish(ctx, txn.ID); err != nil {
		h.logger.Error("failed to finish transaction", "transaction_id", txn.ID, "error", err)
	}
}

// ──────────────────────────────────────────────────
// Catalog accessors
// ──────────────────────────────────────────────────

// ConsumableProducts returns the catalog's consumable entries.
func (h *Helper) ConsumableProducts() product.Catalog {
	return h.Products().Consumables()
}

// NonConsumableProducts returns the catalog's non-consumable entries.
func (h *Helper) NonConsumableProducts() product.Catalog {
	return h.Products().NonConsumables()
}

// SubscriptionProducts returns the catalog's auto-renewable entries.
func (h *Helper) SubscriptionProducts() product.Catalog {
	return h.Products().Subscriptions()
}

// NonRenewingProducts returns the catalog's non-renewing subscription
// entries.
func (h *Helper) NonRenewingProducts() product.Catalog {
	return h.Products().NonRenewing()
}

// NonSubscriptionProducts returns the catalog entries that are not
// subscriptions of any kind.
func (h *Helper) NonSubscriptionProducts() product.Catalog {
	return h.Products().NonSubscriptions()
}

// ConsumableProductIDs returns the configured consumable ids in catalog
// order.
func (h *Helper) ConsumableProductIDs() []product.ID {
	return h.ConsumableProducts().IDs()
}

// NonConsumableProductIDs returns the configured non-consumable ids in
// catalog order.
func (h *Helper) NonConsumableProductIDs() []product.ID {
	return h.NonConsumableProducts().IDs()
}

// ──────────────────────────────────────────────────
// Subscriptions
// ──────────────────────────────────────────────────

// Subscriptions returns the tier resolver bound to this helper.
func (h *Helper) Subscriptions() *subscription.Helper {
	return h.subs
}

// SubscriptionProductIDs implements subscription.Owner: the configured
// auto-renewable ids in catalog order.
func (h *Helper) SubscriptionProductIDs() []product.ID {
	return h.SubscriptionProducts().IDs()
}

// SubscriptionInfo implements subscription.Owner. It resolves the
// highest currently-subscribed tier of a group: statuses whose
// transaction or renewal info fails verification are discarded, as are
// states other than subscribed and products outside the group. Nil when
// no candidate remains.
func (h *Helper) SubscriptionInfo(ctx context.Context, group string) (*subscription.Info, error) {
	ids := h.subs.SubscriptionsIn(group)
	if len(ids) == 0 {
		return nil, nil
	}

	// Statuses cover the whole group regardless of which member id is
	// asked about.
	statuses, err := h.service.SubscriptionStatus(ctx, ids[0])
	if err != nil {
		return nil, err
	}

	var best *subscription.Info
	bestLevel := -1
	for i := range statuses {
		status := statuses[i]
		if status.State != appstore.RenewalStateSubscribed {
			continue
		}
		txnU := status.Transaction.Unwrap()
		renewU := status.RenewalInfo.Unwrap()
		if !txnU.Verified || !renewU.Verified {
			continue
		}
		pid := txnU.Value.ProductID
		if g, ok := subscription.GroupName(pid); !ok || g != group {
			continue
		}
		p, ok := h.Product(pid)
		if !ok {
			continue
		}
		level := h.subs.ServiceLevel(group, pid)
		if level > bestLevel {
			txn := txnU.Value
			renew := renewU.Value
			bestLevel = level
			best = &subscription.Info{
				Product:                   p,
				Group:                     group,
				LatestVerifiedTransaction: &txn,
				RenewalInfo:               &renew,
				Status:                    &status,
			}
		}
	}
	return best, nil
}

// GroupSubscriptionInfo resolves the top-tier subscription of every
// configured group.
func (h *Helper) GroupSubscriptionInfo(ctx context.Context) ([]*subscription.Info, error) {
	return h.subs.GroupSubscriptionInfo(ctx)
}

// ──────────────────────────────────────────────────
// Configuration values
// ──────────────────────────────────────────────────

// ConfigValue resolves a recognized configuration setting through the
// injected provider, falling back to the built-in defaults.
func (h *Helper) ConfigValue(key config.Key) string {
	return config.Resolve(h.provider, key)
}
