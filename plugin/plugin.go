// Package plugin provides an extensible plugin system for the store
// helper engine. Plugins can hook into purchase-lifecycle events to
// extend functionality.
package plugin

import (
	"context"
	"time"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the engine starts.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, helper interface{}) error
}

// OnShutdown is called when the engine is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Catalog hooks
// ──────────────────────────────────────────────────

// OnCatalogRefreshed is called after a successful catalog refresh.
type OnCatalogRefreshed interface {
	Plugin
	OnCatalogRefreshed(ctx context.Context, count int, elapsed time.Duration) error
}

// OnCatalogUnavailable is called when a catalog refresh fails and the
// engine enters fallback mode.
type OnCatalogUnavailable interface {
	Plugin
	OnCatalogUnavailable(ctx context.Context, err error) error
}

// ──────────────────────────────────────────────────
// Transaction stream hooks
// ──────────────────────────────────────────────────

// OnTransactionReceived is called for every verified transaction applied
// from the update stream.
type OnTransactionReceived interface {
	Plugin
	OnTransactionReceived(ctx context.Context, txn interface{}) error
}

// OnTransactionRevoked is called when an applied transaction carries a
// revocation.
type OnTransactionRevoked interface {
	Plugin
	OnTransactionRevoked(ctx context.Context, txn interface{}) error
}

// OnTransactionUnverified is called when a transaction fails
// verification and is discarded without acknowledgement.
type OnTransactionUnverified interface {
	Plugin
	OnTransactionUnverified(ctx context.Context, productID string, err error) error
}

// ──────────────────────────────────────────────────
// Purchase hooks
// ──────────────────────────────────────────────────

// OnPurchaseSucceeded is called after a purchase completes with a
// verified transaction.
type OnPurchaseSucceeded interface {
	Plugin
	OnPurchaseSucceeded(ctx context.Context, txn interface{}) error
}

// OnPurchaseFailed is called when a purchase ends in a failure state.
type OnPurchaseFailed interface {
	Plugin
	OnPurchaseFailed(ctx context.Context, productID, state string, err error) error
}

// ──────────────────────────────────────────────────
// Entitlement hooks
// ──────────────────────────────────────────────────

// OnEntitlementChecked is called after every entitlement decision.
type OnEntitlementChecked interface {
	Plugin
	OnEntitlementChecked(ctx context.Context, productID string, purchased bool) error
}

// OnConsumableChanged is called when a consumable ledger count moves.
type OnConsumableChanged interface {
	Plugin
	OnConsumableChanged(ctx context.Context, productID string, count int) error
}
