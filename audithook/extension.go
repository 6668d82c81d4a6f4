// Package audithook bridges store helper lifecycle events to an audit
// trail backend.
//
// It defines a local Recorder interface so the package does not depend on
// any particular audit backend. Callers inject a RecorderFunc adapter
// that bridges to their backend at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quartzlabs/storehelper/plugin"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin                  = (*Extension)(nil)
	_ plugin.OnCatalogRefreshed      = (*Extension)(nil)
	_ plugin.OnCatalogUnavailable    = (*Extension)(nil)
	_ plugin.OnTransactionReceived   = (*Extension)(nil)
	_ plugin.OnTransactionRevoked    = (*Extension)(nil)
	_ plugin.OnTransactionUnverified = (*Extension)(nil)
	_ plugin.OnPurchaseSucceeded     = (*Extension)(nil)
	_ plugin.OnPurchaseFailed        = (*Extension)(nil)
	_ plugin.OnEntitlementChecked    = (*Extension)(nil)
	_ plugin.OnConsumableChanged     = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// It is defined locally so that the audithook package does not import a
// backend module — callers inject the concrete recorder at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges store helper lifecycle events to an audit trail
// backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Catalog hooks
// ──────────────────────────────────────────────────

// OnCatalogRefreshed implements plugin.OnCatalogRefreshed.
func (e *Extension) OnCatalogRefreshed(ctx context.Context, count int, _ time.Duration) error {
	return e.record(ctx, ActionCatalogRefreshed, SeverityInfo, OutcomeSuccess,
		ResourceCatalog, "", CategoryCommerce, nil,
		"product_count", count,
	)
}

// OnCatalogUnavailable implements plugin.OnCatalogUnavailable.
func (e *Extension) OnCatalogUnavailable(ctx context.Context, cause error) error {
	return e.record(ctx, ActionCatalogUnavailable, SeverityWarning, OutcomeFailure,
		ResourceCatalog, "", CategoryCommerce, cause,
		"event", "catalog_unavailable",
	)
}

// ──────────────────────────────────────────────────
// Transaction stream hooks
// ──────────────────────────────────────────────────

// OnTransactionReceived implements plugin.OnTransactionReceived.
func (e *Extension) OnTransactionReceived(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionTransactionReceived, SeverityInfo, OutcomeSuccess,
		ResourceTransaction, "", CategoryCommerce, nil,
		"event", "transaction_received",
	)
}

// OnTransactionRevoked implements plugin.OnTransactionRevoked.
func (e *Extension) OnTransactionRevoked(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionTransactionRevoked, SeverityWarning, OutcomeSuccess,
		ResourceTransaction, "", CategoryAccess, nil,
		"event", "transaction_revoked",
	)
}

// OnTransactionUnverified implements plugin.OnTransactionUnverified.
func (e *Extension) OnTransactionUnverified(ctx context.Context, productID string, cause error) error {
	return e.record(ctx, ActionTransactionUnverified, SeverityCritical, OutcomeFailure,
		ResourceTransaction, productID, CategoryTrust, cause,
		"product_id", productID,
	)
}

// ──────────────────────────────────────────────────
// Purchase hooks
// ──────────────────────────────────────────────────

// OnPurchaseSucceeded implements plugin.OnPurchaseSucceeded.
func (e *Extension) OnPurchaseSucceeded(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionPurchaseSucceeded, SeverityInfo, OutcomeSuccess,
		ResourcePurchase, "", CategoryCommerce, nil,
		"event", "purchase_succeeded",
	)
}

// OnPurchaseFailed implements plugin.OnPurchaseFailed.
func (e *Extension) OnPurchaseFailed(ctx context.Context, productID, state string, cause error) error {
	return e.record(ctx, ActionPurchaseFailed, SeverityError, OutcomeFailure,
		ResourcePurchase, productID, CategoryCommerce, cause,
		"product_id", productID,
		"state", state,
	)
}

// ──────────────────────────────────────────────────
// Entitlement hooks
// ──────────────────────────────────────────────────

// OnEntitlementChecked implements plugin.OnEntitlementChecked.
func (e *Extension) OnEntitlementChecked(ctx context.Context, productID string, purchased bool) error {
	// Only audit denied checks to reduce noise.
	if purchased {
		return nil
	}
	return e.record(ctx, ActionEntitlementDenied, SeverityInfo, OutcomeFailure,
		ResourceEntitlement, productID, CategoryAccess, nil,
		"product_id", productID,
	)
}

// OnConsumableChanged implements plugin.OnConsumableChanged.
func (e *Extension) OnConsumableChanged(ctx context.Context, productID string, count int) error {
	return e.record(ctx, ActionConsumableChanged, SeverityInfo, OutcomeSuccess,
		ResourceConsumable, productID, CategoryCommerce, nil,
		"product_id", productID,
		"count", count,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audithook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
