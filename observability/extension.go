// Package observability provides a metrics extension for the store
// helper that records lifecycle event counts via a MetricFactory.
package observability

import (
	"context"
	"time"

	"github.com/quartzlabs/storehelper/plugin"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin                  = (*MetricsExtension)(nil)
	_ plugin.OnInit                  = (*MetricsExtension)(nil)
	_ plugin.OnCatalogRefreshed      = (*MetricsExtension)(nil)
	_ plugin.OnCatalogUnavailable    = (*MetricsExtension)(nil)
	_ plugin.OnTransactionReceived   = (*MetricsExtension)(nil)
	_ plugin.OnTransactionRevoked    = (*MetricsExtension)(nil)
	_ plugin.OnTransactionUnverified = (*MetricsExtension)(nil)
	_ plugin.OnPurchaseSucceeded     = (*MetricsExtension)(nil)
	_ plugin.OnPurchaseFailed        = (*MetricsExtension)(nil)
	_ plugin.OnEntitlementChecked    = (*MetricsExtension)(nil)
	_ plugin.OnConsumableChanged     = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as an engine plugin to automatically track purchase metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Catalog metrics
	CatalogRefreshed      Counter
	CatalogUnavailable    Counter
	CatalogSize           Histogram
	CatalogRefreshLatency Histogram

	// Transaction stream metrics
	TransactionsReceived   Counter
	TransactionsRevoked    Counter
	TransactionsUnverified Counter

	// Purchase metrics
	PurchasesSucceeded Counter
	PurchasesFailed    Counter

	// Entitlement metrics
	EntitlementChecks  Counter
	EntitlementGranted Counter
	EntitlementDenied  Counter

	// Consumable metrics
	ConsumableChanges Counter
	ConsumableCount   Histogram
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Catalog metrics
		CatalogRefreshed:      factory.Counter("storehelper.catalog.refreshed"),
		CatalogUnavailable:    factory.Counter("storehelper.catalog.unavailable"),
		CatalogSize:           factory.Histogram("storehelper.catalog.size"),
		CatalogRefreshLatency: factory.Histogram("storehelper.catalog.refresh.latency_ms"),

		// Transaction stream metrics
		TransactionsReceived:   factory.Counter("storehelper.transaction.received"),
		TransactionsRevoked:    factory.Counter("storehelper.transaction.revoked"),
		TransactionsUnverified: factory.Counter("storehelper.transaction.unverified"),

		// Purchase metrics
		PurchasesSucceeded: factory.Counter("storehelper.purchase.succeeded"),
		PurchasesFailed:    factory.Counter("storehelper.purchase.failed"),

		// Entitlement metrics
		EntitlementChecks:  factory.Counter("storehelper.entitlement.checks"),
		EntitlementGranted: factory.Counter("storehelper.entitlement.granted"),
		EntitlementDenied:  factory.Counter("storehelper.entitlement.denied"),

		// Consumable metrics
		ConsumableChanges: factory.Counter("storehelper.consumable.changes"),
		ConsumableCount:   factory.Histogram("storehelper.consumable.count"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Catalog hooks
// ──────────────────────────────────────────────────

// OnCatalogRefreshed implements plugin.OnCatalogRefreshed.
func (m *MetricsExtension) OnCatalogRefreshed(_ context.Context, count int, elapsed time.Duration) error {
	m.CatalogRefreshed.Inc()
	m.CatalogSize.Observe(float64(count))
	m.CatalogRefreshLatency.Observe(float64(elapsed.Milliseconds()))
	return nil
}

// OnCatalogUnavailable implements plugin.OnCatalogUnavailable.
func (m *MetricsExtension) OnCatalogUnavailable(_ context.Context, _ error) error {
	m.CatalogUnavailable.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Transaction stream hooks
// ──────────────────────────────────────────────────

// OnTransactionReceived implements plugin.OnTransactionReceived.
func (m *MetricsExtension) OnTransactionReceived(_ context.Context, _ interface{}) error {
	m.TransactionsReceived.Inc()
	return nil
}

// OnTransactionRevoked implements plugin.OnTransactionRevoked.
func (m *MetricsExtension) OnTransactionRevoked(_ context.Context, _ interface{}) error {
	m.TransactionsRevoked.Inc()
	return nil
}

// OnTransactionUnverified implements plugin.OnTransactionUnverified.
func (m *MetricsExtension) OnTransactionUnverified(_ context.Context, _ string, _ error) error {
	m.TransactionsUnverified.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Purchase hooks
// ──────────────────────────────────────────────────

// OnPurchaseSucceeded implements plugin.OnPurchaseSucceeded.
func (m *MetricsExtension) OnPurchaseSucceeded(_ context.Context, _ interface{}) error {
	m.PurchasesSucceeded.Inc()
	return nil
}

// OnPurchaseFailed implements plugin.OnPurchaseFailed.
func (m *MetricsExtension) OnPurchaseFailed(_ context.Context, _, _ string, _ error) error {
	m.PurchasesFailed.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Entitlement hooks
// ──────────────────────────────────────────────────

// OnEntitlementChecked implements plugin.OnEntitlementChecked.
func (m *MetricsExtension) OnEntitlementChecked(_ context.Context, _ string, purchased bool) error {
	m.EntitlementChecks.Inc()
	if purchased {
		m.EntitlementGranted.Inc()
	} else {
		m.EntitlementDenied.Inc()
	}
	return nil
}

// OnConsumableChanged implements plugin.OnConsumableChanged.
func (m *MetricsExtension) OnConsumableChanged(_ context.Context, _ string, count int) error {
	m.ConsumableChanges.Inc()
	m.ConsumableCount.Observe(float64(count))
	return nil
}
