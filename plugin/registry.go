package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit                  []OnInit
	onShutdown              []OnShutdown
	onCatalogRefreshed      []OnCatalogRefreshed
	onCatalogUnavailable    []OnCatalogUnavailable
	onTransactionReceived   []OnTransactionReceived
	onTransactionRevoked    []OnTransactionRevoked
	onTransactionUnverified []OnTransactionUnverified
	onPurchaseSucceeded     []OnPurchaseSucceeded
	onPurchaseFailed        []OnPurchaseFailed
	onEntitlementChecked    []OnEntitlementChecked
	onConsumableChanged     []OnConsumableChanged
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{logger: slog.Default()}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnCatalogRefreshed); ok {
		r.onCatalogRefreshed = append(r.onCatalogRefreshed, v)
	}
	if v, ok := p.(OnCatalogUnavailable); ok {
		r.onCatalogUnavailable = append(r.onCatalogUnavailable, v)
	}
	if v, ok := p.(OnTransactionReceived); ok {
		r.onTransactionReceived = append(r.onTransactionReceived, v)
	}
	if v, ok := p.(OnTransactionRevoked); ok {
		r.onTransactionRevoked = append(r.onTransactionRevoked, v)
	}
	if v, ok := p.(OnTransactionUnverified); ok {
		r.onTransactionUnverified = append(r.onTransactionUnverified, v)
	}
	if v, ok := p.(OnPurchaseSucceeded); ok {
		r.onPurchaseSucceeded = append(r.onPurchaseSucceeded, v)
	}
	if v, ok := p.(OnPurchaseFailed); ok {
		r.onPurchaseFailed = append(r.onPurchaseFailed, v)
	}
	if v, ok := p.(OnEntitlementChecked); ok {
		r.onEntitlementChecked = append(r.onEntitlementChecked, v)
	}
	if v, ok := p.(OnConsumableChanged); ok {
		r.onConsumableChanged = append(r.onConsumableChanged, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	// Check each interface
	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	// List all interfaces to check
	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnCatalogRefreshed)(nil)).Elem(), "OnCatalogRefreshed")
	checkInterface(reflect.TypeOf((*OnCatalogUnavailable)(nil)).Elem(), "OnCatalogUnavailable")
	checkInterface(reflect.TypeOf((*OnTransactionReceived)(nil)).Elem(), "OnTransactionReceived")
	checkInterface(reflect.TypeOf((*OnTransactionRevoked)(nil)).Elem(), "OnTransactionRevoked")
	checkInterface(reflect.TypeOf((*OnTransactionUnverified)(nil)).Elem(), "OnTransactionUnverified")
	checkInterface(reflect.TypeOf((*OnPurchaseSucceeded)(nil)).Elem(), "OnPurchaseSucceeded")
	checkInterface(reflect.TypeOf((*OnPurchaseFailed)(nil)).Elem(), "OnPurchaseFailed")
	checkInterface(reflect.TypeOf((*OnEntitlementChecked)(nil)).Elem(), "OnEntitlementChecked")
	checkInterface(reflect.TypeOf((*OnConsumableChanged)(nil)).Elem(), "OnConsumableChanged")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, helper interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, helper)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitCatalogRefreshed emits a catalog refreshed event.
func (r *Registry) EmitCatalogRefreshed(ctx context.Context, count int, elapsed time.Duration) {
	r.mu.RLock()
	plugins := r.onCatalogRefreshed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnCatalogRefreshed(ctx, count, elapsed)
		}); err != nil {
			r.logger.Warn("plugin OnCatalogRefreshed failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitCatalogUnavailable emits a catalog unavailable event.
func (r *Registry) EmitCatalogUnavailable(ctx context.Context, cause error) {
	r.mu.RLock()
	plugins := r.onCatalogUnavailable
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnCatalogUnavailable(ctx, cause)
		}); err != nil {
			r.logger.Warn("plugin OnCatalogUnavailable failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitTransactionReceived emits a transaction received event.
func (r *Registry) EmitTransactionReceived(ctx context.Context, txn interface{}) {
	r.mu.RLock()
	plugins := r.onTransactionReceived
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnTransactionReceived(ctx, txn)
		}); err != nil {
			r.logger.Warn("plugin OnTransactionReceived failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitTransactionRevoked emits a transaction revoked event.
func (r *Registry) EmitTransactionRevoked(ctx context.Context, txn interface{}) {
	r.mu.RLock()
	plugins := r.onTransactionRevoked
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnTransactionRevoked(ctx, txn)
		}); err != nil {
			r.logger.Warn("plugin OnTransactionRevoked failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitTransactionUnverified emits a transaction unverified event.
func (r *Registry) EmitTransactionUnverified(ctx context.Context, productID string, cause error) {
	r.mu.RLock()
	plugins := r.onTransactionUnverified
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnTransactionUnverified(ctx, productID, cause)
		}); err != nil {
			r.logger.Warn("plugin OnTransactionUnverified failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPurchaseSucceeded emits a purchase succeeded event.
func (r *Registry) EmitPurchaseSucceeded(ctx context.Context, txn interface{}) {
	r.mu.RLock()
	plugins := r.onPurchaseSucceeded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPurchaseSucceeded(ctx, txn)
		}); err != nil {
			r.logger.Warn("plugin OnPurchaseSucceeded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPurchaseFailed emits a purchase failed event.
func (r *Registry) EmitPurchaseFailed(ctx context.Context, productID, state string, cause error) {
	r.mu.RLock()
	plugins := r.onPurchaseFailed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPurchaseFailed(ctx, productID, state, cause)
		}); err != nil {
			r.logger.Warn("plugin OnPurchaseFailed failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitEntitlementChecked emits an entitlement checked event.
func (r *Registry) EmitEntitlementChecked(ctx context.Context, productID string, purchased bool) {
	r.mu.RLock()
	plugins := r.onEntitlementChecked
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnEntitlementChecked(ctx, productID, purchased)
		}); err != nil {
			r.logger.Warn("plugin OnEntitlementChecked failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitConsumableChanged emits a consumable changed event.
func (r *Registry) EmitConsumableChanged(ctx context.Context, productID string, count int) {
	r.mu.RLock()
	plugins := r.onConsumableChanged
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnConsumableChanged(ctx, productID, count)
		}); err != nil {
			r.logger.Warn("plugin OnConsumableChanged failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the purchase pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
