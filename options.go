package storehelper

import (
	"log/slog"

	"github.com/quartzlabs/storehelper/config"
	"github.com/quartzlabs/storehelper/consumable"
	"github.com/quartzlabs/storehelper/fallback"
	"github.com/quartzlabs/storehelper/groupsync"
	"github.com/quartzlabs/storehelper/plugin"
	"github.com/quartzlabs/storehelper/product"
)

// Option configures a Helper instance.
type Option func(*Helper)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Helper) {
		h.logger = logger
		h.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(h *Helper) {
		_ = h.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithConsumableStore sets the consumable ledger driver. Defaults to the
// in-memory driver. The caller keeps ownership of an injected store and
// closes it after stopping the helper.
func WithConsumableStore(s consumable.Store) Option {
	return func(h *Helper) {
		h.ledger = s
		h.ownsLedger = false
	}
}

// WithFallbackStore sets the fallback-list driver. Defaults to the
// in-memory driver.
func WithFallbackStore(s fallback.Store) Option {
	return func(h *Helper) {
		h.fallback = s
	}
}

// WithGroupSync sets the cross-process purchase-flag publisher. Defaults
// to the no-op publisher.
func WithGroupSync(p groupsync.Publisher) Option {
	return func(h *Helper) {
		h.groupSync = p
	}
}

// WithConfigProvider sets the configuration override strategy.
func WithConfigProvider(p config.Provider) Option {
	return func(h *Helper) {
		h.provider = p
	}
}

// WithProductIDs sets the ordered catalog of product ids to request from
// the platform.
func WithProductIDs(ids ...product.ID) Option {
	return func(h *Helper) {
		h.productIDs = ids
	}
}

// WithProductsFile loads the ordered product-id catalog from a YAML
// resource. A missing or empty file is logged and leaves the catalog
// unconfigured; the helper continues in degraded mode.
func WithProductsFile(path string) Option {
	return func(h *Helper) {
		ids, err := config.Products(path)
		if err != nil {
			h.logger.Error("failed to load products file", "path", path, "error", err)
			return
		}
		h.productIDs = ids
	}
}
