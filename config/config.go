// Package config supplies the static configuration surface: the ordered
// product-id catalog resource and a small override strategy for
// recognized settings.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/quartzlabs/storehelper/product"
)

// Sentinel errors for the products resource.
var (
	// ErrNotFound is returned when the products file does not exist.
	ErrNotFound = errors.New("config: products file not found")

	// ErrEmpty is returned when the products file contains no ids.
	ErrEmpty = errors.New("config: products file has no product ids")
)

// Key identifies a recognized configuration setting.
type Key string

const (
	// KeyAppGroupID is the shared container identifier used by the
	// group-sync publisher.
	KeyAppGroupID Key = "app_group_id"

	// KeyContactUsURL is the support contact page shown on purchase
	// failures.
	KeyContactUsURL Key = "contact_us_url"

	// KeyRequestRefundURL is the refund-request page for completed
	// purchases.
	KeyRequestRefundURL Key = "request_refund_url"
)

// Provider overrides recognized settings. Implementations return
// (value, true) for keys they answer and ("", false) to fall through to
// the defaults.
type Provider interface {
	Value(key Key) (string, bool)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(key Key) (string, bool)

func (f ProviderFunc) Value(key Key) (string, bool) { return f(key) }

// defaults hold the built-in values for recognized keys. Unset keys
// resolve to the empty string, meaning "feature not configured".
var defaults = map[Key]string{
	KeyAppGroupID:       "",
	KeyContactUsURL:     "",
	KeyRequestRefundURL: "",
}

// Resolve answers key through the provider first, then the built-in
// defaults. A nil provider resolves to defaults only.
func Resolve(provider Provider, key Key) string {
	if provider != nil {
		if v, ok := provider.Value(key); ok {
			return v
		}
	}
	return defaults[key]
}

// productsFile is the YAML layout of the catalog resource.
type productsFile struct {
	Products []string `yaml:"products"`
}

// Products reads the ordered catalog of product ids from the YAML
// resource at path. Order is preserved and duplicates are removed,
// keeping the first occurrence. A missing file returns ErrNotFound and
// an id-less file returns ErrEmpty; callers treat both as a degraded
// empty catalog, not a fatal condition.
func Products(path string) ([]product.ID, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var file productsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if len(file.Products) == 0 {
		return nil, ErrEmpty
	}

	seen := make(map[string]struct{}, len(file.Products))
	ids := make([]product.ID, 0, len(file.Products))
	for _, raw := range file.Products {
		if raw == "" {
			continue
		}
		if _, ok := seen[raw]; ok {
			continue
		}
		seen[raw] = struct{}{}
		ids = append(ids, product.ID(raw))
	}
	if len(ids) == 0 {
		return nil, ErrEmpty
	}
	return ids, nil
}
