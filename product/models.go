// Package product defines the catalog models consumed from the app store
// service. Products are owned by the platform; the helper only caches
// snapshots of them.
package product

import (
	"github.com/quartzlabs/storehelper/types"
)

// ID uniquely identifies a product in the store catalog.
// Subscription IDs follow a dot-separated naming convention, e.g.
// "com.example.subscription.vip.gold".
type ID string

// Type classifies a product in the store catalog.
type Type string

const (
	// TypeConsumable products can be purchased repeatedly; the platform
	// does not retain their purchase history.
	TypeConsumable Type = "consumable"

	// TypeNonConsumable products are purchased once and entitle the user
	// indefinitely.
	TypeNonConsumable Type = "non_consumable"

	// TypeAutoRenewable products are subscriptions renewed automatically
	// by the platform until cancelled.
	TypeAutoRenewable Type = "auto_renewable"

	// TypeNonRenewing products are fixed-duration subscriptions that the
	// user must re-purchase manually.
	TypeNonRenewing Type = "non_renewing"
)

// Product is one localized catalog entry returned by the store service.
type Product struct {
	ID           ID          `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Type         Type        `json:"type"`
	Price        types.Money `json:"price"`
	DisplayPrice string      `json:"display_price"`
}

// IsSubscription reports whether the product is any kind of subscription.
func (p Product) IsSubscription() bool {
	return p.Type == TypeAutoRenewable || p.Type == TypeNonRenewing
}

// Catalog is a snapshot of localized products retrieved from the store.
// Order matches the configured product-id list.
type Catalog []Product

// ByID returns the product with the given id, if present exactly once.
func (c Catalog) ByID(productID ID) (Product, bool) {
	var (
		found   Product
		matches int
	)
	for _, p := range c {
		if p.ID == productID {
			found = p
			matches++
		}
	}
	if matches != 1 {
		return Product{}, false
	}
	return found, true
}

// FilterByType returns the products of the given type, preserving order.
func (c Catalog) FilterByType(t Type) Catalog {
	var out Catalog
	for _, p := range c {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}

// Consumables returns the consumable products.
func (c Catalog) Consumables() Catalog { return c.FilterByType(TypeConsumable) }

// NonConsumables returns the non-consumable products.
func (c Catalog) NonConsumables() Catalog { return c.FilterByType(TypeNonConsumable) }

// Subscriptions returns the auto-renewable subscription products.
func (c Catalog) Subscriptions() Catalog { return c.FilterByType(TypeAutoRenewable) }

// NonRenewing returns the non-renewing subscription products.
func (c Catalog) NonRenewing() Catalog { return c.FilterByType(TypeNonRenewing) }

// NonSubscriptions returns the products that are not subscriptions of
// any kind, preserving order.
func (c Catalog) NonSubscriptions() Catalog {
	var out Catalog
	for _, p := range c {
		if !p.IsSubscription() {
			out = append(out, p)
		}
	}
	return out
}

// IDs returns the product ids in catalog order.
func (c Catalog) IDs() []ID {
	if len(c) == 0 {
		return nil
	}
	out := make([]ID, 0, len(c))
	for _, p := range c {
		out = append(out, p.ID)
	}
	return out
}
