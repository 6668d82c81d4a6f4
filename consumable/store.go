// Package consumable defines the local purchase-count ledger for
// consumable products.
//
// The platform does not retain consumable transaction history, so the
// count of each consumable the user still holds is tracked locally: the
// count is incremented on each purchase and decremented on each expiry
// (consumption), never below zero. Counts are the local source of truth
// for consumable entitlement — there is no server-side reconciliation
// across devices, by platform limitation.
package consumable

import (
	"context"

	"github.com/quartzlabs/storehelper/product"
)

// Entry is the purchase count of a single consumable product.
type Entry struct {
	ProductID product.ID `json:"product_id"`
	Count     int        `json:"count"`
}

// Store is the ledger storage interface.
//
// Counts are encoded as UTF-8 decimal strings in the underlying store; a
// missing or corrupt entry reads as count 0, not as an error.
type Store interface {
	// Purchase increments the count for productID, creating the entry at 1
	// if absent.
	Purchase(ctx context.Context, productID product.ID) error

	// Expire decrements the count for productID, floored at zero. The
	// entry is kept when the count reaches zero. Expiring an absent or
	// zero-count id is a successful no-op.
	Expire(ctx context.Context, productID product.ID) error

	// Count returns the current count for productID, 0 if absent or
	// unparsable.
	Count(ctx context.Context, productID product.ID) (int, error)

	// All returns the entries for the ids of interest, nil if none of
	// them is present.
	All(ctx context.Context, productIDs []product.ID) ([]Entry, error)

	// Delete removes one entry. Used only for developer resets.
	Delete(ctx context.Context, entry Entry) error

	// Reset removes the entries for the given ids and returns the ids
	// actually removed. Used only for developer resets, never in the
	// production purchase flow.
	Reset(ctx context.Context, productIDs []product.ID) ([]product.ID, error)

	// Close releases any underlying resources.
	Close() error
}
