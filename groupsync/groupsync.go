// Package groupsync mirrors purchase flags into a store shared with
// companion processes (widgets, extensions), so they can answer "is this
// product purchased" without talking to the storefront themselves.
//
// The mirror is best-effort: it is written after entitlement changes and
// read by companions only. It never feeds back into reconciliation.
package groupsync

import (
	"context"
	"sync"

	"github.com/quartzlabs/storehelper/product"
)

// Publisher writes and reads purchase flags in the shared store.
type Publisher interface {
	// SetPurchased records whether productID is currently purchased.
	SetPurchased(ctx context.Context, productID product.ID, purchased bool) error

	// IsPurchased reads the recorded flag, false if never written.
	IsPurchased(ctx context.Context, productID product.ID) (bool, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// Noop publisher
// ─────────────────────────────────────────────────────────────────────────────

type noop struct{}

var _ Publisher = noop{}

// Noop returns a Publisher that discards writes and reads everything as
// not purchased. Used when no shared store is configured.
func Noop() Publisher { return noop{} }

func (noop) SetPurchased(context.Context, product.ID, bool) error { return nil }
func (noop) IsPurchased(context.Context, product.ID) (bool, error) {
	return false, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Memory publisher
// ─────────────────────────────────────────────────────────────────────────────

// Memory is an in-process Publisher, used in tests and single-process
// setups.
type Memory struct {
	mu    sync.RWMutex
	flags map[product.ID]bool
}

var _ Publisher = (*Memory)(nil)

// NewMemory creates an empty in-memory publisher.
func NewMemory() *Memory {
	return &Memory{flags: make(map[product.ID]bool)}
}

func (m *Memory) SetPurchased(_ context.Context, productID product.ID, purchased bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.flags[productID] = purchased
	return nil
}

func (m *Memory) IsPurchased(_ context.Context, productID product.ID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.flags[productID], nil
}
