// Package fallback persists the most recent list of purchased product
// ids, so entitlement checks have an answer when the storefront cannot
// be reached at startup.
//
// The list is a cache of last-known state, not a source of truth; it is
// overwritten on every successful reconciliation.
package fallback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/quartzlabs/storehelper/product"
)

// DefaultFilename is the conventional name for the fallback file inside
// the application's data directory.
const DefaultFilename = "purchased_products.json"

// Store persists the fallback list of purchased product ids.
type Store interface {
	// Load returns the saved list, empty if nothing has been saved yet.
	Load(ctx context.Context) ([]product.ID, error)

	// Save replaces the saved list.
	Save(ctx context.Context, productIDs []product.ID) error
}

// ─────────────────────────────────────────────────────────────────────────────
// Memory store
// ─────────────────────────────────────────────────────────────────────────────

// Memory is an in-memory Store, used as the default and in tests.
type Memory struct {
	mu  sync.Mutex
	ids []product.ID
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Load(_ context.Context) ([]product.ID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]product.ID, len(m.ids))
	copy(out, m.ids)
	return out, nil
}

func (m *Memory) Save(_ context.Context, productIDs []product.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ids = make([]product.ID, len(productIDs))
	copy(m.ids, productIDs)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// File store
// ─────────────────────────────────────────────────────────────────────────────

// File persists the list as a JSON array at a fixed path.
type File struct {
	mu   sync.Mutex
	path string
}

var _ Store = (*File)(nil)

// NewFile creates a file-backed store at path. The file is created on
// first Save; a missing file loads as an empty list.
func NewFile(path string) *File { return &File{path: path} }

func (f *File) Load(_ context.Context) ([]product.ID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fallback: read %s: %w", f.path, err)
	}

	var ids []product.ID
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("fallback: decode %s: %w", f.path, err)
	}
	return ids, nil
}

func (f *File) Save(_ context.Context, productIDs []product.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if productIDs == nil {
		productIDs = []product.ID{}
	}
	data, err := json.Marshal(productIDs)
	if err != nil {
		return fmt.Errorf("fallback: encode: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("fallback: create dir %s: %w", dir, err)
		}
	}

	// Write-then-rename keeps the previous list intact if the process
	// dies mid-write.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("fallback: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("fallback: rename %s: %w", tmp, err)
	}
	return nil
}
