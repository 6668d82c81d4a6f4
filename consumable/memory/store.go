// Package memory provides an in-memory consumable ledger, used as the
// default driver and in tests.
package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/quartzlabs/storehelper/consumable"
	"github.com/quartzlabs/storehelper/product"
)

// compile-time interface check
var _ consumable.Store = (*Store)(nil)

// Store implements consumable.Store backed by a map.
// Counts are held as decimal strings, matching the persistent drivers.
type Store struct {
	mu     sync.RWMutex
	counts map[product.ID]string
}

// New creates an empty in-memory ledger.
func New() *Store {
	return &Store{counts: make(map[product.ID]string)}
}

func (s *Store) Purchase(_ context.Context, productID product.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counts[productID] = strconv.Itoa(parseCount(s.counts[productID]) + 1)
	return nil
}

func (s *Store) Expire(_ context.Context, productID product.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.counts[productID]; !ok {
		return nil
	}

	count := parseCount(s.counts[productID]) - 1
	if count < 0 {
		count = 0
	}
	s.counts[productID] = strconv.Itoa(count)
	return nil
}

func (s *Store) Count(_ context.Context, productID product.ID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return parseCount(s.counts[productID]), nil
}

func (s *Store) All(_ context.Context, productIDs []product.ID) ([]consumable.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []consumable.Entry
	for _, pid := range productIDs {
		if raw, ok := s.counts[pid]; ok {
			entries = append(entries, consumable.Entry{ProductID: pid, Count: parseCount(raw)})
		}
	}
	return entries, nil
}

func (s *Store) Delete(_ context.Context, entry consumable.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.counts, entry.ProductID)
	return nil
}

func (s *Store) Reset(_ context.Context, productIDs []product.ID) ([]product.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []product.ID
	for _, pid := range productIDs {
		if _, ok := s.counts[pid]; ok {
			delete(s.counts, pid)
			removed = append(removed, pid)
		}
	}
	return removed, nil
}

func (s *Store) Close() error { return nil }

// parseCount decodes a stored decimal string, treating missing or corrupt
// values as zero.
func parseCount(raw string) int {
	count, err := strconv.Atoi(raw)
	if err != nil || count < 0 {
		return 0
	}
	return count
}
