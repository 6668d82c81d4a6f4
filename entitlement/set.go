// Package entitlement holds the in-memory set of products the user
// currently has access to.
package entitlement

import "github.com/quartzlabs/storehelper/product"

// Set is an insertion-ordered, duplicate-free collection of product ids.
// It is ephemeral: the reconciler rebuilds it from authoritative sources
// (verified transactions and the consumable ledger) and never persists it.
//
// Set is not safe for concurrent use; the reconciler serializes access.
type Set struct {
	order []product.ID
	index map[product.ID]struct{}
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{index: make(map[product.ID]struct{})}
}

// Insert adds productID at the end of the set.
// It reports whether the set changed; inserting a present id is a no-op.
func (s *Set) Insert(productID product.ID) bool {
	if _, ok := s.index[productID]; ok {
		return false
	}
	s.index[productID] = struct{}{}
	s.order = append(s.order, productID)
	return true
}

// Remove deletes productID from the set.
// It reports whether the set changed; removing an absent id is a no-op,
// so repeated removals are idempotent.
func (s *Set) Remove(productID product.ID) bool {
	if _, ok := s.index[productID]; !ok {
		return false
	}
	delete(s.index, productID)
	for i, existing := range s.order {
		if existing == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether productID is in the set.
func (s *Set) Contains(productID product.ID) bool {
	_, ok := s.index[productID]
	return ok
}

// Len returns the number of ids in the set.
func (s *Set) Len() int { return len(s.order) }

// Values returns the ids in insertion order. The returned slice is a copy.
func (s *Set) Values() []product.ID {
	if len(s.order) == 0 {
		return nil
	}
	out := make([]product.ID, len(s.order))
	copy(out, s.order)
	return out
}
