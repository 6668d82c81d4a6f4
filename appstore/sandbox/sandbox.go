// Package sandbox implements appstore.Service as a scriptable in-memory
// storefront. Tests and demos script the catalog, entitlements, purchase
// outcomes, and the transaction stream, then assert on what the engine
// acknowledged.
package sandbox

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/quartzlabs/storehelper/appstore"
	"github.com/quartzlabs/storehelper/id"
	"github.com/quartzlabs/storehelper/product"
	"github.com/quartzlabs/storehelper/transaction"
	"github.com/quartzlabs/storehelper/verify"
)

// ErrUnavailable is returned by storefront calls after SetAvailable(false).
var ErrUnavailable = errors.New("sandbox: storefront unavailable")

// ErrUnknownProduct is returned when purchasing an id outside the catalog.
var ErrUnknownProduct = errors.New("sandbox: unknown product")

// compile-time interface check
var _ appstore.Service = (*Store)(nil)

// Store is the scriptable storefront. The zero value is not usable; use
// New.
type Store struct {
	mu sync.Mutex

	catalog      product.Catalog
	available    bool
	canPay       bool
	entitlements map[product.ID]verify.Result[transaction.Transaction]
	entOrder     []product.ID
	queued       map[product.ID][]purchaseScript
	statuses     map[product.ID][]appstore.SubscriptionStatus
	finished     []id.TransactionID

	updates chan verify.Result[transaction.Transaction]
	closed  bool
}

type purchaseScript struct {
	result appstore.PurchaseResult
	err    error
}

// New creates an available, payment-capable storefront with an empty
// catalog.
func New() *Store {
	return &Store{
		available:    true,
		canPay:       true,
		entitlements: make(map[product.ID]verify.Result[transaction.Transaction]),
		queued:       make(map[product.ID][]purchaseScript),
		statuses:     make(map[product.ID][]appstore.SubscriptionStatus),
		updates:      make(chan verify.Result[transaction.Transaction], 64),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Scripting surface
// ─────────────────────────────────────────────────────────────────────────────

// SetCatalog replaces the storefront catalog.
func (s *Store) SetCatalog(catalog product.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = catalog
}

// SetAvailable scripts storefront reachability. While unavailable every
// storefront call fails with ErrUnavailable.
func (s *Store) SetAvailable(available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.available = available
}

// SetCanMakePayments scripts the device payment capability.
func (s *Store) SetCanMakePayments(canPay bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canPay = canPay
}

// GrantEntitlement records result as the current entitlement for its
// product. Granting an id again replaces the earlier entitlement without
// changing its enumeration position.
func (s *Store) GrantEntitlement(result verify.Result[transaction.Transaction]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grantLocked(result)
}

func (s *Store) grantLocked(result verify.Result[transaction.Transaction]) {
	pid := result.Unwrap().Value.ProductID
	if _, ok := s.entitlements[pid]; !ok {
		s.entOrder = append(s.entOrder, pid)
	}
	s.entitlements[pid] = result
}

// RevokeEntitlement drops the current entitlement for productID.
func (s *Store) RevokeEntitlement(productID product.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entitlements[productID]; !ok {
		return
	}
	delete(s.entitlements, productID)
	for i, pid := range s.entOrder {
		if pid == productID {
			s.entOrder = append(s.entOrder[:i], s.entOrder[i+1:]...)
			break
		}
	}
}

// QueuePurchaseResult scripts the outcome of the next purchase of
// productID. Queued outcomes are consumed in order; with the queue empty
// a purchase defaults to a verified success.
func (s *Store) QueuePurchaseResult(productID product.ID, result appstore.PurchaseResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queued[productID] = append(s.queued[productID], purchaseScript{result: result})
}

// QueuePurchaseError scripts a platform-level failure for the next
// purchase of productID.
func (s *Store) QueuePurchaseError(productID product.ID, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queued[productID] = append(s.queued[productID], purchaseScript{err: err})
}

// PushUpdate delivers one result on the transaction update stream.
func (s *Store) PushUpdate(result verify.Result[transaction.Transaction]) {
	s.updates <- result
}

// SetSubscriptionStatus scripts the group statuses returned for
// productID.
func (s *Store) SetSubscriptionStatus(productID product.ID, statuses []appstore.SubscriptionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[productID] = statuses
}

// Finished returns the transaction ids acknowledged so far, in order.
func (s *Store) Finished() []id.TransactionID {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]id.TransactionID, len(s.finished))
	copy(out, s.finished)
	return out
}

// MintTransaction builds a fresh verified-shape transaction for
// productID. The product type is taken from the catalog when the id is
// known there.
func (s *Store) MintTransaction(productID product.ID) transaction.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mintLocked(productID)
}

func (s *Store) mintLocked(productID product.ID) transaction.Transaction {
	txn := transaction.Transaction{
		ID:           id.NewTransactionID(),
		ProductID:    productID,
		PurchaseDate: time.Now().UTC(),
		Ownership:    transaction.OwnershipPurchased,
	}
	if p, ok := s.catalog.ByID(productID); ok {
		txn.ProductType = p.Type
		if p.Type == product.TypeAutoRenewable {
			exp := txn.PurchaseDate.Add(30 * 24 * time.Hour)
			txn.ExpirationDate = &exp
		}
	}
	return txn
}

// Close ends the transaction update stream.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.updates)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// appstore.Service
// ─────────────────────────────────────────────────────────────────────────────

func (s *Store) Products(_ context.Context, ids []product.ID) ([]product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.available {
		return nil, ErrUnavailable
	}

	var out []product.Product
	for _, pid := range ids {
		if p, ok := s.catalog.ByID(pid); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) Purchase(_ context.Context, productID product.ID, opts ...appstore.PurchaseOption) (appstore.PurchaseResult, error) {
	_ = appstore.ApplyPurchaseOptions(opts)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.available {
		return appstore.PurchaseResult{}, ErrUnavailable
	}

	if queue := s.queued[productID]; len(queue) > 0 {
		script := queue[0]
		s.queued[productID] = queue[1:]
		if script.err != nil {
			return appstore.PurchaseResult{}, script.err
		}
		if script.result.Outcome == appstore.OutcomeSuccess && script.result.Verification != nil && script.result.Verification.IsVerified() {
			s.grantLocked(*script.result.Verification)
		}
		return script.result, nil
	}

	if _, ok := s.catalog.ByID(productID); !ok {
		return appstore.PurchaseResult{}, ErrUnknownProduct
	}

	result := verify.Verified(s.mintLocked(productID))
	s.grantLocked(result)
	return appstore.PurchaseResult{
		Outcome:      appstore.OutcomeSuccess,
		Verification: &result,
	}, nil
}

func (s *Store) CanMakePayments(_ context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canPay
}

func (s *Store) CurrentEntitlements(ctx context.Context) <-chan verify.Result[transaction.Transaction] {
	s.mu.Lock()
	snapshot := make([]verify.Result[transaction.Transaction], 0, len(s.entOrder))
	for _, pid := range s.entOrder {
		snapshot = append(snapshot, s.entitlements[pid])
	}
	s.mu.Unlock()

	out := make(chan verify.Result[transaction.Transaction])
	go func() {
		defer close(out)
		for _, result := range snapshot {
			select {
			case out <- result:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (s *Store) CurrentEntitlement(_ context.Context, productID product.ID) (*verify.Result[transaction.Transaction], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.available {
		return nil, ErrUnavailable
	}
	result, ok := s.entitlements[productID]
	if !ok {
		return nil, nil
	}
	return &result, nil
}

func (s *Store) LatestTransaction(ctx context.Context, productID product.ID) (*verify.Result[transaction.Transaction], error) {
	return s.CurrentEntitlement(ctx, productID)
}

func (s *Store) TransactionUpdates(ctx context.Context) <-chan verify.Result[transaction.Transaction] {
	out := make(chan verify.Result[transaction.Transaction])
	go func() {
		defer close(out)
		for {
			select {
			case result, ok := <-s.updates:
				if !ok {
					return
				}
				select {
				case out <- result:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (s *Store) SubscriptionStatus(_ context.Context, productID product.ID) ([]appstore.SubscriptionStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.available {
		return nil, ErrUnavailable
	}
	return s.statuses[productID], nil
}

func (s *Store) Finish(_ context.Context, transactionID id.TransactionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.finished = append(s.finished, transactionID)
	return nil
}
