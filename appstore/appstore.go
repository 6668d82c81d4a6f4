// Package appstore defines the interface to the platform commerce
// service. The engine never talks to a payment backend directly; every
// catalog, purchase, and entitlement interaction goes through a Service
// implementation. The sandbox subpackage provides a scriptable
// implementation for tests and demos.
package appstore

import (
	"context"

	"github.com/quartzlabs/storehelper/id"
	"github.com/quartzlabs/storehelper/product"
	"github.com/quartzlabs/storehelper/transaction"
	"github.com/quartzlabs/storehelper/verify"
)

// RenewalState is the platform's view of an auto-renewable subscription.
type RenewalState string

const (
	RenewalStateSubscribed     RenewalState = "subscribed"
	RenewalStateExpired        RenewalState = "expired"
	RenewalStateInBillingRetry RenewalState = "in_billing_retry"
	RenewalStateInGracePeriod  RenewalState = "in_grace_period"
	RenewalStateRevoked        RenewalState = "revoked"
)

// SubscriptionStatus is one subscription's current standing, as reported
// by the platform for every product in the subscription group.
type SubscriptionStatus struct {
	State RenewalState

	// Transaction is the latest transaction for the subscription,
	// wrapped in its verification result.
	Transaction verify.Result[transaction.Transaction]

	// RenewalInfo carries the renewal preferences, wrapped in its
	// verification result.
	RenewalInfo verify.Result[transaction.RenewalInfo]
}

// Outcome classifies how a purchase call ended at the platform level.
type Outcome string

const (
	// OutcomeSuccess means the platform produced a transaction. The
	// transaction still needs verification before the entitlement is
	// trusted.
	OutcomeSuccess Outcome = "success"

	// OutcomeCancelled means the user backed out of the payment sheet.
	OutcomeCancelled Outcome = "cancelled"

	// OutcomePending means the purchase awaits external authorization,
	// such as parental approval. The transaction, if any, arrives later
	// on the update stream.
	OutcomePending Outcome = "pending"
)

// PurchaseResult is the platform's answer to a purchase call.
type PurchaseResult struct {
	Outcome Outcome

	// Verification is set only for OutcomeSuccess.
	Verification *verify.Result[transaction.Transaction]
}

// PurchaseOption customizes a purchase call.
type PurchaseOption func(*PurchaseConfig)

// PurchaseConfig collects the options applied to one purchase call.
type PurchaseConfig struct {
	Quantity        int
	AppAccountToken string
}

// ApplyPurchaseOptions folds opts over the default configuration.
func ApplyPurchaseOptions(opts []PurchaseOption) PurchaseConfig {
	cfg := PurchaseConfig{Quantity: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithQuantity purchases more than one unit of a consumable.
func WithQuantity(n int) PurchaseOption {
	return func(cfg *PurchaseConfig) {
		if n > 0 {
			cfg.Quantity = n
		}
	}
}

// WithAppAccountToken associates the purchase with an app-side account.
func WithAppAccountToken(token string) PurchaseOption {
	return func(cfg *PurchaseConfig) { cfg.AppAccountToken = token }
}

// Service is the platform commerce interface.
type Service interface {
	// Products returns catalog entries for the requested ids, in request
	// order, omitting ids the storefront does not know.
	Products(ctx context.Context, ids []product.ID) ([]product.Product, error)

	// Purchase runs the platform purchase flow for one product.
	Purchase(ctx context.Context, productID product.ID, opts ...PurchaseOption) (PurchaseResult, error)

	// CanMakePayments reports whether the device is allowed to pay.
	CanMakePayments(ctx context.Context) bool

	// CurrentEntitlements streams the latest transaction for every
	// product the user is currently entitled to. The channel is closed
	// when the enumeration ends or ctx is done.
	CurrentEntitlements(ctx context.Context) <-chan verify.Result[transaction.Transaction]

	// CurrentEntitlement returns the current entitlement transaction for
	// one product, (nil, nil) when the user has none.
	CurrentEntitlement(ctx context.Context, productID product.ID) (*verify.Result[transaction.Transaction], error)

	// LatestTransaction returns the most recent transaction for one
	// product regardless of entitlement, (nil, nil) when there is none.
	LatestTransaction(ctx context.Context, productID product.ID) (*verify.Result[transaction.Transaction], error)

	// TransactionUpdates streams transactions as the platform delivers
	// them, in arrival order, until ctx is done.
	TransactionUpdates(ctx context.Context) <-chan verify.Result[transaction.Transaction]

	// SubscriptionStatus returns the status of every subscription in the
	// group containing productID.
	SubscriptionStatus(ctx context.Context, productID product.ID) ([]SubscriptionStatus, error)

	// Finish acknowledges delivery of a transaction to the platform.
	// Only verified, delivered transactions may be finished.
	Finish(ctx context.Context, transactionID id.TransactionID) error
}
