// Package transaction defines the purchase transaction models consumed
// from the app store service. Transactions are minted and signed by the
// platform; the helper never constructs them outside of tests.
package transaction

import (
	"time"

	"github.com/quartzlabs/storehelper/id"
	"github.com/quartzlabs/storehelper/product"
)

// Ownership describes how the user came to own a transaction.
type Ownership string

const (
	OwnershipPurchased    Ownership = "purchased"
	OwnershipFamilyShared Ownership = "family_shared"
)

// RevocationReason explains why the platform revoked a transaction.
type RevocationReason string

const (
	RevocationRefunded     RevocationReason = "refunded"
	RevocationSupportIssue RevocationReason = "support_issue"
)

// Transaction is one purchase event reported by the store service.
type Transaction struct {
	ID               id.TransactionID `json:"id"`
	ProductID        product.ID       `json:"product_id"`
	ProductType      product.Type     `json:"product_type"`
	PurchaseDate     time.Time        `json:"purchase_date"`
	RevocationDate   *time.Time       `json:"revocation_date,omitempty"`
	RevocationReason RevocationReason `json:"revocation_reason,omitempty"`
	ExpirationDate   *time.Time       `json:"expiration_date,omitempty"`
	IsUpgraded       bool             `json:"is_upgraded"`
	Ownership        Ownership        `json:"ownership"`
}

// Revoked reports whether the platform has revoked the transaction
// (e.g. because of a refund).
func (t Transaction) Revoked() bool { return t.RevocationDate != nil }

// Entitles reports whether the transaction currently entitles the user to
// its product: not revoked and not superseded by a higher subscription tier.
func (t Transaction) Entitles() bool { return t.RevocationDate == nil && !t.IsUpgraded }

// RenewalInfo is the renewal state of an auto-renewable subscription,
// reported alongside a subscription status.
type RenewalInfo struct {
	ID                  id.RenewalID `json:"id"`
	CurrentProductID    product.ID   `json:"current_product_id"`
	WillAutoRenew       bool         `json:"will_auto_renew"`
	AutoRenewPreference product.ID   `json:"auto_renew_preference,omitempty"`
}
