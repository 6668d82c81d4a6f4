package audithook

// Action constants for audit events.
const (
	// Catalog actions
	ActionCatalogRefreshed   = "catalog.refreshed"
	ActionCatalogUnavailable = "catalog.unavailable"

	// Purchase actions
	ActionPurchaseSucceeded = "purchase.succeeded"
	ActionPurchaseFailed    = "purchase.failed"

	// Transaction actions
	ActionTransactionReceived   = "transaction.received"
	ActionTransactionRevoked    = "transaction.revoked"
	ActionTransactionUnverified = "transaction.unverified"

	// Entitlement actions
	ActionEntitlementChecked = "entitlement.checked"
	ActionEntitlementDenied  = "entitlement.denied"

	// Consumable actions
	ActionConsumableChanged = "consumable.changed"
)

// Resource constants for audit events.
const (
	ResourceCatalog     = "catalog"
	ResourcePurchase    = "purchase"
	ResourceTransaction = "transaction"
	ResourceEntitlement = "entitlement"
	ResourceConsumable  = "consumable"
)

// Category constants for audit events.
const (
	CategoryCommerce = "commerce"
	CategoryAccess   = "access"
	CategoryTrust    = "trust"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
