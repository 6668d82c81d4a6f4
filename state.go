package storehelper

import "github.com/quartzlabs/storehelper/product"

// PurchaseState tracks the most recent purchase attempt through the
// purchase state machine.
type PurchaseState string

const (
	// StateNotStarted means the helper has not been started.
	StateNotStarted PurchaseState = "notStarted"

	// StateUserCannotMakePayments means the device is not allowed to pay.
	StateUserCannotMakePayments PurchaseState = "userCannotMakePayments"

	// StateInProgress means a purchase is currently in flight. Only one
	// purchase may be in flight at a time.
	StateInProgress PurchaseState = "inProgress"

	// StatePurchased is the successful terminal state.
	StatePurchased PurchaseState = "purchased"

	// StatePending means the purchase awaits external authorization.
	StatePending PurchaseState = "pending"

	// StateCancelled means the user backed out of the purchase.
	StateCancelled PurchaseState = "cancelled"

	// StateFailed means the platform purchase call itself failed.
	StateFailed PurchaseState = "failed"

	// StateFailedVerification means the platform produced a transaction
	// that could not be authenticated.
	StateFailedVerification PurchaseState = "failedVerification"

	// StateUnknown means the platform returned an unrecognized result.
	StateUnknown PurchaseState = "unknown"
)

// Terminal reports whether the state ends a purchase attempt.
func (s PurchaseState) Terminal() bool {
	switch s {
	case StatePurchased, StatePending, StateCancelled, StateFailed, StateFailedVerification, StateUnknown:
		return true
	}
	return false
}

// Change is one entitlement mutation, published on the Changes channel
// for presentation-layer observers.
type Change struct {
	ProductID product.ID
	Purchased bool
}
