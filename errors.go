package storehelper

import "errors"

// Sentinel errors for common failure scenarios.
var (
	// Lifecycle errors
	ErrNotStarted     = errors.New("storehelper: helper not started")
	ErrAlreadyStarted = errors.New("storehelper: helper already started")

	// Purchase flow errors
	ErrPurchaseInProgress = errors.New("storehelper: purchase already in progress")
	ErrPurchaseFailed     = errors.New("storehelper: purchase failed")

	// Trust errors
	ErrTransactionVerificationFailed = errors.New("storehelper: transaction verification failed")

	// Catalog errors
	ErrProductNotFound    = errors.New("storehelper: product not found in catalog")
	ErrServiceUnavailable = errors.New("storehelper: store service unavailable")
	ErrNoProductIDs       = errors.New("storehelper: no product ids configured")
)

// IsVerificationError returns true if the error means a transaction could
// not be authenticated. Callers must never treat the affected product as
// purchased.
func IsVerificationError(err error) bool {
	return errors.Is(err, ErrTransactionVerificationFailed)
}

// IsPurchaseFlowError returns true for errors raised by the purchase
// state machine.
func IsPurchaseFlowError(err error) bool {
	return errors.Is(err, ErrPurchaseInProgress) ||
		errors.Is(err, ErrPurchaseFailed) ||
		errors.Is(err, ErrTransactionVerificationFailed)
}

// IsNotStarted returns true if the error means the helper has not been
// started yet.
func IsNotStarted(err error) bool {
	return errors.Is(err, ErrNotStarted)
}
