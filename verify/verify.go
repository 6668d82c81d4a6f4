// Package verify models the platform's transaction verification wrapper.
//
// Every transaction-like value delivered by the store service arrives
// wrapped in a Result that records whether the platform could authenticate
// it. Unwrapping never fails: verification failure is represented as data,
// not as a propagated error, so callers decide how to react at the call
// site that observed it.
package verify

import "errors"

// Verification failure causes reported by the platform.
var (
	// ErrUnverified is the generic cause when the platform reported no
	// specific verification error.
	ErrUnverified = errors.New("verify: transaction not verified")

	// ErrInvalidSignature indicates the payload signature did not match.
	ErrInvalidSignature = errors.New("verify: invalid signature")

	// ErrRevokedCertificate indicates the signing certificate was revoked.
	ErrRevokedCertificate = errors.New("verify: revoked signing certificate")
)

// Result wraps a value of any transaction-like type together with the
// platform's verification verdict. The zero value is an unverified wrapper
// around the zero value of T.
type Result[T any] struct {
	value    T
	err      error
	verified bool
}

// Verified wraps a value the platform successfully authenticated.
func Verified[T any](v T) Result[T] {
	return Result[T]{value: v, verified: true}
}

// Unverified wraps a value the platform could not authenticate.
// A nil err is normalized to ErrUnverified so that unverified results
// always carry a cause.
func Unverified[T any](v T, err error) Result[T] {
	if err == nil {
		err = ErrUnverified
	}
	return Result[T]{value: v, err: err}
}

// IsVerified reports the platform's verdict without unwrapping.
func (r Result[T]) IsVerified() bool { return r.verified }

// Unwrapped is the plain view of a verification result.
// Err is nil exactly when Verified is true.
type Unwrapped[T any] struct {
	Value    T
	Verified bool
	Err      error
}

// Unwrap returns the plain view of the result. It has no side effects and
// never fails.
func (r Result[T]) Unwrap() Unwrapped[T] {
	return Unwrapped[T]{Value: r.value, Verified: r.verified, Err: r.err}
}
