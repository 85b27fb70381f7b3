package errs

import (
	"errors"
	"fmt"
)

// Sentinels for conditions callers branch on with errors.Is.
var (
	// ErrEmptyCatalog guards the full-replace sync: an empty remote list
	// must not wipe a non-empty cache.
	ErrEmptyCatalog = errors.New("remote catalog returned no mappable products")

	// ErrNoAssetReturned means the disposable resource was created but its
	// response carried no usable hosted asset URL.
	ErrNoAssetReturned = errors.New("creation response carried no hosted asset")

	ErrEmptyCart      = errors.New("cart is empty")
	ErrNoSession      = errors.New("no active session")
	ErrTerminalStatus = errors.New("purchase status is terminal")
)

// NetworkError is a transport-level failure: the request never produced a
// response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RemoteError is a non-2xx response with whatever body the service sent.
type RemoteError struct {
	Op     string
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error during %s: status %d: %s", e.Op, e.Status, e.Body)
}

// ValidationError is a client-side precondition failure raised before any
// remote call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// InconsistencyError marks partial completion, e.g. a purchase persisted
// with fewer items than the cart had lines.
type InconsistencyError struct {
	PurchaseID int
	Expected   int
	Actual     int
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("purchase %d persisted %d of %d items", e.PurchaseID, e.Actual, e.Expected)
}
