package services

import "errors"

// Sentinel errors returned by the service layer. Controllers map them to
// HTTP status codes; everything else surfaces as an internal error.
var (
	// ErrNotFound means the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalid means the request payload failed a business rule.
	ErrInvalid = errors.New("invalid request")

	// ErrConflict means the operation clashes with existing state, such
	// as a duplicate email or a category that still has items.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized means the supplied credentials are wrong.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPaymentVerification means the gateway signature did not match.
	ErrPaymentVerification = errors.New("payment verification failed")

	// ErrUpstream means a dependency (payment gateway, storage) failed.
	ErrUpstream = errors.New("upstream failure")
)

// wrap attaches a sentinel kind to a descriptive error.
func wrap(kind error, err error) error {
	if err == nil {
		return kind
	}
	return errors.Join(kind, err)
}
