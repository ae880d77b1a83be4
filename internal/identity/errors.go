package identity

import "errors"

// Domain errors for the identity package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, identity.ErrDuplicateFingerprint) {
//	    // handle duplicate provisioning
//	}
var (
	// ErrInvalidFingerprint is returned when a fingerprint is not exactly
	// FingerprintLength bytes, or a textual form is not valid hex.
	ErrInvalidFingerprint = errors.New("identity: invalid fingerprint")

	// ErrInvalidPIN is returned when a PIN is not exactly PINLength
	// decimal digits.
	ErrInvalidPIN = errors.New("identity: invalid pin")

	// ErrInvalidName is returned when a record's display name is empty.
	ErrInvalidName = errors.New("identity: invalid name")

	// ErrDuplicateFingerprint is returned when two provisioned records
	// share a fingerprint.
	ErrDuplicateFingerprint = errors.New("identity: duplicate fingerprint")
)
