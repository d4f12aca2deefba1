// Package common defines shared constants and sentinel errors used across
// the LocShare node and client. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Session / wallet errors.
	ErrNotConnected = errors.New("wallet not connected")
	ErrInvalidToken = errors.New("invalid token")

	// Coordinator flow control.
	ErrNotInitialized = errors.New("encryption subsystem not initialized")
	ErrInFlight       = errors.New("operation already in progress")

	// Ledger write outcomes.
	ErrUserRejected     = errors.New("transaction rejected")
	ErrSubmissionFailed = errors.New("submission failed")

	// ErrAlreadyVerified is a benign race outcome, not a true failure: the
	// record reached the desired end state through another path.
	ErrAlreadyVerified = errors.New("record already verified")

	// Decryption protocol errors.
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrInvalidProof     = errors.New("invalid proof")

	// Validation errors.
	ErrValidation = errors.New("validation error")
)
