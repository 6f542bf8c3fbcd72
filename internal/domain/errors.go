package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the ledger core. Callers distinguish "your request was
// invalid" cases with errors.Is against these; anything else coming out of
// the repositories is a *StorageError.
var (
	// ErrNotFound signals that a referenced Tree or Token does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden signals that the acting principal lacks the required ownership.
	ErrForbidden = errors.New("forbidden")

	// ErrDuplicateNickname signals a nickname collision within the owner's namespace.
	ErrDuplicateNickname = errors.New("nickname already in use")

	// ErrAlreadyMinted signals a second mint attempt on a tokenized tree.
	ErrAlreadyMinted = errors.New("token already minted for tree")

	// ErrInvalidArgument signals a malformed request parameter
	// (unknown species, non-positive quantity, negative price).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTokenIDConflict signals that a freshly generated token identifier
	// collided with an existing one. Retryable: regenerate and try again.
	ErrTokenIDConflict = errors.New("token identifier conflict")
)

// StorageError wraps an unexpected failure from the persistence layer so
// callers can tell infrastructure failures apart from domain errors.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err with the failing operation name.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// invalidArgument builds an error that matches ErrInvalidArgument under
// errors.Is while carrying a human-readable detail.
func invalidArgument(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, a...))
}
