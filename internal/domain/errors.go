package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrSelfOffer     = errors.New("cannot chip in on your own wish")
	ErrFundingClosed = errors.New("funding already completed")
	ErrHasOffers     = errors.New("wish already has offers")
	ErrConflict      = errors.New("already exists")
	// ErrConflictWrite signals a lower-level storage conflict
	// (serialization failure or deadlock). Retryable.
	ErrConflictWrite = errors.New("storage write conflict")
)

// ExceedsRemainingError rejects an offer larger than what is left to
// collect. Remaining is carried so callers can show it to the user.
type ExceedsRemainingError struct {
	Remaining Money
}

func (e *ExceedsRemainingError) Error() string {
	return fmt.Sprintf("amount exceeds remaining %s", e.Remaining)
}
