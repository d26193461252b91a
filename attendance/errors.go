/*
errors.go - Centralized error types for the attendance engine

PURPOSE:
  All error kinds in one place. Callers classify with errors.Is / the
  helpers at the bottom instead of matching strings.

ERROR CATEGORIES:
  1. Validation errors - rejected before any mutation
  2. Conflict errors   - the state machine refused the transition
  3. Not-found errors  - unknown booking/request/user/card
  4. Persistence errors - storage unavailable, retryable

AUDIT EXCEPTION:
  Audit-log failures are never surfaced through these types; the audit
  trail is best-effort and its errors are swallowed (see audit.go).
*/
package attendance

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNoOpenBooking is returned when a clock-out arrives with nothing to
	// terminate. Reported, not fatal: the caller shows it, state is unchanged.
	ErrNoOpenBooking = errors.New("no open booking for this day")

	// ErrDuplicateOpenBooking guards the one-open-booking-per-user-per-day
	// invariant at the storage layer.
	ErrDuplicateOpenBooking = errors.New("an open booking already exists for this day")

	// ErrLeaveDayBlocked rejects clock-ins on days already booked as
	// vacation or sick leave.
	ErrLeaveDayBlocked = errors.New("day is booked as leave, stamping blocked")

	// ErrAlreadyDecided rejects a second status transition; requests are
	// decided exactly once.
	ErrAlreadyDecided = errors.New("request has already been decided")

	// ErrNotAllowed rejects an operation the actor's role does not permit.
	ErrNotAllowed = errors.New("operation not permitted for this actor")

	// ErrEndBeforeStart rejects a request span whose end date precedes its
	// start date.
	ErrEndBeforeStart = errors.New("end date before start date")

	// ErrMissingDate rejects a request without a start date.
	ErrMissingDate = errors.New("date is required")

	// ErrUnknownType rejects a booking type outside the closed variant set.
	ErrUnknownType = errors.New("unknown booking type")

	ErrUserNotFound    = errors.New("user not found")
	ErrUnknownCard     = errors.New("unknown card")
	ErrBookingNotFound = errors.New("booking not found")
	ErrRequestNotFound = errors.New("request not found")

	// ErrStoreUnavailable wraps storage-level failures; retryable.
	ErrStoreUnavailable = errors.New("storage unavailable")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ReconcileError reports which day of a multi-day reconciliation failed.
// Days already applied are not reverted; the caller may retry the whole
// request (the loop is idempotent).
type ReconcileError struct {
	RequestID RequestID
	Day       Date
	Err       error
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("reconciliation of request %s failed at %s: %v", e.RequestID, e.Day, e.Err)
}

func (e *ReconcileError) Unwrap() error { return e.Err }

// StoreError wraps a driver error as retryable persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store: %s: %v", e.Op, e.Err) }
func (e *StoreError) Unwrap() error { return ErrStoreUnavailable }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation reports whether the input was rejected before any mutation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEndBeforeStart) ||
		errors.Is(err, ErrMissingDate) ||
		errors.Is(err, ErrUnknownType)
}

// IsConflict reports whether the state machine refused the transition.
func IsConflict(err error) bool {
	return errors.Is(err, ErrNoOpenBooking) ||
		errors.Is(err, ErrDuplicateOpenBooking) ||
		errors.Is(err, ErrLeaveDayBlocked) ||
		errors.Is(err, ErrAlreadyDecided)
}

// IsNotFound reports a missing booking, request, user or badge.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrUnknownCard) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrRequestNotFound)
}

// IsRetryable reports whether the operation might succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
