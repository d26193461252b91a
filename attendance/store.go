/*
store.go - Persistence interfaces for the attendance engine

PURPOSE:
  Defines the boundary between domain logic and the database. The engine
  is handed these interfaces; it never reaches for a global connection.

IMPLEMENTATIONS:
  - store/sqlite: production SQLite store
  - attendance/store: in-memory store for tests and dev

INVARIANT ENFORCEMENT:
  BookingStore.Insert must reject a second open booking for the same
  (user, date) with ErrDuplicateOpenBooking. The SQLite store backs this
  with a partial unique index; the engine additionally serializes the
  read-check-then-write sequence per (user, date) (see stamp.go).

TENANT SCOPING:
  Every query filters by tenant. Bookings and requests belong to users;
  their tenant is the user's tenant.
*/
package attendance

import "context"

// =============================================================================
// BOOKING STORE
// =============================================================================

// BookingFilter narrows List queries. Zero fields are ignored.
type BookingFilter struct {
	UserID UserID
	From   Date
	To     Date
	Type   BookingType
}

type BookingStore interface {
	// Insert persists a new booking. Returns ErrDuplicateOpenBooking if an
	// open booking already exists for the same user and date.
	Insert(ctx context.Context, b *Booking) error

	// Update rewrites a booking row (including its embedded history).
	Update(ctx context.Context, b *Booking) error

	// Get returns the booking or ErrBookingNotFound.
	Get(ctx context.Context, id BookingID) (*Booking, error)

	// FindOpen returns the open booking for (user, date), or nil.
	FindOpen(ctx context.Context, userID UserID, date Date) (*Booking, error)

	// ListDay returns all bookings for (user, date), earliest start first.
	ListDay(ctx context.Context, userID UserID, date Date) ([]Booking, error)

	// List returns tenant-scoped bookings matching the filter,
	// newest date first.
	List(ctx context.Context, tenantID TenantID, f BookingFilter) ([]Booking, error)

	// DeleteByTypeInRange removes the bookings a withdrawn request produced:
	// only the given user, span and type. Unrelated bookings sharing the
	// same days survive. Returns the number of rows removed.
	DeleteByTypeInRange(ctx context.Context, userID UserID, span Period, t BookingType) (int, error)
}

// =============================================================================
// USER STORE
// =============================================================================

type UserStore interface {
	Get(ctx context.Context, id UserID) (*User, error)
	// GetByCard resolves a hardware badge; ErrUnknownCard if unlinked.
	GetByCard(ctx context.Context, cardID string) (*User, error)
	List(ctx context.Context, tenantID TenantID) ([]User, error)
	// Save inserts or updates. Users are never deleted (deactivate instead).
	Save(ctx context.Context, u *User) error
}

// =============================================================================
// REQUEST STORE
// =============================================================================

type RequestFilter struct {
	UserID UserID
	Status RequestStatus
}

type RequestStore interface {
	Insert(ctx context.Context, r *Request) error
	Get(ctx context.Context, id RequestID) (*Request, error)
	// UpdateStatus persists the one-shot status transition.
	UpdateStatus(ctx context.Context, id RequestID, status RequestStatus) error
	MarkSeen(ctx context.Context, id RequestID) error
	Delete(ctx context.Context, id RequestID) error
	List(ctx context.Context, tenantID TenantID, f RequestFilter) ([]Request, error)
}

// =============================================================================
// AUDIT STORE
// =============================================================================

type AuditFilter struct {
	// Participant restricts to rows where the named user is actor OR
	// affected user (how non-admins see their own trail).
	Participant string
	From        Date
	To          Date
	Limit       int
}

type AuditStore interface {
	Append(ctx context.Context, e AuditEntry) error
	Query(ctx context.Context, tenantID TenantID, f AuditFilter) ([]AuditEntry, error)
	// Prune drops the oldest rows beyond keep (retention cap).
	Prune(ctx context.Context, tenantID TenantID, keep int) error
}
