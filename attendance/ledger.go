/*
ledger.go - Booking ledger operations

PURPOSE:
  The per-employee, per-day record of work/leave intervals. Wraps the
  BookingStore with the engine's mutation discipline: exactly one mutation
  path touches a booking row per operation, and every mutation appends to
  the booking's embedded history.

OPEN vs CLOSED:
  A booking is OPEN while it has a start and no end (the employee is
  present). Full-day leave bookings are created already closed and carry
  no times.
*/
package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Ledger mediates all booking mutations.
type Ledger struct {
	Bookings BookingStore
}

func NewLedger(bookings BookingStore) *Ledger {
	return &Ledger{Bookings: bookings}
}

// FindOpen returns the open booking for (user, date), or nil.
func (l *Ledger) FindOpen(ctx context.Context, userID UserID, date Date) (*Booking, error) {
	return l.Bookings.FindOpen(ctx, userID, date)
}

// LeaveBlocked reports whether the day already holds a full-day leave
// booking. A day cannot be both "on leave" and "clocked in".
func (l *Ledger) LeaveBlocked(ctx context.Context, userID UserID, date Date) (bool, error) {
	day, err := l.Bookings.ListDay(ctx, userID, date)
	if err != nil {
		return false, err
	}
	for i := range day {
		if day[i].Type.IsFullDayLeave() {
			return true, nil
		}
	}
	return false, nil
}

// OpenFromStamp creates a new open booking from a clock-in.
func (l *Ledger) OpenFromStamp(ctx context.Context, user *User, date Date, clock string, t BookingType) (*Booking, error) {
	b := &Booking{
		ID:       BookingID(uuid.NewString()),
		UserID:   user.ID,
		TenantID: user.TenantID,
		Date:     date,
		Start:    clock,
		Type:     t,
	}
	if err := l.Bookings.Insert(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// CloseFromStamp terminates the open booking with a clock-out. Returns
// ErrNoOpenBooking when there is nothing to terminate: a no-op surfaced
// to the caller, never a state change.
func (l *Ledger) CloseFromStamp(ctx context.Context, userID UserID, date Date, clock string) (*Booking, error) {
	open, err := l.Bookings.FindOpen(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, ErrNoOpenBooking
	}
	open.End = clock
	if err := l.Bookings.Update(ctx, open); err != nil {
		return nil, err
	}
	return open, nil
}

// EditTimes applies an administrative edit to a closed or open booking,
// snapshotting the prior interval into history.
func (l *Ledger) EditTimes(ctx context.Context, id BookingID, actor string, start, end, reason string) (*Booking, error) {
	b, err := l.Bookings.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	b.AppendHistory(HistoryEntry{
		ChangedAt: time.Now(),
		ChangedBy: actor,
		Change:    "Korrektur",
		PrevStart: b.Start,
		PrevEnd:   b.End,
		Reason:    reason,
	})
	if start != "" {
		b.Start = start
	}
	if end != "" {
		b.End = end
	}
	b.IsEdited = true
	if err := l.Bookings.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
