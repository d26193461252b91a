/*
reconcile.go - Request lifecycle and ledger reconciliation

PURPOSE:
  Carries a leave/correction request from submission to its terminal
  decision, and applies approved requests onto the booking ledger across
  their date span.

REQUEST FLOW:
  submit -> pending -> approved   (ledger reconciled day by day)
                    -> rejected   (audit row only, no ledger change)
  delete: pending   -> row removed
          approved  -> bookings the request produced removed first,
                       restricted to the request's type and span

RECONCILIATION LOOP:
  For each day in [date, endDate ?? date]:
    - full-day leave skips non-working days (weekends/free days accrue
      no target, so no booking is written)
    - match-or-create: an existing booking for the day is updated
      (earliest open booking preferred), otherwise a closed booking is
      inserted. Re-applying the same request therefore never duplicates
      bookings - the loop is idempotent under retry.
    - every mutation appends one history entry ("Genehmigung: {type}")
      and one audit row.
  Each day's read-modify-write is its own serializable unit under the
  per-(user, date) lock; no lock spans the whole loop. A failed day
  aborts the remainder and surfaces a ReconcileError naming the day;
  already-applied days stay applied (at-least-once; there is no
  multi-day transaction).
*/
package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Reconciler owns the request workflow.
type Reconciler struct {
	Bookings BookingStore
	Requests RequestStore
	Users    UserStore
	Audit    *Recorder
	Locks    *DayLocks

	Now func() time.Time
}

func NewReconciler(bookings BookingStore, requests RequestStore, users UserStore, audit *Recorder, locks *DayLocks) *Reconciler {
	return &Reconciler{Bookings: bookings, Requests: requests, Users: users, Audit: audit, Locks: locks, Now: time.Now}
}

func (r *Reconciler) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// =============================================================================
// SUBMISSION
// =============================================================================

// SubmitInput is what the employee (or an admin on their behalf) files.
type SubmitInput struct {
	TargetUserID UserID // empty: the submitter themselves
	Date         Date
	EndDate      Date // zero: single day
	Type         BookingType
	NewStart     string
	NewEnd       string
	Reason       string
}

// Submit validates and files a request. Only admins may file for another
// user. Full-day leave types drop any supplied times.
func (r *Reconciler) Submit(ctx context.Context, actor *User, in SubmitInput) (*Request, error) {
	if in.Date.IsZero() {
		return nil, ErrMissingDate
	}
	if !in.EndDate.IsZero() && in.EndDate.Before(in.Date) {
		return nil, ErrEndBeforeStart
	}
	if in.Type == "" {
		in.Type = TypeOther
	}
	if !in.Type.Known() {
		return nil, ErrUnknownType
	}

	target := actor
	if in.TargetUserID != "" && in.TargetUserID != actor.ID {
		if !actor.IsAdmin() {
			return nil, ErrNotAllowed
		}
		var err error
		target, err = r.Users.Get(ctx, in.TargetUserID)
		if err != nil {
			return nil, err
		}
	}

	if in.Type.IsFullDayLeave() {
		in.NewStart, in.NewEnd = "", ""
	}

	req := &Request{
		ID:        RequestID(uuid.NewString()),
		UserID:    target.ID,
		Date:      in.Date,
		EndDate:   in.EndDate,
		NewStart:  in.NewStart,
		NewEnd:    in.NewEnd,
		Reason:    in.Reason,
		Type:      in.Type,
		Status:    StatusPending,
		CreatedAt: r.now(),
	}
	if err := r.Requests.Insert(ctx, req); err != nil {
		return nil, err
	}

	r.Audit.Record(ctx, actor.TenantID, actor.DisplayName, "Antrag erstellt", "", string(in.Type), target.DisplayName)
	return req, nil
}

// =============================================================================
// DECISION
// =============================================================================

// SetStatus performs the one-shot pending -> approved|rejected transition.
// Admin only. Approval triggers the reconciliation loop; rejection only
// writes the audit row. Approving an already-approved request re-runs the
// loop instead of failing: that is the retry path when an earlier apply
// stopped part way through with a ReconcileError. Every other repeated
// decision is refused.
func (r *Reconciler) SetStatus(ctx context.Context, actor *User, id RequestID, status RequestStatus) error {
	if !actor.IsAdmin() {
		return ErrNotAllowed
	}
	if status != StatusApproved && status != StatusRejected {
		return ErrUnknownType
	}

	req, err := r.Requests.Get(ctx, id)
	if err != nil {
		return err
	}
	if req.Status != StatusPending {
		if req.Status == StatusApproved && status == StatusApproved {
			return r.Apply(ctx, actor, req)
		}
		return ErrAlreadyDecided
	}
	target, err := r.Users.Get(ctx, req.UserID)
	if err != nil {
		return err
	}

	if err := r.Requests.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	r.Audit.Record(ctx, actor.TenantID, actor.DisplayName,
		fmt.Sprintf("Antrag %s", status), string(StatusPending), string(status), target.DisplayName)

	if status == StatusRejected {
		return nil
	}
	req.Status = StatusApproved
	return r.applyApproved(ctx, actor, req, target)
}

// Apply re-runs the reconciliation loop for an already-approved request,
// the retry path after a partial ReconcileError. Match-or-create makes
// the rerun safe: days applied before the failure are matched, not
// duplicated.
func (r *Reconciler) Apply(ctx context.Context, actor *User, req *Request) error {
	if req.Status != StatusApproved {
		return ErrNotAllowed
	}
	target, err := r.Users.Get(ctx, req.UserID)
	if err != nil {
		return err
	}
	return r.applyApproved(ctx, actor, req, target)
}

// applyApproved runs the per-day reconciliation loop.
func (r *Reconciler) applyApproved(ctx context.Context, actor *User, req *Request, target *User) error {
	for _, day := range req.Span().Days() {
		if req.Type.IsFullDayLeave() && !target.WorkingDays.Contains(day.Weekday()) {
			continue // leave does not book free days
		}
		if err := r.applyDay(ctx, actor, req, target, day); err != nil {
			return &ReconcileError{RequestID: req.ID, Day: day, Err: err}
		}
	}
	return nil
}

// applyDay is one independently serializable read-modify-write unit.
func (r *Reconciler) applyDay(ctx context.Context, actor *User, req *Request, target *User, day Date) error {
	return r.Locks.WithDay(target.ID, day, func() error {
		existing, err := r.matchBooking(ctx, target.ID, day)
		if err != nil {
			return err
		}

		hist := HistoryEntry{
			ChangedAt: r.now(),
			ChangedBy: actor.DisplayName,
			Change:    fmt.Sprintf("Genehmigung: %s", req.Type),
		}
		remarks := fmt.Sprintf("Genehmigt: %s", req.Reason)

		if existing != nil {
			hist.PrevStart, hist.PrevEnd = existing.Start, existing.End
			if req.Type.IsFullDayLeave() {
				existing.Start, existing.End = "", ""
			} else {
				// COALESCE semantics: request times win, prior times survive.
				if req.NewStart != "" {
					existing.Start = req.NewStart
				}
				if req.NewEnd != "" {
					existing.End = req.NewEnd
				}
			}
			existing.Type = req.Type
			existing.Remarks = remarks
			existing.IsEdited = true
			existing.AppendHistory(hist)
			if err := r.Bookings.Update(ctx, existing); err != nil {
				return err
			}
		} else {
			b := &Booking{
				ID:       BookingID(uuid.NewString()),
				UserID:   target.ID,
				TenantID: target.TenantID,
				Date:     day,
				Type:     req.Type,
				Remarks:  remarks,
				IsEdited: true,
				History:  []HistoryEntry{hist},
			}
			if !req.Type.IsFullDayLeave() {
				b.Start, b.End = req.NewStart, req.NewEnd
			}
			if err := r.Bookings.Insert(ctx, b); err != nil {
				return err
			}
		}

		r.Audit.Record(ctx, target.TenantID, actor.DisplayName,
			fmt.Sprintf("Genehmigung: %s", req.Type), "", day.String(), target.DisplayName)
		return nil
	})
}

// matchBooking locates the booking the reconciliation should touch:
// the earliest open booking for the day, else any booking for the day.
func (r *Reconciler) matchBooking(ctx context.Context, userID UserID, day Date) (*Booking, error) {
	bookings, err := r.Bookings.ListDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].Open() {
			return &bookings[i], nil
		}
	}
	if len(bookings) > 0 {
		return &bookings[0], nil
	}
	return nil, nil
}

// =============================================================================
// WITHDRAWAL
// =============================================================================

// Delete withdraws a request. Employees may remove their own pending
// requests; admins may remove any. Deleting an approved request also
// removes the bookings it produced - restricted to the request's span
// AND type, so unrelated bookings sharing a day survive.
func (r *Reconciler) Delete(ctx context.Context, actor *User, id RequestID) error {
	req, err := r.Requests.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		if req.UserID != actor.ID {
			return ErrNotAllowed
		}
		if req.Status != StatusPending {
			return ErrNotAllowed
		}
	}

	if req.Status == StatusApproved {
		if _, err := r.Bookings.DeleteByTypeInRange(ctx, req.UserID, req.Span(), req.Type); err != nil {
			return err
		}
	}
	if err := r.Requests.Delete(ctx, id); err != nil {
		return err
	}

	affected := ""
	if target, err := r.Users.Get(ctx, req.UserID); err == nil {
		affected = target.DisplayName
	}
	r.Audit.Record(ctx, actor.TenantID, actor.DisplayName, "Antrag gelöscht", string(req.Status), "", affected)
	return nil
}

// MarkSeen clears the notification flag once the employee viewed the
// decision.
func (r *Reconciler) MarkSeen(ctx context.Context, actor *User, id RequestID) error {
	req, err := r.Requests.Get(ctx, id)
	if err != nil {
		return err
	}
	if req.UserID != actor.ID && !actor.IsAdmin() {
		return ErrNotAllowed
	}
	return r.Requests.MarkSeen(ctx, id)
}
