/*
Package attendance provides the core attendance and reconciliation engine.

PURPOSE:
  This package converts raw clock stamps into billable work intervals,
  computes break deductions and daily/weekly/monthly balances, and
  reconciles approved leave/correction requests into the booking ledger.
  It is the domain core; HTTP, sessions and exports are external wrappers.

KEY CONCEPTS IN THIS FILE (types.go):
  - Booking: one work/leave interval for one user on one calendar date
  - BookingType: closed variant set with a classification table
  - HistoryEntry: append-only change record embedded in a booking
  - Request: a leave/correction proposal awaiting admin approval
  - User: employee record with target hours and working-day calendar

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for all hour arithmetic, no float drift
  2. Auditability: every mutation appends history and an audit row
  3. Type Safety: strong typing for user/booking/request identifiers
  4. Closed enums: booking types are classified in one table, not by
     string comparisons scattered through the codebase

SEE ALSO:
  - clock.go: time arithmetic and break deduction
  - stamp.go: the clock-in/clock-out state machine
  - balance.go: Soll/Ist/Saldo calculation
  - reconcile.go: applying approved requests onto the ledger
*/
package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type UserID string
type BookingID string
type RequestID string
type TenantID string

// =============================================================================
// BOOKING TYPE - Closed variant set with classification table
// =============================================================================

// BookingType identifies what kind of interval a booking records.
// The wire values match the legacy terminal protocol and are kept verbatim.
type BookingType string

const (
	TypeWork        BookingType = "work"         // generic work interval
	TypeWebTerminal BookingType = "Web-Terminal" // self-service web stamp
	TypeBadge       BookingType = "valid"        // hardware badge stamp
	TypeVacation    BookingType = "Urlaub"       // full-day vacation
	TypeSick        BookingType = "Krank"        // full-day sick leave
	TypeCorrection  BookingType = "Korrektur"    // admin-approved time correction
	TypeOther       BookingType = "Sonstiges"    // catch-all / default request type
)

// bookingTraits classifies a type once, instead of repeating string
// comparisons at every call site.
type bookingTraits struct {
	// FullDayLeave: the booking covers the whole day, carries no times,
	// consumes the day's target and is balance-neutral.
	FullDayLeave bool

	// Worked: a closed interval of this type contributes net hours to Ist.
	Worked bool
}

var typeTraits = map[BookingType]bookingTraits{
	TypeWork:        {Worked: true},
	TypeWebTerminal: {Worked: true},
	TypeBadge:       {Worked: true},
	TypeCorrection:  {Worked: true},
	TypeOther:       {Worked: true},
	TypeVacation:    {FullDayLeave: true},
	TypeSick:        {FullDayLeave: true},
}

// IsFullDayLeave reports whether the type represents whole-day leave.
func (t BookingType) IsFullDayLeave() bool { return typeTraits[t].FullDayLeave }

// IsWorked reports whether closed intervals of this type count as hours worked.
func (t BookingType) IsWorked() bool { return typeTraits[t].Worked }

// Known reports whether t is one of the closed variant set.
func (t BookingType) Known() bool { _, ok := typeTraits[t]; return ok }

// =============================================================================
// HISTORY ENTRY - Embedded, append-only change record
// =============================================================================

type HistoryEntry struct {
	ChangedAt time.Time `json:"changedAt"`
	ChangedBy string    `json:"changedBy"`
	Change    string    `json:"type"` // label, e.g. "Genehmigung: Urlaub"
	PrevStart string    `json:"prevStart,omitempty"`
	PrevEnd   string    `json:"prevEnd,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}

// =============================================================================
// BOOKING - One work/leave interval per user per calendar date
// =============================================================================

// Booking is the ledger row. Start/End are wall-clock times in "HH:MM";
// the empty string means "not set". A booking is open when it has a start
// but no end. Full-day leave bookings carry no times and are created
// already closed.
type Booking struct {
	ID       BookingID
	UserID   UserID
	TenantID TenantID
	Date     Date
	Start    string
	End      string
	Type     BookingType
	Remarks  string
	IsEdited bool
	History  []HistoryEntry
}

// Open reports whether the interval has been started but not terminated.
func (b *Booking) Open() bool { return b.Start != "" && b.End == "" }

// Closed reports whether the booking contributes to balances: either a
// terminated work interval or a full-day leave entry.
func (b *Booking) Closed() bool {
	if b.Type.IsFullDayLeave() {
		return true
	}
	return b.Start != "" && b.End != ""
}

// AppendHistory records a change. History is append-only; entries are
// never rewritten.
func (b *Booking) AppendHistory(e HistoryEntry) {
	b.History = append(b.History, e)
}

// =============================================================================
// USER - Employee record
// =============================================================================

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID          UserID
	TenantID    TenantID
	Username    string
	DisplayName string
	Role        Role
	CardID      string // hardware badge id, "" when unlinked

	// DailyTarget is the Soll hours for one working day.
	DailyTarget decimal.Decimal

	// VacationDays is the yearly vacation allowance.
	VacationDays int

	// WorkingDays is the tenant's working-day calendar for this user.
	WorkingDays WorkingDays

	// Active: users are never deleted, only deactivated (badge unlinked).
	Active bool
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// DefaultDailyTarget and DefaultVacationDays apply when an admin creates
// a user without explicit values.
var (
	DefaultDailyTarget  = decimal.NewFromInt(8)
	DefaultVacationDays = 30
)

// =============================================================================
// REQUEST - Leave/correction proposal
// =============================================================================

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Request is an employee- or admin-submitted proposal. UserID is the
// affected employee, which differs from the submitter when an admin files
// on behalf of someone else. The status transitions exactly once:
// pending -> approved or pending -> rejected.
type Request struct {
	ID      RequestID
	UserID  UserID
	Date    Date
	EndDate Date // zero value = single-day request
	NewStart string
	NewEnd   string
	Reason   string
	Type     BookingType
	Status   RequestStatus

	// Seen suppresses the notification badge once the employee has viewed
	// the decision.
	Seen bool

	CreatedAt time.Time
}

// Span returns the inclusive date range the request covers.
func (r *Request) Span() Period {
	end := r.EndDate
	if end.IsZero() {
		end = r.Date
	}
	return Period{Start: r.Date, End: end}
}

// =============================================================================
// AUDIT ENTRY - Global append-only trail
// =============================================================================

type AuditEntry struct {
	ID           string
	TenantID     TenantID
	Timestamp    time.Time
	Actor        string
	Action       string
	OldValue     string
	NewValue     string
	AffectedUser string
}

// =============================================================================
// STAMP VOCABULARY
// =============================================================================

// StampAction is the caller-supplied intent on the web channel.
type StampAction string

const (
	ActionStart StampAction = "start"
	ActionEnd   StampAction = "end"
)

// StampChannel identifies how the stamp arrived. The badge channel is a
// stateless toggle; the web channel carries an explicit action.
type StampChannel string

const (
	ChannelBadge StampChannel = "badge"
	ChannelWeb   StampChannel = "web"
)

// StampResult is what the terminal or web client displays after a stamp.
type StampResult struct {
	User      *User
	Booking   *Booking
	Direction StampAction // the action actually applied
	Time      string      // "HH:MM" applied clock time
	Type      BookingType
	NoOp      bool // true when the stamp changed nothing (idempotent repeat)
}
