/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

HOURS ENCODING:
  Hour figures are decimal strings ("8.5"), never floats. The engine
  computes with decimal.Decimal end to end and the API keeps that
  precision on the wire.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/zeitwerk/attendance-engine/attendance"
)

// =============================================================================
// STAMP TYPES
// =============================================================================

// BadgeStampRequest is what the hardware terminal posts on a card scan.
type BadgeStampRequest struct {
	CardID string `json:"cardId"`
}

// ManualStampRequest is the self-service web stamp with explicit intent.
type ManualStampRequest struct {
	Action string `json:"action"` // "start" | "end"
}

// StampDTO is what the terminal or web client displays after a stamp.
type StampDTO struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Direction   string `json:"direction"` // "start" | "end"
	Time        string `json:"time"`      // "HH:MM"
	Type        string `json:"type"`
	NoOp        bool   `json:"noop,omitempty"`
}

// =============================================================================
// BOOKING TYPES
// =============================================================================

// HistoryEntryDTO is one change record of a booking.
type HistoryEntryDTO struct {
	ChangedAt string `json:"changedAt"`
	ChangedBy string `json:"changedBy"`
	Change    string `json:"type"`
	PrevStart string `json:"prevStart,omitempty"`
	PrevEnd   string `json:"prevEnd,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// BookingDTO is one journal row. The hour figures are derived server-side
// so every client shows identical Soll/Ist arithmetic.
type BookingDTO struct {
	ID       string            `json:"id"`
	UserID   string            `json:"userId"`
	Date     string            `json:"date"`
	Start    string            `json:"start,omitempty"`
	End      string            `json:"end,omitempty"`
	Type     string            `json:"type"`
	Remarks  string            `json:"remarks,omitempty"`
	IsEdited bool              `json:"isEdited,omitempty"`
	History  []HistoryEntryDTO `json:"history,omitempty"`

	Gross   string `json:"gross"`
	Break   string `json:"break"`
	Net     string `json:"net"`
	Balance string `json:"balance"`
	Open    bool   `json:"open,omitempty"`
}

// EditBookingRequest applies an administrative time correction.
type EditBookingRequest struct {
	Start  string `json:"start,omitempty"`
	End    string `json:"end,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// =============================================================================
// REQUEST (leave/correction) TYPES
// =============================================================================

// SubmitRequestDTO files a leave or correction request.
type SubmitRequestDTO struct {
	UserID   string `json:"userId,omitempty"` // admins may file for others
	Date     string `json:"date"`
	EndDate  string `json:"endDate,omitempty"`
	Type     string `json:"type,omitempty"`
	NewStart string `json:"newStart,omitempty"`
	NewEnd   string `json:"newEnd,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// RequestDTO represents a request in API responses. DisplayName is the
// affected employee's name, joined in for list views.
type RequestDTO struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName,omitempty"`
	Date        string `json:"date"`
	EndDate     string `json:"endDate,omitempty"`
	NewStart    string `json:"newStart,omitempty"`
	NewEnd      string `json:"newEnd,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Seen        bool   `json:"seen"`
	CreatedAt   string `json:"createdAt"`
}

// UpdateStatusRequest carries the one-shot approve/reject decision.
type UpdateStatusRequest struct {
	Status string `json:"status"` // "approved" | "rejected"
}

// =============================================================================
// DASHBOARD / STATS TYPES
// =============================================================================

// DashboardDTO is the employee landing-page figure set.
type DashboardDTO struct {
	WeekActual        string       `json:"weekActual"`
	WeekTarget        string       `json:"weekTarget"`
	MonthSoll         string       `json:"monthSoll"`
	MonthIst          string       `json:"monthIst"`
	MonthSaldo        string       `json:"monthSaldo"`
	VacationAllowance int          `json:"vacationAllowance"`
	VacationTaken     int          `json:"vacationTaken"`
	VacationRemaining int          `json:"vacationRemaining"`
	ClockedIn         bool         `json:"clockedIn"`
	UnseenDecisions   int          `json:"unseenDecisions"`
	Alerts            []AlertDTO   `json:"alerts"`
	Today             []BookingDTO `json:"today"`
}

// AlertDTO flags a past day with an unterminated booking (missed clock-out).
type AlertDTO struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	Type  string `json:"type"`
}

// MonthStatsDTO is the Soll/Ist/Saldo summary for one user and month.
type MonthStatsDTO struct {
	UserID      string `json:"userId"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Soll        string `json:"soll"`
	Ist         string `json:"ist"`
	Saldo       string `json:"saldo"`
	WorkingDays int    `json:"workingDays"`
	LeaveDays   int    `json:"leaveDays"`
}

// =============================================================================
// USER TYPES
// =============================================================================

// UserDTO represents an employee in API responses.
type UserDTO struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	DisplayName  string `json:"displayName"`
	Role         string `json:"role"`
	CardID       string `json:"cardId,omitempty"`
	DailyTarget  string `json:"dailyTarget"`
	VacationDays int    `json:"vacationDays"`
	WorkingDays  []int  `json:"workingDays"`
	Active       bool   `json:"active"`
}

// SaveUserRequest creates or updates an employee.
type SaveUserRequest struct {
	Username     string `json:"username"`
	DisplayName  string `json:"displayName"`
	Role         string `json:"role,omitempty"`
	CardID       string `json:"cardId,omitempty"`
	DailyTarget  string `json:"dailyTarget,omitempty"`
	VacationDays *int   `json:"vacationDays,omitempty"`
	WorkingDays  []int  `json:"workingDays,omitempty"`
	Active       *bool  `json:"active,omitempty"`
}

// =============================================================================
// AUDIT TYPES
// =============================================================================

// AuditDTO is one row of the tamper-evident trail.
type AuditDTO struct {
	ID           string `json:"id"`
	Timestamp    string `json:"timestamp"`
	Actor        string `json:"actor"`
	Action       string `json:"action"`
	OldValue     string `json:"oldValue,omitempty"`
	NewValue     string `json:"newValue,omitempty"`
	AffectedUser string `json:"affectedUser,omitempty"`
}

// =============================================================================
// DTO MAPPING
// =============================================================================

func toBookingDTO(b *attendance.Booking, u *attendance.User) BookingDTO {
	s := attendance.SummarizeDay(b, u.DailyTarget, u.WorkingDays, b.Date)
	dto := BookingDTO{
		ID:       string(b.ID),
		UserID:   string(b.UserID),
		Date:     b.Date.String(),
		Start:    b.Start,
		End:      b.End,
		Type:     string(b.Type),
		Remarks:  b.Remarks,
		IsEdited: b.IsEdited,
		Gross:    s.Gross.String(),
		Break:    s.Break.String(),
		Net:      s.Net.String(),
		Balance:  s.Balance.String(),
		Open:     b.Open(),
	}
	for _, h := range b.History {
		dto.History = append(dto.History, HistoryEntryDTO{
			ChangedAt: h.ChangedAt.Format("2006-01-02 15:04"),
			ChangedBy: h.ChangedBy,
			Change:    h.Change,
			PrevStart: h.PrevStart,
			PrevEnd:   h.PrevEnd,
			Reason:    h.Reason,
		})
	}
	return dto
}

func toRequestDTO(r *attendance.Request) RequestDTO {
	endDate := ""
	if !r.EndDate.IsZero() {
		endDate = r.EndDate.String()
	}
	return RequestDTO{
		ID:        string(r.ID),
		UserID:    string(r.UserID),
		Date:      r.Date.String(),
		EndDate:   endDate,
		NewStart:  r.NewStart,
		NewEnd:    r.NewEnd,
		Reason:    r.Reason,
		Type:      string(r.Type),
		Status:    string(r.Status),
		Seen:      r.Seen,
		CreatedAt: r.CreatedAt.Format("2006-01-02 15:04"),
	}
}

func toUserDTO(u *attendance.User) UserDTO {
	days := make([]int, len(u.WorkingDays))
	for i, d := range u.WorkingDays {
		days[i] = int(d)
	}
	return UserDTO{
		ID:           string(u.ID),
		Username:     u.Username,
		DisplayName:  u.DisplayName,
		Role:         string(u.Role),
		CardID:       u.CardID,
		DailyTarget:  u.DailyTarget.String(),
		VacationDays: u.VacationDays,
		WorkingDays:  days,
		Active:       u.Active,
	}
}

func toAuditDTO(e *attendance.AuditEntry) AuditDTO {
	return AuditDTO{
		ID:           e.ID,
		Timestamp:    e.Timestamp.Format("2006-01-02 15:04:05"),
		Actor:        e.Actor,
		Action:       e.Action,
		OldValue:     e.OldValue,
		NewValue:     e.NewValue,
		AffectedUser: e.AffectedUser,
	}
}
