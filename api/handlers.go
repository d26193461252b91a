/*
handlers.go - HTTP API handlers for the attendance engine

PURPOSE:
  Exposes the attendance and reconciliation engine via REST API. Handles
  HTTP request/response, JSON serialization, and delegates to domain
  logic.

ENDPOINTS:
  Stamping:
    POST   /api/stamp                  Hardware badge stamp (toggle)
    POST   /api/stamp/manual           Web self-service stamp

  Bookings:
    GET    /api/bookings               Journal/calendar read
    PUT    /api/bookings/{id}          Admin time correction

  Figures:
    GET    /api/dashboard              Weekly figures + alerts
    GET    /api/month-stats            Soll/Ist/Saldo for one month

  Requests:
    GET    /api/requests               List requests
    POST   /api/requests               Submit request
    PUT    /api/requests/{id}/status   Approve/reject (admin)
    POST   /api/requests/{id}/seen     Acknowledge a decision
    DELETE /api/requests/{id}          Withdraw (cascades if approved)

  Audit:
    GET    /api/history                Audit trail view

  Users (admin):
    GET    /api/users                  List employees
    POST   /api/users                  Create employee
    PUT    /api/users/{id}             Update employee
    DELETE /api/users/{id}             Deactivate employee

ERROR HANDLING:
  Domain errors map to HTTP status via the attendance error classifiers:
  - 400: Validation errors, invalid input
  - 403: Role does not permit the operation
  - 404: Unknown user/booking/request/card
  - 409: Conflict (state machine refused the transition)
  - 503: Storage unavailable (retryable)
  - 500: Everything else

SEE ALSO:
  - dto.go: Request/response data structures
  - actor.go: Acting-user resolution
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/zeitwerk/attendance-engine/attendance"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Stamps     *attendance.StampService
	Ledger     *attendance.Ledger
	Reconciler *attendance.Reconciler

	Bookings attendance.BookingStore
	Users    attendance.UserStore
	Requests attendance.RequestStore
	Audit    attendance.AuditStore
	Recorder *attendance.Recorder

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewHandler wires the engine over the given stores.
func NewHandler(bookings attendance.BookingStore, users attendance.UserStore, requests attendance.RequestStore, audit attendance.AuditStore) *Handler {
	locks := attendance.NewDayLocks()
	recorder := attendance.NewRecorder(audit)
	ledger := attendance.NewLedger(bookings)
	return &Handler{
		Stamps:     attendance.NewStampService(ledger, users, recorder, locks),
		Ledger:     ledger,
		Reconciler: attendance.NewReconciler(bookings, requests, users, recorder, locks),
		Bookings:   bookings,
		Users:      users,
		Requests:   requests,
		Audit:      audit,
		Recorder:   recorder,
		Now:        time.Now,
	}
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// =============================================================================
// STAMP ENDPOINTS
// =============================================================================

// StampBadge handles a hardware badge scan.
// POST /api/stamp
func (h *Handler) StampBadge(w http.ResponseWriter, r *http.Request) {
	var req BadgeStampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.Stamps.StampByBadge(r.Context(), req.CardID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStampDTO(result))
}

// StampManual handles a self-service web stamp for the acting user.
// POST /api/stamp/manual
func (h *Handler) StampManual(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}
	var req ManualStampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.Stamps.StampByAction(r.Context(), actor.ID, attendance.StampAction(req.Action))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStampDTO(result))
}

func toStampDTO(res *attendance.StampResult) StampDTO {
	return StampDTO{
		UserID:      string(res.User.ID),
		DisplayName: res.User.DisplayName,
		Direction:   string(res.Direction),
		Time:        res.Time,
		Type:        string(res.Type),
		NoOp:        res.NoOp,
	}
}

// =============================================================================
// BOOKING ENDPOINTS
// =============================================================================

// ListBookings returns journal rows for one user and date range.
// user_id=all reads the whole tenant (admin only).
// GET /api/bookings?user_id=&from=&to=&type=
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}

	filter := attendance.BookingFilter{}
	owners := map[attendance.UserID]*attendance.User{actor.ID: actor}
	if r.URL.Query().Get("user_id") == "all" {
		if !actor.IsAdmin() {
			writeError(w, http.StatusForbidden, "Cannot read another user's data", attendance.ErrNotAllowed)
			return
		}
		// Empty filter user = whole tenant.
		all, err := h.Users.List(r.Context(), actor.TenantID)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		for i := range all {
			owners[all[i].ID] = &all[i]
		}
	} else {
		target, ok := h.resolveTarget(w, r, actor)
		if !ok {
			return
		}
		filter.UserID = target.ID
		owners[target.ID] = target
	}
	if v := r.URL.Query().Get("from"); v != "" {
		d, err := attendance.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from date", err)
			return
		}
		filter.From = d
	}
	if v := r.URL.Query().Get("to"); v != "" {
		d, err := attendance.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to date", err)
			return
		}
		filter.To = d
	}
	if v := r.URL.Query().Get("type"); v != "" {
		filter.Type = attendance.BookingType(v)
	}

	bookings, err := h.Bookings.List(r.Context(), actor.TenantID, filter)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	dtos := make([]BookingDTO, len(bookings))
	for i := range bookings {
		owner := owners[bookings[i].UserID]
		if owner == nil {
			owner = actor
		}
		dtos[i] = toBookingDTO(&bookings[i], owner)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// EditBooking applies an administrative time correction to a booking.
// PUT /api/bookings/{id}
func (h *Handler) EditBooking(w http.ResponseWriter, r *http.Request) {
	actor := requireAdmin(w, r)
	if actor == nil {
		return
	}
	var req EditBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	id := attendance.BookingID(chi.URLParam(r, "id"))

	before, err := h.Bookings.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	b, err := h.Ledger.EditTimes(r.Context(), id, actor.DisplayName, req.Start, req.End, req.Reason)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	target, err := h.Users.Get(r.Context(), b.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	h.Recorder.Record(r.Context(), actor.TenantID, actor.DisplayName, "Buchung bearbeitet",
		before.Start+"-"+before.End, b.Start+"-"+b.End, target.DisplayName)

	writeJSON(w, http.StatusOK, toBookingDTO(b, target))
}

// =============================================================================
// DASHBOARD / STATS ENDPOINTS
// =============================================================================

// Dashboard returns the acting user's landing-page figures.
// GET /api/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}
	ctx := r.Context()
	now := h.now()
	today := attendance.DateOf(now)

	// One query covers the week figure, the month figure and the
	// missed-clock-out alerts.
	yearStart := attendance.NewDate(now.Year(), time.January, 1)
	bookings, err := h.Bookings.List(ctx, actor.TenantID, attendance.BookingFilter{
		UserID: actor.ID,
		From:   yearStart,
		To:     today,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	month := attendance.MonthBalance(bookings, actor.DailyTarget, actor.WorkingDays, now.Year(), now.Month())
	weekTarget := actor.DailyTarget.Mul(decimal.NewFromInt(int64(len(actor.WorkingDays))))

	dto := DashboardDTO{
		WeekActual:        attendance.WeekActual(bookings, now).String(),
		WeekTarget:        weekTarget.String(),
		MonthSoll:         month.Soll.String(),
		MonthIst:          month.Ist.String(),
		MonthSaldo:        month.Saldo.String(),
		VacationAllowance: actor.VacationDays,
		VacationTaken:     attendance.VacationTaken(bookings, actor.WorkingDays, now.Year()),
		Alerts:            []AlertDTO{},
		Today:             []BookingDTO{},
	}
	dto.VacationRemaining = dto.VacationAllowance - dto.VacationTaken

	for i := range bookings {
		b := &bookings[i]
		if b.Date.Equal(today) {
			dto.Today = append(dto.Today, toBookingDTO(b, actor))
			if b.Open() {
				dto.ClockedIn = true
			}
			continue
		}
		if b.Open() {
			dto.Alerts = append(dto.Alerts, AlertDTO{Date: b.Date.String(), Start: b.Start, Type: string(b.Type)})
		}
	}

	// The notification badge degrades to zero when the request store is
	// unavailable; the figures above still render.
	decided, err := h.Requests.List(ctx, actor.TenantID, attendance.RequestFilter{UserID: actor.ID})
	if err != nil {
		log.Printf("dashboard: request list unavailable for %s: %v", actor.ID, err)
	}
	for i := range decided {
		if decided[i].Status != attendance.StatusPending && !decided[i].Seen {
			dto.UnseenDecisions++
		}
	}

	writeJSON(w, http.StatusOK, dto)
}

// MonthStats returns the Soll/Ist/Saldo summary for one user and month.
// GET /api/month-stats?user_id=&year=&month=
func (h *Handler) MonthStats(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}
	target, ok := h.resolveTarget(w, r, actor)
	if !ok {
		return
	}

	now := h.now()
	year, month := now.Year(), now.Month()
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = y
	}
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			writeError(w, http.StatusBadRequest, "Invalid month", err)
			return
		}
		month = time.Month(m)
	}

	period := attendance.MonthPeriod(year, month)
	bookings, err := h.Bookings.List(r.Context(), actor.TenantID, attendance.BookingFilter{
		UserID: target.ID,
		From:   period.Start,
		To:     period.End,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	sum := attendance.MonthBalance(bookings, target.DailyTarget, target.WorkingDays, year, month)
	writeJSON(w, http.StatusOK, MonthStatsDTO{
		UserID:      string(target.ID),
		Year:        year,
		Month:       int(month),
		Soll:        sum.Soll.String(),
		Ist:         sum.Ist.String(),
		Saldo:       sum.Saldo.String(),
		WorkingDays: sum.WorkingDays,
		LeaveDays:   sum.LeaveDays,
	})
}

// =============================================================================
// REQUEST ENDPOINTS
// =============================================================================

// ListRequests returns requests: admins see the whole tenant, everyone
// else their own.
// GET /api/requests?status=
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}
	filter := attendance.RequestFilter{}
	if !actor.IsAdmin() {
		filter.UserID = actor.ID
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = attendance.RequestStatus(v)
	}

	requests, err := h.Requests.List(r.Context(), actor.TenantID, filter)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	// Join in display names for the list view.
	names := map[attendance.UserID]string{actor.ID: actor.DisplayName}
	if actor.IsAdmin() {
		if users, err := h.Users.List(r.Context(), actor.TenantID); err == nil {
			for i := range users {
				names[users[i].ID] = users[i].DisplayName
			}
		}
	}

	dtos := make([]RequestDTO, len(requests))
	for i := range requests {
		dtos[i] = toRequestDTO(&requests[i])
		dtos[i].DisplayName = names[requests[i].UserID]
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SubmitRequest files a leave or correction request.
// POST /api/requests
func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}
	var req SubmitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	in := attendance.SubmitInput{
		TargetUserID: attendance.UserID(req.UserID),
		Type:         attendance.BookingType(req.Type),
		NewStart:     req.NewStart,
		NewEnd:       req.NewEnd,
		Reason:       req.Reason,
	}
	if req.Date != "" {
		d, err := attendance.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date", err)
			return
		}
		in.Date = d
	}
	if req.EndDate != "" {
		d, err := attendance.ParseDate(req.EndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end date", err)
			return
		}
		in.EndDate = d
	}

	created, err := h.Reconciler.Submit(r.Context(), actor, in)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRequestDTO(created))
}

// UpdateRequestStatus performs the one-shot approve/reject transition.
// PUT /api/requests/{id}/status
func (h *Handler) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	id := attendance.RequestID(chi.URLParam(r, "id"))

	if err := h.Reconciler.SetStatus(r.Context(), actor, id, attendance.RequestStatus(req.Status)); err != nil {
		respondDomainError(w, err)
		return
	}
	updated, err := h.Requests.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestDTO(updated))
}

// MarkRequestSeen acknowledges a decided request.
// POST /api/requests/{id}/seen
func (h *Handler) MarkRequestSeen(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}
	id := attendance.RequestID(chi.URLParam(r, "id"))
	if err := h.Reconciler.MarkSeen(r.Context(), actor, id); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteRequest withdraws a request, removing produced bookings when it
// had been approved.
// DELETE /api/requests/{id}
func (h *Handler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}
	id := attendance.RequestID(chi.URLParam(r, "id"))
	if err := h.Reconciler.Delete(r.Context(), actor, id); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// AUDIT ENDPOINT
// =============================================================================

// History returns the audit trail. Admins see the whole tenant; everyone
// else only rows they participate in.
// GET /api/history?from=&to=&limit=
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}
	filter := attendance.AuditFilter{}
	if !actor.IsAdmin() {
		filter.Participant = actor.DisplayName
	}
	if v := r.URL.Query().Get("from"); v != "" {
		d, err := attendance.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from date", err)
			return
		}
		filter.From = d
	}
	if v := r.URL.Query().Get("to"); v != "" {
		d, err := attendance.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to date", err)
			return
		}
		filter.To = d
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		filter.Limit = n
	}

	entries, err := h.Audit.Query(r.Context(), actor.TenantID, filter)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	dtos := make([]AuditDTO, len(entries))
	for i := range entries {
		dtos[i] = toAuditDTO(&entries[i])
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// USER ENDPOINTS (admin)
// =============================================================================

// ListUsers returns all employees of the tenant.
// GET /api/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor := requireAdmin(w, r)
	if actor == nil {
		return
	}
	users, err := h.Users.List(r.Context(), actor.TenantID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = toUserDTO(&users[i])
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateUser creates an employee record with defaults filled in.
// POST /api/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor := requireAdmin(w, r)
	if actor == nil {
		return
	}
	var req SaveUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Username == "" || req.DisplayName == "" {
		writeError(w, http.StatusBadRequest, "username and displayName are required", nil)
		return
	}

	u := &attendance.User{
		TenantID:     actor.TenantID,
		Username:     req.Username,
		DisplayName:  req.DisplayName,
		Role:         attendance.RoleUser,
		CardID:       req.CardID,
		DailyTarget:  attendance.DefaultDailyTarget,
		VacationDays: attendance.DefaultVacationDays,
		WorkingDays:  attendance.DefaultWorkingDays(),
		Active:       true,
	}
	if err := applyUserRequest(u, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user fields", err)
		return
	}
	if err := h.Users.Save(r.Context(), u); err != nil {
		respondDomainError(w, err)
		return
	}

	h.Recorder.Record(r.Context(), actor.TenantID, actor.DisplayName, "Benutzer angelegt", "", u.Username, u.DisplayName)
	writeJSON(w, http.StatusCreated, toUserDTO(u))
}

// UpdateUser modifies an employee record.
// PUT /api/users/{id}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor := requireAdmin(w, r)
	if actor == nil {
		return
	}
	var req SaveUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	u, err := h.Users.Get(r.Context(), attendance.UserID(chi.URLParam(r, "id")))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if u.TenantID != actor.TenantID {
		respondDomainError(w, attendance.ErrUserNotFound)
		return
	}

	if req.Username != "" {
		u.Username = req.Username
	}
	if req.DisplayName != "" {
		u.DisplayName = req.DisplayName
	}
	if err := applyUserRequest(u, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user fields", err)
		return
	}
	if err := h.Users.Save(r.Context(), u); err != nil {
		respondDomainError(w, err)
		return
	}

	h.Recorder.Record(r.Context(), actor.TenantID, actor.DisplayName, "Benutzer bearbeitet", "", u.Username, u.DisplayName)
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

// DeactivateUser soft-deletes an employee: the record and its bookings
// survive, the badge is unlinked.
// DELETE /api/users/{id}
func (h *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	actor := requireAdmin(w, r)
	if actor == nil {
		return
	}
	u, err := h.Users.Get(r.Context(), attendance.UserID(chi.URLParam(r, "id")))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if u.TenantID != actor.TenantID {
		respondDomainError(w, attendance.ErrUserNotFound)
		return
	}

	u.Active = false
	u.CardID = ""
	if err := h.Users.Save(r.Context(), u); err != nil {
		respondDomainError(w, err)
		return
	}

	h.Recorder.Record(r.Context(), actor.TenantID, actor.DisplayName, "Benutzer deaktiviert", u.Username, "", u.DisplayName)
	w.WriteHeader(http.StatusNoContent)
}

// applyUserRequest copies the optional fields of a save request onto u.
func applyUserRequest(u *attendance.User, req *SaveUserRequest) error {
	if req.Role != "" {
		u.Role = attendance.Role(req.Role)
	}
	if req.CardID != "" {
		u.CardID = req.CardID
	}
	if req.DailyTarget != "" {
		target, err := decimal.NewFromString(req.DailyTarget)
		if err != nil {
			return err
		}
		u.DailyTarget = target
	}
	if req.VacationDays != nil {
		u.VacationDays = *req.VacationDays
	}
	if len(req.WorkingDays) > 0 {
		days := make(attendance.WorkingDays, len(req.WorkingDays))
		for i, d := range req.WorkingDays {
			days[i] = time.Weekday(d)
		}
		u.WorkingDays = days
	}
	if req.Active != nil {
		u.Active = *req.Active
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// resolveTarget returns the user a read applies to: user_id query param
// for admins, always the actor themselves otherwise.
func (h *Handler) resolveTarget(w http.ResponseWriter, r *http.Request, actor *attendance.User) (*attendance.User, bool) {
	id := r.URL.Query().Get("user_id")
	if id == "" || attendance.UserID(id) == actor.ID {
		return actor, true
	}
	if !actor.IsAdmin() {
		writeError(w, http.StatusForbidden, "Cannot read another user's data", attendance.ErrNotAllowed)
		return nil, false
	}
	target, err := h.Users.Get(r.Context(), attendance.UserID(id))
	if err != nil {
		respondDomainError(w, err)
		return nil, false
	}
	if target.TenantID != actor.TenantID {
		respondDomainError(w, attendance.ErrUserNotFound)
		return nil, false
	}
	return target, true
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// respondDomainError maps a domain error onto the HTTP status surface.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case attendance.IsValidation(err):
		writeError(w, http.StatusBadRequest, "Invalid input", err)
	case errors.Is(err, attendance.ErrNotAllowed):
		writeError(w, http.StatusForbidden, "Operation not permitted", err)
	case attendance.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	case attendance.IsConflict(err):
		writeError(w, http.StatusConflict, "Conflict", err)
	case attendance.IsRetryable(err):
		writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}
