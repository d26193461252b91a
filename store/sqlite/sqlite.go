/*
Package sqlite provides the SQLite-backed implementation of the
attendance storage interfaces.

PURPOSE:
  Production persistence for users, bookings, requests and the audit
  trail. The same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

INTERFACES IMPLEMENTED:
  attendance.BookingStore: the work/leave interval ledger
  attendance.UserStore:    employee records (deactivate, never delete)
  attendance.RequestStore: leave/correction proposals
  attendance.AuditStore:   append-only trail, retention-capped

INVARIANT ENFORCEMENT:
  A partial unique index guarantees at most one OPEN booking (started,
  not terminated) per (user, date). A violating insert surfaces
  ErrDuplicateOpenBooking. This is the storage-level backstop behind the
  engine's per-(user, date) serialization (see attendance/stamp.go).

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  st, err := sqlite.New("./data/attendance.db")   // ":memory:" for tests
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

  ledger := attendance.NewLedger(st.Bookings)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - attendance/store.go: interface definitions
  - attendance/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/zeitwerk/attendance-engine/attendance"
)

// Store bundles the per-interface implementations over one connection.
type Store struct {
	db *sql.DB

	Bookings *BookingStore
	Users    *UserStore
	Requests *RequestStore
	Audit    *AuditStore
}

// New opens (and migrates) the database. Use ":memory:" for tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	s.Bookings = &BookingStore{db: db}
	s.Users = &UserStore{db: db}
	s.Requests = &RequestStore{db: db}
	s.Audit = &AuditStore{db: db}
	return s, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		username TEXT NOT NULL,
		display_name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		card_id TEXT,
		daily_target TEXT NOT NULL DEFAULT '8',
		vacation_days INTEGER NOT NULL DEFAULT 30,
		working_days TEXT NOT NULL DEFAULT '1,2,3,4,5',
		active BOOLEAN NOT NULL DEFAULT TRUE
	);

	CREATE INDEX IF NOT EXISTS idx_users_tenant ON users(tenant_id);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_users_card
		ON users(card_id) WHERE card_id IS NOT NULL AND card_id != '';

	-- Bookings: one work/leave interval per row. Times are "HH:MM"
	-- strings, '' = unset. History rides along as JSON.
	CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		tenant_id TEXT NOT NULL,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL DEFAULT '',
		end_time TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL,
		remarks TEXT NOT NULL DEFAULT '',
		is_edited BOOLEAN NOT NULL DEFAULT FALSE,
		history_json TEXT NOT NULL DEFAULT '[]'
	);

	CREATE INDEX IF NOT EXISTS idx_bookings_user_date ON bookings(user_id, date);
	CREATE INDEX IF NOT EXISTS idx_bookings_tenant_date ON bookings(tenant_id, date DESC);

	-- CRITICAL: at most one open booking (started, not terminated) per
	-- user and day.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_one_open
		ON bookings(user_id, date)
		WHERE start_time != '' AND end_time = '';

	CREATE TABLE IF NOT EXISTS requests (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		end_date TEXT NOT NULL DEFAULT '',
		new_start TEXT NOT NULL DEFAULT '',
		new_end TEXT NOT NULL DEFAULT '',
		reason TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT 'Sonstiges',
		status TEXT NOT NULL DEFAULT 'pending',
		seen BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_requests_user ON requests(user_id);
	CREATE INDEX IF NOT EXISTS idx_requests_status ON requests(status);

	CREATE TABLE IF NOT EXISTS audit_logs (
		id TEXT PRIMARY KEY,
		tenant_id TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		actor TEXT NOT NULL,
		action TEXT NOT NULL,
		old_value TEXT NOT NULL DEFAULT '',
		new_value TEXT NOT NULL DEFAULT '',
		affected_user TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_audit_tenant_time ON audit_logs(tenant_id, timestamp DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// rowScanner lets scan helpers work on *sql.Row and *sql.Rows alike.
type rowScanner interface{ Scan(dest ...any) error }

// =============================================================================
// BOOKING STORE
// =============================================================================

type BookingStore struct{ db *sql.DB }

var _ attendance.BookingStore = (*BookingStore)(nil)

const bookingColumns = `id, user_id, tenant_id, date, start_time, end_time, type, remarks, is_edited, history_json`

func (bs *BookingStore) Insert(ctx context.Context, b *attendance.Booking) error {
	if b.ID == "" {
		b.ID = attendance.BookingID(uuid.NewString())
	}
	hist, err := json.Marshal(historyOrEmpty(b.History))
	if err != nil {
		return &attendance.StoreError{Op: "insert booking", Err: err}
	}
	_, err = bs.db.ExecContext(ctx, `
		INSERT INTO bookings (id, user_id, tenant_id, date, start_time, end_time, type, remarks, is_edited, history_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(b.ID), string(b.UserID), string(b.TenantID), b.Date.String(),
		b.Start, b.End, string(b.Type), b.Remarks, b.IsEdited, string(hist))
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.ErrDuplicateOpenBooking
		}
		return &attendance.StoreError{Op: "insert booking", Err: err}
	}
	return nil
}

func (bs *BookingStore) Update(ctx context.Context, b *attendance.Booking) error {
	hist, err := json.Marshal(historyOrEmpty(b.History))
	if err != nil {
		return &attendance.StoreError{Op: "update booking", Err: err}
	}
	res, err := bs.db.ExecContext(ctx, `
		UPDATE bookings SET start_time = ?, end_time = ?, type = ?, remarks = ?, is_edited = ?, history_json = ?
		WHERE id = ?`,
		b.Start, b.End, string(b.Type), b.Remarks, b.IsEdited, string(hist), string(b.ID))
	if err != nil {
		return &attendance.StoreError{Op: "update booking", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return attendance.ErrBookingNotFound
	}
	return nil
}

func (bs *BookingStore) Get(ctx context.Context, id attendance.BookingID) (*attendance.Booking, error) {
	row := bs.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, string(id))
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, attendance.ErrBookingNotFound
	}
	return b, err
}

func (bs *BookingStore) FindOpen(ctx context.Context, userID attendance.UserID, date attendance.Date) (*attendance.Booking, error) {
	row := bs.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings
		 WHERE user_id = ? AND date = ? AND start_time != '' AND end_time = ''`,
		string(userID), date.String())
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

func (bs *BookingStore) ListDay(ctx context.Context, userID attendance.UserID, date attendance.Date) ([]attendance.Booking, error) {
	rows, err := bs.db.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings
		 WHERE user_id = ? AND date = ? ORDER BY start_time ASC`,
		string(userID), date.String())
	if err != nil {
		return nil, &attendance.StoreError{Op: "list day", Err: err}
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (bs *BookingStore) List(ctx context.Context, tenantID attendance.TenantID, f attendance.BookingFilter) ([]attendance.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE tenant_id = ?`
	args := []any{string(tenantID)}
	if f.UserID != "" {
		q += ` AND user_id = ?`
		args = append(args, string(f.UserID))
	}
	if !f.From.IsZero() {
		q += ` AND date >= ?`
		args = append(args, f.From.String())
	}
	if !f.To.IsZero() {
		q += ` AND date <= ?`
		args = append(args, f.To.String())
	}
	if f.Type != "" {
		q += ` AND type = ?`
		args = append(args, string(f.Type))
	}
	q += ` ORDER BY date DESC, start_time DESC`

	rows, err := bs.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, &attendance.StoreError{Op: "list bookings", Err: err}
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (bs *BookingStore) DeleteByTypeInRange(ctx context.Context, userID attendance.UserID, span attendance.Period, t attendance.BookingType) (int, error) {
	res, err := bs.db.ExecContext(ctx,
		`DELETE FROM bookings WHERE user_id = ? AND date >= ? AND date <= ? AND type = ?`,
		string(userID), span.Start.String(), span.End.String(), string(t))
	if err != nil {
		return 0, &attendance.StoreError{Op: "delete bookings", Err: err}
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func scanBooking(row rowScanner) (*attendance.Booking, error) {
	var (
		b                                    attendance.Booking
		id, uid, tid, dateStr, typ, histJSON string
	)
	err := row.Scan(&id, &uid, &tid, &dateStr, &b.Start, &b.End, &typ, &b.Remarks, &b.IsEdited, &histJSON)
	if err != nil {
		return nil, err
	}
	b.ID = attendance.BookingID(id)
	b.UserID = attendance.UserID(uid)
	b.TenantID = attendance.TenantID(tid)
	b.Type = attendance.BookingType(typ)
	if b.Date, err = attendance.ParseDate(dateStr); err != nil {
		return nil, &attendance.StoreError{Op: "scan booking date", Err: err}
	}
	if err := json.Unmarshal([]byte(histJSON), &b.History); err != nil {
		return nil, &attendance.StoreError{Op: "scan booking history", Err: err}
	}
	return &b, nil
}

func collectBookings(rows *sql.Rows) ([]attendance.Booking, error) {
	var out []attendance.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, &attendance.StoreError{Op: "scan booking", Err: err}
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, &attendance.StoreError{Op: "iterate bookings", Err: err}
	}
	return out, nil
}

func historyOrEmpty(h []attendance.HistoryEntry) []attendance.HistoryEntry {
	if h == nil {
		return []attendance.HistoryEntry{}
	}
	return h
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// =============================================================================
// USER STORE
// =============================================================================

type UserStore struct{ db *sql.DB }

var _ attendance.UserStore = (*UserStore)(nil)

const userColumns = `id, tenant_id, username, display_name, role, COALESCE(card_id, ''), daily_target, vacation_days, working_days, active`

func (us *UserStore) Get(ctx context.Context, id attendance.UserID) (*attendance.User, error) {
	row := us.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, string(id))
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, attendance.ErrUserNotFound
	}
	return u, err
}

func (us *UserStore) GetByCard(ctx context.Context, cardID string) (*attendance.User, error) {
	if cardID == "" {
		return nil, attendance.ErrUnknownCard
	}
	row := us.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE card_id = ? AND active`, cardID)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, attendance.ErrUnknownCard
	}
	return u, err
}

func (us *UserStore) List(ctx context.Context, tenantID attendance.TenantID) ([]attendance.User, error) {
	rows, err := us.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE tenant_id = ?
		 ORDER BY display_name ASC`, string(tenantID))
	if err != nil {
		return nil, &attendance.StoreError{Op: "list users", Err: err}
	}
	defer rows.Close()

	var out []attendance.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, &attendance.StoreError{Op: "scan user", Err: err}
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (us *UserStore) Save(ctx context.Context, u *attendance.User) error {
	if u.ID == "" {
		u.ID = attendance.UserID(uuid.NewString())
	}
	_, err := us.db.ExecContext(ctx, `
		INSERT INTO users (id, tenant_id, username, display_name, role, card_id, daily_target, vacation_days, working_days, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			display_name = excluded.display_name,
			role = excluded.role,
			card_id = excluded.card_id,
			daily_target = excluded.daily_target,
			vacation_days = excluded.vacation_days,
			working_days = excluded.working_days,
			active = excluded.active`,
		string(u.ID), string(u.TenantID), u.Username, u.DisplayName, string(u.Role),
		u.CardID, u.DailyTarget.String(), u.VacationDays, encodeWorkingDays(u.WorkingDays), u.Active)
	if err != nil {
		return &attendance.StoreError{Op: "save user", Err: err}
	}
	return nil
}

func scanUser(row rowScanner) (*attendance.User, error) {
	var (
		u                              attendance.User
		id, tid, role, target, workdays string
	)
	err := row.Scan(&id, &tid, &u.Username, &u.DisplayName, &role, &u.CardID, &target, &u.VacationDays, &workdays, &u.Active)
	if err != nil {
		return nil, err
	}
	u.ID = attendance.UserID(id)
	u.TenantID = attendance.TenantID(tid)
	u.Role = attendance.Role(role)
	if u.DailyTarget, err = decimal.NewFromString(target); err != nil {
		u.DailyTarget = attendance.DefaultDailyTarget
	}
	u.WorkingDays = decodeWorkingDays(workdays)
	return &u, nil
}

// Working days persist as a comma-joined weekday list ("1,2,3,4,5",
// Sunday = 0), matching the legacy schema.
func encodeWorkingDays(w attendance.WorkingDays) string {
	if len(w) == 0 {
		w = attendance.DefaultWorkingDays()
	}
	parts := make([]string, len(w))
	for i, d := range w {
		parts[i] = fmt.Sprintf("%d", int(d))
	}
	return strings.Join(parts, ",")
}

func decodeWorkingDays(s string) attendance.WorkingDays {
	if s == "" {
		return attendance.DefaultWorkingDays()
	}
	var out attendance.WorkingDays
	for _, part := range strings.Split(s, ",") {
		var d int
		if _, err := fmt.Sscanf(strings.TrimSpace(part), "%d", &d); err == nil && d >= 0 && d <= 6 {
			out = append(out, time.Weekday(d))
		}
	}
	if len(out) == 0 {
		return attendance.DefaultWorkingDays()
	}
	return out
}

// =============================================================================
// REQUEST STORE
// =============================================================================

type RequestStore struct{ db *sql.DB }

var _ attendance.RequestStore = (*RequestStore)(nil)

const requestColumns = `id, user_id, date, end_date, new_start, new_end, reason, type, status, seen, created_at`

func (rs *RequestStore) Insert(ctx context.Context, r *attendance.Request) error {
	if r.ID == "" {
		r.ID = attendance.RequestID(uuid.NewString())
	}
	endDate := ""
	if !r.EndDate.IsZero() {
		endDate = r.EndDate.String()
	}
	_, err := rs.db.ExecContext(ctx, `
		INSERT INTO requests (id, user_id, date, end_date, new_start, new_end, reason, type, status, seen, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(r.ID), string(r.UserID), r.Date.String(), endDate,
		r.NewStart, r.NewEnd, r.Reason, string(r.Type), string(r.Status), r.Seen,
		r.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return &attendance.StoreError{Op: "insert request", Err: err}
	}
	return nil
}

func (rs *RequestStore) Get(ctx context.Context, id attendance.RequestID) (*attendance.Request, error) {
	row := rs.db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE id = ?`, string(id))
	r, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, attendance.ErrRequestNotFound
	}
	return r, err
}

func (rs *RequestStore) UpdateStatus(ctx context.Context, id attendance.RequestID, status attendance.RequestStatus) error {
	res, err := rs.db.ExecContext(ctx,
		`UPDATE requests SET status = ? WHERE id = ?`, string(status), string(id))
	if err != nil {
		return &attendance.StoreError{Op: "update request status", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return attendance.ErrRequestNotFound
	}
	return nil
}

func (rs *RequestStore) MarkSeen(ctx context.Context, id attendance.RequestID) error {
	res, err := rs.db.ExecContext(ctx,
		`UPDATE requests SET seen = TRUE WHERE id = ?`, string(id))
	if err != nil {
		return &attendance.StoreError{Op: "mark request seen", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return attendance.ErrRequestNotFound
	}
	return nil
}

func (rs *RequestStore) Delete(ctx context.Context, id attendance.RequestID) error {
	res, err := rs.db.ExecContext(ctx,
		`DELETE FROM requests WHERE id = ?`, string(id))
	if err != nil {
		return &attendance.StoreError{Op: "delete request", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return attendance.ErrRequestNotFound
	}
	return nil
}

func (rs *RequestStore) List(ctx context.Context, tenantID attendance.TenantID, f attendance.RequestFilter) ([]attendance.Request, error) {
	// Requests carry no tenant column; scope via the owning user.
	q := `SELECT ` + requestColumns + ` FROM requests
	      WHERE user_id IN (SELECT id FROM users WHERE tenant_id = ?)`
	args := []any{string(tenantID)}
	if f.UserID != "" {
		q += ` AND user_id = ?`
		args = append(args, string(f.UserID))
	}
	if f.Status != "" {
		q += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	q += ` ORDER BY created_at DESC`

	rows, err := rs.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, &attendance.StoreError{Op: "list requests", Err: err}
	}
	defer rows.Close()

	var out []attendance.Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, &attendance.StoreError{Op: "scan request", Err: err}
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func scanRequest(row rowScanner) (*attendance.Request, error) {
	var (
		r                             attendance.Request
		id, uid, dateStr, endStr, typ string
		status, createdStr            string
	)
	err := row.Scan(&id, &uid, &dateStr, &endStr, &r.NewStart, &r.NewEnd, &r.Reason, &typ, &status, &r.Seen, &createdStr)
	if err != nil {
		return nil, err
	}
	r.ID = attendance.RequestID(id)
	r.UserID = attendance.UserID(uid)
	r.Type = attendance.BookingType(typ)
	r.Status = attendance.RequestStatus(status)
	if r.Date, err = attendance.ParseDate(dateStr); err != nil {
		return nil, &attendance.StoreError{Op: "scan request date", Err: err}
	}
	if endStr != "" {
		if r.EndDate, err = attendance.ParseDate(endStr); err != nil {
			return nil, &attendance.StoreError{Op: "scan request end date", Err: err}
		}
	}
	if t, err := time.Parse(time.RFC3339, createdStr); err == nil {
		r.CreatedAt = t
	}
	return &r, nil
}

// =============================================================================
// AUDIT STORE
// =============================================================================

type AuditStore struct{ db *sql.DB }

var _ attendance.AuditStore = (*AuditStore)(nil)

func (as *AuditStore) Append(ctx context.Context, e attendance.AuditEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := as.db.ExecContext(ctx, `
		INSERT INTO audit_logs (id, tenant_id, timestamp, actor, action, old_value, new_value, affected_user)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.TenantID), e.Timestamp.UTC().Format(time.RFC3339Nano),
		e.Actor, e.Action, e.OldValue, e.NewValue, e.AffectedUser)
	if err != nil {
		return &attendance.StoreError{Op: "append audit", Err: err}
	}
	return nil
}

func (as *AuditStore) Query(ctx context.Context, tenantID attendance.TenantID, f attendance.AuditFilter) ([]attendance.AuditEntry, error) {
	q := `SELECT id, tenant_id, timestamp, actor, action, old_value, new_value, affected_user
	      FROM audit_logs WHERE tenant_id = ?`
	args := []any{string(tenantID)}
	if f.Participant != "" {
		q += ` AND (actor = ? OR affected_user = ?)`
		args = append(args, f.Participant, f.Participant)
	}
	if !f.From.IsZero() {
		q += ` AND timestamp >= ?`
		args = append(args, f.From.Time().UTC().Format(time.RFC3339Nano))
	}
	if !f.To.IsZero() {
		// Half-open on the day after To, so the end day is fully included.
		q += ` AND timestamp < ?`
		args = append(args, f.To.AddDays(1).Time().UTC().Format(time.RFC3339Nano))
	}
	q += ` ORDER BY timestamp DESC LIMIT ?`
	limit := f.Limit
	if limit <= 0 {
		limit = 200
	}
	args = append(args, limit)

	rows, err := as.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, &attendance.StoreError{Op: "query audit", Err: err}
	}
	defer rows.Close()

	var out []attendance.AuditEntry
	for rows.Next() {
		var (
			e       attendance.AuditEntry
			tid, ts string
		)
		if err := rows.Scan(&e.ID, &tid, &ts, &e.Actor, &e.Action, &e.OldValue, &e.NewValue, &e.AffectedUser); err != nil {
			return nil, &attendance.StoreError{Op: "scan audit", Err: err}
		}
		e.TenantID = attendance.TenantID(tid)
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			e.Timestamp = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (as *AuditStore) Prune(ctx context.Context, tenantID attendance.TenantID, keep int) error {
	_, err := as.db.ExecContext(ctx, `
		DELETE FROM audit_logs WHERE tenant_id = ? AND id NOT IN (
			SELECT id FROM audit_logs WHERE tenant_id = ?
			ORDER BY timestamp DESC LIMIT ?
		)`, string(tenantID), string(tenantID), keep)
	if err != nil {
		return &attendance.StoreError{Op: "prune audit", Err: err}
	}
	return nil
}
