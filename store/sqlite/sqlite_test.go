package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeitwerk/attendance-engine/attendance"
	"github.com/zeitwerk/attendance-engine/store/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func seedUser(t *testing.T, st *sqlite.Store, id, cardID string) *attendance.User {
	t.Helper()
	u := &attendance.User{
		ID:           attendance.UserID(id),
		TenantID:     "tenant-1",
		Username:     id,
		DisplayName:  "User " + id,
		Role:         attendance.RoleUser,
		CardID:       cardID,
		DailyTarget:  decimal.NewFromFloat(7.5),
		VacationDays: 28,
		WorkingDays:  attendance.DefaultWorkingDays(),
		Active:       true,
	}
	require.NoError(t, st.Users.Save(context.Background(), u))
	return u
}

func date(s string) attendance.Date {
	d, err := attendance.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// =============================================================================
// USER STORE
// =============================================================================

func TestUserStore_RoundTrip(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	seedUser(t, st, "emp-1", "card-42")

	u, err := st.Users.Get(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "User emp-1", u.DisplayName)
	assert.True(t, u.DailyTarget.Equal(decimal.NewFromFloat(7.5)))
	assert.Equal(t, 28, u.VacationDays)
	assert.Equal(t, attendance.DefaultWorkingDays(), u.WorkingDays)

	byCard, err := st.Users.GetByCard(ctx, "card-42")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byCard.ID)

	_, err = st.Users.Get(ctx, "missing")
	assert.ErrorIs(t, err, attendance.ErrUserNotFound)
	_, err = st.Users.GetByCard(ctx, "card-99")
	assert.ErrorIs(t, err, attendance.ErrUnknownCard)
}

func TestUserStore_SaveIsUpsert(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	u := seedUser(t, st, "emp-1", "card-42")

	u.DisplayName = "Renamed"
	u.Active = false
	u.CardID = ""
	require.NoError(t, st.Users.Save(ctx, u))

	after, err := st.Users.Get(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", after.DisplayName)
	assert.False(t, after.Active)

	// Deactivated user's badge no longer resolves.
	_, err = st.Users.GetByCard(ctx, "card-42")
	assert.ErrorIs(t, err, attendance.ErrUnknownCard)
}

func TestUserStore_CustomWorkingDays(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	u := seedUser(t, st, "emp-1", "")
	u.WorkingDays = attendance.WorkingDays{time.Monday, time.Wednesday, time.Friday}
	require.NoError(t, st.Users.Save(ctx, u))

	after, err := st.Users.Get(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, attendance.WorkingDays{time.Monday, time.Wednesday, time.Friday}, after.WorkingDays)
}

// =============================================================================
// BOOKING STORE
// =============================================================================

func TestBookingStore_OpenBookingUnique(t *testing.T) {
	// GIVEN: an open booking for (emp-1, 2026-03-10)
	// WHEN: a second open booking for the same cell is inserted
	// THEN: the partial unique index rejects it

	st := newStore(t)
	ctx := context.Background()
	seedUser(t, st, "emp-1", "")

	open := &attendance.Booking{
		UserID: "emp-1", TenantID: "tenant-1",
		Date: date("2026-03-10"), Start: "08:00",
		Type: attendance.TypeWebTerminal,
	}
	require.NoError(t, st.Bookings.Insert(ctx, open))

	dup := &attendance.Booking{
		UserID: "emp-1", TenantID: "tenant-1",
		Date: date("2026-03-10"), Start: "09:00",
		Type: attendance.TypeBadge,
	}
	err := st.Bookings.Insert(ctx, dup)
	assert.ErrorIs(t, err, attendance.ErrDuplicateOpenBooking)

	// A closed booking on the same day is fine.
	closed := &attendance.Booking{
		UserID: "emp-1", TenantID: "tenant-1",
		Date: date("2026-03-10"), Start: "06:00", End: "07:00",
		Type: attendance.TypeBadge,
	}
	assert.NoError(t, st.Bookings.Insert(ctx, closed))

	// Another user's open booking is fine too.
	seedUser(t, st, "emp-2", "")
	other := &attendance.Booking{
		UserID: "emp-2", TenantID: "tenant-1",
		Date: date("2026-03-10"), Start: "08:00",
		Type: attendance.TypeWebTerminal,
	}
	assert.NoError(t, st.Bookings.Insert(ctx, other))
}

func TestBookingStore_FindOpenAndClose(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	seedUser(t, st, "emp-1", "")

	b := &attendance.Booking{
		UserID: "emp-1", TenantID: "tenant-1",
		Date: date("2026-03-10"), Start: "08:00",
		Type: attendance.TypeWebTerminal,
	}
	require.NoError(t, st.Bookings.Insert(ctx, b))

	open, err := st.Bookings.FindOpen(ctx, "emp-1", date("2026-03-10"))
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, b.ID, open.ID)

	open.End = "16:30"
	require.NoError(t, st.Bookings.Update(ctx, open))

	none, err := st.Bookings.FindOpen(ctx, "emp-1", date("2026-03-10"))
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestBookingStore_HistorySurvivesRoundTrip(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	seedUser(t, st, "emp-1", "")

	b := &attendance.Booking{
		UserID: "emp-1", TenantID: "tenant-1",
		Date: date("2026-03-10"), Start: "08:00", End: "16:00",
		Type: attendance.TypeCorrection, IsEdited: true,
		History: []attendance.HistoryEntry{{
			ChangedAt: time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
			ChangedBy: "Boss",
			Change:    "Genehmigung: Korrektur",
			PrevStart: "08:15",
			PrevEnd:   "15:45",
			Reason:    "Vergessen zu stempeln",
		}},
	}
	require.NoError(t, st.Bookings.Insert(ctx, b))

	after, err := st.Bookings.Get(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, after.History, 1)
	assert.Equal(t, "Boss", after.History[0].ChangedBy)
	assert.Equal(t, "08:15", after.History[0].PrevStart)
	assert.True(t, after.IsEdited)
}

func TestBookingStore_ListFilters(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	seedUser(t, st, "emp-1", "")
	seedUser(t, st, "emp-2", "")

	insert := func(user, day, typ string) {
		b := &attendance.Booking{
			UserID: attendance.UserID(user), TenantID: "tenant-1",
			Date: date(day), Start: "08:00", End: "16:00",
			Type: attendance.BookingType(typ),
		}
		require.NoError(t, st.Bookings.Insert(ctx, b))
	}
	insert("emp-1", "2026-03-09", "Web-Terminal")
	insert("emp-1", "2026-03-10", "Urlaub")
	insert("emp-1", "2026-03-11", "Web-Terminal")
	insert("emp-2", "2026-03-10", "Web-Terminal")

	all, err := st.Bookings.List(ctx, "tenant-1", attendance.BookingFilter{UserID: "emp-1"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2026-03-11", all[0].Date.String(), "newest date first")

	ranged, err := st.Bookings.List(ctx, "tenant-1", attendance.BookingFilter{
		UserID: "emp-1", From: date("2026-03-10"), To: date("2026-03-10"),
	})
	require.NoError(t, err)
	require.Len(t, ranged, 1)

	typed, err := st.Bookings.List(ctx, "tenant-1", attendance.BookingFilter{
		UserID: "emp-1", Type: attendance.TypeVacation,
	})
	require.NoError(t, err)
	require.Len(t, typed, 1)

	otherTenant, err := st.Bookings.List(ctx, "tenant-2", attendance.BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, otherTenant)
}

func TestBookingStore_DeleteByTypeInRange(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	seedUser(t, st, "emp-1", "")

	vacation := &attendance.Booking{
		UserID: "emp-1", TenantID: "tenant-1",
		Date: date("2026-03-10"), Type: attendance.TypeVacation,
	}
	work := &attendance.Booking{
		UserID: "emp-1", TenantID: "tenant-1",
		Date: date("2026-03-10"), Start: "06:00", End: "07:00",
		Type: attendance.TypeBadge,
	}
	require.NoError(t, st.Bookings.Insert(ctx, vacation))
	require.NoError(t, st.Bookings.Insert(ctx, work))

	span := attendance.Period{Start: date("2026-03-09"), End: date("2026-03-11")}
	n, err := st.Bookings.DeleteByTypeInRange(ctx, "emp-1", span, attendance.TypeVacation)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = st.Bookings.Get(ctx, vacation.ID)
	assert.ErrorIs(t, err, attendance.ErrBookingNotFound)
	_, err = st.Bookings.Get(ctx, work.ID)
	assert.NoError(t, err, "unrelated booking on the same day survives")
}

// =============================================================================
// REQUEST STORE
// =============================================================================

func TestRequestStore_Lifecycle(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	seedUser(t, st, "emp-1", "")

	r := &attendance.Request{
		UserID:    "emp-1",
		Date:      date("2026-03-10"),
		EndDate:   date("2026-03-12"),
		Type:      attendance.TypeVacation,
		Status:    attendance.StatusPending,
		Reason:    "Skiurlaub",
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, st.Requests.Insert(ctx, r))

	got, err := st.Requests.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-12", got.EndDate.String())
	assert.Equal(t, attendance.StatusPending, got.Status)
	assert.False(t, got.Seen)

	require.NoError(t, st.Requests.UpdateStatus(ctx, r.ID, attendance.StatusApproved))
	require.NoError(t, st.Requests.MarkSeen(ctx, r.ID))

	got, err = st.Requests.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusApproved, got.Status)
	assert.True(t, got.Seen)

	require.NoError(t, st.Requests.Delete(ctx, r.ID))
	_, err = st.Requests.Get(ctx, r.ID)
	assert.ErrorIs(t, err, attendance.ErrRequestNotFound)
	assert.ErrorIs(t, st.Requests.Delete(ctx, r.ID), attendance.ErrRequestNotFound)
}

func TestRequestStore_ListScopedByTenant(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()
	seedUser(t, st, "emp-1", "")

	foreign := &attendance.User{
		ID: "out-1", TenantID: "tenant-2", Username: "out-1",
		DisplayName: "Outsider", Role: attendance.RoleUser,
		DailyTarget: attendance.DefaultDailyTarget,
		WorkingDays: attendance.DefaultWorkingDays(), Active: true,
	}
	require.NoError(t, st.Users.Save(ctx, foreign))

	for _, uid := range []string{"emp-1", "out-1"} {
		r := &attendance.Request{
			UserID: attendance.UserID(uid), Date: date("2026-03-10"),
			Type: attendance.TypeVacation, Status: attendance.StatusPending,
			CreatedAt: time.Now(),
		}
		require.NoError(t, st.Requests.Insert(ctx, r))
	}

	mine, err := st.Requests.List(ctx, "tenant-1", attendance.RequestFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, attendance.UserID("emp-1"), mine[0].UserID)
}

// =============================================================================
// AUDIT STORE
// =============================================================================

func TestAuditStore_QueryAndPrune(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		e := attendance.AuditEntry{
			TenantID:     "tenant-1",
			Timestamp:    base.Add(time.Duration(i) * time.Minute),
			Actor:        "Boss",
			Action:       "Stempeln",
			AffectedUser: "User emp-1",
		}
		require.NoError(t, st.Audit.Append(ctx, e))
	}

	all, err := st.Audit.Query(ctx, "tenant-1", attendance.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.True(t, all[0].Timestamp.After(all[4].Timestamp), "newest first")

	limited, err := st.Audit.Query(ctx, "tenant-1", attendance.AuditFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	participant, err := st.Audit.Query(ctx, "tenant-1", attendance.AuditFilter{Participant: "User emp-1"})
	require.NoError(t, err)
	assert.Len(t, participant, 5)
	none, err := st.Audit.Query(ctx, "tenant-1", attendance.AuditFilter{Participant: "Nobody"})
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, st.Audit.Prune(ctx, "tenant-1", 3))
	after, err := st.Audit.Query(ctx, "tenant-1", attendance.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, after, 3)
	assert.Equal(t, base.Add(2*time.Minute).Format(time.RFC3339), after[2].Timestamp.Format(time.RFC3339),
		"the oldest rows are dropped")
}

func TestAuditStore_DateRange(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	for _, ts := range []time.Time{
		time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC),
	} {
		require.NoError(t, st.Audit.Append(ctx, attendance.AuditEntry{
			TenantID: "tenant-1", Timestamp: ts, Actor: "Boss", Action: "Stempeln",
		}))
	}

	entries, err := st.Audit.Query(ctx, "tenant-1", attendance.AuditFilter{
		From: date("2026-03-10"), To: date("2026-03-10"),
	})
	require.NoError(t, err)
	require.Len(t, entries, 1, "the To day is fully included, later days are not")
}
