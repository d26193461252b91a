package attendance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/zeitwerk/attendance-engine/attendance"
)

func day(year int, month time.Month, d int) attendance.Date {
	return attendance.NewDate(year, month, d)
}

func closedBooking(userID string, date attendance.Date, start, end string) attendance.Booking {
	return attendance.Booking{
		ID:       attendance.BookingID("b-" + date.String() + start),
		UserID:   attendance.UserID(userID),
		TenantID: "tenant-1",
		Date:     date,
		Start:    start,
		End:      end,
		Type:     attendance.TypeWebTerminal,
	}
}

func leaveBooking(userID string, date attendance.Date, t attendance.BookingType) attendance.Booking {
	return attendance.Booking{
		ID:       attendance.BookingID("l-" + date.String()),
		UserID:   attendance.UserID(userID),
		TenantID: "tenant-1",
		Date:     date,
		Type:     t,
	}
}

// =============================================================================
// DAY SUMMARY
// =============================================================================

func TestSummarizeDay_ClosedWorkDay(t *testing.T) {
	// 08:00-16:30 on a working day: 8.5 gross, 0.5 break, 8 net, balance 0.
	target := decimal.NewFromInt(8)
	b := closedBooking("emp-1", day(2026, time.March, 10), "08:00", "16:30")

	s := attendance.SummarizeDay(&b, target, attendance.DefaultWorkingDays(), b.Date)
	assert.True(t, s.Gross.Equal(decimal.NewFromFloat(8.5)))
	assert.True(t, s.Break.Equal(decimal.NewFromFloat(0.5)))
	assert.True(t, s.Net.Equal(decimal.NewFromInt(8)))
	assert.True(t, s.Balance.IsZero())
}

func TestSummarizeDay_LeaveIsBalanceNeutral(t *testing.T) {
	target := decimal.NewFromInt(8)
	b := leaveBooking("emp-1", day(2026, time.March, 10), attendance.TypeVacation)

	s := attendance.SummarizeDay(&b, target, attendance.DefaultWorkingDays(), b.Date)
	assert.True(t, s.FullDayLeave)
	assert.True(t, s.Net.Equal(target), "leave credits the day's target")
	assert.True(t, s.Balance.IsZero())
}

func TestSummarizeDay_OpenBookingCountsNothing(t *testing.T) {
	target := decimal.NewFromInt(8)
	b := closedBooking("emp-1", day(2026, time.March, 10), "08:00", "")

	s := attendance.SummarizeDay(&b, target, attendance.DefaultWorkingDays(), b.Date)
	assert.True(t, s.Open)
	assert.True(t, s.Net.IsZero())
	assert.True(t, s.Balance.IsZero())
}

// =============================================================================
// MONTH BALANCE
// =============================================================================

func TestMonthBalance_SollCountsCalendarWorkingDays(t *testing.T) {
	// GIVEN: March 2026 (22 Mon-Fri days), 8h daily target, no bookings
	// WHEN: the month is balanced
	// THEN: Soll 176, Ist 0, Saldo -176

	sum := attendance.MonthBalance(nil, decimal.NewFromInt(8), attendance.DefaultWorkingDays(), 2026, time.March)
	assert.Equal(t, 22, sum.WorkingDays)
	assert.True(t, sum.Soll.Equal(decimal.NewFromInt(176)), "soll = %s", sum.Soll)
	assert.True(t, sum.Ist.IsZero())
	assert.True(t, sum.Saldo.Equal(decimal.NewFromInt(-176)))
}

func TestMonthBalance_WorkPlusLeave(t *testing.T) {
	// GIVEN: two 8h-net working days, one vacation day, one open booking
	// WHEN: the month is balanced
	// THEN: Ist = 8 + 8 + 8 (leave credit), the open day counts nothing

	target := decimal.NewFromInt(8)
	bookings := []attendance.Booking{
		closedBooking("emp-1", day(2026, time.March, 2), "08:00", "16:30"),
		closedBooking("emp-1", day(2026, time.March, 3), "08:00", "16:30"),
		leaveBooking("emp-1", day(2026, time.March, 4), attendance.TypeVacation),
		closedBooking("emp-1", day(2026, time.March, 5), "08:00", ""), // still open
	}

	sum := attendance.MonthBalance(bookings, target, attendance.DefaultWorkingDays(), 2026, time.March)
	assert.True(t, sum.Ist.Equal(decimal.NewFromInt(24)), "ist = %s", sum.Ist)
	assert.Equal(t, 1, sum.LeaveDays)
}

func TestMonthBalance_LeaveOnWeekendCountsNothing(t *testing.T) {
	// A vacation booking on a Saturday neither credits Ist nor counts as
	// a leave day.
	target := decimal.NewFromInt(8)
	bookings := []attendance.Booking{
		leaveBooking("emp-1", day(2026, time.March, 7), attendance.TypeSick), // Saturday
	}

	sum := attendance.MonthBalance(bookings, target, attendance.DefaultWorkingDays(), 2026, time.March)
	assert.True(t, sum.Ist.IsZero())
	assert.Equal(t, 0, sum.LeaveDays)
}

func TestMonthBalance_OtherMonthsIgnored(t *testing.T) {
	target := decimal.NewFromInt(8)
	bookings := []attendance.Booking{
		closedBooking("emp-1", day(2026, time.February, 27), "08:00", "16:30"),
		closedBooking("emp-1", day(2026, time.April, 1), "08:00", "16:30"),
	}

	sum := attendance.MonthBalance(bookings, target, attendance.DefaultWorkingDays(), 2026, time.March)
	assert.True(t, sum.Ist.IsZero())
}

// =============================================================================
// WEEK ACTUAL
// =============================================================================

func TestWeekActual_ClosedWorkOnly(t *testing.T) {
	// GIVEN: the week of Mon 2026-03-09, containing a closed day, an open
	//        day, a leave day and a day outside the window
	// WHEN: the week figure is computed
	// THEN: only the closed work booking counts

	now := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC) // Wednesday
	bookings := []attendance.Booking{
		closedBooking("emp-1", day(2026, time.March, 9), "08:00", "16:30"), // 8 net
		closedBooking("emp-1", day(2026, time.March, 10), "08:00", ""),     // open
		leaveBooking("emp-1", day(2026, time.March, 11), attendance.TypeVacation),
		closedBooking("emp-1", day(2026, time.March, 6), "08:00", "16:30"), // previous week
	}

	total := attendance.WeekActual(bookings, now)
	assert.True(t, total.Equal(decimal.NewFromInt(8)), "week = %s", total)
}

func TestWeekActual_SundayBelongsToSameWeek(t *testing.T) {
	// The window runs Monday through Sunday; a Sunday booking of the same
	// week still counts when "now" is that Sunday.
	now := time.Date(2026, 3, 15, 20, 0, 0, 0, time.UTC) // Sunday
	bookings := []attendance.Booking{
		closedBooking("emp-1", day(2026, time.March, 9), "08:00", "12:00"),  // Monday, 4h
		closedBooking("emp-1", day(2026, time.March, 15), "10:00", "12:00"), // Sunday, 2h
	}

	total := attendance.WeekActual(bookings, now)
	assert.True(t, total.Equal(decimal.NewFromInt(6)), "week = %s", total)
}

// =============================================================================
// VACATION ACCOUNT
// =============================================================================

func TestVacationTaken(t *testing.T) {
	bookings := []attendance.Booking{
		leaveBooking("emp-1", day(2026, time.March, 2), attendance.TypeVacation),  // Monday
		leaveBooking("emp-1", day(2026, time.March, 7), attendance.TypeVacation),  // Saturday, free
		leaveBooking("emp-1", day(2026, time.March, 4), attendance.TypeSick),      // sick, not vacation
		leaveBooking("emp-1", day(2025, time.December, 29), attendance.TypeVacation), // previous year
	}

	taken := attendance.VacationTaken(bookings, attendance.DefaultWorkingDays(), 2026)
	assert.Equal(t, 1, taken)
}
