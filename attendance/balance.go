/*
balance.go - Soll/Ist/Saldo calculation

PURPOSE:
  Pure read-side projection over the booking ledger and the working-day
  calendar. Nothing here mutates state; handlers feed it bookings loaded
  elsewhere.

TERMS:
  Soll  - target hours for the period (calendar working days x daily target)
  Ist   - actual recorded hours (net of break deduction) plus leave credit
  Saldo - Ist minus Soll (overtime / undertime)

LEAVE SEMANTICS:
  A full-day leave booking keeps the day's target in Soll (leave consumes
  the quota, it does not erase it) and contributes exactly the target to
  Ist, so leave days are balance-neutral. Leave on a non-working day
  counts nothing.

OPEN BOOKINGS:
  An unterminated interval contributes 0 to Ist and balance until closed.
*/
package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DAY SUMMARY
// =============================================================================

// DaySummary is one journal row: the figures derived from a single
// booking against the calendar.
type DaySummary struct {
	Date         Date
	Target       decimal.Decimal // Soll for the day (0 on free days)
	Gross        decimal.Decimal
	Break        decimal.Decimal
	Net          decimal.Decimal // Ist contribution
	Balance      decimal.Decimal // Net - Target; 0 for leave and open days
	FullDayLeave bool
	Open         bool
}

// SummarizeDay computes the figures for one booking. b may be nil for an
// empty day (free day or absence without booking).
func SummarizeDay(b *Booking, dailyTarget decimal.Decimal, workdays WorkingDays, date Date) DaySummary {
	target := decimal.Zero
	if workdays.Contains(date.Weekday()) {
		target = dailyTarget
	}
	s := DaySummary{Date: date, Target: target}
	if b == nil {
		return s
	}

	if b.Type.IsFullDayLeave() {
		// Balance-neutral: leave credits exactly the day's target.
		s.FullDayLeave = true
		s.Net = target
		return s
	}

	if b.Open() || b.Start == "" || b.End == "" {
		s.Open = b.Open()
		return s
	}

	s.Gross = GrossHours(b.Start, b.End)
	s.Break = BreakDeduction(s.Gross)
	s.Net = NetHours(s.Gross)
	s.Balance = s.Net.Sub(target)
	return s
}

// =============================================================================
// MONTH SUMMARY
// =============================================================================

type MonthSummary struct {
	Soll        decimal.Decimal
	Ist         decimal.Decimal
	Saldo       decimal.Decimal
	WorkingDays int
	LeaveDays   int
}

// MonthBalance aggregates a month from the user's bookings.
//
// Soll counts every calendar working day of the month, whether or not a
// booking exists. Ist sums net hours of closed work bookings plus the
// daily target for each leave day that falls on a working day.
func MonthBalance(bookings []Booking, dailyTarget decimal.Decimal, workdays WorkingDays, year int, month time.Month) MonthSummary {
	period := MonthPeriod(year, month)

	sum := MonthSummary{Soll: decimal.Zero, Ist: decimal.Zero}
	sum.WorkingDays = workdays.CountInPeriod(period)
	sum.Soll = dailyTarget.Mul(decimal.NewFromInt(int64(sum.WorkingDays)))

	for i := range bookings {
		b := &bookings[i]
		if !period.Contains(b.Date) {
			continue
		}
		if b.Type.IsFullDayLeave() {
			// Leave credit only on calendar working days.
			if workdays.Contains(b.Date.Weekday()) {
				sum.Ist = sum.Ist.Add(dailyTarget)
				sum.LeaveDays++
			}
			continue
		}
		if b.Start == "" || b.End == "" {
			continue // open intervals count nothing until closed
		}
		sum.Ist = sum.Ist.Add(NetHours(GrossHours(b.Start, b.End)))
	}

	sum.Saldo = sum.Ist.Sub(sum.Soll)
	return sum
}

// =============================================================================
// WEEK ACTUAL (dashboard figure)
// =============================================================================

// WeekActual sums net hours across the Monday-Sunday window containing
// now, counting only closed work bookings.
func WeekActual(bookings []Booking, now time.Time) decimal.Decimal {
	week := WeekPeriod(now)
	total := decimal.Zero
	for i := range bookings {
		b := &bookings[i]
		if !week.Contains(b.Date) {
			continue
		}
		if b.Type.IsFullDayLeave() || b.Start == "" || b.End == "" {
			continue
		}
		total = total.Add(NetHours(GrossHours(b.Start, b.End)))
	}
	return total
}

// =============================================================================
// VACATION ACCOUNT (dashboard figure)
// =============================================================================

// VacationTaken counts Urlaub bookings in the given year that fall on
// working days. The remaining allowance is VacationDays - taken.
func VacationTaken(bookings []Booking, workdays WorkingDays, year int) int {
	taken := 0
	for i := range bookings {
		b := &bookings[i]
		if b.Type != TypeVacation || b.Date.Year() != year {
			continue
		}
		if workdays.Contains(b.Date.Weekday()) {
			taken++
		}
	}
	return taken
}
