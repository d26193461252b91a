package attendance

import (
	"time"
)

// =============================================================================
// DATE - Tenant-local calendar day
// =============================================================================

// Date is a calendar day with no time-of-day component. The zero value
// means "unset" (used for single-day requests without an end date).
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses "YYYY-MM-DD". The zero Date is returned with the error
// so callers can fail closed.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(o Date) bool        { return d.t.Before(o.t) }
func (d Date) After(o Date) bool         { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool         { return d.t.Equal(o.t) }
func (d Date) BeforeOrEqual(o Date) bool { return !d.After(o) }
func (d Date) AfterOrEqual(o Date) bool  { return !d.Before(o) }

// Arithmetic and properties
func (d Date) AddDays(n int) Date     { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) Weekday() time.Weekday  { return d.t.Weekday() }
func (d Date) Year() int              { return d.t.Year() }
func (d Date) Month() time.Month      { return d.t.Month() }
func (d Date) Day() int               { return d.t.Day() }
func (d Date) IsZero() bool           { return d.t.IsZero() }
func (d Date) Time() time.Time        { return d.t }

func (d Date) String() string { return d.t.Format("2006-01-02") }

// =============================================================================
// PERIOD - Inclusive date span
// =============================================================================

type Period struct {
	Start Date
	End   Date
}

// Valid reports whether the span is well-formed (end not before start).
func (p Period) Valid() bool { return !p.End.Before(p.Start) }

// Contains reports whether d lies within [Start, End].
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Days returns every day in the span, in order.
func (p Period) Days() []Date {
	var days []Date
	for cur := p.Start; cur.BeforeOrEqual(p.End); cur = cur.AddDays(1) {
		days = append(days, cur)
	}
	return days
}

func (p Period) String() string { return "[" + p.Start.String() + ", " + p.End.String() + "]" }

// MonthPeriod returns the full span of a calendar month.
func MonthPeriod(year int, month time.Month) Period {
	start := NewDate(year, month, 1)
	end := Date{t: time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)}
	return Period{Start: start, End: end}
}

// WeekPeriod returns the Monday-Sunday window containing the given instant.
func WeekPeriod(now time.Time) Period {
	day := DateOf(now)
	// time.Weekday: Sunday == 0, Monday == 1
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	start := day.AddDays(-offset)
	return Period{Start: start, End: start.AddDays(6)}
}

// =============================================================================
// WORKING DAYS - Per-tenant working-day calendar
// =============================================================================

// WorkingDays is the set of weekdays that accrue target hours.
type WorkingDays []time.Weekday

// DefaultWorkingDays is Monday through Friday.
func DefaultWorkingDays() WorkingDays {
	return WorkingDays{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
}

func (w WorkingDays) Contains(d time.Weekday) bool {
	for _, wd := range w {
		if wd == d {
			return true
		}
	}
	return false
}

// CountInPeriod counts the working days inside a span.
func (w WorkingDays) CountInPeriod(p Period) int {
	count := 0
	for _, d := range p.Days() {
		if w.Contains(d.Weekday()) {
			count++
		}
	}
	return count
}
