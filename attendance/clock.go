/*
clock.go - Time arithmetic utilities

PURPOSE:
  Pure conversions between wall-clock "HH:MM" strings and decimal hours,
  plus the automatic break deduction applied to gross work time.

BREAK RULE:
  deduction = floor(gross / 6) * 0.5

  0h <= gross < 6h   -> 0.0h
  6h <= gross < 12h  -> 0.5h
  12h <= gross < 18h -> 1.0h
  ...monotonic, non-decreasing.

  The legacy system also shipped a legal-minimum ladder (0 / 0.5 / 0.75)
  in one revision. The two rules were never reconciled there; this engine
  uses the floor rule everywhere. See DESIGN.md.

FAILURE POLICY:
  TimeToDecimal fails closed: empty or malformed input yields zero and
  never panics. Balances degrade to "no hours" rather than corrupting.
*/
package attendance

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	sixty       = decimal.NewFromInt(60)
	six         = decimal.NewFromInt(6)
	halfHour    = decimal.NewFromFloat(0.5)
	fullDay     = decimal.NewFromInt(24)
)

// TimeToDecimal converts "HH:MM" to decimal hours ("08:30" -> 8.5).
// Empty or malformed input yields zero.
func TimeToDecimal(t string) decimal.Decimal {
	if t == "" {
		return decimal.Zero
	}
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return decimal.Zero
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return decimal.Zero
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(h)).Add(decimal.NewFromInt(int64(m)).Div(sixty))
}

// DecimalToTime renders decimal hours as zero-padded "HH:MM". The sign is
// dropped; callers that display negative balances re-apply it. Minutes are
// rounded to the nearest integer.
func DecimalToTime(d decimal.Decimal) string {
	abs := d.Abs()
	hours := abs.IntPart()
	minutes := abs.Sub(decimal.NewFromInt(hours)).Mul(sixty).Round(0).IntPart()
	if minutes == 60 {
		hours++
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// BreakDeduction returns the automatic break for a gross interval:
// half an hour per started block of six worked hours.
func BreakDeduction(gross decimal.Decimal) decimal.Decimal {
	if gross.Sign() <= 0 {
		return decimal.Zero
	}
	blocks := gross.Div(six).Floor()
	return blocks.Mul(halfHour)
}

// NetHours is the billable time after break deduction. Never negative.
func NetHours(gross decimal.Decimal) decimal.Decimal {
	net := gross.Sub(BreakDeduction(gross))
	if net.Sign() < 0 {
		return decimal.Zero
	}
	return net
}

// GrossHours computes the raw span between two "HH:MM" stamps. Spans that
// cross midnight (end before start) gain 24h.
func GrossHours(start, end string) decimal.Decimal {
	if start == "" || end == "" {
		return decimal.Zero
	}
	diff := TimeToDecimal(end).Sub(TimeToDecimal(start))
	if diff.Sign() < 0 {
		diff = diff.Add(fullDay)
	}
	return diff
}

// ClockTime formats a wall-clock instant as the "HH:MM" stamp format.
func ClockTime(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
