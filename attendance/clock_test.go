package attendance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/zeitwerk/attendance-engine/attendance"
)

// =============================================================================
// TIME CONVERSION TESTS
// =============================================================================

func TestTimeToDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"08:00", 8.0},
		{"08:30", 8.5},
		{"08:45", 8.75},
		{"00:00", 0.0},
		{"23:59", 23.983333},
		{"", 0.0},        // empty fails closed
		{"garbage", 0.0}, // malformed fails closed
		{"8", 0.0},
		{"ab:cd", 0.0},
	}
	for _, tc := range tests {
		got := attendance.TimeToDecimal(tc.in)
		want := decimal.NewFromFloat(tc.want)
		if !got.Sub(want).Abs().LessThan(decimal.NewFromFloat(0.0001)) {
			t.Errorf("TimeToDecimal(%q) = %s, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDecimalToTime(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{8.5, "08:30"},
		{8.75, "08:45"},
		{0, "00:00"},
		{-2.5, "02:30"},   // sign dropped
		{9.999, "10:00"},  // minute rounding rolls over the hour
		{23.983333, "23:59"},
	}
	for _, tc := range tests {
		got := attendance.DecimalToTime(decimal.NewFromFloat(tc.in))
		if got != tc.want {
			t.Errorf("DecimalToTime(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTimeRoundTrip(t *testing.T) {
	// Every whole-minute stamp must survive the round trip exactly.
	for _, s := range []string{"00:00", "00:01", "06:00", "08:30", "12:45", "23:59"} {
		got := attendance.DecimalToTime(attendance.TimeToDecimal(s))
		if got != s {
			t.Errorf("round trip of %q produced %q", s, got)
		}
	}
}

// =============================================================================
// BREAK DEDUCTION TESTS
// =============================================================================

func TestBreakDeduction_StepFunction(t *testing.T) {
	tests := []struct {
		gross float64
		want  float64
	}{
		{0, 0},
		{3, 0},
		{5.99, 0},
		{6, 0.5}, // first block starts exactly at 6h
		{8.5, 0.5},
		{11.99, 0.5},
		{12, 1.0},
		{17.99, 1.0},
		{18, 1.5},
		{-1, 0}, // negative gross deducts nothing
	}
	for _, tc := range tests {
		got := attendance.BreakDeduction(decimal.NewFromFloat(tc.gross))
		assert.True(t, got.Equal(decimal.NewFromFloat(tc.want)),
			"BreakDeduction(%v) = %s, want %v", tc.gross, got, tc.want)
	}
}

func TestBreakDeduction_Monotonic(t *testing.T) {
	// The deduction never decreases as gross grows.
	prev := decimal.Zero
	for g := 0.0; g <= 24.0; g += 0.25 {
		d := attendance.BreakDeduction(decimal.NewFromFloat(g))
		if d.LessThan(prev) {
			t.Fatalf("deduction decreased at gross=%v: %s < %s", g, d, prev)
		}
		prev = d
	}
}

func TestNetHours_NeverNegative(t *testing.T) {
	for _, g := range []float64{-5, -0.1, 0, 0.2, 5.99, 6, 12, 24} {
		net := attendance.NetHours(decimal.NewFromFloat(g))
		if net.Sign() < 0 {
			t.Errorf("NetHours(%v) = %s, negative", g, net)
		}
	}
}

// =============================================================================
// INTERVAL TESTS
// =============================================================================

func TestGrossHours_StandardDay(t *testing.T) {
	// GIVEN: a 08:00 to 16:30 working day
	// WHEN: gross, break and net are computed
	// THEN: 8.5h gross, 0.5h break, 8.0h net

	gross := attendance.GrossHours("08:00", "16:30")
	assert.True(t, gross.Equal(decimal.NewFromFloat(8.5)), "gross = %s", gross)

	deduction := attendance.BreakDeduction(gross)
	assert.True(t, deduction.Equal(decimal.NewFromFloat(0.5)), "break = %s", deduction)

	net := attendance.NetHours(gross)
	assert.True(t, net.Equal(decimal.NewFromInt(8)), "net = %s", net)
}

func TestGrossHours_Overnight(t *testing.T) {
	// A night shift ending after midnight gains 24h instead of going
	// negative: 22:00 to 06:00 is 8 hours.
	gross := attendance.GrossHours("22:00", "06:00")
	assert.True(t, gross.Equal(decimal.NewFromInt(8)), "gross = %s", gross)
}

func TestGrossHours_MissingStamp(t *testing.T) {
	assert.True(t, attendance.GrossHours("", "16:00").IsZero())
	assert.True(t, attendance.GrossHours("08:00", "").IsZero())
}
