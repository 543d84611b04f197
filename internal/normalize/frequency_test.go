package normalize

import (
	"testing"

	"github.com/jonathan/benefits-navigator/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestToMonthly_AllFrequencies(t *testing.T) {
	n := New()

	tests := []struct {
		name     string
		amount   float64
		freq     types.Frequency
		expected int
	}{
		{"monthly passes through", 1700, types.FrequencyMonthly, 1700},
		{"weekly times 4.33", 380, types.FrequencyWeekly, 1645},
		{"biweekly times 2.167", 1000, types.FrequencyBiweekly, 2167},
		{"semimonthly times 2", 850, types.FrequencySemimonthly, 1700},
		{"annual times 0.0833", 36000, types.FrequencyAnnual, 2998},
		{"hourly assumes full time", 15, types.FrequencyHourly, 2599},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.ToMonthly(tt.amount, tt.freq))
		})
	}
}

func TestToMonthly_TruncatesToWholeDollars(t *testing.T) {
	n := New()

	// 380 * 4.33 = 1645.40 -> 1645
	assert.Equal(t, 1645, n.ToMonthly(380, types.FrequencyWeekly))
	// 12.50 * 173.33 ≈ 2166.62 -> 2166, never rounded up
	assert.Equal(t, 2166, n.ToMonthly(12.50, types.FrequencyHourly))
}

func TestHourlyToMonthly_WithDetectedHours(t *testing.T) {
	n := New()

	// $12/hour at 20 hours/week: 12 * 20 * 4.33 = 1039.2 -> 1039
	assert.Equal(t, 1039, n.HourlyToMonthly(12, 20))
	// $15/hour at 30 hours/week: 15 * 30 * 4.33 = 1948.5 -> 1948
	assert.Equal(t, 1948, n.HourlyToMonthly(15, 30))
}

func TestHourlyToMonthly_FallsBackToFullTime(t *testing.T) {
	n := New()

	assert.Equal(t, n.ToMonthly(12, types.FrequencyHourly), n.HourlyToMonthly(12, 0))
	assert.Equal(t, n.ToMonthly(12, types.FrequencyHourly), n.HourlyToMonthly(12, -5))
}

func TestHourlyDefault_UsesFixedMultiplier(t *testing.T) {
	n := New()

	// The full-time factor is the fixed 173.33, not 40 * 4.33 = 173.2;
	// at $15/hour the two disagree: 2599 vs 2598.
	assert.Equal(t, 2599, n.ToMonthly(15, types.FrequencyHourly))
	assert.Equal(t, 2599, n.HourlyToMonthly(15, 0))

	// A configured default derives its factor from the hours themselves.
	custom := NewWithOptions(nil, 35)
	// 15 * 35 * 4.33 = 2273.25 -> 2273
	assert.Equal(t, 2273, custom.ToMonthly(15, types.FrequencyHourly))
}

func TestNewWithOptions_CustomDefaultHours(t *testing.T) {
	n := NewWithOptions(nil, 30)

	// 10 * 30 * 4.33 = 1299
	assert.Equal(t, 1299, n.ToMonthly(10, types.FrequencyHourly))
	assert.Equal(t, 30.0, n.DefaultHours())
}

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		in       string
		expected types.Frequency
	}{
		{"hourly", types.FrequencyHourly},
		{"Weekly", types.FrequencyWeekly},
		{"bi-weekly", types.FrequencyBiweekly},
		{"semi-monthly", types.FrequencySemimonthly},
		{"yearly", types.FrequencyAnnual},
		{"monthly", types.FrequencyMonthly},
		{"", types.FrequencyMonthly},
		{"whenever", types.FrequencyMonthly},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseFrequency(tt.in), "input %q", tt.in)
	}
}

func TestToMonthly_NegativeAmountClampsToZero(t *testing.T) {
	n := New()
	assert.Equal(t, 0, n.ToMonthly(-100, types.FrequencyMonthly))
}
