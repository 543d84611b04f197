// Package normalize converts reported income amounts at arbitrary pay
// frequencies into monthly-equivalent dollar values.
package normalize

import (
	"math"
	"strings"

	"github.com/jonathan/benefits-navigator/internal/types"
)

// WeeksPerMonth is the average number of weeks in a month (52 / 12).
const WeeksPerMonth = 4.33

// DefaultHoursPerWeek is the full-time assumption applied to hourly rates
// when the input never states how many hours the person works.
const DefaultHoursPerWeek = 40.0

// DefaultHourlyMultiplier converts an hourly rate straight to monthly under
// the full-time assumption. Kept as the fixed policy figure 173.33 rather
// than 40 * 4.33 (173.2); the two disagree by enough to move truncated
// dollar amounts.
const DefaultHourlyMultiplier = 173.33

// Multipliers maps a pay frequency to its monthly-equivalent multiplier.
type Multipliers map[types.Frequency]float64

// DefaultMultipliers returns the standard monthly conversion table.
// The hourly multiplier assumes DefaultHoursPerWeek; callers with known
// weekly hours should use HourlyToMonthly instead.
func DefaultMultipliers() Multipliers {
	return Multipliers{
		types.FrequencyHourly:      DefaultHourlyMultiplier, // full time, no hours info
		types.FrequencyWeekly:      4.33,
		types.FrequencyBiweekly:    2.167,
		types.FrequencySemimonthly: 2.0,
		types.FrequencyMonthly:     1.0,
		types.FrequencyAnnual:      0.0833,
	}
}

// Normalizer converts raw amounts to truncated whole-dollar monthly values.
type Normalizer struct {
	multipliers  Multipliers
	defaultHours float64
}

// New creates a Normalizer with the default multiplier table.
func New() *Normalizer {
	return &Normalizer{
		multipliers:  DefaultMultipliers(),
		defaultHours: DefaultHoursPerWeek,
	}
}

// NewWithOptions creates a Normalizer with a custom multiplier table and
// full-time hours assumption, so jurisdiction or policy-year tables can be
// swapped without code changes.
func NewWithOptions(multipliers Multipliers, defaultHours float64) *Normalizer {
	if multipliers == nil {
		multipliers = DefaultMultipliers()
	}
	if defaultHours <= 0 {
		defaultHours = DefaultHoursPerWeek
	}
	return &Normalizer{multipliers: multipliers, defaultHours: defaultHours}
}

// DefaultHours returns the weekly-hours assumption used for hourly rates
// when no explicit hours were reported.
func (n *Normalizer) DefaultHours() float64 {
	return n.defaultHours
}

// ToMonthly converts an amount at the given frequency to a truncated
// whole-dollar monthly value. Hourly amounts use the full-time default;
// use HourlyToMonthly when weekly hours are known.
func (n *Normalizer) ToMonthly(amount float64, freq types.Frequency) int {
	mult, ok := n.multipliers[freq]
	if !ok {
		mult = 1.0
	}
	if freq == types.FrequencyHourly {
		mult = n.hourlyMultiplier()
	}
	return truncateDollars(amount * mult)
}

// HourlyToMonthly converts an hourly rate worked hoursPerWeek hours into a
// truncated whole-dollar monthly value. Non-positive hours fall back to the
// full-time default.
func (n *Normalizer) HourlyToMonthly(rate, hoursPerWeek float64) int {
	if hoursPerWeek <= 0 {
		return truncateDollars(rate * n.hourlyMultiplier())
	}
	return truncateDollars(rate * hoursPerWeek * WeeksPerMonth)
}

// hourlyMultiplier is the no-hours-stated conversion factor. The stock
// full-time assumption uses the fixed 173.33 figure; a configured
// defaultHours derives its own factor.
func (n *Normalizer) hourlyMultiplier() float64 {
	if n.defaultHours == DefaultHoursPerWeek {
		return DefaultHourlyMultiplier
	}
	return n.defaultHours * WeeksPerMonth
}

func truncateDollars(v float64) int {
	if v < 0 {
		return 0
	}
	return int(math.Trunc(v))
}

// ParseFrequency normalizes a frequency string to one of the supported
// Frequency values. Unrecognized strings default to monthly, matching the
// extraction engine's treatment of unlabeled amounts.
func ParseFrequency(s string) types.Frequency {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hourly", "hour", "hr", "per hour":
		return types.FrequencyHourly
	case "weekly", "week", "per week":
		return types.FrequencyWeekly
	case "biweekly", "bi-weekly", "every two weeks", "every other week":
		return types.FrequencyBiweekly
	case "semimonthly", "semi-monthly", "twice a month":
		return types.FrequencySemimonthly
	case "annual", "annually", "yearly", "year", "per year":
		return types.FrequencyAnnual
	default:
		return types.FrequencyMonthly
	}
}
