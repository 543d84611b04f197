// Package eligibility maps a normalized Facts record and a poverty-level
// table to per-program benefit determinations. Evaluation is a pure function
// of the record and static configuration; a single Engine may be shared by
// any number of concurrent requests.
package eligibility

import "math"

// FPLTable is the Federal Poverty Level table for one guideline year,
// expressed as 100%-FPL monthly income by household size. It is injected
// rather than global so a jurisdiction or policy year can be swapped without
// code changes.
type FPLTable struct {
	Year          int
	Monthly       map[int]int
	PerAdditional int
}

// DefaultFPLTable returns the 2025 federal poverty guidelines as monthly
// amounts for household sizes 1-8 plus the per-additional-person increment.
func DefaultFPLTable() *FPLTable {
	return &FPLTable{
		Year: 2025,
		Monthly: map[int]int{
			1: 1305,
			2: 1763,
			3: 2221,
			4: 2679,
			5: 3138,
			6: 3596,
			7: 4054,
			8: 4513,
		},
		PerAdditional: 458,
	}
}

// Monthly100 returns the 100%-FPL monthly income for a household size.
// Sizes beyond the table extend linearly by the per-additional increment;
// sizes below 1 are treated as 1.
func (t *FPLTable) Monthly100(size int) int {
	if size < 1 {
		size = 1
	}
	if v, ok := t.Monthly[size]; ok {
		return v
	}
	max := 0
	for s := range t.Monthly {
		if s > max {
			max = s
		}
	}
	return t.Monthly[max] + (size-max)*t.PerAdditional
}

// Limit returns the monthly income limit for a household size at a
// percentage of the poverty level, rounded to the nearest dollar.
func (t *FPLTable) Limit(size, pct int) int {
	return int(math.Round(float64(t.Monthly100(size)) * float64(pct) / 100))
}
