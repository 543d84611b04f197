package extraction

import (
	"fmt"
	"sort"

	"github.com/jonathan/benefits-navigator/internal/types"
)

// structuredConfidence is recorded for every field in the structured path:
// values were stated explicitly, so no linguistic scoring applies.
const structuredConfidence = 0.95

// FromStructured normalizes a structured screening request into the same
// Facts shape the pattern engine produces. Pattern extraction is bypassed,
// but amounts still run through the frequency normalizer and the record
// carries the same confidence and quality metadata.
func (e *Engine) FromStructured(req *types.StructuredRunRequest) *types.Facts {
	f := &types.Facts{
		HouseholdSize:        len(req.Persons),
		ExtractionConfidence: map[string]float64{},
	}
	if f.HouseholdSize < 1 {
		f.HouseholdSize = 1
	}
	f.ExtractionConfidence["household_size"] = structuredConfidence

	for _, p := range req.Persons {
		member := types.HouseholdMember{Type: p.Role, Age: p.Age}
		f.HouseholdMembers = append(f.HouseholdMembers, member)

		if p.Age != nil {
			age := *p.Age
			if !f.HasAge(age) {
				f.Ages = append(f.Ages, age)
			}
			switch {
			case age < 1:
				f.InfantsUnder1++
				f.ChildrenUnder5++
			case age < 5:
				f.ChildrenUnder5++
			case age <= 18:
				f.ChildrenSchoolAge++
			case age >= 65:
				f.ElderlyInHousehold = true
				f.MedicareEligible = true
			}
		}

		if p.Pregnant {
			f.Pregnant = true
		}
		if p.Postpartum {
			f.Postpartum = true
		}
		if p.Breastfeeding {
			f.Breastfeeding = true
		}
		if p.Disabled {
			f.DisabledInHousehold = true
		}
		if p.OnMedicare {
			f.OnMedicare = true
			f.MedicareEligible = true
		}

		for _, item := range p.Income {
			f.IncomeSources = append(f.IncomeSources, e.incomeFromItem(item))
		}
		for _, exp := range p.Expenses {
			e.applyExpense(f, exp)
		}
	}

	sort.Ints(f.Ages)

	for i, src := range f.IncomeSources {
		key := "income_" + src.Type
		if _, exists := f.ExtractionConfidence[key]; exists {
			key = fmt.Sprintf("%s_%d", key, i+1)
		}
		f.ExtractionConfidence[key] = structuredConfidence
	}

	e.applyHousehold(f, &req.Household)

	if len(f.IncomeSources) > 0 {
		total := 0
		for _, src := range f.IncomeSources {
			total += src.MonthlyAmount
		}
		f.TotalMonthlyIncome = &total
	}

	if f.Rent != nil && f.TotalMonthlyIncome != nil && *f.TotalMonthlyIncome > 0 {
		if *f.Rent > float64(*f.TotalMonthlyIncome)/2 {
			burden := *f.Rent
			f.PotentialDeductions.ShelterBurden = &burden
		}
	}

	f.DataQualityScore = dataQuality(f.ExtractionConfidence)
	return f
}

func (e *Engine) incomeFromItem(item types.IncomeItem) types.IncomeSource {
	src := types.IncomeSource{
		Type:       item.Type,
		RawAmount:  item.Amount,
		Frequency:  item.Frequency,
		Confidence: structuredConfidence,
	}
	if item.Frequency == types.FrequencyHourly {
		hours := 0.0
		if item.HoursPerWeek != nil {
			hours = *item.HoursPerWeek
		}
		src.MonthlyAmount = e.norm.HourlyToMonthly(item.Amount, hours)
		if hours == 0 {
			hours = e.norm.DefaultHours()
		}
		src.HoursPerWeek = hours
	} else {
		src.MonthlyAmount = e.norm.ToMonthly(item.Amount, item.Frequency)
	}
	return src
}

// applyExpense maps explicit expense items onto the deduction categories the
// eligibility engine understands. Unknown expense types are ignored rather
// than faulted.
func (e *Engine) applyExpense(f *types.Facts, exp types.ExpenseItem) {
	monthly := float64(e.norm.ToMonthly(exp.Amount, exp.Frequency))
	switch exp.Type {
	case "childcare", "daycare", "after_school":
		if f.PotentialDeductions.Childcare == nil {
			f.PotentialDeductions.Childcare = &monthly
		}
	case "medical", "medication", "prescriptions":
		if f.PotentialDeductions.Medical == nil {
			f.PotentialDeductions.Medical = &monthly
		}
	case "child_support", "alimony":
		if f.PotentialDeductions.CourtOrderedSupport == nil {
			f.PotentialDeductions.CourtOrderedSupport = &monthly
		}
	case "utilities", "electric", "gas", "heating":
		if f.UtilityCost == nil {
			f.UtilityCost = &monthly
			f.HasHeatingCoolingCosts = true
		}
	}
}

func (e *Engine) applyHousehold(f *types.Facts, h *types.HouseholdInput) {
	switch h.HousingType {
	case "renting":
		f.HousingType = "renting"
	case "own_outright", "mortgage":
		f.HousingType = "own"
	case "living_with_others":
		f.HousingType = "living_with_others"
		f.HousingInstability = types.InstabilityDoubledUp
	case "shelter":
		f.HousingInstability = types.InstabilityShelter
	case "homeless":
		f.HousingInstability = types.InstabilityHomeless
	}

	if h.RentAmount != nil && *h.RentAmount > 0 {
		rent := *h.RentAmount
		f.Rent = &rent
		f.ExtractionConfidence["rent"] = structuredConfidence
	}
	f.UtilitiesSeparate = h.UtilitiesSeparate
	f.UtilitiesIncluded = h.UtilitiesIncluded
	if h.HasHeatingCosts || h.HasCoolingCosts {
		f.HasHeatingCoolingCosts = true
	}
	if h.UtilitiesSeparate && !h.UtilitiesIncluded {
		f.HasHeatingCoolingCosts = true
	}
}
