package eligibility

import (
	"fmt"

	"github.com/jonathan/benefits-navigator/internal/types"
)

// Tier is one income threshold within a program, expressed as a percentage
// of the poverty level. Multi-tier programs list tiers richest first; the
// first tier whose limit the income does not exceed wins.
type Tier struct {
	Name string
	Pct  int
}

// ProgramConfig describes one program declaratively: a categorical gate, the
// income tiers that apply to a given household, optional rescue logic for
// over-limit incomes, and benefit/next-step text. The shared evaluator in
// evaluate.go interprets these configs so program rules live as data.
type ProgramConfig struct {
	Program types.Program

	// Gate reports whether the household can use the program at all,
	// checked before income. A false result carries the reason text.
	// Nil means no categorical requirement.
	Gate func(f *types.Facts) (bool, string)

	// Tiers returns the income tiers applicable to this household.
	Tiers func(f *types.Facts) []Tier

	// OverIncome may rescue an over-limit household into a softer status.
	// It returns true when it produced a determination.
	OverIncome func(e *Engine, f *types.Facts, income int, res *types.ProgramResult) bool

	// Decorate adjusts a passing determination after next steps are set
	// (expedited flags, verification downgrades).
	Decorate func(e *Engine, f *types.Facts, income int, res *types.ProgramResult)

	// Estimate renders the monthly benefit estimate for a passing household.
	Estimate func(f *types.Facts, tier string) string

	// NextSteps returns the recommended actions for the determined status.
	NextSteps func(f *types.Facts, st types.Status) []string

	// Documents are requested whenever the household should apply.
	Documents []string
}

// expeditedIncomeFloor is the gross monthly income below which SNAP
// applications qualify for expedited processing.
const expeditedIncomeFloor = 150

// snapMaxAllotments is the maximum monthly SNAP benefit by household size
// 1-8; snapAllotmentPerAdditional extends beyond size 8.
var snapMaxAllotments = map[int]int{
	1: 292, 2: 536, 3: 768, 4: 975,
	5: 1158, 6: 1390, 7: 1536, 8: 1756,
}

const snapAllotmentPerAdditional = 220

func snapMaxAllotment(size int) int {
	if size < 1 {
		size = 1
	}
	if v, ok := snapMaxAllotments[size]; ok {
		return v
	}
	return snapMaxAllotments[8] + (size-8)*snapAllotmentPerAdditional
}

func defaultPrograms() []ProgramConfig {
	return []ProgramConfig{
		snapConfig(),
		medicaidConfig(),
		liheapConfig(),
		wicConfig(),
		schoolMealsConfig(),
		mspConfig(),
	}
}

func snapConfig() ProgramConfig {
	return ProgramConfig{
		Program: types.ProgramSNAP,
		Tiers: func(f *types.Facts) []Tier {
			return []Tier{{Pct: 130}}
		},
		OverIncome: func(e *Engine, f *types.Facts, income int, res *types.ProgramResult) bool {
			if !f.UtilitiesSeparate && !f.HasHeatingCoolingCosts {
				return false
			}
			suaLimit := e.fpl.Limit(f.HouseholdSize, 150)
			if income > suaLimit {
				return false
			}
			over := income - res.IncomeLimit
			res.Status = types.StatusPotentiallyEligible
			res.Confidence = types.ConfidenceMedium
			res.Reason = fmt.Sprintf(
				"Income is $%d over the SNAP gross limit, but the standard utility allowance through LIHEAP could qualify the household", over)
			return true
		},
		Decorate: func(e *Engine, f *types.Facts, income int, res *types.ProgramResult) {
			if res.Status != types.StatusLikelyEligible {
				return
			}
			if income < expeditedIncomeFloor ||
				f.HousingInstability != types.InstabilityNone ||
				f.HasCircumstance(types.CircumstanceDomesticViolence) {
				res.Expedited = true
				res.NextSteps = append([]string{"Request expedited processing when applying (7-day decision)"}, res.NextSteps...)
			}
		},
		Estimate: func(f *types.Facts, tier string) string {
			return fmt.Sprintf("$23-$%d/month", snapMaxAllotment(f.HouseholdSize))
		},
		NextSteps: func(f *types.Facts, st types.Status) []string {
			switch st {
			case types.StatusLikelyEligible:
				steps := []string{
					"Apply for SNAP through the local social services office",
					"Gather required income and identity documents",
				}
				if f.HasCircumstance(types.CircumstancePriorDenial) {
					steps = append(steps, "Ask the caseworker to review the previous denial; circumstances may have changed")
				}
				return steps
			case types.StatusPotentiallyEligible:
				return []string{
					"Apply for LIHEAP immediately",
					"Collect utility bills for the LIHEAP application",
					"Reapply for SNAP once LIHEAP is approved or pending",
					"Reference the LIHEAP application when applying for SNAP",
				}
			case types.StatusNotEligible:
				return []string{
					"Verify all income amounts are accurate",
					"Check whether any household circumstances have changed",
				}
			}
			return nil
		},
		Documents: []string{
			"Recent pay stubs (30 days)",
			"Photo ID",
			"Proof of residence",
		},
	}
}

func medicaidConfig() ProgramConfig {
	return ProgramConfig{
		Program: types.ProgramMedicaid,
		Tiers: func(f *types.Facts) []Tier {
			switch {
			case f.Pregnant:
				return []Tier{{Name: "pregnant", Pct: 148}}
			case f.InfantsUnder1 > 0 || f.ChildrenUnder5 > 0 || f.ChildrenSchoolAge > 0:
				return []Tier{{Name: "parent", Pct: 143}}
			default:
				return []Tier{{Name: "adult", Pct: 138}}
			}
		},
		Estimate: func(f *types.Facts, tier string) string {
			return "$450-$600/month"
		},
		NextSteps: func(f *types.Facts, st types.Status) []string {
			switch st {
			case types.StatusLikelyEligible:
				steps := []string{"Apply through the state Medicaid agency or healthcare marketplace"}
				if f.HasCircumstance(types.CircumstanceNoInsurance) {
					steps = append(steps, "Ask about retroactive coverage for recent medical bills")
				}
				return steps
			case types.StatusNotEligible:
				return []string{"Check marketplace plans with premium subsidies"}
			}
			return nil
		},
		Documents: []string{
			"Proof of income (last 30 days)",
			"Photo ID",
			"Proof of state residence",
		},
	}
}

func liheapConfig() ProgramConfig {
	return ProgramConfig{
		Program: types.ProgramLIHEAP,
		Gate: func(f *types.Facts) (bool, string) {
			if f.HasHeatingCoolingCosts || f.UtilitiesSeparate || f.UtilityCost != nil || f.UtilitiesIncluded {
				return true, ""
			}
			return false, "No heating or cooling cost exposure reported"
		},
		Tiers: func(f *types.Facts) []Tier {
			return []Tier{{Pct: 150}}
		},
		Decorate: func(e *Engine, f *types.Facts, income int, res *types.ProgramResult) {
			if res.Status != types.StatusLikelyEligible {
				return
			}
			if f.UtilitiesIncluded && !f.UtilitiesSeparate {
				res.Status = types.StatusPotentiallyEligible
				res.Confidence = types.ConfidenceMedium
				res.Reason = "Utilities are included in rent; landlord verification of heating costs is required"
				res.NextSteps = []string{
					"Request a landlord statement of heating costs included in rent",
					"Apply for LIHEAP with the landlord verification attached",
				}
			}
		},
		Estimate: func(f *types.Facts, tier string) string {
			return "$45-$85/month"
		},
		NextSteps: func(f *types.Facts, st types.Status) []string {
			switch st {
			case types.StatusLikelyEligible:
				return []string{
					"Apply for LIHEAP before the seasonal window closes",
					"Collect the most recent heating or electric bill",
				}
			case types.StatusNotEligible:
				return []string{"Ask the utility company about their own hardship programs"}
			}
			return nil
		},
		Documents: []string{
			"Recent electric or gas bill",
			"Proof of income (last 30 days)",
			"Lease agreement or rent receipt",
		},
	}
}

func wicConfig() ProgramConfig {
	return ProgramConfig{
		Program: types.ProgramWIC,
		Gate: func(f *types.Facts) (bool, string) {
			if f.Pregnant || f.Postpartum || f.Breastfeeding || f.ChildrenUnder5 > 0 {
				return true, ""
			}
			return false, "No pregnant or postpartum member and no children under 5"
		},
		Tiers: func(f *types.Facts) []Tier {
			return []Tier{{Pct: 185}}
		},
		OverIncome: func(e *Engine, f *types.Facts, income int, res *types.ProgramResult) bool {
			res.Status = types.StatusPotentiallyEligible
			res.Confidence = types.ConfidenceMedium
			res.Reason = "Income exceeds the WIC limit, but enrollment in SNAP or Medicaid qualifies the household automatically"
			return true
		},
		Estimate: func(f *types.Facts, tier string) string {
			return "$50-$120/month"
		},
		NextSteps: func(f *types.Facts, st types.Status) []string {
			switch st {
			case types.StatusLikelyEligible:
				return []string{
					"Schedule a WIC certification appointment at the local clinic",
					"Bring proof of pregnancy or the children's birth certificates",
				}
			case types.StatusPotentiallyEligible:
				return []string{
					"Apply for SNAP or Medicaid first to establish adjunctive eligibility",
					"Schedule a WIC appointment once enrolled",
				}
			}
			return nil
		},
		Documents: []string{
			"Proof of income or program enrollment",
			"Proof of residence",
			"Identification for each applicant",
		},
	}
}

func schoolMealsConfig() ProgramConfig {
	return ProgramConfig{
		Program: types.ProgramSchoolMeals,
		Gate: func(f *types.Facts) (bool, string) {
			if f.ChildrenSchoolAge > 0 {
				return true, ""
			}
			return false, "No school-age children (5-18) in the household"
		},
		Tiers: func(f *types.Facts) []Tier {
			return []Tier{
				{Name: "free", Pct: 130},
				{Name: "reduced", Pct: 185},
			}
		},
		Estimate: func(f *types.Facts, tier string) string {
			if tier == "reduced" {
				return "$80-$120/month"
			}
			return "$120-$180/month"
		},
		NextSteps: func(f *types.Facts, st types.Status) []string {
			switch st {
			case types.StatusLikelyEligible:
				return []string{
					"Submit a meal application through the school district",
					"Note that SNAP enrollment certifies the children directly",
				}
			case types.StatusNotEligible:
				return []string{"Reapply if household income drops during the school year"}
			}
			return nil
		},
		Documents: []string{"Household income listing on the district meal application"},
	}
}

func mspConfig() ProgramConfig {
	return ProgramConfig{
		Program: types.ProgramMSP,
		Gate: func(f *types.Facts) (bool, string) {
			if f.MedicareEligible || f.OnMedicare {
				return true, ""
			}
			return false, "No Medicare-eligible household member"
		},
		Tiers: func(f *types.Facts) []Tier {
			return []Tier{
				{Name: "QMB", Pct: 100},
				{Name: "SLMB", Pct: 120},
				{Name: "QI", Pct: 135},
			}
		},
		Estimate: func(f *types.Facts, tier string) string {
			if tier == "QMB" {
				return "$185/month plus deductibles and copays"
			}
			return "$185/month"
		},
		NextSteps: func(f *types.Facts, st types.Status) []string {
			switch st {
			case types.StatusLikelyEligible:
				return []string{
					"Apply for the Medicare Savings Program through the state Medicaid office",
					"Bring the Medicare card and Social Security award letter",
				}
			case types.StatusNotEligible:
				return []string{"Check Extra Help for prescription drug costs, which has higher limits"}
			}
			return nil
		},
		Documents: []string{
			"Medicare card",
			"Social Security award letter",
			"Proof of income (last 30 days)",
		},
	}
}
