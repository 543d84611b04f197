package eligibility

import (
	"fmt"

	"github.com/jonathan/benefits-navigator/internal/types"
)

// DecisionMap produces the legacy single-program SNAP decision shape kept
// for callers that predate multi-program screening. Unlike the original
// fixed one-person limits, it sizes the limits from the poverty-level table.
func (e *Engine) DecisionMap(f *types.Facts) *types.DecisionMap {
	dm := &types.DecisionMap{
		Program:       types.ProgramSNAP,
		Confidence:    types.ConfidenceMedium,
		HouseholdSize: f.HouseholdSize,
	}

	if f.DataQualityScore < 0.5 {
		dm.ConfidenceWarnings = append(dm.ConfidenceWarnings,
			"Extraction confidence is low; verify key figures with the applicant")
		dm.Confidence = types.ConfidenceLow
	}
	for _, c := range f.ContradictionsDetected {
		dm.ConfidenceWarnings = append(dm.ConfidenceWarnings,
			fmt.Sprintf("Contradiction (%s): %s", c.Type, c.Description))
	}

	income, known := f.MonthlyIncome()
	if !known {
		dm.Status = types.StatusInsufficientInfo
		dm.Reason = "Unable to determine income from provided information"
		dm.MissingCriticalInfo = append(dm.MissingCriticalInfo, "gross_monthly_income")
		dm.NextSteps = []string{
			"Verify monthly gross income amount",
			"Gather recent pay stubs or income documentation",
		}
		return dm
	}

	snapLimit := e.fpl.Limit(f.HouseholdSize, 130)
	liheapLimit := e.fpl.Limit(f.HouseholdSize, 150)
	dm.IncomeLimit = snapLimit

	if income <= snapLimit {
		dm.Status = types.StatusLikelyEligible
		dm.Reason = "Income is within SNAP gross income limits"
		dm.NextSteps = []string{
			"Apply for SNAP through the local social services office",
			"Gather required income and identity documents",
		}
		dm.DocumentsNeeded = []string{
			"Recent pay stubs (30 days)",
			"Photo ID",
			"Proof of residence",
		}
		if f.HasCircumstance(types.CircumstancePriorDenial) {
			dm.NextSteps = append(dm.NextSteps,
				"Ask the caseworker to review the previous denial; circumstances may have changed")
		}
		return dm
	}

	over := income - snapLimit
	if (f.UtilitiesSeparate || f.HasHeatingCoolingCosts) && income <= liheapLimit {
		dm.Status = types.StatusNotEligible
		dm.Reversible = true
		dm.Reason = fmt.Sprintf(
			"Income is $%d over SNAP limit, but LIHEAP utility deduction could qualify household", over)
		dm.HighImpactAction = "Apply for LIHEAP to qualify for the Standard Utility Allowance, which reduces countable SNAP income"
		dm.NextSteps = []string{
			"Apply for LIHEAP immediately",
			"Collect utility bills for LIHEAP application",
			"Reapply for SNAP once LIHEAP approved or pending",
			"Reference LIHEAP application when applying for SNAP",
		}
		dm.DocumentsNeeded = []string{
			"Recent electric or gas bill",
			"Proof of income (last 30 days)",
			"Lease agreement or rent receipt",
		}
		return dm
	}

	dm.Status = types.StatusNotEligible
	dm.Reason = fmt.Sprintf("Income is $%d over SNAP limit and no available deductions apply", over)
	dm.NextSteps = []string{
		"Verify all income amounts are accurate",
		"Check if any household circumstances have changed",
	}
	return dm
}
