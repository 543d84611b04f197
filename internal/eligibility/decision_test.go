package eligibility

import (
	"testing"

	"github.com/jonathan/benefits-navigator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecisionMap_MissingIncome(t *testing.T) {
	e := NewEngine(nil)
	f := &types.Facts{HouseholdSize: 1, DataQualityScore: 0.6}

	dm := e.DecisionMap(f)

	assert.Equal(t, types.ProgramSNAP, dm.Program)
	assert.Equal(t, types.StatusInsufficientInfo, dm.Status)
	assert.Contains(t, dm.MissingCriticalInfo, "gross_monthly_income")
	assert.NotEmpty(t, dm.NextSteps)
}

func TestDecisionMap_WithinLimit(t *testing.T) {
	e := NewEngine(nil)
	f := factsWithIncome(1, 1600)

	dm := e.DecisionMap(f)

	assert.Equal(t, types.StatusLikelyEligible, dm.Status)
	assert.Equal(t, 1697, dm.IncomeLimit)
	assert.False(t, dm.Reversible)
	assert.NotEmpty(t, dm.DocumentsNeeded)
}

func TestDecisionMap_ReversibleViaUtilityAllowance(t *testing.T) {
	e := NewEngine(nil)
	f := factsWithIncome(1, 1800)
	f.UtilitiesSeparate = true

	dm := e.DecisionMap(f)

	assert.Equal(t, types.StatusNotEligible, dm.Status)
	assert.True(t, dm.Reversible)
	assert.Contains(t, dm.Reason, "$103 over")
	assert.Contains(t, dm.HighImpactAction, "Standard Utility Allowance")
	assert.Contains(t, dm.NextSteps, "Apply for LIHEAP immediately")
}

func TestDecisionMap_OverAllLimits(t *testing.T) {
	e := NewEngine(nil)
	f := factsWithIncome(1, 2500)
	f.UtilitiesSeparate = true

	dm := e.DecisionMap(f)

	assert.Equal(t, types.StatusNotEligible, dm.Status)
	assert.False(t, dm.Reversible)
	assert.Contains(t, dm.Reason, "no available deductions")
}

func TestDecisionMap_WarningsFromQualityAndContradictions(t *testing.T) {
	e := NewEngine(nil)
	f := factsWithIncome(1, 1200)
	f.DataQualityScore = 0.4
	f.ContradictionsDetected = []types.Contradiction{
		{Type: "employment_status", Description: "text mentions both employment and unemployment", Severity: "medium"},
	}

	dm := e.DecisionMap(f)

	require.Len(t, dm.ConfidenceWarnings, 2)
	assert.Equal(t, types.ConfidenceLow, dm.Confidence)
	assert.Contains(t, dm.ConfidenceWarnings[1], "employment_status")
}

func TestDecisionMap_PriorDenialNextStep(t *testing.T) {
	e := NewEngine(nil)
	f := factsWithIncome(1, 1200)
	f.Circumstances = []string{types.CircumstancePriorDenial}

	dm := e.DecisionMap(f)

	require.Equal(t, types.StatusLikelyEligible, dm.Status)
	assert.Contains(t, dm.NextSteps[len(dm.NextSteps)-1], "previous denial")
}
