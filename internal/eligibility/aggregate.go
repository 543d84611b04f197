package eligibility

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/benefits-navigator/internal/types"
)

// priorityOrder is the fixed precedence for the single recommended first
// move. SNAP leads because it is fastest to process and certifies school
// meals directly; coverage and energy assistance follow.
var priorityOrder = []struct {
	program types.Program
	reason  string
}{
	{types.ProgramSNAP, "Fastest approval path and automatically certifies children for school meals"},
	{types.ProgramMedicaid, "Health coverage unlocks adjunctive eligibility for nutrition programs"},
	{types.ProgramLIHEAP, "Energy assistance can also reduce countable SNAP income"},
}

// Aggregate evaluates every program and folds the results into a single
// multi-program summary with a priority action and a total value estimate.
func (e *Engine) Aggregate(f *types.Facts) *types.MultiProgramResult {
	programs := e.EvaluateAll(f)

	result := &types.MultiProgramResult{
		Programs:         programs,
		Facts:            f,
		DataQualityScore: f.DataQualityScore,
		// Buckets start non-nil so empty ones serialize as [] rather
		// than null.
		Summary: types.Summary{
			LikelyEligible:      []string{},
			PotentiallyEligible: []string{},
			NotEligible:         []string{},
			NotApplicable:       []string{},
			InsufficientInfo:    []string{},
		},
	}

	for _, p := range programs {
		name := string(p.Program)
		switch p.Status {
		case types.StatusLikelyEligible:
			result.Summary.LikelyEligible = append(result.Summary.LikelyEligible, name)
		case types.StatusPotentiallyEligible:
			result.Summary.PotentiallyEligible = append(result.Summary.PotentiallyEligible, name)
		case types.StatusNotEligible:
			result.Summary.NotEligible = append(result.Summary.NotEligible, name)
		case types.StatusNotApplicable:
			result.Summary.NotApplicable = append(result.Summary.NotApplicable, name)
		case types.StatusInsufficientInfo:
			result.Summary.InsufficientInfo = append(result.Summary.InsufficientInfo, name)
		}
	}

	result.PriorityAction = priorityAction(programs)
	result.TotalEstimatedMonthlyValue = totalEstimatedValue(programs)
	return result
}

func priorityAction(programs []types.ProgramResult) *types.PriorityAction {
	for _, entry := range priorityOrder {
		for _, p := range programs {
			if p.Program != entry.program || p.Status != types.StatusLikelyEligible {
				continue
			}
			return &types.PriorityAction{
				Program:   entry.program,
				Reason:    entry.reason,
				Expedited: p.Expedited,
			}
		}
	}
	return nil
}

var benefitAmountRe = regexp.MustCompile(`\$(\d[\d,]*)`)

// totalEstimatedValue sums the numeric bounds of every likely-eligible
// program's benefit estimate. Programs whose estimates carry no number are
// skipped; "varies" is reported when none qualify numerically.
func totalEstimatedValue(programs []types.ProgramResult) string {
	low, high := 0, 0
	counted := false

	for _, p := range programs {
		if p.Status != types.StatusLikelyEligible || p.EstimatedBenefit == "" {
			continue
		}
		matches := benefitAmountRe.FindAllStringSubmatch(p.EstimatedBenefit, -1)
		if len(matches) == 0 {
			continue
		}
		first, err := strconv.Atoi(strings.ReplaceAll(matches[0][1], ",", ""))
		if err != nil {
			continue
		}
		last := first
		if len(matches) > 1 {
			if v, err := strconv.Atoi(strings.ReplaceAll(matches[len(matches)-1][1], ",", "")); err == nil && v > last {
				last = v
			}
		}
		low += first
		high += last
		counted = true
	}

	if !counted {
		return "varies"
	}
	if low == high {
		return fmt.Sprintf("$%d/month", low)
	}
	return fmt.Sprintf("$%d-$%d/month", low, high)
}
