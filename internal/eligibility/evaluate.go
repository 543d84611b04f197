package eligibility

import (
	"fmt"

	"github.com/jonathan/benefits-navigator/internal/types"
)

// Engine evaluates Facts records against the configured program set. It holds
// only immutable configuration and may be shared across goroutines.
type Engine struct {
	fpl      *FPLTable
	programs []ProgramConfig
}

// NewEngine creates an Engine over the given poverty-level table. A nil
// table selects the default guideline year.
func NewEngine(fpl *FPLTable) *Engine {
	if fpl == nil {
		fpl = DefaultFPLTable()
	}
	return &Engine{fpl: fpl, programs: defaultPrograms()}
}

// FPL returns the poverty-level table the engine evaluates against.
func (e *Engine) FPL() *FPLTable {
	return e.fpl
}

// EvaluateAll runs every configured program against the facts, in the fixed
// program order.
func (e *Engine) EvaluateAll(f *types.Facts) []types.ProgramResult {
	results := make([]types.ProgramResult, 0, len(e.programs))
	for _, cfg := range e.programs {
		results = append(results, e.Evaluate(cfg, f))
	}
	return results
}

// Evaluate runs one program config against the facts: categorical gate first,
// then the missing-income check, then the tier scan with limits inclusive.
func (e *Engine) Evaluate(cfg ProgramConfig, f *types.Facts) types.ProgramResult {
	res := types.ProgramResult{Program: cfg.Program}

	if cfg.Gate != nil {
		if ok, reason := cfg.Gate(f); !ok {
			res.Status = types.StatusNotApplicable
			res.Confidence = types.ConfidenceHigh
			res.Reason = reason
			return res
		}
	}

	income, known := f.MonthlyIncome()
	if !known {
		res.Status = types.StatusInsufficientInfo
		res.Confidence = types.ConfidenceLow
		res.Reason = "Unable to determine household income from the provided information"
		res.NextSteps = []string{
			"Verify monthly gross income for every household member",
			"Gather recent pay stubs or benefit award letters",
		}
		return res
	}

	tiers := cfg.Tiers(f)
	var matched *Tier
	matchedLimit := 0
	if len(tiers) > 1 {
		res.IncomeLimits = make(map[string]int, len(tiers))
	}
	for i := range tiers {
		limit := e.fpl.Limit(f.HouseholdSize, tiers[i].Pct)
		if len(tiers) > 1 {
			res.IncomeLimits[tiers[i].Name] = limit
		} else {
			res.IncomeLimit = limit
		}
		if matched == nil && income <= limit {
			matched = &tiers[i]
			matchedLimit = limit
		}
	}

	if matched != nil {
		res.Status = types.StatusLikelyEligible
		res.Confidence = types.ConfidenceHigh
		if f.DataQualityScore < 0.5 {
			res.Confidence = types.ConfidenceMedium
		}
		res.Tier = matched.Name
		res.Reason = fmt.Sprintf(
			"Household income $%d/month is within the %d%% poverty-level limit of $%d for a household of %d",
			income, matched.Pct, matchedLimit, f.HouseholdSize)
		if cfg.Estimate != nil {
			res.EstimatedBenefit = cfg.Estimate(f, matched.Name)
		}
	} else if cfg.OverIncome == nil || !cfg.OverIncome(e, f, income, &res) {
		broadest := tiers[len(tiers)-1]
		limit := e.fpl.Limit(f.HouseholdSize, broadest.Pct)
		res.Status = types.StatusNotEligible
		res.Confidence = types.ConfidenceMedium
		res.Reason = fmt.Sprintf(
			"Household income $%d/month exceeds the %d%% poverty-level limit of $%d",
			income, broadest.Pct, limit)
	}

	if cfg.NextSteps != nil {
		if steps := cfg.NextSteps(f, res.Status); len(steps) > 0 {
			res.NextSteps = steps
		}
	}
	if res.Status == types.StatusLikelyEligible || res.Status == types.StatusPotentiallyEligible {
		res.DocumentsNeeded = cfg.Documents
	}
	if cfg.Decorate != nil {
		cfg.Decorate(e, f, income, &res)
	}
	return res
}
