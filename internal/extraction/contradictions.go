package extraction

import (
	"regexp"

	"github.com/jonathan/benefits-navigator/internal/types"
)

// Mutually exclusive lexical indicators. Each check fires when both sides of
// a pair are present; the detector annotates but never alters extracted values.
var (
	employedIndicatorRe   = regexp.MustCompile(`(?i)\bworks?\b|\bworking\b|\bemployed\b|\bmakes?\s+\$|\bearns?\s+\$|\bjob\s+at\b|\bpart[- ]?time\b|\bfull[- ]?time\b`)
	unemployedIndicatorRe = regexp.MustCompile(`(?i)\bunemployed\b|\bout\s+of\s+work\b|\bnot\s+working\b|\bjobless\b|\bno\s+job\b`)

	singleIndicatorRe  = regexp.MustCompile(`(?i)\bsingle\s+(?:adult|mother|father|mom|dad|parent|woman|man|person)\b|\bnot\s+married\b|\bdivorced\b|\bwidowed\b`)
	marriedIndicatorRe = regexp.MustCompile(`(?i)\bmarried\b|\bhusband\b|\bwife\b|\bspouse\b|\bmy\s+partner\b`)

	homelessIndicatorRe = regexp.MustCompile(`(?i)\bhomeless\b|\bno\s+(?:permanent\s+)?housing\b|\bsleeping\s+in\b|\bon\s+the\s+streets?\b`)
)

// DetectContradictions scans the raw text and the partially built facts for
// mutually exclusive assertions. Contradictions are reported as data for the
// caller to surface, never silently resolved.
func DetectContradictions(raw string, facts *types.Facts) []types.Contradiction {
	var found []types.Contradiction

	if employedIndicatorRe.MatchString(raw) && unemployedIndicatorRe.MatchString(raw) {
		found = append(found, types.Contradiction{
			Type:        "employment_status",
			Description: "text mentions both employment and unemployment",
			Severity:    "medium",
		})
	}

	if singleIndicatorRe.MatchString(raw) && marriedIndicatorRe.MatchString(raw) {
		found = append(found, types.Contradiction{
			Type:        "marital_status",
			Description: "text mentions both single and married/partnered status",
			Severity:    "medium",
		})
	}

	if homelessIndicatorRe.MatchString(raw) && facts.Rent != nil && *facts.Rent > 0 {
		found = append(found, types.Contradiction{
			Type:        "housing_status",
			Description: "text mentions homelessness but a rent payment was extracted",
			Severity:    "low",
		})
	}

	return found
}
