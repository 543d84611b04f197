package extraction

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Confidence scoring constants. Self-reported narrative data starts below
// verified-document confidence and moves up or down based on how the value
// was phrased.
const (
	baseConfidence       = 0.65
	bonusAffirmativeVerb = 0.10
	bonusNonRoundValue   = 0.05
	bonusCurrencySymbol  = 0.05
	penaltyHedging       = 0.10
	penaltyTemporal      = 0.15
	penaltyNegation      = 0.20
)

var (
	affirmativeRe = regexp.MustCompile(`(?i)\b(is|are|gets?|receives?|makes?|earns?|works?|pays?)\b`)
	hedgingRe     = regexp.MustCompile(`(?i)\b(about|approximately|around|roughly|maybe|perhaps|i think|something like|some months)\b`)
	temporalRe    = regexp.MustCompile(`(?i)\b(used to|previously|last year|last month|back then|before|expecting|if approved)\b`)
	negationRe    = regexp.MustCompile(`(?i)\b(not|never|stopped|no longer|doesn'?t|don'?t|won'?t|without)\b`)
)

// ScoreResult is a bounded confidence value plus the factors that produced it,
// retained for the audit trail.
type ScoreResult struct {
	Confidence float64  `json:"confidence"`
	Factors    []string `json:"factors,omitempty"`
}

// ScoreConfidence computes a [0,1] confidence for an extracted value from the
// linguistic context surrounding the match. The matched text itself counts as
// context; factors trigger independently.
func ScoreConfidence(value string, context string, matched string) ScoreResult {
	confidence := baseConfidence
	factors := []string{"base_self_reported"}

	if affirmativeRe.MatchString(context) {
		confidence += bonusAffirmativeVerb
		factors = append(factors, "affirmative_verb")
	}
	if isNonRound(value) {
		confidence += bonusNonRoundValue
		factors = append(factors, "non_round_value")
	}
	if strings.Contains(matched, "$") {
		confidence += bonusCurrencySymbol
		factors = append(factors, "currency_symbol")
	}
	if hedgingRe.MatchString(context) {
		confidence -= penaltyHedging
		factors = append(factors, "hedging_language")
	}
	if temporalRe.MatchString(context) {
		confidence -= penaltyTemporal
		factors = append(factors, "temporal_uncertainty")
	}
	if negationRe.MatchString(context) {
		confidence -= penaltyNegation
		factors = append(factors, "negation_proximity")
	}

	return ScoreResult{Confidence: clamp01(confidence), Factors: factors}
}

// isNonRound reports whether a numeric value does not land on an even
// hundred. Oddly specific amounts ($914, $1,456) tend to be read off a
// benefit letter rather than estimated.
func isNonRound(value string) bool {
	v, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return false
	}
	return math.Mod(v, 100) != 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
