// Package extraction turns free-text household narratives into normalized,
// confidence-scored Facts records using ordered pattern rules. It is a
// best-effort heuristic extractor: misses and ambiguity are surfaced through
// confidence scores and contradiction annotations, never as errors.
package extraction

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/benefits-navigator/internal/normalize"
	"github.com/jonathan/benefits-navigator/internal/types"
)

// Engine applies the pattern tables to raw text. It holds no per-call state;
// a single Engine may be shared by any number of concurrent extractions.
type Engine struct {
	norm *normalize.Normalizer
}

// NewEngine creates an Engine with the default frequency normalizer.
func NewEngine() *Engine {
	return &Engine{norm: normalize.New()}
}

// NewEngineWithNormalizer creates an Engine with a custom normalizer, so the
// full-time hours assumption and multiplier table can be swapped.
func NewEngineWithNormalizer(n *normalize.Normalizer) *Engine {
	return &Engine{norm: n}
}

// hourMention is one "N hours" occurrence, kept in order of appearance.
type hourMention struct {
	hours float64
	pos   int
	used  bool
}

// span marks a region of text already consumed by an accepted income match.
type span struct{ start, end int }

// extractRun carries per-call state through one extraction.
type extractRun struct {
	text     string
	facts    *types.Facts
	hours    []hourMention
	consumed []span
}

// Extract parses a raw household narrative into a Facts record. It never
// fails: malformed numbers are skipped and missing fields stay unset.
func (e *Engine) Extract(raw string) *types.Facts {
	r := &extractRun{
		text: raw,
		facts: &types.Facts{
			HouseholdSize:        1,
			ExtractionConfidence: map[string]float64{},
		},
	}

	r.collectHourMentions()
	e.extractHousehold(r)
	e.extractAges(r)
	e.extractDemographics(r)
	e.extractIncome(r)
	e.extractHousing(r)
	e.extractUtilities(r)
	e.extractInstability(r)
	e.extractEmployment(r)
	e.extractCircumstances(r)
	e.extractDeductions(r)
	e.extractCustody(r)
	e.finalize(r)

	r.facts.ContradictionsDetected = DetectContradictions(raw, r.facts)
	return r.facts
}

func (r *extractRun) collectHourMentions() {
	for _, m := range hourMentionRe.FindAllStringSubmatchIndex(r.text, -1) {
		low, err := strconv.ParseFloat(r.text[m[2]:m[3]], 64)
		if err != nil {
			continue
		}
		hours := low
		if m[4] >= 0 {
			if high, err := strconv.ParseFloat(r.text[m[4]:m[5]], 64); err == nil && high > low {
				hours = (low + high) / 2
			}
		}
		if hours <= 0 || hours > 100 {
			continue
		}
		r.hours = append(r.hours, hourMention{hours: hours, pos: m[0]})
	}
}

// nextHours returns the next unassigned hours mention, or the default when
// every mention is already attached to an earlier hourly entry.
func (r *extractRun) nextHours(def float64) float64 {
	for i := range r.hours {
		if !r.hours[i].used {
			r.hours[i].used = true
			return r.hours[i].hours
		}
	}
	return def
}

func (e *Engine) extractHousehold(r *extractRun) {
	f := r.facts
	raise := func(candidate int, rule string) {
		if candidate > f.HouseholdSize {
			f.HouseholdSize = candidate
			f.PatternsMatched = append(f.PatternsMatched, rule)
		}
	}

	f.PatternsAttempted++
	if m := householdOfRe.FindStringSubmatch(r.text); m != nil {
		raise(pickCount(m[1], m[2]), "household_of")
	}
	f.PatternsAttempted++
	if m := peopleCountRe.FindStringSubmatch(r.text); m != nil {
		raise(pickCount(m[1], ""), "household_people_count")
	}

	adults := 1
	f.PatternsAttempted++
	if coupleRe.MatchString(r.text) {
		adults = 2
		f.HouseholdMembers = append(f.HouseholdMembers, types.HouseholdMember{Type: "adult", Count: 2, Note: "couple"})
	}
	f.PatternsAttempted++
	if nouns := distinctMatches(adultNounRe, r.text); len(nouns) > adults {
		adults = len(nouns)
		f.HouseholdMembers = append(f.HouseholdMembers, types.HouseholdMember{Type: "adult", Count: adults, Note: strings.Join(nouns, ", ")})
	}

	children := 0
	f.PatternsAttempted++
	for _, m := range childCountRe.FindAllStringSubmatch(r.text, -1) {
		children += pickCount(m[1], m[2])
	}
	f.PatternsAttempted++
	if n := len(childMentionRe.FindAllString(r.text, -1)); n > children {
		children = n
	}
	if children > 0 {
		f.HouseholdMembers = append(f.HouseholdMembers, types.HouseholdMember{Type: "child", Count: children})
	}

	raise(adults+children, "household_members")
}

func (e *Engine) extractAges(r *extractRun) {
	f := r.facts
	seen := map[int]bool{}
	for _, re := range ageRules {
		f.PatternsAttempted++
		for _, m := range re.FindAllStringSubmatch(r.text, -1) {
			for _, g := range m[1:] {
				if g == "" {
					continue
				}
				age, err := strconv.Atoi(g)
				if err != nil || age > 110 {
					continue
				}
				if !seen[age] {
					seen[age] = true
					f.Ages = append(f.Ages, age)
					f.PatternsMatched = append(f.PatternsMatched, "age")
				}
			}
		}
	}
	f.PatternsAttempted++
	if infantMonthsRe.MatchString(r.text) && !seen[0] {
		seen[0] = true
		f.Ages = append(f.Ages, 0)
		f.PatternsMatched = append(f.PatternsMatched, "age_infant_months")
	}
	sort.Ints(f.Ages)

	for _, age := range f.Ages {
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
}

func (e *Engine) extractDemographics(r *extractRun) {
	f := r.facts
	f.PatternsAttempted += 5

	if pregnantRe.MatchString(r.text) && !notPregnantRe.MatchString(r.text) {
		f.Pregnant = true
		f.PatternsMatched = append(f.PatternsMatched, "pregnant")
	}
	if breastfeedingRe.MatchString(r.text) {
		f.Breastfeeding = true
		f.PatternsMatched = append(f.PatternsMatched, "breastfeeding")
	}
	if postpartumRe.MatchString(r.text) {
		f.Postpartum = true
		f.PatternsMatched = append(f.PatternsMatched, "postpartum")
	}
	if disabledRe.MatchString(r.text) && !notDisabledRe.MatchString(r.text) {
		f.DisabledInHousehold = true
		f.PatternsMatched = append(f.PatternsMatched, "disabled")
	}
	if onMedicareRe.MatchString(r.text) {
		f.OnMedicare = true
		f.MedicareEligible = true
		f.PatternsMatched = append(f.PatternsMatched, "on_medicare")
	}
}

func (e *Engine) extractIncome(r *extractRun) {
	f := r.facts

	// Ranges first so "$300-400" is averaged once rather than matched twice.
	f.PatternsAttempted++
	for _, m := range incomeRangeRule.re.FindAllStringSubmatchIndex(r.text, -1) {
		e.acceptRange(r, m)
	}

	for _, rule := range incomeRules {
		f.PatternsAttempted++
		for _, m := range rule.re.FindAllStringSubmatchIndex(r.text, -1) {
			e.acceptIncome(r, rule, m)
		}
	}
}

// acceptIncome runs the expense check, dedup, frequency resolution and
// confidence scoring for one single-amount income match.
func (e *Engine) acceptIncome(r *extractRun, rule incomeRule, m []int) {
	matchStart, matchEnd := m[0], m[1]
	amtStart, amtEnd := m[2], m[3]

	if r.overlapsConsumed(amtStart, amtEnd) {
		return
	}
	if isExpenseContext(r.text, amtStart, amtEnd) {
		return
	}

	amount, ok := parseAmount(r.text[amtStart:amtEnd])
	if !ok {
		return
	}

	freq := rule.freq
	if freq == "" {
		freq = detectFrequency(r.text, matchStart, matchEnd)
	}

	src := types.IncomeSource{
		Type:      rule.incomeType,
		RawAmount: amount,
		Frequency: freq,
	}
	if freq == types.FrequencyHourly {
		src.HoursPerWeek = r.nextHours(0)
		src.MonthlyAmount = e.norm.HourlyToMonthly(amount, src.HoursPerWeek)
		if src.HoursPerWeek == 0 {
			src.HoursPerWeek = e.norm.DefaultHours()
		}
	} else {
		src.MonthlyAmount = e.norm.ToMonthly(amount, freq)
	}

	if r.isDuplicateIncome(src) {
		return
	}

	context := window(r.text, matchStart, matchEnd, 40)
	score := ScoreConfidence(r.text[amtStart:amtEnd], context, r.text[matchStart:matchEnd])
	src.Confidence = score.Confidence

	r.recordIncome(src, rule.name, span{amtStart, amtEnd})
}

// acceptRange handles "$X-$Y" matches: the bounds are averaged for a point
// estimate, the entry is flagged variable, and confidence drops by 0.10 with
// a 0.30 floor.
func (e *Engine) acceptRange(r *extractRun, m []int) {
	matchStart, matchEnd := m[0], m[1]
	lowStart, lowEnd := m[2], m[3]
	highStart, highEnd := m[4], m[5]

	if r.overlapsConsumed(lowStart, highEnd) {
		return
	}
	if isExpenseContext(r.text, lowStart, highEnd) {
		return
	}

	low, okLow := parseAmount(r.text[lowStart:lowEnd])
	high, okHigh := parseAmount(r.text[highStart:highEnd])
	if !okLow || !okHigh || high <= low {
		return
	}

	incomeType := "employment"
	lead := window(r.text, matchStart, matchStart, 60)
	if rangeTypeSelf.MatchString(lead) {
		incomeType = "self_employment"
	} else if strings.Contains(strings.ToLower(lead), "unemployment") {
		incomeType = "unemployment"
	}

	freq := detectFrequency(r.text, matchStart, matchEnd)
	if freq == types.FrequencyHourly {
		// "$35-40/hour" style ranges are rare enough to treat as monthly noise.
		return
	}

	avg := (low + high) / 2
	src := types.IncomeSource{
		Type:          incomeType,
		RawAmount:     avg,
		Frequency:     freq,
		MonthlyAmount: e.norm.ToMonthly(avg, freq),
		IsVariable:    true,
		RangeLow:      low,
		RangeHigh:     high,
	}

	if r.isDuplicateIncome(src) {
		return
	}

	context := window(r.text, matchStart, matchEnd, 40)
	score := ScoreConfidence(r.text[lowStart:lowEnd], context, r.text[matchStart:matchEnd])
	src.Confidence = rangeConfidence(score.Confidence)

	r.recordIncome(src, incomeRangeRule.name, span{lowStart, highEnd})
	if !r.facts.HasCircumstance(types.CircumstanceIrregularIncome) {
		r.facts.Circumstances = append(r.facts.Circumstances, types.CircumstanceIrregularIncome)
	}
}

// rangeConfidence applies the variable-income penalty with its floor.
func rangeConfidence(c float64) float64 {
	c -= 0.10
	if c < 0.30 {
		c = 0.30
	}
	return c
}

func (r *extractRun) recordIncome(src types.IncomeSource, rule string, sp span) {
	f := r.facts
	f.IncomeSources = append(f.IncomeSources, src)
	f.PatternsMatched = append(f.PatternsMatched, rule)
	r.consumed = append(r.consumed, sp)

	key := "income_" + src.Type
	if _, exists := f.ExtractionConfidence[key]; exists {
		key = fmt.Sprintf("%s_%d", key, len(f.IncomeSources))
	}
	f.ExtractionConfidence[key] = src.Confidence
}

// monthlyDedupTolerance guards against the same benefit being matched by two
// different label patterns. Two legitimately distinct sources closer than
// this collapse into one; see the engine tests for that boundary.
const monthlyDedupTolerance = 50

func (r *extractRun) isDuplicateIncome(src types.IncomeSource) bool {
	for _, prev := range r.facts.IncomeSources {
		if prev.Type == src.Type && prev.RawAmount == src.RawAmount {
			return true
		}
		diff := prev.MonthlyAmount - src.MonthlyAmount
		if diff < 0 {
			diff = -diff
		}
		if diff <= monthlyDedupTolerance {
			return true
		}
	}
	return false
}

func (r *extractRun) overlapsConsumed(start, end int) bool {
	for _, sp := range r.consumed {
		if start < sp.end && end > sp.start {
			return true
		}
	}
	return false
}

// isExpenseContext inspects a narrow window around an amount for expense
// vocabulary; without a countervailing income verb the amount is a payment
// going out, not income coming in. The window never crosses a sentence
// boundary, so expense talk in an adjacent sentence cannot disqualify income.
func isExpenseContext(text string, start, end int) bool {
	before := start - expenseWindowBefore
	if before < 0 {
		before = 0
	}
	if i := strings.LastIndexByte(text[before:start], '.'); i >= 0 {
		before += i + 1
	}
	after := end + expenseWindowAfter
	if after > len(text) {
		after = len(text)
	}
	if i := strings.IndexByte(text[end:after], '.'); i >= 0 {
		after = end + i
	}
	win := text[before:after]
	return expenseVocab.MatchString(win) && !incomeVerbs.MatchString(win)
}

func detectFrequency(text string, start, end int) types.Frequency {
	after := end + expenseWindowAfter
	if after > len(text) {
		after = len(text)
	}
	win := text[start:after]
	for _, d := range freqDetectors {
		if d.re.MatchString(win) {
			return d.freq
		}
	}
	return types.FrequencyMonthly
}

func (e *Engine) extractHousing(r *extractRun) {
	f := r.facts

	for _, re := range rentRules {
		f.PatternsAttempted++
		if f.Rent != nil {
			continue
		}
		m := re.FindStringSubmatchIndex(r.text)
		if m == nil {
			continue
		}
		amount, ok := parseAmount(r.text[m[2]:m[3]])
		if !ok {
			continue
		}
		f.Rent = &amount
		f.PatternsMatched = append(f.PatternsMatched, "rent")
		context := window(r.text, m[0], m[1], 40)
		score := ScoreConfidence(r.text[m[2]:m[3]], context, r.text[m[0]:m[1]])
		f.ExtractionConfidence["rent"] = score.Confidence
	}

	f.PatternsAttempted++
	switch {
	case housingOwnRe.MatchString(r.text):
		f.HousingType = "own"
	case housingWithRe.MatchString(r.text):
		f.HousingType = "living_with_others"
	case f.Rent != nil || housingRentRe.MatchString(r.text):
		f.HousingType = "renting"
	}
	if f.HousingType != "" {
		f.PatternsMatched = append(f.PatternsMatched, "housing_type")
	}
}

func (e *Engine) extractUtilities(r *extractRun) {
	f := r.facts
	f.PatternsAttempted += 2

	if utilIncludedRe.MatchString(r.text) {
		f.UtilitiesIncluded = true
		f.PatternsMatched = append(f.PatternsMatched, "utilities_included")
	}
	if utilSeparateRe.MatchString(r.text) && !f.UtilitiesIncluded {
		f.UtilitiesSeparate = true
		f.PatternsMatched = append(f.PatternsMatched, "utilities_separate")
	}

	for _, re := range utilityCostRule {
		f.PatternsAttempted++
		if f.UtilityCost != nil {
			continue
		}
		m := re.FindStringSubmatchIndex(r.text)
		if m == nil {
			continue
		}
		amount, ok := parseAmount(r.text[m[2]:m[3]])
		if !ok {
			continue
		}
		// Rent amounts sit near utility vocabulary in phrases like
		// "rent is $950 with utilities"; never mistake the rent figure.
		if f.Rent != nil && *f.Rent == amount {
			continue
		}
		f.UtilityCost = &amount
		if !f.UtilitiesIncluded {
			f.UtilitiesSeparate = true
		}
		f.PatternsMatched = append(f.PatternsMatched, "utility_cost")
		context := window(r.text, m[0], m[1], 40)
		score := ScoreConfidence(r.text[m[2]:m[3]], context, r.text[m[0]:m[1]])
		f.ExtractionConfidence["utility_cost"] = score.Confidence
	}

	f.PatternsAttempted++
	if heatingVocabRe.MatchString(r.text) || (f.UtilityCost != nil && !f.UtilitiesIncluded) || f.UtilitiesSeparate {
		f.HasHeatingCoolingCosts = true
		f.PatternsMatched = append(f.PatternsMatched, "heating_cooling_costs")
	}
}

func (e *Engine) extractInstability(r *extractRun) {
	f := r.facts
	for _, rule := range instabilityRules {
		f.PatternsAttempted++
		if f.HousingInstability != types.InstabilityNone {
			continue
		}
		if rule.re.MatchString(r.text) {
			f.HousingInstability = rule.category
			f.PatternsMatched = append(f.PatternsMatched, "housing_instability_"+string(rule.category))
		}
	}
}

func (e *Engine) extractEmployment(r *extractRun) {
	f := r.facts
	for _, rule := range employmentRules {
		f.PatternsAttempted++
		if f.Employment != "" {
			continue
		}
		if rule.re.MatchString(r.text) {
			f.Employment = rule.status
			f.PatternsMatched = append(f.PatternsMatched, "employment_"+rule.status)
		}
	}
}

func (e *Engine) extractCircumstances(r *extractRun) {
	f := r.facts
	for _, rule := range circumstanceRules {
		f.PatternsAttempted++
		if rule.re.MatchString(r.text) && !f.HasCircumstance(rule.tag) {
			f.Circumstances = append(f.Circumstances, rule.tag)
			f.PatternsMatched = append(f.PatternsMatched, "circumstance_"+rule.tag)
		}
	}
}

func (e *Engine) extractDeductions(r *extractRun) {
	f := r.facts
	for _, rule := range deductionRules {
		f.PatternsAttempted++
		m := rule.re.FindStringSubmatchIndex(r.text)
		if m == nil {
			continue
		}
		amount, ok := parseAmount(r.text[m[2]:m[3]])
		if !ok {
			continue
		}
		switch rule.category {
		case "childcare":
			if f.PotentialDeductions.Childcare == nil {
				f.PotentialDeductions.Childcare = &amount
				f.PatternsMatched = append(f.PatternsMatched, rule.name)
			}
		case "medical":
			if f.PotentialDeductions.Medical == nil {
				f.PotentialDeductions.Medical = &amount
				f.PatternsMatched = append(f.PatternsMatched, rule.name)
			}
		case "court_ordered_support":
			if f.PotentialDeductions.CourtOrderedSupport == nil {
				f.PotentialDeductions.CourtOrderedSupport = &amount
				f.PatternsMatched = append(f.PatternsMatched, rule.name)
			}
		}
	}
}

func (e *Engine) extractCustody(r *extractRun) {
	f := r.facts
	f.PatternsAttempted++

	arrangement := ""
	if m := custodySplitRe.FindStringSubmatch(r.text); m != nil {
		arrangement = strings.ReplaceAll(m[1], " ", "")
	} else if custodyJointRe.MatchString(r.text) {
		arrangement = "joint"
	}
	if arrangement == "" {
		return
	}

	info := &types.CustodyInfo{Arrangement: arrangement}
	if m := custodyOfRe.FindStringSubmatch(r.text); m != nil {
		info.Children = pickCount(m[1], m[2])
	}
	f.CustodyInfo = info
	f.PatternsMatched = append(f.PatternsMatched, "custody")
}

// finalize totals income, computes the shelter-burden deduction, and derives
// the aggregate data quality score.
func (e *Engine) finalize(r *extractRun) {
	f := r.facts

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
}

// dataQuality is the mean of recorded per-field confidences, defaulting to
// 0.5 when nothing was recorded.
func dataQuality(conf map[string]float64) float64 {
	if len(conf) == 0 {
		return 0.5
	}
	sum := 0.0
	for _, c := range conf {
		sum += c
	}
	return sum / float64(len(conf))
}

func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// window returns up to n characters of context on each side of [start, end).
func window(text string, start, end, n int) string {
	lo := start - n
	if lo < 0 {
		lo = 0
	}
	hi := end + n
	if hi > len(text) {
		hi = len(text)
	}
	return text[lo:hi]
}

func pickCount(digits, word string) int {
	if digits != "" {
		if n, err := strconv.Atoi(digits); err == nil {
			return n
		}
	}
	if n, ok := wordNumbers[strings.ToLower(word)]; ok {
		return n
	}
	return 0
}

func distinctMatches(re *regexp.Regexp, text string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range re.FindAllString(text, -1) {
		key := strings.ToLower(m)
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}
