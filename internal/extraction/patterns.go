package extraction

import (
	"regexp"

	"github.com/jonathan/benefits-navigator/internal/types"
)

// amt captures a dollar amount (group 1), comma-grouped, optional cents.
const amt = `\$([0-9][\d,]*(?:\.\d{1,2})?)`

// incomeRule is one ordered entry in the income pattern table. Rules are
// evaluated top to bottom; benefit-typed rules come before generic wage rules
// so a labeled benefit is never misclassified as employment income. The
// capture group is always the dollar amount.
type incomeRule struct {
	name       string
	re         *regexp.Regexp
	incomeType string
	freq       types.Frequency // empty means detect from the surrounding text
}

// incomeRules is the ordered income pattern table. Both label-first and
// amount-first phrasings are covered for each benefit type.
var incomeRules = []incomeRule{
	{"income_social_security_label", regexp.MustCompile(`(?i)social\s+security(?:\s+(?:income|benefits?|payments?|check))?\s*(?:of|is|at|totaling)?\s*` + amt), "social_security", ""},
	{"income_social_security_amount", regexp.MustCompile(`(?i)` + amt + `\s*(?:(?:/|per\s+|a\s+)mo(?:nth)?(?:ly)?|monthly)?\s*(?:in|from|of)?\s*social\s+security`), "social_security", ""},
	{"income_ssdi_amount", regexp.MustCompile(`(?i)` + amt + `\s*(?:monthly|/month|per\s+month|a\s+month)?\s*(?:in\s+|from\s+)?ssdi`), "ssdi", ""},
	{"income_ssdi_label", regexp.MustCompile(`(?i)ssdi(?:\s+(?:payments?|benefits?|checks?))?\s*(?:of|is)?\s*` + amt), "ssdi", ""},
	{"income_ssi_amount", regexp.MustCompile(`(?i)` + amt + `\s*(?:monthly|/month|per\s+month|a\s+month)?\s*(?:in\s+|from\s+)?ssi\b`), "ssi", ""},
	{"income_ssi_label", regexp.MustCompile(`(?i)\bssi\b(?:\s+(?:payments?|benefits?|checks?))?\s*(?:of|is)?\s*` + amt), "ssi", ""},
	{"income_disability_amount", regexp.MustCompile(`(?i)` + amt + `\s*(?:monthly|/month|per\s+month|a\s+month)?\s*(?:in\s+|from\s+)?disability`), "disability", ""},
	{"income_disability_label", regexp.MustCompile(`(?i)disability(?:\s+(?:payments?|benefits?|income|checks?))\s*(?:of|is)?\s*` + amt), "disability", ""},
	{"income_pension_label", regexp.MustCompile(`(?i)pension(?:\s+(?:income|payments?))?\s*(?:of|is|at)?\s*` + amt), "pension", ""},
	{"income_pension_amount", regexp.MustCompile(`(?i)` + amt + `\s*(?:monthly|/month|per\s+month|a\s+month)?\s*(?:in\s+|from\s+)?(?:a\s+)?pension`), "pension", ""},
	{"income_va_label", regexp.MustCompile(`(?i)\bva\s+(?:disability|benefits?|pension)\s*(?:of|is)?\s*` + amt), "va_benefits", ""},
	{"income_va_amount", regexp.MustCompile(`(?i)` + amt + `\s*(?:monthly|/month|per\s+month|a\s+month)?\s*(?:in\s+|from\s+)?(?:the\s+)?va\b`), "va_benefits", ""},
	{"income_unemployment_amount", regexp.MustCompile(`(?i)` + amt + `\s*(?:weekly|/week|per\s+week|a\s+week|monthly|/month|per\s+month|a\s+month)?\s*(?:in\s+|from\s+|of\s+)?unemployment`), "unemployment", ""},
	{"income_unemployment_label", regexp.MustCompile(`(?i)unemployment(?:\s+(?:benefits?|checks?|insurance))?[^.$]{0,40}?` + amt), "unemployment", ""},
	{"income_child_support_amount", regexp.MustCompile(`(?i)` + amt + `\s*(?:/month|per\s+month|monthly|a\s+month)?\s*(?:in\s+)?child\s+support`), "child_support", ""},
	{"income_child_support_label", regexp.MustCompile(`(?i)child\s+support(?:\s+payments?)?\s*(?:of|is)?\s*` + amt), "child_support", ""},
	{"income_alimony_amount", regexp.MustCompile(`(?i)` + amt + `\s*(?:/month|per\s+month|monthly|a\s+month)?\s*(?:in\s+)?(?:alimony|spousal\s+support)`), "alimony", ""},
	{"income_alimony_label", regexp.MustCompile(`(?i)(?:alimony|spousal\s+support)(?:\s+payments?)?\s*(?:of|is)?\s*` + amt), "alimony", ""},
	{"income_self_employment", regexp.MustCompile(`(?i)(?:self-?employ(?:ed|ment)|side\s+business|own\s+business|odd\s+jobs|cash\s+work|handyman|gig\s+work|freelanc\w+|babysit\w*|informal\s+\w+)[^.$]{0,40}?` + amt), "self_employment", ""},
	{"income_hourly_rate", regexp.MustCompile(`(?i)` + amt + `\s*(?:/|per\s+|an?\s+)h(?:ou)?r`), "employment", types.FrequencyHourly},
	{"income_generic_verb", regexp.MustCompile(`(?i)(?:mak(?:es?|ing)|earn(?:s|ed|ing)?|gets?|getting|receiv(?:es?|ing)|brings?\s+home|takes?\s+home|paid)\s+(?:about\s+|around\s+|approximately\s+|roughly\s+)?` + amt), "employment", ""},
	{"income_generic_period", regexp.MustCompile(`(?i)` + amt + `\s*(?:/|per\s+|a\s+|each\s+)(?:month|mo\b|week|wk\b|year|yr\b)`), "employment", ""},
}

// incomeRangeRule matches "$X-$Y" ranges, evaluated before single-amount
// rules so a range is averaged once instead of matched twice.
var incomeRangeRule = struct {
	name string
	re   *regexp.Regexp
}{
	"income_range",
	regexp.MustCompile(`(?i)` + amt + `\s*(?:-|–|—|to)\s*\$?([0-9][\d,]*(?:\.\d{1,2})?)`),
}

// rangeTypeSelf classifies a range as self-employment income when these
// appear shortly before the amounts.
var rangeTypeSelf = regexp.MustCompile(`(?i)self-?employ|business|cash|odd\s+jobs|handyman|gig|freelance|clean\w+|babysit|childcare\s+for`)

// Window sizes, in characters, for the expense disambiguation check around a
// candidate income amount.
const (
	expenseWindowBefore = 20
	expenseWindowAfter  = 30
)

var (
	// expenseVocab marks a dollar amount as an outgoing payment, not income.
	expenseVocab = regexp.MustCompile(`(?i)\b(rent(?:al|s)?|utilit\w+|electric\w*|gas|heat\w*|oil|water|medication\w*|medical|prescription|copay|childcare|day\s?care|after[- ]?school|pays?|paying|spends?|costs?|costing|bills?|expenses?|owes?|separate\w*|averag\w+)\b`)
	// incomeVerbs countervail the expense vocabulary inside the same window.
	incomeVerbs = regexp.MustCompile(`(?i)\b(earn\w*|mak(?:es?|ing)|receiv\w+|gets?|getting|brings?|income|wages?|salary)\b`)
)

// Frequency detection over the text immediately following (and including)
// an income match, checked in order of specificity.
var freqDetectors = []struct {
	re   *regexp.Regexp
	freq types.Frequency
}{
	{regexp.MustCompile(`(?i)(?:/|per\s+|an?\s+)h(?:ou)?r|hourly`), types.FrequencyHourly},
	{regexp.MustCompile(`(?i)every\s+(?:two|other)\s+weeks?|bi-?weekly`), types.FrequencyBiweekly},
	{regexp.MustCompile(`(?i)twice\s+a\s+month|semi-?monthly`), types.FrequencySemimonthly},
	{regexp.MustCompile(`(?i)(?:/|per\s+|a\s+|each\s+)(?:week|wk)\b|weekly`), types.FrequencyWeekly},
	{regexp.MustCompile(`(?i)(?:/|per\s+|a\s+|each\s+)(?:year|yr)\b|annual(?:ly)?|yearly`), types.FrequencyAnnual},
}

// hourMentionRe finds "N hours" mentions; ranges like "35-40 hours" are
// averaged. Mentions are assigned, in order of appearance, to hourly income
// entries that have no stated hours.
var hourMentionRe = regexp.MustCompile(`(?i)\b(\d{1,3}(?:\.\d+)?)(?:\s*[-–]\s*(\d{1,3}(?:\.\d+)?))?\s*h(?:ou)?rs?\b`)

// Household composition patterns. Household size is first-match-wins but may
// be revised upward, never downward, as additional members are detected.
var (
	householdOfRe  = regexp.MustCompile(`(?i)(?:household|family)\s+of\s+(?:(\d{1,2})|(two|three|four|five|six|seven|eight))`)
	peopleCountRe  = regexp.MustCompile(`(?i)(\d{1,2})\s+(?:people|persons|members)\s+(?:in|living|share|sharing)`)
	coupleRe       = regexp.MustCompile(`(?i)\b(?:married\s+couple|couple\b|husband|wife\b|spouse|married\b|my\s+partner\s+and\s+i)`)
	childCountRe   = regexp.MustCompile(`(?i)\b(?:(\d)|(two|three|four|five|twin))\s+(?:kids|children|boys|girls|sons|daughters|(?:\d{1,2}[- ]?year[- ]?old\s+)?(?:boys|girls))\b`)
	childMentionRe = regexp.MustCompile(`(?i)\b(?:a\s+|an\s+|\d{1,2}[- ])(?:year|yr|month|week)s?[- ]?old\s+(?:daughter|son|child|kid|boy|girl|baby|toddler|infant)`)
	// Adults named by relationship, used for multi-generation households.
	adultNounRe = regexp.MustCompile(`(?i)\b(grandmother|grandfather|grandma|grandpa|mother|father|husband|wife|aunt|uncle|adult\s+daughter|adult\s+son)\b`)
)

var wordNumbers = map[string]int{
	"two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "twin": 2,
}

// Age extraction patterns; every distinct age mentioned is recorded.
var ageRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(\d{1,2})\s+years?\s+old\b`),
	regexp.MustCompile(`(?i)\bage\s+(\d{1,3})\b`),
	regexp.MustCompile(`(?i)\bages?\s+(\d{1,2})\s+and\s+(\d{1,2})\b`),
	regexp.MustCompile(`(?i)\b(\d{1,2})[- ](?:year|yr)[- ]?old\b`),
	regexp.MustCompile(`(?i)\bboth\s+(?:are\s+|around\s+|about\s+)?(\d{2})\b`),
	regexp.MustCompile(`(?i)\b(?:mother|father|adult|woman|man|client|applicant)\s*,\s*(\d{2})\b`),
}

// infantMonthsRe catches infants reported in months rather than years.
var infantMonthsRe = regexp.MustCompile(`(?i)\b(\d{1,2})[- ]months?[- ]old\b`)

// Demographic flag patterns.
var (
	pregnantRe      = regexp.MustCompile(`(?i)\bpregnan(?:t|cy)\b|\d+\s+weeks\s+pregnant`)
	notPregnantRe   = regexp.MustCompile(`(?i)\bnot\s+pregnant\b`)
	breastfeedingRe = regexp.MustCompile(`(?i)breast[- ]?fe(?:ed|d)\w*|nursing\s+(?:her|his|their|a)\b`)
	postpartumRe    = regexp.MustCompile(`(?i)post[- ]?partum|gave\s+birth|just\s+had\s+a\s+baby|newborn`)
	disabledRe      = regexp.MustCompile(`(?i)\bdisab(?:led|ility|ilities)\b|\bssdi\b|wheelchair`)
	notDisabledRe   = regexp.MustCompile(`(?i)\bno\s+disab(?:ility|ilities)\b|\bnot\s+disabled\b`)
	onMedicareRe    = regexp.MustCompile(`(?i)\bon\s+medicare\b|medicare\s+part\s+[abd]\b|with\s+medicare|medicare\s+coverage`)
)

// Housing patterns. Rent and utility cost are first-match-wins.
var rentRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)rent(?:s\s+a\s+room)?\s+(?:is|of|at|for)?\s*` + amt),
	regexp.MustCompile(`(?i)` + amt + `\s*(?:(?:/|per\s+|a\s+)mo(?:nth)?(?:ly)?|monthly)?\s*(?:contribution\s+to\s+|towards?\s+|for\s+|in\s+)?rent\b`),
	regexp.MustCompile(`(?i)pay(?:s|ing)?\s+` + amt + `[^.$]{0,25}?rent`),
	regexp.MustCompile(`(?i)rental\s+(?:house|home|unit|apartment)\s+(?:at|for)\s+` + amt),
}

var (
	housingOwnRe    = regexp.MustCompile(`(?i)own(?:s)?\s+(?:their|his|her|my|a)\s+home|homeowner|mortgage`)
	housingWithRe   = regexp.MustCompile(`(?i)(?:staying|stays?|lives?|living)\s+with\s+(?:a\s+)?(?:friend|her\s+\w+|his\s+\w+|family|relatives?|mother|father|parents)`)
	housingRentRe   = regexp.MustCompile(`(?i)\brent(?:s|ing|al)?\b`)
	utilIncludedRe  = regexp.MustCompile(`(?i)utilit(?:y|ies)\s+(?:are\s+)?included|included\s+utilities|rent\s+includes\s+utilit`)
	utilSeparateRe  = regexp.MustCompile(`(?i)utilit(?:y|ies)[^.]{0,20}?separate(?:ly)?|pays?\s+(?:electric|gas|heat)\w*[^.]{0,25}?separately|separate\s+utilit`)
	heatingVocabRe  = regexp.MustCompile(`(?i)\bheat(?:ing)?\b|cooling|air[- ]?condition\w*|\boil\b|propane|electric\s+bill|energy\s+bill`)
	utilityCostRule = []*regexp.Regexp{
		regexp.MustCompile(`(?i)utilit(?:y|ies)[^.$]{0,30}?` + amt),
		regexp.MustCompile(`(?i)(?:electric\w*|gas|heat(?:ing)?(?:\s+oil)?|energy|power)[^.$]{0,30}?` + amt),
		regexp.MustCompile(`(?i)` + amt + `(?:/month|\s+per\s+month|\s+a\s+month|\s+monthly)?[^.$]{0,30}?(?:for\s+)?(?:heat(?:ing)?|electric\w*|gas|utilit(?:y|ies)|oil)`),
	}
)

// Housing instability categories, checked most severe first; the first match
// wins so a household sleeping in a car is not filed as merely at-risk.
var instabilityRules = []struct {
	re       *regexp.Regexp
	category types.HousingInstability
}{
	{regexp.MustCompile(`(?i)homeless|sleeping\s+in\s+(?:their|the|a|her|his)\s+car|living\s+in\s+(?:their|a)\s+car|on\s+the\s+streets?`), types.InstabilityHomeless},
	{regexp.MustCompile(`(?i)(?:staying|living|sleeping)\s+(?:at|in)\s+(?:a|the|an?\s+emergency)\s+shelter|emergency\s+shelter`), types.InstabilityShelter},
	{regexp.MustCompile(`(?i)staying\s+(?:with|at)\s+(?:a\s+)?(?:friend|different\s+friends|family|relatives)|couch\s*[- ]?surfing|doubled\s+up`), types.InstabilityDoubledUp},
	{regexp.MustCompile(`(?i)evict(?:ed|ion)|behind\s+on\s+rent|no\s+lease|about\s+to\s+lose\s+(?:the|their|our)\s+(?:apartment|housing|home)`), types.InstabilityAtRisk},
}

// Employment status patterns, first match wins.
var employmentRules = []struct {
	re     *regexp.Regexp
	status string
}{
	{regexp.MustCompile(`(?i)part[- ]?time`), "part_time"},
	{regexp.MustCompile(`(?i)full[- ]?time`), "full_time"},
	{regexp.MustCompile(`(?i)unemployed|out\s+of\s+work|between\s+jobs|not\s+working`), "unemployed"},
	{regexp.MustCompile(`(?i)\bworks?\b|\bworking\b|\bemployed\b|\bjob\s+at\b`), "employed"},
}

// Circumstance tag patterns; all matches accumulate.
var circumstanceRules = []struct {
	re  *regexp.Regexp
	tag string
}{
	{regexp.MustCompile(`(?i)domestic\s+violence|abusive\s+(?:partner|relationship|husband|wife|situation)|fleeing`), types.CircumstanceDomesticViolence},
	{regexp.MustCompile(`(?i)lost\s+(?:his|her|their\s+)?job|laid\s+off|layoff|let\s+go\s+from`), types.CircumstanceJobLoss},
	{regexp.MustCompile(`(?i)lost\s+snap|lost\s+(?:food\s+stamps|benefits)|denied|cut\s+off|kicked\s+off`), types.CircumstancePriorDenial},
	{regexp.MustCompile(`(?i)inconsistent|some\s+months|depend(?:s|ing)\s+on|seasonal(?:ly)?|varies|not\s+every\s+month|when\s+(?:he|she|ex)\s+pays`), types.CircumstanceIrregularIncome},
	{regexp.MustCompile(`(?i)no\s+(?:health\s+)?insurance|uninsured`), types.CircumstanceNoInsurance},
}

// Deduction patterns; a category records its first match only.
var deductionRules = []struct {
	name     string
	category string
	re       *regexp.Regexp
}{
	{"deduction_childcare_amount", "childcare", regexp.MustCompile(`(?i)` + amt + `(?:/month|\s+per\s+month|\s+monthly|\s+a\s+month)?\s*(?:for\s+)?(?:[\w'’-]+\s+){0,2}?(?:childcare|day\s?care|after[- ]?school)`)},
	{"deduction_childcare_label", "childcare", regexp.MustCompile(`(?i)(?:childcare|day\s?care|after[- ]?school\s+program)[^.$]{0,30}?` + amt)},
	{"deduction_medical_amount", "medical", regexp.MustCompile(`(?i)` + amt + `(?:/month|\s+per\s+month|\s+monthly|\s+a\s+month)?\s*(?:in\s+|for\s+|of\s+)?(?:medical|medication|prescription|doctor)`)},
	{"deduction_medical_label", "medical", regexp.MustCompile(`(?i)(?:medical\s+(?:expenses?|costs?|bills?)|medications?|prescriptions?|doctor\s+visits?)[^.$]{0,50}?` + amt)},
	{"deduction_support_paid", "court_ordered_support", regexp.MustCompile(`(?i)pay(?:s|ing)?\s+` + amt + `(?:/month|\s+per\s+month|\s+monthly|\s+a\s+month)?\s*(?:in\s+)?(?:child\s+support|alimony|spousal\s+support)`)},
}

// Custody arrangement patterns.
var (
	custodySplitRe = regexp.MustCompile(`(?i)(\d{1,2}\s*/\s*\d{1,2})\s*(?:custody|split)`)
	custodyJointRe = regexp.MustCompile(`(?i)joint\s+custody|shared\s+custody`)
	custodyOfRe    = regexp.MustCompile(`(?i)custody\s+of\s+(?:(\d)|(two|three|four|five))\s+(?:kids|children)\b`)
)
