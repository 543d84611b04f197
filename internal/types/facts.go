// Package types provides type definitions for structured data used throughout the benefits-navigator system.
package types

// Frequency identifies how often a reported income or expense amount recurs.
type Frequency string

// Supported pay frequencies.
const (
	FrequencyHourly      Frequency = "hourly"
	FrequencyWeekly      Frequency = "weekly"
	FrequencyBiweekly    Frequency = "biweekly"
	FrequencySemimonthly Frequency = "semimonthly"
	FrequencyMonthly     Frequency = "monthly"
	FrequencyAnnual      Frequency = "annual"
)

// HousingInstability categorizes the severity of a household's housing situation.
type HousingInstability string

// Housing instability categories, ordered from stable to unsheltered.
const (
	InstabilityNone      HousingInstability = ""
	InstabilityAtRisk    HousingInstability = "at_risk"
	InstabilityDoubledUp HousingInstability = "doubled_up"
	InstabilityShelter   HousingInstability = "shelter"
	InstabilityHomeless  HousingInstability = "literal_homeless"
)

// IncomeSource is one distinct income mention that survived deduplication.
// MonthlyAmount is the truncated whole-dollar monthly equivalent of RawAmount
// at the stated Frequency (hours-adjusted for hourly entries).
type IncomeSource struct {
	Type          string    `json:"type"`
	RawAmount     float64   `json:"raw_amount"`
	Frequency     Frequency `json:"frequency"`
	HoursPerWeek  float64   `json:"hours_per_week,omitempty"`
	MonthlyAmount int       `json:"monthly_amount"`
	Confidence    float64   `json:"confidence"`
	IsVariable    bool      `json:"is_variable,omitempty"`
	RangeLow      float64   `json:"range_low,omitempty"`
	RangeHigh     float64   `json:"range_high,omitempty"`
}

// HouseholdMember is an informational breakdown entry for the household composition.
type HouseholdMember struct {
	Type  string `json:"type"`
	Count int    `json:"count,omitempty"`
	Age   *int   `json:"age,omitempty"`
	Note  string `json:"note,omitempty"`
}

// CustodyInfo records a shared-custody arrangement mentioned in the narrative.
type CustodyInfo struct {
	Arrangement string `json:"arrangement"`
	Children    int    `json:"children,omitempty"`
}

// Contradiction describes a pair of mutually exclusive assertions found in the input.
type Contradiction struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// Deductions holds dollar amounts for expense categories that may reduce
// countable income during a full application. Nil means not mentioned.
type Deductions struct {
	Childcare           *float64 `json:"childcare,omitempty"`
	Medical             *float64 `json:"medical,omitempty"`
	CourtOrderedSupport *float64 `json:"court_ordered_support,omitempty"`
	ShelterBurden       *float64 `json:"shelter_burden,omitempty"`
}

// Facts is the normalized, confidence-scored record produced by extraction.
// It is immutable once produced; the eligibility engine only reads it.
type Facts struct {
	HouseholdSize    int               `json:"household_size"`
	HouseholdMembers []HouseholdMember `json:"household_members,omitempty"`
	Ages             []int             `json:"ages,omitempty"`

	IncomeSources      []IncomeSource `json:"income_sources,omitempty"`
	TotalMonthlyIncome *int           `json:"total_monthly_income,omitempty"`

	ElderlyInHousehold  bool `json:"elderly_in_household,omitempty"`
	DisabledInHousehold bool `json:"disabled_in_household,omitempty"`
	MedicareEligible    bool `json:"medicare_eligible,omitempty"`
	OnMedicare          bool `json:"on_medicare,omitempty"`
	Pregnant            bool `json:"pregnant,omitempty"`
	Breastfeeding       bool `json:"breastfeeding,omitempty"`
	Postpartum          bool `json:"postpartum,omitempty"`
	ChildrenUnder5      int  `json:"children_under_5,omitempty"`
	InfantsUnder1       int  `json:"infants_under_1,omitempty"`
	ChildrenSchoolAge   int  `json:"children_school_age,omitempty"`

	HousingType            string             `json:"housing_type,omitempty"`
	Rent                   *float64           `json:"rent,omitempty"`
	UtilitiesSeparate      bool               `json:"utilities_separate,omitempty"`
	UtilitiesIncluded      bool               `json:"utilities_included,omitempty"`
	UtilityCost            *float64           `json:"utility_cost,omitempty"`
	HasHeatingCoolingCosts bool               `json:"has_heating_cooling_costs,omitempty"`
	HousingInstability     HousingInstability `json:"housing_instability,omitempty"`

	Employment  string       `json:"employment,omitempty"`
	CustodyInfo *CustodyInfo `json:"custody_info,omitempty"`

	Circumstances       []string   `json:"circumstances,omitempty"`
	PotentialDeductions Deductions `json:"potential_deductions"`

	ExtractionConfidence   map[string]float64 `json:"extraction_confidence,omitempty"`
	PatternsMatched        []string           `json:"patterns_matched,omitempty"`
	PatternsAttempted      int                `json:"patterns_attempted"`
	ContradictionsDetected []Contradiction    `json:"contradictions_detected,omitempty"`
	DataQualityScore       float64            `json:"data_quality_score"`
}

// HasCircumstance reports whether the given circumstance tag was extracted.
func (f *Facts) HasCircumstance(tag string) bool {
	for _, c := range f.Circumstances {
		if c == tag {
			return true
		}
	}
	return false
}

// HasAge reports whether the given age was mentioned anywhere in the input.
func (f *Facts) HasAge(age int) bool {
	for _, a := range f.Ages {
		if a == age {
			return true
		}
	}
	return false
}

// MonthlyIncome returns the total monthly income and whether it is known.
func (f *Facts) MonthlyIncome() (int, bool) {
	if f.TotalMonthlyIncome == nil {
		return 0, false
	}
	return *f.TotalMonthlyIncome, true
}

// Circumstance tags recorded by the extraction engine.
const (
	CircumstanceDomesticViolence = "domestic_violence"
	CircumstanceJobLoss          = "job_loss"
	CircumstanceIrregularIncome  = "irregular_income"
	CircumstancePriorDenial      = "prior_denial"
	CircumstanceNoInsurance      = "no_insurance"
)
