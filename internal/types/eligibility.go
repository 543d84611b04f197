package types

// Program identifies one of the screened benefit programs.
type Program string

// Screened programs.
const (
	ProgramSNAP        Program = "SNAP"
	ProgramMedicaid    Program = "Medicaid"
	ProgramLIHEAP      Program = "LIHEAP"
	ProgramWIC         Program = "WIC"
	ProgramSchoolMeals Program = "School Meals"
	ProgramMSP         Program = "Medicare Savings Program"
)

// Status is the outcome of a single program evaluation.
type Status string

// Program evaluation statuses.
const (
	StatusLikelyEligible      Status = "likely_eligible"
	StatusPotentiallyEligible Status = "potentially_eligible"
	StatusNotEligible         Status = "not_eligible"
	StatusNotApplicable       Status = "not_applicable"
	StatusInsufficientInfo    Status = "insufficient_info"
)

// ConfidenceLevel expresses how firmly a determination is supported by the facts.
type ConfidenceLevel string

// Determination confidence levels.
const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// ProgramResult is a single program's determination for one Facts record.
type ProgramResult struct {
	Program          Program         `json:"program"`
	Status           Status          `json:"status"`
	Confidence       ConfidenceLevel `json:"confidence"`
	Reason           string          `json:"reason"`
	IncomeLimit      int             `json:"income_limit,omitempty"`
	IncomeLimits     map[string]int  `json:"income_limits,omitempty"`
	EstimatedBenefit string          `json:"estimated_benefit,omitempty"`
	NextSteps        []string        `json:"next_steps,omitempty"`
	DocumentsNeeded  []string        `json:"documents_needed,omitempty"`
	Tier             string          `json:"tier,omitempty"`
	Expedited        bool            `json:"expedited,omitempty"`
}

// Summary buckets program names by determination status.
type Summary struct {
	LikelyEligible      []string `json:"likely_eligible"`
	PotentiallyEligible []string `json:"potentially_eligible"`
	NotEligible         []string `json:"not_eligible"`
	NotApplicable       []string `json:"not_applicable"`
	InsufficientInfo    []string `json:"insufficient_info"`
}

// PriorityAction is the single recommended first move across all programs.
type PriorityAction struct {
	Program   Program `json:"program"`
	Reason    string  `json:"reason"`
	Expedited bool    `json:"expedited,omitempty"`
}

// MultiProgramResult aggregates the determinations of every screened program.
type MultiProgramResult struct {
	Summary                    Summary         `json:"summary"`
	PriorityAction             *PriorityAction `json:"priority_action,omitempty"`
	TotalEstimatedMonthlyValue string          `json:"total_estimated_monthly_value"`
	Programs                   []ProgramResult `json:"programs"`
	Facts                      *Facts          `json:"facts"`
	DataQualityScore           float64         `json:"data_quality_score"`
}

// DecisionMap is the legacy single-program (SNAP) decision shape kept for
// callers that predate multi-program screening.
type DecisionMap struct {
	Program             Program         `json:"program"`
	Status              Status          `json:"current_status"`
	Reason              string          `json:"reason"`
	Reversible          bool            `json:"reversible"`
	HighImpactAction    string          `json:"high_impact_action,omitempty"`
	NextSteps           []string        `json:"next_steps,omitempty"`
	DocumentsNeeded     []string        `json:"documents_needed,omitempty"`
	Confidence          ConfidenceLevel `json:"confidence"`
	IncomeLimit         int             `json:"income_limit,omitempty"`
	HouseholdSize       int             `json:"household_size"`
	ConfidenceWarnings  []string        `json:"confidence_warnings,omitempty"`
	MissingCriticalInfo []string        `json:"missing_critical_info,omitempty"`
}
