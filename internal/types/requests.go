package types

import (
	"github.com/go-playground/validator/v10"
)

// RunRequest represents a screening request with a raw household narrative.
type RunRequest struct {
	OrgID    string `json:"org_id" validate:"required"`
	InputRaw string `json:"input_raw" validate:"required,min=1"`
}

// IncomeItem is one explicitly reported income entry for a person.
type IncomeItem struct {
	Type         string    `json:"type" validate:"required"`
	Amount       float64   `json:"amount" validate:"gt=0"`
	Frequency    Frequency `json:"frequency" validate:"required,oneof=hourly weekly biweekly semimonthly monthly annual"`
	HoursPerWeek *float64  `json:"hours_per_week,omitempty" validate:"omitempty,gt=0,lte=168"`
}

// ExpenseItem is one explicitly reported expense entry for a person.
type ExpenseItem struct {
	Type      string    `json:"type" validate:"required"`
	Amount    float64   `json:"amount" validate:"gt=0"`
	Frequency Frequency `json:"frequency" validate:"required,oneof=hourly weekly biweekly semimonthly monthly annual"`
}

// PersonInput describes one household member in a structured screening request.
type PersonInput struct {
	Role          string        `json:"role" validate:"required,oneof=head_of_household spouse partner child other"`
	Age           *int          `json:"age,omitempty" validate:"omitempty,gte=0,lte=120"`
	Pregnant      bool          `json:"pregnant,omitempty"`
	Postpartum    bool          `json:"postpartum,omitempty"`
	Breastfeeding bool          `json:"breastfeeding,omitempty"`
	Disabled      bool          `json:"disabled,omitempty"`
	OnMedicare    bool          `json:"on_medicare,omitempty"`
	Income        []IncomeItem  `json:"income,omitempty" validate:"omitempty,dive"`
	Expenses      []ExpenseItem `json:"expenses,omitempty" validate:"omitempty,dive"`
}

// HouseholdInput describes housing and utility exposure for a structured request.
type HouseholdInput struct {
	HousingType       string   `json:"housing_type,omitempty" validate:"omitempty,oneof=renting own_outright mortgage living_with_others shelter homeless"`
	RentAmount        *float64 `json:"rent_amount,omitempty" validate:"omitempty,gte=0"`
	UtilitiesSeparate bool     `json:"utilities_separate,omitempty"`
	UtilitiesIncluded bool     `json:"utilities_included,omitempty"`
	HasHeatingCosts   bool     `json:"has_heating_costs,omitempty"`
	HasCoolingCosts   bool     `json:"has_cooling_costs,omitempty"`
}

// StructuredRunRequest is the structured alternative to a raw narrative.
// It bypasses pattern extraction but produces the same Facts shape.
type StructuredRunRequest struct {
	OrgID     string         `json:"org_id" validate:"required"`
	Household HouseholdInput `json:"household"`
	Persons   []PersonInput  `json:"persons" validate:"required,min=1,dive"`
}

// Validate validates the RunRequest using the validator.
func (r *RunRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the StructuredRunRequest using the validator.
func (r *StructuredRunRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
