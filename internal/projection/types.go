// Package projection turns business assumptions into year-indexed accounting
// tables: sales, cost of goods sold, operating expenses, payroll,
// depreciation, loan schedule, income statement and a simplified balance
// sheet. Compute holds no state and performs no I/O.
package projection

import (
	"strings"

	"github.com/iwvelando/iefp-dossier/pkg/constants"
	"github.com/iwvelando/iefp-dossier/pkg/loans"
	"github.com/iwvelando/iefp-dossier/pkg/mathutil"
)

// Category is a depreciation category of an investment line.
type Category string

// Depreciation categories.
const (
	CategoryEquipment   Category = "equipment"
	CategoryIT          Category = "it"
	CategoryVehicles    Category = "vehicles"
	CategoryIntangibles Category = "intangibles"
	CategoryOther       Category = "other"
)

var categoryAliases = map[string]Category{
	"equipment":   CategoryEquipment,
	"equipamento": CategoryEquipment,
	"it":          CategoryIT,
	"informatica": CategoryIT,
	"informática": CategoryIT,
	"vehicles":    CategoryVehicles,
	"veiculos":    CategoryVehicles,
	"veículos":    CategoryVehicles,
	"intangibles": CategoryIntangibles,
	"intangiveis": CategoryIntangibles,
	"intangíveis": CategoryIntangibles,
	"other":       CategoryOther,
	"outros":      CategoryOther,
}

// ParseCategory maps a free-form category name to a Category. Matching is
// case-insensitive; unknown names fall back to CategoryOther.
func ParseCategory(name string) Category {
	if c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return CategoryOther
}

// DepreciationLives holds the useful life, in years, of each category.
type DepreciationLives struct {
	Equipment   int
	IT          int
	Vehicles    int
	Intangibles int
	Other       int
}

// For returns the useful life of a category, never less than 1.
func (l DepreciationLives) For(c Category) int {
	var life int
	switch c {
	case CategoryEquipment:
		life = l.Equipment
	case CategoryIT:
		life = l.IT
	case CategoryVehicles:
		life = l.Vehicles
	case CategoryIntangibles:
		life = l.Intangibles
	default:
		life = l.Other
	}
	return mathutil.AtLeastOne(life)
}

// Assumptions are the business ratios and financing terms of one run.
type Assumptions struct {
	RevenueGrowth      float64
	GrossMarginTarget  float64
	OpexRevenueRatio   float64
	SocialChargesRatio float64
	WageRaiseRatio     float64
	Lives              DepreciationLives
	Loan               loans.Terms
	InitialEquity      float64

	// StopDepreciationAtEndOfLife zeroes an asset's charge once its useful
	// life has elapsed within the horizon. Off by default.
	StopDepreciationAtEndOfLife bool
}

// DefaultAssumptions returns the assumptions pre-filled in the application form.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		RevenueGrowth:      constants.DefaultRevenueGrowth,
		GrossMarginTarget:  constants.DefaultGrossMarginTarget,
		OpexRevenueRatio:   constants.DefaultOpexRevenueRatio,
		SocialChargesRatio: constants.DefaultSocialChargesRatio,
		WageRaiseRatio:     constants.DefaultWageRaiseRatio,
		Lives: DepreciationLives{
			Equipment:   constants.DefaultLifeEquipment,
			IT:          constants.DefaultLifeIT,
			Vehicles:    constants.DefaultLifeVehicles,
			Intangibles: constants.DefaultLifeIntangibles,
			Other:       constants.DefaultLifeOther,
		},
		Loan: loans.Terms{
			InterestRate: constants.DefaultLoanInterestRate,
			TermYears:    constants.DefaultLoanTermYears,
		},
	}
}

// SalesLine is a product or service sold at a unit price.
type SalesLine struct {
	Label           string
	UnitPrice       float64
	MonthlyQuantity float64
	MonthsFirstYear float64
}

// StaffLine is a role paid a monthly gross wage.
type StaffLine struct {
	Role            string
	Headcount       float64
	MonthlyWage     float64
	MonthsFirstYear float64
}

// InvestmentLine is an asset purchase depreciated over its category's life.
type InvestmentLine struct {
	Category    string
	Description string
	Amount      float64
}

// Input is everything one projection run needs.
type Input struct {
	Years       []int
	Assumptions Assumptions
	Sales       []SalesLine
	Staff       []StaffLine
	Investments []InvestmentLine

	// Strict rejects out-of-range input with a ValidationError instead of
	// using it as-is.
	Strict bool
}
