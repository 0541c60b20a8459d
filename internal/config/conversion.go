package config

import (
	"time"

	"github.com/iwvelando/iefp-dossier/internal/projection"
	"github.com/iwvelando/iefp-dossier/pkg/constants"
)

// DefaultHorizon is the number of years projected when none are configured.
const DefaultHorizon = 3

// ProjectionInput converts the configuration into projection engine input,
// filling unset values with the form defaults.
func (conf *Configuration) ProjectionInput() projection.Input {
	return conf.ProjectionInputWithFixedTime(time.Now())
}

// ProjectionInputWithFixedTime converts the configuration with an injectable
// clock for the default horizon.
func (conf *Configuration) ProjectionInputWithFixedTime(now time.Time) projection.Input {
	years := append([]int(nil), conf.Years...)
	if len(years) == 0 {
		years = DefaultYears(now)
	}

	return projection.Input{
		Years:       years,
		Assumptions: conf.ProjectionAssumptions(),
		Sales:       conf.salesLines(),
		Staff:       conf.staffLines(),
		Investments: conf.investmentLines(),
		Strict:      conf.Strict,
	}
}

// DefaultYears returns DefaultHorizon consecutive years starting at now.
func DefaultYears(now time.Time) []int {
	years := make([]int, DefaultHorizon)
	for i := range years {
		years[i] = now.Year() + i
	}
	return years
}

// ProjectionAssumptions overlays the configured ratios and terms on the
// defaults.
func (conf *Configuration) ProjectionAssumptions() projection.Assumptions {
	a := projection.DefaultAssumptions()
	c := conf.Assumptions

	setFloat(&a.RevenueGrowth, c.RevenueGrowth)
	setFloat(&a.GrossMarginTarget, c.GrossMarginTarget)
	setFloat(&a.OpexRevenueRatio, c.OpexRevenueRatio)
	setFloat(&a.SocialChargesRatio, c.SocialChargesRatio)
	setFloat(&a.WageRaiseRatio, c.WageRaiseRatio)

	setInt(&a.Lives.Equipment, c.DepreciationLives.Equipment)
	setInt(&a.Lives.IT, c.DepreciationLives.IT)
	setInt(&a.Lives.Vehicles, c.DepreciationLives.Vehicles)
	setInt(&a.Lives.Intangibles, c.DepreciationLives.Intangibles)
	setInt(&a.Lives.Other, c.DepreciationLives.Other)
	a.StopDepreciationAtEndOfLife = c.StopDepreciationAtEndOfLife

	setFloat(&a.Loan.Amount, conf.Loan.Amount)
	setFloat(&a.Loan.InterestRate, conf.Loan.InterestRate)
	setInt(&a.Loan.TermYears, conf.Loan.TermYears)
	setFloat(&a.InitialEquity, conf.InitialEquity)

	return a
}

func (conf *Configuration) salesLines() []projection.SalesLine {
	lines := make([]projection.SalesLine, 0, len(conf.Sales))
	for _, s := range conf.Sales {
		lines = append(lines, projection.SalesLine{
			Label:           s.Label,
			UnitPrice:       valueOr(s.UnitPrice, 0),
			MonthlyQuantity: valueOr(s.MonthlyQuantity, 0),
			MonthsFirstYear: valueOr(s.MonthsFirstYear, constants.MonthsPerYear),
		})
	}
	return lines
}

func (conf *Configuration) staffLines() []projection.StaffLine {
	lines := make([]projection.StaffLine, 0, len(conf.Staff))
	for _, s := range conf.Staff {
		lines = append(lines, projection.StaffLine{
			Role:            s.Role,
			Headcount:       valueOr(s.Headcount, 0),
			MonthlyWage:     valueOr(s.MonthlyWage, 0),
			MonthsFirstYear: valueOr(s.MonthsFirstYear, constants.MonthsPerYear),
		})
	}
	return lines
}

func (conf *Configuration) investmentLines() []projection.InvestmentLine {
	lines := make([]projection.InvestmentLine, 0, len(conf.Investments))
	for _, inv := range conf.Investments {
		lines = append(lines, projection.InvestmentLine{
			Category:    inv.Category,
			Description: inv.Description,
			Amount:      valueOr(inv.Amount, 0),
		})
	}
	return lines
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
