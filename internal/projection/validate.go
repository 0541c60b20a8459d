package projection

import (
	"fmt"
	"math"
)

type validator struct {
	errs ValidationErrors
}

func (v *validator) fail(field string, value interface{}, reason string) {
	v.errs = append(v.errs, &ValidationError{Field: field, Value: value, Reason: reason})
}

func (v *validator) ratio(field string, value float64) {
	if math.IsNaN(value) || value < 0 || value > 1 {
		v.fail(field, value, "must be within [0, 1]")
	}
}

func (v *validator) nonNegative(field string, value float64) {
	if math.IsNaN(value) || value < 0 {
		v.fail(field, value, "must not be negative")
	}
}

func (v *validator) months(field string, value float64) {
	if math.IsNaN(value) || value < 0 || value > 12 {
		v.fail(field, value, "must be within [0, 12]")
	}
}

// Validate checks the horizon, ratios, loan terms and line items, returning
// ValidationErrors naming every offending field, or nil.
func Validate(in Input) error {
	v := &validator{}

	if len(in.Years) == 0 {
		v.fail("years", in.Years, "must contain at least one year")
	}
	for i := 1; i < len(in.Years); i++ {
		if in.Years[i] <= in.Years[i-1] {
			v.fail(fmt.Sprintf("years[%d]", i), in.Years[i], "must be strictly increasing")
		}
	}

	a := in.Assumptions
	v.ratio("assumptions.revenueGrowth", a.RevenueGrowth)
	v.ratio("assumptions.grossMarginTarget", a.GrossMarginTarget)
	v.ratio("assumptions.opexRevenueRatio", a.OpexRevenueRatio)
	v.ratio("assumptions.socialChargesRatio", a.SocialChargesRatio)
	v.ratio("assumptions.wageRaiseRatio", a.WageRaiseRatio)
	v.nonNegative("loan.amount", a.Loan.Amount)
	v.nonNegative("loan.interestRate", a.Loan.InterestRate)
	if a.Loan.TermYears < 1 {
		v.fail("loan.termYears", a.Loan.TermYears, "must be at least 1")
	}
	v.nonNegative("initialEquity", a.InitialEquity)

	for i, line := range in.Sales {
		v.nonNegative(fmt.Sprintf("sales[%d].unitPrice", i), line.UnitPrice)
		v.nonNegative(fmt.Sprintf("sales[%d].monthlyQuantity", i), line.MonthlyQuantity)
		v.months(fmt.Sprintf("sales[%d].monthsFirstYear", i), line.MonthsFirstYear)
	}
	for i, line := range in.Staff {
		v.nonNegative(fmt.Sprintf("staff[%d].headcount", i), line.Headcount)
		v.nonNegative(fmt.Sprintf("staff[%d].monthlyWage", i), line.MonthlyWage)
		v.months(fmt.Sprintf("staff[%d].monthsFirstYear", i), line.MonthsFirstYear)
	}
	for i, line := range in.Investments {
		v.nonNegative(fmt.Sprintf("investments[%d].amount", i), line.Amount)
	}

	if len(v.errs) == 0 {
		return nil
	}
	return v.errs
}
