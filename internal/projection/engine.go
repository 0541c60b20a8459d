package projection

import (
	"math"
	"strings"

	"github.com/iwvelando/iefp-dossier/pkg/constants"
)

// Totals are the per-year aggregates that feed the income statement.
type Totals struct {
	Revenue      []float64 `json:"revenue"`
	COGS         []float64 `json:"cogs"`
	Opex         []float64 `json:"opex"`
	Payroll      []float64 `json:"payroll"`
	Depreciation []float64 `json:"depreciation"`
	Interest     []float64 `json:"interest"`
	Result       []float64 `json:"result"`
}

// Result holds the tables of one projection run.
type Result struct {
	Years  []int             `json:"years"`
	Tables map[string]*Table `json:"tables"`
	Totals Totals            `json:"totals"`
}

// Table returns the named table, or nil.
func (r *Result) Table(name string) *Table {
	if r == nil {
		return nil
	}
	return r.Tables[name]
}

// Ordered returns the tables in their canonical order.
func (r *Result) Ordered() []*Table {
	ordered := make([]*Table, 0, len(constants.TableOrder))
	for _, name := range constants.TableOrder {
		if t, ok := r.Tables[name]; ok {
			ordered = append(ordered, t)
		}
	}
	return ordered
}

// Compute projects the input over its horizon. It fails only when the
// horizon is empty, or when Strict is set and Validate rejects the input.
// Every table is rebuilt from scratch on each call.
func Compute(in Input) (*Result, error) {
	if len(in.Years) == 0 {
		return nil, ValidationErrors{{Field: "years", Value: in.Years, Reason: "must contain at least one year"}}
	}
	if in.Strict {
		if err := Validate(in); err != nil {
			return nil, err
		}
	}

	in = normalize(in)
	years := in.Years
	a := in.Assumptions

	sales, revenue := projectSales(years, a.RevenueGrowth, in.Sales)
	cogs := revenueShare(constants.TableCOGS, "COGS", years, 1-a.GrossMarginTarget, revenue)
	opex := revenueShare(constants.TableOpex, "Opex", years, a.OpexRevenueRatio, revenue)
	payroll := projectPayroll(years, a.SocialChargesRatio, a.WageRaiseRatio, in.Staff)
	depreciation, depreciationTotals := projectDepreciation(years, a, in.Investments)
	loanSchedule, interest := projectLoan(years, a)

	totals := Totals{
		Revenue:      roundAll(revenue),
		COGS:         cogs.ColumnTotals(),
		Opex:         opex.ColumnTotals(),
		Payroll:      roundAll(payroll.ColumnTotals()),
		Depreciation: roundAll(depreciationTotals),
		Interest:     roundAll(interest),
	}
	income := incomeStatement(years, &totals)
	balance := balanceSheet(years, a, in.Investments, revenue)

	return &Result{
		Years: append([]int(nil), years...),
		Tables: map[string]*Table{
			constants.TableSales:           sales,
			constants.TableCOGS:            cogs,
			constants.TableOpex:            opex,
			constants.TablePayroll:         payroll,
			constants.TableDepreciation:    depreciation,
			constants.TableLoanSchedule:    loanSchedule,
			constants.TableIncomeStatement: income,
			constants.TableBalanceSheet:    balance,
		},
		Totals: totals,
	}, nil
}

// normalize copies the input, replacing non-finite numbers with 0 and blank
// labels with a dash.
func normalize(in Input) Input {
	out := in
	out.Years = append([]int(nil), in.Years...)

	a := &out.Assumptions
	a.RevenueGrowth = finite(a.RevenueGrowth)
	a.GrossMarginTarget = finite(a.GrossMarginTarget)
	a.OpexRevenueRatio = finite(a.OpexRevenueRatio)
	a.SocialChargesRatio = finite(a.SocialChargesRatio)
	a.WageRaiseRatio = finite(a.WageRaiseRatio)
	a.Loan.Amount = finite(a.Loan.Amount)
	a.Loan.InterestRate = finite(a.Loan.InterestRate)
	a.InitialEquity = finite(a.InitialEquity)

	out.Sales = make([]SalesLine, len(in.Sales))
	for i, line := range in.Sales {
		out.Sales[i] = SalesLine{
			Label:           labelOrDash(line.Label),
			UnitPrice:       finite(line.UnitPrice),
			MonthlyQuantity: finite(line.MonthlyQuantity),
			MonthsFirstYear: finite(line.MonthsFirstYear),
		}
	}
	out.Staff = make([]StaffLine, len(in.Staff))
	for i, line := range in.Staff {
		out.Staff[i] = StaffLine{
			Role:            labelOrDash(line.Role),
			Headcount:       finite(line.Headcount),
			MonthlyWage:     finite(line.MonthlyWage),
			MonthsFirstYear: finite(line.MonthsFirstYear),
		}
	}
	out.Investments = make([]InvestmentLine, len(in.Investments))
	for i, line := range in.Investments {
		out.Investments[i] = InvestmentLine{
			Category:    line.Category,
			Description: strings.TrimSpace(line.Description),
			Amount:      finite(line.Amount),
		}
	}
	return out
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func labelOrDash(label string) string {
	if trimmed := strings.TrimSpace(label); trimmed != "" {
		return trimmed
	}
	return "—"
}
