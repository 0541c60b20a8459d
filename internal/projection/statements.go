package projection

import (
	"strconv"

	"github.com/iwvelando/iefp-dossier/pkg/constants"
	"github.com/iwvelando/iefp-dossier/pkg/loans"
	"github.com/iwvelando/iefp-dossier/pkg/mathutil"
)

// Income statement row labels.
const (
	RowRevenue      = "Revenue"
	RowCOGS         = "COGS"
	RowOpex         = "Opex"
	RowPayroll      = "Payroll"
	RowDepreciation = "Depreciation"
	RowInterest     = "Interest"
	RowResult       = "Result"
)

// Balance sheet row labels.
const (
	RowNonCurrentAssets = "Non-current assets"
	RowCurrentAssets    = "Current assets"
	RowEquity           = "Equity"
)

// Loan schedule columns.
var loanColumns = []string{"installment", "principal", "interest", "ending_balance"}

// projectLoan builds the level-principal schedule, one row per year, and
// returns the unrounded interest per year.
func projectLoan(years []int, a Assumptions) (*Table, []float64) {
	table := newTable(constants.TableLoanSchedule, "year", loanColumns)
	schedule := loans.LevelPrincipalSchedule(a.Loan, years)
	interest := make([]float64, len(years))

	for i, payment := range schedule {
		table.addRow(strconv.Itoa(payment.Year), []float64{
			payment.Installment,
			payment.Principal,
			payment.Interest,
			payment.EndingBalance,
		})
		interest[i] = payment.RawInterest
	}

	return table, interest
}

// incomeStatement assembles the statement from rounded totals and fills
// totals.Result. Result is derived from the rounded rows themselves.
func incomeStatement(years []int, totals *Totals) *Table {
	table := newTable(constants.TableIncomeStatement, "item", yearColumns(years))

	totals.Result = make([]float64, len(years))
	for i := range years {
		totals.Result[i] = mathutil.Round(totals.Revenue[i] - totals.COGS[i] - totals.Opex[i] -
			totals.Payroll[i] - totals.Depreciation[i] - totals.Interest[i])
	}

	table.addRow(RowRevenue, totals.Revenue)
	table.addRow(RowCOGS, totals.COGS)
	table.addRow(RowOpex, totals.Opex)
	table.addRow(RowPayroll, totals.Payroll)
	table.addRow(RowDepreciation, totals.Depreciation)
	table.addRow(RowInterest, totals.Interest)
	table.addRow(RowResult, totals.Result)
	return table
}

// balanceSheet populates non-current assets and equity in the first year
// only; current assets are a fixed share of each year's revenue.
func balanceSheet(years []int, a Assumptions, investments []InvestmentLine, revenue []float64) *Table {
	table := newTable(constants.TableBalanceSheet, "item", yearColumns(years))

	amounts := make([]float64, len(investments))
	for i, line := range investments {
		amounts[i] = line.Amount
	}

	nonCurrent := make([]*float64, len(years))
	nonCurrent[0] = ptr(mathutil.RoundedSum(amounts))

	current := make([]*float64, len(years))
	for i := range years {
		current[i] = ptr(mathutil.Round(constants.CurrentAssetsRevenueRatio * revenue[i]))
	}

	equity := make([]*float64, len(years))
	equity[0] = ptr(mathutil.Round(a.InitialEquity))

	table.addSparseRow(RowNonCurrentAssets, nonCurrent)
	table.addSparseRow(RowCurrentAssets, current)
	table.addSparseRow(RowEquity, equity)
	return table
}

func ptr(v float64) *float64 {
	return &v
}
