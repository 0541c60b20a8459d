package projection

import (
	"github.com/iwvelando/iefp-dossier/pkg/constants"
	"github.com/iwvelando/iefp-dossier/pkg/mathutil"
)

// projectSales grows each line's first-year revenue geometrically. The
// returned totals sum the rounded line values per year.
func projectSales(years []int, growth float64, lines []SalesLine) (*Table, []float64) {
	table := newTable(constants.TableSales, "designation", yearColumns(years))
	revenue := make([]float64, len(years))

	for _, line := range lines {
		values := make([]float64, len(years))
		values[0] = mathutil.Round(line.UnitPrice * line.MonthlyQuantity * line.MonthsFirstYear)
		for i := 1; i < len(years); i++ {
			values[i] = mathutil.Round(values[i-1] * (1 + growth))
		}
		for i, v := range values {
			revenue[i] += v
		}
		table.addRow(line.Label, values)
	}

	return table, revenue
}

// revenueShare builds a single-row table holding ratio × revenue per year.
func revenueShare(name, label string, years []int, ratio float64, revenue []float64) *Table {
	table := newTable(name, "item", yearColumns(years))
	values := make([]float64, len(years))
	for i := range years {
		values[i] = mathutil.Round(ratio * revenue[i])
	}
	table.addRow(label, values)
	return table
}

func roundAll(values []float64) []float64 {
	rounded := make([]float64, len(values))
	for i, v := range values {
		rounded[i] = mathutil.Round(v)
	}
	return rounded
}
