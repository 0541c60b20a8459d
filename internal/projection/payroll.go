package projection

import (
	"github.com/iwvelando/iefp-dossier/pkg/constants"
	"github.com/iwvelando/iefp-dossier/pkg/mathutil"
)

// loadedCost adds employer social charges to a base wage cost.
func loadedCost(base, social float64) float64 {
	return base * (1 + social)
}

// baseCost strips employer social charges from a loaded cost. A divisor
// within a cent of zero yields 0 rather than an error.
func baseCost(loaded, social float64) float64 {
	if mathutil.IsZero(1 + social) {
		return 0
	}
	return loaded / (1 + social)
}

// projectPayroll computes the loaded labor cost of each staff line. Raises
// compound on the base wage; the charges ratio stays constant. The recurrence
// runs on unrounded figures and only the stored cells are rounded.
func projectPayroll(years []int, social, raise float64, lines []StaffLine) *Table {
	table := newTable(constants.TablePayroll, "item", yearColumns(years))

	for _, line := range lines {
		loaded := make([]float64, len(years))
		loaded[0] = loadedCost(line.MonthlyWage*line.Headcount*line.MonthsFirstYear, social)
		for i := 1; i < len(years); i++ {
			loaded[i] = loadedCost(baseCost(loaded[i-1], social)*(1+raise), social)
		}

		values := make([]float64, len(years))
		for i, v := range loaded {
			values[i] = mathutil.Round(v)
		}
		table.addRow(line.Role, values)
	}

	return table
}
