package projection

import (
	"fmt"
	"strings"

	"github.com/iwvelando/iefp-dossier/pkg/constants"
	"github.com/iwvelando/iefp-dossier/pkg/mathutil"
)

// projectDepreciation charges amount/life every year of the horizon. With
// StopDepreciationAtEndOfLife set, years past the asset's life carry 0.
// Totals accumulate the unrounded charges.
func projectDepreciation(years []int, a Assumptions, lines []InvestmentLine) (*Table, []float64) {
	table := newTable(constants.TableDepreciation, "asset", yearColumns(years))
	totals := make([]float64, len(years))

	for _, line := range lines {
		life := a.Lives.For(ParseCategory(line.Category))
		annual := line.Amount / float64(life)

		values := make([]float64, len(years))
		for i := range years {
			charge := annual
			if a.StopDepreciationAtEndOfLife && i >= life {
				charge = 0
			}
			values[i] = mathutil.Round(charge)
			totals[i] += charge
		}
		table.addRow(assetLabel(line), values)
	}

	return table, totals
}

func assetLabel(line InvestmentLine) string {
	category := strings.ToLower(strings.TrimSpace(line.Category))
	if category == "" {
		category = string(CategoryOther)
	}
	return fmt.Sprintf("%s: %s", category, line.Description)
}
