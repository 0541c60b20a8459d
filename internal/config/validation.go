package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iwvelando/iefp-dossier/internal/projection"
)

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Nothing reported here stops a run unless Strict is set.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(conf.Years) == 0 {
		warnings = append(warnings, fmt.Sprintf("no years configured; projecting %d years from the current year", DefaultHorizon))
	}

	input := conf.ProjectionInput()
	var verrs projection.ValidationErrors
	if err := projection.Validate(input); errors.As(err, &verrs) {
		for _, verr := range verrs {
			warnings = append(warnings, verr.Error())
		}
	}

	loan := input.Assumptions.Loan
	if loan.Amount > 0 && loan.TermYears > len(input.Years) {
		warnings = append(warnings, fmt.Sprintf("loan term of %d years exceeds the %d-year horizon; a balance remains at the end of the projection",
			loan.TermYears, len(input.Years)))
	}

	for i, inv := range conf.Investments {
		category := strings.TrimSpace(inv.Category)
		if category == "" {
			continue
		}
		if projection.ParseCategory(category) == projection.CategoryOther && !isOtherAlias(category) {
			warnings = append(warnings, fmt.Sprintf("investment '%s' (investments[%d]) has unknown category '%s'; depreciated as other",
				inv.Description, i, inv.Category))
		}
	}

	for _, s := range conf.ResolvedSections() {
		if s.Limit > 0 && utf8.RuneCountInString(s.Text) > s.Limit {
			warnings = append(warnings, fmt.Sprintf("section '%s' exceeds its limit of %d characters and will be truncated", s.Title, s.Limit))
		}
	}

	if _, err := conf.Generator.TimeoutDuration(); err != nil {
		warnings = append(warnings, err.Error()+"; using the default")
	}

	return warnings
}

func isOtherAlias(category string) bool {
	switch strings.ToLower(category) {
	case "other", "outros":
		return true
	}
	return false
}
