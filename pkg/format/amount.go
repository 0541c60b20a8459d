// Package format renders projection amounts for people.
package format

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Amount returns v with two decimals and thousands separators (e.g., "-1,234.56").
func Amount(v float64) string {
	if v == 0 || math.Abs(v) < 0.005 {
		v = 0
	}
	return printer.Sprintf("%.2f", v)
}

// Cell formats an optional amount; absent values render as an empty string.
func Cell(v *float64) string {
	if v == nil {
		return ""
	}
	return Amount(*v)
}

// Plain returns v with two decimals and no separators, for machine-readable output.
func Plain(v float64) string {
	if v == 0 || math.Abs(v) < 0.005 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
