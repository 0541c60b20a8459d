// Package loans provides loan amortization utilities for yearly projections.
package loans

import (
	"github.com/iwvelando/iefp-dossier/pkg/mathutil"
)

// Terms holds the parameters of a bank loan.
type Terms struct {
	Amount       float64
	InterestRate float64 // annual, as a fraction
	TermYears    int
}

// Payment holds the values for a given year of the schedule. Amounts are
// rounded to cents; RawInterest keeps the unrounded interest for totals.
type Payment struct {
	Year          int
	Installment   float64
	Principal     float64
	Interest      float64
	EndingBalance float64
	RawInterest   float64
}

// ScheduledPrincipal returns the constant yearly principal repayment. A term
// of zero or less is treated as a single year.
func ScheduledPrincipal(terms Terms) float64 {
	if terms.Amount <= 0 {
		return 0
	}
	return terms.Amount / float64(mathutil.AtLeastOne(terms.TermYears))
}

// CalculateInterestPayment calculates the interest due for one year on the
// outstanding balance.
func CalculateInterestPayment(balance, annualInterestRate float64) float64 {
	if balance <= 0 {
		return 0
	}
	return balance * annualInterestRate
}

// LevelPrincipalSchedule builds a constant-principal schedule over years.
// Each year pays the scheduled principal, capped at the outstanding balance,
// plus interest on the balance at the start of the year. The year that closes
// the term repays whatever remains so the balance lands on exactly 0. Years
// after the loan is repaid carry zero payments.
func LevelPrincipalSchedule(terms Terms, years []int) []Payment {
	schedule := make([]Payment, 0, len(years))
	balance := mathutil.Max(terms.Amount, 0)
	scheduled := ScheduledPrincipal(terms)
	term := mathutil.AtLeastOne(terms.TermYears)

	for i, year := range years {
		var interest, principal float64
		if mathutil.IsPositive(balance) {
			interest = CalculateInterestPayment(balance, terms.InterestRate)
			principal = mathutil.Min(scheduled, balance)
			if i+1 >= term {
				principal = balance
			}
		}
		balance = mathutil.Max(0, balance-principal)

		schedule = append(schedule, Payment{
			Year:          year,
			Installment:   mathutil.Round(interest + principal),
			Principal:     mathutil.Round(principal),
			Interest:      mathutil.Round(interest),
			EndingBalance: mathutil.Round(balance),
			RawInterest:   interest,
		})
	}

	return schedule
}

// TotalPrincipal sums the principal repaid across a schedule.
func TotalPrincipal(schedule []Payment) float64 {
	paid := make([]float64, len(schedule))
	for i, payment := range schedule {
		paid[i] = payment.Principal
	}
	return mathutil.RoundedSum(paid)
}
