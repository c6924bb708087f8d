package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/praxo/tax-calculator/internal/domain"
	money "github.com/praxo/tax-calculator/pkg/decimal"
)

// normalizedIncome is the cent-rounded view of the raw input that every
// later pipeline stage works from.
type normalizedIncome struct {
	HasEmployment   bool
	EmploymentGross decimal.Decimal
	SpecialPayments decimal.Decimal
	HomeOfficeDays  int
	EmployeeSSPaid  *decimal.Decimal
	WageTaxWithheld decimal.Decimal

	HasSelfEmployment bool
	Revenue           decimal.Decimal
	Expenses          decimal.Decimal
	Profit            decimal.Decimal
	PracticeType      domain.PracticeType
}

// normalizeIncome converts the raw input records into gross figures and the
// self-employment profit. Profit is floored at zero: a loss-making year is a
// zero taxable base, not an error.
func normalizeIncome(in *domain.ComprehensiveTaxInput) normalizedIncome {
	var n normalizedIncome

	if emp := in.Employment; emp != nil {
		n.HasEmployment = true
		n.EmploymentGross = money.RoundCents(emp.GrossSalary)
		n.SpecialPayments = money.RoundCents(emp.SpecialPaymentsGross)
		n.HomeOfficeDays = emp.HomeOfficeDays
		n.WageTaxWithheld = money.RoundCents(emp.WageTaxWithheld)
		if emp.EmployeeSSPaid != nil {
			paid := money.RoundCents(*emp.EmployeeSSPaid)
			n.EmployeeSSPaid = &paid
		}
	}

	if se := in.SelfEmployment; se != nil {
		n.HasSelfEmployment = true
		n.Revenue = money.RoundCents(se.TotalRevenue)
		n.Expenses = money.RoundCents(se.BusinessExpenses)
		n.Profit = money.FloorZero(money.RoundCents(n.Revenue.Sub(n.Expenses)))
		n.PracticeType = se.PracticeType
	}

	return n
}

// totalGross is the combined gross income of both streams.
func (n normalizedIncome) totalGross() decimal.Decimal {
	return money.RoundCents(n.EmploymentGross.Add(n.SpecialPayments).Add(n.Profit))
}
