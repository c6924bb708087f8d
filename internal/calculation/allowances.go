package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/praxo/tax-calculator/internal/domain"
	money "github.com/praxo/tax-calculator/pkg/decimal"
)

// AllowanceCalculator computes the statutory allowances and aggregates the
// user-supplied deductions for one tax year.
type AllowanceCalculator struct {
	Config *TaxYearConfig
}

// NewAllowanceCalculator creates a calculator bound to a year config.
func NewAllowanceCalculator(cfg *TaxYearConfig) *AllowanceCalculator {
	return &AllowanceCalculator{Config: cfg}
}

// Gewinnfreibetrag is the profit allowance for self-employed income: a
// percentage of profit, capped at the statutory maximum allowance amount.
func (ac *AllowanceCalculator) Gewinnfreibetrag(profit decimal.Decimal) decimal.Decimal {
	allowance := money.RoundCents(profit.Mul(ac.Config.GewinnfreibetragRate))
	return decimal.Min(allowance, ac.Config.GewinnfreibetragLimit)
}

// HomeOfficeAllowance grants a per-day amount, capped per elapsed month.
// A month is approximated as 20 working days.
func (ac *AllowanceCalculator) HomeOfficeAllowance(days int) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}
	amount := money.RoundCents(decimal.NewFromInt(int64(days)).Mul(ac.Config.HomeOfficeDaily))
	elapsedMonths := (days + 19) / 20
	monthlyCap := money.RoundCents(ac.Config.HomeOfficeMonthlyMax.Mul(decimal.NewFromInt(int64(elapsedMonths))))
	return decimal.Min(amount, monthlyCap)
}

// allowanceResult carries every allowance/deduction figure plus the taxable
// income at each stage.
type allowanceResult struct {
	Gewinnfreibetrag      decimal.Decimal
	HomeOfficeAllowance   decimal.Decimal
	StandardAllowance     decimal.Decimal
	TotalDeductions       decimal.Decimal
	TaxableEmployment     decimal.Decimal
	TaxableSelfEmployment decimal.Decimal
	FinalTaxableIncome    decimal.Decimal
}

// Calculate derives all allowance figures and the staged taxable incomes.
// User-supplied deduction amounts are taken at face value; no per-category
// caps are applied.
func (ac *AllowanceCalculator) Calculate(n normalizedIncome, deductions *domain.Deductions, ss employeeSSResult) allowanceResult {
	var res allowanceResult

	if n.HasSelfEmployment {
		res.Gewinnfreibetrag = ac.Gewinnfreibetrag(n.Profit)
	}
	if n.HasEmployment {
		res.HomeOfficeAllowance = ac.HomeOfficeAllowance(n.HomeOfficeDays)
		res.StandardAllowance = ac.Config.StandardEmploymentAllowance
	}

	res.TotalDeductions = money.RoundCents(res.HomeOfficeAllowance.Add(deductions.Sum()))

	if n.HasEmployment {
		// Only the regular-salary portion of the contribution reduces the
		// progressive base; the special-payments portion belongs to the
		// separately taxed special payments.
		regularSS := money.RoundCents(ss.Total.Sub(ss.Special))
		res.TaxableEmployment = money.FloorZero(money.RoundCents(
			n.EmploymentGross.
				Sub(regularSS).
				Sub(res.HomeOfficeAllowance).
				Sub(res.StandardAllowance)))
	}
	if n.HasSelfEmployment {
		res.TaxableSelfEmployment = money.FloorZero(money.RoundCents(n.Profit.Sub(res.Gewinnfreibetrag)))
	}

	res.FinalTaxableIncome = money.FloorZero(money.RoundCents(
		res.TaxableEmployment.Add(res.TaxableSelfEmployment).Sub(res.TotalDeductions)))

	return res
}
