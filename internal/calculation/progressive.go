package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/praxo/tax-calculator/internal/domain"
	money "github.com/praxo/tax-calculator/pkg/decimal"
)

// ProgressiveTaxCalculator applies the ordered bracket tariff of one year.
type ProgressiveTaxCalculator struct {
	Config *TaxYearConfig
}

// NewProgressiveTaxCalculator creates a calculator bound to a year config.
func NewProgressiveTaxCalculator(cfg *TaxYearConfig) *ProgressiveTaxCalculator {
	return &ProgressiveTaxCalculator{Config: cfg}
}

// Calculate folds over the bracket list once, producing the total tax and
// the per-bracket breakdown. Only brackets actually touched by the income
// appear in the breakdown.
func (ptc *ProgressiveTaxCalculator) Calculate(taxableIncome decimal.Decimal) (decimal.Decimal, []domain.BracketTax) {
	total := decimal.Zero
	breakdown := make([]domain.BracketTax, 0, len(ptc.Config.Brackets))

	lower := decimal.Zero
	for _, bracket := range ptc.Config.Brackets {
		if taxableIncome.LessThanOrEqual(lower) {
			break
		}
		upper := bracket.UpperLimit
		if bracket.Unbounded() {
			upper = taxableIncome
		}
		taxed := money.RoundCents(decimal.Min(taxableIncome, upper).Sub(lower))
		if taxed.IsPositive() {
			tax := money.RoundCents(taxed.Mul(bracket.Rate))
			total = money.RoundCents(total.Add(tax))
			breakdown = append(breakdown, domain.BracketTax{
				From:        lower,
				To:          bracket.UpperLimit,
				Rate:        bracket.Rate,
				TaxedAmount: taxed,
				Tax:         tax,
			})
		}
		if bracket.Unbounded() {
			break
		}
		lower = bracket.UpperLimit
	}

	return total, breakdown
}

// MarginalRate returns the rate applied to the next euro of income, as a
// plain percentage number. It is the rate of the first bracket whose upper
// limit is at or above the income; income beyond every finite limit lands in
// the top bracket.
func (ptc *ProgressiveTaxCalculator) MarginalRate(income decimal.Decimal) decimal.Decimal {
	brackets := ptc.Config.Brackets
	for _, bracket := range brackets {
		if bracket.Unbounded() {
			break
		}
		if bracket.UpperLimit.GreaterThanOrEqual(income) {
			return ratePercent(bracket.Rate)
		}
	}
	return ratePercent(brackets[len(brackets)-1].Rate)
}

// ratePercent converts a fractional rate (0.20) to a percentage number (20).
func ratePercent(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(100))
}
