package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/praxo/tax-calculator/internal/domain"
	money "github.com/praxo/tax-calculator/pkg/decimal"
)

// CreditsCalculator applies flat-amount tax credits and the separate
// special-payments rule for one tax year.
type CreditsCalculator struct {
	Config *TaxYearConfig
}

// NewCreditsCalculator creates a calculator bound to a year config.
func NewCreditsCalculator(cfg *TaxYearConfig) *CreditsCalculator {
	return &CreditsCalculator{Config: cfg}
}

// CreditTotal sums the applicable fixed credit amounts. The commuter
// allowance carries its own euro amount; the other flags map to the
// statutory amounts of the year.
func (cc *CreditsCalculator) CreditTotal(credits *domain.Credits) decimal.Decimal {
	if credits == nil {
		return decimal.Zero
	}
	total := decimal.Zero
	if credits.CommuterCredit {
		total = total.Add(cc.Config.CommuterCreditAmount)
	}
	total = total.Add(credits.CommuterAllowanceAmount)
	if credits.SoleEarnerCredit {
		total = total.Add(cc.Config.SoleEarnerCreditAmount)
	}
	if credits.ChildSupportCredit {
		total = total.Add(cc.Config.ChildSupportCreditAmount)
	}
	return money.RoundCents(total)
}

// ApplyCredits subtracts the credit total from the bracket tax, floored at
// zero. Credits never turn the progressive tax negative.
func (cc *CreditsCalculator) ApplyCredits(bracketTax, creditTotal decimal.Decimal) decimal.Decimal {
	return money.FloorZero(money.RoundCents(bracketTax.Sub(creditTotal)))
}

// SpecialPaymentsTax taxes the 13th/14th-salary style payments under the
// threshold-and-flat-rate rule. The net amount is the gross minus the
// social security portion attributable to special payments.
func (cc *CreditsCalculator) SpecialPaymentsTax(specialGross, specialSS decimal.Decimal) (net decimal.Decimal, tax decimal.Decimal) {
	net = money.FloorZero(money.RoundCents(specialGross.Sub(specialSS)))
	if net.LessThanOrEqual(cc.Config.SpecialPaymentTaxFreeLimit) {
		return net, decimal.Zero
	}
	tax = money.RoundCents(net.Sub(cc.Config.SpecialPaymentTaxFreeLimit).Mul(cc.Config.SpecialPaymentTaxRate))
	return net, tax
}
