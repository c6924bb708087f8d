package calculation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/praxo/tax-calculator/internal/domain"
	money "github.com/praxo/tax-calculator/pkg/decimal"
)

// TaxEngine orchestrates the full calculation pipeline: configuration
// lookup, income normalization, social security, allowances, progressive
// tax, credits/special payments, and the final aggregation. It is stateless
// and safe for concurrent use.
type TaxEngine struct {
	Provider *ConfigProvider
	Logger   Logger

	// Now supplies the calculation timestamp; overridable for tests.
	Now func() time.Time
}

// NewTaxEngine creates an engine with the built-in year tables.
func NewTaxEngine() *TaxEngine {
	return &TaxEngine{
		Provider: NewConfigProvider(),
		Logger:   NopLogger{},
		Now:      time.Now,
	}
}

// SetLogger sets the logger. A nil logger restores the no-op default.
func (e *TaxEngine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Calculate runs one complete tax calculation. Input validation is the only
// error source; the arithmetic core is total and never fails.
func (e *TaxEngine) Calculate(input *domain.ComprehensiveTaxInput) (*domain.ComprehensiveTaxResult, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("invalid calculation input: %w", err)
	}

	cfg := e.Provider.ForYear(input.TaxYear)
	if cfg == nil {
		return nil, fmt.Errorf("no tax configuration available for year %d", input.TaxYear)
	}
	e.Logger.Debugf("calculating with tax year config %d (requested %d)", cfg.Year, input.TaxYear)

	n := normalizeIncome(input)

	ssCalc := NewSocialSecurityCalculator(cfg)
	var empSS employeeSSResult
	if n.HasEmployment {
		empSS = ssCalc.CalculateEmployee(n.EmploymentGross, n.SpecialPayments)
		if n.EmployeeSSPaid != nil {
			// Payslip figure wins over the computed total; the regular/special
			// split and the component breakdown stay informational.
			empSS.Total = *n.EmployeeSSPaid
		}
	}
	var selfSS decimal.Decimal
	var selfSSDetail domain.SelfEmployedSSBreakdown
	if n.HasSelfEmployment {
		selfSS, selfSSDetail = ssCalc.CalculateSelfEmployed(n.Profit)
	}

	allowances := NewAllowanceCalculator(cfg).Calculate(n, input.Deductions, empSS)

	progressive := NewProgressiveTaxCalculator(cfg)
	bracketTax, breakdown := progressive.Calculate(allowances.FinalTaxableIncome)

	creditsCalc := NewCreditsCalculator(cfg)
	creditTotal := creditsCalc.CreditTotal(input.Credits)
	adjustedBracketTax := creditsCalc.ApplyCredits(bracketTax, creditTotal)
	specialNet, specialTax := creditsCalc.SpecialPaymentsTax(n.SpecialPayments, empSS.Special)

	totalIncomeTax := money.RoundCents(adjustedBracketTax.Add(specialTax))

	var chamberFee, vat decimal.Decimal
	if n.HasSelfEmployment && n.PracticeType != "" && !n.PracticeType.AddOnsExempt() {
		chamberFee = money.RoundCents(cfg.ChamberBaseFee.Add(n.Profit.Mul(cfg.ChamberProfitRate)))
		vat = money.RoundCents(n.Revenue.Mul(cfg.VATRate).Div(decimal.NewFromInt(1).Add(cfg.VATRate)))
	}

	totalSS := money.RoundCents(empSS.Total.Add(selfSS))
	totalGross := n.totalGross()
	totalBurden := money.RoundCents(totalSS.Add(totalIncomeTax).Add(chamberFee).Add(vat))
	netIncome := money.RoundCents(totalGross.Sub(totalBurden))

	result := &domain.ComprehensiveTaxResult{
		TaxYear:      cfg.Year,
		CalculatedAt: e.Now(),

		EmploymentGross:        n.EmploymentGross,
		SpecialPaymentsGross:   n.SpecialPayments,
		SelfEmploymentRevenue:  n.Revenue,
		SelfEmploymentExpenses: n.Expenses,
		SelfEmploymentProfit:   n.Profit,
		TotalGrossIncome:       totalGross,

		EmployeeSSRegular:    empSS.Regular,
		EmployeeSSSpecial:    empSS.Special,
		EmployeeSSTotal:      empSS.Total,
		EmployeeSSBreakdown:  empSS.Breakdown,
		SelfEmployedSSTotal:  selfSS,
		SelfEmployedSSDetail: selfSSDetail,
		TotalSocialSecurity:  totalSS,

		Gewinnfreibetrag:      allowances.Gewinnfreibetrag,
		HomeOfficeAllowance:   allowances.HomeOfficeAllowance,
		StandardAllowance:     allowances.StandardAllowance,
		TotalDeductions:       allowances.TotalDeductions,
		TaxableEmployment:     allowances.TaxableEmployment,
		TaxableSelfEmployment: allowances.TaxableSelfEmployment,
		FinalTaxableIncome:    allowances.FinalTaxableIncome,

		BracketTax:         bracketTax,
		BracketBreakdown:   breakdown,
		CreditsApplied:     creditTotal,
		SpecialPaymentsNet: specialNet,
		SpecialPaymentsTax: specialTax,
		TotalIncomeTax:     totalIncomeTax,

		AerztekammerBeitrag: chamberFee,
		VAT:                 vat,

		TotalDirectBurden: totalBurden,
		NetIncome:         netIncome,
		BurdenPercentage:  money.Percent(totalBurden, totalGross),
		EffectiveTaxRate:  money.Percent(totalIncomeTax, totalGross),
		MarginalTaxRate:   progressive.MarginalRate(allowances.FinalTaxableIncome),
		WageTaxWithheld:   n.WageTaxWithheld,
		TaxLiability:      money.RoundCents(totalIncomeTax.Sub(n.WageTaxWithheld)),
	}

	e.Logger.Debugf("calculation done: gross=%s tax=%s ss=%s net=%s",
		totalGross.StringFixed(2), totalIncomeTax.StringFixed(2), totalSS.StringFixed(2), netIncome.StringFixed(2))

	return result, nil
}

// QuickEstimate builds a minimal input from an employment gross and a
// self-employment profit and delegates to Calculate. A zero year selects the
// current year.
func (e *TaxEngine) QuickEstimate(employmentGross, selfEmploymentProfit decimal.Decimal, year int) (*domain.ComprehensiveTaxResult, error) {
	input := &domain.ComprehensiveTaxInput{TaxYear: year}
	if employmentGross.IsPositive() {
		input.Employment = &domain.EmploymentIncome{GrossSalary: employmentGross}
	}
	if selfEmploymentProfit.IsPositive() {
		input.SelfEmployment = &domain.SelfEmploymentIncome{TotalRevenue: selfEmploymentProfit}
	}
	return e.Calculate(input)
}
