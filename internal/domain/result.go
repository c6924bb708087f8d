package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeSSBreakdown is the informational per-component split of the
// employee social security contribution. It is computed from the uncapped
// regular salary, so it does not necessarily sum to the capped total.
type EmployeeSSBreakdown struct {
	Pension      decimal.Decimal `json:"pension"`
	Health       decimal.Decimal `json:"health"`
	Unemployment decimal.Decimal `json:"unemployment"`
	Accident     decimal.Decimal `json:"accident"`
}

// SelfEmployedSSBreakdown is the per-component split of the self-employed
// contribution together with the assessment base actually used.
type SelfEmployedSSBreakdown struct {
	AssessmentBase decimal.Decimal `json:"assessment_base"`
	Pension        decimal.Decimal `json:"pension"`
	Health         decimal.Decimal `json:"health"`
	Accident       decimal.Decimal `json:"accident"`
}

// BracketTax is one row of the progressive tax breakdown
type BracketTax struct {
	From        decimal.Decimal `json:"from"`
	To          decimal.Decimal `json:"to"` // zero when the bracket is unbounded
	Rate        decimal.Decimal `json:"rate"`
	TaxedAmount decimal.Decimal `json:"taxed_amount"`
	Tax         decimal.Decimal `json:"tax"`
}

// ComprehensiveTaxResult is the fully derived output record of one
// calculation. It carries every intermediate stage so downstream consumers
// (exports, dashboards) never have to recompute anything.
type ComprehensiveTaxResult struct {
	TaxYear      int       `json:"tax_year"`
	CalculatedAt time.Time `json:"calculated_at"`

	// Gross income
	EmploymentGross        decimal.Decimal `json:"employment_gross"`
	SpecialPaymentsGross   decimal.Decimal `json:"special_payments_gross"`
	SelfEmploymentRevenue  decimal.Decimal `json:"self_employment_revenue"`
	SelfEmploymentExpenses decimal.Decimal `json:"self_employment_expenses"`
	SelfEmploymentProfit   decimal.Decimal `json:"self_employment_profit"`
	TotalGrossIncome       decimal.Decimal `json:"total_gross_income"`

	// Social security
	EmployeeSSRegular    decimal.Decimal         `json:"employee_ss_regular"`
	EmployeeSSSpecial    decimal.Decimal         `json:"employee_ss_special"`
	EmployeeSSTotal      decimal.Decimal         `json:"employee_ss_total"`
	EmployeeSSBreakdown  EmployeeSSBreakdown     `json:"employee_ss_breakdown"`
	SelfEmployedSSTotal  decimal.Decimal         `json:"self_employed_ss_total"`
	SelfEmployedSSDetail SelfEmployedSSBreakdown `json:"self_employed_ss_detail"`
	TotalSocialSecurity  decimal.Decimal         `json:"total_social_security"`

	// Allowances and deductions
	Gewinnfreibetrag      decimal.Decimal `json:"gewinnfreibetrag"`
	HomeOfficeAllowance   decimal.Decimal `json:"home_office_allowance"`
	StandardAllowance     decimal.Decimal `json:"standard_allowance"`
	TotalDeductions       decimal.Decimal `json:"total_deductions"`
	TaxableEmployment     decimal.Decimal `json:"taxable_employment"`
	TaxableSelfEmployment decimal.Decimal `json:"taxable_self_employment"`
	FinalTaxableIncome    decimal.Decimal `json:"final_taxable_income"`

	// Income tax
	BracketTax         decimal.Decimal `json:"bracket_tax"`
	BracketBreakdown   []BracketTax    `json:"bracket_breakdown"`
	CreditsApplied     decimal.Decimal `json:"credits_applied"`
	SpecialPaymentsNet decimal.Decimal `json:"special_payments_net"`
	SpecialPaymentsTax decimal.Decimal `json:"special_payments_tax"`
	TotalIncomeTax     decimal.Decimal `json:"total_income_tax"`

	// Practice add-ons (zero when not applicable)
	AerztekammerBeitrag decimal.Decimal `json:"aerztekammer_beitrag"`
	VAT                 decimal.Decimal `json:"vat"`

	// Final figures
	TotalDirectBurden decimal.Decimal `json:"total_direct_burden"`
	NetIncome         decimal.Decimal `json:"net_income"`
	BurdenPercentage  decimal.Decimal `json:"burden_percentage"`
	EffectiveTaxRate  decimal.Decimal `json:"effective_tax_rate"`
	MarginalTaxRate   decimal.Decimal `json:"marginal_tax_rate"`
	WageTaxWithheld   decimal.Decimal `json:"wage_tax_withheld"`
	TaxLiability      decimal.Decimal `json:"tax_liability"` // negative means refund
}

// QuarterlySchedule splits an annual income tax into four advance payments
type QuarterlySchedule struct {
	Q1    decimal.Decimal `json:"q1"`
	Q2    decimal.Decimal `json:"q2"`
	Q3    decimal.Decimal `json:"q3"`
	Q4    decimal.Decimal `json:"q4"`
	Total decimal.Decimal `json:"total"`
}

// TipType grades how urgent an optimization tip is
type TipType string

const (
	TipInfo    TipType = "info"
	TipWarning TipType = "warning"
	TipAction  TipType = "action"
)

// Tip is one threshold-triggered advisory message derived from a result
type Tip struct {
	Category         string           `json:"category"`
	Type             TipType          `json:"type"`
	Message          string           `json:"message"`
	EstimatedSavings *decimal.Decimal `json:"estimated_savings,omitempty"`
}

// MonthlyProgress projects a year-end burden from year-to-date figures
type MonthlyProgress struct {
	Month               int                     `json:"month"`
	YTDResult           *ComprehensiveTaxResult `json:"ytd_result"`
	YTDBurden           decimal.Decimal         `json:"ytd_burden"`
	ProjectedYearBurden decimal.Decimal         `json:"projected_year_burden"`
	ProjectedNetIncome  decimal.Decimal         `json:"projected_net_income"`
}
