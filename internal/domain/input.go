package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PracticeType identifies how a self-employed practice is run. It controls
// whether VAT and the physician chamber fee apply.
type PracticeType string

const (
	PracticeWahlarzt   PracticeType = "wahlarzt"
	PracticeKassenarzt PracticeType = "kassenarzt"
	// PracticeTherapeut is exempt from the VAT and chamber-fee add-ons.
	PracticeTherapeut PracticeType = "therapeut"
)

// ValidPracticeTypes lists the accepted practice type values.
var ValidPracticeTypes = []PracticeType{PracticeWahlarzt, PracticeKassenarzt, PracticeTherapeut}

// EmploymentIncome holds the employment income side of a calculation
type EmploymentIncome struct {
	GrossSalary          decimal.Decimal  `yaml:"gross_salary" json:"gross_salary"`
	SpecialPaymentsGross decimal.Decimal  `yaml:"special_payments_gross" json:"special_payments_gross"` // 13th/14th salary
	HomeOfficeDays       int              `yaml:"home_office_days,omitempty" json:"home_office_days,omitempty"`
	EmployeeSSPaid       *decimal.Decimal `yaml:"employee_ss_paid,omitempty" json:"employee_ss_paid,omitempty"` // overrides the computed total when the payslip figure is known
	WageTaxWithheld      decimal.Decimal  `yaml:"wage_tax_withheld,omitempty" json:"wage_tax_withheld,omitempty"`
}

// SelfEmploymentIncome holds the practice income side of a calculation
type SelfEmploymentIncome struct {
	TotalRevenue     decimal.Decimal `yaml:"total_revenue" json:"total_revenue"`
	BusinessExpenses decimal.Decimal `yaml:"business_expenses" json:"business_expenses"`
	PracticeType     PracticeType    `yaml:"practice_type,omitempty" json:"practice_type,omitempty"`
}

// Deductions are user-supplied deductible amounts, each independently optional
type Deductions struct {
	Donations            decimal.Decimal `yaml:"donations,omitempty" json:"donations,omitempty"`
	PensionContributions decimal.Decimal `yaml:"pension_contributions,omitempty" json:"pension_contributions,omitempty"`
	LifeInsurance        decimal.Decimal `yaml:"life_insurance,omitempty" json:"life_insurance,omitempty"`
	ChurchTax            decimal.Decimal `yaml:"church_tax,omitempty" json:"church_tax,omitempty"`
	HomeLoanInterest     decimal.Decimal `yaml:"home_loan_interest,omitempty" json:"home_loan_interest,omitempty"`
}

// Sum aggregates all supplied deduction amounts. No per-category caps are
// applied; see the aggregation rule in the allowance calculator.
func (d *Deductions) Sum() decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	total := d.Donations.
		Add(d.PensionContributions).
		Add(d.LifeInsurance).
		Add(d.ChurchTax).
		Add(d.HomeLoanInterest)
	return total
}

// Credits are the flat-amount tax credit flags claimed by the taxpayer.
// CommuterAllowanceAmount carries its own euro amount; the boolean flags map
// to fixed statutory amounts in the year configuration.
type Credits struct {
	CommuterCredit          bool            `yaml:"commuter_credit,omitempty" json:"commuter_credit,omitempty"`
	CommuterAllowanceAmount decimal.Decimal `yaml:"commuter_allowance_amount,omitempty" json:"commuter_allowance_amount,omitempty"`
	SoleEarnerCredit        bool            `yaml:"sole_earner_credit,omitempty" json:"sole_earner_credit,omitempty"`
	ChildSupportCredit      bool            `yaml:"child_support_credit,omitempty" json:"child_support_credit,omitempty"`
}

// ComprehensiveTaxInput is the complete input record for one calculation.
// All four sections are optional; a nil section contributes nothing.
type ComprehensiveTaxInput struct {
	TaxYear        int                   `yaml:"tax_year,omitempty" json:"tax_year,omitempty"` // 0 selects the current year
	Employment     *EmploymentIncome     `yaml:"employment,omitempty" json:"employment,omitempty"`
	SelfEmployment *SelfEmploymentIncome `yaml:"self_employment,omitempty" json:"self_employment,omitempty"`
	Deductions     *Deductions           `yaml:"deductions,omitempty" json:"deductions,omitempty"`
	Credits        *Credits              `yaml:"credits,omitempty" json:"credits,omitempty"`
}

// Validate rejects structurally malformed input before it enters the
// calculation pipeline. Negative amounts indicate a caller bug, not a
// legitimate zero-income scenario, so they are errors rather than clamps.
func (in *ComprehensiveTaxInput) Validate() error {
	if in == nil {
		return fmt.Errorf("input is required")
	}
	if in.TaxYear != 0 && (in.TaxYear < 1900 || in.TaxYear > 2100) {
		return fmt.Errorf("tax year %d is out of range", in.TaxYear)
	}
	if emp := in.Employment; emp != nil {
		if emp.GrossSalary.IsNegative() {
			return fmt.Errorf("employment: gross salary cannot be negative")
		}
		if emp.SpecialPaymentsGross.IsNegative() {
			return fmt.Errorf("employment: special payments gross cannot be negative")
		}
		if emp.HomeOfficeDays < 0 {
			return fmt.Errorf("employment: home office days cannot be negative")
		}
		if emp.EmployeeSSPaid != nil && emp.EmployeeSSPaid.IsNegative() {
			return fmt.Errorf("employment: employee social security paid cannot be negative")
		}
		if emp.WageTaxWithheld.IsNegative() {
			return fmt.Errorf("employment: wage tax withheld cannot be negative")
		}
	}
	if se := in.SelfEmployment; se != nil {
		if se.TotalRevenue.IsNegative() {
			return fmt.Errorf("self-employment: total revenue cannot be negative")
		}
		if se.BusinessExpenses.IsNegative() {
			return fmt.Errorf("self-employment: business expenses cannot be negative")
		}
		if se.PracticeType != "" && !se.PracticeType.Valid() {
			return fmt.Errorf("self-employment: unknown practice type %q", se.PracticeType)
		}
	}
	if d := in.Deductions; d != nil {
		for name, amount := range map[string]decimal.Decimal{
			"donations":             d.Donations,
			"pension contributions": d.PensionContributions,
			"life insurance":        d.LifeInsurance,
			"church tax":            d.ChurchTax,
			"home loan interest":    d.HomeLoanInterest,
		} {
			if amount.IsNegative() {
				return fmt.Errorf("deductions: %s cannot be negative", name)
			}
		}
	}
	if c := in.Credits; c != nil && c.CommuterAllowanceAmount.IsNegative() {
		return fmt.Errorf("credits: commuter allowance amount cannot be negative")
	}
	return nil
}

// Valid reports whether pt is one of the accepted practice types.
func (pt PracticeType) Valid() bool {
	for _, v := range ValidPracticeTypes {
		if pt == v {
			return true
		}
	}
	return false
}

// AddOnsExempt reports whether the VAT and chamber-fee add-ons are
// suppressed for this practice type.
func (pt PracticeType) AddOnsExempt() bool {
	return pt == PracticeTherapeut
}
