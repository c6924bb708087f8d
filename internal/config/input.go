package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/praxo/tax-calculator/internal/calculation"
	"github.com/praxo/tax-calculator/internal/domain"
)

// InputParser handles parsing of calculation request files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// Request is the parsed content of a calculation request file: one
// calculation input plus optional statutory-table overrides for years the
// built-in provider does not know yet.
type Request struct {
	Input     *domain.ComprehensiveTaxInput
	Overrides []*calculation.TaxYearConfig
}

// Amounts are parsed as plain YAML numbers and converted to decimals once,
// at the boundary; the engine never sees floats.
type rawRequest struct {
	TaxYear        int                `yaml:"tax_year"`
	Employment     *rawEmployment     `yaml:"employment"`
	SelfEmployment *rawSelfEmployment `yaml:"self_employment"`
	Deductions     *rawDeductions     `yaml:"deductions"`
	Credits        *rawCredits        `yaml:"credits"`
	TaxYearTables  []rawTaxYearTable  `yaml:"tax_year_tables"`
}

type rawEmployment struct {
	GrossSalary          float64  `yaml:"gross_salary"`
	SpecialPaymentsGross float64  `yaml:"special_payments_gross"`
	HomeOfficeDays       int      `yaml:"home_office_days"`
	EmployeeSSPaid       *float64 `yaml:"employee_ss_paid"`
	WageTaxWithheld      float64  `yaml:"wage_tax_withheld"`
}

type rawSelfEmployment struct {
	TotalRevenue     float64 `yaml:"total_revenue"`
	BusinessExpenses float64 `yaml:"business_expenses"`
	PracticeType     string  `yaml:"practice_type"`
}

type rawDeductions struct {
	Donations            float64 `yaml:"donations"`
	PensionContributions float64 `yaml:"pension_contributions"`
	LifeInsurance        float64 `yaml:"life_insurance"`
	ChurchTax            float64 `yaml:"church_tax"`
	HomeLoanInterest     float64 `yaml:"home_loan_interest"`
}

type rawCredits struct {
	CommuterCredit          bool    `yaml:"commuter_credit"`
	CommuterAllowanceAmount float64 `yaml:"commuter_allowance_amount"`
	SoleEarnerCredit        bool    `yaml:"sole_earner_credit"`
	ChildSupportCredit      bool    `yaml:"child_support_credit"`
}

type rawBracket struct {
	UpperLimit float64 `yaml:"upper_limit"` // 0 marks the unbounded top bracket
	Rate       float64 `yaml:"rate"`
}

type rawTaxYearTable struct {
	Year     int          `yaml:"year"`
	Brackets []rawBracket `yaml:"brackets"`

	EmployeeRateRegular      float64 `yaml:"employee_rate_regular"`
	EmployeeRateSpecial      float64 `yaml:"employee_rate_special"`
	EmployeePensionRate      float64 `yaml:"employee_pension_rate"`
	EmployeeHealthRate       float64 `yaml:"employee_health_rate"`
	EmployeeUnemploymentRate float64 `yaml:"employee_unemployment_rate"`
	EmployeeAccidentRate     float64 `yaml:"employee_accident_rate"`

	SelfEmployedPensionRate  float64 `yaml:"self_employed_pension_rate"`
	SelfEmployedHealthRate   float64 `yaml:"self_employed_health_rate"`
	SelfEmployedAccidentRate float64 `yaml:"self_employed_accident_rate"`
	MinAssessmentBase        float64 `yaml:"min_assessment_base"`
	MaxAssessmentBase        float64 `yaml:"max_assessment_base"`

	GewinnfreibetragLimit       float64 `yaml:"gewinnfreibetrag_limit"`
	GewinnfreibetragRate        float64 `yaml:"gewinnfreibetrag_rate"`
	HomeOfficeDaily             float64 `yaml:"home_office_daily"`
	HomeOfficeMonthlyMax        float64 `yaml:"home_office_monthly_max"`
	StandardEmploymentAllowance float64 `yaml:"standard_employment_allowance"`

	SpecialPaymentTaxFreeLimit float64 `yaml:"special_payment_tax_free_limit"`
	SpecialPaymentTaxRate      float64 `yaml:"special_payment_tax_rate"`

	CommuterCreditAmount     float64 `yaml:"commuter_credit_amount"`
	SoleEarnerCreditAmount   float64 `yaml:"sole_earner_credit_amount"`
	ChildSupportCreditAmount float64 `yaml:"child_support_credit_amount"`

	ChamberBaseFee    float64 `yaml:"chamber_base_fee"`
	ChamberProfitRate float64 `yaml:"chamber_profit_rate"`
	VATRate           float64 `yaml:"vat_rate"`
}

// LoadFromFile loads a calculation request from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*Request, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a calculation request.
func (ip *InputParser) Parse(data []byte) (*Request, error) {
	var raw rawRequest
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	input := &domain.ComprehensiveTaxInput{TaxYear: raw.TaxYear}
	if raw.Employment != nil {
		emp := &domain.EmploymentIncome{
			GrossSalary:          decimal.NewFromFloat(raw.Employment.GrossSalary),
			SpecialPaymentsGross: decimal.NewFromFloat(raw.Employment.SpecialPaymentsGross),
			HomeOfficeDays:       raw.Employment.HomeOfficeDays,
			WageTaxWithheld:      decimal.NewFromFloat(raw.Employment.WageTaxWithheld),
		}
		if raw.Employment.EmployeeSSPaid != nil {
			paid := decimal.NewFromFloat(*raw.Employment.EmployeeSSPaid)
			emp.EmployeeSSPaid = &paid
		}
		input.Employment = emp
	}
	if raw.SelfEmployment != nil {
		input.SelfEmployment = &domain.SelfEmploymentIncome{
			TotalRevenue:     decimal.NewFromFloat(raw.SelfEmployment.TotalRevenue),
			BusinessExpenses: decimal.NewFromFloat(raw.SelfEmployment.BusinessExpenses),
			PracticeType:     domain.PracticeType(raw.SelfEmployment.PracticeType),
		}
	}
	if raw.Deductions != nil {
		input.Deductions = &domain.Deductions{
			Donations:            decimal.NewFromFloat(raw.Deductions.Donations),
			PensionContributions: decimal.NewFromFloat(raw.Deductions.PensionContributions),
			LifeInsurance:        decimal.NewFromFloat(raw.Deductions.LifeInsurance),
			ChurchTax:            decimal.NewFromFloat(raw.Deductions.ChurchTax),
			HomeLoanInterest:     decimal.NewFromFloat(raw.Deductions.HomeLoanInterest),
		}
	}
	if raw.Credits != nil {
		input.Credits = &domain.Credits{
			CommuterCredit:          raw.Credits.CommuterCredit,
			CommuterAllowanceAmount: decimal.NewFromFloat(raw.Credits.CommuterAllowanceAmount),
			SoleEarnerCredit:        raw.Credits.SoleEarnerCredit,
			ChildSupportCredit:      raw.Credits.ChildSupportCredit,
		}
	}

	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}

	overrides := make([]*calculation.TaxYearConfig, 0, len(raw.TaxYearTables))
	for i, table := range raw.TaxYearTables {
		cfg, err := table.toConfig()
		if err != nil {
			return nil, fmt.Errorf("tax year table %d validation failed: %w", i, err)
		}
		overrides = append(overrides, cfg)
	}

	return &Request{Input: input, Overrides: overrides}, nil
}

func (t rawTaxYearTable) toConfig() (*calculation.TaxYearConfig, error) {
	if t.Year < 1900 || t.Year > 2100 {
		return nil, fmt.Errorf("year %d is out of range", t.Year)
	}
	if len(t.Brackets) == 0 {
		return nil, fmt.Errorf("at least one tax bracket is required")
	}

	brackets := make([]calculation.TaxBracket, 0, len(t.Brackets))
	prevLimit := 0.0
	prevRate := 0.0
	for i, b := range t.Brackets {
		if b.Rate < 0 || b.Rate >= 1 {
			return nil, fmt.Errorf("bracket %d: rate %v must be in [0, 1)", i, b.Rate)
		}
		if b.Rate < prevRate {
			return nil, fmt.Errorf("bracket %d: rates must be non-decreasing", i)
		}
		unbounded := b.UpperLimit == 0
		if unbounded && i != len(t.Brackets)-1 {
			return nil, fmt.Errorf("bracket %d: only the last bracket may be unbounded", i)
		}
		if !unbounded && b.UpperLimit <= prevLimit {
			return nil, fmt.Errorf("bracket %d: upper limits must be increasing", i)
		}
		if !unbounded {
			prevLimit = b.UpperLimit
		}
		prevRate = b.Rate
		brackets = append(brackets, calculation.TaxBracket{
			UpperLimit: decimal.NewFromFloat(b.UpperLimit),
			Rate:       decimal.NewFromFloat(b.Rate),
		})
	}
	if last := t.Brackets[len(t.Brackets)-1]; last.UpperLimit != 0 {
		return nil, fmt.Errorf("the last bracket must be unbounded (upper_limit 0)")
	}
	if t.MinAssessmentBase < 0 || t.MaxAssessmentBase < t.MinAssessmentBase {
		return nil, fmt.Errorf("assessment base range [%v, %v] is invalid", t.MinAssessmentBase, t.MaxAssessmentBase)
	}

	return &calculation.TaxYearConfig{
		Year:     t.Year,
		Brackets: brackets,

		EmployeeRateRegular:      decimal.NewFromFloat(t.EmployeeRateRegular),
		EmployeeRateSpecial:      decimal.NewFromFloat(t.EmployeeRateSpecial),
		EmployeePensionRate:      decimal.NewFromFloat(t.EmployeePensionRate),
		EmployeeHealthRate:       decimal.NewFromFloat(t.EmployeeHealthRate),
		EmployeeUnemploymentRate: decimal.NewFromFloat(t.EmployeeUnemploymentRate),
		EmployeeAccidentRate:     decimal.NewFromFloat(t.EmployeeAccidentRate),

		SelfEmployedPensionRate:  decimal.NewFromFloat(t.SelfEmployedPensionRate),
		SelfEmployedHealthRate:   decimal.NewFromFloat(t.SelfEmployedHealthRate),
		SelfEmployedAccidentRate: decimal.NewFromFloat(t.SelfEmployedAccidentRate),
		MinAssessmentBase:        decimal.NewFromFloat(t.MinAssessmentBase),
		MaxAssessmentBase:        decimal.NewFromFloat(t.MaxAssessmentBase),

		GewinnfreibetragLimit:       decimal.NewFromFloat(t.GewinnfreibetragLimit),
		GewinnfreibetragRate:        decimal.NewFromFloat(t.GewinnfreibetragRate),
		HomeOfficeDaily:             decimal.NewFromFloat(t.HomeOfficeDaily),
		HomeOfficeMonthlyMax:        decimal.NewFromFloat(t.HomeOfficeMonthlyMax),
		StandardEmploymentAllowance: decimal.NewFromFloat(t.StandardEmploymentAllowance),

		SpecialPaymentTaxFreeLimit: decimal.NewFromFloat(t.SpecialPaymentTaxFreeLimit),
		SpecialPaymentTaxRate:      decimal.NewFromFloat(t.SpecialPaymentTaxRate),

		CommuterCreditAmount:     decimal.NewFromFloat(t.CommuterCreditAmount),
		SoleEarnerCreditAmount:   decimal.NewFromFloat(t.SoleEarnerCreditAmount),
		ChildSupportCreditAmount: decimal.NewFromFloat(t.ChildSupportCreditAmount),

		ChamberBaseFee:    decimal.NewFromFloat(t.ChamberBaseFee),
		ChamberProfitRate: decimal.NewFromFloat(t.ChamberProfitRate),
		VATRate:           decimal.NewFromFloat(t.VATRate),
	}, nil
}
