package calculation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// STATUTORY PARAMETER ASSUMPTIONS:
//
// 1. Income tax brackets: official Austrian tariff per year (EStG §33).
//    The last bracket is unbounded; brackets partition 0..∞ contiguously.
//
// 2. Employee social security (ASVG): 18.07% on regular salary, 17.07% on
//    special payments, both capped at the annual maximum assessment base.
//    The informational component split uses the employee shares for
//    pension/health/unemployment plus the residual levies grouped under
//    "accident".
//
// 3. Self-employed social security (SVS): pension 18.5%, health 6.8%,
//    provision 1.53% (reported as the accident component), on a profit
//    assessment base clamped to the statutory minimum/maximum.
//
// 4. Gewinnfreibetrag: 15% of profit, capped at the statutory maximum
//    allowance amount.
//
// 5. Home office: €3 per day, at most €60 per elapsed month.
//
// 6. Special payments (13th/14th salary): first €620 tax free, 6% flat above.

// TaxBracket is one step of the progressive tariff. A zero UpperLimit marks
// the unbounded top bracket; only the last bracket may be unbounded.
type TaxBracket struct {
	UpperLimit decimal.Decimal
	Rate       decimal.Decimal
}

// Unbounded reports whether the bracket has no upper limit.
func (b TaxBracket) Unbounded() bool {
	return b.UpperLimit.IsZero()
}

// TaxYearConfig bundles every statutory parameter for one tax year.
// Instances are static data and must not be mutated after registration.
type TaxYearConfig struct {
	Year     int
	Brackets []TaxBracket

	// Employee social security
	EmployeeRateRegular      decimal.Decimal
	EmployeeRateSpecial      decimal.Decimal
	EmployeePensionRate      decimal.Decimal
	EmployeeHealthRate       decimal.Decimal
	EmployeeUnemploymentRate decimal.Decimal
	EmployeeAccidentRate     decimal.Decimal

	// Self-employed social security
	SelfEmployedPensionRate  decimal.Decimal
	SelfEmployedHealthRate   decimal.Decimal
	SelfEmployedAccidentRate decimal.Decimal
	MinAssessmentBase        decimal.Decimal
	MaxAssessmentBase        decimal.Decimal

	// Allowances
	GewinnfreibetragLimit       decimal.Decimal
	GewinnfreibetragRate        decimal.Decimal
	HomeOfficeDaily             decimal.Decimal
	HomeOfficeMonthlyMax        decimal.Decimal
	StandardEmploymentAllowance decimal.Decimal

	// Special payments rule
	SpecialPaymentTaxFreeLimit decimal.Decimal
	SpecialPaymentTaxRate      decimal.Decimal

	// Fixed credit amounts
	CommuterCreditAmount     decimal.Decimal
	SoleEarnerCreditAmount   decimal.Decimal
	ChildSupportCreditAmount decimal.Decimal

	// Practice add-ons
	ChamberBaseFee    decimal.Decimal
	ChamberProfitRate decimal.Decimal
	VATRate           decimal.Decimal
}

// ConfigProvider maps tax years to their statutory parameter tables with a
// total fallback rule: an unconfigured year resolves to the nearest
// configured year, ties going to the earlier one.
type ConfigProvider struct {
	configs map[int]*TaxYearConfig
}

// NewConfigProvider creates a provider preloaded with the built-in years.
func NewConfigProvider() *ConfigProvider {
	p := &ConfigProvider{configs: make(map[int]*TaxYearConfig)}
	p.Register(newTaxYearConfig2023())
	p.Register(newTaxYearConfig2024())
	p.Register(newTaxYearConfig2025())
	return p
}

// Register adds or replaces the table for cfg.Year.
func (p *ConfigProvider) Register(cfg *TaxYearConfig) {
	p.configs[cfg.Year] = cfg
}

// Years returns the configured years in ascending order.
func (p *ConfigProvider) Years() []int {
	years := make([]int, 0, len(p.configs))
	for y := range p.configs {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// ForYear resolves the table for the given year. A year of zero selects the
// current calendar year before the fallback rule is applied.
func (p *ConfigProvider) ForYear(year int) *TaxYearConfig {
	if year <= 0 {
		year = time.Now().Year()
	}
	if cfg, ok := p.configs[year]; ok {
		return cfg
	}
	var best *TaxYearConfig
	bestDist := 0
	for _, y := range p.Years() {
		dist := year - y
		if dist < 0 {
			dist = -dist
		}
		if best == nil || dist < bestDist {
			best = p.configs[y]
			bestDist = dist
		}
	}
	return best
}

func newTaxYearConfig2023() *TaxYearConfig {
	return &TaxYearConfig{
		Year: 2023,
		Brackets: []TaxBracket{
			{decimal.NewFromInt(11693), decimal.Zero},
			{decimal.NewFromInt(19134), decimal.NewFromFloat(0.20)},
			{decimal.NewFromInt(32075), decimal.NewFromFloat(0.30)},
			{decimal.NewFromInt(62080), decimal.NewFromFloat(0.41)},
			{decimal.NewFromInt(93120), decimal.NewFromFloat(0.48)},
			{decimal.NewFromInt(1000000), decimal.NewFromFloat(0.50)},
			{decimal.Zero, decimal.NewFromFloat(0.55)},
		},
		EmployeeRateRegular:      decimal.NewFromFloat(0.1807),
		EmployeeRateSpecial:      decimal.NewFromFloat(0.1707),
		EmployeePensionRate:      decimal.NewFromFloat(0.1025),
		EmployeeHealthRate:       decimal.NewFromFloat(0.0387),
		EmployeeUnemploymentRate: decimal.NewFromFloat(0.0295),
		EmployeeAccidentRate:     decimal.NewFromFloat(0.0100),

		SelfEmployedPensionRate:  decimal.NewFromFloat(0.185),
		SelfEmployedHealthRate:   decimal.NewFromFloat(0.068),
		SelfEmployedAccidentRate: decimal.NewFromFloat(0.0153),
		MinAssessmentBase:        decimal.RequireFromString("6010.92"),
		MaxAssessmentBase:        decimal.NewFromInt(81900),

		GewinnfreibetragLimit:       decimal.NewFromInt(33000),
		GewinnfreibetragRate:        decimal.NewFromFloat(0.15),
		HomeOfficeDaily:             decimal.NewFromInt(3),
		HomeOfficeMonthlyMax:        decimal.NewFromInt(60),
		StandardEmploymentAllowance: decimal.NewFromInt(132),

		SpecialPaymentTaxFreeLimit: decimal.NewFromInt(620),
		SpecialPaymentTaxRate:      decimal.NewFromFloat(0.06),

		CommuterCreditAmount:     decimal.NewFromInt(421),
		SoleEarnerCreditAmount:   decimal.NewFromInt(520),
		ChildSupportCreditAmount: decimal.NewFromInt(408),

		ChamberBaseFee:    decimal.NewFromInt(120),
		ChamberProfitRate: decimal.NewFromFloat(0.0075),
		VATRate:           decimal.NewFromFloat(0.20),
	}
}

func newTaxYearConfig2024() *TaxYearConfig {
	return &TaxYearConfig{
		Year: 2024,
		Brackets: []TaxBracket{
			{decimal.NewFromInt(12816), decimal.Zero},
			{decimal.NewFromInt(20818), decimal.NewFromFloat(0.20)},
			{decimal.NewFromInt(34513), decimal.NewFromFloat(0.30)},
			{decimal.NewFromInt(66612), decimal.NewFromFloat(0.40)},
			{decimal.NewFromInt(99266), decimal.NewFromFloat(0.48)},
			{decimal.NewFromInt(1000000), decimal.NewFromFloat(0.50)},
			{decimal.Zero, decimal.NewFromFloat(0.55)},
		},
		EmployeeRateRegular:      decimal.NewFromFloat(0.1807),
		EmployeeRateSpecial:      decimal.NewFromFloat(0.1707),
		EmployeePensionRate:      decimal.NewFromFloat(0.1025),
		EmployeeHealthRate:       decimal.NewFromFloat(0.0387),
		EmployeeUnemploymentRate: decimal.NewFromFloat(0.0295),
		EmployeeAccidentRate:     decimal.NewFromFloat(0.0100),

		SelfEmployedPensionRate:  decimal.NewFromFloat(0.185),
		SelfEmployedHealthRate:   decimal.NewFromFloat(0.068),
		SelfEmployedAccidentRate: decimal.NewFromFloat(0.0153),
		MinAssessmentBase:        decimal.RequireFromString("6221.28"),
		MaxAssessmentBase:        decimal.NewFromInt(84840),

		GewinnfreibetragLimit:       decimal.NewFromInt(33000),
		GewinnfreibetragRate:        decimal.NewFromFloat(0.15),
		HomeOfficeDaily:             decimal.NewFromInt(3),
		HomeOfficeMonthlyMax:        decimal.NewFromInt(60),
		StandardEmploymentAllowance: decimal.NewFromInt(132),

		SpecialPaymentTaxFreeLimit: decimal.NewFromInt(620),
		SpecialPaymentTaxRate:      decimal.NewFromFloat(0.06),

		CommuterCreditAmount:     decimal.NewFromInt(463),
		SoleEarnerCreditAmount:   decimal.NewFromInt(572),
		ChildSupportCreditAmount: decimal.NewFromInt(426),

		ChamberBaseFee:    decimal.NewFromInt(120),
		ChamberProfitRate: decimal.NewFromFloat(0.0075),
		VATRate:           decimal.NewFromFloat(0.20),
	}
}

func newTaxYearConfig2025() *TaxYearConfig {
	return &TaxYearConfig{
		Year: 2025,
		Brackets: []TaxBracket{
			{decimal.NewFromInt(13308), decimal.Zero},
			{decimal.NewFromInt(21617), decimal.NewFromFloat(0.20)},
			{decimal.NewFromInt(35836), decimal.NewFromFloat(0.30)},
			{decimal.NewFromInt(69166), decimal.NewFromFloat(0.40)},
			{decimal.NewFromInt(103072), decimal.NewFromFloat(0.48)},
			{decimal.NewFromInt(1000000), decimal.NewFromFloat(0.50)},
			{decimal.Zero, decimal.NewFromFloat(0.55)},
		},
		EmployeeRateRegular:      decimal.NewFromFloat(0.1807),
		EmployeeRateSpecial:      decimal.NewFromFloat(0.1707),
		EmployeePensionRate:      decimal.NewFromFloat(0.1025),
		EmployeeHealthRate:       decimal.NewFromFloat(0.0387),
		EmployeeUnemploymentRate: decimal.NewFromFloat(0.0295),
		EmployeeAccidentRate:     decimal.NewFromFloat(0.0100),

		SelfEmployedPensionRate:  decimal.NewFromFloat(0.185),
		SelfEmployedHealthRate:   decimal.NewFromFloat(0.068),
		SelfEmployedAccidentRate: decimal.NewFromFloat(0.0153),
		MinAssessmentBase:        decimal.RequireFromString("6613.20"),
		MaxAssessmentBase:        decimal.NewFromInt(90300),

		GewinnfreibetragLimit:       decimal.NewFromInt(33000),
		GewinnfreibetragRate:        decimal.NewFromFloat(0.15),
		HomeOfficeDaily:             decimal.NewFromInt(3),
		HomeOfficeMonthlyMax:        decimal.NewFromInt(60),
		StandardEmploymentAllowance: decimal.NewFromInt(132),

		SpecialPaymentTaxFreeLimit: decimal.NewFromInt(620),
		SpecialPaymentTaxRate:      decimal.NewFromFloat(0.06),

		CommuterCreditAmount:     decimal.NewFromInt(487),
		SoleEarnerCreditAmount:   decimal.NewFromInt(601),
		ChildSupportCreditAmount: decimal.NewFromInt(439),

		ChamberBaseFee:    decimal.NewFromInt(120),
		ChamberProfitRate: decimal.NewFromFloat(0.0075),
		VATRate:           decimal.NewFromFloat(0.20),
	}
}
