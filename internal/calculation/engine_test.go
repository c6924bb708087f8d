package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxo/tax-calculator/internal/domain"
)

func newTestEngine() *TaxEngine {
	engine := NewTaxEngine()
	engine.Now = func() time.Time { return time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC) }
	return engine
}

func TestCalculateEmploymentOnly(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.Calculate(&domain.ComprehensiveTaxInput{
		TaxYear:    2024,
		Employment: &domain.EmploymentIncome{GrossSalary: decimal.NewFromInt(60000)},
	})
	require.NoError(t, err)

	assert.Equal(t, 2024, result.TaxYear)
	assert.True(t, decimal.NewFromInt(60000).Equal(result.TotalGrossIncome))
	assert.True(t, decimal.RequireFromString("10842.00").Equal(result.EmployeeSSTotal))
	assert.True(t, decimal.RequireFromString("49026.00").Equal(result.FinalTaxableIncome))
	assert.True(t, decimal.RequireFromString("11514.10").Equal(result.TotalIncomeTax))
	assert.True(t, decimal.RequireFromString("37643.90").Equal(result.NetIncome))
	assert.True(t, decimal.RequireFromString("37.26").Equal(result.BurdenPercentage))
	assert.True(t, decimal.RequireFromString("19.19").Equal(result.EffectiveTaxRate))
	assert.True(t, decimal.NewFromInt(40).Equal(result.MarginalTaxRate))
	assert.True(t, result.AerztekammerBeitrag.IsZero())
	assert.True(t, result.VAT.IsZero())
}

func TestCalculateSelfEmploymentOnly(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.Calculate(&domain.ComprehensiveTaxInput{
		TaxYear: 2024,
		SelfEmployment: &domain.SelfEmploymentIncome{
			TotalRevenue:     decimal.NewFromInt(100000),
			BusinessExpenses: decimal.NewFromInt(40000),
			PracticeType:     domain.PracticeTherapeut,
		},
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(60000).Equal(result.SelfEmploymentProfit))
	assert.True(t, decimal.NewFromInt(9000).Equal(result.Gewinnfreibetrag), "15%% of 60000 profit")
	assert.True(t, decimal.NewFromInt(51000).Equal(result.FinalTaxableIncome))
	assert.True(t, decimal.RequireFromString("16098.00").Equal(result.SelfEmployedSSTotal))
	assert.True(t, decimal.RequireFromString("12303.70").Equal(result.TotalIncomeTax))
	assert.True(t, result.AerztekammerBeitrag.IsZero(), "therapists carry no chamber fee")
	assert.True(t, result.VAT.IsZero(), "therapists carry no VAT add-on")
	assert.True(t, decimal.RequireFromString("31598.30").Equal(result.NetIncome))
}

func TestCalculatePracticeAddOns(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.Calculate(&domain.ComprehensiveTaxInput{
		TaxYear: 2024,
		SelfEmployment: &domain.SelfEmploymentIncome{
			TotalRevenue:     decimal.NewFromInt(100000),
			BusinessExpenses: decimal.NewFromInt(40000),
			PracticeType:     domain.PracticeWahlarzt,
		},
	})
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("570.00").Equal(result.AerztekammerBeitrag), "120 base + 60000 * 0.0075")
	assert.True(t, decimal.RequireFromString("16666.67").Equal(result.VAT), "100000 * 0.20/1.20")
	assert.True(t, decimal.RequireFromString("14361.63").Equal(result.NetIncome))
}

func TestCalculateSpecialPayments(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.Calculate(&domain.ComprehensiveTaxInput{
		TaxYear: 2024,
		Employment: &domain.EmploymentIncome{
			GrossSalary:          decimal.NewFromInt(30000),
			SpecialPaymentsGross: decimal.NewFromInt(2000),
		},
	})
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("341.40").Equal(result.EmployeeSSSpecial))
	assert.True(t, decimal.RequireFromString("1658.60").Equal(result.SpecialPaymentsNet))
	assert.True(t, decimal.RequireFromString("62.32").Equal(result.SpecialPaymentsTax))
	assert.True(t, decimal.RequireFromString("24447.00").Equal(result.TaxableEmployment))
	assert.True(t, decimal.RequireFromString("2751.42").Equal(result.TotalIncomeTax)) // 2689.10 bracket + 62.32 special
}

func TestCalculateZeroIncome(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.Calculate(&domain.ComprehensiveTaxInput{TaxYear: 2024})
	require.NoError(t, err)

	assert.True(t, result.TotalGrossIncome.IsZero())
	assert.True(t, result.TotalIncomeTax.IsZero())
	assert.True(t, result.NetIncome.IsZero())
	assert.True(t, result.BurdenPercentage.IsZero(), "no division by zero for empty income")
	assert.True(t, result.EffectiveTaxRate.IsZero())
	assert.Empty(t, result.BracketBreakdown)
}

// A hypothetical tariff whose second bracket is wide enough keeps a 60000
// gross salary inside the first paid bracket.
func TestCalculateMarginalRateInFirstPaidBracket(t *testing.T) {
	engine := newTestEngine()

	custom := *engine.Provider.ForYear(2024)
	custom.Year = 2095
	custom.Brackets = []TaxBracket{
		{decimal.NewFromInt(12816), decimal.Zero},
		{decimal.NewFromInt(70000), decimal.NewFromFloat(0.20)},
		{decimal.Zero, decimal.NewFromFloat(0.40)},
	}
	engine.Provider.Register(&custom)

	result, err := engine.Calculate(&domain.ComprehensiveTaxInput{
		TaxYear:    2095,
		Employment: &domain.EmploymentIncome{GrossSalary: decimal.NewFromInt(60000)},
	})
	require.NoError(t, err)

	assert.True(t, result.FinalTaxableIncome.GreaterThan(decimal.NewFromInt(12816)))
	assert.True(t, decimal.NewFromInt(20).Equal(result.MarginalTaxRate))
}

func TestCalculateVeryHighIncome(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.Calculate(&domain.ComprehensiveTaxInput{
		TaxYear:    2024,
		Employment: &domain.EmploymentIncome{GrossSalary: decimal.NewFromInt(2000000)},
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(55).Equal(result.MarginalTaxRate), "top bracket rate exactly")
	assert.True(t, result.EffectiveTaxRate.LessThan(result.MarginalTaxRate))
}

func TestCalculateEmployeeSSPaidOverride(t *testing.T) {
	engine := newTestEngine()

	paid := decimal.NewFromInt(11000)
	result, err := engine.Calculate(&domain.ComprehensiveTaxInput{
		TaxYear: 2024,
		Employment: &domain.EmploymentIncome{
			GrossSalary:    decimal.NewFromInt(60000),
			EmployeeSSPaid: &paid,
		},
	})
	require.NoError(t, err)

	assert.True(t, paid.Equal(result.EmployeeSSTotal), "payslip figure wins over the computed total")
	assert.True(t, decimal.RequireFromString("48868.00").Equal(result.TaxableEmployment))
}

func TestCalculateWageTaxWithheldRefund(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.Calculate(&domain.ComprehensiveTaxInput{
		TaxYear: 2024,
		Employment: &domain.EmploymentIncome{
			GrossSalary:     decimal.NewFromInt(60000),
			WageTaxWithheld: decimal.NewFromInt(12000),
		},
	})
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("-485.90").Equal(result.TaxLiability), "negative liability signals a refund")
}

// TestCalculateRoundTripInvariants checks the exact accounting identities
// for a spread of generated inputs.
func TestCalculateRoundTripInvariants(t *testing.T) {
	engine := newTestEngine()

	inputs := []*domain.ComprehensiveTaxInput{
		{TaxYear: 2024},
		{TaxYear: 2024, Employment: &domain.EmploymentIncome{GrossSalary: decimal.NewFromInt(45000), SpecialPaymentsGross: decimal.NewFromInt(7500), HomeOfficeDays: 80}},
		{TaxYear: 2023, Employment: &domain.EmploymentIncome{GrossSalary: decimal.NewFromInt(130000)}},
		{TaxYear: 2025, SelfEmployment: &domain.SelfEmploymentIncome{TotalRevenue: decimal.NewFromInt(250000), BusinessExpenses: decimal.NewFromInt(90000), PracticeType: domain.PracticeKassenarzt}},
		{TaxYear: 2024, SelfEmployment: &domain.SelfEmploymentIncome{TotalRevenue: decimal.NewFromInt(30000), BusinessExpenses: decimal.NewFromInt(45000)}},
		{
			TaxYear:        2024,
			Employment:     &domain.EmploymentIncome{GrossSalary: decimal.NewFromInt(52000), SpecialPaymentsGross: decimal.NewFromInt(8600)},
			SelfEmployment: &domain.SelfEmploymentIncome{TotalRevenue: decimal.NewFromInt(80000), BusinessExpenses: decimal.NewFromInt(20000), PracticeType: domain.PracticeWahlarzt},
			Deductions:     &domain.Deductions{Donations: decimal.NewFromInt(500), ChurchTax: decimal.NewFromInt(400)},
			Credits:        &domain.Credits{CommuterCredit: true, SoleEarnerCredit: true},
		},
	}

	for _, input := range inputs {
		result, err := engine.Calculate(input)
		require.NoError(t, err)

		burden := result.TotalSocialSecurity.
			Add(result.TotalIncomeTax).
			Add(result.AerztekammerBeitrag).
			Add(result.VAT)
		assert.True(t, burden.Equal(result.TotalDirectBurden), "burden identity must hold to the cent")

		net := result.TotalGrossIncome.Sub(result.TotalDirectBurden)
		assert.True(t, net.Equal(result.NetIncome), "net income identity must hold to the cent")

		totalSS := result.EmployeeSSTotal.Add(result.SelfEmployedSSTotal)
		assert.True(t, totalSS.Equal(result.TotalSocialSecurity))
	}
}

func TestCalculateIdempotent(t *testing.T) {
	engine := newTestEngine()

	input := &domain.ComprehensiveTaxInput{
		TaxYear:        2024,
		Employment:     &domain.EmploymentIncome{GrossSalary: decimal.NewFromInt(60000), HomeOfficeDays: 50},
		SelfEmployment: &domain.SelfEmploymentIncome{TotalRevenue: decimal.NewFromInt(90000), BusinessExpenses: decimal.NewFromInt(30000)},
	}

	first, err := engine.Calculate(input)
	require.NoError(t, err)
	second, err := engine.Calculate(input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculateValidationErrors(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name  string
		input *domain.ComprehensiveTaxInput
	}{
		{"nil input", nil},
		{"year out of range", &domain.ComprehensiveTaxInput{TaxYear: 1800}},
		{
			"negative revenue",
			&domain.ComprehensiveTaxInput{SelfEmployment: &domain.SelfEmploymentIncome{TotalRevenue: decimal.NewFromInt(-1)}},
		},
		{
			"negative home office days",
			&domain.ComprehensiveTaxInput{Employment: &domain.EmploymentIncome{HomeOfficeDays: -1}},
		},
		{
			"unknown practice type",
			&domain.ComprehensiveTaxInput{SelfEmployment: &domain.SelfEmploymentIncome{PracticeType: "apotheke"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Calculate(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestQuickEstimate(t *testing.T) {
	engine := newTestEngine()

	t.Run("employment only matches the full calculation", func(t *testing.T) {
		result, err := engine.QuickEstimate(decimal.NewFromInt(60000), decimal.Zero, 2024)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("11514.10").Equal(result.TotalIncomeTax))
	})

	t.Run("profit becomes practice revenue without expenses", func(t *testing.T) {
		result, err := engine.QuickEstimate(decimal.Zero, decimal.NewFromInt(60000), 2024)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(60000).Equal(result.SelfEmploymentProfit))
		assert.True(t, decimal.RequireFromString("12303.70").Equal(result.TotalIncomeTax))
		assert.True(t, result.VAT.IsZero(), "an estimate without a practice type carries no add-ons")
	})
}
