package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/praxo/tax-calculator/internal/domain"
)

func TestCreditTotal(t *testing.T) {
	calc := NewCreditsCalculator(config2024(t))

	tests := []struct {
		name     string
		credits  *domain.Credits
		expected decimal.Decimal
	}{
		{"nil credits", nil, decimal.Zero},
		{"no flags set", &domain.Credits{}, decimal.Zero},
		{"commuter credit only", &domain.Credits{CommuterCredit: true}, decimal.NewFromInt(463)},
		{"sole earner only", &domain.Credits{SoleEarnerCredit: true}, decimal.NewFromInt(572)},
		{"child support only", &domain.Credits{ChildSupportCredit: true}, decimal.NewFromInt(426)},
		{
			name: "all flags plus commuter allowance amount",
			credits: &domain.Credits{
				CommuterCredit:          true,
				CommuterAllowanceAmount: decimal.NewFromInt(696),
				SoleEarnerCredit:        true,
				ChildSupportCredit:      true,
			},
			expected: decimal.NewFromInt(2157), // 463 + 696 + 572 + 426
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.CreditTotal(tt.credits)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestApplyCreditsFlooredAtZero(t *testing.T) {
	calc := NewCreditsCalculator(config2024(t))

	got := calc.ApplyCredits(decimal.NewFromInt(500), decimal.NewFromInt(1035))
	assert.True(t, got.IsZero(), "credits never turn the progressive tax negative")

	got = calc.ApplyCredits(decimal.NewFromInt(2000), decimal.NewFromInt(463))
	assert.True(t, decimal.NewFromInt(1537).Equal(got))
}

func TestSpecialPaymentsTax(t *testing.T) {
	calc := NewCreditsCalculator(config2024(t))

	tests := []struct {
		name        string
		gross       decimal.Decimal
		specialSS   decimal.Decimal
		expectedNet decimal.Decimal
		expectedTax decimal.Decimal
	}{
		{
			name:        "no special payments",
			gross:       decimal.Zero,
			specialSS:   decimal.Zero,
			expectedNet: decimal.Zero,
			expectedTax: decimal.Zero,
		},
		{
			name:        "net below the tax-free threshold",
			gross:       decimal.NewFromInt(600),
			specialSS:   decimal.Zero,
			expectedNet: decimal.NewFromInt(600),
			expectedTax: decimal.Zero,
		},
		{
			name:        "net exactly at the threshold",
			gross:       decimal.NewFromInt(620),
			specialSS:   decimal.Zero,
			expectedNet: decimal.NewFromInt(620),
			expectedTax: decimal.Zero,
		},
		{
			name:        "gross 2000 without contributions",
			gross:       decimal.NewFromInt(2000),
			specialSS:   decimal.Zero,
			expectedNet: decimal.NewFromInt(2000),
			expectedTax: decimal.RequireFromString("82.80"), // (2000-620)*0.06
		},
		{
			name:        "contributions reduce the net before the threshold test",
			gross:       decimal.NewFromInt(2000),
			specialSS:   decimal.RequireFromString("341.40"),
			expectedNet: decimal.RequireFromString("1658.60"),
			expectedTax: decimal.RequireFromString("62.32"), // (1658.60-620)*0.06
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, tax := calc.SpecialPaymentsTax(tt.gross, tt.specialSS)
			assert.True(t, tt.expectedNet.Equal(net), "net: expected %s, got %s", tt.expectedNet, net)
			assert.True(t, tt.expectedTax.Equal(tax), "tax: expected %s, got %s", tt.expectedTax, tax)
		})
	}
}
