package output

import (
	"encoding/csv"
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxo/tax-calculator/internal/domain"
)

func sampleResult() *domain.ComprehensiveTaxResult {
	return &domain.ComprehensiveTaxResult{
		TaxYear:             2024,
		EmploymentGross:     decimal.NewFromInt(60000),
		TotalGrossIncome:    decimal.NewFromInt(60000),
		EmployeeSSRegular:   decimal.RequireFromString("10842.00"),
		EmployeeSSTotal:     decimal.RequireFromString("10842.00"),
		TotalSocialSecurity: decimal.RequireFromString("10842.00"),
		StandardAllowance:   decimal.NewFromInt(132),
		TaxableEmployment:   decimal.RequireFromString("49026.00"),
		FinalTaxableIncome:  decimal.RequireFromString("49026.00"),
		BracketTax:          decimal.RequireFromString("11514.10"),
		BracketBreakdown: []domain.BracketTax{
			{From: decimal.Zero, To: decimal.NewFromInt(12816), Rate: decimal.Zero, TaxedAmount: decimal.NewFromInt(12816), Tax: decimal.Zero},
			{From: decimal.NewFromInt(12816), To: decimal.NewFromInt(20818), Rate: decimal.RequireFromString("0.2"), TaxedAmount: decimal.NewFromInt(8002), Tax: decimal.RequireFromString("1600.40")},
			{From: decimal.NewFromInt(20818), To: decimal.NewFromInt(34513), Rate: decimal.RequireFromString("0.3"), TaxedAmount: decimal.NewFromInt(13695), Tax: decimal.RequireFromString("4108.50")},
			{From: decimal.NewFromInt(34513), To: decimal.NewFromInt(66612), Rate: decimal.RequireFromString("0.4"), TaxedAmount: decimal.NewFromInt(14513), Tax: decimal.RequireFromString("5805.20")},
		},
		TotalIncomeTax:    decimal.RequireFromString("11514.10"),
		TotalDirectBurden: decimal.RequireFromString("22356.10"),
		NetIncome:         decimal.RequireFromString("37643.90"),
		BurdenPercentage:  decimal.RequireFromString("37.26"),
		EffectiveTaxRate:  decimal.RequireFromString("19.19"),
		MarginalTaxRate:   decimal.NewFromInt(40),
		TaxLiability:      decimal.RequireFromString("-485.90"),
	}
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"console", "console"},
		{"console-verbose", "console-verbose"},
		{"csv", "csv"},
		{"json", "json"},
		{"verbose", "console-verbose"},
		{"full", "console-verbose"},
		{"summary", "console"},
		{"console-lite", "console"},
		{"json-pretty", "json"},
		{"  JSON  ", "json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.expected, f.Name())
		})
	}

	assert.Nil(t, GetFormatterByName("xml"))
}

func TestNormalizeFormatName(t *testing.T) {
	assert.Equal(t, "console-verbose", NormalizeFormatName("Verbose"))
	assert.Equal(t, "console", NormalizeFormatName(" summary "))
	assert.Equal(t, "csv", NormalizeFormatName("csv"))
	assert.Equal(t, "xml", NormalizeFormatName("XML"), "unknown names pass through lowered")
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "console-verbose", "csv", "json"}, AvailableFormatterNames())
}

func TestConsoleFormatter(t *testing.T) {
	data, err := ConsoleFormatter{}.Format(sampleResult())
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "TAX SUMMARY 2024")
	assert.Contains(t, out, "€60000.00")
	assert.Contains(t, out, "€11514.10")
	assert.Contains(t, out, "€37643.90")
	assert.Contains(t, out, "37.26%")
	assert.Contains(t, out, "Expected refund: €485.90")
	assert.NotContains(t, out, "Chamber Fee", "suppressed when the fee is zero")
	assert.NotContains(t, out, "VAT", "suppressed when the amount is zero")
}

func TestConsoleFormatterPaymentDue(t *testing.T) {
	result := sampleResult()
	result.TaxLiability = decimal.RequireFromString("3414.10")

	data, err := ConsoleFormatter{}.Format(result)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Additional payment due: €3414.10")
}

func TestConsoleVerboseFormatter(t *testing.T) {
	data, err := ConsoleVerboseFormatter{}.Format(sampleResult())
	require.NoError(t, err)

	out := string(data)
	for _, section := range []string{"INCOME", "SOCIAL SECURITY", "ALLOWANCES & DEDUCTIONS", "INCOME TAX", "RESULT"} {
		assert.Contains(t, out, section)
	}
	assert.Contains(t, out, "12816 - 20818 @ 20.00%: €1600.40 on €8002.00")
	assert.Contains(t, out, "Final taxable income:    €49026.00")
	assert.Contains(t, out, "Marginal rate:           40.00%")
}

func TestConsoleVerboseFormatterUnboundedBracketRow(t *testing.T) {
	result := sampleResult()
	result.BracketBreakdown = append(result.BracketBreakdown, domain.BracketTax{
		From:        decimal.NewFromInt(1000000),
		To:          decimal.Zero,
		Rate:        decimal.RequireFromString("0.55"),
		TaxedAmount: decimal.NewFromInt(200000),
		Tax:         decimal.NewFromInt(110000),
	})

	data, err := ConsoleVerboseFormatter{}.Format(result)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1000000 - ∞ @ 55.00%")
}

func TestCSVFormatter(t *testing.T) {
	data, err := CSVFormatter{}.Format(sampleResult())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, []string{"Field", "Value"}, records[0])

	values := make(map[string]string, len(records)-1)
	for _, record := range records[1:] {
		require.Len(t, record, 2)
		values[record[0]] = record[1]
	}
	assert.Equal(t, "2024", values["TaxYear"])
	assert.Equal(t, "60000.00", values["TotalGrossIncome"])
	assert.Equal(t, "11514.10", values["TotalIncomeTax"])
	assert.Equal(t, "37643.90", values["NetIncome"])
	assert.Equal(t, "-485.90", values["TaxLiability"])
}

func TestJSONFormatter(t *testing.T) {
	data, err := JSONFormatter{}.Format(sampleResult())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(2024), decoded["tax_year"])
	assert.Equal(t, "37643.9", decoded["net_income"])
	assert.Equal(t, "40", decoded["marginal_tax_rate"])

	breakdown, ok := decoded["bracket_breakdown"].([]any)
	require.True(t, ok)
	assert.Len(t, breakdown, 4)
}

func TestWriteFormatted(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	filename, err := WriteFormatted(CSVFormatter{}, sampleResult(), "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "tax_report_"))
	assert.True(t, strings.HasSuffix(filename, ".csv"))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), "TotalGrossIncome")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "€1234.50", FormatCurrency(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "€0.00", FormatCurrency(decimal.Zero))
	assert.Equal(t, "19.19%", FormatPercentage(decimal.RequireFromString("19.19")))
}
