package output

import (
	"bytes"
	"fmt"

	"github.com/praxo/tax-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.ComprehensiveTaxResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "TAX SUMMARY %d\n", result.TaxYear)
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Total Gross Income:   %s\n", FormatCurrency(result.TotalGrossIncome))
	fmt.Fprintf(&buf, "Social Security:      %s\n", FormatCurrency(result.TotalSocialSecurity))
	fmt.Fprintf(&buf, "Income Tax:           %s\n", FormatCurrency(result.TotalIncomeTax))
	if result.AerztekammerBeitrag.IsPositive() {
		fmt.Fprintf(&buf, "Chamber Fee:          %s\n", FormatCurrency(result.AerztekammerBeitrag))
	}
	if result.VAT.IsPositive() {
		fmt.Fprintf(&buf, "VAT:                  %s\n", FormatCurrency(result.VAT))
	}
	fmt.Fprintf(&buf, "Total Direct Burden:  %s (%s)\n", FormatCurrency(result.TotalDirectBurden), FormatPercentage(result.BurdenPercentage))
	fmt.Fprintf(&buf, "Net Income:           %s\n", FormatCurrency(result.NetIncome))
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Effective Rate: %s  Marginal Rate: %s\n", FormatPercentage(result.EffectiveTaxRate), FormatPercentage(result.MarginalTaxRate))
	if !result.TaxLiability.IsZero() {
		label := "Additional payment due"
		amount := result.TaxLiability
		if amount.IsNegative() {
			label = "Expected refund"
			amount = amount.Neg()
		}
		fmt.Fprintf(&buf, "%s: %s\n", label, FormatCurrency(amount))
	}
	return buf.Bytes(), nil
}
