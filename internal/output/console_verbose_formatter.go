package output

import (
	"bytes"
	"fmt"

	"github.com/praxo/tax-calculator/internal/domain"
)

// ConsoleVerboseFormatter renders every calculation stage, including the
// per-bracket tax breakdown and the social security component split.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (c ConsoleVerboseFormatter) Format(result *domain.ComprehensiveTaxResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "COMPREHENSIVE TAX CALCULATION %d\n", result.TaxYear)
	fmt.Fprintln(&buf, "========================================")

	fmt.Fprintln(&buf, "\nINCOME")
	if result.EmploymentGross.IsPositive() || result.SpecialPaymentsGross.IsPositive() {
		fmt.Fprintf(&buf, "  Employment gross:        %s\n", FormatCurrency(result.EmploymentGross))
		fmt.Fprintf(&buf, "  Special payments gross:  %s\n", FormatCurrency(result.SpecialPaymentsGross))
	}
	if result.SelfEmploymentRevenue.IsPositive() || result.SelfEmploymentProfit.IsPositive() {
		fmt.Fprintf(&buf, "  Practice revenue:        %s\n", FormatCurrency(result.SelfEmploymentRevenue))
		fmt.Fprintf(&buf, "  Practice expenses:       %s\n", FormatCurrency(result.SelfEmploymentExpenses))
		fmt.Fprintf(&buf, "  Practice profit:         %s\n", FormatCurrency(result.SelfEmploymentProfit))
	}
	fmt.Fprintf(&buf, "  Total gross income:      %s\n", FormatCurrency(result.TotalGrossIncome))

	fmt.Fprintln(&buf, "\nSOCIAL SECURITY")
	if result.EmployeeSSTotal.IsPositive() {
		fmt.Fprintf(&buf, "  Employee total:          %s (regular %s, special %s)\n",
			FormatCurrency(result.EmployeeSSTotal), FormatCurrency(result.EmployeeSSRegular), FormatCurrency(result.EmployeeSSSpecial))
		bd := result.EmployeeSSBreakdown
		fmt.Fprintf(&buf, "    Pension %s  Health %s  Unemployment %s  Accident %s\n",
			FormatCurrency(bd.Pension), FormatCurrency(bd.Health), FormatCurrency(bd.Unemployment), FormatCurrency(bd.Accident))
	}
	if result.SelfEmployedSSTotal.IsPositive() {
		det := result.SelfEmployedSSDetail
		fmt.Fprintf(&buf, "  Self-employed total:     %s (base %s)\n", FormatCurrency(result.SelfEmployedSSTotal), FormatCurrency(det.AssessmentBase))
		fmt.Fprintf(&buf, "    Pension %s  Health %s  Accident %s\n",
			FormatCurrency(det.Pension), FormatCurrency(det.Health), FormatCurrency(det.Accident))
	}
	fmt.Fprintf(&buf, "  Combined:                %s\n", FormatCurrency(result.TotalSocialSecurity))

	fmt.Fprintln(&buf, "\nALLOWANCES & DEDUCTIONS")
	fmt.Fprintf(&buf, "  Gewinnfreibetrag:        %s\n", FormatCurrency(result.Gewinnfreibetrag))
	fmt.Fprintf(&buf, "  Home office allowance:   %s\n", FormatCurrency(result.HomeOfficeAllowance))
	fmt.Fprintf(&buf, "  Standard allowance:      %s\n", FormatCurrency(result.StandardAllowance))
	fmt.Fprintf(&buf, "  Total deductions:        %s\n", FormatCurrency(result.TotalDeductions))
	fmt.Fprintf(&buf, "  Taxable employment:      %s\n", FormatCurrency(result.TaxableEmployment))
	fmt.Fprintf(&buf, "  Taxable self-employment: %s\n", FormatCurrency(result.TaxableSelfEmployment))
	fmt.Fprintf(&buf, "  Final taxable income:    %s\n", FormatCurrency(result.FinalTaxableIncome))

	fmt.Fprintln(&buf, "\nINCOME TAX")
	for _, row := range result.BracketBreakdown {
		to := "∞"
		if !row.To.IsZero() {
			to = row.To.StringFixed(0)
		}
		fmt.Fprintf(&buf, "  %s - %s @ %s: %s on %s\n",
			row.From.StringFixed(0), to, FormatPercentage(row.Rate.Mul(hundred)), FormatCurrency(row.Tax), FormatCurrency(row.TaxedAmount))
	}
	fmt.Fprintf(&buf, "  Bracket tax:             %s\n", FormatCurrency(result.BracketTax))
	fmt.Fprintf(&buf, "  Credits applied:         %s\n", FormatCurrency(result.CreditsApplied))
	fmt.Fprintf(&buf, "  Special payments tax:    %s (net %s)\n", FormatCurrency(result.SpecialPaymentsTax), FormatCurrency(result.SpecialPaymentsNet))
	fmt.Fprintf(&buf, "  Total income tax:        %s\n", FormatCurrency(result.TotalIncomeTax))

	fmt.Fprintln(&buf, "\nRESULT")
	if result.AerztekammerBeitrag.IsPositive() {
		fmt.Fprintf(&buf, "  Chamber fee:             %s\n", FormatCurrency(result.AerztekammerBeitrag))
	}
	if result.VAT.IsPositive() {
		fmt.Fprintf(&buf, "  VAT:                     %s\n", FormatCurrency(result.VAT))
	}
	fmt.Fprintf(&buf, "  Total direct burden:     %s (%s)\n", FormatCurrency(result.TotalDirectBurden), FormatPercentage(result.BurdenPercentage))
	fmt.Fprintf(&buf, "  Net income:              %s\n", FormatCurrency(result.NetIncome))
	fmt.Fprintf(&buf, "  Effective rate:          %s\n", FormatPercentage(result.EffectiveTaxRate))
	fmt.Fprintf(&buf, "  Marginal rate:           %s\n", FormatPercentage(result.MarginalTaxRate))
	fmt.Fprintf(&buf, "  Tax liability:           %s\n", FormatCurrency(result.TaxLiability))

	return buf.Bytes(), nil
}
