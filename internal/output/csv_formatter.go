package output

import (
	"bytes"
	"encoding/csv"

	"github.com/praxo/tax-calculator/internal/domain"
)

// CSVFormatter exports the result record as a two-column field/value CSV,
// one row per figure, suitable for spreadsheet import.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.ComprehensiveTaxResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Field", "Value"}); err != nil {
		return nil, err
	}
	rows := [][]string{
		{"TaxYear", intToString(result.TaxYear)},
		{"EmploymentGross", result.EmploymentGross.StringFixed(2)},
		{"SpecialPaymentsGross", result.SpecialPaymentsGross.StringFixed(2)},
		{"SelfEmploymentRevenue", result.SelfEmploymentRevenue.StringFixed(2)},
		{"SelfEmploymentExpenses", result.SelfEmploymentExpenses.StringFixed(2)},
		{"SelfEmploymentProfit", result.SelfEmploymentProfit.StringFixed(2)},
		{"TotalGrossIncome", result.TotalGrossIncome.StringFixed(2)},
		{"EmployeeSSTotal", result.EmployeeSSTotal.StringFixed(2)},
		{"SelfEmployedSSTotal", result.SelfEmployedSSTotal.StringFixed(2)},
		{"TotalSocialSecurity", result.TotalSocialSecurity.StringFixed(2)},
		{"Gewinnfreibetrag", result.Gewinnfreibetrag.StringFixed(2)},
		{"HomeOfficeAllowance", result.HomeOfficeAllowance.StringFixed(2)},
		{"StandardAllowance", result.StandardAllowance.StringFixed(2)},
		{"TotalDeductions", result.TotalDeductions.StringFixed(2)},
		{"FinalTaxableIncome", result.FinalTaxableIncome.StringFixed(2)},
		{"BracketTax", result.BracketTax.StringFixed(2)},
		{"CreditsApplied", result.CreditsApplied.StringFixed(2)},
		{"SpecialPaymentsTax", result.SpecialPaymentsTax.StringFixed(2)},
		{"TotalIncomeTax", result.TotalIncomeTax.StringFixed(2)},
		{"AerztekammerBeitrag", result.AerztekammerBeitrag.StringFixed(2)},
		{"VAT", result.VAT.StringFixed(2)},
		{"TotalDirectBurden", result.TotalDirectBurden.StringFixed(2)},
		{"NetIncome", result.NetIncome.StringFixed(2)},
		{"BurdenPercentage", result.BurdenPercentage.StringFixed(2)},
		{"EffectiveTaxRate", result.EffectiveTaxRate.StringFixed(2)},
		{"MarginalTaxRate", result.MarginalTaxRate.StringFixed(2)},
		{"TaxLiability", result.TaxLiability.StringFixed(2)},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
