package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/praxo/tax-calculator/internal/calculation"
)

var hundred = decimal.NewFromInt(100)

// Prints the built-in statutory tables for a quick visual check after a
// yearly parameter update.
func main() {
	provider := calculation.NewConfigProvider()
	for _, year := range provider.Years() {
		cfg := provider.ForYear(year)
		fmt.Printf("Tax year %d\n", year)
		lower := "0"
		for _, b := range cfg.Brackets {
			upper := "∞"
			if !b.Unbounded() {
				upper = b.UpperLimit.StringFixed(0)
			}
			fmt.Printf("  %10s - %10s  %s%%\n", lower, upper, b.Rate.Mul(hundred).StringFixed(0))
			if !b.Unbounded() {
				lower = b.UpperLimit.StringFixed(0)
			}
		}
		fmt.Printf("  max assessment base: %s  min: %s\n\n",
			cfg.MaxAssessmentBase.StringFixed(2), cfg.MinAssessmentBase.StringFixed(2))
	}
}
