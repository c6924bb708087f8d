package calculation

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/praxo/tax-calculator/internal/domain"
	money "github.com/praxo/tax-calculator/pkg/decimal"
)

// QuarterlyPayments splits an annual income tax into four equal advance
// payments. Each quarter is cent-rounded; the total reports the annual
// amount unchanged.
func QuarterlyPayments(annualIncomeTax decimal.Decimal) domain.QuarterlySchedule {
	quarter := money.RoundCents(annualIncomeTax.Div(decimal.NewFromInt(4)))
	return domain.QuarterlySchedule{
		Q1:    quarter,
		Q2:    quarter,
		Q3:    quarter,
		Q4:    quarter,
		Total: money.RoundCents(annualIncomeTax),
	}
}

// tipRule is one independent predicate-to-message rule. Rules are evaluated
// in order against the result record; a nil return means the rule does not
// fire. Adding or removing a rule never touches the others.
type tipRule struct {
	category string
	evaluate func(*domain.ComprehensiveTaxResult, *TaxYearConfig) *domain.Tip
}

var tipRules = []tipRule{
	{
		category: "tax_rate",
		evaluate: func(r *domain.ComprehensiveTaxResult, _ *TaxYearConfig) *domain.Tip {
			if r.EffectiveTaxRate.GreaterThan(decimal.NewFromInt(45)) {
				return &domain.Tip{
					Type:    domain.TipWarning,
					Message: fmt.Sprintf("Effective tax rate is %s%% - review income splitting and deductible practice investments.", r.EffectiveTaxRate.StringFixed(2)),
				}
			}
			return nil
		},
	},
	{
		category: "gewinnfreibetrag",
		evaluate: func(r *domain.ComprehensiveTaxResult, cfg *TaxYearConfig) *domain.Tip {
			if r.SelfEmploymentProfit.IsPositive() && r.Gewinnfreibetrag.GreaterThanOrEqual(cfg.GewinnfreibetragLimit) {
				return &domain.Tip{
					Type:    domain.TipInfo,
					Message: "Profit allowance has reached its statutory cap; further profit no longer increases it.",
				}
			}
			return nil
		},
	},
	{
		category: "home_office",
		evaluate: func(r *domain.ComprehensiveTaxResult, cfg *TaxYearConfig) *domain.Tip {
			if r.EmploymentGross.IsPositive() && r.HomeOfficeAllowance.IsZero() {
				// Full-year home office allowance valued at the marginal rate.
				savings := money.RoundCents(cfg.HomeOfficeMonthlyMax.Mul(decimal.NewFromInt(12)).
					Mul(r.MarginalTaxRate).Div(decimal.NewFromInt(100)))
				return &domain.Tip{
					Type:             domain.TipAction,
					Message:          "No home office days recorded - claiming the home office allowance reduces taxable employment income.",
					EstimatedSavings: &savings,
				}
			}
			return nil
		},
	},
	{
		category: "social_security",
		evaluate: func(r *domain.ComprehensiveTaxResult, cfg *TaxYearConfig) *domain.Tip {
			if r.SelfEmploymentProfit.IsPositive() && r.SelfEmployedSSDetail.AssessmentBase.GreaterThanOrEqual(cfg.MaxAssessmentBase) {
				return &domain.Tip{
					Type:    domain.TipInfo,
					Message: "Self-employed assessment base is capped at the statutory maximum; additional profit carries no extra contributions.",
				}
			}
			return nil
		},
	},
	{
		category: "net_income",
		evaluate: func(r *domain.ComprehensiveTaxResult, _ *TaxYearConfig) *domain.Tip {
			switch {
			case r.NetIncome.GreaterThan(decimal.NewFromInt(100000)):
				return &domain.Tip{
					Type:    domain.TipInfo,
					Message: "Net income above €100,000 - consider quarterly prepayments to avoid a large final assessment.",
				}
			case r.TotalGrossIncome.IsPositive() && r.NetIncome.LessThan(decimal.NewFromInt(20000)):
				return &domain.Tip{
					Type:    domain.TipWarning,
					Message: "Net income below €20,000 - minimum contribution bases may dominate the burden; review the expense structure.",
				}
			}
			return nil
		},
	},
}

// OptimizationTips derives the advisory messages that apply to a result.
// Evaluation is pure; tips carry no side effects.
func (e *TaxEngine) OptimizationTips(result *domain.ComprehensiveTaxResult) []domain.Tip {
	cfg := e.Provider.ForYear(result.TaxYear)
	return lo.FilterMap(tipRules, func(rule tipRule, _ int) (domain.Tip, bool) {
		tip := rule.evaluate(result, cfg)
		if tip == nil {
			return domain.Tip{}, false
		}
		tip.Category = rule.category
		return *tip, true
	})
}

// MonthlyProgress re-invokes the engine on year-to-date figures and
// extrapolates the year-end burden linearly over the elapsed months.
func (e *TaxEngine) MonthlyProgress(ytdRevenue, ytdExpenses, ytdEmploymentIncome decimal.Decimal, month int) (*domain.MonthlyProgress, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month %d is out of range", month)
	}

	input := &domain.ComprehensiveTaxInput{}
	if ytdEmploymentIncome.IsPositive() {
		input.Employment = &domain.EmploymentIncome{GrossSalary: ytdEmploymentIncome}
	}
	if ytdRevenue.IsPositive() || ytdExpenses.IsPositive() {
		input.SelfEmployment = &domain.SelfEmploymentIncome{
			TotalRevenue:     ytdRevenue,
			BusinessExpenses: ytdExpenses,
		}
	}

	result, err := e.Calculate(input)
	if err != nil {
		return nil, err
	}

	months := decimal.NewFromInt(int64(month))
	twelve := decimal.NewFromInt(12)
	projectedBurden := money.RoundCents(result.TotalDirectBurden.Div(months).Mul(twelve))
	projectedNet := money.RoundCents(result.NetIncome.Div(months).Mul(twelve))

	return &domain.MonthlyProgress{
		Month:               month,
		YTDResult:           result,
		YTDBurden:           result.TotalDirectBurden,
		ProjectedYearBurden: projectedBurden,
		ProjectedNetIncome:  projectedNet,
	}, nil
}
