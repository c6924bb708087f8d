package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/praxo/tax-calculator/internal/domain"
	money "github.com/praxo/tax-calculator/pkg/decimal"
)

// employeeSSResult carries the employee contribution totals plus the
// informational component breakdown.
type employeeSSResult struct {
	Regular   decimal.Decimal
	Special   decimal.Decimal
	Total     decimal.Decimal
	Breakdown domain.EmployeeSSBreakdown
}

// SocialSecurityCalculator computes employee (ASVG) and self-employed (SVS)
// contributions for one tax year.
type SocialSecurityCalculator struct {
	Config *TaxYearConfig
}

// NewSocialSecurityCalculator creates a calculator bound to a year config.
func NewSocialSecurityCalculator(cfg *TaxYearConfig) *SocialSecurityCalculator {
	return &SocialSecurityCalculator{Config: cfg}
}

// CalculateEmployee computes the employee contribution. The regular salary
// assessment is capped at the maximum assessment base; the special-payments
// assessment gets whatever headroom remains under the same cap.
//
// The component breakdown is intentionally computed from the UNCAPPED regular
// salary, so above the cap it does not sum to the reported total. Downstream
// consumers rely on this payslip-style split; keep it as is.
func (sc *SocialSecurityCalculator) CalculateEmployee(grossSalary, specialGross decimal.Decimal) employeeSSResult {
	cfg := sc.Config

	cappedRegular := decimal.Min(grossSalary, cfg.MaxAssessmentBase)
	headroom := money.FloorZero(cfg.MaxAssessmentBase.Sub(cappedRegular))
	cappedSpecial := decimal.Min(specialGross, headroom)

	regular := money.RoundCents(cappedRegular.Mul(cfg.EmployeeRateRegular))
	special := money.RoundCents(cappedSpecial.Mul(cfg.EmployeeRateSpecial))

	return employeeSSResult{
		Regular: regular,
		Special: special,
		Total:   money.RoundCents(regular.Add(special)),
		Breakdown: domain.EmployeeSSBreakdown{
			Pension:      money.RoundCents(grossSalary.Mul(cfg.EmployeePensionRate)),
			Health:       money.RoundCents(grossSalary.Mul(cfg.EmployeeHealthRate)),
			Unemployment: money.RoundCents(grossSalary.Mul(cfg.EmployeeUnemploymentRate)),
			Accident:     money.RoundCents(grossSalary.Mul(cfg.EmployeeAccidentRate)),
		},
	}
}

// CalculateSelfEmployed computes the SVS contribution on a profit assessment
// base clamped into [MinAssessmentBase, MaxAssessmentBase]. Self-employed
// contributors carry no unemployment component.
func (sc *SocialSecurityCalculator) CalculateSelfEmployed(profit decimal.Decimal) (decimal.Decimal, domain.SelfEmployedSSBreakdown) {
	cfg := sc.Config

	base := money.Clamp(profit, cfg.MinAssessmentBase, cfg.MaxAssessmentBase)

	pension := money.RoundCents(base.Mul(cfg.SelfEmployedPensionRate))
	health := money.RoundCents(base.Mul(cfg.SelfEmployedHealthRate))
	accident := money.RoundCents(base.Mul(cfg.SelfEmployedAccidentRate))
	total := money.RoundCents(pension.Add(health).Add(accident))

	return total, domain.SelfEmployedSSBreakdown{
		AssessmentBase: base,
		Pension:        pension,
		Health:         health,
		Accident:       accident,
	}
}
