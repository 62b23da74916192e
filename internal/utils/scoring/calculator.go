package scoring

import (
	"math"

	"github.com/SscSPs/referral_pipeline/internal/core/domain"
)

// DefaultInterestRatePercent is used when no interest rate has been configured.
const DefaultInterestRatePercent = 8.5

const (
	strongICR       = 2.0
	criticalICR     = 1.5
	lowLVRPercent   = 65.0
	upperLVRPercent = 80.0
)

// ValidInterestRate reports whether rate is usable as an interest rate percentage.
// NaN and infinities would silently drive ICR to 0.
func ValidInterestRate(rate float64) bool {
	return rate >= 0 && !math.IsInf(rate, 0) && !math.IsNaN(rate)
}

// Inputs are the scoring inputs as floats. Absent values are zero.
type Inputs struct {
	LoanAmount            float64
	PropertyValue         float64
	NetProfit             float64
	Amortisation          float64
	Depreciation          float64
	ExistingInterestCosts float64
	RentalExpense         float64
	ProposedRentalIncome  float64
	Flags                 []domain.RiskAnswer
	InterestRatePercent   float64
}

// FromOpportunity builds calculator inputs from an opportunity's stored fields.
func FromOpportunity(f domain.FinancialInputs, flags domain.RiskFlags, interestRatePercent float64) Inputs {
	return Inputs{
		LoanAmount:            f.LoanAmount.InexactFloat64(),
		PropertyValue:         f.PropertyValue.InexactFloat64(),
		NetProfit:             f.NetProfit.InexactFloat64(),
		Amortisation:          f.Amortisation.InexactFloat64(),
		Depreciation:          f.Depreciation.InexactFloat64(),
		ExistingInterestCosts: f.ExistingInterestCosts.InexactFloat64(),
		RentalExpense:         f.RentalExpense.InexactFloat64(),
		ProposedRentalIncome:  f.ProposedRentalIncome.InexactFloat64(),
		Flags:                 flags.Answers(),
		InterestRatePercent:   interestRatePercent,
	}
}

// LVR is the loan amount as a percentage of the property value, or 0 with no property value.
func LVR(loanAmount, propertyValue float64) float64 {
	if propertyValue > 0 {
		return (loanAmount / propertyValue) * 100
	}
	return 0
}

// ICR is income available for servicing over total interest, or 0 with no interest.
func ICR(in Inputs) float64 {
	totalIncomeServicing := in.NetProfit + in.Amortisation + in.Depreciation +
		in.ExistingInterestCosts + in.RentalExpense + in.ProposedRentalIncome
	proposedInterestCost := in.LoanAmount * (in.InterestRatePercent / 100)
	totalInterest := in.ExistingInterestCosts + proposedInterestCost
	if totalInterest > 0 {
		return totalIncomeServicing / totalInterest
	}
	return 0
}

// Compute returns the ICR, LVR and outcome band for the inputs. It has no side effects.
func Compute(in Inputs) domain.Score {
	icr := ICR(in)
	lvr := LVR(in.LoanAmount, in.PropertyValue)

	st := bandState{icr: icr, lvr: lvr}
	for _, a := range in.Flags {
		switch a {
		case domain.AnswerYes:
			st.yes++
		case domain.AnswerNo:
			st.no++
		}
	}
	st.total = len(in.Flags)

	return domain.Score{
		ICR:          icr,
		LVR:          lvr,
		OutcomeLevel: band(st),
	}
}

// bandState is what the banding rules look at.
type bandState struct {
	icr     float64
	lvr     float64
	yes     int
	no      int
	total   int
	outcome domain.OutcomeLevel
}

// bandRule forces outcome when applies holds for the state built so far.
type bandRule struct {
	name    string
	applies func(s bandState) bool
	outcome domain.OutcomeLevel
}

// bandRules run in order and later rules override earlier ones.
var bandRules = []bandRule{
	{
		name:    "strong icr, low lvr",
		applies: func(s bandState) bool { return s.icr >= strongICR && s.lvr <= lowLVRPercent },
		outcome: domain.OutcomeGreen,
	},
	{
		name:    "strong icr, high lvr",
		applies: func(s bandState) bool { return s.icr >= strongICR && s.lvr > lowLVRPercent },
		outcome: domain.OutcomeYellow,
	},
	{
		name:    "weak icr, moderate lvr",
		applies: func(s bandState) bool { return s.icr < strongICR && s.lvr <= upperLVRPercent },
		outcome: domain.OutcomeYellow,
	},
	{
		name:    "weak icr, high lvr",
		applies: func(s bandState) bool { return s.icr < strongICR && s.lvr > upperLVRPercent },
		outcome: domain.OutcomeRed,
	},
	{
		name: "every risk question answered no",
		applies: func(s bandState) bool {
			return s.total > 0 && s.no == s.total && s.outcome != domain.OutcomeGreen
		},
		outcome: domain.OutcomeGreen,
	},
	{
		name: "no risk question answered yes",
		applies: func(s bandState) bool {
			return s.no >= 1 && s.yes == 0 && s.outcome != domain.OutcomeGreen
		},
		outcome: domain.OutcomeGreen,
	},
	{
		name:    "a risk question answered yes",
		applies: func(s bandState) bool { return s.yes >= 1 },
		outcome: domain.OutcomeYellow,
	},
	{
		name:    "critical icr",
		applies: func(s bandState) bool { return s.icr > 0 && s.icr < criticalICR },
		outcome: domain.OutcomeRed,
	},
}

// band evaluates the banding rules over a prepared state.
func band(s bandState) domain.OutcomeLevel {
	s.outcome = domain.OutcomeUnset
	for _, r := range bandRules {
		if r.applies(s) {
			s.outcome = r.outcome
		}
	}
	return s.outcome
}
