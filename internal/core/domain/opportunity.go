package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RiskAnswer is a yes/no answer to a qualitative risk question. The empty value means unanswered.
type RiskAnswer string

const (
	AnswerUnset RiskAnswer = ""
	AnswerYes   RiskAnswer = "yes"
	AnswerNo    RiskAnswer = "no"
)

// Valid reports whether a is one of the recognised answers.
func (a RiskAnswer) Valid() bool {
	return a == AnswerUnset || a == AnswerYes || a == AnswerNo
}

// OutcomeLevel is the risk band produced by scoring.
type OutcomeLevel int

const (
	OutcomeUnset  OutcomeLevel = 0
	OutcomeGreen  OutcomeLevel = 1
	OutcomeYellow OutcomeLevel = 2
	OutcomeRed    OutcomeLevel = 3
)

func (l OutcomeLevel) String() string {
	switch l {
	case OutcomeGreen:
		return "green"
	case OutcomeYellow:
		return "yellow"
	case OutcomeRed:
		return "red"
	}
	return "unset"
}

// FinancialInputs are the monetary scoring inputs. Absent values are zero.
type FinancialInputs struct {
	LoanAmount            decimal.Decimal `json:"loanAmount"`
	PropertyValue         decimal.Decimal `json:"propertyValue"`
	NetProfit             decimal.Decimal `json:"netProfit"`
	Amortisation          decimal.Decimal `json:"amortisation"`
	Depreciation          decimal.Decimal `json:"depreciation"`
	ExistingInterestCosts decimal.Decimal `json:"existingInterestCosts"`
	RentalExpense         decimal.Decimal `json:"rentalExpense"`
	ProposedRentalIncome  decimal.Decimal `json:"proposedRentalIncome"`
}

// Equal compares by value, so 1.0 and 1 are equal.
func (f FinancialInputs) Equal(o FinancialInputs) bool {
	return f.LoanAmount.Equal(o.LoanAmount) &&
		f.PropertyValue.Equal(o.PropertyValue) &&
		f.NetProfit.Equal(o.NetProfit) &&
		f.Amortisation.Equal(o.Amortisation) &&
		f.Depreciation.Equal(o.Depreciation) &&
		f.ExistingInterestCosts.Equal(o.ExistingInterestCosts) &&
		f.RentalExpense.Equal(o.RentalExpense) &&
		f.ProposedRentalIncome.Equal(o.ProposedRentalIncome)
}

// IsZero reports whether no financial input has been provided.
func (f FinancialInputs) IsZero() bool {
	return f.Equal(FinancialInputs{})
}

// RiskFlags are the five qualitative risk questions.
type RiskFlags struct {
	ExistingLiabilities RiskAnswer `json:"existingLiabilities"`
	AdditionalSecurity  RiskAnswer `json:"additionalSecurity"`
	SMSFStructure       RiskAnswer `json:"smsfStructure"`
	ATOLiabilities      RiskAnswer `json:"atoLiabilities"`
	CreditIssues        RiskAnswer `json:"creditIssues"`
}

// Answers returns the flags in a fixed order.
func (r RiskFlags) Answers() []RiskAnswer {
	return []RiskAnswer{r.ExistingLiabilities, r.AdditionalSecurity, r.SMSFStructure, r.ATOLiabilities, r.CreditIssues}
}

// IsZero reports whether no question has been answered.
func (r RiskFlags) IsZero() bool {
	return r == RiskFlags{}
}

// Score is the derived output of the score calculator. It is never edited directly.
type Score struct {
	ICR          float64      `json:"icr"`
	LVR          float64      `json:"lvr"`
	OutcomeLevel OutcomeLevel `json:"outcomeLevel"`
}

// Opportunity is a loan referral tracked through the approval pipeline.
type Opportunity struct {
	ID                string `json:"id"`
	OpportunityNumber string `json:"opportunityId"` // Human readable, e.g. CF10020
	OrganizationID    string `json:"organizationId"`
	ClientID          string `json:"clientId"`
	Status            Status `json:"status"`
	FinancialInputs
	RiskFlags
	Score
	DeclinedReason          string     `json:"declinedReason"`
	CompletedDeclinedReason string     `json:"completedDeclinedReason"`
	WithdrawnReason         string     `json:"withdrawnReason"`
	IsUnqualified           bool       `json:"isUnqualified"`
	UnqualifiedReason       string     `json:"unqualifiedReason"`
	TargetSettlementDate    *time.Time `json:"targetSettlementDate"`
	DateSettled             *time.Time `json:"dateSettled"`
	AuditFields
}

// InCompletionStage reports whether the opportunity has left the decision group.
func (o *Opportunity) InCompletionStage() bool {
	switch o.Status {
	case StatusSettled, StatusWithdrawn:
		return true
	case StatusDeclined:
		return o.CompletedDeclinedReason != ""
	}
	return false
}

// TransitionState captures what the transition policy needs from the current record.
func (o *Opportunity) TransitionState() TransitionState {
	return TransitionState{
		Status:            o.Status,
		CompletedDeclined: o.Status == StatusDeclined && o.CompletedDeclinedReason != "",
	}
}

// ProgressPercent reports pipeline progress for the current status.
func (o *Opportunity) ProgressPercent() int {
	return ProgressPercent(o.Status, o.TransitionState().CompletedDeclined)
}

// Clone returns a deep copy suitable for use as a working copy.
func (o *Opportunity) Clone() *Opportunity {
	c := *o
	if o.TargetSettlementDate != nil {
		t := *o.TargetSettlementDate
		c.TargetSettlementDate = &t
	}
	if o.DateSettled != nil {
		t := *o.DateSettled
		c.DateSettled = &t
	}
	return &c
}

// OpportunityPatch is a partial update. Nil fields are left unchanged.
// There are deliberately no fields for the derived score.
type OpportunityPatch struct {
	Status *Status
	Reason *string // Supplied with Status when the transition needs one

	ClientID *string

	LoanAmount            *decimal.Decimal
	PropertyValue         *decimal.Decimal
	NetProfit             *decimal.Decimal
	Amortisation          *decimal.Decimal
	Depreciation          *decimal.Decimal
	ExistingInterestCosts *decimal.Decimal
	RentalExpense         *decimal.Decimal
	ProposedRentalIncome  *decimal.Decimal

	ExistingLiabilities *RiskAnswer
	AdditionalSecurity  *RiskAnswer
	SMSFStructure       *RiskAnswer
	ATOLiabilities      *RiskAnswer
	CreditIssues        *RiskAnswer

	IsUnqualified     *bool
	UnqualifiedReason *string

	TargetSettlementDate *time.Time
}

// ApplyFields copies the plain field values of the patch onto o.
// Status and qualification are handled by the transition policy, not here.
func (p OpportunityPatch) ApplyFields(o *Opportunity) {
	if p.ClientID != nil {
		o.ClientID = *p.ClientID
	}
	setDecimal(&o.LoanAmount, p.LoanAmount)
	setDecimal(&o.PropertyValue, p.PropertyValue)
	setDecimal(&o.NetProfit, p.NetProfit)
	setDecimal(&o.Amortisation, p.Amortisation)
	setDecimal(&o.Depreciation, p.Depreciation)
	setDecimal(&o.ExistingInterestCosts, p.ExistingInterestCosts)
	setDecimal(&o.RentalExpense, p.RentalExpense)
	setDecimal(&o.ProposedRentalIncome, p.ProposedRentalIncome)
	setAnswer(&o.ExistingLiabilities, p.ExistingLiabilities)
	setAnswer(&o.AdditionalSecurity, p.AdditionalSecurity)
	setAnswer(&o.SMSFStructure, p.SMSFStructure)
	setAnswer(&o.ATOLiabilities, p.ATOLiabilities)
	setAnswer(&o.CreditIssues, p.CreditIssues)
	if p.TargetSettlementDate != nil {
		t := *p.TargetSettlementDate
		o.TargetSettlementDate = &t
	}
}

func setDecimal(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = *v
	}
}

func setAnswer(dst *RiskAnswer, v *RiskAnswer) {
	if v != nil {
		*dst = *v
	}
}
