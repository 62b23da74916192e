package dto

import (
	"time"

	"github.com/SscSPs/referral_pipeline/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FinancialInputsRequest carries the optional monetary scoring inputs.
// Use pointers to distinguish between zero values and fields not provided.
type FinancialInputsRequest struct {
	LoanAmount            *decimal.Decimal `json:"loanAmount"`
	PropertyValue         *decimal.Decimal `json:"propertyValue"`
	NetProfit             *decimal.Decimal `json:"netProfit"`
	Amortisation          *decimal.Decimal `json:"amortisation"`
	Depreciation          *decimal.Decimal `json:"depreciation"`
	ExistingInterestCosts *decimal.Decimal `json:"existingInterestCosts"`
	RentalExpense         *decimal.Decimal `json:"rentalExpense"`
	ProposedRentalIncome  *decimal.Decimal `json:"proposedRentalIncome"`
}

// RiskFlagsRequest carries the optional yes/no risk answers.
type RiskFlagsRequest struct {
	ExistingLiabilities *domain.RiskAnswer `json:"existingLiabilities" binding:"omitempty,riskanswer"`
	AdditionalSecurity  *domain.RiskAnswer `json:"additionalSecurity" binding:"omitempty,riskanswer"`
	SMSFStructure       *domain.RiskAnswer `json:"smsfStructure" binding:"omitempty,riskanswer"`
	ATOLiabilities      *domain.RiskAnswer `json:"atoLiabilities" binding:"omitempty,riskanswer"`
	CreditIssues        *domain.RiskAnswer `json:"creditIssues" binding:"omitempty,riskanswer"`
}

// CreateOpportunityRequest defines the data needed to create a new opportunity.
type CreateOpportunityRequest struct {
	ClientID             string     `json:"clientId" binding:"required"`
	Status               string     `json:"status" binding:"omitempty,oneof=draft opportunity"` // Defaults to opportunity
	TargetSettlementDate *time.Time `json:"targetSettlementDate"`
	FinancialInputsRequest
	RiskFlagsRequest
}

// FinancialInputs returns the provided inputs with absent values as zero.
func (r FinancialInputsRequest) FinancialInputs() domain.FinancialInputs {
	return domain.FinancialInputs{
		LoanAmount:            valueOrZero(r.LoanAmount),
		PropertyValue:         valueOrZero(r.PropertyValue),
		NetProfit:             valueOrZero(r.NetProfit),
		Amortisation:          valueOrZero(r.Amortisation),
		Depreciation:          valueOrZero(r.Depreciation),
		ExistingInterestCosts: valueOrZero(r.ExistingInterestCosts),
		RentalExpense:         valueOrZero(r.RentalExpense),
		ProposedRentalIncome:  valueOrZero(r.ProposedRentalIncome),
	}
}

// RiskFlags returns the provided answers with absent values unanswered.
func (r RiskFlagsRequest) RiskFlags() domain.RiskFlags {
	return domain.RiskFlags{
		ExistingLiabilities: answerOrUnset(r.ExistingLiabilities),
		AdditionalSecurity:  answerOrUnset(r.AdditionalSecurity),
		SMSFStructure:       answerOrUnset(r.SMSFStructure),
		ATOLiabilities:      answerOrUnset(r.ATOLiabilities),
		CreditIssues:        answerOrUnset(r.CreditIssues),
	}
}

// UpdateOpportunityRequest defines the data allowed for patching an opportunity.
// Derived score fields are intentionally absent.
type UpdateOpportunityRequest struct {
	Status            *string    `json:"status"`
	Reason            *string    `json:"reason"` // Required when moving to declined, completed_declined or withdrawn
	ClientID          *string    `json:"clientId" binding:"omitempty,min=1"`
	IsUnqualified     *bool      `json:"isUnqualified"`
	UnqualifiedReason *string    `json:"unqualifiedReason"`
	TargetSettlement  *time.Time `json:"targetSettlementDate"`
	FinancialInputsRequest
	RiskFlagsRequest
}

// ToPatch converts the request into a domain patch. The status is parsed here so an
// unknown value is rejected before any state is loaded.
func (r UpdateOpportunityRequest) ToPatch() (domain.OpportunityPatch, error) {
	p := domain.OpportunityPatch{
		Reason:                r.Reason,
		ClientID:              r.ClientID,
		LoanAmount:            r.LoanAmount,
		PropertyValue:         r.PropertyValue,
		NetProfit:             r.NetProfit,
		Amortisation:          r.Amortisation,
		Depreciation:          r.Depreciation,
		ExistingInterestCosts: r.ExistingInterestCosts,
		RentalExpense:         r.RentalExpense,
		ProposedRentalIncome:  r.ProposedRentalIncome,
		ExistingLiabilities:   r.ExistingLiabilities,
		AdditionalSecurity:    r.AdditionalSecurity,
		SMSFStructure:         r.SMSFStructure,
		ATOLiabilities:        r.ATOLiabilities,
		CreditIssues:          r.CreditIssues,
		IsUnqualified:         r.IsUnqualified,
		UnqualifiedReason:     r.UnqualifiedReason,
		TargetSettlementDate:  r.TargetSettlement,
	}
	if r.Status != nil {
		status, err := domain.ParseStatus(*r.Status)
		if err != nil {
			return domain.OpportunityPatch{}, err
		}
		p.Status = &status
	}
	return p, nil
}

// OpportunityResponse defines the data returned for an opportunity.
type OpportunityResponse struct {
	ID                      string              `json:"id"`
	OpportunityNumber       string              `json:"opportunityId"`
	OrganizationID          string              `json:"organizationId"`
	ClientID                string              `json:"clientId"`
	Status                  domain.Status       `json:"status"`
	ProgressPercent         int                 `json:"progressPercent"`
	LoanAmount              decimal.Decimal     `json:"loanAmount"`
	PropertyValue           decimal.Decimal     `json:"propertyValue"`
	NetProfit               decimal.Decimal     `json:"netProfit"`
	Amortisation            decimal.Decimal     `json:"amortisation"`
	Depreciation            decimal.Decimal     `json:"depreciation"`
	ExistingInterestCosts   decimal.Decimal     `json:"existingInterestCosts"`
	RentalExpense           decimal.Decimal     `json:"rentalExpense"`
	ProposedRentalIncome    decimal.Decimal     `json:"proposedRentalIncome"`
	ExistingLiabilities     domain.RiskAnswer   `json:"existingLiabilities"`
	AdditionalSecurity      domain.RiskAnswer   `json:"additionalSecurity"`
	SMSFStructure           domain.RiskAnswer   `json:"smsfStructure"`
	ATOLiabilities          domain.RiskAnswer   `json:"atoLiabilities"`
	CreditIssues            domain.RiskAnswer   `json:"creditIssues"`
	ICR                     float64             `json:"icr"`
	LVR                     float64             `json:"lvr"`
	OutcomeLevel            domain.OutcomeLevel `json:"outcomeLevel"`
	Outcome                 string              `json:"outcome"` // green, yellow, red or unset
	DeclinedReason          string              `json:"declinedReason,omitempty"`
	CompletedDeclinedReason string              `json:"completedDeclinedReason,omitempty"`
	WithdrawnReason         string              `json:"withdrawnReason,omitempty"`
	IsUnqualified           bool                `json:"isUnqualified"`
	UnqualifiedReason       string              `json:"unqualifiedReason,omitempty"`
	TargetSettlementDate    *time.Time          `json:"targetSettlementDate"`
	DateSettled             *time.Time          `json:"dateSettled"`
	CreatedAt               time.Time           `json:"createdAt"`
	CreatedBy               string              `json:"createdBy"`
	LastUpdatedAt           time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy           string              `json:"lastUpdatedBy"`
	Version                 int64               `json:"version"`
}

// ToOpportunityResponse converts a domain.Opportunity to OpportunityResponse DTO
func ToOpportunityResponse(o *domain.Opportunity) OpportunityResponse {
	return OpportunityResponse{
		ID:                      o.ID,
		OpportunityNumber:       o.OpportunityNumber,
		OrganizationID:          o.OrganizationID,
		ClientID:                o.ClientID,
		Status:                  o.Status,
		ProgressPercent:         o.ProgressPercent(),
		LoanAmount:              o.LoanAmount,
		PropertyValue:           o.PropertyValue,
		NetProfit:               o.NetProfit,
		Amortisation:            o.Amortisation,
		Depreciation:            o.Depreciation,
		ExistingInterestCosts:   o.ExistingInterestCosts,
		RentalExpense:           o.RentalExpense,
		ProposedRentalIncome:    o.ProposedRentalIncome,
		ExistingLiabilities:     o.ExistingLiabilities,
		AdditionalSecurity:      o.AdditionalSecurity,
		SMSFStructure:           o.SMSFStructure,
		ATOLiabilities:          o.ATOLiabilities,
		CreditIssues:            o.CreditIssues,
		ICR:                     o.ICR,
		LVR:                     o.LVR,
		OutcomeLevel:            o.OutcomeLevel,
		Outcome:                 o.OutcomeLevel.String(),
		DeclinedReason:          o.DeclinedReason,
		CompletedDeclinedReason: o.CompletedDeclinedReason,
		WithdrawnReason:         o.WithdrawnReason,
		IsUnqualified:           o.IsUnqualified,
		UnqualifiedReason:       o.UnqualifiedReason,
		TargetSettlementDate:    o.TargetSettlementDate,
		DateSettled:             o.DateSettled,
		CreatedAt:               o.CreatedAt,
		CreatedBy:               o.CreatedBy,
		LastUpdatedAt:           o.LastUpdatedAt,
		LastUpdatedBy:           o.LastUpdatedBy,
		Version:                 o.Version,
	}
}

// ListOpportunitiesParams defines query parameters for listing opportunities.
type ListOpportunitiesParams struct {
	Status    string  `form:"status"`
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListOpportunitiesResponse wraps a page of opportunities.
type ListOpportunitiesResponse struct {
	Opportunities []OpportunityResponse `json:"opportunities"`
	NextToken     *string               `json:"nextToken,omitempty"`
}

// ToListOpportunitiesResponse converts a page of domain.Opportunity values.
func ToListOpportunitiesResponse(opps []domain.Opportunity, nextToken *string) ListOpportunitiesResponse {
	res := make([]OpportunityResponse, len(opps))
	for i := range opps {
		res[i] = ToOpportunityResponse(&opps[i])
	}
	return ListOpportunitiesResponse{Opportunities: res, NextToken: nextToken}
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func answerOrUnset(a *domain.RiskAnswer) domain.RiskAnswer {
	if a == nil {
		return domain.AnswerUnset
	}
	return *a
}
