package mapping

import (
	"github.com/SscSPs/referral_pipeline/internal/core/domain"
	"github.com/SscSPs/referral_pipeline/internal/models"
)

// ToModelOpportunity converts a domain Opportunity to a model Opportunity
func ToModelOpportunity(d domain.Opportunity) models.Opportunity {
	return models.Opportunity{
		ID:                      d.ID,
		OpportunityNumber:       d.OpportunityNumber,
		OrganizationID:          d.OrganizationID,
		ClientID:                d.ClientID,
		Status:                  string(d.Status),
		LoanAmount:              d.LoanAmount,
		PropertyValue:           d.PropertyValue,
		NetProfit:               d.NetProfit,
		Amortisation:            d.Amortisation,
		Depreciation:            d.Depreciation,
		ExistingInterestCosts:   d.ExistingInterestCosts,
		RentalExpense:           d.RentalExpense,
		ProposedRentalIncome:    d.ProposedRentalIncome,
		ExistingLiabilities:     string(d.ExistingLiabilities),
		AdditionalSecurity:      string(d.AdditionalSecurity),
		SMSFStructure:           string(d.SMSFStructure),
		ATOLiabilities:          string(d.ATOLiabilities),
		CreditIssues:            string(d.CreditIssues),
		ICR:                     d.ICR,
		LVR:                     d.LVR,
		OutcomeLevel:            int(d.OutcomeLevel),
		DeclinedReason:          nullableString(d.DeclinedReason),
		CompletedDeclinedReason: nullableString(d.CompletedDeclinedReason),
		WithdrawnReason:         nullableString(d.WithdrawnReason),
		IsUnqualified:           d.IsUnqualified,
		UnqualifiedReason:       nullableString(d.UnqualifiedReason),
		TargetSettlementDate:    d.TargetSettlementDate,
		DateSettled:             d.DateSettled,
		AuditFields:             toModelBookkeeping(d.AuditFields),
	}
}

// ToDomainOpportunity converts a model Opportunity to a domain Opportunity
func ToDomainOpportunity(m models.Opportunity) domain.Opportunity {
	return domain.Opportunity{
		ID:                m.ID,
		OpportunityNumber: m.OpportunityNumber,
		OrganizationID:    m.OrganizationID,
		ClientID:          m.ClientID,
		Status:            domain.Status(m.Status),
		FinancialInputs: domain.FinancialInputs{
			LoanAmount:            m.LoanAmount,
			PropertyValue:         m.PropertyValue,
			NetProfit:             m.NetProfit,
			Amortisation:          m.Amortisation,
			Depreciation:          m.Depreciation,
			ExistingInterestCosts: m.ExistingInterestCosts,
			RentalExpense:         m.RentalExpense,
			ProposedRentalIncome:  m.ProposedRentalIncome,
		},
		RiskFlags: domain.RiskFlags{
			ExistingLiabilities: domain.RiskAnswer(m.ExistingLiabilities),
			AdditionalSecurity:  domain.RiskAnswer(m.AdditionalSecurity),
			SMSFStructure:       domain.RiskAnswer(m.SMSFStructure),
			ATOLiabilities:      domain.RiskAnswer(m.ATOLiabilities),
			CreditIssues:        domain.RiskAnswer(m.CreditIssues),
		},
		Score: domain.Score{
			ICR:          m.ICR,
			LVR:          m.LVR,
			OutcomeLevel: domain.OutcomeLevel(m.OutcomeLevel),
		},
		DeclinedReason:          stringValue(m.DeclinedReason),
		CompletedDeclinedReason: stringValue(m.CompletedDeclinedReason),
		WithdrawnReason:         stringValue(m.WithdrawnReason),
		IsUnqualified:           m.IsUnqualified,
		UnqualifiedReason:       stringValue(m.UnqualifiedReason),
		TargetSettlementDate:    m.TargetSettlementDate,
		DateSettled:             m.DateSettled,
		AuditFields:             toDomainBookkeeping(m.AuditFields),
	}
}

// ToDomainOpportunitySlice converts a slice of model Opportunities to a slice of domain Opportunities
func ToDomainOpportunitySlice(ms []models.Opportunity) []domain.Opportunity {
	ds := make([]domain.Opportunity, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOpportunity(m)
	}
	return ds
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
