package services

import (
	"context"

	"github.com/SscSPs/referral_pipeline/internal/core/domain"
	"github.com/SscSPs/referral_pipeline/internal/dto"
	"github.com/SscSPs/referral_pipeline/internal/utils/scoring"
)

// OpportunityReaderSvc defines read operations for opportunity data
type OpportunityReaderSvc interface {
	// GetOpportunityByID retrieves an opportunity owned by the organization.
	GetOpportunityByID(ctx context.Context, organizationID, opportunityID string) (*domain.Opportunity, error)

	// ListOpportunities retrieves a page of the organization's opportunities, newest first.
	ListOpportunities(ctx context.Context, organizationID string, params dto.ListOpportunitiesParams) ([]domain.Opportunity, *string, error)

	// ListHistory returns the opportunity's ledger in reverse chronological order.
	ListHistory(ctx context.Context, organizationID, opportunityID string, params dto.ListHistoryParams) ([]domain.HistoryEntry, *string, error)
}

// OpportunityWriterSvc defines write operations for opportunity data
type OpportunityWriterSvc interface {
	// CreateOpportunity opens a new opportunity in draft or opportunity status.
	CreateOpportunity(ctx context.Context, organizationID string, req dto.CreateOpportunityRequest, mctx domain.MutationContext) (*domain.Opportunity, error)

	// ApplyMutation is the single entry point for changing an opportunity. Status moves go
	// through the transition policy, score inputs trigger a rescore and every change is
	// recorded in the history.
	//
	// When the change was saved but its history could not be written, the new opportunity is
	// returned together with an *apperrors.AuditWriteError.
	ApplyMutation(ctx context.Context, organizationID, opportunityID string, patch domain.OpportunityPatch, mctx domain.MutationContext) (*domain.Opportunity, error)

	// DeleteOpportunity removes an opportunity. Its history is kept and a deleted entry appended.
	DeleteOpportunity(ctx context.Context, organizationID, opportunityID string, mctx domain.MutationContext) error
}

// ScorePreviewSvc scores inputs without persisting them. It also returns the interest rate used.
type ScorePreviewSvc interface {
	PreviewScore(ctx context.Context, req dto.ScorePreviewRequest) (domain.Score, float64, error)
}

// OpportunitySvcFacade combines all opportunity-related service interfaces
type OpportunitySvcFacade interface {
	OpportunityReaderSvc
	OpportunityWriterSvc
	ScorePreviewSvc
}

// InterestRateProvider supplies the interest rate used for the proposed loan in ICR.
type InterestRateProvider interface {
	GetInterestRatePercent(ctx context.Context) float64
}

var _ InterestRateProvider = StaticInterestRate(scoring.DefaultInterestRatePercent)

// StaticInterestRate is a fixed InterestRateProvider.
type StaticInterestRate float64

func (r StaticInterestRate) GetInterestRatePercent(context.Context) float64 {
	return float64(r)
}
