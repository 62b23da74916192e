package services

import (
	portsrepo "github.com/SscSPs/referral_pipeline/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/referral_pipeline/internal/core/ports/services"
	"github.com/SscSPs/referral_pipeline/internal/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// rates may be nil, in which case the settings table is read directly with fallbackRate.
func NewServiceContainer(repos portsrepo.RepositoryProvider, rates portssvc.InterestRateProvider, fallbackRate float64, m *metrics.Metrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	if rates == nil {
		rates = NewInterestRateService(repos.SettingRepo, fallbackRate)
	}
	container.InterestRate = rates

	container.Opportunity = NewOpportunityService(
		repos.OpportunityRepo,
		repos.HistoryRepo,
		WithInterestRateProvider(rates),
		WithMetrics(m),
	)
	container.Comment = NewCommentService(
		repos.CommentRepo,
		repos.OpportunityRepo,
		NewAuditRecorder(repos.HistoryRepo, m),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.OpportunitySvcFacade = (*opportunityService)(nil)
	_ portssvc.CommentSvcFacade     = (*commentService)(nil)
)
