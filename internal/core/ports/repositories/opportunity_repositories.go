package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/referral_pipeline/internal/core/domain"
)

// OpportunityListFilter narrows an opportunity listing.
type OpportunityListFilter struct {
	OrganizationID string
	Status         *domain.Status
	Limit          int
	NextToken      *string
}

// OpportunityReader defines read operations for opportunity data
type OpportunityReader interface {
	// FindOpportunityByID retrieves an opportunity by its ID. Returns apperrors.ErrNotFound when absent.
	FindOpportunityByID(ctx context.Context, opportunityID string) (*domain.Opportunity, error)

	// ListOpportunities retrieves a page of opportunities, newest first, plus a token for the next page.
	ListOpportunities(ctx context.Context, filter OpportunityListFilter) ([]domain.Opportunity, *string, error)
}

// OpportunityWriter defines write operations for opportunity data
type OpportunityWriter interface {
	// NextOpportunityNumber allocates the next human readable opportunity number.
	NextOpportunityNumber(ctx context.Context) (string, error)

	// SaveOpportunity persists a new opportunity.
	SaveOpportunity(ctx context.Context, opportunity domain.Opportunity) error

	// UpdateOpportunity writes an existing opportunity. The write only succeeds when the stored
	// version equals opportunity.Version; the stored version is then incremented.
	// Returns apperrors.ErrConflict on a version mismatch.
	UpdateOpportunity(ctx context.Context, opportunity domain.Opportunity) error

	// DeleteOpportunity hard-deletes an opportunity. History entries are kept.
	DeleteOpportunity(ctx context.Context, opportunityID string) error
}

// OpportunityAtomicWriter is implemented by stores that can commit an aggregate
// write together with its history entries in a single transaction.
type OpportunityAtomicWriter interface {
	SaveOpportunityWithHistory(ctx context.Context, opportunity domain.Opportunity, entries []domain.HistoryEntry) error
	UpdateOpportunityWithHistory(ctx context.Context, opportunity domain.Opportunity, entries []domain.HistoryEntry) error
}

// OpportunityRepositoryFacade combines all opportunity-related repository interfaces
type OpportunityRepositoryFacade interface {
	OpportunityReader
	OpportunityWriter
}

// TransactionManager exposes the store's transactions to callers that need to group writes.
// Rollback after a successful Commit is a no-op.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// OpportunityRepositoryWithTx extends OpportunityRepositoryFacade with transaction capabilities
type OpportunityRepositoryWithTx interface {
	OpportunityRepositoryFacade
	OpportunityAtomicWriter
	TransactionManager
}
