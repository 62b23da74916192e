package repositories

import (
	"context"

	"github.com/SscSPs/referral_pipeline/internal/core/domain"
)

// HistoryReader defines read operations for the opportunity ledger
type HistoryReader interface {
	// ListHistory returns entries for an opportunity in reverse chronological order,
	// with a token for the next page.
	ListHistory(ctx context.Context, opportunityID string, limit int, nextToken *string) ([]domain.HistoryEntry, *string, error)
}

// HistoryWriter appends to the opportunity ledger. There are no update or delete operations.
type HistoryWriter interface {
	AppendHistory(ctx context.Context, entry domain.HistoryEntry) error
}

// HistoryRepositoryFacade combines all history-related repository interfaces
type HistoryRepositoryFacade interface {
	HistoryReader
	HistoryWriter
}
