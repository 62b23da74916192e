package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/referral_pipeline/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	historyRepo := newPgxHistoryRepository(dbPool)
	opportunityRepo := newPgxOpportunityRepository(dbPool, historyRepo)
	commentRepo := newPgxCommentRepository(dbPool)
	settingRepo := newPgxSettingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		OpportunityRepo: opportunityRepo,
		HistoryRepo:     historyRepo,
		CommentRepo:     commentRepo,
		SettingRepo:     settingRepo,
	}
}
