package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/referral_pipeline/internal/core/domain"
	portsrepo "github.com/SscSPs/referral_pipeline/internal/core/ports/repositories"
	"github.com/SscSPs/referral_pipeline/internal/models"
	"github.com/SscSPs/referral_pipeline/internal/utils/mapping"
	"github.com/SscSPs/referral_pipeline/internal/utils/pagination"
)

const insertHistoryQuery = `
	INSERT INTO opportunity_history (
		entry_id, opportunity_id, field_name, old_value, new_value, action, reason,
		user_id, user_name, ip_address, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

// PgxHistoryRepository is the append-only opportunity ledger. It has no update or delete.
type PgxHistoryRepository struct {
	BaseRepository
}

func newPgxHistoryRepository(pool *pgxpool.Pool) *PgxHistoryRepository {
	return &PgxHistoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.HistoryRepositoryFacade = (*PgxHistoryRepository)(nil)

// AppendHistory inserts a single entry.
func (r *PgxHistoryRepository) AppendHistory(ctx context.Context, entry domain.HistoryEntry) error {
	return appendHistory(ctx, r.Pool, entry)
}

// appendAll queues every entry on one batch within tx, preserving order.
func (r *PgxHistoryRepository) appendAll(ctx context.Context, tx pgx.Tx, entries []domain.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(insertHistoryQuery, historyArgs(mapping.ToModelHistoryEntry(e))...)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to append %d history entries: %w", len(entries), err)
	}
	return nil
}

// ListHistory returns entries newest first. Entries sharing a timestamp fall back to entry_id,
// a UUIDv7, so one mutation's entries come back in reverse build order.
func (r *PgxHistoryRepository) ListHistory(ctx context.Context, opportunityID string, limit int, nextToken *string) ([]domain.HistoryEntry, *string, error) {
	limit = pagination.ClampLimit(limit)
	fetchLimit := limit + 1

	query := `
		SELECT entry_id, opportunity_id, field_name, old_value, new_value, action, reason,
		       user_id, user_name, ip_address, created_at
		FROM opportunity_history
		WHERE opportunity_id = $1`
	args := []any{opportunityID}
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		query += ` AND (created_at, entry_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY created_at DESC, entry_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query history for opportunity %s: %w", opportunityID, err)
	}
	page, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.HistoryEntry])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan history for opportunity %s: %w", opportunityID, err)
	}

	var next *string
	if len(page) > limit {
		last := page[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		next = &token
		page = page[:limit]
	}
	return mapping.ToDomainHistorySlice(page), next, nil
}

func appendHistory(ctx context.Context, db executor, entry domain.HistoryEntry) error {
	m := mapping.ToModelHistoryEntry(entry)
	if _, err := db.Exec(ctx, insertHistoryQuery, historyArgs(m)...); err != nil {
		return fmt.Errorf("failed to append history entry %s: %w", m.EntryID, err)
	}
	return nil
}

func historyArgs(m models.HistoryEntry) []any {
	return []any{
		m.EntryID, m.OpportunityID, m.FieldName, m.OldValue, m.NewValue, m.Action, m.Reason,
		m.UserID, m.UserName, m.IPAddress, m.CreatedAt,
	}
}
