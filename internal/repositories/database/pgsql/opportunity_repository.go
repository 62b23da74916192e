package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/referral_pipeline/internal/apperrors"
	"github.com/SscSPs/referral_pipeline/internal/core/domain"
	portsrepo "github.com/SscSPs/referral_pipeline/internal/core/ports/repositories"
	"github.com/SscSPs/referral_pipeline/internal/models"
	"github.com/SscSPs/referral_pipeline/internal/utils/mapping"
	"github.com/SscSPs/referral_pipeline/internal/utils/pagination"
)

// opportunityNumberPrefix is prepended to the sequence value to form e.g. CF10020.
const opportunityNumberPrefix = "CF"

// opportunityColumns are the writable columns, in the order opportunityArgs returns them.
var opportunityColumns = []string{
	"opportunity_id", "opportunity_number", "organization_id", "client_id", "status",
	"loan_amount", "property_value", "net_profit", "amortisation", "depreciation",
	"existing_interest_costs", "rental_expense", "proposed_rental_income",
	"existing_liabilities", "additional_security", "smsf_structure", "ato_liabilities", "credit_issues",
	"icr", "lvr", "outcome_level",
	"declined_reason", "completed_declined_reason", "withdrawn_reason",
	"is_unqualified", "unqualified_reason", "target_settlement_date", "date_settled",
	"created_at", "created_by", "last_updated_at", "last_updated_by", "version",
}

var opportunitySelect = "SELECT " + strings.Join(opportunityColumns, ", ") + " FROM opportunities"

func opportunityArgs(m models.Opportunity) []any {
	return []any{
		m.ID, m.OpportunityNumber, m.OrganizationID, m.ClientID, m.Status,
		m.LoanAmount, m.PropertyValue, m.NetProfit, m.Amortisation, m.Depreciation,
		m.ExistingInterestCosts, m.RentalExpense, m.ProposedRentalIncome,
		m.ExistingLiabilities, m.AdditionalSecurity, m.SMSFStructure, m.ATOLiabilities, m.CreditIssues,
		m.ICR, m.LVR, m.OutcomeLevel,
		m.DeclinedReason, m.CompletedDeclinedReason, m.WithdrawnReason,
		m.IsUnqualified, m.UnqualifiedReason, m.TargetSettlementDate, m.DateSettled,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	}
}

type PgxOpportunityRepository struct {
	BaseRepository
	history *PgxHistoryRepository
}

// newPgxOpportunityRepository creates a new repository for opportunity data.
func newPgxOpportunityRepository(pool *pgxpool.Pool, history *PgxHistoryRepository) portsrepo.OpportunityRepositoryWithTx {
	return &PgxOpportunityRepository{
		BaseRepository: BaseRepository{Pool: pool},
		history:        history,
	}
}

// Ensure PgxOpportunityRepository implements portsrepo.OpportunityRepositoryWithTx
var _ portsrepo.OpportunityRepositoryWithTx = (*PgxOpportunityRepository)(nil)

// FindOpportunityByID retrieves an opportunity by its ID.
func (r *PgxOpportunityRepository) FindOpportunityByID(ctx context.Context, opportunityID string) (*domain.Opportunity, error) {
	rows, err := r.Pool.Query(ctx, opportunitySelect+" WHERE opportunity_id = $1;", opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query opportunity %s: %w", opportunityID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Opportunity])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("opportunity " + opportunityID)
		}
		return nil, fmt.Errorf("failed to scan opportunity %s: %w", opportunityID, err)
	}
	d := mapping.ToDomainOpportunity(m)
	return &d, nil
}

// ListOpportunities returns a page ordered by created_at DESC with opportunity_id as tie-breaker.
func (r *PgxOpportunityRepository) ListOpportunities(ctx context.Context, filter portsrepo.OpportunityListFilter) ([]domain.Opportunity, *string, error) {
	limit := pagination.ClampLimit(filter.Limit)
	// One extra row tells us whether there is a next page.
	fetchLimit := limit + 1

	where := []string{"organization_id = $1"}
	args := []any{filter.OrganizationID}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, lastCreatedAt, lastID)
		where = append(where, fmt.Sprintf("(created_at, opportunity_id) < ($%d, $%d)", len(args)-1, len(args)))
	}
	args = append(args, fetchLimit)

	query := opportunitySelect +
		" WHERE " + strings.Join(where, " AND ") +
		" ORDER BY created_at DESC, opportunity_id DESC" +
		" LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query opportunities for organization %s: %w", filter.OrganizationID, err)
	}
	page, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Opportunity])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan opportunities for organization %s: %w", filter.OrganizationID, err)
	}

	var nextToken *string
	if len(page) > limit {
		last := page[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ID)
		nextToken = &token
		page = page[:limit]
	}
	return mapping.ToDomainOpportunitySlice(page), nextToken, nil
}

// NextOpportunityNumber draws from opportunity_number_seq, which never reuses a value.
func (r *PgxOpportunityRepository) NextOpportunityNumber(ctx context.Context) (string, error) {
	var n int64
	if err := r.Pool.QueryRow(ctx, "SELECT nextval('opportunity_number_seq');").Scan(&n); err != nil {
		return "", fmt.Errorf("failed to allocate opportunity number: %w", err)
	}
	return opportunityNumberPrefix + strconv.FormatInt(n, 10), nil
}

// SaveOpportunity inserts a new opportunity.
func (r *PgxOpportunityRepository) SaveOpportunity(ctx context.Context, opportunity domain.Opportunity) error {
	return insertOpportunity(ctx, r.Pool, mapping.ToModelOpportunity(opportunity))
}

// UpdateOpportunity writes the opportunity if the stored version still matches.
func (r *PgxOpportunityRepository) UpdateOpportunity(ctx context.Context, opportunity domain.Opportunity) error {
	return updateOpportunity(ctx, r.Pool, mapping.ToModelOpportunity(opportunity))
}

// DeleteOpportunity removes the opportunity and its comments. History rows are kept.
func (r *PgxOpportunityRepository) DeleteOpportunity(ctx context.Context, opportunityID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM opportunities WHERE opportunity_id = $1;`, opportunityID)
	if err != nil {
		return fmt.Errorf("failed to delete opportunity %s: %w", opportunityID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("opportunity " + opportunityID)
	}
	return nil
}

// SaveOpportunityWithHistory inserts the opportunity and its history entries in one transaction.
func (r *PgxOpportunityRepository) SaveOpportunityWithHistory(ctx context.Context, opportunity domain.Opportunity, entries []domain.HistoryEntry) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := insertOpportunity(ctx, tx, mapping.ToModelOpportunity(opportunity)); err != nil {
			return err
		}
		return r.history.appendAll(ctx, tx, entries)
	})
}

// UpdateOpportunityWithHistory updates the opportunity and appends its history entries in one transaction.
func (r *PgxOpportunityRepository) UpdateOpportunityWithHistory(ctx context.Context, opportunity domain.Opportunity, entries []domain.HistoryEntry) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := updateOpportunity(ctx, tx, mapping.ToModelOpportunity(opportunity)); err != nil {
			return err
		}
		return r.history.appendAll(ctx, tx, entries)
	})
}

func insertOpportunity(ctx context.Context, db executor, m models.Opportunity) error {
	query := "INSERT INTO opportunities (" + strings.Join(opportunityColumns, ", ") + ") VALUES (" +
		placeholders(1, len(opportunityColumns)) + ");"
	if _, err := db.Exec(ctx, query, opportunityArgs(m)...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: opportunity %s already exists", apperrors.ErrDuplicate, m.OpportunityNumber)
		}
		return fmt.Errorf("failed to save opportunity %s: %w", m.ID, err)
	}
	return nil
}

// updateOpportunity rewrites every mutable column. The version in m is the one the caller
// read; the stored version becomes m.Version+1.
func updateOpportunity(ctx context.Context, db executor, m models.Opportunity) error {
	// Columns from client_id onwards are mutable; created_* and version are handled separately.
	mutable := opportunityColumns[3:28]
	values := opportunityArgs(m)[3:28]

	sets := make([]string, 0, len(mutable)+2)
	args := make([]any, 0, len(values)+4)
	for i, col := range mutable {
		args = append(args, values[i])
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	args = append(args, m.LastUpdatedAt)
	sets = append(sets, "last_updated_at = $"+strconv.Itoa(len(args)))
	args = append(args, m.LastUpdatedBy)
	sets = append(sets, "last_updated_by = $"+strconv.Itoa(len(args)))
	sets = append(sets, "version = version + 1")

	args = append(args, m.ID, m.Version)
	query := "UPDATE opportunities SET " + strings.Join(sets, ", ") +
		fmt.Sprintf(" WHERE opportunity_id = $%d AND version = $%d;", len(args)-1, len(args))

	cmdTag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update opportunity %s: %w", m.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: opportunity %s is no longer at version %d", apperrors.ErrConflict, m.ID, m.Version)
	}
	return nil
}
