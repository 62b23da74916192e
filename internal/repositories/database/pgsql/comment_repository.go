package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/referral_pipeline/internal/apperrors"
	"github.com/SscSPs/referral_pipeline/internal/core/domain"
	portsrepo "github.com/SscSPs/referral_pipeline/internal/core/ports/repositories"
	"github.com/SscSPs/referral_pipeline/internal/models"
	"github.com/SscSPs/referral_pipeline/internal/utils/mapping"
)

const commentSelect = `
	SELECT comment_id, opportunity_id, organization_id, body, author_id, author_name, deleted_at,
	       created_at, created_by, last_updated_at, last_updated_by, version
	FROM opportunity_comments`

type PgxCommentRepository struct {
	BaseRepository
}

func newPgxCommentRepository(pool *pgxpool.Pool) portsrepo.CommentRepositoryFacade {
	return &PgxCommentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CommentRepositoryFacade = (*PgxCommentRepository)(nil)

func (r *PgxCommentRepository) FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	rows, err := r.Pool.Query(ctx, commentSelect+` WHERE comment_id = $1;`, commentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comment %s: %w", commentID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Comment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("comment " + commentID)
		}
		return nil, fmt.Errorf("failed to scan comment %s: %w", commentID, err)
	}
	d := mapping.ToDomainComment(m)
	return &d, nil
}

func (r *PgxCommentRepository) ListCommentsByOpportunity(ctx context.Context, opportunityID string) ([]domain.Comment, error) {
	rows, err := r.Pool.Query(ctx, commentSelect+`
		WHERE opportunity_id = $1 AND deleted_at IS NULL
		ORDER BY created_at, comment_id;`, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments for opportunity %s: %w", opportunityID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Comment])
	if err != nil {
		return nil, fmt.Errorf("failed to scan comments for opportunity %s: %w", opportunityID, err)
	}
	comments := make([]domain.Comment, len(ms))
	for i, m := range ms {
		comments[i] = mapping.ToDomainComment(m)
	}
	return comments, nil
}

func (r *PgxCommentRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	m := mapping.ToModelComment(comment)
	query := `
		INSERT INTO opportunity_comments (
			comment_id, opportunity_id, organization_id, body, author_id, author_name,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CommentID, m.OpportunityID, m.OrganizationID, m.Body, m.AuthorID, m.AuthorName,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: comment %s already exists", apperrors.ErrDuplicate, m.CommentID)
		}
		return fmt.Errorf("failed to save comment %s: %w", m.CommentID, err)
	}
	return nil
}

// UpdateComment changes the body if the stored version still matches comment.Version.
func (r *PgxCommentRepository) UpdateComment(ctx context.Context, comment domain.Comment) error {
	m := mapping.ToModelComment(comment)
	query := `
		UPDATE opportunity_comments
		SET body = $1, last_updated_at = $2, last_updated_by = $3, version = version + 1
		WHERE comment_id = $4 AND version = $5 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.Body, m.LastUpdatedAt, m.LastUpdatedBy, m.CommentID, m.Version)
	if err != nil {
		return fmt.Errorf("failed to update comment %s: %w", m.CommentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: comment %s was changed by someone else", apperrors.ErrConflict, m.CommentID)
	}
	return nil
}

// MarkCommentDeleted soft-deletes a comment.
func (r *PgxCommentRepository) MarkCommentDeleted(ctx context.Context, comment domain.Comment) error {
	m := mapping.ToModelComment(comment)
	query := `
		UPDATE opportunity_comments
		SET deleted_at = $1, last_updated_at = $2, last_updated_by = $3, version = version + 1
		WHERE comment_id = $4 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.DeletedAt, m.LastUpdatedAt, m.LastUpdatedBy, m.CommentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment %s: %w", m.CommentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("comment " + m.CommentID)
	}
	return nil
}
