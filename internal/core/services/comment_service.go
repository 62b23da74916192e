package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/referral_pipeline/internal/apperrors"
	"github.com/SscSPs/referral_pipeline/internal/core/domain"
	portsrepo "github.com/SscSPs/referral_pipeline/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/referral_pipeline/internal/core/ports/services"
	"github.com/SscSPs/referral_pipeline/internal/dto"
)

// commentService manages free-text notes on opportunities. Comments are not part of
// the status workflow but every change is written to the opportunity history.
type commentService struct {
	BaseService
	commentRepo     portsrepo.CommentRepositoryFacade
	opportunityRepo portsrepo.OpportunityReader
	audit           *AuditRecorder
	now             func() time.Time
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo portsrepo.CommentRepositoryFacade, opportunityRepo portsrepo.OpportunityReader, audit *AuditRecorder) portssvc.CommentSvcFacade {
	return &commentService{
		commentRepo:     commentRepo,
		opportunityRepo: opportunityRepo,
		audit:           audit,
		now:             time.Now,
	}
}

var _ portssvc.CommentSvcFacade = (*commentService)(nil)

func (s *commentService) CreateComment(ctx context.Context, organizationID, opportunityID string, req dto.CreateCommentRequest, mctx domain.MutationContext) (*domain.Comment, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, fmt.Errorf("%w: comment body is required", apperrors.ErrValidation)
	}
	if mctx.OrganizationID == "" {
		return nil, fmt.Errorf("%w: commenting requires a caller organization", apperrors.ErrForbidden)
	}
	if err := s.checkOpportunity(ctx, organizationID, opportunityID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	comment := &domain.Comment{
		CommentID:      uuid.NewString(),
		OpportunityID:  opportunityID,
		OrganizationID: mctx.OrganizationID,
		Body:           body,
		AuthorID:       mctx.UserID,
		AuthorName:     mctx.UserName,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     mctx.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: mctx.UserID,
			Version:       1,
		},
	}
	if err := s.commentRepo.SaveComment(ctx, *comment); err != nil {
		s.LogError(ctx, err, "Failed to save comment", slog.String("opportunity_id", opportunityID))
		return nil, fmt.Errorf("%w: save comment: %w", apperrors.ErrPersistence, err)
	}

	entry := s.audit.Event(opportunityID, domain.ActionCommentAdded, nil, nil, &comment.Body, mctx, now)
	if err := s.audit.Record(ctx, opportunityID, []domain.HistoryEntry{entry}); err != nil {
		return comment, err
	}
	return comment, nil
}

func (s *commentService) ListComments(ctx context.Context, organizationID, opportunityID string) ([]domain.Comment, error) {
	if err := s.checkOpportunity(ctx, organizationID, opportunityID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListCommentsByOpportunity(ctx, opportunityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list comments", slog.String("opportunity_id", opportunityID))
		return nil, fmt.Errorf("%w: list comments: %w", apperrors.ErrPersistence, err)
	}
	if comments == nil {
		return []domain.Comment{}, nil
	}
	return comments, nil
}

func (s *commentService) UpdateComment(ctx context.Context, organizationID, opportunityID, commentID string, req dto.UpdateCommentRequest, mctx domain.MutationContext) (*domain.Comment, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, fmt.Errorf("%w: comment body is required", apperrors.ErrValidation)
	}
	comment, err := s.editable(ctx, organizationID, opportunityID, commentID, mctx)
	if err != nil {
		return nil, err
	}
	if comment.Body == body {
		return comment, nil
	}

	now := s.now().UTC()
	oldBody := comment.Body
	comment.Body = body
	comment.LastUpdatedAt = now
	comment.LastUpdatedBy = mctx.UserID
	if err := s.commentRepo.UpdateComment(ctx, *comment); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to update comment", slog.String("comment_id", commentID))
		return nil, fmt.Errorf("%w: update comment: %w", apperrors.ErrPersistence, err)
	}
	comment.Version++

	entry := s.audit.Event(opportunityID, domain.ActionCommentUpdated, nil, &oldBody, &comment.Body, mctx, now)
	if err := s.audit.Record(ctx, opportunityID, []domain.HistoryEntry{entry}); err != nil {
		return comment, err
	}
	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, organizationID, opportunityID, commentID string, mctx domain.MutationContext) error {
	comment, err := s.editable(ctx, organizationID, opportunityID, commentID, mctx)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	comment.DeletedAt = &now
	comment.LastUpdatedAt = now
	comment.LastUpdatedBy = mctx.UserID
	if err := s.commentRepo.MarkCommentDeleted(ctx, *comment); err != nil {
		s.LogError(ctx, err, "Failed to delete comment", slog.String("comment_id", commentID))
		return fmt.Errorf("%w: delete comment: %w", apperrors.ErrPersistence, err)
	}

	entry := s.audit.Event(opportunityID, domain.ActionCommentDeleted, nil, &comment.Body, nil, mctx, now)
	return s.audit.Record(ctx, opportunityID, []domain.HistoryEntry{entry})
}

// checkOpportunity confirms the opportunity exists and belongs to the organization.
func (s *commentService) checkOpportunity(ctx context.Context, organizationID, opportunityID string) error {
	opp, err := s.opportunityRepo.FindOpportunityByID(ctx, opportunityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: load opportunity: %w", apperrors.ErrPersistence, err)
	}
	if opp == nil || opp.OrganizationID != organizationID {
		return apperrors.NewNotFoundError("opportunity " + opportunityID)
	}
	return nil
}

// editable loads a live comment on the opportunity that the caller's organization may change.
// mctx.OrganizationID is the caller's own organization; organizationID only scopes the opportunity.
func (s *commentService) editable(ctx context.Context, organizationID, opportunityID, commentID string, mctx domain.MutationContext) (*domain.Comment, error) {
	if err := s.checkOpportunity(ctx, organizationID, opportunityID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.FindCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: load comment: %w", apperrors.ErrPersistence, err)
	}
	if comment == nil || comment.OpportunityID != opportunityID || comment.IsDeleted() {
		return nil, apperrors.NewNotFoundError("comment " + commentID)
	}
	if mctx.OrganizationID == "" || comment.OrganizationID != mctx.OrganizationID {
		s.LogWarn(ctx, "Comment change by another organization refused",
			slog.String("comment_id", commentID),
			slog.String("organization_id", mctx.OrganizationID))
		return nil, fmt.Errorf("%w: only the author's organization can change this comment", apperrors.ErrForbidden)
	}
	return comment, nil
}
