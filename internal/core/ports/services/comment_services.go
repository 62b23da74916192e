package services

import (
	"context"

	"github.com/SscSPs/referral_pipeline/internal/core/domain"
	"github.com/SscSPs/referral_pipeline/internal/dto"
)

// CommentReaderSvc defines read operations for comments
type CommentReaderSvc interface {
	ListComments(ctx context.Context, organizationID, opportunityID string) ([]domain.Comment, error)
}

// CommentWriterSvc defines write operations for comments
type CommentWriterSvc interface {
	CreateComment(ctx context.Context, organizationID, opportunityID string, req dto.CreateCommentRequest, mctx domain.MutationContext) (*domain.Comment, error)
	UpdateComment(ctx context.Context, organizationID, opportunityID, commentID string, req dto.UpdateCommentRequest, mctx domain.MutationContext) (*domain.Comment, error)
	DeleteComment(ctx context.Context, organizationID, opportunityID, commentID string, mctx domain.MutationContext) error
}

// CommentSvcFacade combines all comment-related service interfaces
type CommentSvcFacade interface {
	CommentReaderSvc
	CommentWriterSvc
}
