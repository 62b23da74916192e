package repositories

import (
	"context"

	"github.com/SscSPs/referral_pipeline/internal/core/domain"
)

// CommentReader defines read operations for comments
type CommentReader interface {
	// FindCommentByID retrieves a comment, including soft-deleted ones.
	FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error)

	// ListCommentsByOpportunity returns the live comments on an opportunity, oldest first.
	ListCommentsByOpportunity(ctx context.Context, opportunityID string) ([]domain.Comment, error)
}

// CommentWriter defines write operations for comments
type CommentWriter interface {
	SaveComment(ctx context.Context, comment domain.Comment) error
	UpdateComment(ctx context.Context, comment domain.Comment) error
	MarkCommentDeleted(ctx context.Context, comment domain.Comment) error
}

// CommentRepositoryFacade combines all comment-related repository interfaces
type CommentRepositoryFacade interface {
	CommentReader
	CommentWriter
}
