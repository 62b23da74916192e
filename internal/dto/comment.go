package dto

import (
	"time"

	"github.com/SscSPs/referral_pipeline/internal/core/domain"
)

// CreateCommentRequest defines the data needed to comment on an opportunity.
type CreateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// UpdateCommentRequest replaces the body of an existing comment.
type UpdateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// CommentResponse defines the data returned for a comment.
type CommentResponse struct {
	CommentID      string    `json:"commentID"`
	OpportunityID  string    `json:"opportunityID"`
	OrganizationID string    `json:"organizationID"`
	Body           string    `json:"body"`
	AuthorID       string    `json:"authorID"`
	AuthorName     string    `json:"authorName"`
	CreatedAt      time.Time `json:"createdAt"`
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
}

// ToCommentResponse converts a domain.Comment to CommentResponse DTO
func ToCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		CommentID:      c.CommentID,
		OpportunityID:  c.OpportunityID,
		OrganizationID: c.OrganizationID,
		Body:           c.Body,
		AuthorID:       c.AuthorID,
		AuthorName:     c.AuthorName,
		CreatedAt:      c.CreatedAt,
		LastUpdatedAt:  c.LastUpdatedAt,
	}
}

// ToListCommentResponse converts a slice of domain.Comment to CommentResponse DTOs
func ToListCommentResponse(comments []domain.Comment) []CommentResponse {
	res := make([]CommentResponse, len(comments))
	for i := range comments {
		res[i] = ToCommentResponse(&comments[i])
	}
	return res
}
