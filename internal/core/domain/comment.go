package domain

import "time"

// Comment is a free-text note on an opportunity. It sits outside the status
// workflow and is soft-deleted.
type Comment struct {
	CommentID      string     `json:"commentID"`
	OpportunityID  string     `json:"opportunityID"`
	OrganizationID string     `json:"organizationID"` // Organization of the author
	Body           string     `json:"body"`
	AuthorID       string     `json:"authorID"`
	AuthorName     string     `json:"authorName"`
	DeletedAt      *time.Time `json:"deletedAt,omitempty"`
	AuditFields
}

// IsDeleted reports whether the comment has been soft-deleted.
func (c *Comment) IsDeleted() bool {
	return c.DeletedAt != nil
}
