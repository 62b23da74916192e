package models

import "time"

// Comment is a row of the opportunity_comments table.
type Comment struct {
	CommentID      string     `db:"comment_id"`
	OpportunityID  string     `db:"opportunity_id"`
	OrganizationID string     `db:"organization_id"`
	Body           string     `db:"body"`
	AuthorID       string     `db:"author_id"`
	AuthorName     string     `db:"author_name"`
	DeletedAt      *time.Time `db:"deleted_at"`
	AuditFields
}
