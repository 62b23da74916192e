package domain

import "time"

// AuditFields holds standard bookkeeping information for domain entities.
// None of these fields are part of the compliance history.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
	Version       int64     `json:"version"`       // Optimistic concurrency token
}

// MutationContext identifies who is making a change and from where.
// It is supplied by the caller (usually an HTTP handler after authentication).
type MutationContext struct {
	UserID         string
	UserName       string
	IPAddress      string
	OrganizationID string
}
