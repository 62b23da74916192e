package mapping

import (
	"github.com/SscSPs/referral_pipeline/internal/core/domain"
	"github.com/SscSPs/referral_pipeline/internal/models"
)

// Bookkeeping timestamps are timestamptz columns; the domain always sees them in UTC.

func toModelBookkeeping(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt.UTC(),
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt.UTC(),
		LastUpdatedBy: d.LastUpdatedBy,
		Version:       d.Version,
	}
}

func toDomainBookkeeping(m models.AuditFields) domain.AuditFields {
	out := domain.AuditFields{CreatedBy: m.CreatedBy, LastUpdatedBy: m.LastUpdatedBy, Version: m.Version}
	if !m.CreatedAt.IsZero() {
		out.CreatedAt = m.CreatedAt.UTC()
	}
	if !m.LastUpdatedAt.IsZero() {
		out.LastUpdatedAt = m.LastUpdatedAt.UTC()
	}
	return out
}
