package mapping

import (
	"github.com/SscSPs/referral_pipeline/internal/core/domain"
	"github.com/SscSPs/referral_pipeline/internal/models"
)

// ToModelComment converts a domain Comment to a model Comment
func ToModelComment(d domain.Comment) models.Comment {
	return models.Comment{
		CommentID:      d.CommentID,
		OpportunityID:  d.OpportunityID,
		OrganizationID: d.OrganizationID,
		Body:           d.Body,
		AuthorID:       d.AuthorID,
		AuthorName:     d.AuthorName,
		DeletedAt:      d.DeletedAt,
		AuditFields:    toModelBookkeeping(d.AuditFields),
	}
}

// ToDomainComment converts a model Comment to a domain Comment
func ToDomainComment(m models.Comment) domain.Comment {
	return domain.Comment{
		CommentID:      m.CommentID,
		OpportunityID:  m.OpportunityID,
		OrganizationID: m.OrganizationID,
		Body:           m.Body,
		AuthorID:       m.AuthorID,
		AuthorName:     m.AuthorName,
		DeletedAt:      m.DeletedAt,
		AuditFields:    toDomainBookkeeping(m.AuditFields),
	}
}
