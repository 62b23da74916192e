package mapping

import (
	"github.com/SscSPs/referral_pipeline/internal/core/domain"
	"github.com/SscSPs/referral_pipeline/internal/models"
)

// ToModelHistoryEntry converts a domain HistoryEntry to a model HistoryEntry
func ToModelHistoryEntry(d domain.HistoryEntry) models.HistoryEntry {
	return models.HistoryEntry{
		EntryID:       d.EntryID,
		OpportunityID: d.OpportunityID,
		FieldName:     d.FieldName,
		OldValue:      d.OldValue,
		NewValue:      d.NewValue,
		Action:        string(d.Action),
		Reason:        d.Reason,
		UserID:        d.UserID,
		UserName:      d.UserName,
		IPAddress:     d.IPAddress,
		CreatedAt:     d.Timestamp,
	}
}

// ToDomainHistoryEntry converts a model HistoryEntry to a domain HistoryEntry
func ToDomainHistoryEntry(m models.HistoryEntry) domain.HistoryEntry {
	return domain.HistoryEntry{
		EntryID:       m.EntryID,
		OpportunityID: m.OpportunityID,
		FieldName:     m.FieldName,
		OldValue:      m.OldValue,
		NewValue:      m.NewValue,
		Action:        domain.HistoryAction(m.Action),
		Reason:        m.Reason,
		UserID:        m.UserID,
		UserName:      m.UserName,
		IPAddress:     m.IPAddress,
		Timestamp:     m.CreatedAt.UTC(),
	}
}

// ToDomainHistorySlice converts a slice of model HistoryEntries to a slice of domain HistoryEntries
func ToDomainHistorySlice(ms []models.HistoryEntry) []domain.HistoryEntry {
	ds := make([]domain.HistoryEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainHistoryEntry(m)
	}
	return ds
}
