package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/referral_pipeline/internal/apperrors"
	"github.com/SscSPs/referral_pipeline/internal/core/domain"
	portsrepo "github.com/SscSPs/referral_pipeline/internal/core/ports/repositories"
	"github.com/SscSPs/referral_pipeline/internal/metrics"
)

// AuditRecorder turns opportunity changes into ledger entries and appends them.
type AuditRecorder struct {
	BaseService
	historyRepo portsrepo.HistoryWriter
	metrics     *metrics.Metrics
	newID       func() string
}

// NewAuditRecorder creates an AuditRecorder. m may be nil.
func NewAuditRecorder(historyRepo portsrepo.HistoryWriter, m *metrics.Metrics) *AuditRecorder {
	return &AuditRecorder{
		historyRepo: historyRepo,
		metrics:     m,
		newID:       newEntryID,
	}
}

// newEntryID returns a time-ordered UUIDv7, so entries written in one mutation sort in the
// order they were built even though they share a timestamp.
func newEntryID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Diff returns the entries describing the move from before to after.
//
// A nil before yields a single created entry. Otherwise a status change comes first,
// carrying reason when one was supplied, followed by one field_update per changed
// tracked field in allow-list order. Unchanged records produce no entries.
func (r *AuditRecorder) Diff(before, after *domain.Opportunity, reason string, mctx domain.MutationContext, at time.Time) []domain.HistoryEntry {
	if before == nil {
		status := string(after.Status)
		return []domain.HistoryEntry{r.Event(after.ID, domain.ActionCreated, nil, nil, &status, mctx, at)}
	}

	var entries []domain.HistoryEntry
	if before.Status != after.Status {
		field := domain.FieldStatus
		oldStatus, newStatus := string(before.Status), string(after.Status)
		e := r.Event(after.ID, domain.ActionStatusChange, &field, &oldStatus, &newStatus, mctx, at)
		if reason != "" {
			e.Reason = &reason
		}
		entries = append(entries, e)
	}

	for _, f := range domain.TrackedFields {
		oldVal, newVal := f.ValueOf(before), f.ValueOf(after)
		if domain.SameValue(oldVal, newVal) {
			continue
		}
		name := string(f)
		entries = append(entries, r.Event(after.ID, domain.ActionFieldUpdate, &name, oldVal, newVal, mctx, at))
	}
	return entries
}

// Event builds a single entry attributed to mctx.
func (r *AuditRecorder) Event(opportunityID string, action domain.HistoryAction, fieldName, oldValue, newValue *string, mctx domain.MutationContext, at time.Time) domain.HistoryEntry {
	return domain.HistoryEntry{
		EntryID:       r.newID(),
		OpportunityID: opportunityID,
		FieldName:     fieldName,
		OldValue:      oldValue,
		NewValue:      newValue,
		Action:        action,
		UserID:        mctx.UserID,
		UserName:      mctx.UserName,
		IPAddress:     mctx.IPAddress,
		Timestamp:     at.UTC(),
	}
}

// Record appends entries in order. It stops at the first failure and returns an
// *apperrors.AuditWriteError counting the entries that were not written.
func (r *AuditRecorder) Record(ctx context.Context, opportunityID string, entries []domain.HistoryEntry) error {
	for i, e := range entries {
		if err := r.historyRepo.AppendHistory(ctx, e); err != nil {
			auditErr := &apperrors.AuditWriteError{OpportunityID: opportunityID, Entries: len(entries) - i, Err: err}
			r.Failed(ctx, auditErr)
			return auditErr
		}
	}
	return nil
}

// Failed logs and counts a saved change whose history is incomplete.
func (r *AuditRecorder) Failed(ctx context.Context, err *apperrors.AuditWriteError) {
	r.metrics.RecordAuditWriteFailure()
	r.LogError(ctx, err, "Change saved without its history entries",
		slog.String("opportunity_id", err.OpportunityID),
		slog.Int("missing_entries", err.Entries))
}
