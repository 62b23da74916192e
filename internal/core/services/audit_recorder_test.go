package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/referral_pipeline/internal/apperrors"
	"github.com/SscSPs/referral_pipeline/internal/core/domain"
	"github.com/SscSPs/referral_pipeline/internal/core/services"
)

func TestAuditRecorder_Diff(t *testing.T) {
	rec := services.NewAuditRecorder(new(MockHistoryRepository), nil)
	mctx := domain.MutationContext{UserID: "user-1", UserName: "Sam", IPAddress: "10.0.0.7"}
	at := time.Date(2024, 7, 1, 9, 30, 0, 0, time.FixedZone("AEST", 10*60*60))

	t.Run("new record is a single created entry", func(t *testing.T) {
		entries := rec.Diff(nil, submittedOpportunity(), "", mctx, at)
		require.Len(t, entries, 1)
		assert.Equal(t, domain.ActionCreated, entries[0].Action)
		assert.Equal(t, time.UTC, entries[0].Timestamp.Location())
		assert.NotEmpty(t, entries[0].EntryID)
	})

	t.Run("bookkeeping fields are never tracked", func(t *testing.T) {
		before := submittedOpportunity()
		after := before.Clone()
		after.Version = 99
		after.LastUpdatedAt = at
		after.LastUpdatedBy = "someone"
		assert.Empty(t, rec.Diff(before, after, "", mctx, at))
	})

	t.Run("status entry comes first and carries the reason", func(t *testing.T) {
		before := submittedOpportunity()
		after := before.Clone()
		after.Status = domain.StatusWithdrawn
		after.WithdrawnReason = "client went elsewhere"
		after.PropertyValue = decimal.NewFromInt(1100000)

		entries := rec.Diff(before, after, "client went elsewhere", mctx, at)
		require.Len(t, entries, 3)
		assert.Equal(t, domain.ActionStatusChange, entries[0].Action)
		assert.Equal(t, "client went elsewhere", *entries[0].Reason)
		assert.Equal(t, "propertyValue", *entries[1].FieldName)
		assert.Equal(t, "withdrawnReason", *entries[2].FieldName)
		assert.Nil(t, entries[1].Reason)
	})

	t.Run("entry ids follow build order", func(t *testing.T) {
		before := submittedOpportunity()
		after := before.Clone()
		after.Status = domain.StatusDeclined
		after.DeclinedReason = "serviceability"
		after.LoanAmount = decimal.NewFromInt(650000)
		after.NetProfit = decimal.NewFromInt(90000)

		entries := rec.Diff(before, after, "serviceability", mctx, at)
		require.Greater(t, len(entries), 2)
		for i, e := range entries {
			id, err := uuid.Parse(e.EntryID)
			require.NoError(t, err)
			assert.Equal(t, uuid.Version(7), id.Version())
			if i > 0 {
				assert.Less(t, entries[i-1].EntryID, e.EntryID, "entry %d sorts before entry %d", i-1, i)
			}
		}
	})

	t.Run("target settlement date uses RFC3339", func(t *testing.T) {
		before := submittedOpportunity()
		after := before.Clone()
		target := time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC)
		after.TargetSettlementDate = &target

		entries := rec.Diff(before, after, "", mctx, at)
		require.Len(t, entries, 1)
		assert.Nil(t, entries[0].OldValue)
		assert.Equal(t, "2024-09-30T00:00:00Z", *entries[0].NewValue)
	})
}

func TestAuditRecorder_RecordStopsAtFirstFailure(t *testing.T) {
	repo := new(MockHistoryRepository)
	repo.On("AppendHistory", mock.Anything, mock.MatchedBy(func(e domain.HistoryEntry) bool { return e.EntryID == "a" })).Return(nil).Once()
	repo.On("AppendHistory", mock.Anything, mock.MatchedBy(func(e domain.HistoryEntry) bool { return e.EntryID == "b" })).Return(errors.New("disk full")).Once()
	rec := services.NewAuditRecorder(repo, nil)

	err := rec.Record(context.Background(), "opp-1", []domain.HistoryEntry{{EntryID: "a"}, {EntryID: "b"}, {EntryID: "c"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAuditWrite)
	var auditErr *apperrors.AuditWriteError
	require.True(t, errors.As(err, &auditErr))
	assert.Equal(t, 2, auditErr.Entries)
	assert.Equal(t, "opp-1", auditErr.OpportunityID)
	repo.AssertNumberOfCalls(t, "AppendHistory", 2)
}
