package mapping

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/referral_pipeline/internal/core/domain"
)

func TestOpportunityMapping_NullableReasons(t *testing.T) {
	settled := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	d := domain.Opportunity{
		ID:              "opp-1",
		Status:          domain.StatusWithdrawn,
		WithdrawnReason: "client went elsewhere",
		FinancialInputs: domain.FinancialInputs{LoanAmount: decimal.RequireFromString("500000.50")},
		RiskFlags:       domain.RiskFlags{CreditIssues: domain.AnswerYes},
		Score:           domain.Score{ICR: 1.2, LVR: 50, OutcomeLevel: domain.OutcomeRed},
		DateSettled:     &settled,
		AuditFields:     domain.AuditFields{Version: 4},
	}

	m := ToModelOpportunity(d)
	assert.Nil(t, m.DeclinedReason)
	assert.Equal(t, "client went elsewhere", *m.WithdrawnReason)
	assert.Equal(t, "yes", m.CreditIssues)
	assert.Equal(t, 3, m.OutcomeLevel)

	back := ToDomainOpportunity(m)
	assert.Equal(t, d, back)
}

func TestHistoryMapping_NormalisesToUTC(t *testing.T) {
	at := time.Date(2024, 7, 1, 19, 30, 0, 0, time.FixedZone("AEST", 10*60*60))
	entry := ToDomainHistoryEntry(ToModelHistoryEntry(domain.HistoryEntry{EntryID: "e", Action: domain.ActionCreated, Timestamp: at}))

	assert.Equal(t, time.UTC, entry.Timestamp.Location())
	assert.True(t, entry.Timestamp.Equal(at))
	assert.Equal(t, domain.ActionCreated, entry.Action)
}

func TestBookkeepingMapping(t *testing.T) {
	local := time.Date(2024, 7, 1, 9, 0, 0, 0, time.FixedZone("AWST", 8*60*60))
	m := toModelBookkeeping(domain.AuditFields{CreatedAt: local, CreatedBy: "user-1", Version: 2})

	assert.Equal(t, time.UTC, m.CreatedAt.Location())
	assert.True(t, m.LastUpdatedAt.IsZero())

	d := toDomainBookkeeping(m)
	assert.True(t, d.CreatedAt.Equal(local))
	assert.Equal(t, "user-1", d.CreatedBy)
	assert.Equal(t, int64(2), d.Version)
	assert.Equal(t, time.Time{}, d.LastUpdatedAt)
}
