package dto

import (
	"time"

	"github.com/SscSPs/referral_pipeline/internal/core/domain"
)

// HistoryEntryResponse defines the data returned for a ledger entry.
type HistoryEntryResponse struct {
	EntryID   string               `json:"entryId"`
	FieldName *string              `json:"fieldName"`
	OldValue  *string              `json:"oldValue"`
	NewValue  *string              `json:"newValue"`
	Action    domain.HistoryAction `json:"action"`
	Reason    *string              `json:"reason,omitempty"`
	UserID    string               `json:"userId"`
	UserName  string               `json:"userName"`
	IPAddress string               `json:"ipAddress"`
	Timestamp time.Time            `json:"timestamp"`
}

// ListHistoryParams defines query parameters for reading an opportunity's history.
type ListHistoryParams struct {
	Limit     int     `form:"limit,default=50" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListHistoryResponse wraps a page of history entries, newest first.
type ListHistoryResponse struct {
	Entries   []HistoryEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToListHistoryResponse converts a page of domain.HistoryEntry values.
func ToListHistoryResponse(entries []domain.HistoryEntry, nextToken *string) ListHistoryResponse {
	res := make([]HistoryEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = HistoryEntryResponse{
			EntryID:   e.EntryID,
			FieldName: e.FieldName,
			OldValue:  e.OldValue,
			NewValue:  e.NewValue,
			Action:    e.Action,
			Reason:    e.Reason,
			UserID:    e.UserID,
			UserName:  e.UserName,
			IPAddress: e.IPAddress,
			Timestamp: e.Timestamp,
		}
	}
	return ListHistoryResponse{Entries: res, NextToken: nextToken}
}
