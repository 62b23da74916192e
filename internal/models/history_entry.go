package models

import "time"

// HistoryEntry is a row of the append-only opportunity_history table.
type HistoryEntry struct {
	EntryID       string    `db:"entry_id"`
	OpportunityID string    `db:"opportunity_id"`
	FieldName     *string   `db:"field_name"`
	OldValue      *string   `db:"old_value"`
	NewValue      *string   `db:"new_value"`
	Action        string    `db:"action"`
	Reason        *string   `db:"reason"`
	UserID        string    `db:"user_id"`
	UserName      string    `db:"user_name"`
	IPAddress     string    `db:"ip_address"`
	CreatedAt     time.Time `db:"created_at"`
}
