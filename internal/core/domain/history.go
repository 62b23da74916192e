package domain

import (
	"strconv"
	"time"
)

// HistoryAction is the kind of event a history entry records.
type HistoryAction string

const (
	ActionCreated        HistoryAction = "created"
	ActionStatusChange   HistoryAction = "status_change"
	ActionFieldUpdate    HistoryAction = "field_update"
	ActionDeleted        HistoryAction = "deleted"
	ActionCommentAdded   HistoryAction = "comment_added"
	ActionCommentUpdated HistoryAction = "comment_updated"
	ActionCommentDeleted HistoryAction = "comment_deleted"
)

// HistoryEntry is an append-only ledger record. Entries are never updated or deleted.
type HistoryEntry struct {
	EntryID       string        `json:"entryId"`
	OpportunityID string        `json:"opportunityId"`
	FieldName     *string       `json:"fieldName"` // nil for whole-record events
	OldValue      *string       `json:"oldValue"`
	NewValue      *string       `json:"newValue"`
	Action        HistoryAction `json:"action"`
	Reason        *string       `json:"reason,omitempty"`
	UserID        string        `json:"userId"`
	UserName      string        `json:"userName"`
	IPAddress     string        `json:"ipAddress"`
	Timestamp     time.Time     `json:"timestamp"`
}

// FieldStatus is the field name used on status_change entries.
const FieldStatus = "status"

// TrackedField is a field of Opportunity that is recorded in the history.
type TrackedField string

const (
	FieldClientID                TrackedField = "clientId"
	FieldLoanAmount              TrackedField = "loanAmount"
	FieldPropertyValue           TrackedField = "propertyValue"
	FieldNetProfit               TrackedField = "netProfit"
	FieldAmortisation            TrackedField = "amortisation"
	FieldDepreciation            TrackedField = "depreciation"
	FieldExistingInterestCosts   TrackedField = "existingInterestCosts"
	FieldRentalExpense           TrackedField = "rentalExpense"
	FieldProposedRentalIncome    TrackedField = "proposedRentalIncome"
	FieldExistingLiabilities     TrackedField = "existingLiabilities"
	FieldAdditionalSecurity      TrackedField = "additionalSecurity"
	FieldSMSFStructure           TrackedField = "smsfStructure"
	FieldATOLiabilities          TrackedField = "atoLiabilities"
	FieldCreditIssues            TrackedField = "creditIssues"
	FieldICR                     TrackedField = "icr"
	FieldLVR                     TrackedField = "lvr"
	FieldOutcomeLevel            TrackedField = "outcomeLevel"
	FieldDeclinedReason          TrackedField = "declinedReason"
	FieldCompletedDeclinedReason TrackedField = "completedDeclinedReason"
	FieldWithdrawnReason         TrackedField = "withdrawnReason"
	FieldIsUnqualified           TrackedField = "isUnqualified"
	FieldUnqualifiedReason       TrackedField = "unqualifiedReason"
	FieldTargetSettlementDate    TrackedField = "targetSettlementDate"
	FieldDateSettled             TrackedField = "dateSettled"
)

// TrackedFields is the allow-list of audited fields, in the order entries are emitted.
// Bookkeeping fields (version, last updated) are intentionally absent.
var TrackedFields = []TrackedField{
	FieldClientID,
	FieldLoanAmount,
	FieldPropertyValue,
	FieldNetProfit,
	FieldAmortisation,
	FieldDepreciation,
	FieldExistingInterestCosts,
	FieldRentalExpense,
	FieldProposedRentalIncome,
	FieldExistingLiabilities,
	FieldAdditionalSecurity,
	FieldSMSFStructure,
	FieldATOLiabilities,
	FieldCreditIssues,
	FieldICR,
	FieldLVR,
	FieldOutcomeLevel,
	FieldDeclinedReason,
	FieldCompletedDeclinedReason,
	FieldWithdrawnReason,
	FieldIsUnqualified,
	FieldUnqualifiedReason,
	FieldTargetSettlementDate,
	FieldDateSettled,
}

// ValueOf renders the field of o as a canonical string, or nil when unset.
// Two values are equal exactly when their canonical strings are equal.
func (f TrackedField) ValueOf(o *Opportunity) *string {
	switch f {
	case FieldClientID:
		return optionalString(o.ClientID)
	case FieldLoanAmount:
		return strPtr(o.LoanAmount.String())
	case FieldPropertyValue:
		return strPtr(o.PropertyValue.String())
	case FieldNetProfit:
		return strPtr(o.NetProfit.String())
	case FieldAmortisation:
		return strPtr(o.Amortisation.String())
	case FieldDepreciation:
		return strPtr(o.Depreciation.String())
	case FieldExistingInterestCosts:
		return strPtr(o.ExistingInterestCosts.String())
	case FieldRentalExpense:
		return strPtr(o.RentalExpense.String())
	case FieldProposedRentalIncome:
		return strPtr(o.ProposedRentalIncome.String())
	case FieldExistingLiabilities:
		return optionalString(string(o.ExistingLiabilities))
	case FieldAdditionalSecurity:
		return optionalString(string(o.AdditionalSecurity))
	case FieldSMSFStructure:
		return optionalString(string(o.SMSFStructure))
	case FieldATOLiabilities:
		return optionalString(string(o.ATOLiabilities))
	case FieldCreditIssues:
		return optionalString(string(o.CreditIssues))
	case FieldICR:
		return strPtr(strconv.FormatFloat(o.ICR, 'f', -1, 64))
	case FieldLVR:
		return strPtr(strconv.FormatFloat(o.LVR, 'f', -1, 64))
	case FieldOutcomeLevel:
		if o.OutcomeLevel == OutcomeUnset {
			return nil
		}
		return strPtr(strconv.Itoa(int(o.OutcomeLevel)))
	case FieldDeclinedReason:
		return optionalString(o.DeclinedReason)
	case FieldCompletedDeclinedReason:
		return optionalString(o.CompletedDeclinedReason)
	case FieldWithdrawnReason:
		return optionalString(o.WithdrawnReason)
	case FieldIsUnqualified:
		return strPtr(strconv.FormatBool(o.IsUnqualified))
	case FieldUnqualifiedReason:
		return optionalString(o.UnqualifiedReason)
	case FieldTargetSettlementDate:
		return optionalTime(o.TargetSettlementDate)
	case FieldDateSettled:
		return optionalTime(o.DateSettled)
	}
	return nil
}

// SameValue compares two rendered values.
func SameValue(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func strPtr(s string) *string {
	return &s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return strPtr(t.UTC().Format(time.RFC3339))
}
