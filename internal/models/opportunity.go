package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Opportunity is a row of the opportunities table.
// Nullable text columns are pointers; risk answers are stored as '', 'yes' or 'no'.
type Opportunity struct {
	ID                      string          `db:"opportunity_id"`
	OpportunityNumber       string          `db:"opportunity_number"`
	OrganizationID          string          `db:"organization_id"`
	ClientID                string          `db:"client_id"`
	Status                  string          `db:"status"`
	LoanAmount              decimal.Decimal `db:"loan_amount"`
	PropertyValue           decimal.Decimal `db:"property_value"`
	NetProfit               decimal.Decimal `db:"net_profit"`
	Amortisation            decimal.Decimal `db:"amortisation"`
	Depreciation            decimal.Decimal `db:"depreciation"`
	ExistingInterestCosts   decimal.Decimal `db:"existing_interest_costs"`
	RentalExpense           decimal.Decimal `db:"rental_expense"`
	ProposedRentalIncome    decimal.Decimal `db:"proposed_rental_income"`
	ExistingLiabilities     string          `db:"existing_liabilities"`
	AdditionalSecurity      string          `db:"additional_security"`
	SMSFStructure           string          `db:"smsf_structure"`
	ATOLiabilities          string          `db:"ato_liabilities"`
	CreditIssues            string          `db:"credit_issues"`
	ICR                     float64         `db:"icr"`
	LVR                     float64         `db:"lvr"`
	OutcomeLevel            int             `db:"outcome_level"`
	DeclinedReason          *string         `db:"declined_reason"`
	CompletedDeclinedReason *string         `db:"completed_declined_reason"`
	WithdrawnReason         *string         `db:"withdrawn_reason"`
	IsUnqualified           bool            `db:"is_unqualified"`
	UnqualifiedReason       *string         `db:"unqualified_reason"`
	TargetSettlementDate    *time.Time      `db:"target_settlement_date"`
	DateSettled             *time.Time      `db:"date_settled"`
	AuditFields
}
