package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/referral_pipeline/internal/apperrors"
	"github.com/SscSPs/referral_pipeline/internal/core/domain"
	portssvc "github.com/SscSPs/referral_pipeline/internal/core/ports/services"
	"github.com/SscSPs/referral_pipeline/internal/core/services"
	"github.com/SscSPs/referral_pipeline/internal/dto"
	"github.com/SscSPs/referral_pipeline/internal/metrics"
	"github.com/SscSPs/referral_pipeline/internal/utils/scoring"
)

const testOrgID = "org-1"

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func statusPtr(s domain.Status) *domain.Status {
	return &s
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

// submittedOpportunity is scenario A at application_submitted: icr ~1.88, lvr 50, all no, green.
func submittedOpportunity() *domain.Opportunity {
	o := &domain.Opportunity{
		ID:                "opp-1",
		OpportunityNumber: "CF10020",
		OrganizationID:    testOrgID,
		ClientID:          "client-1",
		Status:            domain.StatusApplicationSubmitted,
		FinancialInputs: domain.FinancialInputs{
			LoanAmount:    decimal.NewFromInt(500000),
			PropertyValue: decimal.NewFromInt(1000000),
			NetProfit:     decimal.NewFromInt(80000),
		},
		RiskFlags: domain.RiskFlags{
			ExistingLiabilities: domain.AnswerNo,
			AdditionalSecurity:  domain.AnswerNo,
			SMSFStructure:       domain.AnswerNo,
			ATOLiabilities:      domain.AnswerNo,
			CreditIssues:        domain.AnswerNo,
		},
		AuditFields: domain.AuditFields{
			CreatedBy: "user-0",
			Version:   3,
		},
	}
	o.Score = scoring.Compute(scoring.FromOpportunity(o.FinancialInputs, o.RiskFlags, 8.5))
	return o
}

type OpportunityServiceTestSuite struct {
	suite.Suite
	oppRepo     *MockOpportunityRepository
	historyRepo *MockHistoryRepository
	metrics     *metrics.Metrics
	svc         portssvc.OpportunitySvcFacade
	now         time.Time
	mctx        domain.MutationContext
	ctx         context.Context
}

func (suite *OpportunityServiceTestSuite) SetupTest() {
	suite.oppRepo = new(MockOpportunityRepository)
	suite.historyRepo = new(MockHistoryRepository)
	suite.metrics = metrics.New(prometheus.NewRegistry())
	suite.now = time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC)
	suite.mctx = domain.MutationContext{UserID: "user-1", UserName: "Sam Broker", IPAddress: "10.0.0.7", OrganizationID: testOrgID}
	suite.ctx = context.Background()
	suite.svc = services.NewOpportunityService(suite.oppRepo, suite.historyRepo,
		services.WithClock(func() time.Time { return suite.now }),
		services.WithInterestRateProvider(portssvc.StaticInterestRate(8.5)),
		services.WithMetrics(suite.metrics),
	)
}

func (suite *OpportunityServiceTestSuite) expectLoad(o *domain.Opportunity) {
	suite.oppRepo.On("FindOpportunityByID", mock.Anything, o.ID).Return(o, nil)
}

func (suite *OpportunityServiceTestSuite) fieldNames(entries []domain.HistoryEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.FieldName != nil {
			names = append(names, *e.FieldName)
		}
	}
	return names
}

// --- CreateOpportunity ---

func (suite *OpportunityServiceTestSuite) TestCreateOpportunity_DefaultsAndScores() {
	req := dto.CreateOpportunityRequest{ClientID: " client-7 "}
	req.LoanAmount = decimalPtr(decimal.NewFromInt(500000))
	req.PropertyValue = decimalPtr(decimal.NewFromInt(1000000))
	req.NetProfit = decimalPtr(decimal.NewFromInt(80000))

	suite.oppRepo.On("NextOpportunityNumber", mock.Anything).Return("CF10021", nil).Once()
	suite.oppRepo.On("SaveOpportunity", mock.Anything, mock.MatchedBy(func(o domain.Opportunity) bool {
		return o.OpportunityNumber == "CF10021" && o.Version == 1
	})).Return(nil).Once()
	suite.historyRepo.On("AppendHistory", mock.Anything, mock.Anything).Return(nil).Once()

	opp, err := suite.svc.CreateOpportunity(suite.ctx, testOrgID, req, suite.mctx)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusOpportunity, opp.Status)
	suite.Equal("client-7", opp.ClientID)
	suite.Equal(testOrgID, opp.OrganizationID)
	suite.InDelta(50.0, opp.LVR, 1e-9)
	suite.Equal(domain.OutcomeYellow, opp.OutcomeLevel, "weak icr with unanswered flags")
	suite.Equal("user-1", opp.CreatedBy)

	entries := suite.historyRepo.recorded()
	suite.Require().Len(entries, 1)
	suite.Equal(domain.ActionCreated, entries[0].Action)
	suite.Nil(entries[0].FieldName)
	suite.Equal("opportunity", *entries[0].NewValue)
	suite.Equal("Sam Broker", entries[0].UserName)
	suite.Equal("10.0.0.7", entries[0].IPAddress)
	suite.Equal(opp.ID, entries[0].OpportunityID)
	suite.oppRepo.AssertExpectations(suite.T())
}

func (suite *OpportunityServiceTestSuite) TestCreateOpportunity_DraftWithoutInputsIsUnscored() {
	suite.oppRepo.On("NextOpportunityNumber", mock.Anything).Return("CF10022", nil).Once()
	suite.oppRepo.On("SaveOpportunity", mock.Anything, mock.Anything).Return(nil).Once()
	suite.historyRepo.On("AppendHistory", mock.Anything, mock.Anything).Return(nil).Once()

	opp, err := suite.svc.CreateOpportunity(suite.ctx, testOrgID, dto.CreateOpportunityRequest{ClientID: "c", Status: "draft"}, suite.mctx)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusDraft, opp.Status)
	suite.Equal(domain.OutcomeUnset, opp.OutcomeLevel)
	suite.Equal(10, opp.ProgressPercent())
}

func (suite *OpportunityServiceTestSuite) TestCreateOpportunity_RiskAnswersAloneAreScored() {
	no := domain.AnswerNo
	req := dto.CreateOpportunityRequest{ClientID: "c"}
	req.ExistingLiabilities, req.AdditionalSecurity, req.SMSFStructure, req.ATOLiabilities, req.CreditIssues = &no, &no, &no, &no, &no

	suite.oppRepo.On("NextOpportunityNumber", mock.Anything).Return("CF10024", nil).Once()
	suite.oppRepo.On("SaveOpportunity", mock.Anything, mock.Anything).Return(nil).Once()
	suite.historyRepo.On("AppendHistory", mock.Anything, mock.Anything).Return(nil).Once()

	opp, err := suite.svc.CreateOpportunity(suite.ctx, testOrgID, req, suite.mctx)

	suite.Require().NoError(err)
	want := scoring.Compute(scoring.FromOpportunity(opp.FinancialInputs, opp.RiskFlags, 8.5))
	suite.Equal(want, opp.Score)
	suite.Equal(domain.OutcomeGreen, opp.OutcomeLevel, "every answer no lifts the zero-input band to green")
}

func (suite *OpportunityServiceTestSuite) TestCreateOpportunity_RejectsLaterStatus() {
	_, err := suite.svc.CreateOpportunity(suite.ctx, testOrgID, dto.CreateOpportunityRequest{ClientID: "c", Status: "approved"}, suite.mctx)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.oppRepo.AssertNotCalled(suite.T(), "NextOpportunityNumber", mock.Anything)
}

func (suite *OpportunityServiceTestSuite) TestCreateOpportunity_RejectsNegativeMoney() {
	req := dto.CreateOpportunityRequest{ClientID: "c"}
	req.LoanAmount = decimalPtr(decimal.NewFromInt(-1))

	_, err := suite.svc.CreateOpportunity(suite.ctx, testOrgID, req, suite.mctx)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "loanAmount")
}

func (suite *OpportunityServiceTestSuite) TestCreateOpportunity_RejectsMoneyTheStoreCannotHold() {
	tests := []struct {
		name  string
		value string
	}{
		{"three decimal places", "500000.555"},
		{"seventeen integer digits", "10000000000000000"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			req := dto.CreateOpportunityRequest{ClientID: "c"}
			req.LoanAmount = decimalPtr(decimal.RequireFromString(tt.value))

			_, err := suite.svc.CreateOpportunity(suite.ctx, testOrgID, req, suite.mctx)

			suite.ErrorIs(err, apperrors.ErrValidation)
			suite.Contains(err.Error(), "loanAmount")
		})
	}
	suite.oppRepo.AssertNotCalled(suite.T(), "NextOpportunityNumber", mock.Anything)
}

func (suite *OpportunityServiceTestSuite) TestCreateOpportunity_SaveFailureIsPersistenceError() {
	suite.oppRepo.On("NextOpportunityNumber", mock.Anything).Return("CF10023", nil).Once()
	suite.oppRepo.On("SaveOpportunity", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

	opp, err := suite.svc.CreateOpportunity(suite.ctx, testOrgID, dto.CreateOpportunityRequest{ClientID: "c"}, suite.mctx)

	suite.Nil(opp)
	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.historyRepo.AssertNotCalled(suite.T(), "AppendHistory", mock.Anything, mock.Anything)
}

// --- ApplyMutation: transitions ---

func (suite *OpportunityServiceTestSuite) TestApplyMutation_DeclineWithoutReasonIsRejected() {
	current := submittedOpportunity()
	suite.expectLoad(current)

	opp, err := suite.svc.ApplyMutation(suite.ctx, testOrgID, current.ID, domain.OpportunityPatch{
		Status: statusPtr(domain.StatusDeclined),
		Reason: strPtr(""),
	}, suite.mctx)

	suite.Nil(opp)
	suite.ErrorIs(err, apperrors.ErrMissingReason)
	var tErr *domain.TransitionError
	suite.Require().True(errors.As(err, &tErr))
	suite.Equal(domain.ReasonDeclined, tErr.Field)
	suite.oppRepo.AssertNotCalled(suite.T(), "UpdateOpportunity", mock.Anything, mock.Anything)
	suite.historyRepo.AssertNotCalled(suite.T(), "AppendHistory", mock.Anything, mock.Anything)
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.TransitionRejections.WithLabelValues("missing_reason")))
}

func (suite *OpportunityServiceTestSuite) TestApplyMutation_DeclineRecordsStatusThenReason() {
	current := submittedOpportunity()
	suite.expectLoad(current)
	suite.oppRepo.On("UpdateOpportunity", mock.Anything, mock.MatchedBy(func(o domain.Opportunity) bool {
		return o.Status == domain.StatusDeclined && o.DeclinedReason == "serviceability" && o.Version == 3
	})).Return(nil).Once()
	suite.historyRepo.On("AppendHistory", mock.Anything, mock.Anything).Return(nil)

	opp, err := suite.svc.ApplyMutation(suite.ctx, testOrgID, current.ID, domain.OpportunityPatch{
		Status: statusPtr(domain.StatusDeclined),
		Reason: strPtr("  serviceability "),
	}, suite.mctx)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusDeclined, opp.Status)
	suite.Equal(int64(4), opp.Version)
	suite.Equal(80, opp.ProgressPercent())

	entries := suite.historyRepo.recorded()
	suite.Require().Len(entries, 2)
	suite.Equal(domain.ActionStatusChange, entries[0].Action)
	suite.Equal("application_submitted", *entries[0].OldValue)
	suite.Equal("declined", *entries[0].NewValue)
	suite.Equal("serviceability", *entries[0].Reason)
	suite.Equal(domain.ActionFieldUpdate, entries[1].Action)
	suite.Equal("declinedReason", *entries[1].FieldName)
	suite.Nil(entries[1].OldValue)
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.TransitionsTotal.WithLabelValues("application_submitted", "declined")))
}

func (suite *OpportunityServiceTestSuite) TestApplyMutation_DeclineAfterSettlementIsCompletionDecline() {
	current := submittedOpportunity()
	current.Status = domain.StatusSettled
	settled := suite.now.Add(-48 * time.Hour)
	current.DateSettled = &settled
	suite.expectLoad(current)
	suite.oppRepo.On("UpdateOpportunity", mock.Anything, mock.Anything).Return(nil).Once()
	suite.historyRepo.On("AppendHistory", mock.Anything, mock.Anything).Return(nil)

	opp, err := suite.svc.ApplyMutation(suite.ctx, testOrgID, current.ID, domain.OpportunityPatch{
		Status: statusPtr(domain.StatusDeclined),
		Reason: strPtr("settlement fell through"),
	}, suite.mctx)

	suite.Require().NoError(err)
	suite.Empty(opp.DeclinedReason)
	suite.Equal("settlement fell through", opp.CompletedDeclinedReason)
	suite.True(opp.InCompletionStage())
	suite.Equal(100, opp.ProgressPercent())
}

func (suite *OpportunityServiceTestSuite) TestApplyMutation_LeavingDeclinedClearsReason() {
	current := submittedOpportunity()
	current.Status = domain.StatusDeclined
	current.DeclinedReason = "serviceability"
	suite.expectLoad(current)
	suite.oppRepo.On("UpdateOpportunity", mock.Anything, mock.Anything).Return(nil).Once()
	suite.historyRepo.On("AppendHistory", mock.Anything, mock.Anything).Return(nil)

	opp, err := suite.svc.ApplyMutation(suite.ctx, testOrgID, current.ID, domain.OpportunityPatch{
		Status: statusPtr(domain.StatusApplicationCreated),
	}, suite.mctx)

	suite.Require().NoError(err)
	suite.Empty(opp.DeclinedReason)

	entries := suite.historyRepo.recorded()
	suite.Equal([]string{"status", "declinedReason"}, suite.fieldNames(entries))
	suite.Nil(entries[0].Reason)
	suite.Equal("serviceability", *entries[1].OldValue)
	suite.Nil(entries[1].NewValue)
}

func (suite *OpportunityServiceTestSuite) TestApplyMutation_SettlingStampsDateAndClearsUnqualified() {
	current := submittedOpportunity()
	current.Status = domain.StatusApproved
	current.IsUnqualified = true
	current.UnqualifiedReason = "no ABN"
	suite.expectLoad(current)
	suite.oppRepo.On("UpdateOpportunity", mock.Anything, mock.Anything).Return(nil).Once()
	suite.historyRepo.On("AppendHistory", mock.Anything, mock.Anything).Return(nil)

	opp, err := suite.svc.ApplyMutation(suite.ctx, testOrgID, current.ID, domain.OpportunityPatch{
		Status: statusPtr(domain.StatusSettled),
	}, suite.mctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(opp.DateSettled)
	suite.True(suite.now.Equal(*opp.DateSettled))
	suite.False(opp.IsUnqualified)
	suite.Empty(opp.UnqualifiedReason)
	suite.Equal([]string{"status", "isUnqualified", "unqualifiedReason", "dateSettled"}, suite.fieldNames(suite.historyRepo.recorded()))
}

func (suite *OpportunityServiceTestSuite) TestApplyMutation_CannotUnqualifySettled() {
	current := submittedOpportunity()
	current.Status = domain.StatusSettled
	suite.expectLoad(current)

	_, err := suite.svc.ApplyMutation(suite.ctx, testOrgID, current.ID, domain.OpportunityPatch{
		IsUnqualified:     boolPtr(true),
		UnqualifiedReason: strPtr("late discovery"),
	}, suite.mctx)

	suite.ErrorIs(err, apperrors.ErrValidation)
	var tErr *domain.TransitionError
	suite.Require().True(errors.As(err, &tErr))
	suite.Equal(domain.QualificationLocked, tErr.Kind)
	suite.oppRepo.AssertNotCalled(suite.T(), "UpdateOpportunity", mock.Anything, mock.Anything)
}

func (suite *OpportunityServiceTestSuite) TestApplyMutation_UnqualifyKeepsStatus() {
	current := submittedOpportunity()
	suite.expectLoad(current)
	suite.oppRepo.On("UpdateOpportunity", mock.Anything, mock.Anything).Return(nil).Once()
	suite.historyRepo.On("AppendHistory", mock.Anything, mock.Anything).Return(nil)

	opp, err := suite.svc.ApplyMutation(suite.ctx, testOrgID, current.ID, domain.OpportunityPatch{
		IsUnqualified:     boolPtr(true),
		UnqualifiedReason: strPtr("no ABN"),
	}, suite.mctx)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApplicationSubmitted, opp.Status)
	suite.True(opp.IsUnqualified)
	suite.Equal([]string{"isUnqualified", "unqualifiedReason"}, suite.fieldNames(suite.historyRepo.recorded()))
}

// --- ApplyMutation: scoring and audit ---

func (suite *OpportunityServiceTestSuite) TestApplyMutation_LoanAmountChangeRecordsScoreSiblings() {
	current := submittedOpportunity()
	suite.expectLoad(current)
	suite.oppRepo.On("UpdateOpportunity", mock.Anything, mock.Anything).Return(nil).Once()
	suite.historyRepo.On("AppendHistory", mock.Anything, mock.Anything).Return(nil)

	opp, err := suite.svc.ApplyMutation(suite.ctx, testOrgID, current.ID, domain.OpportunityPatch{
		LoanAmount: decimalPtr(decimal.NewFromInt(600000)),
	}, suite.mctx)

	suite.Require().NoError(err)
	suite.InDelta(60.0, opp.LVR, 1e-9)
	suite.InDelta(80000.0/51000.0, opp.ICR, 1e-9)
	suite.Equal(domain.OutcomeGreen, opp.OutcomeLevel)

	entries := suite.historyRepo.recorded()
	suite.Equal([]string{"loanAmount", "icr", "lvr"}, suite.fieldNames(entries))
	suite.Equal("500000", *entries[0].OldValue)
	suite.Equal("600000", *entries[0].NewValue)
	suite.Equal("50", *entries[2].OldValue)
	suite.Equal("60", *entries[2].NewValue)
	for _, e := range entries {
		suite.Equal(domain.ActionFieldUpdate, e.Action)
		suite.Equal("user-1", e.UserID)
		suite.True(suite.now.Equal(e.Timestamp))
	}
}

func (suite *OpportunityServiceTestSuite) TestApplyMutation_RiskAnswerYesDowngrades() {
	current := submittedOpportunity()
	suite.expectLoad(current)
	suite.oppRepo.On("UpdateOpportunity", mock.Anything, mock.Anything).Return(nil).Once()
	suite.historyRepo.On("AppendHistory", mock.Anything, mock.Anything).Return(nil)

	yes := domain.AnswerYes
	opp, err := suite.svc.ApplyMutation(suite.ctx, testOrgID, current.ID, domain.OpportunityPatch{
		CreditIssues: &yes,
	}, suite.mctx)

	suite.Require().NoError(err)
	suite.Equal(domain.OutcomeYellow, opp.OutcomeLevel)
	suite.Equal([]string{"creditIssues", "outcomeLevel"}, suite.fieldNames(suite.historyRepo.recorded()))
}

func (suite *OpportunityServiceTestSuite) TestApplyMutation_EquivalentDecimalIsNoop() {
	current := submittedOpportunity()
	suite.expectLoad(current)

	opp, err := suite.svc.ApplyMutation(suite.ctx, testOrgID, current.ID, domain.OpportunityPatch{
		LoanAmount: decimalPtr(decimal.RequireFromString("500000.00")),
		ClientID:   strPtr("client-1"),
	}, suite.mctx)

	suite.Require().NoError(err)
	suite.Equal(int64(3), opp.Version)
	suite.oppRepo.AssertNotCalled(suite.T(), "UpdateOpportunity", mock.Anything, mock.Anything)
	suite.historyRepo.AssertNotCalled(suite.T(), "AppendHistory", mock.Anything, mock.Anything)
}

func (suite *OpportunityServiceTestSuite) TestApplyMutation_MoneyScaleIsCheckedBeforeScoring() {
	current := submittedOpportunity()
	suite.expectLoad(current)

	_, err := suite.svc.ApplyMutation(suite.ctx, testOrgID, current.ID, domain.OpportunityPatch{
		LoanAmount: decimalPtr(decimal.RequireFromString("500000.555")),
	}, suite.mctx)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.oppRepo.AssertNotCalled(suite.T(), "UpdateOpportunity", mock.Anything, mock.Anything)
	suite.historyRepo.AssertNotCalled(suite.T(), "AppendHistory", mock.Anything, mock.Anything)
}

func (suite *OpportunityServiceTestSuite) TestApplyMutation_TrailingZeroCentsAreAccepted() {
	current := submittedOpportunity()
	suite.expectLoad(current)
	suite.oppRepo.On("UpdateOpportunity", mock.Anything, mock.Anything).Return(nil).Once()
	suite.historyRepo.On("AppendHistory", mock.Anything, mock.Anything).Return(nil)

	opp, err := suite.svc.ApplyMutation(suite.ctx, testOrgID, current.ID, domain.OpportunityPatch{
		LoanAmount: decimalPtr(decimal.RequireFromString("600000.500")),
	}, suite.mctx)

	suite.Require().NoError(err)
	suite.True(opp.LoanAmount.Equal(decimal.RequireFromString("600000.5")))
}

func (suite *OpportunityServiceTestSuite) TestApplyMutation_AuditWriteFailureKeepsChange() {
	current := submittedOpportunity()
	suite.expectLoad(current)
	suite.oppRepo.On("UpdateOpportunity", mock.Anything, mock.Anything).Return(nil).Once()
	suite.historyRepo.On("AppendHistory", mock.Anything, mock.Anything).Return(errors.New("ledger unavailable")).Once()

	opp, err := suite.svc.ApplyMutation(suite.ctx, testOrgID, current.ID, domain.OpportunityPatch{
		LoanAmount: decimalPtr(decimal.NewFromInt(600000)),
	}, suite.mctx)

	suite.Require().NotNil(opp, "the saved opportunity is still returned")
	suite.Equal(int64(4), opp.Version)
	suite.True(opp.LoanAmount.Equal(decimal.NewFromInt(600000)))
	suite.ErrorIs(err, apperrors.ErrAuditWrite)
	suite.NotErrorIs(err, apperrors.ErrPersistence)
	var auditErr *apperrors.AuditWriteError
	suite.Require().True(errors.As(err, &auditErr))
	suite.Equal(3, auditErr.Entries)
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.AuditWriteFailuresTotal))
}

func (suite *OpportunityServiceTestSuite) TestApplyMutation_VersionConflict() {
	current := submittedOpportunity()
	suite.expectLoad(current)
	suite.oppRepo.On("UpdateOpportunity", mock.Anything, mock.Anything).Return(apperrors.ErrConflict).Once()

	opp, err := suite.svc.ApplyMutation(suite.ctx, testOrgID, current.ID, domain.OpportunityPatch{
		ClientID: strPtr("client-2"),
	}, suite.mctx)

	suite.Nil(opp)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.historyRepo.AssertNotCalled(suite.T(), "AppendHistory", mock.Anything, mock.Anything)
}

func (suite *OpportunityServiceTestSuite) TestApplyMutation_OtherOrganizationIsNotFound() {
	current := submittedOpportunity()
	current.OrganizationID = "org-2"
	suite.expectLoad(current)

	_, err := suite.svc.ApplyMutation(suite.ctx, testOrgID, current.ID, domain.OpportunityPatch{ClientID: strPtr("x")}, suite.mctx)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *OpportunityServiceTestSuite) TestApplyMutation_UnknownIDIsNotFound() {
	suite.oppRepo.On("FindOpportunityByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)

	_, err := suite.svc.ApplyMutation(suite.ctx, testOrgID, "missing", domain.OpportunityPatch{}, suite.mctx)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *OpportunityServiceTestSuite) TestApplyMutation_BlankClientIDIsRejected() {
	current := submittedOpportunity()
	suite.expectLoad(current)

	_, err := suite.svc.ApplyMutation(suite.ctx, testOrgID, current.ID, domain.OpportunityPatch{ClientID: strPtr("  ")}, suite.mctx)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Delete, history and preview ---

func (suite *OpportunityServiceTestSuite) TestDeleteOpportunity_AppendsDeletedEntry() {
	current := submittedOpportunity()
	suite.expectLoad(current)
	suite.oppRepo.On("DeleteOpportunity", mock.Anything, current.ID).Return(nil).Once()
	suite.historyRepo.On("AppendHistory", mock.Anything, mock.MatchedBy(func(e domain.HistoryEntry) bool {
		return e.Action == domain.ActionDeleted && e.OpportunityID == current.ID && *e.OldValue == "application_submitted"
	})).Return(nil).Once()

	err := suite.svc.DeleteOpportunity(suite.ctx, testOrgID, current.ID, suite.mctx)

	suite.NoError(err)
	suite.historyRepo.AssertExpectations(suite.T())
}

func (suite *OpportunityServiceTestSuite) TestListHistory_ClampsLimit() {
	current := submittedOpportunity()
	suite.expectLoad(current)
	page := []domain.HistoryEntry{{EntryID: "h2"}, {EntryID: "h1"}}
	suite.historyRepo.On("ListHistory", mock.Anything, current.ID, 100, (*string)(nil)).Return(page, "next", nil).Once()

	entries, next, err := suite.svc.ListHistory(suite.ctx, testOrgID, current.ID, dto.ListHistoryParams{Limit: 500})

	suite.Require().NoError(err)
	suite.Len(entries, 2)
	suite.Require().NotNil(next)
	suite.Equal("next", *next)
}

func (suite *OpportunityServiceTestSuite) TestListOpportunities_StatusFilter() {
	_, _, err := suite.svc.ListOpportunities(suite.ctx, testOrgID, dto.ListOpportunitiesParams{Status: "archived"})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.oppRepo.AssertNotCalled(suite.T(), "ListOpportunities", mock.Anything, mock.Anything)
}

func (suite *OpportunityServiceTestSuite) TestPreviewScore_UsesRateProvider() {
	svc := services.NewOpportunityService(suite.oppRepo, suite.historyRepo,
		services.WithInterestRateProvider(portssvc.StaticInterestRate(10)))

	req := dto.ScorePreviewRequest{}
	req.LoanAmount = decimalPtr(decimal.NewFromInt(500000))
	req.PropertyValue = decimalPtr(decimal.NewFromInt(1000000))
	req.NetProfit = decimalPtr(decimal.NewFromInt(80000))

	score, rate, err := svc.PreviewScore(suite.ctx, req)

	suite.Require().NoError(err)
	suite.Equal(10.0, rate)
	suite.InDelta(80000.0/50000.0, score.ICR, 1e-9)
	suite.Equal(domain.OutcomeYellow, score.OutcomeLevel)
}

func TestOpportunityService(t *testing.T) {
	suite.Run(t, new(OpportunityServiceTestSuite))
}

// --- Transactional store ---

func TestApplyMutation_AtomicWriter(t *testing.T) {
	repo := new(MockAtomicOpportunityRepository)
	history := new(MockHistoryRepository)
	svc := services.NewOpportunityService(repo, history)

	current := submittedOpportunity()
	repo.On("FindOpportunityByID", mock.Anything, current.ID).Return(current, nil)
	repo.On("UpdateOpportunityWithHistory", mock.Anything, mock.Anything, mock.MatchedBy(func(entries []domain.HistoryEntry) bool {
		return len(entries) == 2 && entries[0].Action == domain.ActionStatusChange
	})).Return(nil).Once()

	opp, err := svc.ApplyMutation(context.Background(), testOrgID, current.ID, domain.OpportunityPatch{
		Status: statusPtr(domain.StatusWithdrawn),
		Reason: strPtr("client went elsewhere"),
	}, domain.MutationContext{UserID: "user-1", OrganizationID: testOrgID})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opp.WithdrawnReason != "client went elsewhere" {
		t.Fatalf("withdrawn reason not stored: %q", opp.WithdrawnReason)
	}
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "UpdateOpportunity", mock.Anything, mock.Anything)
	history.AssertNotCalled(t, "AppendHistory", mock.Anything, mock.Anything)
}

func TestApplyMutation_AtomicWriterFailureIsPersistenceError(t *testing.T) {
	repo := new(MockAtomicOpportunityRepository)
	svc := services.NewOpportunityService(repo, new(MockHistoryRepository))

	current := submittedOpportunity()
	repo.On("FindOpportunityByID", mock.Anything, current.ID).Return(current, nil)
	repo.On("UpdateOpportunityWithHistory", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("tx aborted")).Once()

	opp, err := svc.ApplyMutation(context.Background(), testOrgID, current.ID, domain.OpportunityPatch{
		ClientID: strPtr("client-9"),
	}, domain.MutationContext{UserID: "user-1"})

	if opp != nil {
		t.Fatalf("expected no opportunity on persistence failure")
	}
	if !errors.Is(err, apperrors.ErrPersistence) || errors.Is(err, apperrors.ErrAuditWrite) {
		t.Fatalf("expected a persistence failure, got %v", err)
	}
}
