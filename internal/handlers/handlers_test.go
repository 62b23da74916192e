package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/referral_pipeline/internal/apperrors"
	"github.com/SscSPs/referral_pipeline/internal/core/domain"
	portssvc "github.com/SscSPs/referral_pipeline/internal/core/ports/services"
	"github.com/SscSPs/referral_pipeline/internal/dto"
	"github.com/SscSPs/referral_pipeline/internal/handlers"
	"github.com/SscSPs/referral_pipeline/internal/middleware"
	"github.com/SscSPs/referral_pipeline/internal/platform/config"
)

// --- Mock OpportunityService ---
type MockOpportunityService struct {
	mock.Mock
}

func (m *MockOpportunityService) GetOpportunityByID(ctx context.Context, organizationID, opportunityID string) (*domain.Opportunity, error) {
	args := m.Called(ctx, organizationID, opportunityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Opportunity), args.Error(1)
}

func (m *MockOpportunityService) ListOpportunities(ctx context.Context, organizationID string, params dto.ListOpportunitiesParams) ([]domain.Opportunity, *string, error) {
	args := m.Called(ctx, organizationID, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Opportunity), args.Get(1).(*string), args.Error(2)
}

func (m *MockOpportunityService) ListHistory(ctx context.Context, organizationID, opportunityID string, params dto.ListHistoryParams) ([]domain.HistoryEntry, *string, error) {
	args := m.Called(ctx, organizationID, opportunityID, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.HistoryEntry), args.Get(1).(*string), args.Error(2)
}

func (m *MockOpportunityService) CreateOpportunity(ctx context.Context, organizationID string, req dto.CreateOpportunityRequest, mctx domain.MutationContext) (*domain.Opportunity, error) {
	args := m.Called(ctx, organizationID, req, mctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Opportunity), args.Error(1)
}

func (m *MockOpportunityService) ApplyMutation(ctx context.Context, organizationID, opportunityID string, patch domain.OpportunityPatch, mctx domain.MutationContext) (*domain.Opportunity, error) {
	args := m.Called(ctx, organizationID, opportunityID, patch, mctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Opportunity), args.Error(1)
}

func (m *MockOpportunityService) DeleteOpportunity(ctx context.Context, organizationID, opportunityID string, mctx domain.MutationContext) error {
	args := m.Called(ctx, organizationID, opportunityID, mctx)
	return args.Error(0)
}

func (m *MockOpportunityService) PreviewScore(ctx context.Context, req dto.ScorePreviewRequest) (domain.Score, float64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Score), args.Get(1).(float64), args.Error(2)
}

var _ portssvc.OpportunitySvcFacade = (*MockOpportunityService)(nil)

// --- Mock CommentService ---
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) ListComments(ctx context.Context, organizationID, opportunityID string) ([]domain.Comment, error) {
	args := m.Called(ctx, organizationID, opportunityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *MockCommentService) CreateComment(ctx context.Context, organizationID, opportunityID string, req dto.CreateCommentRequest, mctx domain.MutationContext) (*domain.Comment, error) {
	args := m.Called(ctx, organizationID, opportunityID, req, mctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentService) UpdateComment(ctx context.Context, organizationID, opportunityID, commentID string, req dto.UpdateCommentRequest, mctx domain.MutationContext) (*domain.Comment, error) {
	args := m.Called(ctx, organizationID, opportunityID, commentID, req, mctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentService) DeleteComment(ctx context.Context, organizationID, opportunityID, commentID string, mctx domain.MutationContext) error {
	args := m.Called(ctx, organizationID, opportunityID, commentID, mctx)
	return args.Error(0)
}

var _ portssvc.CommentSvcFacade = (*MockCommentService)(nil)

const testJWTSecret = "handler-test-secret"

type HandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	opportunitySvc *MockOpportunityService
	commentSvc     *MockCommentService
	token          string
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.opportunitySvc = new(MockOpportunityService)
	suite.commentSvc = new(MockCommentService)

	cfg := &config.Config{JWTSecret: testJWTSecret, IsProduction: true}
	services := &portssvc.ServiceContainer{
		Opportunity:  suite.opportunitySvc,
		Comment:      suite.commentSvc,
		InterestRate: portssvc.StaticInterestRate(8.5),
	}
	suite.router = gin.New()
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, services, nil))

	token, err := middleware.SignToken(testJWTSecret, "user-1", "Sam Broker", "org-1", time.Hour)
	suite.Require().NoError(err)
	suite.token = token
}

func (suite *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v))
}

func isActor(mctx domain.MutationContext) bool {
	return mctx.UserID == "user-1" && mctx.UserName == "Sam Broker" && mctx.OrganizationID == "org-1"
}

func sampleOpportunity() *domain.Opportunity {
	return &domain.Opportunity{
		ID:                "opp-1",
		OpportunityNumber: "CF10020",
		OrganizationID:    "org-1",
		ClientID:          "client-1",
		Status:            domain.StatusOpportunity,
		FinancialInputs:   domain.FinancialInputs{LoanAmount: decimal.NewFromInt(500000), PropertyValue: decimal.NewFromInt(1000000)},
		Score:             domain.Score{ICR: 1.88, LVR: 50, OutcomeLevel: domain.OutcomeYellow},
		AuditFields:       domain.AuditFields{Version: 1},
	}
}

func (suite *HandlerTestSuite) TestHealthIsPublic() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestRequiresToken() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/organizations/org-1/opportunities/opp-1", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.opportunitySvc.AssertNotCalled(suite.T(), "GetOpportunityByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateOpportunity() {
	suite.opportunitySvc.On("CreateOpportunity", mock.Anything, "org-1",
		mock.MatchedBy(func(r dto.CreateOpportunityRequest) bool {
			return r.ClientID == "client-1" && r.LoanAmount != nil && r.LoanAmount.Equal(decimal.NewFromInt(500000))
		}),
		mock.MatchedBy(isActor),
	).Return(sampleOpportunity(), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/organizations/org-1/opportunities", map[string]any{
		"clientId":      "client-1",
		"loanAmount":    500000,
		"propertyValue": "1000000",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.OpportunityResponse
	suite.decode(w, &resp)
	suite.Equal("CF10020", resp.OpportunityNumber)
	suite.Equal("yellow", resp.Outcome)
	suite.Equal(20, resp.ProgressPercent)
	suite.opportunitySvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateOpportunity_BindingErrors() {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing client", map[string]any{"loanAmount": 1}},
		{"later status", map[string]any{"clientId": "c", "status": "approved"}},
		{"unknown risk answer", map[string]any{"clientId": "c", "creditIssues": "maybe"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/organizations/org-1/opportunities", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.opportunitySvc.AssertNotCalled(suite.T(), "CreateOpportunity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateOpportunity_HistoryFailureStillCreated() {
	auditErr := &apperrors.AuditWriteError{OpportunityID: "opp-1", Entries: 1, Err: errors.New("down")}
	suite.opportunitySvc.On("CreateOpportunity", mock.Anything, "org-1", mock.Anything, mock.Anything).
		Return(sampleOpportunity(), auditErr).Once()

	w := suite.do(http.MethodPost, "/api/v1/organizations/org-1/opportunities", map[string]any{"clientId": "client-1"})

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateOpportunity_ErrorMapping() {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing reason", fmt.Errorf("%w: declined", apperrors.ErrMissingReason), http.StatusBadRequest},
		{"invalid transition", fmt.Errorf("%w: settled to draft", apperrors.ErrValidation), http.StatusBadRequest},
		{"version conflict", apperrors.ErrConflict, http.StatusConflict},
		{"not found", apperrors.NewNotFoundError("opportunity opp-1"), http.StatusNotFound},
		{"store down", fmt.Errorf("%w: save opportunity: boom", apperrors.ErrPersistence), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.opportunitySvc.On("ApplyMutation", mock.Anything, "org-1", "opp-1", mock.Anything, mock.Anything).
				Return(nil, tt.err).Once()

			w := suite.do(http.MethodPatch, "/api/v1/organizations/org-1/opportunities/opp-1", map[string]any{"status": "declined"})

			suite.Equal(tt.want, w.Code)
		})
	}
}

func (suite *HandlerTestSuite) TestUpdateOpportunity_PassesPatch() {
	updated := sampleOpportunity()
	updated.Status = domain.StatusWithdrawn
	updated.WithdrawnReason = "client went elsewhere"
	suite.opportunitySvc.On("ApplyMutation", mock.Anything, "org-1", "opp-1",
		mock.MatchedBy(func(p domain.OpportunityPatch) bool {
			return p.Status != nil && *p.Status == domain.StatusWithdrawn &&
				p.Reason != nil && *p.Reason == "client went elsewhere"
		}),
		mock.MatchedBy(isActor),
	).Return(updated, nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/organizations/org-1/opportunities/opp-1", map[string]any{
		"status": "Withdrawn",
		"reason": "client went elsewhere",
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.OpportunityResponse
	suite.decode(w, &resp)
	suite.Equal(100, resp.ProgressPercent)
	suite.opportunitySvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestUpdateOpportunity_UnknownStatus() {
	w := suite.do(http.MethodPatch, "/api/v1/organizations/org-1/opportunities/opp-1", map[string]any{"status": "archived"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.opportunitySvc.AssertNotCalled(suite.T(), "ApplyMutation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetOpportunity_NotFound() {
	suite.opportunitySvc.On("GetOpportunityByID", mock.Anything, "org-1", "missing").
		Return(nil, apperrors.NewNotFoundError("opportunity missing")).Once()

	w := suite.do(http.MethodGet, "/api/v1/organizations/org-1/opportunities/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListOpportunities_Paging() {
	next := "token-2"
	suite.opportunitySvc.On("ListOpportunities", mock.Anything, "org-1",
		mock.MatchedBy(func(p dto.ListOpportunitiesParams) bool {
			return p.Status == "approved" && p.Limit == 5 && p.NextToken != nil && *p.NextToken == "token-1"
		}),
	).Return([]domain.Opportunity{*sampleOpportunity()}, &next, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/organizations/org-1/opportunities?status=approved&limit=5&nextToken=token-1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListOpportunitiesResponse
	suite.decode(w, &resp)
	suite.Len(resp.Opportunities, 1)
	suite.Equal("token-2", *resp.NextToken)
}

func (suite *HandlerTestSuite) TestListOpportunities_LimitTooLarge() {
	w := suite.do(http.MethodGet, "/api/v1/organizations/org-1/opportunities?limit=500", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListHistory() {
	field := "status"
	entries := []domain.HistoryEntry{{EntryID: "e-1", OpportunityID: "opp-1", FieldName: &field, Action: domain.ActionStatusChange}}
	suite.opportunitySvc.On("ListHistory", mock.Anything, "org-1", "opp-1", mock.Anything).
		Return(entries, (*string)(nil), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/organizations/org-1/opportunities/opp-1/history", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListHistoryResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Entries, 1)
	suite.Equal(domain.ActionStatusChange, resp.Entries[0].Action)
	suite.Nil(resp.NextToken)
}

func (suite *HandlerTestSuite) TestDeleteOpportunity() {
	suite.opportunitySvc.On("DeleteOpportunity", mock.Anything, "org-1", "opp-1", mock.MatchedBy(isActor)).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/organizations/org-1/opportunities/opp-1", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestComments() {
	comment := &domain.Comment{CommentID: "c-1", OpportunityID: "opp-1", OrganizationID: "org-1", Body: "called", AuthorID: "user-1"}
	suite.commentSvc.On("CreateComment", mock.Anything, "org-1", "opp-1", dto.CreateCommentRequest{Body: "called"}, mock.MatchedBy(isActor)).
		Return(comment, nil).Once()
	suite.commentSvc.On("ListComments", mock.Anything, "org-1", "opp-1").Return([]domain.Comment{*comment}, nil).Once()
	suite.commentSvc.On("UpdateComment", mock.Anything, "org-1", "opp-1", "c-1", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: only the author's organization can change this comment", apperrors.ErrForbidden)).Once()
	suite.commentSvc.On("DeleteComment", mock.Anything, "org-1", "opp-1", "c-2", mock.Anything).
		Return(apperrors.NewNotFoundError("comment c-2")).Once()

	w := suite.do(http.MethodPost, "/api/v1/organizations/org-1/opportunities/opp-1/comments", map[string]any{"body": "called"})
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/organizations/org-1/opportunities/opp-1/comments", nil)
	suite.Equal(http.StatusOK, w.Code)
	var list []dto.CommentResponse
	suite.decode(w, &list)
	suite.Len(list, 1)

	w = suite.do(http.MethodPut, "/api/v1/organizations/org-1/opportunities/opp-1/comments/c-1", map[string]any{"body": "edited"})
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodDelete, "/api/v1/organizations/org-1/opportunities/opp-1/comments/c-2", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/organizations/org-1/opportunities/opp-1/comments", map[string]any{})
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.commentSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCommentActorOrganizationComesFromToken() {
	suite.commentSvc.On("UpdateComment", mock.Anything, "org-2", "opp-9", "c-9", dto.UpdateCommentRequest{Body: "edited"},
		mock.MatchedBy(func(mctx domain.MutationContext) bool { return mctx.OrganizationID == "org-1" })).
		Return(nil, fmt.Errorf("%w: only the author's organization can change this comment", apperrors.ErrForbidden)).Once()

	w := suite.do(http.MethodPut, "/api/v1/organizations/org-2/opportunities/opp-9/comments/c-9", map[string]any{"body": "edited"})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.commentSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestPreviewScore() {
	suite.opportunitySvc.On("PreviewScore", mock.Anything, mock.MatchedBy(func(r dto.ScorePreviewRequest) bool {
		return r.NetProfit != nil && r.CreditIssues != nil && *r.CreditIssues == domain.AnswerYes
	})).Return(domain.Score{ICR: 1.6, LVR: 50, OutcomeLevel: domain.OutcomeYellow}, 10.0, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/score/preview", map[string]any{
		"loanAmount":    500000,
		"propertyValue": 1000000,
		"netProfit":     80000,
		"creditIssues":  "yes",
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ScoreResponse
	suite.decode(w, &resp)
	suite.Equal("yellow", resp.Outcome)
	suite.Equal(10.0, resp.InterestRatePercent)
	suite.InDelta(1.6, resp.ICR, 1e-9)
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
