package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/referral_pipeline/internal/apperrors"
	"github.com/SscSPs/referral_pipeline/internal/core/domain"
	portsrepo "github.com/SscSPs/referral_pipeline/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/referral_pipeline/internal/core/ports/services"
	"github.com/SscSPs/referral_pipeline/internal/dto"
	"github.com/SscSPs/referral_pipeline/internal/metrics"
	"github.com/SscSPs/referral_pipeline/internal/utils/pagination"
	"github.com/SscSPs/referral_pipeline/internal/utils/scoring"
)

// opportunityService runs the opportunity lifecycle: transition policy, scoring,
// persistence and history, in that order.
type opportunityService struct {
	BaseService
	opportunityRepo portsrepo.OpportunityRepositoryFacade
	historyRepo     portsrepo.HistoryRepositoryFacade
	audit           *AuditRecorder
	rates           portssvc.InterestRateProvider
	metrics         *metrics.Metrics
	now             func() time.Time
}

// OpportunityServiceOption is a functional option for configuring the opportunity service
type OpportunityServiceOption func(*opportunityService)

// WithInterestRateProvider sets where the interest rate for ICR comes from.
func WithInterestRateProvider(p portssvc.InterestRateProvider) OpportunityServiceOption {
	return func(s *opportunityService) {
		s.rates = p
	}
}

// WithMetrics adds lifecycle counters.
func WithMetrics(m *metrics.Metrics) OpportunityServiceOption {
	return func(s *opportunityService) {
		s.metrics = m
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) OpportunityServiceOption {
	return func(s *opportunityService) {
		s.now = now
	}
}

// NewOpportunityService creates the opportunity service. When opportunityRepo also
// implements portsrepo.OpportunityAtomicWriter, the record and its history are
// written in one transaction.
func NewOpportunityService(opportunityRepo portsrepo.OpportunityRepositoryFacade, historyRepo portsrepo.HistoryRepositoryFacade, options ...OpportunityServiceOption) portssvc.OpportunitySvcFacade {
	svc := &opportunityService{
		opportunityRepo: opportunityRepo,
		historyRepo:     historyRepo,
		rates:           portssvc.StaticInterestRate(scoring.DefaultInterestRatePercent),
		now:             time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	svc.audit = NewAuditRecorder(historyRepo, svc.metrics)
	return svc
}

// Ensure opportunityService implements the OpportunitySvcFacade interface
var _ portssvc.OpportunitySvcFacade = (*opportunityService)(nil)

func (s *opportunityService) CreateOpportunity(ctx context.Context, organizationID string, req dto.CreateOpportunityRequest, mctx domain.MutationContext) (*domain.Opportunity, error) {
	status := domain.StatusOpportunity
	if req.Status != "" {
		parsed, err := domain.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		if !parsed.IsInitial() {
			return nil, fmt.Errorf("%w: new opportunities start as draft or opportunity, got %q", apperrors.ErrValidation, parsed)
		}
		status = parsed
	}
	if strings.TrimSpace(req.ClientID) == "" {
		return nil, fmt.Errorf("%w: clientId is required", apperrors.ErrValidation)
	}

	opp := &domain.Opportunity{
		ID:                   uuid.NewString(),
		OrganizationID:       organizationID,
		ClientID:             strings.TrimSpace(req.ClientID),
		Status:               status,
		FinancialInputs:      req.FinancialInputs(),
		RiskFlags:            req.RiskFlags(),
		TargetSettlementDate: req.TargetSettlementDate,
	}
	if err := validateScoreInputs(opp); err != nil {
		return nil, err
	}

	number, err := s.opportunityRepo.NextOpportunityNumber(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate opportunity number")
		return nil, fmt.Errorf("%w: allocate opportunity number: %w", apperrors.ErrPersistence, err)
	}
	opp.OpportunityNumber = number

	if !opp.FinancialInputs.IsZero() || !opp.RiskFlags.IsZero() {
		s.rescore(ctx, opp)
	}

	now := s.now().UTC()
	opp.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     mctx.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: mctx.UserID,
		Version:       1,
	}

	entries := s.audit.Diff(nil, opp, "", mctx, now)
	if err := s.persist(ctx, opp, entries, true); err != nil {
		if errors.Is(err, apperrors.ErrAuditWrite) {
			return opp, err
		}
		return nil, err
	}

	s.LogInfo(ctx, "Opportunity created",
		slog.String("opportunity_id", opp.ID),
		slog.String("opportunity_number", opp.OpportunityNumber),
		slog.String("status", string(opp.Status)))
	return opp, nil
}

func (s *opportunityService) GetOpportunityByID(ctx context.Context, organizationID, opportunityID string) (*domain.Opportunity, error) {
	return s.load(ctx, organizationID, opportunityID)
}

func (s *opportunityService) ListOpportunities(ctx context.Context, organizationID string, params dto.ListOpportunitiesParams) ([]domain.Opportunity, *string, error) {
	filter := portsrepo.OpportunityListFilter{
		OrganizationID: organizationID,
		Limit:          pagination.ClampLimit(params.Limit),
		NextToken:      params.NextToken,
	}
	if params.Status != "" {
		status, err := domain.ParseStatus(params.Status)
		if err != nil {
			return nil, nil, err
		}
		filter.Status = &status
	}

	opps, next, err := s.opportunityRepo.ListOpportunities(ctx, filter)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, nil, err
		}
		s.LogError(ctx, err, "Failed to list opportunities", slog.String("organization_id", organizationID))
		return nil, nil, fmt.Errorf("%w: list opportunities: %w", apperrors.ErrPersistence, err)
	}
	if opps == nil {
		opps = []domain.Opportunity{}
	}
	return opps, next, nil
}

func (s *opportunityService) ListHistory(ctx context.Context, organizationID, opportunityID string, params dto.ListHistoryParams) ([]domain.HistoryEntry, *string, error) {
	if _, err := s.load(ctx, organizationID, opportunityID); err != nil {
		return nil, nil, err
	}
	entries, next, err := s.historyRepo.ListHistory(ctx, opportunityID, pagination.ClampLimit(params.Limit), params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, nil, err
		}
		s.LogError(ctx, err, "Failed to list history", slog.String("opportunity_id", opportunityID))
		return nil, nil, fmt.Errorf("%w: list history: %w", apperrors.ErrPersistence, err)
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	return entries, next, nil
}

func (s *opportunityService) ApplyMutation(ctx context.Context, organizationID, opportunityID string, patch domain.OpportunityPatch, mctx domain.MutationContext) (*domain.Opportunity, error) {
	current, err := s.load(ctx, organizationID, opportunityID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	working := current.Clone()

	var reason string
	if patch.Status != nil {
		res, err := domain.ApplyTransition(current.TransitionState(), *patch.Status, domain.TransitionContext{
			Reason: deref(patch.Reason),
			UserID: mctx.UserID,
		})
		if err != nil {
			s.rejected(ctx, current, err)
			return nil, err
		}
		working.Status = res.Status
		for _, f := range res.ClearFields {
			working.SetReason(f, "")
		}
		if res.ReasonField != domain.ReasonNone {
			working.SetReason(res.ReasonField, res.Reason)
			reason = res.Reason
		}
		if res.EnteredSettled {
			working.IsUnqualified = false
			working.UnqualifiedReason = ""
			if working.DateSettled == nil {
				settled := now
				working.DateSettled = &settled
			}
		}
	}

	if patch.IsUnqualified != nil || (patch.UnqualifiedReason != nil && working.IsUnqualified) {
		isUnqualified := working.IsUnqualified
		if patch.IsUnqualified != nil {
			isUnqualified = *patch.IsUnqualified
		}
		qualificationReason := working.UnqualifiedReason
		if patch.UnqualifiedReason != nil {
			qualificationReason = *patch.UnqualifiedReason
		}
		q, err := domain.ApplyQualification(working.Status, isUnqualified, qualificationReason)
		if err != nil {
			s.rejected(ctx, current, err)
			return nil, err
		}
		working.IsUnqualified = q.IsUnqualified
		working.UnqualifiedReason = q.Reason
	}

	patch.ApplyFields(working)
	if patch.ClientID != nil && strings.TrimSpace(*patch.ClientID) == "" {
		return nil, fmt.Errorf("%w: clientId cannot be blank", apperrors.ErrValidation)
	}
	if err := validateScoreInputs(working); err != nil {
		return nil, err
	}

	if !working.FinancialInputs.Equal(current.FinancialInputs) || working.RiskFlags != current.RiskFlags {
		s.rescore(ctx, working)
	}

	entries := s.audit.Diff(current, working, reason, mctx, now)
	if len(entries) == 0 {
		s.LogDebug(ctx, "Mutation changed nothing", slog.String("opportunity_id", opportunityID))
		return current, nil
	}

	working.LastUpdatedAt = now
	working.LastUpdatedBy = mctx.UserID
	if err := s.persist(ctx, working, entries, false); err != nil {
		if !errors.Is(err, apperrors.ErrAuditWrite) {
			return nil, err
		}
		working.Version++
		s.transitioned(current, working)
		return working, err
	}
	working.Version++
	s.transitioned(current, working)

	s.LogInfo(ctx, "Opportunity updated",
		slog.String("opportunity_id", working.ID),
		slog.Int("history_entries", len(entries)))
	return working, nil
}

func (s *opportunityService) DeleteOpportunity(ctx context.Context, organizationID, opportunityID string, mctx domain.MutationContext) error {
	current, err := s.load(ctx, organizationID, opportunityID)
	if err != nil {
		return err
	}

	if err := s.opportunityRepo.DeleteOpportunity(ctx, opportunityID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		s.LogError(ctx, err, "Failed to delete opportunity", slog.String("opportunity_id", opportunityID))
		return fmt.Errorf("%w: delete opportunity: %w", apperrors.ErrPersistence, err)
	}

	status := string(current.Status)
	entry := s.audit.Event(opportunityID, domain.ActionDeleted, nil, &status, nil, mctx, s.now())
	if err := s.audit.Record(ctx, opportunityID, []domain.HistoryEntry{entry}); err != nil {
		return err
	}

	s.LogInfo(ctx, "Opportunity deleted",
		slog.String("opportunity_id", opportunityID),
		slog.String("opportunity_number", current.OpportunityNumber))
	return nil
}

func (s *opportunityService) PreviewScore(ctx context.Context, req dto.ScorePreviewRequest) (domain.Score, float64, error) {
	preview := &domain.Opportunity{FinancialInputs: req.FinancialInputs(), RiskFlags: req.RiskFlags()}
	if err := validateScoreInputs(preview); err != nil {
		return domain.Score{}, 0, err
	}
	rate := s.rates.GetInterestRatePercent(ctx)
	return scoring.Compute(scoring.FromOpportunity(preview.FinancialInputs, preview.RiskFlags, rate)), rate, nil
}

// load fetches an opportunity and hides other organizations' records.
func (s *opportunityService) load(ctx context.Context, organizationID, opportunityID string) (*domain.Opportunity, error) {
	opp, err := s.opportunityRepo.FindOpportunityByID(ctx, opportunityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to load opportunity", slog.String("opportunity_id", opportunityID))
		return nil, fmt.Errorf("%w: load opportunity: %w", apperrors.ErrPersistence, err)
	}
	if opp == nil || opp.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("opportunity " + opportunityID)
	}
	return opp, nil
}

// persist writes the record and its entries. Without an atomic writer the history is
// appended after the record is saved, and a history failure is an AuditWriteError.
func (s *opportunityService) persist(ctx context.Context, opp *domain.Opportunity, entries []domain.HistoryEntry, isNew bool) error {
	if atomic, ok := s.opportunityRepo.(portsrepo.OpportunityAtomicWriter); ok {
		var err error
		if isNew {
			err = atomic.SaveOpportunityWithHistory(ctx, *opp, entries)
		} else {
			err = atomic.UpdateOpportunityWithHistory(ctx, *opp, entries)
		}
		return s.persistenceError(ctx, opp.ID, err)
	}

	var err error
	if isNew {
		err = s.opportunityRepo.SaveOpportunity(ctx, *opp)
	} else {
		err = s.opportunityRepo.UpdateOpportunity(ctx, *opp)
	}
	if err := s.persistenceError(ctx, opp.ID, err); err != nil {
		return err
	}
	return s.audit.Record(ctx, opp.ID, entries)
}

func (s *opportunityService) persistenceError(ctx context.Context, opportunityID string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrConflict) {
		s.LogWarn(ctx, "Opportunity was modified concurrently", slog.String("opportunity_id", opportunityID))
		return err
	}
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrDuplicate) {
		return err
	}
	s.LogError(ctx, err, "Failed to save opportunity", slog.String("opportunity_id", opportunityID))
	return fmt.Errorf("%w: save opportunity: %w", apperrors.ErrPersistence, err)
}

func (s *opportunityService) rescore(ctx context.Context, opp *domain.Opportunity) {
	rate := s.rates.GetInterestRatePercent(ctx)
	opp.Score = scoring.Compute(scoring.FromOpportunity(opp.FinancialInputs, opp.RiskFlags, rate))
	s.metrics.RecordScore(opp.OutcomeLevel.String())
}

func (s *opportunityService) rejected(ctx context.Context, current *domain.Opportunity, err error) {
	kind := "invalid"
	var tErr *domain.TransitionError
	if errors.As(err, &tErr) {
		kind = string(tErr.Kind)
	}
	s.metrics.RecordTransitionRejection(kind)
	s.LogWarn(ctx, "Opportunity change rejected",
		slog.String("opportunity_id", current.ID),
		slog.String("status", string(current.Status)),
		slog.String("error", err.Error()))
}

func (s *opportunityService) transitioned(before, after *domain.Opportunity) {
	if before.Status != after.Status {
		s.metrics.RecordTransition(string(before.Status), string(after.Status))
	}
}

// maxMoney is the first value that no longer fits the NUMERIC(18,2) money columns.
var maxMoney = decimal.New(1, 16)

// validateScoreInputs rejects money the store cannot hold exactly and unknown risk answers.
// Scores and history are computed from the same values the store will return.
func validateScoreInputs(o *domain.Opportunity) error {
	money := []struct {
		name  domain.TrackedField
		value decimal.Decimal
	}{
		{domain.FieldLoanAmount, o.LoanAmount},
		{domain.FieldPropertyValue, o.PropertyValue},
		{domain.FieldNetProfit, o.NetProfit},
		{domain.FieldAmortisation, o.Amortisation},
		{domain.FieldDepreciation, o.Depreciation},
		{domain.FieldExistingInterestCosts, o.ExistingInterestCosts},
		{domain.FieldRentalExpense, o.RentalExpense},
		{domain.FieldProposedRentalIncome, o.ProposedRentalIncome},
	}
	for _, m := range money {
		switch {
		case m.value.IsNegative():
			return fmt.Errorf("%w: %s cannot be negative", apperrors.ErrValidation, m.name)
		case !m.value.Equal(m.value.Round(2)):
			return fmt.Errorf("%w: %s has more than 2 decimal places", apperrors.ErrValidation, m.name)
		case m.value.GreaterThanOrEqual(maxMoney):
			return fmt.Errorf("%w: %s must be less than %s", apperrors.ErrValidation, m.name, maxMoney.String())
		}
	}
	for _, a := range o.RiskFlags.Answers() {
		if !a.Valid() {
			return fmt.Errorf("%w: risk answers must be yes or no, got %q", apperrors.ErrValidation, a)
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
