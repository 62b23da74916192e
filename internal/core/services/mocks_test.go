package services_test

import (
	"context"

	"github.com/SscSPs/referral_pipeline/internal/core/domain"
	portsrepo "github.com/SscSPs/referral_pipeline/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock OpportunityRepository ---
type MockOpportunityRepository struct {
	mock.Mock
}

var _ portsrepo.OpportunityRepositoryFacade = (*MockOpportunityRepository)(nil)

func (m *MockOpportunityRepository) FindOpportunityByID(ctx context.Context, opportunityID string) (*domain.Opportunity, error) {
	args := m.Called(ctx, opportunityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Hand out a copy so the service cannot mutate the test fixture
	return args.Get(0).(*domain.Opportunity).Clone(), args.Error(1)
}

func (m *MockOpportunityRepository) ListOpportunities(ctx context.Context, filter portsrepo.OpportunityListFilter) ([]domain.Opportunity, *string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		token := args.Get(1).(string)
		next = &token
	}
	return args.Get(0).([]domain.Opportunity), next, args.Error(2)
}

func (m *MockOpportunityRepository) NextOpportunityNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockOpportunityRepository) SaveOpportunity(ctx context.Context, opportunity domain.Opportunity) error {
	args := m.Called(ctx, opportunity)
	return args.Error(0)
}

func (m *MockOpportunityRepository) UpdateOpportunity(ctx context.Context, opportunity domain.Opportunity) error {
	args := m.Called(ctx, opportunity)
	return args.Error(0)
}

func (m *MockOpportunityRepository) DeleteOpportunity(ctx context.Context, opportunityID string) error {
	args := m.Called(ctx, opportunityID)
	return args.Error(0)
}

// --- Mock transactional OpportunityRepository ---
type MockAtomicOpportunityRepository struct {
	MockOpportunityRepository
}

var _ portsrepo.OpportunityAtomicWriter = (*MockAtomicOpportunityRepository)(nil)

func (m *MockAtomicOpportunityRepository) SaveOpportunityWithHistory(ctx context.Context, opportunity domain.Opportunity, entries []domain.HistoryEntry) error {
	args := m.Called(ctx, opportunity, entries)
	return args.Error(0)
}

func (m *MockAtomicOpportunityRepository) UpdateOpportunityWithHistory(ctx context.Context, opportunity domain.Opportunity, entries []domain.HistoryEntry) error {
	args := m.Called(ctx, opportunity, entries)
	return args.Error(0)
}

// --- Mock HistoryRepository ---
type MockHistoryRepository struct {
	mock.Mock
}

var _ portsrepo.HistoryRepositoryFacade = (*MockHistoryRepository)(nil)

func (m *MockHistoryRepository) AppendHistory(ctx context.Context, entry domain.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListHistory(ctx context.Context, opportunityID string, limit int, nextToken *string) ([]domain.HistoryEntry, *string, error) {
	args := m.Called(ctx, opportunityID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		token := args.Get(1).(string)
		next = &token
	}
	return args.Get(0).([]domain.HistoryEntry), next, args.Error(2)
}

// recorded returns the entries passed to AppendHistory, in call order.
func (m *MockHistoryRepository) recorded() []domain.HistoryEntry {
	var out []domain.HistoryEntry
	for _, c := range m.Calls {
		if c.Method == "AppendHistory" {
			out = append(out, c.Arguments.Get(1).(domain.HistoryEntry))
		}
	}
	return out
}

// --- Mock CommentRepository ---
type MockCommentRepository struct {
	mock.Mock
}

var _ portsrepo.CommentRepositoryFacade = (*MockCommentRepository)(nil)

func (m *MockCommentRepository) FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	c := *args.Get(0).(*domain.Comment)
	return &c, args.Error(1)
}

func (m *MockCommentRepository) ListCommentsByOpportunity(ctx context.Context, opportunityID string) ([]domain.Comment, error) {
	args := m.Called(ctx, opportunityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) UpdateComment(ctx context.Context, comment domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) MarkCommentDeleted(ctx context.Context, comment domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

// --- Mock SettingRepository ---
type MockSettingRepository struct {
	mock.Mock
}

var _ portsrepo.SettingReader = (*MockSettingRepository)(nil)

func (m *MockSettingRepository) GetSetting(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}
