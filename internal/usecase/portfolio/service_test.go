package portfolio

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/petri-nft/petri-backend/internal/domain"
)

// MockTreeRepository is a mock implementation of TreeRepository for testing
type MockTreeRepository struct {
	mock.Mock
}

func (m *MockTreeRepository) Create(ctx context.Context, tree *domain.Tree, planting *domain.HealthObservation) error {
	args := m.Called(ctx, tree, planting)
	return args.Error(0)
}

func (m *MockTreeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tree, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tree), args.Error(1)
}

func (m *MockTreeRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Tree, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Tree), args.Error(1)
}

func (m *MockTreeRepository) UpdateHealth(ctx context.Context, treeID uuid.UUID, healthScore, currentValue float64, obs *domain.HealthObservation) (*domain.Tree, error) {
	args := m.Called(ctx, treeID, healthScore, currentValue, obs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tree), args.Error(1)
}

// MockTokenRepository is a mock implementation of TokenRepository for testing
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Create(ctx context.Context, token *domain.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) GetByTokenID(ctx context.Context, tokenID string) (*domain.Token, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Token), args.Error(1)
}

func (m *MockTokenRepository) GetByTreeID(ctx context.Context, treeID uuid.UUID) (*domain.Token, error) {
	args := m.Called(ctx, treeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Token), args.Error(1)
}

func (m *MockTokenRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Token, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Token), args.Error(1)
}

func TestGetPortfolio_SumsOwnedTreeValues(t *testing.T) {
	ctx := context.Background()
	treeRepo := new(MockTreeRepository)
	tokenRepo := new(MockTokenRepository)
	service := NewPortfolioService(treeRepo, tokenRepo)

	ownerID := uuid.New()
	tokenized := &domain.Tree{ID: uuid.New(), OwnerID: ownerID, HealthScore: 80.0, CurrentValue: 80.0}
	bare := &domain.Tree{ID: uuid.New(), OwnerID: ownerID, HealthScore: 100.0, CurrentValue: 100.0}
	token := &domain.Token{ID: uuid.New(), TreeID: tokenized.ID, OwnerID: ownerID, CurrentValue: 80.0}

	treeRepo.On("ListByOwner", ctx, ownerID).Return([]*domain.Tree{tokenized, bare}, nil)
	tokenRepo.On("GetByTreeID", ctx, tokenized.ID).Return(token, nil)
	tokenRepo.On("GetByTreeID", ctx, bare.ID).Return(nil, domain.ErrNotFound)

	got, err := service.GetPortfolio(ctx, ownerID)

	assert.NoError(t, err)
	assert.Equal(t, ownerID, got.OwnerID)
	assert.Equal(t, 2, got.TotalTrees)
	assert.Equal(t, 180.0, got.TotalValue)
	assert.Len(t, got.Items, 2)
	assert.NotNil(t, got.Items[0].Token)
	assert.Nil(t, got.Items[1].Token) // no token minted yet
	tokenRepo.AssertExpectations(t)
}

func TestGetPortfolio_EmptyOwner(t *testing.T) {
	ctx := context.Background()
	treeRepo := new(MockTreeRepository)
	tokenRepo := new(MockTokenRepository)
	service := NewPortfolioService(treeRepo, tokenRepo)

	ownerID := uuid.New()
	treeRepo.On("ListByOwner", ctx, ownerID).Return([]*domain.Tree{}, nil)

	got, err := service.GetPortfolio(ctx, ownerID)

	assert.NoError(t, err)
	assert.Equal(t, 0, got.TotalTrees)
	assert.Equal(t, 0.0, got.TotalValue)
	assert.Empty(t, got.Items)
}

func TestGetPortfolio_OnlyQueriedOwnersTrees(t *testing.T) {
	ctx := context.Background()
	treeRepo := new(MockTreeRepository)
	tokenRepo := new(MockTokenRepository)
	service := NewPortfolioService(treeRepo, tokenRepo)

	ownerID := uuid.New()
	mine := &domain.Tree{ID: uuid.New(), OwnerID: ownerID, CurrentValue: 42.0}

	// The repository is keyed by owner, so other principals' trees never enter.
	treeRepo.On("ListByOwner", ctx, ownerID).Return([]*domain.Tree{mine}, nil)
	tokenRepo.On("GetByTreeID", ctx, mine.ID).Return(nil, domain.ErrNotFound)

	got, err := service.GetPortfolio(ctx, ownerID)

	assert.NoError(t, err)
	assert.Equal(t, 42.0, got.TotalValue)
	treeRepo.AssertExpectations(t)
}
