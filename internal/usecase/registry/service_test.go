package registry

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

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

// MockHealthHistoryRepository is a mock implementation of HealthHistoryRepository for testing
type MockHealthHistoryRepository struct {
	mock.Mock
}

func (m *MockHealthHistoryRepository) ListByTree(ctx context.Context, treeID uuid.UUID, limit int) ([]*domain.HealthObservation, error) {
	args := m.Called(ctx, treeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.HealthObservation), args.Error(1)
}

func newTestService(treeRepo *MockTreeRepository, healthRepo *MockHealthHistoryRepository) *RegistryService {
	return NewRegistryService(treeRepo, healthRepo, zap.NewNop())
}

func TestPlantTree_Success(t *testing.T) {
	ctx := context.Background()
	treeRepo := new(MockTreeRepository)
	healthRepo := new(MockHealthHistoryRepository)
	service := newTestService(treeRepo, healthRepo)

	ownerID := uuid.New()

	treeRepo.On("Create", ctx,
		mock.MatchedBy(func(tree *domain.Tree) bool {
			return tree.OwnerID == ownerID &&
				tree.Species == domain.SpeciesOak &&
				tree.HealthScore == 100.0 &&
				tree.CurrentValue == 100.0
		}),
		mock.MatchedBy(func(obs *domain.HealthObservation) bool {
			return obs.EventType == domain.EventPlanting &&
				obs.HealthScore == 100.0 &&
				obs.TokenValue == 100.0
		}),
	).Return(nil)

	tree, err := service.PlantTree(ctx, PlantTreeInput{
		OwnerID:   ownerID,
		Species:   domain.SpeciesOak,
		Latitude:  38.72,
		Longitude: -9.14,
		Nickname:  "Old Reliable",
	})

	assert.NoError(t, err)
	assert.Equal(t, 100.0, tree.HealthScore)
	assert.Equal(t, 100.0, tree.CurrentValue)
	assert.Equal(t, "Old Reliable", tree.Nickname)
	treeRepo.AssertExpectations(t)
}

func TestPlantTree_InvalidSpecies(t *testing.T) {
	ctx := context.Background()
	treeRepo := new(MockTreeRepository)
	healthRepo := new(MockHealthHistoryRepository)
	service := newTestService(treeRepo, healthRepo)

	_, err := service.PlantTree(ctx, PlantTreeInput{
		OwnerID: uuid.New(),
		Species: "cactus",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	treeRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlantTree_DuplicateNickname(t *testing.T) {
	ctx := context.Background()
	treeRepo := new(MockTreeRepository)
	healthRepo := new(MockHealthHistoryRepository)
	service := newTestService(treeRepo, healthRepo)

	treeRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(domain.ErrDuplicateNickname)

	_, err := service.PlantTree(ctx, PlantTreeInput{
		OwnerID:  uuid.New(),
		Species:  domain.SpeciesPine,
		Nickname: "Old Reliable",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateNickname)
	treeRepo.AssertExpectations(t)
}

func TestUpdateHealth_RecomputesDerivedValue(t *testing.T) {
	ctx := context.Background()
	treeRepo := new(MockTreeRepository)
	healthRepo := new(MockHealthHistoryRepository)
	service := newTestService(treeRepo, healthRepo)

	treeID := uuid.New()
	updated := &domain.Tree{ID: treeID, HealthScore: 80.0, CurrentValue: 80.0}

	treeRepo.On("UpdateHealth", ctx, treeID, 80.0, 80.0,
		mock.MatchedBy(func(obs *domain.HealthObservation) bool {
			return obs.TreeID == treeID &&
				obs.HealthScore == 80.0 &&
				obs.TokenValue == 80.0 &&
				obs.EventType == "drought"
		}),
	).Return(updated, nil)

	tree, err := service.UpdateHealth(ctx, UpdateHealthInput{
		TreeID:      treeID,
		HealthScore: 80.0,
		EventType:   "drought",
	})

	assert.NoError(t, err)
	assert.Equal(t, 80.0, tree.CurrentValue)
	treeRepo.AssertExpectations(t)
}

func TestUpdateHealth_OutOfRangeScorePersistsVerbatim(t *testing.T) {
	ctx := context.Background()
	treeRepo := new(MockTreeRepository)
	healthRepo := new(MockHealthHistoryRepository)
	service := newTestService(treeRepo, healthRepo)

	treeID := uuid.New()
	updated := &domain.Tree{ID: treeID, HealthScore: 120.0, CurrentValue: 120.0}

	// No clamp: the derived value extrapolates past the base value.
	treeRepo.On("UpdateHealth", ctx, treeID, 120.0, 120.0, mock.Anything).Return(updated, nil)

	tree, err := service.UpdateHealth(ctx, UpdateHealthInput{
		TreeID:      treeID,
		HealthScore: 120.0,
		EventType:   "growth",
	})

	assert.NoError(t, err)
	assert.Equal(t, 120.0, tree.CurrentValue)
	treeRepo.AssertExpectations(t)
}

func TestUpdateHealth_TreeNotFound(t *testing.T) {
	ctx := context.Background()
	treeRepo := new(MockTreeRepository)
	healthRepo := new(MockHealthHistoryRepository)
	service := newTestService(treeRepo, healthRepo)

	treeRepo.On("UpdateHealth", ctx, mock.Anything, 50.0, 50.0, mock.Anything).
		Return(nil, domain.ErrNotFound)

	_, err := service.UpdateHealth(ctx, UpdateHealthInput{
		TreeID:      uuid.New(),
		HealthScore: 50.0,
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetHealthHistory_DefaultLimit(t *testing.T) {
	ctx := context.Background()
	treeRepo := new(MockTreeRepository)
	healthRepo := new(MockHealthHistoryRepository)
	service := newTestService(treeRepo, healthRepo)

	treeID := uuid.New()
	history := []*domain.HealthObservation{
		{TreeID: treeID, HealthScore: 80.0},
		{TreeID: treeID, HealthScore: 100.0},
	}

	treeRepo.On("GetByID", ctx, treeID).Return(&domain.Tree{ID: treeID}, nil)
	healthRepo.On("ListByTree", ctx, treeID, DefaultHistoryLimit).Return(history, nil)

	got, err := service.GetHealthHistory(ctx, treeID, 0)

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	healthRepo.AssertExpectations(t)
}

func TestGetHealthHistory_TreeNotFound(t *testing.T) {
	ctx := context.Background()
	treeRepo := new(MockTreeRepository)
	healthRepo := new(MockHealthHistoryRepository)
	service := newTestService(treeRepo, healthRepo)

	treeID := uuid.New()
	treeRepo.On("GetByID", ctx, treeID).Return(nil, domain.ErrNotFound)

	_, err := service.GetHealthHistory(ctx, treeID, 10)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	healthRepo.AssertNotCalled(t, "ListByTree", mock.Anything, mock.Anything, mock.Anything)
}
