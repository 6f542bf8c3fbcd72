package registry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/petri-nft/petri-backend/internal/domain"
	"github.com/petri-nft/petri-backend/internal/usecase/valuation"
)

// DefaultHistoryLimit bounds health history reads when the caller does not
// ask for a specific page size.
const DefaultHistoryLimit = 50

const plantingDescription = "Tree planted"

// PlantTreeInput represents the input for planting a tree
type PlantTreeInput struct {
	OwnerID      uuid.UUID
	Species      domain.TreeSpecies
	Latitude     float64
	Longitude    float64
	LocationName string
	Nickname     string
	Description  string
	IsPublic     bool
}

// UpdateHealthInput represents the input for a health update
type UpdateHealthInput struct {
	TreeID      uuid.UUID
	HealthScore float64
	EventType   string
	Description string
}

// RegistryService owns tree entities: planting, reads, and the atomic
// health-update path that keeps tree, ledger, and token value consistent
type RegistryService struct {
	TreeRepo   domain.TreeRepository
	HealthRepo domain.HealthHistoryRepository
	Logger     *zap.Logger
}

// NewRegistryService creates a new RegistryService instance
func NewRegistryService(treeRepo domain.TreeRepository, healthRepo domain.HealthHistoryRepository, logger *zap.Logger) *RegistryService {
	return &RegistryService{
		TreeRepo:   treeRepo,
		HealthRepo: healthRepo,
		Logger:     logger,
	}
}

// PlantTree creates a tree at full health together with its planting
// observation. The two rows commit as one unit: no reader ever sees a tree
// without its first ledger entry. Returns ErrDuplicateNickname if the
// nickname is already used by a tree of the same owner.
func (s *RegistryService) PlantTree(ctx context.Context, input PlantTreeInput) (*domain.Tree, error) {
	now := time.Now().UTC()
	tree := &domain.Tree{
		ID:           uuid.New(),
		OwnerID:      input.OwnerID,
		Species:      input.Species,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		LocationName: input.LocationName,
		Nickname:     input.Nickname,
		Description:  input.Description,
		IsPublic:     input.IsPublic,
		HealthScore:  100.0,
		CurrentValue: valuation.Derive(100.0, valuation.TreeBaseValue),
		PlantedAt:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := tree.Validate(); err != nil {
		return nil, err
	}

	planting := &domain.HealthObservation{
		ID:          uuid.New(),
		TreeID:      tree.ID,
		HealthScore: tree.HealthScore,
		TokenValue:  tree.CurrentValue,
		EventType:   domain.EventPlanting,
		Description: plantingDescription,
		RecordedAt:  now,
	}

	if err := s.TreeRepo.Create(ctx, tree, planting); err != nil {
		return nil, err
	}

	s.Logger.Info("planted tree",
		zap.String("tree_id", tree.ID.String()),
		zap.String("owner_id", tree.OwnerID.String()),
		zap.String("species", string(tree.Species)))

	return tree, nil
}

// GetTree retrieves a tree by ID. Returns ErrNotFound if absent.
func (s *RegistryService) GetTree(ctx context.Context, treeID uuid.UUID) (*domain.Tree, error) {
	return s.TreeRepo.GetByID(ctx, treeID)
}

// ListTrees retrieves all trees owned by the given principal in a stable
// insertion order. Callers paginate over this read.
func (s *RegistryService) ListTrees(ctx context.Context, ownerID uuid.UUID) ([]*domain.Tree, error) {
	return s.TreeRepo.ListByOwner(ctx, ownerID)
}

// UpdateHealth recomputes the tree's derived value from the new score,
// appends a ledger observation carrying the same numbers, and syncs the
// token's current value when one exists — all as one atomic unit. This is
// the single place where tree, observation, and token state are kept
// mutually consistent. Out-of-range scores are persisted verbatim; the
// valuation extrapolates linearly.
func (s *RegistryService) UpdateHealth(ctx context.Context, input UpdateHealthInput) (*domain.Tree, error) {
	derivedValue := valuation.Derive(input.HealthScore, valuation.TreeBaseValue)

	obs := &domain.HealthObservation{
		ID:          uuid.New(),
		TreeID:      input.TreeID,
		HealthScore: input.HealthScore,
		TokenValue:  derivedValue,
		EventType:   input.EventType,
		Description: input.Description,
		RecordedAt:  time.Now().UTC(),
	}

	tree, err := s.TreeRepo.UpdateHealth(ctx, input.TreeID, input.HealthScore, derivedValue, obs)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("updated tree health",
		zap.String("tree_id", tree.ID.String()),
		zap.Float64("health_score", input.HealthScore),
		zap.Float64("current_value", derivedValue))

	return tree, nil
}

// GetHealthHistory retrieves the most recent observations for a tree,
// newest first. Returns ErrNotFound if the tree does not exist.
func (s *RegistryService) GetHealthHistory(ctx context.Context, treeID uuid.UUID, limit int) ([]*domain.HealthObservation, error) {
	if _, err := s.TreeRepo.GetByID(ctx, treeID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	return s.HealthRepo.ListByTree(ctx, treeID, limit)
}
