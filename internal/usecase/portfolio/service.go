package portfolio

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/petri-nft/petri-backend/internal/domain"
)

// PortfolioService builds the read-only per-owner projection
type PortfolioService struct {
	TreeRepo  domain.TreeRepository
	TokenRepo domain.TokenRepository
}

// NewPortfolioService creates a new PortfolioService instance
func NewPortfolioService(treeRepo domain.TreeRepository, tokenRepo domain.TokenRepository) *PortfolioService {
	return &PortfolioService{
		TreeRepo:  treeRepo,
		TokenRepo: tokenRepo,
	}
}

// GetPortfolio joins the owner's trees with their tokens (absent tokens stay
// nil) and sums each tree's current value into the total. The projection is
// recomputed from live rows on every call and never cached, so interleaved
// health updates on other owners' trees can never leak in.
func (s *PortfolioService) GetPortfolio(ctx context.Context, ownerID uuid.UUID) (*domain.Portfolio, error) {
	trees, err := s.TreeRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.PortfolioItem, 0, len(trees))
	totalValue := 0.0

	for _, tree := range trees {
		token, err := s.TokenRepo.GetByTreeID(ctx, tree.ID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			token = nil // not yet tokenized
		}

		items = append(items, domain.PortfolioItem{
			Tree:         tree,
			Token:        token,
			HealthScore:  tree.HealthScore,
			CurrentValue: tree.CurrentValue,
		})
		totalValue += tree.CurrentValue
	}

	return &domain.Portfolio{
		OwnerID:    ownerID,
		TotalTrees: len(trees),
		TotalValue: totalValue,
		Items:      items,
	}, nil
}
