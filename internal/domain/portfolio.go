package domain

import "github.com/google/uuid"

// PortfolioItem pairs a tree with its token, if one has been minted.
type PortfolioItem struct {
	Tree         *Tree
	Token        *Token // nil when the tree has not been tokenized
	HealthScore  float64
	CurrentValue float64
}

// Portfolio is the derived per-owner projection. It is never stored or
// cached: every read recomputes it from live tree and token rows.
// TotalValue sums the current value of each owned tree; token values are
// informational per item and not separately summed.
type Portfolio struct {
	OwnerID    uuid.UUID
	TotalTrees int
	TotalValue float64
	Items      []PortfolioItem
}
