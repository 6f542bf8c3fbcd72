package domain

import (
	"context"

	"github.com/google/uuid"
)

// TreeRepository defines the interface for tree persistence operations.
// Multi-row operations commit atomically: a crash or a concurrent reader
// never observes a tree without its planting observation or a health update
// without its observation and token sync.
type TreeRepository interface {
	// Create inserts the tree together with its planting observation in one
	// transaction. Returns ErrDuplicateNickname if the tree has a nickname
	// already used by another tree of the same owner.
	Create(ctx context.Context, tree *Tree, planting *HealthObservation) error

	// GetByID retrieves a tree by its ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Tree, error)

	// ListByOwner retrieves all trees owned by the given principal in
	// insertion order. Pagination is applied by callers over this read.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Tree, error)

	// UpdateHealth updates the tree's health score and current value,
	// appends the observation, and syncs the current value of the tree's
	// token if one exists, all in one transaction. Returns the updated tree
	// or ErrNotFound.
	UpdateHealth(ctx context.Context, treeID uuid.UUID, healthScore, currentValue float64, obs *HealthObservation) (*Tree, error)
}

// HealthHistoryRepository defines read access to the append-only health
// ledger. Writes happen only through TreeRepository's atomic operations.
type HealthHistoryRepository interface {
	// ListByTree retrieves up to limit observations for a tree,
	// most recent first.
	ListByTree(ctx context.Context, treeID uuid.UUID, limit int) ([]*HealthObservation, error)
}

// TokenRepository defines the interface for token persistence operations
type TokenRepository interface {
	// Create inserts a new token. Returns ErrAlreadyMinted if a token
	// already references the tree (storage-layer uniqueness, so concurrent
	// mints fail deterministically) and ErrTokenIDConflict if the generated
	// public identifier collides with an existing one.
	Create(ctx context.Context, token *Token) error

	// GetByTokenID retrieves a token by its public identifier.
	// Returns ErrNotFound if absent.
	GetByTokenID(ctx context.Context, tokenID string) (*Token, error)

	// GetByTreeID retrieves the token minted for a tree.
	// Returns ErrNotFound if the tree has no token.
	GetByTreeID(ctx context.Context, treeID uuid.UUID) (*Token, error)

	// ListByOwner retrieves all tokens owned by the given principal.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Token, error)
}

// TradeRepository defines the interface for the append-only trade log
type TradeRepository interface {
	// Create appends a fill record. Existing rows are never touched.
	Create(ctx context.Context, trade *Trade) error

	// ListByToken retrieves up to limit fills for a token,
	// most recent first.
	ListByToken(ctx context.Context, tokenID uuid.UUID, limit int) ([]*Trade, error)
}
