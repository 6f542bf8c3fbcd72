package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token represents the one non-fungible claim on a tree.
// At most one token exists per tree, enforced at mint time and backed by a
// storage-layer uniqueness constraint. BaseValue is fixed at mint;
// CurrentValue starts at BaseValue and thereafter tracks the tree's derived
// value, updated only as a side effect of health updates, never directly
// and never by trades.
type Token struct {
	ID           uuid.UUID
	TokenID      string // globally unique public identifier, e.g. "TREE-9F3A02C1"
	TreeID       uuid.UUID
	OwnerID      uuid.UUID
	ImageURI     string // opaque locator from the card-generation collaborator
	MetadataURI  string // opaque locator, stored verbatim
	BaseValue    float64
	CurrentValue float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
