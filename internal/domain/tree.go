package domain

import (
	"time"

	"github.com/google/uuid"
)

// TreeSpecies represents the species of a planted tree
type TreeSpecies string

const (
	SpeciesOak    TreeSpecies = "oak"
	SpeciesPine   TreeSpecies = "pine"
	SpeciesBirch  TreeSpecies = "birch"
	SpeciesMaple  TreeSpecies = "maple"
	SpeciesElm    TreeSpecies = "elm"
	SpeciesSpruce TreeSpecies = "spruce"
)

// IsValid reports whether the species is one of the known enumeration values
func (s TreeSpecies) IsValid() bool {
	switch s {
	case SpeciesOak, SpeciesPine, SpeciesBirch, SpeciesMaple, SpeciesElm, SpeciesSpruce:
		return true
	}
	return false
}

// Tree represents a physical tree asset in the domain layer.
// Species and coordinates are immutable after planting; nickname, health
// score and the derived current value are mutable. HealthScore has a
// conventional 0-100 range but is persisted verbatim even when callers
// supply out-of-range values.
type Tree struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Species      TreeSpecies
	Latitude     float64
	Longitude    float64
	LocationName string
	Nickname     string // optional; unique per owner when set
	Description  string
	IsPublic     bool
	HealthScore  float64
	CurrentValue float64
	PlantedAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate ensures the tree adheres to domain rules
// Returns ErrInvalidArgument (wrapped) if validation fails
func (t *Tree) Validate() error {
	if !t.Species.IsValid() {
		return invalidArgument("unknown species %q", t.Species)
	}
	if t.Latitude < -90 || t.Latitude > 90 {
		return invalidArgument("latitude %v out of range", t.Latitude)
	}
	if t.Longitude < -180 || t.Longitude > 180 {
		return invalidArgument("longitude %v out of range", t.Longitude)
	}
	return nil
}

// ViewableBy reports whether viewer may read this tree. Private trees are
// visible only to their owner.
func (t *Tree) ViewableBy(viewer uuid.UUID) bool {
	return t.IsPublic || t.OwnerID == viewer
}
