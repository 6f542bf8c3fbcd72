package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventPlanting is the event tag carried by the very first observation of
// every tree, written synchronously with the tree itself.
const EventPlanting = "planting"

// HealthObservation is one append-only entry in a tree's health ledger.
// Entries are immutable once written; history may be backfilled out of
// timestamp order, but reads default to reverse-chronological.
type HealthObservation struct {
	ID          uuid.UUID
	TreeID      uuid.UUID
	HealthScore float64
	TokenValue  float64 // derived value at observation time
	EventType   string  // free-text classification, e.g. "drought", "recovery"
	Description string
	RecordedAt  time.Time
}
