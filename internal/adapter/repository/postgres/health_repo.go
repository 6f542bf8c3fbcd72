package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/petri-nft/petri-backend/internal/domain"
)

// observationRow mirrors the health_history table for sqlx scanning
type observationRow struct {
	ID          uuid.UUID      `db:"id"`
	TreeID      uuid.UUID      `db:"tree_id"`
	HealthScore float64        `db:"health_score"`
	TokenValue  float64        `db:"token_value"`
	EventType   string         `db:"event_type"`
	Description sql.NullString `db:"description"`
	RecordedAt  time.Time      `db:"recorded_at"`
}

func (r observationRow) toDomain() *domain.HealthObservation {
	return &domain.HealthObservation{
		ID:          r.ID,
		TreeID:      r.TreeID,
		HealthScore: r.HealthScore,
		TokenValue:  r.TokenValue,
		EventType:   r.EventType,
		Description: r.Description.String,
		RecordedAt:  r.RecordedAt,
	}
}

// insertObservation appends one ledger entry inside the caller's transaction.
// The ledger is append-only: there is no update or delete path anywhere.
func insertObservation(ctx context.Context, tx *sqlx.Tx, obs *domain.HealthObservation) error {
	query := `
		INSERT INTO health_history (id, tree_id, health_score, token_value,
			event_type, description, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := tx.ExecContext(ctx, query,
		obs.ID,
		obs.TreeID,
		obs.HealthScore,
		obs.TokenValue,
		obs.EventType,
		nullable(obs.Description),
		obs.RecordedAt,
	)
	if err != nil {
		return storageErr("insert health observation", err)
	}
	return nil
}

// healthHistoryRepository implements domain.HealthHistoryRepository
type healthHistoryRepository struct {
	db *DB
}

// NewHealthHistoryRepository creates a new health history repository
func NewHealthHistoryRepository(db *DB) domain.HealthHistoryRepository {
	return &healthHistoryRepository{db: db}
}

// ListByTree retrieves up to limit observations for a tree, most recent first
func (r *healthHistoryRepository) ListByTree(ctx context.Context, treeID uuid.UUID, limit int) ([]*domain.HealthObservation, error) {
	query := `
		SELECT id, tree_id, health_score, token_value, event_type, description, recorded_at
		FROM health_history
		WHERE tree_id = $1
		ORDER BY recorded_at DESC, id DESC
		LIMIT $2
	`

	var rows []observationRow
	if err := r.db.SelectContext(ctx, &rows, query, treeID, limit); err != nil {
		return nil, storageErr("list health history", err)
	}

	observations := make([]*domain.HealthObservation, 0, len(rows))
	for _, row := range rows {
		observations = append(observations, row.toDomain())
	}
	return observations, nil
}
