package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/petri-nft/petri-backend/internal/domain"
)

// treeRow mirrors the trees table for sqlx scanning
type treeRow struct {
	ID           uuid.UUID      `db:"id"`
	UserID       uuid.UUID      `db:"user_id"`
	Species      string         `db:"species"`
	Latitude     float64        `db:"latitude"`
	Longitude    float64        `db:"longitude"`
	LocationName sql.NullString `db:"location_name"`
	Nickname     sql.NullString `db:"nickname"`
	Description  sql.NullString `db:"description"`
	IsPublic     bool           `db:"is_public"`
	HealthScore  float64        `db:"health_score"`
	CurrentValue float64        `db:"current_value"`
	PlantedAt    time.Time      `db:"planted_at"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r treeRow) toDomain() *domain.Tree {
	return &domain.Tree{
		ID:           r.ID,
		OwnerID:      r.UserID,
		Species:      domain.TreeSpecies(r.Species),
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		LocationName: r.LocationName.String,
		Nickname:     r.Nickname.String,
		Description:  r.Description.String,
		IsPublic:     r.IsPublic,
		HealthScore:  r.HealthScore,
		CurrentValue: r.CurrentValue,
		PlantedAt:    r.PlantedAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// nullable converts an optional string field to its SQL representation
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// treeRepository implements domain.TreeRepository
type treeRepository struct {
	db *DB
}

// NewTreeRepository creates a new tree repository
func NewTreeRepository(db *DB) domain.TreeRepository {
	return &treeRepository{db: db}
}

// Create inserts the tree and its planting observation in a single database
// transaction. The nickname check runs inside the same transaction; the
// partial unique index on (user_id, nickname) backstops concurrent creates.
func (r *treeRepository) Create(ctx context.Context, tree *domain.Tree, planting *domain.HealthObservation) error {
	dbTx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageErr("begin create tree", err)
	}
	defer dbTx.Rollback()

	if tree.Nickname != "" {
		var taken bool
		checkQuery := `
			SELECT EXISTS (
				SELECT 1 FROM trees WHERE user_id = $1 AND nickname = $2
			)
		`
		if err := dbTx.QueryRowContext(ctx, checkQuery, tree.OwnerID, tree.Nickname).Scan(&taken); err != nil {
			return storageErr("check nickname", err)
		}
		if taken {
			return domain.ErrDuplicateNickname
		}
	}

	insertTreeQuery := `
		INSERT INTO trees (id, user_id, species, latitude, longitude, location_name,
			nickname, description, is_public, health_score, current_value,
			planted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = dbTx.ExecContext(ctx, insertTreeQuery,
		tree.ID,
		tree.OwnerID,
		string(tree.Species),
		tree.Latitude,
		tree.Longitude,
		nullable(tree.LocationName),
		nullable(tree.Nickname),
		nullable(tree.Description),
		tree.IsPublic,
		tree.HealthScore,
		tree.CurrentValue,
		tree.PlantedAt,
		tree.CreatedAt,
		tree.UpdatedAt,
	)
	if err != nil {
		if violatesConstraint(err, "uq_trees_owner_nickname") {
			return domain.ErrDuplicateNickname
		}
		return storageErr("insert tree", err)
	}

	if err := insertObservation(ctx, dbTx, planting); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		if violatesConstraint(err, "uq_trees_owner_nickname") {
			return domain.ErrDuplicateNickname
		}
		return storageErr("commit create tree", err)
	}

	return nil
}

// GetByID retrieves a tree by its ID
func (r *treeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tree, error) {
	query := `
		SELECT id, user_id, species, latitude, longitude, location_name,
			nickname, description, is_public, health_score, current_value,
			planted_at, created_at, updated_at
		FROM trees
		WHERE id = $1
	`

	var row treeRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("get tree by id", err)
	}

	return row.toDomain(), nil
}

// ListByOwner retrieves all trees owned by the given principal in insertion order
func (r *treeRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Tree, error) {
	query := `
		SELECT id, user_id, species, latitude, longitude, location_name,
			nickname, description, is_public, health_score, current_value,
			planted_at, created_at, updated_at
		FROM trees
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	var rows []treeRow
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, storageErr("list trees by owner", err)
	}

	trees := make([]*domain.Tree, 0, len(rows))
	for _, row := range rows {
		trees = append(trees, row.toDomain())
	}
	return trees, nil
}

// UpdateHealth applies a health update as one atomic unit: the tree row, the
// appended observation, and the token's current value when a token exists.
// The initial UPDATE takes the row lock, so two concurrent updates on the
// same tree serialize with last-committed-wins for current_value while both
// observations are retained.
func (r *treeRepository) UpdateHealth(ctx context.Context, treeID uuid.UUID, healthScore, currentValue float64, obs *domain.HealthObservation) (*domain.Tree, error) {
	dbTx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storageErr("begin health update", err)
	}
	defer dbTx.Rollback()

	updateTreeQuery := `
		UPDATE trees
		SET health_score = $1, current_value = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, user_id, species, latitude, longitude, location_name,
			nickname, description, is_public, health_score, current_value,
			planted_at, created_at, updated_at
	`

	var row treeRow
	if err := dbTx.GetContext(ctx, &row, updateTreeQuery, healthScore, currentValue, treeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("update tree health", err)
	}

	if err := insertObservation(ctx, dbTx, obs); err != nil {
		return nil, err
	}

	updateTokenQuery := `
		UPDATE tokens
		SET current_value = $1, updated_at = NOW()
		WHERE tree_id = $2
	`
	if _, err := dbTx.ExecContext(ctx, updateTokenQuery, currentValue, treeID); err != nil {
		return nil, storageErr("sync token value", err)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, storageErr("commit health update", err)
	}

	return row.toDomain(), nil
}
