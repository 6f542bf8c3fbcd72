package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/petri-nft/petri-backend/internal/domain"
)

// tokenRow mirrors the tokens table for sqlx scanning
type tokenRow struct {
	ID           uuid.UUID `db:"id"`
	TokenID      string    `db:"token_id"`
	TreeID       uuid.UUID `db:"tree_id"`
	OwnerID      uuid.UUID `db:"owner_id"`
	ImageURI     string    `db:"image_uri"`
	MetadataURI  string    `db:"metadata_uri"`
	BaseValue    float64   `db:"base_value"`
	CurrentValue float64   `db:"current_value"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r tokenRow) toDomain() *domain.Token {
	return &domain.Token{
		ID:           r.ID,
		TokenID:      r.TokenID,
		TreeID:       r.TreeID,
		OwnerID:      r.OwnerID,
		ImageURI:     r.ImageURI,
		MetadataURI:  r.MetadataURI,
		BaseValue:    r.BaseValue,
		CurrentValue: r.CurrentValue,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

const selectTokenColumns = `
	SELECT id, token_id, tree_id, owner_id, image_uri, metadata_uri,
		base_value, current_value, created_at, updated_at
	FROM tokens
`

// tokenRepository implements domain.TokenRepository
type tokenRepository struct {
	db *DB
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *DB) domain.TokenRepository {
	return &tokenRepository{db: db}
}

// Create inserts a new token. The unique constraint on tree_id makes
// concurrent mints for the same tree fail deterministically: the second
// committer gets ErrAlreadyMinted, never a duplicate row. A collision on
// the generated public identifier surfaces as ErrTokenIDConflict so the
// caller can regenerate and retry.
func (r *tokenRepository) Create(ctx context.Context, token *domain.Token) error {
	query := `
		INSERT INTO tokens (id, token_id, tree_id, owner_id, image_uri,
			metadata_uri, base_value, current_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		token.ID,
		token.TokenID,
		token.TreeID,
		token.OwnerID,
		token.ImageURI,
		token.MetadataURI,
		token.BaseValue,
		token.CurrentValue,
		token.CreatedAt,
		token.UpdatedAt,
	)
	if err != nil {
		switch {
		case violatesConstraint(err, "uq_tokens_tree_id"):
			return domain.ErrAlreadyMinted
		case violatesConstraint(err, "uq_tokens_token_id"):
			return domain.ErrTokenIDConflict
		}
		return storageErr("insert token", err)
	}

	return nil
}

// GetByTokenID retrieves a token by its public identifier
func (r *tokenRepository) GetByTokenID(ctx context.Context, tokenID string) (*domain.Token, error) {
	var row tokenRow
	if err := r.db.GetContext(ctx, &row, selectTokenColumns+` WHERE token_id = $1`, tokenID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("get token by token id", err)
	}
	return row.toDomain(), nil
}

// GetByTreeID retrieves the token minted for a tree
func (r *tokenRepository) GetByTreeID(ctx context.Context, treeID uuid.UUID) (*domain.Token, error) {
	var row tokenRow
	if err := r.db.GetContext(ctx, &row, selectTokenColumns+` WHERE tree_id = $1`, treeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("get token by tree id", err)
	}
	return row.toDomain(), nil
}

// ListByOwner retrieves all tokens owned by the given principal
func (r *tokenRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Token, error) {
	var rows []tokenRow
	query := selectTokenColumns + ` WHERE owner_id = $1 ORDER BY created_at, id`
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, storageErr("list tokens by owner", err)
	}

	tokens := make([]*domain.Token, 0, len(rows))
	for _, row := range rows {
		tokens = append(tokens, row.toDomain())
	}
	return tokens, nil
}
