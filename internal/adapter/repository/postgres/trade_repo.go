package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petri-nft/petri-backend/internal/domain"
)

// tradeRow mirrors the trades table for sqlx scanning. NUMERIC columns are
// scanned as strings and parsed into decimals, so no float rounding sneaks
// into the ledger on the way in or out.
type tradeRow struct {
	ID           uuid.UUID `db:"id"`
	TokenID      uuid.UUID `db:"token_id"`
	UserID       uuid.UUID `db:"user_id"`
	Side         string    `db:"side"`
	Quantity     string    `db:"quantity"`
	PricePerUnit string    `db:"price_per_unit"`
	TotalValue   string    `db:"total_value"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r tradeRow) toDomain() (*domain.Trade, error) {
	quantity, err := decimal.NewFromString(r.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to parse quantity: %w", err)
	}
	price, err := decimal.NewFromString(r.PricePerUnit)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price_per_unit: %w", err)
	}
	total, err := decimal.NewFromString(r.TotalValue)
	if err != nil {
		return nil, fmt.Errorf("failed to parse total_value: %w", err)
	}

	return &domain.Trade{
		ID:           r.ID,
		TokenID:      r.TokenID,
		UserID:       r.UserID,
		Side:         domain.TradeSide(r.Side),
		Quantity:     quantity,
		PricePerUnit: price,
		TotalValue:   total,
		CreatedAt:    r.CreatedAt,
	}, nil
}

// tradeRepository implements domain.TradeRepository
type tradeRepository struct {
	db *DB
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository(db *DB) domain.TradeRepository {
	return &tradeRepository{db: db}
}

// Create appends an immutable fill record. Concurrent fills against the same
// token are independent appends; nothing shared is decremented.
func (r *tradeRepository) Create(ctx context.Context, trade *domain.Trade) error {
	query := `
		INSERT INTO trades (id, token_id, user_id, side, quantity,
			price_per_unit, total_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		trade.ID,
		trade.TokenID,
		trade.UserID,
		string(trade.Side),
		trade.Quantity.String(),
		trade.PricePerUnit.String(),
		trade.TotalValue.String(),
		trade.CreatedAt,
	)
	if err != nil {
		return storageErr("insert trade", err)
	}

	return nil
}

// ListByToken retrieves up to limit fills for a token, most recent first
func (r *tradeRepository) ListByToken(ctx context.Context, tokenID uuid.UUID, limit int) ([]*domain.Trade, error) {
	query := `
		SELECT id, token_id, user_id, side, quantity, price_per_unit, total_value, created_at
		FROM trades
		WHERE token_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var rows []tradeRow
	if err := r.db.SelectContext(ctx, &rows, query, tokenID, limit); err != nil {
		return nil, storageErr("list trades by token", err)
	}

	trades := make([]*domain.Trade, 0, len(rows))
	for _, row := range rows {
		trade, err := row.toDomain()
		if err != nil {
			return nil, storageErr("decode trade row", err)
		}
		trades = append(trades, trade)
	}
	return trades, nil
}
