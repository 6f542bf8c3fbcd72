package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradeSide represents the direction of a fill
type TradeSide string

const (
	TradeBuy  TradeSide = "buy"
	TradeSell TradeSide = "sell"
)

// IsValid reports whether the side is buy or sell
func (s TradeSide) IsValid() bool {
	return s == TradeBuy || s == TradeSell
}

// Trade is an immutable fill record against a token. TotalValue is always
// Quantity * PricePerUnit computed by the ledger; caller-supplied totals are
// never accepted. Trades are append-only: no trade is ever mutated or
// deleted, and recording one changes neither token ownership nor token value.
type Trade struct {
	ID           uuid.UUID
	TokenID      uuid.UUID // tokens.id, not the public token identifier
	UserID       uuid.UUID
	Side         TradeSide
	Quantity     decimal.Decimal // fractional share count, positive
	PricePerUnit decimal.Decimal
	TotalValue   decimal.Decimal
	CreatedAt    time.Time
}

// Validate ensures the fill adheres to domain rules
// Returns ErrInvalidArgument (wrapped) if validation fails
func (t *Trade) Validate() error {
	if !t.Side.IsValid() {
		return invalidArgument("side must be buy or sell, got %q", t.Side)
	}
	if t.Quantity.LessThanOrEqual(decimal.Zero) {
		return invalidArgument("quantity must be positive")
	}
	if t.PricePerUnit.IsNegative() {
		return invalidArgument("price per unit must not be negative")
	}
	if !t.TotalValue.Equal(t.Quantity.Mul(t.PricePerUnit)) {
		return invalidArgument("total value must equal quantity * price per unit")
	}
	return nil
}
