package trading

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/petri-nft/petri-backend/internal/domain"
)

// DefaultTradesLimit bounds trade history reads when the caller does not
// ask for a specific page size.
const DefaultTradesLimit = 50

// RecordTradeInput represents the input for recording a fill
type RecordTradeInput struct {
	TokenID      string // public token identifier
	ActorID      uuid.UUID
	Side         domain.TradeSide
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
}

// TradingService records buy/sell fills against tokens. Fills are bilateral
// simulated-market entries recorded at the caller's price: they never touch
// token ownership or token value, and nothing is matched or debited.
type TradingService struct {
	TokenRepo domain.TokenRepository
	TradeRepo domain.TradeRepository
	Logger    *zap.Logger
}

// NewTradingService creates a new TradingService instance
func NewTradingService(tokenRepo domain.TokenRepository, tradeRepo domain.TradeRepository, logger *zap.Logger) *TradingService {
	return &TradingService{
		TokenRepo: tokenRepo,
		TradeRepo: tradeRepo,
		Logger:    logger,
	}
}

// RecordTrade appends a fill. Preconditions in order: a valid side and
// positive quantity and non-negative price (ErrInvalidArgument), an existing
// token (ErrNotFound), and for sells an acting principal that owns the token
// (ErrForbidden) — buys carry no ownership precondition. The total value is
// always computed here as quantity * price; caller-supplied totals are never
// accepted.
func (s *TradingService) RecordTrade(ctx context.Context, input RecordTradeInput) (*domain.Trade, error) {
	trade := &domain.Trade{
		ID:           uuid.New(),
		UserID:       input.ActorID,
		Side:         input.Side,
		Quantity:     input.Quantity,
		PricePerUnit: input.PricePerUnit,
		TotalValue:   input.Quantity.Mul(input.PricePerUnit),
		CreatedAt:    time.Now().UTC(),
	}

	if err := trade.Validate(); err != nil {
		return nil, err
	}

	token, err := s.TokenRepo.GetByTokenID(ctx, input.TokenID)
	if err != nil {
		return nil, err
	}

	if input.Side == domain.TradeSell && token.OwnerID != input.ActorID {
		return nil, domain.ErrForbidden
	}

	trade.TokenID = token.ID

	if err := s.TradeRepo.Create(ctx, trade); err != nil {
		return nil, err
	}

	s.Logger.Info("recorded trade",
		zap.String("token_id", input.TokenID),
		zap.String("user_id", input.ActorID.String()),
		zap.String("side", string(input.Side)),
		zap.String("quantity", input.Quantity.String()),
		zap.String("total_value", trade.TotalValue.String()))

	return trade, nil
}

// GetTrades retrieves the most recent fills for a token, newest first.
// Returns ErrNotFound if the token does not exist.
func (s *TradingService) GetTrades(ctx context.Context, tokenID string, limit int) ([]*domain.Trade, error) {
	token, err := s.TokenRepo.GetByTokenID(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultTradesLimit
	}

	return s.TradeRepo.ListByToken(ctx, token.ID, limit)
}
