package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petri-nft/petri-backend/internal/domain"
	"github.com/petri-nft/petri-backend/internal/usecase/trading"
)

// recordTradeRequest intentionally has no total_value field: the ledger
// computes totals itself.
type recordTradeRequest struct {
	Side         string          `json:"side"`
	Quantity     decimal.Decimal `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
}

type tradeResponse struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	Side         string          `json:"side"`
	Quantity     decimal.Decimal `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	TotalValue   decimal.Decimal `json:"total_value"`
	CreatedAt    time.Time       `json:"created_at"`
}

func toTradeResponse(trade *domain.Trade) tradeResponse {
	return tradeResponse{
		ID:           trade.ID,
		UserID:       trade.UserID,
		Side:         string(trade.Side),
		Quantity:     trade.Quantity,
		PricePerUnit: trade.PricePerUnit,
		TotalValue:   trade.TotalValue,
		CreatedAt:    trade.CreatedAt,
	}
}

func (s *Server) handleRecordTrade(w http.ResponseWriter, r *http.Request) {
	var req recordTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	trade, err := s.trading.RecordTrade(r.Context(), trading.RecordTradeInput{
		TokenID:      chi.URLParam(r, "tokenID"),
		ActorID:      principalFrom(r.Context()),
		Side:         domain.TradeSide(req.Side),
		Quantity:     req.Quantity,
		PricePerUnit: req.PricePerUnit,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toTradeResponse(trade))
}

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	limit, _ := pagination(r)

	trades, err := s.trading.GetTrades(r.Context(), chi.URLParam(r, "tokenID"), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]tradeResponse, 0, len(trades))
	for _, trade := range trades {
		out = append(out, toTradeResponse(trade))
	}
	s.writeJSON(w, http.StatusOK, out)
}
