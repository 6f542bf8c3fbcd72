package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/petri-nft/petri-backend/internal/domain"
)

type portfolioItemResponse struct {
	Tree         treeResponse   `json:"tree"`
	Token        *tokenResponse `json:"token,omitempty"`
	HealthScore  float64        `json:"health_score"`
	CurrentValue float64        `json:"current_value"`
}

type portfolioResponse struct {
	OwnerID    uuid.UUID               `json:"owner_id"`
	TotalTrees int                     `json:"total_trees"`
	TotalValue float64                 `json:"total_value"`
	Items      []portfolioItemResponse `json:"items"`
}

func toPortfolioResponse(p *domain.Portfolio) portfolioResponse {
	items := make([]portfolioItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		out := portfolioItemResponse{
			Tree:         toTreeResponse(item.Tree),
			HealthScore:  item.HealthScore,
			CurrentValue: item.CurrentValue,
		}
		if item.Token != nil {
			token := toTokenResponse(item.Token)
			out.Token = &token
		}
		items = append(items, out)
	}

	return portfolioResponse{
		OwnerID:    p.OwnerID,
		TotalTrees: p.TotalTrees,
		TotalValue: p.TotalValue,
		Items:      items,
	}
}

func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	p, err := s.portfolio.GetPortfolio(r.Context(), principalFrom(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toPortfolioResponse(p))
}
