package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/petri-nft/petri-backend/internal/domain"
	"github.com/petri-nft/petri-backend/internal/usecase/tokenizer"
)

type mintRequest struct {
	ImageURI    string  `json:"image_uri"`
	MetadataURI string  `json:"metadata_uri"`
	BaseValue   float64 `json:"base_value,omitempty"`
}

type tokenResponse struct {
	TokenID      string    `json:"token_id"`
	TreeID       uuid.UUID `json:"tree_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	ImageURI     string    `json:"image_uri"`
	MetadataURI  string    `json:"metadata_uri"`
	BaseValue    float64   `json:"base_value"`
	CurrentValue float64   `json:"current_value"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toTokenResponse(token *domain.Token) tokenResponse {
	return tokenResponse{
		TokenID:      token.TokenID,
		TreeID:       token.TreeID,
		OwnerID:      token.OwnerID,
		ImageURI:     token.ImageURI,
		MetadataURI:  token.MetadataURI,
		BaseValue:    token.BaseValue,
		CurrentValue: token.CurrentValue,
		CreatedAt:    token.CreatedAt,
		UpdatedAt:    token.UpdatedAt,
	}
}

func (s *Server) handleMint(w http.ResponseWriter, r *http.Request) {
	treeID, err := uuid.Parse(chi.URLParam(r, "treeID"))
	if err != nil {
		http.Error(w, "invalid tree id", http.StatusBadRequest)
		return
	}

	var req mintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := s.tokenizer.Mint(r.Context(), tokenizer.MintInput{
		TreeID:      treeID,
		MinterID:    principalFrom(r.Context()),
		ImageURI:    req.ImageURI,
		MetadataURI: req.MetadataURI,
		BaseValue:   req.BaseValue,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toTokenResponse(token))
}

func (s *Server) handleGetToken(w http.ResponseWriter, r *http.Request) {
	token, err := s.tokenizer.GetToken(r.Context(), chi.URLParam(r, "tokenID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	if token.OwnerID != principalFrom(r.Context()) {
		s.writeError(w, domain.ErrForbidden)
		return
	}

	s.writeJSON(w, http.StatusOK, toTokenResponse(token))
}

func (s *Server) handleListTokens(w http.ResponseWriter, r *http.Request) {
	tokens, err := s.tokenizer.ListTokens(r.Context(), principalFrom(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}

	limit, offset := pagination(r)
	tokens = paginate(tokens, limit, offset)

	out := make([]tokenResponse, 0, len(tokens))
	for _, token := range tokens {
		out = append(out, toTokenResponse(token))
	}
	s.writeJSON(w, http.StatusOK, out)
}
