package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/petri-nft/petri-backend/internal/domain"
	"github.com/petri-nft/petri-backend/internal/usecase/registry"
)

type plantTreeRequest struct {
	Species      string  `json:"species"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	LocationName string  `json:"location_name,omitempty"`
	Nickname     string  `json:"nickname,omitempty"`
	Description  string  `json:"description,omitempty"`
	IsPublic     bool    `json:"is_public"`
}

type updateHealthRequest struct {
	HealthScore float64 `json:"health_score"`
	EventType   string  `json:"event_type,omitempty"`
	Description string  `json:"description,omitempty"`
}

type treeResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Species      string    `json:"species"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	LocationName string    `json:"location_name,omitempty"`
	Nickname     string    `json:"nickname,omitempty"`
	Description  string    `json:"description,omitempty"`
	IsPublic     bool      `json:"is_public"`
	HealthScore  float64   `json:"health_score"`
	CurrentValue float64   `json:"current_value"`
	PlantedAt    time.Time `json:"planted_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type observationResponse struct {
	ID          uuid.UUID `json:"id"`
	TreeID      uuid.UUID `json:"tree_id"`
	HealthScore float64   `json:"health_score"`
	TokenValue  float64   `json:"token_value"`
	EventType   string    `json:"event_type"`
	Description string    `json:"description,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

func toTreeResponse(tree *domain.Tree) treeResponse {
	return treeResponse{
		ID:           tree.ID,
		OwnerID:      tree.OwnerID,
		Species:      string(tree.Species),
		Latitude:     tree.Latitude,
		Longitude:    tree.Longitude,
		LocationName: tree.LocationName,
		Nickname:     tree.Nickname,
		Description:  tree.Description,
		IsPublic:     tree.IsPublic,
		HealthScore:  tree.HealthScore,
		CurrentValue: tree.CurrentValue,
		PlantedAt:    tree.PlantedAt,
		CreatedAt:    tree.CreatedAt,
		UpdatedAt:    tree.UpdatedAt,
	}
}

func toObservationResponse(obs *domain.HealthObservation) observationResponse {
	return observationResponse{
		ID:          obs.ID,
		TreeID:      obs.TreeID,
		HealthScore: obs.HealthScore,
		TokenValue:  obs.TokenValue,
		EventType:   obs.EventType,
		Description: obs.Description,
		RecordedAt:  obs.RecordedAt,
	}
}

func (s *Server) handlePlantTree(w http.ResponseWriter, r *http.Request) {
	var req plantTreeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tree, err := s.registry.PlantTree(r.Context(), registry.PlantTreeInput{
		OwnerID:      principalFrom(r.Context()),
		Species:      domain.TreeSpecies(req.Species),
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		LocationName: req.LocationName,
		Nickname:     req.Nickname,
		Description:  req.Description,
		IsPublic:     req.IsPublic,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toTreeResponse(tree))
}

func (s *Server) handleGetTree(w http.ResponseWriter, r *http.Request) {
	treeID, err := uuid.Parse(chi.URLParam(r, "treeID"))
	if err != nil {
		http.Error(w, "invalid tree id", http.StatusBadRequest)
		return
	}

	tree, err := s.registry.GetTree(r.Context(), treeID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if !tree.ViewableBy(principalFrom(r.Context())) {
		s.writeError(w, domain.ErrForbidden)
		return
	}

	s.writeJSON(w, http.StatusOK, toTreeResponse(tree))
}

func (s *Server) handleListTrees(w http.ResponseWriter, r *http.Request) {
	trees, err := s.registry.ListTrees(r.Context(), principalFrom(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}

	limit, offset := pagination(r)
	trees = paginate(trees, limit, offset)

	out := make([]treeResponse, 0, len(trees))
	for _, tree := range trees {
		out = append(out, toTreeResponse(tree))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpdateHealth(w http.ResponseWriter, r *http.Request) {
	treeID, err := uuid.Parse(chi.URLParam(r, "treeID"))
	if err != nil {
		http.Error(w, "invalid tree id", http.StatusBadRequest)
		return
	}

	var req updateHealthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Only the owner may push health updates through the API; the core
	// itself keys updates by tree alone.
	tree, err := s.registry.GetTree(r.Context(), treeID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if tree.OwnerID != principalFrom(r.Context()) {
		s.writeError(w, domain.ErrForbidden)
		return
	}

	updated, err := s.registry.UpdateHealth(r.Context(), registry.UpdateHealthInput{
		TreeID:      treeID,
		HealthScore: req.HealthScore,
		EventType:   req.EventType,
		Description: req.Description,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toTreeResponse(updated))
}

func (s *Server) handleHealthHistory(w http.ResponseWriter, r *http.Request) {
	treeID, err := uuid.Parse(chi.URLParam(r, "treeID"))
	if err != nil {
		http.Error(w, "invalid tree id", http.StatusBadRequest)
		return
	}

	tree, err := s.registry.GetTree(r.Context(), treeID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !tree.ViewableBy(principalFrom(r.Context())) {
		s.writeError(w, domain.ErrForbidden)
		return
	}

	limit, _ := pagination(r)
	history, err := s.registry.GetHealthHistory(r.Context(), treeID, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]observationResponse, 0, len(history))
	for _, obs := range history {
		out = append(out, toObservationResponse(obs))
	}
	s.writeJSON(w, http.StatusOK, out)
}

// paginate applies limit/offset over an already-loaded slice; list reads are
// bounded upstream by the per-owner row count.
func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
