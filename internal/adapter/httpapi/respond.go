package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/petri-nft/petri-backend/internal/domain"
)

// maxPageLimit caps limit query parameters across list endpoints.
const maxPageLimit = 100

const defaultPageLimit = 50

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeError maps domain errors to HTTP status codes. Storage failures and
// anything unrecognized become opaque 500s so callers can tell "your request
// was invalid" from "the system failed".
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrDuplicateNickname), errors.Is(err, domain.ErrAlreadyMinted):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidArgument):
		status = http.StatusBadRequest
	default:
		s.logger.Error("internal error", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// pagination reads limit/offset query parameters with defaults and a cap
func pagination(r *http.Request) (limit, offset int) {
	limit = defaultPageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
