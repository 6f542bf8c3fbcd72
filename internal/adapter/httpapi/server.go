package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/petri-nft/petri-backend/internal/usecase/portfolio"
	"github.com/petri-nft/petri-backend/internal/usecase/registry"
	"github.com/petri-nft/petri-backend/internal/usecase/tokenizer"
	"github.com/petri-nft/petri-backend/internal/usecase/trading"
)

// Server is the HTTP adapter over the ledger core. It owns request parsing,
// auth resolution, visibility checks, pagination, and error-to-status
// mapping; all ledger semantics live in the usecase services.
type Server struct {
	registry  *registry.RegistryService
	tokenizer *tokenizer.TokenizerService
	trading   *trading.TradingService
	portfolio *portfolio.PortfolioService
	logger    *zap.Logger
}

// NewServer creates a new HTTP server adapter
func NewServer(
	registryService *registry.RegistryService,
	tokenizerService *tokenizer.TokenizerService,
	tradingService *trading.TradingService,
	portfolioService *portfolio.PortfolioService,
	logger *zap.Logger,
) *Server {
	return &Server{
		registry:  registryService,
		tokenizer: tokenizerService,
		trading:   tradingService,
		portfolio: portfolioService,
		logger:    logger,
	}
}

// Router builds the chi router with auth applied to every API route
func (s *Server) Router(apiToken string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(Authenticate(apiToken))

		r.Route("/trees", func(r chi.Router) {
			r.Post("/", s.handlePlantTree)
			r.Get("/", s.handleListTrees)
			r.Get("/{treeID}", s.handleGetTree)
			r.Post("/{treeID}/health", s.handleUpdateHealth)
			r.Get("/{treeID}/health-history", s.handleHealthHistory)
			r.Post("/{treeID}/mint", s.handleMint)
		})

		r.Route("/tokens", func(r chi.Router) {
			r.Get("/", s.handleListTokens)
			r.Get("/{tokenID}", s.handleGetToken)
			r.Post("/{tokenID}/trades", s.handleRecordTrade)
			r.Get("/{tokenID}/trades", s.handleListTrades)
		})

		r.Get("/portfolio/me", s.handleGetPortfolio)
	})

	return r
}
