package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/petri-nft/petri-backend/internal/adapter/httpapi"
	"github.com/petri-nft/petri-backend/internal/adapter/repository/postgres"
	"github.com/petri-nft/petri-backend/internal/config"
	"github.com/petri-nft/petri-backend/internal/usecase/portfolio"
	"github.com/petri-nft/petri-backend/internal/usecase/registry"
	"github.com/petri-nft/petri-backend/internal/usecase/tokenizer"
	"github.com/petri-nft/petri-backend/internal/usecase/trading"
)

var envPath = flag.String("env", ".env", "Path to environment file")

func main() {
	flag.Parse()

	// 1. Load configuration
	cfg, err := config.Load(*envPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize logger
	logger, err := newLogger(cfg.Server.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 3. Connect to the database (runs migrations)
	db, err := postgres.NewDB(cfg.Database.DSN())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// 4. Initialize repositories
	treeRepo := postgres.NewTreeRepository(db)
	healthRepo := postgres.NewHealthHistoryRepository(db)
	tokenRepo := postgres.NewTokenRepository(db)
	tradeRepo := postgres.NewTradeRepository(db)

	// 5. Initialize services
	registryService := registry.NewRegistryService(treeRepo, healthRepo, logger)
	tokenizerService := tokenizer.NewTokenizerService(treeRepo, tokenRepo, logger)
	tradingService := trading.NewTradingService(tokenRepo, tradeRepo, logger)
	portfolioService := portfolio.NewPortfolioService(treeRepo, tokenRepo)

	// 6. Start HTTP server
	api := httpapi.NewServer(registryService, tokenizerService, tradingService, portfolioService, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.Router(cfg.Auth.APIToken),
	}

	go func() {
		logger.Info("http server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	waitForShutdown(srv, logger)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(srv *http.Server, logger *zap.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	logger.Info("http server stopped")
}
