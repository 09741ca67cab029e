package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edulingua/backend/internal/api"
	"github.com/edulingua/backend/internal/corrector"
	"github.com/edulingua/backend/internal/detector"
	"github.com/edulingua/backend/internal/difficulty"
	"github.com/edulingua/backend/internal/infrastructure/config"
	"github.com/edulingua/backend/internal/rewriter"
	"github.com/edulingua/backend/internal/service"
	"github.com/edulingua/backend/internal/store"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rw := buildRewriter(cfg, logger)
	det := detector.New(rw, cfg.RewriteTimeout, logger)
	corr := corrector.New(det)
	est := difficulty.NewEstimator(rw, cfg.RewriteTimeout)
	svc := service.NewAssessmentService(db, corr, est, rw, cfg.RewriteTimeout, logger)
	handler := api.NewHandler(svc, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()
	api.RegisterRoutes(mux, handler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}

// buildRewriter selects the AI collaborator from config. A nil return
// means the engine runs rule-only.
func buildRewriter(cfg *config.Config, logger *slog.Logger) rewriter.Rewriter {
	switch cfg.RewriterProvider {
	case "":
		logger.Info("no rewriter configured, running rule-only")
		return nil
	case "openai":
		logger.Info("using OpenAI-compatible rewriter", "url", cfg.LLMURL, "model", cfg.LLMModel)
		return rewriter.NewOpenAIRewriter(cfg.LLMURL, cfg.LLMModel)
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			logger.Error("REWRITER_PROVIDER=anthropic requires ANTHROPIC_API_KEY")
			os.Exit(1)
		}
		logger.Info("using Anthropic rewriter", "model", cfg.AnthropicModel)
		return rewriter.NewAnthropicRewriter(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	default:
		logger.Error("unknown REWRITER_PROVIDER", "provider", cfg.RewriterProvider)
		os.Exit(1)
		return nil
	}
}
