// Package main is the entrypoint for the tubescribe API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tubescribe/internal/api"
	"tubescribe/internal/api/handler"
	"tubescribe/internal/api/response"
	"tubescribe/internal/config"
	"tubescribe/internal/download"
	"tubescribe/internal/pipeline"
	"tubescribe/internal/store"
	"tubescribe/internal/summarize"
	"tubescribe/internal/summarize/gemini"
	"tubescribe/internal/summarize/ollama"
	"tubescribe/internal/summarize/rulebased"
	"tubescribe/internal/transcribe"
	"tubescribe/internal/transcribe/google"
	"tubescribe/internal/transcribe/whisper"
	"tubescribe/pkg/executor"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// 1. Load config, fail fast on invalid values
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "env", cfg.Server.Env, "download_dir", cfg.Download.Dir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Job registry
	jobs := store.NewMemoryStore(cfg.Jobs.TTL, cfg.Jobs.Capacity)

	// 3. Pipeline collaborators
	exec := executor.New()
	downloader := download.NewYTDLP(cfg.Download.YTDLPPath, cfg.Download.Dir, exec)
	coordinator := transcribe.NewCoordinator(
		whisper.New(cfg.Whisper, exec),
		google.New(cfg.Google),
	)
	orchestrator := pipeline.NewOrchestrator(ctx, jobs, downloader, coordinator, logger)

	// 4. Summarization chain: generative tiers first, deterministic last.
	// Gemini only joins the chain when a key is configured.
	var strategies []summarize.Strategy
	if cfg.Summarizer.GeminiAPIKey != "" {
		strategies = append(strategies, gemini.New(cfg.Summarizer))
		slog.Info("gemini summarizer enabled", "model", cfg.Summarizer.GeminiModel)
	}
	strategies = append(strategies,
		ollama.New(cfg.Summarizer),
		rulebased.New(),
	)
	chain := summarize.NewChain(logger, strategies...)

	// 5. Router
	router := api.NewRouter(api.Dependencies{
		HealthHandler:     healthHandler(jobs),
		TranscribeHandler: handler.NewTranscribeHandler(jobs, orchestrator),
		StatusHandler:     handler.NewStatusHandler(jobs),
		SummarizeHandler:  handler.NewSummarizeHandler(chain),
	})

	// 6. HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	// In-flight pipelines observe the cancelled root context at their next
	// stage boundary and mark their jobs failed.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

func healthHandler(jobs store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, map[string]any{
			"status": "ok",
			"jobs":   jobs.Len(),
		})
	}
}
