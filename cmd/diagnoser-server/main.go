package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/config"
	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/diagnosis"
	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/logging"
	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/provider"
	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/server"
	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/session"
)

const sweepInterval = 5 * time.Minute

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	logger := logging.NewComponentLogger("Main")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Info("=== Diagnoser Configuration ===")
	logger.Info("Provider: %s", cfg.Provider)
	logger.Info("Model: %s", cfg.Model)
	logger.Info("Addr: %s", cfg.Addr)
	logger.Info("Session TTL: %s", cfg.SessionTTL())
	logger.Info("LLM timeout: %s", cfg.LLMTimeout())
	logger.Info("===============================")

	store := session.NewMemoryStore(cfg.SessionTTL())

	backend := buildProvider(cfg, logger)
	if backend == nil {
		logger.Warn("No API key configured, running with local generation only")
	}

	controller := diagnosis.NewController(store, backend,
		diagnosis.WithTimeout(cfg.LLMTimeout()),
		diagnosis.WithLogger(logging.NewComponentLogger("Diagnosis")),
	)

	srv := server.New(server.Config{
		Addr:           cfg.Addr,
		AllowedOrigins: cfg.AllowedOrigins,
		Debug:          cfg.Debug,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
	}, controller, store, logging.NewComponentLogger("HTTP"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweepSessions(ctx, store, logger)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	logger.Info("Server stopped")
}

// buildProvider returns nil when no credential is configured; the echo
// backend is the exception since it needs none.
func buildProvider(cfg config.Config, logger logging.Logger) provider.Provider {
	if cfg.APIKey == "" && cfg.Provider != "echo" {
		return nil
	}

	factory := provider.NewFactory(logging.NewComponentLogger("Provider"))
	backend, err := factory.Create(cfg.Provider, provider.Config{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: cfg.LLMTimeout(),
	})
	if err != nil {
		log.Fatalf("Failed to create provider %q (known: %v): %v", cfg.Provider, provider.Available(), err)
	}
	return backend
}

// sweepSessions evicts expired sessions in the background so memory is
// reclaimed even without traffic touching them.
func sweepSessions(ctx context.Context, store session.Store, logger logging.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed, err := store.Sweep(ctx); err == nil && removed > 0 {
				logger.Debug("Swept %d expired sessions", removed)
			}
		}
	}
}
