package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sherwin-Cui/three-kindoms/internal/config"
	"github.com/Sherwin-Cui/three-kindoms/internal/engine"
	"github.com/Sherwin-Cui/three-kindoms/internal/handlers"
	"github.com/Sherwin-Cui/three-kindoms/internal/logger"
	"github.com/Sherwin-Cui/three-kindoms/internal/services"
	"github.com/Sherwin-Cui/three-kindoms/internal/storage"
	"github.com/Sherwin-Cui/three-kindoms/pkg/catalog"
	"github.com/Sherwin-Cui/three-kindoms/pkg/state"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting story API", "port", cfg.Port, "environment", cfg.Environment)

	var llm services.LLMService
	switch cfg.LLMProvider {
	case "simulated":
		llm = services.SimulatedService{}
		log.Warn("Using simulated narrator; set LLM_PROVIDER=deepseek for live play")
	case "deepseek":
		if cfg.DeepSeekAPIKey == "" {
			log.Error("DEEPSEEK_API_KEY is required for the deepseek provider")
			os.Exit(1)
		}
		llm = services.NewDeepSeekService(cfg.DeepSeekAPIKey, cfg.DeepSeekModel)
	default:
		log.Error("Unknown LLM provider", "provider", cfg.LLMProvider)
		os.Exit(1)
	}

	store, err := storage.NewRedisStorage(cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}
	startupCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	if err := store.WaitForConnection(startupCtx); err != nil {
		cancel()
		log.Error("Storage unavailable", "error", err)
		os.Exit(1)
	}
	cancel()

	eng := engine.New(catalog.Default(), llm, store, state.NewRoller(), log)

	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(store, log))
	mux.Handle("/v1/turn", handlers.NewTurnHandler(eng, log))
	mux.Handle("/v1/check", handlers.NewCheckHandler(eng, log))
	mux.Handle("/v1/choice", handlers.NewChoiceHandler(eng, log))
	mux.Handle("/v1/items/use", handlers.NewItemHandler(eng, log))
	mux.Handle("/v1/gamestate", handlers.NewGameStateHandler(eng, log))
	mux.Handle("/v1/gamestate/", handlers.NewGameStateHandler(eng, log))
	mux.Handle("/v1/chapter", handlers.NewChapterHandler(eng, log))
	mux.Handle("/v1/reset", handlers.NewResetHandler(eng, log))
	mux.Handle("/v1/summary", handlers.NewSummaryHandler(eng, log))
	mux.Handle("/v1/saves/", handlers.NewSaveHandler(eng, log))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handlers.RequestLogger(mux, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	}
	if err := store.Close(); err != nil {
		log.Error("Storage close failed", "error", err)
	}
	log.Info("Shutdown complete")
}
