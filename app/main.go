package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/newsdeck/app/api"
	"github.com/lysyi3m/newsdeck/app/cfg"
	"github.com/lysyi3m/newsdeck/app/chat"
	"github.com/lysyi3m/newsdeck/app/headlines"
	"github.com/lysyi3m/newsdeck/app/podcast"
	"github.com/lysyi3m/newsdeck/app/summary"
	"github.com/lysyi3m/newsdeck/app/tasks"
	"github.com/lysyi3m/newsdeck/app/upstream"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting NewsDeck server", "version", appCfg.Version)

	// Shared HTTP client for all upstream calls
	httpClient := &http.Client{
		Timeout: time.Duration(appCfg.UpstreamTimeout) * time.Second,
	}

	// Upstream clients
	gemini := upstream.NewGeminiClient(appCfg.GeminiAPIKey, httpClient)
	serp := upstream.NewSerpClient(appCfg.SerpAPIKey, httpClient)
	news := upstream.NewNewsClient(appCfg.NewsAPIKey, httpClient)
	speech := upstream.NewSpeechClient(appCfg.ElevenLabsAPIKey, httpClient)

	// Core components
	headlineProvider := headlines.NewProvider(news, httpClient, appCfg.UserAgent,
		appCfg.DefaultCountry, appCfg.MaxArticles)
	resolver := chat.NewResolver(serp, gemini)
	summarizer := summary.NewGenerator(gemini, appCfg.SummaryMinLength)

	// Podcast pipeline
	voiceCatalog := podcast.NewCatalog(appCfg.VoicesFile)
	if err := voiceCatalog.Run(); err != nil {
		slog.Error("Failed to load voice catalog", "file", appCfg.VoicesFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Voice catalog loaded", "voices", len(voiceCatalog.List()))

	audioStore := podcast.NewStore(appCfg.PodcastsDir)
	extractor := podcast.NewArticleExtractor(httpClient, appCfg.UserAgent)
	orchestrator := podcast.NewOrchestrator(headlineProvider, summarizer, speech,
		extractor, audioStore, voiceCatalog)

	// Background maintenance
	scheduler := tasks.NewScheduler(audioStore)
	scheduler.Start()
	defer scheduler.Stop()

	// HTTP server
	apiHandler := api.NewHandler(resolver, summarizer, headlineProvider, serp,
		orchestrator, voiceCatalog, audioStore)
	server := api.NewServer(apiHandler)

	// Podcast generation holds the response open, so the write timeout has to
	// exceed the full generation budget.
	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: time.Duration(appCfg.PodcastTimeout+30) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("NewsDeck server started successfully")

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("NewsDeck server shutdown complete")
}
