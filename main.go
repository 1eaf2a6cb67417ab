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

	"github.com/ferg-cod3s/opencode-nexus/internal/api"
	"github.com/ferg-cod3s/opencode-nexus/internal/buildinfo"
	"github.com/ferg-cod3s/opencode-nexus/internal/chat"
	"github.com/ferg-cod3s/opencode-nexus/internal/config"
	"github.com/ferg-cod3s/opencode-nexus/internal/logging"
	"github.com/ferg-cod3s/opencode-nexus/internal/middleware"
	"github.com/ferg-cod3s/opencode-nexus/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load(getEnv("CONFIG_FILE", ""))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	level := flag.String("log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	jsonLog := flag.Bool("log-json", cfg.LogJSON, "log as JSON")
	logFile := flag.String("log-file", cfg.LogFile, "rotate logs to this file instead of stdout")
	delay := flag.Duration("stream-delay", cfg.StreamDelay, "pause between streamed reply fragments")
	flag.Parse()

	logger := logging.New(*level, *jsonLog, *logFile)
	logger.Info("build", "version", buildinfo.Version, "commit", buildinfo.Commit, "built_at", buildinfo.BuiltAt)

	store := session.NewMemoryStore()
	chatCtrl := chat.NewController(logger, chat.NewMockEngine(), store, *delay)

	h := api.NewHandlers(logger, chatCtrl, store)
	mux := chi.NewRouter()
	api.RegisterRoutes(mux, h)

	var handler http.Handler = mux
	handler = cors.AllowAll().Handler(handler)
	handler = middleware.Recoverer(logger)(handler)
	handler = middleware.RequestID()(handler)
	handler = middleware.AccessLog(logger)(handler)
	handler = middleware.VersionHeader()(handler)

	server := http.Server{
		Addr:              fmt.Sprintf(":%s", *addr),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      2 * time.Minute, // event-stream responses stay open across fragment delays
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("mock server listening", "port", *addr, "stream_delay", delay.String())
	logger.Info("endpoints",
		"app", "GET /app",
		"create_session", "POST /session",
		"prompt", "POST /session/{id}/prompt",
		"messages", "GET /session/{id}/messages",
		"sessions", "GET /sessions",
	)

	// Graceful shutdown
	errChan := make(chan error, 1)
	go func() { errChan <- server.ListenAndServe() }()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	case sig := <-sigChan:
		logger.Info("shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	} else {
		logger.Info("server stopped")
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v != "" {
		return v
	}
	return def
}
