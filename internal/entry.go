// Package internal provides the main application initialization and runtime logic.
package internal

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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/AmmarNaser/ui-engineering-notes/internal/api"
	"github.com/AmmarNaser/ui-engineering-notes/internal/listing"
	"github.com/AmmarNaser/ui-engineering-notes/internal/models"
	"github.com/AmmarNaser/ui-engineering-notes/internal/noteservice"
	"github.com/AmmarNaser/ui-engineering-notes/internal/render"
	"github.com/AmmarNaser/ui-engineering-notes/internal/sse"
	"github.com/AmmarNaser/ui-engineering-notes/internal/storage"
	"github.com/AmmarNaser/ui-engineering-notes/internal/watch"
	"github.com/AmmarNaser/ui-engineering-notes/internal/web"
)

func newApplication(opts []Option) (*application, error) {
	app := &application{
		version:   "dev",
		logOutput: os.Stdout,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

// logger builds the structured JSON logger and installs it as the default.
func (a *application) logger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(a.logOutput, &slog.HandlerOptions{
		Level: a.config.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// provider opens the configured content backend.
func (a *application) provider() (storage.Provider, error) {
	cfg := a.config.Content
	switch cfg.Source {
	case SourceGitHub:
		gh, err := storage.NewGitHub(cfg.GitHub.Options(), a.httpClient)
		if err != nil {
			return nil, err
		}
		return gh, nil
	case SourceFS, "":
		fs, err := storage.NewFS(cfg.FS.Root)
		if err != nil {
			return nil, err
		}
		return fs, nil
	}
	return nil, fmt.Errorf("unknown content source %q", cfg.Source)
}

// service wires the accessor, the listing assembler and the renderer.
func (a *application) service(logger *slog.Logger) (*noteservice.Service, error) {
	provider, err := a.provider()
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	store := storage.NewAccessor(provider, logger)
	return noteservice.NewService(
		store,
		listing.New(store, a.config.Listing.Concurrency),
		render.New(a.config.Render.HighlightStyle),
	), nil
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}

	cfg := app.config
	logger := app.logger()

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("content_source", cfg.Content.Source),
		slog.String("content_root", cfg.Content.FS.Root),
		slog.Bool("watch", cfg.Watch.Enabled),
		slog.String("log_level", cfg.App.LogLevel.String()))

	svc, err := app.service(logger)
	if err != nil {
		return err
	}

	// SSE broker, only for live reload.
	var broker *sse.Broker
	webOpts := web.Options{}
	if cfg.Watch.Enabled {
		broker = sse.NewBroker(cfg.Watch.Throttle)
		defer broker.Close()
		webOpts.Events = broker
	}

	pages, err := web.NewRouter(svc, webOpts)
	if err != nil {
		return fmt.Errorf("init pages: %w", err)
	}

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// Health check endpoints.
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// JSON API under /api, pages everywhere else.
	r.Mount("/api", api.NewRouter(svc))
	r.Mount("/", pages)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if broker != nil {
		// Event streams never finish on their own; closing the broker ends them.
		httpServer.RegisterOnShutdown(broker.Close)
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start file watcher with SSE callback.
	if broker != nil {
		g.Go(func() error {
			err := watch.Watch(gCtx, cfg.Content.FS.Root, logger, func(kind string, c models.Category, slug string) {
				broker.PublishDocumentEvent(kind, c, slug)
			})
			if err != nil {
				logger.Warn("watcher disabled", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group so the watcher stops along with the server.
var errShutdown = errors.New("shutdown")
