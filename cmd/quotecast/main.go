// Package main is the entry point for the quotecast service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/basedfin/quotecast/internal/adapters/cast"
	"github.com/basedfin/quotecast/internal/adapters/clients"
	"github.com/basedfin/quotecast/internal/adapters/clients/acl"
	"github.com/basedfin/quotecast/internal/adapters/http"
	"github.com/basedfin/quotecast/internal/adapters/http/handlers"
	"github.com/basedfin/quotecast/internal/adapters/store"
	"github.com/basedfin/quotecast/internal/app"
	"github.com/basedfin/quotecast/internal/platform/config"
	"github.com/basedfin/quotecast/internal/platform/logging"
	"github.com/basedfin/quotecast/internal/platform/telemetry"
	"github.com/basedfin/quotecast/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Open the local quote store
	quoteStore, err := store.Open(cfg.Quotes.StorePath, logger)
	if err != nil {
		return fmt.Errorf("opening quote store: %w", err)
	}

	defer func() {
		if closeErr := quoteStore.Close(); closeErr != nil {
			logger.Error("quote store close error", slog.Any("error", closeErr))
		}
	}()

	// 6. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	if err := healthRegistry.Register(quoteStore); err != nil {
		return fmt.Errorf("registering store health check: %w", err)
	}

	// 7. Create the remote quote source client.
	// The fetch contract is one best-effort attempt, so retries are pinned
	// off regardless of the general client settings.
	sourceRetry := cfg.Client.Retry
	sourceRetry.MaxAttempts = 1

	sourceClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Quotes.Source.BaseURL,
		ServiceName: "quote-source",
		Timeout:     cfg.Client.Timeout,
		Retry:       sourceRetry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating quote source client: %w", err)
	}

	quoteSource := acl.NewQuoteListClient(acl.QuoteListClientConfig{
		Client: sourceClient,
		Path:   cfg.Quotes.Source.Path,
		Logger: logger,
	})

	if err := healthRegistry.Register(quoteSource); err != nil {
		return fmt.Errorf("registering quote source health check: %w", err)
	}

	// 8. Resolve the initial quote list: store, then remote, then defaults
	resolver := app.NewResolver(app.ResolverConfig{
		Store:  quoteStore,
		Source: quoteSource,
		Logger: logger,
	})

	quotes, err := resolver.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("resolving quote list: %w", err)
	}

	library := app.NewLibrary(app.LibraryConfig{Store: quoteStore, Logger: logger})
	library.Seed(quotes)

	logger.Info("quote library seeded", slog.Int("count", library.Count()))

	// 9. Build the cast channel chain in its fixed order
	channels, err := buildCastChannels(cfg, logger)
	if err != nil {
		return fmt.Errorf("building cast channels: %w", err)
	}

	dispatcher := app.NewDispatcher(app.DispatcherConfig{
		Channels: channels,
		Logger:   logger,
	})

	// 10. Admin sessions
	sessions := app.NewSessionManager(app.AdminSessionConfig{
		Library: library,
		Store:   quoteStore,
		Logger:  logger,
	})

	// 11. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	quoteHandler := handlers.NewQuoteHandler(library, app.NewPicker(), dispatcher)
	adminHandler := handlers.NewAdminHandler(sessions, library)

	// 12. Create HTTP server and router
	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:      logger,
		ServiceName: cfg.App.Name,
		Health:      healthHandler,
		API:         []http.RouteRegistrar{quoteHandler, adminHandler},
		Timeout:     http.DefaultRequestTimeout,
	})

	// 13. Start server (non-blocking) and wait for shutdown
	serverErr := server.Start()

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// buildCastChannels assembles the dispatch order:
// host composer (when configured), frame bridge, clipboard, manual prompt.
// The manual prompt is always last so dispatch can never fail outright.
func buildCastChannels(cfg *config.Config, logger *slog.Logger) ([]ports.CastChannel, error) {
	var channels []ports.CastChannel

	if cfg.Cast.Composer.Enabled {
		composerClient, err := clients.New(&clients.Config{
			BaseURL:     cfg.Cast.Composer.BaseURL,
			ServiceName: "host-composer",
			Timeout:     cfg.Client.Timeout,
			Retry:       cfg.Client.Retry,
			Circuit:     cfg.Client.CircuitBreaker,
			Transport:   cfg.Client.Transport,
			Logger:      logger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating composer client: %w", err)
		}

		channels = append(channels, cast.NewHostComposer(cast.HostComposerConfig{
			Client: composerClient,
			Path:   cfg.Cast.Composer.Path,
			Logger: logger,
		}))
	}

	frameClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Cast.Frame.BaseURL,
		ServiceName: "frame-bridge",
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating frame bridge client: %w", err)
	}

	channels = append(channels, cast.NewFrameMessenger(cast.FrameMessengerConfig{
		Client: frameClient,
		Path:   cfg.Cast.Frame.Path,
		Source: cfg.Cast.Frame.Source,
		Logger: logger,
	}))

	if cfg.Cast.ClipboardEnabled {
		channels = append(channels, cast.NewClipboardWriter(logger))
	}

	channels = append(channels, cast.NewManualPrompt(logger))

	return channels, nil
}

// waitForShutdown blocks until a shutdown signal is received or server error
// occurs, then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
