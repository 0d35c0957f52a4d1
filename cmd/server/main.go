package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/leadlist/internal/config"
	"github.com/JonMunkholm/leadlist/internal/importer"
	"github.com/JonMunkholm/leadlist/internal/lead"
	"github.com/JonMunkholm/leadlist/internal/logging"
	"github.com/JonMunkholm/leadlist/internal/places"
	"github.com/JonMunkholm/leadlist/internal/storage"
	"github.com/JonMunkholm/leadlist/internal/storage/postgres"
	"github.com/JonMunkholm/leadlist/internal/storage/redisdoc"
	"github.com/JonMunkholm/leadlist/internal/web"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Warn("ignoring .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	if err := run(cfg); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	docs, err := openDocuments(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer docs.close()

	store, err := lead.Open(ctx, docs.leads)
	if err != nil {
		return fmt.Errorf("open lead store: %w", err)
	}
	slog.Info("lead store opened", "backend", cfg.Storage.Backend, "leads", store.Len())

	var industries places.IndustryMap
	if cfg.Places.IndustryMapFile != "" {
		industries, err = places.LoadIndustryMap(cfg.Places.IndustryMapFile)
		if err != nil {
			return err
		}
		slog.Info("industry map loaded", "file", cfg.Places.IndustryMapFile, "tags", len(industries))
	}

	meter := places.NewMeter(docs.usage, cfg.Places.APIKey, places.WithMonthlyCap(cfg.Places.MonthlyCap))
	if !meter.HasAPIKey() {
		slog.Info("places API key not configured, server-side search disabled")
	}

	server := web.NewServer(cfg, web.Dependencies{
		Store:    store,
		Importer: importer.New(store),
		Imports:  importer.NewLimiter(cfg.Import.MaxConcurrent, cfg.Import.MaxWaitTime),
		Admitter: places.NewAdmitter(store, industries, cfg.Places.Region),
		// Candidates are posted by the browser; no provider client is linked in.
		Search: places.NewService(nil, meter, cfg.Places.SearchesPerSecond),
		Usage:  meter,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.Server.Addr())
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-sigCh:
		slog.Info("shutting down...", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}

	imports := server.Imports
	if active := imports.Active(); active > 0 {
		slog.Info("waiting for imports to complete", "active", active)
		if err := imports.WaitForDrain(shutdownCtx); err != nil {
			slog.Warn("imports did not complete in time", "error", err)
		} else {
			slog.Info("all imports completed")
		}
	}
	return nil
}

// documents are the two persisted blobs plus whatever connection backs them.
type documents struct {
	leads storage.Document
	usage storage.Document
	close func()
}

func openDocuments(ctx context.Context, cfg config.StorageConfig) (*documents, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		slog.Warn("memory storage selected, leads will not survive a restart")
		return &documents{
			leads: storage.NewMemory(nil),
			usage: storage.NewMemory(nil),
			close: func() {},
		}, nil

	case config.BackendPostgres:
		poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse database URL: %w", err)
		}
		poolConfig.MaxConns = int32(cfg.MaxConns)
		poolConfig.MinConns = int32(cfg.MinConns)
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}

		if u, err := url.Parse(cfg.DatabaseURL); err == nil {
			slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
		}
		return &documents{
			leads: postgres.NewDocument(pool, cfg.Key),
			usage: postgres.NewDocument(pool, cfg.UsageKey),
			close: pool.Close,
		}, nil

	case config.BackendRedis:
		client, err := redisdoc.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return &documents{
			leads: redisdoc.New(client, cfg.Key),
			usage: redisdoc.New(client, cfg.UsageKey),
			close: func() {
				if err := client.Close(); err != nil {
					slog.Warn("close redis client", "error", err)
				}
			},
		}, nil

	default:
		leads := storage.NewFile(cfg.Dir, cfg.Key)
		slog.Info("using file storage", "path", leads.Path())
		return &documents{
			leads: leads,
			usage: storage.NewFile(cfg.Dir, cfg.UsageKey),
			close: func() {},
		}, nil
	}
}
