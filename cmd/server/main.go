package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/condenser/internal/config"
	"github.com/JonMunkholm/condenser/internal/core"
	"github.com/JonMunkholm/condenser/internal/logging"
	"github.com/JonMunkholm/condenser/internal/source"
	"github.com/JonMunkholm/condenser/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"source", cfg.Source.Kind,
		"page_size", cfg.Table.PageSize,
		"selectable", cfg.Table.Selectable,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()
	table, title, err := loadTable(ctx, cfg)
	if err != nil {
		slog.Error("failed to load rows", "error", err, "code", core.MapError(err).Code)
		os.Exit(1)
	}
	slog.Info("rows loaded", "rows", len(table.Rows), "columns", len(table.Header))

	opts := []core.Option{
		core.WithPageSize(cfg.Table.PageSize),
		core.WithSentinels(cfg.Table.TrueSentinel, cfg.Table.FalseSentinel),
	}
	if !cfg.Table.Selectable {
		opts = append(opts, core.WithoutSelection())
	}

	session, err := web.NewSession(table.Rows, table.Header, opts...)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		os.Exit(1)
	}

	err = session.Do(func(e *core.Engine) error {
		cols := cfg.Table.FilterColumns
		if len(cols) == 0 {
			cols = allColumns(e.Width())
		}
		if err := e.SetFilterColumns(cols...); err != nil {
			return err
		}
		_, err := e.Query()
		return err
	})
	if err != nil {
		slog.Error("invalid table configuration", "error", err)
		os.Exit(1)
	}

	server := web.NewServer(session, cfg, title)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// loadTable reads the configured source and returns it with a page title.
func loadTable(ctx context.Context, cfg *config.Config) (*source.Table, string, error) {
	if strings.EqualFold(cfg.Source.Kind, config.SourcePostgres) {
		table, err := loadPostgres(ctx, cfg)
		return table, cfg.Source.Table, err
	}

	table, err := source.LoadCSVFile(cfg.Source.CSVPath, source.CSVOptions{HasHeader: cfg.Source.HasHeader})
	return table, filepath.Base(cfg.Source.CSVPath), err
}

func loadPostgres(ctx context.Context, cfg *config.Config) (*source.Table, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	// Rows are snapshotted into the engine, so the pool is only needed here.
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	if u, err := url.Parse(cfg.Database.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	}

	return source.LoadPostgres(ctx, pool, cfg.Source.Table, cfg.Source.Columns)
}

func allColumns(width int) []int {
	cols := make([]int, max(width, 0))
	for i := range cols {
		cols[i] = i
	}
	return cols
}
