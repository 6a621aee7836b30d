package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tinoosan/merchants/internal/config"
	"github.com/tinoosan/merchants/internal/httpapi"
	"github.com/tinoosan/merchants/internal/model"
	"github.com/tinoosan/merchants/internal/service/merchant"
	"github.com/tinoosan/merchants/internal/storage/memory"
	pgstore "github.com/tinoosan/merchants/internal/storage/postgres"
	"github.com/tinoosan/merchants/internal/storage/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Logger (slog to stdout). Level via LOG_LEVEL; format via LOG_FORMAT (json|text, default json)
	logger := buildLogger(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	// Volatile store
	mem := memory.New()
	if cfg.DevSeed {
		seeded := seedDev(mem)
		logDevSeed(logger, seeded)
		printDevSeedBanner(seeded)
	}
	memSvc := merchant.New("memory", mem, mem)

	// Persistent store: Postgres when DATABASE_URL is provided, SQLite file otherwise
	var (
		dbSvc   merchant.Service
		ready   httpapi.ReadyChecker
		closeFn func()
	)
	if dsn := cfg.Storage.DatabaseURL; dsn != "" {
		pg, err := pgstore.Open(ctx, dsn)
		if err != nil {
			logger.Error("failed to connect to postgres", "err", err)
			os.Exit(1)
		}
		closeFn = pg.Close
		dbSvc = merchant.New("postgres", pg, pg)
		ready = pg
	} else {
		lite, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			logger.Error("failed to open sqlite", "path", cfg.Storage.SQLitePath, "err", err)
			os.Exit(1)
		}
		closeFn = func() {
			if err := lite.Close(); err != nil {
				logger.Error("sqlite close error", "err", err)
			}
		}
		dbSvc = merchant.New("sqlite", lite, lite)
		ready = lite
	}
	logger.Info("storage backend: memory + " + cfg.PersistentBackend())

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httpapi.New(memSvc, dbSvc, logger, ready).Handler(),
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("merchant service listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
	if closeFn != nil {
		closeFn()
	}
}

// seedDev adds a few sample merchants to the volatile store.
func seedDev(s *memory.Store) []model.Merchant {
	desc := "Sample merchant seeded at startup"
	inputs := []model.Input{
		{Name: "Acme", Description: &desc},
		{Name: "Globex"},
		{Name: "Initech", Description: &desc},
	}
	out := make([]model.Merchant, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, s.Seed(in))
	}
	return out
}

// logDevSeed emits structured logs with the seeded ids
func logDevSeed(l *slog.Logger, ms []model.Merchant) {
	ids := make([]int64, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, m.ID)
	}
	l.Info("DEV seed (memory)", "merchant_ids", ids)
}

// printDevSeedBanner prints a simple banner to stdout for easy copy/paste of IDs
func printDevSeedBanner(ms []model.Merchant) {
	fmt.Println("==================== DEV SEED ====================")
	for _, m := range ms {
		fmt.Printf("%s/%d  %s\n", httpapi.MemoryPrefix, m.ID, m.Name)
	}
	fmt.Println("==================================================")
}

// parseLogLevel maps config values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLogger(level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(level)}
	if format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
