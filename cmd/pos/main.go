package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/Xausdorf/offline-pos/internal/infrastructure/config"
	"github.com/Xausdorf/offline-pos/internal/infrastructure/logger"
	"github.com/Xausdorf/offline-pos/internal/infrastructure/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pos",
		Short:         "Offline point-of-sale core",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		serveCmd(),
		migrateCmd(),
	)

	return root
}

// setup loads the config and opens the logger and the database pool shared by
// every subcommand.
func setup(ctx context.Context) (*config.Config, *slog.Logger, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		return nil, nil, nil, err
	}

	log := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.JSON)
	slog.SetDefault(log)

	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		URL:             cfg.Database.URL,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		log.Error("database init failed", "error", err)
		return nil, nil, nil, err
	}

	return cfg, log, pool, nil
}
