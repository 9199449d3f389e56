package main

import (
	"github.com/spf13/cobra"

	"github.com/Xausdorf/offline-pos/internal/infrastructure/postgres"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			_, log, pool, err := setup(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := postgres.ApplyMigrations(ctx, pool); err != nil {
				log.Error("migrate failed", "error", err)
				return err
			}

			version, err := postgres.MigrationVersion(ctx, pool)
			if err != nil {
				log.Error("read schema version failed", "error", err)
				return err
			}
			log.Info("schema up to date", "version", version)
			return nil
		},
	}
}
