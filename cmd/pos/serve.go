package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/Xausdorf/offline-pos/internal/coordinator"
	httpdelivery "github.com/Xausdorf/offline-pos/internal/delivery/http"
	"github.com/Xausdorf/offline-pos/internal/infrastructure/postgres"
	"github.com/Xausdorf/offline-pos/internal/infrastructure/qrgenerator"
	"github.com/Xausdorf/offline-pos/internal/usecase/catalog"
	"github.com/Xausdorf/offline-pos/internal/usecase/checkout"
	"github.com/Xausdorf/offline-pos/internal/usecase/drawer"
	"github.com/Xausdorf/offline-pos/internal/usecase/receipt"
)

const readHeaderTimeout = 5 * time.Second

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, log, pool, err := setup(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			if migrate {
				if err := postgres.ApplyMigrations(ctx, pool); err != nil {
					log.Error("migrate failed", "error", err)
					return err
				}
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			provider := postgres.NewProvider(pool, log, coordinator.NewMetrics(reg))

			handler := httpdelivery.NewHandler(
				catalog.NewUseCase(provider),
				drawer.NewUseCase(provider),
				checkout.NewUseCase(provider),
				receipt.NewUseCase(provider, qrgenerator.NewGenerator(cfg.Receipt.QRSize)),
				log,
			)
			router := httpdelivery.NewRouter(handler, httpdelivery.RouterConfig{
				RequestTimeout: cfg.HTTP.RequestTimeout,
				Metrics:        promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			})

			srv := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: readHeaderTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("HTTP server starting", "addr", cfg.HTTP.Addr)
				if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
					errCh <- serveErr
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					log.Error("http serve failed", "error", err)
					return err
				}
				return nil
			case <-ctx.Done():
			}
			log.Info("shutting down...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply migrations before serving")
	return cmd
}
