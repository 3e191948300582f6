package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	grpcrouter "github.com/juansean527/persona-service/internal/api/grpc/router"
	grpcserver "github.com/juansean527/persona-service/internal/api/grpc/server"
	httprouter "github.com/juansean527/persona-service/internal/api/http/router"
	httpserver "github.com/juansean527/persona-service/internal/api/http/server"
	"github.com/juansean527/persona-service/internal/metrics"
	"github.com/juansean527/persona-service/internal/model"
	"github.com/juansean527/persona-service/internal/repository/postgres"
	"github.com/juansean527/persona-service/internal/server"
	"github.com/juansean527/persona-service/internal/service"
	storage "github.com/juansean527/persona-service/internal/storage/minio"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the gRPC health server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
			defer stop()

			return runServe(ctx, cmd)
		},
	}
}

func runServe(ctx context.Context, cmd *cobra.Command) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	printAppVersion(cmd)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	if err := metrics.RegisterPoolStats(reg, a.db.Pool); err != nil {
		return fmt.Errorf("failed to register pool metrics: %w", err)
	}

	opts := a.serviceOptions(m)
	personaRepo := postgres.NewPersonaRepository(a.db)
	reportRepo := postgres.NewReportRepository(a.db)

	services := httprouter.Services{
		Personas:   service.NewPersona(personaRepo, opts...),
		Population: a.population(m),
		Reports:    service.NewReport(reportRepo, opts...),
	}

	if a.cfg.Storage.Enabled() {
		store, err := storage.Connect(ctx, storage.Config{
			Endpoint:  a.cfg.Storage.Endpoint,
			AccessKey: a.cfg.Storage.AccessKey,
			SecretKey: a.cfg.Storage.SecretKey,
			Bucket:    a.cfg.Storage.Bucket,
			UseSSL:    a.cfg.Storage.UseSSL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize storage client: %w", err)
		}
		services.Export = service.NewExport(personaRepo, reportRepo, store, opts...)
	} else {
		a.logger.Info("object storage not configured, exports disabled")
	}

	sl := server.NewSecurityLayer(a.cfg.HTTP.EnableHTTPS, a.cfg.HTTP.CertFileName, a.cfg.HTTP.PrivateKeyFileName)

	httpHandler := httprouter.New(services, a.db, m, reg, a.logger).Register()
	servers := []model.Server{
		httpserver.NewHTTPServer(httpHandler, fmt.Sprintf(":%s", a.cfg.HTTP.Port), a.cfg.HTTP.ReadHeaderTimeout),
	}
	if a.cfg.GRPC.Enabled {
		grpcSrv := grpcrouter.New(a.db, a.logger).Register()
		servers = append(servers, grpcserver.NewGRPCServer(grpcSrv, fmt.Sprintf(":%s", a.cfg.GRPC.Port)))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		g.Go(func() error {
			a.logger.Info("Starting server on", "address", s.Address())
			return s.Start(sl)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()

		var errs []error
		for _, s := range servers {
			if err := s.Stop(shutdownCtx); err != nil {
				a.logger.Error("error during server shutdown", "error", err, "address", s.Address())
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	a.logger.Info("shutdown complete")
	return nil
}
