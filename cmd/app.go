package main

import (
	"context"
	"fmt"
	"os"

	"github.com/juansean527/persona-service/internal/config"
	"github.com/juansean527/persona-service/internal/generator"
	"github.com/juansean527/persona-service/internal/logger"
	"github.com/juansean527/persona-service/internal/metrics"
	"github.com/juansean527/persona-service/internal/repository/postgres"
	"github.com/juansean527/persona-service/internal/service"
)

var logOutput = os.Stdout

// app holds the dependencies shared by every command.
type app struct {
	cfg    *config.Config
	logger *logger.Logger
	db     *postgres.Connection
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	log := logger.NewWithFormat(logOutput, cfg.LogLevel, cfg.LogFormat)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN, postgres.Options{
		MaxConns:       cfg.Database.MaxConns,
		SkipMigrations: cfg.Database.SkipMigrations,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return &app{cfg: cfg, logger: log, db: db}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", "error", err)
	}
}

// population builds the bulk service. m may be nil.
func (a *app) population(m *metrics.Metrics) *service.Population {
	gen := generator.New(generator.NewSource(a.cfg.Generator.Seed))
	return service.NewPopulation(postgres.NewBulkRepository(a.db), gen, a.serviceOptions(m)...)
}

func (a *app) serviceOptions(m *metrics.Metrics) []service.Option {
	opts := []service.Option{service.WithLogger(a.logger)}
	if m != nil {
		opts = append(opts, service.WithMetrics(m))
	}
	return opts
}
