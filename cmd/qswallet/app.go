package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/AlexZinkM/qsafe-wallet/internal/config"
	"github.com/AlexZinkM/qsafe-wallet/internal/credstore"
	"github.com/AlexZinkM/qsafe-wallet/internal/metrics"
	"github.com/AlexZinkM/qsafe-wallet/internal/storage"
)

// app holds the pieces every command needs.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	backend  storage.Backend
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	store    *credstore.Store
}

func newApp() (*app, error) {
	if err := config.Init(); err != nil {
		return nil, err
	}
	cfg := config.Get()

	log, err := cfg.NewLogger()
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m, err := metrics.New(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	backend, err := cfg.OpenStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store at %s: %w", cfg.StoreBackend, cfg.StorePath, err)
	}
	log.Info("store opened",
		zap.String("backend", cfg.StoreBackend),
		zap.String("path", cfg.StorePath),
	)

	store := credstore.New(backend,
		credstore.WithLogger(log),
		credstore.WithMetrics(m),
		credstore.WithParams(cfg.ScryptParams()),
	)
	return &app{
		cfg:      cfg,
		log:      log,
		backend:  backend,
		registry: registry,
		metrics:  m,
		store:    store,
	}, nil
}

func (a *app) Close() error {
	defer a.log.Sync()
	if err := a.backend.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}
