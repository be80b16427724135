package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jhoicas/bikefactory/internal/application/analytics"
	"github.com/jhoicas/bikefactory/internal/application/auth"
	"github.com/jhoicas/bikefactory/internal/application/inventory"
	"github.com/jhoicas/bikefactory/internal/application/operations"
	"github.com/jhoicas/bikefactory/internal/application/orders"
	"github.com/jhoicas/bikefactory/internal/application/production"
	"github.com/jhoicas/bikefactory/internal/application/snapshot"
	"github.com/jhoicas/bikefactory/internal/domain/catalog"
	"github.com/jhoicas/bikefactory/internal/domain/factory"
	"github.com/jhoicas/bikefactory/internal/infrastructure/catalogfile"
	"github.com/jhoicas/bikefactory/internal/infrastructure/memory"
	infrasnap "github.com/jhoicas/bikefactory/internal/infrastructure/snapshot"
	"github.com/jhoicas/bikefactory/pkg/config"
	"github.com/jhoicas/bikefactory/pkg/logger"
)

// snapshotBackend Store con cierre (archivo o SQLite).
type snapshotBackend interface {
	snapshot.Store
	Path() string
	Close() error
}

// app dependencias de una invocación.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	backend snapshotBackend

	auth       *auth.AuthUseCase
	inventory  *inventory.UseCase
	production *production.UseCase
	orders     *orders.UseCase
	operations *operations.UseCase
	dashboard  *analytics.DashboardUseCase
	snapshot   *snapshot.UseCase
}

// newApp carga configuración y catálogo, abre el backend de snapshot y restaura la sesión.
// Si no hay snapshot guardado siembra el estado desde el catálogo.
func newApp(ctx context.Context, stderr io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: stderr})

	cat := catalog.Default()
	if cfg.App.CatalogFile != "" {
		if cat, err = catalogfile.Load(cfg.App.CatalogFile); err != nil {
			return nil, err
		}
	} else if err := cat.Validate(); err != nil {
		return nil, err
	}

	var backend snapshotBackend
	switch cfg.Snapshot.Backend {
	case config.SnapshotBackendSQLite:
		backend, err = infrasnap.NewSQLiteStore(cfg.Snapshot.Path)
	default:
		backend, err = infrasnap.NewFileStore(cfg.Snapshot.Path)
	}
	if err != nil {
		return nil, err
	}

	store, err := memory.NewStore(cat.Stations, factory.NewState(len(cat.Stations)))
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	txRunner := memory.NewTxRunner(store)

	a := &app{
		cfg:     cfg,
		log:     log,
		backend: backend,
		auth: auth.NewAuthUseCase(txRunner, log, auth.SessionConfig{
			Secret:     cfg.Session.Secret,
			ExpMinutes: cfg.Session.Expiration,
			Issuer:     cfg.Session.Issuer,
			BcryptCost: cfg.Session.BcryptCost,
		}),
		inventory:  inventory.NewUseCase(txRunner, log),
		production: production.NewUseCase(txRunner, log),
		orders:     orders.NewUseCase(txRunner, log),
		operations: operations.NewUseCase(txRunner, log, nil),
		dashboard:  analytics.NewDashboardUseCase(txRunner, cfg.Inventory.LowStockThreshold),
		snapshot:   snapshot.NewUseCase(store, infrasnap.JSONCodec{}, backend, log, nil),
	}

	found, err := a.snapshot.Restore(ctx)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("restaurar sesión: %w", err)
	}
	if !found {
		seeded, err := cat.Seed(auth.Hasher(cfg.Session.BcryptCost))
		if err != nil {
			_ = backend.Close()
			return nil, err
		}
		if err := store.Replace(ctx, seeded); err != nil {
			_ = backend.Close()
			return nil, err
		}
		log.Info().Str("backend", cfg.Snapshot.Backend).Str("path", backend.Path()).Msg("sesión nueva sembrada desde el catálogo")
	} else {
		log.Debug().Str("backend", cfg.Snapshot.Backend).Str("path", backend.Path()).Msg("sesión restaurada")
	}
	return a, nil
}

func (a *app) Close() error {
	return a.backend.Close()
}
