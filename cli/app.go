package cli

import (
	"context"
	"fmt"
	"log/slog"

	"furuth/config"
	"furuth/database"
	"furuth/services"
)

// app is the set of stores one command works against.
type app struct {
	cfg     config.Config
	storage database.Storage
	catalog *services.CatalogStore
	ledger  *services.OrderLedger
}

func openApp(ctx context.Context, opts *RootOptions) (*app, error) {
	cfg := config.Load()
	if opts.Driver != "" {
		cfg.StorageDriver = opts.Driver
	}

	storage, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect storage: %w", err)
	}
	catalog, err := services.NewCatalogStore(ctx, storage)
	if err != nil {
		storage.Close()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		storage: storage,
		catalog: catalog,
		ledger:  services.NewOrderLedger(storage, catalog),
	}, nil
}

func (a *app) Close() {
	if err := a.storage.Close(); err != nil {
		slog.Warn("failed to close storage", "error", err)
	}
}
