package cmd

import (
	"errors"
	"fmt"

	"variant-manager/core/config"
	"variant-manager/core/database"
	"variant-manager/core/events"
	"variant-manager/core/lock"
	"variant-manager/core/logger"
	"variant-manager/core/storage"
	"variant-manager/feature/integrity"
	"variant-manager/feature/inventory"
	"variant-manager/feature/variants"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles the connections shared by the commands.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	store   storage.Client
	locker  lock.Locker
	closers []func() error
}

// bootstrap loads configuration, builds the logger and opens the database.
// Storage and locking are opened only when withInfra is set.
func bootstrap(withInfra bool) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a := &app{cfg: cfg, logger: logg, db: db}
	if sqlDB, err := db.DB(); err == nil {
		a.closers = append(a.closers, sqlDB.Close)
	}

	if !withInfra {
		return a, nil
	}

	// Minio connects lazily, so a bad endpoint surfaces on first use.
	a.store, err = storage.NewClient(cfg.Storage)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	locker, closeLock, err := lock.New(cfg.Redis)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create locker: %w", err)
	}
	a.locker = locker
	a.closers = append(a.closers, closeLock)

	return a, nil
}

// Close releases every connection opened by bootstrap.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	_ = a.logger.Sync()
	return errors.Join(errs...)
}

func (a *app) retryPolicy() database.RetryPolicy {
	policy := database.DefaultRetryPolicy()
	policy.BaseDelay = a.cfg.Catalog.RetryBaseDelay()
	return policy
}

func (a *app) variantsFeature() *variants.Feature {
	return variants.NewFeature(a.db, a.logger,
		variants.WithEvents(events.NewLogSink(a.logger)),
		variants.WithRetryPolicy(a.retryPolicy()),
	)
}

func (a *app) inventoryFeature() *inventory.Feature {
	cfg := inventory.Config{
		BatchSize:    a.cfg.Catalog.ReconcileBatchSize,
		LockTTL:      a.cfg.Catalog.LockTTL(),
		Bucket:       a.cfg.Storage.Bucket,
		ReportPrefix: a.cfg.Catalog.ReportPrefix,
	}
	opts := []inventory.Option{inventory.WithEvents(events.NewLogSink(a.logger))}
	if a.locker != nil {
		opts = append(opts, inventory.WithLocker(a.locker))
	}
	if a.store != nil {
		opts = append(opts, inventory.WithStorage(a.store))
	}
	return inventory.NewFeature(a.db, a.logger, cfg, opts...)
}

func (a *app) integrityFeature() *integrity.Feature {
	cfg := integrity.Config{
		Bucket:       a.cfg.Storage.Bucket,
		Region:       a.cfg.Storage.Region,
		ReportPrefix: a.cfg.Catalog.ReportPrefix,
	}
	return integrity.NewFeature(a.store, cfg, a.logger, a.db)
}
