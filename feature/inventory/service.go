package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"variant-manager/core/events"
	"variant-manager/core/lock"
	"variant-manager/core/logger"
	"variant-manager/core/reconcile"
	"variant-manager/core/storage"
	"variant-manager/feature/catalog/models"
	"variant-manager/feature/catalog/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Config tunes reconciliation runs.
type Config struct {
	// BatchSize is the number of records per query; defaults to reconcile.DefaultBatchSize.
	BatchSize int
	// LockTTL bounds how long a run holds its lock.
	LockTTL time.Duration
	// Bucket and ReportPrefix locate exported reports.
	Bucket       string
	ReportPrefix string
}

// Service runs the inventory and variant reconciliations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
	cfg    Config
	events events.Sink
	locker lock.Locker
	runner *reconcile.Runner
	client storage.Client
}

// Option configures a Service.
type Option func(*Service)

// WithEvents sets the sink for reconciliation events.
func WithEvents(sink events.Sink) Option {
	return func(s *Service) { s.events = sink }
}

// WithLocker sets the lock used to keep runs exclusive across processes.
func WithLocker(l lock.Locker) Option {
	return func(s *Service) { s.locker = l }
}

// WithStorage enables report export.
func WithStorage(client storage.Client) Option {
	return func(s *Service) { s.client = client }
}

// NewService creates a new reconciliation service.
func NewService(db *gorm.DB, logger *zap.Logger, cfg Config, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 10 * time.Minute
	}
	s := &Service{
		db:     db,
		logger: logger,
		cfg:    cfg,
		events: events.Nop(),
		locker: lock.NewLocal(),
		runner: reconcile.NewRunner(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReconcileInventory compares every cached stock total with its ledger and
// records an OPEN drift for each disagreement. Nothing else is changed.
func (s *Service) ReconcileInventory(ctx context.Context) *reconcile.RunSummary {
	adapter := NewStockAdapter()
	return runSpec(ctx, s, reconcile.Spec[int64]{
		Adapter:   adapter,
		Mutator:   adapter,
		Policy:    reconcile.PolicyDetect,
		BatchSize: s.cfg.BatchSize,
		Events:    s.events,
		Logger:    s.logger,
	})
}

// ReconcileConfigHashes recomputes variant config hashes and overwrites the
// stale ones. With dryRun the repairs are only reported.
func (s *Service) ReconcileConfigHashes(ctx context.Context, dryRun bool) *reconcile.RunSummary {
	adapter := NewConfigHashAdapter(s.logger)
	return runSpec(ctx, s, reconcile.Spec[string]{
		Adapter:   adapter,
		Mutator:   adapter,
		Policy:    reconcile.PolicyRepair,
		BatchSize: s.cfg.BatchSize,
		DryRun:    dryRun,
		Events:    s.events,
		Logger:    s.logger,
	})
}

// OpenDrifts lists drift records awaiting triage.
func (s *Service) OpenDrifts(ctx context.Context, status string, limit int) ([]models.DriftRecord, error) {
	if status == "" {
		status = models.DriftOpen
	}
	return store.New(s.db).DriftsByStatus(ctx, status, limit)
}

// runSpec runs spec once per process at a time (singleflight) and once across
// processes (lock). Callers that lose the lock get a summary explaining why.
func runSpec[V comparable](ctx context.Context, s *Service, spec reconcile.Spec[V]) *reconcile.RunSummary {
	key := spec.Key()
	log := logger.FromContext(ctx, s.logger)
	summary, shared := s.runner.Do(key, func() *reconcile.RunSummary {
		release, err := s.locker.Obtain(ctx, "reconcile:"+key, s.cfg.LockTTL)
		if err != nil {
			out := reconcile.NewSummary(spec.Adapter.Name(), spec.Policy, spec.DryRun)
			if errors.Is(err, lock.ErrNotObtained) {
				out.Errors = append(out.Errors, fmt.Sprintf("another %s run is in progress", spec.Adapter.Name()))
			} else {
				out.Errors = append(out.Errors, err.Error())
			}
			out.FinishedAt = time.Now().UTC()
			log.Warn("Reconciliation not started", zap.String("key", key), zap.Error(err))
			return out
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				log.Warn("Failed to release reconciliation lock", zap.String("key", key), zap.Error(err))
			}
		}()
		return reconcile.Run(ctx, s.db, spec)
	})
	if shared {
		log.Debug("Joined in-flight reconciliation", zap.String("key", key))
	}
	return summary
}
