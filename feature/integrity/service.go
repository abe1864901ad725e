package integrity

import (
	"context"
	"errors"

	"variant-manager/core/storage"
	"variant-manager/feature/catalog/models"
	"variant-manager/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorageDisabled is returned by structure checks when no object storage
// client is configured.
var ErrStorageDisabled = errors.New("object storage is not configured")

// Config selects the bucket layout the structure check expects.
type Config struct {
	Bucket       string
	Region       string
	ReportPrefix string
}

// Service handles integrity checks.
type Service struct {
	client storage.Client
	cfg    Config
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new integrity service. client may be nil, in which
// case structure checks report ErrStorageDisabled.
func NewService(client storage.Client, cfg Config, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client: client,
		cfg:    cfg,
		logger: logger,
		db:     db,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}
	return checks.CheckStructure(ctx, s.client, s.cfg.Bucket, checks.RequiredFolders(s.cfg.ReportPrefix))
}

// FixStructure creates the bucket if needed and then the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	if s.client == nil {
		return ErrStorageDisabled
	}
	if err := checks.EnsureBucket(ctx, s.client, s.cfg.Bucket, s.cfg.Region, s.logger); err != nil {
		return err
	}
	return checks.FixStructure(ctx, s.client, s.cfg.Bucket, s.logger, missing)
}

// RepairStructure is CheckStructure followed by FixStructure. A missing
// bucket is created and every required folder is written.
func (s *Service) RepairStructure(ctx context.Context) ([]string, error) {
	missing, err := s.CheckStructure(ctx)
	switch {
	case errors.Is(err, checks.ErrBucketMissing):
		missing = checks.RequiredFolders(s.cfg.ReportPrefix)
	case err != nil:
		return nil, err
	case len(missing) == 0:
		return nil, nil
	}
	if err := s.FixStructure(ctx, missing); err != nil {
		return nil, err
	}
	return missing, nil
}

// CheckSchema compares the catalog models with the live database.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, models.All())
}

// CheckMasterData verifies sizes, colors and the default warehouse.
func (s *Service) CheckMasterData(ctx context.Context) (*checks.MasterDataReport, error) {
	return checks.CheckMasterData(ctx, s.db)
}
