package store

import (
	"context"
	"errors"
	"fmt"

	"variant-manager/feature/catalog/models"

	mapset "github.com/deckarep/golang-set/v2"
	"gorm.io/gorm"
)

// DefaultInsertBatchSize bounds the rows per INSERT statement.
const DefaultInsertBatchSize = 100

// Store groups the catalog queries. It is a thin value over *gorm.DB; inside a
// transaction build it with New(tx).
type Store struct {
	db *gorm.DB
}

// New creates a Store over db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindSizes returns the active sizes of one axis among ids, in the order the
// ids were given. Unknown, inactive and duplicate ids are dropped.
func (s *Store) FindSizes(ctx context.Context, axis string, ids []string) ([]models.Size, error) {
	ids = Dedupe(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []models.Size
	err := s.db.WithContext(ctx).
		Where("id IN ? AND axis = ? AND is_active = ?", ids, axis, true).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load %s sizes: %w", axis, err)
	}
	return inRequestOrder(ids, rows, func(r models.Size) string { return r.ID }), nil
}

// FindColors returns the active colors among ids, in request order.
func (s *Store) FindColors(ctx context.Context, ids []string) ([]models.Color, error) {
	ids = Dedupe(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []models.Color
	err := s.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load colors: %w", err)
	}
	return inRequestOrder(ids, rows, func(r models.Color) string { return r.ID }), nil
}

// DefaultWarehouse returns the active default warehouse, or nil when none is
// configured.
func (s *Store) DefaultWarehouse(ctx context.Context) (*models.Warehouse, error) {
	var wh models.Warehouse
	err := s.db.WithContext(ctx).
		Where("is_default = ? AND is_active = ?", true, true).
		Order("code").
		First(&wh).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load default warehouse: %w", err)
	}
	return &wh, nil
}

// ExistingHashes returns which of hashes are already stored.
func (s *Store) ExistingHashes(ctx context.Context, hashes []string) (mapset.Set[string], error) {
	return s.existing(ctx, "config_hash", hashes)
}

// ExistingSKUs returns which of skus are already stored.
func (s *Store) ExistingSKUs(ctx context.Context, skus []string) (mapset.Set[string], error) {
	return s.existing(ctx, "sku", skus)
}

func (s *Store) existing(ctx context.Context, column string, values []string) (mapset.Set[string], error) {
	found := mapset.NewThreadUnsafeSet[string]()
	if len(values) == 0 {
		return found, nil
	}

	var rows []string
	err := s.db.WithContext(ctx).
		Model(&models.Variant{}).
		Where(column+" IN ?", Dedupe(values)).
		Pluck(column, &rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing %s values: %w", column, err)
	}
	found.Append(rows...)
	return found, nil
}

// suffixedLookupChunk bounds the LIKE terms OR-ed into one query.
const suffixedLookupChunk = 100

// SuffixedSKUs returns the stored SKUs that extend one of bases with a
// collision suffix. Bases hold only letters, digits and dashes, so they need
// no LIKE escaping.
func (s *Store) SuffixedSKUs(ctx context.Context, bases []string) (mapset.Set[string], error) {
	found := mapset.NewThreadUnsafeSet[string]()
	bases = Dedupe(bases)
	for start := 0; start < len(bases); start += suffixedLookupChunk {
		end := min(start+suffixedLookupChunk, len(bases))

		cond := s.db.Where("sku LIKE ?", bases[start]+"-%")
		for _, base := range bases[start+1 : end] {
			cond = cond.Or("sku LIKE ?", base+"-%")
		}

		var rows []string
		err := s.db.WithContext(ctx).
			Model(&models.Variant{}).
			Where(cond).
			Pluck("sku", &rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to look up suffixed skus: %w", err)
		}
		found.Append(rows...)
	}
	return found, nil
}

// InsertVariants bulk inserts variants.
func (s *Store) InsertVariants(ctx context.Context, variants []models.Variant) error {
	if len(variants) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(&variants, DefaultInsertBatchSize).Error; err != nil {
		return fmt.Errorf("failed to insert variants: %w", err)
	}
	return nil
}

// InsertInventory bulk inserts inventory rows.
func (s *Store) InsertInventory(ctx context.Context, records []models.InventoryRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(&records, DefaultInsertBatchSize).Error; err != nil {
		return fmt.Errorf("failed to insert inventory records: %w", err)
	}
	return nil
}

// Dedupe drops empty and repeated ids, keeping first occurrences in order.
func Dedupe(ids []string) []string {
	seen := mapset.NewThreadUnsafeSetWithSize[string](len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || !seen.Add(id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

func inRequestOrder[T any](ids []string, rows []T, key func(T) string) []T {
	byID := make(map[string]T, len(rows))
	for _, r := range rows {
		byID[key(r)] = r
	}
	out := make([]T, 0, len(rows))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out
}
