package store

import (
	"context"
	"fmt"

	"variant-manager/feature/catalog/models"

	mapset "github.com/deckarep/golang-set/v2"
)

// MasterPage returns up to limit inventory masters with variant_id > afterKey,
// ordered by variant_id.
func (s *Store) MasterPage(ctx context.Context, afterKey string, limit int) ([]models.InventoryMaster, error) {
	var rows []models.InventoryMaster
	err := s.db.WithContext(ctx).
		Where("variant_id > ?", afterKey).
		Order("variant_id").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory masters: %w", err)
	}
	return rows, nil
}

type ledgerSum struct {
	VariantID string
	Total     int64
}

// LedgerSums returns the ledger total per variant in one grouped query.
// Variants without ledger entries are absent from the map.
func (s *Store) LedgerSums(ctx context.Context, variantIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(variantIDs))
	if len(variantIDs) == 0 {
		return out, nil
	}

	var rows []ledgerSum
	err := s.db.WithContext(ctx).
		Model(&models.LedgerEntry{}).
		Select("variant_id, COALESCE(SUM(quantity), 0) AS total").
		Where("variant_id IN ?", variantIDs).
		Group("variant_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum ledger: %w", err)
	}
	for _, r := range rows {
		out[r.VariantID] = r.Total
	}
	return out, nil
}

type activeDrift struct {
	VariantID string
	Drift     int64
}

// ActiveDrifts returns, per variant among variantIDs, the drift values of its
// OPEN or INVESTIGATING records. Variants with nothing active are absent.
func (s *Store) ActiveDrifts(ctx context.Context, variantIDs []string) (map[string]mapset.Set[int64], error) {
	out := make(map[string]mapset.Set[int64])
	if len(variantIDs) == 0 {
		return out, nil
	}

	var rows []activeDrift
	err := s.db.WithContext(ctx).
		Model(&models.DriftRecord{}).
		Select("DISTINCT variant_id, drift").
		Where("variant_id IN ? AND status IN ?", variantIDs, []string{models.DriftOpen, models.DriftInvestigating}).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load open drifts: %w", err)
	}
	for _, r := range rows {
		set, ok := out[r.VariantID]
		if !ok {
			set = mapset.NewThreadUnsafeSet[int64]()
			out[r.VariantID] = set
		}
		set.Add(r.Drift)
	}
	return out, nil
}

// InsertDrifts bulk inserts drift records.
func (s *Store) InsertDrifts(ctx context.Context, drifts []models.DriftRecord) error {
	if len(drifts) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(&drifts, DefaultInsertBatchSize).Error; err != nil {
		return fmt.Errorf("failed to insert drift records: %w", err)
	}
	return nil
}

// DriftsByStatus lists drift records with the given status, newest first.
func (s *Store) DriftsByStatus(ctx context.Context, status string, limit int) ([]models.DriftRecord, error) {
	var rows []models.DriftRecord
	q := s.db.WithContext(ctx).Where("status = ?", status).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list drift records: %w", err)
	}
	return rows, nil
}
