package store

import (
	"context"
	"fmt"

	"variant-manager/feature/catalog/models"
)

// VariantPage returns up to limit variants with id > afterKey, ordered by id.
func (s *Store) VariantPage(ctx context.Context, afterKey string, limit int) ([]models.Variant, error) {
	var rows []models.Variant
	err := s.db.WithContext(ctx).
		Where("id > ?", afterKey).
		Order("id").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load variants: %w", err)
	}
	return rows, nil
}

// HashOwners maps each of hashes to the id of the variant holding it.
func (s *Store) HashOwners(ctx context.Context, hashes []string) (map[string]string, error) {
	out := make(map[string]string, len(hashes))
	if len(hashes) == 0 {
		return out, nil
	}

	var rows []models.Variant
	err := s.db.WithContext(ctx).
		Select("id", "config_hash").
		Where("config_hash IN ?", Dedupe(hashes)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up config hash owners: %w", err)
	}
	for _, r := range rows {
		out[r.ConfigHash] = r.ID
	}
	return out, nil
}

// UpdateConfigHash overwrites the stored hash of one variant.
func (s *Store) UpdateConfigHash(ctx context.Context, variantID, hash string) error {
	res := s.db.WithContext(ctx).
		Model(&models.Variant{}).
		Where("id = ?", variantID).
		Update("config_hash", hash)
	if res.Error != nil {
		return fmt.Errorf("failed to update config hash of %s: %w", variantID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("variant %s not found", variantID)
	}
	return nil
}

// VariantsByIDs loads the variants among ids.
func (s *Store) VariantsByIDs(ctx context.Context, ids []string) ([]models.Variant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Variant
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load variants: %w", err)
	}
	return rows, nil
}
