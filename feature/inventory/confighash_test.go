package inventory

import (
	"context"
	"testing"

	"variant-manager/core/events"
	"variant-manager/core/reconcile"
	"variant-manager/feature/catalog/catalogtest"
	"variant-manager/feature/catalog/confighash"
	"variant-manager/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func phoneVariant(id, sku, hash, colorID string) models.Variant {
	return models.Variant{
		ID:           id,
		ProductGroup: "PHONE-X",
		ProductName:  "Phone X",
		SKU:          sku,
		ConfigHash:   hash,
		ColorID:      colorID,
		Sizes:        []models.VariantSize{{SizeID: catalogtest.Storage64, Category: models.AxisStorage, Value: "64GB"}},
		Status:       models.VariantActive,
	}
}

func expectedHash(t *testing.T, colorID string) string {
	h, err := confighash.GenerateConfigHash("PHONE-X", []string{catalogtest.Storage64, colorID})
	require.NoError(t, err)
	return h
}

func hashOf(t *testing.T, db *gorm.DB, id string) string {
	var v models.Variant
	require.NoError(t, db.First(&v, "id = ?", id).Error)
	return v.ConfigHash
}

func seedHashVariants(t *testing.T, db *gorm.DB) {
	black := expectedHash(t, catalogtest.ColorBlack)
	require.NoError(t, db.Create(&[]models.Variant{
		phoneVariant("v-a", "SKU-A", black, catalogtest.ColorBlack),
		phoneVariant("v-b", "SKU-B", "stale", catalogtest.ColorBlue),
		// Same configuration as v-a under a wrong hash.
		phoneVariant("v-c", "SKU-C", "dup", catalogtest.ColorBlack),
		// No color: identity cannot be computed.
		phoneVariant("v-d", "SKU-D", "orphan", ""),
	}).Error)
}

func TestReconcileConfigHashes_DryRun(t *testing.T) {
	db := catalogtest.Open(t)
	seedHashVariants(t, db)

	svc, rec := newTestService(db, Config{})
	summary := svc.ReconcileConfigHashes(context.Background(), true)

	assert.True(t, summary.DryRun)
	assert.Equal(t, reconcile.PolicyRepair, summary.Policy)
	assert.Equal(t, 4, summary.Checked)
	assert.Equal(t, 2, summary.Mismatches)
	assert.Equal(t, 2, summary.Planned)
	assert.Zero(t, summary.Applied)
	for _, f := range summary.Findings {
		assert.Equal(t, reconcile.StatusPlanned, f.Status)
	}
	assert.Equal(t, "stale", hashOf(t, db, "v-b"))
	assert.Empty(t, rec.Events())
}

func TestReconcileConfigHashes_RepairsAndReportsCollisions(t *testing.T) {
	db := catalogtest.Open(t)
	seedHashVariants(t, db)

	svc, rec := newTestService(db, Config{})
	summary := svc.ReconcileConfigHashes(context.Background(), false)

	assert.Equal(t, 2, summary.Mismatches)
	assert.Equal(t, 1, summary.Applied)
	assert.Equal(t, 1, summary.Skipped)
	assert.Empty(t, summary.Errors)

	assert.Equal(t, expectedHash(t, catalogtest.ColorBlue), hashOf(t, db, "v-b"))
	assert.Equal(t, "dup", hashOf(t, db, "v-c"))
	assert.Equal(t, "orphan", hashOf(t, db, "v-d"))

	repaired := rec.Named(events.ConfigHashRepaired)
	require.Len(t, repaired, 1)
	assert.Equal(t, "v-b", repaired[0].Fields["variant_id"])
	assert.Equal(t, "stale", repaired[0].Fields["old_hash"])

	collisions := rec.Named(events.ConfigHashCollision)
	require.Len(t, collisions, 1)
	assert.Equal(t, "v-c", collisions[0].Fields["variant_id"])
	assert.Equal(t, "v-a", collisions[0].Fields["owner"])

	var skipped reconcile.Finding
	for _, f := range summary.Findings {
		if f.Key == "v-c" {
			skipped = f
		}
	}
	assert.Equal(t, reconcile.StatusSkipped, skipped.Status)
	assert.Contains(t, skipped.Note, "v-a")

	// A second pass finds only the unresolved collision.
	again := svc.ReconcileConfigHashes(context.Background(), false)
	assert.Equal(t, 1, again.Mismatches)
	assert.Zero(t, again.Applied)
}

func TestConfigHashAdapter_InBatchCollision(t *testing.T) {
	db := catalogtest.Open(t)
	require.NoError(t, db.Create(&[]models.Variant{
		phoneVariant("v-1", "SKU-1", "old-1", catalogtest.ColorBlue),
		phoneVariant("v-2", "SKU-2", "old-2", catalogtest.ColorBlue),
	}).Error)

	svc, rec := newTestService(db, Config{})
	summary := svc.ReconcileConfigHashes(context.Background(), false)

	assert.Equal(t, 1, summary.Applied)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, expectedHash(t, catalogtest.ColorBlue), hashOf(t, db, "v-1"))
	assert.Equal(t, "old-2", hashOf(t, db, "v-2"))
	assert.Len(t, rec.Named(events.ConfigHashCollision), 1)
}
