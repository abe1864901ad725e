package inventory

import (
	"context"
	"testing"

	"variant-manager/core/events"
	"variant-manager/core/reconcile"
	"variant-manager/feature/catalog/catalogtest"
	"variant-manager/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedStock(t *testing.T, db *gorm.DB, variantID string, cached int64, ledger ...int64) {
	t.Helper()
	require.NoError(t, db.Create(&models.InventoryMaster{VariantID: variantID, SKU: "SKU-" + variantID, TotalStock: cached}).Error)
	for _, q := range ledger {
		require.NoError(t, db.Create(&models.LedgerEntry{VariantID: variantID, Quantity: q, TransactionType: models.LedgerAdjustment}).Error)
	}
}

func driftFor(t *testing.T, db *gorm.DB, variantID string) []models.DriftRecord {
	t.Helper()
	var out []models.DriftRecord
	require.NoError(t, db.Where("variant_id = ?", variantID).Find(&out).Error)
	return out
}

func newTestService(db *gorm.DB, cfg Config, opts ...Option) (*Service, *events.Recorder) {
	rec := events.NewRecorder()
	return NewService(db, nil, cfg, append([]Option{WithEvents(rec)}, opts...)...), rec
}

func TestDriftSeverity(t *testing.T) {
	tests := []struct {
		drift int64
		want  string
	}{
		{0, models.SeverityMedium},
		{20, models.SeverityMedium},
		{50, models.SeverityMedium},
		{-50, models.SeverityMedium},
		{51, models.SeverityHigh},
		{60, models.SeverityHigh},
		{-60, models.SeverityHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DriftSeverity(tt.drift), "drift %d", tt.drift)
	}
}

func TestReconcileInventory_RecordsDrift(t *testing.T) {
	db := catalogtest.Open(t)
	seedStock(t, db, "v-equal", 100, 120, -20)
	seedStock(t, db, "v-medium", 100, 80)
	seedStock(t, db, "v-high", 100, 50, -10)
	seedStock(t, db, "v-negative", 10, 70)
	seedStock(t, db, "v-noledger", 5)

	svc, rec := newTestService(db, Config{})
	summary := svc.ReconcileInventory(context.Background())

	assert.Equal(t, StockAdapterName, summary.Adapter)
	assert.Equal(t, reconcile.PolicyDetect, summary.Policy)
	assert.Equal(t, 5, summary.Checked)
	assert.Equal(t, 4, summary.Mismatches)
	assert.Equal(t, 4, summary.Applied)
	assert.Empty(t, summary.Errors)

	assert.Empty(t, driftFor(t, db, "v-equal"))

	medium := driftFor(t, db, "v-medium")
	require.Len(t, medium, 1)
	assert.EqualValues(t, 100, medium[0].ExpectedStock)
	assert.EqualValues(t, 80, medium[0].ActualStockFromLedger)
	assert.EqualValues(t, 20, medium[0].Drift)
	assert.Equal(t, models.SeverityMedium, medium[0].Severity)
	assert.Equal(t, models.DriftOpen, medium[0].Status)
	assert.Equal(t, summary.RunID.String(), medium[0].RunID)
	assert.Equal(t, "SKU-v-medium", medium[0].SKU)

	high := driftFor(t, db, "v-high")
	require.Len(t, high, 1)
	assert.EqualValues(t, 60, high[0].Drift)
	assert.Equal(t, models.SeverityHigh, high[0].Severity)

	negative := driftFor(t, db, "v-negative")
	require.Len(t, negative, 1)
	assert.EqualValues(t, -60, negative[0].Drift)
	assert.Equal(t, models.SeverityHigh, negative[0].Severity)

	noLedger := driftFor(t, db, "v-noledger")
	require.Len(t, noLedger, 1)
	assert.EqualValues(t, 0, noLedger[0].ActualStockFromLedger)

	// Totals are never touched.
	var master models.InventoryMaster
	require.NoError(t, db.First(&master, "variant_id = ?", "v-medium").Error)
	assert.EqualValues(t, 100, master.TotalStock)

	detected := rec.Named(events.DriftDetected)
	require.Len(t, detected, 4)
	assert.Equal(t, "v-high", detected[0].Fields["variant_id"])
	assert.Equal(t, models.SeverityHigh, detected[0].Fields["severity"])
}

func TestReconcileInventory_NoDriftWhenEqual(t *testing.T) {
	db := catalogtest.Open(t)
	seedStock(t, db, "v1", 30, 10, 20)

	svc, rec := newTestService(db, Config{})
	summary := svc.ReconcileInventory(context.Background())

	assert.True(t, summary.Clean())
	assert.Zero(t, catalogtest.Count(t, db, &models.DriftRecord{}))
	assert.Empty(t, rec.Events())
}

func TestReconcileInventory_DoesNotDuplicateActiveDrift(t *testing.T) {
	db := catalogtest.Open(t)
	seedStock(t, db, "v1", 100, 80)
	seedStock(t, db, "v2", 100, 90)

	svc, rec := newTestService(db, Config{})
	ctx := context.Background()

	first := svc.ReconcileInventory(ctx)
	assert.Equal(t, 2, first.Applied)

	require.NoError(t, db.Model(&models.DriftRecord{}).Where("variant_id = ?", "v2").Update("status", models.DriftInvestigating).Error)
	rec.Reset()

	second := svc.ReconcileInventory(ctx)
	assert.Equal(t, 2, second.Mismatches)
	assert.Equal(t, 2, second.Suppressed)
	assert.Zero(t, second.Applied)
	assert.EqualValues(t, 2, catalogtest.Count(t, db, &models.DriftRecord{}))
	assert.Empty(t, rec.Events())

	// Once triaged, a persisting drift is recorded again.
	require.NoError(t, db.Model(&models.DriftRecord{}).Where("variant_id = ?", "v1").Update("status", models.DriftResolved).Error)
	third := svc.ReconcileInventory(ctx)
	assert.Equal(t, 1, third.Applied)
	assert.Len(t, driftFor(t, db, "v1"), 2)
}

func TestReconcileInventory_RecordsGrowingDrift(t *testing.T) {
	db := catalogtest.Open(t)
	seedStock(t, db, "v1", 100, 80)

	svc, rec := newTestService(db, Config{})
	ctx := context.Background()

	first := svc.ReconcileInventory(ctx)
	assert.Equal(t, 1, first.Applied)
	medium := driftFor(t, db, "v1")
	require.Len(t, medium, 1)
	assert.EqualValues(t, 20, medium[0].Drift)
	assert.Equal(t, models.SeverityMedium, medium[0].Severity)

	// Another 40 units leave the ledger while the first record is still open.
	require.NoError(t, db.Create(&models.LedgerEntry{VariantID: "v1", Quantity: -40, TransactionType: models.LedgerAdjustment}).Error)
	rec.Reset()

	second := svc.ReconcileInventory(ctx)
	assert.Equal(t, 1, second.Mismatches)
	assert.Zero(t, second.Suppressed)
	assert.Equal(t, 1, second.Applied)

	var high []models.DriftRecord
	require.NoError(t, db.Where("variant_id = ? AND severity = ?", "v1", models.SeverityHigh).Find(&high).Error)
	require.Len(t, high, 1)
	assert.EqualValues(t, 60, high[0].Drift)
	assert.EqualValues(t, 40, high[0].ActualStockFromLedger)
	assert.Equal(t, models.DriftOpen, high[0].Status)
	assert.Equal(t, second.RunID.String(), high[0].RunID)

	detected := rec.Named(events.DriftDetected)
	require.Len(t, detected, 1)
	assert.Equal(t, models.SeverityHigh, detected[0].Fields["severity"])

	// The unchanged gap stays suppressed on the next run.
	third := svc.ReconcileInventory(ctx)
	assert.Equal(t, 1, third.Suppressed)
	assert.Zero(t, third.Applied)
	assert.Len(t, driftFor(t, db, "v1"), 2)
}

func TestReconcileInventory_Batches(t *testing.T) {
	db := catalogtest.Open(t)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		seedStock(t, db, id, 10, 9)
	}

	svc, _ := newTestService(db, Config{BatchSize: 2})
	summary := svc.ReconcileInventory(context.Background())

	assert.Equal(t, 3, summary.Batches)
	assert.Equal(t, 5, summary.Checked)
	assert.Equal(t, 5, summary.Applied)
	require.Len(t, summary.Findings, 5)
	assert.Equal(t, "cached=10 ledger=9 drift=1 severity=MEDIUM", summary.Findings[0].Detail)
	assert.Equal(t, reconcile.StatusApplied, summary.Findings[0].Status)
}
