package inventory

import (
	"context"
	"fmt"

	"variant-manager/core/events"
	"variant-manager/core/reconcile"
	"variant-manager/feature/catalog/models"
	"variant-manager/feature/catalog/store"

	"gorm.io/gorm"
)

// HighDriftThreshold is the absolute drift above which a drift is HIGH.
const HighDriftThreshold = 50

// StockAdapterName identifies stock reconciliation runs.
const StockAdapterName = "inventory_stock"

// DriftSeverity classifies a drift by magnitude.
func DriftSeverity(drift int64) string {
	if drift > HighDriftThreshold || drift < -HighDriftThreshold {
		return models.SeverityHigh
	}
	return models.SeverityMedium
}

// StockAdapter checks each InventoryMaster total against the sum of its
// ledger. It only ever records drift; stock totals are not rewritten.
type StockAdapter struct{}

// NewStockAdapter creates a StockAdapter.
func NewStockAdapter() *StockAdapter {
	return &StockAdapter{}
}

func (a *StockAdapter) Name() string {
	return StockAdapterName
}

func (a *StockAdapter) LoadBatch(ctx context.Context, db *gorm.DB, afterKey string, limit int) ([]reconcile.Record[int64], error) {
	masters, err := store.New(db).MasterPage(ctx, afterKey, limit)
	if err != nil {
		return nil, err
	}
	out := make([]reconcile.Record[int64], len(masters))
	for i, m := range masters {
		out[i] = reconcile.Record[int64]{Key: m.VariantID, Label: m.SKU, Cached: m.TotalStock}
	}
	return out, nil
}

// Derive sums the ledger of the whole batch in one grouped query. Variants
// without ledger entries derive zero.
func (a *StockAdapter) Derive(ctx context.Context, db *gorm.DB, batch []reconcile.Record[int64]) (map[string]int64, error) {
	return store.New(db).LedgerSums(ctx, recordKeys(batch))
}

func (a *StockAdapter) Describe(m reconcile.Mismatch[int64]) string {
	drift := m.Cached - m.Derived
	return fmt.Sprintf("cached=%d ledger=%d drift=%d severity=%s", m.Cached, m.Derived, drift, DriftSeverity(drift))
}

// FilterMismatches drops mismatches whose exact drift is already on file as
// OPEN or INVESTIGATING, so repeated runs do not pile up duplicates. A drift
// that moved since it was recorded is kept and recorded again.
func (a *StockAdapter) FilterMismatches(ctx context.Context, db *gorm.DB, ms []reconcile.Mismatch[int64]) ([]reconcile.Mismatch[int64], error) {
	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.Key
	}
	active, err := store.New(db).ActiveDrifts(ctx, ids)
	if err != nil {
		return nil, err
	}

	kept := ms[:0:0]
	for _, m := range ms {
		if known, ok := active[m.Key]; ok && known.Contains(m.Cached-m.Derived) {
			continue
		}
		kept = append(kept, m)
	}
	return kept, nil
}

// Apply writes one OPEN drift record per action.
func (a *StockAdapter) Apply(ctx context.Context, tx *gorm.DB, runID string, actions []reconcile.Action[int64]) (reconcile.ApplyResult, error) {
	result := reconcile.ApplyResult{Skipped: map[string]string{}}
	drifts := make([]models.DriftRecord, 0, len(actions))

	for _, act := range actions {
		m := act.Mismatch
		if act.Type != reconcile.ActionRecordDrift {
			result.Skipped[m.Key] = "stock totals are never repaired automatically"
			continue
		}

		drift := m.Cached - m.Derived
		rec := models.DriftRecord{
			RunID:                 runID,
			VariantID:             m.Key,
			SKU:                   m.Label,
			ExpectedStock:         m.Cached,
			ActualStockFromLedger: m.Derived,
			Drift:                 drift,
			Severity:              DriftSeverity(drift),
			Status:                models.DriftOpen,
			Notes:                 act.Reason,
		}
		drifts = append(drifts, rec)
		result.Events = append(result.Events, events.New(events.DriftDetected, map[string]any{
			"run_id":     runID,
			"variant_id": rec.VariantID,
			"sku":        rec.SKU,
			"expected":   rec.ExpectedStock,
			"ledger":     rec.ActualStockFromLedger,
			"drift":      rec.Drift,
			"severity":   rec.Severity,
		}))
	}

	if err := store.New(tx).InsertDrifts(ctx, drifts); err != nil {
		return reconcile.ApplyResult{}, err
	}
	result.Applied = len(drifts)
	return result, nil
}

func recordKeys[V comparable](batch []reconcile.Record[V]) []string {
	keys := make([]string, len(batch))
	for i, r := range batch {
		keys[i] = r.Key
	}
	return keys
}
