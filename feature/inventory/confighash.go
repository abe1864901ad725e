package inventory

import (
	"context"
	"fmt"

	"variant-manager/core/events"
	"variant-manager/core/reconcile"
	"variant-manager/feature/catalog/confighash"
	"variant-manager/feature/catalog/store"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ConfigHashAdapterName identifies config hash reconciliation runs.
const ConfigHashAdapterName = "variant_config_hash"

// ConfigHashAdapter recomputes every variant's config hash from its stored
// sizes and color and repairs stale hashes in place.
type ConfigHashAdapter struct {
	logger *zap.Logger
}

// NewConfigHashAdapter creates a ConfigHashAdapter.
func NewConfigHashAdapter(logger *zap.Logger) *ConfigHashAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfigHashAdapter{logger: logger}
}

func (a *ConfigHashAdapter) Name() string {
	return ConfigHashAdapterName
}

func (a *ConfigHashAdapter) LoadBatch(ctx context.Context, db *gorm.DB, afterKey string, limit int) ([]reconcile.Record[string], error) {
	variants, err := store.New(db).VariantPage(ctx, afterKey, limit)
	if err != nil {
		return nil, err
	}
	out := make([]reconcile.Record[string], len(variants))
	for i, v := range variants {
		out[i] = reconcile.Record[string]{Key: v.ID, Label: v.SKU, Cached: v.ConfigHash}
	}
	return out, nil
}

// Derive recomputes hashes for the batch. A variant whose identity cannot be
// computed (no product group or no color) derives its stored hash and is
// left alone.
func (a *ConfigHashAdapter) Derive(ctx context.Context, db *gorm.DB, batch []reconcile.Record[string]) (map[string]string, error) {
	variants, err := store.New(db).VariantsByIDs(ctx, recordKeys(batch))
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(variants))
	for _, v := range variants {
		attrs := append(v.SizeIDs(), v.ColorID)
		hash, err := confighash.GenerateConfigHash(v.ProductGroup, attrs)
		if err != nil {
			a.logger.Warn("Cannot compute config hash, leaving it unchanged",
				zap.String("variant_id", v.ID), zap.Error(err))
			hash = v.ConfigHash
		}
		out[v.ID] = hash
	}
	return out, nil
}

func (a *ConfigHashAdapter) Describe(m reconcile.Mismatch[string]) string {
	return fmt.Sprintf("stored=%s computed=%s", short(m.Cached), short(m.Derived))
}

// Apply overwrites stale hashes. A recomputed hash that already belongs to
// another variant, or to an earlier repair in the batch, is a duplicate
// configuration: it is skipped and reported instead.
func (a *ConfigHashAdapter) Apply(ctx context.Context, tx *gorm.DB, runID string, actions []reconcile.Action[string]) (reconcile.ApplyResult, error) {
	result := reconcile.ApplyResult{Skipped: map[string]string{}}
	st := store.New(tx)

	targets := make([]string, len(actions))
	for i, act := range actions {
		targets[i] = act.Mismatch.Derived
	}
	owners, err := st.HashOwners(ctx, targets)
	if err != nil {
		return reconcile.ApplyResult{}, err
	}
	claimed := mapset.NewThreadUnsafeSet[string]()

	for _, act := range actions {
		m := act.Mismatch
		if act.Type != reconcile.ActionRepair {
			result.Skipped[m.Key] = "config hashes are only repaired, never recorded as drift"
			continue
		}

		owner, taken := owners[m.Derived]
		if (taken && owner != m.Key) || !claimed.Add(m.Derived) {
			if owner == "" {
				owner = "another variant in this batch"
			}
			result.Skipped[m.Key] = "hash collides with " + owner
			result.Events = append(result.Events, events.New(events.ConfigHashCollision, map[string]any{
				"run_id":     runID,
				"variant_id": m.Key,
				"sku":        m.Label,
				"hash":       m.Derived,
				"owner":      owner,
			}))
			continue
		}

		if err := st.UpdateConfigHash(ctx, m.Key, m.Derived); err != nil {
			return reconcile.ApplyResult{}, err
		}
		result.Applied++
		result.Events = append(result.Events, events.New(events.ConfigHashRepaired, map[string]any{
			"run_id":     runID,
			"variant_id": m.Key,
			"sku":        m.Label,
			"old_hash":   m.Cached,
			"new_hash":   m.Derived,
		}))
	}
	return result, nil
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
