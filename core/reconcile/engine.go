package reconcile

import (
	"context"
	"fmt"
	"time"

	"variant-manager/core/events"
	"variant-manager/core/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultBatchSize is used when a Spec leaves BatchSize unset.
const DefaultBatchSize = 500

// Run reconciles every record the adapter yields, one batch at a time.
//
// Each batch costs one load, one derive and (unless dry-running) one
// transaction. A failing batch is logged, counted and skipped so the rest of
// the catalog is still checked. A load failure ends the run because the
// cursor cannot advance past it.
func Run[V comparable](ctx context.Context, db *gorm.DB, spec Spec[V]) *RunSummary {
	log := logger.FromContext(ctx, spec.Logger)
	sink := spec.Events
	if sink == nil {
		sink = events.Nop()
	}
	size := spec.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	policy := spec.Policy
	if policy == "" {
		policy = PolicyDetect
	}

	summary := NewSummary(spec.Adapter.Name(), policy, spec.DryRun)
	log = log.With(
		zap.String("adapter", summary.Adapter),
		zap.String("run_id", summary.RunID.String()),
		zap.String("policy", string(policy)),
	)

	if spec.Mutator == nil && !spec.DryRun {
		summary.Errors = append(summary.Errors, "adapter has no mutator; run it as a dry run")
		summary.FinishedAt = time.Now().UTC()
		return summary
	}

	log.Info("Reconciliation started", zap.Int("batch_size", size), zap.Bool("dry_run", spec.DryRun))

	after := ""
	for {
		if err := ctx.Err(); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("run interrupted: %v", err))
			break
		}

		batch, err := spec.Adapter.LoadBatch(ctx, db, after, size)
		if err != nil {
			summary.FailedBatches++
			summary.Errors = append(summary.Errors, fmt.Sprintf("load after %q: %v", after, err))
			log.Error("Failed to load batch", zap.String("after", after), zap.Error(err))
			break
		}
		if len(batch) == 0 {
			break
		}
		after = batch[len(batch)-1].Key
		summary.Batches++
		summary.Checked += len(batch)

		if err := runBatch(ctx, db, spec, policy, batch, summary, sink); err != nil {
			summary.FailedBatches++
			summary.Errors = append(summary.Errors, fmt.Sprintf("batch ending at %q: %v", after, err))
			log.Error("Batch failed, continuing", zap.String("last_key", after), zap.Error(err))
		}

		if len(batch) < size {
			break
		}
	}

	summary.FinishedAt = time.Now().UTC()
	log.Info("Reconciliation finished",
		zap.Int("checked", summary.Checked),
		zap.Int("mismatches", summary.Mismatches),
		zap.Int("applied", summary.Applied),
		zap.Int("failed_batches", summary.FailedBatches),
		zap.Duration("duration", summary.Duration()),
	)
	return summary
}

func runBatch[V comparable](ctx context.Context, db *gorm.DB, spec Spec[V], policy Policy, batch []Record[V], summary *RunSummary, sink events.Sink) error {
	derived, err := spec.Adapter.Derive(ctx, db, batch)
	if err != nil {
		return fmt.Errorf("derive: %w", err)
	}

	mismatches := Compare(batch, derived)
	summary.Mismatches += len(mismatches)
	if len(mismatches) == 0 {
		return nil
	}

	if filter, ok := spec.Adapter.(MismatchFilter[V]); ok {
		kept, err := filter.FilterMismatches(ctx, db, mismatches)
		if err != nil {
			return fmt.Errorf("filter: %w", err)
		}
		summary.Suppressed += len(mismatches) - len(kept)
		mismatches = kept
	}

	actions := PlanActions(policy, mismatches)
	summary.Planned += len(actions)
	if len(actions) == 0 {
		return nil
	}

	if spec.DryRun {
		appendFindings(summary, spec.Adapter, actions, StatusPlanned, nil)
		return nil
	}

	var result ApplyResult
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var applyErr error
		result, applyErr = spec.Mutator.Apply(ctx, tx, summary.RunID.String(), actions)
		return applyErr
	})
	if err != nil {
		appendFindings(summary, spec.Adapter, actions, StatusFailed, nil)
		return fmt.Errorf("apply: %w", err)
	}

	summary.Applied += result.Applied
	summary.Skipped += len(result.Skipped)
	appendFindings(summary, spec.Adapter, actions, StatusApplied, result.Skipped)

	// Committed; safe to announce.
	for _, e := range result.Events {
		sink.Emit(ctx, e)
	}
	return nil
}

// NewSummary starts an empty summary for a run of the named adapter.
func NewSummary(adapter string, policy Policy, dryRun bool) *RunSummary {
	return &RunSummary{
		RunID:     uuid.New(),
		Adapter:   adapter,
		Policy:    policy,
		DryRun:    dryRun,
		StartedAt: time.Now().UTC(),
		Errors:    []string{},
		Findings:  []Finding{},
	}
}

// Compare returns the records whose cached value differs from the derived one,
// in batch order.
func Compare[V comparable](batch []Record[V], derived map[string]V) []Mismatch[V] {
	var out []Mismatch[V]
	for _, rec := range batch {
		d := derived[rec.Key]
		if d != rec.Cached {
			out = append(out, Mismatch[V]{Record: rec, Derived: d})
		}
	}
	return out
}

// PlanActions maps mismatches to actions according to the policy.
func PlanActions[V comparable](policy Policy, mismatches []Mismatch[V]) []Action[V] {
	actions := make([]Action[V], 0, len(mismatches))
	for _, m := range mismatches {
		switch policy {
		case PolicyRepair:
			actions = append(actions, Action[V]{Type: ActionRepair, Mismatch: m, Reason: "cached value differs from source"})
		default:
			actions = append(actions, Action[V]{Type: ActionRecordDrift, Mismatch: m, Reason: "cached value differs from source"})
		}
	}
	return actions
}

func appendFindings[V comparable](summary *RunSummary, adapter Adapter[V], actions []Action[V], status string, skipped map[string]string) {
	for _, a := range actions {
		f := Finding{
			Key:     a.Mismatch.Key,
			Label:   a.Mismatch.Label,
			Cached:  a.Mismatch.Cached,
			Derived: a.Mismatch.Derived,
			Action:  a.Type,
			Detail:  adapter.Describe(a.Mismatch),
			Status:  status,
		}
		if reason, ok := skipped[a.Mismatch.Key]; ok {
			f.Status = StatusSkipped
			f.Note = reason
		}
		summary.Findings = append(summary.Findings, f)
	}
}
