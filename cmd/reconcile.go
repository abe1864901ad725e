package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"variant-manager/core/reconcile"
	"variant-manager/feature/inventory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunConfigHash bool
	exportReport     bool
	yesConfirm       bool
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile cached catalog data against its source of truth",
	Long: `Reconcile cached values to detect drift.
Inventory totals are checked against the stock ledger (detect only);
variant config hashes are recomputed and repaired.`,
}

// inventoryReconcileCmd compares cached totals with ledger sums.
var inventoryReconcileCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Compare cached stock totals with the ledger and record drifts",
	Long: `Sums the ledger of every variant and compares it with the cached total.
Each disagreement is recorded as an OPEN drift (HIGH above 50 units, else MEDIUM).
Stock values are never modified.

Examples:
  reconcile inventory
  reconcile inventory --export`,
	RunE: runInventoryReconcile,
}

// configHashReconcileCmd repairs stale variant config hashes.
var configHashReconcileCmd = &cobra.Command{
	Use:   "config-hash",
	Short: "Recompute variant config hashes and repair stale ones",
	Long: `Recomputes every variant's config hash from its sizes and color.
Stale hashes are overwritten unless the new hash belongs to another variant.

Examples:
  # Report only
  reconcile config-hash --dry-run

  # Repair with interactive confirmation
  reconcile config-hash

  # Repair with auto-confirm (non-interactive)
  reconcile config-hash --yes`,
	RunE: runConfigHashReconcile,
}

func init() {
	reconcileCmd.AddCommand(inventoryReconcileCmd, configHashReconcileCmd)

	inventoryReconcileCmd.Flags().BoolVar(&exportReport, "export", false, "Archive the report to object storage")
	configHashReconcileCmd.Flags().BoolVar(&exportReport, "export", false, "Archive the report to object storage")
	configHashReconcileCmd.Flags().BoolVar(&dryRunConfigHash, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	configHashReconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm repairs (non-interactive)")

	RootCmd.AddCommand(reconcileCmd)
}

func runInventoryReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := bootstrap(true)
	if err != nil {
		return err
	}
	defer a.Close()

	svc := a.inventoryFeature().Service()
	a.logger.Info("Starting inventory reconciliation")
	summary := svc.ReconcileInventory(ctx)
	printRunSummary(a.logger, summary)

	return finishRun(ctx, a.logger, svc, summary)
}

func runConfigHashReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := bootstrap(true)
	if err != nil {
		return err
	}
	defer a.Close()

	svc := a.inventoryFeature().Service()

	// Step 1: Plan (always runs)
	a.logger.Info("Planning config hash reconciliation...")
	plan := svc.ReconcileConfigHashes(ctx, true)
	printRunSummary(a.logger, plan)

	if dryRunConfigHash {
		a.logger.Info("Dry-run mode: No changes were made.")
		return finishRun(ctx, a.logger, svc, plan)
	}
	if plan.Planned == 0 {
		a.logger.Info("No repairs required.")
		return finishRun(ctx, a.logger, svc, plan)
	}

	// Step 2: Apply (if confirmed)
	if !confirmDestructiveAction() {
		a.logger.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	a.logger.Info("Applying repairs...")
	summary := svc.ReconcileConfigHashes(ctx, false)
	printRunSummary(a.logger, summary)
	a.logger.Info("Repairs applied", zap.Int("applied", summary.Applied), zap.Int("skipped", summary.Skipped))

	return finishRun(ctx, a.logger, svc, summary)
}

// finishRun exports the report when requested and turns run-level errors
// into a non-zero exit.
func finishRun(ctx context.Context, l *zap.Logger, svc *inventory.Service, summary *reconcile.RunSummary) error {
	if exportReport {
		loc, err := svc.ExportReport(ctx, summary)
		if err != nil {
			return fmt.Errorf("failed to export report: %w", err)
		}
		l.Info("Report exported",
			zap.String("bucket", loc.Bucket),
			zap.String("json", loc.JSON),
			zap.String("xlsx", loc.XLSX))
	}
	if len(summary.Errors) > 0 {
		return fmt.Errorf("%s run finished with %d error(s): %s",
			summary.Adapter, len(summary.Errors), strings.Join(summary.Errors, "; "))
	}
	return nil
}

// printRunSummary prints a formatted reconciliation report using logger.
func printRunSummary(l *zap.Logger, s *reconcile.RunSummary) {
	l.Info("Reconciliation report",
		zap.String("run_id", s.RunID.String()),
		zap.String("adapter", s.Adapter),
		zap.Bool("dry_run", s.DryRun),
		zap.Int("checked", s.Checked),
		zap.Int("mismatches", s.Mismatches),
		zap.Int("suppressed", s.Suppressed),
		zap.Int("planned", s.Planned),
		zap.Int("applied", s.Applied),
		zap.Int("skipped", s.Skipped),
		zap.Int("failed_batches", s.FailedBatches),
		zap.Duration("duration", s.Duration()),
	)

	// Show sample of findings (max 5 for logger)
	maxShow := min(5, len(s.Findings))
	for _, f := range s.Findings[:maxShow] {
		l.Info("Sample finding",
			zap.String("key", f.Key),
			zap.String("label", f.Label),
			zap.Any("cached", f.Cached),
			zap.Any("derived", f.Derived),
			zap.String("status", f.Status),
		)
	}
	if len(s.Findings) > maxShow {
		l.Info("Additional findings not shown", zap.Int("count", len(s.Findings)-maxShow))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm repairs: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
