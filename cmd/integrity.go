package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the catalog infrastructure",
	Long:  `Checks the database schema, master data and report bucket structure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd, true, true, true)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Compare the database schema with the catalog models",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd, true, false, false)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the report bucket structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd, false, true, false)
	},
}

// masterDataCmd represents the integrity masterdata command
var masterDataCmd = &cobra.Command{
	Use:   "masterdata",
	Short: "Check sizes, colors and the default warehouse",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd, false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(schemaCmd, structureCmd, masterDataCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket and missing folders")
}

func runIntegrityChecks(cmd *cobra.Command, runSchema, runStructure, runMasterData bool) error {
	ctx := cmd.Context()

	a, err := bootstrap(runStructure)
	if err != nil {
		return err
	}
	defer a.Close()
	logg := a.logger
	svc := a.integrityFeature().Service()
	failed := false

	if runSchema {
		logg.Info("Checking database schema...", zap.String("driver", a.cfg.Database.Driver))
		report, err := svc.CheckSchema()
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		if report.Matched {
			logg.Info("Database schema matches the catalog models.")
		} else {
			failed = true
			logg.Warn("Schema mismatches found")
			for table, tblReport := range report.Tables {
				if tblReport.Status == "ok" {
					continue
				}
				if len(tblReport.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
				}
				if len(tblReport.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	if runStructure {
		logg.Info("Checking report bucket structure...")
		if fixFlag {
			fixed, err := svc.RepairStructure(ctx)
			if err != nil {
				return fmt.Errorf("failed to fix structure: %w", err)
			}
			logg.Info("Structure fixed successfully.", zap.Strings("fixed", fixed))
		} else {
			missing, err := svc.CheckStructure(ctx)
			if err != nil {
				return fmt.Errorf("structure check failed: %w", err)
			}
			if len(missing) == 0 {
				logg.Info("Structure is intact.")
			} else {
				failed = true
				logg.Warn("Missing folders detected", zap.Strings("missing", missing))
				logg.Info("Run with --fix to create missing folders.")
			}
		}
	}

	if runMasterData {
		logg.Info("Checking master data...")
		report, err := svc.CheckMasterData(ctx)
		if err != nil {
			return fmt.Errorf("master data check failed: %w", err)
		}
		logg.Info("Master data",
			zap.Any("active_sizes", report.ActiveSizes),
			zap.Int64("active_colors", report.ActiveColors),
			zap.Int64("default_warehouses", report.DefaultWarehouses))
		for _, issue := range report.Issues {
			logg.Warn("Master data issue", zap.String("issue", issue))
		}
	}

	if failed {
		return fmt.Errorf("integrity checks reported problems")
	}
	return nil
}
