package cmd

import (
	"fmt"

	"variant-manager/feature/catalog/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the catalog tables.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the catalog tables",
	Long:  `Auto-migrates sizes, colors, warehouses, variants, inventory, ledger and drift tables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer a.Close()

		all := models.All()
		if err := a.db.WithContext(cmd.Context()).AutoMigrate(all...); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
		a.logger.Info("Catalog tables migrated",
			zap.String("driver", a.cfg.Database.Driver),
			zap.Int("models", len(all)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
