package checks

import (
	"context"
	"fmt"

	"variant-manager/feature/catalog/models"

	"gorm.io/gorm"
)

// MasterDataReport summarizes the master records the variant generator
// depends on.
type MasterDataReport struct {
	ActiveSizes       map[string]int64 `json:"active_sizes"`
	ActiveColors      int64            `json:"active_colors"`
	DefaultWarehouses int64            `json:"default_warehouses"`
	Issues            []string         `json:"issues"`
	Status            string           `json:"status"` // "ok", "warning"
}

// CheckMasterData counts active sizes per axis, active colors and default
// warehouses, and lists anything that would degrade variant generation.
func CheckMasterData(ctx context.Context, db *gorm.DB) (*MasterDataReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	db = db.WithContext(ctx)

	report := &MasterDataReport{
		ActiveSizes: make(map[string]int64),
		Issues:      []string{},
		Status:      "ok",
	}

	var axes []struct {
		Axis  string
		Total int64
	}
	err := db.Model(&models.Size{}).
		Select("axis, COUNT(*) AS total").
		Where("is_active = ?", true).
		Group("axis").
		Scan(&axes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count sizes: %w", err)
	}
	for _, a := range axes {
		report.ActiveSizes[a.Axis] = a.Total
	}
	for _, axis := range []string{models.AxisStorage, models.AxisRAM} {
		if report.ActiveSizes[axis] == 0 {
			report.Issues = append(report.Issues, fmt.Sprintf("no active %s sizes", axis))
		}
	}

	if err := db.Model(&models.Color{}).Where("is_active = ?", true).Count(&report.ActiveColors).Error; err != nil {
		return nil, fmt.Errorf("failed to count colors: %w", err)
	}
	if report.ActiveColors == 0 {
		report.Issues = append(report.Issues, "no active colors")
	}

	err = db.Model(&models.Warehouse{}).
		Where("is_default = ? AND is_active = ?", true, true).
		Count(&report.DefaultWarehouses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count warehouses: %w", err)
	}
	switch {
	case report.DefaultWarehouses == 0:
		report.Issues = append(report.Issues, "no default warehouse configured: new variants get no inventory")
	case report.DefaultWarehouses > 1:
		report.Issues = append(report.Issues, fmt.Sprintf("%d default warehouses configured, expected one", report.DefaultWarehouses))
	}

	if len(report.Issues) > 0 {
		report.Status = "warning"
	}
	return report, nil
}
