// Package catalogtest provides in-memory catalog databases for tests.
package catalogtest

import (
	"testing"

	"variant-manager/core/database"
	"variant-manager/feature/catalog/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Master data ids seeded by SeedMasters.
const (
	Storage64  = "st-64"
	Storage128 = "st-128"
	Storage1TB = "st-1tb" // inactive
	RAM8       = "ram-8"
	RAM16      = "ram-16"

	ColorBlack      = "col-black"
	ColorBlackberry = "col-blackberry"
	ColorBlue       = "col-blue"
	ColorRetired    = "col-retired" // inactive

	WarehouseMain = "wh-main"
)

// Open returns a migrated, empty in-memory database.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SeedMasters inserts sizes and colors, without any warehouse.
func SeedMasters(t testing.TB, db *gorm.DB) {
	t.Helper()
	sizes := []models.Size{
		{ID: Storage64, Axis: models.AxisStorage, Value: "64GB", DisplayOrder: 1, IsActive: true},
		{ID: Storage128, Axis: models.AxisStorage, Value: "128GB", DisplayOrder: 2, IsActive: true},
		{ID: Storage1TB, Axis: models.AxisStorage, Value: "1TB", DisplayOrder: 3, IsActive: false},
		{ID: RAM8, Axis: models.AxisRAM, Value: "8GB", DisplayOrder: 1, IsActive: true},
		{ID: RAM16, Axis: models.AxisRAM, Value: "16GB", DisplayOrder: 2, IsActive: true},
	}
	colors := []models.Color{
		{ID: ColorBlack, Name: "Black", HexCode: "#000000", IsActive: true},
		{ID: ColorBlackberry, Name: "Blackberry", HexCode: "#4d0135", IsActive: true},
		{ID: ColorBlue, Name: "Blue", HexCode: "#0000ff", IsActive: true},
		{ID: ColorRetired, Name: "Retired", HexCode: "#cccccc", IsActive: false},
	}
	require.NoError(t, db.Create(&sizes).Error)
	require.NoError(t, db.Create(&colors).Error)
}

// SeedDefaultWarehouse inserts the active default warehouse.
func SeedDefaultWarehouse(t testing.TB, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&models.Warehouse{
		ID:        WarehouseMain,
		Code:      "MAIN",
		Name:      "Main warehouse",
		IsDefault: true,
		IsActive:  true,
	}).Error)
}

// Seed is SeedMasters plus SeedDefaultWarehouse.
func Seed(t testing.TB, db *gorm.DB) {
	t.Helper()
	SeedMasters(t, db)
	SeedDefaultWarehouse(t, db)
}

// Count returns the number of rows of model.
func Count(t testing.TB, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
