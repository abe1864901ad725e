package checks

import (
	"testing"

	"variant-manager/feature/catalog/catalogtest"
	"variant-manager/feature/catalog/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

// wideColor expects a wider hex_code column than the migrated one.
type wideColor struct {
	ID      string `gorm:"column:id;type:varchar(64);primaryKey"`
	HexCode string `gorm:"column:hex_code;type:varchar(9)"`
	Label   string `gorm:"column:label;type:varchar(64)"`
	Ignored string `gorm:"-"`
}

func (wideColor) TableName() string { return "colors" }

type untabled struct {
	ID string `gorm:"column:id"`
}

func TestCheckSchema(t *testing.T) {
	t.Run("NilDB", func(t *testing.T) {
		_, err := CheckSchema(nil, models.All())
		assert.Error(t, err)
	})

	t.Run("Migrated", func(t *testing.T) {
		db := catalogtest.Open(t)

		report, err := CheckSchema(db, models.All())
		require.NoError(t, err)
		assert.True(t, report.Matched, "%+v", report)
		assert.Equal(t, "sqlite", report.Driver)
		assert.Len(t, report.Tables, len(models.All()))
		for name, tbl := range report.Tables {
			assert.Equal(t, "ok", tbl.Status, name)
		}
	})

	t.Run("MissingTable", func(t *testing.T) {
		db := catalogtest.Open(t)
		require.NoError(t, db.Migrator().DropTable(&models.DriftRecord{}))

		report, err := CheckSchema(db, models.All())
		require.NoError(t, err)
		assert.False(t, report.Matched)

		tbl := report.Tables["inventory_drifts"]
		assert.Equal(t, "missing", tbl.Status)
		assert.Contains(t, tbl.MissingColumns, "variant_id")
		assert.Equal(t, "ok", report.Tables["variants"].Status)
	})

	t.Run("TypeMismatchAndMissingColumn", func(t *testing.T) {
		db := catalogtest.Open(t)

		report, err := CheckSchema(db, []any{wideColor{}})
		require.NoError(t, err)
		assert.False(t, report.Matched)

		tbl := report.Tables["colors"]
		assert.Equal(t, "error", tbl.Status)
		assert.Equal(t, []string{"label"}, tbl.MissingColumns)
		assert.Equal(t, []string{"hex_code: expected varchar(9), got varchar(7)"}, tbl.TypeMismatches)
	})

	t.Run("NoTableName", func(t *testing.T) {
		db := catalogtest.Open(t)
		_, err := CheckSchema(db, []any{&untabled{}})
		assert.ErrorContains(t, err, "does not implement TableName")
	})

	t.Run("NotStruct", func(t *testing.T) {
		db := catalogtest.Open(t)
		_, err := CheckSchema(db, []any{"colors"})
		assert.Error(t, err)
	})
}

func TestCheckSchema_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT DATABASE\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"DATABASE()"}).AddRow("catalog"))
	mock.ExpectQuery(`information_schema.tables`).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectQuery("SHOW COLUMNS FROM `colors`").
		WillReturnRows(sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("id", "VARCHAR(64)", "NO", "PRI", nil, "").
			AddRow("hex_code", "varchar(9)", "YES", "", nil, ""))

	report, err := CheckSchema(db, []any{&wideColor{}})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, "mysql", report.Driver)

	tbl := report.Tables["colors"]
	assert.Equal(t, []string{"label"}, tbl.MissingColumns)
	assert.Empty(t, tbl.TypeMismatches)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseGormTags(t *testing.T) {
	tag := "column:sku;type:varchar(64);uniqueIndex"
	assert.Equal(t, "sku", parseGormColumn(tag))
	assert.Equal(t, "varchar(64)", parseGormType(tag))
	assert.Empty(t, parseGormColumn("primaryKey"))
	assert.Empty(t, parseGormType("column:id"))
}
