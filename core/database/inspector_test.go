package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE variants (id TEXT PRIMARY KEY, sku VARCHAR(64) NOT NULL, config_hash VARCHAR(64))").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "variants")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	byName := make(map[string]ColumnInfo)
	for _, col := range columns {
		byName[col.Field] = col
	}

	assert.Equal(t, "text", byName["id"].Type)
	assert.Equal(t, "PRI", byName["id"].Key)
	assert.Equal(t, "varchar(64)", byName["sku"].Type)
	assert.Equal(t, "NO", byName["sku"].Null)
	assert.Equal(t, "YES", byName["config_hash"].Null)

	t.Run("Missing Table", func(t *testing.T) {
		cols, err := GetTableColumns(db, "non_existent")
		assert.NoError(t, err)
		assert.Empty(t, cols)
	})

	t.Run("Rejects Unsafe Names", func(t *testing.T) {
		_, err := GetTableColumns(db, "variants'; DROP TABLE variants; --")
		assert.ErrorContains(t, err, "invalid table name")
	})
}
