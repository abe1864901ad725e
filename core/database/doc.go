// Package database handles database connections, transactions and schema inspection.
//
// It wraps GORM and configures either a MySQL connection (production) or a
// SQLite one (local runs and tests) from the application's configuration.
//
// # Connect
//
// Connect opens the configured driver with error translation enabled, so
// unique violations surface as gorm.ErrDuplicatedKey.
//
// # Transactions
//
// WithRetryableTransaction reruns a transaction body after duplicate-key,
// deadlock and lock-timeout failures with exponential backoff, and reports
// exhaustion as an ExhaustedError.
//
// # Schema Inspection
//
// GetTableColumns returns the live columns of a table for both drivers. The
// integrity schema check compares them with the catalog models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "variants")
package database
