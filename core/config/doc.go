// Package config provides configuration management for the variant manager.
//
// It uses Viper to read environment variables (optionally from a .env file).
// Defaults live in `default` struct tags on every section.
//
// # Configuration Structure
//
//   - Server: HTTP port and API key
//   - Database: driver (mysql, sqlite) and connection details
//   - Storage: S3/MinIO credentials and the bucket for report archives
//   - Log: logging level and format
//   - Redis: optional address for distributed job locks
//   - Catalog: retry backoff, reconcile batch size, report prefix, lock TTL
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
