// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small Client interface, which keeps
// storage interactions easy to mock in unit tests (see core/storage/mocks).
// The catalog uses it to archive reconciliation reports.
//
// # Operations
//
//   - BucketExists / MakeBucket: verify or create the target bucket.
//   - PutObject / PutBytes: upload content.
//   - GetObject / ReadAll: retrieve content.
//   - ListObjects: list objects under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.PutBytes(ctx, client, cfg.Storage.Bucket, "reports/x.json", data, "application/json")
package storage
