// Package integrity validates the infrastructure the catalog runs on.
//
// # Checks Provided
//
//   - Structure: the report prefix exists in the storage bucket. Fixing creates the bucket and prefix.
//   - Schema: the connected database matches the catalog models (columns, declared types).
//   - MasterData: active sizes per axis, active colors and exactly one default warehouse.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/schema : Runs schema check.
//   - GET /integrity/masterdata : Runs master data check.
package integrity
