// Package inventory reconciles denormalized catalog data with its source of
// truth.
//
// Two reconciliations run on the shared engine in core/reconcile, each with a
// different policy:
//
//   - Stock (detect only): every InventoryMaster total is compared with the
//     sum of the variant's ledger. A disagreement becomes an OPEN DriftRecord
//     (HIGH when the absolute drift exceeds 50, MEDIUM otherwise) and a
//     drift_detected event. Totals are never rewritten here; variants that
//     already have an OPEN or INVESTIGATING drift are not recorded again.
//   - Config hash (repair): every variant's hash is recomputed from its
//     stored sizes and color and overwritten when stale, unless the new hash
//     belongs to another variant, which is reported as a collision.
//
// Runs are deduplicated within the process and locked across processes.
// Their summaries can be archived to object storage as JSON and xlsx.
package inventory
