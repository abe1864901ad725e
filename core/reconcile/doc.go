// Package reconcile provides a generic engine for verifying cached,
// denormalized values against their source of truth.
//
// # Architecture
//
// 1. Adapter: model specific logic. It pages through cached records with keyset
// pagination and derives the authoritative value for a whole batch with a
// constant number of queries (e.g. one grouped SUM over the ledger).
//
// 2. Engine: Run compares cached and derived values, plans one Action per
// mismatch according to the Policy, and applies each batch in its own
// transaction through the Mutator. Events returned by the Mutator are emitted
// only after the batch has committed.
//
// 3. Runner: collapses concurrent triggers of the same spec (singleflight).
//
// # Policies
//
// Two policies coexist and are chosen per reconciled field:
//   - PolicyDetect records a drift entry for operator triage (stock totals).
//   - PolicyRepair overwrites the cached field and announces it (config hashes).
//
// # Failure Isolation
//
// Run never returns an error. A batch whose derive or apply step fails is
// recorded in RunSummary.Errors and the run moves on to the next batch.
//
// # Usage
//
//	spec := reconcile.Spec[int64]{
//	    Adapter:   stockAdapter,
//	    Mutator:   stockAdapter,
//	    Policy:    reconcile.PolicyDetect,
//	    BatchSize: 500,
//	    Events:    sink,
//	}
//	summary := reconcile.Run(ctx, db, spec)
package reconcile
