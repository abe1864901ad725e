package reconcile

import (
	"context"

	"gorm.io/gorm"
)

// Adapter defines the model-specific half of a reconciliation: how to page
// through cached records and how to derive the authoritative value for them.
type Adapter[V comparable] interface {
	// Name returns the unique name of this adapter (e.g. "inventory_stock").
	Name() string

	// LoadBatch returns up to limit records with Key > afterKey, ordered by Key.
	LoadBatch(ctx context.Context, db *gorm.DB, afterKey string, limit int) ([]Record[V], error)

	// Derive computes the authoritative value for every record of the batch.
	// Implementations must use a constant number of queries per batch.
	// Keys absent from the result derive the zero value of V.
	Derive(ctx context.Context, db *gorm.DB, batch []Record[V]) (map[string]V, error)

	// Describe renders a mismatch for reports, e.g. "cached=100 ledger=80 drift=20".
	Describe(m Mismatch[V]) string
}

// MismatchFilter is an optional Adapter extension that drops mismatches which
// should not produce an action, such as those already under investigation.
type MismatchFilter[V comparable] interface {
	FilterMismatches(ctx context.Context, db *gorm.DB, mismatches []Mismatch[V]) ([]Mismatch[V], error)
}

// Mutator applies planned actions for one batch inside the given transaction.
type Mutator[V comparable] interface {
	Apply(ctx context.Context, tx *gorm.DB, runID string, actions []Action[V]) (ApplyResult, error)
}
