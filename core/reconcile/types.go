package reconcile

import (
	"time"

	"variant-manager/core/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Record is one cached value to be verified against its source of truth.
type Record[V comparable] struct {
	// Key is the stable paging key (e.g. the variant id).
	Key string
	// Label is a human readable identifier (e.g. the SKU).
	Label string
	// Cached is the stored, denormalized value.
	Cached V
}

// Mismatch pairs a record with the value derived from its source of truth.
type Mismatch[V comparable] struct {
	Record[V]
	Derived V
}

// Policy decides what happens to a mismatch.
type Policy string

const (
	// PolicyDetect records the mismatch for operator triage and changes nothing else.
	PolicyDetect Policy = "detect"
	// PolicyRepair overwrites the cached value with the derived one.
	PolicyRepair Policy = "repair"
)

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionRecordDrift persists a drift record.
	ActionRecordDrift ActionType = "record_drift"
	// ActionRepair overwrites the cached field.
	ActionRepair ActionType = "repair"
)

// Action represents a planned mutation for one mismatch.
type Action[V comparable] struct {
	Type     ActionType
	Mismatch Mismatch[V]
	Reason   string
}

// ApplyResult is what a Mutator reports for one batch.
type ApplyResult struct {
	// Applied counts actions that changed state.
	Applied int
	// Skipped maps record keys to the reason the action was not applied.
	Skipped map[string]string
	// Events are emitted once the batch transaction has committed.
	Events []events.Event
}

// Spec bundles everything a reconciliation run needs.
type Spec[V comparable] struct {
	Adapter   Adapter[V]
	Mutator   Mutator[V]
	Policy    Policy
	BatchSize int
	// DryRun plans actions without applying them.
	DryRun bool
	Events events.Sink
	Logger *zap.Logger
}

// Key identifies the spec for run deduplication.
func (s Spec[V]) Key() string {
	key := s.Adapter.Name() + "|" + string(s.Policy)
	if s.DryRun {
		key += "|dry"
	}
	return key
}

// Finding status values.
const (
	StatusPlanned = "planned"
	StatusApplied = "applied"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Finding is one mismatch as reported to operators.
type Finding struct {
	Key     string     `json:"key"`
	Label   string     `json:"label"`
	Cached  any        `json:"cached"`
	Derived any        `json:"derived"`
	Action  ActionType `json:"action"`
	Detail  string     `json:"detail"`
	Status  string     `json:"status"`
	Note    string     `json:"note,omitempty"`
}

// RunSummary is the outcome of a reconciliation run. Runs never fail as a
// whole: batch level failures are counted and described in Errors.
type RunSummary struct {
	RunID         uuid.UUID `json:"run_id"`
	Adapter       string    `json:"adapter"`
	Policy        Policy    `json:"policy"`
	DryRun        bool      `json:"dry_run"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Batches       int       `json:"batches"`
	Checked       int       `json:"checked"`
	Mismatches    int       `json:"mismatches"`
	Suppressed    int       `json:"suppressed"`
	Planned       int       `json:"planned"`
	Applied       int       `json:"applied"`
	Skipped       int       `json:"skipped"`
	FailedBatches int       `json:"failed_batches"`
	Errors        []string  `json:"errors"`
	Findings      []Finding `json:"findings"`
}

// Duration returns the wall time of the run.
func (s *RunSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// Clean reports whether the run completed without mismatches or failures.
func (s *RunSummary) Clean() bool {
	return s.Mismatches == 0 && s.FailedBatches == 0 && len(s.Errors) == 0
}
