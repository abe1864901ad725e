package reconcile

import "golang.org/x/sync/singleflight"

// Runner collapses concurrent triggers of the same run into one execution.
// Callers arriving while a run is in flight receive its summary.
type Runner struct {
	sf singleflight.Group
}

// NewRunner creates a Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Do executes fn unless a run with the same key is already in flight.
// shared is true when the summary came from another caller's run.
func (r *Runner) Do(key string, fn func() *RunSummary) (summary *RunSummary, shared bool) {
	v, _, shared := r.sf.Do(key, func() (interface{}, error) {
		return fn(), nil
	})
	return v.(*RunSummary), shared
}
