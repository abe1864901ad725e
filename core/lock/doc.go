// Package lock provides run exclusion for long catalog jobs.
//
// Reconciliation runs must not overlap across replicas. When a Redis address is
// configured the Locker is backed by bsm/redislock; otherwise an in-process
// locker is used, which only excludes runs within one process.
//
// # Usage
//
//	locker, closeFn, err := lock.New(cfg.Redis)
//	release, err := locker.Obtain(ctx, "reconcile:inventory", time.Minute)
//	if errors.Is(err, lock.ErrNotObtained) {
//	    // another run is in progress
//	}
//	defer release(ctx)
package lock
