package backup

import (
	"time"
)

// OperationResult records the outcome of one strategy execution. A run
// produces one result per strategy, in execution order.
//
// Success is false only for strategy-scoped failures (collection, load or
// conflict pre-check failures). Individual entities that failed to create
// are counted in ItemsFailed without failing the strategy, so a partial
// restore is still reported as usable.
type OperationResult struct {
	// EntityType is the entity-type name the strategy handles.
	EntityType string

	// Success reports whether the strategy ran to completion.
	Success bool

	// Skipped reports that the strategy never executed because a
	// dependency failed or was itself skipped.
	Skipped bool

	// SkipReason explains a skip, e.g. "dependency failed".
	SkipReason string

	// ItemsProcessed is the number of entities persisted or created.
	ItemsProcessed int

	// ItemsSkipped is the number of entities dropped because a parent
	// reference could not be resolved or a conflict resolved to skip.
	ItemsSkipped int

	// ItemsFailed is the number of entities whose creation failed.
	ItemsFailed int

	// Duration is the wall-clock execution time of the strategy.
	Duration time.Duration

	// Error holds the human-readable failure message when Success is
	// false.
	Error string
}

// AnyFailed reports whether any strategy in the run failed or recorded
// per-item failures. Callers use it to decide the process exit code.
func AnyFailed(results []OperationResult) bool {
	for _, r := range results {
		if !r.Skipped && !r.Success {
			return true
		}
		if r.ItemsFailed > 0 {
			return true
		}
	}
	return false
}
