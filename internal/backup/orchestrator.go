package backup

import (
	"context"

	"github.com/repovault/repovault/internal/logging"
)

// Orchestrator executes strategies in dependency order, threading a
// shared run context between them and isolating failures per strategy.
// Execution is strictly sequential: restore strategies require the
// previous strategy's id remapping to be fully populated before they can
// resolve parent references.
type Orchestrator struct {
	service RepositoryService
	storage StorageService
}

// NewOrchestrator returns an orchestrator backed by the given
// collaborators.
func NewOrchestrator(service RepositoryService, storage StorageService) *Orchestrator {
	return &Orchestrator{service: service, storage: storage}
}

// RunSave backs up the configured entity types to the backup directory,
// returning one result per strategy. Only configuration-time errors are
// returned; every runtime failure is recorded in the results.
func (o *Orchestrator) RunSave(ctx context.Context, opts Options) ([]OperationResult, error) {
	strategies, err := NewSaveStrategies(opts)
	if err != nil {
		return nil, err
	}
	logging.Info("starting save run",
		"repository", opts.Repository,
		"dir", opts.Dir,
		"strategies", len(strategies))
	return o.run(ctx, strategies, opts), nil
}

// RunRestore recreates the backed-up entity types in the target
// repository, returning one result per strategy.
func (o *Orchestrator) RunRestore(ctx context.Context, opts Options) ([]OperationResult, error) {
	strategies, err := NewRestoreStrategies(opts)
	if err != nil {
		return nil, err
	}
	logging.Info("starting restore run",
		"repository", opts.Repository,
		"dir", opts.Dir,
		"strategies", len(strategies),
		"conflict_strategy", opts.Conflict.String())
	return o.run(ctx, strategies, opts), nil
}

// run executes the ordered strategies. A strategy whose dependency failed
// or was skipped this run is marked skipped and never executed; its own
// dependents cascade the same way. The run always completes and returns a
// full report.
func (o *Orchestrator) run(ctx context.Context, strategies []Strategy, opts Options) []OperationResult {
	run := NewContext()
	blocked := make(map[string]bool)
	results := make([]OperationResult, 0, len(strategies))

	for _, strategy := range strategies {
		name := strategy.EntityName()

		if dep, isBlocked := blockedDependency(strategy, blocked); isBlocked {
			logging.Warn("skipping strategy: dependency failed",
				"entity_type", name,
				"dependency", dep)
			blocked[name] = true
			results = append(results, OperationResult{
				EntityType: name,
				Skipped:    true,
				SkipReason: "dependency failed",
			})
			continue
		}

		result := strategy.Run(ctx, o.service, o.storage, opts.Repository, opts.Dir, run)
		if !result.Success {
			blocked[name] = true
		}
		results = append(results, result)
	}

	return results
}

// blockedDependency returns the first declared dependency that failed or
// was skipped in this run.
func blockedDependency(strategy Strategy, blocked map[string]bool) (string, bool) {
	for _, dep := range strategy.Dependencies() {
		if blocked[dep] {
			return dep, true
		}
	}
	return "", false
}
