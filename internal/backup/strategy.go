package backup

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/repovault/repovault/internal/logging"
)

// Entity-type names. They double as dependency keys, context keys and the
// base of the per-type file name.
const (
	EntityLabels           = "labels"
	EntityMilestones       = "milestones"
	EntityIssues           = "issues"
	EntityComments         = "comments"
	EntityPullRequests     = "pull_requests"
	EntityPRComments       = "pr_comments"
	EntityPRReviews        = "pr_reviews"
	EntityPRReviewComments = "pr_review_comments"
	EntitySubIssues        = "sub_issues"
)

// entityFileName returns the file holding one entity type inside the
// backup directory.
func entityFileName(entity string) string {
	return entity + ".json"
}

// Strategy is the per-entity-type unit of save or restore work. Run never
// returns an error: every runtime failure is converted into the returned
// OperationResult so the orchestrator can keep going and report.
type Strategy interface {
	// EntityName returns the entity-type name this strategy handles.
	EntityName() string

	// Dependencies returns the entity-type names that must have run
	// before this strategy, used for ordering and coupling lookups.
	Dependencies() []string

	// Run executes the strategy against the given repository and backup
	// directory, reading and writing the shared run context.
	Run(ctx context.Context, svc RepositoryService, store StorageService, repository, dir string, run *Context) OperationResult
}

// entitySaver is the generic save pipeline: collect from the upstream
// service, process (selective filtering, parent coupling), persist one
// file, and publish the produced entities into the run context.
type entitySaver[T any] struct {
	name    string
	deps    []string
	collect func(ctx context.Context, svc RepositoryService, repository string, run *Context) ([]T, error)
	process func(items []T, run *Context) []T
}

func (s *entitySaver[T]) EntityName() string {
	return s.name
}

func (s *entitySaver[T]) Dependencies() []string {
	return s.deps
}

func (s *entitySaver[T]) Run(ctx context.Context, svc RepositoryService, store StorageService, repository, dir string, run *Context) OperationResult {
	start := time.Now()
	result := OperationResult{EntityType: s.name}

	items, err := s.collect(ctx, svc, repository, run)
	if err != nil {
		cerr := &CollectionError{Entity: s.name, Err: err}
		logging.Error("collection failed", "entity_type", s.name, "error", err)
		result.Error = cerr.Error()
		result.Duration = time.Since(start)
		return result
	}

	if s.process != nil {
		items = s.process(items, run)
	}

	run.StoreProduced(s.name, items)

	path := filepath.Join(dir, entityFileName(s.name))
	if err := store.Save(path, items); err != nil {
		logging.Error("failed to persist entities", "entity_type", s.name, "path", path, "error", err)
		result.Error = fmt.Sprintf("failed to save %s: %v", s.name, err)
		result.Duration = time.Since(start)
		return result
	}

	logging.Info("saved entities",
		"entity_type", s.name,
		"count", len(items),
		"path", path)

	result.Success = true
	result.ItemsProcessed = len(items)
	result.Duration = time.Since(start)
	return result
}

// entityRestorer is the generic restore pipeline: load one file, run an
// optional prepare pass (conflict pre-checks), then per item transform
// (resolving parent references through the run context), create remotely
// and record id remappings for dependent strategies.
//
// A missing file is not an error: it means the entity type was not
// included in that backup. A failed creation of a single item is recorded
// and does not abort the remaining items.
type entityRestorer[T any] struct {
	name string
	deps []string

	// prepare runs once before item processing; an error aborts the
	// whole entity type.
	prepare func(ctx context.Context, svc RepositoryService, repository string, items []T, run *Context) error

	// transform resolves parent references. ok=false means a required
	// parent mapping is missing and the item must be skipped.
	transform func(item T, run *Context) (T, bool)

	// create creates the entity remotely. A nil created with nil error
	// signals a conflict resolved to skip.
	create func(ctx context.Context, svc RepositoryService, repository string, item T) (*T, error)

	// postCreate updates the run context's remapping tables.
	postCreate func(original T, created *T, run *Context)
}

func (s *entityRestorer[T]) EntityName() string {
	return s.name
}

func (s *entityRestorer[T]) Dependencies() []string {
	return s.deps
}

func (s *entityRestorer[T]) Run(ctx context.Context, svc RepositoryService, store StorageService, repository, dir string, run *Context) OperationResult {
	start := time.Now()
	result := OperationResult{EntityType: s.name}

	path := filepath.Join(dir, entityFileName(s.name))
	var items []T
	found, err := store.Load(path, &items)
	if err != nil {
		logging.Error("failed to load entities", "entity_type", s.name, "path", path, "error", err)
		result.Error = fmt.Sprintf("failed to load %s: %v", s.name, err)
		result.Duration = time.Since(start)
		return result
	}
	if !found {
		logging.Info("no backup file for entity type, nothing to restore",
			"entity_type", s.name,
			"path", path)
		result.Success = true
		result.Duration = time.Since(start)
		return result
	}

	if s.prepare != nil {
		if err := s.prepare(ctx, svc, repository, items, run); err != nil {
			logging.Error("restore pre-check failed", "entity_type", s.name, "error", err)
			result.Error = err.Error()
			result.Duration = time.Since(start)
			return result
		}
	}

	for _, item := range items {
		transformed := item
		if s.transform != nil {
			var ok bool
			transformed, ok = s.transform(item, run)
			if !ok {
				result.ItemsSkipped++
				continue
			}
		}

		created, err := s.create(ctx, svc, repository, transformed)
		if err != nil {
			result.ItemsFailed++
			logging.Error("failed to create entity",
				"entity_type", s.name,
				"error", err)
			if result.Error == "" {
				result.Error = err.Error()
			}
			continue
		}
		if created == nil {
			// Conflict resolved to keep the existing entity.
			result.ItemsSkipped++
			continue
		}

		result.ItemsProcessed++
		if s.postCreate != nil {
			s.postCreate(item, created, run)
		}
	}

	logging.Info("restored entities",
		"entity_type", s.name,
		"created", result.ItemsProcessed,
		"skipped", result.ItemsSkipped,
		"failed", result.ItemsFailed)

	result.Success = true
	result.Duration = time.Since(start)
	return result
}
