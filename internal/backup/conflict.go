package backup

import (
	"fmt"
)

// ConflictStrategy selects the restore-time policy for handling a
// collision between an incoming entity and a pre-existing remote entity
// with the same name.
type ConflictStrategy int

const (
	// ConflictFailIfExisting aborts the whole restore of an entity type
	// if any target-name collision exists, checked up front.
	ConflictFailIfExisting ConflictStrategy = iota

	// ConflictFailIfConflict aborts only if an existing entity with the
	// same name has different field values.
	ConflictFailIfConflict

	// ConflictDeleteAll deletes every existing entity of the type before
	// creating.
	ConflictDeleteAll

	// ConflictOverwrite updates the existing entity's fields to match
	// the incoming one.
	ConflictOverwrite

	// ConflictSkip leaves the existing entity untouched and treats the
	// collision as success.
	ConflictSkip
)

var conflictStrategyNames = map[ConflictStrategy]string{
	ConflictFailIfExisting: "fail-if-existing",
	ConflictFailIfConflict: "fail-if-conflict",
	ConflictDeleteAll:      "delete-all",
	ConflictOverwrite:      "overwrite",
	ConflictSkip:           "skip",
}

func (s ConflictStrategy) String() string {
	if name, ok := conflictStrategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ConflictStrategy(%d)", int(s))
}

// ParseConflictStrategy parses a strategy from its flag form. Unknown
// names are a configuration error, caught before any I/O happens.
func ParseConflictStrategy(raw string) (ConflictStrategy, error) {
	for s, name := range conflictStrategyNames {
		if raw == name {
			return s, nil
		}
	}
	return 0, configErrorf("unknown conflict strategy %q: expected one of fail-if-existing, fail-if-conflict, delete-all, overwrite, skip", raw)
}

// ConflictAction is the decision a conflict strategy produces for one
// incoming entity.
type ConflictAction int

const (
	// ActionCreate creates the incoming entity; no collision exists.
	ActionCreate ConflictAction = iota

	// ActionUpdate updates the existing entity in place.
	ActionUpdate

	// ActionSkipExisting keeps the existing entity and drops the
	// incoming one, treated as success.
	ActionSkipExisting

	// ActionAbort fails the restore of this entity type.
	ActionAbort
)

// ConflictOutcome is the standardized result envelope for one resolved
// collision, suitable for logging and reporting.
type ConflictOutcome struct {
	Success   bool   `json:"success"`
	Operation string `json:"operation"`
	Strategy  string `json:"strategy"`
	Error     string `json:"error,omitempty"`
	ErrorType string `json:"error_type,omitempty"`
}

// resolveCollision decides the action for one incoming entity. exists
// reports whether a remote entity with the same name is present; equal
// reports whether that entity's fields already match the incoming one.
//
// The decision is deterministic: skip always keeps the existing entity,
// fail-if-existing always aborts on any collision regardless of field
// equality, overwrite always ends with the incoming field values present.
func resolveCollision(strategy ConflictStrategy, exists, equal bool) ConflictAction {
	if !exists {
		return ActionCreate
	}
	switch strategy {
	case ConflictFailIfExisting:
		return ActionAbort
	case ConflictFailIfConflict:
		if equal {
			return ActionSkipExisting
		}
		return ActionAbort
	case ConflictDeleteAll:
		// Existing entities were deleted in the pre-pass; anything
		// still colliding here is recreated by plain creation.
		return ActionCreate
	case ConflictOverwrite:
		return ActionUpdate
	case ConflictSkip:
		return ActionSkipExisting
	}
	return ActionCreate
}

// outcomeFor builds the result envelope for a resolved collision.
func outcomeFor(strategy ConflictStrategy, action ConflictAction, err error) ConflictOutcome {
	out := ConflictOutcome{
		Strategy: strategy.String(),
	}
	switch action {
	case ActionCreate:
		out.Operation = "create"
	case ActionUpdate:
		out.Operation = "update"
	case ActionSkipExisting:
		out.Operation = "skip"
	case ActionAbort:
		out.Operation = "abort"
	}
	if err != nil {
		out.Error = err.Error()
		out.ErrorType = fmt.Sprintf("%T", err)
		return out
	}
	out.Success = action != ActionAbort
	return out
}
