package backup

import (
	"fmt"
	"strings"
)

// ConfigurationError reports an invalid configuration (bad inclusion
// specification, unknown conflict strategy, malformed repository). It is
// raised before any network or file I/O and aborts the whole run.
type ConfigurationError struct {
	msg string
}

func (e *ConfigurationError) Error() string {
	return e.msg
}

func configErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{msg: fmt.Sprintf(format, args...)}
}

// CircularDependencyError reports that the declared strategy dependencies
// contain a cycle. Members lists the entity types left unresolved.
type CircularDependencyError struct {
	Members []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency among strategies: %s", strings.Join(e.Members, ", "))
}

// CollectionError reports that an upstream fetch failed for one entity
// type. It is strategy-scoped: the orchestrator records it as a failed
// result and skips dependent strategies.
type CollectionError struct {
	Entity string
	Err    error
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("failed to collect %s: %v", e.Entity, e.Err)
}

func (e *CollectionError) Unwrap() error {
	return e.Err
}
