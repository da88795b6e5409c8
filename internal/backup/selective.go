package backup

import (
	"sort"
	"strconv"
	"strings"

	"github.com/repovault/repovault/internal/logging"
)

type inclusionMode int

const (
	includeAll inclusionMode = iota
	includeNone
	includeSet
)

// InclusionSpec controls which entities of a type are processed: all of
// them, none of them, or an explicit set of numbers.
type InclusionSpec struct {
	mode    inclusionMode
	numbers map[int]struct{}
}

// IncludeAll returns a spec that passes every entity through.
func IncludeAll() InclusionSpec {
	return InclusionSpec{mode: includeAll}
}

// IncludeNone returns a spec that excludes every entity.
func IncludeNone() InclusionSpec {
	return InclusionSpec{mode: includeNone}
}

// IncludeNumbers returns a spec that keeps only the given numbers.
func IncludeNumbers(numbers ...int) InclusionSpec {
	set := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		set[n] = struct{}{}
	}
	return InclusionSpec{mode: includeSet, numbers: set}
}

// ParseInclusionSpec parses a spec from its flag form: "all"/"true",
// "none"/"false", or a comma-separated list of numbers such as "5,7".
// An empty string means "all".
func ParseInclusionSpec(raw string) (InclusionSpec, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all", "true":
		return IncludeAll(), nil
	case "none", "false":
		return IncludeNone(), nil
	}

	var numbers []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return InclusionSpec{}, configErrorf("invalid inclusion specification %q: expected 'all', 'none' or a comma-separated list of positive numbers", raw)
		}
		numbers = append(numbers, n)
	}
	if len(numbers) == 0 {
		return InclusionSpec{}, configErrorf("invalid inclusion specification %q: empty number list", raw)
	}
	return IncludeNumbers(numbers...), nil
}

// Enabled reports whether the spec admits any entity at all.
func (s InclusionSpec) Enabled() bool {
	return s.mode != includeNone
}

// Selective reports whether the spec is an explicit number set.
func (s InclusionSpec) Selective() bool {
	return s.mode == includeSet
}

// applySelection filters items by the spec, preserving original order.
// number extracts the stable entity number from an item. Requested numbers
// that were not found are logged as warnings; a request for a nonexistent
// number is never fatal.
func applySelection[T any](items []T, spec InclusionSpec, number func(T) int, entity string) []T {
	switch spec.mode {
	case includeAll:
		return items
	case includeNone:
		return nil
	}

	found := make(map[int]struct{}, len(spec.numbers))
	var kept []T
	for _, item := range items {
		n := number(item)
		if _, ok := spec.numbers[n]; ok {
			kept = append(kept, item)
			found[n] = struct{}{}
		}
	}

	var missing []int
	for n := range spec.numbers {
		if _, ok := found[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		for _, n := range missing {
			logging.Warn("requested number not found",
				"entity_type", entity,
				"number", n)
		}
	}

	return kept
}
