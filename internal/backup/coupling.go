package backup

import (
	"fmt"
	"strings"

	"github.com/repovault/repovault/internal/logging"
)

// parentIDSet is the set of identifiers that name a group of parent
// entities: their bare numbers plus API-path variants such as
// "/issues/5", so that children referencing a parent by URL still match.
type parentIDSet struct {
	exact map[string]struct{}
	paths []string
}

// buildParentIDSet derives the identifier set for parent numbers.
// pathNouns are the API path segments a parent may appear under (e.g.
// "issues" for issues, "issues" and "pulls" for pull requests).
func buildParentIDSet(numbers []int64, pathNouns ...string) parentIDSet {
	set := parentIDSet{exact: make(map[string]struct{}, len(numbers)*(1+len(pathNouns)))}
	for _, n := range numbers {
		bare := fmt.Sprintf("%d", n)
		set.exact[bare] = struct{}{}
		for _, noun := range pathNouns {
			path := fmt.Sprintf("/%s/%d", noun, n)
			set.exact[path] = struct{}{}
			set.paths = append(set.paths, path)
		}
	}
	return set
}

func (s parentIDSet) empty() bool {
	return len(s.exact) == 0
}

// matches reports whether a child's parent reference names one of the
// parents: by exact identifier, by path substring, or by trailing numeric
// segment, in that priority order.
func (s parentIDSet) matches(ref string) bool {
	if ref == "" {
		return false
	}
	if _, ok := s.exact[ref]; ok {
		return true
	}
	for _, path := range s.paths {
		// A path may not be followed by another digit: "/issues/42"
		// must not match ".../issues/421".
		idx := strings.Index(ref, path)
		for idx >= 0 {
			end := idx + len(path)
			if end == len(ref) || !isDigit(ref[end]) {
				return true
			}
			next := strings.Index(ref[idx+1:], path)
			if next < 0 {
				break
			}
			idx += 1 + next
		}
	}
	if tail := trailingNumber(ref); tail != "" {
		if _, ok := s.exact[tail]; ok {
			return true
		}
	}
	return false
}

// trailingNumber extracts the numeric segment a reference ends with, e.g.
// "https://api.github.com/repos/o/r/issues/5" -> "5".
func trailingNumber(ref string) string {
	end := len(ref)
	for end > 0 && !isDigit(ref[end-1]) {
		end--
	}
	start := end
	for start > 0 && isDigit(ref[start-1]) {
		start--
	}
	return ref[start:end]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// filterChildrenByParents keeps the children whose parent reference names
// one of the parents. extract obtains the type-specific parent reference
// from a child.
//
// An empty parent set behaves differently by mode: in the default
// (non-selective) mode children pass through unchanged, since no parent
// data was collected at all; in selective mode an empty set means the
// requested parents matched nothing, so every child is excluded and a
// warning is logged.
func filterChildrenByParents[T any](children []T, parents parentIDSet, extract func(T) string, selective bool, childType string) []T {
	if parents.empty() {
		if !selective {
			return children
		}
		if len(children) > 0 {
			logging.Warn("excluding all children: parent set is empty in selective mode",
				"entity_type", childType,
				"excluded", len(children))
		}
		return nil
	}

	var kept []T
	for _, child := range children {
		if parents.matches(extract(child)) {
			kept = append(kept, child)
		}
	}
	return kept
}
