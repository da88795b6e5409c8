package backup

// strategyNode is the part of a strategy the dependency resolver needs.
type strategyNode interface {
	EntityName() string
	Dependencies() []string
}

// resolveOrder topologically orders strategies by their declared
// dependencies using Kahn's algorithm, preserving registration order among
// ties. Dependencies naming entity types that are not in the set are
// ignored; the factory has already decided what is enabled. It returns a
// *CircularDependencyError naming the unresolved strategies if a cycle
// remains.
func resolveOrder[S strategyNode](strategies []S) ([]S, error) {
	present := make(map[string]bool, len(strategies))
	for _, s := range strategies {
		present[s.EntityName()] = true
	}

	indegree := make(map[string]int, len(strategies))
	dependents := make(map[string][]string)
	for _, s := range strategies {
		name := s.EntityName()
		for _, dep := range s.Dependencies() {
			if !present[dep] {
				continue
			}
			indegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	ordered := make([]S, 0, len(strategies))
	done := make(map[string]bool, len(strategies))
	for len(ordered) < len(strategies) {
		progressed := false
		for _, s := range strategies {
			name := s.EntityName()
			if done[name] || indegree[name] > 0 {
				continue
			}
			ordered = append(ordered, s)
			done[name] = true
			progressed = true
			for _, dep := range dependents[name] {
				indegree[dep]--
			}
		}
		if !progressed {
			var members []string
			for _, s := range strategies {
				if !done[s.EntityName()] {
					members = append(members, s.EntityName())
				}
			}
			return nil, &CircularDependencyError{Members: members}
		}
	}

	return ordered, nil
}
