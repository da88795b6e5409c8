package backup

// Context is the mutable state threaded through one orchestrator run. It
// holds the entities already produced by earlier strategies, keyed by
// entity-type name, and the per-type remapping tables from original
// identifier to newly created identifier built during a restore.
//
// A Context is created empty at run start and discarded at run end. It is
// only ever written by the currently executing strategy; the engine is
// strictly sequential, so no locking is needed.
type Context struct {
	produced map[string]any
	mappings map[string]map[int64]int64
}

// NewContext returns an empty run context.
func NewContext() *Context {
	return &Context{
		produced: make(map[string]any),
		mappings: make(map[string]map[int64]int64),
	}
}

// StoreProduced records the entities a strategy produced, for coupling
// lookups by later strategies. items is a []T slice of the strategy's
// entity model.
func (c *Context) StoreProduced(entity string, items any) {
	c.produced[entity] = items
}

// Produced returns the raw produced-entity slice for an entity type, or
// nil if that strategy has not run.
func (c *Context) Produced(entity string) any {
	return c.produced[entity]
}

// ProducedAs returns the produced entities for an entity type as a typed
// slice. It returns nil when the strategy has not run or stored a
// different type.
func ProducedAs[T any](c *Context, entity string) []T {
	v, ok := c.produced[entity]
	if !ok {
		return nil
	}
	items, _ := v.([]T)
	return items
}

// SetMapping records that the entity identified by old in the backup was
// created as new in the target repository.
func (c *Context) SetMapping(entity string, old, new int64) {
	m, ok := c.mappings[entity]
	if !ok {
		m = make(map[int64]int64)
		c.mappings[entity] = m
	}
	m[old] = new
}

// MappedID resolves an original identifier through the remapping table for
// an entity type. ok is false when the table or the entry is absent, which
// means the owning strategy was skipped or the entity was excluded.
func (c *Context) MappedID(entity string, old int64) (int64, bool) {
	m, ok := c.mappings[entity]
	if !ok {
		return 0, false
	}
	id, ok := m[old]
	return id, ok
}

// HasMappings reports whether any remapping entry exists for an entity
// type, i.e. whether its restore strategy ran and created anything.
func (c *Context) HasMappings(entity string) bool {
	return len(c.mappings[entity]) > 0
}
