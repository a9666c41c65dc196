package form

// Catalog tracks which archetypes remain selectable during one
// schema-building session. Adding a field consumes its subtype from the
// pool; removing the field returns it. State is owned by a single Builder and
// never shared across sessions.
type Catalog struct {
	textPool   []Archetype
	selectPool []Archetype // single- and multi-selects share the dropdown bucket
	dateUsed   bool
}

// NewCatalog seeds a catalog with the full archetype tables.
func NewCatalog() *Catalog {
	return &Catalog{
		textPool:   textArchetypes(),
		selectPool: selectArchetypes(),
	}
}

// Available returns the unconsumed archetypes of the requested kind, in
// display order.
func (c *Catalog) Available(kind Kind) []Archetype {
	switch kind {
	case TextInput:
		return append([]Archetype(nil), c.textPool...)
	case SingleSelect, MultiSelect:
		var out []Archetype
		for _, a := range c.selectPool {
			if a.Kind == kind {
				out = append(out, a)
			}
		}
		return out
	case DatePicker:
		if c.dateUsed {
			return nil
		}
		return []Archetype{dateArchetype()}
	default:
		return nil
	}
}

// take consumes the archetype for (kind, subtype) from its pool.
func (c *Catalog) take(kind Kind, subtype string) (Archetype, bool) {
	if kind == DatePicker {
		if c.dateUsed {
			return Archetype{}, false
		}
		c.dateUsed = true
		return dateArchetype(), true
	}

	pool := &c.textPool
	if kind == SingleSelect || kind == MultiSelect {
		pool = &c.selectPool
	}
	for i, a := range *pool {
		if a.Kind == kind && a.Subtype == subtype {
			*pool = append((*pool)[:i], (*pool)[i+1:]...)
			return a, true
		}
	}
	return Archetype{}, false
}

// release returns a consumed archetype to its pool.
func (c *Catalog) release(a Archetype) {
	switch a.Kind {
	case TextInput:
		c.textPool = append(c.textPool, a)
	case SingleSelect, MultiSelect:
		c.selectPool = append(c.selectPool, a)
	case DatePicker:
		c.dateUsed = false
	}
}
