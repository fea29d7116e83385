package physics

import (
	"fmt"
	"sort"
)

// Stage is a named arena with its force modifiers.
type Stage struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Modifiers   Modifiers `yaml:"modifiers"`
}

// Catalog is the ordered set of selectable stages.
type Catalog struct {
	stages []Stage
	byID   map[string]int
}

// NewCatalog indexes stages by ID. Duplicate or empty IDs are rejected.
func NewCatalog(stages []Stage) (*Catalog, error) {
	c := &Catalog{
		stages: make([]Stage, 0, len(stages)),
		byID:   make(map[string]int, len(stages)),
	}
	for _, st := range stages {
		if st.ID == "" {
			return nil, fmt.Errorf("physics: stage %q has no id", st.Name)
		}
		if _, dup := c.byID[st.ID]; dup {
			return nil, fmt.Errorf("physics: duplicate stage id %q", st.ID)
		}
		c.byID[st.ID] = len(c.stages)
		c.stages = append(c.stages, st)
	}
	return c, nil
}

// Get returns the stage with the given ID.
func (c *Catalog) Get(id string) (Stage, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Stage{}, false
	}
	return c.stages[i], true
}

// First returns the first stage in catalog order.
func (c *Catalog) First() (Stage, bool) {
	if len(c.stages) == 0 {
		return Stage{}, false
	}
	return c.stages[0], true
}

// Stages returns the stages in catalog order.
func (c *Catalog) Stages() []Stage {
	out := make([]Stage, len(c.stages))
	copy(out, c.stages)
	return out
}

// IDs returns the sorted stage IDs.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
