package template

// Catalog is the in-memory template collection, unique by name.
type Catalog struct {
	templates []Template
}

// NewCatalog builds a catalog from the given templates, keeping the first
// occurrence of each name.
func NewCatalog(templates []Template) *Catalog {
	c := &Catalog{}
	seen := make(map[string]bool, len(templates))
	for _, t := range templates {
		if t.Name == "" || seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		c.templates = append(c.templates, t)
	}
	return c
}

// Find resolves a template by exact name. A nil result is the soft
// "dangling template" condition: callers skip, they do not error.
func (c *Catalog) Find(name string) *Template {
	for i := range c.templates {
		if c.templates[i].Name == name {
			return &c.templates[i]
		}
	}
	return nil
}

// All returns the templates in catalog order.
func (c *Catalog) All() []Template { return c.templates }

// Len returns the number of templates.
func (c *Catalog) Len() int { return len(c.templates) }

// Upsert replaces the template with the same name or appends a new one.
func (c *Catalog) Upsert(t Template) {
	for i := range c.templates {
		if c.templates[i].Name == t.Name {
			c.templates[i] = t
			return
		}
	}
	c.templates = append(c.templates, t)
}

// Remove deletes a template by name, reporting whether it existed.
func (c *Catalog) Remove(name string) bool {
	for i := range c.templates {
		if c.templates[i].Name == name {
			c.templates = append(c.templates[:i], c.templates[i+1:]...)
			return true
		}
	}
	return false
}
