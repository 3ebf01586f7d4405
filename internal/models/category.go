package models

// Category represents a transaction category. Kind determines which
// transaction types may reference the category.
type Category struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Kind  TransactionType `json:"kind"`
	Color string          `json:"color,omitempty"`
}

// GetID returns the category id.
func (c Category) GetID() string { return c.ID }

// WithID returns a copy of the category with the given id.
func (c Category) WithID(id string) Category {
	c.ID = id
	return c
}

// CategoryPatch is a partial update for a category.
type CategoryPatch struct {
	Name  *string          `json:"name,omitempty"`
	Kind  *TransactionType `json:"kind,omitempty"`
	Color *string          `json:"color,omitempty"`
}

// Apply merges the patch into a copy of the category.
func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Kind != nil {
		c.Kind = *p.Kind
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	return c
}
