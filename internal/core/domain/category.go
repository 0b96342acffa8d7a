package domain

// Category is a node in a one-level-deep hierarchy: a category has at most
// one parent, and "subcategories" always means direct children.
type Category struct {
	ID       string  `bson:"_id,omitempty"`
	Name     string  `bson:"name"`
	ParentID *string `bson:"parent_id"`
}

// IsTopLevel reports whether the category has no parent.
func (c *Category) IsTopLevel() bool { return c.ParentID == nil }
