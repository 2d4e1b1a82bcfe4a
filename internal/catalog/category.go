// Package catalog implements the stream catalog: categories and streams with
// manual display ordering, persisted as two flat JSON files.
//
// Each service owns one collection. All reads re-load the backing file so the
// in-memory list is only a request-scoped working copy; mutations rewrite the
// whole file under the table lock.
package catalog

import (
	"slices"
)

// DefaultCategoryIcon is assigned when a category is created without an icon.
const DefaultCategoryIcon = "fa-folder"

// Category is a named grouping of streams with a manual display rank.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	Sort int    `json:"sort"`
}

// Validate checks that the category is well-formed.
func (c *Category) Validate() error {
	if c.ID <= 0 {
		return &ValidationError{Field: "id"}
	}
	if c.Name == "" {
		return &ValidationError{Field: "name"}
	}
	return nil
}

// SortCategories orders categories by sort ascending, stable on ties.
func SortCategories(categories []*Category) {
	slices.SortStableFunc(categories, func(a, b *Category) int {
		return a.Sort - b.Sort
	})
}

// CategoryNames returns a lookup from category ID to name.
func CategoryNames(categories []*Category) map[int]string {
	names := make(map[int]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}
