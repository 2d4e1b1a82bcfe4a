package catalog

import (
	"github.com/hoxhox/tvsource/internal/jsondb"
)

// CategoryService handles CRUD over the category collection.
type CategoryService struct {
	table *jsondb.Table[*Category]
}

// NewCategoryService creates a category service backed by the JSON file at
// path.
func NewCategoryService(path string) *CategoryService {
	return &CategoryService{table: jsondb.NewTable[*Category](path)}
}

// List returns all categories in store order. Callers apply display sorting.
func (s *CategoryService) List() []*Category {
	return s.table.Load()
}

// Get retrieves a category by ID.
func (s *CategoryService) Get(id int) (*Category, error) {
	for _, c := range s.table.Load() {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

// Add creates a new category. Name is required; an empty icon defaults to
// DefaultCategoryIcon and sort <= 0 defaults to count+1. The new ID is
// max(existing IDs)+1, or 1 for an empty collection, so IDs are never reused
// while any higher ID survives.
func (s *CategoryService) Add(name, icon string, sort int) (*Category, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name"}
	}
	if icon == "" {
		icon = DefaultCategoryIcon
	}

	var added *Category
	err := s.table.Modify(func(rows []*Category) ([]*Category, error) {
		if sort <= 0 {
			sort = len(rows) + 1
		}
		id := 1
		for _, c := range rows {
			if c.ID >= id {
				id = c.ID + 1
			}
		}
		added = &Category{ID: id, Name: name, Icon: icon, Sort: sort}
		return append(rows, added), nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// Update overwrites the mutable fields of the category with the given ID.
// Returns ErrNotFound if no category has that ID.
func (s *CategoryService) Update(id int, name, icon string, sort int) error {
	if name == "" {
		return &ValidationError{Field: "name"}
	}
	if icon == "" {
		icon = DefaultCategoryIcon
	}

	return s.table.Modify(func(rows []*Category) ([]*Category, error) {
		if sort <= 0 {
			sort = len(rows) + 1
		}
		for _, c := range rows {
			if c.ID == id {
				c.Name = name
				c.Icon = icon
				c.Sort = sort
				return rows, nil
			}
		}
		return nil, ErrNotFound
	})
}

// Delete removes the category with the given ID. Surviving records keep
// their IDs; streams referencing the deleted category are left dangling and
// render as 未分类.
func (s *CategoryService) Delete(id int) error {
	return s.table.Modify(func(rows []*Category) ([]*Category, error) {
		for i, c := range rows {
			if c.ID == id {
				return append(rows[:i], rows[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}

// Reorder applies a submitted ordering of category IDs and persists the
// result. Reports whether any rank changed.
func (s *CategoryService) Reorder(orderedIDs []int) (bool, error) {
	changed := false
	err := s.table.Modify(func(rows []*Category) ([]*Category, error) {
		changed = Resequence(rows, orderedIDs)
		return rows, nil
	})
	return changed, err
}
