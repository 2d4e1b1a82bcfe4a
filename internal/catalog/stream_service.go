package catalog

import (
	"github.com/hoxhox/tvsource/internal/jsondb"
)

// StreamService handles CRUD over the stream collection.
type StreamService struct {
	table *jsondb.Table[*Stream]
}

// NewStreamService creates a stream service backed by the JSON file at path.
func NewStreamService(path string) *StreamService {
	return &StreamService{table: jsondb.NewTable[*Stream](path)}
}

// List returns all streams in store order. Callers apply display sorting.
func (s *StreamService) List() []*Stream {
	return s.table.Load()
}

// Get retrieves a stream by ID.
func (s *StreamService) Get(id int) (*Stream, error) {
	for _, st := range s.table.Load() {
		if st.ID == id {
			return st, nil
		}
	}
	return nil, ErrNotFound
}

// ByCategory returns the streams belonging to the given category, in store
// order.
func (s *StreamService) ByCategory(categoryID int) []*Stream {
	var matched []*Stream
	for _, st := range s.table.Load() {
		if st.CategoryID == categoryID {
			matched = append(matched, st)
		}
	}
	return matched
}

// Add creates a new stream. Name, URL and category ID are required; an empty
// icon defaults to DefaultStreamIcon and sort <= 0 defaults to count+1. The
// new ID is max(existing IDs)+1, or 1 for an empty collection.
func (s *StreamService) Add(categoryID int, name, url, icon string, sort int) (*Stream, error) {
	switch {
	case name == "":
		return nil, &ValidationError{Field: "name"}
	case url == "":
		return nil, &ValidationError{Field: "url"}
	case categoryID <= 0:
		return nil, &ValidationError{Field: "category_id"}
	}
	if icon == "" {
		icon = DefaultStreamIcon
	}

	var added *Stream
	err := s.table.Modify(func(rows []*Stream) ([]*Stream, error) {
		if sort <= 0 {
			sort = len(rows) + 1
		}
		id := 1
		for _, st := range rows {
			if st.ID >= id {
				id = st.ID + 1
			}
		}
		added = &Stream{ID: id, CategoryID: categoryID, Name: name, URL: url, Icon: icon, Sort: sort}
		return append(rows, added), nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// Update overwrites the mutable fields of the stream with the given ID.
// Returns ErrNotFound if no stream has that ID.
func (s *StreamService) Update(id, categoryID int, name, url, icon string, sort int) error {
	switch {
	case name == "":
		return &ValidationError{Field: "name"}
	case url == "":
		return &ValidationError{Field: "url"}
	case categoryID <= 0:
		return &ValidationError{Field: "category_id"}
	}
	if icon == "" {
		icon = DefaultStreamIcon
	}

	return s.table.Modify(func(rows []*Stream) ([]*Stream, error) {
		if sort <= 0 {
			sort = len(rows) + 1
		}
		for _, st := range rows {
			if st.ID == id {
				st.CategoryID = categoryID
				st.Name = name
				st.URL = url
				st.Icon = icon
				st.Sort = sort
				return rows, nil
			}
		}
		return nil, ErrNotFound
	})
}

// Delete removes the stream with the given ID.
func (s *StreamService) Delete(id int) error {
	return s.table.Modify(func(rows []*Stream) ([]*Stream, error) {
		for i, st := range rows {
			if st.ID == id {
				return append(rows[:i], rows[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}

// Reorder applies a submitted ordering of stream IDs and persists the result.
// Reports whether any rank changed.
func (s *StreamService) Reorder(orderedIDs []int) (bool, error) {
	changed := false
	err := s.table.Modify(func(rows []*Stream) ([]*Stream, error) {
		changed = Resequence(rows, orderedIDs)
		return rows, nil
	})
	return changed, err
}
