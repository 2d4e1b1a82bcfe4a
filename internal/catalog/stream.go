package catalog

import (
	"slices"
)

// DefaultStreamIcon is assigned when a stream is created without an icon.
const DefaultStreamIcon = "fa-circle-play"

// UncategorizedName is the category name rendered for streams whose
// category_id does not resolve to an existing category.
const UncategorizedName = "未分类"

// Stream is a named playable URL entry belonging to a category.
//
// CategoryID should reference a Category but is deliberately not enforced:
// deleting a category leaves its streams dangling, and they render as 未分类.
type Stream struct {
	ID         int    `json:"id"`
	CategoryID int    `json:"category_id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	Icon       string `json:"icon"`
	Sort       int    `json:"sort"`
}

// Validate checks that the stream is well-formed.
func (s *Stream) Validate() error {
	if s.ID <= 0 {
		return &ValidationError{Field: "id"}
	}
	if s.Name == "" {
		return &ValidationError{Field: "name"}
	}
	if s.URL == "" {
		return &ValidationError{Field: "url"}
	}
	return nil
}

// SortStreams orders streams by (category_id, sort) ascending, stable on ties.
func SortStreams(streams []*Stream) {
	slices.SortStableFunc(streams, func(a, b *Stream) int {
		if a.CategoryID != b.CategoryID {
			return a.CategoryID - b.CategoryID
		}
		return a.Sort - b.Sort
	})
}

// SortStreamsByRank orders streams by sort ascending only, stable on ties.
// Used for single-category listings where the category is fixed.
func SortStreamsByRank(streams []*Stream) {
	slices.SortStableFunc(streams, func(a, b *Stream) int {
		return a.Sort - b.Sort
	})
}
