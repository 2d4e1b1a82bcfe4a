package handlers

import (
	"context"

	"github.com/hoxhox/tvsource/internal/server/dto"
)

// SaveCategory adds or updates a category. A positive ID selects update,
// otherwise a new category is created with the next sequential ID.
func (h *Handlers) SaveCategory(ctx context.Context, req *dto.CategoryFormRequest) (*dto.Envelope, error) {
	if req.ID > 0 {
		if err := h.Categories.Update(req.ID, req.Name, req.Icon, req.Sort); err != nil {
			return nil, mapCatalogErr(err, "category not found")
		}
		return dto.Message("category updated", nil), nil
	}

	added, err := h.Categories.Add(req.Name, req.Icon, req.Sort)
	if err != nil {
		return nil, mapCatalogErr(err, "category not found")
	}
	return dto.Message("category added", dto.CategoryResponse{ID: added.ID, Name: added.Name, Icon: added.Icon, Sort: added.Sort}), nil
}

// DeleteCategory removes a category by ID. Streams keep their category_id and
// render as uncategorized until reassigned.
func (h *Handlers) DeleteCategory(ctx context.Context, req *dto.DeleteRequest) (*dto.Envelope, error) {
	if err := h.Categories.Delete(req.Delete); err != nil {
		return nil, mapCatalogErr(err, "category not found")
	}
	return dto.Message("category deleted", nil), nil
}
