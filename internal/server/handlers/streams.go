package handlers

import (
	"context"
	"net/http"

	"github.com/hoxhox/tvsource/internal/catalog"
	"github.com/hoxhox/tvsource/internal/server/dto"
)

// GetStreams serves the public read API. The query parameters are layered:
// type=categories returns the category list, then id selects a single stream,
// then category_id filters by category, and with no parameters every stream
// is returned. A missing id yields 404 with null data; a known-shape lookup
// that matches nothing yields 404 with an empty array so clients can iterate
// without a null check.
func (h *Handlers) GetStreams(ctx context.Context, req *dto.StreamsRequest) (*dto.Envelope, error) {
	if req.Type == "categories" {
		categories := h.Categories.List()
		catalog.SortCategories(categories)
		return dto.OK(toCategoryResponses(categories)), nil
	}

	if req.ID > 0 {
		st, err := h.Streams.Get(req.ID)
		if err != nil {
			return nil, mapCatalogErr(err, "stream not found")
		}
		names := catalog.CategoryNames(h.Categories.List())
		return dto.OK(toStreamResponse(st, names)), nil
	}

	if req.CategoryID > 0 {
		streams := h.Streams.ByCategory(req.CategoryID)
		if len(streams) == 0 {
			return &dto.Envelope{
				Code:    http.StatusNotFound,
				Message: "no streams found in category",
				Data:    []dto.StreamResponse{},
			}, nil
		}
		catalog.SortStreams(streams)
		names := catalog.CategoryNames(h.Categories.List())
		return dto.OK(toStreamResponses(streams, names)), nil
	}

	streams := h.Streams.List()
	catalog.SortStreams(streams)
	names := catalog.CategoryNames(h.Categories.List())
	return dto.OK(toStreamResponses(streams, names)), nil
}
