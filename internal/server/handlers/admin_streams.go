package handlers

import (
	"context"

	"github.com/hoxhox/tvsource/internal/catalog"
	"github.com/hoxhox/tvsource/internal/server/dto"
)

// SaveStream adds or updates a stream. A positive ID selects update,
// otherwise a new stream is created with the next sequential ID.
func (h *Handlers) SaveStream(ctx context.Context, req *dto.StreamFormRequest) (*dto.Envelope, error) {
	if req.ID > 0 {
		if err := h.Streams.Update(req.ID, req.CategoryID, req.Name, req.URL, req.Icon, req.Sort); err != nil {
			return nil, mapCatalogErr(err, "stream not found")
		}
		return dto.Message("stream updated", nil), nil
	}

	added, err := h.Streams.Add(req.CategoryID, req.Name, req.URL, req.Icon, req.Sort)
	if err != nil {
		return nil, mapCatalogErr(err, "stream not found")
	}
	names := catalog.CategoryNames(h.Categories.List())
	return dto.Message("stream added", toStreamResponse(added, names)), nil
}

// DeleteStream removes a stream by ID.
func (h *Handlers) DeleteStream(ctx context.Context, req *dto.DeleteRequest) (*dto.Envelope, error) {
	if err := h.Streams.Delete(req.Delete); err != nil {
		return nil, mapCatalogErr(err, "stream not found")
	}
	return dto.Message("stream deleted", nil), nil
}

// GetStream returns a single stream for the admin edit form.
func (h *Handlers) GetStream(ctx context.Context, req *dto.GetStreamRequest) (*dto.Envelope, error) {
	st, err := h.Streams.Get(req.ID)
	if err != nil {
		return nil, mapCatalogErr(err, "stream not found")
	}
	names := catalog.CategoryNames(h.Categories.List())
	return dto.OK(toStreamResponse(st, names)), nil
}
