package handlers

import (
	"context"

	"github.com/hoxhox/tvsource/internal/server/dto"
)

// Sort applies a drag-and-drop reordering to either collection. Listed IDs
// take ranks 1..n in submitted order; unknown IDs are ignored and unlisted
// records keep their ranks.
func (h *Handlers) Sort(ctx context.Context, req *dto.SortRequest) (*dto.Envelope, error) {
	var err error
	switch req.Type {
	case "category":
		_, err = h.Categories.Reorder(req.Items)
	case "stream":
		_, err = h.Streams.Reorder(req.Items)
	}
	if err != nil {
		return nil, dto.Internal("failed to save sort order", err)
	}
	return dto.Message("sort order saved", nil), nil
}
