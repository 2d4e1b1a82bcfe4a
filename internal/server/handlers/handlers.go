// Package handlers implements the API endpoints over the catalog services.
package handlers

import (
	"errors"

	"github.com/hoxhox/tvsource/internal/catalog"
	"github.com/hoxhox/tvsource/internal/config"
	"github.com/hoxhox/tvsource/internal/server/dto"
)

// Handlers bundles the dependencies shared by all endpoints.
type Handlers struct {
	Categories *catalog.CategoryService
	Streams    *catalog.StreamService
	Cfg        *config.Config
	Version    string
}

// New creates the handler set.
func New(categories *catalog.CategoryService, streams *catalog.StreamService, cfg *config.Config, version string) *Handlers {
	return &Handlers{Categories: categories, Streams: streams, Cfg: cfg, Version: version}
}

// mapCatalogErr converts catalog errors to API errors. notFoundMsg names the
// missing record kind for the client.
func mapCatalogErr(err error, notFoundMsg string) error {
	var verr *catalog.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &verr):
		return dto.BadRequest(verr.Error())
	case errors.Is(err, catalog.ErrNotFound):
		return dto.NotFound(notFoundMsg)
	default:
		return dto.Internal("storage failure", err)
	}
}

// toCategoryResponses maps categories to their API representation. Always
// returns a non-nil slice so empty collections encode as [].
func toCategoryResponses(categories []*catalog.Category) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name, Icon: c.Icon, Sort: c.Sort})
	}
	return out
}

// toStreamResponses maps streams to their API representation, resolving each
// category name. Streams pointing at a deleted category resolve to
// catalog.UncategorizedName.
func toStreamResponses(streams []*catalog.Stream, names map[int]string) []dto.StreamResponse {
	out := make([]dto.StreamResponse, 0, len(streams))
	for _, st := range streams {
		out = append(out, toStreamResponse(st, names))
	}
	return out
}

func toStreamResponse(st *catalog.Stream, names map[int]string) dto.StreamResponse {
	name, ok := names[st.CategoryID]
	if !ok {
		name = catalog.UncategorizedName
	}
	return dto.StreamResponse{
		ID:           st.ID,
		CategoryID:   st.CategoryID,
		CategoryName: name,
		Name:         st.Name,
		URL:          st.URL,
		Icon:         st.Icon,
		Sort:         st.Sort,
	}
}
