package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hoxhox/tvsource/internal/catalog"
	"github.com/hoxhox/tvsource/internal/exporter"
)

// Export streams the catalog as a downloadable playlist. It writes raw bytes
// with attachment headers instead of the JSON envelope, so it bypasses the
// envelope wrapper. format selects the renderer (m3u8 by default) and
// category optionally restricts the export to one category.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	format := exporter.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = exporter.FormatM3U8
	}
	if !format.Valid() {
		http.Error(w, "unsupported export format", http.StatusBadRequest)
		return
	}
	categoryID, _ := strconv.Atoi(r.URL.Query().Get("category"))

	categories := h.Categories.List()
	catalog.SortCategories(categories)
	var streams []*catalog.Stream
	if categoryID > 0 {
		streams = h.Streams.ByCategory(categoryID)
	} else {
		streams = h.Streams.List()
	}
	catalog.SortStreams(streams)

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename()))

	var err error
	switch format {
	case exporter.FormatText:
		err = exporter.Text(w, categories, streams)
	case exporter.FormatJSON:
		err = exporter.JSON(w, categories, streams, categoryID > 0)
	default:
		err = exporter.M3U8(w, categories, streams)
	}
	if err != nil {
		// Headers are already out; the truncated body is all we can signal.
		slog.ErrorContext(r.Context(), "Failed to write export", "format", format, "err", err)
	}
}
