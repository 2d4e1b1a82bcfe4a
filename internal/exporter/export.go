// Package exporter renders the joined catalog into downloadable playlist
// formats: m3u8, plain text and JSON.
//
// All renderers expect categories sorted by rank and streams sorted by
// (category, rank); streams whose category does not resolve are grouped under
// 未分类.
package exporter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hoxhox/tvsource/internal/catalog"
)

// Format identifies an export format.
type Format string

const (
	// FormatM3U8 is an extended M3U playlist.
	FormatM3U8 Format = "m3u8"
	// FormatText is a human-readable text listing.
	FormatText Format = "txt"
	// FormatJSON is a category-grouped JSON document.
	FormatJSON Format = "json"
)

// Valid reports whether f is a supported export format.
func (f Format) Valid() bool {
	switch f {
	case FormatM3U8, FormatText, FormatJSON:
		return true
	}
	return false
}

// ContentType returns the Content-Type header value for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// Filename returns the attachment filename for the format.
func (f Format) Filename() string {
	return "tv_channels." + string(f)
}

// M3U8 writes an extended M3U playlist with one group comment per category.
func M3U8(w io.Writer, categories []*catalog.Category, streams []*catalog.Stream) error {
	names := catalog.CategoryNames(categories)
	if _, err := fmt.Fprint(w, "#EXTM3U\n"); err != nil {
		return err
	}
	currentCategory := 0
	for _, s := range streams {
		name, ok := names[s.CategoryID]
		if !ok {
			name = catalog.UncategorizedName
		}
		if s.CategoryID != currentCategory {
			if _, err := fmt.Fprintf(w, "\n# %s\n", name); err != nil {
				return err
			}
			currentCategory = s.CategoryID
		}
		if _, err := fmt.Fprintf(w, "#EXTINF:-1 tvg-name=%q tvg-logo=\"\" group-title=%q,%s\n%s\n", s.Name, name, s.Name, s.URL); err != nil {
			return err
		}
	}
	return nil
}

// Text writes a plain text listing with one banner per category.
func Text(w io.Writer, categories []*catalog.Category, streams []*catalog.Stream) error {
	names := catalog.CategoryNames(categories)
	currentCategory := 0
	for _, s := range streams {
		name, ok := names[s.CategoryID]
		if !ok {
			name = catalog.UncategorizedName
		}
		if s.CategoryID != currentCategory {
			if _, err := fmt.Fprintf(w, "\n----- %s -----\n\n", name); err != nil {
				return err
			}
			currentCategory = s.CategoryID
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", s.Name, s.URL); err != nil {
			return err
		}
	}
	return nil
}

// jsonGroup is one category entry in the JSON export.
type jsonGroup struct {
	Category string      `json:"category"`
	Streams  []jsonEntry `json:"streams"`
}

type jsonEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// JSON writes a category-grouped JSON document. When filtered is false every
// category appears even if empty; when true, only categories that still have
// streams are emitted.
func JSON(w io.Writer, categories []*catalog.Category, streams []*catalog.Stream, filtered bool) error {
	groups := []jsonGroup{}
	for _, c := range categories {
		entries := []jsonEntry{}
		for _, s := range streams {
			if s.CategoryID == c.ID {
				entries = append(entries, jsonEntry{Name: s.Name, URL: s.URL})
			}
		}
		if len(entries) == 0 && filtered {
			continue
		}
		groups = append(groups, jsonGroup{Category: c.Name, Streams: entries})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(groups)
}
