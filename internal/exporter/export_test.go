package exporter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/hoxhox/tvsource/internal/catalog"
)

func testCatalog() ([]*catalog.Category, []*catalog.Stream) {
	categories := []*catalog.Category{
		{ID: 1, Name: "央视", Icon: "fa-folder", Sort: 1},
		{ID: 2, Name: "卫视", Icon: "fa-folder", Sort: 2},
		{ID: 3, Name: "空分类", Icon: "fa-folder", Sort: 3},
	}
	streams := []*catalog.Stream{
		{ID: 1, CategoryID: 1, Name: "CCTV-1", URL: "http://example.com/cctv1.m3u8", Sort: 1},
		{ID: 2, CategoryID: 1, Name: "CCTV-2", URL: "http://example.com/cctv2.m3u8", Sort: 2},
		{ID: 3, CategoryID: 2, Name: "湖南卫视", URL: "http://example.com/hntv.m3u8", Sort: 1},
	}
	return categories, streams
}

func TestFormatValid(t *testing.T) {
	for _, f := range []Format{FormatM3U8, FormatText, FormatJSON} {
		if !f.Valid() {
			t.Errorf("%s should be valid", f)
		}
	}
	if Format("xml").Valid() {
		t.Error("xml should not be valid")
	}
}

func TestFormatFilename(t *testing.T) {
	if got := FormatM3U8.Filename(); got != "tv_channels.m3u8" {
		t.Errorf("filename = %q", got)
	}
}

func TestM3U8(t *testing.T) {
	categories, streams := testCatalog()
	var b strings.Builder
	if err := M3U8(&b, categories, streams); err != nil {
		t.Fatal(err)
	}
	out := b.String()

	if !strings.HasPrefix(out, "#EXTM3U\n") {
		t.Error("missing #EXTM3U header")
	}
	if !strings.Contains(out, "# 央视\n") || !strings.Contains(out, "# 卫视\n") {
		t.Error("missing category comments")
	}
	if !strings.Contains(out, `#EXTINF:-1 tvg-name="CCTV-1" tvg-logo="" group-title="央视",CCTV-1`) {
		t.Errorf("missing EXTINF line:\n%s", out)
	}
	if !strings.Contains(out, "http://example.com/cctv1.m3u8\n") {
		t.Error("missing stream URL")
	}
	// Group comments appear once per category, not per stream.
	if strings.Count(out, "# 央视\n") != 1 {
		t.Errorf("duplicate group comment:\n%s", out)
	}
}

func TestM3U8DanglingCategory(t *testing.T) {
	streams := []*catalog.Stream{
		{ID: 1, CategoryID: 99, Name: "orphan", URL: "http://x", Sort: 1},
	}
	var b strings.Builder
	if err := M3U8(&b, nil, streams); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), catalog.UncategorizedName) {
		t.Errorf("dangling stream should group under %s:\n%s", catalog.UncategorizedName, b.String())
	}
}

func TestText(t *testing.T) {
	categories, streams := testCatalog()
	var b strings.Builder
	if err := Text(&b, categories, streams); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.Contains(out, "----- 央视 -----") {
		t.Error("missing category banner")
	}
	if !strings.Contains(out, "CCTV-1\nhttp://example.com/cctv1.m3u8\n") {
		t.Errorf("missing name/url pair:\n%s", out)
	}
}

func TestJSON(t *testing.T) {
	categories, streams := testCatalog()
	var b strings.Builder
	if err := JSON(&b, categories, streams, false); err != nil {
		t.Fatal(err)
	}

	var groups []struct {
		Category string `json:"category"`
		Streams  []struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"streams"`
	}
	if err := json.Unmarshal([]byte(b.String()), &groups); err != nil {
		t.Fatal(err)
	}
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups (empty category included), got %d", len(groups))
	}
	if groups[0].Category != "央视" || len(groups[0].Streams) != 2 {
		t.Errorf("first group: %+v", groups[0])
	}
	if len(groups[2].Streams) != 0 {
		t.Errorf("empty category should have no streams: %+v", groups[2])
	}

	// Filtered export drops categories without streams.
	b.Reset()
	if err := JSON(&b, categories, streams, true); err != nil {
		t.Fatal(err)
	}
	groups = nil
	if err := json.Unmarshal([]byte(b.String()), &groups); err != nil {
		t.Fatal(err)
	}
	if len(groups) != 2 {
		t.Fatalf("filtered: expected 2 groups, got %d", len(groups))
	}
}
